package api

import "time"

// BillingOverview summarizes usage and charges for the current period.
type BillingOverview struct {
	PeriodStart        time.Time `json:"period_start"`
	PeriodEnd          time.Time `json:"period_end"`
	DocumentsProcessed int64     `json:"documents_processed"`
	PagesProcessed     int64     `json:"pages_processed"`
	AmountDueCents     int64     `json:"amount_due_cents"`
	Currency           string    `json:"currency"`
}
