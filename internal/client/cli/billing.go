package cli

import (
	"context"
	"fmt"
)

type billingView struct {
	PeriodStart        string
	PeriodEnd          string
	DocumentsProcessed int64
	PagesProcessed     int64
	AmountDue          string
	Currency           string
}

func (c *Cli) runBilling(ctx context.Context) error {
	if _, err := c.restore(ctx); err != nil {
		return err
	}

	overview, err := c.client.GetBillingOverview(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch billing overview: %w", err)
	}

	return c.render("billing", billingTemplate, billingView{
		PeriodStart:        overview.PeriodStart.Format("2006-01-02"),
		PeriodEnd:          overview.PeriodEnd.Format("2006-01-02"),
		DocumentsProcessed: overview.DocumentsProcessed,
		PagesProcessed:     overview.PagesProcessed,
		AmountDue:          formatCents(overview.AmountDueCents),
		Currency:           overview.Currency,
	})
}
