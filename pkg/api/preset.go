package api

import "time"

// Preset is a reusable set of document list filters.
type Preset struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Filters   map[string]string `json:"filters"`
	CreatedAt time.Time         `json:"created_at,omitempty"`
	UpdatedAt time.Time         `json:"updated_at,omitempty"`
}

// PresetRequest creates or updates a preset.
type PresetRequest struct {
	Name    string            `json:"name"`
	Filters map[string]string `json:"filters"`
}
