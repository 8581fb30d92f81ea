package api

// Sector groups users and documents by organizational unit.
type Sector struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// SectorRequest creates or updates a sector.
type SectorRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
