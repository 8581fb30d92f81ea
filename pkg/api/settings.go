package api

// ExtractionField configures one field the backend extracts from documents.
type ExtractionField struct {
	Name    string `json:"name"`
	Pattern string `json:"pattern,omitempty"`
	Enabled bool   `json:"enabled"`
}

// ExtractionSettings is the full extraction configuration for the account.
type ExtractionSettings struct {
	Fields []ExtractionField `json:"fields"`
}

// Keyword is a single extraction keyword attached to a field.
type Keyword struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Field string `json:"field,omitempty"`
}

// KeywordRequest creates a keyword.
type KeywordRequest struct {
	Text  string `json:"text"`
	Field string `json:"field,omitempty"`
}
