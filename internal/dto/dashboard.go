package dto

import "time"

// SelectionRequest is the payload for replacing the active region selection
type SelectionRequest struct {
	Regions []string `json:"regions" validate:"required,min=1,dive,region_code"`
}

// RegionsResponse lists the distinct regions present in the loaded dataset
type RegionsResponse struct {
	Regions []string `json:"regions"`
	Count   int      `json:"count"`
}

// ReloadResponse reports the outcome of a dataset reload
type ReloadResponse struct {
	RowCount int       `json:"row_count"`
	Regions  []string  `json:"regions"`
	LoadedAt time.Time `json:"loaded_at"`
}

// TokenResponse carries a freshly issued viewer token
type TokenResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
}
