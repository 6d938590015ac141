package entity

import "time"

// APIKey is a marketplace API key as returned by the backend. The secret is
// present only in the creation response and never stored here.
type APIKey struct {
	ID          string     `json:"id"`
	Name        string     `json:"name,omitempty"`
	Prefix      string     `json:"prefix,omitempty"`
	Permissions []string   `json:"permissions"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastUsedAt  *time.Time `json:"lastUsedAt,omitempty"`
	Active      bool       `json:"active"`
}

// CreateAPIKeyRequest asks the backend to mint a new key for a user.
type CreateAPIKeyRequest struct {
	Name        string   `json:"name,omitempty"`
	Permissions []string `json:"permissions"`
}

// CreateAPIKeyResult includes the one-time plaintext key.
type CreateAPIKeyResult struct {
	Key    APIKey `json:"key"`
	Secret string `json:"apiKey"`
}

// OnrampRequest describes a fiat-to-crypto funding request.
type OnrampRequest struct {
	Address string `json:"address"`
	Network string `json:"network"`
	Asset   string `json:"asset,omitempty"`
	Amount  string `json:"amount,omitempty"`
}

// OnrampResult carries the hosted onramp URL to open.
type OnrampResult struct {
	OnrampURL string `json:"onrampUrl"`
}
