package models

import (
	"encoding/json"
	"time"
)

// ReceiptView is the read projection of a receipt returned by list and
// get queries. OwnerID is populated for ownership checks but never
// serialised to the API response.
type ReceiptView struct {
	ID        string          `json:"id"`
	OwnerID   string          `json:"-"`
	Type      string          `json:"type"`
	Title     string          `json:"title"`
	Data      json.RawMessage `json:"data"`
	LogoURL   string          `json:"logoUrl,omitempty"`
	CreatedAt time.Time       `json:"createdTimestamp"`
	UpdatedAt time.Time       `json:"updatedTimestamp"`
}

// UserView is the read projection of a user. It never exposes PasswordHash.
type UserView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdTimestamp"`
	UpdatedAt time.Time `json:"updatedTimestamp"`
}

// StatsView backs the dashboard cards: receipt counts per type.
type StatsView struct {
	TotalReceipts    int `json:"totalReceipts"`
	BankingReceipts  int `json:"bankingReceipts"`
	ShoppingReceipts int `json:"shoppingReceipts"`
}
