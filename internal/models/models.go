package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Receipt type discriminators.
const (
	ReceiptTypeBanking  = "banking"
	ReceiptTypeShopping = "shopping"
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdTimestamp"`
	UpdatedAt    time.Time `json:"updatedTimestamp"`
}

// Receipt is the persisted, identity-bearing wrapper around a receipt
// payload. Data holds exactly one of BankingDetails or ShoppingDetails,
// discriminated by Type.
type Receipt struct {
	ID        string          `json:"id"`
	OwnerID   string          `json:"-"`
	Type      string          `json:"type"`
	Title     string          `json:"title"`
	Data      json.RawMessage `json:"data"`
	LogoURL   string          `json:"logoUrl,omitempty"`
	CreatedAt time.Time       `json:"createdTimestamp"`
	UpdatedAt time.Time       `json:"updatedTimestamp"`
}

type BankingDetails struct {
	CompanyName       string  `json:"companyName"`
	TransactionAmount float64 `json:"transactionAmount"`
	BeneficiaryName   string  `json:"beneficiaryName"`
	SenderName        string  `json:"senderName"`
	PaidOn            string  `json:"paidOn"`
	Fees              float64 `json:"fees"`
	Description       string  `json:"description"`
	TransactionRef    string  `json:"transactionRef"`
	PaymentType       string  `json:"paymentType"`
	Currency          string  `json:"currency"`
}

type ShoppingItem struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

type ShoppingDetails struct {
	StoreName     string         `json:"storeName"`
	Currency      string         `json:"currency"`
	OrderNumber   string         `json:"orderNumber"`
	OrderDate     string         `json:"orderDate"`
	Items         []ShoppingItem `json:"items"`
	ShippingCost  float64        `json:"shippingCost"`
	PaymentMethod string         `json:"paymentMethod"`
	Status        string         `json:"status"`
	SupportEmail  string         `json:"supportEmail"`
}

// Subtotal is the sum of quantity times unit price over all items.
func (d ShoppingDetails) Subtotal() float64 {
	var sum float64
	for _, item := range d.Items {
		sum += float64(item.Quantity) * item.UnitPrice
	}
	return sum
}

// Total is always derived, never stored.
func (d ShoppingDetails) Total() float64 {
	return d.Subtotal() + d.ShippingCost
}

// Banking decodes the payload of a banking receipt.
func (r *Receipt) Banking() (*BankingDetails, error) {
	if r.Type != ReceiptTypeBanking {
		return nil, fmt.Errorf("receipt %s is not a banking receipt", r.ID)
	}
	var d BankingDetails
	if err := json.Unmarshal(r.Data, &d); err != nil {
		return nil, fmt.Errorf("failed to decode banking payload: %w", err)
	}
	return &d, nil
}

// Shopping decodes the payload of a shopping receipt.
func (r *Receipt) Shopping() (*ShoppingDetails, error) {
	if r.Type != ReceiptTypeShopping {
		return nil, fmt.Errorf("receipt %s is not a shopping receipt", r.ID)
	}
	var d ShoppingDetails
	if err := json.Unmarshal(r.Data, &d); err != nil {
		return nil, fmt.Errorf("failed to decode shopping payload: %w", err)
	}
	return &d, nil
}

// DeriveTitle computes the stored title for a receipt at save time.
func DeriveTitle(receiptType string, data json.RawMessage) (string, error) {
	switch receiptType {
	case ReceiptTypeBanking:
		var d BankingDetails
		if err := json.Unmarshal(data, &d); err != nil {
			return "", fmt.Errorf("failed to decode banking payload: %w", err)
		}
		return "Transaction to " + d.BeneficiaryName, nil
	case ReceiptTypeShopping:
		var d ShoppingDetails
		if err := json.Unmarshal(data, &d); err != nil {
			return "", fmt.Errorf("failed to decode shopping payload: %w", err)
		}
		return d.StoreName + " Order", nil
	default:
		return "", fmt.Errorf("unknown receipt type %q", receiptType)
	}
}
