// Package render projects a receipt payload into a printable layout.
// The same projection feeds the on-screen preview and the PDF export
// source; there is no branching by render target.
package render

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/auxfresh/receipt-generator/internal/currency"
	"github.com/auxfresh/receipt-generator/internal/models"
)

// Fallback currency codes applied when the payload leaves currency unset.
const (
	DefaultBankingCurrency  = "NGN"
	DefaultShoppingCurrency = "USD"
)

// Stable surface ids, referenced by the export capability.
const (
	BankingElementID  = "banking-receipt-preview"
	ShoppingElementID = "shopping-receipt-preview"
)

const placeholder = "-"

// Branding is the issuer identity block: an uploaded logo when present,
// otherwise a generated monogram.
type Branding struct {
	LogoURL  string
	Monogram string
	Name     string
}

// Field is one labelled row of a banking receipt.
type Field struct {
	Label string
	Value string
}

// ItemRow is one purchased item line of a shopping receipt.
type ItemRow struct {
	Name      string
	Quantity  int
	LineTotal string
}

// Layout is the rendered document model. Exactly one of the banking or
// shopping groups is populated, matching Type.
type Layout struct {
	ElementID string
	Type      string
	Branding  Branding

	// Banking
	Amount string
	Fields []Field

	// Shopping
	OrderNumber string
	OrderDate   string
	Items       []ItemRow
	Subtotal    string
	Shipping    string
	Total       string
	Payment     string
	Status      string
	FooterLines []string
}

// BuildLayout projects a raw receipt payload. The switch over receipt
// types is exhaustive; an unknown tag is an error, not a blank page.
func BuildLayout(receiptType string, data json.RawMessage, logoURL string) (*Layout, error) {
	switch receiptType {
	case models.ReceiptTypeBanking:
		var d models.BankingDetails
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("failed to decode banking payload: %w", err)
		}
		return BuildBanking(d, logoURL), nil
	case models.ReceiptTypeShopping:
		var d models.ShoppingDetails
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("failed to decode shopping payload: %w", err)
		}
		return BuildShopping(d, logoURL), nil
	default:
		return nil, fmt.Errorf("unknown receipt type %q", receiptType)
	}
}

// BuildBanking lays out a transfer receipt. Absent text fields render
// as "-"; monetary fields render as zero amounts.
func BuildBanking(d models.BankingDetails, logoURL string) *Layout {
	code := d.Currency
	if code == "" {
		code = DefaultBankingCurrency
	}

	return &Layout{
		ElementID: BankingElementID,
		Type:      models.ReceiptTypeBanking,
		Branding: Branding{
			LogoURL:  logoURL,
			Monogram: monogram(d.CompanyName),
			Name:     orPlaceholder(d.CompanyName),
		},
		Amount: formatAmount(d.TransactionAmount, code),
		Fields: []Field{
			{Label: "Beneficiary Details", Value: orPlaceholder(d.BeneficiaryName)},
			{Label: "Sender Details", Value: orPlaceholder(d.SenderName)},
			{Label: "Paid On", Value: formatTimestamp(d.PaidOn)},
			{Label: "Fees", Value: formatAmount(d.Fees, code)},
			{Label: "Description", Value: orPlaceholder(d.Description)},
			{Label: "Transaction Reference", Value: orPlaceholder(d.TransactionRef)},
			{Label: "Payment Type", Value: orPlaceholder(d.PaymentType)},
		},
	}
}

// BuildShopping lays out an order receipt. Empty fields fall back to
// the sample storefront values so a half-filled form still previews as
// a complete receipt. Subtotal and total are always recomputed here.
func BuildShopping(d models.ShoppingDetails, logoURL string) *Layout {
	code := d.Currency
	if code == "" {
		code = DefaultShoppingCurrency
	}

	storeName := d.StoreName
	if storeName == "" {
		storeName = "Fresh Cart"
	}
	supportEmail := d.SupportEmail
	if supportEmail == "" {
		supportEmail = "support@freshcart.com"
	}

	items := make([]ItemRow, 0, len(d.Items))
	for _, item := range d.Items {
		items = append(items, ItemRow{
			Name:      item.Name,
			Quantity:  item.Quantity,
			LineTotal: currency.Format(float64(item.Quantity)*item.UnitPrice, code),
		})
	}

	status := d.Status
	if status == "" {
		status = "Paid"
	}
	paymentMethod := d.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "Mastercard (**** 142) 1423"
	}
	orderNumber := d.OrderNumber
	if orderNumber == "" {
		orderNumber = "#FC123456"
	}
	orderDate := "June 28, 2025"
	if d.OrderDate != "" {
		orderDate = formatDate(d.OrderDate)
	}

	return &Layout{
		ElementID: ShoppingElementID,
		Type:      models.ReceiptTypeShopping,
		Branding: Branding{
			LogoURL:  logoURL,
			Monogram: monogram(storeName),
			Name:     storeName,
		},
		OrderNumber: orderNumber,
		OrderDate:   orderDate,
		Items:       items,
		Subtotal:    currency.Format(d.Subtotal(), code),
		Shipping:    currency.Format(d.ShippingCost, code),
		Total:       currency.Format(d.Total(), code),
		Payment:     paymentMethod,
		Status:      status,
		FooterLines: []string{
			fmt.Sprintf("Need help? Contact %s", supportEmail),
			fmt.Sprintf("Thank you for shopping with %s!", storeName),
		},
	}
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}

// monogram takes the first letter of the issuer name, upper-cased.
func monogram(name string) string {
	for _, r := range strings.TrimSpace(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return strings.ToUpper(string(r))
		}
	}
	return "R"
}

// formatAmount renders money; a zero amount displays as symbol + "0.00"
// rather than a placeholder.
func formatAmount(amount float64, code string) string {
	if amount == 0 {
		return currency.Symbol(code) + "0.00"
	}
	return currency.Format(amount, code)
}

// Accepted input forms for payload timestamps: RFC 3339, the HTML
// datetime-local shape, and a bare date.
var timestampForms = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, form := range timestampForms {
		if t, err := time.Parse(form, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func formatTimestamp(s string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	if t, ok := parseTimestamp(s); ok {
		return t.Format("1/2/2006, 3:04:05 PM")
	}
	return s
}

func formatDate(s string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	if t, ok := parseTimestamp(s); ok {
		return t.Format("January 2, 2006")
	}
	return s
}
