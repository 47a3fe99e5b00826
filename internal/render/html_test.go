package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auxfresh/receipt-generator/internal/models"
)

func TestWriteHTMLBanking(t *testing.T) {
	layout := BuildBanking(models.BankingDetails{
		CompanyName:       "Kuda Bank",
		TransactionAmount: 50000,
		BeneficiaryName:   "Jane Doe",
		Currency:          "NGN",
	}, "")

	html, err := WriteHTML(layout)
	require.NoError(t, err)

	out := string(html)
	assert.Contains(t, out, `id="banking-receipt-preview"`)
	assert.Contains(t, out, "₦50,000")
	assert.Contains(t, out, "Jane Doe")
	assert.Contains(t, out, ">K</span>", "monogram fallback when no logo")
	assert.NotContains(t, out, "<img", "no logo tag without a logo URL")
}

func TestWriteHTMLBankingLogo(t *testing.T) {
	layout := BuildBanking(models.BankingDetails{CompanyName: "Kuda Bank"}, "https://cdn.example.com/logo.png")

	html, err := WriteHTML(layout)
	require.NoError(t, err)
	assert.Contains(t, string(html), `src="https://cdn.example.com/logo.png"`)
}

func TestWriteHTMLShopping(t *testing.T) {
	layout := BuildShopping(models.ShoppingDetails{
		StoreName: "Fresh Cart",
		Currency:  "USD",
		Items: []models.ShoppingItem{
			{Name: "Headphones", Quantity: 2, UnitPrice: 12500},
		},
		ShippingCost: 1500,
	}, "")

	html, err := WriteHTML(layout)
	require.NoError(t, err)

	out := string(html)
	assert.Contains(t, out, `id="shopping-receipt-preview"`)
	assert.Contains(t, out, "Headphones")
	assert.Contains(t, out, "$25,000")
	assert.Contains(t, out, "$26,500")
	assert.Contains(t, out, "Thank you for shopping with Fresh Cart!")
}

func TestWriteHTMLEscapesUserInput(t *testing.T) {
	layout := BuildBanking(models.BankingDetails{
		BeneficiaryName: `<script>alert("x")</script>`,
	}, "")

	html, err := WriteHTML(layout)
	require.NoError(t, err)
	assert.NotContains(t, string(html), "<script>")
}

func TestWriteHTMLUnknownType(t *testing.T) {
	_, err := WriteHTML(&Layout{Type: "voucher"})
	require.Error(t, err)
}
