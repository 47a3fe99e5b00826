package render

import (
	"bytes"
	"fmt"
	"html/template"
)

// WriteHTML turns a layout into the printable HTML surface. The output
// is identical for on-screen preview and PDF rasterization.
func WriteHTML(layout *Layout) ([]byte, error) {
	var tmpl *template.Template
	switch layout.Type {
	case "banking":
		tmpl = bankingTemplate
	case "shopping":
		tmpl = shoppingTemplate
	default:
		return nil, fmt.Errorf("unknown layout type %q", layout.Type)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, layout); err != nil {
		return nil, fmt.Errorf("failed to render layout: %w", err)
	}
	return buf.Bytes(), nil
}

var bankingTemplate = template.Must(template.New("banking").Parse(`<div id="{{.ElementID}}" class="receipt receipt-banking">
  <div class="receipt-card">
    <div class="receipt-branding">
      {{if .Branding.LogoURL}}<img class="receipt-logo" src="{{.Branding.LogoURL}}" alt="Logo">{{else}}<span class="receipt-monogram">{{.Branding.Monogram}}</span>{{end}}
      <span class="receipt-issuer">{{.Branding.Name}}</span>
    </div>
    <h1 class="receipt-heading">Transaction Details</h1>
    <div class="receipt-amount">
      <p class="receipt-amount-label">Transaction Amount</p>
      <p class="receipt-amount-value">{{.Amount}}</p>
    </div>
    {{range .Fields}}<div class="receipt-field">
      <p class="receipt-field-label">{{.Label}}</p>
      <p class="receipt-field-value">{{.Value}}</p>
    </div>
    {{end}}<div class="receipt-stamp"><span class="receipt-monogram">{{.Branding.Monogram}}</span></div>
  </div>
</div>
`))

var shoppingTemplate = template.Must(template.New("shopping").Parse(`<div id="{{.ElementID}}" class="receipt receipt-shopping">
  <div class="receipt-card">
    <div class="receipt-header">
      {{if .Branding.LogoURL}}<img class="receipt-logo" src="{{.Branding.LogoURL}}" alt="Logo">{{else}}<span class="receipt-monogram">{{.Branding.Monogram}}</span>{{end}}
      <span class="receipt-issuer">{{.Branding.Name}}</span>
      <p class="receipt-heading">Order Receipt</p>
    </div>
    <div class="receipt-order-info">
      <span class="receipt-order-number">Order No: {{.OrderNumber}}</span>
      <span class="receipt-order-date">{{.OrderDate}}</span>
    </div>
    <table class="receipt-items">
      <thead><tr><th>Items Purchased</th><th>Qty</th><th>Amount</th></tr></thead>
      <tbody>
        {{range .Items}}<tr><td>{{.Name}}</td><td>{{.Quantity}}</td><td>{{.LineTotal}}</td></tr>
        {{else}}<tr><td>No items added</td><td>0</td><td></td></tr>
        {{end}}
      </tbody>
    </table>
    <div class="receipt-summary">
      <div class="receipt-summary-row"><span>Subtotal</span><span>{{.Subtotal}}</span></div>
      <div class="receipt-summary-row"><span>Shipping</span><span>{{.Shipping}}</span></div>
      <div class="receipt-summary-row receipt-summary-total"><span>Total</span><span>{{.Total}}</span></div>
    </div>
    <div class="receipt-payment">
      <div class="receipt-summary-row"><span>Payment</span><span>{{.Payment}}</span></div>
      <div class="receipt-summary-row"><span>Status</span><span>{{.Status}}</span></div>
    </div>
    <div class="receipt-footer">
      {{range .FooterLines}}<p>{{.}}</p>
      {{end}}
    </div>
  </div>
</div>
`))
