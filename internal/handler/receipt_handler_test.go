package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/auxfresh/receipt-generator/internal/cqrs"
	"github.com/auxfresh/receipt-generator/internal/models"
	"github.com/auxfresh/receipt-generator/internal/render"
)

// ---- mock implementations ----

type mockReceiptCommander struct {
	saveFn   func(cqrs.SaveReceiptCommand) (*models.Receipt, error)
	updateFn func(cqrs.UpdateReceiptCommand) (*models.Receipt, error)
	deleteFn func(cqrs.DeleteReceiptCommand) error
}

func (m *mockReceiptCommander) SaveReceipt(cmd cqrs.SaveReceiptCommand) (*models.Receipt, error) {
	if m.saveFn != nil {
		return m.saveFn(cmd)
	}
	return nil, fmt.Errorf("not configured")
}
func (m *mockReceiptCommander) UpdateReceipt(cmd cqrs.UpdateReceiptCommand) (*models.Receipt, error) {
	if m.updateFn != nil {
		return m.updateFn(cmd)
	}
	return nil, fmt.Errorf("not configured")
}
func (m *mockReceiptCommander) DeleteReceipt(cmd cqrs.DeleteReceiptCommand) error {
	if m.deleteFn != nil {
		return m.deleteFn(cmd)
	}
	return fmt.Errorf("not configured")
}

type mockReceiptQuerier struct {
	listFn  func(cqrs.ListReceiptsQuery) ([]models.ReceiptView, error)
	getFn   func(cqrs.GetReceiptQuery) (*models.ReceiptView, error)
	statsFn func(cqrs.GetStatsQuery) (*models.StatsView, error)
}

func (m *mockReceiptQuerier) ListReceipts(q cqrs.ListReceiptsQuery) ([]models.ReceiptView, error) {
	if m.listFn != nil {
		return m.listFn(q)
	}
	return nil, fmt.Errorf("not configured")
}
func (m *mockReceiptQuerier) GetReceipt(q cqrs.GetReceiptQuery) (*models.ReceiptView, error) {
	if m.getFn != nil {
		return m.getFn(q)
	}
	return nil, fmt.Errorf("not configured")
}
func (m *mockReceiptQuerier) GetStats(q cqrs.GetStatsQuery) (*models.StatsView, error) {
	if m.statsFn != nil {
		return m.statsFn(q)
	}
	return nil, fmt.Errorf("not configured")
}

type mockExporter struct {
	exportFn func(ctx context.Context, html []byte, filename string) ([]byte, error)
}

func (m *mockExporter) Export(ctx context.Context, html []byte, filename string) ([]byte, error) {
	if m.exportFn != nil {
		return m.exportFn(ctx, html, filename)
	}
	return nil, fmt.Errorf("not configured")
}

// ---- helpers ----

func fakeAuthRcp(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userId", userID)
		c.Next()
	}
}

func newRcpTestRouter(cmds ReceiptCommander, qrys ReceiptQuerier, exporter render.Exporter, authUserID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(fakeAuthRcp(authUserID))
	h := NewReceiptHandler(cmds, qrys, exporter)
	v1 := r.Group("/v1/receipts")
	v1.POST("/banking", h.CreateBankingReceipt)
	v1.POST("/banking/preview", h.PreviewBankingReceipt)
	v1.POST("/shopping", h.CreateShoppingReceipt)
	v1.POST("/shopping/preview", h.PreviewShoppingReceipt)
	v1.GET("", h.ListReceipts)
	v1.GET("/stats", h.GetStats)
	v1.GET("/:receiptId", h.GetReceipt)
	v1.GET("/:receiptId/export", h.ExportReceipt)
	v1.PATCH("/:receiptId", h.UpdateReceipt)
	v1.DELETE("/:receiptId", h.DeleteReceipt)
	return r
}

func rcpDoRequest(router *gin.Engine, method, url string, body interface{}) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, url, nil)
	if body != nil {
		b, _ := json.Marshal(body)
		req, _ = http.NewRequest(method, url, strings.NewReader(string(b)))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ---- test data ----

func bankingBody() map[string]interface{} {
	return map[string]interface{}{
		"companyName":       "Acme Bank",
		"transactionAmount": 50000.0,
		"beneficiaryName":   "Jane Doe",
		"senderName":        "John Doe",
		"paidOn":            "2024-03-01T10:30",
		"fees":              25.0,
		"description":       "Invoice settlement",
		"transactionRef":    "TXN-4411",
		"paymentType":       "transfer",
		"currency":          "NGN",
	}
}

func shoppingBody() map[string]interface{} {
	return map[string]interface{}{
		"storeName":     "Gadget World",
		"currency":      "USD",
		"orderNumber":   "#GW-9001",
		"orderDate":     "2024-03-01",
		"items":         []map[string]interface{}{{"name": "Headphones", "quantity": 2, "unitPrice": 12500.0}},
		"shippingCost":  1500.0,
		"paymentMethod": "Visa **** 4242",
		"status":        "paid",
		"supportEmail":  "help@gadgetworld.test",
	}
}

var rcpTestReceipt = &models.Receipt{
	ID:        "rcp-001",
	OwnerID:   "usr-001",
	Type:      models.ReceiptTypeBanking,
	Title:     "Transaction to Jane Doe",
	Data:      json.RawMessage(`{"beneficiaryName":"Jane Doe"}`),
	CreatedAt: time.Now(),
	UpdatedAt: time.Now(),
}

var rcpTestView = &models.ReceiptView{
	ID:      "rcp-001",
	OwnerID: "usr-001",
	Type:    models.ReceiptTypeBanking,
	Title:   "Transaction to Jane Doe",
	Data: json.RawMessage(`{
		"companyName": "Acme Bank", "transactionAmount": 50000,
		"beneficiaryName": "Jane Doe", "senderName": "John Doe",
		"paidOn": "2024-03-01T10:30", "fees": 25,
		"description": "Invoice settlement", "transactionRef": "TXN-4411",
		"paymentType": "transfer", "currency": "NGN"
	}`),
	CreatedAt: time.Now(),
	UpdatedAt: time.Now(),
}

// ---- tests ----

func TestCreateBankingReceipt(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		saveFn         func(cqrs.SaveReceiptCommand) (*models.Receipt, error)
		expectedStatus int
	}{
		{
			name:           "success - valid banking payload",
			body:           bankingBody(),
			saveFn:         func(cmd cqrs.SaveReceiptCommand) (*models.Receipt, error) { return rcpTestReceipt, nil },
			expectedStatus: http.StatusCreated,
		},
		{
			name: "failure - missing beneficiary name",
			body: func() map[string]interface{} {
				b := bankingBody()
				delete(b, "beneficiaryName")
				return b
			}(),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "failure - unknown payment type",
			body: func() map[string]interface{} {
				b := bankingBody()
				b["paymentType"] = "crypto"
				return b
			}(),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "failure - negative amount",
			body: func() map[string]interface{} {
				b := bankingBody()
				b["transactionAmount"] = -5.0
				return b
			}(),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "failure - command service error",
			body:           bankingBody(),
			saveFn:         func(cqrs.SaveReceiptCommand) (*models.Receipt, error) { return nil, fmt.Errorf("db down") },
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmds := &mockReceiptCommander{saveFn: tt.saveFn}
			router := newRcpTestRouter(cmds, &mockReceiptQuerier{}, nil, "usr-001")
			w := rcpDoRequest(router, "POST", "/v1/receipts/banking", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestCreateBankingReceiptBindsOwner(t *testing.T) {
	var captured cqrs.SaveReceiptCommand
	cmds := &mockReceiptCommander{saveFn: func(cmd cqrs.SaveReceiptCommand) (*models.Receipt, error) {
		captured = cmd
		return rcpTestReceipt, nil
	}}
	router := newRcpTestRouter(cmds, &mockReceiptQuerier{}, nil, "usr-777")

	w := rcpDoRequest(router, "POST", "/v1/receipts/banking", bankingBody())
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if captured.OwnerID != "usr-777" {
		t.Errorf("expected owner usr-777, got %q", captured.OwnerID)
	}
	if captured.Type != models.ReceiptTypeBanking {
		t.Errorf("expected banking type, got %q", captured.Type)
	}
	if captured.Logo != nil {
		t.Error("expected no logo for JSON submit")
	}
}

func TestCreateShoppingReceipt(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		saveFn         func(cqrs.SaveReceiptCommand) (*models.Receipt, error)
		expectedStatus int
	}{
		{
			name:           "success - valid shopping payload",
			body:           shoppingBody(),
			saveFn:         func(cqrs.SaveReceiptCommand) (*models.Receipt, error) { return rcpTestReceipt, nil },
			expectedStatus: http.StatusCreated,
		},
		{
			name: "failure - empty items list",
			body: func() map[string]interface{} {
				b := shoppingBody()
				b["items"] = []map[string]interface{}{}
				return b
			}(),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "failure - zero quantity item",
			body: func() map[string]interface{} {
				b := shoppingBody()
				b["items"] = []map[string]interface{}{{"name": "Headphones", "quantity": 0, "unitPrice": 10.0}}
				return b
			}(),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "failure - invalid support email",
			body: func() map[string]interface{} {
				b := shoppingBody()
				b["supportEmail"] = "not-an-email"
				return b
			}(),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "failure - unknown status",
			body: func() map[string]interface{} {
				b := shoppingBody()
				b["status"] = "teleported"
				return b
			}(),
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmds := &mockReceiptCommander{saveFn: tt.saveFn}
			router := newRcpTestRouter(cmds, &mockReceiptQuerier{}, nil, "usr-001")
			w := rcpDoRequest(router, "POST", "/v1/receipts/shopping", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestCreateReceiptMultipartWithLogo(t *testing.T) {
	var captured cqrs.SaveReceiptCommand
	cmds := &mockReceiptCommander{saveFn: func(cmd cqrs.SaveReceiptCommand) (*models.Receipt, error) {
		captured = cmd
		return rcpTestReceipt, nil
	}}
	router := newRcpTestRouter(cmds, &mockReceiptQuerier{}, nil, "usr-001")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	data, _ := json.Marshal(shoppingBody())
	if err := mw.WriteField("data", string(data)); err != nil {
		t.Fatal(err)
	}
	part, err := mw.CreateFormFile("logo", "store-logo.png")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write([]byte("png-bytes")); err != nil {
		t.Fatal(err)
	}
	mw.Close()

	req, _ := http.NewRequest("POST", "/v1/receipts/shopping", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if captured.Logo == nil {
		t.Fatal("expected logo upload to be captured")
	}
	if captured.Logo.Filename != "store-logo.png" {
		t.Errorf("expected filename store-logo.png, got %q", captured.Logo.Filename)
	}
	if string(captured.Logo.Data) != "png-bytes" {
		t.Errorf("unexpected logo bytes: %q", captured.Logo.Data)
	}
}

func TestPreviewBankingReceipt(t *testing.T) {
	router := newRcpTestRouter(&mockReceiptCommander{}, &mockReceiptQuerier{}, nil, "usr-001")

	// Partial state previews without validation, absent fields render
	// as placeholders.
	w := rcpDoRequest(router, "POST", "/v1/receipts/banking/preview", map[string]interface{}{
		"transactionAmount": 50000.0,
		"currency":          "NGN",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, "banking-receipt-preview") {
		t.Error("expected banking preview element id")
	}
	if !strings.Contains(body, "₦50,000") {
		t.Errorf("expected formatted amount in preview, got: %s", body)
	}
	if !strings.Contains(body, "-") {
		t.Error("expected placeholder dashes for empty fields")
	}
}

func TestPreviewShoppingReceiptDefaults(t *testing.T) {
	router := newRcpTestRouter(&mockReceiptCommander{}, &mockReceiptQuerier{}, nil, "usr-001")

	w := rcpDoRequest(router, "POST", "/v1/receipts/shopping/preview", map[string]interface{}{})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, "shopping-receipt-preview") {
		t.Error("expected shopping preview element id")
	}
	if !strings.Contains(body, "Fresh Cart") {
		t.Error("expected default store name")
	}
	if !strings.Contains(body, "#FC123456") {
		t.Error("expected default order number")
	}
}

func TestListReceipts(t *testing.T) {
	tests := []struct {
		name           string
		listFn         func(cqrs.ListReceiptsQuery) ([]models.ReceiptView, error)
		expectedStatus int
		expectedCount  int
	}{
		{
			name: "success - two receipts",
			listFn: func(q cqrs.ListReceiptsQuery) ([]models.ReceiptView, error) {
				return []models.ReceiptView{*rcpTestView, *rcpTestView}, nil
			},
			expectedStatus: http.StatusOK,
			expectedCount:  2,
		},
		{
			name: "success - no receipts yields empty list",
			listFn: func(q cqrs.ListReceiptsQuery) ([]models.ReceiptView, error) {
				return []models.ReceiptView{}, nil
			},
			expectedStatus: http.StatusOK,
			expectedCount:  0,
		},
		{
			name: "failure - store error is not masked as empty",
			listFn: func(q cqrs.ListReceiptsQuery) ([]models.ReceiptView, error) {
				return nil, fmt.Errorf("connection refused")
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qrys := &mockReceiptQuerier{listFn: tt.listFn}
			router := newRcpTestRouter(&mockReceiptCommander{}, qrys, nil, "usr-001")
			w := rcpDoRequest(router, "GET", "/v1/receipts", nil)
			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.expectedStatus == http.StatusOK {
				var resp ListReceiptsResponse
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("failed to parse response: %v", err)
				}
				if len(resp.Receipts) != tt.expectedCount {
					t.Errorf("expected %d receipts, got %d", tt.expectedCount, len(resp.Receipts))
				}
			}
		})
	}
}

func TestListReceiptsScopesToOwner(t *testing.T) {
	var captured cqrs.ListReceiptsQuery
	qrys := &mockReceiptQuerier{listFn: func(q cqrs.ListReceiptsQuery) ([]models.ReceiptView, error) {
		captured = q
		return []models.ReceiptView{}, nil
	}}
	router := newRcpTestRouter(&mockReceiptCommander{}, qrys, nil, "usr-042")

	if w := rcpDoRequest(router, "GET", "/v1/receipts", nil); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if captured.OwnerID != "usr-042" {
		t.Errorf("expected query scoped to usr-042, got %q", captured.OwnerID)
	}
}

func TestGetStats(t *testing.T) {
	qrys := &mockReceiptQuerier{statsFn: func(q cqrs.GetStatsQuery) (*models.StatsView, error) {
		return &models.StatsView{TotalReceipts: 5, BankingReceipts: 3, ShoppingReceipts: 2}, nil
	}}
	router := newRcpTestRouter(&mockReceiptCommander{}, qrys, nil, "usr-001")

	w := rcpDoRequest(router, "GET", "/v1/receipts/stats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var stats models.StatsView
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatal(err)
	}
	if stats.TotalReceipts != 5 || stats.BankingReceipts != 3 || stats.ShoppingReceipts != 2 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestGetReceipt(t *testing.T) {
	tests := []struct {
		name           string
		getFn          func(cqrs.GetReceiptQuery) (*models.ReceiptView, error)
		expectedStatus int
	}{
		{
			name:           "success - own receipt",
			getFn:          func(q cqrs.GetReceiptQuery) (*models.ReceiptView, error) { return rcpTestView, nil },
			expectedStatus: http.StatusOK,
		},
		{
			name: "failure - someone else's receipt",
			getFn: func(q cqrs.GetReceiptQuery) (*models.ReceiptView, error) {
				return nil, fmt.Errorf("forbidden")
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name: "failure - unknown receipt",
			getFn: func(q cqrs.GetReceiptQuery) (*models.ReceiptView, error) {
				return nil, fmt.Errorf("receipt not found")
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qrys := &mockReceiptQuerier{getFn: tt.getFn}
			router := newRcpTestRouter(&mockReceiptCommander{}, qrys, nil, "usr-001")
			w := rcpDoRequest(router, "GET", "/v1/receipts/rcp-001", nil)
			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestUpdateReceipt(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		updateFn       func(cqrs.UpdateReceiptCommand) (*models.Receipt, error)
		expectedStatus int
	}{
		{
			name:           "success - partial payload merge",
			body:           map[string]interface{}{"description": "Corrected memo"},
			updateFn:       func(cmd cqrs.UpdateReceiptCommand) (*models.Receipt, error) { return rcpTestReceipt, nil },
			expectedStatus: http.StatusOK,
		},
		{
			name:           "failure - payload is not an object",
			body:           []string{"nope"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "failure - not the owner",
			body: map[string]interface{}{"description": "x"},
			updateFn: func(cqrs.UpdateReceiptCommand) (*models.Receipt, error) {
				return nil, fmt.Errorf("forbidden")
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name: "failure - receipt gone",
			body: map[string]interface{}{"description": "x"},
			updateFn: func(cqrs.UpdateReceiptCommand) (*models.Receipt, error) {
				return nil, fmt.Errorf("receipt not found")
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmds := &mockReceiptCommander{updateFn: tt.updateFn}
			router := newRcpTestRouter(cmds, &mockReceiptQuerier{}, nil, "usr-001")
			w := rcpDoRequest(router, "PATCH", "/v1/receipts/rcp-001", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestDeleteReceipt(t *testing.T) {
	tests := []struct {
		name           string
		deleteFn       func(cqrs.DeleteReceiptCommand) error
		expectedStatus int
	}{
		{
			name:           "success - own receipt removed",
			deleteFn:       func(cmd cqrs.DeleteReceiptCommand) error { return nil },
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "failure - already deleted",
			deleteFn:       func(cqrs.DeleteReceiptCommand) error { return fmt.Errorf("receipt not found") },
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "failure - not the owner",
			deleteFn:       func(cqrs.DeleteReceiptCommand) error { return fmt.Errorf("forbidden") },
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmds := &mockReceiptCommander{deleteFn: tt.deleteFn}
			router := newRcpTestRouter(cmds, &mockReceiptQuerier{}, nil, "usr-001")
			w := rcpDoRequest(router, "DELETE", "/v1/receipts/rcp-001", nil)
			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestExportReceiptFallsBackToHTML(t *testing.T) {
	qrys := &mockReceiptQuerier{getFn: func(q cqrs.GetReceiptQuery) (*models.ReceiptView, error) {
		return rcpTestView, nil
	}}
	router := newRcpTestRouter(&mockReceiptCommander{}, qrys, nil, "usr-001")

	w := rcpDoRequest(router, "GET", "/v1/receipts/rcp-001/export", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("expected html fallback, got %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "banking-receipt-preview.pdf") {
		t.Errorf("expected download filename header, got %q", cd)
	}
	if !strings.Contains(w.Body.String(), "₦50,000") {
		t.Error("expected export to carry the same rendered projection as the preview")
	}
}

func TestExportReceiptUsesExporter(t *testing.T) {
	qrys := &mockReceiptQuerier{getFn: func(q cqrs.GetReceiptQuery) (*models.ReceiptView, error) {
		return rcpTestView, nil
	}}
	exporter := &mockExporter{exportFn: func(ctx context.Context, html []byte, filename string) ([]byte, error) {
		if filename != "banking-receipt-preview.pdf" {
			t.Errorf("unexpected filename %q", filename)
		}
		if !strings.Contains(string(html), "banking-receipt-preview") {
			t.Error("expected rendered surface to reach the exporter")
		}
		return []byte("%PDF-1.4 fake"), nil
	}}
	router := newRcpTestRouter(&mockReceiptCommander{}, qrys, exporter, "usr-001")

	w := rcpDoRequest(router, "GET", "/v1/receipts/rcp-001/export", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/pdf") {
		t.Errorf("expected pdf content type, got %q", ct)
	}
	if !strings.HasPrefix(w.Body.String(), "%PDF") {
		t.Error("expected pdf bytes in response")
	}
}

func TestExportReceiptExporterFailure(t *testing.T) {
	qrys := &mockReceiptQuerier{getFn: func(q cqrs.GetReceiptQuery) (*models.ReceiptView, error) {
		return rcpTestView, nil
	}}
	exporter := &mockExporter{exportFn: func(context.Context, []byte, string) ([]byte, error) {
		return nil, fmt.Errorf("rasterizer unavailable")
	}}
	router := newRcpTestRouter(&mockReceiptCommander{}, qrys, exporter, "usr-001")

	w := rcpDoRequest(router, "GET", "/v1/receipts/rcp-001/export", nil)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
}
