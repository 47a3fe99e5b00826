package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/auxfresh/receipt-generator/internal/cqrs"
	"github.com/auxfresh/receipt-generator/internal/middleware"
	"github.com/auxfresh/receipt-generator/internal/models"
	"github.com/auxfresh/receipt-generator/internal/render"
)

// Logo uploads above this size are rejected before touching storage.
const maxLogoBytes = 5 << 20

// ReceiptCommander defines the write-side operations used by ReceiptHandler.
type ReceiptCommander interface {
	SaveReceipt(cqrs.SaveReceiptCommand) (*models.Receipt, error)
	UpdateReceipt(cqrs.UpdateReceiptCommand) (*models.Receipt, error)
	DeleteReceipt(cqrs.DeleteReceiptCommand) error
}

// ReceiptQuerier defines the read-side operations used by ReceiptHandler.
type ReceiptQuerier interface {
	ListReceipts(cqrs.ListReceiptsQuery) ([]models.ReceiptView, error)
	GetReceipt(cqrs.GetReceiptQuery) (*models.ReceiptView, error)
	GetStats(cqrs.GetStatsQuery) (*models.StatsView, error)
}

type ReceiptHandler struct {
	commands ReceiptCommander
	queries  ReceiptQuerier
	exporter render.Exporter
}

type BankingReceiptRequest struct {
	CompanyName       string  `json:"companyName" validate:"required"`
	TransactionAmount float64 `json:"transactionAmount" validate:"gte=0"`
	BeneficiaryName   string  `json:"beneficiaryName" validate:"required"`
	SenderName        string  `json:"senderName" validate:"required"`
	PaidOn            string  `json:"paidOn" validate:"required"`
	Fees              float64 `json:"fees" validate:"gte=0"`
	Description       string  `json:"description" validate:"required"`
	TransactionRef    string  `json:"transactionRef" validate:"required"`
	PaymentType       string  `json:"paymentType" validate:"required,oneof=transfer card wallet"`
	Currency          string  `json:"currency" validate:"required"`
}

type ShoppingItemRequest struct {
	Name      string  `json:"name" validate:"required"`
	Quantity  int     `json:"quantity" validate:"gte=1"`
	UnitPrice float64 `json:"unitPrice" validate:"gte=0"`
}

type ShoppingReceiptRequest struct {
	StoreName     string                `json:"storeName" validate:"required"`
	Currency      string                `json:"currency" validate:"required"`
	OrderNumber   string                `json:"orderNumber" validate:"required"`
	OrderDate     string                `json:"orderDate" validate:"required"`
	Items         []ShoppingItemRequest `json:"items" validate:"required,min=1,dive"`
	ShippingCost  float64               `json:"shippingCost" validate:"gte=0"`
	PaymentMethod string                `json:"paymentMethod" validate:"required"`
	Status        string                `json:"status" validate:"required,oneof=paid pending processing shipped delivered"`
	SupportEmail  string                `json:"supportEmail" validate:"required,email"`
}

type ListReceiptsResponse struct {
	Receipts []models.ReceiptView `json:"receipts"`
}

// NewReceiptHandler wires the receipt routes. exporter may be nil, in
// which case export falls back to serving the printable HTML source.
func NewReceiptHandler(commands ReceiptCommander, queries ReceiptQuerier, exporter render.Exporter) *ReceiptHandler {
	return &ReceiptHandler{commands: commands, queries: queries, exporter: exporter}
}

func (h *ReceiptHandler) CreateBankingReceipt(c *gin.Context) {
	var req BankingReceiptRequest
	h.createReceipt(c, models.ReceiptTypeBanking, &req)
}

func (h *ReceiptHandler) CreateShoppingReceipt(c *gin.Context) {
	var req ShoppingReceiptRequest
	h.createReceipt(c, models.ReceiptTypeShopping, &req)
}

// createReceipt is the shared submit path: bind, validate, save. The
// request carries JSON directly, or a multipart form with a "data" JSON
// field plus an optional "logo" file held back for deferred upload.
func (h *ReceiptHandler) createReceipt(c *gin.Context, receiptType string, req any) {
	ownerID, _ := middleware.GetUserID(c)

	logo, err := bindReceiptRequest(c, req)
	if err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	data, err := json.Marshal(req)
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to save receipt")
		return
	}

	receipt, err := h.commands.SaveReceipt(cqrs.SaveReceiptCommand{
		OwnerID: ownerID,
		Type:    receiptType,
		Data:    data,
		Logo:    logo,
	})
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to save receipt")
		return
	}

	c.JSON(http.StatusCreated, receipt)
}

func (h *ReceiptHandler) PreviewBankingReceipt(c *gin.Context) {
	h.previewReceipt(c, models.ReceiptTypeBanking)
}

func (h *ReceiptHandler) PreviewShoppingReceipt(c *gin.Context) {
	h.previewReceipt(c, models.ReceiptTypeShopping)
}

// previewReceipt renders a live preview of a partial form state. No
// validation here: the preview shows placeholders for absent fields and
// validation only gates the submit.
func (h *ReceiptHandler) previewReceipt(c *gin.Context, receiptType string) {
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxLogoBytes))
	if err != nil || len(data) == 0 {
		data = []byte(`{}`)
	}
	if !json.Valid(data) {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	layout, err := render.BuildLayout(receiptType, data, c.Query("logoUrl"))
	if err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	html, err := render.WriteHTML(layout)
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to render preview")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}

func (h *ReceiptHandler) ListReceipts(c *gin.Context) {
	ownerID, _ := middleware.GetUserID(c)

	views, err := h.queries.ListReceipts(cqrs.ListReceiptsQuery{OwnerID: ownerID})
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to load receipts")
		return
	}
	c.JSON(http.StatusOK, ListReceiptsResponse{Receipts: views})
}

func (h *ReceiptHandler) GetStats(c *gin.Context) {
	ownerID, _ := middleware.GetUserID(c)

	stats, err := h.queries.GetStats(cqrs.GetStatsQuery{OwnerID: ownerID})
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to load receipts")
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *ReceiptHandler) GetReceipt(c *gin.Context) {
	receiptID := c.Param("receiptId")
	ownerID, _ := middleware.GetUserID(c)

	view, err := h.queries.GetReceipt(cqrs.GetReceiptQuery{ReceiptID: receiptID, OwnerID: ownerID})
	if err != nil {
		h.respondReceiptError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *ReceiptHandler) UpdateReceipt(c *gin.Context) {
	receiptID := c.Param("receiptId")
	ownerID, _ := middleware.GetUserID(c)

	partial, logo, err := bindPartialPayload(c)
	if err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	receipt, err := h.commands.UpdateReceipt(cqrs.UpdateReceiptCommand{
		ReceiptID: receiptID,
		OwnerID:   ownerID,
		Data:      partial,
		Logo:      logo,
	})
	if err != nil {
		h.respondReceiptError(c, err)
		return
	}
	c.JSON(http.StatusOK, receipt)
}

func (h *ReceiptHandler) DeleteReceipt(c *gin.Context) {
	receiptID := c.Param("receiptId")
	ownerID, _ := middleware.GetUserID(c)

	if err := h.commands.DeleteReceipt(cqrs.DeleteReceiptCommand{ReceiptID: receiptID, OwnerID: ownerID}); err != nil {
		h.respondReceiptError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ExportReceipt renders the stored receipt and hands the surface to the
// PDF capability. Without a configured exporter the printable HTML is
// returned with the download filename, so rasterization can happen
// client-side. The rendered projection is the same either way.
func (h *ReceiptHandler) ExportReceipt(c *gin.Context) {
	receiptID := c.Param("receiptId")
	ownerID, _ := middleware.GetUserID(c)

	view, err := h.queries.GetReceipt(cqrs.GetReceiptQuery{ReceiptID: receiptID, OwnerID: ownerID})
	if err != nil {
		h.respondReceiptError(c, err)
		return
	}

	layout, err := render.BuildLayout(view.Type, view.Data, view.LogoURL)
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}
	html, err := render.WriteHTML(layout)
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	filename := render.Filename(view.Type)
	if h.exporter == nil {
		c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
		c.Data(http.StatusOK, "text/html; charset=utf-8", html)
		return
	}

	pdf, err := h.exporter.Export(c.Request.Context(), html, filename)
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (h *ReceiptHandler) respondReceiptError(c *gin.Context, err error) {
	switch err.Error() {
	case "receipt not found":
		middleware.RespondWithError(c, http.StatusNotFound, "Receipt not found")
	case "forbidden":
		middleware.RespondWithError(c, http.StatusForbidden, "You can only access your own receipts")
	default:
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to process receipt")
	}
}

// bindReceiptRequest decodes a submit request body. Multipart forms put
// the payload in a "data" field next to the optional "logo" file; plain
// JSON bodies carry the payload directly.
func bindReceiptRequest(c *gin.Context, req any) (*cqrs.LogoUpload, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if err := c.ShouldBindJSON(req); err != nil {
			return nil, err
		}
		return nil, nil
	}

	dataField := c.PostForm("data")
	if dataField == "" {
		return nil, errors.New("missing data field")
	}
	if err := json.Unmarshal([]byte(dataField), req); err != nil {
		return nil, err
	}
	return readLogoFile(c)
}

// bindPartialPayload decodes an update request: a partial payload object
// merged over the stored one, plus an optional replacement logo.
func bindPartialPayload(c *gin.Context) (json.RawMessage, *cqrs.LogoUpload, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		partial := json.RawMessage(c.PostForm("data"))
		if len(partial) == 0 {
			partial = json.RawMessage(`{}`)
		}
		if !isJSONObject(partial) {
			return nil, nil, errors.New("payload must be a JSON object")
		}
		logo, err := readLogoFile(c)
		if err != nil {
			return nil, nil, err
		}
		return partial, logo, nil
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxLogoBytes))
	if err != nil {
		return nil, nil, err
	}
	if len(body) == 0 {
		body = []byte(`{}`)
	}
	if !isJSONObject(body) {
		return nil, nil, errors.New("payload must be a JSON object")
	}
	return body, nil, nil
}

func isJSONObject(data []byte) bool {
	trimmed := strings.TrimSpace(string(data))
	return json.Valid(data) && strings.HasPrefix(trimmed, "{")
}

func readLogoFile(c *gin.Context) (*cqrs.LogoUpload, error) {
	fileHeader, err := c.FormFile("logo")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	if fileHeader.Size > maxLogoBytes {
		return nil, errors.New("logo too large")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxLogoBytes))
	if err != nil {
		return nil, err
	}
	return &cqrs.LogoUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
