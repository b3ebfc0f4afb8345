package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/academy-console/internal/application/service"
	"github.com/sangkips/academy-console/internal/presentation/http/dto/request"
	"github.com/sangkips/academy-console/internal/presentation/http/dto/response"
	"github.com/sangkips/academy-console/pkg/pagination"
)

// InvoiceHandler serves persisted receipts.
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// List searches receipts
// @Summary List receipts
// @Tags receipts
// @Produce json
// @Param search query string false "Receipt number or student name"
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD)"
// @Param page query int false "Page number"
// @Success 200 {object} response.APIResponse
// @Router /api/receipts [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	var req request.InvoiceQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	from, err := parseDate("from", req.From)
	if err != nil {
		response.Error(c, err)
		return
	}
	to, err := parseDate("to", req.To)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.invoiceService.List(c.Request.Context(), GetSession(c), &service.InvoiceQuery{
		Search: req.Search,
		From:   from,
		To:     to,
		Params: pagination.PaginationParams{Page: req.Page},
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Receipts retrieved successfully", result)
}

// Get returns a receipt with its recomputed breakdown.
func (h *InvoiceHandler) Get(c *gin.Context) {
	record, err := h.invoiceService.Get(c.Request.Context(), GetSession(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt retrieved successfully", gin.H{
		"record":  record,
		"receipt": h.invoiceService.Receipt(record),
	})
}

// PDF downloads a printable invoice.
func (h *InvoiceHandler) PDF(c *gin.Context) {
	pdf, receipt, err := h.invoiceService.RenderPDF(c.Request.Context(), GetSession(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, "application/pdf", "invoice-"+receipt.Number+".pdf", pdf)
}
