package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/academy-console/internal/application/service"
	"github.com/sangkips/academy-console/internal/presentation/http/dto/request"
	"github.com/sangkips/academy-console/internal/presentation/http/dto/response"
)

// DraftHandler handles the fee receipt form.
type DraftHandler struct {
	draftService   *service.DraftService
	receiptService *service.ReceiptService
}

// NewDraftHandler creates a new draft handler
func NewDraftHandler(draftService *service.DraftService, receiptService *service.ReceiptService) *DraftHandler {
	return &DraftHandler{draftService: draftService, receiptService: receiptService}
}

// Get returns the current draft, starting one if there is none.
func (h *DraftHandler) Get(c *gin.Context) {
	view, err := h.draftService.View(c.Request.Context(), GetSession(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Draft retrieved", view)
}

// Start discards the current draft and begins a new receipt.
// @Summary New receipt
// @Tags receipts
// @Produce json
// @Success 201 {object} response.APIResponse
// @Router /api/draft [post]
func (h *DraftHandler) Start(c *gin.Context) {
	view, err := h.draftService.Reset(c.Request.Context(), GetSession(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "New receipt started", view)
}

// Discard drops the current draft.
func (h *DraftHandler) Discard(c *gin.Context) {
	if err := h.draftService.Discard(c.Request.Context(), GetSession(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Draft discarded", nil)
}

// SelectStudent fills the draft from a student record.
func (h *DraftHandler) SelectStudent(c *gin.Context) {
	var req request.SelectStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	view, err := h.draftService.SelectStudent(c.Request.Context(), GetSession(c), req.StudentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Student selected", view)
}

// SetFees records line-item amounts.
// @Summary Set fees
// @Tags receipts
// @Accept json
// @Produce json
// @Param request body request.SetFeesRequest true "Line item amounts"
// @Success 200 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /api/draft/fees [put]
func (h *DraftHandler) SetFees(c *gin.Context) {
	var req request.SetFeesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	view, err := h.draftService.SetFees(c.Request.Context(), GetSession(c), req.Fees)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Fees updated", view)
}

// SetDetails records payment mode, date and the level paid to.
func (h *DraftHandler) SetDetails(c *gin.Context) {
	var req request.SetDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	input := &service.DetailsInput{PaymentMode: req.PaymentMode, LevelPaidTo: req.LevelPaidTo}
	if req.Date != nil {
		date, err := parseDate("date", *req.Date)
		if err != nil {
			response.Error(c, err)
			return
		}
		input.Date = date
	}

	view, err := h.draftService.SetDetails(c.Request.Context(), GetSession(c), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Details updated", view)
}

// Save persists the receipt
// @Summary Save receipt
// @Tags receipts
// @Produce json
// @Param Idempotency-Key header string false "Replays the stored response for a repeated key"
// @Success 201 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Failure 503 {object} response.APIResponse
// @Router /api/draft/save [post]
func (h *DraftHandler) Save(c *gin.Context) {
	result, err := h.receiptService.Save(c.Request.Context(), GetSession(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result.Message, result)
}

// Print sends the saved receipt to the thermal printer.
func (h *DraftHandler) Print(c *gin.Context) {
	result, err := h.receiptService.Print(c.Request.Context(), GetSession(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "Receipt sent to printer"
	if !result.Printed {
		message = "Receipt ready. Thermal printer unavailable, use the PDF"
	}
	response.OK(c, message, result)
}

// PDF downloads the saved receipt.
func (h *DraftHandler) PDF(c *gin.Context) {
	pdf, receipt, err := h.receiptService.PDF(c.Request.Context(), GetSession(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, "application/pdf", "receipt-"+receipt.Number+".pdf", pdf)
}
