package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/academy-console/internal/application/service"
	"github.com/sangkips/academy-console/internal/domain/entity"
	"github.com/sangkips/academy-console/internal/domain/enum"
	"github.com/sangkips/academy-console/internal/presentation/http/dto/request"
	"github.com/sangkips/academy-console/internal/presentation/http/dto/response"
	"github.com/sangkips/academy-console/pkg/apperror"
)

// DictationHandler generates practice rounds.
type DictationHandler struct {
	dictationService *service.DictationService
}

// NewDictationHandler creates a new dictation handler
func NewDictationHandler(dictationService *service.DictationService) *DictationHandler {
	return &DictationHandler{dictationService: dictationService}
}

// Generate builds a round of sums.
func (h *DictationHandler) Generate(c *gin.Context) {
	var req request.DictationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	dictationType, err := enum.ParseDictationType(req.Type)
	if err != nil {
		response.Error(c, apperror.NewFieldError("type", "Type must be one of SD, SD/DD, D3, D4"))
		return
	}

	dictation, err := h.dictationService.Generate(entity.DictationSettings{
		Type:    dictationType,
		Rows:    req.Rows,
		Sums:    req.Sums,
		Seconds: req.Seconds,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Dictation generated", dictation)
}
