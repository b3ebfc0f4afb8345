package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/academy-console/internal/application/service"
	"github.com/sangkips/academy-console/internal/presentation/http/dto/response"
)

// AdminHandler runs maintenance actions.
type AdminHandler struct {
	adminService *service.AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// PurgeStudents deletes every student record.
// @Summary Delete all students
// @Tags admin
// @Produce json
// @Success 200 {object} response.APIResponse
// @Failure 403 {object} response.APIResponse
// @Router /api/admin/students [delete]
func (h *AdminHandler) PurgeStudents(c *gin.Context) {
	if err := h.adminService.PurgeStudents(c.Request.Context(), GetSession(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Student data deleted", nil)
}

// PurgeReceipts deletes every receipt record.
// @Summary Delete all receipts
// @Tags admin
// @Produce json
// @Success 200 {object} response.APIResponse
// @Failure 403 {object} response.APIResponse
// @Router /api/admin/receipts [delete]
func (h *AdminHandler) PurgeReceipts(c *gin.Context) {
	if err := h.adminService.PurgeReceipts(c.Request.Context(), GetSession(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt data deleted", nil)
}
