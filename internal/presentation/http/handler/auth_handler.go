package handler

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/sangkips/academy-console/internal/application/service"
	"github.com/sangkips/academy-console/internal/presentation/http/dto/request"
	"github.com/sangkips/academy-console/internal/presentation/http/dto/response"
	"github.com/sangkips/academy-console/internal/presentation/http/middleware"
)

// AuthHandler handles sign-in, sign-out and the session endpoints.
type AuthHandler struct {
	sessionService *service.SessionService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(sessionService *service.SessionService) *AuthHandler {
	return &AuthHandler{sessionService: sessionService}
}

// Login handles operator login
// @Summary Login
// @Description Authenticate against the academy backend and open a console session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Login credentials"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	output, err := h.sessionService.Login(c.Request.Context(), &service.LoginInput{
		ContactNumber: req.ContactNumber,
		Password:      req.Password,
		Role:          req.Role,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	s := sessions.Default(c)
	s.Set(middleware.SessionIDKey, output.SessionID)
	if err := s.Save(); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", gin.H{
		"username":   output.Session.Username,
		"role":       output.Session.Role,
		"expires_at": output.Session.ExpiresAt,
	})
}

// Logout ends the console session and tells the backend.
// @Summary Logout
// @Tags auth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.sessionService.Logout(c.Request.Context(), GetSession(c)); err != nil {
		response.Error(c, err)
		return
	}
	middleware.ClearSessionCookie(c)
	response.OK(c, "Logged out successfully", nil)
}

// Session returns the signed-in operator.
func (h *AuthHandler) Session(c *gin.Context) {
	session := GetSession(c)
	response.OK(c, "Session retrieved", gin.H{
		"username":      session.Username,
		"role":          session.Role,
		"last_activity": session.LastActivity,
		"expires_at":    session.ExpiresAt,
	})
}

// Activity restarts the idle timer for a browser event.
// @Summary Report activity
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.ActivityRequest true "Browser event"
// @Success 200 {object} response.APIResponse
// @Router /api/session/activity [post]
func (h *AuthHandler) Activity(c *gin.Context) {
	var req request.ActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	output, err := h.sessionService.RecordActivity(c.Request.Context(), GetSession(c), req.Event)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Activity recorded", output)
}
