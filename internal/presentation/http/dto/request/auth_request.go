package request

// LoginRequest represents a login request
type LoginRequest struct {
	ContactNumber string `json:"contact_number"`
	Password      string `json:"password"`
	Role          string `json:"role" binding:"omitempty,oneof=admin staff"`
}

// ActivityRequest reports a browser event that counts as activity.
type ActivityRequest struct {
	Event string `json:"event" binding:"required"`
}
