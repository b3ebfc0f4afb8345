package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/academy-console/internal/domain/entity"
	"github.com/sangkips/academy-console/internal/presentation/http/middleware"
	"github.com/sangkips/academy-console/pkg/apperror"
)

const dateLayout = "2006-01-02"

// GetSession extracts the console session from the Gin context
func GetSession(c *gin.Context) *entity.ConsoleSession {
	return middleware.GetSession(c)
}

// parseDate reads an optional yyyy-mm-dd value.
func parseDate(field, value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, value, time.Local)
	if err != nil {
		return nil, apperror.NewFieldError(field, "Date must be in YYYY-MM-DD format")
	}
	return &t, nil
}
