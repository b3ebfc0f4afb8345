package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoUserClaim is returned when a token carries no user.id claim.
var ErrNoUserClaim = errors.New("token has no user id")

// BackendClaims represents the claims the academy backend puts in its tokens.
// Tokens are issued and verified by the backend; the console only reads them.
type BackendClaims struct {
	User struct {
		ID string `json:"id"`
	} `json:"user"`
	jwt.RegisteredClaims
}

var parser = jwt.NewParser()

// ParseBackendToken decodes a backend token without verifying its signature.
func ParseBackendToken(tokenString string) (*BackendClaims, error) {
	claims := &BackendClaims{}
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("parse backend token: %w", err)
	}
	return claims, nil
}

// ExtractUserID returns the user.id claim of a registration token.
func ExtractUserID(tokenString string) (string, error) {
	claims, err := ParseBackendToken(tokenString)
	if err != nil {
		return "", err
	}
	if claims.User.ID == "" {
		return "", ErrNoUserClaim
	}
	return claims.User.ID, nil
}

// TokenExpiry returns the exp claim, or the zero time when the token has none.
func TokenExpiry(tokenString string) (time.Time, error) {
	claims, err := ParseBackendToken(tokenString)
	if err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, nil
	}
	return claims.ExpiresAt.Time, nil
}
