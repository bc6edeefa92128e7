package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"foodgo/internal/core/domain/model/kernel"
)

const identityKey = "identity"

// Identity is the authenticated caller as extracted from the JWT. Token
// issuance lives outside this service; we only verify and consume claims.
type Identity struct {
	UserID kernel.UUID
	Role   kernel.Role
}

type jwtClaims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// ParseToken verifies an HMAC-signed JWT and extracts the caller's Identity
// from its userId and role claims. Shared by the REST middleware and the
// websocket transport.
func ParseToken(secret []byte, tokenString string) (Identity, error) {
	claims := &jwtClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, isHMAC := t.Method.(*jwt.SigningMethodHMAC); !isHMAC {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return secret, nil
	})
	if err != nil {
		return Identity{}, err
	}
	if !token.Valid {
		return Identity{}, jwt.ErrTokenUnverifiable
	}

	userID, err := kernel.UUIDFromString(claims.UserID)
	if err != nil {
		return Identity{}, err
	}

	role := kernel.Role(claims.Role)
	if err = role.Validate(); err != nil {
		return Identity{}, err
	}

	return Identity{UserID: userID, Role: role}, nil
}

// AuthMiddleware verifies the Bearer token on every request and stores the
// caller's Identity in the echo context.
func AuthMiddleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tokenString == "" {
				return c.JSON(http.StatusUnauthorized, errorResponse{
					Code:    http.StatusUnauthorized,
					Message: "missing bearer token",
				})
			}

			identity, err := ParseToken(secret, tokenString)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorResponse{
					Code:    http.StatusUnauthorized,
					Message: "invalid token",
				})
			}

			c.Set(identityKey, identity)
			return next(c)
		}
	}
}

// identityFrom returns the Identity stored by AuthMiddleware.
func identityFrom(c echo.Context) (Identity, bool) {
	identity, ok := c.Get(identityKey).(Identity)
	return identity, ok
}
