// Package middleware holds the gin middleware shared by every route group.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"trades_marketplace/internal/domain/entities"
	"trades_marketplace/internal/usecase"
	"trades_marketplace/pkg"

	"github.com/gin-gonic/gin"
)

const (
	SessionCookieName = "session_token"
	callerKey         = "caller"
)

// Authenticator resolves a raw session token into a caller.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entities.Caller, error)
}

// SessionAuth resolves the session token, when present, into a caller stored
// on the context. Requests without a token continue as guests; requests with
// a token that no longer resolves are rejected with 401.
func SessionAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := SessionToken(c)
		if token == "" {
			c.Next()
			return
		}

		caller, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			var appErr *pkg.AppError
			if errors.Is(err, usecase.ErrInvalidSession) {
				appErr = pkg.NewDomainErrorSimple("INVALID_SESSION", "Session is invalid or expired", http.StatusUnauthorized)
			} else {
				appErr = pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
			}
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}

		SetCaller(c, caller)
		c.Next()
	}
}

// SessionToken returns the bearer token if one is sent, otherwise the
// session cookie.
func SessionToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := c.Cookie(SessionCookieName); err == nil {
		return strings.TrimSpace(cookie)
	}
	return ""
}

func SetCaller(c *gin.Context, caller *entities.Caller) {
	c.Set(callerKey, caller)
}

// CallerFrom returns the authenticated caller, or nil for guests.
func CallerFrom(c *gin.Context) *entities.Caller {
	v, ok := c.Get(callerKey)
	if !ok {
		return nil
	}
	caller, _ := v.(*entities.Caller)
	return caller
}
