package rest

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/simaogato/tradejournal-backend/internal/auth"
	"github.com/simaogato/tradejournal-backend/internal/domain"
)

// TokenAuthenticator resolves a bearer token to the user it was issued for
type TokenAuthenticator interface {
	Authenticate(token string) (uuid.UUID, error)
}

// RejectFunc is notified of every rejected request
type RejectFunc func(ctx context.Context, reason string, client domain.ClientInfo)

// RequireBearer authenticates the Authorization header and stores the user on the request context
func RequireBearer(authenticator TokenAuthenticator, onReject RejectFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		reject := func(reason string) {
			if onReject != nil {
				onReject(c.Request.Context(), reason, clientInfo(c))
			}
			Error(c, http.StatusUnauthorized, reason, nil)
		}

		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			reject("missing bearer token")
			return
		}

		userID, err := authenticator.Authenticate(auth.BearerToken(header))
		if err != nil {
			reject("invalid token")
			return
		}

		c.Request = c.Request.WithContext(auth.WithUserID(c.Request.Context(), userID))
		c.Next()
	}
}

func clientInfo(c *gin.Context) domain.ClientInfo {
	return domain.ClientInfo{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}

// currentUser returns the authenticated user; RequireBearer guarantees one on /api routes
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := auth.UserIDFromContext(c.Request.Context())
	if !ok {
		Error(c, http.StatusUnauthorized, "missing user", nil)
	}
	return userID, ok
}
