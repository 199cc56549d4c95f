package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/profilehub/profilehub/internal/common"
	"github.com/profilehub/profilehub/internal/logging"
	"github.com/profilehub/profilehub/internal/server/models"
	"github.com/profilehub/profilehub/internal/server/services"
)

const (
	authUserKey   = "auth_user"
	requestIDKey  = "request_id"
	requestIDName = "X-Request-Id"
)

// RequestID tags every request with a unique id, honoring one supplied by
// the caller.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDName)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDName, id)
		c.Next()
	}
}

// RequestLogger logs one line per request after it completes.
func RequestLogger(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
			"request_id", c.GetString(requestIDKey),
		)
	}
}

// RequireAuth validates the bearer access token and resolves it to a live
// user, which handlers retrieve with GetAuthUser. Requests without a valid
// token are rejected with 401.
func RequireAuth(sessions *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(common.AuthorizationHeaderName)
		if !strings.HasPrefix(header, common.BearerPrefix) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, common.BearerPrefix))
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		user, err := sessions.ValidateAccessToken(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		c.Set(authUserKey, user)
		c.Next()
	}
}

// GetAuthUser returns the user resolved by RequireAuth, or nil on an
// unauthenticated request.
func GetAuthUser(c *gin.Context) *models.User {
	if value, ok := c.Get(authUserKey); ok {
		if user, ok := value.(*models.User); ok {
			return user
		}
	}
	return nil
}
