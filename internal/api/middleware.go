package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kaushik360/counsy/internal"
	"github.com/kaushik360/counsy/internal/response"
	"github.com/kaushik360/counsy/internal/storage"
)

// RequestIDMiddleware ensures every request has a correlation/request ID
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set("request_id", reqID)
		c.Writer.Header().Set("X-Request-ID", reqID)
		c.Next()
	}
}

// SessionRequired loads the stored session user and rejects the request
// when nobody is logged in. The session is the single current-user record
// in storage; there are no tokens.
func SessionRequired(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := app.UserRepo().GetSession(c.Request.Context())
		if err != nil {
			if !errors.Is(err, storage.ErrNotFound) {
				app.Logger().Errorf("session lookup failed: %v", err)
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Unauthorized("Not logged in"))
			return
		}
		c.Set("user", user)
		c.Next()
	}
}

// currentUser returns the session user placed by SessionRequired.
func currentUser(c *gin.Context) *internal.User {
	return c.MustGet("user").(*internal.User)
}
