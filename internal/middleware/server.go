package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"careconnect_web/internal/api"
	"careconnect_web/internal/logger"
	"careconnect_web/internal/session"
)

// RequestIDMiddleware tags the request with an id, reusing a valid incoming
// X-Request-ID. The id is forwarded to the API.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		ctx := logger.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.HTTPLog(c.Request.Context(),
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start),
			c.Writer.Size(),
			"client_ip", c.ClientIP(),
			"user_agent", c.Request.UserAgent(),
		)
	}
}

// SessionMiddleware loads the browser session. A signed-in request carries
// the API token and the user id on its context.
func SessionMiddleware(mgr *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := mgr.Load(c)
		session.Set(c, sess)

		if sess.IsAuthenticated() {
			ctx := api.WithToken(c.Request.Context(), sess.Token)
			ctx = logger.WithUserID(ctx, sess.User.ID)
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}
