package middleware

import (
	"net/http"
	"net/url"
	"sync"

	"github.com/gin-gonic/gin"

	"careconnect_web/internal/logger"
	"careconnect_web/internal/session"
	"careconnect_web/internal/views"
	"careconnect_web/pkg/apperrors"
)

// SubmitOnce refuses a form POST while the same client's previous POST to
// the same path is still running. Clients are told apart by session id,
// or by IP before sign-in.
func SubmitOnce() gin.HandlerFunc {
	var (
		mu       sync.Mutex
		inflight = make(map[string]struct{})
	)

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		key := submitKey(c)

		mu.Lock()
		if _, busy := inflight[key]; busy {
			mu.Unlock()
			logger.CtxWarn(c.Request.Context(), "duplicate submit", "path", c.Request.URL.Path)
			views.Error(c, apperrors.ErrDuplicateSubmit.Message)
			c.Redirect(http.StatusSeeOther, backURL(c))
			c.Abort()
			return
		}
		inflight[key] = struct{}{}
		mu.Unlock()

		defer func() {
			mu.Lock()
			delete(inflight, key)
			mu.Unlock()
		}()

		c.Next()
	}
}

func submitKey(c *gin.Context) string {
	client := "ip:" + c.ClientIP()
	if sess := session.FromContext(c); sess != nil {
		client = "session:" + sess.ID
	}
	return client + " " + c.Request.URL.Path
}

// backURL is the referring page when it is on this host, else the form path.
func backURL(c *gin.Context) string {
	if ref, err := url.Parse(c.Request.Referer()); err == nil && ref.Host == c.Request.Host && ref.Path != "" {
		return ref.RequestURI()
	}
	return c.Request.URL.Path
}
