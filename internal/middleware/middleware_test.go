package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careconnect_web/internal/logger"
	"careconnect_web/internal/models"
	"careconnect_web/internal/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func withSession(sess *session.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		session.Set(c, sess)
		c.Next()
	}
}

func signedIn(role models.UserRole) *session.Session {
	return &session.Session{ID: "sess-" + string(role), Token: "t", User: models.User{ID: "u", Role: role}}
}

func guardedRouter(sess *session.Session) *gin.Engine {
	r := gin.New()
	r.Use(withSession(sess))
	r.GET("/my-requests", RequireRoles(models.UserRoleElder), func(c *gin.Context) {
		c.String(http.StatusOK, "elder content")
	})
	r.POST("/care-requests/:id/apply", RequireRoles(models.UserRoleCaregiver), func(c *gin.Context) {
		c.String(http.StatusOK, "applied")
	})
	r.GET("/dashboard", RequireAuth(), func(c *gin.Context) {
		c.String(http.StatusOK, "dashboard")
	})
	r.GET("/login", RedirectIfAuthenticated(), func(c *gin.Context) {
		c.String(http.StatusOK, "login form")
	})
	return r
}

func TestRequireRoles_AnonymousGoesToLoginWithNext(t *testing.T) {
	r := guardedRouter(nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/my-requests?page=2", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login?next=%2Fmy-requests%3Fpage%3D2", w.Header().Get("Location"))
	assert.NotContains(t, w.Body.String(), "elder content")
}

func TestRequireRoles_AnonymousPostHasNoNext(t *testing.T) {
	r := guardedRouter(nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/care-requests/r1/apply", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestRequireRoles_WrongRoleIsSentAway(t *testing.T) {
	r := guardedRouter(signedIn(models.UserRoleCaregiver))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/my-requests", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
	assert.NotContains(t, w.Body.String(), "elder content")
	assert.Contains(t, w.Header().Get("Set-Cookie"), "careconnect_flash=")
}

func TestRequireRoles_Allowed(t *testing.T) {
	r := guardedRouter(signedIn(models.UserRoleElder))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/my-requests", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "elder content", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRedirectIfAuthenticated(t *testing.T) {
	w := httptest.NewRecorder()
	guardedRouter(signedIn(models.UserRoleElder)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))

	w = httptest.NewRecorder()
	guardedRouter(nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(w.Header().Get("X-Request-ID"))
	assert.NoError(t, err)

	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", incoming)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, incoming, w.Header().Get("X-Request-ID"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "<script>")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "<script>", w.Header().Get("X-Request-ID"))
}

func TestLoggingMiddleware_LevelFollowsStatus(t *testing.T) {
	var buf bytes.Buffer
	logger.InitWithWriter("production", &buf)
	t.Cleanup(func() { logger.InitWithWriter("production", io.Discard) })

	r := gin.New()
	r.Use(RequestIDMiddleware(), LoggingMiddleware())
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "fine") })
	r.GET("/broken", func(c *gin.Context) { c.Status(http.StatusBadGateway) })

	// 1. A 200 is logged at info with the request id
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set("X-Request-ID", "5b0f1a3e-2c7d-4f7e-9a51-0d6c2b1e8f40")
	r.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "HTTP Request", entry["msg"])
	assert.Equal(t, "/ok", entry["path"])
	assert.Equal(t, float64(http.StatusOK), entry["status"])
	assert.Equal(t, float64(4), entry["size_bytes"])
	assert.Equal(t, "5b0f1a3e-2c7d-4f7e-9a51-0d6c2b1e8f40", entry["request_id"])

	// 2. A 5xx is logged at error
	buf.Reset()
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/broken", nil))

	entry = nil
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "HTTP Server Error", entry["msg"])
	assert.Equal(t, float64(http.StatusBadGateway), entry["status"])
}

func TestSubmitOnce_RejectsSecondPostInFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	r := gin.New()
	r.Use(withSession(signedIn(models.UserRoleElder)), SubmitOnce())
	r.POST("/care-requests/new", func(c *gin.Context) {
		started <- struct{}{}
		<-release
		c.Redirect(http.StatusSeeOther, "/care-requests/r1")
	})

	var wg sync.WaitGroup
	first := httptest.NewRecorder()
	wg.Add(1)
	go func() {
		defer wg.Done()
		r.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/care-requests/new", nil))
	}()
	<-started

	// 1. Same client, same form, while the first is still running
	second := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/care-requests/new", nil)
	req.Header.Set("Referer", "http://example.com/care-requests/new")
	r.ServeHTTP(second, req)

	assert.Equal(t, http.StatusSeeOther, second.Code)
	assert.Equal(t, "/care-requests/new", second.Header().Get("Location"))
	assert.Contains(t, second.Header().Get("Set-Cookie"), "careconnect_flash=")

	close(release)
	wg.Wait()
	assert.Equal(t, "/care-requests/r1", first.Header().Get("Location"))

	// 2. Once finished the form can be posted again
	go func() { <-started }()
	third := httptest.NewRecorder()
	r.ServeHTTP(third, httptest.NewRequest(http.MethodPost, "/care-requests/new", nil))
	assert.Equal(t, "/care-requests/r1", third.Header().Get("Location"))
}

func TestCompression(t *testing.T) {
	page := "<html><body>" + strings.Repeat("<p>care</p>", 200) + "</body></html>"

	r := gin.New()
	r.Use(Compression())
	r.GET("/page", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 1. HTML with br accepted
	req := httptest.NewRequest(http.MethodGet, "/page", nil)
	req.Header.Set("Accept-Encoding", "gzip, br")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, "br", w.Header().Get("Content-Encoding"))
	assert.Less(t, w.Body.Len(), len(page))
	plain, err := io.ReadAll(brotli.NewReader(w.Body))
	require.NoError(t, err)
	assert.Equal(t, page, string(plain))

	// 2. JSON is left alone
	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Accept-Encoding", "br")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	// 3. Client without br
	req = httptest.NewRequest(http.MethodGet, "/page", nil)
	req.Header.Set("Accept-Encoding", "gzip, br;q=0")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.Equal(t, page, w.Body.String())
}
