package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"careconnect_web/internal/auth"
	"careconnect_web/internal/logger"
	"careconnect_web/internal/session"
	"careconnect_web/internal/validator"
	"careconnect_web/internal/views"
	"careconnect_web/pkg/apperrors"
)

const genericErrorMessage = "Something went wrong. Please try again."

// ============================================================================
// 1. Base handler
// ============================================================================

type BaseHandler struct {
	validator *validator.Validator
	sessions  *session.Manager
	appName   string
	tagline   string
}

func NewBaseHandler(v *validator.Validator, sessions *session.Manager, appName, tagline string) *BaseHandler {
	return &BaseHandler{
		validator: v,
		sessions:  sessions,
		appName:   appName,
		tagline:   tagline,
	}
}

// ============================================================================
// 2. Rendering
// ============================================================================

// Page builds the layout data: session, navigation and pending flashes.
func (h *BaseHandler) Page(c *gin.Context, title string) views.Page {
	sess := session.FromContext(c)
	return views.Page{
		AppName: h.appName,
		Tagline: h.tagline,
		Title:   title,
		Path:    c.Request.URL.Path,
		Session: sess,
		Nav:     views.NavFor(sess, c.Request.URL.Path),
	}
}

func (h *BaseHandler) Render(c *gin.Context, status int, name string, page views.Page) {
	page.Flashes = views.TakeFlashes(c)
	c.HTML(status, name, page)
}

// NotFound renders the not found page, or a JSON error for clients that
// only accept JSON.
func (h *BaseHandler) NotFound(c *gin.Context) {
	if c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON {
		apperrors.HandleError(c, apperrors.ErrNotFound(nil))
		return
	}
	h.Render(c, http.StatusNotFound, "not_found", h.Page(c, "Page not found"))
}

// RenderError shows the error page with the status carried by err.
func (h *BaseHandler) RenderError(c *gin.Context, err error) {
	page := h.Page(c, "Error")
	page.Data = struct{ Message string }{Message: apperrors.UserMessage(err, genericErrorMessage)}
	h.Render(c, statusFor(err), "error", page)
}

// ============================================================================
// 3. Form binding and validation
// ============================================================================

type normalizer interface {
	Normalize()
}

// BindForm binds the posted form into obj and validates it. It returns the
// field errors to show next to the inputs, nil when the form is valid.
func (h *BaseHandler) BindForm(c *gin.Context, obj interface{}) map[string]string {
	ctx := c.Request.Context()

	if err := c.ShouldBindWith(obj, binding.Form); err != nil {
		logger.CtxWarn(ctx, "Failed to bind form", "error", err, "path", c.Request.URL.Path)
		return map[string]string{"form": "Some values could not be read. Please check the form."}
	}

	if n, ok := obj.(normalizer); ok {
		n.Normalize()
	}

	if err := h.validator.Validate(obj); err != nil {
		var vErr *validator.ValidationError
		if errors.As(err, &vErr) {
			logger.CtxDebug(ctx, "Validation failed", "errors", vErr.Errors, "path", c.Request.URL.Path)
			return vErr.Errors
		}
		logger.CtxWithError(ctx, "Internal validator error", err, "path", c.Request.URL.Path)
		return map[string]string{"form": genericErrorMessage}
	}
	return nil
}

// BindQuery is BindForm for query parameters. Invalid values are dropped.
func (h *BaseHandler) BindQuery(c *gin.Context, obj interface{}) {
	if err := c.ShouldBindQuery(obj); err != nil {
		logger.CtxDebug(c.Request.Context(), "Ignoring invalid query", "error", err)
	}
}

// ============================================================================
// 4. API errors
// ============================================================================

// SessionExpired handles an upstream 401: the local session is dropped and
// the browser sent to the login page. It reports whether it responded.
func (h *BaseHandler) SessionExpired(c *gin.Context, err error) bool {
	if !apperrors.HasStatus(err, http.StatusUnauthorized) || !session.FromContext(c).IsAuthenticated() {
		return false
	}

	logger.CtxWarn(c.Request.Context(), "API rejected session token", "path", c.Request.URL.Path)
	if dErr := h.sessions.Destroy(c); dErr != nil {
		logger.CtxWithError(c.Request.Context(), "Failed to destroy session", dErr)
	}

	next := ""
	if c.Request.Method == http.MethodGet {
		next = c.Request.URL.RequestURI()
	}
	views.Error(c, apperrors.ErrSessionExpired.Message)
	c.Redirect(http.StatusSeeOther, auth.LoginURL(next))
	return true
}

// FlashError logs err and queues its user-facing message, or fallback when
// err carries none.
func (h *BaseHandler) FlashError(c *gin.Context, err error, fallback string) {
	ctx := c.Request.Context()

	if appErr, ok := apperrors.AsAppError(err); ok {
		logger.CtxWarn(ctx, "Action failed",
			"error", appErr.Error(),
			"status", appErr.HTTPCode,
			"path", c.Request.URL.Path,
		)
		views.Error(c, apperrors.UserMessage(appErr, fallback))
		return
	}

	logger.CtxWithError(ctx, "Unexpected error", err, "path", c.Request.URL.Path)
	views.Error(c, fallback)
}

// FailTo flashes err and redirects to target. Upstream 401s go to login instead.
func (h *BaseHandler) FailTo(c *gin.Context, err error, fallback, target string) {
	if h.SessionExpired(c, err) {
		return
	}
	h.FlashError(c, err, fallback)
	c.Redirect(http.StatusSeeOther, target)
}

// SucceedTo flashes message and redirects to target.
func (h *BaseHandler) SucceedTo(c *gin.Context, message, target string) {
	views.Success(c, message)
	c.Redirect(http.StatusSeeOther, target)
}

// statusFor maps err to the status of the page that reports it.
func statusFor(err error) int {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		return http.StatusInternalServerError
	}
	if appErr.HTTPCode >= 500 && appErr.Domain == "api" {
		return http.StatusBadGateway
	}
	if appErr.HTTPCode >= 400 {
		return appErr.HTTPCode
	}
	return http.StatusInternalServerError
}
