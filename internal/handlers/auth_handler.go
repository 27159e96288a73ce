package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"careconnect_web/internal/api"
	"careconnect_web/internal/auth"
	"careconnect_web/internal/dto"
	"careconnect_web/internal/logger"
	"careconnect_web/internal/middleware"
	"careconnect_web/internal/models"
	"careconnect_web/internal/views"
)

type AuthHandler struct {
	*BaseHandler
	api api.Service
}

func NewAuthHandler(base *BaseHandler, apiService api.Service) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		api:         apiService,
	}
}

func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup) {
	guest := r.Group("")
	guest.Use(middleware.RedirectIfAuthenticated())
	{
		guest.GET("/login", h.ShowLogin)
		guest.POST("/login", h.Login)
		guest.GET("/register", h.ShowRegister)
		guest.POST("/register", h.Register)
	}

	r.POST("/logout", h.Logout)
}

type registerPage struct {
	Roles []models.UserRole
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	page := h.Page(c, "Sign in")
	page.Form = dto.LoginForm{Next: auth.SafeNext(c.Query("next"), "")}
	h.Render(c, http.StatusOK, "login", page)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var form dto.LoginForm
	if errs := h.BindForm(c, &form); errs != nil {
		h.renderLogin(c, http.StatusUnprocessableEntity, form, errs)
		return
	}

	resp, err := h.api.Login(c.Request.Context(), form.ToRequest())
	if err != nil {
		h.FlashError(c, err, "Invalid email or password")
		h.renderLogin(c, statusFor(err), form, nil)
		return
	}

	if _, err := h.sessions.Start(c, *resp); err != nil {
		h.FlashError(c, err, "Could not sign you in. Please try again.")
		h.renderLogin(c, http.StatusInternalServerError, form, nil)
		return
	}

	logger.CtxInfo(c.Request.Context(), "User signed in", "user_id", resp.User.ID, "role", resp.User.Role)
	h.SucceedTo(c, "Welcome back, "+resp.User.FirstName+"!", auth.SafeNext(form.Next, "/dashboard"))
}

func (h *AuthHandler) renderLogin(c *gin.Context, status int, form dto.LoginForm, errs map[string]string) {
	form.Password = ""
	page := h.Page(c, "Sign in")
	page.Form = form
	page.Errors = errs
	h.Render(c, status, "login", page)
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	form := dto.RegisterForm{Role: models.UserRole(c.Query("role"))}
	if !form.Role.Valid() {
		form.Role = models.UserRoleElder
	}
	h.renderRegister(c, http.StatusOK, form, nil)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var form dto.RegisterForm
	if errs := h.BindForm(c, &form); errs != nil {
		h.renderRegister(c, http.StatusUnprocessableEntity, form, errs)
		return
	}

	resp, err := h.api.Register(c.Request.Context(), form.ToRequest())
	if err != nil {
		h.FlashError(c, err, "Registration failed. Please try again.")
		h.renderRegister(c, statusFor(err), form, nil)
		return
	}

	if _, err := h.sessions.Start(c, *resp); err != nil {
		h.FlashError(c, err, "Your account was created but we could not sign you in.")
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	logger.CtxInfo(c.Request.Context(), "User registered", "user_id", resp.User.ID, "role", resp.User.Role)
	h.SucceedTo(c, "Account created! Complete your profile to get started.", "/dashboard")
}

func (h *AuthHandler) renderRegister(c *gin.Context, status int, form dto.RegisterForm, errs map[string]string) {
	form.Password = ""
	page := h.Page(c, "Create account")
	page.Form = form
	page.Errors = errs
	page.Data = registerPage{Roles: models.Roles}
	h.Render(c, status, "register", page)
}

// Logout drops the local session. The API keeps no server-side session.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.sessions.Destroy(c); err != nil {
		logger.CtxWithError(c.Request.Context(), "Failed to destroy session", err)
	}
	views.Success(c, "You have been signed out.")
	c.Redirect(http.StatusSeeOther, "/login")
}
