package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"careconnect_web/internal/api"
	"careconnect_web/internal/catalog"
	"careconnect_web/internal/dto"
	"careconnect_web/internal/logger"
	"careconnect_web/internal/middleware"
	"careconnect_web/internal/models"
	"careconnect_web/internal/session"
	"careconnect_web/pkg/apperrors"
)

type ProfileHandler struct {
	*BaseHandler
	api api.Service
}

func NewProfileHandler(base *BaseHandler, apiService api.Service) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler: base,
		api:         apiService,
	}
}

func (h *ProfileHandler) RegisterRoutes(r *gin.RouterGroup) {
	elder := r.Group("/elder")
	elder.Use(middleware.RequireRoles(models.UserRoleElder))
	{
		elder.GET("/profile", h.ShowElderProfile)
		elder.POST("/profile", h.SaveElderProfile)
	}

	caregiver := r.Group("/caregiver")
	caregiver.Use(middleware.RequireRoles(models.UserRoleCaregiver))
	{
		caregiver.GET("/profile", h.ShowCaregiverProfile)
		caregiver.POST("/profile", h.SaveCaregiverProfile)
	}
}

type profilePage struct {
	IsNew  bool
	Skills []string
}

// --- Elder ---

func (h *ProfileHandler) ShowElderProfile(c *gin.Context) {
	profile, err := h.api.GetElderProfile(c.Request.Context())
	if err != nil {
		if h.SessionExpired(c, err) {
			return
		}
		if !apperrors.HasStatus(err, http.StatusNotFound) {
			logger.CtxWithError(c.Request.Context(), "Failed to load elder profile", err)
			h.RenderError(c, err)
			return
		}

		// No profile yet: start from the account names.
		user := session.FromContext(c).User
		form := dto.ElderProfileForm{FirstName: user.FirstName, LastName: user.LastName}
		h.renderElder(c, http.StatusOK, form, nil)
		return
	}

	h.renderElder(c, http.StatusOK, dto.ElderProfileFormFrom(*profile), nil)
}

func (h *ProfileHandler) SaveElderProfile(c *gin.Context) {
	var form dto.ElderProfileForm
	if errs := h.BindForm(c, &form); errs != nil {
		h.renderElder(c, http.StatusUnprocessableEntity, form, errs)
		return
	}

	var err error
	if form.ID == "" {
		_, err = h.api.CreateElderProfile(c.Request.Context(), form.ToProfile())
	} else {
		_, err = h.api.UpdateElderProfile(c.Request.Context(), form.ToProfile())
	}
	if err != nil {
		if h.SessionExpired(c, err) {
			return
		}
		h.FlashError(c, err, "Failed to save your profile.")
		h.renderElder(c, statusFor(err), form, nil)
		return
	}

	h.SucceedTo(c, "Profile saved.", "/elder/profile")
}

func (h *ProfileHandler) renderElder(c *gin.Context, status int, form dto.ElderProfileForm, errs map[string]string) {
	page := h.Page(c, "My profile")
	page.Form = form
	page.Errors = errs
	page.Data = profilePage{IsNew: form.ID == ""}
	h.Render(c, status, "elder_profile", page)
}

// --- Caregiver ---

func (h *ProfileHandler) ShowCaregiverProfile(c *gin.Context) {
	profile, err := h.api.GetCaregiverProfile(c.Request.Context())
	if err != nil {
		if h.SessionExpired(c, err) {
			return
		}
		if !apperrors.HasStatus(err, http.StatusNotFound) {
			logger.CtxWithError(c.Request.Context(), "Failed to load caregiver profile", err)
			h.RenderError(c, err)
			return
		}

		user := session.FromContext(c).User
		form := dto.CaregiverProfileForm{
			FirstName:     user.FirstName,
			LastName:      user.LastName,
			AvailableFrom: "08:00",
			AvailableTo:   "18:00",
		}
		h.renderCaregiver(c, http.StatusOK, form, nil)
		return
	}

	h.renderCaregiver(c, http.StatusOK, dto.CaregiverProfileFormFrom(*profile), nil)
}

func (h *ProfileHandler) SaveCaregiverProfile(c *gin.Context) {
	var form dto.CaregiverProfileForm
	if errs := h.BindForm(c, &form); errs != nil {
		h.renderCaregiver(c, http.StatusUnprocessableEntity, form, errs)
		return
	}

	var err error
	if form.ID == "" {
		_, err = h.api.CreateCaregiverProfile(c.Request.Context(), form.ToProfile())
	} else {
		_, err = h.api.UpdateCaregiverProfile(c.Request.Context(), form.ToProfile())
	}
	if err != nil {
		if h.SessionExpired(c, err) {
			return
		}
		h.FlashError(c, err, "Failed to save your profile.")
		h.renderCaregiver(c, statusFor(err), form, nil)
		return
	}

	h.SucceedTo(c, "Profile saved.", "/caregiver/profile")
}

func (h *ProfileHandler) renderCaregiver(c *gin.Context, status int, form dto.CaregiverProfileForm, errs map[string]string) {
	page := h.Page(c, "My caregiver profile")
	page.Form = form
	page.Errors = errs
	page.Data = profilePage{IsNew: form.ID == "", Skills: catalog.Skills}
	h.Render(c, status, "caregiver_profile", page)
}
