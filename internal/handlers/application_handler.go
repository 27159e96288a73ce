package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"careconnect_web/internal/api"
	"careconnect_web/internal/dto"
	"careconnect_web/internal/logger"
	"careconnect_web/internal/middleware"
	"careconnect_web/internal/models"
	"careconnect_web/internal/views"
	"careconnect_web/pkg/apperrors"
)

type ApplicationHandler struct {
	*BaseHandler
	api api.Service
}

func NewApplicationHandler(base *BaseHandler, apiService api.Service) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler: base,
		api:         apiService,
	}
}

func (h *ApplicationHandler) RegisterRoutes(r *gin.RouterGroup) {
	requests := r.Group("/care-requests/:id")
	{
		requests.POST("/apply", middleware.RequireRoles(models.UserRoleCaregiver), h.Apply)
		requests.POST("/applications/:appId/accept", middleware.RequireRoles(models.UserRoleElder), h.Accept)
	}

	r.GET("/my-applications", middleware.RequireRoles(models.UserRoleCaregiver), h.GetMyApplications)
}

type applicationListPage struct {
	Applications []models.CareApplication
}

// --- Caregiver ---

func (h *ApplicationHandler) Apply(c *gin.Context) {
	id := c.Param("id")
	detail := "/care-requests/" + id

	var form dto.ApplyForm
	if errs := h.BindForm(c, &form); errs != nil {
		for _, msg := range errs {
			views.Error(c, msg)
		}
		c.Redirect(http.StatusSeeOther, detail)
		return
	}

	_, err := h.api.ApplyToCareRequest(c.Request.Context(), id, form.Message)
	if err != nil {
		h.FailTo(c, err, "Failed to apply. You may have already applied.", detail)
		return
	}

	logger.CtxInfo(c.Request.Context(), "Applied to care request", "care_request_id", id)
	h.SucceedTo(c, "Application sent! The family will review it.", detail)
}

func (h *ApplicationHandler) GetMyApplications(c *gin.Context) {
	status := http.StatusOK
	apps, err := h.api.ListMyApplications(c.Request.Context())
	if err != nil {
		if h.SessionExpired(c, err) {
			return
		}
		h.FlashError(c, err, "Failed to load your applications.")
		status = statusFor(err)
	}

	page := h.Page(c, "My applications")
	page.Data = applicationListPage{Applications: apps}
	h.Render(c, status, "my_applications", page)
}

// --- Elder ---

// Accept assigns the caregiver. It is refused here, without calling the
// accept endpoint, unless the request is OPEN and the application PENDING.
func (h *ApplicationHandler) Accept(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	appID := c.Param("appId")
	detail := "/care-requests/" + id

	req, err := h.api.GetCareRequest(ctx, id)
	if err != nil {
		h.FailTo(c, err, "Failed to load the care request.", detail)
		return
	}
	if !req.IsOpen() {
		h.FailTo(c, apperrors.ErrCareRequestNotOpen, apperrors.ErrCareRequestNotOpen.Message, detail)
		return
	}

	apps, err := h.api.ListApplications(ctx, id)
	if err != nil {
		h.FailTo(c, err, "Failed to load the applications.", detail)
		return
	}
	var target *models.CareApplication
	for i := range apps {
		if apps[i].ID == appID {
			target = &apps[i]
			break
		}
	}
	if target == nil {
		h.FailTo(c, apperrors.ErrNotFound(nil), "Application not found.", detail)
		return
	}
	if !target.CanAccept(*req) {
		h.FailTo(c, apperrors.ErrInvalidOperation("application", "This application can no longer be accepted"), "", detail)
		return
	}

	if err := h.api.AcceptApplication(ctx, id, appID); err != nil {
		h.FailTo(c, err, "Failed to accept the caregiver.", detail)
		return
	}

	logger.CtxInfo(ctx, "Application accepted", "care_request_id", id, "application_id", appID)
	h.SucceedTo(c, "Caregiver accepted! They have been notified.", detail)
}
