package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"careconnect_web/internal/api"
	"careconnect_web/internal/dto"
	"careconnect_web/internal/logger"
	"careconnect_web/internal/middleware"
	"careconnect_web/internal/models"
	"careconnect_web/internal/session"
	"careconnect_web/internal/views"
	"careconnect_web/pkg/apperrors"
)

type CareRequestHandler struct {
	*BaseHandler
	api api.Service
	now func() time.Time
}

func NewCareRequestHandler(base *BaseHandler, apiService api.Service) *CareRequestHandler {
	return &CareRequestHandler{
		BaseHandler: base,
		api:         apiService,
		now:         time.Now,
	}
}

func (h *CareRequestHandler) RegisterRoutes(r *gin.RouterGroup) {
	requests := r.Group("/care-requests")
	requests.Use(middleware.RequireAuth())
	{
		requests.GET("", h.ListCareRequests)
		requests.GET("/new", middleware.RequireRoles(models.UserRoleElder), h.NewCareRequest)
		requests.POST("/new", middleware.RequireRoles(models.UserRoleElder), h.CreateCareRequest)
		requests.GET("/:id", h.GetCareRequest)
	}

	r.GET("/my-requests", middleware.RequireRoles(models.UserRoleElder), h.GetMyCareRequests)
}

type careRequestListPage struct {
	Requests []models.CareRequest
	Filter   models.CareRequestFilter
}

type careRequestNewPage struct {
	MinDate string
}

type careRequestDetailPage struct {
	Request          models.CareRequest
	Applications     []models.CareApplication
	ShowApplications bool
	CanApply         bool
}

func (h *CareRequestHandler) ListCareRequests(c *gin.Context) {
	var filterForm dto.CareRequestFilterForm
	h.BindQuery(c, &filterForm)
	filter := filterForm.ToFilter()

	status := http.StatusOK
	requests, err := h.api.ListCareRequests(c.Request.Context(), filter)
	if err != nil {
		if h.SessionExpired(c, err) {
			return
		}
		h.FlashError(c, err, "Failed to load care requests.")
		status = statusFor(err)
	}

	page := h.Page(c, "Care requests")
	page.Data = careRequestListPage{Requests: requests, Filter: filter}
	h.Render(c, status, "care_requests", page)
}

// --- Elder ---

func (h *CareRequestHandler) NewCareRequest(c *gin.Context) {
	h.renderNew(c, http.StatusOK, dto.CareRequestForm{}, nil)
}

func (h *CareRequestHandler) CreateCareRequest(c *gin.Context) {
	var form dto.CareRequestForm
	if errs := h.BindForm(c, &form); errs != nil {
		h.renderNew(c, http.StatusUnprocessableEntity, form, errs)
		return
	}

	created, err := h.api.CreateCareRequest(c.Request.Context(), form.ToRequest())
	if err != nil {
		if h.SessionExpired(c, err) {
			return
		}
		// The API refuses requests from elders without a profile.
		if apperrors.HasStatus(err, http.StatusForbidden) {
			views.Error(c, "Please complete your profile before creating a care request.")
			c.Redirect(http.StatusSeeOther, "/elder/profile")
			return
		}
		h.FlashError(c, err, "Failed to create the care request.")
		h.renderNew(c, statusFor(err), form, nil)
		return
	}

	target := "/my-requests"
	if created != nil && created.ID != "" {
		target = "/care-requests/" + created.ID
	}
	logger.CtxInfo(c.Request.Context(), "Care request created", "target", target)
	h.SucceedTo(c, "Care request created! Caregivers can now apply.", target)
}

func (h *CareRequestHandler) renderNew(c *gin.Context, status int, form dto.CareRequestForm, errs map[string]string) {
	page := h.Page(c, "Create care request")
	page.Form = form
	page.Errors = errs
	page.Data = careRequestNewPage{MinDate: h.now().AddDate(0, 0, 1).Format(time.DateOnly)}
	h.Render(c, status, "care_request_new", page)
}

func (h *CareRequestHandler) GetMyCareRequests(c *gin.Context) {
	status := http.StatusOK
	requests, err := h.api.ListMyCareRequests(c.Request.Context())
	if err != nil {
		if h.SessionExpired(c, err) {
			return
		}
		h.FlashError(c, err, "Failed to load your care requests.")
		status = statusFor(err)
	}

	page := h.Page(c, "My care requests")
	page.Data = careRequestListPage{Requests: requests}
	h.Render(c, status, "my_requests", page)
}

// --- Common ---

func (h *CareRequestHandler) GetCareRequest(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	req, err := h.api.GetCareRequest(ctx, id)
	if err != nil {
		if apperrors.HasStatus(err, http.StatusNotFound) {
			h.NotFound(c)
			return
		}
		h.FailTo(c, err, "Failed to load the care request.", "/care-requests")
		return
	}

	sess := session.FromContext(c)
	data := careRequestDetailPage{
		Request:  *req,
		CanApply: sess.Role() == models.UserRoleCaregiver && req.IsOpen(),
	}

	if sess.Role() == models.UserRoleElder {
		apps, err := h.api.ListApplications(ctx, id)
		if err != nil {
			// Only the owner may list applications.
			logger.CtxDebug(ctx, "Applications not available", "care_request_id", id, "error", err)
		} else {
			data.Applications = apps
			data.ShowApplications = true
		}
	}

	page := h.Page(c, "Care request")
	page.Data = data
	page.Form = dto.ApplyForm{}
	h.Render(c, http.StatusOK, "care_request_detail", page)
}
