package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"careconnect_web/internal/api"
	"careconnect_web/internal/catalog"
	"careconnect_web/internal/logger"
	"careconnect_web/internal/middleware"
	"careconnect_web/internal/models"
)

type EducationHandler struct {
	*BaseHandler
	api api.Service
}

func NewEducationHandler(base *BaseHandler, apiService api.Service) *EducationHandler {
	return &EducationHandler{
		BaseHandler: base,
		api:         apiService,
	}
}

func (h *EducationHandler) RegisterRoutes(r *gin.RouterGroup) {
	education := r.Group("/education")
	education.Use(middleware.RequireRoles(models.UserRoleCaregiver))
	{
		education.GET("", h.ListCourses)
		education.GET("/:slug", h.GetCourse)
	}
}

type educationPage struct {
	Courses     []catalog.Course
	Recommended []catalog.Course
}

func (h *EducationHandler) ListCourses(c *gin.Context) {
	data := educationPage{Courses: catalog.Courses()}

	// Recommendations are a bonus, the catalog renders without them.
	if profile, err := h.api.GetCaregiverProfile(c.Request.Context()); err == nil {
		data.Recommended = catalog.CoursesForSkills(profile.Skills)
	} else {
		logger.CtxDebug(c.Request.Context(), "No recommendations", "error", err)
	}

	page := h.Page(c, "Education")
	page.Data = data
	h.Render(c, http.StatusOK, "education", page)
}

func (h *EducationHandler) GetCourse(c *gin.Context) {
	course, ok := catalog.CourseBySlug(c.Param("slug"))
	if !ok {
		h.NotFound(c)
		return
	}

	page := h.Page(c, course.Title)
	page.Data = course
	h.Render(c, http.StatusOK, "course", page)
}
