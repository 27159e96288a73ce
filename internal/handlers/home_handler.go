package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"careconnect_web/internal/middleware"
	"careconnect_web/internal/models"
)

type HomeHandler struct {
	*BaseHandler
}

func NewHomeHandler(base *BaseHandler) *HomeHandler {
	return &HomeHandler{BaseHandler: base}
}

func (h *HomeHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/", h.Home)
	r.GET("/dashboard", middleware.RequireAuth(), h.Dashboard)
}

func (h *HomeHandler) Home(c *gin.Context) {
	h.Render(c, http.StatusOK, "home", h.Page(c, ""))
}

type dashboardAction struct {
	Title       string
	Description string
	Href        string
	Primary     bool
}

type dashboardPage struct {
	Intro   string
	Tip     string
	Actions []dashboardAction
}

var dashboards = map[models.UserRole]dashboardPage{
	models.UserRoleElder: {
		Intro: "Manage your care requests and connect with caregivers.",
		Tip:   "Complete your profile to help caregivers understand your needs better. A detailed profile attracts more qualified caregivers!",
		Actions: []dashboardAction{
			{Title: "Create Care Request", Description: "Post a new care request for caregivers to find", Href: "/care-requests/new", Primary: true},
			{Title: "My Requests", Description: "View and manage your care requests", Href: "/my-requests"},
			{Title: "My Profile", Description: "Update your profile information", Href: "/elder/profile"},
		},
	},
	models.UserRoleCaregiver: {
		Intro: "Find care opportunities and grow your caregiving career.",
		Tip:   "Keep your profile updated with your latest skills and availability. Elders are more likely to choose caregivers with complete profiles.",
		Actions: []dashboardAction{
			{Title: "Find Care Jobs", Description: "Browse available care requests in your area", Href: "/care-requests", Primary: true},
			{Title: "My Applications", Description: "Track your care request applications", Href: "/my-applications"},
			{Title: "My Profile", Description: "Update your caregiver profile", Href: "/caregiver/profile"},
		},
	},
}

func (h *HomeHandler) Dashboard(c *gin.Context) {
	page := h.Page(c, "Dashboard")
	page.Data = dashboards[page.Session.Role()]
	h.Render(c, http.StatusOK, "dashboard", page)
}
