package handlers

import (
	"careconnect_web/internal/api"
	"careconnect_web/internal/session"
	"careconnect_web/internal/validator"
)

// AppHandlers holds every page handler of the application.
type AppHandlers struct {
	HomeHandler        *HomeHandler
	HealthHandler      *HealthHandler
	AuthHandler        *AuthHandler
	ProfileHandler     *ProfileHandler
	CareRequestHandler *CareRequestHandler
	ApplicationHandler *ApplicationHandler
	EducationHandler   *EducationHandler
}

// NewAppHandlers builds the handlers over one API service and session manager.
func NewAppHandlers(apiService api.Service, sessions *session.Manager, appName, tagline string) *AppHandlers {
	base := NewBaseHandler(validator.New(), sessions, appName, tagline)

	return &AppHandlers{
		HomeHandler:        NewHomeHandler(base),
		HealthHandler:      NewHealthHandler(sessions),
		AuthHandler:        NewAuthHandler(base, apiService),
		ProfileHandler:     NewProfileHandler(base, apiService),
		CareRequestHandler: NewCareRequestHandler(base, apiService),
		ApplicationHandler: NewApplicationHandler(base, apiService),
		EducationHandler:   NewEducationHandler(base, apiService),
	}
}
