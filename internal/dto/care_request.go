package dto

import (
	"strings"

	"careconnect_web/internal/models"
)

type CareRequestForm struct {
	Description string `form:"description" validate:"min=20" msg:"Please provide a detailed description (at least 20 characters)"`
	Date        string `form:"date" validate:"required,is-date,future-date"`
	StartTime   string `form:"startTime" validate:"required,is-hhmm"`
	EndTime     string `form:"endTime" validate:"required,is-hhmm"`
	City        string `form:"city" validate:"required,max=100"`
	State       string `form:"state" validate:"required,max=50"`
}

func (f *CareRequestForm) Normalize() {
	for _, s := range []*string{&f.Description, &f.Date, &f.StartTime, &f.EndTime, &f.City, &f.State} {
		*s = strings.TrimSpace(*s)
	}
}

func (f CareRequestForm) ToRequest() models.NewCareRequest {
	return models.NewCareRequest{
		Description: f.Description,
		Date:        f.Date,
		CareDate:    f.Date,
		StartTime:   f.StartTime,
		EndTime:     f.EndTime,
		City:        f.City,
		State:       f.State,
	}
}

type CareRequestFilterForm struct {
	City  string `form:"city" validate:"max=100"`
	State string `form:"state" validate:"max=50"`
}

func (f CareRequestFilterForm) ToFilter() models.CareRequestFilter {
	return models.CareRequestFilter{
		City:  strings.TrimSpace(f.City),
		State: strings.TrimSpace(f.State),
	}
}

type ApplyForm struct {
	Message string `form:"message" validate:"max=1000"`
}

func (f *ApplyForm) Normalize() {
	f.Message = strings.TrimSpace(f.Message)
}

// ApplyRequest is the body of POST /care-requests/:id/apply
type ApplyRequest struct {
	Message string `json:"message,omitempty"`
}
