package models

type CareApplication struct {
	ID                 string            `json:"id"`
	CareRequestID      string            `json:"careRequestId"`
	CaregiverProfileID string            `json:"caregiverProfileId"`
	CaregiverName      string            `json:"caregiverName"`
	CaregiverBio       string            `json:"caregiverBio,omitempty"`
	YearsOfExperience  int               `json:"yearsOfExperience,omitempty"`
	HourlyRate         Decimal           `json:"hourlyRate,omitempty"`
	Status             ApplicationStatus `json:"status"`
	Message            string            `json:"message,omitempty"`
	AppliedAt          string            `json:"appliedAt"`
}

func (a CareApplication) IsPending() bool {
	return a.Status == ApplicationStatusPending
}

// CanAccept reports whether the accept action is offered for a on req.
func (a CareApplication) CanAccept(req CareRequest) bool {
	return req.IsOpen() && a.IsPending()
}
