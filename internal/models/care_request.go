package models

import "encoding/json"

type CareRequest struct {
	ID                  string            `json:"id"`
	ElderID             string            `json:"elderId"`
	ElderName           string            `json:"elderName,omitempty"`
	Description         string            `json:"description"`
	Date                string            `json:"date"`
	StartTime           string            `json:"startTime"`
	EndTime             string            `json:"endTime"`
	City                string            `json:"city"`
	State               string            `json:"state"`
	Status              CareRequestStatus `json:"status"`
	AssignedCaregiverID string            `json:"assignedCaregiverId,omitempty"`
	CreatedAt           string            `json:"createdAt,omitempty"`
}

// UnmarshalJSON accepts "careDate" and "elderProfileId" as aliases.
func (r *CareRequest) UnmarshalJSON(data []byte) error {
	type alias CareRequest
	var raw struct {
		alias
		CareDate       string `json:"careDate"`
		ElderProfileID string `json:"elderProfileId"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = CareRequest(raw.alias)
	if r.Date == "" {
		r.Date = raw.CareDate
	}
	if r.ElderID == "" {
		r.ElderID = raw.ElderProfileID
	}
	return nil
}

func (r CareRequest) IsOpen() bool {
	return r.Status == CareRequestStatusOpen
}

// CareRequestFilter narrows GET /care-requests. Empty fields are not sent.
type CareRequestFilter struct {
	City  string
	State string
}

func (f CareRequestFilter) IsEmpty() bool {
	return f.City == "" && f.State == ""
}

// NewCareRequest is the body of POST /care-requests.
type NewCareRequest struct {
	Description string `json:"description"`
	Date        string `json:"date"`
	CareDate    string `json:"careDate"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	City        string `json:"city"`
	State       string `json:"state"`
}
