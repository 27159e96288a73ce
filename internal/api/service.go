package api

import (
	"context"
	"net/http"
	"net/url"

	"careconnect_web/internal/dto"
	"careconnect_web/internal/models"
)

// Service is every remote action the pages use. *Client implements it.
type Service interface {
	Login(ctx context.Context, req dto.LoginRequest) (*models.AuthResponse, error)
	Register(ctx context.Context, req dto.RegisterRequest) (*models.AuthResponse, error)
	CurrentUser(ctx context.Context) (*models.User, error)

	GetElderProfile(ctx context.Context) (*models.ElderProfile, error)
	CreateElderProfile(ctx context.Context, p models.ElderProfile) (*models.ElderProfile, error)
	UpdateElderProfile(ctx context.Context, p models.ElderProfile) (*models.ElderProfile, error)

	GetCaregiverProfile(ctx context.Context) (*models.CaregiverProfile, error)
	CreateCaregiverProfile(ctx context.Context, p models.CaregiverProfile) (*models.CaregiverProfile, error)
	UpdateCaregiverProfile(ctx context.Context, p models.CaregiverProfile) (*models.CaregiverProfile, error)

	ListCareRequests(ctx context.Context, filter models.CareRequestFilter) ([]models.CareRequest, error)
	GetCareRequest(ctx context.Context, id string) (*models.CareRequest, error)
	CreateCareRequest(ctx context.Context, req models.NewCareRequest) (*models.CareRequest, error)
	ListMyCareRequests(ctx context.Context) ([]models.CareRequest, error)

	ApplyToCareRequest(ctx context.Context, careRequestID, message string) (*models.CareApplication, error)
	ListApplications(ctx context.Context, careRequestID string) ([]models.CareApplication, error)
	AcceptApplication(ctx context.Context, careRequestID, applicationID string) error
	ListMyApplications(ctx context.Context) ([]models.CareApplication, error)
}

var _ Service = (*Client)(nil)

// ============================================
// Auth
// ============================================

func (c *Client) Login(ctx context.Context, req dto.LoginRequest) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, req dto.RegisterRequest) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ============================================
// Profiles
// ============================================

func (c *Client) GetElderProfile(ctx context.Context) (*models.ElderProfile, error) {
	var out models.ElderProfile
	if err := c.do(ctx, http.MethodGet, "/elder/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateElderProfile(ctx context.Context, p models.ElderProfile) (*models.ElderProfile, error) {
	var out models.ElderProfile
	if err := c.do(ctx, http.MethodPost, "/elder/profile", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateElderProfile(ctx context.Context, p models.ElderProfile) (*models.ElderProfile, error) {
	var out models.ElderProfile
	if err := c.do(ctx, http.MethodPut, "/elder/profile", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetCaregiverProfile(ctx context.Context) (*models.CaregiverProfile, error) {
	var out models.CaregiverProfile
	if err := c.do(ctx, http.MethodGet, "/caregiver/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateCaregiverProfile(ctx context.Context, p models.CaregiverProfile) (*models.CaregiverProfile, error) {
	var out models.CaregiverProfile
	if err := c.do(ctx, http.MethodPost, "/caregiver/profile", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCaregiverProfile(ctx context.Context, p models.CaregiverProfile) (*models.CaregiverProfile, error) {
	var out models.CaregiverProfile
	if err := c.do(ctx, http.MethodPut, "/caregiver/profile", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ============================================
// Care requests
// ============================================

func (c *Client) ListCareRequests(ctx context.Context, filter models.CareRequestFilter) ([]models.CareRequest, error) {
	endpoint := "/care-requests"

	params := url.Values{}
	if filter.City != "" {
		params.Set("city", filter.City)
	}
	if filter.State != "" {
		params.Set("state", filter.State)
	}
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var out []models.CareRequest
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetCareRequest(ctx context.Context, id string) (*models.CareRequest, error) {
	var out models.CareRequest
	if err := c.do(ctx, http.MethodGet, path("/care-requests/%s", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateCareRequest(ctx context.Context, req models.NewCareRequest) (*models.CareRequest, error) {
	var out models.CareRequest
	if err := c.do(ctx, http.MethodPost, "/care-requests", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListMyCareRequests(ctx context.Context) ([]models.CareRequest, error) {
	var out []models.CareRequest
	if err := c.do(ctx, http.MethodGet, "/elder/care-requests", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ============================================
// Applications
// ============================================

func (c *Client) ApplyToCareRequest(ctx context.Context, careRequestID, message string) (*models.CareApplication, error) {
	var out models.CareApplication
	body := dto.ApplyRequest{Message: message}
	if err := c.do(ctx, http.MethodPost, path("/care-requests/%s/apply", careRequestID), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListApplications(ctx context.Context, careRequestID string) ([]models.CareApplication, error) {
	var out []models.CareApplication
	if err := c.do(ctx, http.MethodGet, path("/care-requests/%s/applications", careRequestID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AcceptApplication(ctx context.Context, careRequestID, applicationID string) error {
	endpoint := path("/care-requests/%s/applications/%s/accept", careRequestID, applicationID)
	return c.do(ctx, http.MethodPost, endpoint, nil, nil)
}

func (c *Client) ListMyApplications(ctx context.Context) ([]models.CareApplication, error) {
	var out []models.CareApplication
	if err := c.do(ctx, http.MethodGet, "/caregiver/applications", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
