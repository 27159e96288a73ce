// Package apitest provides an in-memory api.Service for handler tests.
package apitest

import (
	"context"
	"net/http"
	"sync"

	"careconnect_web/internal/api"
	"careconnect_web/internal/dto"
	"careconnect_web/internal/models"
	"careconnect_web/pkg/apperrors"
)

// Call is one recorded invocation.
type Call struct {
	Method string
	Token  string
	Args   []interface{}
}

// Fake answers with the function fields that are set. An unset field
// fails the call with 501, so a test notices calls it did not expect.
type Fake struct {
	LoginFn                  func(dto.LoginRequest) (*models.AuthResponse, error)
	RegisterFn               func(dto.RegisterRequest) (*models.AuthResponse, error)
	CurrentUserFn            func() (*models.User, error)
	GetElderProfileFn        func() (*models.ElderProfile, error)
	CreateElderProfileFn     func(models.ElderProfile) (*models.ElderProfile, error)
	UpdateElderProfileFn     func(models.ElderProfile) (*models.ElderProfile, error)
	GetCaregiverProfileFn    func() (*models.CaregiverProfile, error)
	CreateCaregiverProfileFn func(models.CaregiverProfile) (*models.CaregiverProfile, error)
	UpdateCaregiverProfileFn func(models.CaregiverProfile) (*models.CaregiverProfile, error)
	ListCareRequestsFn       func(models.CareRequestFilter) ([]models.CareRequest, error)
	GetCareRequestFn         func(id string) (*models.CareRequest, error)
	CreateCareRequestFn      func(models.NewCareRequest) (*models.CareRequest, error)
	ListMyCareRequestsFn     func() ([]models.CareRequest, error)
	ApplyToCareRequestFn     func(id, message string) (*models.CareApplication, error)
	ListApplicationsFn       func(id string) ([]models.CareApplication, error)
	AcceptApplicationFn      func(id, appID string) error
	ListMyApplicationsFn     func() ([]models.CareApplication, error)

	mu    sync.Mutex
	calls []Call
}

var _ api.Service = (*Fake)(nil)

var errNotStubbed = apperrors.NewUpstreamError(http.StatusNotImplemented, "not stubbed")

func (f *Fake) record(ctx context.Context, method string, args ...interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Method: method, Token: api.TokenFrom(ctx), Args: args})
}

// Calls returns the recorded invocations in order.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// Called reports how many times method was invoked.
func (f *Fake) Called(method string) int {
	n := 0
	for _, c := range f.Calls() {
		if c.Method == method {
			n++
		}
	}
	return n
}

func (f *Fake) Login(ctx context.Context, req dto.LoginRequest) (*models.AuthResponse, error) {
	f.record(ctx, "Login", req)
	if f.LoginFn == nil {
		return nil, errNotStubbed
	}
	return f.LoginFn(req)
}

func (f *Fake) Register(ctx context.Context, req dto.RegisterRequest) (*models.AuthResponse, error) {
	f.record(ctx, "Register", req)
	if f.RegisterFn == nil {
		return nil, errNotStubbed
	}
	return f.RegisterFn(req)
}

func (f *Fake) CurrentUser(ctx context.Context) (*models.User, error) {
	f.record(ctx, "CurrentUser")
	if f.CurrentUserFn == nil {
		return nil, errNotStubbed
	}
	return f.CurrentUserFn()
}

func (f *Fake) GetElderProfile(ctx context.Context) (*models.ElderProfile, error) {
	f.record(ctx, "GetElderProfile")
	if f.GetElderProfileFn == nil {
		return nil, errNotStubbed
	}
	return f.GetElderProfileFn()
}

func (f *Fake) CreateElderProfile(ctx context.Context, p models.ElderProfile) (*models.ElderProfile, error) {
	f.record(ctx, "CreateElderProfile", p)
	if f.CreateElderProfileFn == nil {
		return nil, errNotStubbed
	}
	return f.CreateElderProfileFn(p)
}

func (f *Fake) UpdateElderProfile(ctx context.Context, p models.ElderProfile) (*models.ElderProfile, error) {
	f.record(ctx, "UpdateElderProfile", p)
	if f.UpdateElderProfileFn == nil {
		return nil, errNotStubbed
	}
	return f.UpdateElderProfileFn(p)
}

func (f *Fake) GetCaregiverProfile(ctx context.Context) (*models.CaregiverProfile, error) {
	f.record(ctx, "GetCaregiverProfile")
	if f.GetCaregiverProfileFn == nil {
		return nil, errNotStubbed
	}
	return f.GetCaregiverProfileFn()
}

func (f *Fake) CreateCaregiverProfile(ctx context.Context, p models.CaregiverProfile) (*models.CaregiverProfile, error) {
	f.record(ctx, "CreateCaregiverProfile", p)
	if f.CreateCaregiverProfileFn == nil {
		return nil, errNotStubbed
	}
	return f.CreateCaregiverProfileFn(p)
}

func (f *Fake) UpdateCaregiverProfile(ctx context.Context, p models.CaregiverProfile) (*models.CaregiverProfile, error) {
	f.record(ctx, "UpdateCaregiverProfile", p)
	if f.UpdateCaregiverProfileFn == nil {
		return nil, errNotStubbed
	}
	return f.UpdateCaregiverProfileFn(p)
}

func (f *Fake) ListCareRequests(ctx context.Context, filter models.CareRequestFilter) ([]models.CareRequest, error) {
	f.record(ctx, "ListCareRequests", filter)
	if f.ListCareRequestsFn == nil {
		return nil, errNotStubbed
	}
	return f.ListCareRequestsFn(filter)
}

func (f *Fake) GetCareRequest(ctx context.Context, id string) (*models.CareRequest, error) {
	f.record(ctx, "GetCareRequest", id)
	if f.GetCareRequestFn == nil {
		return nil, errNotStubbed
	}
	return f.GetCareRequestFn(id)
}

func (f *Fake) CreateCareRequest(ctx context.Context, req models.NewCareRequest) (*models.CareRequest, error) {
	f.record(ctx, "CreateCareRequest", req)
	if f.CreateCareRequestFn == nil {
		return nil, errNotStubbed
	}
	return f.CreateCareRequestFn(req)
}

func (f *Fake) ListMyCareRequests(ctx context.Context) ([]models.CareRequest, error) {
	f.record(ctx, "ListMyCareRequests")
	if f.ListMyCareRequestsFn == nil {
		return nil, errNotStubbed
	}
	return f.ListMyCareRequestsFn()
}

func (f *Fake) ApplyToCareRequest(ctx context.Context, id, message string) (*models.CareApplication, error) {
	f.record(ctx, "ApplyToCareRequest", id, message)
	if f.ApplyToCareRequestFn == nil {
		return nil, errNotStubbed
	}
	return f.ApplyToCareRequestFn(id, message)
}

func (f *Fake) ListApplications(ctx context.Context, id string) ([]models.CareApplication, error) {
	f.record(ctx, "ListApplications", id)
	if f.ListApplicationsFn == nil {
		return nil, errNotStubbed
	}
	return f.ListApplicationsFn(id)
}

func (f *Fake) AcceptApplication(ctx context.Context, id, appID string) error {
	f.record(ctx, "AcceptApplication", id, appID)
	if f.AcceptApplicationFn == nil {
		return errNotStubbed
	}
	return f.AcceptApplicationFn(id, appID)
}

func (f *Fake) ListMyApplications(ctx context.Context) ([]models.CareApplication, error) {
	f.record(ctx, "ListMyApplications")
	if f.ListMyApplicationsFn == nil {
		return nil, errNotStubbed
	}
	return f.ListMyApplicationsFn()
}
