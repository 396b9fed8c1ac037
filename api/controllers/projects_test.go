package controllers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/mateoquintana/brandforge-backend/api/middleware"
	"github.com/mateoquintana/brandforge-backend/internal/projects"
	"github.com/mateoquintana/brandforge-backend/pkg/db/models"
	"github.com/mateoquintana/brandforge-backend/pkg/pagination"
)

type stubProjectsService struct {
	createResp *projects.ProjectDTO
	createErr  error
	listResp   *projects.ProjectPage
	listErr    error
	lastInput  projects.CreateProjectInput
}

func (s *stubProjectsService) Create(_ context.Context, _ uuid.UUID, input projects.CreateProjectInput) (*projects.ProjectDTO, error) {
	s.lastInput = input
	return s.createResp, s.createErr
}

func (s *stubProjectsService) List(_ context.Context, _ uuid.UUID, _ pagination.Params) (*projects.ProjectPage, error) {
	return s.listResp, s.listErr
}

func (s *stubProjectsService) GetOwned(_ context.Context, _, _ uuid.UUID) (*models.Project, error) {
	return nil, nil
}

func authedRequest(method, target string, body []byte, userID uuid.UUID) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	return req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
}

func TestProjectsCreateSuccess(t *testing.T) {
	svc := &stubProjectsService{createResp: &projects.ProjectDTO{ID: uuid.New(), Name: "Sale Banner"}}
	handler := ProjectsCreate(svc, nil)

	body := []byte(`{"name": "Sale Banner", "design_type": "social_media", "colors": ["#112233"]}`)
	respRec := httptest.NewRecorder()

	handler.ServeHTTP(respRec, authedRequest(http.MethodPost, "/projects", body, uuid.New()))

	if respRec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", respRec.Code, respRec.Body.String())
	}
	if svc.lastInput.Name != "Sale Banner" {
		t.Fatalf("input not forwarded: %+v", svc.lastInput)
	}
}

func TestProjectsCreateRejectsBadDesignType(t *testing.T) {
	handler := ProjectsCreate(&stubProjectsService{}, nil)

	body := []byte(`{"name": "Sale Banner", "design_type": "billboard"}`)
	respRec := httptest.NewRecorder()

	handler.ServeHTTP(respRec, authedRequest(http.MethodPost, "/projects", body, uuid.New()))

	if respRec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", respRec.Code)
	}
}

func TestProjectsCreateRequiresAuth(t *testing.T) {
	handler := ProjectsCreate(&stubProjectsService{}, nil)

	body := []byte(`{"name": "Sale Banner", "design_type": "logo"}`)
	req := httptest.NewRequest(http.MethodPost, "/projects", bytes.NewReader(body))
	respRec := httptest.NewRecorder()

	handler.ServeHTTP(respRec, req)

	if respRec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", respRec.Code)
	}
}

func TestProjectsListSuccess(t *testing.T) {
	svc := &stubProjectsService{listResp: &projects.ProjectPage{Items: []projects.ProjectDTO{}}}
	handler := ProjectsList(svc, nil)

	respRec := httptest.NewRecorder()
	handler.ServeHTTP(respRec, authedRequest(http.MethodGet, "/projects?limit=10", nil, uuid.New()))

	if respRec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", respRec.Code)
	}
}

func TestProjectsListRejectsBadLimit(t *testing.T) {
	handler := ProjectsList(&stubProjectsService{}, nil)

	respRec := httptest.NewRecorder()
	handler.ServeHTTP(respRec, authedRequest(http.MethodGet, "/projects?limit=abc", nil, uuid.New()))

	if respRec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", respRec.Code)
	}
}
