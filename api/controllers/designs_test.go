package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mateoquintana/brandforge-backend/api/middleware"
	"github.com/mateoquintana/brandforge-backend/internal/designs"
	pkgerrors "github.com/mateoquintana/brandforge-backend/pkg/errors"
	"github.com/mateoquintana/brandforge-backend/pkg/pagination"
)

type stubDesignsService struct {
	createResp   *designs.DesignDTO
	createErr    error
	listResp     *designs.DesignPage
	listErr      error
	generateResp *designs.GenerateResult
	generateErr  error
	generateReq  designs.GenerateRequest
}

func (s *stubDesignsService) Create(_ context.Context, _, _ uuid.UUID, _ designs.CreateDesignInput) (*designs.DesignDTO, error) {
	return s.createResp, s.createErr
}

func (s *stubDesignsService) List(_ context.Context, _, _ uuid.UUID, _ pagination.Params) (*designs.DesignPage, error) {
	return s.listResp, s.listErr
}

func (s *stubDesignsService) GenerateVersions(_ context.Context, _, _ uuid.UUID, req designs.GenerateRequest) (*designs.GenerateResult, error) {
	s.generateReq = req
	return s.generateResp, s.generateErr
}

func designRequest(method, target string, body []byte, userID uuid.UUID, params map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	ctx := middleware.WithUserID(req.Context(), userID.String())

	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)

	return req.WithContext(ctx)
}

func TestDesignsCreateSuccess(t *testing.T) {
	svc := &stubDesignsService{createResp: &designs.DesignDTO{ID: uuid.New(), IsActive: true}}
	handler := DesignsCreate(svc, nil)

	projectID := uuid.New()
	req := designRequest(http.MethodPost, "/projects/"+projectID.String()+"/designs",
		[]byte(`{"title": "50% Off"}`), uuid.New(), map[string]string{"projectId": projectID.String()})
	respRec := httptest.NewRecorder()

	handler.ServeHTTP(respRec, req)

	if respRec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", respRec.Code, respRec.Body.String())
	}
}

func TestDesignsCreateBadProjectID(t *testing.T) {
	handler := DesignsCreate(&stubDesignsService{}, nil)

	req := designRequest(http.MethodPost, "/projects/nope/designs",
		[]byte(`{}`), uuid.New(), map[string]string{"projectId": "nope"})
	respRec := httptest.NewRecorder()

	handler.ServeHTTP(respRec, req)

	if respRec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", respRec.Code)
	}
}

func TestDesignsCreateForbiddenProject(t *testing.T) {
	svc := &stubDesignsService{createErr: pkgerrors.New(pkgerrors.CodeForbidden, "project belongs to another user")}
	handler := DesignsCreate(svc, nil)

	projectID := uuid.New()
	req := designRequest(http.MethodPost, "/projects/"+projectID.String()+"/designs",
		[]byte(`{}`), uuid.New(), map[string]string{"projectId": projectID.String()})
	respRec := httptest.NewRecorder()

	handler.ServeHTTP(respRec, req)

	if respRec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", respRec.Code)
	}
}

func TestDesignsListSuccess(t *testing.T) {
	svc := &stubDesignsService{listResp: &designs.DesignPage{Items: []designs.DesignDTO{}}}
	handler := DesignsList(svc, nil)

	projectID := uuid.New()
	req := designRequest(http.MethodGet, "/projects/"+projectID.String()+"/designs",
		nil, uuid.New(), map[string]string{"projectId": projectID.String()})
	respRec := httptest.NewRecorder()

	handler.ServeHTTP(respRec, req)

	if respRec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", respRec.Code)
	}
}

func TestDesignsGenerateSuccess(t *testing.T) {
	designID := uuid.New()
	svc := &stubDesignsService{generateResp: &designs.GenerateResult{
		DesignID:      designID,
		Provider:      "qwen",
		NewVersions:   []string{"https://img.example.com/a.png", "https://img.example.com/b.png"},
		TotalVersions: 2,
	}}
	handler := DesignsGenerate(svc, nil)

	req := designRequest(http.MethodPost, "/designs/"+designID.String()+"/generate",
		[]byte(`{"provider": "qwen", "count": 2}`), uuid.New(), map[string]string{"designId": designID.String()})
	respRec := httptest.NewRecorder()

	handler.ServeHTTP(respRec, req)

	if respRec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", respRec.Code, respRec.Body.String())
	}
	if svc.generateReq.Count != 2 || svc.generateReq.Provider != "qwen" {
		t.Fatalf("request not forwarded: %+v", svc.generateReq)
	}

	var envelope struct {
		Data designs.GenerateResult `json:"data"`
	}
	if err := json.NewDecoder(respRec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.NewVersions) != 2 || envelope.Data.TotalVersions != 2 {
		t.Fatalf("unexpected result %+v", envelope.Data)
	}
}

func TestDesignsGenerateNotFound(t *testing.T) {
	svc := &stubDesignsService{generateErr: pkgerrors.New(pkgerrors.CodeNotFound, "design not found")}
	handler := DesignsGenerate(svc, nil)

	designID := uuid.New()
	req := designRequest(http.MethodPost, "/designs/"+designID.String()+"/generate",
		[]byte(`{"count": 1}`), uuid.New(), map[string]string{"designId": designID.String()})
	respRec := httptest.NewRecorder()

	handler.ServeHTTP(respRec, req)

	if respRec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", respRec.Code)
	}
}
