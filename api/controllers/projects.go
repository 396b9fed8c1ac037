package controllers

import (
	"net/http"
	"strings"

	"github.com/mateoquintana/brandforge-backend/api/responses"
	"github.com/mateoquintana/brandforge-backend/api/validators"
	"github.com/mateoquintana/brandforge-backend/internal/projects"
	"github.com/mateoquintana/brandforge-backend/pkg/enums"
	pkgerrors "github.com/mateoquintana/brandforge-backend/pkg/errors"
	"github.com/mateoquintana/brandforge-backend/pkg/logger"
	"github.com/mateoquintana/brandforge-backend/pkg/pagination"
)

// CreateProjectRequest is the payload accepted by the create-project endpoint.
type CreateProjectRequest struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	Colors      []string `json:"colors,omitempty" validate:"omitempty,max=20,dive,max=32"`
	Fonts       []string `json:"fonts,omitempty" validate:"omitempty,max=20,dive,max=64"`
	LogoURL     *string  `json:"logo_url,omitempty" validate:"omitempty,url,max=2048"`
	Guidelines  *string  `json:"guidelines,omitempty" validate:"omitempty,max=4000"`
	DesignType  string   `json:"design_type" validate:"required,oneof=social_media print thumbnail logo"`
}

// ProjectsCreate handles new project creation for the authenticated caller.
func ProjectsCreate(svc projects.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "projects service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body CreateProjectRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		designType, err := enums.ParseDesignType(body.DesignType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid design type"))
			return
		}

		project, err := svc.Create(r.Context(), userID, projects.CreateProjectInput{
			Name:        validators.SanitizeString(body.Name, 200),
			Description: body.Description,
			Colors:      body.Colors,
			Fonts:       body.Fonts,
			LogoURL:     body.LogoURL,
			Guidelines:  body.Guidelines,
			DesignType:  designType,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, project)
	}
}

// ProjectsList returns the caller's projects, newest first.
func ProjectsList(svc projects.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "projects service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params, err := paginationParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.List(r.Context(), userID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

func paginationParams(r *http.Request) (pagination.Params, error) {
	limit, err := validators.ParseQueryInt(r, "limit", 0, 0, pagination.MaxLimit)
	if err != nil {
		return pagination.Params{}, err
	}
	return pagination.Params{
		Limit:  limit,
		Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
	}, nil
}
