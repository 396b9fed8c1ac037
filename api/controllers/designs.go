package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mateoquintana/brandforge-backend/api/responses"
	"github.com/mateoquintana/brandforge-backend/api/validators"
	"github.com/mateoquintana/brandforge-backend/internal/designs"
	pkgerrors "github.com/mateoquintana/brandforge-backend/pkg/errors"
	"github.com/mateoquintana/brandforge-backend/pkg/logger"
)

// CreateDesignRequest is the payload accepted by the create-design endpoint.
// All content fields are optional; a design can start as an empty shell.
type CreateDesignRequest struct {
	ReferenceImage *string `json:"reference_image,omitempty" validate:"omitempty,max=2048"`
	Title          *string `json:"title,omitempty" validate:"omitempty,max=500"`
	Copy           *string `json:"copy,omitempty" validate:"omitempty,max=5000"`
	Description    *string `json:"description,omitempty" validate:"omitempty,max=5000"`
	CallToAction   *string `json:"call_to_action,omitempty" validate:"omitempty,max=500"`
	Footer         *string `json:"footer,omitempty" validate:"omitempty,max=500"`
}

// DesignsCreate handles new design creation under an owned project.
func DesignsCreate(svc designs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "designs service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		projectID, err := pathUUID(r, "projectId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body CreateDesignRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		design, err := svc.Create(r.Context(), userID, projectID, designs.CreateDesignInput{
			ReferenceImage: body.ReferenceImage,
			Title:          body.Title,
			Copy:           body.Copy,
			Description:    body.Description,
			CallToAction:   body.CallToAction,
			Footer:         body.Footer,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, design)
	}
}

// DesignsList returns designs scoped to the project and the caller, newest first.
func DesignsList(svc designs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "designs service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		projectID, err := pathUUID(r, "projectId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params, err := paginationParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.List(r.Context(), userID, projectID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

// DesignsGenerate fans out generation calls for a design and appends the results.
func DesignsGenerate(svc designs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "designs service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		designID, err := pathUUID(r, "designId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body designs.GenerateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithDesignID(ctx, designID.String())
		}

		result, err := svc.GenerateVersions(ctx, userID, designID, body)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func pathUUID(r *http.Request, param string) (uuid.UUID, error) {
	raw := chi.URLParam(r, param)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid identifier").WithDetails(map[string]any{"param": param})
	}
	return id, nil
}
