package controllers

import (
	"io"
	"net/http"
	"strings"

	"github.com/mateoquintana/brandforge-backend/api/responses"
	"github.com/mateoquintana/brandforge-backend/api/validators"
	"github.com/mateoquintana/brandforge-backend/internal/training"
	"github.com/mateoquintana/brandforge-backend/pkg/enums"
	pkgerrors "github.com/mateoquintana/brandforge-backend/pkg/errors"
	"github.com/mateoquintana/brandforge-backend/pkg/logger"
)

const multipartMemoryLimit = 8 << 20

// TrainingUpload accepts a multipart form with an image file plus metadata
// fields. Role gating happens in middleware before this handler runs.
func TrainingUpload(svc training.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "training service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}

		file, header, err := r.FormFile("image")
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "image file is required"))
			return
		}
		defer file.Close()

		raw, err := io.ReadAll(file)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read image file"))
			return
		}

		designType, err := enums.ParseDesignType(r.FormValue("design_type"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "invalid design type"))
			return
		}

		record, err := svc.Upload(r.Context(), userID, training.UploadInput{
			Filename:    header.Filename,
			Image:       raw,
			DesignType:  designType,
			Tags:        parseTags(r.FormValue("tags")),
			Description: validators.SanitizeString(r.FormValue("description"), 2000),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, record)
	}
}

// TrainingList returns uploaded training-data records, newest first.
func TrainingList(svc training.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "training service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params, err := paginationParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

func parseTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
