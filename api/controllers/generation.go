package controllers

import (
	"net/http"

	"github.com/mateoquintana/brandforge-backend/api/responses"
	"github.com/mateoquintana/brandforge-backend/internal/generation"
	pkgerrors "github.com/mateoquintana/brandforge-backend/pkg/errors"
	"github.com/mateoquintana/brandforge-backend/pkg/logger"
)

// ProvidersList reports each known generation backend and whether it is
// configured. Public; no credentials are exposed.
func ProvidersList(svc *generation.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "generation service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"providers": svc.Statuses(),
			"default":   svc.DefaultProvider(),
		})
	}
}
