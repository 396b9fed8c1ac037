package controllers

import (
	"net/http"

	"github.com/mateoquintana/brandforge-backend/api/responses"
	"github.com/mateoquintana/brandforge-backend/internal/generation"
	"github.com/mateoquintana/brandforge-backend/pkg/config"
)

// HealthDescriptor is the static liveness payload.
type HealthDescriptor struct {
	Status    string                      `json:"status"`
	Env       string                      `json:"env"`
	Database  string                      `json:"database"`
	Providers []generation.ProviderStatus `json:"providers"`
}

// Health returns a fixed descriptor of the configured providers and the
// database backend in use.
func Health(cfg *config.Config, dbBackend string, gen *generation.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		descriptor := HealthDescriptor{
			Status:   "live",
			Env:      cfg.App.Env,
			Database: dbBackend,
		}
		if gen != nil {
			descriptor.Providers = gen.Statuses()
		}
		responses.WriteSuccess(w, descriptor)
	}
}
