package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mateoquintana/brandforge-backend/api/controllers"
	"github.com/mateoquintana/brandforge-backend/api/middleware"
	"github.com/mateoquintana/brandforge-backend/internal/auth"
	"github.com/mateoquintana/brandforge-backend/internal/designs"
	"github.com/mateoquintana/brandforge-backend/internal/generation"
	"github.com/mateoquintana/brandforge-backend/internal/projects"
	"github.com/mateoquintana/brandforge-backend/internal/training"
	"github.com/mateoquintana/brandforge-backend/pkg/config"
	"github.com/mateoquintana/brandforge-backend/pkg/enums"
	"github.com/mateoquintana/brandforge-backend/pkg/logger"
	"github.com/mateoquintana/brandforge-backend/pkg/metrics"
)

// Deps bundles everything the router needs.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DBBackend   string
	RateLimiter middleware.CounterStore
	HTTPMetrics *metrics.HTTPMetrics

	AuthService       auth.Service
	ProjectsService   projects.Service
	DesignsService    designs.Service
	GenerationService *generation.Service
	TrainingService   training.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.SecurityHeaders(),
		middleware.CORS(),
		middleware.BodyLimit(cfg.Uploads.MaxUploadBytes()),
		middleware.RateLimit(cfg.RateLimit, deps.RateLimiter, logg),
	)

	r.Get("/health", controllers.Health(cfg, deps.DBBackend, deps.GenerationService))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", controllers.AuthRegister(deps.AuthService, logg))
			r.Post("/login", controllers.AuthLogin(deps.AuthService, logg))
			r.With(middleware.Auth(cfg.JWT, logg)).Get("/me", controllers.AuthMe(deps.AuthService, logg))
		})

		r.Get("/providers", controllers.ProvidersList(deps.GenerationService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))

			r.Route("/projects", func(r chi.Router) {
				r.Get("/", controllers.ProjectsList(deps.ProjectsService, logg))
				r.Post("/", controllers.ProjectsCreate(deps.ProjectsService, logg))
				r.Route("/{projectId}/designs", func(r chi.Router) {
					r.Get("/", controllers.DesignsList(deps.DesignsService, logg))
					r.Post("/", controllers.DesignsCreate(deps.DesignsService, logg))
				})
			})

			r.Post("/designs/{designId}/generate", controllers.DesignsGenerate(deps.DesignsService, logg))

			r.Route("/admin/training-data", func(r chi.Router) {
				r.Use(middleware.RequireRole(enums.RoleSuperAdmin, logg))
				r.Post("/", controllers.TrainingUpload(deps.TrainingService, logg))
				r.Get("/", controllers.TrainingList(deps.TrainingService, logg))
			})
		})
	})

	return r
}
