package generation

import (
	"context"
	"sync"

	"github.com/mateoquintana/brandforge-backend/pkg/config"
	"github.com/mateoquintana/brandforge-backend/pkg/db/models"
	"github.com/mateoquintana/brandforge-backend/pkg/enums"
	"github.com/mateoquintana/brandforge-backend/pkg/logger"
	"github.com/mateoquintana/brandforge-backend/pkg/metrics"
)

// ProviderStatus reports whether a backend has credentials configured.
type ProviderStatus struct {
	Name       enums.Provider `json:"name"`
	Configured bool           `json:"configured"`
}

// Service dispatches prompts to generation backends. Generate never fails
// outward; any provider error collapses into a deterministic placeholder URL.
type Service struct {
	strategies      map[enums.Provider]Strategy
	defaultProvider enums.Provider
	log             *logger.Logger
	metrics         *metrics.GenerationMetrics
}

// ServiceParams bundles the dependencies for a generation service.
type ServiceParams struct {
	Providers config.ProvidersConfig
	Client    httpDoer
	Logger    *logger.Logger
	Metrics   *metrics.GenerationMetrics
}

// NewService builds the generation service with the closed provider set.
func NewService(params ServiceParams) *Service {
	defaultProvider, err := enums.ParseProvider(params.Providers.Default)
	if err != nil {
		defaultProvider = enums.ProviderOpenAI
	}
	return &Service{
		strategies:      NewStrategies(params.Providers, params.Client),
		defaultProvider: defaultProvider,
		log:             params.Logger,
		metrics:         params.Metrics,
	}
}

// DefaultProvider returns the backend used when a request names none.
func (s *Service) DefaultProvider() enums.Provider {
	return s.defaultProvider
}

// Statuses lists every known provider and whether it is configured.
func (s *Service) Statuses() []ProviderStatus {
	statuses := make([]ProviderStatus, 0, len(s.strategies))
	for _, name := range enums.Providers() {
		strategy, ok := s.strategies[name]
		statuses = append(statuses, ProviderStatus{
			Name:       name,
			Configured: ok && strategy.Configured(),
		})
	}
	return statuses
}

// Generate produces one image URL for the prompt. An unknown or unconfigured
// provider, or a failing live call, yields the placeholder instead.
func (s *Service) Generate(ctx context.Context, provider enums.Provider, prompt string) string {
	strategy, ok := s.strategies[provider]
	if !ok || !strategy.Configured() {
		s.metrics.IncPlaceholder(string(provider))
		return PlaceholderURL(provider, prompt)
	}

	url, err := strategy.Generate(ctx, prompt)
	if err != nil {
		if s.log != nil {
			s.log.Warn(s.log.WithField(ctx, "provider", string(provider)), "generation call failed, substituting placeholder")
		}
		s.metrics.IncPlaceholder(string(provider))
		return PlaceholderURL(provider, prompt)
	}

	s.metrics.IncGenerated(string(provider))
	return url
}

// GenerateBatch issues count independent generation calls and awaits them
// jointly. Results come back slot ordered; one slow or failing call never
// cancels its siblings.
func (s *Service) GenerateBatch(ctx context.Context, provider enums.Provider, project *models.Project, design *models.Design, count int) []string {
	if count <= 0 {
		return []string{}
	}

	prompt := BuildPrompt(project, design)
	results := make([]string, count)

	var wg sync.WaitGroup
	for i := 0; i < count; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			results[slot] = s.Generate(ctx, provider, prompt)
		}(i)
	}
	wg.Wait()

	return results
}
