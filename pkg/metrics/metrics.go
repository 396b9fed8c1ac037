package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics records per-route request counts and latency.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewHTTPMetrics registers the HTTP metrics on the provided registerer.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	reg.MustRegister(requests, duration)
	return &HTTPMetrics{requests: requests, duration: duration}
}

// ObserveRequest records one completed request.
func (h *HTTPMetrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if h == nil || h.requests == nil {
		return
	}
	h.requests.WithLabelValues(method, normalizeLabel(route), strconv.Itoa(status)).Inc()
	h.duration.WithLabelValues(method, normalizeLabel(route)).Observe(elapsed.Seconds())
}

// GenerationMetrics counts image-generation outcomes per provider.
type GenerationMetrics struct {
	generated    *prometheus.CounterVec
	placeholders *prometheus.CounterVec
}

// NewGenerationMetrics registers the generation metrics on the provided registerer.
func NewGenerationMetrics(reg prometheus.Registerer) *GenerationMetrics {
	if reg == nil {
		return &GenerationMetrics{}
	}
	generated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "generation_images_total",
		Help: "Successfully generated image URLs per provider.",
	}, []string{"provider"})
	placeholders := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "generation_placeholders_total",
		Help: "Placeholder fallbacks per provider.",
	}, []string{"provider"})
	reg.MustRegister(generated, placeholders)
	return &GenerationMetrics{generated: generated, placeholders: placeholders}
}

// IncGenerated counts a real provider result.
func (g *GenerationMetrics) IncGenerated(provider string) {
	if g == nil || g.generated == nil {
		return
	}
	g.generated.WithLabelValues(normalizeLabel(provider)).Inc()
}

// IncPlaceholder counts a fallback result.
func (g *GenerationMetrics) IncPlaceholder(provider string) {
	if g == nil || g.placeholders == nil {
		return
	}
	g.placeholders.WithLabelValues(normalizeLabel(provider)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
