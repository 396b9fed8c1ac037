package generation

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/mateoquintana/brandforge-backend/pkg/config"
	"github.com/mateoquintana/brandforge-backend/pkg/db/models"
	"github.com/mateoquintana/brandforge-backend/pkg/enums"
)

type stubDoer struct {
	calls    atomic.Int64
	response string
	status   int
	err      error
}

func (d *stubDoer) Do(_ *http.Request) (*http.Response, error) {
	d.calls.Add(1)
	if d.err != nil {
		return nil, d.err
	}
	status := d.status
	if status == 0 {
		status = http.StatusOK
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader([]byte(d.response))),
	}, nil
}

func strPtr(s string) *string { return &s }

func testProject() *models.Project {
	return &models.Project{
		Colors:     []string{"#102030", "#ffffff"},
		Fonts:      []string{"Inter"},
		DesignType: enums.DesignTypeSocialMedia,
	}
}

func TestBuildPromptIncludesBrandAndContent(t *testing.T) {
	design := &models.Design{
		Title:        strPtr("50% Off"),
		CallToAction: strPtr("Shop now"),
	}
	prompt := BuildPrompt(testProject(), design)

	for _, want := range []string{"social media", "#102030", "Inter", "50% Off", "Shop now"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q: %s", want, prompt)
		}
	}
}

func TestBuildPromptDefaults(t *testing.T) {
	project := &models.Project{DesignType: enums.DesignTypeLogo}
	prompt := BuildPrompt(project, &models.Design{})

	if !strings.Contains(prompt, "default") {
		t.Fatalf("expected default colors in prompt: %s", prompt)
	}
	if !strings.Contains(prompt, "modern") {
		t.Fatalf("expected modern typography in prompt: %s", prompt)
	}
}

func TestGenerateUnconfiguredProviderReturnsPlaceholder(t *testing.T) {
	doer := &stubDoer{}
	svc := NewService(ServiceParams{Providers: config.ProvidersConfig{Default: "openai"}, Client: doer})

	url := svc.Generate(context.Background(), enums.ProviderQwen, "a prompt")
	if !strings.Contains(url, "placeholder") {
		t.Fatalf("expected placeholder URL, got %s", url)
	}
	if doer.calls.Load() != 0 {
		t.Fatal("unconfigured provider must not be called")
	}
}

func TestGeneratePlaceholderIsDeterministic(t *testing.T) {
	svc := NewService(ServiceParams{Providers: config.ProvidersConfig{Default: "openai"}})

	a := svc.Generate(context.Background(), enums.ProviderGemini, "same prompt")
	b := svc.Generate(context.Background(), enums.ProviderGemini, "same prompt")
	if a != b {
		t.Fatalf("placeholder URLs differ: %s vs %s", a, b)
	}
}

func TestGenerateProviderFailureFallsBack(t *testing.T) {
	doer := &stubDoer{err: errors.New("connection reset")}
	svc := NewService(ServiceParams{
		Providers: config.ProvidersConfig{OpenAIAPIKey: "sk-test", Default: "openai"},
		Client:    doer,
	})

	url := svc.Generate(context.Background(), enums.ProviderOpenAI, "a prompt")
	if !strings.Contains(url, "placeholder") {
		t.Fatalf("expected placeholder on provider error, got %s", url)
	}
}

func TestGenerateOpenAISuccess(t *testing.T) {
	doer := &stubDoer{response: `{"data":[{"url":"https://img.example.com/1.png"}]}`}
	svc := NewService(ServiceParams{
		Providers: config.ProvidersConfig{OpenAIAPIKey: "sk-test", Default: "openai"},
		Client:    doer,
	})

	url := svc.Generate(context.Background(), enums.ProviderOpenAI, "a prompt")
	if url != "https://img.example.com/1.png" {
		t.Fatalf("unexpected url %s", url)
	}
}

func TestGenerateQwenSuccess(t *testing.T) {
	doer := &stubDoer{response: `{"output":{"results":[{"url":"https://img.example.com/q.png"}]}}`}
	svc := NewService(ServiceParams{
		Providers: config.ProvidersConfig{QwenAPIKey: "qk-test", Default: "qwen"},
		Client:    doer,
	})

	url := svc.Generate(context.Background(), enums.ProviderQwen, "a prompt")
	if url != "https://img.example.com/q.png" {
		t.Fatalf("unexpected url %s", url)
	}
}

func TestGenerateBatchReturnsCountResults(t *testing.T) {
	doer := &stubDoer{response: `{"data":[{"url":"https://img.example.com/1.png"}]}`}
	svc := NewService(ServiceParams{
		Providers: config.ProvidersConfig{OpenAIAPIKey: "sk-test", Default: "openai"},
		Client:    doer,
	})

	results := svc.GenerateBatch(context.Background(), enums.ProviderOpenAI, testProject(), &models.Design{}, 4)
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	for i, url := range results {
		if url == "" {
			t.Fatalf("slot %d empty", i)
		}
	}
	if doer.calls.Load() != 4 {
		t.Fatalf("expected 4 provider calls, got %d", doer.calls.Load())
	}
}

func TestGenerateBatchIsolatesFailures(t *testing.T) {
	doer := &stubDoer{status: http.StatusBadGateway, response: `{"error":"upstream"}`}
	svc := NewService(ServiceParams{
		Providers: config.ProvidersConfig{GeminiAPIKey: "gk-test", Default: "gemini"},
		Client:    doer,
	})

	results := svc.GenerateBatch(context.Background(), enums.ProviderGemini, testProject(), &models.Design{}, 3)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for _, url := range results {
		if !strings.Contains(url, "placeholder") {
			t.Fatalf("expected placeholder, got %s", url)
		}
	}
}

func TestStatusesCoverClosedSet(t *testing.T) {
	svc := NewService(ServiceParams{
		Providers: config.ProvidersConfig{OpenAIAPIKey: "sk-test", Default: "openai"},
	})

	statuses := svc.Statuses()
	if len(statuses) != 3 {
		t.Fatalf("expected 3 providers, got %d", len(statuses))
	}
	byName := map[enums.Provider]bool{}
	for _, status := range statuses {
		byName[status.Name] = status.Configured
	}
	if !byName[enums.ProviderOpenAI] {
		t.Fatal("openai should be configured")
	}
	if byName[enums.ProviderGemini] || byName[enums.ProviderQwen] {
		t.Fatal("gemini and qwen should be unconfigured")
	}
}

func TestDefaultProviderFallsBackToOpenAI(t *testing.T) {
	svc := NewService(ServiceParams{Providers: config.ProvidersConfig{Default: "something-else"}})
	if svc.DefaultProvider() != enums.ProviderOpenAI {
		t.Fatalf("unexpected default %s", svc.DefaultProvider())
	}
}
