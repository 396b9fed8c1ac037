package generation

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mateoquintana/brandforge-backend/pkg/config"
	"github.com/mateoquintana/brandforge-backend/pkg/enums"
)

const (
	openAIImagesURL  = "https://api.openai.com/v1/images/generations"
	geminiPredictURL = "https://generativelanguage.googleapis.com/v1beta/models/imagen-3.0-generate-002:predict"
	qwenSynthesisURL = "https://dashscope.aliyuncs.com/api/v1/services/aigc/text2image/image-synthesis"

	providerTimeout = 60 * time.Second
)

// Strategy is one interchangeable image-generation backend.
type Strategy interface {
	Name() enums.Provider
	Configured() bool
	Generate(ctx context.Context, prompt string) (string, error)
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewStrategies builds the closed provider set from configuration. Strategies
// with no API key stay in the map so callers can report them as unconfigured.
func NewStrategies(cfg config.ProvidersConfig, client httpDoer) map[enums.Provider]Strategy {
	if client == nil {
		client = &http.Client{Timeout: providerTimeout}
	}
	return map[enums.Provider]Strategy{
		enums.ProviderOpenAI: &openAIStrategy{apiKey: cfg.OpenAIAPIKey, client: client},
		enums.ProviderGemini: &geminiStrategy{apiKey: cfg.GeminiAPIKey, client: client},
		enums.ProviderQwen:   &qwenStrategy{apiKey: cfg.QwenAPIKey, client: client},
	}
}

// PlaceholderURL derives a deterministic fallback image reference from the
// provider and prompt. The same inputs always map to the same URL.
func PlaceholderURL(provider enums.Provider, prompt string) string {
	sum := sha256.Sum256([]byte(string(provider) + "|" + prompt))
	return fmt.Sprintf("https://placeholder.brandforge.local/%s/%s.png", provider, hex.EncodeToString(sum[:8]))
}

type openAIStrategy struct {
	apiKey string
	client httpDoer
}

func (s *openAIStrategy) Name() enums.Provider { return enums.ProviderOpenAI }
func (s *openAIStrategy) Configured() bool     { return s.apiKey != "" }

func (s *openAIStrategy) Generate(ctx context.Context, prompt string) (string, error) {
	payload := map[string]any{
		"model":  "dall-e-3",
		"prompt": prompt,
		"n":      1,
		"size":   "1024x1024",
	}
	var parsed struct {
		Data []struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	headers := map[string]string{"Authorization": "Bearer " + s.apiKey}
	if err := postJSON(ctx, s.client, openAIImagesURL, headers, payload, &parsed); err != nil {
		return "", err
	}
	if len(parsed.Data) == 0 || parsed.Data[0].URL == "" {
		return "", fmt.Errorf("openai: empty image response")
	}
	return parsed.Data[0].URL, nil
}

type geminiStrategy struct {
	apiKey string
	client httpDoer
}

func (s *geminiStrategy) Name() enums.Provider { return enums.ProviderGemini }
func (s *geminiStrategy) Configured() bool     { return s.apiKey != "" }

func (s *geminiStrategy) Generate(ctx context.Context, prompt string) (string, error) {
	payload := map[string]any{
		"instances":  []map[string]any{{"prompt": prompt}},
		"parameters": map[string]any{"sampleCount": 1, "aspectRatio": "1:1"},
	}
	var parsed struct {
		Predictions []struct {
			ImageURI string `json:"imageUri"`
		} `json:"predictions"`
	}
	headers := map[string]string{"x-goog-api-key": s.apiKey}
	if err := postJSON(ctx, s.client, geminiPredictURL, headers, payload, &parsed); err != nil {
		return "", err
	}
	if len(parsed.Predictions) == 0 || parsed.Predictions[0].ImageURI == "" {
		return "", fmt.Errorf("gemini: empty image response")
	}
	return parsed.Predictions[0].ImageURI, nil
}

type qwenStrategy struct {
	apiKey string
	client httpDoer
}

func (s *qwenStrategy) Name() enums.Provider { return enums.ProviderQwen }
func (s *qwenStrategy) Configured() bool     { return s.apiKey != "" }

func (s *qwenStrategy) Generate(ctx context.Context, prompt string) (string, error) {
	payload := map[string]any{
		"model": "wanx-v1",
		"input": map[string]any{"prompt": prompt},
		"parameters": map[string]any{
			"n":    1,
			"size": "1024*1024",
		},
	}
	var parsed struct {
		Output struct {
			Results []struct {
				URL string `json:"url"`
			} `json:"results"`
		} `json:"output"`
	}
	headers := map[string]string{"Authorization": "Bearer " + s.apiKey}
	if err := postJSON(ctx, s.client, qwenSynthesisURL, headers, payload, &parsed); err != nil {
		return "", err
	}
	if len(parsed.Output.Results) == 0 || parsed.Output.Results[0].URL == "" {
		return "", fmt.Errorf("qwen: empty image response")
	}
	return parsed.Output.Results[0].URL, nil
}

func postJSON(ctx context.Context, client httpDoer, url string, headers map[string]string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("call provider: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read provider response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("provider status %d: %s", resp.StatusCode, truncate(raw, 256))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode provider response: %w", err)
	}
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
