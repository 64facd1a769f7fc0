package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"streambot/domain/entities"

	log "github.com/sirupsen/logrus"
)

const (
	healthPath       = "/health"
	battleReportPath = "/api/ssp/battle"
)

// APIError is a non-2xx response from the visualizer
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s returned %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s returned %d", e.Method, e.Path, e.StatusCode)
}

// Retryable reports whether repeating the request could succeed
func (e *APIError) Retryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

// VisualizerClient talks to the stream visualizer HTTP API
type VisualizerClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewVisualizerClient creates a client for the visualizer at baseURL
func NewVisualizerClient(baseURL, apiKey string, timeout time.Duration) *VisualizerClient {
	return &VisualizerClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Configured reports whether a base URL was provided
func (c *VisualizerClient) Configured() bool {
	return c.baseURL != ""
}

// Health checks that the visualizer API answers
func (c *VisualizerClient) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, healthPath, nil)
}

// PostBattle records a finished duel
func (c *VisualizerClient) PostBattle(ctx context.Context, report *entities.BattleReport) error {
	body, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal battle report: %w", err)
	}
	return c.do(ctx, http.MethodPost, battleReportPath, body)
}

func (c *VisualizerClient) do(ctx context.Context, method, path string, body []byte) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("X-API-Key", c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		log.WithFields(log.Fields{
			"method": method,
			"path":   path,
			"status": resp.StatusCode,
		}).Debug("Visualizer request succeeded")
		return nil
	}

	return &APIError{
		Method:     method,
		Path:       path,
		StatusCode: resp.StatusCode,
		Message:    readErrorMessage(resp.Body),
	}
}

// readErrorMessage extracts {"error": "..."} bodies, falling back to raw text
func readErrorMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(data) == 0 {
		return ""
	}
	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(data, &payload) == nil && payload.Error != "" {
		return payload.Error
	}
	return strings.TrimSpace(string(data))
}
