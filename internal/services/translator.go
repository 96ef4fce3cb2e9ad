// HTTP client for the translation endpoint
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/desertthunder/lyrix/internal/shared"
)

const defaultEndpoint = "http://127.0.0.1:5000/translate"

// TranslatorService implements [Translator] against a JSON translation endpoint.
type TranslatorService struct {
	endpoint   string
	httpClient *http.Client
}

// NewTranslatorService creates a new client for the endpoint at the given URL.
func NewTranslatorService(endpoint string, client *http.Client) *TranslatorService {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &TranslatorService{
		endpoint:   endpoint,
		httpClient: client,
	}
}

// APIResponse represents a raw API response with status and body.
type APIResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Post performs a POST request with the given JSON data and returns the raw response.
func (s *TranslatorService) Post(ctx context.Context, data []byte) (*APIResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return &APIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}, nil
}

// Translate posts {text, targetLang} and decodes {translation} or {error}.
//
// An empty translation falls back to the source text.
func (s *TranslatorService) Translate(ctx context.Context, text, targetLang string) (string, error) {
	data, err := json.Marshal(TranslateRequest{Text: text, TargetLang: targetLang})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := s.Post(ctx, data)
	if err != nil {
		return "", classify(ctx, err)
	}

	var payload TranslateResponse
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return "", &shared.RemoteError{Message: fmt.Sprintf("HTTP %d", resp.StatusCode), Details: strings.TrimSpace(string(resp.Body))}
		}
		return "", fmt.Errorf("%w: malformed response: %v", shared.ErrNetwork, err)
	}

	if payload.Error != "" {
		return "", &shared.RemoteError{Message: payload.Error, Details: payload.Details}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &shared.RemoteError{Message: fmt.Sprintf("HTTP %d", resp.StatusCode)}
	}

	if payload.Translation == "" {
		return text, nil
	}
	return payload.Translation, nil
}

// classify maps a transport failure onto the shared error taxonomy.
func classify(ctx context.Context, err error) error {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", shared.ErrTimeout, err)
	case errors.Is(ctx.Err(), context.Canceled):
		return ctx.Err()
	default:
		return fmt.Errorf("%w: %v", shared.ErrNetwork, err)
	}
}
