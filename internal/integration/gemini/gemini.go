// Package gemini implements generate.Generator on top of the Gemini
// generateContent REST endpoint.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hay-kot/chefhat/internal/core/generate"
)

// Options configures a Client.
type Options struct {
	APIKey  string
	BaseURL string
	Model   string
	// Timeout is applied to the underlying HTTP client. Zero means none.
	Timeout time.Duration
	// HTTPClient overrides the HTTP client. Timeout is ignored when set.
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// Client calls the Gemini API.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	http    *http.Client
	logger  zerolog.Logger
}

// New creates a Client. A missing API key is not an error here; every
// Generate call fails with KindMissingCredential instead.
func New(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}

	return &Client{
		apiKey:  strings.TrimSpace(opts.APIKey),
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		model:   opts.Model,
		http:    hc,
		logger:  opts.Logger,
	}
}

type request struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type response struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

type errorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Endpoint returns the generateContent URL for the configured model.
func (c *Client) Endpoint() string {
	return fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
}

// Generate implements generate.Generator.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", generate.Errorf(generate.KindMissingCredential, "no API key configured")
	}

	body, err := json.Marshal(request{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", &generate.Error{Kind: generate.KindUnknown, Err: fmt.Errorf("marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), bytes.NewReader(body))
	if err != nil {
		return "", &generate.Error{Kind: generate.KindNetwork, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return "", &generate.Error{Kind: generate.KindNetwork, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &generate.Error{Kind: generate.KindNetwork, Err: fmt.Errorf("read response: %w", err)}
	}

	c.logger.Debug().
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Str("model", c.model).
		Msg("gemini response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &generate.Error{
			Kind:   generate.KindService,
			Status: resp.StatusCode,
			Err:    errors.New(serviceMessage(resp.Status, data)),
		}
	}

	return parseResponse(data)
}

// parseResponse extracts the first candidate's text.
func parseResponse(data []byte) (string, error) {
	var r response
	if err := json.Unmarshal(data, &r); err != nil {
		return "", &generate.Error{Kind: generate.KindService, Err: fmt.Errorf("parse response: %w", err)}
	}

	if len(r.Candidates) == 0 {
		if r.PromptFeedback != nil && r.PromptFeedback.BlockReason != "" {
			return "", generate.Errorf(generate.KindService, "prompt blocked: %s", r.PromptFeedback.BlockReason)
		}
		return "", generate.Errorf(generate.KindService, "no candidates returned")
	}

	var b strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	if b.Len() == 0 {
		reason := r.Candidates[0].FinishReason
		if reason == "" {
			reason = "empty"
		}
		return "", generate.Errorf(generate.KindService, "candidate has no text (finish reason %s)", reason)
	}

	return b.String(), nil
}

// serviceMessage returns the error message reported by the service, or the
// HTTP status when the body carries none.
func serviceMessage(status string, data []byte) string {
	var eb errorBody
	if err := json.Unmarshal(data, &eb); err == nil && eb.Error.Message != "" {
		if eb.Error.Status != "" {
			return eb.Error.Status + ": " + eb.Error.Message
		}
		return eb.Error.Message
	}
	return status
}

var _ generate.Generator = (*Client)(nil)
