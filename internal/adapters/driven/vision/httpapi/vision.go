// Package httpapi provides a client for the external vision service,
// which hosts both image description models and Whisper audio
// transcription.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/meridian-labs/docsage/internal/core/ports/driven"
)

// Ensure Client implements the interfaces.
var (
	_ driven.VisionDescriber  = (*Client)(nil)
	_ driven.AudioTranscriber = (*Client)(nil)
)

// Default configuration values. Describe calls are rate limited:
// the vision service runs one model on one GPU, and a document with
// dozens of charts would otherwise flood it.
const (
	DefaultTimeout    = 120 * time.Second
	DefaultRatePerSec = 2
	DefaultBurst      = 1
	transcribeTimeout = 600 * time.Second
)

// Config holds configuration for the vision client.
type Config struct {
	// BaseURL is the vision service base URL (required).
	BaseURL string

	// Timeout is the describe request timeout (default: 120s).
	Timeout time.Duration

	// RatePerSec limits describe calls per second (default: 2).
	RatePerSec float64
}

// Client calls the vision service over HTTP.
type Client struct {
	client          *http.Client
	baseURL         string
	describeTimeout time.Duration
	limiter         *rate.Limiter
}

// describeRequest is the /describe request format.
type describeRequest struct {
	ImagePath string `json:"image_path"`
	Prompt    string `json:"prompt"`
	ModelName string `json:"model_name"`
}

// describeResponse is the /describe response format.
type describeResponse struct {
	Description string `json:"description"`
}

// transcribeRequest is the /transcribe request format.
type transcribeRequest struct {
	AudioPath string `json:"audio_path"`
}

// transcribeResponse is the /transcribe response format.
type transcribeResponse struct {
	Text string `json:"text"`
}

// NewClient creates a new vision client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("vision: base URL is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RatePerSec == 0 {
		cfg.RatePerSec = DefaultRatePerSec
	}

	return &Client{
		// Per-call deadlines are set via context; a client-level
		// timeout would cap long transcriptions.
		client:          &http.Client{},
		baseURL:         cfg.BaseURL,
		describeTimeout: cfg.Timeout,
		limiter:         rate.NewLimiter(rate.Limit(cfg.RatePerSec), DefaultBurst),
	}, nil
}

// Describe analyses the image at imagePath using the named vision
// model.
func (c *Client) Describe(ctx context.Context, imagePath, prompt, modelName string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}

	reqBody := describeRequest{ImagePath: imagePath, Prompt: prompt, ModelName: modelName}
	var resp describeResponse
	if err := c.post(ctx, "/describe", reqBody, &resp, c.describeTimeout); err != nil {
		return "", err
	}
	return resp.Description, nil
}

// Transcribe returns the transcript of the audio file at audioPath.
// Transcription is not rate limited: there is at most one audio track
// per document.
func (c *Client) Transcribe(ctx context.Context, audioPath string) (string, error) {
	var resp transcribeResponse
	if err := c.post(ctx, "/transcribe", transcribeRequest{AudioPath: audioPath}, &resp, transcribeTimeout); err != nil {
		return "", err
	}
	return resp.Text, nil
}

// post sends a JSON request with the given deadline and decodes the
// JSON response.
func (c *Client) post(ctx context.Context, path string, in, out any, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	jsonBody, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("vision error (status %d): %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
