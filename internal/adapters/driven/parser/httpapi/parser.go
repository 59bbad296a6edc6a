// Package httpapi provides a client for the external document parser
// service.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/meridian-labs/docsage/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.DocumentParser = (*Client)(nil)

// DefaultTimeout is generous: parsing large PDFs with layout analysis
// is slow.
const DefaultTimeout = 300 * time.Second

// Config holds configuration for the parser client.
type Config struct {
	// BaseURL is the parser service base URL (required).
	BaseURL string

	// Timeout is the request timeout (default: 300s).
	Timeout time.Duration
}

// Client calls the parser service over HTTP.
type Client struct {
	client  *http.Client
	baseURL string
}

// parseRequest is the /parse request format.
type parseRequest struct {
	FilePath  string `json:"file_path"`
	OutputDir string `json:"output_dir"`
}

// NewClient creates a new parser client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("parser: base URL is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
	}, nil
}

// Parse extracts the document at filePath, writing image assets under
// outputDir.
func (c *Client) Parse(ctx context.Context, filePath, outputDir string) (*driven.ParseResult, error) {
	jsonBody, err := json.Marshal(parseRequest{FilePath: filePath, OutputDir: outputDir})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+"/parse", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("parser error (status %d): %s", resp.StatusCode, string(body))
	}

	var result driven.ParseResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &result, nil
}
