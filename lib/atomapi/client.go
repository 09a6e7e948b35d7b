// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package atomapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bureau-foundation/atomtracker/lib/atom"
	"github.com/bureau-foundation/atomtracker/lib/netutil"
)

// collectionPath is the single resource collection the service exposes.
const collectionPath = "/atoms"

// Config holds configuration for creating a Client.
type Config struct {
	// BaseURL is the root URL of the atom service, for example
	// "https://tracker.example.com". Required. Must be http or https.
	BaseURL string

	// HTTPClient is used for all requests. Defaults to
	// http.DefaultClient.
	HTTPClient *http.Client

	// Timeout bounds each request on top of the caller's context.
	// Zero means the caller's context is the only deadline.
	Timeout time.Duration

	// Logger receives one debug record per request. Defaults to
	// slog.Default().
	Logger *slog.Logger
}

// Client talks to the atom persistence service. It performs no
// retries and no caching: every call is exactly one HTTP request.
// Safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	logger     *slog.Logger
}

// NewClient validates the configuration and returns a Client.
func NewClient(config Config) (*Client, error) {
	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		return nil, errors.New("atomapi: BaseURL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("atomapi: parsing BaseURL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("atomapi: BaseURL must use http or https (got %q)", config.BaseURL)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("atomapi: BaseURL has no host (got %q)", config.BaseURL)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		timeout:    config.Timeout,
		logger:     logger,
	}, nil
}

// List fetches every atom in the collection, in service order.
func (client *Client) List(ctx context.Context) ([]atom.Record, error) {
	var records []atom.Record
	if err := client.do(ctx, http.MethodGet, collectionPath, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Create persists a new atom and returns it with its assigned ID. Any
// ID on the input is dropped: the service owns ID assignment.
func (client *Client) Create(ctx context.Context, record atom.Record) (atom.Record, error) {
	record.ID = ""
	var created atom.Record
	if err := client.do(ctx, http.MethodPost, collectionPath, record, &created); err != nil {
		return atom.Record{}, err
	}
	return created, nil
}

// Update replaces the stored atom with the given record's full state
// and returns the service's resulting copy.
func (client *Client) Update(ctx context.Context, record atom.Record) (atom.Record, error) {
	if record.ID == "" {
		return atom.Record{}, errors.New("atomapi: update requires a record ID")
	}
	path := collectionPath + "/" + url.PathEscape(record.ID)
	var updated atom.Record
	if err := client.do(ctx, http.MethodPut, path, record, &updated); err != nil {
		return atom.Record{}, err
	}
	return updated, nil
}

// do executes one request. A non-nil requestBody is JSON-encoded; a
// 2xx response body is decoded into result. Non-2xx responses return
// an *APIError.
func (client *Client) do(ctx context.Context, method, path string, requestBody, result any) error {
	if client.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, client.timeout)
		defer cancel()
	}

	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return fmt.Errorf("atomapi: encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, client.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("atomapi: creating request: %w", err)
	}
	request.Header.Set("Accept", "application/json")
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	response, err := client.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("atomapi: %s %s: %w", method, path, err)
	}
	defer response.Body.Close()

	client.logger.Debug("atom api request",
		"method", method,
		"path", path,
		"status", response.StatusCode,
		"duration", time.Since(start),
	)

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return parseAPIError(method, path, response.StatusCode, netutil.ErrorBody(response.Body))
	}

	if result == nil {
		return nil
	}
	if err := netutil.DecodeResponse(response.Body, result); err != nil {
		return fmt.Errorf("atomapi: %s %s: %w", method, path, err)
	}
	return nil
}
