// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil provides bounded HTTP body helpers shared by the
// atom API client and the reference atom store.
//
// Reads of JSON bodies are capped at [MaxBodySize] so a misbehaving
// peer cannot make either side allocate without bound. The atom
// collection is small; the limit exists only as a backstop.
package netutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// MaxBodySize bounds JSON request and response body reads: 16 MB.
const MaxBodySize int64 = 16 << 20

// ReadResponse reads a JSON body up to MaxBodySize bytes. Use instead
// of io.ReadAll when reading HTTP bodies.
func ReadResponse(body io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(body, MaxBodySize))
}

// DecodeResponse reads a JSON body (up to MaxBodySize bytes) and
// decodes it into v.
func DecodeResponse(body io.Reader, v any) error {
	data, err := ReadResponse(body)
	if err != nil {
		return fmt.Errorf("reading body: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding body: %w", err)
	}
	return nil
}

// ErrorBody reads an error response body for diagnostic messages.
// Read errors are ignored: a partial body is still useful.
func ErrorBody(body io.Reader) string {
	data, _ := ReadResponse(body)
	return string(data)
}

// WriteJSON encodes value as the response body with the given status.
// Encoding failures after the header is written cannot be reported to
// the client and are returned for the caller to log.
func WriteJSON(writer http.ResponseWriter, status int, value any) error {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	return json.NewEncoder(writer).Encode(value)
}
