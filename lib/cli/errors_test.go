// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestToolError_ErrorWithoutHint(t *testing.T) {
	err := Validation("unexpected argument: %s", "extra")
	if err.Error() != "unexpected argument: extra" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestToolError_ErrorWithHint(t *testing.T) {
	err := Transient("cannot reach atom service").
		WithHint("Start it with 'atom-store' or pass --api-url.")

	want := "cannot reach atom service\n\nStart it with 'atom-store' or pass --api-url."
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestToolError_UnwrapsInner(t *testing.T) {
	err := NotFound("config file: %w", fs.ErrNotExist)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("errors.Is should reach the wrapped error")
	}

	wrapped := fmt.Errorf("startup: %w", err)
	var toolErr *ToolError
	if !errors.As(wrapped, &toolErr) {
		t.Fatal("errors.As should find ToolError in wrapped chain")
	}
	if toolErr.Category != CategoryNotFound {
		t.Errorf("Category = %q", toolErr.Category)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"plain", errors.New("boom"), 1},
		{"validation", Validation("bad"), 2},
		{"not found", NotFound("missing"), 3},
		{"transient", Transient("timeout"), 4},
		{"internal", Internal("bug"), 1},
		{"wrapped", fmt.Errorf("run: %w", Validation("bad")), 2},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := ExitCode(test.err); got != test.want {
				t.Errorf("ExitCode = %d, want %d", got, test.want)
			}
		})
	}
}

func TestFileError(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantCategory ErrorCategory
		wantExit     int
	}{
		{"missing", fmt.Errorf("reading config: %w", fs.ErrNotExist), CategoryNotFound, 3},
		{"unreadable", fmt.Errorf("reading config: %w", fs.ErrPermission), CategoryValidation, 2},
		{"malformed", errors.New("parsing config: yaml: line 3"), CategoryValidation, 2},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := FileError("loading config", test.err)
			if err.Category != test.wantCategory {
				t.Errorf("Category = %q, want %q", err.Category, test.wantCategory)
			}
			if got := ExitCode(err); got != test.wantExit {
				t.Errorf("ExitCode = %d, want %d", got, test.wantExit)
			}
			if !errors.Is(err, test.err) {
				t.Error("FileError should wrap the load error")
			}
		})
	}
}
