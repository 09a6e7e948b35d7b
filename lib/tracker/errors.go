// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tracker

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned by operations addressing a record
// position that does not exist.
var ErrIndexOutOfRange = errors.New("tracker: record index out of range")

// ValidationError reports user input the controller refuses before
// any remote call is made. The user must correct the input.
type ValidationError struct {
	Field   Field
	Message string
}

func (err *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", err.Field, err.Message)
}

// TransportError reports a failed call to the atom store: network
// failures and non-2xx responses alike. The wrapped error keeps the
// full chain for errors.Is and errors.As.
type TransportError struct {
	// Op is the store operation that failed: "list", "create" or
	// "update".
	Op string

	// ID is the record ID for update failures, empty otherwise.
	ID string

	Err error
}

func (err *TransportError) Error() string {
	if err.ID != "" {
		return fmt.Sprintf("%s atom %s: %v", err.Op, err.ID, err.Err)
	}
	return fmt.Sprintf("%s atoms: %v", err.Op, err.Err)
}

func (err *TransportError) Unwrap() error { return err.Err }
