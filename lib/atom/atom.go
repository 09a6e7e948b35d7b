// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package atom

import (
	"fmt"
	"slices"
)

// Status is the development state of an atom. The string values are
// the wire format exchanged with the persistence service.
type Status string

const (
	StatusNotStarted    Status = "Not Started"
	StatusInDevelopment Status = "In Development"
	StatusDeveloped     Status = "Developed"
)

// unknownStatusRank places statuses outside the closed enumeration
// after every known status. The persistence service is not trusted to
// validate, so the sort must stay total even for values it invents.
const unknownStatusRank = 3

// Statuses returns the known statuses in selector order.
func Statuses() []Status {
	return []Status{StatusNotStarted, StatusInDevelopment, StatusDeveloped}
}

// ParseStatus converts a wire value to a Status. Only the three known
// values are accepted.
func ParseStatus(value string) (Status, error) {
	switch Status(value) {
	case StatusNotStarted, StatusInDevelopment, StatusDeveloped:
		return Status(value), nil
	default:
		return "", fmt.Errorf("unknown status %q", value)
	}
}

// Valid reports whether the status is one of the known values.
func (status Status) Valid() bool {
	_, err := ParseStatus(string(status))
	return err == nil
}

// Rank orders statuses for display: Developed first, then In
// Development, then Not Started.
func (status Status) Rank() int {
	switch status {
	case StatusDeveloped:
		return 0
	case StatusInDevelopment:
		return 1
	case StatusNotStarted:
		return 2
	default:
		return unknownStatusRank
	}
}

// StyleClass maps a status to the class name used to color its
// selector. Unknown statuses have no class.
func StyleClass(status Status) string {
	switch status {
	case StatusNotStarted:
		return "not-started"
	case StatusInDevelopment:
		return "in-development"
	case StatusDeveloped:
		return "developed"
	default:
		return ""
	}
}

// Record is a single tracked atom. ID is assigned by the persistence
// service on creation and is empty for an unsaved draft.
type Record struct {
	ID          string `json:"_id,omitempty"`
	Name        string `json:"name"`
	Status      Status `json:"status"`
	DevelopedBy string `json:"developedBy"`
}

// NewDraft returns the value a fresh entry form starts from.
func NewDraft() Record {
	return Record{Status: StatusNotStarted}
}

// Persisted reports whether the record has been assigned an ID.
func (record Record) Persisted() bool {
	return record.ID != ""
}

// Sort orders records in place by status rank. The sort is stable, so
// records of equal rank keep their relative order and sorting an
// already sorted slice is a no-op.
func Sort(records []Record) {
	slices.SortStableFunc(records, func(a, b Record) int {
		return a.Status.Rank() - b.Status.Rank()
	})
}

// Sorted returns a sorted copy of records, leaving the input unchanged.
func Sorted(records []Record) []Record {
	result := slices.Clone(records)
	Sort(result)
	return result
}
