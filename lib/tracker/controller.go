// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tracker

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/bureau-foundation/atomtracker/lib/atom"
)

// Store is the remote persistence the controller mediates. The
// atomapi.Client satisfies it; tests substitute in-memory fakes.
type Store interface {
	List(ctx context.Context) ([]atom.Record, error)
	Create(ctx context.Context, record atom.Record) (atom.Record, error)
	Update(ctx context.Context, record atom.Record) (atom.Record, error)
}

// LoadStatus tracks the initial list fetch independently of whether
// the list is empty.
type LoadStatus int

const (
	// Loading means the initial fetch has not completed.
	Loading LoadStatus = iota
	// Loaded means the initial fetch succeeded. The list may be empty.
	Loaded
	// Failed means the initial fetch failed. There is no retry.
	Failed
)

func (status LoadStatus) String() string {
	switch status {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Field names an editable record field.
type Field int

const (
	FieldName Field = iota
	FieldStatus
	FieldDevelopedBy
)

func (field Field) String() string {
	switch field {
	case FieldName:
		return "name"
	case FieldStatus:
		return "status"
	case FieldDevelopedBy:
		return "developedBy"
	default:
		return "unknown"
	}
}

// Call is a pending store operation. The owner runs it off the event
// loop and hands the Result back to [Controller.Apply].
type Call func(ctx context.Context) Result

// Result is the outcome of a Call, merged into controller state by
// [Controller.Apply] or [Controller.Merge].
type Result interface {
	apply(controller *Controller) (bool, error)
}

// Controller owns the in-memory atom list and the entry draft, and
// routes every mutation through named operations. It is not safe for
// concurrent use: one goroutine (the UI event loop) owns it, and store
// responses are merged on that goroutine in arrival order via Apply.
type Controller struct {
	store  Store
	logger *slog.Logger

	records     []atom.Record
	draft       atom.Record
	loadStatus  LoadStatus
	loadError   error
	initialized bool

	// revisions counts edits and commits per record ID. An update
	// response is applied only if the record's revision still equals
	// the one captured when the update was issued.
	revisions map[string]uint64
}

// New creates a Controller backed by store. A nil logger uses
// slog.Default().
func New(store Store, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		store:      store,
		logger:     logger,
		draft:      atom.NewDraft(),
		loadStatus: Loading,
		revisions:  make(map[string]uint64),
	}
}

// Records returns a copy of the list in display order.
func (controller *Controller) Records() []atom.Record {
	return slices.Clone(controller.records)
}

// Len returns the number of records.
func (controller *Controller) Len() int {
	return len(controller.records)
}

// Record returns the record at index.
func (controller *Controller) Record(index int) (atom.Record, bool) {
	if index < 0 || index >= len(controller.records) {
		return atom.Record{}, false
	}
	return controller.records[index], true
}

// IndexOf returns the position of the record with the given ID, or -1.
func (controller *Controller) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(controller.records, func(record atom.Record) bool {
		return record.ID == id
	})
}

// Draft returns the pending new record.
func (controller *Controller) Draft() atom.Record {
	return controller.draft
}

// LoadStatus reports the progress of the initial list fetch.
func (controller *Controller) LoadStatus() LoadStatus {
	return controller.loadStatus
}

// LoadError returns the initial fetch failure, or nil.
func (controller *Controller) LoadError() error {
	return controller.loadError
}

// Initialize returns the initial list fetch. Only the first call
// returns a Call; later calls return nil.
func (controller *Controller) Initialize() Call {
	if controller.initialized {
		return nil
	}
	controller.initialized = true
	controller.loadStatus = Loading

	store := controller.store
	return func(ctx context.Context) Result {
		records, err := store.List(ctx)
		return loadResult{records: records, err: err}
	}
}

// EditDraft merges a field value into the draft. No remote call.
func (controller *Controller) EditDraft(field Field, value string) error {
	return setField(&controller.draft, field, value)
}

// SubmitDraft returns a create call for the current draft. A draft
// whose name is empty after trimming fails with *ValidationError and
// no call is returned.
func (controller *Controller) SubmitDraft() (Call, error) {
	if strings.TrimSpace(controller.draft.Name) == "" {
		return nil, &ValidationError{Field: FieldName, Message: "atom name is required"}
	}

	submitted := controller.draft
	submitted.ID = ""
	store := controller.store
	return func(ctx context.Context) Result {
		record, err := store.Create(ctx, submitted)
		return createResult{name: submitted.Name, record: record, err: err}
	}, nil
}

// EditRecord applies a field change to records[index] immediately,
// before anything is sent to the store. A status change re-sorts the
// list at once; name and developer changes keep the row in place
// until the record is committed.
func (controller *Controller) EditRecord(index int, field Field, value string) error {
	if index < 0 || index >= len(controller.records) {
		return ErrIndexOutOfRange
	}
	record := &controller.records[index]
	if err := setField(record, field, value); err != nil {
		return err
	}
	if record.ID != "" {
		controller.revisions[record.ID]++
	}
	// TODO(ui-review): only status edits re-sort before commit, so a
	// row can jump while its neighbours' text edits stay put. Confirm
	// with product whether name/developer edits should re-sort too.
	if field == FieldStatus {
		atom.Sort(controller.records)
	}
	return nil
}

// CommitRecord returns an update call carrying the full current state
// of records[index]. Returns nil when there is no such record or the
// record has no ID, in which case nothing is sent.
func (controller *Controller) CommitRecord(index int) Call {
	record, ok := controller.Record(index)
	if !ok || !record.Persisted() {
		return nil
	}

	controller.revisions[record.ID]++
	revision := controller.revisions[record.ID]
	store := controller.store
	return func(ctx context.Context) Result {
		updated, err := store.Update(ctx, record)
		return updateResult{id: record.ID, revision: revision, record: updated, err: err}
	}
}

// Apply merges a store response into controller state. Transport
// failures are logged and returned as *TransportError; local state is
// left as it was (no rollback of optimistic edits).
func (controller *Controller) Apply(result Result) error {
	_, err := controller.Merge(result)
	return err
}

// Merge is Apply that also reports whether the response changed
// controller state. A failed call, or an update response discarded
// because the record was edited again after it was issued, reports
// false.
func (controller *Controller) Merge(result Result) (bool, error) {
	if result == nil {
		return false, nil
	}
	return result.apply(controller)
}

type loadResult struct {
	records []atom.Record
	err     error
}

func (result loadResult) apply(controller *Controller) (bool, error) {
	if result.err != nil {
		err := &TransportError{Op: "list", Err: result.err}
		controller.loadStatus = Failed
		controller.loadError = err
		controller.logger.Error("fetching atoms failed", "error", result.err)
		return false, err
	}

	for _, record := range result.records {
		if !record.Persisted() {
			controller.logger.Warn("atom store returned a record without an ID", "name", record.Name)
		}
	}
	controller.records = atom.Sorted(result.records)
	controller.loadStatus = Loaded
	controller.loadError = nil
	return true, nil
}

type createResult struct {
	name   string
	record atom.Record
	err    error
}

func (result createResult) apply(controller *Controller) (bool, error) {
	if result.err != nil {
		controller.logger.Error("adding atom failed", "name", result.name, "error", result.err)
		return false, &TransportError{Op: "create", Err: result.err}
	}

	controller.records = append(controller.records, result.record)
	atom.Sort(controller.records)
	controller.draft = atom.NewDraft()
	return true, nil
}

type updateResult struct {
	id       string
	revision uint64
	record   atom.Record
	err      error
}

func (result updateResult) apply(controller *Controller) (bool, error) {
	if result.err != nil {
		controller.logger.Error("updating atom failed", "id", result.id, "error", result.err)
		return false, &TransportError{Op: "update", ID: result.id, Err: result.err}
	}

	if controller.revisions[result.id] != result.revision {
		controller.logger.Debug("discarding stale atom update",
			"id", result.id,
			"revision", result.revision,
			"current", controller.revisions[result.id],
		)
		return false, nil
	}

	index := controller.IndexOf(result.id)
	if index < 0 {
		return false, nil
	}
	updated := result.record
	if updated.ID == "" {
		// Keep the record addressable when the store omits the ID.
		updated.ID = result.id
	}
	controller.records[index] = updated
	atom.Sort(controller.records)
	return true, nil
}

// setField writes value into the named field of record.
func setField(record *atom.Record, field Field, value string) error {
	switch field {
	case FieldName:
		record.Name = value
	case FieldDevelopedBy:
		record.DevelopedBy = value
	case FieldStatus:
		status, err := atom.ParseStatus(value)
		if err != nil {
			return &ValidationError{Field: field, Message: err.Error()}
		}
		record.Status = status
	default:
		return &ValidationError{Field: field, Message: "not an editable field"}
	}
	return nil
}
