// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package trackerui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/google/go-cmp/cmp"

	"github.com/bureau-foundation/atomtracker/lib/atom"
	"github.com/bureau-foundation/atomtracker/lib/clock"
	"github.com/bureau-foundation/atomtracker/lib/tracker"
)

// memoryStore is an in-memory tracker.Store that records update calls.
type memoryStore struct {
	records   []atom.Record
	updates   []atom.Record
	nextID    int
	listErr   error
	updateErr error
}

func (store *memoryStore) List(context.Context) ([]atom.Record, error) {
	if store.listErr != nil {
		return nil, store.listErr
	}
	return append([]atom.Record(nil), store.records...), nil
}

func (store *memoryStore) Create(_ context.Context, record atom.Record) (atom.Record, error) {
	store.nextID++
	record.ID = fmt.Sprintf("new-%d", store.nextID)
	store.records = append(store.records, record)
	return record, nil
}

func (store *memoryStore) Update(_ context.Context, record atom.Record) (atom.Record, error) {
	store.updates = append(store.updates, record)
	if store.updateErr != nil {
		return atom.Record{}, store.updateErr
	}
	return record, nil
}

var testStart = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// newTestModel creates a sized Model whose initial load has been
// merged from store.
func newTestModel(t *testing.T, store *memoryStore) (Model, *tracker.Controller, *clock.FakeClock) {
	t.Helper()
	fake := clock.Fake(testStart)
	controller := tracker.New(store, slog.New(slog.DiscardHandler))
	model := NewModel(controller, WithClock(fake))
	model = update(t, model, tea.WindowSizeMsg{Width: 100, Height: 24})

	for _, result := range collectCalls(t, model.Init()) {
		model = update(t, model, result)
	}
	return model, controller, fake
}

// threeAtoms returns a store holding one atom of each status, listed
// in an order the tracker must re-sort.
func threeAtoms() *memoryStore {
	return &memoryStore{records: []atom.Record{
		{ID: "a", Name: "Button", Status: atom.StatusNotStarted, DevelopedBy: ""},
		{ID: "b", Name: "Input", Status: atom.StatusInDevelopment, DevelopedBy: "Ana"},
		{ID: "c", Name: "Badge", Status: atom.StatusDeveloped, DevelopedBy: "Luis"},
	}}
}

func update(t *testing.T, model Model, message tea.Msg) Model {
	t.Helper()
	updated, _ := model.Update(message)
	return updated.(Model)
}

func press(t *testing.T, model Model, message tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	updated, command := model.Update(message)
	return updated.(Model), command
}

func typeText(t *testing.T, model Model, text string) Model {
	t.Helper()
	for _, character := range text {
		model, _ = press(t, model, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{character}})
	}
	return model
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyCtrlF = tea.KeyMsg{Type: tea.KeyCtrlF}
)

// collectCalls runs command (expanding batches) and returns the store
// call results it produced. Commands that do not finish promptly are
// timers (notice fades, animation ticks) and are abandoned.
func collectCalls(t *testing.T, command tea.Cmd) []callResultMsg {
	t.Helper()
	var results []callResultMsg
	var visit func(tea.Cmd)
	visit = func(command tea.Cmd) {
		if command == nil {
			return
		}
		done := make(chan tea.Msg, 1)
		go func() { done <- command() }()
		select {
		case message := <-done:
			switch message := message.(type) {
			case tea.BatchMsg:
				for _, inner := range message {
					visit(inner)
				}
			case callResultMsg:
				results = append(results, message)
			}
		case <-time.After(200 * time.Millisecond):
		}
	}
	visit(command)
	return results
}

// viewLines returns the rendered view without styling.
func viewLines(model Model) []string {
	return strings.Split(ansi.Strip(model.View()), "\n")
}

// tableNames returns the names in the table, in display order.
func tableNames(model Model) []string {
	var names []string
	for _, index := range model.visible {
		record, _ := model.controller.Record(index)
		names = append(names, record.Name)
	}
	return names
}

func TestModelLoadingView(t *testing.T) {
	controller := tracker.New(&memoryStore{}, slog.New(slog.DiscardHandler))
	model := NewModel(controller)

	if view := model.View(); view != "Loading..." {
		t.Errorf("unsized view = %q, want Loading...", view)
	}

	model = update(t, model, tea.WindowSizeMsg{Width: 100, Height: 24})
	view := ansi.Strip(model.View())
	for _, want := range []string{Title, "Loading atoms...", "[Add Atom]", "Developed By"} {
		if !strings.Contains(view, want) {
			t.Errorf("loading view missing %q:\n%s", want, view)
		}
	}
}

func TestModelEmptyState(t *testing.T) {
	model, _, _ := newTestModel(t, &memoryStore{})
	view := ansi.Strip(model.View())

	if !strings.Contains(view, "No atoms yet") {
		t.Errorf("empty collection should show the empty-state line:\n%s", view)
	}
	if strings.Contains(view, "Loading atoms") {
		t.Errorf("loaded view should not show the spinner:\n%s", view)
	}
}

func TestModelLoadFailure(t *testing.T) {
	model, controller, _ := newTestModel(t, &memoryStore{listErr: errors.New("connection refused")})

	if controller.LoadStatus() != tracker.Failed {
		t.Fatalf("LoadStatus = %s, want failed", controller.LoadStatus())
	}
	view := ansi.Strip(model.View())
	if !strings.Contains(view, "Could not load atoms") || !strings.Contains(view, "connection refused") {
		t.Errorf("failed load should show the error:\n%s", view)
	}
	if strings.Contains(view, "No atoms yet") {
		t.Errorf("failed load is not an empty collection:\n%s", view)
	}
}

func TestModelRendersSortedTable(t *testing.T) {
	model, _, _ := newTestModel(t, threeAtoms())

	if diff := cmp.Diff([]string{"Badge", "Input", "Button"}, tableNames(model)); diff != "" {
		t.Errorf("table order mismatch (-want +got):\n%s", diff)
	}

	var rows []string
	for _, line := range viewLines(model) {
		for _, name := range []string{"Badge", "Input", "Button"} {
			if strings.HasPrefix(strings.TrimSpace(line), name) {
				rows = append(rows, name)
			}
		}
	}
	if diff := cmp.Diff([]string{"Badge", "Input", "Button"}, rows); diff != "" {
		t.Errorf("rendered order mismatch (-want +got):\n%s", diff)
	}
}

func TestModelTypingEditsDraft(t *testing.T) {
	model, controller, _ := newTestModel(t, &memoryStore{})

	model = typeText(t, model, "Button")

	if controller.Draft().Name != "Button" {
		t.Errorf("draft name = %q, want Button", controller.Draft().Name)
	}
	if !strings.Contains(ansi.Strip(model.View()), "Button") {
		t.Error("typed text should be visible in the draft row")
	}
}

func TestModelSubmitDraft(t *testing.T) {
	store := &memoryStore{}
	model, controller, fake := newTestModel(t, store)

	model = typeText(t, model, "Button")
	model, command := press(t, model, keyEnter)

	results := collectCalls(t, command)
	if len(results) != 1 || results[0].kind != callCreate {
		t.Fatalf("Enter on the draft should issue one create, got %d calls", len(results))
	}
	model = update(t, model, results[0])

	if diff := cmp.Diff([]string{"Button"}, tableNames(model)); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}
	if controller.Draft() != atom.NewDraft() {
		t.Errorf("draft not reset: %+v", controller.Draft())
	}
	if model.editor.Value() != "" {
		t.Errorf("draft editor = %q, want empty after submit", model.editor.Value())
	}
	if model.heat.Heat("new-1", fake.Now()) == 0 {
		t.Error("created row should glow")
	}
}

func TestModelSubmitBlankDraftShowsValidation(t *testing.T) {
	model, _, _ := newTestModel(t, &memoryStore{})

	model = typeText(t, model, "   ")
	model, command := press(t, model, keyEnter)

	if results := collectCalls(t, command); len(results) != 0 {
		t.Fatalf("blank draft must not reach the store, got %d calls", len(results))
	}
	if !strings.Contains(ansi.Strip(model.View()), "atom name is required") {
		t.Errorf("status bar should show the validation error:\n%s", ansi.Strip(model.View()))
	}
}

func TestModelAddButton(t *testing.T) {
	model, _, _ := newTestModel(t, &memoryStore{})
	model = typeText(t, model, "Chip")

	// Name -> Status -> Developed By -> [Add Atom].
	for range 3 {
		model, _ = press(t, model, keyTab)
	}
	if model.column != columnAdd {
		t.Fatalf("column = %d, want the add button", model.column)
	}
	_, command := press(t, model, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if results := collectCalls(t, command); len(results) != 1 || results[0].kind != callCreate {
		t.Fatalf("Space on the add button should issue one create, got %d calls", len(results))
	}
}

func TestModelEditRecordCommitsOnLeave(t *testing.T) {
	store := threeAtoms()
	model, controller, _ := newTestModel(t, store)

	// Row 1 is Badge; typing edits it locally without a store call.
	model, command := press(t, model, keyDown)
	if results := collectCalls(t, command); len(results) != 0 {
		t.Fatalf("leaving the draft row must not commit, got %d calls", len(results))
	}
	model = typeText(t, model, "s")
	if record, _ := controller.Record(0); record.Name != "Badges" {
		t.Fatalf("optimistic name = %q, want Badges", record.Name)
	}
	if len(store.updates) != 0 {
		t.Fatalf("typing must not reach the store, got %d updates", len(store.updates))
	}

	model, command = press(t, model, keyTab)
	results := collectCalls(t, command)
	if len(results) != 1 || results[0].kind != callUpdate {
		t.Fatalf("leaving the cell should issue one update, got %d calls", len(results))
	}
	want := atom.Record{ID: "c", Name: "Badges", Status: atom.StatusDeveloped, DevelopedBy: "Luis"}
	if diff := cmp.Diff([]atom.Record{want}, store.updates); diff != "" {
		t.Errorf("update payload mismatch (-want +got):\n%s", diff)
	}

	model = update(t, model, results[0])
	if record, _ := controller.Record(0); record != want {
		t.Errorf("merged record = %+v", record)
	}
}

func TestModelEnterMovesDownAndCommits(t *testing.T) {
	store := threeAtoms()
	model, _, _ := newTestModel(t, store)

	model, _ = press(t, model, keyDown)
	model, command := press(t, model, keyEnter)

	if model.row != 2 {
		t.Errorf("row = %d, want 2 after Enter on a table text cell", model.row)
	}
	if results := collectCalls(t, command); len(results) != 1 {
		t.Errorf("Enter should commit the row it left, got %d calls", len(results))
	}
}

func TestModelStatusSelectionReordersAndFollowsRecord(t *testing.T) {
	store := threeAtoms()
	model, controller, _ := newTestModel(t, store)

	// Focus Button (row 3), status column.
	model, _ = press(t, model, keyDown)
	model, _ = press(t, model, keyDown)
	model, _ = press(t, model, keyDown)
	model, _ = press(t, model, keyTab)
	if model.focusID != "a" || model.column != columnStatus {
		t.Fatalf("focus = %q column %d, want Button's status", model.focusID, model.column)
	}

	model, _ = press(t, model, keyEnter)
	if model.focusRegion != FocusDropdown {
		t.Fatal("Enter on a status cell should open the selector")
	}
	if !strings.Contains(ansi.Strip(model.View()), "> Not Started") {
		t.Errorf("selector should highlight the current status:\n%s", ansi.Strip(model.View()))
	}

	// Up from Not Started wraps to Developed.
	model, _ = press(t, model, keyUp)
	model, command := press(t, model, keyEnter)
	if results := collectCalls(t, command); len(results) != 0 {
		t.Fatalf("selecting a status must not commit yet, got %d calls", len(results))
	}

	if diff := cmp.Diff([]string{"Badge", "Button", "Input"}, tableNames(model)); diff != "" {
		t.Errorf("status edit should re-sort at once (-want +got):\n%s", diff)
	}
	if model.row != 2 || model.focusID != "a" {
		t.Errorf("cursor row %d id %q, want row 2 following Button", model.row, model.focusID)
	}
	if len(store.updates) != 0 {
		t.Errorf("no update expected before leaving the cell, got %d", len(store.updates))
	}

	_, command = press(t, model, keyTab)
	results := collectCalls(t, command)
	if len(results) != 1 || store.updates[0].Status != atom.StatusDeveloped {
		t.Fatalf("leaving should commit the new status, got %d calls %+v", len(results), store.updates)
	}
	if record, _ := controller.Record(controller.IndexOf("a")); record.Status != atom.StatusDeveloped {
		t.Errorf("controller status = %q", record.Status)
	}
}

func TestModelEscClosesSelectorBeforeQuitting(t *testing.T) {
	model, _, _ := newTestModel(t, threeAtoms())
	model, _ = press(t, model, keyTab) // draft status
	model, _ = press(t, model, keyEnter)
	if model.focusRegion != FocusDropdown {
		t.Fatal("selector should be open")
	}

	model, command := press(t, model, keyEsc)
	if command != nil {
		t.Fatal("Esc with the selector open should not quit")
	}
	if model.focusRegion != FocusCells || model.dropdown != nil {
		t.Error("Esc should close the selector")
	}

	_, command = press(t, model, keyEsc)
	if command == nil {
		t.Fatal("Esc with nothing open should quit")
	}
	if _, isQuit := command().(tea.QuitMsg); !isQuit {
		t.Error("expected QuitMsg")
	}
}

func TestModelQuit(t *testing.T) {
	model, _, _ := newTestModel(t, &memoryStore{})

	_, command := press(t, model, tea.KeyMsg{Type: tea.KeyCtrlC})
	if command == nil {
		t.Fatal("ctrl+c should return a command")
	}
	if _, isQuit := command().(tea.QuitMsg); !isQuit {
		t.Errorf("expected QuitMsg")
	}
}

func TestModelQuitCommitsFocusedRecord(t *testing.T) {
	store := threeAtoms()
	model, _, _ := newTestModel(t, store)

	model, _ = press(t, model, keyDown) // Badge
	model = typeText(t, model, "X")
	model, command := press(t, model, keyEsc)
	results := collectCalls(t, command)
	if len(results) != 1 || results[0].kind != callUpdate {
		t.Fatalf("quitting from a table cell should issue one update, got %d calls", len(results))
	}
	want := atom.Record{ID: "c", Name: "BadgeX", Status: atom.StatusDeveloped, DevelopedBy: "Luis"}
	if diff := cmp.Diff([]atom.Record{want}, store.updates); diff != "" {
		t.Errorf("update payload mismatch (-want +got):\n%s", diff)
	}

	// A second Esc while the commit is in flight sends nothing more.
	model, command = press(t, model, keyEsc)
	if command != nil {
		t.Error("keys should be ignored while the final commit is in flight")
	}

	_, command = model.Update(results[0])
	if command == nil {
		t.Fatal("merging the final commit should quit")
	}
	if _, isQuit := command().(tea.QuitMsg); !isQuit {
		t.Error("expected QuitMsg after the final commit")
	}
	if len(store.updates) != 1 {
		t.Errorf("store updates = %d, want exactly 1", len(store.updates))
	}
}

func TestModelQuitFromSelectorCommitsStatus(t *testing.T) {
	store := threeAtoms()
	store.updateErr = errors.New("HTTP 503")
	model, controller, _ := newTestModel(t, store)

	model, _ = press(t, model, keyDown) // Badge
	model, _ = press(t, model, keyTab)  // status
	model, _ = press(t, model, keyEnter)
	model, _ = press(t, model, keyUp)
	model, _ = press(t, model, keyEnter)
	selected, _ := controller.Record(controller.IndexOf("c"))

	model, _ = press(t, model, keyEnter)
	if model.focusRegion != FocusDropdown {
		t.Fatal("selector should be open")
	}
	model, command := press(t, model, tea.KeyMsg{Type: tea.KeyCtrlC})
	results := collectCalls(t, command)
	if len(results) != 1 || len(store.updates) != 1 {
		t.Fatalf("ctrl+c in the selector should commit once, got %d calls", len(results))
	}
	if store.updates[0].Status != selected.Status {
		t.Errorf("committed status = %q, want %q", store.updates[0].Status, selected.Status)
	}

	// A failed final commit still ends the program.
	_, command = model.Update(results[0])
	if command == nil {
		t.Fatal("merging a failed final commit should still quit")
	}
	if _, isQuit := command().(tea.QuitMsg); !isQuit {
		t.Error("expected QuitMsg")
	}
}

func TestModelStaleResponseDoesNotGlow(t *testing.T) {
	store := threeAtoms()
	model, _, fake := newTestModel(t, store)

	model, _ = press(t, model, keyDown) // Badge
	model = typeText(t, model, "s")
	model, command := press(t, model, keyTab)
	first := collectCalls(t, command)
	if len(first) != 1 {
		t.Fatalf("expected one commit, got %d", len(first))
	}

	// Moving back within the row commits again, so the first response
	// is stale by the time it arrives.
	model, _ = press(t, model, tea.KeyMsg{Type: tea.KeyShiftTab})
	updated, tick := model.Update(first[0])
	model = updated.(Model)

	if tick != nil || model.tickRunning {
		t.Error("a discarded response should not start the animation")
	}
	if heat := model.heat.Heat("c", fake.Now()); heat != 0 {
		t.Errorf("heat after a discarded response = %v, want 0", heat)
	}
}

func TestModelCommitFailureShowsNotice(t *testing.T) {
	store := threeAtoms()
	store.updateErr = errors.New("HTTP 500")
	model, controller, _ := newTestModel(t, store)

	model, _ = press(t, model, keyDown)
	model = typeText(t, model, "!")
	model, command := press(t, model, keyDown)
	for _, result := range collectCalls(t, command) {
		model = update(t, model, result)
	}

	if !strings.Contains(ansi.Strip(model.View()), "HTTP 500") {
		t.Errorf("status bar should show the failure:\n%s", ansi.Strip(model.View()))
	}
	if record, _ := controller.Record(controller.IndexOf("c")); record.Name != "Badge!" {
		t.Errorf("optimistic edit should remain after failure, got %q", record.Name)
	}
}

func TestModelNoticeFades(t *testing.T) {
	model, _, _ := newTestModel(t, &memoryStore{})
	model = update(t, model, logRecordMsg{Summary: "first", Level: slog.LevelWarn})
	model = update(t, model, logRecordMsg{Summary: "second", Level: slog.LevelError})

	// The fade scheduled for the first notice must not clear the second.
	model = update(t, model, noticeFadeMsg{sequence: 1})
	if model.notice != "second" {
		t.Fatalf("notice = %q, want second", model.notice)
	}
	model = update(t, model, noticeFadeMsg{sequence: 2})
	if model.notice != "" {
		t.Errorf("notice = %q, want cleared", model.notice)
	}
	if !strings.Contains(ansi.Strip(model.View()), "Tab field") {
		t.Error("status bar should fall back to key help")
	}
}

func TestModelFilter(t *testing.T) {
	model, controller, _ := newTestModel(t, threeAtoms())

	model, _ = press(t, model, keyCtrlF)
	if model.focusRegion != FocusFilter {
		t.Fatal("ctrl+f should focus the filter")
	}
	model = typeText(t, model, "ana")

	if diff := cmp.Diff([]string{"Input"}, tableNames(model)); diff != "" {
		t.Errorf("filter by developer mismatch (-want +got):\n%s", diff)
	}
	if controller.Len() != 3 {
		t.Errorf("filtering must not change the records, Len = %d", controller.Len())
	}

	model, _ = press(t, model, tea.KeyMsg{Type: tea.KeyBackspace})
	model, _ = press(t, model, tea.KeyMsg{Type: tea.KeyBackspace})
	model, _ = press(t, model, tea.KeyMsg{Type: tea.KeyBackspace})
	model = typeText(t, model, "btn")
	if diff := cmp.Diff([]string{"Button"}, tableNames(model)); diff != "" {
		t.Errorf("fuzzy filter by name mismatch (-want +got):\n%s", diff)
	}

	model, _ = press(t, model, keyEsc)
	if model.focusRegion != FocusCells || model.filter.Input != "" {
		t.Error("Esc should clear and close the filter")
	}
	if len(model.visible) != 3 {
		t.Errorf("visible rows = %d, want 3 after clearing", len(model.visible))
	}
}

func TestModelFilterKeepsFocusedRowVisible(t *testing.T) {
	model, _, _ := newTestModel(t, threeAtoms())

	model, _ = press(t, model, keyDown) // Badge
	model, command := press(t, model, keyCtrlF)
	if results := collectCalls(t, command); len(results) != 1 {
		t.Errorf("opening the filter leaves the cell and should commit, got %d calls", len(results))
	}
	model = typeText(t, model, "zzz")

	if diff := cmp.Diff([]string{"Badge"}, tableNames(model)); diff != "" {
		t.Errorf("focused row should stay visible (-want +got):\n%s", diff)
	}
}

func TestModelRowGlowDecays(t *testing.T) {
	store := threeAtoms()
	model, _, fake := newTestModel(t, store)

	model, _ = press(t, model, keyDown)
	_, command := press(t, model, keyUp)
	results := collectCalls(t, command)
	if len(results) != 1 {
		t.Fatalf("expected one commit, got %d", len(results))
	}
	updated, tick := model.Update(results[0])
	model = updated.(Model)

	if tick == nil || !model.tickRunning {
		t.Fatal("a merged response should start the animation tick")
	}
	if heat := model.heat.Heat("c", fake.Now()); heat != 1.0 {
		t.Errorf("heat at ignition = %v, want 1", heat)
	}

	fake.Advance(heatDecayDuration)
	model = update(t, model, heatTickMsg{})
	if model.tickRunning {
		t.Error("tick should stop once nothing is hot")
	}
}

func TestModelTabWrapsAroundRows(t *testing.T) {
	model, _, _ := newTestModel(t, threeAtoms())

	// Draft row has four cells and each table row three.
	for range 4 + 3*3 {
		model, _ = press(t, model, keyTab)
	}
	if model.row != 0 || model.column != columnName {
		t.Errorf("after a full cycle focus is row %d column %d, want draft name", model.row, model.column)
	}

	model, _ = press(t, model, tea.KeyMsg{Type: tea.KeyShiftTab})
	if model.row != 3 || model.column != columnDevelopedBy {
		t.Errorf("shift+tab from the first cell = row %d column %d, want last cell", model.row, model.column)
	}
}
