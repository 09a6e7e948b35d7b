// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package trackerui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/atomtracker/lib/atom"
	"github.com/bureau-foundation/atomtracker/lib/clock"
	"github.com/bureau-foundation/atomtracker/lib/tracker"
)

// Title is the heading shown on the first line of the view.
const Title = "Atomic Design Tracker"

// Layout constants.
const (
	statusColumnWidth  = 16
	columnGap          = 2
	minTextColumnWidth = 10
	buttonLabel        = "[Add Atom]"

	// chromeLines counts the fixed lines around the table: title,
	// blank, draft header, draft row, separator, table header, bottom
	// separator, help bar.
	chromeLines = 8
)

// column identifies a cell within a row. The add button exists only
// on the draft row.
type column int

const (
	columnName column = iota
	columnStatus
	columnDevelopedBy
	columnAdd
)

// field maps a text or status column to the record field it edits.
func (col column) field() tracker.Field {
	switch col {
	case columnStatus:
		return tracker.FieldStatus
	case columnDevelopedBy:
		return tracker.FieldDevelopedBy
	default:
		return tracker.FieldName
	}
}

// FocusRegion identifies which component receives keyboard input.
type FocusRegion int

const (
	// FocusCells routes keys to the focused cell of the draft row or
	// table.
	FocusCells FocusRegion = iota
	// FocusDropdown routes keys to the open status selector.
	FocusDropdown
	// FocusFilter routes keys to the filter input.
	FocusFilter
)

type callKind int

const (
	callList callKind = iota
	callCreate
	callUpdate
)

// callResultMsg carries a finished store call back to the event loop,
// where it is merged by the controller.
type callResultMsg struct {
	kind callKind

	// id is the committed record for update calls.
	id string

	result tracker.Result
}

// heatTickMsg drives the glow decay animation. While any row is hot a
// new tick is scheduled after each one.
type heatTickMsg struct{}

// noticeFadeMsg clears the status bar notice it was scheduled for. A
// newer notice replaces the sequence, so stale fades do nothing.
type noticeFadeMsg struct {
	sequence int
}

// Option configures a Model.
type Option func(*Model)

// WithClock sets the time source for animations. Defaults to
// clock.Real().
func WithClock(source clock.Clock) Option {
	return func(model *Model) { model.clock = source }
}

// WithTheme sets the color palette.
func WithTheme(theme Theme) Option {
	return func(model *Model) { model.theme = theme }
}

// WithKeyMap sets the key bindings.
func WithKeyMap(keys KeyMap) Option {
	return func(model *Model) { model.keys = keys }
}

// Model is the bubbletea model for the atom tracker: a draft row for
// new atoms above an editable table of committed atoms. Every user
// intent goes through the tracker controller; store calls run as
// commands and their results are merged back on the event loop.
type Model struct {
	controller *tracker.Controller
	keys       KeyMap
	theme      Theme
	clock      clock.Clock

	width  int
	height int
	ready  bool

	focusRegion FocusRegion

	// row 0 is the draft row; row n is the record at visible[n-1].
	row    int
	column column

	// focusID is the ID of the focused table record. The cursor
	// follows it when the list re-sorts.
	focusID string

	// visible holds controller indices of the rows shown, in display
	// order.
	visible []int

	editor   textinput.Model
	spinner  spinner.Model
	dropdown *DropdownOverlay
	filter   FilterModel

	heat        *HeatTracker
	tickRunning bool

	notice         string
	noticeLevel    slog.Level
	noticeSequence int

	// quitAfterID is the record whose final commit is in flight. The
	// program exits when that response is merged.
	quitAfterID string
}

// NewModel creates a Model over controller with focus on the draft
// name cell.
func NewModel(controller *tracker.Controller, options ...Option) Model {
	editor := textinput.New()
	editor.Prompt = ""
	editor.CharLimit = 256
	editor.Cursor.SetMode(cursor.CursorStatic)

	model := Model{
		controller: controller,
		keys:       DefaultKeyMap,
		theme:      DefaultTheme,
		clock:      clock.Real(),
		editor:     editor,
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		heat:       NewHeatTracker(),
	}
	for _, option := range options {
		option(&model)
	}
	model.refreshRows()
	model.enterCell()
	return model
}

// Init implements tea.Model. Issues the initial list fetch and starts
// the loading spinner.
func (model Model) Init() tea.Cmd {
	return tea.Batch(
		runCall(callList, "", model.controller.Initialize()),
		model.spinner.Tick,
	)
}

// runCall wraps a controller call as a command. A nil call (nothing to
// send) yields a nil command.
func runCall(kind callKind, id string, call tracker.Call) tea.Cmd {
	if call == nil {
		return nil
	}
	return func() tea.Msg {
		return callResultMsg{kind: kind, id: id, result: call(context.Background())}
	}
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		if model.quitAfterID != "" {
			return model, nil
		}
		switch model.focusRegion {
		case FocusDropdown:
			return model.handleDropdownKeys(message)
		case FocusFilter:
			return model.handleFilterKeys(message)
		}
		return model.handleCellKeys(message)

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		model.resizeEditor()

	case callResultMsg:
		return model.handleCallResult(message)

	case logRecordMsg:
		return model, model.setNotice(message.Summary, message.Level)

	case noticeFadeMsg:
		if message.sequence == model.noticeSequence {
			model.notice = ""
		}

	case heatTickMsg:
		return model.handleHeatTick()

	case spinner.TickMsg:
		if model.controller.LoadStatus() != tracker.Loading {
			// Dropping the tick stops the spinner.
			return model, nil
		}
		var command tea.Cmd
		model.spinner, command = model.spinner.Update(message)
		return model, command
	}
	return model, nil
}

// handleCellKeys processes keys while a cell has focus.
func (model Model) handleCellKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit), key.Matches(message, model.keys.Cancel):
		return model.quit()

	case key.Matches(message, model.keys.FilterActivate):
		commit := model.leaveCell()
		model.editor.Blur()
		model.focusRegion = FocusFilter
		model.filter.Active = true
		return model, commit

	case key.Matches(message, model.keys.Up):
		return model.moveTo(model.row-1, model.column)

	case key.Matches(message, model.keys.Down):
		return model.moveTo(model.row+1, model.column)

	case key.Matches(message, model.keys.NextField):
		row, col := model.adjacentCell(1)
		return model.moveTo(row, col)

	case key.Matches(message, model.keys.PrevField):
		row, col := model.adjacentCell(-1)
		return model.moveTo(row, col)

	case key.Matches(message, model.keys.Confirm):
		return model.activate()

	case key.Matches(message, model.keys.Toggle) && !model.onTextCell():
		return model.activate()
	}

	if model.onTextCell() {
		return model.editCell(message)
	}
	return model, nil
}

// activate handles Enter on the focused cell.
func (model Model) activate() (tea.Model, tea.Cmd) {
	switch {
	case model.column == columnStatus:
		model.dropdown = newStatusDropdown(model.focusedRecord().Status)
		model.focusRegion = FocusDropdown
		return model, nil

	case model.column == columnAdd, model.row == 0:
		return model.submitDraft()

	case model.row == len(model.visible):
		// Last row: there is nowhere to move, but the field is still
		// left, so commit in place.
		return model, model.leaveCell()

	default:
		return model.moveTo(model.row+1, model.column)
	}
}

// submitDraft sends the draft to the store. A blank name is refused
// by the controller and reported in the status bar.
func (model Model) submitDraft() (tea.Model, tea.Cmd) {
	call, err := model.controller.SubmitDraft()
	if err != nil {
		return model, model.setNotice(err.Error(), slog.LevelWarn)
	}
	return model, runCall(callCreate, "", call)
}

// editCell forwards a key to the text editor and pushes the new value
// into the controller when it changed.
func (model Model) editCell(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	before := model.editor.Value()
	var command tea.Cmd
	model.editor, command = model.editor.Update(message)
	value := model.editor.Value()
	if value == before {
		return model, command
	}

	if err := model.editFocused(model.column.field(), value); err != nil {
		return model, tea.Batch(command, model.setNotice(err.Error(), slog.LevelWarn))
	}
	model.refreshRows()
	return model, command
}

// editFocused applies a field value to the draft or the focused
// record.
func (model *Model) editFocused(field tracker.Field, value string) error {
	if model.row == 0 {
		return model.controller.EditDraft(field, value)
	}
	return model.controller.EditRecord(model.focusedIndex(), field, value)
}

// handleDropdownKeys processes keys while the status selector is open.
func (model Model) handleDropdownKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if model.dropdown == nil {
		model.focusRegion = FocusCells
		return model, nil
	}

	switch {
	case key.Matches(message, model.keys.Quit):
		model.dismissDropdown()
		return model.quit()

	case key.Matches(message, model.keys.Cancel):
		model.dismissDropdown()

	case key.Matches(message, model.keys.Up):
		model.dropdown.MoveUp()

	case key.Matches(message, model.keys.Down):
		model.dropdown.MoveDown()

	case key.Matches(message, model.keys.Confirm), key.Matches(message, model.keys.Toggle):
		selected := model.dropdown.Selected()
		model.dismissDropdown()
		if err := model.editFocused(tracker.FieldStatus, string(selected)); err != nil {
			return model, model.setNotice(err.Error(), slog.LevelWarn)
		}
		model.refreshRows()
	}
	return model, nil
}

// quit ends the program. Quitting from a table row leaves its cell, so
// the record is committed first and the program exits once that
// response has been merged.
func (model Model) quit() (tea.Model, tea.Cmd) {
	commit := model.leaveCell()
	if commit == nil {
		return model, tea.Quit
	}
	record, _ := model.controller.Record(model.focusedIndex())
	model.quitAfterID = record.ID
	model.editor.Blur()
	return model, commit
}

// dismissDropdown closes the status selector and returns focus to the
// cell it was opened from.
func (model *Model) dismissDropdown() {
	model.dropdown = nil
	model.focusRegion = FocusCells
}

// handleFilterKeys processes keys while the filter input has focus.
func (model Model) handleFilterKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.Cancel):
		model.filter.Clear()
		return model.closeFilter()

	case key.Matches(message, model.keys.Confirm):
		model.filter.Active = false
		return model.closeFilter()

	case message.Type == tea.KeyBackspace:
		if model.filter.HandleBackspace() {
			model.refreshRows()
		}

	case message.Type == tea.KeyRunes || message.Type == tea.KeySpace:
		for _, character := range message.Runes {
			model.filter.HandleRune(character)
		}
		model.refreshRows()
	}
	return model, nil
}

// closeFilter returns focus to the cells. The focused record was
// committed when the filter opened, so nothing is sent here.
func (model Model) closeFilter() (tea.Model, tea.Cmd) {
	model.focusRegion = FocusCells
	model.refreshRows()
	return model, model.enterCell()
}

// handleCallResult merges a store response and updates the view
// state that depends on it.
func (model Model) handleCallResult(message callResultMsg) (tea.Model, tea.Cmd) {
	known := make(map[string]bool)
	if message.kind == callCreate {
		for _, record := range model.controller.Records() {
			known[record.ID] = true
		}
	}

	merged, err := model.controller.Merge(message.result)
	if message.kind == callUpdate && model.quitAfterID != "" && message.id == model.quitAfterID {
		return model, tea.Quit
	}
	model.refreshRows()
	model.syncEditor()
	if err != nil {
		return model, model.setNotice(err.Error(), slog.LevelError)
	}
	if !merged {
		return model, nil
	}

	now := model.clock.Now()
	switch message.kind {
	case callCreate:
		for _, record := range model.controller.Records() {
			if !known[record.ID] {
				model.heat.Ignite(record.ID, now)
			}
		}
	case callUpdate:
		model.heat.Ignite(message.id, now)
	}

	if model.tickRunning || !model.heat.HasHot(now) {
		return model, nil
	}
	model.tickRunning = true
	return model, scheduleHeatTick()
}

// handleHeatTick keeps the animation ticking while any row is hot.
func (model Model) handleHeatTick() (tea.Model, tea.Cmd) {
	if model.heat.HasHot(model.clock.Now()) {
		return model, scheduleHeatTick()
	}
	model.tickRunning = false
	return model, nil
}

func scheduleHeatTick() tea.Cmd {
	return tea.Tick(heatTickInterval, func(time.Time) tea.Msg {
		return heatTickMsg{}
	})
}

// setNotice shows text in the status bar and schedules its fade.
func (model *Model) setNotice(text string, level slog.Level) tea.Cmd {
	model.noticeSequence++
	model.notice = text
	model.noticeLevel = level
	sequence := model.noticeSequence
	return tea.Tick(logRecordFadeDelay, func(time.Time) tea.Msg {
		return noticeFadeMsg{sequence: sequence}
	})
}

// moveTo focuses the given cell, clamped to the layout. Leaving a
// table cell commits its record.
func (model Model) moveTo(row int, col column) (tea.Model, tea.Cmd) {
	row = max(0, min(row, len(model.visible)))
	col = min(col, lastColumn(row))
	if row == model.row && col == model.column {
		return model, nil
	}

	commit := model.leaveCell()
	model.row = row
	model.column = col
	model.focusID = model.recordIDAt(row)
	return model, tea.Batch(commit, model.enterCell())
}

// adjacentCell returns the cell step positions away in reading order,
// wrapping between the last table cell and the draft row.
func (model Model) adjacentCell(step int) (int, column) {
	row := model.row
	col := int(model.column) + step
	switch {
	case col > int(lastColumn(row)):
		row++
		if row > len(model.visible) {
			row = 0
		}
		col = int(columnName)
	case col < int(columnName):
		row--
		if row < 0 {
			row = len(model.visible)
		}
		col = int(lastColumn(row))
	}
	return row, column(col)
}

func lastColumn(row int) column {
	if row == 0 {
		return columnAdd
	}
	return columnDevelopedBy
}

// leaveCell commits the focused table record. The draft row never
// commits.
func (model *Model) leaveCell() tea.Cmd {
	if model.row == 0 {
		return nil
	}
	index := model.focusedIndex()
	record, ok := model.controller.Record(index)
	if !ok {
		return nil
	}
	return runCall(callUpdate, record.ID, model.controller.CommitRecord(index))
}

// enterCell loads the focused text cell into the editor.
func (model *Model) enterCell() tea.Cmd {
	model.editor.Blur()
	if !model.onTextCell() {
		return nil
	}
	model.editor.SetValue(model.cellValue())
	model.editor.CursorEnd()
	model.resizeEditor()
	return model.editor.Focus()
}

// syncEditor replaces the editor text when the focused field changed
// underneath it (a merged response or a reset draft).
func (model *Model) syncEditor() {
	if !model.onTextCell() {
		return
	}
	if value := model.cellValue(); model.editor.Value() != value {
		model.editor.SetValue(value)
		model.editor.CursorEnd()
	}
}

func (model *Model) resizeEditor() {
	model.editor.Width = max(model.columnWidth(model.column)-1, 1)
}

func (model Model) onTextCell() bool {
	return model.focusRegion == FocusCells &&
		(model.column == columnName || model.column == columnDevelopedBy)
}

// focusedIndex returns the controller index of the focused table
// record, or -1 on the draft row.
func (model Model) focusedIndex() int {
	if model.row == 0 {
		return -1
	}
	if model.focusID != "" {
		return model.controller.IndexOf(model.focusID)
	}
	if model.row-1 < len(model.visible) {
		return model.visible[model.row-1]
	}
	return -1
}

// focusedRecord returns the draft or the focused table record.
func (model Model) focusedRecord() atom.Record {
	if model.row == 0 {
		return model.controller.Draft()
	}
	record, _ := model.controller.Record(model.focusedIndex())
	return record
}

func (model Model) cellValue() string {
	record := model.focusedRecord()
	switch model.column {
	case columnName:
		return record.Name
	case columnDevelopedBy:
		return record.DevelopedBy
	default:
		return string(record.Status)
	}
}

func (model Model) recordIDAt(row int) string {
	if row == 0 || row-1 >= len(model.visible) {
		return ""
	}
	record, _ := model.controller.Record(model.visible[row-1])
	return record.ID
}

// refreshRows recomputes the visible rows from the controller and the
// filter, then moves the cursor to wherever the focused record ended
// up. The focused record stays visible even when it stops matching
// the filter, so editing never makes the row vanish.
func (model *Model) refreshRows() {
	var visible []int
	if model.controller.LoadStatus() != tracker.Loading {
		for index, record := range model.controller.Records() {
			focused := model.focusID != "" && record.ID == model.focusID
			if focused || model.filter.Matches(record) {
				visible = append(visible, index)
			}
		}
	}
	model.visible = visible

	if model.row == 0 {
		return
	}
	if model.focusID != "" {
		for position, index := range visible {
			if record, _ := model.controller.Record(index); record.ID == model.focusID {
				model.row = position + 1
				return
			}
		}
	}
	model.row = min(model.row, len(visible))
	model.column = min(model.column, lastColumn(model.row))
	model.focusID = model.recordIDAt(model.row)
}

// textColumnWidths splits the width left after the status and button
// columns between the name and developer columns.
func (model Model) textColumnWidths() (int, int) {
	available := model.width - 2 - statusColumnWidth - len(buttonLabel) - 3*columnGap
	name := max(available/2, minTextColumnWidth)
	developer := max(available-name, minTextColumnWidth)
	return name, developer
}

func (model Model) columnWidth(col column) int {
	name, developer := model.textColumnWidths()
	switch col {
	case columnName:
		return name
	case columnDevelopedBy:
		return developer
	case columnStatus:
		return statusColumnWidth
	default:
		return len(buttonLabel)
	}
}

// columnX returns the screen X of a column's first character.
func (model Model) columnX(col column) int {
	x := 1
	for preceding := columnName; preceding < col; preceding++ {
		x += model.columnWidth(preceding) + columnGap
	}
	return x
}

// tableCapacity returns how many table rows fit on screen.
func (model Model) tableCapacity() int {
	used := chromeLines
	if model.filter.Active || model.filter.Input != "" {
		used++
	}
	if model.controller.LoadStatus() == tracker.Failed {
		used++
	}
	return max(model.height-used, 1)
}

// tableWindow returns the range of visible positions on screen,
// scrolled so the focused row is shown.
func (model Model) tableWindow() (int, int) {
	capacity := model.tableCapacity()
	start := 0
	if model.row > capacity {
		start = model.row - capacity
	}
	return start, min(len(model.visible), start+capacity)
}

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return "Loading..."
	}

	titleStyle := lipgloss.NewStyle().Foreground(model.theme.TitleForeground).Bold(true)
	faintStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	separator := lipgloss.NewStyle().
		Foreground(model.theme.BorderColor).
		Render(strings.Repeat("─", model.width))

	// focusLine is the view line of the focused row, where the status
	// selector is anchored.
	focusLine := -1

	lines := []string{titleStyle.Render(" " + Title), ""}
	lines = append(lines, model.renderHeader("Name", "Status", "Developed By"))
	if model.row == 0 {
		focusLine = len(lines)
	}
	lines = append(lines, model.renderRow(0, model.controller.Draft()))
	lines = append(lines, separator)

	switch model.controller.LoadStatus() {
	case tracker.Loading:
		lines = append(lines, " "+model.spinner.View()+" Loading atoms...")

	default:
		if err := model.controller.LoadError(); err != nil {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(model.theme.ErrorText).
				Render(" Could not load atoms: "+err.Error()))
		}
		switch {
		case model.controller.Len() == 0:
			if model.controller.LoadStatus() == tracker.Loaded {
				lines = append(lines, faintStyle.Render(" No atoms yet. Add one above."))
			}
		case len(model.visible) == 0:
			lines = append(lines, faintStyle.Render(" No atoms match the filter."))
		default:
			lines = append(lines, model.renderHeader("Atom", "Status", "Developer"))
			start, end := model.tableWindow()
			for position := start; position < end; position++ {
				row := position + 1
				if row == model.row {
					focusLine = len(lines)
				}
				record, _ := model.controller.Record(model.visible[position])
				lines = append(lines, model.renderRow(row, record))
			}
		}
	}

	if filterView := model.filter.View(model.theme, model.width); filterView != "" {
		lines = append(lines, filterView)
	}
	lines = append(lines, separator, model.renderHelp())

	output := strings.Join(lines, "\n")
	if model.dropdown != nil && focusLine >= 0 {
		output = spliceOverlay(output, model.dropdown.Render(model.theme),
			model.columnX(columnStatus), focusLine+1)
	}
	return output
}

// renderHeader renders the column captions for the draft row or the
// table.
func (model Model) renderHeader(name, status, developer string) string {
	style := lipgloss.NewStyle().Foreground(model.theme.HeaderForeground).Bold(true)
	gap := strings.Repeat(" ", columnGap)
	return " " + strings.Join([]string{
		style.Render(fit(name, model.columnWidth(columnName))),
		style.Render(fit(status, statusColumnWidth)),
		style.Render(fit(developer, model.columnWidth(columnDevelopedBy))),
	}, gap)
}

// renderRow renders the draft row (row 0) or a table row.
func (model Model) renderRow(row int, record atom.Record) string {
	cells := []string{
		model.renderTextCell(row, columnName, record.Name, "atom name"),
		model.renderStatusCell(row, record.Status),
		model.renderTextCell(row, columnDevelopedBy, record.DevelopedBy, "developer"),
	}
	if row == 0 {
		cells = append(cells, model.renderButton())
	}
	line := " " + strings.Join(cells, strings.Repeat(" ", columnGap))

	if row > 0 && row != model.row {
		if heat := model.heat.Heat(record.ID, model.clock.Now()); heat > 0 {
			line = lipgloss.NewStyle().
				Background(model.theme.HotAccent).
				Width(model.width).
				MaxWidth(model.width).
				Render(line)
		}
	}
	return line
}

func (model Model) cellFocused(row int, col column) bool {
	return model.focusRegion != FocusFilter && row == model.row && col == model.column
}

func (model Model) renderTextCell(row int, col column, value, placeholder string) string {
	width := model.columnWidth(col)
	if model.cellFocused(row, col) && model.onTextCell() {
		return lipgloss.NewStyle().
			Background(model.theme.SelectedBackground).
			Foreground(model.theme.SelectedForeground).
			Render(fit(model.editor.View(), width))
	}
	if value == "" && row == 0 {
		return lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(fit(placeholder, width))
	}
	return lipgloss.NewStyle().Foreground(model.theme.NormalText).Render(fit(value, width))
}

func (model Model) renderStatusCell(row int, status atom.Status) string {
	style := lipgloss.NewStyle().Foreground(model.theme.StatusColor(status))
	if model.cellFocused(row, columnStatus) {
		style = style.Background(model.theme.SelectedBackground).Bold(true)
	}
	return style.Render(fit(string(status)+" ▾", statusColumnWidth))
}

func (model Model) renderButton() string {
	style := lipgloss.NewStyle().
		Foreground(model.theme.ButtonForeground).
		Background(model.theme.ButtonBackground)
	if model.cellFocused(0, columnAdd) {
		style = style.Background(model.theme.SelectedBackground).Bold(true).Underline(true)
	}
	return style.Render(buttonLabel)
}

// renderHelp renders the status bar: the latest notice while one is
// showing, the key help otherwise.
func (model Model) renderHelp() string {
	if model.notice != "" {
		return lipgloss.NewStyle().
			Foreground(model.theme.LevelColor(model.noticeLevel)).
			Render(ansi.Truncate(" "+model.notice, model.width, "…"))
	}

	focusIndicator := "EDIT"
	switch {
	case model.focusRegion == FocusDropdown:
		focusIndicator = "SELECT"
	case model.focusRegion == FocusFilter:
		focusIndicator = "FILTER"
	case model.row == 0:
		focusIndicator = "NEW"
	}

	help := fmt.Sprintf(" [%s] Tab field  ↑↓ row  Enter select/add  C-f filter  Esc quit", focusIndicator)
	if model.filter.Input != "" {
		help += fmt.Sprintf("  %d/%d atoms", len(model.visible), model.controller.Len())
	} else if model.controller.LoadStatus() != tracker.Loading {
		help += fmt.Sprintf("  %d atoms", model.controller.Len())
	}
	return lipgloss.NewStyle().
		Foreground(model.theme.HelpText).
		Render(ansi.Truncate(help, model.width, "…"))
}

// fit truncates or pads content to exactly width columns.
func fit(content string, width int) string {
	truncated := ansi.Truncate(content, width, "…")
	if pad := width - ansi.StringWidth(truncated); pad > 0 {
		truncated += strings.Repeat(" ", pad)
	}
	return truncated
}
