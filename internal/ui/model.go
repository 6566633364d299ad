package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/charmbracelet/bubbles/key"

	"github.com/waitline/waitline/internal/config"
	"github.com/waitline/waitline/internal/prefs"
	"github.com/waitline/waitline/internal/queue"
	"github.com/waitline/waitline/internal/queueapi"
	"github.com/waitline/waitline/internal/state"
)

// Reloader triggers a refresh cycle and reports the resulting snapshot.
// *app.Controller satisfies it.
type Reloader interface {
	Reload(ctx context.Context) state.Snapshot
}

// Options configure the TUI.
type Options struct {
	Context    context.Context
	Controller Reloader
	Service    queueapi.QueueService // nil in demo mode
	Store      *state.Store
	Config     *config.Config
	ThemeName  string
	PrefsPath  string
}

type view int

const (
	viewQueue view = iota
	viewForm
	viewConfirmRemove
	viewHelp
)

type (
	// tickMsg drives the 1s re-render: wait clocks, toast expiry, and
	// picking up snapshots written by the background poller.
	tickMsg time.Time

	// reloadMsg carries the snapshot from an explicit reload.
	reloadMsg state.Snapshot

	// mutationMsg reports the outcome of a create/update/remove call.
	mutationMsg struct {
		verb string // "added", "called", "seated", "updated", "removed"
		name string
		err  error
	}
)

// Model is the Bubble Tea model for the waitline TUI.
type Model struct {
	opts   Options
	theme  Theme
	styles Styles
	keys   KeyMap

	width  int
	height int

	snapshot state.Snapshot
	now      time.Time

	filter  queueapi.Status // empty means all
	cursor  int
	current view

	form      form
	confirmID string
	confirm   string // display name of the entry pending removal

	mutating bool
	toasts   []toast

	// seenFailures is the ConsecutiveFailures count already surfaced as a
	// toast, so each background poll failure is reported exactly once.
	seenFailures int
}

// New builds the initial model from the already-populated options.
func New(opts Options) Model {
	theme := GetTheme(opts.ThemeName)
	return Model{
		opts:     opts,
		theme:    theme,
		styles:   theme.Styles(),
		keys:     defaultKeyMap(),
		snapshot: opts.Store.Snapshot(),
		now:      time.Now(),
	}
}

func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) reloadCmd() tea.Cmd {
	ctrl := m.opts.Controller
	ctx := m.opts.Context
	return func() tea.Msg {
		return reloadMsg(ctrl.Reload(ctx))
	}
}

func (m Model) createCmd(entry queueapi.QueueEntry) tea.Cmd {
	service := m.opts.Service
	ctx := m.opts.Context
	return func() tea.Msg {
		_, err := service.Create(ctx, entry)
		return mutationMsg{verb: "added", name: entry.Name, err: err}
	}
}

func (m Model) updateCmd(id, name, verb string, patch queueapi.EntryPatch) tea.Cmd {
	service := m.opts.Service
	ctx := m.opts.Context
	return func() tea.Msg {
		_, err := service.Update(ctx, id, patch)
		return mutationMsg{verb: verb, name: name, err: err}
	}
}

func (m Model) removeCmd(id, name string) tea.Cmd {
	service := m.opts.Service
	ctx := m.opts.Context
	return func() tea.Msg {
		err := service.Remove(ctx, id)
		return mutationMsg{verb: "removed", name: name, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.now = time.Time(msg)
		m.snapshot = m.opts.Store.Snapshot()
		m.toasts = pruneToasts(m.toasts, m.now)
		m.clampCursor()
		m = m.surfaceNewFailure()
		return m, tickCmd()

	case reloadMsg:
		m.snapshot = state.Snapshot(msg)
		m.clampCursor()
		m = m.surfaceNewFailure()
		return m, nil

	case mutationMsg:
		m.mutating = false
		if msg.err != nil {
			m = m.pushToast(fmt.Sprintf("Could not update %s: %v", msg.name, msg.err), toastError)
			return m, nil
		}
		m = m.pushToast(fmt.Sprintf("%s %s", msg.name, msg.verb), toastSuccess)
		// Every successful mutation is followed by a full reload so the
		// view reflects what the server actually stored.
		return m, m.reloadCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.current == viewForm {
		return m, m.form.update(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.current {
	case viewForm:
		return m.handleFormKey(msg)
	case viewConfirmRemove:
		return m.handleConfirmKey(msg)
	case viewHelp:
		m.current = viewQueue
		return m, nil
	}
	return m.handleQueueKey(msg)
}

func (m Model) handleQueueKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.rows()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(rows)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.snapshot.Loading = true
		return m, m.reloadCmd()

	case key.Matches(msg, m.keys.Filter):
		m.filter = nextFilter(m.filter)
		m.cursor = 0
		return m, nil

	case key.Matches(msg, m.keys.Theme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.styles = m.theme.Styles()
		// Persistence is best-effort; a read-only config dir should not
		// break theme switching.
		_ = prefs.Save(m.opts.PrefsPath, prefs.Prefs{Theme: m.theme.Name})
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.current = viewHelp
		return m, nil

	case key.Matches(msg, m.keys.Join):
		if !m.canMutate() {
			return m.explainReadOnly(), nil
		}
		m.form = newJoinForm()
		m.current = viewForm
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		if len(rows) == 0 {
			return m, nil
		}
		if !m.canMutate() {
			return m.explainReadOnly(), nil
		}
		m.form = newEditForm(rows[m.cursor].Entry)
		m.current = viewForm
		return m, nil

	case key.Matches(msg, m.keys.Call):
		return m.applyAction(rows, queue.ActionCall)

	case key.Matches(msg, m.keys.Seat):
		return m.applyAction(rows, queue.ActionSeat)

	case key.Matches(msg, m.keys.Remove):
		if len(rows) == 0 {
			return m, nil
		}
		if !m.canMutate() {
			return m.explainReadOnly(), nil
		}
		m.confirmID = rows[m.cursor].Entry.ID
		m.confirm = rows[m.cursor].Entry.Name
		m.current = viewConfirmRemove
		return m, nil
	}
	return m, nil
}

// applyAction runs a status transition on the selected row if that
// transition is offered for the row's current status.
func (m Model) applyAction(rows []queue.Row, action queue.Action) (tea.Model, tea.Cmd) {
	if len(rows) == 0 {
		return m, nil
	}
	if !m.canMutate() {
		return m.explainReadOnly(), nil
	}
	row := rows[m.cursor]
	offered := false
	for _, a := range row.Actions {
		if a == action {
			offered = true
			break
		}
	}
	if !offered {
		return m, nil
	}
	m.mutating = true
	patch := queueapi.StatusPatch(action.Target())
	verb := "called"
	if action == queue.ActionSeat {
		verb = "seated"
	}
	return m, m.updateCmd(row.Entry.ID, row.Entry.Name, verb, patch)
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) {
		m.current = viewQueue
		return m, nil
	}
	switch msg.String() {
	case "tab", "down":
		m.form.nextField()
		return m, nil
	case "shift+tab", "up":
		m.form.prevField()
		return m, nil
	case "left":
		if m.form.onStatus() {
			m.form.cycleStatus(-1)
			return m, nil
		}
	case "right":
		if m.form.onStatus() {
			m.form.cycleStatus(1)
			return m, nil
		}
	case "enter":
		return m.submitForm()
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, m.form.update(msg)
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	if err := m.form.validate(); err != nil {
		return m.pushToast(err.Error(), toastError), nil
	}
	if m.snapshot.Loading || m.mutating {
		return m.pushToast("Busy, try again in a moment", toastInfo), nil
	}
	m.current = viewQueue
	m.mutating = true
	if m.form.mode == formEdit {
		name := m.form.inputs[fieldName].Value()
		return m, m.updateCmd(m.form.entryID, name, "updated", m.form.patch())
	}
	entry := m.form.entry(time.Now())
	return m, m.createCmd(entry)
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) {
		m.current = viewQueue
		m.confirmID, m.confirm = "", ""
		return m, nil
	}
	switch msg.String() {
	case "y", "Y", "enter":
		id, name := m.confirmID, m.confirm
		m.current = viewQueue
		m.confirmID, m.confirm = "", ""
		m.mutating = true
		return m, m.removeCmd(id, name)
	case "n", "N":
		m.current = viewQueue
		m.confirmID, m.confirm = "", ""
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

// canMutate reports whether mutation keys should act right now.
func (m Model) canMutate() bool {
	return m.opts.Service != nil && !m.snapshot.Loading && !m.mutating
}

func (m Model) explainReadOnly() Model {
	if m.opts.Service == nil {
		return m.pushToast("Demo mode: set the API URL to make changes", toastInfo)
	}
	return m.pushToast("Busy, try again in a moment", toastInfo)
}

// surfaceNewFailure toasts reload failures the model has not reported
// yet, whether they came from a UI-triggered reload or the background
// poller.
func (m Model) surfaceNewFailure() Model {
	failures := m.snapshot.ConsecutiveFailures
	if failures > m.seenFailures && m.snapshot.LastError != nil {
		m = m.pushToast(fmt.Sprintf("Refresh failed: %v", m.snapshot.LastError), toastError)
	}
	m.seenFailures = failures
	return m
}

func (m Model) pushToast(text string, level toastLevel) Model {
	m.toasts = append(m.toasts, newToast(text, level, time.Now()))
	return m
}

// rows builds the current view-model rows under the active filter.
func (m Model) rows() []queue.Row {
	return queue.Build(m.snapshot.Entries, m.filter, m.now).Rows
}

func (m *Model) clampCursor() {
	if n := len(m.rows()); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

// nextFilter cycles all -> waiting -> called -> seated -> cancelled -> all.
func nextFilter(current queueapi.Status) queueapi.Status {
	if current == "" {
		return queueapi.Statuses[0]
	}
	for i, s := range queueapi.Statuses {
		if s == current {
			if i == len(queueapi.Statuses)-1 {
				return ""
			}
			return queueapi.Statuses[i+1]
		}
	}
	return ""
}

// Run starts the TUI and blocks until it exits or the context is
// cancelled.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(opts.Context))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && opts.Context.Err() != nil {
		// Context cancellation (SIGINT/SIGTERM) is a normal shutdown.
		return nil
	}
	return err
}
