package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/waitline/waitline/internal/config"
	"github.com/waitline/waitline/internal/queueapi"
	"github.com/waitline/waitline/internal/state"
)

type stubReloader struct{ snap state.Snapshot }

func (s *stubReloader) Reload(ctx context.Context) state.Snapshot { return s.snap }

type stubService struct{ err error }

func (s *stubService) FetchQueue(ctx context.Context, status queueapi.Status) ([]queueapi.QueueEntry, error) {
	return nil, s.err
}

func (s *stubService) Create(ctx context.Context, entry queueapi.QueueEntry) (queueapi.QueueEntry, error) {
	return entry, s.err
}

func (s *stubService) Update(ctx context.Context, id string, patch queueapi.EntryPatch) (queueapi.QueueEntry, error) {
	return queueapi.QueueEntry{ID: id}, s.err
}

func (s *stubService) Remove(ctx context.Context, id string) error { return s.err }

func testEntry(id string, status queueapi.Status, checkIn time.Time) queueapi.QueueEntry {
	return queueapi.QueueEntry{
		ID:          id,
		Name:        "Party " + id,
		PartySize:   2,
		Status:      status,
		CheckInTime: checkIn.Format(time.RFC3339),
	}
}

func newTestModel(t *testing.T, service queueapi.QueueService, entries []queueapi.QueueEntry) Model {
	t.Helper()
	store := &state.Store{}
	store.Update(entries, false, nil)
	m := New(Options{
		Context:    context.Background(),
		Controller: &stubReloader{},
		Service:    service,
		Store:      store,
		Config:     &config.Config{Stage: "dev"},
		ThemeName:  "Dracula",
		PrefsPath:  t.TempDir() + "/prefs.toml",
	})
	m.width = 120
	m.height = 40
	return m
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNextFilter_CyclesThroughAllStatuses(t *testing.T) {
	seen := []queueapi.Status{""}
	current := queueapi.Status("")
	for range queueapi.Statuses {
		current = nextFilter(current)
		seen = append(seen, current)
	}
	if got := nextFilter(current); got != "" {
		t.Fatalf("cycle should return to all, got %q", got)
	}
	want := []queueapi.Status{"", queueapi.StatusWaiting, queueapi.StatusCalled, queueapi.StatusSeated, queueapi.StatusCancelled}
	for i, status := range want {
		if seen[i] != status {
			t.Fatalf("step %d = %q, want %q", i, seen[i], status)
		}
	}
}

func TestFilterKey_ResetsCursor(t *testing.T) {
	now := time.Now()
	m := newTestModel(t, &stubService{}, []queueapi.QueueEntry{
		testEntry("a", queueapi.StatusWaiting, now.Add(-10*time.Minute)),
		testEntry("b", queueapi.StatusWaiting, now.Add(-5*time.Minute)),
	})
	m.cursor = 1

	next, _ := m.Update(keyRune('f'))
	m = next.(Model)
	if m.filter != queueapi.StatusWaiting {
		t.Fatalf("filter = %q, want waiting", m.filter)
	}
	if m.cursor != 0 {
		t.Fatalf("cursor = %d, want 0 after filter change", m.cursor)
	}
}

func TestMutationKeys_InertInDemoMode(t *testing.T) {
	m := newTestModel(t, nil, []queueapi.QueueEntry{
		testEntry("a", queueapi.StatusWaiting, time.Now()),
	})

	next, cmd := m.Update(keyRune('a'))
	m = next.(Model)
	if cmd != nil {
		t.Fatalf("demo mode should not issue commands")
	}
	if m.current != viewQueue {
		t.Fatalf("demo mode should not open the form")
	}
	if len(m.toasts) == 0 || !strings.Contains(m.toasts[0].text, "Demo mode") {
		t.Fatalf("toasts = %#v, want demo-mode explanation", m.toasts)
	}
}

func TestJoinKey_OpensForm(t *testing.T) {
	m := newTestModel(t, &stubService{}, nil)

	next, _ := m.Update(keyRune('a'))
	m = next.(Model)
	if m.current != viewForm || m.form.mode != formJoin {
		t.Fatalf("current = %v mode = %v, want join form", m.current, m.form.mode)
	}
}

func TestCallKey_IgnoredForSeatedParty(t *testing.T) {
	m := newTestModel(t, &stubService{}, []queueapi.QueueEntry{
		testEntry("a", queueapi.StatusSeated, time.Now().Add(-time.Hour)),
	})

	next, cmd := m.Update(keyRune('c'))
	m = next.(Model)
	if cmd != nil || m.mutating {
		t.Fatalf("call must only apply to waiting parties")
	}
}

func TestCallKey_TransitionsWaitingParty(t *testing.T) {
	m := newTestModel(t, &stubService{}, []queueapi.QueueEntry{
		testEntry("a", queueapi.StatusWaiting, time.Now().Add(-time.Minute)),
	})

	next, cmd := m.Update(keyRune('c'))
	m = next.(Model)
	if cmd == nil {
		t.Fatalf("call on a waiting party should issue an update command")
	}
	if !m.mutating {
		t.Fatalf("mutating flag should gate further writes")
	}

	msg, ok := cmd().(mutationMsg)
	if !ok {
		t.Fatalf("cmd produced %T, want mutationMsg", cmd())
	}
	if msg.verb != "called" || msg.err != nil {
		t.Fatalf("msg = %#v, want successful call", msg)
	}
}

func TestRemoveFlow_ConfirmThenCancel(t *testing.T) {
	m := newTestModel(t, &stubService{}, []queueapi.QueueEntry{
		testEntry("a", queueapi.StatusWaiting, time.Now()),
	})

	next, _ := m.Update(keyRune('x'))
	m = next.(Model)
	if m.current != viewConfirmRemove || m.confirmID != "a" {
		t.Fatalf("expected confirmation for entry a, got view %v id %q", m.current, m.confirmID)
	}

	next, cmd := m.Update(keyRune('n'))
	m = next.(Model)
	if cmd != nil || m.current != viewQueue || m.confirmID != "" {
		t.Fatalf("cancel should return to the queue without a command")
	}
}

func TestRemoveFlow_ConfirmIssuesDelete(t *testing.T) {
	m := newTestModel(t, &stubService{}, []queueapi.QueueEntry{
		testEntry("a", queueapi.StatusWaiting, time.Now()),
	})

	next, _ := m.Update(keyRune('x'))
	m = next.(Model)
	next, cmd := m.Update(keyRune('y'))
	m = next.(Model)
	if cmd == nil || !m.mutating {
		t.Fatalf("confirm should issue the delete command")
	}
	msg := cmd().(mutationMsg)
	if msg.verb != "removed" || msg.err != nil {
		t.Fatalf("msg = %#v, want successful removal", msg)
	}
}

func TestMutationSuccess_SchedulesReload(t *testing.T) {
	m := newTestModel(t, &stubService{}, nil)
	m.mutating = true

	next, cmd := m.Update(mutationMsg{verb: "added", name: "Ana"})
	m = next.(Model)
	if m.mutating {
		t.Fatalf("mutating should clear once the call finishes")
	}
	if cmd == nil {
		t.Fatalf("a successful mutation must schedule a reload")
	}
	if _, ok := cmd().(reloadMsg); !ok {
		t.Fatalf("follow-up command should be the reload")
	}
	if len(m.toasts) != 1 || m.toasts[0].level != toastSuccess {
		t.Fatalf("toasts = %#v, want one success toast", m.toasts)
	}
}

func TestMutationFailure_ShowsErrorWithoutReload(t *testing.T) {
	m := newTestModel(t, &stubService{}, nil)
	m.mutating = true

	next, cmd := m.Update(mutationMsg{verb: "added", name: "Ana", err: context.DeadlineExceeded})
	m = next.(Model)
	if cmd != nil {
		t.Fatalf("a failed mutation must not reload")
	}
	if len(m.toasts) != 1 || m.toasts[0].level != toastError {
		t.Fatalf("toasts = %#v, want one error toast", m.toasts)
	}
}

func TestTick_ClampsCursorAfterShrink(t *testing.T) {
	now := time.Now()
	m := newTestModel(t, &stubService{}, []queueapi.QueueEntry{
		testEntry("a", queueapi.StatusWaiting, now),
		testEntry("b", queueapi.StatusWaiting, now),
	})
	m.cursor = 1
	m.opts.Store.Update([]queueapi.QueueEntry{testEntry("a", queueapi.StatusWaiting, now)}, false, nil)

	next, _ := m.Update(tickMsg(now))
	m = next.(Model)
	if m.cursor != 0 {
		t.Fatalf("cursor = %d, want clamped to 0", m.cursor)
	}
}

func TestTick_SurfacesBackgroundPollFailure(t *testing.T) {
	store := &state.Store{}
	m := New(Options{
		Context:    context.Background(),
		Controller: &stubReloader{},
		Service:    &stubService{},
		Store:      store,
		Config:     &config.Config{Stage: "dev"},
		ThemeName:  "Dracula",
		PrefsPath:  t.TempDir() + "/prefs.toml",
	})
	m.width = 120
	m.height = 40

	// A failure recorded by the background poller must reach the user
	// even though no reloadMsg flows through the model.
	store.Update(nil, false, errors.New("connection refused"))
	next, _ := m.Update(tickMsg(time.Now()))
	m = next.(Model)
	if len(m.toasts) != 1 || m.toasts[0].level != toastError {
		t.Fatalf("toasts = %#v, want one error toast after a poll failure", m.toasts)
	}
	out := m.View()
	if !strings.Contains(out, "connection refused") {
		t.Fatalf("view should surface the failure:\n%s", out)
	}
	if !strings.Contains(out, "--:--") {
		t.Fatalf("a never-successful fetch must not show a refresh clock:\n%s", out)
	}

	next, _ = m.Update(tickMsg(time.Now()))
	m = next.(Model)
	if len(m.toasts) != 1 {
		t.Fatalf("the same failure should be reported once, got %d toasts", len(m.toasts))
	}

	store.Update(nil, false, errors.New("connection refused"))
	next, _ = m.Update(tickMsg(time.Now()))
	m = next.(Model)
	if len(m.toasts) != 2 {
		t.Fatalf("each new poll failure should toast, got %d toasts", len(m.toasts))
	}
}

func TestEscape_ClosesFormAndConfirm(t *testing.T) {
	m := newTestModel(t, &stubService{}, []queueapi.QueueEntry{
		testEntry("a", queueapi.StatusWaiting, time.Now()),
	})

	next, _ := m.Update(keyRune('a'))
	m = next.(Model)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	if m.current != viewQueue {
		t.Fatalf("escape should close the form")
	}

	next, _ = m.Update(keyRune('x'))
	m = next.(Model)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	if cmd != nil || m.current != viewQueue || m.confirmID != "" {
		t.Fatalf("escape should cancel the removal confirmation")
	}
}

func TestPruneToasts_DropsExpired(t *testing.T) {
	now := time.Now()
	toasts := []toast{
		{text: "old", expires: now.Add(-time.Second)},
		{text: "fresh", expires: now.Add(time.Second)},
	}
	kept := pruneToasts(toasts, now)
	if len(kept) != 1 || kept[0].text != "fresh" {
		t.Fatalf("kept = %#v, want only the fresh toast", kept)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("truncate(short) = %q", got)
	}
	if got := truncate("a very long customer name", 10); len([]rune(got)) != 10 {
		t.Fatalf("truncate length = %d, want 10", len([]rune(got)))
	}
}

func TestView_RendersDemoBadgeAndRows(t *testing.T) {
	m := newTestModel(t, nil, nil)
	m.opts.Store.Update([]queueapi.QueueEntry{
		testEntry("a", queueapi.StatusWaiting, time.Now().Add(-10*time.Minute)),
	}, true, nil)
	next, _ := m.Update(tickMsg(time.Now()))
	m = next.(Model)

	out := m.View()
	if !strings.Contains(out, "DEMO") {
		t.Fatalf("view should carry the DEMO badge:\n%s", out)
	}
	if !strings.Contains(out, "Party a") {
		t.Fatalf("view should list the entry:\n%s", out)
	}
}

func TestThemeKey_CyclesAndPersists(t *testing.T) {
	m := newTestModel(t, &stubService{}, nil)

	next, _ := m.Update(keyRune('t'))
	m = next.(Model)
	if m.theme.Name != "Slate" {
		t.Fatalf("theme = %q, want Slate after one cycle", m.theme.Name)
	}
}
