package ui

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/waitline/waitline/internal/format"
	"github.com/waitline/waitline/internal/queueapi"
)

type formMode int

const (
	formJoin formMode = iota
	formEdit
)

const (
	fieldName = iota
	fieldPhone
	fieldParty
	fieldStatus // edit form only
)

// entryTTL is how long a created entry lives server-side before the
// backend expires it.
const entryTTL = 30 * 24 * time.Hour

// form is the join/edit entry form. The edit form carries an extra
// status field cycled with the left/right keys rather than typed.
type form struct {
	mode    formMode
	entryID string
	inputs  []textinput.Model
	status  queueapi.Status
	focus   int
}

func newJoinForm() form {
	f := form{mode: formJoin, inputs: makeInputs()}
	f.inputs[fieldParty].SetValue("2")
	f.setFocus(fieldName)
	return f
}

func newEditForm(entry queueapi.QueueEntry) form {
	f := form{
		mode:    formEdit,
		entryID: entry.ID,
		inputs:  makeInputs(),
		status:  entry.Status,
	}
	f.inputs[fieldName].SetValue(entry.Name)
	f.inputs[fieldPhone].SetValue(entry.Phone)
	f.inputs[fieldParty].SetValue(strconv.Itoa(entry.PartySize))
	f.setFocus(fieldName)
	return f
}

func makeInputs() []textinput.Model {
	name := textinput.New()
	name.Placeholder = "Customer name"
	name.CharLimit = 80

	phone := textinput.New()
	phone.Placeholder = "Phone (digits only)"
	phone.CharLimit = 16
	phone.Validate = func(s string) error {
		if strings.ContainsFunc(s, func(r rune) bool { return r < '0' || r > '9' }) {
			return errors.New("digits only")
		}
		return nil
	}

	party := textinput.New()
	party.Placeholder = "Party size"
	party.CharLimit = 3
	party.Validate = func(s string) error {
		if strings.ContainsFunc(s, func(r rune) bool { return r < '0' || r > '9' }) {
			return errors.New("digits only")
		}
		return nil
	}

	return []textinput.Model{name, phone, party}
}

func (f *form) fieldCount() int {
	if f.mode == formEdit {
		return 4
	}
	return 3
}

func (f *form) setFocus(i int) {
	f.focus = i
	for j := range f.inputs {
		if j == i {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

func (f *form) nextField() { f.setFocus((f.focus + 1) % f.fieldCount()) }

func (f *form) prevField() { f.setFocus((f.focus + f.fieldCount() - 1) % f.fieldCount()) }

func (f *form) onStatus() bool { return f.mode == formEdit && f.focus == fieldStatus }

func (f *form) cycleStatus(delta int) {
	statuses := queueapi.Statuses
	idx := 0
	for i, s := range statuses {
		if s == f.status {
			idx = i
			break
		}
	}
	f.status = statuses[(idx+delta+len(statuses))%len(statuses)]
}

// update forwards a key to the focused text input. The status field has
// no input model, so keys there are handled by the caller.
func (f *form) update(msg tea.Msg) tea.Cmd {
	if f.onStatus() {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *form) validate() error {
	if strings.TrimSpace(f.inputs[fieldName].Value()) == "" {
		return errors.New("name is required")
	}
	size, err := strconv.Atoi(strings.TrimSpace(f.inputs[fieldParty].Value()))
	if err != nil || size < 1 {
		return errors.New("party size must be at least 1")
	}
	return nil
}

// entry builds the creation payload for a join form. validate must have
// passed first.
func (f *form) entry(now time.Time) queueapi.QueueEntry {
	size, _ := strconv.Atoi(strings.TrimSpace(f.inputs[fieldParty].Value()))
	return queueapi.QueueEntry{
		ID:          format.NewClientID(),
		Name:        strings.TrimSpace(f.inputs[fieldName].Value()),
		Phone:       strings.TrimSpace(f.inputs[fieldPhone].Value()),
		PartySize:   size,
		Status:      queueapi.StatusWaiting,
		CheckInTime: now.Format(time.RFC3339),
		Expiry:      now.Add(entryTTL).Unix(),
	}
}

// patch builds the update payload for an edit form. All fields are sent;
// the server merges whatever is present.
func (f *form) patch() queueapi.EntryPatch {
	name := strings.TrimSpace(f.inputs[fieldName].Value())
	phone := strings.TrimSpace(f.inputs[fieldPhone].Value())
	size, _ := strconv.Atoi(strings.TrimSpace(f.inputs[fieldParty].Value()))
	status := f.status
	return queueapi.EntryPatch{
		Name:      &name,
		Phone:     &phone,
		PartySize: &size,
		Status:    &status,
	}
}

func (f *form) title() string {
	if f.mode == formEdit {
		return "Edit party"
	}
	return "Add party"
}
