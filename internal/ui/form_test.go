package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/waitline/waitline/internal/queueapi"
)

func TestFormValidate_RequiresName(t *testing.T) {
	f := newJoinForm()
	f.inputs[fieldParty].SetValue("2")
	if err := f.validate(); err == nil {
		t.Fatalf("empty name should fail validation")
	}

	f.inputs[fieldName].SetValue("Ana")
	if err := f.validate(); err != nil {
		t.Fatalf("validate() = %v, want nil", err)
	}
}

func TestFormValidate_RejectsZeroParty(t *testing.T) {
	f := newJoinForm()
	f.inputs[fieldName].SetValue("Ana")
	f.inputs[fieldParty].SetValue("0")
	if err := f.validate(); err == nil {
		t.Fatalf("party size 0 should fail validation")
	}
}

func TestJoinForm_EntryPayload(t *testing.T) {
	f := newJoinForm()
	f.inputs[fieldName].SetValue("  Ana  ")
	f.inputs[fieldPhone].SetValue("11999998888")
	f.inputs[fieldParty].SetValue("4")

	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	entry := f.entry(now)

	if entry.Name != "Ana" {
		t.Errorf("Name = %q, want trimmed Ana", entry.Name)
	}
	if entry.Status != queueapi.StatusWaiting {
		t.Errorf("Status = %q, new parties always start waiting", entry.Status)
	}
	if entry.PartySize != 4 {
		t.Errorf("PartySize = %d, want 4", entry.PartySize)
	}
	if entry.CheckInTime != now.Format(time.RFC3339) {
		t.Errorf("CheckInTime = %q", entry.CheckInTime)
	}
	if want := now.Add(30 * 24 * time.Hour).Unix(); entry.Expiry != want {
		t.Errorf("Expiry = %d, want %d", entry.Expiry, want)
	}
	if !strings.HasPrefix(entry.ID, "customer-") {
		t.Errorf("ID = %q, want client-generated id", entry.ID)
	}
}

func TestEditForm_PrefillsAndPatches(t *testing.T) {
	src := queueapi.QueueEntry{
		ID:        "abc",
		Name:      "Bruno",
		Phone:     "11988887777",
		PartySize: 3,
		Status:    queueapi.StatusWaiting,
	}
	f := newEditForm(src)

	if f.inputs[fieldName].Value() != "Bruno" || f.inputs[fieldParty].Value() != "3" {
		t.Fatalf("edit form should prefill the entry fields")
	}

	f.setFocus(fieldStatus)
	f.cycleStatus(1)
	if f.status != queueapi.StatusCalled {
		t.Fatalf("status = %q, want called after one cycle", f.status)
	}

	patch := f.patch()
	if patch.Name == nil || *patch.Name != "Bruno" {
		t.Errorf("patch.Name = %v", patch.Name)
	}
	if patch.Status == nil || *patch.Status != queueapi.StatusCalled {
		t.Errorf("patch.Status = %v", patch.Status)
	}
	if patch.PartySize == nil || *patch.PartySize != 3 {
		t.Errorf("patch.PartySize = %v", patch.PartySize)
	}
}

func TestCycleStatus_WrapsBothWays(t *testing.T) {
	f := newEditForm(queueapi.QueueEntry{Status: queueapi.StatusWaiting})
	f.cycleStatus(-1)
	if f.status != queueapi.StatusCancelled {
		t.Fatalf("status = %q, want wrap to cancelled", f.status)
	}
	f.cycleStatus(1)
	if f.status != queueapi.StatusWaiting {
		t.Fatalf("status = %q, want back to waiting", f.status)
	}
}

func TestFieldNavigation_SkipsNothing(t *testing.T) {
	f := newEditForm(queueapi.QueueEntry{Status: queueapi.StatusWaiting})
	order := []int{fieldPhone, fieldParty, fieldStatus, fieldName}
	for _, want := range order {
		f.nextField()
		if f.focus != want {
			t.Fatalf("focus = %d, want %d", f.focus, want)
		}
	}
}
