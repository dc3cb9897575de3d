package session

import (
	"testing"

	"github.com/proplens/proplens/models"
)

func TestRegistry_EmitDeliversInOrder(t *testing.T) {
	r := NewRegistry()

	var got []models.ProgressEvent
	r.Register("s1", SinkFunc(func(ev models.ProgressEvent) {
		got = append(got, ev)
	}))

	r.Emit("s1", models.ProgressEvent{Status: models.StatusStarting, URLIndex: 0})
	r.Emit("s1", models.ProgressEvent{Status: models.StatusScraping, URLIndex: 0, Message: "page 1: 10 rows"})
	r.Emit("s1", models.ProgressEvent{Status: models.StatusCompleted, URLIndex: 0})

	if len(got) != 3 {
		t.Fatalf("delivered %d events, want 3", len(got))
	}
	want := []models.ProgressStatus{models.StatusStarting, models.StatusScraping, models.StatusCompleted}
	for i, ev := range got {
		if ev.Status != want[i] {
			t.Errorf("event %d status = %q, want %q", i, ev.Status, want[i])
		}
		if ev.SessionID != "s1" {
			t.Errorf("event %d session id = %q, want s1", i, ev.SessionID)
		}
	}
}

func TestRegistry_EmitAfterRemoveIsNoop(t *testing.T) {
	r := NewRegistry()

	delivered := 0
	r.Register("s1", SinkFunc(func(models.ProgressEvent) { delivered++ }))

	r.Emit("s1", models.ProgressEvent{Status: models.StatusStarting})
	r.Remove("s1")
	r.Emit("s1", models.ProgressEvent{Status: models.StatusCompleted}) // must not panic

	if delivered != 1 {
		t.Errorf("delivered %d events, want 1 (emits after Remove are dropped)", delivered)
	}
}

func TestRegistry_EmitUnknownSessionIsNoop(t *testing.T) {
	r := NewRegistry()
	// Must not panic and must not deliver anywhere.
	r.Emit("never-registered", models.ProgressEvent{Status: models.StatusError})
}

func TestRegistry_StartedAt(t *testing.T) {
	r := NewRegistry()

	if _, ok := r.StartedAt("s1"); ok {
		t.Error("StartedAt should report false for unknown session")
	}

	r.Register("s1", SinkFunc(func(models.ProgressEvent) {}))
	started, ok := r.StartedAt("s1")
	if !ok || started.IsZero() {
		t.Errorf("StartedAt = (%v, %v), want non-zero time and true", started, ok)
	}

	r.Remove("s1")
	if _, ok := r.StartedAt("s1"); ok {
		t.Error("StartedAt should report false after Remove")
	}
}
