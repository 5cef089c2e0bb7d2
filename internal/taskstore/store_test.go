package taskstore

import (
	"testing"

	"github.com/nhle/voicedesk/internal/model"
	"github.com/nhle/voicedesk/internal/storage"
	"github.com/nhle/voicedesk/tests/testutil"
)

func newStore(t *testing.T) (*Store, *storage.KV) {
	t.Helper()
	kv := testutil.NewKV(t)
	s := New(kv)
	s.Load()
	return s, kv
}

// persisted reads the stored collection back the way a restart would.
func persisted(t *testing.T, kv *storage.KV) []model.Task {
	t.Helper()
	fresh := New(kv)
	fresh.Load()
	return fresh.Tasks()
}

func TestAddPrepends(t *testing.T) {
	s, kv := newStore(t)

	if !s.Add("first", AddOptions{}) {
		t.Fatal("Add returned false")
	}
	if !s.Add("second", AddOptions{}) {
		t.Fatal("Add returned false")
	}

	tasks := s.Tasks()
	if len(tasks) != 2 {
		t.Fatalf("len = %d, want 2", len(tasks))
	}
	if tasks[0].Text != "second" || tasks[1].Text != "first" {
		t.Errorf("order = %q, %q; want newest first", tasks[0].Text, tasks[1].Text)
	}

	stored := persisted(t, kv)
	if len(stored) != 2 || stored[0].Text != "second" {
		t.Errorf("persisted order wrong: %#v", stored)
	}
}

func TestAddDefaults(t *testing.T) {
	s, _ := newStore(t)
	s.Add("plain", AddOptions{})

	task := s.Tasks()[0]
	if task.ID == "" {
		t.Error("missing id")
	}
	if task.Priority != model.PriorityMedium {
		t.Errorf("priority = %q, want medium", task.Priority)
	}
	if task.Deadline != "" {
		t.Errorf("deadline = %q, want none", task.Deadline)
	}
	if task.Categories == nil || task.Subtasks == nil {
		t.Error("categories/subtasks not initialized")
	}
	if task.CreatedAt == 0 {
		t.Error("missing creation stamp")
	}
}

func TestAddEmptyTextNoOp(t *testing.T) {
	s, kv := newStore(t)

	if s.Add("", AddOptions{}) {
		t.Error("empty add accepted")
	}
	if s.Add("   \t ", AddOptions{}) {
		t.Error("whitespace add accepted")
	}
	if s.Len() != 0 {
		t.Errorf("len = %d, want 0", s.Len())
	}

	// Nothing was ever written.
	var stored []model.Task
	if kv.Get(storage.KeyTasks, &stored) {
		t.Error("rejected add reached storage")
	}
}

func TestToggleTwicePersistsBothStates(t *testing.T) {
	s, kv := newStore(t)
	s.Add("flip me", AddOptions{})
	id := s.Tasks()[0].ID

	if !s.Toggle(id) {
		t.Fatal("toggle failed")
	}
	if got := persisted(t, kv); !got[0].Done {
		t.Error("first toggle not persisted")
	}

	if !s.Toggle(id) {
		t.Fatal("second toggle failed")
	}
	if got := persisted(t, kv); got[0].Done {
		t.Error("second toggle not persisted")
	}
}

func TestToggleUnknownIDNoOp(t *testing.T) {
	s, _ := newStore(t)
	s.Add("keep", AddOptions{})

	if s.Toggle("nope") {
		t.Error("unknown id toggled")
	}
	if s.Tasks()[0].Done {
		t.Error("collection mutated")
	}
}

func TestUpdateTextEmptyKeepsPrevious(t *testing.T) {
	s, kv := newStore(t)
	s.Add("original", AddOptions{})
	id := s.Tasks()[0].ID

	if s.UpdateText(id, "   ") {
		t.Error("empty edit accepted")
	}
	if got := s.Tasks()[0].Text; got != "original" {
		t.Errorf("text = %q, want original kept", got)
	}

	if !s.UpdateText(id, "edited") {
		t.Fatal("edit failed")
	}
	if got := persisted(t, kv)[0].Text; got != "edited" {
		t.Errorf("persisted text = %q, want edited", got)
	}
}

func TestSetDeadlinePriorityCategories(t *testing.T) {
	s, kv := newStore(t)
	s.Add("meta", AddOptions{})
	id := s.Tasks()[0].ID

	if !s.SetDeadline(id, "2026-09-01") {
		t.Fatal("SetDeadline failed")
	}
	if !s.SetPriority(id, model.PriorityHigh) {
		t.Fatal("SetPriority failed")
	}
	if s.SetPriority(id, "urgent-ish") {
		t.Error("unknown priority accepted")
	}
	if !s.SetCategories(id, []string{"home", "errands"}) {
		t.Fatal("SetCategories failed")
	}

	got := persisted(t, kv)[0]
	if got.Deadline != "2026-09-01" || got.Priority != model.PriorityHigh {
		t.Errorf("persisted deadline/priority = %q/%q", got.Deadline, got.Priority)
	}
	if len(got.Categories) != 2 || got.Categories[0] != "home" {
		t.Errorf("persisted categories = %#v", got.Categories)
	}

	if !s.SetDeadline(id, "") {
		t.Fatal("clearing deadline failed")
	}
	if got := persisted(t, kv)[0].Deadline; got != "" {
		t.Errorf("deadline = %q after clear", got)
	}
}

func TestRemoveCascadesSubtasks(t *testing.T) {
	s, kv := newStore(t)
	s.Add("parent", AddOptions{})
	id := s.Tasks()[0].ID
	s.AddSubtask(id, "step one")
	s.AddSubtask(id, "step two")
	s.ToggleExpanded(id)

	if !s.Remove(id) {
		t.Fatal("remove failed")
	}
	if s.Len() != 0 {
		t.Errorf("len = %d, want 0", s.Len())
	}
	if s.IsExpanded(id) {
		t.Error("expanded marker survived removal")
	}

	if stored := persisted(t, kv); len(stored) != 0 {
		t.Errorf("persisted collection not empty: %#v", stored)
	}
}

func TestSubtaskLifecycle(t *testing.T) {
	s, kv := newStore(t)
	s.Add("parent", AddOptions{})
	id := s.Tasks()[0].ID

	if !s.AddSubtask(id, "step") {
		t.Fatal("AddSubtask failed")
	}
	if s.AddSubtask(id, "  ") {
		t.Error("empty subtask accepted")
	}
	if s.AddSubtask("nope", "step") {
		t.Error("subtask added to unknown parent")
	}

	sub := s.Tasks()[0].Subtasks[0]
	if sub.ID == "" {
		t.Fatal("subtask missing id")
	}

	if !s.ToggleSubtask(id, sub.ID) {
		t.Fatal("ToggleSubtask failed")
	}
	if !persisted(t, kv)[0].Subtasks[0].Done {
		t.Error("subtask toggle not persisted")
	}
	if s.ToggleSubtask(id, "nope") {
		t.Error("unknown subtask toggled")
	}

	if !s.RemoveSubtask(id, sub.ID) {
		t.Fatal("RemoveSubtask failed")
	}
	if got := persisted(t, kv)[0].Subtasks; len(got) != 0 {
		t.Errorf("persisted subtasks = %#v, want empty", got)
	}
}

func TestLegacyRecordsNormalizedAtLoad(t *testing.T) {
	kv := testutil.NewKV(t)
	kv.SetRaw(storage.KeyTasks,
		`[{"id":"x1","text":"old","done":false,"created_at":1600000000000}]`)

	s := New(kv)
	s.Load()

	task := s.Tasks()[0]
	if task.Priority != model.PriorityMedium {
		t.Errorf("priority = %q, want medium", task.Priority)
	}
	if task.Categories == nil || task.Subtasks == nil {
		t.Error("categories/subtasks not defaulted")
	}

	// The stored bytes stay untouched until the next mutation.
	var raw []map[string]interface{}
	kv.Get(storage.KeyTasks, &raw)
	if _, ok := raw[0]["priority"]; ok {
		t.Error("load rewrote the stored record")
	}

	s.Toggle("x1")
	kv.Get(storage.KeyTasks, &raw)
	if got := raw[0]["priority"]; got != model.PriorityMedium {
		t.Errorf("after mutation priority = %v, want medium", got)
	}
}

func TestCorruptCollectionFallsBackEmpty(t *testing.T) {
	kv := testutil.NewKV(t)
	kv.SetRaw(storage.KeyTasks, "{broken")

	s := New(kv)
	s.Load()

	if s.Len() != 0 {
		t.Errorf("len = %d, want 0", s.Len())
	}

	// The store keeps working after the fallback.
	if !s.Add("recovered", AddOptions{}) {
		t.Fatal("add after fallback failed")
	}
	if got := persisted(t, kv); len(got) != 1 || got[0].Text != "recovered" {
		t.Errorf("persisted after recovery: %#v", got)
	}
}
