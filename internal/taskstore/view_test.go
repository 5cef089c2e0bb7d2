package taskstore

import (
	"testing"
	"time"

	"github.com/nhle/voicedesk/internal/model"
	"github.com/nhle/voicedesk/internal/storage"
	"github.com/nhle/voicedesk/tests/testutil"
)

func dateOffset(now time.Time, days int) string {
	return model.Midnight(now).AddDate(0, 0, days).Format("2006-01-02")
}

func texts(tasks []model.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Text
	}
	return out
}

func TestOverdueFilter(t *testing.T) {
	s, _ := newStore(t)
	now := time.Now()

	s.Add("overdue open", AddOptions{Deadline: dateOffset(now, -1)})
	s.Add("overdue done", AddOptions{Deadline: dateOffset(now, -1)})
	s.Add("due today", AddOptions{Deadline: dateOffset(now, 0)})
	s.Add("undated", AddOptions{})

	for _, task := range s.Tasks() {
		if task.Text == "overdue done" {
			s.Toggle(task.ID)
		}
	}

	s.SetFilter(FilterOverdue)
	vis := s.Visible(now)
	if len(vis) != 1 || vis[0].Text != "overdue open" {
		t.Errorf("overdue filter = %v, want [overdue open]", texts(vis))
	}
}

func TestActiveCompletedFilters(t *testing.T) {
	s, _ := newStore(t)
	now := time.Now()

	s.Add("open one", AddOptions{})
	s.Add("done one", AddOptions{})
	for _, task := range s.Tasks() {
		if task.Text == "done one" {
			s.Toggle(task.ID)
		}
	}

	s.SetFilter(FilterActive)
	if vis := s.Visible(now); len(vis) != 1 || vis[0].Text != "open one" {
		t.Errorf("active filter = %v", texts(vis))
	}

	s.SetFilter(FilterCompleted)
	if vis := s.Visible(now); len(vis) != 1 || vis[0].Text != "done one" {
		t.Errorf("completed filter = %v", texts(vis))
	}

	s.SetFilter(FilterAll)
	if vis := s.Visible(now); len(vis) != 2 {
		t.Errorf("all filter = %v", texts(vis))
	}
}

func TestPrioritySortStable(t *testing.T) {
	s, _ := newStore(t)
	now := time.Now()

	s.Add("low", AddOptions{Priority: model.PriorityLow})
	s.Add("medium older", AddOptions{})
	s.Add("high", AddOptions{Priority: model.PriorityHigh})
	s.Add("medium newer", AddOptions{})
	// Storage order: medium newer, high, medium older, low.

	s.SetSort(SortPriority)
	got := texts(s.Visible(now))
	want := []string{"high", "medium newer", "medium older", "low"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("priority sort = %v, want %v", got, want)
		}
	}
}

func TestDeadlineSortDatedFirst(t *testing.T) {
	s, _ := newStore(t)
	now := time.Now()

	s.Add("late", AddOptions{Deadline: dateOffset(now, 9)})
	s.Add("undated", AddOptions{})
	s.Add("early", AddOptions{Deadline: dateOffset(now, 2)})
	// Storage order: early, undated, late.

	s.SetSort(SortDeadline)
	got := texts(s.Visible(now))
	want := []string{"early", "late", "undated"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("deadline sort = %v, want %v", got, want)
		}
	}
}

func TestNewestOldestSort(t *testing.T) {
	kv := testutil.NewKV(t)
	// Scrambled storage order with explicit stamps.
	kv.SetRaw(storage.KeyTasks, `[
		{"id":"b","text":"middle","created_at":2000},
		{"id":"c","text":"newest","created_at":3000},
		{"id":"a","text":"oldest","created_at":1000}
	]`)
	s := New(kv)
	s.Load()
	now := time.Now()

	s.SetSort(SortNewest)
	if got := texts(s.Visible(now)); got[0] != "newest" || got[2] != "oldest" {
		t.Errorf("newest sort = %v", got)
	}

	s.SetSort(SortOldest)
	if got := texts(s.Visible(now)); got[0] != "oldest" || got[2] != "newest" {
		t.Errorf("oldest sort = %v", got)
	}
}

func TestVisibleDoesNotDisturbStorage(t *testing.T) {
	s, kv := newStore(t)
	now := time.Now()

	s.Add("high", AddOptions{Priority: model.PriorityHigh})
	s.Add("low", AddOptions{Priority: model.PriorityLow})
	// Storage order: low, high.

	s.SetSort(SortPriority)
	if got := texts(s.Visible(now)); got[0] != "high" {
		t.Fatalf("priority sort = %v", got)
	}

	if got := texts(s.Tasks()); got[0] != "low" || got[1] != "high" {
		t.Errorf("storage order disturbed: %v", got)
	}
	if got := persisted(t, kv); got[0].Text != "low" {
		t.Errorf("persisted order disturbed: %v", texts(got))
	}
}

func TestCycleFilterAndSort(t *testing.T) {
	s, _ := newStore(t)

	if s.CurrentFilter() != FilterAll || s.CurrentSort() != SortNewest {
		t.Fatal("unexpected initial view state")
	}
	if got := s.CycleFilter(); got != FilterActive {
		t.Errorf("CycleFilter = %q, want active", got)
	}
	s.CycleFilter()
	s.CycleFilter()
	if got := s.CycleFilter(); got != FilterAll {
		t.Errorf("filter cycle did not wrap: %q", got)
	}
	if got := s.CycleSort(); got != SortOldest {
		t.Errorf("CycleSort = %q, want oldest", got)
	}
}

func TestProgress(t *testing.T) {
	s, _ := newStore(t)
	now := time.Now()

	s.Add("a", AddOptions{})
	s.Add("b", AddOptions{})
	s.Add("c", AddOptions{Deadline: dateOffset(now, -3)})
	s.Add("d", AddOptions{})
	for _, task := range s.Tasks() {
		if task.Text == "a" || task.Text == "b" {
			s.Toggle(task.ID)
		}
	}

	p := s.Progress(now)
	if p.Total != 4 || p.Done != 2 || p.Overdue != 1 || p.Percent != 50 {
		t.Errorf("Progress = %+v, want {4 2 1 50}", p)
	}
}

func TestGroupByDay(t *testing.T) {
	now := time.Now()
	stamp := func(daysAgo int) int64 {
		return model.Midnight(now).AddDate(0, 0, -daysAgo).Add(10 * time.Hour).UnixMilli()
	}

	tasks := []model.Task{
		{Text: "t1", CreatedAt: stamp(0)},
		{Text: "t2", CreatedAt: stamp(0)},
		{Text: "y1", CreatedAt: stamp(1)},
		{Text: "old", CreatedAt: stamp(40)},
	}

	groups := GroupByDay(tasks, now)
	if len(groups) != 3 {
		t.Fatalf("groups = %d, want 3", len(groups))
	}
	if groups[0].Label != "Today" || len(groups[0].Tasks) != 2 {
		t.Errorf("first group = %q (%d tasks)", groups[0].Label, len(groups[0].Tasks))
	}
	if groups[1].Label != "Yesterday" || len(groups[1].Tasks) != 1 {
		t.Errorf("second group = %q", groups[1].Label)
	}
	if groups[2].Label == "Today" || groups[2].Label == "Yesterday" {
		t.Errorf("third group = %q, want a dated label", groups[2].Label)
	}
}

func TestDayLabel(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.Local)
	sameYear := time.Date(2026, 6, 5, 8, 0, 0, 0, time.Local)
	priorYear := time.Date(2025, 12, 31, 8, 0, 0, 0, time.Local)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"today", now.Add(-2 * time.Hour), "Today"},
		{"yesterday", now.AddDate(0, 0, -1), "Yesterday"},
		{"same year", sameYear, sameYear.Format("Mon, Jan 2")},
		{"prior year", priorYear, priorYear.Format("Jan 2, 2006")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DayLabel(tt.t, now); got != tt.want {
				t.Errorf("DayLabel = %q, want %q", got, tt.want)
			}
		})
	}
}
