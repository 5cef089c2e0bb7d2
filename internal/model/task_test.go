package model

import (
	"testing"
	"time"
)

func TestTaskOverdue(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.Local)
	tests := []struct {
		name     string
		deadline string
		done     bool
		want     bool
	}{
		{"no deadline", "", false, false},
		{"yesterday", "2026-03-09", false, true},
		{"today", "2026-03-10", false, false},
		{"tomorrow", "2026-03-11", false, false},
		{"completed yesterday", "2026-03-09", true, false},
		{"far past", "2020-01-01", false, true},
		{"unparseable", "soon", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := Task{Text: "x", Done: tt.done, Deadline: tt.deadline}
			if got := task.Overdue(now); got != tt.want {
				t.Errorf("Overdue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTaskDueSoon(t *testing.T) {
	// Late in the day so midnight truncation matters.
	now := time.Date(2026, 3, 10, 23, 59, 0, 0, time.Local)
	tests := []struct {
		name     string
		deadline string
		done     bool
		want     bool
	}{
		{"today", "2026-03-10", false, true},
		{"tomorrow", "2026-03-11", false, true},
		{"day after tomorrow", "2026-03-12", false, false},
		{"yesterday", "2026-03-09", false, false},
		{"completed today", "2026-03-10", true, false},
		{"no deadline", "", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := Task{Text: "x", Done: tt.done, Deadline: tt.deadline}
			if got := task.DueSoon(now); got != tt.want {
				t.Errorf("DueSoon() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDeadlineTodayNotOverdue(t *testing.T) {
	// A deadline of "today" stays actionable all day, even at 23:59.
	now := time.Date(2026, 3, 10, 23, 59, 59, 0, time.Local)
	task := Task{Text: "x", Deadline: "2026-03-10"}
	if task.Overdue(now) {
		t.Error("task due today reported overdue")
	}
	if !task.DueSoon(now) {
		t.Error("task due today not reported due soon")
	}
}

func TestNormalizeDefaults(t *testing.T) {
	task := Task{ID: "a1", Text: "legacy record", CreatedAt: 1700000000000}
	task.Normalize()
	if task.Priority != PriorityMedium {
		t.Errorf("priority = %q, want %q", task.Priority, PriorityMedium)
	}
	if task.Categories == nil || len(task.Categories) != 0 {
		t.Errorf("categories = %#v, want empty slice", task.Categories)
	}
	if task.Subtasks == nil || len(task.Subtasks) != 0 {
		t.Errorf("subtasks = %#v, want empty slice", task.Subtasks)
	}
}

func TestNormalizeKeepsValidValues(t *testing.T) {
	task := Task{
		Priority:   PriorityHigh,
		Categories: []string{"work"},
		Subtasks:   []Subtask{{ID: "s1", Text: "step"}},
	}
	task.Normalize()
	if task.Priority != PriorityHigh {
		t.Errorf("priority = %q, want %q", task.Priority, PriorityHigh)
	}
	if len(task.Categories) != 1 || task.Categories[0] != "work" {
		t.Errorf("categories = %#v, want [work]", task.Categories)
	}
	if len(task.Subtasks) != 1 {
		t.Errorf("subtasks = %#v, want one entry", task.Subtasks)
	}
}

func TestSubtaskProgress(t *testing.T) {
	task := Task{Subtasks: []Subtask{{Done: true}, {Done: false}, {Done: true}}}
	done, total := task.SubtaskProgress()
	if done != 2 || total != 3 {
		t.Errorf("SubtaskProgress() = %d/%d, want 2/3", done, total)
	}
}

func TestPriorityRankOrdering(t *testing.T) {
	if PriorityRank(PriorityHigh) <= PriorityRank(PriorityMedium) {
		t.Error("high should outrank medium")
	}
	if PriorityRank(PriorityMedium) <= PriorityRank(PriorityLow) {
		t.Error("medium should outrank low")
	}
	if PriorityRank("bogus") >= PriorityRank(PriorityLow) {
		t.Error("unknown priority should rank below low")
	}
}
