package model

import "time"

// Task priority levels.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

var priorityRank = map[string]int{
	PriorityHigh:   3,
	PriorityMedium: 2,
	PriorityLow:    1,
}

// PriorityRank orders priorities for sorting; higher is more urgent.
// Unknown values rank below low.
func PriorityRank(p string) int { return priorityRank[p] }

// Task is a captured to-do item. Deadline is a calendar date in
// YYYY-MM-DD form with no time component; empty means no deadline.
type Task struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	Done       bool      `json:"done"`
	Priority   string    `json:"priority"`
	Deadline   string    `json:"deadline,omitempty"`
	Categories []string  `json:"categories"`
	Subtasks   []Subtask `json:"subtasks"`
	CreatedAt  int64     `json:"created_at"`
}

// Subtask is a checklist entry within a task.
// Its lifecycle is bound to the parent task.
type Subtask struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// Normalize fills defaults into records stored before newer fields
// existed. It touches only the in-memory record; the stored form is
// rewritten on the next save.
func (t *Task) Normalize() {
	switch t.Priority {
	case PriorityLow, PriorityMedium, PriorityHigh:
	default:
		t.Priority = PriorityMedium
	}
	if t.Categories == nil {
		t.Categories = []string{}
	}
	if t.Subtasks == nil {
		t.Subtasks = []Subtask{}
	}
}

// DeadlineDate parses the deadline at local midnight. The second
// return is false when the task has no usable deadline.
func (t Task) DeadlineDate() (time.Time, bool) {
	if t.Deadline == "" {
		return time.Time{}, false
	}
	d, err := time.ParseInLocation("2006-01-02", t.Deadline, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// Overdue reports whether the task is incomplete with a deadline
// strictly before today's local midnight.
func (t Task) Overdue(now time.Time) bool {
	if t.Done {
		return false
	}
	d, ok := t.DeadlineDate()
	if !ok {
		return false
	}
	return d.Before(Midnight(now))
}

// DueSoon reports whether the task is incomplete with a deadline
// falling on today or tomorrow.
func (t Task) DueSoon(now time.Time) bool {
	if t.Done {
		return false
	}
	d, ok := t.DeadlineDate()
	if !ok {
		return false
	}
	today := Midnight(now)
	return !d.Before(today) && d.Before(today.AddDate(0, 0, 2))
}

// SubtaskProgress returns checked and total subtask counts.
func (t Task) SubtaskProgress() (done, total int) {
	for _, st := range t.Subtasks {
		if st.Done {
			done++
		}
	}
	return done, len(t.Subtasks)
}

// CreatedTime converts the epoch-millisecond creation stamp.
func (t Task) CreatedTime() time.Time { return time.UnixMilli(t.CreatedAt) }

// Midnight returns local midnight of t's day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
