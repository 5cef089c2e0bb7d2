package tasklist

import (
	"fmt"
	"strings"
	"time"

	"github.com/nhle/voicedesk/internal/model"
	"github.com/nhle/voicedesk/internal/taskstore"
	"github.com/nhle/voicedesk/internal/theme"
)

// rowKind tells the renderer and cursor what a row holds.
type rowKind int

const (
	rowHeading rowKind = iota // day group label, not selectable
	rowTask
	rowSubtask
)

// row is one rendered line of the task list. Expanded tasks contribute
// one row per subtask directly below their own row.
type row struct {
	kind     rowKind
	label    string // heading rows only
	task     model.Task
	subtask  model.Subtask
	parentID string // subtask rows only
}

func (r row) selectable() bool {
	return r.kind != rowHeading
}

// buildRows flattens visible tasks into rows: a heading per day group,
// a row per task, and a row per subtask for expanded tasks.
func buildRows(tasks []model.Task, expanded func(string) bool, now time.Time) []row {
	var rows []row
	for _, group := range taskstore.GroupByDay(tasks, now) {
		rows = append(rows, row{kind: rowHeading, label: group.Label})
		for _, task := range group.Tasks {
			rows = append(rows, row{kind: rowTask, task: task})
			if !expanded(task.ID) {
				continue
			}
			for _, sub := range task.Subtasks {
				rows = append(rows, row{
					kind:     rowSubtask,
					subtask:  sub,
					parentID: task.ID,
				})
			}
		}
	}
	return rows
}

// checkbox renders the done marker for tasks and subtasks.
func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// priorityLabel returns a one-letter marker for the given priority.
func priorityLabel(priority string) string {
	switch priority {
	case model.PriorityHigh:
		return "H"
	case model.PriorityLow:
		return "L"
	default:
		return "M"
	}
}

// deadlineLabel renders the due date fragment for a task row, styled
// by urgency. Returns "" for undated tasks.
func deadlineLabel(task model.Task, now time.Time) string {
	due, ok := task.DeadlineDate()
	if !ok {
		return ""
	}

	text := "due " + due.Format("Jan 02")
	switch {
	case task.Overdue(now):
		return theme.OverdueStyle.Render(text + " OVERDUE")
	case task.DueSoon(now):
		return theme.DueSoonStyle.Render(text)
	default:
		return theme.DimStyle.Render(text)
	}
}

// categoryLabels renders the ordered category list for a task row.
func categoryLabels(task model.Task) string {
	if len(task.Categories) == 0 {
		return ""
	}
	parts := make([]string, len(task.Categories))
	for i, c := range task.Categories {
		parts[i] = "[" + c + "]"
	}
	return theme.CategoryStyle.Render(strings.Join(parts, " "))
}

// renderTaskRow draws one task line.
func renderTaskRow(task model.Task, selected bool, now time.Time) string {
	pri := theme.PriorityStyle(task.Priority).Render(priorityLabel(task.Priority))

	text := task.Text
	if task.Done {
		text = theme.DoneStyle.Render(text)
	}

	parts := []string{checkbox(task.Done), pri, text}

	if cats := categoryLabels(task); cats != "" {
		parts = append(parts, cats)
	}
	if due := deadlineLabel(task, now); due != "" {
		parts = append(parts, due)
	}
	if done, total := task.SubtaskProgress(); total > 0 {
		parts = append(parts, theme.DimStyle.Render(
			fmt.Sprintf("(%d/%d)", done, total),
		))
	}

	line := strings.Join(parts, " ")
	if selected {
		return theme.SelectedItemStyle.Render(line)
	}
	return theme.ListItemStyle.Render(line)
}

// renderSubtaskRow draws one subtask line under its expanded parent.
func renderSubtaskRow(sub model.Subtask, selected bool) string {
	text := sub.Text
	if sub.Done {
		text = theme.DoneStyle.Render(text)
	}

	line := "   " + checkbox(sub.Done) + " " + text
	if selected {
		return theme.SelectedItemStyle.Render(line)
	}
	return theme.ListItemStyle.Render(line)
}
