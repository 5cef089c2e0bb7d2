// Package taskstore manages the task collection: ordered records with
// subtasks, deadlines, priorities and category labels, written through
// to storage after every mutation.
package taskstore

import (
	"strings"
	"time"

	"github.com/nhle/voicedesk/internal/model"
	"github.com/nhle/voicedesk/internal/storage"
)

// Store holds the task collection and its view state. Methods are not
// safe for concurrent use; the application calls them from its update
// loop only. Every successful mutation is written through to storage
// before the method returns.
type Store struct {
	kv    *storage.KV
	tasks []model.Task

	filter   Filter
	sort     Sort
	expanded map[string]bool
}

// New creates a store bound to kv. Call Load before first use.
func New(kv *storage.KV) *Store {
	return &Store{
		kv:       kv,
		tasks:    []model.Task{},
		filter:   FilterAll,
		sort:     SortNewest,
		expanded: make(map[string]bool),
	}
}

// Load reads the collection from storage, defaulting fields missing
// from records saved by older versions. The stored form is not
// rewritten until the next mutation.
func (s *Store) Load() {
	tasks := []model.Task{}
	s.kv.Get(storage.KeyTasks, &tasks)
	for i := range tasks {
		tasks[i].Normalize()
	}
	s.tasks = tasks
}

func (s *Store) save() {
	s.kv.Set(storage.KeyTasks, s.tasks)
}

// AddOptions carries the optional fields of a new task.
type AddOptions struct {
	Deadline   string // YYYY-MM-DD, empty for none
	Priority   string // defaults to medium
	Categories []string
}

// Add prepends a new task so the collection stays newest first. It
// returns false without storing anything when text trims to empty.
func (s *Store) Add(text string, opts AddOptions) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	task := model.Task{
		ID:         model.NewID(),
		Text:       text,
		Priority:   opts.Priority,
		Deadline:   opts.Deadline,
		Categories: opts.Categories,
		CreatedAt:  time.Now().UnixMilli(),
	}
	task.Normalize()

	s.tasks = append([]model.Task{task}, s.tasks...)
	s.save()
	return true
}

// find returns the index of the task with id, or -1.
func (s *Store) find(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// Toggle flips a task's completion state. Unknown ids are ignored.
func (s *Store) Toggle(id string) bool {
	i := s.find(id)
	if i < 0 {
		return false
	}
	s.tasks[i].Done = !s.tasks[i].Done
	s.save()
	return true
}

// UpdateText replaces a task's text. An empty replacement discards
// the edit and keeps the previous text.
func (s *Store) UpdateText(id, text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	i := s.find(id)
	if i < 0 {
		return false
	}
	s.tasks[i].Text = text
	s.save()
	return true
}

// SetDeadline sets or, with an empty string, clears a task's deadline.
func (s *Store) SetDeadline(id, deadline string) bool {
	i := s.find(id)
	if i < 0 {
		return false
	}
	s.tasks[i].Deadline = deadline
	s.save()
	return true
}

// SetPriority assigns one of the priority constants.
func (s *Store) SetPriority(id, priority string) bool {
	if model.PriorityRank(priority) == 0 {
		return false
	}
	i := s.find(id)
	if i < 0 {
		return false
	}
	s.tasks[i].Priority = priority
	s.save()
	return true
}

// SetCategories replaces a task's ordered category labels.
func (s *Store) SetCategories(id string, categories []string) bool {
	i := s.find(id)
	if i < 0 {
		return false
	}
	if categories == nil {
		categories = []string{}
	}
	s.tasks[i].Categories = categories
	s.save()
	return true
}

// Remove deletes a task together with all its subtasks in a single
// write, and drops its expanded marker.
func (s *Store) Remove(id string) bool {
	i := s.find(id)
	if i < 0 {
		return false
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	delete(s.expanded, id)
	s.save()
	return true
}

// AddSubtask appends a checklist entry to a task.
func (s *Store) AddSubtask(taskID, text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	i := s.find(taskID)
	if i < 0 {
		return false
	}
	s.tasks[i].Subtasks = append(s.tasks[i].Subtasks, model.Subtask{
		ID:   model.NewID(),
		Text: text,
	})
	s.save()
	return true
}

// ToggleSubtask flips a single checklist entry.
func (s *Store) ToggleSubtask(taskID, subID string) bool {
	i := s.find(taskID)
	if i < 0 {
		return false
	}
	for j := range s.tasks[i].Subtasks {
		if s.tasks[i].Subtasks[j].ID == subID {
			s.tasks[i].Subtasks[j].Done = !s.tasks[i].Subtasks[j].Done
			s.save()
			return true
		}
	}
	return false
}

// RemoveSubtask deletes a single checklist entry.
func (s *Store) RemoveSubtask(taskID, subID string) bool {
	i := s.find(taskID)
	if i < 0 {
		return false
	}
	subs := s.tasks[i].Subtasks
	for j := range subs {
		if subs[j].ID == subID {
			s.tasks[i].Subtasks = append(subs[:j], subs[j+1:]...)
			s.save()
			return true
		}
	}
	return false
}

// ToggleExpanded flips the subtask panel for a task. The expanded set
// is view state only and is never persisted.
func (s *Store) ToggleExpanded(id string) {
	if s.find(id) < 0 {
		return
	}
	if s.expanded[id] {
		delete(s.expanded, id)
	} else {
		s.expanded[id] = true
	}
}

// IsExpanded reports whether a task's subtask panel is open.
func (s *Store) IsExpanded(id string) bool { return s.expanded[id] }

// Get returns a task by id.
func (s *Store) Get(id string) (model.Task, bool) {
	i := s.find(id)
	if i < 0 {
		return model.Task{}, false
	}
	return s.tasks[i], true
}

// Tasks returns a copy of the collection in storage order (newest first).
func (s *Store) Tasks() []model.Task {
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Len reports the collection size.
func (s *Store) Len() int { return len(s.tasks) }
