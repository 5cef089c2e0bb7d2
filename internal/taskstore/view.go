package taskstore

import (
	"sort"
	"time"

	"github.com/nhle/voicedesk/internal/model"
)

// Filter selects which tasks the list shows.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
	FilterOverdue   Filter = "overdue"
)

// Filters lists the filters in UI cycle order.
var Filters = []Filter{FilterAll, FilterActive, FilterCompleted, FilterOverdue}

// Sort orders the visible tasks.
type Sort string

const (
	SortNewest   Sort = "newest"
	SortOldest   Sort = "oldest"
	SortDeadline Sort = "deadline"
	SortPriority Sort = "priority"
)

// Sorts lists the sort modes in UI cycle order.
var Sorts = []Sort{SortNewest, SortOldest, SortDeadline, SortPriority}

// SetFilter selects the visible subset. View state is in-memory only.
func (s *Store) SetFilter(f Filter) { s.filter = f }

// CurrentFilter returns the active filter.
func (s *Store) CurrentFilter() Filter { return s.filter }

// SetSort selects the ordering of the visible tasks.
func (s *Store) SetSort(o Sort) { s.sort = o }

// CurrentSort returns the active sort mode.
func (s *Store) CurrentSort() Sort { return s.sort }

// CycleFilter advances to the next filter and returns it.
func (s *Store) CycleFilter() Filter {
	for i, f := range Filters {
		if f == s.filter {
			s.filter = Filters[(i+1)%len(Filters)]
			return s.filter
		}
	}
	s.filter = FilterAll
	return s.filter
}

// CycleSort advances to the next sort mode and returns it.
func (s *Store) CycleSort() Sort {
	for i, o := range Sorts {
		if o == s.sort {
			s.sort = Sorts[(i+1)%len(Sorts)]
			return s.sort
		}
	}
	s.sort = SortNewest
	return s.sort
}

// Visible returns the tasks selected by the current filter, ordered
// by the current sort. It derives from a copy; the stored order is
// never disturbed.
func (s *Store) Visible(now time.Time) []model.Task {
	out := make([]model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		switch s.filter {
		case FilterActive:
			if t.Done {
				continue
			}
		case FilterCompleted:
			if !t.Done {
				continue
			}
		case FilterOverdue:
			if !t.Overdue(now) {
				continue
			}
		}
		out = append(out, t)
	}

	switch s.sort {
	case SortOldest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt < out[j].CreatedAt
		})
	case SortDeadline:
		// Dated tasks ascending, undated after them.
		sort.SliceStable(out, func(i, j int) bool {
			di, iok := out[i].DeadlineDate()
			dj, jok := out[j].DeadlineDate()
			if iok != jok {
				return iok
			}
			if !iok {
				return false
			}
			return di.Before(dj)
		})
	case SortPriority:
		// Ties keep storage order.
		sort.SliceStable(out, func(i, j int) bool {
			return model.PriorityRank(out[i].Priority) > model.PriorityRank(out[j].Priority)
		})
	default: // SortNewest
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt > out[j].CreatedAt
		})
	}

	return out
}

// Progress summarizes the collection for the footer line.
type Progress struct {
	Total   int
	Done    int
	Overdue int
	Percent int
}

// Progress counts over the whole collection, not just the visible part.
func (s *Store) Progress(now time.Time) Progress {
	p := Progress{Total: len(s.tasks)}
	for _, t := range s.tasks {
		if t.Done {
			p.Done++
		}
		if t.Overdue(now) {
			p.Overdue++
		}
	}
	if p.Total > 0 {
		p.Percent = p.Done * 100 / p.Total
	}
	return p
}

// DayGroup is a run of consecutive tasks sharing a creation-day label.
type DayGroup struct {
	Label string
	Tasks []model.Task
}

// GroupByDay splits an already ordered task list into creation-day
// groups for rendering.
func GroupByDay(tasks []model.Task, now time.Time) []DayGroup {
	var groups []DayGroup
	for _, t := range tasks {
		label := DayLabel(t.CreatedTime(), now)
		if n := len(groups); n > 0 && groups[n-1].Label == label {
			groups[n-1].Tasks = append(groups[n-1].Tasks, t)
			continue
		}
		groups = append(groups, DayGroup{Label: label, Tasks: []model.Task{t}})
	}
	return groups
}

// DayLabel renders a creation day relative to now.
func DayLabel(t, now time.Time) string {
	day := model.Midnight(t)
	today := model.Midnight(now)
	switch {
	case day.Equal(today):
		return "Today"
	case day.Equal(today.AddDate(0, 0, -1)):
		return "Yesterday"
	case day.Year() == today.Year():
		return day.Format("Mon, Jan 2")
	default:
		return day.Format("Jan 2, 2006")
	}
}
