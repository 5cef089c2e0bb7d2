// Package contracts/taskstore defines the task collection contract.
package contracts

// The task store owns the ordered task collection and its view state.
// Methods run on the update loop; the store is not locked.
//
// Record shape:
//   Task {
//     ID         string    - timestamp base36 + random suffix
//     Text       string
//     Done       bool
//     Priority   string    - "low" | "medium" | "high", default "medium"
//     Deadline   string    - "YYYY-MM-DD", empty for none
//     Categories []string  - ordered as entered
//     Subtasks   []Subtask - lifecycle bound to the parent
//     CreatedAt  int64     - epoch milliseconds
//   }
//
// Mutations (each persists the whole collection on success):
//   Add(text, opts) bool       - prepends; declines empty text
//   Toggle(id) bool            - flips Done; unknown id is a no-op
//   UpdateText(id, text) bool  - declines empty replacement text
//   SetDeadline / SetPriority / SetCategories
//   Remove(id) bool            - cascades to the task's subtasks
//   AddSubtask(taskID, text) bool
//   ToggleSubtask / RemoveSubtask(taskID, subID) bool
//
// View state (in-memory only, never persisted):
//   Filter: all | active | completed | overdue
//   Sort:   newest | oldest | deadline | priority
//   Expanded panel set: which tasks show their subtask rows
//
// Derived views:
//   Visible(now)  - filter + sort over a copy; stored order untouched
//   Progress(now) - done/total/overdue counts over the whole collection
//   GroupByDay    - consecutive runs sharing a creation-day label
//
// Deadline semantics:
//   Overdue: incomplete and deadline before today's local midnight.
//   DueSoon: incomplete and deadline on today or tomorrow.
//   Both shift at local midnight, not at a rolling 24h boundary.
