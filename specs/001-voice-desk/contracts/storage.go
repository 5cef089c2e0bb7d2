// Package contracts/storage defines the persistence contract for the
// record collections.
//
// Library: jmoiron/sqlx + modernc.org/sqlite (pure Go, no cgo)
package contracts

// KV is a synchronous key-value store over a local SQLite database.
// Each collection is one JSON document under a fixed key.
//
// Keys:
//   "tasks" - the task collection, newest first
//   "links" - the link collection, newest first
//   "theme" - the persisted theme choice ("light" or "dark")
//
// Get(key, dest) bool:
//   Reads the JSON document at key into dest.
//   Absent key          -> false, dest untouched.
//   Corrupt document    -> false, dest untouched, logged. The caller's
//                          pre-filled default survives, so a damaged
//                          record degrades to an empty collection
//                          instead of a crash.
//
// Set(key, value):
//   Serializes value as JSON and replaces the document at key.
//   Stores write through Set after every mutation; there is no dirty
//   buffering and no save command.
//   Failures are logged, never returned. The in-memory state stays
//   authoritative.
//
// Remove(key):
//   Deletes the document at key, if any.
//
// Migration behavior:
//   Records written before newer fields existed are repaired at load
//   time (missing priority -> "medium", nil category and subtask
//   slices -> empty). The repaired form is not written back until the
//   next ordinary mutation persists it.
