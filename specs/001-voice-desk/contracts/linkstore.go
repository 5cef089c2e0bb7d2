// Package contracts/linkstore defines the saved-link collection
// contract.
package contracts

// The link store owns the saved-link collection: URLs captured by hand
// or by voice, each with an editable description.
//
// Record shape:
//   Link {
//     ID          string
//     URL         string - always carries a scheme once stored
//     Description string
//     CreatedAt   int64  - epoch milliseconds
//   }
//
// Add(raw) bool:
//   Typed-in capture. Defaults the scheme to https:// when missing,
//   declines input that does not parse to a host, and derives the
//   description automatically:
//     "<first path segment, dashes/underscores to spaces, title case>
//      — <host without www.>"
//   or just the bare host when the path is empty.
//
// AddTranscript(text) bool:
//   Spoken capture. A phrase containing a known top-level domain
//   (com org net edu gov io co uk dev app ai) is read as a spoken URL:
//   the word "dot" becomes ".", whitespace is stripped, https:// is
//   prefixed. Anything else becomes a search-engine query for the
//   verbatim transcript, with the transcript doubling as the
//   description. Every non-empty transcript therefore lands.
//
// UpdateDescription(id, text) bool:
//   Empty replacement text keeps the previous description; the
//   collection is persisted either way. Unknown ids are ignored.
//
// Remove(id) bool:
//   Unknown ids are ignored.
