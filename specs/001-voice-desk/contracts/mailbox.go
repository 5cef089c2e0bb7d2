// Package contracts/mailbox defines the mail-in capture contract.
//
// Library: emersion/go-imap v2 + emersion/go-message
// Auth: username + password (stored in system keyring)
package contracts

// The mailbox source turns messages in a watched IMAP folder into
// capture items. Importing marks them seen so each arrives only once.
//
// Connect:
//   DialTLS, or DialStartTLS when security is "starttls".
//   LOGIN with the configured account; a rejection surfaces as an
//   auth error with a hint to update the account in settings.
//   SELECT the watched folder (default INBOX).
//
// FetchItems:
//   UID SEARCH since the last 7 days, excluding \Seen.
//   FETCH envelopes; the subject decides the item kind:
//     "task:" or "todo:" prefix -> task item
//     "link:" or "save:" prefix -> link item
//   Prefixes match case-insensitively at the start of the subject
//   only; "Re: task: x" is not a capture message.
//   The item text is the subject remainder. A bare prefix falls back
//   to the first non-empty body line (text/plain part, fetched with
//   BODY.PEEK so reading does not mark the message).
//   Items carry the message UID as their ref.
//
// MarkProcessed(refs):
//   STORE +FLAGS.SILENT \Seen on the imported UIDs. Until this lands,
//   re-fetches may offer the same message again; the importer
//   deduplicates by ref within a session.
