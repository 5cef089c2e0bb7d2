package mailbox

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nhle/voicedesk/internal/source"
)

// fetchWindow bounds the IMAP search. Anything older is assumed
// handled or abandoned.
const fetchWindow = 7 * 24 * time.Hour

// subjectPrefixes maps recognized subject prefixes to item kinds.
// Order matters only for readability; prefixes do not overlap.
var subjectPrefixes = []struct {
	prefix string
	kind   source.ItemKind
}{
	{"task:", source.ItemTask},
	{"todo:", source.ItemTask},
	{"link:", source.ItemLink},
	{"save:", source.ItemLink},
}

// Source adapts an IMAP mailbox to the capture source contract.
type Source struct {
	client *Client
}

// New creates a mailbox source around client.
func New(client *Client) *Source {
	return &Source{client: client}
}

// Name returns the source identifier used in logs and notices.
func (s *Source) Name() string {
	return "mailbox"
}

// Validate verifies the IMAP connection.
func (s *Source) Validate(ctx context.Context) (string, error) {
	account, err := s.client.Validate(ctx)
	if err != nil {
		return "", fmt.Errorf("validating mailbox: %w", err)
	}
	return account, nil
}

// FetchItems returns capture items for unseen messages with a
// recognized subject prefix. A bare prefix like "task:" takes its text
// from the first line of the message body instead.
func (s *Source) FetchItems(ctx context.Context) ([]source.Item, error) {
	since := time.Now().Add(-fetchWindow)
	envelopes, err := s.client.FetchUnseen(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("fetching mailbox items: %w", err)
	}

	var items []source.Item
	for _, env := range envelopes {
		kind, text, ok := parseSubject(env.Subject)
		if !ok {
			continue
		}

		if text == "" {
			body, err := s.client.FetchBody(ctx, env.UID)
			if err != nil {
				continue
			}
			text = firstLine(body)
		}
		if text == "" {
			continue
		}

		items = append(items, source.Item{
			Kind:     kind,
			Text:     text,
			Ref:      strconv.FormatUint(uint64(env.UID), 10),
			Received: env.Date,
		})
	}

	return items, nil
}

// MarkProcessed marks the given messages seen so the next fetch skips
// them.
func (s *Source) MarkProcessed(ctx context.Context, refs []string) error {
	uids := make([]uint32, 0, len(refs))
	for _, ref := range refs {
		uid, err := strconv.ParseUint(ref, 10, 32)
		if err != nil {
			return fmt.Errorf("invalid message ref %q: %w", ref, err)
		}
		uids = append(uids, uint32(uid))
	}

	if err := s.client.MarkSeen(ctx, uids); err != nil {
		return fmt.Errorf("marking messages seen: %w", err)
	}
	return nil
}

// parseSubject matches a subject against the recognized prefixes,
// case-insensitively, and returns the kind and remaining text.
func parseSubject(subject string) (source.ItemKind, string, bool) {
	trimmed := strings.TrimSpace(subject)
	lower := strings.ToLower(trimmed)

	for _, p := range subjectPrefixes {
		if strings.HasPrefix(lower, p.prefix) {
			return p.kind, strings.TrimSpace(trimmed[len(p.prefix):]), true
		}
	}
	return "", "", false
}

// firstLine returns the first non-empty line of s, trimmed.
func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
