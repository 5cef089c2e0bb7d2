// Package linkstore manages the saved-link collection: URLs captured
// by hand or by voice, each with an editable description, written
// through to storage after every mutation.
package linkstore

import (
	"net/url"
	"strings"
	"time"

	"github.com/nhle/voicedesk/internal/model"
	"github.com/nhle/voicedesk/internal/storage"
)

const defaultSearchURL = "https://www.google.com/search?q="

// Store holds the link collection. Methods are not safe for
// concurrent use; the application calls them from its update loop.
type Store struct {
	kv        *storage.KV
	links     []model.Link
	searchURL string
}

// New creates a store bound to kv. searchURL is the search-engine
// prefix used for transcripts that do not read as URLs.
func New(kv *storage.KV, searchURL string) *Store {
	if searchURL == "" {
		searchURL = defaultSearchURL
	}
	return &Store{kv: kv, links: []model.Link{}, searchURL: searchURL}
}

// Load reads the collection from storage.
func (s *Store) Load() {
	links := []model.Link{}
	s.kv.Get(storage.KeyLinks, &links)
	s.links = links
}

// SetSearchURL replaces the search-engine prefix used for non-URL
// transcripts. Existing links keep the addresses they were built with.
func (s *Store) SetSearchURL(u string) {
	if u == "" {
		u = defaultSearchURL
	}
	s.searchURL = u
}

func (s *Store) save() {
	s.kv.Set(storage.KeyLinks, s.links)
}

// Add saves a typed-in URL, defaulting the scheme to https and
// deriving a description. Empty or unparseable input is declined
// without touching the collection.
func (s *Store) Add(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	addr := normalizeScheme(raw)
	u, err := url.Parse(addr)
	if err != nil || u.Host == "" {
		return false
	}
	s.insert(addr, AutoDescribe(addr))
	return true
}

// AddTranscript saves a spoken capture. Phrases containing a known
// top-level domain are read as spoken URLs; everything else becomes a
// search-engine query for the verbatim transcript, which then doubles
// as the description.
func (s *Store) AddTranscript(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	if addr, ok := interpretTranscript(text); ok {
		s.insert(addr, AutoDescribe(addr))
		return true
	}
	s.insert(s.searchURL+url.QueryEscape(text), text)
	return true
}

// insert prepends so the collection stays newest first.
func (s *Store) insert(addr, description string) {
	link := model.Link{
		ID:          model.NewID(),
		URL:         addr,
		Description: description,
		CreatedAt:   time.Now().UnixMilli(),
	}
	s.links = append([]model.Link{link}, s.links...)
	s.save()
}

// UpdateDescription replaces a link's description. Empty replacement
// text keeps the previous description; the collection is persisted
// either way. Unknown ids are ignored.
func (s *Store) UpdateDescription(id, text string) bool {
	i := s.find(id)
	if i < 0 {
		return false
	}
	if t := strings.TrimSpace(text); t != "" {
		s.links[i].Description = t
	}
	s.save()
	return true
}

// Remove deletes a link. Unknown ids are ignored.
func (s *Store) Remove(id string) bool {
	i := s.find(id)
	if i < 0 {
		return false
	}
	s.links = append(s.links[:i], s.links[i+1:]...)
	s.save()
	return true
}

func (s *Store) find(id string) int {
	for i := range s.links {
		if s.links[i].ID == id {
			return i
		}
	}
	return -1
}

// Get returns a link by id.
func (s *Store) Get(id string) (model.Link, bool) {
	i := s.find(id)
	if i < 0 {
		return model.Link{}, false
	}
	return s.links[i], true
}

// Links returns a copy of the collection, newest first.
func (s *Store) Links() []model.Link {
	out := make([]model.Link, len(s.links))
	copy(out, s.links)
	return out
}

// Len reports the collection size.
func (s *Store) Len() int { return len(s.links) }

// normalizeScheme defaults bare addresses to https.
func normalizeScheme(raw string) string {
	lower := strings.ToLower(raw)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return raw
	}
	return "https://" + raw
}
