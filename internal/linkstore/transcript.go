package linkstore

import (
	"net/url"
	"regexp"
	"strings"
)

// tldPattern spots spoken URLs: any allow-listed top-level domain
// said as its own word.
var tldPattern = regexp.MustCompile(`\b(com|org|net|edu|gov|io|co|uk|dev|app|ai)\b`)

var (
	dotWord   = regexp.MustCompile(`\bdot\b`)
	slashWord = regexp.MustCompile(`\bslash\b`)
)

// interpretTranscript turns a voice transcript into an address. The
// second return is false when the phrase does not read as a spoken
// URL and should become a search query instead.
func interpretTranscript(text string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(text))
	if !tldPattern.MatchString(lower) {
		return "", false
	}

	candidate := dotWord.ReplaceAllString(lower, ".")
	candidate = slashWord.ReplaceAllString(candidate, "/")
	candidate = strings.Join(strings.Fields(candidate), "")
	candidate = normalizeScheme(candidate)

	u, err := url.Parse(candidate)
	if err != nil || u.Host == "" || !strings.Contains(u.Host, ".") {
		return "", false
	}
	return candidate, true
}
