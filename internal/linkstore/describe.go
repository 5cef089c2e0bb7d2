package linkstore

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var numericSegment = regexp.MustCompile(`^[0-9]+$`)

// AutoDescribe derives a readable description from a URL: the last
// meaningful path segment plus the hostname, or the hostname alone.
// Input that does not parse as an absolute URL comes back unchanged.
func AutoDescribe(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	host := strings.TrimPrefix(u.Hostname(), "www.")

	var segments []string
	for _, seg := range strings.Split(u.Path, "/") {
		seg = strings.ReplaceAll(seg, "-", " ")
		seg = strings.ReplaceAll(seg, "_", " ")
		seg = strings.TrimSpace(seg)
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	if len(segments) == 0 {
		return capitalize(host)
	}

	// Prefer the last segment that looks like a slug rather than an
	// id or a year.
	for i := len(segments) - 1; i >= 0; i-- {
		seg := segments[i]
		if numericSegment.MatchString(seg) || utf8.RuneCountInString(seg) <= 1 {
			continue
		}
		return capitalize(seg) + " — " + host
	}
	return capitalize(host)
}

// capitalize upper-cases the first rune only.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
