// Package nav resolves which sidebar entries are active for a page location
// and keeps the persisted active-menu preference in step with it.
package nav

import (
	"net/url"
	"strings"
)

// Normalize returns the canonical form of a location or link used for path
// equality: no scheme/host, no query or fragment, no trailing slashes, and a
// leading slash. The empty path normalizes to "/".
func Normalize(p string) string {
	if p == "" {
		return "/"
	}
	if u, err := url.Parse(p); err == nil && u.Scheme != "" && u.Host != "" {
		p = u.EscapedPath()
	}
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	if i := strings.IndexByte(p, '#'); i >= 0 {
		p = p[:i]
	}
	p = strings.TrimRight(escapePath(p), "/")
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

// escapePath percent-encodes p the way a browser reports pathname, keeping
// escapes that are already valid.
func escapePath(p string) string {
	decoded, err := url.PathUnescape(p)
	if err != nil {
		decoded = p
	}
	u := url.URL{Path: decoded, RawPath: p}
	return u.EscapedPath()
}

// SamePath reports whether a and b normalize to the same path.
func SamePath(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
