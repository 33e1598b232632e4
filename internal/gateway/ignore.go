package gateway

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Ignore hides listing entries by glob pattern. Patterns follow doublestar syntax.
// A trailing slash restricts a pattern to directories. A pattern without a separator
// matches the base name at any depth, one with an inner separator matches the tail
// of the path, and one with a leading slash matches only the full absolute path.
type Ignore struct {
	patterns []ignorePattern
}

type ignorePattern struct {
	glob     string
	dirOnly  bool
	nested   bool // contains a separator
	absolute bool // leading slash, no tail match
}

// NewIgnore compiles patterns. Blank lines, comments and invalid globs are dropped.
func NewIgnore(patterns []string) *Ignore {
	ig := &Ignore{}
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" || strings.HasPrefix(p, "#") {
			continue
		}

		var ip ignorePattern
		if strings.HasSuffix(p, "/") {
			ip.dirOnly = true
			p = strings.TrimSuffix(p, "/")
		}
		p = filepath.ToSlash(p)
		ip.nested = strings.Contains(p, "/")
		ip.absolute = strings.HasPrefix(p, "/")
		ip.glob = p

		if !doublestar.ValidatePattern(ip.glob) {
			continue
		}
		ig.patterns = append(ig.patterns, ip)
	}
	return ig
}

// Match reports whether the entry at path should be hidden.
func (ig *Ignore) Match(path string, isDir bool) bool {
	if ig == nil {
		return false
	}

	slashPath := filepath.ToSlash(path)
	base := filepath.Base(path)
	for _, p := range ig.patterns {
		if p.dirOnly && !isDir {
			continue
		}
		if p.absolute {
			if matched, _ := doublestar.Match(p.glob, slashPath); matched {
				return true
			}
			continue
		}
		if p.nested {
			if matchTail(p.glob, slashPath) {
				return true
			}
			continue
		}
		if matched, _ := doublestar.Match(p.glob, base); matched {
			return true
		}
	}
	return false
}

// matchTail matches glob against every suffix of path that starts a segment.
func matchTail(glob, path string) bool {
	for i := 0; i < len(path); i++ {
		if i > 0 && path[i-1] != '/' {
			continue
		}
		if matched, _ := doublestar.Match(glob, path[i:]); matched {
			return true
		}
	}
	return false
}

// Len returns the number of active patterns.
func (ig *Ignore) Len() int {
	if ig == nil {
		return 0
	}
	return len(ig.patterns)
}
