// Package exclude implements the exclusion rules consulted while walking a
// source tree. Three independent rule kinds exist: whole paths, path
// segments, and CMake-candidacy paths. A rule set is built once per scan
// and never mutated afterwards.
package exclude

import (
	"path"
	"path/filepath"
	"strings"
)

// RuleSet holds the normalized exclusion rules for one scan. Matching is
// OR across rule kinds: a path is excluded when any rule of any kind
// applies to it.
type RuleSet struct {
	paths     []string // root-relative prefixes, exclude the subtree
	segments  []string // lowercased component names, exclude wherever they occur
	cmakeDirs []string // root-relative prefixes, remove CMake candidacy only
}

// NewRuleSet normalizes the raw rule entries against the scan root.
// Absolute entries are rebased onto the root, separators become forward
// slashes, and trailing separators are trimmed. Entries pointing outside
// the root can never match and are kept inert.
func NewRuleSet(root string, paths, segments, cmakeDirs []string) RuleSet {
	return RuleSet{
		paths:     normalizeEntries(root, paths),
		segments:  normalizeSegments(segments),
		cmakeDirs: normalizeEntries(root, cmakeDirs),
	}
}

// Excluded reports whether the root-relative path rel is excluded from the
// scan, either because it equals or sits beneath an excluded path, or
// because one of its components equals an excluded segment. Segment
// comparison is case-insensitive.
func (rs RuleSet) Excluded(rel string) bool {
	rel = filepath.ToSlash(rel)

	for _, p := range rs.paths {
		if rel == p || strings.HasPrefix(rel, p+"/") {
			return true
		}
	}

	if len(rs.segments) > 0 {
		for _, component := range strings.Split(rel, "/") {
			component = strings.ToLower(component)
			for _, seg := range rs.segments {
				if component == seg {
					return true
				}
			}
		}
	}

	return false
}

// ExcludedDir is the walk-time check for a directory below the scan root.
// Hidden directories are always pruned, in addition to the configured
// rules. name is the directory's base name.
func (rs RuleSet) ExcludedDir(rel, name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	return rs.Excluded(rel)
}

// CMakeExcluded reports whether rel loses its CMake-subproject candidacy.
// Unlike Excluded, a match here does not stop files beneath rel from being
// scanned.
func (rs RuleSet) CMakeExcluded(rel string) bool {
	rel = filepath.ToSlash(rel)

	for _, p := range rs.cmakeDirs {
		if rel == p || strings.HasPrefix(rel, p+"/") {
			return true
		}
	}
	return false
}

// normalizeEntries cleans each path entry into the root-relative slash
// form used for matching. Empty entries are dropped.
func normalizeEntries(root string, entries []string) []string {
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if filepath.IsAbs(entry) {
			if rel, err := filepath.Rel(root, entry); err == nil {
				entry = rel
			}
		}
		entry = path.Clean(filepath.ToSlash(entry))
		entry = strings.TrimSuffix(entry, "/")
		if entry == "" {
			continue
		}
		out = append(out, entry)
	}
	return out
}

// normalizeSegments lowercases segment entries so matching can be
// case-insensitive.
func normalizeSegments(entries []string) []string {
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		entry = strings.ToLower(strings.TrimSpace(entry))
		if entry == "" {
			continue
		}
		out = append(out, entry)
	}
	return out
}
