// File: pkg/generate/scan.go
package generate

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"cmakegen/pkg/exclude"

	"go.uber.org/zap"
)

// cmakeListsName marks a directory as a CMake subproject candidate.
const cmakeListsName = "CMakeLists.txt"

// TreeScan is the result of one walk over the filtered tree. Every path
// in it is relative to the scan root and slash-separated; the root
// itself appears as ".".
type TreeScan struct {
	SourceFiles []string // files matching the source extensions, in walk order
	HeaderDirs  []string // directories containing at least one header
	Dirs        []string // every directory entered, including "."
	Files       []string // every file seen in entered directories
	Subprojects []string // directories carrying a CMakeLists.txt, minus candidacy exclusions
	Stats       ScanStats
}

// merge folds a subtree's scan into the receiver. The walk builds its
// result bottom-up through these merges instead of mutating shared
// accumulators across recursion frames.
func (t *TreeScan) merge(o TreeScan) {
	t.SourceFiles = append(t.SourceFiles, o.SourceFiles...)
	t.HeaderDirs = append(t.HeaderDirs, o.HeaderDirs...)
	t.Dirs = append(t.Dirs, o.Dirs...)
	t.Files = append(t.Files, o.Files...)
	t.Subprojects = append(t.Subprojects, o.Subprojects...)
	t.Stats.add(o.Stats)
}

// extSet answers membership for lowercased file extensions.
type extSet map[string]bool

func newExtSet(exts []string) extSet {
	s := make(extSet, len(exts))
	for _, e := range exts {
		s[e] = true
	}
	return s
}

// hasExt reports whether name's final extension, compared without the
// dot and case-insensitively, is in the set.
func (s extSet) hasExt(name string) bool {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	if ext == "" {
		return false
	}
	return s[strings.ToLower(ext)]
}

// ScanTree walks the tree under root once, applying the exclusion rules
// at every directory descent. An unreadable root is fatal; unreadable
// descendants are logged and skipped.
func ScanTree(root string, rules exclude.RuleSet, sourceExts, headerExts []string, logger *zap.Logger) (*TreeScan, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("cannot read scan root %s: %w", root, err)
	}

	scan := scanEntries(root, ".", entries, rules, newExtSet(sourceExts), newExtSet(headerExts), logger)
	logger.Debug("Tree walk finished",
		zap.Int("dirsVisited", scan.Stats.DirsVisited),
		zap.Int("dirsPruned", scan.Stats.DirsPruned),
		zap.Int("filesVisited", scan.Stats.FilesVisited),
		zap.Int("sourceFiles", scan.Stats.SourceFiles),
	)
	return &scan, nil
}

// scanDir reads one directory below the root and folds its subtree.
// Read failures here only cost the affected subtree.
func scanDir(root, rel string, rules exclude.RuleSet, srcExts, hdrExts extSet, logger *zap.Logger) TreeScan {
	abs := filepath.Join(root, filepath.FromSlash(rel))
	entries, err := os.ReadDir(abs)
	if err != nil {
		logger.Warn("Skipping unreadable directory", zap.String("dir", abs), zap.Error(err))
		return TreeScan{Dirs: []string{rel}, Stats: ScanStats{DirsVisited: 1}}
	}
	return scanEntries(root, rel, entries, rules, srcExts, hdrExts, logger)
}

// scanEntries classifies one directory's entries and recurses into the
// subdirectories that survive the exclusion rules. os.ReadDir returns
// entries sorted by name, so the walk order is deterministic.
func scanEntries(root, rel string, entries []os.DirEntry, rules exclude.RuleSet, srcExts, hdrExts extSet, logger *zap.Logger) TreeScan {
	scan := TreeScan{
		Dirs:  []string{rel},
		Stats: ScanStats{DirsVisited: 1},
	}

	hasHeader := false
	for _, entry := range entries {
		childRel := path.Join(rel, entry.Name())

		if entry.IsDir() {
			if rules.ExcludedDir(childRel, entry.Name()) {
				scan.Stats.DirsPruned++
				logger.Debug("Pruned directory", zap.String("dir", childRel))
				continue
			}
			scan.merge(scanDir(root, childRel, rules, srcExts, hdrExts, logger))
			continue
		}

		scan.Stats.FilesVisited++
		scan.Files = append(scan.Files, childRel)

		if entry.Name() == cmakeListsName && rel != "." && !rules.CMakeExcluded(rel) {
			scan.Subprojects = append(scan.Subprojects, rel)
		}

		if srcExts.hasExt(entry.Name()) {
			scan.SourceFiles = append(scan.SourceFiles, childRel)
			scan.Stats.SourceFiles++
			if !hasHeader && hdrExts.hasExt(entry.Name()) {
				hasHeader = true
				scan.HeaderDirs = append(scan.HeaderDirs, rel)
			}
		}
	}

	return scan
}
