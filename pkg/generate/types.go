// File: pkg/generate/types.go
package generate

import (
	"cmakegen/pkg/chardet"
)

// Directive is one raw #include target as written in a source file,
// before any resolution.
type Directive struct {
	Target string // path between the delimiters, untouched
	Angled bool   // true for #include <...>, false for #include "..."
}

// SourceFile is a discovered source or header file together with the
// include directives extracted from it.
type SourceFile struct {
	AbsPath    string           // absolute path on disk
	RelPath    string           // slash-separated path relative to the scan root
	Encoding   chardet.Encoding // detected text encoding
	Directives []Directive      // raw include targets in file order
}

// SourceGroup partitions source files under one detected subproject
// directory. Groups are cosmetic: they only affect how an IDE displays
// the file list.
type SourceGroup struct {
	Dir   string   // root-relative subproject directory
	Files []string // sorted source files beneath it
}

// ProjectModel is the aggregate scan result consumed by the emitter.
// It is built fresh per run and never persisted.
type ProjectModel struct {
	Name         string        // CMake project name
	CStandard    int           // value for CMAKE_C_STANDARD
	CXXStandard  int           // value for CMAKE_CXX_STANDARD
	ProjectPaths []string      // sorted project include roots, "." for the scan root
	SystemPaths  []string      // sorted system include roots, absolute for host paths
	Sources      []string      // sorted root-relative source files
	Groups       []SourceGroup // sorted by directory
}

// ScanStats instruments one tree walk. The counters make exclusion
// behavior observable in tests and in debug logs.
type ScanStats struct {
	DirsVisited  int // directories entered
	DirsPruned   int // directories skipped by exclusion rules
	FilesVisited int // files seen in entered directories
	SourceFiles  int // files matching the source extensions
	FilesSkipped int // source files dropped due to read errors
	Directives   int // include directives extracted
	Resolved     int // directives that produced or confirmed an include root
}

// add merges the counters of a subtree into the receiver.
func (s *ScanStats) add(o ScanStats) {
	s.DirsVisited += o.DirsVisited
	s.DirsPruned += o.DirsPruned
	s.FilesVisited += o.FilesVisited
	s.SourceFiles += o.SourceFiles
	s.FilesSkipped += o.FilesSkipped
	s.Directives += o.Directives
	s.Resolved += o.Resolved
}
