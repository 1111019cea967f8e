// File: pkg/generate/resolve.go
package generate

import (
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Resolver classifies include directives into project and system include
// roots. In-tree roots are kept root-relative; host roots stay absolute.
// Resolution is deterministic: candidates are always visited in sorted
// order, so the same tree yields the same roots on every run.
type Resolver struct {
	files    map[string]bool // every file below the root, rel slash paths
	dirs     []string        // every directory below the root, sorted
	projects map[string]bool // established project roots
	ordered  []string        // sorted view of projects, maintained on insert
	systems  map[string]bool // established system roots, rel or absolute
	hostDirs []string        // host locations consulted for angle misses
	logger   *zap.Logger

	directives int
	resolved   int
}

// newResolver builds a resolver over one finished tree scan. hostDirs
// lists the system locations consulted when an angle include misses the
// tree; tests inject their own.
func newResolver(scan *TreeScan, hostDirs []string, logger *zap.Logger) *Resolver {
	files := make(map[string]bool, len(scan.Files))
	for _, f := range scan.Files {
		files[f] = true
	}

	dirs := append([]string(nil), scan.Dirs...)
	sort.Strings(dirs)

	r := &Resolver{
		files:    files,
		dirs:     dirs,
		projects: make(map[string]bool),
		systems:  make(map[string]bool),
		hostDirs: hostDirs,
		logger:   logger,
	}

	// A directory owning headers is an include root from the start:
	// its headers are reachable by relative include.
	for _, dir := range scan.HeaderDirs {
		r.addProject(dir)
	}
	return r
}

// AddFile feeds one source file's directives through resolution.
func (r *Resolver) AddFile(sf SourceFile) {
	for _, d := range sf.Directives {
		r.directives++

		var ok bool
		if d.Angled {
			ok = r.resolveAngle(d.Target)
		} else {
			ok = r.resolveQuoted(sf.RelPath, d.Target)
		}

		if ok {
			r.resolved++
		} else {
			r.logger.Debug("Unresolved include directive",
				zap.String("file", sf.RelPath),
				zap.String("target", d.Target),
				zap.Bool("angled", d.Angled))
		}
	}
}

// resolveQuoted handles #include "target" written in the file fromRel.
// The including file's directory is tried first, then every known
// project root; the first hit settles resolution. Base derivation then
// adopts every root the target verifies under, independent of that
// outcome: the adopted set is a closure over the tree, so narrowing the
// scan with an exclusion can only shrink it. Unresolvable targets are
// dropped, never fatal.
func (r *Resolver) resolveQuoted(fromRel, target string) bool {
	resolved := false

	// The including file's own directory comes first, the way the
	// preprocessor treats the quoted form.
	fromDir := path.Dir(fromRel)
	if r.existsInTree(fromDir, target) {
		r.addProject(fromDir)
		resolved = true
	}

	if !resolved {
		for _, root := range r.ordered {
			if r.existsInTree(root, target) {
				resolved = true
				break
			}
		}
	}

	// Derive new bases: a known root ending with the target's directory
	// part implies the stripped prefix also serves as a root, e.g. the
	// root "third_party/zlib" turns "zlib/zlib.h" into "third_party".
	// Every verified base is adopted, not just the first.
	if targetDir := path.Dir(target); targetDir != "." {
		suffix := "/" + targetDir
		var bases []string
		for _, root := range r.ordered {
			var base string
			switch {
			case root == targetDir:
				base = "."
			case strings.HasSuffix(root, suffix):
				base = root[:len(root)-len(suffix)]
			default:
				continue
			}
			if r.existsInTree(base, target) {
				bases = append(bases, base)
			}
		}
		// Collected first: addProject shifts the slice being ranged.
		for _, base := range bases {
			r.addProject(base)
		}
		if len(bases) > 0 {
			resolved = true
		}
	}

	return resolved
}

// resolveAngle handles #include <target>. Every in-tree directory the
// target resolves under is marked as a system root; the host search
// locations are consulted only when the whole tree misses. A target
// found nowhere contributes no path.
func (r *Resolver) resolveAngle(target string) bool {
	found := false
	for _, dir := range r.dirs {
		if r.existsInTree(dir, target) {
			r.addSystem(dir)
			found = true
		}
	}
	if found {
		return true
	}

	for _, loc := range r.hostDirs {
		full := filepath.Join(loc, filepath.FromSlash(target))
		if info, err := os.Stat(full); err == nil && info.Mode().IsRegular() {
			r.addSystem(loc)
			return true
		}
	}

	return false
}

// existsInTree reports whether target resolves to a walked file when
// interpreted relative to base. Escapes above the scan root never match.
func (r *Resolver) existsInTree(base, target string) bool {
	p := path.Join(base, target)
	if p == ".." || strings.HasPrefix(p, "../") {
		return false
	}
	return r.files[p]
}

func (r *Resolver) addProject(dir string) {
	if r.projects[dir] {
		return
	}
	r.projects[dir] = true

	i := sort.SearchStrings(r.ordered, dir)
	r.ordered = append(r.ordered, "")
	copy(r.ordered[i+1:], r.ordered[i:])
	r.ordered[i] = dir
}

func (r *Resolver) addSystem(dir string) {
	r.systems[dir] = true
}

// Finalize returns the deduplicated, sorted include path lists. A root
// classified as project is never also reported as system: the project
// classification rests on direct evidence in the scanned tree.
func (r *Resolver) Finalize() (projectPaths, systemPaths []string) {
	projectPaths = append([]string(nil), r.ordered...)

	systemPaths = make([]string, 0, len(r.systems))
	for dir := range r.systems {
		if !r.projects[dir] {
			systemPaths = append(systemPaths, dir)
		}
	}
	sort.Strings(systemPaths)

	return projectPaths, systemPaths
}

// DirectiveCounts reports how many directives were seen and how many
// produced or confirmed an include root.
func (r *Resolver) DirectiveCounts() (directives, resolved int) {
	return r.directives, r.resolved
}

// systemSearchLocations lists the host directories consulted for angle
// includes that miss the tree: the include environment variables first,
// then the conventional prefixes, then the versioned C++ directories.
func systemSearchLocations() []string {
	var locs []string
	for _, env := range []string{"CPATH", "C_INCLUDE_PATH", "CPLUS_INCLUDE_PATH"} {
		for _, p := range filepath.SplitList(os.Getenv(env)) {
			if p != "" {
				locs = append(locs, p)
			}
		}
	}

	locs = append(locs, "/usr/local/include", "/usr/include")

	if versioned, err := filepath.Glob("/usr/include/c++/*"); err == nil {
		sort.Strings(versioned)
		locs = append(locs, versioned...)
	}
	return locs
}
