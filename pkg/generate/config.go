// File: pkg/generate/config.go
package generate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// defaultConfigFile is probed in the working directory when --config is
// not given.
const defaultConfigFile = "cmakegen.toml"

var (
	defaultSourceTypes = []string{"c", "h", "cc", "cpp", "hpp", "hh"}
	defaultHeaderTypes = []string{"h", "hpp", "hh"}
)

// Arguments holds the raw command-line inputs before they are merged
// with the optional config file.
type Arguments struct {
	Root          string   // Directory to scan; empty means the config file or "." decides.
	Excludes      []string // Paths excluded from the walk entirely (repeatable).
	Filters       []string // Path segments excluded wherever they occur (repeatable).
	CMakeExcludes []string // Paths excluded from CMake-subproject candidacy only (repeatable).
	SourceTypes   string   // Comma-delimited source extensions; overrides the defaults.
	HeaderTypes   string   // Comma-delimited header extensions; overrides the defaults.
	Output        string   // Output path; "-" streams to stdout.
	Project       string   // Project name override.
	ConfigFile    string   // Explicit config file path.
	Debug         bool     // Enables debug logging.
}

// FileConfig mirrors the optional cmakegen.toml layout.
type FileConfig struct {
	Root         string   `toml:"root"`
	Exclude      []string `toml:"exclude"`
	Filter       []string `toml:"filter"`
	ExcludeCMake []string `toml:"exclude_cmake"`
	SourceTypes  []string `toml:"source_types"`
	HeaderTypes  []string `toml:"header_types"`
	Output       string   `toml:"output"`
	Project      string   `toml:"project"`
	CStandard    int      `toml:"c_standard"`
	CXXStandard  int      `toml:"cxx_standard"`
}

// Settings is the merged, immutable configuration for one run. It is
// built once from defaults, then the config file, then the command line,
// and passed down the pipeline by value.
type Settings struct {
	Root          string   // absolute scan root
	Excludes      []string // union of file and CLI entries
	Filters       []string
	CMakeExcludes []string
	SourceExts    []string // lowercased extensions without dots
	HeaderExts    []string
	Output        string // absolute path, or "-" for stdout
	Project       string
	CStandard     int
	CXXStandard   int
	Debug         bool
}

// ResolveSettings merges defaults, the optional TOML config file, and the
// command-line arguments into the final Settings. Later sources win for
// scalar values; list values are unioned.
func ResolveSettings(args *Arguments) (Settings, error) {
	fileCfg, err := loadFileConfig(args.ConfigFile)
	if err != nil {
		return Settings{}, err
	}

	root := firstNonEmpty(args.Root, fileCfg.Root, ".")
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to resolve scan root %q: %w", root, err)
	}

	output := firstNonEmpty(args.Output, fileCfg.Output)
	if output == "" {
		output = filepath.Join(absRoot, "CMakeLists.txt")
	} else if output != "-" {
		if output, err = filepath.Abs(output); err != nil {
			return Settings{}, fmt.Errorf("failed to resolve output path: %w", err)
		}
	}

	sourceExts := normalizeTypes(defaultSourceTypes)
	if len(fileCfg.SourceTypes) > 0 {
		sourceExts = normalizeTypes(fileCfg.SourceTypes)
	}
	if args.SourceTypes != "" {
		sourceExts = normalizeTypes(strings.Split(args.SourceTypes, ","))
	}

	headerExts := normalizeTypes(defaultHeaderTypes)
	if len(fileCfg.HeaderTypes) > 0 {
		headerExts = normalizeTypes(fileCfg.HeaderTypes)
	}
	if args.HeaderTypes != "" {
		headerExts = normalizeTypes(strings.Split(args.HeaderTypes, ","))
	}

	if len(sourceExts) == 0 {
		return Settings{}, fmt.Errorf("source extension list is empty")
	}

	cStd := fileCfg.CStandard
	if cStd == 0 {
		cStd = 11
	}
	cxxStd := fileCfg.CXXStandard
	if cxxStd == 0 {
		cxxStd = 11
	}

	return Settings{
		Root:          absRoot,
		Excludes:      unionLists(fileCfg.Exclude, args.Excludes),
		Filters:       unionLists(fileCfg.Filter, args.Filters),
		CMakeExcludes: unionLists(fileCfg.ExcludeCMake, args.CMakeExcludes),
		SourceExts:    sourceExts,
		HeaderExts:    headerExts,
		Output:        output,
		Project:       firstNonEmpty(args.Project, fileCfg.Project, filepath.Base(absRoot)),
		CStandard:     cStd,
		CXXStandard:   cxxStd,
		Debug:         args.Debug,
	}, nil
}

// loadFileConfig reads the TOML config file. An explicit path must
// exist; the probed default may be absent.
func loadFileConfig(path string) (FileConfig, error) {
	var cfg FileConfig

	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// normalizeTypes lowercases and trims extension entries, dropping empty
// ones and leading dots, so ".CPP" and "cpp" configure the same match.
func normalizeTypes(entries []string) []string {
	out := make([]string, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		e = strings.ToLower(strings.TrimSpace(e))
		e = strings.TrimPrefix(e, ".")
		if e == "" || seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}

// unionLists concatenates rule lists, dropping duplicates while keeping
// first-seen order.
func unionLists(lists ...[]string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, list := range lists {
		for _, e := range list {
			if e == "" || seen[e] {
				continue
			}
			seen[e] = true
			out = append(out, e)
		}
	}
	return out
}

// firstNonEmpty returns the first non-empty string.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
