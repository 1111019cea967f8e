package generate

import (
	"path/filepath"
	"testing"

	"cmakegen/pkg/exclude"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func scanFixture(t *testing.T, root string, rules exclude.RuleSet) *TreeScan {
	t.Helper()
	scan, err := ScanTree(root, rules, defaultSourceTypes, defaultHeaderTypes, zaptest.NewLogger(t))
	require.NoError(t, err)
	return scan
}

func TestScanTree_CollectsSourcesAndHeaders(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"main.c":         "",
		"inc/util.h":     "",
		"inc/util.cc":    "",
		"src/app.cpp":    "",
		"README.md":      "",
		"data/notes.txt": "",
	})

	scan := scanFixture(t, root, exclude.NewRuleSet(root, nil, nil, nil))

	assert.ElementsMatch(t, []string{"main.c", "inc/util.h", "inc/util.cc", "src/app.cpp"}, scan.SourceFiles)
	assert.Equal(t, []string{"inc"}, scan.HeaderDirs)
	assert.ElementsMatch(t, []string{".", "inc", "src", "data"}, scan.Dirs)

	// Non-source files still count for include existence checks.
	assert.Contains(t, scan.Files, "README.md")
	assert.Contains(t, scan.Files, "data/notes.txt")

	assert.Equal(t, 4, scan.Stats.DirsVisited)
	assert.Equal(t, 0, scan.Stats.DirsPruned)
	assert.Equal(t, 6, scan.Stats.FilesVisited)
	assert.Equal(t, 4, scan.Stats.SourceFiles)
}

func TestScanTree_SegmentFilterPrunesSubtree(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.h":          "",
		"b/c.cpp":      "",
		"b/deep/d.cpp": "",
	})

	scan := scanFixture(t, root, exclude.NewRuleSet(root, nil, []string{"b"}, nil))

	assert.Equal(t, []string{"a.h"}, scan.SourceFiles)
	assert.Equal(t, []string{"."}, scan.Dirs)

	// The pruned subtree is never descended into.
	assert.Equal(t, 1, scan.Stats.DirsVisited)
	assert.Equal(t, 1, scan.Stats.DirsPruned)
	assert.Equal(t, 1, scan.Stats.FilesVisited)
	for _, f := range scan.Files {
		assert.NotContains(t, f, "b/")
	}
}

func TestScanTree_PathExcludePrunesOnlyThatPath(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/gen/x.c":  "",
		"src/keep/y.c": "",
	})

	scan := scanFixture(t, root, exclude.NewRuleSet(root, []string{"src/gen"}, nil, nil))

	assert.Equal(t, []string{"src/keep/y.c"}, scan.SourceFiles)
	assert.Equal(t, 1, scan.Stats.DirsPruned)
}

func TestScanTree_HiddenDirsPrunedHiddenFilesKept(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".git/junk.c":  "",
		".cache/m.h":   "",
		".hidden.c":    "",
		"src/normal.c": "",
	})

	scan := scanFixture(t, root, exclude.NewRuleSet(root, nil, nil, nil))

	assert.ElementsMatch(t, []string{".hidden.c", "src/normal.c"}, scan.SourceFiles)
	assert.Equal(t, 2, scan.Stats.DirsPruned)
}

func TestScanTree_SubprojectCandidates(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"CMakeLists.txt":          "",
		"liba/CMakeLists.txt":     "",
		"liba/a.c":                "",
		"vendor/CMakeLists.txt":   "",
		"vendor/v.c":              "",
		"plain/p.c":               "",
		"liba/cmakelists.txt.bak": "",
	})

	rules := exclude.NewRuleSet(root, nil, nil, []string{"vendor"})
	scan := scanFixture(t, root, rules)

	// The root itself is never a subproject, and -z removes candidacy
	// without removing the files from the scan.
	assert.Equal(t, []string{"liba"}, scan.Subprojects)
	assert.Contains(t, scan.SourceFiles, "vendor/v.c")
}

func TestScanTree_CustomExtensions(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.cxx":    "",
		"hx/b.hxx": "",
		"c.cpp":    "",
	})

	scan, err := ScanTree(root, exclude.NewRuleSet(root, nil, nil, nil),
		[]string{"cxx", "hxx"}, []string{"hxx"}, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"a.cxx", "hx/b.hxx"}, scan.SourceFiles)
	assert.Equal(t, []string{"hx"}, scan.HeaderDirs)
}

func TestScanTree_ExtensionMatchIsCaseInsensitive(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"LEGACY.C": "", "OTHER.CPP": ""})

	scan := scanFixture(t, root, exclude.NewRuleSet(root, nil, nil, nil))

	assert.ElementsMatch(t, []string{"LEGACY.C", "OTHER.CPP"}, scan.SourceFiles)
}

func TestScanTree_UnreadableRoot(t *testing.T) {
	_, err := ScanTree(filepath.Join(t.TempDir(), "missing"),
		exclude.RuleSet{}, defaultSourceTypes, defaultHeaderTypes, zaptest.NewLogger(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot read scan root")
}
