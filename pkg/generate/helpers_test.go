package generate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeTree materializes files under dir. Keys are slash-separated paths
// relative to dir, values are file contents.
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		abs := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0755))
		require.NoError(t, os.WriteFile(abs, []byte(content), 0644))
	}
}

// utf16leBytes encodes ASCII text as UTF-16LE with a BOM.
func utf16leBytes(s string) []byte {
	out := []byte{0xFF, 0xFE}
	for i := 0; i < len(s); i++ {
		out = append(out, s[i], 0x00)
	}
	return out
}

// testSettings returns a Settings value with the stock extension lists,
// scanning root and writing into it.
func testSettings(root string) Settings {
	return Settings{
		Root:        root,
		SourceExts:  defaultSourceTypes,
		HeaderExts:  defaultHeaderTypes,
		Output:      filepath.Join(root, "CMakeLists.txt"),
		Project:     "demo",
		CStandard:   11,
		CXXStandard: 11,
	}
}
