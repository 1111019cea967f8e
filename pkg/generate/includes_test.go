package generate

import (
	"os"
	"path/filepath"
	"testing"

	"cmakegen/pkg/chardet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDirectives_Forms(t *testing.T) {
	text := "#include \"a.h\"\n" +
		"#include <vector>\n" +
		"  #  include  \"sub/dir/b.hpp\"\n" +
		"\t#\tinclude\t<sys/types.h>\n" +
		"#include<cstdio>\n"

	ds := extractDirectives(text)

	assert.Equal(t, []Directive{
		{Target: "a.h"},
		{Target: "vector", Angled: true},
		{Target: "sub/dir/b.hpp"},
		{Target: "sys/types.h", Angled: true},
		{Target: "cstdio", Angled: true},
	}, ds)
}

func TestExtractDirectives_IgnoresNonDirectives(t *testing.T) {
	text := "// #include \"commented.h\"\n" +
		"int x; // #include \"trailing.h\"\n" +
		"#import \"objc.h\"\n" +
		"#include \"unterminated\n" +
		"#include <>\n" +
		"#include\n" +
		"const char *s = \"#include \\\"fake.h\\\"\";\n"

	assert.Empty(t, extractDirectives(text))
}

func TestExtractDirectives_ConditionalBlocksNotEvaluated(t *testing.T) {
	// The scan is textual: directives inside disabled regions still count.
	text := "#if 0\n#include \"disabled.h\"\n#endif\n"

	ds := extractDirectives(text)
	require.Len(t, ds, 1)
	assert.Equal(t, "disabled.h", ds[0].Target)
}

func TestExtractDirectives_Empty(t *testing.T) {
	assert.Empty(t, extractDirectives(""))
}

func TestLoadSourceFile_UTF8(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/main.c": "#include \"util.h\"\n#include <stdio.h>\n",
	})

	sf, err := loadSourceFile(root, "src/main.c")
	require.NoError(t, err)

	assert.Equal(t, "src/main.c", sf.RelPath)
	assert.Equal(t, filepath.Join(root, "src", "main.c"), sf.AbsPath)
	assert.Equal(t, chardet.UTF8, sf.Encoding)
	assert.Equal(t, []Directive{
		{Target: "util.h"},
		{Target: "stdio.h", Angled: true},
	}, sf.Directives)
}

func TestLoadSourceFile_UTF16(t *testing.T) {
	root := t.TempDir()
	data := utf16leBytes("#include \"wide.h\"\n")
	require.NoError(t, os.WriteFile(filepath.Join(root, "w.cpp"), data, 0644))

	sf, err := loadSourceFile(root, "w.cpp")
	require.NoError(t, err)

	assert.Equal(t, chardet.UTF16LE, sf.Encoding)
	assert.Equal(t, []Directive{{Target: "wide.h"}}, sf.Directives)
}

func TestLoadSourceFile_Missing(t *testing.T) {
	_, err := loadSourceFile(t.TempDir(), "absent.c")
	require.Error(t, err)
}
