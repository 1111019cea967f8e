// File: pkg/generate/includes.go
package generate

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"cmakegen/pkg/chardet"
)

// Include directives are found by textual pattern, one per line.
// Comments and preprocessor conditionals are not evaluated, so a
// directive inside an #if 0 block still counts. Whitespace is tolerated
// around the hash and the keyword, as the preprocessor allows.
var (
	quotedIncludePattern = regexp.MustCompile(`^[ \t]*#[ \t]*include[ \t]*"([^"]+)"`)
	angleIncludePattern  = regexp.MustCompile(`^[ \t]*#[ \t]*include[ \t]*<([^>]+)>`)
)

// extractDirectives collects the raw include targets of decoded source
// text, in file order.
func extractDirectives(text string) []Directive {
	var out []Directive
	for _, line := range strings.Split(text, "\n") {
		if m := quotedIncludePattern.FindStringSubmatch(line); m != nil {
			out = append(out, Directive{Target: m[1]})
			continue
		}
		if m := angleIncludePattern.FindStringSubmatch(line); m != nil {
			out = append(out, Directive{Target: m[1], Angled: true})
		}
	}
	return out
}

// loadSourceFile reads one discovered file, decodes whatever encoding it
// is in, and extracts its include directives. rel is the slash-separated
// path below root.
func loadSourceFile(root, rel string) (SourceFile, error) {
	abs := filepath.Join(root, filepath.FromSlash(rel))
	data, err := os.ReadFile(abs)
	if err != nil {
		return SourceFile{}, err
	}

	text, enc := chardet.DecodeString(data)
	return SourceFile{
		AbsPath:    abs,
		RelPath:    rel,
		Encoding:   enc,
		Directives: extractDirectives(text),
	}, nil
}
