// File: pkg/generate/emit.go
package generate

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// buildProjectModel assembles the scan and resolution results into the
// model the renderer consumes. Everything comes out sorted so rendering
// is deterministic.
func buildProjectModel(settings Settings, scan *TreeScan, projectPaths, systemPaths []string) ProjectModel {
	sources := append([]string(nil), scan.SourceFiles...)
	sort.Strings(sources)

	subprojects := append([]string(nil), scan.Subprojects...)
	sort.Strings(subprojects)

	return ProjectModel{
		Name:         settings.Project,
		CStandard:    settings.CStandard,
		CXXStandard:  settings.CXXStandard,
		ProjectPaths: projectPaths,
		SystemPaths:  systemPaths,
		Sources:      sources,
		Groups:       groupSources(sources, subprojects),
	}
}

// groupSources partitions the source list by the deepest subproject
// directory containing each file. Files outside every subproject stay
// ungrouped. Grouping only affects how an IDE displays the file list.
func groupSources(sources, subprojects []string) []SourceGroup {
	if len(subprojects) == 0 {
		return nil
	}

	byDir := make(map[string][]string)
	for _, src := range sources {
		best := ""
		for _, dir := range subprojects {
			if strings.HasPrefix(src, dir+"/") && len(dir) > len(best) {
				best = dir
			}
		}
		if best != "" {
			byDir[best] = append(byDir[best], src)
		}
	}

	groups := make([]SourceGroup, 0, len(byDir))
	for _, dir := range subprojects {
		if files, ok := byDir[dir]; ok {
			groups = append(groups, SourceGroup{Dir: dir, Files: files})
		}
	}
	return groups
}

// RenderCMake produces the CMakeLists.txt text for the model. Sections
// with no entries are omitted.
func RenderCMake(m ProjectModel) string {
	var b strings.Builder

	fmt.Fprintf(&b, "cmake_minimum_required(VERSION 3.9)\n")
	fmt.Fprintf(&b, "project(%s C CXX)\n\n", m.Name)
	fmt.Fprintf(&b, "set(CMAKE_C_STANDARD %d)\n", m.CStandard)
	fmt.Fprintf(&b, "set(CMAKE_CXX_STANDARD %d)\n", m.CXXStandard)

	writeBlock(&b, "include_directories(SYSTEM", m.SystemPaths)
	writeBlock(&b, "include_directories(", m.ProjectPaths)
	writeBlock(&b, fmt.Sprintf("add_executable(%s", m.Name), m.Sources)

	for _, g := range m.Groups {
		writeBlock(&b, fmt.Sprintf("source_group(\"%s\" FILES", g.Dir), g.Files)
	}

	return b.String()
}

// writeBlock emits one multi-entry CMake command, each entry quoted on
// its own indented line.
func writeBlock(b *strings.Builder, opener string, entries []string) {
	if len(entries) == 0 {
		return
	}
	b.WriteString("\n")
	b.WriteString(opener)
	b.WriteString("\n")
	for _, e := range entries {
		fmt.Fprintf(b, "  \"%s\"\n", e)
	}
	b.WriteString(")\n")
}

// Emit renders the model and writes it out. "-" streams to stdout; any
// other destination is written atomically so a failed run never leaves a
// partial CMakeLists.txt behind.
func Emit(m ProjectModel, outputPath string, stdout io.Writer) error {
	content := RenderCMake(m)

	if outputPath == "-" {
		if _, err := io.WriteString(stdout, content); err != nil {
			return fmt.Errorf("failed to write to stdout: %w", err)
		}
		return nil
	}

	if err := writeFileAtomic(outputPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}
	return nil
}

// writeFileAtomic writes data to a temp file in the destination's
// directory and renames it into place.
func writeFileAtomic(dest string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".tmp*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, dest); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
