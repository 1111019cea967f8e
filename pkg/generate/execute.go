// File: pkg/generate/execute.go
package generate

import (
	"fmt"
	"os"
	"time"

	"cmakegen/pkg/exclude"

	"go.uber.org/zap"
)

// Execute is the entry point for the generate package. It merges the
// configuration sources and runs the scan-resolve-emit pipeline once.
func Execute(args *Arguments, logger *zap.Logger) error {
	if logger == nil {
		var err error
		logger, err = zap.NewProduction()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer logger.Sync()
	}

	settings, err := ResolveSettings(args)
	if err != nil {
		logger.Error("Failed to resolve configuration", zap.Error(err))
		return err
	}

	return Run(settings, logger)
}

// Run performs one full scan of the tree described by settings and
// writes the generated CMakeLists.txt. The pipeline is synchronous: one
// walk, then one pass over the collected source files, then one write.
func Run(settings Settings, logger *zap.Logger) error {
	startTime := time.Now()
	logger.Info("Starting source tree scan",
		zap.String("root", settings.Root),
		zap.String("output", settings.Output))

	rules := exclude.NewRuleSet(settings.Root, settings.Excludes, settings.Filters, settings.CMakeExcludes)

	scan, err := ScanTree(settings.Root, rules, settings.SourceExts, settings.HeaderExts, logger)
	if err != nil {
		return err
	}

	if len(scan.SourceFiles) == 0 {
		return fmt.Errorf("no source files found under %s", settings.Root)
	}

	resolver := newResolver(scan, systemSearchLocations(), logger)
	for _, rel := range scan.SourceFiles {
		sf, err := loadSourceFile(settings.Root, rel)
		if err != nil {
			scan.Stats.FilesSkipped++
			logger.Warn("Skipping unreadable source file", zap.String("file", rel), zap.Error(err))
			continue
		}
		logger.Debug("Scanned source file",
			zap.String("file", rel),
			zap.String("encoding", sf.Encoding.String()),
			zap.Int("directives", len(sf.Directives)))
		resolver.AddFile(sf)
	}
	scan.Stats.Directives, scan.Stats.Resolved = resolver.DirectiveCounts()

	projectPaths, systemPaths := resolver.Finalize()
	model := buildProjectModel(settings, scan, projectPaths, systemPaths)

	if err := Emit(model, settings.Output, os.Stdout); err != nil {
		return err
	}

	logger.Info("Generated CMake project description",
		zap.String("output", settings.Output),
		zap.Int("sourceFiles", len(model.Sources)),
		zap.Int("projectIncludes", len(model.ProjectPaths)),
		zap.Int("systemIncludes", len(model.SystemPaths)),
		zap.Int("directives", scan.Stats.Directives),
		zap.Int("resolvedDirectives", scan.Stats.Resolved),
		zap.Int("skippedFiles", scan.Stats.FilesSkipped),
		zap.Duration("elapsed", time.Since(startTime)))
	return nil
}
