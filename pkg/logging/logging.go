// Package logging configures the global zap logger for cmakegen.
package logging

import (
	"go.uber.org/zap"
)

// Logger is the global logger instance
var Logger *zap.Logger

// Setup builds the process-wide logger. Debug mode switches to the
// human-readable development encoder at debug level; otherwise the
// production JSON encoder at info level is used. Both write to stderr,
// which keeps stdout clean for generated CMake output.
func Setup(debug bool, appName, appVersion string) error {
	var err error
	var cfg zap.Config

	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		// A scan emits one warning per unreadable file; sampling would
		// silently drop some of them on large trees.
		cfg.Sampling = nil
	}

	// Add default fields
	cfg.InitialFields = map[string]interface{}{
		"appName":    appName,
		"appVersion": appVersion,
	}

	Logger, err = cfg.Build()
	if err != nil {
		Logger = zap.NewExample()
		return err
	}

	zap.ReplaceGlobals(Logger)
	return nil
}
