package main

import (
	"log"
	"os"
	"strings"

	"cmakegen/cmd"
	"cmakegen/pkg/version"

	"go.uber.org/zap"
	"golang.org/x/term"
)

func main() {
	logger, err := zap.NewProduction(zap.Fields(
		zap.String("appName", "cmakegen"),
		zap.String("appVersion", version.Get().Version),
	))
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	defer func() {
		// Sync stderr only when it is a terminal or a regular file;
		// otherwise the flush reports errors that mean nothing here.
		if !term.IsTerminal(int(os.Stderr.Fd())) && !isRegularFile(os.Stderr) {
			return
		}
		if syncErr := logger.Sync(); syncErr != nil {
			if !strings.Contains(strings.ToLower(syncErr.Error()), "invalid argument") {
				log.Printf("Logger sync failed: %v", syncErr)
			}
		}
	}()

	if err := cmd.Execute(logger); err != nil {
		logger.Fatal("cmakegen execution failed", zap.Error(err))
	}
}

// isRegularFile checks if the given file is a regular file.
func isRegularFile(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false // Assume not a regular file if we can't get the file info
	}
	return fileInfo.Mode().IsRegular()
}
