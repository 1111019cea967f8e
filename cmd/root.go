package cmd

import (
	"fmt"

	"cmakegen/pkg/generate"
	"cmakegen/pkg/logging"
	"cmakegen/pkg/version"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	rootArgs   generate.Arguments
	rootLogger *zap.Logger
)

// RootCmd is the base command: it scans a C/C++ source tree and
// generates a CMakeLists.txt for indexing.
var RootCmd = &cobra.Command{
	Use:   "cmakegen [root]",
	Short: "Generate a CMakeLists.txt for C/C++ code indexing",
	Long: `cmakegen scans a C/C++ source tree, infers project and system include
paths from the #include directives it finds, and generates a CMakeLists.txt
good enough for an IDE to index the code. The output is not meant to build.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			if rootArgs.Root != "" {
				return fmt.Errorf("scan root given both as --root and as a positional argument")
			}
			rootArgs.Root = args[0]
		}

		logger := rootLogger
		if rootArgs.Debug {
			// Debug mode swaps in the development logger for readable output.
			if err := logging.Setup(true, "cmakegen", version.Get().Version); err == nil {
				logger = logging.Logger
			}
		}

		return generate.Execute(&rootArgs, logger)
	},
}

// Execute runs the root command with the process logger. The returned
// error drives the process exit code.
func Execute(logger *zap.Logger) error {
	rootLogger = logger
	return RootCmd.Execute()
}

func init() {
	RootCmd.SilenceUsage = true
	RootCmd.SilenceErrors = true

	flags := RootCmd.Flags()
	flags.StringVarP(&rootArgs.Root, "root", "o", "", "root directory to scan (default \".\")")
	flags.StringArrayVarP(&rootArgs.Excludes, "exclude", "x", nil, "path to exclude with its subtree (repeatable)")
	flags.StringArrayVarP(&rootArgs.Filters, "filter", "!", nil, "directory name to exclude wherever it occurs (repeatable)")
	flags.StringArrayVarP(&rootArgs.CMakeExcludes, "exclude-cmake", "z", nil, "path to exclude from CMake subproject candidacy (repeatable)")
	flags.StringVarP(&rootArgs.SourceTypes, "source-types", "s", "", "comma-delimited source extensions, overriding the defaults")
	flags.StringVarP(&rootArgs.HeaderTypes, "header-types", "i", "", "comma-delimited header extensions, overriding the defaults")
	flags.StringVar(&rootArgs.Output, "output", "", "output path, '-' for stdout (default <root>/CMakeLists.txt)")
	flags.StringVar(&rootArgs.Project, "project", "", "project name (default: root directory name)")
	flags.StringVar(&rootArgs.ConfigFile, "config", "", "TOML config file (default: ./cmakegen.toml if present)")
	flags.BoolVarP(&rootArgs.Debug, "debug", "d", false, "enable debug logging")
}
