// Package cli implements luminac's Cobra command tree, grounded on
// Consensys-go-corset's pkg/cmd/root.go Execute()/rootCmd shape and its
// exit-code conventions: 0 on success, 1 on failure.
package cli

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lumina-lang/lumina/internal/config"
)

var rootCmd = &cobra.Command{
	Use:     "luminac",
	Short:   "Compiles Lumina source to JavaScript",
	Long:    "luminac is the Lumina language compiler: parsing, inference, checking,\nmonomorphization, IR optimization, and JavaScript code generation.",
	Version: config.Version,
}

// log is the CLI-boundary-only logger; the compiler core stays
// diagnostics-only and nothing under internal/ imports logrus. --verbose
// raises it to DebugLevel, the same flag Consensys-go-corset's pkg/cmd
// uses for its own stage timing output.
var log = logrus.New()

// colorEnabled reports whether stderr is a TTY, the same mattn/go-isatty
// check Consensys-go-corset's CLI makes before coloring diagnostic output.
func colorEnabled() bool {
	return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
}

func init() {
	rootCmd.AddCommand(compileCmd)
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableColors: !colorEnabled()})
}

// Execute runs the root command; main.main calls this once.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
