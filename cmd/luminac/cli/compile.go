package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lumina-lang/lumina/internal/check"
	"github.com/lumina-lang/lumina/internal/codegen"
	"github.com/lumina-lang/lumina/internal/config"
	"github.com/lumina-lang/lumina/internal/diagnostics"
	"github.com/lumina-lang/lumina/internal/infer"
	"github.com/lumina-lang/lumina/internal/ir"
	"github.com/lumina-lang/lumina/internal/iropt"
	"github.com/lumina-lang/lumina/internal/modulegraph"
	"github.com/lumina-lang/lumina/internal/mono"
	"github.com/lumina-lang/lumina/internal/parser"
	"github.com/lumina-lang/lumina/internal/pipeline"
	"github.com/lumina-lang/lumina/internal/symbols"
)

var (
	flagTarget     string
	flagSourceMap  bool
	flagNoRuntime  bool
	flagVerbose    bool
	flagOutDir     string
)

var compileCmd = &cobra.Command{
	Use:   "compile <file>",
	Short: "Compile a Lumina source file to JavaScript",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompile,
}

func init() {
	compileCmd.Flags().StringVar(&flagTarget, "target", "esm", "module target: esm|cjs")
	compileCmd.Flags().BoolVar(&flagSourceMap, "source-map", false, "emit a .map file alongside the JS output")
	compileCmd.Flags().BoolVar(&flagNoRuntime, "no-runtime", false, "omit the runtime import/require")
	compileCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "log per-stage timing to stderr")
	compileCmd.Flags().StringVar(&flagOutDir, "out-dir", "", "directory to write output into (default: alongside input)")
}

// stageTiming is the --verbose trace entry logged per pipeline stage.
type stageTiming struct {
	name     string
	duration time.Duration
}

func runCompile(cmd *cobra.Command, args []string) error {
	if flagVerbose {
		log.SetLevel(logrus.DebugLevel)
	}

	path := args[0]
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	target := codegen.TargetESM
	switch strings.ToLower(flagTarget) {
	case "esm":
		target = codegen.TargetESM
	case "cjs":
		target = codegen.TargetCJS
	default:
		return fmt.Errorf("unknown --target %q (want esm|cjs)", flagTarget)
	}

	projectRoot := filepath.Dir(path)
	graphProc, err := modulegraph.NewProcessor(projectRoot)
	if err != nil {
		return fmt.Errorf("loading project: %w", err)
	}

	ctx := pipeline.NewContext(path, string(src), uuid.NewString())

	stages := []struct {
		name string
		proc pipeline.Processor
	}{
		{"parser", parser.NewProcessor()},
		{"modulegraph", graphProc},
		{"symbols", symbols.NewProcessor()},
		{"infer", infer.NewProcessor()},
		{"check", check.NewProcessor()},
		{"mono", mono.NewProcessor()},
		{"ir", ir.NewProcessor(true)},
		{"iropt", iropt.NewProcessor()},
		{"codegen", codegen.NewProcessor(codegen.Options{
			Target:     target,
			SourceMap:  flagSourceMap,
			NoRuntime:  flagNoRuntime,
			SourceFile: path,
		})},
	}

	var timings []stageTiming
	for _, st := range stages {
		start := time.Now()
		ctx = st.proc.Process(ctx)
		timings = append(timings, stageTiming{name: st.name, duration: time.Since(start)})
		if ctx.Diagnostics.HasErrors() {
			break
		}
	}

	if flagVerbose {
		for _, t := range timings {
			log.Debugf("stage %-12s %v", t.name, t.duration)
		}
	}

	printDiagnostics(path, ctx.Diagnostics.Items())

	if ctx.Diagnostics.HasErrors() {
		os.Exit(1)
	}

	jsRaw, ok := ctx.Get(pipeline.KeyJSOutput)
	if !ok {
		return fmt.Errorf("internal error: no JS output produced for %s", path)
	}
	js, _ := jsRaw.(string)

	outDir := flagOutDir
	if outDir == "" {
		outDir = filepath.Dir(path)
	}
	base := config.TrimSourceExt(filepath.Base(path))
	jsPath := filepath.Join(outDir, base+".js")

	if err := os.WriteFile(jsPath, []byte(js), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", jsPath, err)
	}

	if flagSourceMap {
		if smRaw, ok := ctx.Get(pipeline.KeySourceMap); ok {
			sm, _ := smRaw.(string)
			mapPath := jsPath + ".map"
			if err := os.WriteFile(mapPath, []byte(sm), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", mapPath, err)
			}
		}
	}

	return nil
}

func printDiagnostics(path string, items []*diagnostics.Diagnostic) {
	for _, d := range items {
		fmt.Fprintf(os.Stderr, "%s:%d:%d: %s[%s]: %s\n",
			path, d.Location.Start.Line, d.Location.Start.Column, d.Severity, d.Code, d.Message)
		for _, r := range d.RelatedInformation {
			fmt.Fprintf(os.Stderr, "    note: %s (%d:%d)\n", r.Message, r.Location.Start.Line, r.Location.Start.Column)
		}
	}
}
