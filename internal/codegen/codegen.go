package codegen

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lumina-lang/lumina/internal/config"
	"github.com/lumina-lang/lumina/internal/ir"
)

// Target selects the module format the emitter wires runtime imports for.
type Target int

const (
	TargetESM Target = iota
	TargetCJS
)

// Options configures one Generate call.
type Options struct {
	Target       Target
	SourceMap    bool
	NoRuntime    bool // --no-runtime: omit the runtime import/require entirely
	RuntimeModule string
	SourceFile   string // path recorded as the source-map "sources" entry
}

// DefaultRuntimeModule is used when Options.RuntimeModule is empty.
const DefaultRuntimeModule = "@lumina/runtime"

// Output is the code generator's product: JS text plus, when requested,
// its source map.
type Output struct {
	JS        string
	SourceMap string
}

// Generate runs the code generator over an optimized IR program and
// produces JS text plus an optional source map.
func Generate(prog *ir.Program, source string, opts Options) *Output {
	e := newEmitter(prog, source, opts)
	e.emitProgram(prog)
	out := &Output{JS: e.buf.String()}
	if opts.SourceMap {
		out.SourceMap = e.sm.Serialize()
	}
	return out
}

type emitter struct {
	buf       strings.Builder
	line, col int
	opts      Options
	sm        *SourceMapBuilder
}

func newEmitter(prog *ir.Program, source string, opts Options) *emitter {
	if opts.RuntimeModule == "" {
		opts.RuntimeModule = DefaultRuntimeModule
	}
	file := ""
	if opts.SourceFile != "" {
		file = config.TrimSourceExt(filepath.Base(opts.SourceFile)) + ".js"
	}
	return &emitter{opts: opts, sm: NewSourceMapBuilder(file, opts.SourceFile)}
}

// write appends s to the buffer without any newline, advancing the column
// tracker the source-map builder keys off.
func (e *emitter) write(s string) {
	e.buf.WriteString(s)
	e.col += len(s)
}

// writeLine appends s followed by a newline and advances the source-map
// builder to a fresh generated line.
func (e *emitter) writeLine(s string) {
	e.buf.WriteString(s)
	e.buf.WriteByte('\n')
	e.line++
	e.col = 0
	e.sm.NewLine()
}

// mark records that the current write position maps back to loc, for
// every node the emitter visits: every top-level statement and every
// expression carries its source start line/column.
func (e *emitter) mark(loc ir.Node) {
	l := loc.Location()
	e.sm.Add(e.col, l.Start.Line, l.Start.Column)
}

func (e *emitter) emitProgram(prog *ir.Program) {
	if !e.opts.NoRuntime {
		e.emitRuntimeImport()
	}
	for _, stmt := range prog.Body {
		e.emitTopLevel(stmt, prog.SSA)
	}
}

// emitRuntimeImport wires in every name the runtime ABI exposes, in the
// module format Options.Target selects.
func (e *emitter) emitRuntimeImport() {
	names := []string{
		config.RuntimeIO, config.RuntimeStr, config.RuntimeMath, config.RuntimeList, config.RuntimeVec,
		config.RuntimeHashMap, config.RuntimeHashSet, config.RuntimeChannel, config.RuntimeThread,
		config.RuntimeSync, config.RuntimeFS, config.RuntimeHTTP, config.RuntimeTime, config.RuntimeRegex,
		config.RuntimeCrypto, config.ResultTypeName, config.OptionTypeName, config.SetHelperName,
		config.FormatValueName, config.StringifyHelper, config.RangeHelper, config.SliceHelper,
		config.IndexHelper, config.PanicTypeName,
	}
	joined := strings.Join(names, ", ")
	switch e.opts.Target {
	case TargetCJS:
		e.writeLine(fmt.Sprintf("const { %s } = require(%s);", joined, jsonString(e.opts.RuntimeModule)))
	default:
		e.writeLine(fmt.Sprintf("import { %s } from %s;", joined, jsonString(e.opts.RuntimeModule)))
	}
}

func (e *emitter) emitTopLevel(stmt ir.Stmt, ssa bool) {
	switch s := stmt.(type) {
	case *ir.Function:
		e.emitFunction(s, ssa)
	case *ir.Noop:
		// no runtime behavior left to emit
	default:
		e.emitStmt(stmt, ssa)
	}
}
