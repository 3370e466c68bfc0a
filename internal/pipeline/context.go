package pipeline

import (
	"github.com/lumina-lang/lumina/internal/ast"
	"github.com/lumina-lang/lumina/internal/diagnostics"
)

// Well-known keys into PipelineContext.Data. Each stage package owns one key
// and casts it back to its own concrete type; this keeps pipeline itself a
// leaf package (it only imports ast/diagnostics) so every stage package
// (parser, modulegraph, symbols, infer, check, mono, ir, iropt, codegen) can
// import pipeline without an import cycle.
const (
	KeyModuleBindings = "moduleBindings" // map[string]modulegraph.Export
	KeySymbolTable    = "symbolTable"    // *symbols.Table
	KeyInferContext   = "inferContext"   // *infer.Context
	KeyIRProgram      = "irProgram"      // *ir.Program
	KeyOptimizedIR    = "optimizedIR"    // *ir.Program
	KeyJSOutput       = "jsOutput"       // string
	KeySourceMap      = "sourceMap"      // string (serialized source-map-v3 JSON)
	KeyRegistry       = "registry"       // *modulegraph.Registry
)

// PipelineContext threads state through C1-C9. Per , the host (LSP or
// CLI) owns a map of these, one per file, mutated between analyses; Data
// plays the role of that "ordinary map" at single-file granularity.
type PipelineContext struct {
	FilePath    string
	Source      string
	RunID       string
	AstRoot     *ast.Program
	Diagnostics diagnostics.Collector
	StopOnError bool
	Data        map[string]interface{}
}

// NewContext creates an empty context for one file.
func NewContext(filePath, source, runID string) *PipelineContext {
	return &PipelineContext{FilePath: filePath, Source: source, RunID: runID, Data: map[string]interface{}{}}
}

// Set stores a stage result under key.
func (c *PipelineContext) Set(key string, value interface{}) {
	c.Data[key] = value
}

// Get retrieves a stage result previously stored under key.
func (c *PipelineContext) Get(key string) (interface{}, bool) {
	v, ok := c.Data[key]
	return v, ok
}
