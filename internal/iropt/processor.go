package iropt

import (
	"github.com/lumina-lang/lumina/internal/diagnostics"
	"github.com/lumina-lang/lumina/internal/ir"
	"github.com/lumina-lang/lumina/internal/pipeline"
	"github.com/lumina-lang/lumina/internal/token"
)

// internalDiagnostic wraps a validation failure as a compiler-bug-class
// diagnostic.
func internalDiagnostic(msg string) *diagnostics.Diagnostic {
	return diagnostics.New(diagnostics.CodeInternal, token.Location{}, "IR validation failed: %s", msg)
}

// Processor is the C8 pipeline stage.
type Processor struct{}

func NewProcessor() *Processor { return &Processor{} }

func (p *Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	raw, ok := ctx.Get(pipeline.KeyIRProgram)
	if !ok {
		return ctx
	}
	prog, ok := raw.(*ir.Program)
	if !ok || prog == nil {
		return ctx
	}
	res := Run(prog)
	for _, msg := range res.ValidationErrs {
		ctx.Diagnostics.Add(internalDiagnostic(msg))
	}
	ctx.Set(pipeline.KeyOptimizedIR, res.Program)
	return ctx
}
