package check

import (
	"github.com/lumina-lang/lumina/internal/infer"
	"github.com/lumina-lang/lumina/internal/pipeline"
	"github.com/lumina-lang/lumina/internal/symbols"
)

// Processor is the C5 pipeline stage. Its checks contribute diagnostics; the
// only data it changes is the inference context's FnReturns entries for
// functions without a return annotation.
type Processor struct{}

func NewProcessor() *Processor { return &Processor{} }

func (p *Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil {
		return ctx
	}
	var table *symbols.Table
	if raw, ok := ctx.Get(pipeline.KeySymbolTable); ok {
		table, _ = raw.(*symbols.Table)
	}
	var ictx *infer.Context
	if raw, ok := ctx.Get(pipeline.KeyInferContext); ok {
		ictx, _ = raw.(*infer.Context)
	}

	diags := Run(ctx.AstRoot, table, ictx)
	ctx.Diagnostics.AddAll(diags)
	return ctx
}
