package mono

import (
	"github.com/lumina-lang/lumina/internal/infer"
	"github.com/lumina-lang/lumina/internal/pipeline"
)

// Processor is the C6 pipeline stage. It has no diagnostics of its own:
// monomorphization only rewrites already-checked code.
type Processor struct{}

func NewProcessor() *Processor { return &Processor{} }

func (p *Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil {
		return ctx
	}
	var ictx *infer.Context
	if raw, ok := ctx.Get(pipeline.KeyInferContext); ok {
		ictx, _ = raw.(*infer.Context)
	}
	ctx.AstRoot = Run(ctx.AstRoot, ictx)
	return ctx
}
