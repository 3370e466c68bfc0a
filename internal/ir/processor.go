package ir

import "github.com/lumina-lang/lumina/internal/pipeline"

// Processor is the C7 pipeline stage: pure structural AST->IR lowering, no
// diagnostics of its own.
type Processor struct {
	SSA bool
}

func NewProcessor(ssa bool) *Processor { return &Processor{SSA: ssa} }

func (p *Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil {
		return ctx
	}
	prog := Run(ctx.AstRoot, p.SSA)
	ctx.Set(pipeline.KeyIRProgram, prog)
	return ctx
}
