package parser

import "github.com/lumina-lang/lumina/internal/pipeline"

// Processor is the C1 pipeline stage: it runs Adapt over the context's
// source text, stores the resulting AST on ctx.AstRoot, and records any
// syntax diagnostics, matching funxy's internal/parser/processor.go
// Process(ctx) *PipelineContext shape.
type Processor struct{}

func NewProcessor() *Processor { return &Processor{} }

func (p *Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	prog, diags := Adapt(ctx.Source, ctx.FilePath)
	ctx.AstRoot = prog
	ctx.Diagnostics.AddAll(diags)
	return ctx
}
