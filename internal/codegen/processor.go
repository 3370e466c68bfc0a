package codegen

import (
	"github.com/lumina-lang/lumina/internal/ir"
	"github.com/lumina-lang/lumina/internal/pipeline"
)

// Processor is the C9 pipeline stage.
type Processor struct {
	Opts Options
}

func NewProcessor(opts Options) *Processor { return &Processor{Opts: opts} }

func (p *Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	raw, ok := ctx.Get(pipeline.KeyOptimizedIR)
	if !ok {
		raw, ok = ctx.Get(pipeline.KeyIRProgram)
		if !ok {
			return ctx
		}
	}
	prog, ok := raw.(*ir.Program)
	if !ok || prog == nil {
		return ctx
	}
	opts := p.Opts
	if opts.SourceFile == "" {
		opts.SourceFile = ctx.FilePath
	}
	out := Generate(prog, ctx.Source, opts)
	ctx.Set(pipeline.KeyJSOutput, out.JS)
	if opts.SourceMap {
		ctx.Set(pipeline.KeySourceMap, out.SourceMap)
	}
	return ctx
}
