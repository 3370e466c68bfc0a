package infer

import (
	"github.com/lumina-lang/lumina/internal/modulegraph"
	"github.com/lumina-lang/lumina/internal/pipeline"
	"github.com/lumina-lang/lumina/internal/symbols"
)

// Processor is the C4 pipeline stage.
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
	var bindings map[string]modulegraph.Export
	if raw, ok := ctx.Get(pipeline.KeyModuleBindings); ok {
		bindings, _ = raw.(map[string]modulegraph.Export)
	}

	ictx, diags := Run(ctx.AstRoot, table, bindings)
	ctx.Diagnostics.AddAll(diags)
	ctx.Set(pipeline.KeyInferContext, ictx)
	return ctx
}
