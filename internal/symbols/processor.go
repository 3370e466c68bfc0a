package symbols

import (
	"github.com/lumina-lang/lumina/internal/modulegraph"
	"github.com/lumina-lang/lumina/internal/pipeline"
)

// Processor is the C3 pipeline stage.
type Processor struct{}

func NewProcessor() *Processor { return &Processor{} }

func (p *Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil {
		return ctx
	}
	var bindings map[string]modulegraph.Export
	if raw, ok := ctx.Get(pipeline.KeyModuleBindings); ok {
		bindings, _ = raw.(map[string]modulegraph.Export)
	}

	table, diags := Resolve(ctx.AstRoot, bindings)
	ctx.Diagnostics.AddAll(diags)
	ctx.Set(pipeline.KeySymbolTable, table)
	return ctx
}
