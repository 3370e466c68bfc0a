package modulegraph

import (
	"github.com/lumina-lang/lumina/internal/pipeline"
)

// Processor is the C2 pipeline stage. It shares one Registry (and therefore
// one lockfile + file-export cache) across every file compiled by a single
// invocation, set via NewProcessor.
type Processor struct {
	Registry *Registry
}

// NewProcessor builds a C2 stage rooted at projectRoot.
func NewProcessor(projectRoot string) (*Processor, error) {
	reg, err := NewRegistry(projectRoot)
	if err != nil {
		return nil, err
	}
	return &Processor{Registry: reg}, nil
}

func (p *Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil {
		return ctx
	}
	if ctx.AstRoot.File == "" {
		ctx.AstRoot.File = ctx.FilePath
	}

	bindings, diags := BindImports(ctx.AstRoot, p.Registry)
	ctx.Diagnostics.AddAll(diags)
	ctx.Set(pipeline.KeyModuleBindings, bindings)
	ctx.Set(pipeline.KeyRegistry, p.Registry)
	return ctx
}
