// Package pipeline implements the leaves-first C1-C9 orchestration:
// a chain of Processor stages threading a single PipelineContext, adapted
// directly from funxy's internal/pipeline/pipeline.go Processor chain.
package pipeline

// Processor is one pipeline stage (C1-C9). Stages never abort on error; they
// record diagnostics on the context and return it for the next stage, per
// 's propagation rule.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline. It does not stop on error by default, mirroring
// funxy's "continue on errors to collect diagnostics from all stages"
// comment; callers that want C6-C9 skipped after an error check
// ctx.Diagnostics.HasErrors() between Run calls, or set ctx.StopOnError.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		if ctx.StopOnError && ctx.Diagnostics.HasErrors() {
			break
		}
	}
	return ctx
}
