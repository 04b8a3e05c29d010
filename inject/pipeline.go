package inject

import "context"

// Stage transforms a paragraph's script before it is executed.
// A stage cannot abort the pipeline; it returns the script to hand to the next stage.
type Stage interface {
	Inject(ctx context.Context, script string, paragraph *Paragraph) string
}

// StageFunc adapts a function to Stage.
type StageFunc func(ctx context.Context, script string, paragraph *Paragraph) string

// Inject implements Stage.
func (f StageFunc) Inject(ctx context.Context, script string, paragraph *Paragraph) string {
	return f(ctx, script, paragraph)
}

// Pipeline runs its stages in order, feeding each stage's output into the next.
type Pipeline []Stage

// NewPipeline returns a pipeline of the non-nil stages, in order.
func NewPipeline(stages ...Stage) Pipeline {
	result := make(Pipeline, 0, len(stages))
	for _, s := range stages {
		if s != nil {
			result = append(result, s)
		}
	}
	return result
}

// Then returns a copy of p with stage appended.
func (p Pipeline) Then(stage Stage) Pipeline {
	result := make(Pipeline, len(p), len(p)+1)
	copy(result, p)
	return append(result, stage)
}

// Run returns the script produced by the last stage, or script itself for an empty pipeline.
func (p Pipeline) Run(ctx context.Context, script string, paragraph *Paragraph) string {
	for _, stage := range p {
		script = stage.Inject(ctx, script, paragraph)
	}
	return script
}
