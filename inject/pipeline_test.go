// go test github.com/homemade/notebook-inject/inject -v
package inject

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func appendStage(suffix string) Stage {
	return StageFunc(func(_ context.Context, script string, _ *Paragraph) string {
		return script + suffix
	})
}

func TestPipeline_RunsStagesInOrder(t *testing.T) {
	p := NewPipeline(appendStage("-a"), nil, appendStage("-b"))
	p = p.Then(appendStage("-c"))

	assert.Len(t, p, 3)
	assert.Equal(t, "s-a-b-c", p.Run(context.Background(), "s", nil))
}

func TestPipeline_Empty(t *testing.T) {
	assert.Equal(t, "s", Pipeline(nil).Run(context.Background(), "s", nil))
}

func TestPipeline_ThenDoesNotShareBacking(t *testing.T) {
	base := make(Pipeline, 0, 4)
	base = append(base, appendStage("-a"))
	first := base.Then(appendStage("-1"))
	second := base.Then(appendStage("-2"))

	assert.Equal(t, "s-a-1", first.Run(context.Background(), "s", nil))
	assert.Equal(t, "s-a-2", second.Run(context.Background(), "s", nil))
}

func TestPipeline_InjectorOutputFeedsNextStage(t *testing.T) {
	var seen string
	observer := StageFunc(func(_ context.Context, script string, _ *Paragraph) string {
		seen = script
		return "final"
	})
	// without a URL the injector is a no-op but the next stage still runs
	p := NewPipeline(&HTTPConfigInjector{}, observer)
	paragraph := &Paragraph{
		Context:     &ExecutionContext{NoteID: "n", ParagraphID: "p", UserName: "u"},
		Interpreter: NewPropertyInterpreter("jdbc", nil),
	}

	assert.Equal(t, "final", p.Run(context.Background(), "select ${x}", paragraph))
	assert.Equal(t, "select ${x}", seen)
}
