package eval_test

import (
	"testing"

	"github.com/climblabs/corvid/pkg/board/fen"
	"github.com/climblabs/corvid/pkg/eval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomizeZeroLimitReturnsInnerUnchanged(t *testing.T) {
	inner := eval.NewEvaluator()
	s := eval.Randomize(inner, 0, 1)

	assert.Same(t, eval.Scorer(inner), s)
}

func TestRandomizeBoundsNoise(t *testing.T) {
	b, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	inner := eval.NewEvaluator()
	want := inner.Evaluate(b)

	s := eval.Randomize(inner, 20, 42)
	for i := 0; i < 50; i++ {
		got := s.Evaluate(b)
		assert.InDelta(t, int(want), int(got), 10)
	}
}

func TestRandomizeSameSeedIsDeterministic(t *testing.T) {
	b, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	a := eval.Randomize(eval.NewEvaluator(), 20, 7)
	c := eval.Randomize(eval.NewEvaluator(), 20, 7)

	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Evaluate(b), c.Evaluate(b))
	}
}
