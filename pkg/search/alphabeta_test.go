package search_test

import (
	"context"
	"testing"
	"time"

	"github.com/climblabs/corvid/pkg/board/fen"
	"github.com/climblabs/corvid/pkg/eval"
	"github.com/climblabs/corvid/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlphaBetaMates(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		fen      string
		depth    int
		distance int
	}{
		{"k7/7R/6R1/8/8/8/8/7K w - - 0 1", 3, 1},
		{"k7/7R/7R/8/8/8/8/7K w - - 0 1", 5, 3},
		{"6k1/5ppp/8/8/8/8/8/R6K w - - 0 1", 3, 1},
	}

	for _, tt := range tests {
		b, err := fen.Decode(tt.fen)
		require.NoError(t, err)

		ab := search.NewAlphaBeta(eval.NewEvaluator(), search.NoTranspositionTable{})
		n, score, pv, err := ab.Search(ctx, b, tt.depth, time.Time{}, nil)
		require.NoError(t, err)
		assert.Greater(t, n, uint64(0))

		md, ok := score.MateDistance()
		require.Truef(t, ok, "expected a mate score for %v, got %v (pv=%v)", tt.fen, score, pv)
		assert.Equal(t, tt.distance, md, "fen=%v", tt.fen)
		assert.NotEmpty(t, pv)
	}
}

func TestAlphaBetaQuiescentStandPat(t *testing.T) {
	ctx := context.Background()

	// A quiet starting position should score close to level, since there's nothing tactical left
	// for quiescence to resolve beyond the nominal horizon.
	b, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	ab := search.NewAlphaBeta(eval.NewEvaluator(), search.NoTranspositionTable{})
	_, score, _, err := ab.Search(ctx, b, 2, time.Time{}, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0, int(score), 150)
}

func TestAlphaBetaHonorsDeadline(t *testing.T) {
	ctx := context.Background()

	b, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	ab := search.NewAlphaBeta(eval.NewEvaluator(), search.NoTranspositionTable{})
	_, _, _, err = ab.Search(ctx, b, 64, time.Now().Add(-time.Second), nil)
	assert.ErrorIs(t, err, search.ErrHalted)
}
