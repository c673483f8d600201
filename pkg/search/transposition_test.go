package search_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/climblabs/corvid/pkg/board"
	"github.com/climblabs/corvid/pkg/search"
	"github.com/stretchr/testify/assert"
)

func TestTranspositionTable(t *testing.T) {
	ctx := context.Background()

	// Size rounds down to the nearest power-of-2 entry count.

	tt := search.NewTranspositionTable(ctx, 0x1000)
	assert.Equal(t, uint64(0x1000), tt.Size())
	tt2 := search.NewTranspositionTable(ctx, 0x1f00)
	assert.Equal(t, uint64(0x1000), tt2.Size())

	// Read/write round-trip.

	a := board.ZobristKey(rand.Uint64())

	_, _, _, _, ok := tt.Read(a)
	assert.False(t, ok)

	m := board.Move{From: board.G4, To: board.G8, Promotion: board.Queen}
	s := board.Score(2)
	assert.True(t, tt.Write(a, search.ExactBound, 5, 2, s, m))

	bound, depth, score, move, ok := tt.Read(a)
	assert.True(t, ok)
	assert.Equal(t, search.ExactBound, bound)
	assert.Equal(t, 2, depth)
	assert.Equal(t, s, score)
	assert.Equal(t, m, move)

	_, _, _, _, ok = tt.Read(a ^ 0xff0000)
	assert.False(t, ok)

	// Replacement favors the deeper, more recent entry.

	norepl := tt.Write(a, search.ExactBound, 2, 1, board.Score(5), m)
	assert.False(t, norepl)

	repl := tt.Write(a, search.ExactBound, 4, 3, board.Score(5), m)
	assert.True(t, repl)
}

func TestNoTranspositionTable(t *testing.T) {
	tt := search.NoTranspositionTable{}
	assert.Equal(t, uint64(0), tt.Size())

	m := board.Move{From: board.E2, To: board.E4}
	assert.False(t, tt.Write(board.ZobristKey(1), search.ExactBound, 0, 4, 30, m))

	_, _, _, _, ok := tt.Read(board.ZobristKey(1))
	assert.False(t, ok)
}

func TestMinDepthTranspositionTable(t *testing.T) {
	ctx := context.Background()
	tt := search.NewMinDepthTranspositionTable(4)(ctx, 0x1000)

	m := board.Move{From: board.D2, To: board.D4}
	assert.False(t, tt.Write(board.ZobristKey(7), search.ExactBound, 0, 3, 10, m))
	assert.True(t, tt.Write(board.ZobristKey(7), search.ExactBound, 0, 4, 10, m))

	_, depth, _, _, ok := tt.Read(board.ZobristKey(7))
	assert.True(t, ok)
	assert.Equal(t, 4, depth)
}
