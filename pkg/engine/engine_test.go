package engine_test

import (
	"context"
	"testing"

	"github.com/climblabs/corvid/pkg/board"
	"github.com/climblabs/corvid/pkg/engine"
	"github.com/climblabs/corvid/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveAndTakeBack(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "test", "corvid")

	require.NoError(t, e.Move(ctx, "e2e4"))
	assert.Equal(t, board.Black, e.Board().Turn())

	require.NoError(t, e.TakeBack(ctx))
	assert.Equal(t, board.White, e.Board().Turn())

	assert.Error(t, e.TakeBack(ctx), "no move left to take back")
}

func TestMoveRejectsIllegalMove(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "test", "corvid")

	assert.Error(t, e.Move(ctx, "e2e5"))
}

func TestResetToArbitraryPosition(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "test", "corvid")

	const kiwiPete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	require.NoError(t, e.Reset(ctx, kiwiPete))
	assert.Equal(t, kiwiPete, e.Position())

	assert.Error(t, e.Reset(ctx, "not a fen"))
}

func TestHintWithNoBookReturnsNothingUntilSearched(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "test", "corvid")

	_, ok := e.Hint(ctx)
	assert.False(t, ok)

	assert.Empty(t, e.BookMoves(ctx))
}

func TestAnalyzeRejectsConcurrentSearch(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "test", "corvid")
	e.SetDepth(4)

	out, err := e.Analyze(ctx, search.Options{DepthLimit: 3})
	require.NoError(t, err)

	_, err = e.Analyze(ctx, search.Options{DepthLimit: 3})
	assert.Error(t, err, "search already active")

	_, _ = e.Halt(ctx)
	for range out {
	}
}

func TestScoreMovesCoversEveryLegalMove(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "test", "corvid")

	scores := e.ScoreMoves(ctx, 2)
	assert.Len(t, scores, 20) // 16 pawn pushes/doubles + 4 knight moves from the initial position
}
