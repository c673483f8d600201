package book_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/climblabs/corvid/pkg/board"
	"github.com/climblabs/corvid/pkg/board/fen"
	"github.com/climblabs/corvid/pkg/book"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLearnAndProbe(t *testing.T) {
	b, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	// Play 1. e4 e5 2. Nf3, recording the Zobrist key reached after each move, as a game-history
	// driver would.
	moves := []string{"e2e4", "e7e5", "g1f3"}
	keys := make([]board.ZobristKey, len(moves)+1)
	for i, s := range moves {
		m, err := board.ParseMove(s)
		require.NoError(t, err)
		_, m.Piece, _ = b.Square(m.From) // ParseMove leaves Piece for the caller to fill in
		b.MakeMove(m)
		keys[i+1] = b.Key()
	}

	bk := book.New()
	bk.Learn(keys, board.White)

	fresh, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	move, ok := bk.Probe(fresh)
	require.True(t, ok)
	assert.Equal(t, "e2e4", move.String())

	moveset := bk.Moves(fresh)
	assert.Contains(t, moveset, move)
	assert.InDelta(t, 1.0, moveset[move], 1e-9)
}

func TestProbeEmptyBook(t *testing.T) {
	b, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	bk := book.New()
	_, ok := bk.Probe(b)
	assert.False(t, ok)
	assert.Nil(t, bk.Moves(b))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()

	b, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	moves := []string{"d2d4", "d7d5"}
	keys := make([]board.ZobristKey, len(moves)+1)
	for i, s := range moves {
		m, err := board.ParseMove(s)
		require.NoError(t, err)
		_, m.Piece, _ = b.Square(m.From) // ParseMove leaves Piece for the caller to fill in
		b.MakeMove(m)
		keys[i+1] = b.Key()
	}

	bk := book.New()
	bk.Learn(keys, board.White)
	bk.Learn(keys, board.Black) // a second game, lost by White this time

	path := filepath.Join(t.TempDir(), "book.bin")
	require.NoError(t, bk.Save(ctx, path))

	loaded, err := book.Load(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, bk.Len(), loaded.Len())

	fresh, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	// d2d4 now has 1 win in 2 games, scoring 1*1/2 = 0 under integer division, so no book move
	// is offered from the loaded book.
	_, ok := loaded.Probe(fresh)
	assert.False(t, ok)
}

func TestLoadRejectsTruncatedFile(t *testing.T) {
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "bad.bin")
	require.NoError(t, os.WriteFile(path, []byte{1, 2, 3}, 0o644))

	_, err := book.Load(ctx, path)
	assert.Error(t, err)
}
