package egbb_test

import (
	"testing"

	"github.com/climblabs/corvid/pkg/board/fen"
	"github.com/climblabs/corvid/pkg/egbb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoFacadeNeverFinds(t *testing.T) {
	var f egbb.Facade = egbb.NoFacade{}

	assert.NoError(t, f.Load("/tmp/bitbases", 1<<20, egbb.Load5Men))

	b, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	_, ok := f.Probe(b, 1, 0)
	assert.False(t, ok)
}
