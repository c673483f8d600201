package eval

import (
	"math/rand"

	"github.com/climblabs/corvid/pkg/board"
)

// Scorer evaluates a position, returning a score in centipawns from the perspective of the side
// to move. *Evaluator implements it; Random wraps one to add noise.
type Scorer interface {
	Evaluate(b *board.Board) board.Score
}

// Random adds a small amount of noise to an inner Scorer's evaluation, so that otherwise
// deterministic search varies its move choice among near-equal alternatives from game to game.
type Random struct {
	inner Scorer
	rnd   *rand.Rand
	limit int
}

// Randomize wraps inner with noise in the range [-limit/2, limit/2] centipawns, seeded by seed. A
// non-positive limit returns inner unchanged.
func Randomize(inner Scorer, limit int, seed int64) Scorer {
	if limit <= 0 {
		return inner
	}
	return Random{inner: inner, rnd: rand.New(rand.NewSource(seed)), limit: limit}
}

func (n Random) Evaluate(b *board.Board) board.Score {
	noise := board.Score(n.rnd.Intn(n.limit) - n.limit/2)
	return n.inner.Evaluate(b) + noise
}
