package search

import "github.com/climblabs/corvid/pkg/board"

// killerTable holds, per ply, the two most recent quiet moves that caused a beta cutoff. A move
// that refuted one line at a given ply is a good first guess for refuting a sibling line at the
// same ply, so killers are tried early in move ordering, ahead of unproven quiet moves.
type killerTable struct {
	moves [board.MaxPly][2]board.Move
}

func newKillerTable() *killerTable {
	return &killerTable{}
}

// update records m as the newest killer at ply, demoting the previous primary killer to
// secondary. A move already recorded as the primary killer is left alone.
func (k *killerTable) update(ply int, m board.Move) {
	if ply >= board.MaxPly || k.moves[ply][0] == m {
		return
	}
	k.moves[ply][1] = k.moves[ply][0]
	k.moves[ply][0] = m
}

// is reports whether m is the primary or secondary killer recorded at ply.
func (k *killerTable) is(ply int, m board.Move) (primary, secondary bool) {
	if ply >= board.MaxPly {
		return false, false
	}
	return k.moves[ply][0] == m, k.moves[ply][1] == m
}

// reset clears every ply's killers, used between searches of unrelated root positions where a
// stale killer from the previous search would only waste move-ordering effort.
func (k *killerTable) reset() {
	*k = killerTable{}
}
