// Package egbb defines the endgame-tablebase probe facade: a two-operation interface (load,
// probe) the search consults once a position is down to a handful of pieces. The reference
// engine's counterpart (egbb.c) dynamically loads a platform-specific shared object built against
// Daniel Shawul's Scorpio bitbases; actually shipping and loading such a library is outside this
// module's scope, so this package only defines the contract and a no-op default that always
// reports "unknown", which is exactly how the reference engine itself behaves before the library
// is loaded or once a position falls outside what's loaded.
package egbb

import "github.com/climblabs/corvid/pkg/board"

// LoadType controls how much of a bitbase set gets loaded into memory, mirroring the reference
// engine's egbb_load_type setting.
type LoadType int

const (
	LoadNone LoadType = iota
	Load4Men
	Load5Men
	SmartLoad
)

// Facade loads and probes an endgame tablebase set. Probe returns ok=false whenever the position
// isn't covered by whatever was loaded (or nothing was loaded at all), exactly the VAL_NONE
// sentinel the reference engine returns from probe_bitbases.
type Facade interface {
	// Load prepares the facade to answer Probe calls, given a directory containing the bitbase
	// files, a cache size in bytes, and how much to load up front.
	Load(path string, cacheSize int, loadType LoadType) error

	// Probe looks up the position held by b, at the given search ply and remaining depth (mirroring
	// the reference engine's heuristic of skipping a probe this close to the root unless the move
	// that reached this position was a capture or pawn push). Returns a score from the side to
	// move's perspective and true if the position was found.
	Probe(b *board.Board, ply, depth int) (board.Score, bool)
}

// NoFacade never has a tablebase loaded and never finds a position, the default a fresh engine
// starts with and the only Facade this module ships, since dynamic library loading is out of
// scope here.
type NoFacade struct{}

func (NoFacade) Load(string, int, LoadType) error                    { return nil }
func (NoFacade) Probe(*board.Board, int, int) (board.Score, bool) { return 0, false }
