// Package opponent implements the fixed-policy player the learning agent trains against.
package opponent

import (
	"github.com/agentx/game"
	"golang.org/x/exp/rand"
)

// BestMove picks a move for the side to move in g with a fixed priority policy:
//  1. a move that checkmates immediately (first one found)
//  2. the capture taking the most valuable piece (first one on ties)
//  3. a random checking move
//  4. a random legal move
// Candidates are tried on clones of g; g itself is never modified.
func BestMove(g game.State, legal []game.Move, r *rand.Rand) (game.Move, error) {
	if len(legal) == 0 {
		return game.Move{}, game.ErrNoLegalMoves
	}

	// after[i] is legal[i] played on a scratch copy, nil if the provider rejected it.
	after := make([]game.State, len(legal))
	for i, m := range legal {
		scratch := g.Clone()
		if err := scratch.Apply(m); err != nil {
			continue
		}
		after[i] = scratch
		if scratch.Checkmate() {
			return m, nil
		}
	}

	if best, ok := BestCapture(legal); ok {
		return best, nil
	}

	var checks []game.Move
	for i, m := range legal {
		if after[i] != nil && after[i].Check() {
			checks = append(checks, m)
		}
	}
	if len(checks) > 0 {
		return checks[r.Intn(len(checks))], nil
	}
	return legal[r.Intn(len(legal))], nil
}

// BestCapture returns the capture taking the highest-valued piece, the first one in order on ties.
func BestCapture(legal []game.Move) (game.Move, bool) {
	best, bestVal := -1, -1
	for i, m := range legal {
		if !m.IsCapture() {
			continue
		}
		if v := game.PieceValue(m.Captured); v > bestVal {
			best, bestVal = i, v
		}
	}
	if best < 0 {
		return game.Move{}, false
	}
	return legal[best], true
}
