package game

import (
	"fmt"

	"github.com/notnil/chess"
)

// Layout is the piece-or-empty content of every square, indexed by chess.Square.
type Layout [RowNum * ColNum]chess.Piece

// PieceValue is the conventional material value of a piece type. Kings are worth nothing.
func PieceValue(t chess.PieceType) int {
	switch t {
	case chess.Pawn:
		return 1
	case chess.Knight, chess.Bishop:
		return 3
	case chess.Rook:
		return 5
	case chess.Queen:
		return 9
	}
	return 0
}

// Count returns the number of non-king pieces of colour c.
func (l *Layout) Count(c chess.Color) int {
	var n int
	for _, p := range l {
		if p != chess.NoPiece && p.Color() == c && p.Type() != chess.King {
			n++
		}
	}
	return n
}

// HasQueen reports whether colour c still has at least one queen.
func (l *Layout) HasQueen(c chess.Color) bool {
	for _, p := range l {
		if p != chess.NoPiece && p.Color() == c && p.Type() == chess.Queen {
			return true
		}
	}
	return false
}

// Balance is the signed material sum over all pieces, positive when it favours c.
func (l *Layout) Balance(c chess.Color) int {
	var score int
	for _, p := range l {
		if p == chess.NoPiece {
			continue
		}
		if p.Color() == c {
			score += PieceValue(p.Type())
		} else {
			score -= PieceValue(p.Type())
		}
	}
	return score
}

// MaterialCategory buckets the non-king piece count difference.
type MaterialCategory byte

const (
	Behind MaterialCategory = iota
	Equal
	Lead
	Strong
)

func (m MaterialCategory) String() string {
	switch m {
	case Strong:
		return "Strong"
	case Lead:
		return "Lead"
	case Equal:
		return "Equal"
	}
	return "Behind"
}

// QueenPresence is own-queen-present × opponent-queen-present.
type QueenPresence byte

const (
	QueensNN QueenPresence = iota
	QueensNY
	QueensYN
	QueensYY
)

func (q QueenPresence) String() string {
	switch q {
	case QueensYY:
		return "YY"
	case QueensYN:
		return "YN"
	case QueensNY:
		return "NY"
	}
	return "NN"
}

// Phase approximates the stage of the game from the amount of material left.
type Phase byte

const (
	Late Phase = iota
	Mid
	Early
)

func (p Phase) String() string {
	switch p {
	case Early:
		return "Early"
	case Mid:
		return "Mid"
	}
	return "Late"
}

// StateKey is the abstracted state the value table is keyed by.
// Many positions map to the same key.
type StateKey struct {
	Material MaterialCategory
	Queens   QueenPresence
	Phase    Phase
}

func (k StateKey) String() string {
	return fmt.Sprintf("m:%v_q:%v_p:%v", k.Material, k.Queens, k.Phase)
}

// Abstract encodes a layout as a StateKey seen from the side own.
func Abstract(l *Layout, own chess.Color) StateKey {
	mine := l.Count(own)
	theirs := l.Count(own.Other())

	var k StateKey
	switch diff := mine - theirs; {
	case diff > 2:
		k.Material = Strong
	case diff > 0:
		k.Material = Lead
	case diff == 0:
		k.Material = Equal
	default:
		k.Material = Behind
	}

	switch ownQ, oppQ := l.HasQueen(own), l.HasQueen(own.Other()); {
	case ownQ && oppQ:
		k.Queens = QueensYY
	case ownQ:
		k.Queens = QueensYN
	case oppQ:
		k.Queens = QueensNY
	default:
		k.Queens = QueensNN
	}

	switch total := mine + theirs; {
	case total > 20:
		k.Phase = Early
	case total > 10:
		k.Phase = Mid
	default:
		k.Phase = Late
	}
	return k
}
