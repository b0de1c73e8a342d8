package game

import (
	"github.com/notnil/chess"
	"github.com/pkg/errors"
)

var (
	// ErrIllegalMove is returned by Apply when the move is not legal in the current position.
	ErrIllegalMove = errors.New("illegal move")
	// ErrNoLegalMoves is returned when a move is requested in a position without legal moves.
	ErrNoLegalMoves = errors.New("no legal moves")
)

// Move is a legal move together with the facts the learner and the opponent care about.
type Move struct {
	From     chess.Square
	To       chess.Square
	Promo    chess.PieceType // chess.NoPieceType unless promoting
	Captured chess.PieceType // chess.NoPieceType unless capturing
	SAN      string          // canonical notation, unique among the legal moves of a position
	Check    bool            // the move gives check
}

// IsCapture reports whether the move takes a piece.
func (m Move) IsCapture() bool { return m.Captured != chess.NoPieceType }

// IsPromotion reports whether the move promotes a pawn.
func (m Move) IsPromotion() bool { return m.Promo != chess.NoPieceType }

func (m Move) String() string { return m.SAN }

// State is any chess rules provider that is able to report back on a game in progress.
type State interface {
	// These methods represent the game state
	Turn() chess.Color  // Turn returns the color to move next.
	MoveNumber() int    // returns count of half-moves so far that led to this point.
	Layout() Layout     // per-square piece layout.
	LegalMoves() []Move // ordered legal moves of the side to move.

	// Meta-game stuff
	Ended() (ended bool, winner chess.Color) // has the game ended? if yes, then who's the winner?
	Checkmate() bool                         // side to move is checkmated.
	Check() bool                             // side to move is in check.

	// interactions
	Apply(m Move) error // plays m on this state. Returns ErrIllegalMove if m is not legal.
	Reset()             // back to the initial position.

	// generics
	Clone() State
	String() string // FEN
}
