package game

import (
	"github.com/notnil/chess"
	"github.com/pkg/errors"
)

const (
	RowNum = 8
	ColNum = 8
)

// Chess is a State backed by github.com/notnil/chess.
type Chess struct {
	g     *chess.Game
	start string // FEN of the initial position, empty for the standard one
	plies int
	check bool

	moves []Move // legal moves of the current position, computed lazily
}

// NewChess returns a game from the standard starting position.
func NewChess() *Chess {
	return &Chess{g: chess.NewGame()}
}

// FromFEN returns a game starting from the position described by fen.
func FromFEN(fen string) (*Chess, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, errors.Wrapf(err, "parse FEN %q", fen)
	}
	c := &Chess{g: chess.NewGame(opt), start: fen}
	c.check = c.inCheck()
	return c, nil
}

// Game exposes the underlying notnil game.
func (c *Chess) Game() *chess.Game { return c.g }

func (c *Chess) Turn() chess.Color { return c.g.Position().Turn() }

func (c *Chess) MoveNumber() int { return c.plies }

func (c *Chess) Layout() Layout {
	var l Layout
	for sq, p := range c.g.Position().Board().SquareMap() {
		l[int(sq)] = p
	}
	return l
}

func (c *Chess) LegalMoves() []Move {
	if c.moves != nil {
		return c.moves
	}
	pos := c.g.Position()
	board := pos.Board()
	valid := c.g.ValidMoves()
	moves := make([]Move, 0, len(valid))
	for _, m := range valid {
		mv := Move{
			From:     m.S1(),
			To:       m.S2(),
			Promo:    m.Promo(),
			Captured: chess.NoPieceType,
			SAN:      chess.AlgebraicNotation{}.Encode(pos, m),
			Check:    m.HasTag(chess.Check),
		}
		switch {
		case m.HasTag(chess.EnPassant):
			mv.Captured = chess.Pawn
		case m.HasTag(chess.Capture):
			mv.Captured = board.Piece(m.S2()).Type()
		}
		moves = append(moves, mv)
	}
	c.moves = moves
	return moves
}

func (c *Chess) Ended() (ended bool, winner chess.Color) {
	switch c.g.Outcome() {
	case chess.WhiteWon:
		return true, chess.White
	case chess.BlackWon:
		return true, chess.Black
	case chess.Draw:
		return true, chess.NoColor
	}

	switch c.g.Position().Status() {
	case chess.Checkmate:
		return true, c.Turn().Other()
	case chess.Stalemate:
		return true, chess.NoColor
	}

	// claimable draws end the game as well
	for _, m := range c.g.EligibleDraws() {
		if m == chess.ThreefoldRepetition || m == chess.FiftyMoveRule {
			return true, chess.NoColor
		}
	}
	return false, chess.NoColor
}

func (c *Chess) Checkmate() bool { return c.g.Position().Status() == chess.Checkmate }

func (c *Chess) Check() bool { return c.check }

func (c *Chess) Apply(m Move) error {
	for _, cm := range c.g.ValidMoves() {
		if cm.S1() != m.From || cm.S2() != m.To || cm.Promo() != m.Promo {
			continue
		}
		if err := c.g.Move(cm); err != nil {
			return errors.Wrapf(ErrIllegalMove, "%v: %v", m.SAN, err)
		}
		c.plies++
		c.check = cm.HasTag(chess.Check)
		c.moves = nil
		return nil
	}
	return errors.Wrapf(ErrIllegalMove, "%v%v in %v", m.From, m.To, c.g.Position())
}

func (c *Chess) Reset() {
	if c.start == "" {
		c.g = chess.NewGame()
	} else {
		// start was validated by FromFEN
		opt, _ := chess.FEN(c.start)
		c.g = chess.NewGame(opt)
	}
	c.plies = 0
	c.moves = nil
	c.check = c.inCheck()
}

// Clone copies the current position into an independent game. Move history is not carried over.
func (c *Chess) Clone() State {
	opt, err := chess.FEN(c.g.Position().String())
	if err != nil {
		panic(errors.WithStack(err))
	}
	return &Chess{
		g:     chess.NewGame(opt),
		start: c.start,
		plies: c.plies,
		check: c.check,
	}
}

func (c *Chess) String() string { return c.g.Position().String() }

// inCheck derives the check flag for a position that was not reached through Apply.
func (c *Chess) inCheck() bool {
	l := c.Layout()
	turn := c.Turn()
	king, ok := l.King(turn)
	return ok && l.Attacked(king, turn.Other())
}
