package game

import "github.com/notnil/chess"

var (
	knightSteps = [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingSteps   = [8][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
	diagonals   = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	straights   = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
)

// at returns the piece on file f, rank r, and false when the coordinates are off the board.
func (l *Layout) at(f, r int) (chess.Piece, bool) {
	if f < 0 || f >= ColNum || r < 0 || r >= RowNum {
		return chess.NoPiece, false
	}
	return l[r*ColNum+f], true
}

// King returns the square of the king of colour c.
func (l *Layout) King(c chess.Color) (chess.Square, bool) {
	for sq, p := range l {
		if p != chess.NoPiece && p.Color() == c && p.Type() == chess.King {
			return chess.Square(sq), true
		}
	}
	return 0, false
}

// Attacked reports whether any piece of colour by attacks sq.
func (l *Layout) Attacked(sq chess.Square, by chess.Color) bool {
	f, r := int(sq.File()), int(sq.Rank())
	owns := func(p chess.Piece, types ...chess.PieceType) bool {
		if p == chess.NoPiece || p.Color() != by {
			return false
		}
		for _, t := range types {
			if p.Type() == t {
				return true
			}
		}
		return false
	}

	// pawns attack forward, so look one rank behind sq from their side
	pr := r - 1
	if by == chess.Black {
		pr = r + 1
	}
	for _, df := range []int{-1, 1} {
		if p, ok := l.at(f+df, pr); ok && owns(p, chess.Pawn) {
			return true
		}
	}

	for _, d := range knightSteps {
		if p, ok := l.at(f+d[0], r+d[1]); ok && owns(p, chess.Knight) {
			return true
		}
	}
	for _, d := range kingSteps {
		if p, ok := l.at(f+d[0], r+d[1]); ok && owns(p, chess.King) {
			return true
		}
	}

	return l.ray(f, r, diagonals[:], func(p chess.Piece) bool { return owns(p, chess.Bishop, chess.Queen) }) ||
		l.ray(f, r, straights[:], func(p chess.Piece) bool { return owns(p, chess.Rook, chess.Queen) })
}

// ray walks each direction from (f, r) up to the first occupied square and reports whether
// any of those blockers satisfies hit.
func (l *Layout) ray(f, r int, dirs [][2]int, hit func(chess.Piece) bool) bool {
	for _, d := range dirs {
		for i := 1; ; i++ {
			p, ok := l.at(f+d[0]*i, r+d[1]*i)
			if !ok {
				break
			}
			if p == chess.NoPiece {
				continue
			}
			if hit(p) {
				return true
			}
			break
		}
	}
	return false
}
