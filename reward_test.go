package agentx

import (
	"testing"

	"github.com/notnil/chess"
	"github.com/stretchr/testify/require"

	"github.com/agentx/game"
)

func TestReward(t *testing.T) {
	cases := []struct {
		name    string
		move    game.Move
		won     bool
		ended   bool
		balance int
		want    float32
	}{
		{"rook capture", game.Move{SAN: "Rxd5", Captured: chess.Rook}, false, false, 3, 1300},
		{"quiet move", game.Move{SAN: "e4"}, false, false, 0, 0},
		{"behind", game.Move{SAN: "e4"}, false, false, -2, -200},
		{"promotion with check", game.Move{SAN: "a8=Q+", Promo: chess.Queen, Check: true}, false, false, 8, 6300},
		{"capture promotion", game.Move{SAN: "bxa8=N", Captured: chess.Rook, Promo: chess.Knight}, false, false, 1, 6100},
		{"checkmate", game.Move{SAN: "Qxf7#", Captured: chess.Pawn, Check: true}, true, true, 2, 50000},
		{"advantage win", game.Move{SAN: "Nxd5", Captured: chess.Queen}, true, false, 4, 50000},
		{"stalemate", game.Move{SAN: "Qf7", Captured: chess.NoPieceType}, false, true, 9, -20000},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.want, Reward(c.move, c.won, c.ended, c.balance))
		})
	}
}

func TestCaptureBonus(t *testing.T) {
	require.Equal(t, float32(200), CaptureBonus(chess.Pawn))
	require.Equal(t, float32(600), CaptureBonus(chess.Knight))
	require.Equal(t, float32(600), CaptureBonus(chess.Bishop))
	require.Equal(t, float32(1000), CaptureBonus(chess.Rook))
	require.Equal(t, float32(3000), CaptureBonus(chess.Queen))
	require.Equal(t, float32(0), CaptureBonus(chess.NoPieceType))
}
