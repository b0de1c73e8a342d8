package agentx

import (
	"github.com/notnil/chess"

	"github.com/agentx/game"
)

// Terminal rewards dominate the per-move shaping terms.
const (
	WinReward      float32 = 50000
	LossReward     float32 = -20000
	PromotionBonus float32 = 5000
	CheckBonus     float32 = 500
	BalanceWeight  float32 = 100
)

// CaptureBonus is the shaping reward for taking a piece of type t.
func CaptureBonus(t chess.PieceType) float32 {
	switch t {
	case chess.Pawn:
		return 200
	case chess.Knight, chess.Bishop:
		return 600
	case chess.Rook:
		return 1000
	case chess.Queen:
		return 3000
	}
	return 0
}

// Reward scores an agent move. won means the move won the game, ended that the game
// is over after it. balance is the material balance from the agent's side after the move.
func Reward(m game.Move, won, ended bool, balance int) float32 {
	switch {
	case won:
		return WinReward
	case ended:
		return LossReward
	}

	reward := CaptureBonus(m.Captured)
	if m.IsPromotion() {
		reward += PromotionBonus
	}
	if m.Check {
		reward += CheckBonus
	}
	return reward + float32(balance)*BalanceWeight
}
