package agentx

import (
	"gonum.org/v1/gonum/stat"
)

// Summary condenses a season history into a few figures.
type Summary struct {
	Games      int     `json:"games"`
	WinRate    float64 `json:"win_rate"`
	MeanReward float64 `json:"mean_reward"`
	StdReward  float64 `json:"std_reward"`
	MeanMoves  float64 `json:"mean_moves"`
	// FinalTableSize is the table size after the last recorded game.
	FinalTableSize int `json:"final_table_size"`
}

// Summary computes the summary of the recorded games.
func (s SeasonStats) Summary() Summary {
	sum := Summary{Games: s.TotalGames}
	if len(s.History) == 0 {
		return sum
	}

	rewards := make([]float64, len(s.History))
	moves := make([]float64, len(s.History))
	for i, rec := range s.History {
		rewards[i] = float64(rec.Reward)
		moves[i] = float64(rec.Moves)
	}
	sum.MeanReward = stat.Mean(rewards, nil)
	sum.MeanMoves = stat.Mean(moves, nil)
	if len(rewards) > 1 {
		sum.StdReward = stat.StdDev(rewards, nil)
	}
	if s.TotalGames > 0 {
		sum.WinRate = float64(s.Wins) / float64(s.TotalGames)
	}
	sum.FinalTableSize = s.History[len(s.History)-1].TableSize
	return sum
}
