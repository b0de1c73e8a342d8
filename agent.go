package agentx

import (
	"github.com/notnil/chess"
	"golang.org/x/exp/rand"

	"github.com/agentx/game"
	"github.com/agentx/opponent"
	"github.com/agentx/qtable"
)

// An Agent is the learning player. It keeps a value table over abstracted states
// and picks moves epsilon-greedily.
type Agent struct {
	Player chess.Color
	Table  *qtable.Table

	conf    AgentConfig
	epsilon float32
	r       *rand.Rand
}

// NewAgent creates an agent playing the given colour with an empty table.
func NewAgent(player chess.Color, conf AgentConfig, r *rand.Rand) *Agent {
	return &Agent{
		Player:  player,
		Table:   qtable.New(),
		conf:    conf,
		epsilon: conf.EpsilonStart,
		r:       r,
	}
}

// Epsilon is the current exploration rate.
func (a *Agent) Epsilon() float32 { return a.epsilon }

// TableSize is the number of (state, action) entries learnt so far.
func (a *Agent) TableSize() int { return a.Table.Len() }

// State abstracts a layout from the agent's side.
func (a *Agent) State(l *game.Layout) game.StateKey { return game.Abstract(l, a.Player) }

// SelectMove explores with probability epsilon and otherwise exploits the table.
func (a *Agent) SelectMove(l *game.Layout, legal []game.Move) (game.Move, error) {
	if len(legal) == 0 {
		return game.Move{}, game.ErrNoLegalMoves
	}
	if a.r.Float64() < float64(a.epsilon) {
		return a.explore(legal), nil
	}
	return a.exploit(l, legal), nil
}

// explore is directed: most of the time promotions, then the best capture, then checks are preferred.
func (a *Agent) explore(legal []game.Move) game.Move {
	if a.r.Float64() < a.conf.ExplorePriority {
		if promos := filter(legal, game.Move.IsPromotion); len(promos) > 0 {
			return promos[a.r.Intn(len(promos))]
		}
		if best, ok := opponent.BestCapture(legal); ok {
			return best
		}
		if checks := filter(legal, func(m game.Move) bool { return m.Check }); len(checks) > 0 {
			return checks[a.r.Intn(len(checks))]
		}
	}
	return legal[a.r.Intn(len(legal))]
}

func (a *Agent) exploit(l *game.Layout, legal []game.Move) game.Move {
	s := a.State(l)
	if !a.Table.Known(s) {
		// nothing learnt yet: take the first capture or play randomly
		if captures := filter(legal, game.Move.IsCapture); len(captures) > 0 {
			return captures[0]
		}
		return legal[a.r.Intn(len(legal))]
	}

	values := make([]float32, len(legal))
	for i, m := range legal {
		values[i] = a.Table.Value(s, m.SAN)
	}
	return legal[qtable.Argmax(values)]
}

// Update applies the one step Q-learning rule
//	Q(s,a) <- Q(s,a) + alpha * (reward + gamma * max_a' Q(s',a') - Q(s,a))
// where a' ranges over nextActions. An empty nextActions means no bootstrap.
func (a *Agent) Update(prev *game.Layout, action string, reward float32, next *game.Layout, nextActions []string) {
	s1 := a.State(prev)
	s2 := a.State(next)

	old := a.Table.Value(s1, action)
	maxNext := a.Table.MaxOver(s2, nextActions)
	a.Table.Set(s1, action, old+a.conf.Alpha*(reward+a.conf.Gamma*maxNext-old))
}

// DecayExploration sets epsilon for game gameIndex of totalGames.
// The schedule is linear in the season progress and clamped at the floor.
func (a *Agent) DecayExploration(gameIndex, totalGames int) {
	if totalGames <= 1 {
		a.epsilon = a.conf.EpsilonStart
		return
	}
	progress := float32(gameIndex) / float32(totalGames-1)
	eps := a.conf.EpsilonStart - progress*a.conf.DecayRate
	if eps < a.conf.EpsilonFloor {
		eps = a.conf.EpsilonFloor
	}
	a.epsilon = eps
}

// Reset forgets everything learnt and restores the initial exploration rate.
func (a *Agent) Reset() {
	a.Table.Reset()
	a.epsilon = a.conf.EpsilonStart
}

func filter(moves []game.Move, keep func(game.Move) bool) []game.Move {
	var retVal []game.Move
	for _, m := range moves {
		if keep(m) {
			retVal = append(retVal, m)
		}
	}
	return retVal
}
