package agentx

import (
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/notnil/chess"
	"github.com/pkg/errors"

	"github.com/agentx/game"
)

// Config for the Season.
// It holds the attributes of the season loop as well as the learning parameters of the agent.
type Config struct {
	Name         string      `json:"name"`
	Games        int         `json:"games"`         // games per season
	MoveCap      int         `json:"move_cap"`      // half-moves per game before it is called a draw
	AdvantageWin int         `json:"advantage_win"` // material lead that counts as a win for the agent
	AgentConf    AgentConfig `json:"agent_conf"`

	// pacing for observers, zero means no pause
	MoveDelay time.Duration `json:"move_delay"`
	GameDelay time.Duration `json:"game_delay"`

	Seed uint64 `json:"seed"` // 0 seeds from the clock
}

// AgentConfig configures the learning agent.
type AgentConfig struct {
	Alpha           float32 `json:"alpha"` // learning rate
	Gamma           float32 `json:"gamma"` // discount
	EpsilonStart    float32 `json:"epsilon_start"`
	EpsilonFloor    float32 `json:"epsilon_floor"`
	DecayRate       float32 `json:"decay_rate"`       // epsilon lost over a full season
	ExplorePriority float64 `json:"explore_priority"` // chance an exploring move prefers promotions, captures and checks
}

// DefaultConfig returns the configuration of a standard 20 game season.
func DefaultConfig() Config {
	return Config{
		Name:         "AgentX",
		Games:        20,
		MoveCap:      120,
		AdvantageWin: 4,
		AgentConf:    DefaultAgentConfig(),
	}
}

func DefaultAgentConfig() AgentConfig {
	return AgentConfig{
		Alpha:           0.9,
		Gamma:           0.8,
		EpsilonStart:    1.0,
		EpsilonFloor:    0.05,
		DecayRate:       1.5,
		ExplorePriority: 0.8,
	}
}

// Validate reports every problem with the configuration.
func (c Config) Validate() error {
	var errs error
	if c.Games < 1 {
		errs = multierror.Append(errs, errors.Errorf("games must be positive, got %d", c.Games))
	}
	if c.MoveCap < 1 {
		errs = multierror.Append(errs, errors.Errorf("move cap must be positive, got %d", c.MoveCap))
	}
	if c.AdvantageWin < 1 {
		errs = multierror.Append(errs, errors.Errorf("advantage win must be positive, got %d", c.AdvantageWin))
	}
	if c.MoveDelay < 0 || c.GameDelay < 0 {
		errs = multierror.Append(errs, errors.New("delays must not be negative"))
	}
	if err := c.AgentConf.Validate(); err != nil {
		errs = multierror.Append(errs, err)
	}
	return errs
}

func (c AgentConfig) Validate() error {
	var errs error
	if !(c.Alpha > 0 && c.Alpha < 1) {
		errs = multierror.Append(errs, errors.Errorf("alpha must be in (0, 1), got %v", c.Alpha))
	}
	if !(c.Gamma >= 0 && c.Gamma <= 1) {
		errs = multierror.Append(errs, errors.Errorf("gamma must be in [0, 1], got %v", c.Gamma))
	}
	if !(c.EpsilonFloor >= 0 && c.EpsilonFloor <= c.EpsilonStart && c.EpsilonStart <= 1) {
		errs = multierror.Append(errs, errors.Errorf("need 0 <= epsilon floor (%v) <= epsilon start (%v) <= 1", c.EpsilonFloor, c.EpsilonStart))
	}
	if c.DecayRate < 0 {
		errs = multierror.Append(errs, errors.Errorf("decay rate must not be negative, got %v", c.DecayRate))
	}
	if !(c.ExplorePriority >= 0 && c.ExplorePriority <= 1) {
		errs = multierror.Append(errs, errors.Errorf("explore priority must be in [0, 1], got %v", c.ExplorePriority))
	}
	return errs
}

// Winner of a single game.
type Winner byte

const (
	Draw Winner = iota
	AgentWin
	OpponentWin
)

func (w Winner) String() string {
	switch w {
	case AgentWin:
		return "Agent"
	case OpponentWin:
		return "Opponent"
	}
	return "Draw"
}

func (w Winner) MarshalText() ([]byte, error) { return []byte(w.String()), nil }

// GameRecord is the summary of one completed game. It is never modified once recorded.
type GameRecord struct {
	Index     int     `json:"index"`       // 0-based position in the season
	Number    int     `json:"game_number"` // 1-based, for display
	Winner    Winner  `json:"winner"`
	Moves     int     `json:"moves"` // half-moves played
	Reward    float32 `json:"reward"`
	TableSize int     `json:"q_table_size"`
	Epsilon   float32 `json:"epsilon"`
	Reason    string  `json:"reason"` // how the game ended
}

// SeasonStats aggregates the results of a season.
type SeasonStats struct {
	TotalGames int          `json:"total_games"`
	Wins       int          `json:"wins"`
	Losses     int          `json:"losses"`
	Draws      int          `json:"draws"`
	History    []GameRecord `json:"history"`
}

func (s *SeasonStats) record(rec GameRecord) {
	s.TotalGames++
	switch rec.Winner {
	case AgentWin:
		s.Wins++
	case OpponentWin:
		s.Losses++
	default:
		s.Draws++
	}
	s.History = append(s.History, rec)
}

// Clone returns a copy that does not share the history backing array.
func (s SeasonStats) Clone() SeasonStats {
	s.History = append([]GameRecord(nil), s.History...)
	return s
}

// MoveEvent is reported after every applied move.
type MoveEvent struct {
	Game    int // 0-based game index
	Ply     int // half-moves played so far, including this one
	Color   chess.Color
	Move    game.Move
	FEN     string // position after the move
	Balance int    // material balance from the agent's side
}

// Snapshot is reported whenever the season's learning state changes.
type Snapshot struct {
	Stats     SeasonStats
	Epsilon   float32
	TableSize int
	Balance   int // material balance of the live game
}

// Reporter consumes what the season produces. Implementations must not retain the game.
type Reporter interface {
	MoveApplied(ev MoveEvent)
	GameFinished(rec GameRecord)
	StatsUpdated(snap Snapshot)
}
