package agentx

import (
	"context"
	"time"

	"github.com/notnil/chess"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"

	"github.com/agentx/game"
	"github.com/agentx/opponent"
)

// Reasons a game ends, as recorded in GameRecord.Reason.
const (
	ReasonCheckmate = "checkmate"
	ReasonAdvantage = "advantage"
	ReasonDraw      = "draw"
	ReasonMoveCap   = "move cap"
	ReasonCancelled = "cancelled"
	ReasonIllegal   = "illegal move"
	ReasonNoMoves   = "no legal moves"
)

// Option configures a Season.
type Option func(s *Season)

// WithReporter sets where moves, game records and stats are reported.
func WithReporter(r Reporter) Option {
	return func(s *Season) {
		if r != nil {
			s.reporter = r
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Season) { s.logger = l }
}

// WithRand sets the random source shared by the agent and the opponent.
func WithRand(r *rand.Rand) Option {
	return func(s *Season) {
		if r != nil {
			s.r = r
		}
	}
}

// Season plays a fixed number of games between the learning agent, which always moves first,
// and the heuristic opponent. Games are played one at a time; the agent's table carries over.
type Season struct {
	conf     Config
	game     game.State
	agent    *Agent
	r        *rand.Rand
	stats    SeasonStats
	reporter Reporter
	logger   zerolog.Logger

	gameNumber int // which game is this in
}

// NewSeason makes a season played on g.
func NewSeason(g game.State, conf Config, opts ...Option) (*Season, error) {
	if g == nil {
		return nil, errors.New("nil game state")
	}
	if err := conf.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid season config")
	}
	seed := conf.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	s := &Season{
		conf:     conf,
		game:     g,
		r:        rand.New(rand.NewSource(seed)),
		reporter: NopReporter{},
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	g.Reset()
	s.agent = NewAgent(g.Turn(), conf.AgentConf, s.r)
	return s, nil
}

// Run resets the agent and the statistics, then plays the season.
// Cancelling ctx stops the season promptly; the game in progress is recorded as a draw.
func (s *Season) Run(ctx context.Context) SeasonStats {
	s.agent.Reset()
	s.stats = SeasonStats{}
	s.reporter.StatsUpdated(s.snapshot(0))

	for s.gameNumber = 0; s.gameNumber < s.conf.Games; s.gameNumber++ {
		if ctx.Err() != nil {
			break
		}
		s.Play(ctx, s.gameNumber)
		pause(ctx, s.conf.GameDelay)
	}

	if ctx.Err() != nil {
		s.logger.Info().Int("played", s.stats.TotalGames).Msg("season terminated")
	} else {
		s.logger.Info().Msgf("%d-match season concluded", s.conf.Games)
	}
	s.logger.Info().
		Int("wins", s.stats.Wins).
		Int("losses", s.stats.Losses).
		Int("draws", s.stats.Draws).
		Int("q_table_size", s.agent.TableSize()).
		Msg("season result")
	return s.stats.Clone()
}

// Play plays game gameIndex of the season and records its result.
func (s *Season) Play(ctx context.Context, gameIndex int) GameRecord {
	s.gameNumber = gameIndex
	s.game.Reset()
	s.agent.DecayExploration(gameIndex, s.conf.Games)
	epsilon := s.agent.Epsilon()
	s.reporter.StatsUpdated(s.snapshot(0))

	log := s.logger.With().Int("game", gameIndex+1).Logger()
	log.Info().Float32("epsilon", epsilon).Msgf("match %d/%d", gameIndex+1, s.conf.Games)

	var (
		moves   int
		total   float32
		balance int
		won     bool
		reason  string
	)

loop:
	for moves < s.conf.MoveCap {
		if ended, _ := s.game.Ended(); ended {
			reason = ReasonDraw
			if s.game.Checkmate() {
				reason = ReasonCheckmate
			}
			break
		}
		if ctx.Err() != nil {
			reason = ReasonCancelled
			break
		}

		legal := s.game.LegalMoves()
		if len(legal) == 0 {
			reason = ReasonNoMoves
			break
		}

		turn := s.game.Turn()
		before := s.game.Layout()
		var (
			mv  game.Move
			err error
		)
		if turn == s.agent.Player {
			mv, err = s.agent.SelectMove(&before, legal)
		} else {
			mv, err = opponent.BestMove(s.game, legal, s.r)
		}
		if err != nil {
			log.Warn().Err(err).Msg("no move selected, abandoning game")
			reason = ReasonNoMoves
			break
		}

		if err := s.game.Apply(mv); err != nil {
			log.Warn().Err(err).Str("move", mv.SAN).Msg("move rejected, abandoning game")
			reason = ReasonIllegal
			break
		}
		moves++

		after := s.game.Layout()
		balance = after.Balance(s.agent.Player)
		s.reporter.MoveApplied(MoveEvent{
			Game:    gameIndex,
			Ply:     moves,
			Color:   turn,
			Move:    mv,
			FEN:     s.game.String(),
			Balance: balance,
		})
		log.Debug().Int("ply", moves).Str("move", mv.SAN).Int("balance", balance).Msg("move")

		if turn == s.agent.Player {
			checkmate := s.game.Checkmate()
			won = checkmate || balance >= s.conf.AdvantageWin
			ended, _ := s.game.Ended()

			next := s.game.LegalMoves()
			nextActions := make([]string, len(next))
			for i, m := range next {
				nextActions[i] = m.SAN
			}

			reward := Reward(mv, won, ended, balance)
			total += reward
			s.agent.Update(&before, mv.SAN, reward, &after, nextActions)
			s.reporter.StatsUpdated(s.snapshot(balance))

			if won {
				reason = ReasonAdvantage
				if checkmate {
					reason = ReasonCheckmate
				}
				break loop
			}
		}

		pause(ctx, s.conf.MoveDelay)
	}
	if reason == "" {
		// the cap was reached, possibly by a move that also ended the game
		reason = ReasonMoveCap
		if ended, _ := s.game.Ended(); ended {
			reason = ReasonDraw
			if s.game.Checkmate() {
				reason = ReasonCheckmate
			}
		}
	}

	winner := Draw
	switch {
	case won:
		winner = AgentWin
	case s.game.Checkmate() && s.game.Turn() == s.agent.Player:
		winner = OpponentWin
	}

	rec := GameRecord{
		Index:     gameIndex,
		Number:    gameIndex + 1,
		Winner:    winner,
		Moves:     moves,
		Reward:    total,
		TableSize: s.agent.TableSize(),
		Epsilon:   epsilon,
		Reason:    reason,
	}
	s.stats.record(rec)

	log.Info().
		Stringer("winner", winner).
		Str("reason", reason).
		Int("moves", moves).
		Float32("reward", total).
		Int("q_table_size", rec.TableSize).
		Msg("game over")

	s.reporter.GameFinished(rec)
	s.reporter.StatsUpdated(s.snapshot(balance))
	return rec
}

// Agent returns the learning agent.
func (s *Season) Agent() *Agent { return s.agent }

// Stats returns a copy of the statistics so far.
func (s *Season) Stats() SeasonStats { return s.stats.Clone() }

// State of the game
func (s *Season) State() game.State { return s.game }

// GameNumber returns the index of the game being played.
func (s *Season) GameNumber() int { return s.gameNumber }

// AgentColor is the side the agent plays.
func (s *Season) AgentColor() chess.Color { return s.agent.Player }

func (s *Season) snapshot(balance int) Snapshot {
	return Snapshot{
		Stats:     s.stats.Clone(),
		Epsilon:   s.agent.Epsilon(),
		TableSize: s.agent.TableSize(),
		Balance:   balance,
	}
}

// pause waits for d or until ctx is done.
func pause(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
