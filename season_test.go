package agentx

import (
	"context"
	"fmt"
	"testing"

	"github.com/notnil/chess"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/agentx/game"
)

// scripted is a rules provider whose outcome is fixed in advance.
type scripted struct {
	moves    []game.Move
	plies    int
	mateAt   int // the side to move is checkmated once plies reaches mateAt, 0 never
	rejectAt int // Apply fails when plies equals rejectAt, -1 never
	layout   game.Layout
}

func newScripted(moves ...game.Move) *scripted {
	return &scripted{moves: moves, rejectAt: -1}
}

func (s *scripted) Turn() chess.Color {
	if s.plies%2 == 0 {
		return chess.White
	}
	return chess.Black
}

func (s *scripted) MoveNumber() int     { return s.plies }
func (s *scripted) Layout() game.Layout { return s.layout }
func (s *scripted) Checkmate() bool     { return s.mateAt > 0 && s.plies >= s.mateAt }
func (s *scripted) Check() bool         { return s.Checkmate() }
func (s *scripted) Reset()              { s.plies = 0 }
func (s *scripted) String() string      { return fmt.Sprintf("scripted ply %d", s.plies) }

func (s *scripted) LegalMoves() []game.Move {
	if s.Checkmate() {
		return nil
	}
	return s.moves
}

func (s *scripted) Ended() (bool, chess.Color) {
	if s.Checkmate() {
		return true, s.Turn().Other()
	}
	return false, chess.NoColor
}

func (s *scripted) Apply(m game.Move) error {
	if s.plies == s.rejectAt {
		return errors.Wrapf(game.ErrIllegalMove, "scripted rejection of %v", m)
	}
	s.plies++
	return nil
}

func (s *scripted) Clone() game.State {
	cp := *s
	return &cp
}

type recorder struct {
	moves  []MoveEvent
	games  []GameRecord
	snaps  []Snapshot
	onMove func(MoveEvent)
}

func (r *recorder) MoveApplied(ev MoveEvent) {
	r.moves = append(r.moves, ev)
	if r.onMove != nil {
		r.onMove(ev)
	}
}
func (r *recorder) GameFinished(rec GameRecord) { r.games = append(r.games, rec) }
func (r *recorder) StatsUpdated(snap Snapshot)  { r.snaps = append(r.snaps, snap) }

func testConfig(games int) Config {
	conf := DefaultConfig()
	conf.Games = games
	conf.Seed = 1
	return conf
}

func TestSeasonAdvantageWin(t *testing.T) {
	g, err := game.FromFEN("r3k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	require.NoError(t, err)

	conf := testConfig(3)
	// always explore, always directed: the rook capture is forced
	conf.AgentConf.ExplorePriority = 1
	conf.AgentConf.EpsilonFloor = 1
	conf.AgentConf.DecayRate = 0

	rec := &recorder{}
	s, err := NewSeason(g, conf, WithReporter(rec))
	require.NoError(t, err)
	stats := s.Run(context.Background())

	require.Equal(t, 3, stats.TotalGames)
	require.Equal(t, 3, stats.Wins)
	for i, h := range stats.History {
		require.Equal(t, i, h.Index)
		require.Equal(t, AgentWin, h.Winner)
		require.Equal(t, ReasonAdvantage, h.Reason)
		require.Equal(t, 1, h.Moves, "no reply after a winning move")
		require.Equal(t, WinReward, h.Reward)
		require.Equal(t, 1, h.TableSize)
	}

	require.Len(t, rec.moves, 3)
	for _, ev := range rec.moves {
		require.Equal(t, chess.Rook, ev.Move.Captured)
		require.Equal(t, chess.A1, ev.Move.From)
		require.Equal(t, chess.A8, ev.Move.To)
		require.Equal(t, 5, ev.Balance)
	}

	g.Reset()
	l := g.Layout()
	key := game.Abstract(&l, chess.White)
	require.Equal(t, "m:Equal_q:NN_p:Late", key.String())
	// 45000, 49500, 49950
	require.InDelta(t, 49950, s.Agent().Table.Value(key, rec.moves[0].Move.SAN), 0.05)
}

func TestSeasonCheckmateWin(t *testing.T) {
	g, err := game.FromFEN("6k1/5ppp/8/8/8/8/7K/qR6 w - - 0 1")
	require.NoError(t, err)

	conf := testConfig(1)
	conf.AgentConf = greedy()
	s, err := NewSeason(g, conf)
	require.NoError(t, err)

	l := g.Layout()
	key := game.Abstract(&l, chess.White)
	s.Agent().Table.Set(key, "Rb8#", 1)

	rec := s.Play(context.Background(), 0)
	require.Equal(t, AgentWin, rec.Winner)
	require.Equal(t, ReasonCheckmate, rec.Reason)
	require.Equal(t, 1, rec.Moves)
	require.Equal(t, WinReward, rec.Reward)
	require.InDelta(t, 45000.1, s.Agent().Table.Value(key, "Rb8#"), 0.05)
	require.Equal(t, 1, s.Stats().Wins)
}

func TestSeasonOpponentWins(t *testing.T) {
	g := newScripted(game.Move{SAN: "a3"})
	g.mateAt = 2

	s, err := NewSeason(g, testConfig(1))
	require.NoError(t, err)
	stats := s.Run(context.Background())

	require.Equal(t, 1, stats.Losses)
	h := stats.History[0]
	require.Equal(t, OpponentWin, h.Winner)
	require.Equal(t, ReasonCheckmate, h.Reason)
	require.Equal(t, 2, h.Moves)
	require.Equal(t, float32(0), h.Reward)
	require.Equal(t, 1, h.TableSize)
}

func TestSeasonAgentMoveDraws(t *testing.T) {
	// Kxd2 leaves bare kings
	g, err := game.FromFEN("8/8/8/8/8/8/3p4/3K3k w - - 0 1")
	require.NoError(t, err)

	conf := testConfig(1)
	conf.AgentConf = greedy()
	s, err := NewSeason(g, conf)
	require.NoError(t, err)

	rec := s.Play(context.Background(), 0)
	require.Equal(t, Draw, rec.Winner)
	require.Equal(t, ReasonDraw, rec.Reason)
	require.Equal(t, 1, rec.Moves)
	require.Equal(t, LossReward, rec.Reward)
	require.Equal(t, 1, s.Stats().Draws)
}

func TestSeasonMateOnLastPly(t *testing.T) {
	g := newScripted(game.Move{SAN: "a3"})
	g.mateAt = 4

	conf := testConfig(1)
	conf.MoveCap = 4
	s, err := NewSeason(g, conf)
	require.NoError(t, err)

	rec := s.Play(context.Background(), 0)
	require.Equal(t, OpponentWin, rec.Winner)
	require.Equal(t, ReasonCheckmate, rec.Reason)
	require.Equal(t, 4, rec.Moves)
}

func TestSeasonPlayAlone(t *testing.T) {
	rec := &recorder{}
	s, err := NewSeason(newScripted(), testConfig(3), WithReporter(rec))
	require.NoError(t, err)

	s.Play(context.Background(), 1)
	require.Equal(t, 1, s.GameNumber())

	require.Len(t, rec.snaps, 2)
	// decayed before the first move is played
	require.InDelta(t, 0.25, rec.snaps[0].Epsilon, 1e-6)
	require.Equal(t, 0, rec.snaps[0].Stats.TotalGames)
	require.Equal(t, 1, rec.snaps[1].Stats.TotalGames)
}

func TestSeasonAbnormalEndings(t *testing.T) {
	t.Run("rejected move abandons the game", func(t *testing.T) {
		g := newScripted(game.Move{SAN: "a3"})
		g.rejectAt = 0

		s, err := NewSeason(g, testConfig(2))
		require.NoError(t, err)
		stats := s.Run(context.Background())

		require.Equal(t, 2, stats.TotalGames)
		require.Equal(t, 2, stats.Draws)
		for _, h := range stats.History {
			require.Equal(t, ReasonIllegal, h.Reason)
			require.Equal(t, 0, h.Moves)
		}
	})

	t.Run("no legal moves is a draw", func(t *testing.T) {
		s, err := NewSeason(newScripted(), testConfig(1))
		require.NoError(t, err)
		rec := s.Play(context.Background(), 0)
		require.Equal(t, Draw, rec.Winner)
		require.Equal(t, ReasonNoMoves, rec.Reason)
	})

	t.Run("move cap", func(t *testing.T) {
		conf := testConfig(1)
		conf.MoveCap = 10
		s, err := NewSeason(newScripted(game.Move{SAN: "a3"}, game.Move{SAN: "h3"}), conf)
		require.NoError(t, err)
		rec := s.Play(context.Background(), 0)
		require.Equal(t, Draw, rec.Winner)
		require.Equal(t, ReasonMoveCap, rec.Reason)
		require.Equal(t, 10, rec.Moves)
	})
}

func TestSeasonCancellation(t *testing.T) {
	t.Run("before the first game", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		s, err := NewSeason(game.NewChess(), testConfig(5))
		require.NoError(t, err)
		stats := s.Run(ctx)
		require.Equal(t, 0, stats.TotalGames)
		require.Empty(t, stats.History)
	})

	t.Run("mid game", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		rec := &recorder{}
		rec.onMove = func(ev MoveEvent) {
			if ev.Ply == 3 {
				cancel()
			}
		}
		s, err := NewSeason(newScripted(game.Move{SAN: "a3"}), testConfig(5), WithReporter(rec))
		require.NoError(t, err)
		stats := s.Run(ctx)

		require.Equal(t, 1, stats.TotalGames)
		require.Equal(t, 1, stats.Draws)
		h := stats.History[0]
		require.Equal(t, ReasonCancelled, h.Reason)
		require.Equal(t, 3, h.Moves)
		// the agent played plies 1 and 3, both updates are kept
		require.Equal(t, 1, h.TableSize)
	})
}

func TestSeasonBookkeeping(t *testing.T) {
	conf := testConfig(4)
	conf.MoveCap = 30
	conf.Seed = 42

	rec := &recorder{}
	s, err := NewSeason(game.NewChess(), conf, WithReporter(rec))
	require.NoError(t, err)

	for run := 0; run < 2; run++ {
		rec.games = nil
		stats := s.Run(context.Background())

		require.Equal(t, 4, stats.TotalGames)
		require.Equal(t, stats.TotalGames, stats.Wins+stats.Losses+stats.Draws)
		require.Len(t, stats.History, 4)
		require.Equal(t, stats.History, rec.games)

		for i, h := range stats.History {
			require.Equal(t, i, h.Index)
			require.Equal(t, i+1, h.Number)
			require.LessOrEqual(t, h.Moves, conf.MoveCap)
			if i > 0 {
				require.LessOrEqual(t, h.Epsilon, stats.History[i-1].Epsilon)
				require.GreaterOrEqual(t, h.TableSize, stats.History[i-1].TableSize)
			}
		}
		require.Equal(t, float32(1), stats.History[0].Epsilon)
		require.InDelta(t, 0.05, stats.History[3].Epsilon, 1e-6)

		last := rec.snaps[len(rec.snaps)-1]
		require.Equal(t, stats, last.Stats)
		require.Equal(t, s.Agent().TableSize(), last.TableSize)
		require.Equal(t, s.Agent().Epsilon(), last.Epsilon)
	}
}

func TestNewSeasonInvalid(t *testing.T) {
	_, err := NewSeason(nil, DefaultConfig())
	require.Error(t, err)

	conf := DefaultConfig()
	conf.Games = 0
	_, err = NewSeason(game.NewChess(), conf)
	require.Error(t, err)
}
