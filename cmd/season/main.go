package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentx"
	"github.com/agentx/game"
	"github.com/agentx/internal/logx"
)

var (
	gamesFlag     = flag.Int("games", 20, "number of games in the season")
	moveCapFlag   = flag.Int("move_cap", 120, "half-moves per game before it is drawn")
	seedFlag      = flag.Uint64("seed", 0, "random seed, 0 seeds from the clock")
	moveDelayFlag = flag.Duration("move_delay", 25*time.Millisecond, "pause between moves")
	gameDelayFlag = flag.Duration("game_delay", 500*time.Millisecond, "pause between games")
	historyFlag   = flag.String("history", "", "write game records as JSON lines to this file")
	dotFlag       = flag.String("dot", "", "write the learnt table as a graphviz file")
	topFlag       = flag.Int("top", 3, "actions per state drawn in the graphviz file, 0 for all")
	levelFlag     = flag.String("log_level", "info", "log level")
)

func main() {
	flag.Parse()

	level, err := logx.ParseLevel(*levelFlag)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := logx.NewLogger(os.Stderr, level)

	conf := agentx.DefaultConfig()
	conf.Games = *gamesFlag
	conf.MoveCap = *moveCapFlag
	conf.Seed = *seedFlag
	conf.MoveDelay = *moveDelayFlag
	conf.GameDelay = *gameDelayFlag

	reporters := agentx.Reporters{agentx.LogReporter{Logger: logger}}
	if *historyFlag != "" {
		f, err := os.Create(*historyFlag)
		if err != nil {
			logger.Fatal().Err(err).Msg("unable to create history file")
		}
		reporters = append(reporters, agentx.NewHistoryWriter(f))
	}

	s, err := agentx.NewSeason(game.NewChess(), conf,
		agentx.WithReporter(reporters),
		agentx.WithLogger(logger))
	if err != nil {
		logger.Fatal().Err(err).Msg("error when creating season")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	stats := s.Run(ctx)
	if err := reporters.Close(); err != nil {
		logger.Error().Err(err).Msg("error when closing reporters")
	}

	if summary, err := json.Marshal(stats.Summary()); err != nil {
		logger.Error().Err(err).Msg("error when encoding summary")
	} else {
		logger.Info().RawJSON("summary", summary).Msg("season summary")
	}

	if *dotFlag != "" {
		g, err := s.Agent().Table.Graph(*topFlag)
		if err != nil {
			logger.Fatal().Err(err).Msg("error when rendering table")
		}
		if err := os.WriteFile(*dotFlag, []byte(g.String()), 0644); err != nil {
			logger.Fatal().Err(err).Msg("error when writing table")
		}
	}
}
