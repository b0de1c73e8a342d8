// This command plays random games and counts how often each abstracted state is visited,
// to see how much of the value table's key space a season can reach.

package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/notnil/chess"
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"

	"github.com/agentx/game"
	"github.com/agentx/internal/logx"
)

var (
	numGameFlag = flag.Int("num_game", 10, "number of game to play")
	moveCapFlag = flag.Int("move_cap", 120, "half-moves per game")
	seedFlag    = flag.Uint64("seed", 0, "random seed, 0 seeds from the clock")
)

func main() {
	flag.Parse()
	logger := logx.NewLogger(os.Stderr, zerolog.InfoLevel)

	seed := *seedFlag
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	r := rand.New(rand.NewSource(seed))

	visits := make(map[game.StateKey]int)
	g := game.NewChess()
	for i := 0; i < *numGameFlag; i++ {
		g.Reset()
		// generate moves until game is over
		for ended, _ := g.Ended(); !ended && g.MoveNumber() < *moveCapFlag; ended, _ = g.Ended() {
			l := g.Layout()
			visits[game.Abstract(&l, chess.White)]++

			moves := g.LegalMoves()
			move := moves[r.Intn(len(moves))]
			if err := g.Apply(move); err != nil {
				logger.Fatal().Err(err).Msg("random move rejected")
			}
		}
	}

	keys := make([]game.StateKey, 0, len(visits))
	for k := range visits {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return visits[keys[i]] > visits[keys[j]] })
	for _, k := range keys {
		fmt.Printf("%-24v %d\n", k, visits[k])
	}
	logger.Info().Int("states", len(keys)).Int("games", *numGameFlag).Msg("census done")
}
