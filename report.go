package agentx

import (
	"encoding/json"
	"io"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// NopReporter discards everything.
type NopReporter struct{}

func (NopReporter) MoveApplied(MoveEvent)   {}
func (NopReporter) GameFinished(GameRecord) {}
func (NopReporter) StatsUpdated(Snapshot)   {}

// LogReporter writes moves at debug level and game results at info level.
type LogReporter struct {
	Logger zerolog.Logger
}

func (r LogReporter) MoveApplied(ev MoveEvent) {
	r.Logger.Debug().
		Int("game", ev.Game+1).
		Int("ply", ev.Ply).
		Stringer("color", ev.Color).
		Str("from", ev.Move.From.String()).
		Str("to", ev.Move.To.String()).
		Str("san", ev.Move.SAN).
		Int("advantage", ev.Balance).
		Msg("move applied")
}

func (r LogReporter) GameFinished(rec GameRecord) {
	r.Logger.Info().
		Int("game", rec.Number).
		Stringer("winner", rec.Winner).
		Int("moves", rec.Moves).
		Float32("reward", rec.Reward).
		Int("q_table_size", rec.TableSize).
		Float32("epsilon", rec.Epsilon).
		Msg("game recorded")
}

func (r LogReporter) StatsUpdated(snap Snapshot) {
	r.Logger.Trace().
		Int("games", snap.Stats.TotalGames).
		Int("wins", snap.Stats.Wins).
		Int("losses", snap.Stats.Losses).
		Int("draws", snap.Stats.Draws).
		Float32("epsilon", snap.Epsilon).
		Int("q_table_size", snap.TableSize).
		Msg("stats")
}

// HistoryWriter writes every game record as one JSON line. The first write error is kept
// and reported by Err; later records are dropped.
type HistoryWriter struct {
	w   io.Writer
	enc *json.Encoder
	err error
}

func NewHistoryWriter(w io.Writer) *HistoryWriter {
	return &HistoryWriter{w: w, enc: json.NewEncoder(w)}
}

func (h *HistoryWriter) MoveApplied(MoveEvent) {}
func (h *HistoryWriter) StatsUpdated(Snapshot) {}

func (h *HistoryWriter) GameFinished(rec GameRecord) {
	if h.err != nil {
		return
	}
	if err := h.enc.Encode(rec); err != nil {
		h.err = errors.Wrapf(err, "write game %d", rec.Number)
	}
}

// Err returns the first write error.
func (h *HistoryWriter) Err() error { return h.err }

// Close closes the underlying writer if it is closable.
func (h *HistoryWriter) Close() error {
	if c, ok := h.w.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return errors.WithStack(err)
		}
	}
	return h.err
}

// Reporters fans every report out to each of its members in order.
type Reporters []Reporter

func (rs Reporters) MoveApplied(ev MoveEvent) {
	for _, r := range rs {
		r.MoveApplied(ev)
	}
}

func (rs Reporters) GameFinished(rec GameRecord) {
	for _, r := range rs {
		r.GameFinished(rec)
	}
}

func (rs Reporters) StatsUpdated(snap Snapshot) {
	for _, r := range rs {
		r.StatsUpdated(snap)
	}
}

// Close closes every member that is an io.Closer and returns all the errors.
func (rs Reporters) Close() error {
	var errs error
	for _, r := range rs {
		if c, ok := r.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = multierror.Append(errs, err)
			}
		}
	}
	return errs
}
