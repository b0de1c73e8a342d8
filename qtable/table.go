package qtable

import (
	"sort"

	"github.com/agentx/game"
)

// Table maps an abstracted state to the value estimate of every action tried in it.
// Actions are identified by their canonical notation. Absent entries read as 0.
type Table struct {
	rows map[game.StateKey]map[string]float32
	size int // total number of action entries
}

// New returns an empty table.
func New() *Table {
	return &Table{rows: make(map[game.StateKey]map[string]float32)}
}

// Value returns Q(s, a). Reading never creates entries.
func (t *Table) Value(s game.StateKey, a string) float32 {
	return t.rows[s][a]
}

// Known reports whether state s has at least one action entry.
func (t *Table) Known(s game.StateKey) bool {
	return len(t.rows[s]) > 0
}

// Set stores Q(s, a) = v, creating the state row and the action entry on first write.
func (t *Table) Set(s game.StateKey, a string, v float32) {
	row, ok := t.rows[s]
	if !ok {
		row = make(map[string]float32)
		t.rows[s] = row
	}
	if _, ok := row[a]; !ok {
		t.size++
	}
	row[a] = v
}

// MaxOver returns the highest value among actions in state s, missing entries counting as 0.
// It returns 0 when actions is empty or s has no row.
func (t *Table) MaxOver(s game.StateKey, actions []string) float32 {
	row, ok := t.rows[s]
	if !ok || len(actions) == 0 {
		return 0
	}
	vals := make([]float32, len(actions))
	for i, a := range actions {
		vals[i] = row[a]
	}
	return vals[argmax(vals)]
}

// Len is the sum of action entries across all states.
func (t *Table) Len() int { return t.size }

// States is the number of state rows.
func (t *Table) States() int { return len(t.rows) }

// Reset empties the table.
func (t *Table) Reset() {
	t.rows = make(map[game.StateKey]map[string]float32)
	t.size = 0
}

// Keys returns the known states in a stable order.
func (t *Table) Keys() []game.StateKey {
	keys := make([]game.StateKey, 0, len(t.rows))
	for k := range t.rows {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	return keys
}

// Ranked returns the actions recorded for s, best first.
func (t *Table) Ranked(s game.StateKey) []Pair {
	row := t.rows[s]
	pairs := make([]Pair, 0, len(row))
	for a, v := range row {
		pairs = append(pairs, Pair{Action: a, Score: v})
	}
	sort.Sort(byScore(pairs))
	return pairs
}
