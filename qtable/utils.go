package qtable

import (
	"github.com/chewxy/math32"
)

// Pair is a tuple of action and value
type Pair struct {
	Action string
	Score  float32
}

// byScore is a sortable list of pairs. It sorts the list with best score first, ties by action.
type byScore []Pair

func (l byScore) Len() int { return len(l) }
func (l byScore) Less(i, j int) bool {
	if l[i].Score == l[j].Score {
		return l[i].Action < l[j].Action
	}
	return l[i].Score > l[j].Score
}
func (l byScore) Swap(i, j int) { l[i], l[j] = l[j], l[i] }

// Argmax returns the index of the first maximum of a, or -1 when a is empty.
func Argmax(a []float32) int {
	if len(a) == 0 {
		return -1
	}
	return argmax(a)
}

func argmax(a []float32) int {
	var retVal int
	var max = math32.Inf(-1)
	for i := range a {
		if a[i] > max {
			max = a[i]
			retVal = i
		}
	}
	return retVal
}
