package brackets

import "github.com/Dosada05/swiss-tournament/models"

type pairKey struct {
	lo, hi int
}

func newPairKey(a, b int) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// History is the set of unordered player pairs that have already met.
// Draws count the same as decisive results; byes never appear here.
type History struct {
	played map[pairKey]struct{}
}

func NewHistory(pairs []models.MatchPair) *History {
	h := &History{played: make(map[pairKey]struct{}, len(pairs))}
	for _, p := range pairs {
		h.Add(p.A, p.B)
	}
	return h
}

func (h *History) Add(a, b int) {
	if h.played == nil {
		h.played = make(map[pairKey]struct{})
	}
	h.played[newPairKey(a, b)] = struct{}{}
}

// HasPlayed reports whether a and b have met, in either order.
func (h *History) HasPlayed(a, b int) bool {
	if h == nil {
		return false
	}
	_, ok := h.played[newPairKey(a, b)]
	return ok
}

func (h *History) Len() int {
	if h == nil {
		return 0
	}
	return len(h.played)
}
