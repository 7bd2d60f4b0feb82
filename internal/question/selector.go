package question

import "math/rand/v2"

// IndexSource draws an index in [0, n) for n > 0.
type IndexSource interface {
	Intn(n int) int
}

// IndexFunc adapts a plain function to IndexSource.
type IndexFunc func(n int) int

func (f IndexFunc) Intn(n int) int {
	return f(n)
}

// UniformIndex draws uniformly from the runtime generator and is safe for concurrent use.
var UniformIndex IndexSource = IndexFunc(rand.IntN)

// Eligible returns the candidates matching filter whose ids are not in previous,
// in candidate order.
func Eligible(filter CategoryFilter, previous IDSet, candidates []Question) []Question {
	out := make([]Question, 0, len(candidates))
	for _, q := range candidates {
		if !filter.matches(q) || previous.Has(q.ID) {
			continue
		}
		out = append(out, q)
	}
	return out
}

// SelectNext draws one eligible question. The boolean is false when nothing is
// eligible, which covers both an exhausted quiz and an unknown category.
func SelectNext(filter CategoryFilter, previous IDSet, candidates []Question, src IndexSource) (Question, bool) {
	eligible := Eligible(filter, previous, candidates)
	if len(eligible) == 0 {
		return Question{}, false
	}
	if src == nil {
		src = UniformIndex
	}

	idx := src.Intn(len(eligible))
	if idx < 0 || idx >= len(eligible) {
		idx = ((idx % len(eligible)) + len(eligible)) % len(eligible)
	}
	return eligible[idx], true
}
