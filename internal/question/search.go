package question

import "strings"

// Search keeps the candidates whose question text contains term, ignoring case.
// Relative order is preserved.
func Search(term string, candidates []Question) []Question {
	needle := strings.ToLower(term)
	out := make([]Question, 0, len(candidates))
	for _, q := range candidates {
		if strings.Contains(strings.ToLower(q.Question), needle) {
			out = append(out, q)
		}
	}
	return out
}
