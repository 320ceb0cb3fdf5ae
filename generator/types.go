package generator

import "sort"

// QuestionSet is a set of question texts compared by exact, case-sensitive match.
type QuestionSet map[string]struct{}

func NewQuestionSet(items ...string) QuestionSet {
	s := make(QuestionSet, len(items))
	for _, it := range items {
		s[it] = struct{}{}
	}
	return s
}

func (s QuestionSet) Has(q string) bool {
	_, ok := s[q]
	return ok
}

func (s QuestionSet) Add(q string) {
	s[q] = struct{}{}
}

func (s QuestionSet) Len() int {
	return len(s)
}

// Sorted returns the members in lexical order so sampling is reproducible for a fixed rng.
func (s QuestionSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for q := range s {
		out = append(out, q)
	}
	sort.Strings(out)
	return out
}
