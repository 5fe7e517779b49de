// Package quiz scores multi-select answers against a quiz's answer key.
// All functions are total over their documented inputs: they never fail,
// they only ignore out-of-range indices.
package quiz

import (
	"sort"

	"github.com/jesstingley17/luna-ai/internal/content"
)

// Sheet tracks a learner's in-progress selections per question.
// The zero value is an empty, unsubmitted sheet. Sheets are values:
// Toggle and Submit return updated copies.
type Sheet struct {
	selected  map[int][]int // question index → ascending option indices
	submitted bool
}

// Toggle flips membership of option in the selected set for question.
// Submission freezes the sheet: toggles after Submit have no effect.
func (s Sheet) Toggle(question, option int) Sheet {
	if s.submitted || question < 0 || option < 0 {
		return s
	}

	out := s.clone()
	out.selected[question] = toggle(out.selected[question], option)
	if len(out.selected[question]) == 0 {
		delete(out.selected, question)
	}
	return out
}

// Submit freezes the sheet for scoring.
func (s Sheet) Submit() Sheet {
	out := s.clone()
	out.submitted = true
	return out
}

// Submitted reports whether the sheet has been frozen.
func (s Sheet) Submitted() bool { return s.submitted }

// Selected returns the ascending selected-option indices for a question.
func (s Sheet) Selected(question int) []int {
	sel := s.selected[question]
	out := make([]int, len(sel))
	copy(out, sel)
	return out
}

// Score counts one point per question whose selected set equals the
// correct-answer set exactly. Partial overlap (strict subset or
// superset) scores zero for that question. The maximum is len(questions).
// Answer keys are compared as sets: an unsorted or duplicated key
// grades the same as its normalized form.
func Score(questions []content.QuizQuestion, s Sheet) int {
	score := 0
	for i, q := range questions {
		if sameSet(s.selected[i], content.NormalizeAnswerKey(q.CorrectAnswers)) {
			score++
		}
	}
	return score
}

func (s Sheet) clone() Sheet {
	out := Sheet{
		selected:  make(map[int][]int, len(s.selected)),
		submitted: s.submitted,
	}
	for k, v := range s.selected {
		sel := make([]int, len(v))
		copy(sel, v)
		out.selected[k] = sel
	}
	return out
}

func toggle(set []int, idx int) []int {
	out := make([]int, 0, len(set)+1)
	found := false
	for _, v := range set {
		if v == idx {
			found = true
			continue
		}
		out = append(out, v)
	}
	if !found {
		out = append(out, idx)
		sort.Ints(out)
	}
	return out
}

// sameSet compares two ascending unique index slices for equality.
// Selections are kept sorted by toggle; the answer key is normalized
// by the caller.
func sameSet(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
