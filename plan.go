package main

import (
	"errors"
	"fmt"
)

var errInvalidInput = errors.New("invalid input")

// PageRef is one slot in the output plan: either a 1-based page number of
// the source document, or Blank for a padded empty page.
type PageRef int

// Blank marks a slot that is filled with an empty page sized like page 1.
const Blank PageRef = 0

// Plan is the final page order. Computed once, never mutated.
type Plan []PageRef

// defaultSplit returns the 1-based index of the first back-half page when
// no split was given: halves as equal as possible.
func defaultSplit(n int) int {
	return n/2 + 1
}

// buildPlan computes the interleaved page order so that fronts 1..split-1
// alternate with backs split..n. The back half is traversed last-to-first
// when reverseSecond is set (undoing the stack flip). With padBlank the
// shorter half is padded with Blank slots; without it both halves are cut
// to the shorter length and the excess pages are dropped.
func buildPlan(n, split int, reverseSecond, padBlank bool) (Plan, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: page count must be >= 1, got %d", errInvalidInput, n)
	}
	if split < 2 || split > n+1 {
		return nil, fmt.Errorf("%w: split must be in [2, %d], got %d", errInvalidInput, n+1, split)
	}

	front := make([]PageRef, 0, split-1)
	for i := 1; i < split; i++ {
		front = append(front, PageRef(i))
	}
	back := make([]PageRef, 0, n-split+1)
	if reverseSecond {
		for i := n; i >= split; i-- {
			back = append(back, PageRef(i))
		}
	} else {
		for i := split; i <= n; i++ {
			back = append(back, PageRef(i))
		}
	}

	if padBlank {
		for len(front) < len(back) {
			front = append(front, Blank)
		}
		for len(back) < len(front) {
			back = append(back, Blank)
		}
	} else {
		m := min(len(front), len(back))
		front, back = front[:m], back[:m]
	}

	plan := make(Plan, 0, 2*len(front))
	for i := range front {
		plan = append(plan, front[i], back[i])
	}
	return plan, nil
}
