package render

import (
	"iter"
	"strings"
)

// Measure returns the rendered pixel width of text for some fixed font.
// It must be pure and monotonic: adding tokens never shrinks the width.
type Measure func(text string) int

// Line is one wrapped line of text together with its measured pixel width
type Line struct {
	Text  string
	Width int
}

// Flow breaks space-delimited text into lines no wider than budget pixels.
// Words are never split: for each line it binary-searches the maximal token
// prefix whose measured width still fits, emits it, and continues with the
// remaining suffix. A single token wider than the budget is still emitted
// alone so the flow always makes progress.
//
// The returned sequence is lazy and restartable; ranging over it twice
// produces the same lines, which is what lets the block renderer count
// lines before drawing them.
func Flow(text string, budget int, measure Measure) iter.Seq[Line] {
	return func(yield func(Line) bool) {
		tokens := strings.Fields(text)
		for len(tokens) > 0 {
			n := fitPrefix(tokens, budget, measure)
			if n == 0 {
				// Oversized single token: emit it rather than loop forever
				n = 1
			}
			line := strings.Join(tokens[:n], " ")
			if !yield(Line{Text: line, Width: measure(line)}) {
				return
			}
			tokens = tokens[n:]
		}
	}
}

// fitPrefix returns the largest k such that the first k tokens, space-joined,
// measure within budget. Returns 0 when not even the first token fits.
func fitPrefix(tokens []string, budget int, measure Measure) int {
	lo, hi := 0, len(tokens)
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if measure(strings.Join(tokens[:mid], " ")) <= budget {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// lineCount drains the flow once just to count its lines
func lineCount(lines iter.Seq[Line]) int {
	n := 0
	for range lines {
		n++
	}
	return n
}
