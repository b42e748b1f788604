package sqlfmt

import "strings"

type frameKind int

const (
	// frameTop is pushed by a top-level clause keyword; indents one level.
	frameTop frameKind = iota
	// frameBlock is pushed by an un-inlined open paren; indents one level.
	frameBlock
	// frameFolded is pushed by a folded top-level clause: the clause body
	// stays on the keyword's line, so the frame adds no visual indent, but
	// it still participates in top-level pops and span lookups.
	frameFolded
)

type frame struct {
	kind frameKind
	span int
}

// indentation is the formatter's frame stack. All pops are guarded: popping
// past the bottom is a no-op, never a fault, since malformed input can close
// parens that were never opened.
type indentation struct {
	unit   string
	frames []frame
}

func newIndentation(unit string) *indentation {
	return &indentation{unit: unit}
}

func (ind *indentation) indent() string {
	depth := 0
	for _, f := range ind.frames {
		if f.kind != frameFolded {
			depth++
		}
	}
	return strings.Repeat(ind.unit, depth)
}

func (ind *indentation) increaseTopLevel(span int) {
	ind.frames = append(ind.frames, frame{kind: frameTop, span: span})
}

func (ind *indentation) increaseFolded(span int) {
	ind.frames = append(ind.frames, frame{kind: frameFolded, span: span})
}

func (ind *indentation) increaseBlockLevel() {
	ind.frames = append(ind.frames, frame{kind: frameBlock})
}

// decreaseTopLevel pops the innermost frame only when it belongs to a
// top-level clause; a block frame on top means the keyword sits directly
// inside parens and opens a sub-clause instead of replacing one.
func (ind *indentation) decreaseTopLevel() {
	if n := len(ind.frames); n > 0 && ind.frames[n-1].kind != frameBlock {
		ind.frames = ind.frames[:n-1]
	}
}

// decreaseBlockLevel unwinds clause frames opened inside the block, then the
// block frame itself.
func (ind *indentation) decreaseBlockLevel() {
	for len(ind.frames) > 0 {
		popped := ind.frames[len(ind.frames)-1]
		ind.frames = ind.frames[:len(ind.frames)-1]
		if popped.kind == frameBlock {
			return
		}
	}
}

// topLevelSpan reports the span of the innermost top-level (or folded)
// clause, looking through any block frames above it.
func (ind *indentation) topLevelSpan() (int, bool) {
	for i := len(ind.frames) - 1; i >= 0; i-- {
		if ind.frames[i].kind != frameBlock {
			return ind.frames[i].span, true
		}
	}
	return 0, false
}

func (ind *indentation) topFrameFolded() bool {
	n := len(ind.frames)
	return n > 0 && ind.frames[n-1].kind == frameFolded
}

func (ind *indentation) reset() {
	ind.frames = ind.frames[:0]
}
