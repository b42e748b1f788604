package sqlfmt

// inlineBlock tracks whether the formatter currently sits inside a
// parenthesized (or CASE..END) region rendered on one line. The level
// counter handles nested parens inside an active inline region; eligibility
// is only ever decided at the outermost candidate.
type inlineBlock struct {
	level       int
	maxLength   int // ceiling on the block's total source length
	maxReserved int // ceiling once the block contains newline-reserved words
	maxTopLevel int // ceiling on the widest same-depth top-level clause span
}

func newInlineBlock(options *FormatOptions) *inlineBlock {
	return &inlineBlock{
		maxLength:   options.MaxInlineBlock,
		maxReserved: options.MaxInlineArguments,
		maxTopLevel: options.MaxInlineTopLevel,
	}
}

// beginIfPossible starts an inline block at the open paren tokens[index]
// when the region qualifies, or deepens the active one.
func (b *inlineBlock) beginIfPossible(tokens []token, index int) {
	if b.level == 0 && b.eligible(tokens, index) {
		b.level = 1
	} else if b.level > 0 {
		b.level++
	}
}

func (b *inlineBlock) end() {
	if b.level > 0 {
		b.level--
	}
}

func (b *inlineBlock) active() bool {
	return b.level > 0
}

// eligible scans forward from the open paren at tokens[index] to its
// matching close and decides whether the whole region can render inline.
// Comments and statement separators disqualify outright; length and clause
// spans are checked against the configured ceilings.
func (b *inlineBlock) eligible(tokens []token, index int) bool {
	length := 0
	depth := 0
	maxTopSpan := 0
	topAt, topDepth := -1, 0
	hasReserved := false

scan:
	for i := index; i < len(tokens); i++ {
		t := tokens[i]
		length += len(t.text)
		if length > b.maxLength {
			return false
		}

		switch t.kind {
		case tokenLineComment, tokenBlockComment:
			return false
		case tokenOperator:
			if t.text == ";" {
				return false
			}
		case tokenReservedNewline, tokenJoin:
			hasReserved = true
		case tokenReservedTopLevel, tokenReservedTopLevelNoIndent, tokenReservedNewlineAfter:
			if topAt >= 0 && topDepth == depth && length-topAt > maxTopSpan {
				maxTopSpan = length - topAt
			}
			topAt, topDepth = length, depth
		case tokenOpenParen:
			depth++
		case tokenCloseParen:
			depth--
			if depth == 0 {
				break scan
			}
		}
	}

	if maxTopSpan > b.maxTopLevel {
		return false
	}
	if hasReserved && length > b.maxReserved {
		return false
	}
	return true
}
