package sqlfmt

import "strings"

// formatter is the single-pass layout machine. It walks the token sequence
// once, deciding per token whether to break, indent, fold, or inline, and
// appends to a growable output buffer. One instance serves one format call.
type formatter struct {
	options *FormatOptions
	tokens  []token

	indentation *indentation
	inline      *inlineBlock
	resolver    *paramResolver

	out              []byte
	previousReserved string
	formatting       bool
}

func newFormatter(options FormatOptions, params *QueryParams) *formatter {
	return &formatter{
		options:     &options,
		indentation: newIndentation(options.Indent.unit),
		inline:      newInlineBlock(&options),
		resolver:    newParamResolver(params),
		formatting:  true,
	}
}

func (f *formatter) format(tokens []token) string {
	f.tokens = tokens

	skipNext := false
	for i, tok := range tokens {
		if skipNext {
			skipNext = false
			continue
		}

		// fmt directives are consumed silently, along with the token that
		// follows them, in both formatting states.
		if tok.kind == tokenLineComment || tok.kind == tokenBlockComment {
			if enabled, ok := fmtDirective(tok.text); ok {
				f.formatting = enabled
				skipNext = true
				continue
			}
		}

		if !f.formatting {
			f.push(tok.text)
			continue
		}

		switch tok.kind {
		case tokenWhitespace:
			// The formatter owns all spacing decisions.

		case tokenLineComment:
			f.formatLineComment(tok, i)

		case tokenBlockComment:
			f.formatBlockComment(tok)

		case tokenReservedTopLevel:
			f.formatTopLevelReserved(tok, i)
			f.previousReserved = tok.text

		case tokenReservedTopLevelNoIndent:
			f.formatNoIndentReserved(tok, i)
			f.previousReserved = tok.text

		case tokenReservedNewlineAfter:
			f.formatNewlineAfterReserved(tok, i)
			f.previousReserved = tok.text

		case tokenReservedNewline:
			f.formatNewlineReserved(tok)
			f.previousReserved = tok.text

		case tokenJoin:
			if f.options.JoinsAsTopLevel {
				f.formatTopLevelReserved(tok, i)
			} else {
				f.formatNewlineReserved(tok)
			}
			f.previousReserved = tok.text

		case tokenReserved:
			f.formatWithSpaces(f.keyword(tok.text))
			f.previousReserved = tok.text

		case tokenOpenParen:
			f.formatOpeningParen(tok, i)

		case tokenCloseParen:
			f.formatClosingParen(tok)

		case tokenPlaceholder:
			f.formatWithSpaces(f.resolver.resolve(tok))

		case tokenTypeSpecifier:
			f.formatTypeSpecifier(tok, i)

		case tokenOperator:
			switch tok.text {
			case ",":
				f.formatComma()
			case ":":
				f.trimSpacesEnd()
				f.push(": ")
			case ".":
				f.trimSpacesEnd()
				f.push(".")
			case ";":
				f.formatQuerySeparator()
			default:
				f.formatWithSpaces(tok.text)
			}

		default: // strings, words, numbers
			f.formatWithSpaces(tok.text)
		}
	}

	return strings.TrimSpace(string(f.out))
}

// formatTopLevelReserved renders a clause keyword and decides whether the
// clause body folds onto the keyword's line. CREATE TABLE always folds; other
// clauses fold only under MaxInlineTopLevel, either because the whole body
// fits, or because the body is a single multi-line block that should hang off
// the keyword ("FROM (" style).
func (f *formatter) formatTopLevelReserved(tok token, i int) {
	kw := f.keyword(tok.text)
	if f.inline.active() {
		f.formatWithSpaces(kw)
		return
	}

	span := f.scanClauseSpan(i + 1)
	folded := tok.alias == "CREATE"
	if !folded && f.options.MaxInlineTopLevel > 0 {
		switch {
		case span.length <= f.options.MaxInlineTopLevel:
			folded = true
		case span.arguments == 0 && span.newlines == 0 && span.leadingBlock >= 0 &&
			!f.inline.eligible(f.tokens, span.leadingBlock):
			folded = true
		}
	}

	f.indentation.decreaseTopLevel()
	f.addNewLine()

	if folded {
		f.push(kw + " ")
		f.indentation.increaseFolded(span.length)
		return
	}

	f.push(kw)
	f.indentation.increaseTopLevel(span.length)
	f.addNewLine()
}

func (f *formatter) formatNoIndentReserved(tok token, i int) {
	kw := f.keyword(tok.text)
	if f.inline.active() {
		f.formatWithSpaces(kw)
		return
	}

	span := f.scanClauseSpan(i + 1)
	f.indentation.decreaseTopLevel()
	f.addNewLine()

	if f.options.MaxInlineTopLevel > 0 && span.length <= f.options.MaxInlineTopLevel {
		f.push(kw + " ")
		f.indentation.increaseFolded(span.length)
		return
	}

	f.push(kw)
	f.addNewLine()
}

// formatNewlineAfterReserved breaks after the keyword instead of before it.
// When the governing clause is folded the keyword stays on that line, so
// "UPDATE t SET" reads as one unit.
func (f *formatter) formatNewlineAfterReserved(tok token, i int) {
	kw := f.keyword(tok.text)
	if f.inline.active() {
		f.formatWithSpaces(kw)
		return
	}

	if !f.indentation.topFrameFolded() {
		f.indentation.decreaseTopLevel()
		f.addNewLine()
	}

	f.push(kw)
	f.indentation.increaseTopLevel(f.scanClauseSpan(i + 1).length)
	f.addNewLine()
}

func (f *formatter) formatNewlineReserved(tok token) {
	kw := f.keyword(tok.text)
	if f.inline.active() {
		f.formatWithSpaces(kw)
		return
	}

	// Inside a folded clause the continuation hangs one level under the
	// keyword's line.
	if f.indentation.topFrameFolded() {
		f.addNewLine()
		f.push(f.options.Indent.unit)
		f.push(kw + " ")
		return
	}

	if f.options.MaxInlineArguments > 0 {
		if span, ok := f.indentation.topLevelSpan(); ok && span <= f.options.MaxInlineArguments {
			f.formatWithSpaces(kw)
			return
		}
	}

	f.addNewLine()
	f.push(kw + " ")
}

func (f *formatter) formatOpeningParen(tok token, i int) {
	text := tok.text
	if len(text) > 1 { // CASE
		text = f.keyword(text)
	}

	willInline := f.inline.active() || f.inline.eligible(f.tokens, i)

	// "[" always glues to the subscripted expression. "(" preserves a
	// deliberate source space and the space after a clause keyword, and keeps
	// its separation from a plain keyword when the block breaks open; it glues
	// to function names and other plain words.
	prev, ok := f.relativeToken(i, -1)
	switch {
	case tok.text == "[":
		f.trimGlueEnd()
	case ok && prev.kind == tokenReserved:
		if willInline {
			f.trimSpacesEnd()
		}
	case !ok || !preservesParenSpace(prev):
		f.trimSpacesEnd()
	}
	f.push(text)
	if len(tok.text) > 1 {
		f.push(" ")
	}

	f.inline.beginIfPossible(f.tokens, i)
	if !f.inline.active() {
		f.indentation.increaseBlockLevel()
		f.addNewLine()
	}
}

func (f *formatter) formatClosingParen(tok token) {
	text := tok.text
	if len(text) > 1 { // END
		text = f.keyword(text)
	}

	if f.inline.active() {
		f.inline.end()
		if len(tok.text) == 1 {
			f.trimSpacesEnd()
		}
		f.push(text + " ")
		return
	}

	f.indentation.decreaseBlockLevel()
	f.addNewLine()
	f.push(text + " ")
}

// formatTypeSpecifier glues "::" or "[]" to the preceding token; a space
// follows only when the next word is a keyword ("UUID[] IS NOT NULL").
func (f *formatter) formatTypeSpecifier(tok token, i int) {
	f.trimSpacesEnd()
	f.push(tok.text)
	if next, ok := f.nextNonWhitespace(i); ok && next.isReserved() {
		f.push(" ")
	}
}

func (f *formatter) formatComma() {
	f.trimSpacesEnd()
	f.push(", ")

	if f.inline.active() {
		return
	}
	if strings.EqualFold(equalizeWhitespace(f.previousReserved), "LIMIT") {
		return
	}
	if f.options.MaxInlineArguments > 0 {
		if span, ok := f.indentation.topLevelSpan(); ok && span <= f.options.MaxInlineArguments {
			return
		}
	}
	f.addNewLine()
}

func (f *formatter) formatQuerySeparator() {
	f.indentation.reset()
	f.previousReserved = ""
	f.trimSpacesEnd()
	f.push(";")
	f.push(strings.Repeat("\n", f.options.LinesBetweenQueries))
}

// formatLineComment keeps a comment on its own line when it had one in the
// source; a comment trailing a comma re-attaches after two spaces so list
// annotations survive the comma's line break.
func (f *formatter) formatLineComment(tok token, i int) {
	ownLine := false
	if prev, ok := f.relativeToken(i, -1); ok && strings.ContainsRune(prev.text, '\n') {
		if next, ok := f.relativeToken(i, 1); ok && next.kind == tokenWhitespace {
			if after, ok := f.relativeToken(i, 2); ok {
				ownLine = after.kind != tokenOperator
			}
		}
	}

	if ownLine {
		f.addNewLine()
	} else if prev, ok := f.relativeToken(i, -2); ok && prev.text == "," {
		f.trimWhitespaceEnd()
		f.push("  ")
	}

	f.push(tok.text)
	f.addNewLine()
}

func (f *formatter) formatBlockComment(tok token) {
	f.addNewLine()
	f.push(f.indentBlockComment(tok.text))
	f.addNewLine()
}

// indentBlockComment re-anchors a multi-line comment's interior lines at the
// current indent while keeping their relative shape.
func (f *formatter) indentBlockComment(comment string) string {
	indent := f.indentation.indent()
	lines := strings.Split(comment, "\n")

	var b strings.Builder
	b.WriteString(lines[0])
	for _, line := range lines[1:] {
		b.WriteByte('\n')
		if strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
			b.WriteString(indent)
			b.WriteByte(' ')
			b.WriteString(strings.TrimLeft(line, " \t"))
		} else {
			b.WriteString(line)
		}
	}
	return b.String()
}

func (f *formatter) formatWithSpaces(text string) {
	f.push(text + " ")
}

func (f *formatter) keyword(text string) string {
	return f.options.reservedCase(equalizeWhitespace(text))
}

func (f *formatter) addNewLine() {
	f.trimSpacesEnd()
	if f.options.Inline {
		if n := len(f.out); n > 0 && f.out[n-1] != ' ' && f.out[n-1] != '\n' {
			f.push(" ")
		}
		return
	}
	if n := len(f.out); n == 0 || f.out[n-1] != '\n' {
		f.push("\n")
	}
	f.push(f.indentation.indent())
}

// clauseSpan summarizes a clause body via one bounded forward scan: its
// rendered length (whitespace runs count as one), depth-zero comma and
// newline-keyword counts, and the index of a block that opens the body.
type clauseSpan struct {
	length       int
	arguments    int
	newlines     int
	leadingBlock int
}

func (f *formatter) scanClauseSpan(start int) clauseSpan {
	span := clauseSpan{leadingBlock: -1}
	depth := 0
	sawContent := false

	for i := start; i < len(f.tokens); i++ {
		t := f.tokens[i]

		switch t.kind {
		case tokenWhitespace:
			span.length++
			continue

		case tokenReservedTopLevel, tokenReservedTopLevelNoIndent, tokenReservedNewlineAfter:
			if depth == 0 {
				return span
			}

		case tokenJoin:
			if depth == 0 {
				if f.options.JoinsAsTopLevel {
					return span
				}
				span.newlines++
			}

		case tokenReservedNewline:
			if depth == 0 {
				span.newlines++
			}

		case tokenOpenParen:
			if depth == 0 && !sawContent {
				span.leadingBlock = i
			}
			depth++

		case tokenCloseParen:
			if depth == 0 {
				return span
			}
			depth--

		case tokenOperator:
			if depth == 0 {
				if t.text == ";" {
					return span
				}
				if t.text == "," {
					span.arguments++
				}
			}
		}

		span.length += len(t.text)
		sawContent = true
	}
	return span
}

// preservesParenSpace reports whether a "(" keeps its separation from the
// preceding token instead of gluing to it.
func preservesParenSpace(prev token) bool {
	switch prev.kind {
	case tokenWhitespace, tokenOpenParen, tokenLineComment:
		return true
	case tokenReservedTopLevel, tokenReservedTopLevelNoIndent,
		tokenReservedNewlineAfter, tokenReservedNewline, tokenJoin:
		// "VALUES(...)" reads better as "VALUES (...)". Plain reserved
		// words are decided by the caller on inline state.
		return true
	}
	return false
}

func (f *formatter) relativeToken(i, offset int) (token, bool) {
	j := i + offset
	if j < 0 || j >= len(f.tokens) {
		return token{}, false
	}
	return f.tokens[j], true
}

func (f *formatter) nextNonWhitespace(i int) (token, bool) {
	for j := i + 1; j < len(f.tokens); j++ {
		if f.tokens[j].kind != tokenWhitespace {
			return f.tokens[j], true
		}
	}
	return token{}, false
}

func (f *formatter) push(s string) {
	f.out = append(f.out, s...)
}

func (f *formatter) trimSpacesEnd() {
	n := len(f.out)
	for n > 0 && (f.out[n-1] == ' ' || f.out[n-1] == '\t') {
		n--
	}
	f.out = f.out[:n]
}

// trimGlueEnd removes trailing spacing unless it is line indentation: a "["
// that starts its own line keeps the indent instead of gluing to the newline.
func (f *formatter) trimGlueEnd() {
	n := len(f.out)
	for n > 0 && (f.out[n-1] == ' ' || f.out[n-1] == '\t') {
		n--
	}
	if n > 0 && f.out[n-1] == '\n' {
		return
	}
	f.out = f.out[:n]
}

func (f *formatter) trimWhitespaceEnd() {
	n := len(f.out)
	for n > 0 {
		switch f.out[n-1] {
		case ' ', '\t', '\n', '\r':
			n--
		default:
			f.out = f.out[:n]
			return
		}
	}
	f.out = f.out[:0]
}

// fmtDirective recognizes (--|/*)\s*fmt\s*:\s*(off|on), case-insensitively,
// as a small explicit scanner. It reports the new formatting state and
// whether the comment was a directive at all.
func fmtDirective(comment string) (enabled, ok bool) {
	if len(comment) < 2 {
		return false, false
	}
	if !strings.HasPrefix(comment, "--") && !strings.HasPrefix(comment, "/*") {
		return false, false
	}

	i := 2
	skipSpace := func() {
		for i < len(comment) && isSpaceByte(comment[i]) {
			i++
		}
	}
	word := func(w string) bool {
		if len(comment)-i < len(w) {
			return false
		}
		for j := 0; j < len(w); j++ {
			if asciiUpper(comment[i+j]) != asciiUpper(w[j]) {
				return false
			}
		}
		i += len(w)
		return true
	}

	skipSpace()
	if !word("fmt") {
		return false, false
	}
	skipSpace()
	if i >= len(comment) || comment[i] != ':' {
		return false, false
	}
	i++
	skipSpace()

	switch {
	case word("off"):
		return false, true
	case word("on"):
		return true, true
	}
	return false, false
}
