package sqlfmt

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// operatorChars is the alphabet multi-character operator glyphs are drawn
// from. Anything else unrecognized becomes a single-character operator.
const operatorChars = "!<>=|:-~*&@^?#/%"

func isOperatorChar(c byte) bool {
	return strings.IndexByte(operatorChars, c) >= 0
}

// tokenizer carries the single-token lookback state needed for scoped
// keyword classification. It is created fresh per tokenize call.
type tokenizer struct {
	dialect      Dialect
	named        bool
	lastReserved string // upper-cased, whitespace-equalized
	lastTopLevel string // alias of the governing top-level clause
}

// tokenize splits input into a complete token sequence. It is total: every
// byte lands in exactly one token, and concatenating the tokens' text in
// order reproduces input byte for byte.
func tokenize(input string, dialect Dialect, named bool) []token {
	tz := tokenizer{dialect: dialect, named: named}

	var tokens []token
	var prev, prevNonWS token
	hasPrev, hasPrevNonWS := false, false

	for len(input) > 0 {
		tok := tz.next(input, prev, hasPrev, prevNonWS, hasPrevNonWS)
		input = input[len(tok.text):]
		tokens = append(tokens, tok)

		prev, hasPrev = tok, true
		if tok.kind != tokenWhitespace {
			prevNonWS, hasPrevNonWS = tok, true
		}

		if tok.isReserved() {
			tz.lastReserved = strings.ToUpper(equalizeWhitespace(tok.text))
		}
		if tok.kind == tokenReservedTopLevel {
			tz.lastTopLevel = tok.alias
		}
		if tok.kind == tokenOperator && tok.text == ";" {
			tz.lastReserved = ""
			tz.lastTopLevel = ""
		}
	}
	return tokens
}

func (tz *tokenizer) next(in string, prev token, hasPrev bool, prevNonWS token, hasPrevNonWS bool) token {
	if tok, ok := scanWhitespace(in); ok {
		return tok
	}
	if tok, ok := tz.scanComment(in); ok {
		return tok
	}
	if tok, ok := tz.scanTypeSpecifier(in, prevNonWS, hasPrevNonWS); ok {
		return tok
	}
	if tok, ok := tz.scanString(in); ok {
		return tok
	}
	if tok, ok := tz.scanOpenParen(in); ok {
		return tok
	}
	if tok, ok := tz.scanCloseParen(in); ok {
		return tok
	}
	if tok, ok := scanNumber(in); ok {
		return tok
	}
	if tok, ok := tz.scanReserved(in, prev, hasPrev); ok {
		return tok
	}
	if tok, ok := scanMultiOperator(in); ok {
		return tok
	}
	if tok, ok := tz.scanPlaceholder(in); ok {
		return tok
	}
	if tok, ok := scanWord(in); ok {
		return tok
	}

	_, size := utf8.DecodeRuneInString(in)
	return token{kind: tokenOperator, text: in[:size]}
}

func scanWhitespace(in string) (token, bool) {
	end := 0
	for end < len(in) {
		r, size := utf8.DecodeRuneInString(in[end:])
		if !unicode.IsSpace(r) {
			break
		}
		end += size
	}
	if end == 0 {
		return token{}, false
	}
	return token{kind: tokenWhitespace, text: in[:end]}, true
}

// scanComment handles "--" and "#" line comments plus "/* */" block
// comments. A "#" immediately followed by an operator character is left for
// the operator scanner ("#>>" is JSON path access, not a comment).
func (tz *tokenizer) scanComment(in string) (token, bool) {
	if strings.HasPrefix(in, "--") {
		return token{kind: tokenLineComment, text: in[:lineCommentEnd(in)]}, true
	}
	if in[0] == '#' && (len(in) == 1 || !isOperatorChar(in[1])) {
		return token{kind: tokenLineComment, text: in[:lineCommentEnd(in)]}, true
	}
	if strings.HasPrefix(in, "/*") {
		end := len(in)
		if idx := strings.Index(in[2:], "*/"); idx >= 0 {
			end = idx + 4
		}
		return token{kind: tokenBlockComment, text: in[:end]}, true
	}
	return token{}, false
}

// lineCommentEnd returns the length of a line comment. The terminator stays
// out of the token so the whitespace scanner picks it up; the formatter's
// own-line lookahead depends on that.
func lineCommentEnd(in string) int {
	for i := 0; i < len(in); i++ {
		if in[i] == '\n' || in[i] == '\r' {
			return i
		}
	}
	return len(in)
}

// scanTypeSpecifier recognizes "::" casts and PostgreSql "[]" array markers,
// but only directly after a value-like token; anywhere else the characters
// fall through to the operator scanner.
func (tz *tokenizer) scanTypeSpecifier(in string, prevNonWS token, hasPrevNonWS bool) (token, bool) {
	if !hasPrevNonWS {
		return token{}, false
	}
	switch prevNonWS.kind {
	case tokenCloseParen, tokenPlaceholder, tokenString, tokenTypeSpecifier, tokenWord:
	default:
		if !prevNonWS.isReserved() {
			return token{}, false
		}
	}

	if strings.HasPrefix(in, "::") {
		return token{kind: tokenTypeSpecifier, text: in[:2]}, true
	}
	if tz.dialect == PostgreSql && strings.HasPrefix(in, "[]") {
		return token{kind: tokenTypeSpecifier, text: in[:2]}, true
	}
	return token{}, false
}

func (tz *tokenizer) scanString(in string) (token, bool) {
	if tz.dialect == SQLServer && in[0] == '[' {
		return token{kind: tokenString, text: in[:scanBracketString(in)]}, true
	}
	if in[0] == '`' {
		return token{kind: tokenString, text: in[:scanQuotedString(in, '`', false)]}, true
	}
	if c := in[0]; (c == 'N' || c == 'E' || c == 'x' || c == 'X') && len(in) > 1 && in[1] == '\'' {
		return token{kind: tokenString, text: in[:1+scanQuotedString(in[1:], '\'', true)]}, true
	}
	if in[0] == '"' || in[0] == '\'' {
		return token{kind: tokenString, text: in[:scanQuotedString(in, in[0], true)]}, true
	}
	return token{}, false
}

// scanQuotedString measures a quote-delimited literal starting at in[0].
// Doubled quotes continue the literal; when backslash is true a backslash
// escapes the following character. Unterminated literals run to end of input.
func scanQuotedString(in string, quote byte, backslash bool) int {
	i := 0
	for i < len(in) && in[i] == quote {
		i++
		for i < len(in) && in[i] != quote {
			if backslash && in[i] == '\\' {
				i++
			}
			i++
		}
		if i >= len(in) {
			return len(in)
		}
		i++ // closing quote; a directly following quote reopens
	}
	return i
}

// scanBracketString measures a [bracketed identifier]; "]]" escapes by
// starting another ]-delimited unit.
func scanBracketString(in string) int {
	i := 1
	for {
		for i < len(in) && in[i] != ']' {
			i++
		}
		if i >= len(in) {
			return len(in)
		}
		i++
		if i < len(in) && in[i] == ']' {
			i++
			continue
		}
		return i
	}
}

func (tz *tokenizer) scanOpenParen(in string) (token, bool) {
	if in[0] == '(' {
		return token{kind: tokenOpenParen, text: in[:1]}, true
	}
	if tz.dialect == PostgreSql && in[0] == '[' {
		return token{kind: tokenOpenParen, text: in[:1]}, true
	}
	if n := matchPhrase(in, "CASE"); n > 0 {
		return token{kind: tokenOpenParen, text: in[:n]}, true
	}
	return token{}, false
}

func (tz *tokenizer) scanCloseParen(in string) (token, bool) {
	if in[0] == ')' {
		return token{kind: tokenCloseParen, text: in[:1]}, true
	}
	if tz.dialect == PostgreSql && in[0] == ']' {
		return token{kind: tokenCloseParen, text: in[:1]}, true
	}
	if n := matchPhrase(in, "END"); n > 0 {
		return token{kind: tokenCloseParen, text: in[:n]}, true
	}
	return token{}, false
}

// scanNumber recognizes integers, decimals, scientific notation, hex and
// binary literals, and a leading minus (optionally separated by whitespace).
func scanNumber(in string) (token, bool) {
	i := 0
	if in[0] == '-' {
		i = 1
		for i < len(in) && isSpaceByte(in[i]) {
			i++
		}
	} else if n := scanPrefixedDigits(in, "0x", isHexDigit); n > 0 {
		return numberToken(in, n)
	} else if n := scanPrefixedDigits(in, "0b", isBinDigit); n > 0 {
		return numberToken(in, n)
	}

	start := i
	i = scanDigits(in, i)
	if i == start {
		return token{}, false
	}
	i = scanFraction(in, i)

	if i < len(in) && (in[i] == 'e' || in[i] == 'E') {
		j := i + 1
		if j < len(in) && (in[j] == '+' || in[j] == '-') {
			j++
		}
		expStart := j
		j = scanDigits(in, j)
		if j > expStart {
			i = scanFraction(in, j)
		}
	}
	return numberToken(in, i)
}

func numberToken(in string, end int) (token, bool) {
	if end < len(in) && isWordContinuation(in, end) {
		return token{}, false
	}
	return token{kind: tokenNumber, text: in[:end]}, true
}

func scanPrefixedDigits(in, prefix string, digit func(byte) bool) int {
	if !strings.HasPrefix(in, prefix) {
		return 0
	}
	i := len(prefix)
	start := i
	for i < len(in) && digit(in[i]) {
		i++
	}
	if i == start {
		return 0
	}
	return i
}

func scanDigits(in string, i int) int {
	for i < len(in) && in[i] >= '0' && in[i] <= '9' {
		i++
	}
	return i
}

func scanFraction(in string, i int) int {
	if i < len(in) && in[i] == '.' {
		j := scanDigits(in, i+1)
		if j > i+1 {
			return j
		}
	}
	return i
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isBinDigit(c byte) bool {
	return c == '0' || c == '1'
}

// scanReserved classifies keywords, most specific group first. A reserved
// word directly after "." is an identifier ("table.from"), never a keyword.
func (tz *tokenizer) scanReserved(in string, prev token, hasPrev bool) (token, bool) {
	if hasPrev && prev.text == "." {
		return token{}, false
	}

	if strings.HasPrefix(in, "$$") {
		if len(in) == 2 || !isWordContinuation(in, 2) {
			return token{kind: tokenReservedTopLevelNoIndent, text: in[:2], alias: "$$"}, true
		}
	}

	if tz.lastTopLevel == "ALTER" {
		if n, e, ok := alterScopeTable.match(in); ok {
			return token{kind: tokenReservedNewline, text: in[:n], alias: entryAlias(e)}, true
		}
	}

	if n, e, ok := topLevelTable.match(in); ok {
		kind := tokenReservedTopLevel
		switch {
		case e.phrase == "EXCEPT" && tz.lastTopLevel == "SELECT":
			// Column-exclusion EXCEPT, not the set operator.
			kind = tokenReserved
		case e.phrase == "SET" && tz.lastTopLevel == "UPDATE":
			// UPDATE t SET breaks after SET, not before.
			kind = tokenReservedNewlineAfter
		}
		return token{kind: kind, text: in[:n], alias: entryAlias(e)}, true
	}

	if n, e, ok := newlineAfterTable.match(in); ok {
		return token{kind: tokenReservedNewlineAfter, text: in[:n], alias: entryAlias(e)}, true
	}
	if n, e, ok := noIndentTable.match(in); ok {
		return token{kind: tokenReservedTopLevelNoIndent, text: in[:n], alias: entryAlias(e)}, true
	}
	if n, e, ok := newlineTable.match(in); ok {
		kind := tokenReservedNewline
		if e.phrase == "AND" && tz.lastReserved == "BETWEEN" {
			// BETWEEN x AND y stays on one line.
			kind = tokenReserved
		}
		return token{kind: kind, text: in[:n], alias: entryAlias(e)}, true
	}
	if n, e, ok := joinTable.match(in); ok {
		return token{kind: tokenJoin, text: in[:n], alias: entryAlias(e)}, true
	}
	if n, e, ok := plainTable.match(in); ok {
		return token{kind: tokenReserved, text: in[:n], alias: entryAlias(e)}, true
	}
	return token{}, false
}

func entryAlias(e keywordEntry) string {
	if e.alias != "" {
		return e.alias
	}
	return e.phrase
}

// scanMultiOperator consumes a run of 2-5 operator characters as one glyph
// ("<=>", "?||", "<<<->"). Single characters fall through so placeholder and
// word scanning get a chance first.
func scanMultiOperator(in string) (token, bool) {
	n := 0
	for n < len(in) && n < 5 && isOperatorChar(in[n]) {
		n++
	}
	if n < 2 {
		return token{}, false
	}
	return token{kind: tokenOperator, text: in[:n]}, true
}

// scanPlaceholder tries named and indexed placeholder forms. The attempt
// order follows whether named params were supplied; see params.go for the
// rationale behind this documented quirk.
func (tz *tokenizer) scanPlaceholder(in string) (token, bool) {
	if tz.named {
		if tok, ok := tz.scanNamedPlaceholder(in); ok {
			return tok, true
		}
		return tz.scanIndexedPlaceholder(in)
	}

	if tok, ok := tz.scanIndexedPlaceholder(in); ok {
		return tok, true
	}
	return tz.scanNamedPlaceholder(in)
}

func (tz *tokenizer) scanNamedPlaceholder(in string) (token, bool) {
	if tz.isNamedPrefix(in[0]) {
		if n := scanPlaceholderIdent(in, 1); n > 1 {
			return token{
				kind: tokenPlaceholder,
				text: in[:n],
				key:  placeholderKey{kind: keyNamed, name: in[1:n]},
			}, true
		}
		if n := tz.scanPlaceholderQuote(in[1:]); n > 0 {
			text := in[:1+n]
			return token{
				kind: tokenPlaceholder,
				text: text,
				key:  placeholderKey{kind: keyNamed, name: decodeQuotedKey(text[1:])},
			}, true
		}
	}

	if in[0] == '{' {
		if n := scanPlaceholderIdent(in, 1); n > 1 && n < len(in) && in[n] == '}' {
			return token{
				kind: tokenPlaceholder,
				text: in[:n+1],
				key:  placeholderKey{kind: keyNamed, name: in[1:n]},
			}, true
		}
	}
	return token{}, false
}

func (tz *tokenizer) scanIndexedPlaceholder(in string) (token, bool) {
	switch in[0] {
	case '?':
		n := scanDigits(in, 1)
		key := placeholderKey{kind: keyNone}
		if n > 1 {
			idx, err := strconv.Atoi(in[1:n])
			if err != nil {
				return token{}, false
			}
			key = placeholderKey{kind: keyZeroIndexed, index: idx}
		}
		return token{kind: tokenPlaceholder, text: in[:n], key: key}, true

	case '$':
		n := scanDigits(in, 1)
		if n == 1 {
			return token{}, false
		}
		idx, err := strconv.Atoi(in[1:n])
		if err != nil {
			return token{}, false
		}
		return token{
			kind: tokenPlaceholder,
			text: in[:n],
			key:  placeholderKey{kind: keyOneIndexed, index: idx},
		}, true
	}
	return token{}, false
}

func (tz *tokenizer) isNamedPrefix(c byte) bool {
	switch c {
	case ':', '$':
		return true
	case '@':
		return tz.dialect == SQLServer
	}
	return false
}

// scanPlaceholderQuote measures the quoted part of a quoted-name placeholder
// (:"name", @'name', :`name`, @[name]). Returns 0 when in doesn't open with
// a supported quote.
func (tz *tokenizer) scanPlaceholderQuote(in string) int {
	if in == "" {
		return 0
	}
	switch in[0] {
	case '\'', '"':
		return scanQuotedString(in, in[0], true)
	case '`':
		return scanQuotedString(in, '`', false)
	case '[':
		if tz.dialect == SQLServer {
			return scanBracketString(in)
		}
	}
	return 0
}

func scanPlaceholderIdent(in string, start int) int {
	i := start
	for i < len(in) {
		c := in[i]
		if c == '.' || c == '_' || c == '$' ||
			(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			i++
			continue
		}
		break
	}
	return i
}

func scanWord(in string) (token, bool) {
	end := 0
	for end < len(in) {
		r, size := utf8.DecodeRuneInString(in[end:])
		if !isWordRune(r) {
			break
		}
		end += size
	}
	if end == 0 {
		return token{}, false
	}
	return token{kind: tokenWord, text: in[:end]}, true
}

func isWordRune(r rune) bool {
	if r == '\u200c' || r == '\u200d' {
		return true
	}
	return unicode.In(r, unicode.L, unicode.M, unicode.Nd, unicode.Pc)
}

func isWordContinuation(in string, pos int) bool {
	r, _ := utf8.DecodeRuneInString(in[pos:])
	return isWordRune(r)
}
