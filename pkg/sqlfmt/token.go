package sqlfmt

// tokenKind classifies a lexed span of input. The set is flat and closed;
// the formatter dispatches on it without ever consulting a grammar.
type tokenKind int

const (
	tokenWhitespace tokenKind = iota
	tokenString
	tokenWord
	tokenNumber
	tokenOperator
	tokenTypeSpecifier
	tokenOpenParen
	tokenCloseParen
	tokenLineComment
	tokenBlockComment
	tokenPlaceholder
	tokenReserved
	tokenReservedTopLevel
	tokenReservedTopLevelNoIndent
	tokenReservedNewline
	tokenReservedNewlineAfter
	tokenJoin
)

// placeholderKeyKind distinguishes how a placeholder addresses its parameter.
type placeholderKeyKind int

const (
	keyNone placeholderKeyKind = iota // bare "?", resolved by position
	keyNamed
	keyZeroIndexed // "?N"
	keyOneIndexed  // "$N"
)

type placeholderKey struct {
	kind  placeholderKeyKind
	name  string
	index int
}

// token is an immutable lexed span. text always aliases the original input
// string, so concatenating every token's text reproduces the input exactly.
type token struct {
	kind  tokenKind
	text  string
	alias string         // canonical clause label for reserved tokens ("CREATE", "SELECT", ...)
	key   placeholderKey // set only for tokenPlaceholder
}

func (t token) isReserved() bool {
	switch t.kind {
	case tokenReserved, tokenReservedTopLevel, tokenReservedTopLevelNoIndent,
		tokenReservedNewline, tokenReservedNewlineAfter, tokenJoin:
		return true
	}
	return false
}
