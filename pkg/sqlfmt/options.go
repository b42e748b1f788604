package sqlfmt

import "strings"

// Dialect selects the lexical quirks the tokenizer accepts. It gates quoting
// and placeholder syntax only; no dialect changes layout decisions.
type Dialect int

const (
	// Generic accepts the common lexical subset shared by most engines.
	Generic Dialect = iota
	// PostgreSql additionally treats square brackets as array subscripts
	// and `[]` as a type specifier.
	PostgreSql
	// SQLServer additionally accepts [bracketed identifiers] and
	// @variable placeholders.
	SQLServer
)

// KeywordCase controls case folding of reserved words.
type KeywordCase int

const (
	// CaseUnchanged leaves reserved words exactly as written.
	CaseUnchanged KeywordCase = iota
	// CaseUpper folds reserved words to upper case.
	CaseUpper
	// CaseLower folds reserved words to lower case.
	CaseLower
)

// Indent is the unit of indentation, repeated once per nesting level.
type Indent struct {
	unit string
}

// Spaces returns an Indent of n spaces per level.
func Spaces(n int) Indent {
	return Indent{unit: strings.Repeat(" ", n)}
}

// Tabs returns an Indent of one tab per level.
func Tabs() Indent {
	return Indent{unit: "\t"}
}

// NamedParam binds a placeholder name to its literal replacement text.
type NamedParam struct {
	Name  string
	Value string
}

// QueryParams supplies replacement values for placeholders. A nil
// *QueryParams leaves every placeholder untouched.
type QueryParams struct {
	named   []NamedParam
	indexed []string
}

// NamedParams builds a parameter set resolved by placeholder name
// (:name, @name, $name, {name} and their quoted forms).
func NamedParams(params ...NamedParam) *QueryParams {
	return &QueryParams{named: params}
}

// IndexedParams builds a parameter set resolved by placeholder position
// or explicit index (?, ?N, $N).
func IndexedParams(values ...string) *QueryParams {
	return &QueryParams{indexed: values}
}

func (p *QueryParams) isNamed() bool {
	return p != nil && p.named != nil
}

// FormatOptions is an immutable configuration snapshot for one format call.
type FormatOptions struct {
	// Indent is the per-level indentation unit.
	Indent Indent

	// Uppercase controls reserved-word case folding.
	Uppercase KeywordCase

	// IgnoreCaseConvert lists keywords (compared case-insensitively)
	// exempted from the Uppercase transform.
	IgnoreCaseConvert []string

	// LinesBetweenQueries is the number of newlines emitted after each ";".
	LinesBetweenQueries int

	// Inline collapses all line breaks into single spaces.
	Inline bool

	// MaxInlineBlock is the character-length ceiling under which a
	// parenthesized (or CASE..END) region renders on one line.
	MaxInlineBlock int

	// MaxInlineArguments, when > 0, keeps comma-separated arguments on one
	// line while the governing clause span fits within it. Zero always
	// breaks after each argument.
	MaxInlineArguments int

	// MaxInlineTopLevel, when > 0, folds a whole top-level clause body onto
	// the keyword's line while its span fits within it.
	MaxInlineTopLevel int

	// JoinsAsTopLevel treats JOIN-family keywords as top-level clauses
	// instead of newline continuations.
	JoinsAsTopLevel bool

	// Dialect gates dialect-specific lexing.
	Dialect Dialect
}

// Defaults mirror the conventional two-space, break-everything style.
var Defaults = FormatOptions{
	Indent:              Spaces(2),
	LinesBetweenQueries: 1,
	MaxInlineBlock:      50,
}

// Formatter formats SQL text with a fixed set of options. It holds no
// per-call state and is safe for concurrent use.
type Formatter struct {
	options FormatOptions
}

// New creates a Formatter with the specified options.
func New(options FormatOptions) *Formatter {
	return &Formatter{options: options}
}

// Format reformats query, substituting placeholders from params when
// supplied. It never fails: malformed SQL degrades to best-effort layout.
func (f *Formatter) Format(query string, params *QueryParams) string {
	tokens := tokenize(query, f.options.Dialect, params.isNamed())
	return newFormatter(f.options, params).format(tokens)
}

// Format is a convenience wrapper around New(options).Format.
func Format(query string, params *QueryParams, options FormatOptions) string {
	return New(options).Format(query, params)
}

func (o *FormatOptions) reservedCase(word string) string {
	for _, ignored := range o.IgnoreCaseConvert {
		if strings.EqualFold(word, ignored) {
			return word
		}
	}

	switch o.Uppercase {
	case CaseUpper:
		return strings.ToUpper(word)
	case CaseLower:
		return strings.ToLower(word)
	default:
		return word
	}
}

// equalizeWhitespace collapses interior whitespace runs of a multi-word
// keyword to single spaces.
func equalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
