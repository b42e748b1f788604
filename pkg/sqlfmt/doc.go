// Package sqlfmt pretty-prints SQL without parsing it.
//
// The package works in two passes over flat tokens rather than a syntax
// tree: a total tokenizer that classifies every byte of input (lexing can
// never fail; anything unrecognized degrades to an operator or word), and a
// single-pass layout machine that walks the token stream once, deciding per
// token whether to break, indent, fold, or inline. Because tokens always
// carry their original text, malformed SQL still comes out intact, just
// re-spaced.
//
// Key features:
//   - Total lexing: comments, strings, placeholders, and unknown input all
//     survive formatting byte-for-byte
//   - Clause-aware line breaks and indentation for SELECT, INSERT, UPDATE,
//     DDL, and set operations
//   - Inline rendering of short parenthesized blocks and clause folding,
//     tunable via FormatOptions
//   - Placeholder substitution for positional, indexed, and named parameters
//   - Keyword case folding with a per-keyword exemption list
//   - "-- fmt: off" / "-- fmt: on" regions that pass through verbatim
//
// Usage:
//
//	// Object-oriented API with default options
//	formatter := sqlfmt.New(sqlfmt.Defaults)
//	out := formatter.Format("SELECT * FROM users WHERE id = ?", sqlfmt.IndexedParams("42"))
//
//	// Functional API with custom options
//	options := sqlfmt.Defaults
//	options.Uppercase = sqlfmt.CaseUpper
//	options.Dialect = sqlfmt.PostgreSql
//	out := sqlfmt.Format("select * from users", nil, options)
//
// A Formatter holds no per-call state and is safe for concurrent use.
package sqlfmt
