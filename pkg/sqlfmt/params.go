package sqlfmt

import "strings"

// paramResolver maps placeholder tokens to their literal replacement text.
// Unresolved placeholders pass through with their original text; resolution
// can never fail.
type paramResolver struct {
	params   *QueryParams
	position int // consumption counter for bare "?" placeholders
}

func newParamResolver(params *QueryParams) *paramResolver {
	return &paramResolver{params: params}
}

func (r *paramResolver) resolve(tok token) string {
	if r.params == nil {
		return tok.text
	}

	switch tok.key.kind {
	case keyNamed:
		// First match wins on duplicate names.
		for _, p := range r.params.named {
			if p.Name == tok.key.name {
				return p.Value
			}
		}

	case keyZeroIndexed:
		if idx := tok.key.index; idx >= 0 && idx < len(r.params.indexed) {
			return r.params.indexed[idx]
		}

	case keyOneIndexed:
		if idx := tok.key.index - 1; idx >= 0 && idx < len(r.params.indexed) {
			return r.params.indexed[idx]
		}

	case keyNone:
		idx := r.position
		r.position++
		if idx < len(r.params.indexed) {
			return r.params.indexed[idx]
		}
	}
	return tok.text
}

// decodeQuotedKey strips the quotes from a quoted placeholder name and
// un-escapes backslash-escaped closing quotes ("@'it\'s'" names "it's").
func decodeQuotedKey(quoted string) string {
	if len(quoted) < 2 {
		return quoted
	}

	closing := quoted[len(quoted)-1]
	body := quoted[1 : len(quoted)-1]
	return strings.ReplaceAll(body, `\`+string(closing), string(closing))
}
