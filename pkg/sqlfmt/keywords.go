package sqlfmt

import (
	"sort"
	"strings"
)

// keywordEntry describes one reserved phrase. Multi-word phrases are stored
// with single spaces; each space matches any run of whitespace in the input.
type keywordEntry struct {
	phrase string
	kind   tokenKind
	alias  string
}

// Top-level clause keywords: force a dedent before and an indent after,
// unless the clause is folded. The alias groups spelling variants so scope
// decisions (ALTER verbs, EXCEPT demotion, UPDATE..SET) don't match on text.
var topLevelKeywords = []keywordEntry{
	{phrase: "SELECT DISTINCT", alias: "SELECT"},
	{phrase: "SELECT ALL", alias: "SELECT"},
	{phrase: "SELECT", alias: "SELECT"},
	{phrase: "FROM"},
	{phrase: "WHERE"},
	{phrase: "GROUP BY"},
	{phrase: "HAVING"},
	{phrase: "ORDER BY"},
	{phrase: "LIMIT"},
	{phrase: "INSERT INTO", alias: "INSERT"},
	{phrase: "INSERT", alias: "INSERT"},
	{phrase: "UPDATE", alias: "UPDATE"},
	{phrase: "VALUES"},
	{phrase: "SET CURRENT SCHEMA", alias: "SET"},
	{phrase: "SET SCHEMA", alias: "SET"},
	{phrase: "SET", alias: "SET"},
	{phrase: "DELETE FROM", alias: "DELETE"},
	{phrase: "USING"},
	{phrase: "ALTER TABLE", alias: "ALTER"},
	{phrase: "ALTER COLUMN", alias: "ALTER"},
	{phrase: "ADD", alias: "ALTER"},
	{phrase: "AFTER", alias: "ALTER"},
	{phrase: "MODIFY", alias: "ALTER"},
	{phrase: "FETCH FIRST"},
	{phrase: "EXCEPT"},
	{phrase: "ON CONFLICT"},
	{phrase: "RETURNING"},
	{phrase: "PARTITION BY"},
	{phrase: "WINDOW"},
	{phrase: "GO"},
	{phrase: "FOR UPDATE"},
	{phrase: "DROP TABLE IF EXISTS", alias: "DROP"},
	{phrase: "DROP TABLE", alias: "DROP"},
	{phrase: "DROP INDEX IF EXISTS", alias: "DROP"},
	{phrase: "DROP INDEX", alias: "DROP"},
	{phrase: "CREATE TABLE", alias: "CREATE"},
	{phrase: "CREATE TEMP TABLE", alias: "CREATE"},
	{phrase: "CREATE TEMPORARY TABLE", alias: "CREATE"},
	{phrase: "CREATE UNLOGGED TABLE", alias: "CREATE"},
	{phrase: "CREATE GLOBAL TEMP TABLE", alias: "CREATE"},
	{phrase: "CREATE GLOBAL TEMPORARY TABLE", alias: "CREATE"},
	{phrase: "CREATE LOCAL TEMP TABLE", alias: "CREATE"},
	{phrase: "CREATE LOCAL TEMPORARY TABLE", alias: "CREATE"},
}

// Newline-after keywords break the line after themselves instead of before.
var newlineAfterKeywords = []keywordEntry{
	{phrase: "DO UPDATE SET"},
	{phrase: "DO NOTHING"},
}

// No-indent top-level keywords start a new clause at the current depth
// without pushing an indentation frame.
var noIndentKeywords = []keywordEntry{
	{phrase: "UNION ALL"},
	{phrase: "UNION"},
	{phrase: "INTERSECT ALL"},
	{phrase: "INTERSECT"},
	{phrase: "MINUS"},
	{phrase: "BEGIN"},
	{phrase: "DECLARE"},
	{phrase: "WITH"},
	{phrase: "$$"},
}

// Newline keywords continue the current clause on a fresh line.
var newlineKeywords = []keywordEntry{
	{phrase: "AND"},
	{phrase: "OR"},
	{phrase: "XOR"},
	{phrase: "WHEN"},
	{phrase: "ELSE"},
	{phrase: "CROSS APPLY"},
	{phrase: "OUTER APPLY"},
}

// ALTER TABLE action verbs. Consulted before the top-level table, but only
// while the governing clause is an ALTER statement.
var alterScopeKeywords = []keywordEntry{
	{phrase: "ALTER COLUMN"},
	{phrase: "ALTER"},
	{phrase: "ADD"},
	{phrase: "DROP"},
	{phrase: "VALIDATE"},
	{phrase: "ENABLE"},
	{phrase: "DISABLE"},
}

var joinKeywords = buildJoinKeywords()

func buildJoinKeywords() []keywordEntry {
	bases := []string{
		"JOIN",
		"INNER JOIN",
		"CROSS JOIN",
		"FULL JOIN",
		"FULL OUTER JOIN",
		"LEFT JOIN",
		"LEFT OUTER JOIN",
		"RIGHT JOIN",
		"RIGHT OUTER JOIN",
		"ANY JOIN",
		"INNER ANY JOIN",
		"LEFT ANY JOIN",
		"RIGHT ANY JOIN",
		"SEMI JOIN",
		"LEFT SEMI JOIN",
		"RIGHT SEMI JOIN",
		"ANTI JOIN",
		"LEFT ANTI JOIN",
		"RIGHT ANTI JOIN",
		"ASOF JOIN",
		"LEFT ASOF JOIN",
		"PASTE JOIN",
	}

	entries := make([]keywordEntry, 0, len(bases)*2)
	for _, base := range bases {
		entries = append(entries,
			keywordEntry{phrase: base},
			keywordEntry{phrase: "GLOBAL " + base},
		)
	}
	return entries
}

// Plain reserved vocabulary: case-folded, never forces a break. Bare type
// names are deliberately absent so "num::integer" stays glued.
var plainKeywords = func() []keywordEntry {
	words := []string{
		"ACCESSIBLE", "ACTION", "AGAINST", "AGGREGATE", "ALGORITHM", "ALL",
		"ALTER", "ANALYZE", "ARRAY", "AS", "ASC", "AUTOCOMMIT", "AUTO_INCREMENT",
		"BETWEEN", "BINLOG", "BOTH", "CASCADE", "CHANGE", "CHANGED",
		"CHARACTER SET", "CHARSET", "CHECK", "CHECKSUM", "COLLATE", "COLLATION",
		"COLUMN", "COLUMNS", "COMMENT", "COMMIT", "COMMITTED", "COMPRESSED",
		"CONCURRENT", "CONSTRAINT", "CONTAINS", "CONVERT", "CREATE", "CROSS",
		"CURRENT_TIMESTAMP", "DATABASE", "DATABASES", "DAY", "DEFAULT",
		"DEFINER", "DELAYED", "DELETE", "DESC", "DESCRIBE", "DETERMINISTIC",
		"DISTINCT", "DISTINCTROW", "DIV", "DO", "DROP", "DUPLICATE", "DYNAMIC",
		"ENGINE", "ENGINES", "ESCAPE", "ESCAPED", "EVENTS", "EXEC", "EXECUTE",
		"EXISTS", "EXPLAIN", "EXTENDED", "FAST", "FETCH", "FIELDS", "FILE",
		"FIRST", "FIXED", "FLUSH", "FOR", "FORCE", "FOREIGN", "FULL",
		"FULLTEXT", "FUNCTION", "GLOBAL", "GRANT", "GRANTS", "GROUP_CONCAT",
		"HEAP", "HIGH_PRIORITY", "HOSTS", "HOUR", "IDENTIFIED", "IF", "IFNULL",
		"IGNORE", "IN", "INDEX", "INDEXES", "INFILE", "INTERVAL", "INTO",
		"INVOKER", "IS NOT DISTINCT FROM", "IS DISTINCT FROM", "IS",
		"ISOLATION", "KEY", "KEYS", "KILL", "LAST", "LEADING", "LEVEL", "LIKE",
		"LINEAR", "LINES", "LOAD", "LOCAL", "LOCK", "LOCKS", "LOGS",
		"LOW_PRIORITY", "MATCH", "MEDIUM", "MERGE", "MINUTE", "MODE", "MONTH",
		"NAMES", "NATURAL", "NOT", "NOW", "NULL", "NULLS", "OFFSET",
		"ON DELETE", "ON UPDATE", "ON", "ONLY", "OPEN", "OPTIMIZE", "OPTION",
		"OPTIONALLY", "OUT", "OUTFILE", "PAGE", "PARTIAL", "PARTITION",
		"PARTITIONS", "PASSWORD", "PRIMARY", "PRIVILEGES", "PROCEDURE",
		"PURGE", "QUICK", "RANGE", "READ", "REFERENCES", "REGEXP", "RELOAD",
		"REMOVE", "RENAME", "REPAIR", "REPEATABLE", "REPLACE", "REPLICATION",
		"RESET", "RESTORE", "RESTRICT", "RETURN", "RETURNS", "REVOKE",
		"ROLLBACK", "ROW", "ROWS", "ROW_FORMAT", "SECOND", "SECURITY",
		"SEPARATOR", "SERIALIZABLE", "SESSION", "SHARE", "SHOW", "SHUTDOWN",
		"SONAME", "SOUNDS", "SQL", "START", "STARTING", "STATUS", "STOP",
		"STORAGE", "STRAIGHT_JOIN", "SUPER", "TABLE", "TABLES", "TEMPORARY",
		"TERMINATED", "THEN", "TO", "TRAILING", "TRANSACTION", "TRANSACTIONAL",
		"TRUE", "FALSE", "TRUNCATE", "TYPE", "TYPES", "UNCOMMITTED", "UNIQUE",
		"UNLOCK", "UNSIGNED", "USAGE", "USE", "VARIABLES", "VIEW",
		"WORK", "WRITE", "YEAR",
	}

	entries := make([]keywordEntry, len(words))
	for i, w := range words {
		entries[i] = keywordEntry{phrase: w}
	}
	return entries
}()

// keywordTable indexes phrases by their first word for longest-match-first
// scanning without walking every phrase.
type keywordTable struct {
	byFirst map[string][]keywordEntry
}

func newKeywordTable(entries []keywordEntry) *keywordTable {
	t := &keywordTable{byFirst: make(map[string][]keywordEntry)}
	for _, e := range entries {
		first, _, _ := strings.Cut(e.phrase, " ")
		t.byFirst[first] = append(t.byFirst[first], e)
	}

	for first, bucket := range t.byFirst {
		sort.SliceStable(bucket, func(i, j int) bool {
			wi := strings.Count(bucket[i].phrase, " ")
			wj := strings.Count(bucket[j].phrase, " ")
			if wi != wj {
				return wi > wj
			}
			return len(bucket[i].phrase) > len(bucket[j].phrase)
		})
		t.byFirst[first] = bucket
	}
	return t
}

var (
	topLevelTable     = newKeywordTable(topLevelKeywords)
	newlineAfterTable = newKeywordTable(newlineAfterKeywords)
	noIndentTable     = newKeywordTable(noIndentKeywords)
	newlineTable      = newKeywordTable(newlineKeywords)
	alterScopeTable   = newKeywordTable(alterScopeKeywords)
	joinTable         = newKeywordTable(joinKeywords)
	plainTable        = newKeywordTable(plainKeywords)
)

// match returns the matched input length and entry for the longest phrase
// starting at input, or ok=false when nothing in the table matches.
func (t *keywordTable) match(input string) (int, keywordEntry, bool) {
	first := leadingWordUpper(input)
	if first == "" {
		return 0, keywordEntry{}, false
	}

	for _, e := range t.byFirst[first] {
		if n := matchPhrase(input, e.phrase); n > 0 {
			return n, e, true
		}
	}
	return 0, keywordEntry{}, false
}

// leadingWordUpper extracts the upper-cased ASCII word at the start of input.
func leadingWordUpper(input string) string {
	end := 0
	for end < len(input) {
		c := input[end]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if (c < 'A' || c > 'Z') && c != '_' {
			break
		}
		end++
	}
	if end == 0 {
		return ""
	}
	return strings.ToUpper(input[:end])
}

// matchPhrase matches phrase case-insensitively at the start of input. Each
// single space in the phrase matches a run of whitespace; the match must end
// at a word boundary. Returns the number of input bytes consumed, 0 on fail.
func matchPhrase(input, phrase string) int {
	pos := 0
	for i := 0; i < len(phrase); i++ {
		if phrase[i] == ' ' {
			start := pos
			for pos < len(input) && isSpaceByte(input[pos]) {
				pos++
			}
			if pos == start {
				return 0
			}
			continue
		}

		if pos >= len(input) || asciiUpper(input[pos]) != phrase[i] {
			return 0
		}
		pos++
	}

	// Word boundary: a phrase ending in a word character must not run into
	// another word character ("SELECTION" is not "SELECT").
	if isWordByteEnd(phrase[len(phrase)-1]) && pos < len(input) && isWordContinuation(input, pos) {
		return 0
	}
	return pos
}

func asciiUpper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

func isSpaceByte(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func isWordByteEnd(c byte) bool {
	return c == '_' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}
