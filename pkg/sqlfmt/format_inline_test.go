package sqlfmt_test

import (
	"testing"

	. "github.com/pseudomuto/sqlfmt/pkg/sqlfmt"
	"github.com/stretchr/testify/require"
)

func TestFormat_ArgumentInlining(t *testing.T) {
	query := lines(
		"SELECT",
		"  a,",
		"  b,",
		"  c,",
		"  d,",
		"  e,",
		"  f,",
		"  g,",
		"  h",
		"FROM foo;",
	)

	t.Run("arguments only", func(t *testing.T) {
		options := Defaults
		options.MaxInlineArguments = 50

		require.Equal(t, lines(
			"SELECT",
			"  a, b, c, d, e, f, g, h",
			"FROM",
			"  foo;",
		), Format(query, nil, options))
	})

	t.Run("arguments and top level", func(t *testing.T) {
		options := Defaults
		options.MaxInlineArguments = 50
		options.MaxInlineTopLevel = 50

		require.Equal(t, lines(
			"SELECT a, b, c, d, e, f, g, h",
			"FROM foo;",
		), Format(query, nil, options))
	})

	t.Run("arguments wider than the top level ceiling", func(t *testing.T) {
		options := Defaults
		options.MaxInlineArguments = 50
		options.MaxInlineTopLevel = 20

		require.Equal(t, lines(
			"SELECT",
			"  a, b, c, d, e, f, g, h",
			"FROM foo;",
		), Format(query, nil, options))
	})
}

func TestFormat_InlineSingleBlockArgument(t *testing.T) {
	query := "SELECT a, b, c FROM ( SELECT (e+f) AS a, (m+o) AS b FROM d) WHERE (a != b) OR (c IS NULL AND a == b)"

	options := Defaults
	options.MaxInlineArguments = 10
	options.MaxInlineTopLevel = 20

	require.Equal(t, lines(
		"SELECT a, b, c",
		"FROM (",
		"  SELECT",
		"    (e + f) AS a,",
		"    (m + o) AS b",
		"  FROM d",
		")",
		"WHERE",
		"  (a != b)",
		"  OR (",
		"    c IS NULL",
		"    AND a == b",
		"  )",
	), Format(query, nil, options))
}

func TestFormat_ComplexWhereInline(t *testing.T) {
	query := lines(
		"SELECT * FROM foo WHERE Column1 = 'testing'",
		"AND ( (Column2 = Column3 OR Column4 >= NOW()) );",
	)

	options := Defaults
	options.MaxInlineArguments = 100

	require.Equal(t, lines(
		"SELECT",
		"  *",
		"FROM",
		"  foo",
		"WHERE",
		"  Column1 = 'testing' AND ((Column2 = Column3 OR Column4 >= NOW()));",
	), Format(query, nil, options))
}

func TestFormat_NestedSelectFolding(t *testing.T) {
	t.Run("with clauses fold while the final select does not", func(t *testing.T) {
		query := "WITH a AS ( SELECT a, b, c FROM t WHERE a > 100 ), aa AS ( SELECT field FROM table ) SELECT b, field FROM a, aa;"

		options := Defaults
		options.MaxInlineArguments = 10
		options.MaxInlineTopLevel = 9

		require.Equal(t, lines(
			"WITH",
			"a AS (",
			"  SELECT a, b, c",
			"  FROM t",
			"  WHERE a > 100",
			"),",
			"aa AS (",
			"  SELECT field",
			"  FROM table",
			")",
			"SELECT",
			"  b, field",
			"FROM a, aa;",
		), Format(query, nil, options))
	})

	t.Run("short with stays on one line", func(t *testing.T) {
		query := "WITH a AS ( SELECT a, b, c FROM t WHERE a > 100 ) SELECT b, field FROM a, aa;"

		options := Defaults
		options.MaxInlineBlock = 80
		options.MaxInlineArguments = 80
		options.MaxInlineTopLevel = 80
		options.JoinsAsTopLevel = true

		require.Equal(t, lines(
			"WITH a AS (SELECT a, b, c FROM t WHERE a > 100)",
			"SELECT b, field",
			"FROM a, aa;",
		), Format(query, nil, options))
	})

	t.Run("nested blocks break under a tight ceiling", func(t *testing.T) {
		query := lines(
			"WITH a AS ( SELECT a, b, c FROM t WHERE a > 100 ), aa AS ( SELECT field FROM table ),",
			"            bb AS ( SELECT count(*) as c FROM d ), cc AS ( INSERT INTO C (a, b, c, d) VALUES (1 ,2 ,3 ,4) )",
			"        SELECT b, field FROM a, aa;",
		)

		options := Defaults
		options.MaxInlineBlock = 20
		options.MaxInlineArguments = 20
		options.MaxInlineTopLevel = 10
		options.JoinsAsTopLevel = true

		require.Equal(t, lines(
			"WITH",
			"a AS (",
			"  SELECT a, b, c",
			"  FROM t",
			"  WHERE a > 100",
			"),",
			"aa AS (",
			"  SELECT field",
			"  FROM table",
			"),",
			"bb AS (",
			"  SELECT",
			"    count(*) as c",
			"  FROM d",
			"),",
			"cc AS (",
			"  INSERT INTO",
			"    C (a, b, c, d)",
			"  VALUES",
			"    (1, 2, 3, 4)",
			")",
			"SELECT b, field",
			"FROM a, aa;",
		), Format(query, nil, options))
	})
}

func TestFormat_BlocksInlineOrNot(t *testing.T) {
	query := lines(
		" UPDATE t",
		"",
		"",
		"        SET o = ($5 + $6 + $7 + $8),a = CASE WHEN $2",
		"            THEN NULL ELSE COALESCE($3, b) END, b = CASE WHEN $4 THEN NULL ELSE",
		"            COALESCE($5, b) END, s = (SELECT true FROM bar WHERE bar.foo = $99 AND bar.foo > $100),",
		"            c = CASE WHEN $6 THEN NULL ELSE COALESCE($7, c) END,",
		"            d = CASE WHEN $8 THEN NULL ELSE COALESCE($9, dddddddd) + bbbbb END,",
		"            e = (SELECT true FROM bar) WHERE id = $1",
	)

	options := Defaults
	options.MaxInlineBlock = 60
	options.MaxInlineArguments = 60
	options.MaxInlineTopLevel = 60

	require.Equal(t, lines(
		"UPDATE t SET",
		"  o = ($5 + $6 + $7 + $8),",
		"  a = CASE WHEN $2 THEN NULL ELSE COALESCE($3, b) END,",
		"  b = CASE WHEN $4 THEN NULL ELSE COALESCE($5, b) END,",
		"  s = (",
		"    SELECT true",
		"    FROM bar",
		"    WHERE bar.foo = $99",
		"      AND bar.foo > $100",
		"  ),",
		"  c = CASE WHEN $6 THEN NULL ELSE COALESCE($7, c) END,",
		"  d = CASE",
		"    WHEN $8 THEN NULL",
		"    ELSE COALESCE($9, dddddddd) + bbbbb",
		"  END,",
		"  e = (SELECT true FROM bar)",
		"WHERE id = $1",
	), Format(query, nil, options))
}

func TestFormat_CaseInsideOrderBy(t *testing.T) {
	query := "SELECT a, created_at FROM b ORDER BY (CASE $3 WHEN 'created_at_asc' THEN created_at END) ASC, (CASE $3 WHEN 'created_at_desc' THEN created_at END) DESC;"

	options := Defaults
	options.MaxInlineBlock = 80
	options.MaxInlineArguments = 80

	require.Equal(t, lines(
		"SELECT",
		"  a, created_at",
		"FROM",
		"  b",
		"ORDER BY",
		"  (CASE $3 WHEN 'created_at_asc' THEN created_at END) ASC,",
		"  (CASE $3 WHEN 'created_at_desc' THEN created_at END) DESC;",
	), Format(query, nil, options))
}
