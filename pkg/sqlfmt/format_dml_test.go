package sqlfmt_test

import (
	"testing"

	. "github.com/pseudomuto/sqlfmt/pkg/sqlfmt"
	"github.com/stretchr/testify/require"
)

func TestFormat_SetSchema(t *testing.T) {
	require.Equal(t, lines(
		"SET SCHEMA",
		"  schema1;",
		"SET CURRENT SCHEMA",
		"  schema2;",
	), Format("SET SCHEMA schema1; SET CURRENT SCHEMA schema2;", nil, Defaults))
}

func TestFormat_Insert(t *testing.T) {
	t.Run("simple", func(t *testing.T) {
		query := "INSERT INTO Customers (ID, MoneyBalance, Address, City) VALUES (12,-123.4, 'Skagen 2111','Stv');"

		require.Equal(t, lines(
			"INSERT INTO",
			"  Customers (ID, MoneyBalance, Address, City)",
			"VALUES",
			"  (12, -123.4, 'Skagen 2111', 'Stv');",
		), Format(query, nil, Defaults))
	})

	t.Run("without into", func(t *testing.T) {
		query := "INSERT Customers (ID, MoneyBalance, Address, City) VALUES (12,-123.4, 'Skagen 2111','Stv');"

		require.Equal(t, lines(
			"INSERT",
			"  Customers (ID, MoneyBalance, Address, City)",
			"VALUES",
			"  (12, -123.4, 'Skagen 2111', 'Stv');",
		), Format(query, nil, Defaults))
	})

	t.Run("complex with folding", func(t *testing.T) {
		query := "\n INSERT INTO t(id, a, min, max) SELECT input.id, input.a, input.min, input.max FROM ( SELECT id, a, min, max FROM foo WHERE a IN ('a', 'b') ) AS input WHERE (SELECT true FROM condition) ON CONFLICT ON CONSTRAINT a_id_key DO UPDATE SET id = EXCLUDED.id, a = EXCLUDED.severity, min = EXCLUDED.min, max = EXCLUDED.max RETURNING *; "

		options := Defaults
		options.MaxInlineBlock = 50
		options.MaxInlineArguments = 50
		options.MaxInlineTopLevel = 50

		require.Equal(t, lines(
			"INSERT INTO t(id, a, min, max)",
			"SELECT input.id, input.a, input.min, input.max",
			"FROM (",
			"  SELECT id, a, min, max",
			"  FROM foo",
			"  WHERE a IN ('a', 'b')",
			") AS input",
			"WHERE (SELECT true FROM condition)",
			"ON CONFLICT ON CONSTRAINT a_id_key DO UPDATE SET",
			"  id = EXCLUDED.id,",
			"  a = EXCLUDED.severity,",
			"  min = EXCLUDED.min,",
			"  max = EXCLUDED.max",
			"RETURNING *;",
		), Format(query, nil, options))
	})
}

func TestFormat_ParenthesizedLists(t *testing.T) {
	query := lines(
		"INSERT INTO some_table (id_product, id_shop, id_currency, id_country, id_registration) (",
		"SELECT IF (dq.id_discounter_shopping = 2, dq.value, dq.value / 100),",
		"IF (dq.id_discounter_shopping = 2, 'amount', 'percentage') FROM foo);",
	)

	t.Run("long lists break to multiple lines", func(t *testing.T) {
		input := lines(
			"INSERT INTO some_table (id_product, id_shop, id_currency, id_country, id_registration) (",
			"SELECT IF(dq.id_discounter_shopping = 2, dq.value, dq.value / 100),",
			"IF (dq.id_discounter_shopping = 2, 'amount', 'percentage') FROM foo);",
		)

		require.Equal(t, lines(
			"INSERT INTO",
			"  some_table (",
			"    id_product,",
			"    id_shop,",
			"    id_currency,",
			"    id_country,",
			"    id_registration",
			"  ) (",
			"    SELECT",
			"      IF (",
			"        dq.id_discounter_shopping = 2,",
			"        dq.value,",
			"        dq.value / 100",
			"      ),",
			"      IF (",
			"        dq.id_discounter_shopping = 2,",
			"        'amount',",
			"        'percentage'",
			"      )",
			"    FROM",
			"      foo",
			"  );",
		), Format(input, nil, Defaults))
	})

	t.Run("raised block ceiling keeps them inline", func(t *testing.T) {
		options := Defaults
		options.MaxInlineBlock = 100

		require.Equal(t, lines(
			"INSERT INTO",
			"  some_table (id_product, id_shop, id_currency, id_country, id_registration) (",
			"    SELECT",
			"      IF (dq.id_discounter_shopping = 2, dq.value, dq.value / 100),",
			"      IF (dq.id_discounter_shopping = 2, 'amount', 'percentage')",
			"    FROM",
			"      foo",
			"  );",
		), Format(query, nil, options))
	})
}

func TestFormat_Update(t *testing.T) {
	query := "UPDATE Customers SET ContactName='Alfred Schmidt', City='Hamburg' WHERE CustomerName='Alfreds Futterkiste';"

	t.Run("simple", func(t *testing.T) {
		require.Equal(t, lines(
			"UPDATE",
			"  Customers",
			"SET",
			"  ContactName = 'Alfred Schmidt',",
			"  City = 'Hamburg'",
			"WHERE",
			"  CustomerName = 'Alfreds Futterkiste';",
		), Format(query, nil, Defaults))
	})

	t.Run("inlining set", func(t *testing.T) {
		options := Defaults
		options.MaxInlineTopLevel = 20
		options.MaxInlineArguments = 10

		require.Equal(t, lines(
			"UPDATE Customers SET",
			"  ContactName = 'Alfred Schmidt',",
			"  City = 'Hamburg'",
			"WHERE",
			"  CustomerName = 'Alfreds Futterkiste';",
		), Format(query, nil, options))
	})

	t.Run("with subquery source", func(t *testing.T) {
		input := "UPDATE customers SET total_orders = order_summary.total  FROM ( SELECT * FROM bank) AS order_summary"

		require.Equal(t, lines(
			"UPDATE",
			"  customers",
			"SET",
			"  total_orders = order_summary.total",
			"FROM",
			"  (",
			"    SELECT",
			"      *",
			"    FROM",
			"      bank",
			"  ) AS order_summary",
		), Format(input, nil, Defaults))
	})

	t.Run("inline mode collapses to one line", func(t *testing.T) {
		input := lines(
			"UPDATE",
			"  customers",
			"SET",
			"  total_orders = order_summary.total",
			"FROM",
			"  (",
			"    SELECT",
			"      *",
			"    FROM",
			"      bank",
			"  ) AS order_summary",
		)

		options := Defaults
		options.Inline = true

		require.Equal(t,
			"UPDATE customers SET total_orders = order_summary.total FROM ( SELECT * FROM bank ) AS order_summary",
			Format(input, nil, options),
		)
	})
}

func TestFormat_Delete(t *testing.T) {
	t.Run("simple", func(t *testing.T) {
		require.Equal(t, lines(
			"DELETE FROM",
			"  Customers",
			"WHERE",
			"  CustomerName = 'Alfred'",
			"  AND Phone = 5002132;",
		), Format("DELETE FROM Customers WHERE CustomerName='Alfred' AND Phone=5002132;", nil, Defaults))
	})

	t.Run("with using", func(t *testing.T) {
		query := "DELETE FROM Customers USING Phonebook WHERE CustomerName='Alfred' AND Phone=5002132;"

		require.Equal(t, lines(
			"DELETE FROM",
			"  Customers",
			"USING",
			"  Phonebook",
			"WHERE",
			"  CustomerName = 'Alfred'",
			"  AND Phone = 5002132;",
		), Format(query, nil, Defaults))
	})
}

func TestFormat_Drop(t *testing.T) {
	t.Run("simple", func(t *testing.T) {
		require.Equal(t, lines(
			"DROP TABLE IF EXISTS",
			"  admin_role;",
		), Format("DROP TABLE IF EXISTS admin_role;", nil, Defaults))
	})

	t.Run("multiple drop index statements", func(t *testing.T) {
		query := lines(
			"DROP INDEX IF EXISTS idx_a;",
			"DROP INDEX IF EXISTS idx_b;",
			"",
		)

		require.Equal(t, lines(
			"DROP INDEX IF EXISTS",
			"  idx_a;",
			"DROP INDEX IF EXISTS",
			"  idx_b;",
		), Format(query, nil, Defaults))
	})

	t.Run("leading comment", func(t *testing.T) {
		query := lines(
			"-- comment",
			`DROP TABLE IF EXISTS "public"."table_name";`,
			"",
		)

		require.Equal(t, lines(
			"-- comment",
			"DROP TABLE IF EXISTS",
			`  "public"."table_name";`,
		), Format(query, nil, Defaults))
	})
}

func TestFormat_AlterTable(t *testing.T) {
	t.Run("modify", func(t *testing.T) {
		require.Equal(t, lines(
			"ALTER TABLE",
			"  supplier",
			"MODIFY",
			"  supplier_name char(100) NOT NULL;",
		), Format("ALTER TABLE supplier MODIFY supplier_name char(100) NOT NULL;", nil, Defaults))
	})

	t.Run("alter column", func(t *testing.T) {
		require.Equal(t, lines(
			"ALTER TABLE",
			"  supplier",
			"  ALTER COLUMN supplier_name VARCHAR(100) NOT NULL;",
		), Format("ALTER TABLE supplier ALTER COLUMN supplier_name VARCHAR(100) NOT NULL;", nil, Defaults))
	})

	t.Run("drop and add constraint", func(t *testing.T) {
		query := lines(
			`ALTER TABLE "public"."event" DROP CONSTRAINT "validate_date", ADD CONSTRAINT "validate_date" CHECK (end_date IS NULL`,
			"            OR (start_date IS NOT NULL AND end_date > start_date));",
		)

		require.Equal(t, lines(
			"ALTER TABLE",
			`  "public"."event"`,
			`  DROP CONSTRAINT "validate_date",`,
			`  ADD CONSTRAINT "validate_date" CHECK (`,
			"    end_date IS NULL",
			"    OR (",
			"      start_date IS NOT NULL",
			"      AND end_date > start_date",
			"    )",
			"  );",
		), Format(query, nil, Defaults))
	})
}

func TestFormat_CreateTable(t *testing.T) {
	t.Run("after another statement", func(t *testing.T) {
		query := lines(
			"SELECT * FROM test;",
			"CREATE TABLE TEST(id NUMBER NOT NULL, col1 VARCHAR2(20), col2 VARCHAR2(20));",
			"",
		)

		require.Equal(t, lines(
			"SELECT",
			"  *",
			"FROM",
			"  test;",
			"CREATE TABLE TEST(",
			"  id NUMBER NOT NULL,",
			"  col1 VARCHAR2(20),",
			"  col2 VARCHAR2(20)",
			");",
		), Format(query, nil, Defaults))
	})

	t.Run("short column list stays inline", func(t *testing.T) {
		query := "CREATE TABLE items (a INT PRIMARY KEY, b TEXT);"
		require.Equal(t, query, Format(query, nil, Defaults))
	})

	t.Run("long column list breaks", func(t *testing.T) {
		query := "CREATE TABLE items (a INT PRIMARY KEY, b TEXT, c INT NOT NULL, d INT NOT NULL);"

		require.Equal(t, lines(
			"CREATE TABLE items (",
			"  a INT PRIMARY KEY,",
			"  b TEXT,",
			"  c INT NOT NULL,",
			"  d INT NOT NULL",
			");",
		), Format(query, nil, Defaults))
	})

	t.Run("on update keeps referential action inline", func(t *testing.T) {
		query := "CREATE TABLE a (b integer REFERENCES c (id) ON                                     UPDATE RESTRICT, other integer);"

		require.Equal(t, lines(
			"CREATE TABLE a (",
			"  b integer REFERENCES c (id) ON UPDATE RESTRICT,",
			"  other integer",
			");",
		), Format(query, nil, Defaults))
	})
}

func TestFormat_Returning(t *testing.T) {
	query := lines(
		"INSERT INTO",
		"  users (name, email)",
		"VALUES",
		"  ($1, $2) RETURNING name,",
		"  email",
	)

	require.Equal(t, lines(
		"INSERT INTO",
		"  users (name, email)",
		"VALUES",
		"  ($1, $2)",
		"RETURNING",
		"  name,",
		"  email",
	), Format(query, nil, Defaults))
}

func TestFormat_DollarQuoting(t *testing.T) {
	t.Run("double dollar signs stay together", func(t *testing.T) {
		query := "CREATE FUNCTION abc() AS $$ SELECT * FROM table $$ LANGUAGE plpgsql;"

		require.Equal(t, lines(
			"CREATE FUNCTION abc() AS",
			"$$",
			"SELECT",
			"  *",
			"FROM",
			"  table",
			"$$",
			"LANGUAGE plpgsql;",
		), Format(query, nil, Defaults))
	})

	t.Run("plpgsql body", func(t *testing.T) {
		query := "CREATE FUNCTION abc() AS $$ DECLARE a int := 1; b int := 2; BEGIN SELECT * FROM table $$ LANGUAGE plpgsql;"

		require.Equal(t, lines(
			"CREATE FUNCTION abc() AS",
			"$$",
			"DECLARE",
			"a int := 1;",
			"b int := 2;",
			"BEGIN",
			"SELECT",
			"  *",
			"FROM",
			"  table",
			"$$",
			"LANGUAGE plpgsql;",
		), Format(query, nil, Defaults))
	})
}
