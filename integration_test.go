package securesql

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcmysql "github.com/testcontainers/testcontainers-go/modules/mysql"

	"github.com/biyonik/go-secure-sql/schema"
)

// startMySQL runs a throwaway MySQL container. The test is skipped unless
// SECURESQL_MYSQL_IT=1, since it needs a container runtime.
func startMySQL(t *testing.T) *sql.DB {
	t.Helper()
	if os.Getenv("SECURESQL_MYSQL_IT") != "1" {
		t.Skip("set SECURESQL_MYSQL_IT=1 to run MySQL integration tests")
	}

	ctx := context.Background()
	container, err := tcmysql.Run(ctx,
		"mysql:8.4",
		tcmysql.WithDatabase("securesql"),
		tcmysql.WithUsername("securesql"),
		tcmysql.WithPassword("securesql"),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	dsn, err := container.ConnectionString(ctx, "parseTime=true", "multiStatements=false")
	require.NoError(t, err)

	db, err := sql.Open("mysql", dsn)
	require.NoError(t, err)
	require.NoError(t, db.PingContext(ctx))
	return db
}

func TestMySQLIntegration(t *testing.T) {
	db := startMySQL(t)
	ctx := context.Background()

	b := New(WithExecutor(NewSQLExecutor(db, Positional)))
	t.Cleanup(func() { _ = b.Close() })

	accounts := schema.NewTable("accounts").
		AddFields(
			schema.NewField("id").BigInt().Unsigned().PrimaryKeyAutoIncrement(),
			schema.NewField("email").Email().NotNull().Unique(),
			schema.NewField("balance").Money().NotNull().Default("0"),
			schema.NewField("created_at").Timestamp().CurrentTimestamp(),
		).
		Engine("InnoDB").
		Charset("utf8mb4")

	stmts, err := accounts.Statements()
	require.NoError(t, err)
	for _, stmt := range stmts {
		_, err := b.SetQuery(stmt).Execute(ctx)
		require.NoError(t, err, stmt)
	}

	res, err := b.Insert("accounts", Set("email", "ada@example.com"), Set("balance", "10.50")).Execute(ctx)
	require.NoError(t, err)
	require.True(t, res.HasInsertID)
	adaID := res.LastInsertID

	_, err = b.Insert("accounts", Set("email", "ada@example.com")).Execute(ctx)
	var dae *DataAccessError
	require.ErrorAs(t, err, &dae)
	assert.Equal(t, uint16(1062), dae.Number)
	assert.Equal(t, "23000", dae.SQLState)

	err = b.Transaction(ctx, func(qb *QueryBuilder) error {
		_, err := qb.Update("accounts", Set("balance", "99.99")).Where(Eq("id", adaID)).Execute(ctx)
		return err
	})
	require.NoError(t, err)

	res, err = b.SelectColumns("id", "email", "balance", "created_at").From("accounts").
		Where(Eq("id", adaID)).
		Execute(ctx)
	require.NoError(t, err)

	var got struct {
		ID      int64   `db:"id"`
		Email   string  `db:"email"`
		Balance float64 `db:"balance"`
	}
	require.NoError(t, res.Decode(&got))
	assert.Equal(t, adaID, got.ID)
	assert.Equal(t, "ada@example.com", got.Email)
	assert.InDelta(t, 99.99, got.Balance, 0.001)

	drop, err := accounts.DropTableStatement()
	require.NoError(t, err)
	_, err = b.SetQuery(drop).Execute(ctx)
	require.NoError(t, err)
}
