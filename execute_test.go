package securesql

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biyonik/go-secure-sql/schema"
)

// fakeExecutor records every call and returns canned results.
type fakeExecutor struct {
	calls      []string
	statements []string
	params     []Params

	rows     []Row
	id       int64
	idOK     bool
	affected int64
	err      error

	beginErr    error
	commitErr   error
	rollbackErr error
	closed      bool
}

func (f *fakeExecutor) record(call, statement string, params Params) {
	f.calls = append(f.calls, call)
	f.statements = append(f.statements, statement)
	f.params = append(f.params, params)
}

func (f *fakeExecutor) Query(_ context.Context, statement string, params Params) ([]Row, error) {
	f.record("query", statement, params)
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func (f *fakeExecutor) Insert(_ context.Context, statement string, params Params) (int64, bool, error) {
	f.record("insert", statement, params)
	if f.err != nil {
		return 0, false, f.err
	}
	return f.id, f.idOK, nil
}

func (f *fakeExecutor) Exec(_ context.Context, statement string, params Params) (int64, error) {
	f.record("exec", statement, params)
	if f.err != nil {
		return 0, f.err
	}
	return f.affected, nil
}

func (f *fakeExecutor) ExecDDL(_ context.Context, statement string) error {
	f.record("ddl", statement, nil)
	return f.err
}

func (f *fakeExecutor) Begin(context.Context) error {
	f.calls = append(f.calls, "begin")
	return f.beginErr
}

func (f *fakeExecutor) Commit(context.Context) error {
	f.calls = append(f.calls, "commit")
	return f.commitErr
}

func (f *fakeExecutor) Rollback(context.Context) error {
	f.calls = append(f.calls, "rollback")
	return f.rollbackErr
}

func (f *fakeExecutor) Close() error {
	f.closed = true
	return nil
}

// recordingLogger keeps every entry.
type recordingLogger struct {
	entries []Entry
}

func (l *recordingLogger) Log(e Entry) {
	l.entries = append(l.entries, e)
}

func TestExecute_Dispatch(t *testing.T) {
	ctx := context.Background()
	users := schema.NewTable("users").AddField(schema.NewField("id").Integer().PrimaryKey())

	tests := []struct {
		name     string
		build    func(b *QueryBuilder) *QueryBuilder
		wantCall string
		check    func(t *testing.T, res *Result)
	}{
		{
			name:     "select",
			build:    func(b *QueryBuilder) *QueryBuilder { return b.Select("a", "b").From("t") },
			wantCall: "query",
			check: func(t *testing.T, res *Result) {
				assert.Equal(t, KindSelect, res.Kind)
				assert.Equal(t, 1, res.Len())
			},
		},
		{
			name:     "insert",
			build:    func(b *QueryBuilder) *QueryBuilder { return b.Insert("users", Set("name", "Jo")) },
			wantCall: "insert",
			check: func(t *testing.T, res *Result) {
				assert.Equal(t, int64(42), res.LastInsertID)
				assert.True(t, res.HasInsertID)
			},
		},
		{
			name:     "update",
			build:    func(b *QueryBuilder) *QueryBuilder { return b.Update("users", Set("name", "Jo")).Where(Eq("id", 1)) },
			wantCall: "exec",
			check: func(t *testing.T, res *Result) {
				assert.Equal(t, int64(3), res.RowsAffected)
			},
		},
		{
			name:     "create table",
			build:    func(b *QueryBuilder) *QueryBuilder { return b.CreateTable(users) },
			wantCall: "ddl",
			check: func(t *testing.T, res *Result) {
				assert.Equal(t, KindDDL, res.Kind)
			},
		},
		{
			name:     "raw ddl",
			build:    func(b *QueryBuilder) *QueryBuilder { return b.SetQuery("TRUNCATE TABLE t") },
			wantCall: "ddl",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &fakeExecutor{rows: []Row{{"a": 1, "b": 2}}, id: 42, idOK: true, affected: 3}
			b := New(WithExecutor(exec))

			res, err := tt.build(b).Execute(ctx)
			require.NoError(t, err)
			require.Equal(t, []string{tt.wantCall}, exec.calls)
			assert.True(t, res.OK)
			assert.False(t, res.Cached)
			if tt.check != nil {
				tt.check(t, res)
			}
		})
	}
}

func TestExecute_SelectPassesStatementAndEmptyParams(t *testing.T) {
	exec := &fakeExecutor{}
	_, err := New(WithExecutor(exec)).Select("a", "b").From("t").Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "SELECT a, b FROM `t`", exec.statements[0])
	assert.Empty(t, exec.params[0])
}

func TestExecute_ResetsBuilder(t *testing.T) {
	exec := &fakeExecutor{}
	b := New(WithExecutor(exec))

	_, err := b.Select("*").From("t").Where(Eq("a", 1)).Limit(1).Execute(context.Background())
	require.NoError(t, err)
	assert.Empty(t, b.SQL())
	assert.Empty(t, b.Params())

	sql, params, err := b.Select("x").From("u").ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT x FROM `u`", sql)
	assert.Empty(t, params)
}

func TestExecute_ResetsAfterFailure(t *testing.T) {
	exec := &fakeExecutor{err: errors.New("boom")}
	b := New(WithExecutor(exec))

	_, err := b.Insert("t", Set("a", 1)).Execute(context.Background())
	require.Error(t, err)
	assert.Empty(t, b.SQL())
	assert.Empty(t, b.Params())
	assert.NoError(t, b.Err())
}

func TestExecute_MisuseIsReturnedAndCleared(t *testing.T) {
	exec := &fakeExecutor{}
	b := New(WithExecutor(exec))

	_, err := b.Select("*").From("t").AndWhere(Eq("a", 1)).Execute(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrWhereRequired))
	assert.Empty(t, exec.calls)
	assert.NoError(t, b.Err())
}

func TestExecute_NoExecutor(t *testing.T) {
	_, err := New().Select("1").Execute(context.Background())
	assert.ErrorIs(t, err, ErrNoExecutor)
}

func TestExecute_EmptyStatement(t *testing.T) {
	_, err := New(WithExecutor(&fakeExecutor{})).Execute(context.Background())
	assert.ErrorIs(t, err, ErrEmptyStatement)
}

func TestExecute_DataAccessFailure(t *testing.T) {
	cause := errors.New("duplicate entry")
	exec := &fakeExecutor{err: cause}
	b := New(WithExecutor(exec))
	ctx := context.Background()

	require.NoError(t, b.BeginTransaction(ctx))
	_, err := b.Insert("users", Set("email", "a@b.c")).Execute(ctx)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDataAccess)
	assert.ErrorIs(t, err, cause)

	var dae *DataAccessError
	require.ErrorAs(t, err, &dae)
	assert.Equal(t, "insert", dae.Op)
	assert.Equal(t, "INSERT INTO `users` (`email`) VALUES (:param0)", dae.Statement)
	assert.Equal(t, Params{"param0": "a@b.c"}, dae.Params)
	assert.NoError(t, dae.RollbackErr)

	assert.Equal(t, []string{"begin", "insert", "rollback"}, exec.calls)
	assert.False(t, b.InTransaction())
}

func TestExecute_RollbackFailureIsAttached(t *testing.T) {
	exec := &fakeExecutor{err: errors.New("deadlock"), rollbackErr: errors.New("connection lost")}
	b := New(WithExecutor(exec))
	ctx := context.Background()

	require.NoError(t, b.BeginTransaction(ctx))
	_, err := b.Delete("t").Where(Eq("id", 1)).Execute(ctx)

	var dae *DataAccessError
	require.ErrorAs(t, err, &dae)
	require.Error(t, dae.RollbackErr)
	assert.Contains(t, err.Error(), "rollback: ")
	assert.Contains(t, err.Error(), "connection lost")
}

func TestExecute_DDLFailureSkipsRollback(t *testing.T) {
	exec := &fakeExecutor{err: errors.New("table exists")}
	b := New(WithExecutor(exec))
	ctx := context.Background()

	require.NoError(t, b.BeginTransaction(ctx))
	_, err := b.SetQuery("CREATE TABLE t (id INT)").Execute(ctx)

	require.Error(t, err)
	assert.Equal(t, []string{"begin", "ddl"}, exec.calls)
	assert.True(t, b.InTransaction())
}

func TestExecute_NoTransactionNoRollbackCall(t *testing.T) {
	exec := &fakeExecutor{err: errors.New("boom")}
	_, err := New(WithExecutor(exec)).Select("*").From("t").Execute(context.Background())

	require.Error(t, err)
	assert.Equal(t, []string{"query"}, exec.calls)
}

func TestExecuteCached(t *testing.T) {
	exec := &fakeExecutor{rows: []Row{{"id": 1}}}
	cache := NewMemoryCache()
	b := New(WithExecutor(exec), WithCache(cache))
	ctx := context.Background()

	first, err := b.Select("*").From("t").Where(Eq("id", 1)).ExecuteCached(ctx)
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := b.Select("*").From("t").Where(Eq("id", 1)).ExecuteCached(ctx)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Rows, second.Rows)

	_, err = b.Select("*").From("t").Where(Eq("id", 2)).ExecuteCached(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"query", "query"}, exec.calls)
	assert.Equal(t, 2, cache.Len())
	assert.Empty(t, b.SQL(), "a cache hit also resets the builder")
}

func TestExecuteCached_HitsAreIsolated(t *testing.T) {
	exec := &fakeExecutor{rows: []Row{{"id": 1}}}
	b := New(WithExecutor(exec))
	ctx := context.Background()

	first, err := b.Select("id").From("t").ExecuteCached(ctx)
	require.NoError(t, err)
	first.Rows[0]["id"] = 999
	first.Rows = append(first.Rows, Row{"id": 2})

	second, err := b.Select("id").From("t").ExecuteCached(ctx)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, []Row{{"id": 1}}, second.Rows)

	second.Rows[0]["id"] = 500

	third, err := b.Select("id").From("t").ExecuteCached(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Row{{"id": 1}}, third.Rows)
	assert.Equal(t, []string{"query"}, exec.calls)
}

func TestExecuteCached_OnlySelects(t *testing.T) {
	exec := &fakeExecutor{affected: 1}
	cache := NewMemoryCache()
	b := New(WithExecutor(exec), WithCache(cache))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := b.Update("t", Set("a", 1)).Where(Eq("id", 1)).ExecuteCached(ctx)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"exec", "exec"}, exec.calls)
	assert.Equal(t, 0, cache.Len())
}

func TestExecute_DoesNotUseCache(t *testing.T) {
	exec := &fakeExecutor{}
	b := New(WithExecutor(exec))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := b.Select("*").From("t").Execute(ctx)
		require.NoError(t, err)
	}
	assert.Len(t, exec.calls, 2)
}

// failingCache always errors.
type failingCache struct{ sets int }

func (c *failingCache) Get(context.Context, string) (*Result, bool, error) {
	return nil, false, errors.New("cache down")
}

func (c *failingCache) Set(context.Context, string, *Result) error {
	c.sets++
	return errors.New("cache down")
}

func TestExecuteCached_CacheErrorsAreMisses(t *testing.T) {
	exec := &fakeExecutor{rows: []Row{{"id": 1}}}
	cache := &failingCache{}
	b := New(WithExecutor(exec), WithCache(cache))

	res, err := b.Select("*").From("t").ExecuteCached(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Len())
	assert.Equal(t, 1, cache.sets)
}

func TestExecute_Logs(t *testing.T) {
	exec := &fakeExecutor{}
	logger := &recordingLogger{}
	b := New(WithExecutor(exec), WithLogger(logger))
	ctx := context.Background()

	_, err := b.Insert("t", Set("a", 1)).Execute(ctx)
	require.NoError(t, err)

	exec.err = errors.New("boom")
	_, err = b.Select("*").From("t").Execute(ctx)
	require.Error(t, err)

	require.Len(t, logger.entries, 2)
	assert.Equal(t, KindInsert, logger.entries[0].Kind)
	assert.Equal(t, "INSERT INTO `t` (`a`) VALUES (:param0)", logger.entries[0].Statement)
	assert.Equal(t, Params{"param0": 1}, logger.entries[0].Params)
	assert.NoError(t, logger.entries[0].Err)

	assert.Equal(t, KindSelect, logger.entries[1].Kind)
	assert.ErrorIs(t, logger.entries[1].Err, ErrDataAccess)
}

func TestClose(t *testing.T) {
	exec := &fakeExecutor{}
	require.NoError(t, New(WithExecutor(exec)).Close())
	assert.True(t, exec.closed)

	assert.NoError(t, New().Close())
}
