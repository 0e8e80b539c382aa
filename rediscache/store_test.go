package rediscache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	securesql "github.com/biyonik/go-secure-sql"
)

// newClient connects to SECURESQL_REDIS_ADDR or skips the test.
func newClient(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("SECURESQL_REDIS_ADDR")
	if addr == "" {
		t.Skip("set SECURESQL_REDIS_ADDR to run redis tests")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(context.Background()).Err())
	return client
}

func TestNew_Defaults(t *testing.T) {
	s := New(nil)
	assert.Equal(t, DefaultPrefix, s.prefix)
	assert.Zero(t, s.ttl)

	s = New(nil, WithPrefix("app:"), WithTTL(time.Minute), WithTTL(-1))
	assert.Equal(t, "app:", s.prefix)
	assert.Equal(t, time.Minute, s.ttl)
	assert.Equal(t, "app:abc", s.key("abc"))
}

func TestStore_RoundTrip(t *testing.T) {
	client := newClient(t)
	ctx := context.Background()
	s := New(client, WithPrefix("securesql-test:"), WithTTL(time.Minute))

	key := securesql.CacheKey("SELECT * FROM `users` WHERE `id` = :param0", securesql.Params{"param0": 1})
	t.Cleanup(func() { _ = s.Delete(ctx, key) })

	_, ok, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	in := &securesql.Result{
		Kind: securesql.KindSelect,
		Rows: []securesql.Row{{"id": int64(1), "name": "Ada"}},
		OK:   true,
	}
	require.NoError(t, s.Set(ctx, key, in))

	out, ok, err := s.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, securesql.KindSelect, out.Kind)
	assert.Equal(t, 1, out.Len())

	var user struct {
		ID   int64  `db:"id"`
		Name string `db:"name"`
	}
	require.NoError(t, out.Decode(&user))
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "Ada", user.Name)

	ttl, err := client.TTL(ctx, s.key(key)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}

func TestStore_WithBuilder(t *testing.T) {
	client := newClient(t)
	ctx := context.Background()
	s := New(client, WithPrefix("securesql-test:"))

	exec := &countingExecutor{rows: []securesql.Row{{"n": int64(7)}}}
	qb := securesql.New(securesql.WithExecutor(exec), securesql.WithCache(s))

	sql, params, err := qb.Select("n").From("numbers").ToSQL()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Delete(ctx, securesql.CacheKey(sql, params)) })

	_, err = qb.ExecuteCached(ctx)
	require.NoError(t, err)

	res, err := qb.Select("n").From("numbers").ExecuteCached(ctx)
	require.NoError(t, err)
	assert.True(t, res.Cached)
	assert.Equal(t, 1, exec.queries)
}

func TestStore_ClientError(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 50 * time.Millisecond})
	defer client.Close()
	s := New(client)

	_, ok, err := s.Get(context.Background(), "k")
	require.Error(t, err)
	assert.False(t, ok)
	assert.False(t, errors.Is(err, redis.Nil))

	assert.Error(t, s.Set(context.Background(), "k", &securesql.Result{}))
	assert.NoError(t, s.Set(context.Background(), "k", nil))
}

// countingExecutor serves a fixed row set and counts queries.
type countingExecutor struct {
	rows    []securesql.Row
	queries int
}

func (e *countingExecutor) Query(context.Context, string, securesql.Params) ([]securesql.Row, error) {
	e.queries++
	return e.rows, nil
}

func (e *countingExecutor) Insert(context.Context, string, securesql.Params) (int64, bool, error) {
	return 0, false, nil
}

func (e *countingExecutor) Exec(context.Context, string, securesql.Params) (int64, error) {
	return 0, nil
}

func (e *countingExecutor) ExecDDL(context.Context, string) error { return nil }
func (e *countingExecutor) Begin(context.Context) error           { return nil }
func (e *countingExecutor) Commit(context.Context) error          { return nil }
func (e *countingExecutor) Rollback(context.Context) error        { return nil }
