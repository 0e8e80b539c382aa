package securesql

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransaction_Flag(t *testing.T) {
	ctx := context.Background()
	exec := &fakeExecutor{}
	b := New(WithExecutor(exec))

	require.NoError(t, b.BeginTransaction(ctx))
	assert.True(t, b.InTransaction())

	require.NoError(t, b.BeginTransaction(ctx))
	require.NoError(t, b.Commit(ctx))
	assert.False(t, b.InTransaction())

	require.NoError(t, b.Commit(ctx))
	require.NoError(t, b.Rollback(ctx))

	assert.Equal(t, []string{"begin", "commit"}, exec.calls)
}

func TestTransaction_BeginWithoutExecutor(t *testing.T) {
	err := New().BeginTransaction(context.Background())
	assert.ErrorIs(t, err, ErrNoExecutor)
}

func TestTransaction_BeginFailure(t *testing.T) {
	exec := &fakeExecutor{beginErr: errors.New("too many connections")}
	b := New(WithExecutor(exec))

	err := b.BeginTransaction(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDataAccess)
	assert.False(t, b.InTransaction())
}

func TestTransaction_CommitFailureClearsFlag(t *testing.T) {
	ctx := context.Background()
	exec := &fakeExecutor{commitErr: errors.New("lost")}
	b := New(WithExecutor(exec))

	require.NoError(t, b.BeginTransaction(ctx))
	err := b.Commit(ctx)

	var dae *DataAccessError
	require.ErrorAs(t, err, &dae)
	assert.Equal(t, "commit transaction", dae.Op)
	assert.False(t, b.InTransaction())
}

func TestTransaction_Commits(t *testing.T) {
	exec := &fakeExecutor{affected: 1}
	b := New(WithExecutor(exec))
	ctx := context.Background()

	err := b.Transaction(ctx, func(qb *QueryBuilder) error {
		_, err := qb.Update("accounts", Set("balance", 90)).Where(Eq("id", 1)).Execute(ctx)
		return err
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"begin", "exec", "commit"}, exec.calls)
	assert.False(t, b.InTransaction())
}

func TestTransaction_RollsBackOnError(t *testing.T) {
	exec := &fakeExecutor{}
	b := New(WithExecutor(exec))
	sentinel := errors.New("insufficient funds")

	err := b.Transaction(context.Background(), func(*QueryBuilder) error {
		return sentinel
	})

	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, []string{"begin", "rollback"}, exec.calls)
}

func TestTransaction_RollbackErrorWins(t *testing.T) {
	exec := &fakeExecutor{rollbackErr: errors.New("gone")}
	b := New(WithExecutor(exec))

	err := b.Transaction(context.Background(), func(*QueryBuilder) error {
		return errors.New("fn failed")
	})

	var dae *DataAccessError
	require.ErrorAs(t, err, &dae)
	assert.Equal(t, "rollback transaction", dae.Op)
}

func TestTransaction_RollsBackOnPanic(t *testing.T) {
	exec := &fakeExecutor{}
	b := New(WithExecutor(exec))

	assert.PanicsWithValue(t, "boom", func() {
		_ = b.Transaction(context.Background(), func(*QueryBuilder) error {
			panic("boom")
		})
	})
	assert.Equal(t, []string{"begin", "rollback"}, exec.calls)
	assert.False(t, b.InTransaction())
}

func TestTransaction_FailedStatementRollsBackOnce(t *testing.T) {
	exec := &fakeExecutor{err: errors.New("constraint")}
	b := New(WithExecutor(exec))
	ctx := context.Background()

	err := b.Transaction(ctx, func(qb *QueryBuilder) error {
		_, err := qb.Delete("t").Where(Eq("id", 1)).Execute(ctx)
		return err
	})

	assert.ErrorIs(t, err, ErrDataAccess)
	assert.Equal(t, []string{"begin", "exec", "rollback"}, exec.calls)
}
