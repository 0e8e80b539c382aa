package securesql

import (
	"errors"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMisuseError(t *testing.T) {
	err := misuse("Where", ErrWhereAlreadySet)

	assert.Equal(t, "securesql: Where: securesql: WHERE clause already present", err.Error())
	assert.ErrorIs(t, err, ErrMisuse)
	assert.ErrorIs(t, err, ErrWhereAlreadySet)
	assert.NotErrorIs(t, err, ErrDataAccess)
}

func TestDataAccessError_MySQL(t *testing.T) {
	server := &mysql.MySQLError{Number: 1062, SQLState: [5]byte{'2', '3', '0', '0', '0'}, Message: "Duplicate entry 'a' for key 'email'"}
	err := wrapDataAccess("insert", "INSERT INTO `users` (`email`) VALUES (:param0)", Params{"param0": "a"}, server)

	assert.Equal(t, uint16(1062), err.Number)
	assert.Equal(t, "23000", err.SQLState)
	assert.Equal(t, "securesql: insert failed (mysql 1062 / 23000): "+server.Error(), err.Error())
	assert.ErrorIs(t, err, ErrDataAccess)

	var me *mysql.MySQLError
	require.ErrorAs(t, err, &me)
	assert.Same(t, server, me)
}

func TestDataAccessError_Plain(t *testing.T) {
	cause := errors.New("connection refused")
	err := wrapDataAccess("ping", "", nil, cause)

	assert.Zero(t, err.Number)
	assert.Empty(t, err.SQLState)
	assert.Equal(t, "securesql: ping failed: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestWrapDataAccess_KeepsExisting(t *testing.T) {
	inner := wrapDataAccess("query", "SELECT 1", nil, errors.New("x"))
	outer := wrapDataAccess("select", "SELECT 2", nil, inner)

	assert.Same(t, inner, outer)
	assert.Equal(t, "query", outer.Op)
}

func TestDataAccessError_RollbackMessage(t *testing.T) {
	err := &DataAccessError{Op: "exec", Err: errors.New("deadlock"), RollbackErr: errors.New("gone")}
	assert.Equal(t, "securesql: exec failed: deadlock; rollback: gone", err.Error())
}

func TestValidationErrorsMatchSentinels(t *testing.T) {
	_, _, err := New().Select("*").From(" padded ").ToSQL()
	assert.ErrorIs(t, err, ErrInvalidIdentifier)

	_, _, err = New().Select("*").From("t").Where(Eq("a", 1)).AndWhereWith("NAND", Eq("b", 2)).ToSQL()
	assert.ErrorIs(t, err, ErrInvalidKeyword)
}
