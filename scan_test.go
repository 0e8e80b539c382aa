package securesql

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Timestamps struct {
	CreatedAt time.Time `db:"created_at"`
}

type user struct {
	Timestamps
	ID       int64          `db:"id"`
	Name     string         `db:"name"`
	Age      int            `db:"age"`
	Score    float64        `db:"score"`
	Active   bool           `db:"active"`
	Nickname *string        `db:"nickname"`
	Bio      sql.NullString `db:"bio"`
	Email    string
	Secret   string `db:"-"`
}

func TestDecode_Struct(t *testing.T) {
	res := &Result{Rows: []Row{{
		"id":         int64(7),
		"name":       "Jo",
		"age":        "42",
		"score":      float64(9.5),
		"active":     int64(1),
		"nickname":   "jj",
		"bio":        "hello",
		"email":      "jo@example.com",
		"secret":     "nope",
		"created_at": "2024-03-01 10:20:30",
		"unknown":    "ignored",
	}}}

	var u user
	require.NoError(t, res.Decode(&u))

	assert.Equal(t, int64(7), u.ID)
	assert.Equal(t, "Jo", u.Name)
	assert.Equal(t, 42, u.Age)
	assert.Equal(t, 9.5, u.Score)
	assert.True(t, u.Active)
	require.NotNil(t, u.Nickname)
	assert.Equal(t, "jj", *u.Nickname)
	assert.Equal(t, sql.NullString{String: "hello", Valid: true}, u.Bio)
	assert.Equal(t, "jo@example.com", u.Email)
	assert.Empty(t, u.Secret)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 20, 30, 0, time.UTC), u.CreatedAt)
}

func TestDecode_JSONNumbers(t *testing.T) {
	// JSON-decoded cache entries carry float64 numbers.
	res := &Result{Rows: []Row{{"id": float64(3), "age": float64(30), "nickname": nil}}}

	var u user
	require.NoError(t, res.Decode(&u))
	assert.Equal(t, int64(3), u.ID)
	assert.Equal(t, 30, u.Age)
	assert.Nil(t, u.Nickname)
}

func TestDecode_Slices(t *testing.T) {
	res := &Result{Rows: []Row{{"id": int64(1)}, {"id": int64(2)}}}

	var values []user
	require.NoError(t, res.Decode(&values))
	require.Len(t, values, 2)
	assert.Equal(t, int64(2), values[1].ID)

	var pointers []*user
	require.NoError(t, res.Decode(&pointers))
	require.Len(t, pointers, 2)
	assert.Equal(t, int64(1), pointers[0].ID)
}

func TestDecode_EmptyResult(t *testing.T) {
	res := &Result{}

	var u user
	assert.ErrorIs(t, res.Decode(&u), ErrNoRows)

	var list []user
	require.NoError(t, res.Decode(&list))
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestDecode_InvalidDestination(t *testing.T) {
	res := &Result{Rows: []Row{{"id": int64(1)}}}

	var u user
	assert.ErrorIs(t, res.Decode(u), ErrNilDestination)
	assert.ErrorIs(t, res.Decode((*user)(nil)), ErrNilDestination)

	var n int
	assert.ErrorIs(t, res.Decode(&n), ErrInvalidDestination)

	var ints []int
	assert.ErrorIs(t, res.Decode(&ints), ErrInvalidDestination)
}

func TestDecode_ConversionError(t *testing.T) {
	res := &Result{Rows: []Row{{"age": "forty"}}}

	var u user
	err := res.Decode(&u)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `decode column "age"`)
}
