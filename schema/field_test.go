package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biyonik/go-secure-sql/internal/validation"
)

func TestField_Statement(t *testing.T) {
	tests := []struct {
		name  string
		field *Field
		want  string
	}{
		{"primary key excluded", NewField("id").Integer().PrimaryKey().AutoIncrement(), "`id` INT AUTO_INCREMENT"},
		{"unique excluded", NewField("email").Email().NotNull().Unique(), "`email` VARCHAR(255) COLLATE utf8mb4_general_ci NOT NULL"},
		{"decimal", NewField("price").Decimal(10, 2).NotNull(), "`price` DECIMAL(10, 2) NOT NULL"},
		{"money", NewField("total").Money(), "`total` DECIMAL(10, 2)"},
		{"boolean", NewField("active").Boolean().Default("1"), "`active` TINYINT DEFAULT '1'"},
		{"ip address", NewField("ip").IPAddress(), "`ip` VARCHAR(45) COLLATE ascii_general_ci"},
		{"color", NewField("c").Color(), "`c` CHAR(7)"},
		{"tag", NewField("t").Tag(), "`t` VARCHAR(50) COLLATE utf8mb4_general_ci"},
		{"soft delete", NewField("deleted").SoftDelete(), "`deleted` TINYINT DEFAULT '0' COMMENT 'Soft delete flag: 1 for deleted, 0 for active'"},
		{"version", NewField("version").Version(), "`version` INT UNSIGNED COMMENT 'Auto-incremental version number'"},
		{"timestamps", NewField("updated_at").Timestamp().CurrentTimestamp().OnUpdateCurrentTimestamp(), "`updated_at` TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP"},
		{"default raw", NewField("uid").Char(36).DefaultRaw("(UUID())"), "`uid` CHAR(36) DEFAULT (UUID())"},
		{"virtual", NewField("full").Varchar(100).VirtualAs("CONCAT(first, ' ', last)"), "`full` VARCHAR(100) GENERATED ALWAYS AS (CONCAT(first, ' ', last)) VIRTUAL"},
		{"stored", NewField("total").Double().StoredAs("price * qty"), "`total` DOUBLE GENERATED ALWAYS AS (price * qty) STORED"},
		{"references", NewField("user_id").Integer().References("users", "id").OnDeleteCascade(), "`user_id` INT REFERENCES `users` (`id`) ON DELETE CASCADE"},
		{"charset binary", NewField("code").Varchar(10).Charset("ascii").Binary(), "`code` VARCHAR(10) CHARACTER SET ascii BINARY"},
		{"check", NewField("age").TinyInt().Unsigned().Check("age >= 18"), "`age` TINYINT UNSIGNED CHECK (age >= 18)"},
		{"unique key inline", NewField("sku").Varchar(32).UniqueKey(), "`sku` VARCHAR(32) UNIQUE KEY"},
		{"index excluded", NewField("status").Varchar(20).Index(), "`status` VARCHAR(20)"},
		{"enum", NewField("state").Enum("draft", "it's"), "`state` ENUM('draft','it''s')"},
		{"quoted name", NewField("we`ird").Text(), "`we``ird` TEXT"},
		{"length option", NewField("n").Integer().Length(11).Zerofill(), "`n` INT(11) ZEROFILL"},
		{"length after not null", NewField("code").SetType("VARCHAR").NotNull().Length(20), "`code` VARCHAR(20) NOT NULL"},
		{"precision after default", NewField("price").SetType("DECIMAL").Default("0").Precision(8, 2), "`price` DECIMAL(8, 2) DEFAULT '0'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.field.Statement()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestField_SetTypeAccumulatesSizes(t *testing.T) {
	f := NewField("code").SetType("VARCHAR", 10).SetType("CHAR", 5)

	got, err := f.Statement()
	require.NoError(t, err)
	assert.Equal(t, "`code` CHAR(10)(5)", got)
	assert.Equal(t, "CHAR", f.Type())
}

func TestField_SetTypeErrors(t *testing.T) {
	tests := []struct {
		name  string
		field *Field
	}{
		{"three sizes", NewField("x").SetType("DECIMAL", 1, 2, 3)},
		{"zero size", NewField("x").SetType("VARCHAR", 0)},
		{"negative scale", NewField("x").Precision(10, -1).SetType("DECIMAL")},
		{"empty type", NewField("x").SetType(" ")},
		{"no type", NewField("x").NotNull()},
		{"empty name", NewField("").Integer()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.field.Statement()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidDefinition))
		})
	}
}

func TestField_FirstErrorWins(t *testing.T) {
	f := NewField("x").SetType("INT", 0).Collate("bad;word")

	require.Error(t, f.Err())
	assert.Contains(t, f.Err().Error(), "sizes")
}

func TestField_KeywordValidation(t *testing.T) {
	f := NewField("name").Varchar(10).Collate("utf8mb4_bin; DROP TABLE users")

	_, err := f.Statement()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidDefinition))
	assert.True(t, errors.Is(err, validation.ErrInvalidKeyword))
}

func TestField_Default_Escapes(t *testing.T) {
	got, err := NewField("note").Varchar(20).Default(`it's a \ test`).Statement()
	require.NoError(t, err)
	assert.Equal(t, "`note` VARCHAR(20) DEFAULT 'it''s a \\\\ test'", got)

	got, err = NewField("nul").Varchar(5).Default("a\x00b").Statement()
	require.NoError(t, err)
	assert.Equal(t, "`nul` VARCHAR(5) DEFAULT 'a\\0b'", got)
}

func TestField_Definition_InlineKeys(t *testing.T) {
	f := NewField("id").Integer().PrimaryKey().AutoIncrement().Unique()

	got, err := f.Definition(true)
	require.NoError(t, err)
	assert.Equal(t, "`id` INT PRIMARY KEY AUTO_INCREMENT UNIQUE", got)

	got, err = f.Definition(false)
	require.NoError(t, err)
	assert.Equal(t, "`id` INT AUTO_INCREMENT", got)
}

func TestField_SelfReferenceNeedsTable(t *testing.T) {
	f := NewField("parent_id").Integer().SelfReference("")

	_, err := f.Statement()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidDefinition))

	opts := f.Options()
	require.Len(t, opts, 1)
	assert.Equal(t, OptSelfReference, opts[0].Kind)
	assert.Equal(t, "id", opts[0].Column)
}

func TestField_Accessors(t *testing.T) {
	f := NewField("id").Integer().PrimaryKeyAutoIncrement()

	assert.Equal(t, "id", f.Name())
	assert.Equal(t, "INT", f.Type())
	assert.True(t, f.HasPrimaryKey())
	assert.False(t, f.IsUnique())
	assert.NoError(t, f.Err())

	opts := f.Options()
	opts[0] = Option{Kind: OptUnique}
	assert.False(t, f.IsUnique(), "Options must return a copy")
}

func TestField_StatementIsIdempotent(t *testing.T) {
	f := NewField("email").Email().NotNull().Unique().Comment("login")

	first, err := f.Statement()
	require.NoError(t, err)
	second, err := f.Statement()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
