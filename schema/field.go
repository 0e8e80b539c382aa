package schema

import (
	"strconv"
	"strings"

	"github.com/biyonik/go-secure-sql/dialect"
	"github.com/biyonik/go-secure-sql/internal/validation"
)

/*
 * ----------------------------------------------------------------------------
 * FIELD DEFINITION
 * ----------------------------------------------------------------------------
 *
 * Field, tek bir kolonun tipini ve sıralı seçenek listesini tutar.
 *
 * Kurallar:
 * 1. SetType tipi kaydeder ve en fazla bir boyut seçeneği ekler. İkinci bir
 * SetType çağrısı tipi değiştirir, boyut seçeneğini ise yeniden ekler.
 * 2. Boyut seçenekleri tipe bitişik yazılır: VARCHAR(255).
 * 3. PRIMARY KEY, UNIQUE, INDEX, SPATIAL INDEX ve self reference kolon
 * tanımına yazılmaz; Table bunları tablo seviyesinde üretir.
 * 4. Hatalı bir çağrı ilk hatayı saklar; Statement bu hatayı döner.
 *
 * @author Ahmet ALTUN
 * @github github.com/biyonik
 * @linkedin linkedin.com/in/biyonik
 * @email ahmet.altun60@gmail.com
 * ----------------------------------------------------------------------------
 */

var quoter = dialect.MySQL()

func quote(name string) string {
	return quoter.Quote(name)
}

func quoteList(names []string) string {
	return strings.Join(quoter.QuoteAll(names), ", ")
}

// Field is a column definition.
type Field struct {
	name    string
	typ     string
	options []Option
	err     error
}

// NewField creates a field. The name cannot be changed afterwards.
func NewField(name string) *Field {
	f := &Field{name: name}
	if err := validation.ValidateIdentifier(name); err != nil {
		f.fail(err)
	}
	return f
}

// Name returns the column name.
func (f *Field) Name() string { return f.name }

// Type returns the column type without sizing.
func (f *Field) Type() string { return f.typ }

// Err returns the first error recorded by a setter.
func (f *Field) Err() error { return f.err }

// Options returns a copy of the option list in declaration order.
func (f *Field) Options() []Option {
	out := make([]Option, len(f.options))
	copy(out, f.options)
	return out
}

// HasPrimaryKey reports whether PrimaryKey was called.
func (f *Field) HasPrimaryKey() bool { return f.has(OptPrimaryKey) }

// IsUnique reports whether Unique was called.
func (f *Field) IsUnique() bool { return f.has(OptUnique) }

func (f *Field) has(kind OptionKind) bool {
	for _, o := range f.options {
		if o.Kind == kind {
			return true
		}
	}
	return false
}

func (f *Field) fail(err error) *Field {
	if f.err == nil {
		f.err = &DefinitionError{Object: "field", Name: f.name, Err: err}
	}
	return f
}

func (f *Field) add(kind OptionKind, arg string) *Field {
	f.options = append(f.options, Option{Kind: kind, Arg: arg})
	return f
}

// SetType records the column type and appends at most one sizing option:
// one size renders as (n), two as (p, s).
//
// Örnek:
//
//	NewField("price").SetType("DECIMAL", 10, 2) // `price` DECIMAL(10, 2)
func (f *Field) SetType(typ string, sizes ...int) *Field {
	if strings.TrimSpace(typ) == "" {
		return f.fail(errNoType)
	}
	f.typ = typ

	if len(sizes) == 0 {
		return f
	}
	size, err := sizeText(sizes...)
	if err != nil {
		return f.fail(err)
	}
	return f.add(OptSize, size)
}

func sizeText(sizes ...int) (string, error) {
	if len(sizes) > 2 {
		return "", errBadSize
	}
	parts := make([]string, len(sizes))
	for i, n := range sizes {
		if n <= 0 {
			return "", errBadSize
		}
		parts[i] = strconv.Itoa(n)
	}
	return "(" + strings.Join(parts, ", ") + ")", nil
}

// Statement renders the column definition used inside CREATE TABLE.
func (f *Field) Statement() (string, error) {
	return f.Definition(false)
}

// Definition renders the column definition. With inlineKeys, PRIMARY KEY and
// UNIQUE stay in the column text, which is the form ADD COLUMN needs.
func (f *Field) Definition(inlineKeys bool) (string, error) {
	if f.has(OptSelfReference) {
		return "", &DefinitionError{Object: "field", Name: f.name, Err: errSelfRef}
	}
	return f.definition(inlineKeys)
}

func (f *Field) definition(inlineKeys bool) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.typ == "" {
		return "", &DefinitionError{Object: "field", Name: f.name, Err: errNoType}
	}

	var sb strings.Builder
	sb.WriteString(quote(f.name))
	sb.WriteByte(' ')
	sb.WriteString(f.typ)

	// Boyutlar, eklenme sırasıyla tipe bitişik yazılır.
	for _, o := range f.options {
		if o.Kind == OptSize {
			sb.WriteString(o.render())
		}
	}
	for _, o := range f.options {
		if o.Kind == OptSize {
			continue
		}
		if o.promoted() && !(inlineKeys && (o.Kind == OptPrimaryKey || o.Kind == OptUnique)) {
			continue
		}
		sb.WriteByte(' ')
		sb.WriteString(o.render())
	}
	return sb.String(), nil
}

// ----------------------------------------------------------------------------
// Option setters
// ----------------------------------------------------------------------------

// NotNull adds NOT NULL.
func (f *Field) NotNull() *Field { return f.add(OptNotNull, "") }

// Nullable adds an explicit NULL.
func (f *Field) Nullable() *Field { return f.add(OptNull, "") }

// PrimaryKey marks the column for the table's PRIMARY KEY clause.
func (f *Field) PrimaryKey() *Field { return f.add(OptPrimaryKey, "") }

// AutoIncrement adds AUTO_INCREMENT.
func (f *Field) AutoIncrement() *Field { return f.add(OptAutoIncrement, "") }

// Unique marks the column for a table-level UNIQUE clause.
func (f *Field) Unique() *Field { return f.add(OptUnique, "") }

// Default adds DEFAULT 'value' with the value escaped as a string literal.
func (f *Field) Default(value string) *Field {
	return f.add(OptDefault, quoteLiteral(value))
}

// DefaultRaw adds DEFAULT expr without quoting, e.g. DefaultRaw("(UUID())").
func (f *Field) DefaultRaw(expr string) *Field {
	if strings.TrimSpace(expr) == "" {
		return f.fail(errEmptyExpr)
	}
	return f.add(OptDefault, expr)
}

// Check adds CHECK (condition). The condition is raw SQL.
func (f *Field) Check(condition string) *Field {
	if strings.TrimSpace(condition) == "" {
		return f.fail(errEmptyExpr)
	}
	return f.add(OptCheck, condition)
}

// Comment adds COMMENT '...'.
func (f *Field) Comment(comment string) *Field { return f.add(OptComment, comment) }

// Length appends a (n) sizing option.
func (f *Field) Length(n int) *Field {
	size, err := sizeText(n)
	if err != nil {
		return f.fail(err)
	}
	return f.add(OptSize, size)
}

// Precision appends a (p, s) sizing option.
func (f *Field) Precision(precision, scale int) *Field {
	size, err := sizeText(precision, scale)
	if err != nil {
		return f.fail(err)
	}
	return f.add(OptSize, size)
}

// Collate adds COLLATE name.
func (f *Field) Collate(collation string) *Field {
	if err := validation.ValidateBareWord("collation", collation); err != nil {
		return f.fail(err)
	}
	return f.add(OptCollate, collation)
}

// Charset adds CHARACTER SET name.
func (f *Field) Charset(charset string) *Field {
	if err := validation.ValidateBareWord("charset", charset); err != nil {
		return f.fail(err)
	}
	return f.add(OptCharset, charset)
}

// Index requests a table-level INDEX on the column.
func (f *Field) Index() *Field { return f.add(OptIndex, "") }

// UniqueKey adds the inline UNIQUE KEY attribute.
func (f *Field) UniqueKey() *Field { return f.add(OptUniqueKey, "") }

// SpatialIndex requests a table-level SPATIAL INDEX on the column.
func (f *Field) SpatialIndex() *Field { return f.add(OptSpatialIndex, "") }

func (f *Field) Unsigned() *Field { return f.add(OptUnsigned, "") }

func (f *Field) Zerofill() *Field { return f.add(OptZerofill, "") }

func (f *Field) Binary() *Field { return f.add(OptBinary, "") }

// CurrentTimestamp adds DEFAULT CURRENT_TIMESTAMP.
func (f *Field) CurrentTimestamp() *Field { return f.add(OptDefault, "CURRENT_TIMESTAMP") }

// OnInsertCurrentTimestamp is the same as CurrentTimestamp.
func (f *Field) OnInsertCurrentTimestamp() *Field { return f.CurrentTimestamp() }

// OnUpdateCurrentTimestamp adds ON UPDATE CURRENT_TIMESTAMP.
func (f *Field) OnUpdateCurrentTimestamp() *Field { return f.add(OptOnUpdateTimestamp, "") }

func (f *Field) OnDeleteCascade() *Field { return f.add(OptOnDeleteCascade, "") }

func (f *Field) OnUpdateCascade() *Field { return f.add(OptOnUpdateCascade, "") }

// VirtualAs makes the column GENERATED ALWAYS AS (expr) VIRTUAL.
func (f *Field) VirtualAs(expr string) *Field {
	if strings.TrimSpace(expr) == "" {
		return f.fail(errEmptyExpr)
	}
	return f.add(OptVirtual, expr)
}

// StoredAs makes the column GENERATED ALWAYS AS (expr) STORED.
func (f *Field) StoredAs(expr string) *Field {
	if strings.TrimSpace(expr) == "" {
		return f.fail(errEmptyExpr)
	}
	return f.add(OptStored, expr)
}

// References adds REFERENCES `table` (`column`).
func (f *Field) References(table, column string) *Field {
	if err := validation.ValidateIdentifiers([]string{table, column}); err != nil {
		return f.fail(err)
	}
	f.options = append(f.options, Option{Kind: OptReferences, Arg: table, Column: column})
	return f
}

// SelfReference makes the column a foreign key to column of its own table.
// An empty column means "id". The constraint is rendered by the Table.
func (f *Field) SelfReference(column string) *Field {
	if column == "" {
		column = "id"
	}
	if err := validation.ValidateIdentifier(column); err != nil {
		return f.fail(err)
	}
	f.options = append(f.options, Option{Kind: OptSelfReference, Column: column})
	return f
}

// PrimaryKeyAutoIncrement is PrimaryKey followed by AutoIncrement.
func (f *Field) PrimaryKeyAutoIncrement() *Field {
	return f.PrimaryKey().AutoIncrement()
}
