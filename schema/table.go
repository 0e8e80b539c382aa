package schema

import (
	"errors"
	"strings"

	"github.com/biyonik/go-secure-sql/internal/validation"
)

// Index is a CREATE INDEX descriptor. An empty Name is generated from the
// table and column names.
type Index struct {
	Name    string   `json:"name,omitempty"`
	Columns []string `json:"columns"`
}

// ForeignKey is a FOREIGN KEY clause of CREATE TABLE.
type ForeignKey struct {
	Name      string
	Column    string
	RefTable  string
	RefColumn string
}

// CheckConstraint is an ALTER TABLE ... ADD CHECK descriptor.
type CheckConstraint struct {
	Name      string `json:"name,omitempty"`
	Condition string `json:"condition"`
}

// UniqueConstraint is an ALTER TABLE ... ADD UNIQUE descriptor.
type UniqueConstraint struct {
	Name    string   `json:"name,omitempty"`
	Columns []string `json:"columns"`
}

// DefaultValue is an ALTER COLUMN ... SET DEFAULT descriptor.
type DefaultValue struct {
	Column string `json:"column"`
	Value  string `json:"value"`
}

// Trigger is a CREATE TRIGGER descriptor. Body is raw SQL.
type Trigger struct {
	Name   string `json:"name"`
	Timing string `json:"timing"`
	Event  string `json:"event"`
	Body   string `json:"body"`
}

// Table, bir tablonun alanlarını ve tablo seviyesindeki tanımlarını toplar.
// Setter'lar zincirlenebilir; render metodları durumu değiştirmez ve aynı
// tablo için her zaman aynı metni üretir.
type Table struct {
	name        string
	fields      []*Field
	indexes     []Index
	foreignKeys []ForeignKey
	checks      []CheckConstraint
	uniques     []UniqueConstraint
	defaults    []DefaultValue
	triggers    []Trigger
	addColumns  []*Field

	newName    string
	schema     string
	tablespace string
	engine     string
	charset    string
	collation  string
	comment    string
	hasComment bool

	autoIncrement     int64
	autoIncrementStep int64
	temporary         bool
	ifNotExists       bool

	err error
}

// NewTable creates an empty table definition.
func NewTable(name string) *Table {
	t := &Table{name: name}
	if err := validation.ValidateIdentifier(name); err != nil {
		t.fail(err)
	}
	return t
}

// Name returns the table name.
func (t *Table) Name() string { return t.name }

// Fields returns the fields in declaration order.
func (t *Table) Fields() []*Field {
	out := make([]*Field, len(t.fields))
	copy(out, t.fields)
	return out
}

// Err returns the first error recorded by a setter.
func (t *Table) Err() error { return t.err }

func (t *Table) fail(err error) *Table {
	if t.err == nil {
		var de *DefinitionError
		if errors.As(err, &de) {
			t.err = err
		} else {
			t.err = &DefinitionError{Object: "table", Name: t.name, Err: err}
		}
	}
	return t
}

func (t *Table) validate(names ...string) bool {
	if err := validation.ValidateIdentifiers(names); err != nil {
		t.fail(err)
		return false
	}
	return true
}

// AddField appends a column to CREATE TABLE.
func (t *Table) AddField(f *Field) *Table {
	if f == nil {
		return t.fail(errNilField)
	}
	t.fields = append(t.fields, f)
	return t
}

// AddFields appends several columns in order.
func (t *Table) AddFields(fields ...*Field) *Table {
	for _, f := range fields {
		t.AddField(f)
	}
	return t
}

// AddIndex registers CREATE INDEX with a generated name.
func (t *Table) AddIndex(columns ...string) *Table {
	return t.AddNamedIndex("", columns...)
}

// AddNamedIndex registers CREATE INDEX `name`.
func (t *Table) AddNamedIndex(name string, columns ...string) *Table {
	if !t.validate(columns...) || (name != "" && !t.validate(name)) {
		return t
	}
	t.indexes = append(t.indexes, Index{Name: name, Columns: append([]string(nil), columns...)})
	return t
}

// AddForeignKey registers FOREIGN KEY (`column`) REFERENCES `refTable` (`refColumn`).
func (t *Table) AddForeignKey(column, refTable, refColumn string) *Table {
	return t.AddNamedForeignKey("", column, refTable, refColumn)
}

// AddNamedForeignKey is AddForeignKey with a CONSTRAINT name.
func (t *Table) AddNamedForeignKey(name, column, refTable, refColumn string) *Table {
	if !t.validate(column, refTable, refColumn) || (name != "" && !t.validate(name)) {
		return t
	}
	t.foreignKeys = append(t.foreignKeys, ForeignKey{
		Name:      name,
		Column:    column,
		RefTable:  refTable,
		RefColumn: refColumn,
	})
	return t
}

// AddCheckConstraint registers a CHECK constraint. name may be empty.
func (t *Table) AddCheckConstraint(name, condition string) *Table {
	if name != "" && !t.validate(name) {
		return t
	}
	if strings.TrimSpace(condition) == "" {
		return t.fail(errEmptyExpr)
	}
	t.checks = append(t.checks, CheckConstraint{Name: name, Condition: condition})
	return t
}

// AddUniqueConstraint registers a UNIQUE constraint. name may be empty.
func (t *Table) AddUniqueConstraint(name string, columns ...string) *Table {
	if !t.validate(columns...) || (name != "" && !t.validate(name)) {
		return t
	}
	t.uniques = append(t.uniques, UniqueConstraint{Name: name, Columns: append([]string(nil), columns...)})
	return t
}

// AddDefaultValue registers ALTER COLUMN `column` SET DEFAULT 'value'. A
// second call for the same column replaces the value in place.
func (t *Table) AddDefaultValue(column, value string) *Table {
	if !t.validate(column) {
		return t
	}
	for i := range t.defaults {
		if t.defaults[i].Column == column {
			t.defaults[i].Value = value
			return t
		}
	}
	t.defaults = append(t.defaults, DefaultValue{Column: column, Value: value})
	return t
}

// AddTrigger registers CREATE TRIGGER. timing is BEFORE or AFTER, event is
// INSERT, UPDATE or DELETE; body is raw SQL.
func (t *Table) AddTrigger(name, timing, event, body string) *Table {
	if !t.validate(name) {
		return t
	}
	tm, err := validation.NormalizeTriggerTiming(timing)
	if err != nil {
		return t.fail(err)
	}
	ev, err := validation.NormalizeTriggerEvent(event)
	if err != nil {
		return t.fail(err)
	}
	if strings.TrimSpace(body) == "" {
		return t.fail(errEmptyExpr)
	}
	t.triggers = append(t.triggers, Trigger{Name: name, Timing: tm, Event: ev, Body: body})
	return t
}

// AddColumn registers ALTER TABLE ... ADD COLUMN for f.
func (t *Table) AddColumn(f *Field) *Table {
	if f == nil {
		return t.fail(errNilField)
	}
	t.addColumns = append(t.addColumns, f)
	return t
}

// RenameTable registers ALTER TABLE ... RENAME TO newName.
func (t *Table) RenameTable(newName string) *Table {
	if t.validate(newName) {
		t.newName = newName
	}
	return t
}

// SetSchema registers a move into another database (schema).
func (t *Table) SetSchema(schema string) *Table {
	if t.validate(schema) {
		t.schema = schema
	}
	return t
}

func (t *Table) Tablespace(name string) *Table {
	if t.validate(name) {
		t.tablespace = name
	}
	return t
}

func (t *Table) Engine(engine string) *Table {
	if err := validation.ValidateBareWord("engine", engine); err != nil {
		return t.fail(err)
	}
	t.engine = engine
	return t
}

func (t *Table) Charset(charset string) *Table {
	if err := validation.ValidateBareWord("charset", charset); err != nil {
		return t.fail(err)
	}
	t.charset = charset
	return t
}

func (t *Table) Collate(collation string) *Table {
	if err := validation.ValidateBareWord("collation", collation); err != nil {
		return t.fail(err)
	}
	t.collation = collation
	return t
}

// Comment sets the table COMMENT.
func (t *Table) Comment(comment string) *Table {
	t.comment, t.hasComment = comment, true
	return t
}

// AutoIncrement sets the next AUTO_INCREMENT value.
func (t *Table) AutoIncrement(value int64) *Table {
	if value <= 0 {
		return t.fail(errBadAutoIncr)
	}
	t.autoIncrement = value
	return t
}

// AutoIncrementStep sets auto_increment_increment for the session.
func (t *Table) AutoIncrementStep(step int64) *Table {
	if step <= 0 {
		return t.fail(errBadAutoIncr)
	}
	t.autoIncrementStep = step
	return t
}

func (t *Table) Temporary() *Table {
	t.temporary = true
	return t
}

func (t *Table) IfNotExists() *Table {
	t.ifNotExists = true
	return t
}
