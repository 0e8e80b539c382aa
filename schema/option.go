// Package schema describes MySQL tables and renders them as DDL.
//
// A Field collects a column type and an ordered list of options; a Table
// collects fields plus table-level descriptors (indexes, foreign keys,
// constraints, triggers, defaults) and renders each group with its own pure
// renderer. Identifiers are backtick-quoted, string literals are escaped and
// keyword-like values (engine, charset, collation) must be bare words.
// Check conditions, trigger bodies and generated-column expressions are raw
// SQL and must come from trusted code.
package schema

import (
	"errors"
	"strings"
)

// ErrInvalidDefinition is matched by every DefinitionError.
var ErrInvalidDefinition = errors.New("schema: invalid definition")

// DefinitionError, bir alan veya tablo tanımındaki hatayı taşır. İlk hata
// tanım üzerinde saklanır ve render sırasında döndürülür.
type DefinitionError struct {
	Object string // "field" veya "table"
	Name   string
	Err    error
}

func (e *DefinitionError) Error() string {
	return "schema: " + e.Object + " `" + e.Name + "`: " + e.Err.Error()
}

func (e *DefinitionError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrInvalidDefinition) hold.
func (e *DefinitionError) Is(target error) bool {
	return target == ErrInvalidDefinition
}

var (
	errNoType       = errors.New("no column type set")
	errBadSize      = errors.New("sizes must be one length or a precision and scale, all positive")
	errSelfRef      = errors.New("self reference can only be rendered by its table")
	errNoFields     = errors.New("table has no fields")
	errNilField     = errors.New("field is nil")
	errEmptyExpr    = errors.New("expression cannot be empty")
	errEmptyValues  = errors.New("at least one value is required")
	errBadAutoIncr  = errors.New("auto increment value must be positive")
	errUnknownField = errors.New("unknown field shorthand or option")
)

// OptionKind, bir kolon seçeneğinin türüdür.
type OptionKind int

const (
	OptSize OptionKind = iota
	OptNotNull
	OptNull
	OptPrimaryKey
	OptAutoIncrement
	OptUnique
	OptDefault
	OptCheck
	OptComment
	OptCollate
	OptCharset
	OptIndex
	OptUniqueKey
	OptSpatialIndex
	OptUnsigned
	OptZerofill
	OptBinary
	OptOnUpdateTimestamp
	OptOnDeleteCascade
	OptOnUpdateCascade
	OptVirtual
	OptStored
	OptReferences
	OptSelfReference
)

// Option is one entry of a field's option list. Arg carries the option's
// payload (size text, default SQL, expression, referenced table); Column is
// used by references only.
type Option struct {
	Kind   OptionKind
	Arg    string
	Column string
}

// promoted reports whether the option is rendered as a table-level clause
// instead of inside the column definition.
func (o Option) promoted() bool {
	switch o.Kind {
	case OptPrimaryKey, OptUnique, OptIndex, OptSpatialIndex, OptSelfReference:
		return true
	}
	return false
}

// render, seçeneğin kolon tanımı içindeki metnini üretir.
func (o Option) render() string {
	switch o.Kind {
	case OptSize:
		return o.Arg
	case OptNotNull:
		return "NOT NULL"
	case OptNull:
		return "NULL"
	case OptPrimaryKey:
		return "PRIMARY KEY"
	case OptAutoIncrement:
		return "AUTO_INCREMENT"
	case OptUnique:
		return "UNIQUE"
	case OptDefault:
		return "DEFAULT " + o.Arg
	case OptCheck:
		return "CHECK (" + o.Arg + ")"
	case OptComment:
		return "COMMENT " + quoteLiteral(o.Arg)
	case OptCollate:
		return "COLLATE " + o.Arg
	case OptCharset:
		return "CHARACTER SET " + o.Arg
	case OptUniqueKey:
		return "UNIQUE KEY"
	case OptUnsigned:
		return "UNSIGNED"
	case OptZerofill:
		return "ZEROFILL"
	case OptBinary:
		return "BINARY"
	case OptOnUpdateTimestamp:
		return "ON UPDATE CURRENT_TIMESTAMP"
	case OptOnDeleteCascade:
		return "ON DELETE CASCADE"
	case OptOnUpdateCascade:
		return "ON UPDATE CASCADE"
	case OptVirtual:
		return "GENERATED ALWAYS AS (" + o.Arg + ") VIRTUAL"
	case OptStored:
		return "GENERATED ALWAYS AS (" + o.Arg + ") STORED"
	case OptReferences:
		return "REFERENCES " + quote(o.Arg) + " (" + quote(o.Column) + ")"
	}
	return ""
}

var literalEscaper = strings.NewReplacer(`\`, `\\`, `'`, `''`, "\x00", `\0`)

// quoteLiteral wraps s in single quotes with MySQL escaping.
func quoteLiteral(s string) string {
	return "'" + literalEscaper.Replace(s) + "'"
}
