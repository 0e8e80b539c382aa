package securesql

import "strings"

// StatementKind, Execute'un ifadeyi hangi Executor metoduna yönlendireceğini
// belirleyen kaba kategoridir.
type StatementKind int

const (
	// KindSelect covers every statement that returns rows. It is the zero
	// value, so anything not recognized as another kind is read as a query.
	KindSelect StatementKind = iota
	// KindInsert is INSERT or REPLACE; the result carries the generated id.
	KindInsert
	// KindModify is UPDATE or DELETE; the result carries the affected row count.
	KindModify
	// KindDDL is CREATE, ALTER, DROP, RENAME, TRUNCATE and session SET
	// statements. They run without parameters and never trigger a rollback.
	KindDDL
)

// String returns the lower-case kind name used in logs and metric labels.
func (k StatementKind) String() string {
	switch k {
	case KindInsert:
		return "insert"
	case KindModify:
		return "modify"
	case KindDDL:
		return "ddl"
	default:
		return "select"
	}
}

// ClassifyStatement returns the kind of a raw SQL statement from its leading
// keyword. Leading whitespace and opening parentheses are skipped.
func ClassifyStatement(sql string) StatementKind {
	s := strings.TrimLeft(sql, " \t\r\n(")
	end := strings.IndexAny(s, " \t\r\n(;")
	if end >= 0 {
		s = s[:end]
	}

	switch strings.ToUpper(s) {
	case "INSERT", "REPLACE":
		return KindInsert
	case "UPDATE", "DELETE":
		return KindModify
	case "CREATE", "ALTER", "DROP", "RENAME", "TRUNCATE", "SET":
		return KindDDL
	default:
		return KindSelect
	}
}
