package dialect

import "strings"

// MySQLDialect implements Quoter for MySQL and MariaDB.
//
// Identifiers are wrapped in backticks and embedded backticks are doubled,
// so any string (including ones containing spaces, dots or SQL keywords) is
// emitted as exactly one identifier token. Values never pass through here;
// they are bound as parameters.
type MySQLDialect struct {
	name string
}

// MySQL, yeni bir MySQL lehçesi örneği oluşturur.
func MySQL() *MySQLDialect {
	return &MySQLDialect{name: "mysql"}
}

// Name returns "mysql".
func (d *MySQLDialect) Name() string {
	return d.name
}

// Quote wraps name in backticks, doubling any backtick inside it.
//
// Örnek: "users" -> "`users`", "we`ird" -> "`we``ird`"
func (d *MySQLDialect) Quote(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// QuoteAll quotes every name in order.
func (d *MySQLDialect) QuoteAll(names []string) []string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = d.Quote(n)
	}
	return quoted
}

// QuoteQualified quotes every dot-separated part of name on its own, so
// "users.id" becomes "`users`.`id`". Only column-to-column joins use it.
func (d *MySQLDialect) QuoteQualified(name string) string {
	parts := strings.Split(name, ".")
	return strings.Join(d.QuoteAll(parts), ".")
}

// Placeholder returns the named placeholder for name, e.g. ":param0".
func (d *MySQLDialect) Placeholder(name string) string {
	return ":" + name
}

var _ Quoter = (*MySQLDialect)(nil)
