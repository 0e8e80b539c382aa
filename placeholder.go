package securesql

import (
	"database/sql"
	"fmt"
	"strings"
)

// PlaceholderStyle, isimli placeholder'ların sürücüye nasıl iletileceğini belirler.
type PlaceholderStyle int

const (
	// Positional rewrites every :name to ? and passes values in order of
	// appearance. go-sql-driver/mysql needs this style.
	Positional PlaceholderStyle = iota
	// Named keeps :name in the text and passes sql.Named arguments, for
	// drivers that bind by name such as modernc.org/sqlite.
	Named
)

// bindStatement scans statement for :name placeholders outside string
// literals, quoted identifiers and comments, and returns the text and
// arguments to hand to database/sql. A placeholder without a value in params
// is an error.
func bindStatement(statement string, params Params, style PlaceholderStyle) (string, []any, error) {
	var (
		out  strings.Builder
		args []any
		seen map[string]bool
	)
	if style == Named {
		seen = make(map[string]bool)
	}
	out.Grow(len(statement))

	n := len(statement)
	for i := 0; i < n; {
		c := statement[i]

		switch {
		case c == '\'' || c == '"' || c == '`':
			end := skipQuoted(statement, i, c)
			out.WriteString(statement[i:end])
			i = end
			continue

		case c == '#' || (c == '-' && i+2 < n && statement[i+1] == '-' && (statement[i+2] == ' ' || statement[i+2] == '\t')):
			end := strings.IndexByte(statement[i:], '\n')
			if end < 0 {
				end = n
			} else {
				end += i
			}
			out.WriteString(statement[i:end])
			i = end
			continue

		case c == '/' && i+1 < n && statement[i+1] == '*':
			end := strings.Index(statement[i+2:], "*/")
			if end < 0 {
				end = n
			} else {
				end += i + 4
			}
			out.WriteString(statement[i:end])
			i = end
			continue

		case c == ':' && i+1 < n && isNameStart(statement[i+1]) && (i == 0 || statement[i-1] != ':'):
			j := i + 1
			for j < n && isNameChar(statement[j]) {
				j++
			}
			name := statement[i+1 : j]
			value, ok := params[name]
			if !ok {
				return "", nil, fmt.Errorf("%w: :%s", ErrUnknownPlaceholder, name)
			}
			if style == Named {
				out.WriteString(statement[i:j])
				if !seen[name] {
					seen[name] = true
					args = append(args, sql.Named(name, value))
				}
			} else {
				out.WriteByte('?')
				args = append(args, value)
			}
			i = j
			continue
		}

		out.WriteByte(c)
		i++
	}

	return out.String(), args, nil
}

// skipQuoted returns the index just past the quoted section starting at
// start. Doubled quotes and, for string literals, backslash escapes stay
// inside the section.
func skipQuoted(s string, start int, q byte) int {
	for i := start + 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			if q != '`' {
				i++
			}
		case q:
			if i+1 < len(s) && s[i+1] == q {
				i++
				continue
			}
			return i + 1
		}
	}
	return len(s)
}

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameChar(c byte) bool {
	return isNameStart(c) || (c >= '0' && c <= '9')
}
