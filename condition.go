package securesql

import (
	"sort"
	"strings"

	"github.com/biyonik/go-secure-sql/dialect"
	"github.com/biyonik/go-secure-sql/internal/validation"
)

// Pair, bir kolon ile ona karşılık gelen değeri taşır. Koşullar, INSERT
// değerleri ve UPDATE atamaları sıralı Pair listeleri olarak verilir; böylece
// üretilen SQL'deki sıra çağıranın verdiği sıradır.
//
// Op yalnızca koşullarda kullanılır; boş bırakılırsa "=" kabul edilir.
type Pair struct {
	Column string
	Op     string
	Value  any
}

// Eq builds an equality condition "column = value".
func Eq(column string, value any) Pair {
	return Pair{Column: column, Value: value}
}

// Set builds an assignment for Insert and Update.
func Set(column string, value any) Pair {
	return Pair{Column: column, Value: value}
}

// Cmp builds "column op value" for an allowed comparison operator.
func Cmp(column, op string, value any) Pair {
	return Pair{Column: column, Op: op, Value: value}
}

// Like builds "column LIKE pattern".
func Like(column, pattern string) Pair {
	return Pair{Column: column, Op: "LIKE", Value: pattern}
}

// IsNull builds "column IS NULL"; nothing is bound.
func IsNull(column string) Pair {
	return Pair{Column: column, Op: "IS"}
}

// IsNotNull builds "column IS NOT NULL".
func IsNotNull(column string) Pair {
	return Pair{Column: column, Op: "IS NOT"}
}

// In builds "column IN (:a, :b, ...)", one placeholder per value.
func In(column string, values ...any) Pair {
	return Pair{Column: column, Op: "IN", Value: values}
}

// NotIn builds "column NOT IN (...)".
func NotIn(column string, values ...any) Pair {
	return Pair{Column: column, Op: "NOT IN", Value: values}
}

// Between builds "column BETWEEN :lo AND :hi".
func Between(column string, lo, hi any) Pair {
	return Pair{Column: column, Op: "BETWEEN", Value: []any{lo, hi}}
}

// render, koşulu tırnaklanmış kolon adı ile yazar; her değer bind ile bağlanır.
func (p Pair) render(col string, bind func(any) string) (string, error) {
	op := "="
	if p.Op != "" {
		var err error
		if op, err = validation.NormalizeOperator(p.Op); err != nil {
			return "", err
		}
	}

	switch {
	case validation.IsNullOperator(op):
		return col + " " + op + " NULL", nil

	case validation.IsListOperator(op):
		values, ok := p.Value.([]any)
		if !ok || len(values) == 0 {
			return "", &validation.OperatorError{Operator: op, Reason: "expects a non-empty list of values"}
		}
		holders := make([]string, len(values))
		for i, v := range values {
			holders[i] = bind(v)
		}
		return col + " " + op + " (" + strings.Join(holders, ", ") + ")", nil

	case validation.IsRangeOperator(op):
		values, ok := p.Value.([]any)
		if !ok || len(values) != 2 {
			return "", &validation.OperatorError{Operator: op, Reason: "expects exactly two values"}
		}
		lo := bind(values[0])
		hi := bind(values[1])
		return col + " " + op + " " + lo + " AND " + hi, nil
	}

	return col + " " + op + " " + bind(p.Value), nil
}

// FromMap converts m into pairs ordered by column name.
func FromMap(m map[string]any) []Pair {
	cols := make([]string, 0, len(m))
	for c := range m {
		cols = append(cols, c)
	}
	sort.Strings(cols)

	pairs := make([]Pair, len(cols))
	for i, c := range cols {
		pairs[i] = Pair{Column: c, Value: m[c]}
	}
	return pairs
}

// conditionBuilder, eşitlik koşullarını parametreli SQL'e çevirir.
// Her girdi için tek bir isimli parametre bağlanır.
type conditionBuilder struct {
	quoter dialect.Quoter
	binder *Binder
}

// build renders `a` = :a <joiner> `b` = :b with no trailing operator.
// Placeholder adları kolon adından türetilir.
func (c conditionBuilder) build(pairs []Pair, logical dialect.Logical) (string, error) {
	if len(pairs) == 0 {
		return "", ErrNoConditions
	}

	parts := make([]string, len(pairs))
	for i, p := range pairs {
		if err := validation.ValidateIdentifier(p.Column); err != nil {
			return "", err
		}
		column := p.Column
		part, err := p.render(c.quoter.Quote(column), func(v any) string {
			return c.quoter.Placeholder(c.binder.BindNamed(column, v))
		})
		if err != nil {
			return "", err
		}
		parts[i] = part
	}
	return strings.Join(parts, " "+logical.Joiner()+" "), nil
}

// group builds a parenthesized group and returns it prefixed with the token
// that attaches it to the preceding clause. compound overrides the logical
// operator's default attachment when non-empty.
func (c conditionBuilder) group(logical dialect.Logical, pairs []Pair, compound string) (string, error) {
	if !logical.Valid() {
		return "", &validation.KeywordError{Kind: "logical operator", Keyword: string(logical), Reason: "must be AND, OR or NOT"}
	}

	attach := logical.Attach()
	if compound != "" {
		op, err := validation.NormalizeCompound(compound)
		if err != nil {
			return "", err
		}
		attach = op
	}

	clause, err := c.build(pairs, logical)
	if err != nil {
		return "", err
	}

	if logical == dialect.LogicalNot {
		return attach + " NOT (" + clause + ")", nil
	}
	return attach + " (" + clause + ")", nil
}
