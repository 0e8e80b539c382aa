package securesql

import (
	"strings"

	"github.com/biyonik/go-secure-sql/internal/validation"
)

// ----------------------------------------------------------------------------
// Aggregate functions
// ----------------------------------------------------------------------------
//
// Aggregate helper'ları kolon ifadesini olduğu gibi yazar; "DISTINCT id" veya
// "price * qty" gibi ifadeler bu sayede kullanılabilir. Kullanıcı girdisi
// buraya verilmeden önce Quote ile tırnaklanmalıdır.

// Count adds COUNT(column) to the select list; an empty column means COUNT(*).
func (b *QueryBuilder) Count(column string) *QueryBuilder {
	if column == "" {
		column = "*"
	}
	return b.aggregate("COUNT", column)
}

// Sum adds SUM(column).
func (b *QueryBuilder) Sum(column string) *QueryBuilder {
	return b.aggregate("SUM", column)
}

// Avg adds AVG(column).
func (b *QueryBuilder) Avg(column string) *QueryBuilder {
	return b.aggregate("AVG", column)
}

// Min adds MIN(column).
func (b *QueryBuilder) Min(column string) *QueryBuilder {
	return b.aggregate("MIN", column)
}

// Max adds MAX(column).
func (b *QueryBuilder) Max(column string) *QueryBuilder {
	return b.aggregate("MAX", column)
}

func (b *QueryBuilder) aggregate(fn, column string) *QueryBuilder {
	if b.err != nil {
		return b
	}
	if strings.TrimSpace(column) == "" {
		return b.fail(fn, ErrNoColumns)
	}
	b.addItem(fn + "(" + column + ")")
	return b
}

// ----------------------------------------------------------------------------
// Scalar functions
// ----------------------------------------------------------------------------

// Concat adds CONCAT(`a`, `b`, ...).
func (b *QueryBuilder) Concat(columns ...string) *QueryBuilder {
	if b.err != nil {
		return b
	}
	list, err := b.identList(columns)
	if err != nil {
		return b.fail("Concat", err)
	}
	b.addItem("CONCAT(" + list + ")")
	return b
}

// Substring adds SUBSTRING(`column`, :start) with start bound as a parameter.
func (b *QueryBuilder) Substring(column string, start int) *QueryBuilder {
	if b.err != nil {
		return b
	}
	q, err := b.ident(column)
	if err != nil {
		return b.fail("Substring", err)
	}
	p := b.quoter.Placeholder(b.binder.Bind(start))
	b.addItem("SUBSTRING(" + q + ", " + p + ")")
	return b
}

// SubstringLen adds SUBSTRING(`column`, :start, :length).
func (b *QueryBuilder) SubstringLen(column string, start, length int) *QueryBuilder {
	if b.err != nil {
		return b
	}
	q, err := b.ident(column)
	if err != nil {
		return b.fail("SubstringLen", err)
	}
	ps := b.quoter.Placeholder(b.binder.Bind(start))
	pl := b.quoter.Placeholder(b.binder.Bind(length))
	b.addItem("SUBSTRING(" + q + ", " + ps + ", " + pl + ")")
	return b
}

// DateFunction, izin verilen bir tarih fonksiyonunu kolon ve bağlı bir değer
// ile çağırır.
//
// Örnek:
//
//	qb.Select().DateFunction("DATEDIFF", "due_at", "2024-01-01").From("invoices")
//	// SELECT DATEDIFF(`due_at`, :param0) FROM `invoices`
func (b *QueryBuilder) DateFunction(fn, column string, value any) *QueryBuilder {
	if b.err != nil {
		return b
	}
	name, err := validation.NormalizeDateFunction(fn)
	if err != nil {
		return b.fail("DateFunction", err)
	}
	q, err := b.ident(column)
	if err != nil {
		return b.fail("DateFunction", err)
	}
	p := b.quoter.Placeholder(b.binder.Bind(value))
	b.addItem(name + "(" + q + ", " + p + ")")
	return b
}

// ----------------------------------------------------------------------------
// Arithmetic
// ----------------------------------------------------------------------------

// Add adds `column` + :paramN.
func (b *QueryBuilder) Add(column string, value any) *QueryBuilder {
	return b.arithmetic("Add", "+", column, value)
}

// Subtract adds `column` - :paramN.
func (b *QueryBuilder) Subtract(column string, value any) *QueryBuilder {
	return b.arithmetic("Subtract", "-", column, value)
}

// Multiply adds `column` * :paramN.
func (b *QueryBuilder) Multiply(column string, value any) *QueryBuilder {
	return b.arithmetic("Multiply", "*", column, value)
}

// Divide adds `column` / :paramN.
func (b *QueryBuilder) Divide(column string, value any) *QueryBuilder {
	return b.arithmetic("Divide", "/", column, value)
}

func (b *QueryBuilder) arithmetic(op, symbol, column string, value any) *QueryBuilder {
	if b.err != nil {
		return b
	}
	q, err := b.ident(column)
	if err != nil {
		return b.fail(op, err)
	}
	p := b.quoter.Placeholder(b.binder.Bind(value))
	b.addItem(q + " " + symbol + " " + p)
	return b
}
