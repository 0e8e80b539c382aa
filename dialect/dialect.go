// Package dialect, sorgu oluşturucunun hedeflediği SQL lehçesinin sözcük
// kurallarını tanımlar: tanımlayıcı tırnaklama, placeholder biçimi ve
// builder'ın kullandığı kapalı anahtar kelime kümeleri.
//
// Lehçe sabittir (MySQL / MariaDB, backtick tırnaklama). Bu paket SQL metni
// birleştirmez; yalnızca parçaların nasıl yazılacağına karar verir.
package dialect

import "strings"

// Quoter, kullanıcıdan gelen tablo/kolon/alias isimlerini SQL metnine
// girmeden önce güvenli hale getirir.
type Quoter interface {
	// Name, lehçenin adını döndürür ("mysql").
	Name() string

	// Quote, tanımlayıcıyı tırnak karakteriyle sarar ve içindeki her tırnak
	// karakterini ikiler.
	Quote(name string) string

	// Placeholder, isimli parametre için yer tutucu metni döndürür.
	Placeholder(name string) string
}

// ----------------------------------------------------------------------------
// JOIN Types
// ----------------------------------------------------------------------------

// JoinType, JOIN türünü belirtir.
type JoinType string

const (
	JoinInner JoinType = "INNER"
	JoinLeft  JoinType = "LEFT"
	JoinRight JoinType = "RIGHT"
	JoinFull  JoinType = "FULL"
)

// Valid reports whether t is one of the supported join types.
func (t JoinType) Valid() bool {
	switch t {
	case JoinInner, JoinLeft, JoinRight, JoinFull:
		return true
	}
	return false
}

// Keyword returns the SQL text for the join, e.g. "LEFT JOIN".
func (t JoinType) Keyword() string {
	return string(t) + " JOIN"
}

// ----------------------------------------------------------------------------
// Logical operators
// ----------------------------------------------------------------------------

// Logical, koşul grubundaki girdileri birbirine bağlayan operatördür.
type Logical string

const (
	LogicalAnd Logical = "AND"
	LogicalOr  Logical = "OR"
	LogicalNot Logical = "NOT"
)

// Valid reports whether l is AND, OR or NOT.
func (l Logical) Valid() bool {
	return l == LogicalAnd || l == LogicalOr || l == LogicalNot
}

// Joiner returns the token placed between entries of one group.
// NOT groups are negated as a whole, so their entries are AND-joined.
func (l Logical) Joiner() string {
	if l == LogicalOr {
		return "OR"
	}
	return "AND"
}

// Attach returns the token used to attach a new group to the buffer when no
// compound override is supplied.
func (l Logical) Attach() string {
	if l == LogicalOr {
		return "OR"
	}
	return "AND"
}

// ----------------------------------------------------------------------------
// Set operations
// ----------------------------------------------------------------------------

// SetOperator, iki sorguyu birleştiren küme operatörüdür.
type SetOperator string

const (
	SetUnion     SetOperator = "UNION"
	SetUnionAll  SetOperator = "UNION ALL"
	SetIntersect SetOperator = "INTERSECT"
	SetExcept    SetOperator = "EXCEPT"
)

// Valid reports whether op is a supported set operator.
func (op SetOperator) Valid() bool {
	switch op {
	case SetUnion, SetUnionAll, SetIntersect, SetExcept:
		return true
	}
	return false
}

// ----------------------------------------------------------------------------
// ORDER BY Types
// ----------------------------------------------------------------------------

// OrderDirection, sıralama yönünü belirtir.
type OrderDirection string

const (
	OrderAsc  OrderDirection = "ASC"
	OrderDesc OrderDirection = "DESC"
)

// Valid reports whether d is ASC or DESC.
func (d OrderDirection) Valid() bool {
	return d == OrderAsc || d == OrderDesc
}

// ParseOrderDirection normalizes a direction string. The empty string maps to ASC.
func ParseOrderDirection(s string) (OrderDirection, bool) {
	d := OrderDirection(strings.ToUpper(strings.TrimSpace(s)))
	if d == "" {
		return OrderAsc, true
	}
	return d, d.Valid()
}
