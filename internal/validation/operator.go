package validation

import "strings"

// allowedOperators, koşullarda kullanılabilecek karşılaştırma operatörleridir.
var allowedOperators = map[string]bool{
	// Karşılaştırma
	"=":   true,
	"!=":  true,
	"<>":  true,
	"<":   true,
	">":   true,
	"<=":  true,
	">=":  true,
	"<=>": true, // NULL güvenli eşitlik

	// Desen
	"LIKE":     true,
	"NOT LIKE": true,

	// NULL kontrolü, değer bağlanmaz
	"IS":     true,
	"IS NOT": true,

	// Liste ve aralık
	"IN":          true,
	"NOT IN":      true,
	"BETWEEN":     true,
	"NOT BETWEEN": true,
}

// NormalizeOperator, bir operatörü büyük harfli ve tek boşluklu standart
// biçime çevirir. Listede olmayan operatörler için OperatorError döner.
func NormalizeOperator(op string) (string, error) {
	normalized := normalize(op)
	if !allowedOperators[normalized] {
		return "", &OperatorError{Operator: op, Reason: "operator not in allowed list"}
	}
	return normalized, nil
}

// IsNullOperator reports IS / IS NOT.
func IsNullOperator(op string) bool {
	return op == "IS" || op == "IS NOT"
}

// IsListOperator reports IN / NOT IN.
func IsListOperator(op string) bool {
	return op == "IN" || op == "NOT IN"
}

// IsRangeOperator reports BETWEEN / NOT BETWEEN.
func IsRangeOperator(op string) bool {
	return op == "BETWEEN" || op == "NOT BETWEEN"
}

// OperatorError, operatör doğrulama hatasını temsil eder.
type OperatorError struct {
	Operator string
	Reason   string
}

func (e *OperatorError) Error() string {
	return "securesql: invalid operator '" + strings.TrimSpace(e.Operator) + "': " + e.Reason
}

// Is makes errors.Is(err, ErrInvalidKeyword) hold.
func (e *OperatorError) Is(target error) bool {
	return target == ErrInvalidKeyword
}
