package validation

import (
	"errors"
	"strings"
)

// ErrInvalidKeyword is matched by every KeywordError.
var ErrInvalidKeyword = errors.New("securesql: invalid SQL keyword")

// compoundOperators, koşul gruplarını önceki gruplara bağlamak için izin
// verilen bağlaçlardır.
var compoundOperators = map[string]bool{
	"AND":     true,
	"OR":      true,
	"XOR":     true,
	"AND NOT": true,
	"OR NOT":  true,
}

// dateFunctions are the MySQL functions accepted by DateFunction; each takes
// a column and one scalar operand.
var dateFunctions = map[string]bool{
	"ADDDATE":     true,
	"SUBDATE":     true,
	"ADDTIME":     true,
	"SUBTIME":     true,
	"DATEDIFF":    true,
	"TIMEDIFF":    true,
	"DATE_FORMAT": true,
	"TIME_FORMAT": true,
	"PERIOD_ADD":  true,
	"PERIOD_DIFF": true,
}

var triggerTimings = map[string]bool{"BEFORE": true, "AFTER": true}

var triggerEvents = map[string]bool{"INSERT": true, "UPDATE": true, "DELETE": true}

// normalize collapses inner whitespace and upper-cases s.
func normalize(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), " "))
}

// NormalizeCompound, bir bağlaç operatörünü standart biçime getirir.
// İzin verilen listede değilse hata döner.
func NormalizeCompound(op string) (string, error) {
	n := normalize(op)
	if !compoundOperators[n] {
		return "", &KeywordError{Kind: "compound operator", Keyword: op, Reason: "operator not in allowed list"}
	}
	return n, nil
}

// NormalizeDateFunction upper-cases fn and checks it against the whitelist.
func NormalizeDateFunction(fn string) (string, error) {
	n := normalize(fn)
	if !dateFunctions[n] {
		return "", &KeywordError{Kind: "date function", Keyword: fn, Reason: "function not in allowed list"}
	}
	return n, nil
}

// NormalizeTriggerTiming accepts BEFORE or AFTER.
func NormalizeTriggerTiming(timing string) (string, error) {
	n := normalize(timing)
	if !triggerTimings[n] {
		return "", &KeywordError{Kind: "trigger timing", Keyword: timing, Reason: "must be BEFORE or AFTER"}
	}
	return n, nil
}

// NormalizeTriggerEvent accepts INSERT, UPDATE or DELETE.
func NormalizeTriggerEvent(event string) (string, error) {
	n := normalize(event)
	if !triggerEvents[n] {
		return "", &KeywordError{Kind: "trigger event", Keyword: event, Reason: "must be INSERT, UPDATE or DELETE"}
	}
	return n, nil
}

// KeywordError, anahtar kelime doğrulama hatasını temsil eder.
type KeywordError struct {
	Kind    string
	Keyword string
	Reason  string
}

// Error, error arayüzünü uygular ve hatayı açıklayıcı string olarak döner.
func (e *KeywordError) Error() string {
	return "securesql: invalid " + e.Kind + " '" + e.Keyword + "': " + e.Reason
}

// Is makes errors.Is(err, ErrInvalidKeyword) hold.
func (e *KeywordError) Is(target error) bool {
	return target == ErrInvalidKeyword
}
