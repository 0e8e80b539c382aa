// Package validation, builder'a gelen girdilerin SQL metnine dönüşmeden önce
// kontrol edilmesini sağlayan dahili yardımcıları içerir.
//
// Tanımlayıcılar her zaman tırnaklanır; buradaki kontroller enjeksiyonu değil,
// tırnaklamanın bile kurtaramayacağı hatalı girdileri (boş isim, NUL bayt,
// geçersiz UTF-8, MySQL uzunluk sınırı) yakalar. Tırnaklanmadan yazılan
// anahtar-kelime benzeri değerler (ENGINE, CHARSET, fonksiyon adları) ise
// katı bir desenle doğrulanır.
package validation

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxIdentifierLength is the MySQL limit for table, column, index and
// constraint names.
const MaxIdentifierLength = 64

// ErrInvalidIdentifier is matched by every IdentifierError.
var ErrInvalidIdentifier = errors.New("securesql: invalid SQL identifier")

// bareWordRegex matches values written into SQL unquoted, such as engine,
// charset and collation names.
var bareWordRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// ValidateIdentifier, verilen ismin tırnaklanarak kullanılabilir bir SQL
// tanımlayıcısı olup olmadığını kontrol eder.
func ValidateIdentifier(id string) error {
	if id == "" {
		return &IdentifierError{Identifier: id, Reason: "identifier cannot be empty"}
	}
	if utf8.RuneCountInString(id) > MaxIdentifierLength {
		return &IdentifierError{Identifier: id, Reason: "identifier exceeds maximum length of 64 characters"}
	}
	if !utf8.ValidString(id) {
		return &IdentifierError{Identifier: id, Reason: "identifier is not valid UTF-8"}
	}
	if strings.ContainsRune(id, 0) {
		return &IdentifierError{Identifier: id, Reason: "identifier contains a NUL byte"}
	}
	if strings.TrimSpace(id) != id {
		return &IdentifierError{Identifier: id, Reason: "identifier has leading or trailing whitespace"}
	}
	return nil
}

// ValidateIdentifiers validates every id and returns the first failure.
func ValidateIdentifiers(ids []string) error {
	if len(ids) == 0 {
		return &IdentifierError{Reason: "at least one identifier is required"}
	}
	for _, id := range ids {
		if err := ValidateIdentifier(id); err != nil {
			return err
		}
	}
	return nil
}

// ValidateBareWord checks a value that is emitted without quoting.
func ValidateBareWord(kind, word string) error {
	if !bareWordRegex.MatchString(word) {
		return &KeywordError{Kind: kind, Keyword: word, Reason: "must be a bare word of letters, digits and underscores"}
	}
	return nil
}

// PlaceholderName, bir kolon adını isimli parametre olarak kullanılabilir
// biçime çevirir: harf, rakam ve alt çizgi dışındaki her karakter "_" olur.
// Sonuç boşsa "p" döner; rakamla başlıyorsa başına "_" eklenir.
func PlaceholderName(column string) string {
	var b strings.Builder
	b.Grow(len(column))
	for _, r := range column {
		switch {
		case r == '_',
			r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	name := b.String()
	if name == "" {
		return "p"
	}
	if name[0] >= '0' && name[0] <= '9' {
		return "_" + name
	}
	return name
}

// IdentifierError, tanımlayıcı doğrulama hatalarını temsil eder.
type IdentifierError struct {
	Identifier string
	Reason     string
}

// Error, error arayüzünü uygular.
func (e *IdentifierError) Error() string {
	if e.Identifier == "" {
		return "securesql: invalid identifier: " + e.Reason
	}
	return "securesql: invalid identifier '" + e.Identifier + "': " + e.Reason
}

// Is makes errors.Is(err, ErrInvalidIdentifier) hold.
func (e *IdentifierError) Is(target error) bool {
	return target == ErrInvalidIdentifier
}
