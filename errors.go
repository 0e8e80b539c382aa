package securesql

import (
	"errors"
	"fmt"
	"strings"

	"github.com/biyonik/go-secure-sql/internal/validation"
)

// Sentinel errors for go-secure-sql.
// These errors can be checked using errors.Is().
var (
	// ErrInvalidIdentifier is returned when a table, column, alias or index
	// name cannot be used even after quoting.
	ErrInvalidIdentifier = validation.ErrInvalidIdentifier

	// ErrInvalidKeyword is returned when a keyword-like argument (compound
	// operator, date function, engine, charset) is not in the allowed set.
	ErrInvalidKeyword = validation.ErrInvalidKeyword

	// ErrMisuse is matched by every MisuseError.
	ErrMisuse = errors.New("securesql: builder misuse")

	// ErrDataAccess is matched by every DataAccessError.
	ErrDataAccess = errors.New("securesql: data access failure")

	// ErrWhereRequired is returned when AndWhere/OrWhere/NotWhere is used
	// before Where opened the condition clause.
	ErrWhereRequired = errors.New("securesql: Where must be called before compound conditions")

	// ErrWhereAlreadySet is returned when Where is called twice on one statement.
	ErrWhereAlreadySet = errors.New("securesql: WHERE clause already present")

	// ErrNoConditions is returned when a condition method receives no pairs.
	ErrNoConditions = errors.New("securesql: no conditions specified")

	// ErrNoColumns is returned when an insert/update has no columns.
	ErrNoColumns = errors.New("securesql: no columns specified")

	// ErrNoTable is returned when a table argument is empty.
	ErrNoTable = errors.New("securesql: no table specified")

	// ErrNothingToAlias is returned when Alias is called on an empty statement.
	ErrNothingToAlias = errors.New("securesql: nothing to alias")

	// ErrEmptyStatement is returned when an empty statement is executed.
	ErrEmptyStatement = errors.New("securesql: empty statement")

	// ErrNoExecutor is returned when Execute is called without an Executor.
	ErrNoExecutor = errors.New("securesql: no executor configured")

	// ErrUnknownPlaceholder is returned when a statement references a
	// parameter that is missing from the parameter map.
	ErrUnknownPlaceholder = errors.New("securesql: placeholder has no bound value")

	// ErrNilDestination is returned when a nil pointer is passed to Decode.
	ErrNilDestination = errors.New("securesql: nil destination pointer")

	// ErrInvalidDestination is returned when the destination is not a pointer to struct/slice.
	ErrInvalidDestination = errors.New("securesql: destination must be a pointer to struct or slice of structs")

	// ErrNoRows is returned when Decode targets a single struct and the result is empty.
	ErrNoRows = errors.New("securesql: no rows in result set")
)

// MisuseError, builder'ın yanlış kullanımını (eksik argüman, sıralama hatası,
// izin verilmeyen anahtar kelime) anlatır. İlk MisuseError builder üzerinde
// biriktirilir ve ToSQL/Execute tarafından döndürülür.
type MisuseError struct {
	Op  string
	Err error
}

func (e *MisuseError) Error() string {
	return "securesql: " + e.Op + ": " + e.Err.Error()
}

func (e *MisuseError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrMisuse) hold alongside the wrapped cause.
func (e *MisuseError) Is(target error) bool {
	return target == ErrMisuse
}

func misuse(op string, err error) *MisuseError {
	return &MisuseError{Op: op, Err: err}
}

// DataAccessError, Executor'dan dönen bir hatayı ifade ve parametre
// bilgisiyle sarar.
//
// MySQL sunucu hatalarında Number ve SQLState doldurulur. Hata bir işlem
// içinde oluştuysa ve geri alma da başarısız olduysa RollbackErr taşınır.
type DataAccessError struct {
	Op          string
	Statement   string
	Params      Params
	Number      uint16
	SQLState    string
	Err         error
	RollbackErr error
}

func (e *DataAccessError) Error() string {
	var b strings.Builder
	b.WriteString("securesql: ")
	b.WriteString(e.Op)
	b.WriteString(" failed")
	if e.Number != 0 {
		fmt.Fprintf(&b, " (mysql %d", e.Number)
		if e.SQLState != "" {
			b.WriteString(" / " + e.SQLState)
		}
		b.WriteString(")")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	if e.RollbackErr != nil {
		b.WriteString("; rollback: ")
		b.WriteString(e.RollbackErr.Error())
	}
	return b.String()
}

func (e *DataAccessError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrDataAccess) hold.
func (e *DataAccessError) Is(target error) bool {
	return target == ErrDataAccess
}

// wrapDataAccess wraps err unless it already is a DataAccessError.
func wrapDataAccess(op, statement string, params Params, err error) *DataAccessError {
	var dae *DataAccessError
	if errors.As(err, &dae) {
		return dae
	}
	dae = &DataAccessError{Op: op, Statement: statement, Params: params, Err: err}
	decodeServerError(dae)
	return dae
}
