package securesql

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	"github.com/go-sql-driver/mysql"
)

/*
=======================================================================================================================
  EXECUTOR – Builder'ın veri deposuyla konuştuğu tek kapı

  Builder hiçbir zaman depolamaya doğrudan dokunmaz. Tamamlanmış ifade (metin + parametre haritası) ifade
  türüne göre Executor'ın ilgili metoduna gider:

  🔹 SELECT          → Query   → satırlar
  🔹 INSERT          → Insert  → üretilen kimlik (varsa)
  🔹 UPDATE / DELETE → Exec    → etkilenen satır sayısı
  🔹 DDL             → ExecDDL → parametresiz çalıştırma

  SQLExecutor bu sözleşmeyi database/sql üzerinde uygular. Açık bir işlem varsa tüm ifadeler o *sql.Tx
  üzerinden yürür.

  @author    Ahmet ALTUN
  @github    github.com/biyonik
  @linkedin  linkedin.com/in/biyonik
  @email     ahmet.altun60@gmail.com
=======================================================================================================================
*/

// Executor, tamamlanmış ifadeleri bir veri deposunda çalıştıran dış
// bileşendir. Tüm hatalar *DataAccessError olarak yüzeye çıkar.
type Executor interface {
	Query(ctx context.Context, statement string, params Params) ([]Row, error)
	Insert(ctx context.Context, statement string, params Params) (id int64, ok bool, err error)
	Exec(ctx context.Context, statement string, params Params) (rowsAffected int64, err error)
	ExecDDL(ctx context.Context, statement string) error
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// queryer, hem *sql.DB hem *sql.Tx yapılarının ortak olarak sağladığı
// fonksiyonları soyutlar.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Compile-time kontrolü: *sql.DB ve *sql.Tx gerçekten queryer'ı implement ediyor mu?
var (
	_ queryer  = (*sql.DB)(nil)
	_ queryer  = (*sql.Tx)(nil)
	_ Executor = (*SQLExecutor)(nil)
)

// SQLExecutor, Executor'ı bir *sql.DB üzerinde uygular. En fazla bir işlem
// açık tutar; işlem açıkken tüm ifadeler ona yönlendirilir.
type SQLExecutor struct {
	db    *sql.DB
	style PlaceholderStyle

	mu sync.Mutex
	tx *sql.Tx
}

// NewSQLExecutor wraps db. Use Positional for go-sql-driver/mysql.
func NewSQLExecutor(db *sql.DB, style PlaceholderStyle) *SQLExecutor {
	return &SQLExecutor{db: db, style: style}
}

// DB returns the underlying pool.
func (e *SQLExecutor) DB() *sql.DB {
	return e.db
}

// Close closes the underlying pool.
func (e *SQLExecutor) Close() error {
	return e.db.Close()
}

// InTransaction reports whether a transaction is open.
func (e *SQLExecutor) InTransaction() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tx != nil
}

func (e *SQLExecutor) conn() queryer {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.tx != nil {
		return e.tx
	}
	return e.db
}

// Query implements Executor.
func (e *SQLExecutor) Query(ctx context.Context, statement string, params Params) ([]Row, error) {
	text, args, err := bindStatement(statement, params, e.style)
	if err != nil {
		return nil, wrapDataAccess("query", statement, params, err)
	}

	rows, err := e.conn().QueryContext(ctx, text, args...)
	if err != nil {
		return nil, wrapDataAccess("query", statement, params, err)
	}

	out, err := collectRows(rows)
	if err != nil {
		return nil, wrapDataAccess("query", statement, params, err)
	}
	return out, nil
}

// Insert implements Executor. ok is false when the driver reports no
// generated id.
func (e *SQLExecutor) Insert(ctx context.Context, statement string, params Params) (int64, bool, error) {
	res, err := e.exec(ctx, "insert", statement, params)
	if err != nil {
		return 0, false, err
	}

	id, err := res.LastInsertId()
	if err != nil || id == 0 {
		return 0, false, nil
	}
	return id, true, nil
}

// Exec implements Executor.
func (e *SQLExecutor) Exec(ctx context.Context, statement string, params Params) (int64, error) {
	res, err := e.exec(ctx, "exec", statement, params)
	if err != nil {
		return 0, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, wrapDataAccess("exec", statement, params, err)
	}
	return n, nil
}

// ExecDDL implements Executor. The statement runs without arguments.
func (e *SQLExecutor) ExecDDL(ctx context.Context, statement string) error {
	if _, err := e.conn().ExecContext(ctx, statement); err != nil {
		return wrapDataAccess("ddl", statement, nil, err)
	}
	return nil
}

func (e *SQLExecutor) exec(ctx context.Context, op, statement string, params Params) (sql.Result, error) {
	text, args, err := bindStatement(statement, params, e.style)
	if err != nil {
		return nil, wrapDataAccess(op, statement, params, err)
	}

	res, err := e.conn().ExecContext(ctx, text, args...)
	if err != nil {
		return nil, wrapDataAccess(op, statement, params, err)
	}
	return res, nil
}

// Begin implements Executor. Calling it while a transaction is open is a no-op.
func (e *SQLExecutor) Begin(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.tx != nil {
		return nil
	}
	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapDataAccess("begin transaction", "", nil, err)
	}
	e.tx = tx
	return nil
}

// Commit implements Executor. Without an open transaction it does nothing.
func (e *SQLExecutor) Commit(_ context.Context) error {
	e.mu.Lock()
	tx := e.tx
	e.tx = nil
	e.mu.Unlock()

	if tx == nil {
		return nil
	}
	if err := tx.Commit(); err != nil {
		return wrapDataAccess("commit transaction", "", nil, err)
	}
	return nil
}

// Rollback implements Executor. It is idempotent.
func (e *SQLExecutor) Rollback(_ context.Context) error {
	e.mu.Lock()
	tx := e.tx
	e.tx = nil
	e.mu.Unlock()

	if tx == nil {
		return nil
	}
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return wrapDataAccess("rollback transaction", "", nil, err)
	}
	return nil
}

// decodeServerError copies the MySQL error number and SQLSTATE onto e.
func decodeServerError(e *DataAccessError) {
	var me *mysql.MySQLError
	if !errors.As(e.Err, &me) {
		return
	}
	e.Number = me.Number
	if me.SQLState != [5]byte{} {
		e.SQLState = string(me.SQLState[:])
	}
}
