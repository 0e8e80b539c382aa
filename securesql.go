package securesql

import (
	"context"
	"database/sql"
)

// Version, go-secure-sql kütüphanesinin mevcut sürümünü belirtir.
const Version = "0.2.0"

// OpenDB, Config ile bir MySQL bağlantı havuzu açar, havuz ayarlarını uygular
// ve bağlantıyı doğrular.
func OpenDB(ctx context.Context, cfg *Config) (*sql.DB, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, wrapDataAccess("connect", "", nil, err)
	}

	// Bağlantı havuz ayarlarını uygula
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLife > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLife)
	}
	if cfg.ConnMaxIdle > 0 {
		db.SetConnMaxIdleTime(cfg.ConnMaxIdle)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, wrapDataAccess("ping", "", nil, err)
	}
	return db, nil
}

// Open, Config ile MySQL'e bağlanır ve bu bağlantı üzerinde çalışan bir
// QueryBuilder döndürür. Builder'ın Close metodu havuzu kapatır.
//
// Örnek:
//
//	cfg := securesql.DefaultConfig()
//	cfg.Database, cfg.Username, cfg.Password = "app", "app", "secret"
//	qb, err := securesql.Open(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer qb.Close()
func Open(ctx context.Context, cfg *Config, opts ...Option) (*QueryBuilder, error) {
	db, err := OpenDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	exec := NewSQLExecutor(db, Positional)
	return New(append([]Option{WithExecutor(exec)}, opts...)...), nil
}
