package securesql

import "context"

// -----------------------------------------------------------------------------
//  İşlem yönetimi
//
//  Builder yalnızca bir bayrak tutar ve asıl işi Executor'a devreder:
//
//   • BeginTransaction açık bir işlem yokken işlem başlatır
//   • Commit / Rollback yalnızca açık bir işlem varsa Executor'a gider
//   • Bayrak, Executor hata dönse bile kapatılır
//   • İç içe işlem yoktur; ikinci BeginTransaction etkisizdir
//
//  -- @author   Ahmet ALTUN
//  -- @github   github.com/biyonik
//  -- @linkedin linkedin.com/in/biyonik
//  -- @email    ahmet.altun60@gmail.com
// -----------------------------------------------------------------------------

// BeginTransaction starts a transaction unless one is already open.
func (b *QueryBuilder) BeginTransaction(ctx context.Context) error {
	if b.inTx {
		return nil
	}
	if b.executor == nil {
		return ErrNoExecutor
	}
	if err := b.executor.Begin(ctx); err != nil {
		return wrapDataAccess("begin transaction", "", nil, err)
	}
	b.inTx = true
	return nil
}

// Commit, açık işlemi onaylar. Açık işlem yoksa hiçbir şey yapmaz.
func (b *QueryBuilder) Commit(ctx context.Context) error {
	if !b.inTx {
		return nil
	}
	b.inTx = false
	if err := b.executor.Commit(ctx); err != nil {
		return wrapDataAccess("commit transaction", "", nil, err)
	}
	return nil
}

// Rollback, açık işlemi geri alır. Açık işlem yoksa hiçbir şey yapmaz;
// tekrar tekrar çağrılabilir.
func (b *QueryBuilder) Rollback(ctx context.Context) error {
	if !b.inTx {
		return nil
	}
	b.inTx = false
	if err := b.executor.Rollback(ctx); err != nil {
		return wrapDataAccess("rollback transaction", "", nil, err)
	}
	return nil
}

// InTransaction reports whether the builder opened a transaction that is
// still pending.
func (b *QueryBuilder) InTransaction() bool {
	return b.inTx
}

// Transaction, fn'i bir işlem içinde çalıştırır. fn hata dönerse veya panic
// olursa işlem geri alınır, aksi halde onaylanır.
//
// Örnek:
//
//	err := qb.Transaction(ctx, func(qb *securesql.QueryBuilder) error {
//	    if _, err := qb.Update("accounts", securesql.Set("balance", 90)).
//	        Where(securesql.Eq("id", 1)).Execute(ctx); err != nil {
//	        return err
//	    }
//	    _, err := qb.Update("accounts", securesql.Set("balance", 110)).
//	        Where(securesql.Eq("id", 2)).Execute(ctx)
//	    return err
//	})
func (b *QueryBuilder) Transaction(ctx context.Context, fn func(*QueryBuilder) error) error {
	if err := b.BeginTransaction(ctx); err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = b.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(b); err != nil {
		if rbErr := b.Rollback(ctx); rbErr != nil {
			return rbErr
		}
		return err
	}

	return b.Commit(ctx)
}
