package securesql

import (
	"context"
	"io"
	"strings"
	"time"
)

// Execute, biriken ifadeyi türüne göre Executor'a gönderir:
//
//   - KindDDL    → ExecDDL (parametresiz), Result.OK
//   - KindInsert → Insert, Result.LastInsertID / HasInsertID
//   - KindModify → Exec, Result.RowsAffected
//   - KindSelect → Query, Result.Rows
//
// DDL dışındaki bir ifade başarısız olursa açık işlem geri alınır ve hata
// *DataAccessError olarak döner. Sonuç ne olursa olsun ifade, parametreler ve
// biriken hata her denemeden sonra temizlenir.
func (b *QueryBuilder) Execute(ctx context.Context) (*Result, error) {
	return b.execute(ctx, false)
}

// ExecuteCached, Execute gibidir; ancak SELECT sonuçları CacheKey(ifade,
// parametreler) altında saklanır ve aynı ifade tekrar geldiğinde Executor
// çağrılmadan döndürülür.
func (b *QueryBuilder) ExecuteCached(ctx context.Context) (*Result, error) {
	return b.execute(ctx, true)
}

func (b *QueryBuilder) execute(ctx context.Context, useCache bool) (res *Result, err error) {
	start := time.Now()
	statement, params, kind := b.SQL(), b.Params(), b.kind
	cached := false

	defer func() {
		b.logger.Log(Entry{
			Kind:      kind,
			Statement: statement,
			Params:    params,
			Duration:  time.Since(start),
			Cached:    cached,
			Err:       err,
		})
	}()
	defer b.Reset()

	if b.err != nil {
		return nil, b.err
	}
	if b.executor == nil {
		return nil, ErrNoExecutor
	}
	if strings.TrimSpace(statement) == "" {
		return nil, misuse("Execute", ErrEmptyStatement)
	}

	useCache = useCache && kind == KindSelect
	var key string
	if useCache {
		key = CacheKey(statement, params)
		if hit, ok, cerr := b.cache.Get(ctx, key); cerr == nil && ok && hit != nil {
			cached = true
			out := hit.Clone()
			out.Cached = true
			return out, nil
		}
	}

	res, err = b.dispatch(ctx, kind, statement, params)
	if err != nil {
		dae := wrapDataAccess(kind.String(), statement, params, err)
		if kind != KindDDL {
			if rbErr := b.Rollback(ctx); rbErr != nil {
				dae.RollbackErr = rbErr
			}
		}
		return nil, dae
	}

	if useCache {
		_ = b.cache.Set(ctx, key, res)
	}
	return res, nil
}

func (b *QueryBuilder) dispatch(ctx context.Context, kind StatementKind, statement string, params Params) (*Result, error) {
	res := &Result{Kind: kind}

	switch kind {
	case KindDDL:
		if err := b.executor.ExecDDL(ctx, statement); err != nil {
			return nil, err
		}

	case KindInsert:
		id, ok, err := b.executor.Insert(ctx, statement, params)
		if err != nil {
			return nil, err
		}
		res.LastInsertID, res.HasInsertID = id, ok

	case KindModify:
		n, err := b.executor.Exec(ctx, statement, params)
		if err != nil {
			return nil, err
		}
		res.RowsAffected = n

	default:
		rows, err := b.executor.Query(ctx, statement, params)
		if err != nil {
			return nil, err
		}
		res.Rows = rows
	}

	res.OK = true
	return res, nil
}

// Close closes the executor when it holds a resource, such as the pool
// opened by Open.
func (b *QueryBuilder) Close() error {
	if c, ok := b.executor.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
