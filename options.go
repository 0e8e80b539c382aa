package securesql

// -----------------------------------------------------------------------------
//  Bu dosya, QueryBuilder'ın yapılandırma katmanını oluşturan Option
//  mimarisini içerir. Her With* fonksiyonu builder kurulurken enjekte edilen
//  küçük bir ayardır: hangi Executor'a gidileceği, sonuçların nerede
//  saklanacağı ve ifadelerin nereye loglanacağı.
//
//  -- @author   Ahmet ALTUN
//  -- @github   github.com/biyonik
//  -- @linkedin linkedin.com/in/biyonik
//  -- @email    ahmet.altun60@gmail.com
// -----------------------------------------------------------------------------

// Option, bir QueryBuilder örneği üzerinde çalışan yapılandırma
// fonksiyonlarının temel imzasıdır.
type Option func(*QueryBuilder)

// WithExecutor, Execute çağrılarının yönlendirileceği Executor'ı ayarlar.
//
// Örnek:
//
//	exec := securesql.NewSQLExecutor(db, securesql.Positional)
//	qb := securesql.New(securesql.WithExecutor(exec))
func WithExecutor(e Executor) Option {
	return func(b *QueryBuilder) {
		b.executor = e
	}
}

// WithCache, ExecuteCached'in kullanacağı sonuç deposunu değiştirir.
// Varsayılan, builder'a özel bir MemoryCache'dir.
//
// Örnek:
//
//	qb := securesql.New(securesql.WithCache(rediscache.New(client)))
func WithCache(c ResultCache) Option {
	return func(b *QueryBuilder) {
		if c != nil {
			b.cache = c
		}
	}
}

// WithLogger fonksiyonu özel bir logger tanımlamaya yarar.
//
// Örnek:
//
//	qb := securesql.New(securesql.WithLogger(securesql.NewSlogLogger(nil)))
func WithLogger(l Logger) Option {
	return func(b *QueryBuilder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithDebug fonksiyonu debug modunu açar. Başka bir logger verilmemişse
// ifadeler slog.Default() üzerinden loglanır.
func WithDebug(enabled bool) Option {
	return func(b *QueryBuilder) {
		b.debug = enabled
	}
}

// applyOptions, verilen Option'ları sırayla builder üzerine uygular.
func applyOptions(b *QueryBuilder, opts []Option) {
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	if b.debug {
		if _, nop := b.logger.(NopLogger); nop {
			b.logger = NewSlogLogger(nil)
		}
	}
}
