package securesql

import (
	"strconv"

	"github.com/biyonik/go-secure-sql/internal/validation"
)

// Params, isimli placeholder'lara bağlanan değerleri tutar.
// Anahtarlar başındaki ':' olmadan saklanır.
type Params map[string]any

// Clone returns a shallow copy of p.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Binder, değerleri parametre haritasına kaydeder ve SQL metnine yazılacak
// placeholder adını üretir. Kendisi hiçbir SQL metni üretmez.
type Binder struct {
	params Params
}

// NewBinder returns an empty binder.
func NewBinder() *Binder {
	return &Binder{params: make(Params)}
}

// Bind stores value under an automatic name "paramN", where N starts at the
// current number of bound values and increments until the name is free.
func (b *Binder) Bind(value any) string {
	for n := len(b.params); ; n++ {
		name := "param" + strconv.Itoa(n)
		if _, taken := b.params[name]; !taken {
			b.params[name] = value
			return name
		}
	}
}

// BindNamed stores value under the placeholder-safe form of name. When that
// name is already bound a numeric suffix (_1, _2, ...) is appended, so no
// earlier value is ever overwritten.
func (b *Binder) BindNamed(name string, value any) string {
	base := validation.PlaceholderName(name)
	candidate := base
	for i := 1; ; i++ {
		if _, taken := b.params[candidate]; !taken {
			b.params[candidate] = value
			return candidate
		}
		candidate = base + "_" + strconv.Itoa(i)
	}
}

// Set, verilen isme değeri doğrudan yazar; mevcut değer varsa üzerine yazılır.
// LIMIT ve OFFSET gibi tek bir placeholder'ı paylaşan ifadeler içindir.
func (b *Binder) Set(name string, value any) {
	b.params[name] = value
}

// Params returns a copy of the bound values.
func (b *Binder) Params() Params {
	return b.params.Clone()
}

// Len reports how many values are bound.
func (b *Binder) Len() int {
	return len(b.params)
}

// Reset drops every bound value.
func (b *Binder) Reset() {
	b.params = make(Params)
}
