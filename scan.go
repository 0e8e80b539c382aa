package securesql

import (
	"database/sql"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"
)

//
// =====================================================================================
// 📚 SECURESQL – SATIR OKUMA BİRİMİ
// -------------------------------------------------------------------------------------
// Executor'dan dönen satırlar önce ilişkisel (kolon adı -> değer) haritalara
// dönüştürülür. Result.Decode ise bu haritaları `db:"column"` tag'lerine göre
// Go struct'larına aktarır:
//
//   1. Struct field'ları reflection ile taranır
//   2. `db` tag'lerine göre kolon–field eşlemesi oluşturulur
//   3. Çıkan sonuç cache'e alınır
//   4. Her satır için yeni bir struct doldurulur
//
// @author    Ahmet ALTUN
// @github    github.com/biyonik
// @linkedin  linkedin.com/in/biyonik
// @email     ahmet.altun60@gmail.com
// =====================================================================================
//

// collectRows reads every row into a Row map and closes rows. []byte values
// become strings.
func collectRows(rows *sql.Rows) ([]Row, error) {
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	out := make([]Row, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		dests := make([]any, len(columns))
		for i := range values {
			dests[i] = &values[i]
		}
		if err := rows.Scan(dests...); err != nil {
			return nil, err
		}

		row := make(Row, len(columns))
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
				continue
			}
			row[col] = values[i]
		}
		out = append(out, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// structInfo → Bir struct'ın kolon eşlemeleri.
type structInfo struct {
	columns map[string][]int // kolon adı -> field index path
}

var structCache sync.Map // reflect.Type → *structInfo

// Decode, sonuç satırlarını dest'e aktarır. dest bir struct pointer'ı
// (ilk satır), struct slice pointer'ı veya struct pointer slice'ı pointer'ı
// olabilir. Kolon eşleşmesi `db` tag'i ile, tag yoksa küçük harfli field
// adıyla yapılır. Eşleşmeyen kolonlar yok sayılır.
//
// Örnek:
//
//	var users []User
//	err := res.Decode(&users)
func (r *Result) Decode(dest any) error {
	v := reflect.ValueOf(dest)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return ErrNilDestination
	}
	elem := v.Elem()

	switch elem.Kind() {
	case reflect.Struct:
		if r.Len() == 0 {
			return ErrNoRows
		}
		return decodeRow(r.Rows[0], elem)

	case reflect.Slice:
		elemType := elem.Type().Elem()
		isPtr := elemType.Kind() == reflect.Ptr
		if isPtr {
			elemType = elemType.Elem()
		}
		if elemType.Kind() != reflect.Struct {
			return ErrInvalidDestination
		}

		out := reflect.MakeSlice(elem.Type(), 0, r.Len())
		for _, row := range r.Rows {
			item := reflect.New(elemType)
			if err := decodeRow(row, item.Elem()); err != nil {
				return err
			}
			if isPtr {
				out = reflect.Append(out, item)
			} else {
				out = reflect.Append(out, item.Elem())
			}
		}
		elem.Set(out)
		return nil
	}

	return ErrInvalidDestination
}

func decodeRow(row Row, target reflect.Value) error {
	info := getStructInfo(target.Type())
	for col, value := range row {
		index, ok := info.columns[strings.ToLower(col)]
		if !ok {
			continue
		}
		if err := assign(target.FieldByIndex(index), value); err != nil {
			return fmt.Errorf("securesql: decode column %q: %w", col, err)
		}
	}
	return nil
}

// getStructInfo → Struct metadata cache erişim fonksiyonu.
func getStructInfo(t reflect.Type) *structInfo {
	if cached, ok := structCache.Load(t); ok {
		return cached.(*structInfo)
	}

	info := &structInfo{columns: make(map[string][]int)}
	parseStruct(t, nil, info)
	structCache.Store(t, info)
	return info
}

// parseStruct → gömülü struct'lar dahil tüm alanları tarar.
func parseStruct(t reflect.Type, index []int, info *structInfo) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		fieldIndex := append(append([]int{}, index...), i)

		tag := field.Tag.Get("db")
		if tag == "-" {
			continue
		}
		if field.Anonymous && field.Type.Kind() == reflect.Struct && tag == "" {
			parseStruct(field.Type, fieldIndex, info)
			continue
		}

		name := strings.Split(tag, ",")[0]
		if name == "" {
			name = field.Name
		}
		info.columns[strings.ToLower(name)] = fieldIndex
	}
}

var scannerType = reflect.TypeOf((*sql.Scanner)(nil)).Elem()

// assign stores value into field, converting between the representations
// drivers and JSON caches produce (int64, float64, string, time.Time).
func assign(field reflect.Value, value any) error {
	if field.CanAddr() && field.Addr().Type().Implements(scannerType) {
		return field.Addr().Interface().(sql.Scanner).Scan(value)
	}

	if value == nil {
		field.Set(reflect.Zero(field.Type()))
		return nil
	}

	if field.Kind() == reflect.Ptr {
		ptr := reflect.New(field.Type().Elem())
		if err := assign(ptr.Elem(), value); err != nil {
			return err
		}
		field.Set(ptr)
		return nil
	}

	src := reflect.ValueOf(value)
	if src.Type().AssignableTo(field.Type()) {
		field.Set(src)
		return nil
	}

	if s, ok := value.(string); ok {
		return assignString(field, s)
	}

	switch field.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		if src.Type().ConvertibleTo(field.Type()) && isNumeric(src.Kind()) {
			field.Set(src.Convert(field.Type()))
			return nil
		}
	case reflect.Bool:
		if isNumeric(src.Kind()) {
			field.SetBool(!src.IsZero())
			return nil
		}
	case reflect.String:
		field.SetString(fmt.Sprint(value))
		return nil
	}

	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

func assignString(field reflect.Value, s string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(s)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(n)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetUint(n)
		return nil
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetFloat(f)
		return nil
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		field.SetBool(b)
		return nil
	case reflect.Slice:
		if field.Type().Elem().Kind() == reflect.Uint8 {
			field.SetBytes([]byte(s))
			return nil
		}
	case reflect.Struct:
		if field.Type() == reflect.TypeOf(time.Time{}) {
			t, err := time.Parse(time.RFC3339Nano, s)
			if err != nil {
				t, err = time.Parse(time.DateTime, s)
			}
			if err != nil {
				return err
			}
			field.Set(reflect.ValueOf(t))
			return nil
		}
	}
	return fmt.Errorf("cannot assign string to %s", field.Type())
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
