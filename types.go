package securesql

import (
	"net"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
)

/*
 * ----------------------------------------------------------------------------
 * SECURESQL TYPE DEFINITIONS
 * ----------------------------------------------------------------------------
 *
 * Bu dosya, builder ile Executor arasında taşınan veri tiplerini ve bağlantı
 * yapılandırmasını tanımlar.
 *
 * Burada yapılanlar:
 * 1. Result: SELECT satırları, INSERT kimliği, etkilenen satır sayısı ve DDL
 * başarısı tek bir sonuç tipinde toplanır.
 * 2. Config: bağlantının nereye ve nasıl (havuz, charset, TLS) kurulacağı.
 *
 * @author Ahmet ALTUN
 * @github github.com/biyonik
 * @linkedin linkedin.com/in/biyonik
 * @email ahmet.altun60@gmail.com
 * ----------------------------------------------------------------------------
 */

// ----------------------------------------------------------------------------
// Result Types
// ----------------------------------------------------------------------------

// Row, SELECT sonucundaki tek bir satırdır: kolon adı -> değer.
// Sürücüden []byte olarak gelen değerler string'e çevrilmiş olarak tutulur.
type Row map[string]any

// Result, Execute çağrısının ifade türüne göre doldurulan sonucudur.
//
//   - KindSelect: Rows
//   - KindInsert: LastInsertID ve HasInsertID
//   - KindModify: RowsAffected
//   - KindDDL:    OK
type Result struct {
	Kind         StatementKind `json:"kind"`
	Rows         []Row         `json:"rows,omitempty"`
	LastInsertID int64         `json:"last_insert_id,omitempty"`
	HasInsertID  bool          `json:"has_insert_id,omitempty"`
	RowsAffected int64         `json:"rows_affected,omitempty"`
	OK           bool          `json:"ok"`

	// Cached is true when the rows came from the result cache.
	Cached bool `json:"-"`
}

// Clone returns a copy of r whose Rows slice and Row maps are not shared
// with r.
func (r *Result) Clone() *Result {
	if r == nil {
		return nil
	}
	out := *r
	if r.Rows != nil {
		out.Rows = make([]Row, len(r.Rows))
		for i, row := range r.Rows {
			if row == nil {
				continue
			}
			cp := make(Row, len(row))
			for k, v := range row {
				cp[k] = v
			}
			out.Rows[i] = cp
		}
	}
	return &out
}

// Len returns the number of rows.
func (r *Result) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Rows)
}

// ----------------------------------------------------------------------------
// Configuration Types
// ----------------------------------------------------------------------------

// Config, MySQL bağlantısının yapılandırma şemasıdır.
type Config struct {
	Host         string        // Veritabanı sunucusunun adresi (IP veya domain)
	Port         int           // Bağlantı portu
	Database     string        // Bağlanılacak veritabanı (schema) adı
	Username     string        // Yetkilendirme için kullanıcı adı
	Password     string        // Yetkilendirme için parola
	Charset      string        // Karakter seti (varsayılan: utf8mb4)
	Collation    string        // Sıralama ve karşılaştırma kuralları
	MaxOpenConns int           // Havuzdaki maksimum açık bağlantı sayısı (0 = sınırsız)
	MaxIdleConns int           // Havuzda boşta bekletilecek maksimum bağlantı sayısı
	ConnMaxLife  time.Duration // Bir bağlantının yaşam döngüsü süresi
	ConnMaxIdle  time.Duration // Bir bağlantının boşta kalabileceği maksimum süre
	TLS          bool          // TLS/SSL şifreli bağlantı zorunluluğu
}

// DefaultConfig, üretim ortamına uygun varsayılan ayarlarla dolu bir
// konfigürasyon nesnesi döndürür.
func DefaultConfig() *Config {
	return &Config{
		Host:         "localhost",
		Port:         3306,
		Charset:      "utf8mb4",
		Collation:    "utf8mb4_unicode_ci",
		MaxOpenConns: 25,
		MaxIdleConns: 5,
		ConnMaxLife:  5 * time.Minute,
		ConnMaxIdle:  5 * time.Minute,
	}
}

// DSN builds the go-sql-driver/mysql data source name. parseTime is always
// enabled so DATETIME columns scan into time.Time.
func (c *Config) DSN() string {
	mc := mysql.NewConfig()
	mc.User = c.Username
	mc.Passwd = c.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	mc.DBName = c.Database
	mc.ParseTime = true
	if c.Collation != "" {
		mc.Collation = c.Collation
	}
	if c.Charset != "" {
		mc.Params = map[string]string{"charset": c.Charset}
	}
	if c.TLS {
		mc.TLSConfig = "true"
	}
	return mc.FormatDSN()
}
