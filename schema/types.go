package schema

import "strings"

// Tip kısayolları SetType ve seçenek setter'larının doğrudan açılımlarıdır.

func (f *Field) Integer() *Field    { return f.SetType("INT") }
func (f *Field) TinyInt() *Field    { return f.SetType("TINYINT") }
func (f *Field) MediumInt() *Field  { return f.SetType("MEDIUMINT") }
func (f *Field) BigInt() *Field     { return f.SetType("BIGINT") }
func (f *Field) Float() *Field      { return f.SetType("FLOAT") }
func (f *Field) Double() *Field     { return f.SetType("DOUBLE") }
func (f *Field) Date() *Field       { return f.SetType("DATE") }
func (f *Field) Time() *Field       { return f.SetType("TIME") }
func (f *Field) Year() *Field       { return f.SetType("YEAR") }
func (f *Field) Datetime() *Field   { return f.SetType("DATETIME") }
func (f *Field) Timestamp() *Field  { return f.SetType("TIMESTAMP") }
func (f *Field) Blob() *Field       { return f.SetType("BLOB") }
func (f *Field) TinyText() *Field   { return f.SetType("TINYTEXT") }
func (f *Field) Text() *Field       { return f.SetType("TEXT") }
func (f *Field) MediumText() *Field { return f.SetType("MEDIUMTEXT") }
func (f *Field) LargeText() *Field  { return f.SetType("LONGTEXT") }
func (f *Field) JSON() *Field       { return f.SetType("JSON") }
func (f *Field) JSONB() *Field      { return f.SetType("JSONB") }
func (f *Field) Point() *Field      { return f.SetType("POINT") }
func (f *Field) LineString() *Field { return f.SetType("LINESTRING") }
func (f *Field) Polygon() *Field    { return f.SetType("POLYGON") }
func (f *Field) Geometry() *Field   { return f.SetType("GEOMETRY") }
func (f *Field) UUID() *Field       { return f.SetType("UUID") }
func (f *Field) Interval() *Field   { return f.SetType("INTERVAL") }

// Boolean is TINYINT.
func (f *Field) Boolean() *Field { return f.TinyInt() }

// Decimal is DECIMAL(precision, scale).
func (f *Field) Decimal(precision, scale int) *Field {
	return f.SetType("DECIMAL", precision, scale)
}

// Varchar is VARCHAR(n).
func (f *Field) Varchar(n int) *Field { return f.SetType("VARCHAR", n) }

// Char is CHAR(n).
func (f *Field) Char(n int) *Field { return f.SetType("CHAR", n) }

// Enum is ENUM('a','b',...) with every value escaped.
func (f *Field) Enum(values ...string) *Field {
	if len(values) == 0 {
		return f.fail(errEmptyValues)
	}
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = quoteLiteral(v)
	}
	return f.SetType("ENUM(" + strings.Join(quoted, ",") + ")")
}

func (f *Field) TimestampTz() *Field { return f.SetType("TIMESTAMP WITH TIME ZONE") }

// Anlamsal kısayollar

func (f *Field) Email() *Field {
	return f.SetType("VARCHAR", 255).Collate("utf8mb4_general_ci")
}

func (f *Field) IPAddress() *Field {
	return f.SetType("VARCHAR", 45).Collate("ascii_general_ci")
}

func (f *Field) IPv4Address() *Field  { return f.SetType("VARCHAR", 15) }
func (f *Field) MACAddress() *Field   { return f.SetType("VARCHAR", 17) }
func (f *Field) PasswordHash() *Field { return f.SetType("VARCHAR", 255) }
func (f *Field) FilePath() *Field     { return f.SetType("VARCHAR", 255) }
func (f *Field) URL() *Field          { return f.SetType("VARCHAR", 255) }
func (f *Field) PhoneNumber() *Field  { return f.SetType("VARCHAR", 20) }

// Color holds #RRGGBB.
func (f *Field) Color() *Field { return f.SetType("CHAR", 7) }

func (f *Field) CountryCode() *Field { return f.SetType("CHAR", 2) }

func (f *Field) Money() *Field { return f.Decimal(10, 2) }

func (f *Field) Slug() *Field {
	return f.SetType("VARCHAR", 255).Collate("utf8mb4_general_ci")
}

func (f *Field) URLPath() *Field {
	return f.SetType("VARCHAR", 255).Collate("utf8mb4_general_ci")
}

func (f *Field) Tag() *Field {
	return f.SetType("VARCHAR", 50).Collate("utf8mb4_general_ci")
}

func (f *Field) UTCDatetime() *Field {
	return f.SetType("DATETIME").Collate("utf8mb4_general_ci")
}

// SoftDelete is a 0/1 flag defaulting to 0.
func (f *Field) SoftDelete() *Field {
	return f.Boolean().
		Default("0").
		Comment("Soft delete flag: 1 for deleted, 0 for active")
}

// Version is an unsigned row version counter.
func (f *Field) Version() *Field {
	return f.Integer().
		Unsigned().
		Comment("Auto-incremental version number")
}
