package schema

import (
	"fmt"
	"strings"

	"sigs.k8s.io/yaml"
)

// Document, YAML ile tanımlanan tablo listesidir.
//
// Örnek:
//
//	tables:
//	  - name: users
//	    ifNotExists: true
//	    engine: InnoDB
//	    fields:
//	      - name: id
//	        type: INT
//	        options: [primary_key, auto_increment]
//	      - name: email
//	        shorthand: email
//	        options: [not_null, unique]
//	    indexes:
//	      - columns: [email]
type Document struct {
	Tables []TableDoc `json:"tables"`
}

// TableDoc describes one table.
type TableDoc struct {
	Name              string             `json:"name"`
	Temporary         bool               `json:"temporary,omitempty"`
	IfNotExists       bool               `json:"ifNotExists,omitempty"`
	Engine            string             `json:"engine,omitempty"`
	Charset           string             `json:"charset,omitempty"`
	Collate           string             `json:"collate,omitempty"`
	Comment           *string            `json:"comment,omitempty"`
	AutoIncrement     int64              `json:"autoIncrement,omitempty"`
	AutoIncrementStep int64              `json:"autoIncrementStep,omitempty"`
	Tablespace        string             `json:"tablespace,omitempty"`
	Schema            string             `json:"schema,omitempty"`
	RenameTo          string             `json:"renameTo,omitempty"`
	Fields            []FieldDoc         `json:"fields"`
	Indexes           []Index            `json:"indexes,omitempty"`
	ForeignKeys       []ForeignKeyDoc    `json:"foreignKeys,omitempty"`
	Checks            []CheckConstraint  `json:"checks,omitempty"`
	Uniques           []UniqueConstraint `json:"uniques,omitempty"`
	Defaults          []DefaultValue     `json:"defaults,omitempty"`
	Triggers          []Trigger          `json:"triggers,omitempty"`
	AddColumns        []FieldDoc         `json:"addColumns,omitempty"`
}

// ForeignKeyDoc describes a FOREIGN KEY clause.
type ForeignKeyDoc struct {
	Name      string `json:"name,omitempty"`
	Column    string `json:"column"`
	Table     string `json:"table"`
	RefColumn string `json:"refColumn"`
}

// ReferenceDoc is the target of an inline REFERENCES option.
type ReferenceDoc struct {
	Table  string `json:"table"`
	Column string `json:"column"`
}

// FieldDoc describes one column. Either Type (with optional Size) or
// Shorthand sets the column type.
type FieldDoc struct {
	Name          string        `json:"name"`
	Type          string        `json:"type,omitempty"`
	Size          []int         `json:"size,omitempty"`
	Shorthand     string        `json:"shorthand,omitempty"`
	Values        []string      `json:"values,omitempty"`
	Options       []string      `json:"options,omitempty"`
	Default       *string       `json:"default,omitempty"`
	DefaultRaw    string        `json:"defaultRaw,omitempty"`
	Comment       *string       `json:"comment,omitempty"`
	Collate       string        `json:"collate,omitempty"`
	Charset       string        `json:"charset,omitempty"`
	Check         string        `json:"check,omitempty"`
	VirtualAs     string        `json:"virtualAs,omitempty"`
	StoredAs      string        `json:"storedAs,omitempty"`
	References    *ReferenceDoc `json:"references,omitempty"`
	SelfReference string        `json:"selfReference,omitempty"`
}

var shorthands = map[string]func(*Field) *Field{
	"integer":      (*Field).Integer,
	"tinyint":      (*Field).TinyInt,
	"mediumint":    (*Field).MediumInt,
	"bigint":       (*Field).BigInt,
	"boolean":      (*Field).Boolean,
	"float":        (*Field).Float,
	"double":       (*Field).Double,
	"date":         (*Field).Date,
	"time":         (*Field).Time,
	"year":         (*Field).Year,
	"datetime":     (*Field).Datetime,
	"timestamp":    (*Field).Timestamp,
	"blob":         (*Field).Blob,
	"tinytext":     (*Field).TinyText,
	"text":         (*Field).Text,
	"mediumtext":   (*Field).MediumText,
	"largetext":    (*Field).LargeText,
	"json":         (*Field).JSON,
	"jsonb":        (*Field).JSONB,
	"point":        (*Field).Point,
	"linestring":   (*Field).LineString,
	"polygon":      (*Field).Polygon,
	"geometry":     (*Field).Geometry,
	"uuid":         (*Field).UUID,
	"interval":     (*Field).Interval,
	"timestamptz":  (*Field).TimestampTz,
	"email":        (*Field).Email,
	"ip_address":   (*Field).IPAddress,
	"ipv4_address": (*Field).IPv4Address,
	"mac_address":  (*Field).MACAddress,
	"password":     (*Field).PasswordHash,
	"file_path":    (*Field).FilePath,
	"url":          (*Field).URL,
	"phone":        (*Field).PhoneNumber,
	"color":        (*Field).Color,
	"country_code": (*Field).CountryCode,
	"money":        (*Field).Money,
	"slug":         (*Field).Slug,
	"url_path":     (*Field).URLPath,
	"tag":          (*Field).Tag,
	"utc_datetime": (*Field).UTCDatetime,
	"soft_delete":  (*Field).SoftDelete,
	"version":      (*Field).Version,
}

var flagOptions = map[string]func(*Field) *Field{
	"not_null":                    (*Field).NotNull,
	"nullable":                    (*Field).Nullable,
	"primary_key":                 (*Field).PrimaryKey,
	"auto_increment":              (*Field).AutoIncrement,
	"unique":                      (*Field).Unique,
	"index":                       (*Field).Index,
	"unique_key":                  (*Field).UniqueKey,
	"spatial_index":               (*Field).SpatialIndex,
	"unsigned":                    (*Field).Unsigned,
	"zerofill":                    (*Field).Zerofill,
	"binary":                      (*Field).Binary,
	"current_timestamp":           (*Field).CurrentTimestamp,
	"on_update_current_timestamp": (*Field).OnUpdateCurrentTimestamp,
	"on_delete_cascade":           (*Field).OnDeleteCascade,
	"on_update_cascade":           (*Field).OnUpdateCascade,
}

// ParseDocument decodes a YAML table document and builds its tables.
// Unknown keys, shorthands and options are errors.
func ParseDocument(data []byte) ([]*Table, error) {
	var doc Document
	if err := yaml.UnmarshalStrict(data, &doc); err != nil {
		return nil, fmt.Errorf("schema: parse document: %w", err)
	}
	return doc.Build()
}

// Build converts the document into tables and returns the first definition
// error.
func (d *Document) Build() ([]*Table, error) {
	tables := make([]*Table, 0, len(d.Tables))
	for i := range d.Tables {
		t, err := d.Tables[i].Build()
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}

// Build converts the table document into a Table.
func (td *TableDoc) Build() (*Table, error) {
	t := NewTable(td.Name)
	if td.Temporary {
		t.Temporary()
	}
	if td.IfNotExists {
		t.IfNotExists()
	}
	if td.Engine != "" {
		t.Engine(td.Engine)
	}
	if td.Charset != "" {
		t.Charset(td.Charset)
	}
	if td.Collate != "" {
		t.Collate(td.Collate)
	}
	if td.Comment != nil {
		t.Comment(*td.Comment)
	}
	if td.AutoIncrement != 0 {
		t.AutoIncrement(td.AutoIncrement)
	}
	if td.AutoIncrementStep != 0 {
		t.AutoIncrementStep(td.AutoIncrementStep)
	}
	if td.Tablespace != "" {
		t.Tablespace(td.Tablespace)
	}
	if td.Schema != "" {
		t.SetSchema(td.Schema)
	}
	if td.RenameTo != "" {
		t.RenameTable(td.RenameTo)
	}

	for i := range td.Fields {
		f, err := td.Fields[i].Build()
		if err != nil {
			return nil, err
		}
		t.AddField(f)
	}
	for i := range td.AddColumns {
		f, err := td.AddColumns[i].Build()
		if err != nil {
			return nil, err
		}
		t.AddColumn(f)
	}

	for _, idx := range td.Indexes {
		t.AddNamedIndex(idx.Name, idx.Columns...)
	}
	for _, fk := range td.ForeignKeys {
		t.AddNamedForeignKey(fk.Name, fk.Column, fk.Table, fk.RefColumn)
	}
	for _, c := range td.Checks {
		t.AddCheckConstraint(c.Name, c.Condition)
	}
	for _, u := range td.Uniques {
		t.AddUniqueConstraint(u.Name, u.Columns...)
	}
	for _, d := range td.Defaults {
		t.AddDefaultValue(d.Column, d.Value)
	}
	for _, tr := range td.Triggers {
		t.AddTrigger(tr.Name, tr.Timing, tr.Event, tr.Body)
	}

	if err := t.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

// Build converts the field document into a Field.
func (fd *FieldDoc) Build() (*Field, error) {
	f := NewField(fd.Name)

	switch {
	case fd.Shorthand != "":
		if err := fd.applyShorthand(f); err != nil {
			return nil, err
		}
	case fd.Type != "":
		f.SetType(fd.Type, fd.Size...)
	default:
		return nil, &DefinitionError{Object: "field", Name: fd.Name, Err: errNoType}
	}

	// ON DELETE/ON UPDATE CASCADE REFERENCES'tan sonra yazılır.
	var cascades []func(*Field) *Field
	for _, name := range fd.Options {
		key := strings.ToLower(strings.TrimSpace(name))
		apply, ok := flagOptions[key]
		if !ok {
			return nil, &DefinitionError{Object: "field", Name: fd.Name, Err: fmt.Errorf("%w: %q", errUnknownField, name)}
		}
		if key == "on_delete_cascade" || key == "on_update_cascade" {
			cascades = append(cascades, apply)
			continue
		}
		apply(f)
	}

	if fd.Default != nil {
		f.Default(*fd.Default)
	}
	if fd.DefaultRaw != "" {
		f.DefaultRaw(fd.DefaultRaw)
	}
	if fd.Collate != "" {
		f.Collate(fd.Collate)
	}
	if fd.Charset != "" {
		f.Charset(fd.Charset)
	}
	if fd.Check != "" {
		f.Check(fd.Check)
	}
	if fd.VirtualAs != "" {
		f.VirtualAs(fd.VirtualAs)
	}
	if fd.StoredAs != "" {
		f.StoredAs(fd.StoredAs)
	}
	if fd.Comment != nil {
		f.Comment(*fd.Comment)
	}
	if fd.References != nil {
		f.References(fd.References.Table, fd.References.Column)
	}
	if fd.SelfReference != "" {
		f.SelfReference(fd.SelfReference)
	}
	for _, apply := range cascades {
		apply(f)
	}

	if err := f.Err(); err != nil {
		return nil, err
	}
	return f, nil
}

func (fd *FieldDoc) applyShorthand(f *Field) error {
	key := strings.ToLower(strings.TrimSpace(fd.Shorthand))
	if apply, ok := shorthands[key]; ok {
		apply(f)
		return nil
	}

	size := func(i int) int {
		if i < len(fd.Size) {
			return fd.Size[i]
		}
		return 0
	}
	switch key {
	case "varchar":
		f.Varchar(size(0))
	case "char":
		f.Char(size(0))
	case "decimal":
		f.Decimal(size(0), size(1))
	case "enum":
		f.Enum(fd.Values...)
	default:
		return &DefinitionError{Object: "field", Name: fd.Name, Err: fmt.Errorf("%w: %q", errUnknownField, fd.Shorthand)}
	}
	return nil
}
