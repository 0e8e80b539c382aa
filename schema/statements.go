package schema

import (
	"strconv"
	"strings"

	"github.com/biyonik/go-secure-sql/internal/validation"
)

// ----------------------------------------------------------------------------
// Renderers
// ----------------------------------------------------------------------------
//
// Her renderer yalnızca kendi tanım listesini veya seçeneğini okur. Liste
// boşsa ya da seçenek ayarlanmamışsa "" veya nil döner.

func (t *Table) ident() string {
	return quote(t.name)
}

// check, tablonun ve verilen alanların biriken hatalarını döner.
func (t *Table) check(fields []*Field) error {
	if t.err != nil {
		return t.err
	}
	for _, f := range fields {
		if f.err != nil {
			return f.err
		}
	}
	return nil
}

// options renders the ENGINE/CHARACTER SET/COLLATE/COMMENT suffix.
func (t *Table) options() []string {
	var opts []string
	if t.engine != "" {
		opts = append(opts, "ENGINE="+t.engine)
	}
	if t.charset != "" {
		opts = append(opts, "CHARACTER SET="+t.charset)
	}
	if t.collation != "" {
		opts = append(opts, "COLLATE="+t.collation)
	}
	if t.hasComment {
		opts = append(opts, "COMMENT="+quoteLiteral(t.comment))
	}
	return opts
}

// CreateTableStatement renders CREATE TABLE with column definitions followed
// by the synthesized constraints: one PRIMARY KEY clause over every primary
// key field, then UNIQUE, INDEX, SPATIAL INDEX and self-referencing FOREIGN
// KEY clauses in field order, then registered foreign keys.
//
// Örnek:
//
//	schema.NewTable("users").
//	    AddField(schema.NewField("id").Integer().PrimaryKey().AutoIncrement()).
//	    CreateTableStatement()
//	// CREATE TABLE `users` (`id` INT AUTO_INCREMENT, PRIMARY KEY (`id`));
func (t *Table) CreateTableStatement() (string, error) {
	if err := t.check(t.fields); err != nil {
		return "", err
	}
	if len(t.fields) == 0 {
		return "", &DefinitionError{Object: "table", Name: t.name, Err: errNoFields}
	}

	defs := make([]string, 0, len(t.fields)+len(t.foreignKeys)+1)
	var primary []string
	var constraints []string
	primaryAt := -1 // ilk PRIMARY KEY alanının constraints içindeki yeri

	for _, f := range t.fields {
		def, err := f.definition(false)
		if err != nil {
			return "", err
		}
		defs = append(defs, def)

		col := quote(f.name)
		for _, o := range f.options {
			switch o.Kind {
			case OptPrimaryKey:
				if primaryAt < 0 {
					primaryAt = len(constraints)
				}
				primary = append(primary, col)
			case OptUnique:
				constraints = append(constraints, "UNIQUE ("+col+")")
			case OptIndex:
				constraints = append(constraints, "INDEX ("+col+")")
			case OptSpatialIndex:
				constraints = append(constraints, "SPATIAL INDEX ("+col+")")
			case OptSelfReference:
				constraints = append(constraints, "FOREIGN KEY ("+col+") REFERENCES "+t.ident()+" ("+quote(o.Column)+")")
			}
		}
	}

	if len(primary) > 0 {
		pk := "PRIMARY KEY (" + strings.Join(primary, ", ") + ")"
		constraints = append(constraints[:primaryAt], append([]string{pk}, constraints[primaryAt:]...)...)
	}
	defs = append(defs, constraints...)
	for _, fk := range t.foreignKeys {
		defs = append(defs, fk.clause())
	}

	var sb strings.Builder
	sb.WriteString("CREATE ")
	if t.temporary {
		sb.WriteString("TEMPORARY ")
	}
	sb.WriteString("TABLE ")
	if t.ifNotExists {
		sb.WriteString("IF NOT EXISTS ")
	}
	sb.WriteString(t.ident())
	sb.WriteString(" (")
	sb.WriteString(strings.Join(defs, ", "))
	sb.WriteString(")")

	opts := t.options()
	if t.autoIncrement > 0 {
		opts = append(opts, "AUTO_INCREMENT="+strconv.FormatInt(t.autoIncrement, 10))
	}
	for _, o := range opts {
		sb.WriteByte(' ')
		sb.WriteString(o)
	}
	sb.WriteByte(';')
	return sb.String(), nil
}

func (fk ForeignKey) clause() string {
	var sb strings.Builder
	if fk.Name != "" {
		sb.WriteString("CONSTRAINT ")
		sb.WriteString(quote(fk.Name))
		sb.WriteByte(' ')
	}
	sb.WriteString("FOREIGN KEY (")
	sb.WriteString(quote(fk.Column))
	sb.WriteString(") REFERENCES ")
	sb.WriteString(quote(fk.RefTable))
	sb.WriteString(" (")
	sb.WriteString(quote(fk.RefColumn))
	sb.WriteString(")")
	return sb.String()
}

// AlterTableStatement renders ALTER TABLE with the engine, charset,
// collation and comment options; "" when none is set.
func (t *Table) AlterTableStatement() (string, error) {
	if err := t.check(nil); err != nil {
		return "", err
	}
	opts := t.options()
	if len(opts) == 0 {
		return "", nil
	}
	return "ALTER TABLE " + t.ident() + " " + strings.Join(opts, " ") + ";", nil
}

// DropTableStatement renders DROP [TEMPORARY] TABLE IF EXISTS.
func (t *Table) DropTableStatement() (string, error) {
	if err := t.check(nil); err != nil {
		return "", err
	}
	if t.temporary {
		return "DROP TEMPORARY TABLE IF EXISTS " + t.ident() + ";", nil
	}
	return "DROP TABLE IF EXISTS " + t.ident() + ";", nil
}

// IndexName returns the name used for an unnamed index:
// idx_<table>_<col1>_<col2>..., cut to the identifier length limit.
func IndexName(table string, columns []string) string {
	name := "idx_" + table + "_" + strings.Join(columns, "_")
	if r := []rune(name); len(r) > validation.MaxIdentifierLength {
		name = string(r[:validation.MaxIdentifierLength])
	}
	return name
}

// CreateIndexStatements renders one CREATE INDEX per registered index.
func (t *Table) CreateIndexStatements() ([]string, error) {
	if err := t.check(nil); err != nil {
		return nil, err
	}
	var out []string
	for _, idx := range t.indexes {
		name := idx.Name
		if name == "" {
			name = IndexName(t.name, idx.Columns)
		}
		out = append(out, "CREATE INDEX "+quote(name)+" ON "+t.ident()+" ("+quoteList(idx.Columns)+");")
	}
	return out, nil
}

// addConstraint renders ALTER TABLE `t` ADD [CONSTRAINT `n`] body;
func (t *Table) addConstraint(name, body string) string {
	if name == "" {
		return "ALTER TABLE " + t.ident() + " ADD " + body + ";"
	}
	return "ALTER TABLE " + t.ident() + " ADD CONSTRAINT " + quote(name) + " " + body + ";"
}

// CheckConstraintStatements renders one ADD CHECK per registered check.
func (t *Table) CheckConstraintStatements() ([]string, error) {
	if err := t.check(nil); err != nil {
		return nil, err
	}
	var out []string
	for _, c := range t.checks {
		out = append(out, t.addConstraint(c.Name, "CHECK ("+c.Condition+")"))
	}
	return out, nil
}

// UniqueConstraintStatements renders one ADD UNIQUE per registered constraint.
func (t *Table) UniqueConstraintStatements() ([]string, error) {
	if err := t.check(nil); err != nil {
		return nil, err
	}
	var out []string
	for _, u := range t.uniques {
		out = append(out, t.addConstraint(u.Name, "UNIQUE ("+quoteList(u.Columns)+")"))
	}
	return out, nil
}

// DefaultValueStatements renders ALTER COLUMN ... SET DEFAULT in
// registration order.
func (t *Table) DefaultValueStatements() ([]string, error) {
	if err := t.check(nil); err != nil {
		return nil, err
	}
	var out []string
	for _, d := range t.defaults {
		out = append(out, "ALTER TABLE "+t.ident()+" ALTER COLUMN "+quote(d.Column)+" SET DEFAULT "+quoteLiteral(d.Value)+";")
	}
	return out, nil
}

// TriggerStatements renders one CREATE TRIGGER per registered trigger.
func (t *Table) TriggerStatements() ([]string, error) {
	if err := t.check(nil); err != nil {
		return nil, err
	}
	var out []string
	for _, tr := range t.triggers {
		body := strings.TrimSuffix(strings.TrimSpace(tr.Body), ";")
		out = append(out, "CREATE TRIGGER "+quote(tr.Name)+" "+tr.Timing+" "+tr.Event+
			" ON "+t.ident()+" FOR EACH ROW "+body+";")
	}
	return out, nil
}

// AddColumnStatements renders ALTER TABLE ... ADD COLUMN per registered
// column. Index and self-reference options become extra ADD clauses of the
// same statement.
func (t *Table) AddColumnStatements() ([]string, error) {
	if err := t.check(t.addColumns); err != nil {
		return nil, err
	}
	var out []string
	for _, f := range t.addColumns {
		def, err := f.definition(true)
		if err != nil {
			return nil, err
		}

		var sb strings.Builder
		sb.WriteString("ALTER TABLE ")
		sb.WriteString(t.ident())
		sb.WriteString(" ADD COLUMN ")
		sb.WriteString(def)

		col := quote(f.name)
		for _, o := range f.options {
			switch o.Kind {
			case OptIndex:
				sb.WriteString(", ADD INDEX (" + col + ")")
			case OptSpatialIndex:
				sb.WriteString(", ADD SPATIAL INDEX (" + col + ")")
			case OptSelfReference:
				sb.WriteString(", ADD FOREIGN KEY (" + col + ") REFERENCES " + t.ident() + " (" + quote(o.Column) + ")")
			}
		}
		sb.WriteByte(';')
		out = append(out, sb.String())
	}
	return out, nil
}

// RenameTableStatement renders ALTER TABLE ... RENAME TO.
func (t *Table) RenameTableStatement() (string, error) {
	if err := t.check(nil); err != nil {
		return "", err
	}
	if t.newName == "" {
		return "", nil
	}
	return "ALTER TABLE " + t.ident() + " RENAME TO " + quote(t.newName) + ";", nil
}

// SchemaStatement moves the table into another database with RENAME TABLE;
// MySQL has no ALTER TABLE ... SET SCHEMA.
func (t *Table) SchemaStatement() (string, error) {
	if err := t.check(nil); err != nil {
		return "", err
	}
	if t.schema == "" {
		return "", nil
	}
	return "RENAME TABLE " + t.ident() + " TO " + quote(t.schema) + "." + t.ident() + ";", nil
}

// TablespaceStatement renders ALTER TABLE ... TABLESPACE.
func (t *Table) TablespaceStatement() (string, error) {
	if err := t.check(nil); err != nil {
		return "", err
	}
	if t.tablespace == "" {
		return "", nil
	}
	return "ALTER TABLE " + t.ident() + " TABLESPACE " + quote(t.tablespace) + ";", nil
}

// ModifyAutoIncrementStatements renders the AUTO_INCREMENT value change and
// the session increment step, each only when set.
func (t *Table) ModifyAutoIncrementStatements() ([]string, error) {
	if err := t.check(nil); err != nil {
		return nil, err
	}
	var out []string
	if t.autoIncrement > 0 {
		out = append(out, "ALTER TABLE "+t.ident()+" AUTO_INCREMENT="+strconv.FormatInt(t.autoIncrement, 10)+";")
	}
	if stmt := t.stepStatement(); stmt != "" {
		out = append(out, stmt)
	}
	return out, nil
}

func (t *Table) stepStatement() string {
	if t.autoIncrementStep <= 0 {
		return ""
	}
	return "SET SESSION auto_increment_increment = " + strconv.FormatInt(t.autoIncrementStep, 10) + ";"
}

// Statements returns every statement needed to build the table from
// scratch, in dependency order: CREATE TABLE, indexes, unique and check
// constraints, defaults, triggers, added columns, the increment step,
// tablespace, schema move and rename. ALTER TABLE options and the
// AUTO_INCREMENT value are already part of CREATE TABLE and are not repeated.
func (t *Table) Statements() ([]string, error) {
	create, err := t.CreateTableStatement()
	if err != nil {
		return nil, err
	}
	out := []string{create}

	for _, render := range []func() ([]string, error){
		t.CreateIndexStatements,
		t.UniqueConstraintStatements,
		t.CheckConstraintStatements,
		t.DefaultValueStatements,
		t.TriggerStatements,
		t.AddColumnStatements,
	} {
		stmts, err := render()
		if err != nil {
			return nil, err
		}
		out = append(out, stmts...)
	}

	if stmt := t.stepStatement(); stmt != "" {
		out = append(out, stmt)
	}
	for _, render := range []func() (string, error){
		t.TablespaceStatement,
		t.SchemaStatement,
		t.RenameTableStatement,
	} {
		stmt, err := render()
		if err != nil {
			return nil, err
		}
		if stmt != "" {
			out = append(out, stmt)
		}
	}
	return out, nil
}
