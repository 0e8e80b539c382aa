package securesql

import (
	"regexp"
	"strings"

	"github.com/biyonik/go-secure-sql/dialect"
	"github.com/biyonik/go-secure-sql/internal/validation"
	"github.com/biyonik/go-secure-sql/schema"
)

// QueryBuilder, parametreli SQL ifadelerini akıcı bir arayüz ile oluşturur.
//
// İfade ham metin olarak değil, sıralı cümle parçaları (token) olarak
// biriktirilir ve SQL() / ToSQL() çağrıldığında metne dönüştürülür. Tüm
// değerler Binder üzerinden parametre olarak bağlanır; tablo ve kolon adları
// her zaman tırnaklanır. Select ve aggregate fonksiyonlarına verilen kolon
// ifadeleri ise bilerek ham bırakılır.
//
// İlk hata builder üzerinde biriktirilir; sonraki çağrılar yok sayılır ve hata
// ToSQL veya Execute tarafından döndürülür.
//
// QueryBuilder örnekleri concurrent-safe değildir.
//
// Genel kullanım örneği:
//
//	res, err := securesql.New(securesql.WithExecutor(exec)).
//	    Select("id", "name").
//	    From("users").
//	    Where(securesql.Eq("status", "active")).
//	    OrderBy("created_at", "DESC").
//	    Limit(10).
//	    Execute(ctx)
//
// @author Ahmet ALTUN
// @github github.com/biyonik
// @linkedin linkedin.com/in/biyonik
// @email ahmet.altun60@gmail.com
type QueryBuilder struct {
	quoter *dialect.MySQLDialect
	binder *Binder
	conds  conditionBuilder

	tokens      []token
	last        int
	kind        StatementKind
	selectAdded bool
	subquery    string
	limitName   string
	offsetName  string

	// Accumulated error
	err error

	executor Executor
	cache    ResultCache
	logger   Logger
	debug    bool
	inTx     bool
}

type tokenRole int

const (
	roleFragment tokenRole = iota
	roleHead               // INSERT/UPDATE/DELETE, CREATE TABLE or a raw seed
	roleSelect             // the SELECT keyword
	roleItem               // one select-list entry
	roleWhere
	roleGroup
	roleOrder
	roleLimit
	roleOffset
)

// token, ifadenin tek bir parçasıdır. items yalnızca ORDER BY ve GROUP BY
// listelerinde kullanılır.
type token struct {
	role  tokenRole
	text  string
	items []string
	alias string
	raw   bool // caller-supplied SQL text
}

func (t token) render() string {
	s := t.text
	if len(t.items) > 0 {
		s += " " + strings.Join(t.items, ", ")
	}
	return s + t.alias
}

// whereKeyword detects a WHERE clause inside caller-supplied SQL.
var whereKeyword = regexp.MustCompile(`(?i)\bWHERE\b`)

// topLevel blanks out quoted sections and everything inside parentheses, so
// only the outermost statement's keywords remain.
func topLevel(sql string) string {
	out := []byte(sql)
	depth := 0
	for i := 0; i < len(sql); {
		switch c := sql[i]; c {
		case '\'', '"', '`':
			end := skipQuoted(sql, i, c)
			for j := i; j < end; j++ {
				out[j] = ' '
			}
			i = end
			continue
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
				out[i] = ' '
				i++
				continue
			}
		}
		if depth > 0 {
			out[i] = ' '
		}
		i++
	}
	return string(out)
}

// New, yeni bir QueryBuilder oluşturur. Executor verilmezse ifadeler yalnızca
// üretilebilir; Execute ErrNoExecutor döner.
//
// Örnek:
//
//	qb := securesql.New()
//	sql, params, err := qb.Insert("users", securesql.Set("name", "Jo")).ToSQL()
func New(opts ...Option) *QueryBuilder {
	b := &QueryBuilder{
		quoter: dialect.MySQL(),
		binder: NewBinder(),
		cache:  NewMemoryCache(),
		logger: NopLogger{},
		last:   -1,
	}
	b.conds = conditionBuilder{quoter: b.quoter, binder: b.binder}
	applyOptions(b, opts)
	return b
}

// ----------------------------------------------------------------------------
// internal helpers
// ----------------------------------------------------------------------------

// fail records the first error of the statement.
func (b *QueryBuilder) fail(op string, err error) *QueryBuilder {
	if b.err == nil {
		b.err = misuse(op, err)
	}
	return b
}

// ident validates and quotes a single identifier.
func (b *QueryBuilder) ident(name string) (string, error) {
	if err := validation.ValidateIdentifier(name); err != nil {
		return "", err
	}
	return b.quoter.Quote(name), nil
}

// table is ident for table names; an empty name is ErrNoTable.
func (b *QueryBuilder) table(name string) (string, error) {
	if name == "" {
		return "", ErrNoTable
	}
	return b.ident(name)
}

func (b *QueryBuilder) identList(names []string) (string, error) {
	if len(names) == 0 {
		return "", ErrNoColumns
	}
	quoted := make([]string, len(names))
	for i, n := range names {
		q, err := b.ident(n)
		if err != nil {
			return "", err
		}
		quoted[i] = q
	}
	return strings.Join(quoted, ", "), nil
}

func (b *QueryBuilder) push(t token) {
	b.tokens = append(b.tokens, t)
	b.last = len(b.tokens) - 1
}

func (b *QueryBuilder) insertAt(i int, t token) {
	b.tokens = append(b.tokens, token{})
	copy(b.tokens[i+1:], b.tokens[i:])
	b.tokens[i] = t
	b.last = i
}

// seed replaces the statement with a raw SQL text.
func (b *QueryBuilder) seed(sql string) {
	b.resetStatement()
	b.push(token{role: roleHead, text: sql, raw: true})
	b.kind = ClassifyStatement(sql)
}

// ensureSelect emits the SELECT keyword once. It is prefixed to the buffer
// unless a statement head (INSERT ..., raw seed) already opens it, in which
// case it is appended.
func (b *QueryBuilder) ensureSelect() {
	if b.selectAdded {
		return
	}
	b.selectAdded = true

	t := token{role: roleSelect, text: "SELECT"}
	if len(b.tokens) > 0 && b.tokens[0].role == roleHead {
		b.push(t)
		return
	}
	b.insertAt(0, t)
}

// selectListEnd returns the index just after the select list, or -1 when the
// statement has no SELECT keyword.
func (b *QueryBuilder) selectListEnd() int {
	start := -1
	for i, t := range b.tokens {
		if t.role == roleSelect {
			start = i
		}
	}
	if start < 0 {
		return -1
	}
	end := start + 1
	for end < len(b.tokens) && b.tokens[end].role == roleItem {
		end++
	}
	return end
}

// addItem places a select-list entry at the end of the select list, or at
// the end of the buffer when there is no select list.
func (b *QueryBuilder) addItem(text string) {
	t := token{role: roleItem, text: text}
	pos := b.selectListEnd()
	if pos < 0 || pos == len(b.tokens) {
		b.push(t)
		return
	}
	b.insertAt(pos, t)
}

func (b *QueryBuilder) inSelectList() bool {
	if b.last < 0 {
		return false
	}
	r := b.tokens[b.last].role
	return r == roleSelect || r == roleItem
}

func (b *QueryBuilder) find(role tokenRole) int {
	for i, t := range b.tokens {
		if t.role == role {
			return i
		}
	}
	return -1
}

func (b *QueryBuilder) hasWhere() bool {
	for _, t := range b.tokens {
		if t.role == roleWhere {
			return true
		}
		if t.raw && whereKeyword.MatchString(topLevel(t.text)) {
			return true
		}
	}
	return false
}

func (b *QueryBuilder) resetStatement() {
	b.tokens = nil
	b.last = -1
	b.kind = KindSelect
	b.selectAdded = false
	b.subquery = ""
	b.limitName = ""
	b.offsetName = ""
	b.binder.Reset()
}

// ----------------------------------------------------------------------------
// SELECT
// ----------------------------------------------------------------------------

// Select, SELECT anahtar kelimesini (bir kez) ekler ve kolonları ", " ile
// birleştirerek seçim listesine yazar. Kolonlar ham geçer; COUNT(*) gibi
// ifadeler bu sayede kullanılabilir. Kullanıcıdan gelen kolon adları için
// SelectColumns kullanılmalıdır.
func (b *QueryBuilder) Select(columns ...string) *QueryBuilder {
	if b.err != nil {
		return b
	}
	b.ensureSelect()
	if len(columns) > 0 {
		b.addItem(strings.Join(columns, ", "))
	}
	return b
}

// SelectColumns is Select with every column quoted.
func (b *QueryBuilder) SelectColumns(columns ...string) *QueryBuilder {
	if b.err != nil {
		return b
	}
	list, err := b.identList(columns)
	if err != nil {
		return b.fail("SelectColumns", err)
	}
	b.ensureSelect()
	b.addItem(list)
	return b
}

// Distinct adds "DISTINCT col, ..." to the select list, or "DISTINCT *"
// without columns.
func (b *QueryBuilder) Distinct(columns ...string) *QueryBuilder {
	if b.err != nil {
		return b
	}
	b.ensureSelect()
	if len(columns) == 0 {
		b.addItem("DISTINCT *")
		return b
	}
	b.addItem("DISTINCT " + strings.Join(columns, ", "))
	return b
}

// From appends FROM `table`.
func (b *QueryBuilder) From(table string) *QueryBuilder {
	if b.err != nil {
		return b
	}
	q, err := b.table(table)
	if err != nil {
		return b.fail("From", err)
	}
	b.push(token{role: roleFragment, text: "FROM " + q})
	return b
}

// FromSubquery appends FROM (sql) AS `alias`.
func (b *QueryBuilder) FromSubquery(sql, alias string) *QueryBuilder {
	if b.err != nil {
		return b
	}
	if strings.TrimSpace(sql) == "" {
		return b.fail("FromSubquery", ErrEmptyStatement)
	}
	q, err := b.ident(alias)
	if err != nil {
		return b.fail("FromSubquery", err)
	}
	b.push(token{role: roleFragment, text: "FROM (" + sql + ") AS " + q})
	return b
}

// ----------------------------------------------------------------------------
// INSERT / UPDATE / DELETE
// ----------------------------------------------------------------------------

// Insert, yeni bir INSERT ifadesi başlatır; önceki parçalar ve parametreler
// atılır. Değerler otomatik placeholder'lar ile bağlanır.
//
// Örnek:
//
//	qb.Insert("users", securesql.Set("name", "Jo"), securesql.Set("age", 30))
//	// INSERT INTO `users` (`name`, `age`) VALUES (:param0, :param1)
func (b *QueryBuilder) Insert(table string, values ...Pair) *QueryBuilder {
	if b.err != nil {
		return b
	}
	qt, err := b.table(table)
	if err != nil {
		return b.fail("Insert", err)
	}
	if len(values) == 0 {
		return b.fail("Insert", ErrNoColumns)
	}

	cols := make([]string, len(values))
	for i, p := range values {
		if cols[i], err = b.ident(p.Column); err != nil {
			return b.fail("Insert", err)
		}
	}

	b.resetStatement()
	holders := make([]string, len(values))
	for i, p := range values {
		holders[i] = b.quoter.Placeholder(b.binder.Bind(p.Value))
	}

	b.push(token{
		role: roleHead,
		text: "INSERT INTO " + qt + " (" + strings.Join(cols, ", ") + ") VALUES (" + strings.Join(holders, ", ") + ")",
	})
	b.kind = KindInsert
	return b
}

// InsertMap is Insert with columns taken from m in sorted order.
func (b *QueryBuilder) InsertMap(table string, m map[string]any) *QueryBuilder {
	return b.Insert(table, FromMap(m)...)
}

// Update, yeni bir UPDATE ifadesi başlatır.
//
// Örnek:
//
//	qb.Update("users", securesql.Set("name", "Jo")).Where(securesql.Eq("id", 7))
//	// UPDATE `users` SET `name` = :param0 WHERE `id` = :param1
func (b *QueryBuilder) Update(table string, values ...Pair) *QueryBuilder {
	if b.err != nil {
		return b
	}
	qt, err := b.table(table)
	if err != nil {
		return b.fail("Update", err)
	}
	if len(values) == 0 {
		return b.fail("Update", ErrNoColumns)
	}

	cols := make([]string, len(values))
	for i, p := range values {
		if cols[i], err = b.ident(p.Column); err != nil {
			return b.fail("Update", err)
		}
	}

	b.resetStatement()
	sets := make([]string, len(values))
	for i, p := range values {
		sets[i] = cols[i] + " = " + b.quoter.Placeholder(b.binder.Bind(p.Value))
	}

	b.push(token{role: roleHead, text: "UPDATE " + qt + " SET " + strings.Join(sets, ", ")})
	b.kind = KindModify
	return b
}

// UpdateMap is Update with columns taken from m in sorted order.
func (b *QueryBuilder) UpdateMap(table string, m map[string]any) *QueryBuilder {
	return b.Update(table, FromMap(m)...)
}

// Delete, yeni bir DELETE FROM ifadesi başlatır.
func (b *QueryBuilder) Delete(table string) *QueryBuilder {
	if b.err != nil {
		return b
	}
	qt, err := b.table(table)
	if err != nil {
		return b.fail("Delete", err)
	}

	b.resetStatement()
	b.push(token{role: roleHead, text: "DELETE FROM " + qt})
	b.kind = KindModify
	return b
}

// ----------------------------------------------------------------------------
// WHERE
// ----------------------------------------------------------------------------

// Where opens the WHERE clause with AND-joined conditions bound to automatic
// placeholders. It may be called once per statement.
func (b *QueryBuilder) Where(conditions ...Pair) *QueryBuilder {
	if b.err != nil {
		return b
	}
	if b.hasWhere() {
		return b.fail("Where", ErrWhereAlreadySet)
	}
	if len(conditions) == 0 {
		return b.fail("Where", ErrNoConditions)
	}

	cols := make([]string, len(conditions))
	for i, c := range conditions {
		var err error
		if cols[i], err = b.ident(c.Column); err != nil {
			return b.fail("Where", err)
		}
	}

	bind := func(v any) string {
		return b.quoter.Placeholder(b.binder.Bind(v))
	}
	parts := make([]string, len(conditions))
	for i, c := range conditions {
		part, err := c.render(cols[i], bind)
		if err != nil {
			return b.fail("Where", err)
		}
		parts[i] = part
	}
	b.push(token{role: roleWhere, text: "WHERE " + strings.Join(parts, " AND ")})
	return b
}

// WhereRaw, ham bir koşul ifadesi ekler; ifadedeki her '?' sırasıyla values
// içindeki değere bağlanan bir placeholder ile değiştirilir. WHERE henüz
// yoksa ifade WHERE ile açılır, varsa AND (...) olarak eklenir.
//
// Örnek:
//
//	qb.WhereRaw("`age` BETWEEN ? AND ?", 18, 65)
func (b *QueryBuilder) WhereRaw(expr string, values ...any) *QueryBuilder {
	if b.err != nil {
		return b
	}
	if strings.TrimSpace(expr) == "" {
		return b.fail("WhereRaw", ErrNoConditions)
	}
	if n := strings.Count(expr, "?"); n != len(values) {
		return b.fail("WhereRaw", ErrUnknownPlaceholder)
	}

	var sb strings.Builder
	next := 0
	for _, r := range expr {
		if r == '?' {
			sb.WriteString(b.quoter.Placeholder(b.binder.Bind(values[next])))
			next++
			continue
		}
		sb.WriteRune(r)
	}

	if !b.hasWhere() {
		b.push(token{role: roleWhere, text: "WHERE " + sb.String()})
		return b
	}
	b.push(token{role: roleFragment, text: "AND (" + sb.String() + ")"})
	return b
}

// AndWhere, mevcut WHERE'e AND ile bağlanan parantezli bir koşul grubu ekler.
// Koşullar kolon adından türetilen isimli parametrelerle bağlanır.
func (b *QueryBuilder) AndWhere(conditions ...Pair) *QueryBuilder {
	return b.compound("AndWhere", dialect.LogicalAnd, "", conditions)
}

// OrWhere adds OR (`a` = :a OR `b` = :b).
func (b *QueryBuilder) OrWhere(conditions ...Pair) *QueryBuilder {
	return b.compound("OrWhere", dialect.LogicalOr, "", conditions)
}

// NotWhere adds AND NOT (`a` = :a AND `b` = :b).
func (b *QueryBuilder) NotWhere(conditions ...Pair) *QueryBuilder {
	return b.compound("NotWhere", dialect.LogicalNot, "", conditions)
}

// AndWhereWith is AndWhere attached with compound (AND, OR, XOR, AND NOT, OR NOT).
func (b *QueryBuilder) AndWhereWith(compound string, conditions ...Pair) *QueryBuilder {
	return b.compound("AndWhereWith", dialect.LogicalAnd, compound, conditions)
}

// OrWhereWith is OrWhere attached with compound.
func (b *QueryBuilder) OrWhereWith(compound string, conditions ...Pair) *QueryBuilder {
	return b.compound("OrWhereWith", dialect.LogicalOr, compound, conditions)
}

// NotWhereWith is NotWhere attached with compound.
func (b *QueryBuilder) NotWhereWith(compound string, conditions ...Pair) *QueryBuilder {
	return b.compound("NotWhereWith", dialect.LogicalNot, compound, conditions)
}

func (b *QueryBuilder) compound(op string, logical dialect.Logical, compound string, conditions []Pair) *QueryBuilder {
	if b.err != nil {
		return b
	}
	if !b.hasWhere() {
		return b.fail(op, ErrWhereRequired)
	}
	text, err := b.conds.group(logical, conditions, compound)
	if err != nil {
		return b.fail(op, err)
	}
	b.push(token{role: roleFragment, text: text})
	return b
}

// ----------------------------------------------------------------------------
// JOIN
// ----------------------------------------------------------------------------

// InnerJoin appends INNER JOIN `table` ON `c` = :c AND ...
func (b *QueryBuilder) InnerJoin(table string, on ...Pair) *QueryBuilder {
	return b.join(dialect.JoinInner, table, on)
}

// LeftJoin appends LEFT JOIN `table` ON ...
func (b *QueryBuilder) LeftJoin(table string, on ...Pair) *QueryBuilder {
	return b.join(dialect.JoinLeft, table, on)
}

// RightJoin appends RIGHT JOIN `table` ON ...
func (b *QueryBuilder) RightJoin(table string, on ...Pair) *QueryBuilder {
	return b.join(dialect.JoinRight, table, on)
}

// FullJoin appends FULL JOIN `table` ON ...
func (b *QueryBuilder) FullJoin(table string, on ...Pair) *QueryBuilder {
	return b.join(dialect.JoinFull, table, on)
}

func (b *QueryBuilder) join(jt dialect.JoinType, table string, on []Pair) *QueryBuilder {
	if b.err != nil {
		return b
	}
	qt, err := b.table(table)
	if err != nil {
		return b.fail(jt.Keyword(), err)
	}
	clause, err := b.conds.build(on, dialect.LogicalAnd)
	if err != nil {
		return b.fail(jt.Keyword(), err)
	}
	b.push(token{role: roleFragment, text: jt.Keyword() + " " + qt + " ON " + clause})
	return b
}

// JoinOn, iki kolonu karşılaştıran bir JOIN ekler. Kolonlar "tablo.kolon"
// biçiminde verilebilir; her parça ayrı tırnaklanır.
//
// Örnek:
//
//	qb.JoinOn(dialect.JoinLeft, "orders", "users.id", "orders.user_id")
//	// LEFT JOIN `orders` ON `users`.`id` = `orders`.`user_id`
func (b *QueryBuilder) JoinOn(jt dialect.JoinType, table, left, right string) *QueryBuilder {
	if b.err != nil {
		return b
	}
	if !jt.Valid() {
		return b.fail("JoinOn", &validation.KeywordError{Kind: "join type", Keyword: string(jt), Reason: "must be INNER, LEFT, RIGHT or FULL"})
	}
	qt, err := b.table(table)
	if err != nil {
		return b.fail("JoinOn", err)
	}
	for _, c := range []string{left, right} {
		for _, part := range strings.Split(c, ".") {
			if err := validation.ValidateIdentifier(part); err != nil {
				return b.fail("JoinOn", err)
			}
		}
	}
	b.push(token{
		role: roleFragment,
		text: jt.Keyword() + " " + qt + " ON " + b.quoter.QuoteQualified(left) + " = " + b.quoter.QuoteQualified(right),
	})
	return b
}

// ----------------------------------------------------------------------------
// GROUP BY / ORDER BY / LIMIT / OFFSET
// ----------------------------------------------------------------------------

// GroupBy adds quoted columns to the GROUP BY list.
func (b *QueryBuilder) GroupBy(columns ...string) *QueryBuilder {
	if b.err != nil {
		return b
	}
	if len(columns) == 0 {
		return b.fail("GroupBy", ErrNoColumns)
	}
	items := make([]string, len(columns))
	for i, c := range columns {
		q, err := b.ident(c)
		if err != nil {
			return b.fail("GroupBy", err)
		}
		items[i] = q
	}

	if i := b.find(roleGroup); i >= 0 {
		b.tokens[i].items = append(b.tokens[i].items, items...)
		b.last = i
		return b
	}
	b.push(token{role: roleGroup, text: "GROUP BY", items: items})
	return b
}

// OrderBy, ORDER BY listesine bir kolon ekler. Yön verilmezse ASC kullanılır.
// Tekrarlanan çağrılar aynı ORDER BY listesini uzatır.
func (b *QueryBuilder) OrderBy(column string, direction ...string) *QueryBuilder {
	if b.err != nil {
		return b
	}
	q, err := b.ident(column)
	if err != nil {
		return b.fail("OrderBy", err)
	}

	raw := ""
	if len(direction) > 0 {
		raw = direction[0]
	}
	dir, ok := dialect.ParseOrderDirection(raw)
	if !ok {
		return b.fail("OrderBy", &validation.KeywordError{Kind: "order direction", Keyword: raw, Reason: "must be ASC or DESC"})
	}

	item := q + " " + string(dir)
	if i := b.find(roleOrder); i >= 0 {
		b.tokens[i].items = append(b.tokens[i].items, item)
		b.last = i
		return b
	}
	b.push(token{role: roleOrder, text: "ORDER BY", items: []string{item}})
	return b
}

// Limit, LIMIT :limit ekler. Tekrarlanan çağrılar yeni bir LIMIT eklemez,
// yalnızca bağlı değeri günceller.
func (b *QueryBuilder) Limit(n int) *QueryBuilder {
	if b.err != nil {
		return b
	}
	if n < 0 {
		return b.fail("Limit", &validation.KeywordError{Kind: "limit", Keyword: "negative", Reason: "must not be negative"})
	}
	if b.limitName != "" {
		b.binder.Set(b.limitName, n)
		return b
	}
	b.limitName = b.binder.BindNamed("limit", n)
	b.push(token{role: roleLimit, text: "LIMIT " + b.quoter.Placeholder(b.limitName)})
	return b
}

// Offset adds OFFSET :offset; repeated calls update the bound value.
func (b *QueryBuilder) Offset(n int) *QueryBuilder {
	if b.err != nil {
		return b
	}
	if n < 0 {
		return b.fail("Offset", &validation.KeywordError{Kind: "offset", Keyword: "negative", Reason: "must not be negative"})
	}
	if b.offsetName != "" {
		b.binder.Set(b.offsetName, n)
		return b
	}
	b.offsetName = b.binder.BindNamed("offset", n)
	b.push(token{role: roleOffset, text: "OFFSET " + b.quoter.Placeholder(b.offsetName)})
	return b
}

// ----------------------------------------------------------------------------
// Subquery, alias, set operations, raw text
// ----------------------------------------------------------------------------

// Subquery, "(sql)" metnini saklar ve ifadeye ekler. Son parça seçim
// listesindeyse yeni bir seçim öğesi olur, değilse düz parça olarak eklenir.
func (b *QueryBuilder) Subquery(sql string) *QueryBuilder {
	if b.err != nil {
		return b
	}
	if strings.TrimSpace(sql) == "" {
		return b.fail("Subquery", ErrEmptyStatement)
	}
	b.subquery = "(" + sql + ")"
	if b.inSelectList() {
		b.addItem(b.subquery)
		return b
	}
	b.push(token{role: roleFragment, text: b.subquery})
	return b
}

// HeldSubquery returns the text stored by the last Subquery call.
func (b *QueryBuilder) HeldSubquery() string {
	return b.subquery
}

// Alias appends AS `alias` to the most recently added part.
func (b *QueryBuilder) Alias(alias string) *QueryBuilder {
	if b.err != nil {
		return b
	}
	if b.last < 0 {
		return b.fail("Alias", ErrNothingToAlias)
	}
	q, err := b.ident(alias)
	if err != nil {
		return b.fail("Alias", err)
	}
	b.tokens[b.last].alias += " AS " + q
	return b
}

// Union appends UNION (sql); on an empty builder sql becomes the statement.
func (b *QueryBuilder) Union(sql string) *QueryBuilder {
	return b.setOperation(dialect.SetUnion, sql)
}

// UnionAll appends UNION ALL (sql).
func (b *QueryBuilder) UnionAll(sql string) *QueryBuilder {
	return b.setOperation(dialect.SetUnionAll, sql)
}

// Intersect appends INTERSECT (sql).
func (b *QueryBuilder) Intersect(sql string) *QueryBuilder {
	return b.setOperation(dialect.SetIntersect, sql)
}

// Except appends EXCEPT (sql).
func (b *QueryBuilder) Except(sql string) *QueryBuilder {
	return b.setOperation(dialect.SetExcept, sql)
}

func (b *QueryBuilder) setOperation(op dialect.SetOperator, sql string) *QueryBuilder {
	if b.err != nil {
		return b
	}
	if strings.TrimSpace(sql) == "" {
		return b.fail(string(op), ErrEmptyStatement)
	}
	if len(b.tokens) == 0 {
		b.seed(sql)
		return b
	}
	b.push(token{role: roleFragment, text: string(op) + " (" + sql + ")"})
	return b
}

// SetQuery, ifadeyi verilen ham SQL ile değiştirir. Türü ilk anahtar
// kelimeden belirlenir. Parametreler sıfırlanır.
func (b *QueryBuilder) SetQuery(sql string) *QueryBuilder {
	if b.err != nil {
		return b
	}
	if strings.TrimSpace(sql) == "" {
		return b.fail("SetQuery", ErrEmptyStatement)
	}
	b.seed(sql)
	return b
}

// Raw appends a SQL fragment verbatim. On an empty builder it seeds the
// statement like SetQuery. Never pass user input here.
func (b *QueryBuilder) Raw(fragment string) *QueryBuilder {
	if b.err != nil {
		return b
	}
	if strings.TrimSpace(fragment) == "" {
		return b.fail("Raw", ErrEmptyStatement)
	}
	if len(b.tokens) == 0 {
		b.seed(fragment)
		return b
	}
	b.push(token{role: roleFragment, text: fragment, raw: true})
	return b
}

// CreateTable, ifadeyi tablonun CREATE TABLE metniyle başlatır.
func (b *QueryBuilder) CreateTable(t *schema.Table) *QueryBuilder {
	if b.err != nil {
		return b
	}
	stmt, err := t.CreateTableStatement()
	if err != nil {
		return b.fail("CreateTable", err)
	}
	b.resetStatement()
	b.push(token{role: roleHead, text: stmt})
	b.kind = KindDDL
	return b
}

// ----------------------------------------------------------------------------
// Inspection
// ----------------------------------------------------------------------------

// SQL renders the current statement. Consecutive select-list entries are
// joined with ", ", every other part with a single space.
func (b *QueryBuilder) SQL() string {
	var sb strings.Builder
	for i, t := range b.tokens {
		if i > 0 {
			if b.tokens[i-1].role == roleItem && t.role == roleItem {
				sb.WriteString(", ")
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(t.render())
	}
	return sb.String()
}

// Params returns a copy of the bound parameters.
func (b *QueryBuilder) Params() Params {
	return b.binder.Params()
}

// ToSQL, ifadeyi SQL metni ve parametrelerle döndürür. Biriken bir hata
// varsa yalnızca hata döner.
func (b *QueryBuilder) ToSQL() (string, Params, error) {
	if b.err != nil {
		return "", nil, b.err
	}
	return b.SQL(), b.Params(), nil
}

// Kind returns the kind of the current statement.
func (b *QueryBuilder) Kind() StatementKind {
	return b.kind
}

// Err, birikmiş hatayı döndürür.
func (b *QueryBuilder) Err() error {
	return b.err
}

// Reset, ifadeyi, parametreleri ve biriken hatayı temizler. Executor, cache,
// logger ve işlem durumu korunur.
func (b *QueryBuilder) Reset() *QueryBuilder {
	b.resetStatement()
	b.err = nil
	return b
}

// Quote returns name as a quoted MySQL identifier.
func (b *QueryBuilder) Quote(name string) string {
	return b.quoter.Quote(name)
}
