// Package securesql builds parameterized MySQL statements.
//
// A QueryBuilder assembles SELECT, INSERT, UPDATE, DELETE and DDL statements
// from chained calls and renders them as SQL text plus a separate map of
// named parameters. Values never enter the SQL text; identifiers are always
// backtick-quoted.
//
// # Quick Start
//
// Render a statement without a database:
//
//	sql, params, err := securesql.New().
//	    Insert("users", securesql.Set("name", "Jo"), securesql.Set("age", 30)).
//	    ToSQL()
//	// INSERT INTO `users` (`name`, `age`) VALUES (:param0, :param1)
//	// params: {param0: "Jo", param1: 30}
//
// Connect and execute:
//
//	qb, err := securesql.Open(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer qb.Close()
//
//	res, err := qb.Select("id", "name").
//	    From("users").
//	    Where(securesql.Eq("status", "active")).
//	    Limit(10).
//	    Execute(ctx)
//
// # Where Clauses
//
// Where opens the clause once; grouped conditions are attached after it:
//
//	qb.Select("*").From("users").
//	    Where(securesql.Eq("status", "active")).
//	    OrWhere(securesql.Eq("role", "admin"), securesql.Eq("role", "owner")).
//	    NotWhere(securesql.Eq("banned", 1))
//	// ... WHERE `status` = :param0 OR (`role` = :role OR `role` = :role_1)
//	//     AND NOT (`banned` = :banned)
//
// Calling AndWhere, OrWhere or NotWhere before Where is an error
// (ErrWhereRequired).
//
// # Statement kinds
//
// Execute routes the statement by kind: DDL runs without parameters, INSERT
// returns the generated id, UPDATE/DELETE return the affected row count and
// everything else returns rows. ExecuteCached memoizes SELECT results. After
// every Execute the builder is empty again.
//
// # Schema
//
// DDL is described with the schema package and rendered by its Table type:
//
//	users := schema.NewTable("users").
//	    AddField(schema.NewField("id").Integer().PrimaryKey().AutoIncrement()).
//	    AddField(schema.NewField("email").Email().NotNull().Unique())
//	_, err := qb.CreateTable(users).Execute(ctx)
//
// # Errors
//
// Misuse (bad identifier, missing Where, empty data) is recorded on the
// builder and returned as *MisuseError from ToSQL or Execute. Failures from
// the database come back as *DataAccessError. Both work with errors.Is:
//
//	if errors.Is(err, securesql.ErrDataAccess) { ... }
//
// # Thread Safety
//
// QueryBuilder instances are NOT thread-safe. Create a new instance for each
// goroutine. MemoryCache and SQLExecutor may be shared.
package securesql
