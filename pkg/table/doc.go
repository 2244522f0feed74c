// Package table builds table definitions from ordered column shapes and
// renders their DDL and DML.
//
// Tables are built through an Arena. The arena assigns every table a stable
// TableID when it is first mentioned, so a column may reference a table that
// has not been built yet, or the table being built. Foreign keys are
// recorded as placeholders and resolved by ID:
//
//	arena := table.NewArena()
//	account, _ := arena.Build("account", table.Shape{
//		table.AutoIncPK("account_id"),
//		table.UniqueCol("email", domain.VarChar(120)),
//		table.FK("manager_id", table.SelfRef("account_id").Optional()),
//	}, table.Options{})
//
// Cross-table references to tables declared later use Arena.Declare and
// Arena.ForwardRef; Arena.Resolve verifies every such edge once all tables
// are built.
package table
