// Package mssql provides the Microsoft SQL Server dialect definition.
// This package is pure Go with no database driver dependencies.
package mssql

import (
	"github.com/leapstack-labs/sqlaide/pkg/core"
	"github.com/leapstack-labs/sqlaide/pkg/dialect"
)

func init() {
	dialect.Register(MSSQL)
}

var mssqlReservedWords = []string{
	"backup", "browse", "bulk", "checkpoint", "clustered", "compute",
	"dbcc", "deny", "disk", "dump", "errlvl", "exec", "execute", "file",
	"fillfactor", "holdlock", "identity", "identity_insert", "kill",
	"lineno", "merge", "nocheck", "nonclustered", "openquery", "percent",
	"pivot", "plan", "print", "proc", "procedure", "raiserror",
	"readtext", "restore", "revert", "rowcount", "rule", "save",
	"schema", "setuser", "shutdown", "statistics", "top", "tran",
	"trigger", "truncate", "tsequal", "waitfor", "writetext",
}

// MSSQL is the enterprise SQL Server dialect.
var MSSQL = dialect.NewDialect("mssql").
	Presentation("Microsoft SQL*Server").
	Family(core.FamilyEnterprise).
	Aliases("sqlserver", "tsql").
	Identifiers("[", "]", "]]", core.NormCaseInsensitive).
	DefaultSchema("dbo").
	PlaceholderStyle(core.PlaceholderAtP).
	TypeName(core.DataTypeBoolean, "BIT").
	TypeName(core.DataTypeDateTime, "DATETIME2").
	TypeName(core.DataTypeText, "NVARCHAR(MAX)").
	TypeName(core.DataTypeJSON, "NVARCHAR(MAX)").
	TypeName(core.DataTypeTextEnum, "NVARCHAR(450)").
	AutoIncrement("", "IDENTITY(1,1) PRIMARY KEY").
	BooleanLiterals("0", "1").
	BatchSeparator("GO").
	ReservedWords(dialect.StandardReservedWords()...).
	ReservedWords(mssqlReservedWords...).
	Build()
