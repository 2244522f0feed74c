package core

import (
	"fmt"
	"strings"
)

// DataType tags the abstract type of a column domain. Dialects map each
// tag onto a concrete SQL type name.
type DataType int

// Abstract column types. DataTypeUnknown is the zero value and never maps.
const (
	DataTypeUnknown DataType = iota
	DataTypeText
	DataTypeVarChar
	DataTypeJSON
	DataTypeInteger
	DataTypeBigInt
	DataTypeFloat
	DataTypeBigFloat
	DataTypeDate
	DataTypeDateTime
	DataTypeBoolean
	DataTypeNativeEnum
	DataTypeTextEnum
	DataTypeArray
)

var dataTypeNames = []string{
	DataTypeUnknown:    "unknown",
	DataTypeText:       "text",
	DataTypeVarChar:    "varchar",
	DataTypeJSON:       "json",
	DataTypeInteger:    "integer",
	DataTypeBigInt:     "bigint",
	DataTypeFloat:      "float",
	DataTypeBigFloat:   "bigfloat",
	DataTypeDate:       "date",
	DataTypeDateTime:   "datetime",
	DataTypeBoolean:    "boolean",
	DataTypeNativeEnum: "enum",
	DataTypeTextEnum:   "text_enum",
	DataTypeArray:      "array",
}

// String returns the schema-document name of the type.
func (t DataType) String() string {
	if t >= 0 && int(t) < len(dataTypeNames) {
		return dataTypeNames[t]
	}
	return fmt.Sprintf("DataType(%d)", int(t))
}

// dataTypeAliases holds alternative spellings accepted by ParseDataType.
var dataTypeAliases = map[string]DataType{
	"string":    DataTypeText,
	"int":       DataTypeInteger,
	"number":    DataTypeInteger,
	"double":    DataTypeBigFloat,
	"real":      DataTypeFloat,
	"timestamp": DataTypeDateTime,
	"bool":      DataTypeBoolean,
	"textenum":  DataTypeTextEnum,
}

// ParseDataType converts a schema-document type name to a DataType.
// Returns DataTypeUnknown and false when the name is not recognized.
func ParseDataType(s string) (DataType, bool) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range dataTypeNames {
		if i > 0 && n == name {
			return DataType(i), true
		}
	}
	if t, ok := dataTypeAliases[name]; ok {
		return t, true
	}
	return DataTypeUnknown, false
}
