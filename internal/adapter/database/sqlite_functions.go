package database

import (
	"database/sql/driver"
	"strings"

	gosqlite "github.com/glebarez/go-sqlite"
)

// O LOWER nativo do SQLite só converte ASCII; "Água" continuaria "Água" e a
// busca por substring falharia para textos acentuados. A função registrada
// substitui a nativa em todas as conexões abertas pelo driver.
func init() {
	gosqlite.MustRegisterDeterministicScalarFunction("lower", 1, unicodeLower)
}

func unicodeLower(_ *gosqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}
