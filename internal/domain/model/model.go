package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// Valores monetários saem como número JSON (12.5) e não como string ("12.5")
	decimal.MarshalJSONWithoutQuotes = true
}

// Filtros de status usados nas listagens de produtos, clientes e usuários
const (
	StatusAtivos   = "ativos"
	StatusInativos = "inativos"
	StatusTodos    = "todos"
)

// ValidStatusFilter informa se s é um filtro de status aceito (vazio usa o padrão)
func ValidStatusFilter(s string) bool {
	switch s {
	case "", StatusAtivos, StatusInativos, StatusTodos:
		return true
	}
	return false
}

// normalizeOptional remove espaços e converte string vazia em nil
func normalizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
