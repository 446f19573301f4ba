package common

import (
	"errors"
	"net/http"

	"github.com/diillson/restaurante-api/internal/domain/repository"
	apperrors "github.com/diillson/restaurante-api/pkg/errors"
)

// Recursos de gênero feminino ("Mesa não encontrada")
var feminine = map[string]bool{
	"Mesa":             true,
	"Situação de mesa": true,
}

// MapError converte erros de repositório em APIError. resource nomeia a
// entidade nas mensagens de NotFound ("Produto não encontrado").
func MapError(err error, resource string) error {
	if err == nil {
		return nil
	}

	var apiErr *apperrors.APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	switch {
	case errors.Is(err, repository.ErrNotFound):
		if feminine[resource] {
			return apperrors.New(http.StatusNotFound, resource+" não encontrada", err)
		}
		return apperrors.NotFound(resource, err)
	case errors.Is(err, repository.ErrDuplicate):
		return apperrors.Conflict("Registro duplicado: "+resource, err)
	case errors.Is(err, repository.ErrReferenced):
		return apperrors.Conflict("Violação de integridade: "+resource, err)
	}

	return apperrors.InternalServer("", err)
}

// IsNotFound é um atalho para errors.Is(err, repository.ErrNotFound)
func IsNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
