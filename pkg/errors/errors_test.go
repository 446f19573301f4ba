package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	apperrors "github.com/diillson/restaurante-api/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestAPIError_Is(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		target error
	}{
		{"not found", apperrors.NotFound("Produto", nil), apperrors.ErrNotFound},
		{"conflict", apperrors.Conflict("", nil), apperrors.ErrConflict},
		{"validation", apperrors.Validation("quantidade inválida", nil), apperrors.ErrValidation},
		{"unauthorized", apperrors.Unauthorized("", nil), apperrors.ErrUnauthorized},
		{"too many", apperrors.TooManyRequests("", nil), apperrors.ErrTooManyRequests},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := fmt.Errorf("contexto: %w", tc.err)
			assert.ErrorIs(t, wrapped, tc.target)
		})
	}

	assert.NotErrorIs(t, apperrors.NotFound("Mesa", nil), apperrors.ErrConflict)
}

func TestFromError(t *testing.T) {
	assert.Nil(t, apperrors.FromError(nil))

	original := apperrors.Conflict("Produto em uso", nil)
	assert.Same(t, original, apperrors.FromError(fmt.Errorf("falha: %w", original)))

	unknown := apperrors.FromError(stderrors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, unknown.Code)
	assert.Equal(t, "Erro interno do servidor: boom", unknown.Error())
}

func TestNotFoundMessage(t *testing.T) {
	err := apperrors.NotFound("Cliente", nil)
	assert.Equal(t, "Cliente não encontrado", err.Message)
	assert.Equal(t, http.StatusNotFound, err.Code)
}
