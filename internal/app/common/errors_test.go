package common_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/diillson/restaurante-api/internal/app/common"
	"github.com/diillson/restaurante-api/internal/domain/repository"
	apperrors "github.com/diillson/restaurante-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	assert.NoError(t, common.MapError(nil, "Produto"))

	cases := []struct {
		err  error
		code int
	}{
		{repository.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("%w: UNIQUE constraint failed", repository.ErrDuplicate), http.StatusConflict},
		{fmt.Errorf("%w: FOREIGN KEY constraint failed", repository.ErrReferenced), http.StatusConflict},
		{errors.New("disco cheio"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		var apiErr *apperrors.APIError
		require.ErrorAs(t, common.MapError(tc.err, "Produto"), &apiErr)
		assert.Equal(t, tc.code, apiErr.Code, tc.err.Error())
	}

	original := apperrors.Validation("quantidade inválida", nil)
	assert.Same(t, original, common.MapError(original, "Produto"))

	assert.Equal(t, "Produto não encontrado", common.MapError(repository.ErrNotFound, "Produto").(*apperrors.APIError).Message)
	assert.Equal(t, "Mesa não encontrada", common.MapError(repository.ErrNotFound, "Mesa").(*apperrors.APIError).Message)
}
