package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/diillson/restaurante-api/internal/domain/repository"
	"gorm.io/gorm"
)

// translateError converte erros do gorm/driver nos erros do pacote repository.
// TranslateError cobre os dialetos conhecidos; as mensagens cobrem o restante.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repository.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", repository.ErrDuplicate, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", repository.ErrReferenced, err)
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "unique constraint"),
		strings.Contains(msg, "duplicate key"),
		strings.Contains(msg, "duplicate entry"):
		return fmt.Errorf("%w: %v", repository.ErrDuplicate, err)
	case strings.Contains(msg, "foreign key"):
		return fmt.Errorf("%w: %v", repository.ErrReferenced, err)
	}

	return err
}

// deleteResult trata o resultado de um DELETE por chave primária
func deleteResult(result *gorm.DB) error {
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// likeEscape é o caractere de escape das buscas por substring. A barra invertida não serve
// porque o MySQL a interpreta dentro do literal.
const likeEscape = "!"

var likeReplacer = strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")

// likeCondition monta a condição de busca por substring sem diferenciar maiúsculas
func likeCondition(column string) string {
	return "LOWER(" + column + ") LIKE ? ESCAPE '" + likeEscape + "'"
}

// likePattern monta o padrão correspondente a likeCondition, tratando % e _ como literais
func likePattern(s string) string {
	return "%" + likeReplacer.Replace(strings.ToLower(strings.TrimSpace(s))) + "%"
}
