package database

import (
	"context"
	"fmt"

	"github.com/diillson/restaurante-api/internal/domain/model"
	"gorm.io/gorm"
)

var (
	defaultTableStatuses = []string{"Livre", "Ocupada", "Reservada"}
	defaultPaymentTypes  = []string{"Dinheiro", "Cartão de Crédito", "Cartão de Débito", "Pix"}
)

// Seed grava as situações de mesa e formas de pagamento padrão. Pode ser
// executado várias vezes.
func Seed(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, desc := range defaultTableStatuses {
			var status model.TableStatus
			if err := tx.Where(model.TableStatus{Descricao: desc}).FirstOrCreate(&status).Error; err != nil {
				return fmt.Errorf("situação %q: %w", desc, err)
			}
		}
		for _, desc := range defaultPaymentTypes {
			var paymentType model.PaymentType
			if err := tx.Where(model.PaymentType{Descricao: desc}).FirstOrCreate(&paymentType).Error; err != nil {
				return fmt.Errorf("tipo de pagamento %q: %w", desc, err)
			}
		}
		return nil
	})
}
