package report

import (
	"context"

	"github.com/diillson/restaurante-api/internal/domain/model"
	"github.com/diillson/restaurante-api/internal/domain/repository"
	apperrors "github.com/diillson/restaurante-api/pkg/errors"
	"go.uber.org/zap"
)

// Service expõe os relatórios gerenciais (somente leitura)
type Service struct {
	repo   repository.ReportRepository
	logger *zap.Logger
}

func NewService(repo repository.ReportRepository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// SalesByProduct soma quantidade e faturamento por produto em todos os pedidos
func (s *Service) SalesByProduct(ctx context.Context) ([]model.ProductSales, error) {
	rows, err := s.repo.SalesByProduct(ctx)
	if err != nil {
		s.logger.Error("Erro ao gerar relatório de vendas", zap.Error(err))
		return nil, apperrors.InternalServer("Erro ao gerar relatório de vendas", err)
	}
	return rows, nil
}

func (s *Service) RevenueByMethod(ctx context.Context) ([]model.RevenueByMethod, error) {
	rows, err := s.repo.RevenueByMethod(ctx)
	if err != nil {
		s.logger.Error("Erro ao gerar relatório de faturamento", zap.Error(err))
		return nil, apperrors.InternalServer("Erro ao gerar relatório de faturamento", err)
	}
	return rows, nil
}
