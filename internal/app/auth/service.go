package auth

import (
	"context"
	"time"

	"github.com/diillson/restaurante-api/internal/app/common"
	"github.com/diillson/restaurante-api/internal/domain/model"
	"github.com/diillson/restaurante-api/internal/domain/repository"
	"github.com/diillson/restaurante-api/internal/infra/metrics"
	apperrors "github.com/diillson/restaurante-api/pkg/errors"
	"github.com/diillson/restaurante-api/pkg/security"
	"go.uber.org/zap"
)

const invalidCredentials = "Senha ou usuário incorretos"

// AuthService gerencia operações de autenticação
type AuthService struct {
	keyManager *security.KeyManager
	users      repository.UserRepository
	metrics    *metrics.APIMetrics
	logger     *zap.Logger
}

// NewAuthService cria um novo serviço de autenticação
func NewAuthService(keyManager *security.KeyManager, users repository.UserRepository, apiMetrics *metrics.APIMetrics, logger *zap.Logger) *AuthService {
	return &AuthService{
		keyManager: keyManager,
		users:      users,
		metrics:    apiMetrics,
		logger:     logger,
	}
}

// Login autentica um usuário e gera um token JWT com o username como subject
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		s.metrics.LoginAttempt(false)
		if common.IsNotFound(err) {
			s.logger.Warn("Falha na autenticação: usuário desconhecido", zap.String("username", username))
			return "", apperrors.Unauthorized(invalidCredentials, nil)
		}
		return "", common.MapError(err, "Usuário")
	}

	if !security.CheckPassword(user.HashedPassword, password) {
		s.metrics.LoginAttempt(false)
		s.logger.Warn("Falha na autenticação: senha inválida", zap.String("username", username))
		return "", apperrors.Unauthorized(invalidCredentials, nil)
	}

	if !user.IsActive {
		s.metrics.LoginAttempt(false)
		s.logger.Warn("Falha na autenticação: usuário inativo", zap.String("username", username))
		return "", apperrors.Unauthorized(invalidCredentials, nil)
	}

	token, err := s.keyManager.GenerateToken(user.Username)
	if err != nil {
		s.logger.Error("Falha ao gerar token", zap.String("username", username), zap.Error(err))
		return "", apperrors.InternalServer("Falha ao gerar token", err)
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.users.Update(ctx, user); err != nil {
		s.logger.Warn("Falha ao registrar último login", zap.String("username", username), zap.Error(err))
	}

	s.metrics.LoginAttempt(true)
	s.logger.Info("Login bem-sucedido", zap.String("username", username))
	return token, nil
}

// ValidateToken valida um token JWT e retorna o usuário ativo correspondente
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*model.User, error) {
	claims, err := s.keyManager.VerifyToken(tokenString)
	if err != nil {
		return nil, apperrors.Unauthorized("Token inválido ou expirado", err)
	}

	user, err := s.users.GetByUsername(ctx, claims.Username())
	if err != nil {
		if common.IsNotFound(err) {
			s.logger.Warn("Usuário do token não encontrado", zap.String("username", claims.Username()))
			return nil, apperrors.Unauthorized("Não foi possível validar as credenciais", nil)
		}
		return nil, common.MapError(err, "Usuário")
	}

	if !user.IsActive {
		return nil, apperrors.Unauthorized("Usuário inativo", nil)
	}

	return user, nil
}
