package user

import (
	"context"
	"errors"
	"strings"

	"github.com/diillson/restaurante-api/internal/app/common"
	"github.com/diillson/restaurante-api/internal/domain/model"
	"github.com/diillson/restaurante-api/internal/domain/repository"
	apperrors "github.com/diillson/restaurante-api/pkg/errors"
	"github.com/diillson/restaurante-api/pkg/security"
	"go.uber.org/zap"
)

const resource = "Usuário"

type Service struct {
	store          repository.Store
	passwordMinLen int
	logger         *zap.Logger
}

func NewService(store repository.Store, passwordMinLen int, logger *zap.Logger) *Service {
	if passwordMinLen <= 0 {
		passwordMinLen = 6
	}
	return &Service{store: store, passwordMinLen: passwordMinLen, logger: logger}
}

func (s *Service) List(ctx context.Context) ([]model.User, error) {
	users, err := s.store.Users().List(ctx)
	return users, common.MapError(err, resource)
}

func (s *Service) Get(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.store.Users().GetByID(ctx, id)
	if err != nil {
		return nil, common.MapError(err, resource)
	}
	return user, nil
}

// Create registra um usuário ativo com a senha armazenada como hash bcrypt
func (s *Service) Create(ctx context.Context, req model.UserCreate) (*model.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, apperrors.Validation("O nome de usuário é obrigatório", nil)
	}
	if err := s.validatePassword(req.Password); err != nil {
		return nil, err
	}

	hashed, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalServer("Erro ao processar senha", err)
	}

	user := &model.User{Username: username, HashedPassword: hashed, IsActive: true}

	err = s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		if _, err := tx.Users().GetByUsername(ctx, username); err == nil {
			return apperrors.Conflict("Usuário já registrado", nil)
		} else if !common.IsNotFound(err) {
			return err
		}
		return tx.Users().Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.Conflict("Usuário já registrado", err)
		}
		return nil, common.MapError(err, resource)
	}

	s.logger.Info("Usuário criado", zap.String("username", username))
	return user, nil
}

func (s *Service) Update(ctx context.Context, id int64, patch model.UserPatch) (*model.User, error) {
	var user *model.User

	err := s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		var err error
		user, err = tx.Users().GetByID(ctx, id)
		if err != nil {
			return err
		}

		if patch.Username != nil {
			username := strings.TrimSpace(*patch.Username)
			if username == "" {
				return apperrors.Validation("O nome de usuário é obrigatório", nil)
			}
			user.Username = username
		}
		if patch.Password != nil {
			if err := s.validatePassword(*patch.Password); err != nil {
				return err
			}
			hashed, err := security.HashPassword(*patch.Password)
			if err != nil {
				return apperrors.InternalServer("Erro ao processar senha", err)
			}
			user.HashedPassword = hashed
		}
		if patch.IsActive != nil {
			user.IsActive = *patch.IsActive
		}

		return tx.Users().Update(ctx, user)
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.Conflict("Usuário já registrado", err)
		}
		return nil, common.MapError(err, resource)
	}

	return user, nil
}

// Deactivate desativa o usuário; o registro é mantido
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	active := false
	_, err := s.Update(ctx, id, model.UserPatch{IsActive: &active})
	if err == nil {
		s.logger.Info("Usuário desativado", zap.Int64("id", id))
	}
	return err
}

func (s *Service) validatePassword(password string) error {
	if len(password) < s.passwordMinLen {
		return apperrors.Validation("A senha é muito curta", nil).
			WithDetails(map[string]int{"tamanho_minimo": s.passwordMinLen})
	}
	return nil
}
