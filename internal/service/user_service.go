package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmarkhas/planning-poker/internal/domain"
	"github.com/dmarkhas/planning-poker/internal/repository"
)

type UserService struct {
	users repository.UserRepository
	log   *slog.Logger
}

func NewUserService(users repository.UserRepository, log *slog.Logger) *UserService {
	if log == nil {
		log = slog.Default()
	}
	return &UserService{users: users, log: log}
}

func (s *UserService) CreateGuest(ctx context.Context, name string, avatarURL string) (*domain.User, error) {
	const op = "service.user.guest"

	if name == "" {
		return nil, errors.New("name is required")
	}

	user := domain.NewGuestUser(name, avatarURL)
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("guest created", "op", op, "user_id", user.ID.String(), "name", name)
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}
