package command

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/auxfresh/receipt-generator/internal/cqrs"
	"github.com/auxfresh/receipt-generator/internal/events"
	"github.com/auxfresh/receipt-generator/internal/models"
	"github.com/auxfresh/receipt-generator/internal/repository"
	"github.com/auxfresh/receipt-generator/internal/utils"
)

// UserCommandService creates user accounts.
type UserCommandService struct {
	userRepo  *repository.UserRepository
	publisher *events.Publisher
	logger    *zap.Logger
}

func NewUserCommandService(userRepo *repository.UserRepository, publisher *events.Publisher, logger *zap.Logger) *UserCommandService {
	return &UserCommandService{userRepo: userRepo, publisher: publisher, logger: logger}
}

func (s *UserCommandService) Signup(cmd cqrs.SignupCommand) (*models.User, error) {
	passwordHash, err := utils.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           utils.GenerateID("usr"),
		Name:         cmd.Name,
		Email:        cmd.Email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	if err := s.publisher.Publish(context.Background(), events.UserEventsStream, events.UserCreated, events.UserCreatedEvent{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
	}); err != nil {
		s.logger.Warn("failed to publish user.created event", zap.Error(err))
	}
	return user, nil
}
