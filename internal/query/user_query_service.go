package query

import (
	"fmt"

	"github.com/auxfresh/receipt-generator/internal/cqrs"
	"github.com/auxfresh/receipt-generator/internal/models"
	"github.com/auxfresh/receipt-generator/internal/repository"
)

// UserQueryService serves the profile view.
type UserQueryService struct {
	userRepo *repository.UserRepository
}

func NewUserQueryService(userRepo *repository.UserRepository) *UserQueryService {
	return &UserQueryService{userRepo: userRepo}
}

// GetUser returns a user's profile. Users can only read their own.
func (s *UserQueryService) GetUser(q cqrs.GetUserQuery) (*models.UserView, error) {
	if q.UserID != q.RequestingUserID {
		return nil, fmt.Errorf("forbidden")
	}
	user, err := s.userRepo.GetByID(q.UserID)
	if err != nil {
		return nil, err
	}
	return &models.UserView{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}, nil
}
