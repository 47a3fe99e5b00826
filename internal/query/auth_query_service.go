package query

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/auxfresh/receipt-generator/internal/cqrs"
	"github.com/auxfresh/receipt-generator/internal/middleware"
	"github.com/auxfresh/receipt-generator/internal/repository"
	"github.com/auxfresh/receipt-generator/internal/utils"
)

// TokenRevoker stores sign-out revocations for the lifetime of the
// revoked token.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) bool
}

// AuthQueryService handles login, token refresh and sign-out. There is
// no CommandService for auth because these operations don't mutate
// application state beyond the revocation set.
type AuthQueryService struct {
	userRepo *repository.UserRepository
	revoker  TokenRevoker
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthQueryService(userRepo *repository.UserRepository, revoker TokenRevoker, secret []byte, tokenTTL time.Duration) *AuthQueryService {
	return &AuthQueryService{
		userRepo: userRepo,
		revoker:  revoker,
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

func (s *AuthQueryService) Login(cmd cqrs.LoginCommand) (string, error) {
	user, err := s.userRepo.GetByEmail(cmd.Email)
	if err != nil {
		return "", fmt.Errorf("invalid credentials")
	}
	if !utils.CheckPassword(cmd.Password, user.PasswordHash) {
		return "", fmt.Errorf("invalid credentials")
	}
	return s.generateToken(user.ID, user.Email)
}

func (s *AuthQueryService) RefreshToken(cmd cqrs.RefreshTokenCommand) (string, error) {
	claims, err := s.parseToken(cmd.Token)
	if err != nil {
		return "", err
	}
	if s.revoker.IsRevoked(context.Background(), claims.TokenID) {
		return "", fmt.Errorf("invalid token")
	}
	return s.generateToken(claims.UserID, claims.Email)
}

// Logout revokes the presented token for its remaining lifetime, which
// revokes access to all authenticated views until the next sign-in.
func (s *AuthQueryService) Logout(cmd cqrs.LogoutCommand) error {
	claims, err := s.parseToken(cmd.Token)
	if err != nil {
		return err
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.revoker.Revoke(context.Background(), claims.TokenID, ttl); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (s *AuthQueryService) parseToken(tokenString string) (*middleware.Claims, error) {
	claims := &middleware.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

func (s *AuthQueryService) generateToken(userID, email string) (string, error) {
	claims := middleware.Claims{
		UserID:  userID,
		Email:   email,
		TokenID: uuid.New().String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return signed, nil
}
