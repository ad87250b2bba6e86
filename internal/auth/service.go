package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/finsight-pos/finsight-pos/internal/shared"
	"github.com/finsight-pos/finsight-pos/internal/users"
)

// Service wraps authentication business rules.
type Service struct {
	repo users.Repository
}

// NewService constructs a new Service.
func NewService(repo users.Repository) *Service {
	return &Service{repo: repo}
}

// Authenticate validates email/password credentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*users.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	return user, nil
}

// Profile loads the account behind an authenticated request.
func (s *Service) Profile(ctx context.Context, userID int64) (*users.User, error) {
	return s.repo.Get(ctx, userID)
}
