package services

import (
	"context"

	"github.com/Dosada05/swiss-tournament/utils"
)

// AuthService guards organizer-only operations with a single shared password
// whose bcrypt hash comes from configuration.
type AuthService interface {
	VerifyOrganizer(ctx context.Context, password string) error
}

type authService struct {
	passwordHash string
}

func NewAuthService(passwordHash string) AuthService {
	return &authService{passwordHash: passwordHash}
}

func (s *authService) VerifyOrganizer(ctx context.Context, password string) error {
	if password == "" || !utils.CheckPasswordHash(password, s.passwordHash) {
		return ErrInvalidCredentials
	}
	return nil
}
