package services

import (
	"context"
	"errors"

	"github.com/hare-edu/hare-backend/internal/app/models"
	"github.com/hare-edu/hare-backend/internal/app/models/dto"
	"github.com/hare-edu/hare-backend/internal/app/repositories"
	"github.com/hare-edu/hare-backend/internal/pkg/apperrors"
	"github.com/hare-edu/hare-backend/internal/pkg/auth"
	"github.com/hare-edu/hare-backend/internal/pkg/logger"
)

// AuthService handles credential verification and token issuance.
type AuthService struct {
	userRepo   repositories.IUserRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new AuthService instance
func NewAuthService(userRepo repositories.IUserRepository, jwtService *auth.JWTService) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Login verifies the email/password pair and returns a signed access token.
// An unknown email and a wrong password produce the same error so that the
// response does not reveal which part failed.
func (s *AuthService) Login(ctx context.Context, username, password string) (*dto.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		logger.Error().Err(err).Str("email", user.Email).Msg("Failed to generate access token")
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	}, nil
}

// GetProfile resolves the authenticated user's profile from the token
// subject (the email).
func (s *AuthService) GetProfile(ctx context.Context, email string) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	return toProfileResponse(user), nil
}

func toProfileResponse(user *models.User) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		ID:         user.ID,
		Email:      user.Email,
		FirstNames: user.FirstNames,
		LastName:   user.LastName,
		Role:       user.Role,
	}
}
