package services

import (
	"context"

	"github.com/hare-edu/hare-backend/internal/app/models"
	"github.com/hare-edu/hare-backend/internal/app/models/dto"
	"github.com/hare-edu/hare-backend/internal/app/repositories"
	"github.com/hare-edu/hare-backend/internal/pkg/apperrors"
	"github.com/hare-edu/hare-backend/internal/pkg/auth"
)

// UserService handles account management. Every stored account is an
// administrator; the role field exists for token claims, not for tiering.
type UserService struct {
	userRepo repositories.IUserRepository
}

// NewUserService creates a new UserService instance
func NewUserService(userRepo repositories.IUserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// CreateUser registers a new account after checking email and full-name
// uniqueness. The password is bcrypt-hashed before storage and the role is
// pinned to admin.
func (s *UserService) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error) {
	emailTaken, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if emailTaken {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	nameTaken, err := s.userRepo.NamePairExists(ctx, req.FirstNames, req.LastName, 0)
	if err != nil {
		return nil, err
	}
	if nameTaken {
		return nil, apperrors.ErrNameAlreadyExists
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FirstNames: req.FirstNames,
		LastName:   req.LastName,
		Phone:      req.Phone,
		Email:      req.Email,
		Password:   hashed,
		Role:       models.RoleAdmin,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetUserByID retrieves a single user
func (s *UserService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetUserByEmail retrieves a single user by email
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.userRepo.GetByEmail(ctx, email)
}

// GetAllUsers retrieves users with skip/limit pagination
func (s *UserService) GetAllUsers(ctx context.Context, skip, limit int) ([]*models.User, error) {
	return s.userRepo.GetAll(ctx, skip, limit)
}

// UpdateUser applies a partial update. Only fields present in the request
// change; uniqueness checks run only for fields that actually change.
func (s *UserService) UpdateUser(ctx context.Context, id int64, req *dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != user.Email {
		emailTaken, err := s.userRepo.EmailExists(ctx, *req.Email)
		if err != nil {
			return nil, err
		}
		if emailTaken {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		user.Email = *req.Email
	}

	firstNames := user.FirstNames
	lastName := user.LastName
	if req.FirstNames != nil {
		firstNames = *req.FirstNames
	}
	if req.LastName != nil {
		lastName = *req.LastName
	}
	if firstNames != user.FirstNames || lastName != user.LastName {
		nameTaken, err := s.userRepo.NamePairExists(ctx, firstNames, lastName, id)
		if err != nil {
			return nil, err
		}
		if nameTaken {
			return nil, apperrors.ErrNameAlreadyExists
		}
		user.FirstNames = firstNames
		user.LastName = lastName
	}

	if req.Phone != nil {
		user.Phone = req.Phone
	}

	if req.Password != nil {
		hashed, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// DeleteUser deletes a user by ID
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	return s.userRepo.Delete(ctx, id)
}
