package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hare-edu/hare-backend/internal/app/models"
	"github.com/hare-edu/hare-backend/internal/pkg/apperrors"
	"github.com/hare-edu/hare-backend/internal/pkg/auth"
)

// memUserRepo is an in-memory IUserRepository for service tests.
type memUserRepo struct {
	nextID int64
	users  map[int64]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[int64]*models.User)}
}

func (m *memUserRepo) Create(ctx context.Context, u *models.User) error {
	m.nextID++
	u.ID = m.nextID
	copied := *u
	m.users[u.ID] = &copied
	return nil
}

func (m *memUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *memUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (m *memUserRepo) GetAll(ctx context.Context, skip, limit int) ([]*models.User, error) {
	var out []*models.User
	for _, u := range m.users {
		copied := *u
		out = append(out, &copied)
	}
	return out, nil
}

func (m *memUserRepo) Update(ctx context.Context, u *models.User) error {
	if _, ok := m.users[u.ID]; !ok {
		return apperrors.ErrUserNotFound
	}
	copied := *u
	m.users[u.ID] = &copied
	return nil
}

func (m *memUserRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *memUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(ctx, email)
	return err == nil, nil
}

func (m *memUserRepo) NamePairExists(ctx context.Context, firstNames, lastName string, excludeID int64) (bool, error) {
	for _, u := range m.users {
		if u.FirstNames == firstNames && u.LastName == lastName && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func seedUser(t *testing.T, repo *memUserRepo, email, password string) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{
		FirstNames: "Ana Maria",
		LastName:   "Rodriguez",
		Email:      email,
		Password:   hash,
		Role:       models.RoleAdmin,
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func newAuthFixture(t *testing.T) (*AuthService, *memUserRepo) {
	t.Helper()
	repo := newMemUserRepo()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: 30 * time.Minute,
		TokenIssuer:    "hare.backend",
	})
	return NewAuthService(repo, jwtService), repo
}

func TestLoginSuccess(t *testing.T) {
	service, repo := newAuthFixture(t)
	seedUser(t, repo, "ana@hare.edu.co", "correct-password")

	token, err := service.Login(context.Background(), "ana@hare.edu.co", "correct-password")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if token.AccessToken == "" {
		t.Error("access token is empty")
	}
	if token.TokenType != "bearer" {
		t.Errorf("token type = %q, want bearer", token.TokenType)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	service, repo := newAuthFixture(t)
	seedUser(t, repo, "ana@hare.edu.co", "correct-password")

	_, wrongPassErr := service.Login(context.Background(), "ana@hare.edu.co", "wrong-password")
	_, unknownUserErr := service.Login(context.Background(), "nadie@hare.edu.co", "whatever")

	if !errors.Is(wrongPassErr, apperrors.ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, want ErrInvalidCredentials", wrongPassErr)
	}
	if !errors.Is(unknownUserErr, apperrors.ErrInvalidCredentials) {
		t.Errorf("unknown user error = %v, want ErrInvalidCredentials", unknownUserErr)
	}
	if wrongPassErr.Error() != unknownUserErr.Error() {
		t.Error("wrong-password and unknown-user errors differ, leaking which part failed")
	}
}

func TestGetProfile(t *testing.T) {
	service, repo := newAuthFixture(t)
	user := seedUser(t, repo, "ana@hare.edu.co", "correct-password")

	profile, err := service.GetProfile(context.Background(), "ana@hare.edu.co")
	if err != nil {
		t.Fatalf("GetProfile returned error: %v", err)
	}

	if profile.ID != user.ID || profile.Email != user.Email {
		t.Errorf("profile = %+v, want id=%d email=%s", profile, user.ID, user.Email)
	}
	if profile.Role != models.RoleAdmin {
		t.Errorf("role = %q, want %q", profile.Role, models.RoleAdmin)
	}
}
