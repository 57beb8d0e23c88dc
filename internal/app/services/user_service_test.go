package services

import (
	"context"
	"errors"
	"testing"

	"github.com/hare-edu/hare-backend/internal/app/models"
	"github.com/hare-edu/hare-backend/internal/app/models/dto"
	"github.com/hare-edu/hare-backend/internal/pkg/apperrors"
	"github.com/hare-edu/hare-backend/internal/pkg/auth"
)

func stringPtr(s string) *string { return &s }

func TestCreateUser(t *testing.T) {
	repo := newMemUserRepo()
	service := NewUserService(repo)

	user, err := service.CreateUser(context.Background(), &dto.CreateUserRequest{
		FirstNames: "Ana Maria",
		LastName:   "Rodriguez",
		Email:      "ana@hare.edu.co",
		Password:   "plain-password",
	})
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}

	if user.Role != models.RoleAdmin {
		t.Errorf("role = %q, want %q", user.Role, models.RoleAdmin)
	}
	if user.Password == "plain-password" {
		t.Error("password stored in plain text")
	}
	if !auth.CheckPassword(user.Password, "plain-password") {
		t.Error("stored hash does not verify against the original password")
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	repo := newMemUserRepo()
	service := NewUserService(repo)
	seedUser(t, repo, "ana@hare.edu.co", "pw")

	_, err := service.CreateUser(context.Background(), &dto.CreateUserRequest{
		FirstNames: "Otra",
		LastName:   "Persona",
		Email:      "ana@hare.edu.co",
		Password:   "password1",
	})
	if !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		t.Errorf("error = %v, want ErrEmailAlreadyExists", err)
	}
}

func TestCreateUserDuplicateNamePair(t *testing.T) {
	repo := newMemUserRepo()
	service := NewUserService(repo)
	seedUser(t, repo, "ana@hare.edu.co", "pw")

	_, err := service.CreateUser(context.Background(), &dto.CreateUserRequest{
		FirstNames: "Ana Maria",
		LastName:   "Rodriguez",
		Email:      "otra@hare.edu.co",
		Password:   "password1",
	})
	if !errors.Is(err, apperrors.ErrNameAlreadyExists) {
		t.Errorf("error = %v, want ErrNameAlreadyExists", err)
	}
}

func TestUpdateUserPartial(t *testing.T) {
	repo := newMemUserRepo()
	service := NewUserService(repo)
	user := seedUser(t, repo, "ana@hare.edu.co", "pw")

	updated, err := service.UpdateUser(context.Background(), user.ID, &dto.UpdateUserRequest{
		Phone: stringPtr("3001234567"),
	})
	if err != nil {
		t.Fatalf("UpdateUser returned error: %v", err)
	}

	if updated.Phone == nil || *updated.Phone != "3001234567" {
		t.Errorf("phone not updated: %+v", updated.Phone)
	}
	if updated.Email != "ana@hare.edu.co" || updated.FirstNames != "Ana Maria" {
		t.Error("absent fields were modified by a partial update")
	}
}

func TestUpdateUserRehashesPassword(t *testing.T) {
	repo := newMemUserRepo()
	service := NewUserService(repo)
	user := seedUser(t, repo, "ana@hare.edu.co", "old-password")

	updated, err := service.UpdateUser(context.Background(), user.ID, &dto.UpdateUserRequest{
		Password: stringPtr("new-password"),
	})
	if err != nil {
		t.Fatalf("UpdateUser returned error: %v", err)
	}

	if !auth.CheckPassword(updated.Password, "new-password") {
		t.Error("updated hash does not verify against the new password")
	}
	if auth.CheckPassword(updated.Password, "old-password") {
		t.Error("old password still verifies after the update")
	}
}

func TestUpdateUserKeepingOwnEmail(t *testing.T) {
	repo := newMemUserRepo()
	service := NewUserService(repo)
	user := seedUser(t, repo, "ana@hare.edu.co", "pw")

	// Re-sending the current email must not trip the uniqueness check.
	if _, err := service.UpdateUser(context.Background(), user.ID, &dto.UpdateUserRequest{
		Email: stringPtr("ana@hare.edu.co"),
	}); err != nil {
		t.Errorf("UpdateUser with unchanged email returned error: %v", err)
	}
}

func TestUpdateUserNotFound(t *testing.T) {
	service := NewUserService(newMemUserRepo())

	_, err := service.UpdateUser(context.Background(), 42, &dto.UpdateUserRequest{})
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Errorf("error = %v, want ErrUserNotFound", err)
	}
}

func TestDeleteUserNotFound(t *testing.T) {
	service := NewUserService(newMemUserRepo())

	if err := service.DeleteUser(context.Background(), 42); !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Errorf("error = %v, want ErrUserNotFound", err)
	}
}
