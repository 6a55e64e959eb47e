package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/scamsentry/scamsentry-api/internal/pkg/password"
)

type fakeRepository struct {
	admins map[string]*AdminUser
}

func (f *fakeRepository) GetByEmail(ctx context.Context, email string) (*AdminUser, error) {
	if a, ok := f.admins[email]; ok {
		return a, nil
	}
	return nil, ErrAdminNotFound
}

func (f *fakeRepository) GetByID(ctx context.Context, id uuid.UUID) (*AdminUser, error) {
	for _, a := range f.admins {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, ErrAdminNotFound
}

func (f *fakeRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	return nil
}

func fakeAdmin(t *testing.T, email, pwd string, active bool) *AdminUser {
	t.Helper()
	hash, err := password.Hash(pwd)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	return &AdminUser{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Name:         "Moderator",
		IsActive:     active,
		CreatedAt:    time.Now(),
	}
}

func TestLoginSuccess(t *testing.T) {
	repo := &fakeRepository{admins: map[string]*AdminUser{
		"mod@example.com": fakeAdmin(t, "mod@example.com", "correct-horse", true),
	}}
	svc := NewService(repo, "", "")

	adminUser, err := svc.Login(context.Background(), "mod@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if adminUser.Email != "mod@example.com" {
		t.Errorf("wrong admin returned: %q", adminUser.Email)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	repo := &fakeRepository{admins: map[string]*AdminUser{
		"mod@example.com": fakeAdmin(t, "mod@example.com", "correct-horse", true),
	}}
	svc := NewService(repo, "", "")

	if _, err := svc.Login(context.Background(), "mod@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := NewService(&fakeRepository{admins: map[string]*AdminUser{}}, "", "")

	if _, err := svc.Login(context.Background(), "nobody@example.com", "pw"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginInactiveAccount(t *testing.T) {
	repo := &fakeRepository{admins: map[string]*AdminUser{
		"mod@example.com": fakeAdmin(t, "mod@example.com", "correct-horse", false),
	}}
	svc := NewService(repo, "", "")

	if _, err := svc.Login(context.Background(), "mod@example.com", "correct-horse"); !errors.Is(err, ErrAdminInactive) {
		t.Fatalf("expected ErrAdminInactive, got %v", err)
	}
}

func TestBootstrapAdminLogin(t *testing.T) {
	svc := NewService(nil, "admin@scamsentry.dev", "demo-pass")

	adminUser, err := svc.Login(context.Background(), "admin@scamsentry.dev", "demo-pass")
	if err != nil {
		t.Fatalf("bootstrap login failed: %v", err)
	}

	got, err := svc.GetByID(context.Background(), adminUser.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Email != "admin@scamsentry.dev" {
		t.Errorf("wrong admin: %q", got.Email)
	}
}

func TestNoBootstrapWithoutPassword(t *testing.T) {
	svc := NewService(nil, "admin@scamsentry.dev", "")

	if _, err := svc.Login(context.Background(), "admin@scamsentry.dev", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("login must be disabled without a bootstrap password, got %v", err)
	}
}
