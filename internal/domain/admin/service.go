package admin

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/scamsentry/scamsentry-api/internal/pkg/password"
)

// Service handles admin authentication.
//
// Without a database the service can run on a single bootstrap admin
// from the environment. No bootstrap credentials means admin login is
// disabled entirely.
type Service struct {
	repo      Repository
	bootstrap *AdminUser
}

// NewService creates the admin service. repo may be nil in demo mode.
func NewService(repo Repository, bootstrapEmail, bootstrapPassword string) *Service {
	s := &Service{repo: repo}

	if repo == nil && bootstrapEmail != "" && bootstrapPassword != "" {
		hash, err := password.Hash(bootstrapPassword)
		if err != nil {
			log.Error().Err(err).Msg("Failed to hash bootstrap admin password")
			return s
		}
		s.bootstrap = &AdminUser{
			ID:           uuid.New(),
			Email:        bootstrapEmail,
			PasswordHash: hash,
			Name:         "Bootstrap Admin",
			IsActive:     true,
			CreatedAt:    time.Now(),
		}
		log.Info().Str("email", bootstrapEmail).Msg("Bootstrap admin enabled")
	}

	return s
}

// Login authenticates an admin by email and password.
func (s *Service) Login(ctx context.Context, email, pwd string) (*AdminUser, error) {
	admin, err := s.getByEmail(ctx, email)
	if err != nil || admin == nil {
		return nil, ErrInvalidCredentials
	}
	if !admin.IsActive {
		return nil, ErrAdminInactive
	}
	if !password.Verify(pwd, admin.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if s.repo != nil {
		if err := s.repo.UpdateLastLogin(ctx, admin.ID); err != nil {
			log.Warn().Err(err).Str("admin_id", admin.ID.String()).Msg("Failed to record admin login")
		}
	}

	return admin, nil
}

// GetByID returns an active-or-not admin by ID.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*AdminUser, error) {
	if s.repo == nil {
		if s.bootstrap != nil && s.bootstrap.ID == id {
			return s.bootstrap, nil
		}
		return nil, ErrAdminNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) getByEmail(ctx context.Context, email string) (*AdminUser, error) {
	if s.repo == nil {
		if s.bootstrap != nil && s.bootstrap.Email == email {
			return s.bootstrap, nil
		}
		return nil, ErrAdminNotFound
	}
	return s.repo.GetByEmail(ctx, email)
}
