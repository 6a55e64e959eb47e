package safecompany

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Store caches company listings in memory, backed by the repository.
// A nil repository puts the store in demo mode with the seed dataset.
type Store struct {
	mu        sync.RWMutex
	companies []*SafeCompany
	repo      Repository
}

// NewStore creates the company store. Call LoadAll before serving.
func NewStore(repo Repository) *Store {
	return &Store{repo: repo}
}

// LoadAll fetches every company; a load failure falls back to the seed
// dataset.
func (s *Store) LoadAll(ctx context.Context) {
	if s.repo == nil {
		log.Info().Msg("No database configured, serving seed companies")
		s.replace(seedCompanies())
		return
	}

	companies, err := s.repo.ListAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load companies, falling back to seed data")
		s.replace(seedCompanies())
		return
	}

	log.Info().Int("count", len(companies)).Msg("Loaded safe companies")
	s.replace(companies)
}

func (s *Store) replace(companies []*SafeCompany) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.companies = companies
}

// Add persists a submission. Every new listing starts pending with the
// fixed initial score regardless of what the client sent.
func (s *Store) Add(ctx context.Context, draft *Draft) (*SafeCompany, error) {
	c := &SafeCompany{
		ID:            uuid.New(),
		Name:          draft.Name,
		Industry:      draft.Industry,
		Description:   draft.Description,
		Website:       draft.Website,
		Tags:          draft.Tags,
		VerifiedScore: InitialVerifiedScore,
		Status:        StatusPending,
		CreatedAt:     time.Now(),
	}
	if c.Tags == nil {
		c.Tags = []string{}
	}

	if s.repo != nil {
		if err := s.repo.Insert(ctx, c); err != nil {
			log.Error().Err(err).Msg("Failed to insert company")
			return nil, err
		}
	}

	s.mu.Lock()
	s.companies = append([]*SafeCompany{c}, s.companies...)
	s.mu.Unlock()

	snap := *c
	return &snap, nil
}

// Approve transitions a listing to approved. Idempotent.
func (s *Store) Approve(ctx context.Context, id uuid.UUID) error {
	return s.setStatus(ctx, id, StatusApproved)
}

// Reject transitions a listing to rejected. Idempotent.
func (s *Store) Reject(ctx context.Context, id uuid.UUID) error {
	return s.setStatus(ctx, id, StatusRejected)
}

func (s *Store) setStatus(ctx context.Context, id uuid.UUID, status Status) error {
	if s.repo != nil {
		if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
			log.Error().Err(err).Str("company_id", id.String()).Str("status", string(status)).
				Msg("Failed to update company status")
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.companies {
		if c.ID == id {
			c.Status = status
			return nil
		}
	}
	if s.repo == nil {
		return ErrCompanyNotFound
	}
	return nil
}

// SetScore replaces the verified score. Admin-only; there is no
// community path that moves this value.
func (s *Store) SetScore(ctx context.Context, id uuid.UUID, score int) error {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	if s.repo != nil {
		if err := s.repo.UpdateScore(ctx, id, score); err != nil {
			log.Error().Err(err).Str("company_id", id.String()).Msg("Failed to update company score")
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.companies {
		if c.ID == id {
			c.VerifiedScore = score
			return nil
		}
	}
	if s.repo == nil {
		return ErrCompanyNotFound
	}
	return nil
}

// Delete hard-deletes a listing.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	if s.repo != nil {
		if err := s.repo.Delete(ctx, id); err != nil {
			log.Error().Err(err).Str("company_id", id.String()).Msg("Failed to delete company")
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.companies {
		if c.ID == id {
			s.companies = append(s.companies[:i], s.companies[i+1:]...)
			return nil
		}
	}
	if s.repo == nil {
		return ErrCompanyNotFound
	}
	return nil
}

// Get returns a snapshot of the company with the given ID, or nil.
// Reads hand out copies so handlers can encode them outside the lock
// while score and status updates mutate the cached structs.
func (s *Store) Get(id uuid.UUID) *SafeCompany {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.companies {
		if c.ID == id {
			snap := *c
			return &snap
		}
	}
	return nil
}

// All returns a snapshot of every cached company regardless of status.
func (s *Store) All() []*SafeCompany {
	return s.filter(func(*SafeCompany) bool { return true })
}

// Approved returns approved companies ordered by verified score,
// highest first.
func (s *Store) Approved() []*SafeCompany {
	out := s.filter(func(c *SafeCompany) bool {
		return c.Status == StatusApproved
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].VerifiedScore > out[j].VerifiedScore
	})
	return out
}

// ByStatus returns companies with the given status.
func (s *Store) ByStatus(status Status) []*SafeCompany {
	return s.filter(func(c *SafeCompany) bool {
		return c.Status == status
	})
}

func (s *Store) filter(keep func(*SafeCompany) bool) []*SafeCompany {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*SafeCompany, 0, len(s.companies))
	for _, c := range s.companies {
		if keep(c) {
			snap := *c
			out = append(out, &snap)
		}
	}
	return out
}
