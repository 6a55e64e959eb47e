package report

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/scamsentry/scamsentry-api/internal/pkg/geo"
)

// Store is the single in-memory source of truth for reports, backed by
// the repository. It is constructed once per process and shared by all
// handlers; mutations write through to the repository and then update
// the cache.
//
// A nil repository puts the store in demo mode: the seed dataset is
// served and all mutations apply to the cache only.
type Store struct {
	mu      sync.RWMutex
	reports []*ScamReport
	repo    Repository
}

// NewStore creates the report store. Call LoadAll before serving.
func NewStore(repo Repository) *Store {
	return &Store{repo: repo}
}

// LoadAll fetches every report ordered by creation time descending.
// Transport failure falls back to the built-in seed dataset instead of
// failing the application.
func (s *Store) LoadAll(ctx context.Context) {
	if s.repo == nil {
		log.Info().Msg("No database configured, serving seed reports")
		s.replace(seedReports())
		return
	}

	reports, err := s.repo.ListAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load reports, falling back to seed data")
		s.replace(seedReports())
		return
	}

	log.Info().Int("count", len(reports)).Msg("Loaded reports")
	s.replace(reports)
}

func (s *Store) replace(reports []*ScamReport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = reports
}

// Add persists a draft and prepends the resulting report to the cache.
// The caller must treat a returned error as a user-visible failure.
func (s *Store) Add(ctx context.Context, draft *Draft) (*ScamReport, error) {
	r := &ScamReport{
		ID:           uuid.New(),
		Title:        draft.Title,
		Company:      draft.Company,
		ScamType:     draft.ScamType,
		Industry:     draft.Industry,
		Location:     draft.Location,
		City:         draft.City,
		State:        draft.State,
		Country:      draft.Country,
		Lat:          draft.Lat,
		Lng:          draft.Lng,
		Description:  draft.Description,
		Tags:         draft.Tags,
		Anonymous:    draft.Anonymous,
		Email:        draft.Email,
		Status:       StatusApproved,
		CreatedAt:    time.Now(),
		HelpfulVotes: 0,
		FlagCount:    0,
		Views:        0,
		RiskLevel:    draft.RiskLevel,
		TrustScore:   InitialTrustScore,
		EvidenceURLs: draft.EvidenceURLs,
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}

	if s.repo != nil {
		if err := s.repo.Insert(ctx, r); err != nil {
			log.Error().Err(err).Msg("Failed to insert report")
			return nil, err
		}
	}

	s.mu.Lock()
	s.reports = append([]*ScamReport{r}, s.reports...)
	s.mu.Unlock()

	snap := *r
	return &snap, nil
}

// Approve transitions a report to approved. Idempotent. Remote errors
// are logged and swallowed; the cache is only updated on success.
func (s *Store) Approve(ctx context.Context, id uuid.UUID) {
	s.setStatus(ctx, id, StatusApproved)
}

// Reject transitions a report to rejected. Idempotent. Remote errors
// are logged and swallowed; the cache is only updated on success.
func (s *Store) Reject(ctx context.Context, id uuid.UUID) {
	s.setStatus(ctx, id, StatusRejected)
}

func (s *Store) setStatus(ctx context.Context, id uuid.UUID, status Status) {
	if s.repo != nil {
		if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
			log.Error().Err(err).Str("report_id", id.String()).Str("status", string(status)).
				Msg("Failed to update report status")
			return
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.reports {
		if r.ID == id {
			r.Status = status
			return
		}
	}
}

// Delete hard-deletes a report. Failure is surfaced to the caller; the
// record must not resurrect on a later reload.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	if s.repo != nil {
		if err := s.repo.Delete(ctx, id); err != nil {
			log.Error().Err(err).Str("report_id", id.String()).Msg("Failed to delete report")
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.reports {
		if r.ID == id {
			s.reports = append(s.reports[:i], s.reports[i+1:]...)
			return nil
		}
	}
	if s.repo == nil {
		return ErrReportNotFound
	}
	return nil
}

// VoteHelpful adds a helpful vote: +1 vote, +2 trust (capped at 100).
// Remote errors are logged and swallowed.
func (s *Store) VoteHelpful(ctx context.Context, id uuid.UUID) {
	if s.repo != nil {
		if err := s.repo.IncrementHelpful(ctx, id); err != nil {
			log.Error().Err(err).Str("report_id", id.String()).Msg("Failed to record helpful vote")
			return
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.reports {
		if r.ID == id {
			r.HelpfulVotes++
			if r.TrustScore += 2; r.TrustScore > 100 {
				r.TrustScore = 100
			}
			return
		}
	}
}

// Flag flags a report: +1 flag, -5 trust (floored at 0). Remote errors
// are logged and swallowed.
func (s *Store) Flag(ctx context.Context, id uuid.UUID) {
	if s.repo != nil {
		if err := s.repo.IncrementFlag(ctx, id); err != nil {
			log.Error().Err(err).Str("report_id", id.String()).Msg("Failed to record flag")
			return
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.reports {
		if r.ID == id {
			r.FlagCount++
			if r.TrustScore -= 5; r.TrustScore < 0 {
				r.TrustScore = 0
			}
			return
		}
	}
}

// IncrementViews counts one page view. Not deduplicated: reloading a
// report detail page counts again. Remote errors are logged and
// swallowed.
func (s *Store) IncrementViews(ctx context.Context, id uuid.UUID) {
	if s.repo != nil {
		if err := s.repo.IncrementViews(ctx, id); err != nil {
			log.Error().Err(err).Str("report_id", id.String()).Msg("Failed to increment views")
			return
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.reports {
		if r.ID == id {
			r.Views++
			return
		}
	}
}

// Get returns a snapshot of the report with the given ID, or nil.
// Reads hand out copies: handlers JSON-encode outside the lock while
// votes and flags keep moving the counters on the cached structs.
func (s *Store) Get(id uuid.UUID) *ScamReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.reports {
		if r.ID == id {
			snap := *r
			return &snap
		}
	}
	return nil
}

// All returns a snapshot of every cached report regardless of status,
// newest first.
func (s *Store) All() []*ScamReport {
	return s.filter(func(*ScamReport) bool { return true })
}

// Approved returns approved reports, newest first.
func (s *Store) Approved() []*ScamReport {
	return s.filter(func(r *ScamReport) bool {
		return r.Status == StatusApproved
	})
}

// ByStatus returns reports with the given status, newest first.
func (s *Store) ByStatus(status Status) []*ScamReport {
	return s.filter(func(r *ScamReport) bool {
		return r.Status == status
	})
}

// ByLocation returns approved reports within radiusKm of the given
// point by great-circle distance. Reports without coordinates are
// excluded.
func (s *Store) ByLocation(lat, lng, radiusKm float64) []*ScamReport {
	return s.filter(func(r *ScamReport) bool {
		if r.Status != StatusApproved || r.Lat == nil || r.Lng == nil {
			return false
		}
		return geo.Distance(lat, lng, *r.Lat, *r.Lng) <= radiusKm
	})
}

// SearchByCity returns approved reports whose city contains the query,
// case-insensitively.
func (s *Store) SearchByCity(cityName string) []*ScamReport {
	needle := strings.ToLower(cityName)
	return s.filter(func(r *ScamReport) bool {
		return r.Status == StatusApproved && strings.Contains(strings.ToLower(r.City), needle)
	})
}

func (s *Store) filter(keep func(*ScamReport) bool) []*ScamReport {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*ScamReport, 0, len(s.reports))
	for _, r := range s.reports {
		if keep(r) {
			snap := *r
			out = append(out, &snap)
		}
	}
	return out
}
