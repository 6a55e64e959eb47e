package safecompany

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

type fakeRepository struct {
	rows     map[uuid.UUID]*SafeCompany
	order    []uuid.UUID
	failMode string
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{rows: make(map[uuid.UUID]*SafeCompany)}
}

func (f *fakeRepository) fail(op string) error {
	if f.failMode == op || f.failMode == "all" {
		return errors.New("backend unavailable")
	}
	return nil
}

func (f *fakeRepository) ListAll(ctx context.Context) ([]*SafeCompany, error) {
	if err := f.fail("list"); err != nil {
		return nil, err
	}
	out := make([]*SafeCompany, 0, len(f.order))
	for _, id := range f.order {
		if c, ok := f.rows[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeRepository) Insert(ctx context.Context, c *SafeCompany) error {
	if err := f.fail("insert"); err != nil {
		return err
	}
	clone := *c
	f.rows[c.ID] = &clone
	f.order = append(f.order, c.ID)
	return nil
}

func (f *fakeRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	if err := f.fail("status"); err != nil {
		return err
	}
	c, ok := f.rows[id]
	if !ok {
		return ErrCompanyNotFound
	}
	c.Status = status
	return nil
}

func (f *fakeRepository) UpdateScore(ctx context.Context, id uuid.UUID, score int) error {
	if err := f.fail("score"); err != nil {
		return err
	}
	c, ok := f.rows[id]
	if !ok {
		return ErrCompanyNotFound
	}
	c.VerifiedScore = score
	return nil
}

func (f *fakeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := f.fail("delete"); err != nil {
		return err
	}
	if _, ok := f.rows[id]; !ok {
		return ErrCompanyNotFound
	}
	delete(f.rows, id)
	return nil
}

func newTestStore(t *testing.T, repo Repository) *Store {
	t.Helper()
	s := NewStore(repo)
	s.LoadAll(context.Background())
	return s
}

func TestLoadAllFallsBackToSeed(t *testing.T) {
	repo := newFakeRepository()
	repo.failMode = "list"
	s := newTestStore(t, repo)

	all := s.All()
	if len(all) != 2 {
		t.Fatalf("expected 2 seed companies, got %d", len(all))
	}
	if all[0].Name != "Innovate Digital Solutions" {
		t.Errorf("unexpected seed order: %q", all[0].Name)
	}
}

func TestDemoModeServesSeed(t *testing.T) {
	s := newTestStore(t, nil)
	if len(s.All()) != 2 {
		t.Fatalf("demo mode should serve the seed dataset")
	}
}

func TestAddStartsPendingWithFixedScore(t *testing.T) {
	s := newTestStore(t, newFakeRepository())

	c, err := s.Add(context.Background(), &Draft{
		Name:        "Honest Corp",
		Industry:    "Consulting",
		Description: "pays on time",
	})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if c.Status != StatusPending {
		t.Errorf("status = %q, want pending", c.Status)
	}
	if c.VerifiedScore != InitialVerifiedScore {
		t.Errorf("verifiedScore = %d, want %d", c.VerifiedScore, InitialVerifiedScore)
	}
	if c.Tags == nil {
		t.Error("tags should be an empty slice, not nil")
	}
}

func TestReadsReturnSnapshots(t *testing.T) {
	s := newTestStore(t, newFakeRepository())

	c, err := s.Add(context.Background(), &Draft{Name: "Honest Corp", Industry: "IT", Description: "d"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	before := s.Get(c.ID)
	if err := s.SetScore(context.Background(), c.ID, 80); err != nil {
		t.Fatalf("SetScore failed: %v", err)
	}

	if before.VerifiedScore != InitialVerifiedScore {
		t.Errorf("earlier snapshot mutated: score=%d", before.VerifiedScore)
	}
	if got := s.Get(c.ID); got.VerifiedScore != 80 {
		t.Errorf("fresh read missed the update: score=%d", got.VerifiedScore)
	}
}

func TestPendingCompaniesAreNotListed(t *testing.T) {
	s := newTestStore(t, newFakeRepository())

	if _, err := s.Add(context.Background(), &Draft{Name: "Pending Co", Industry: "IT", Description: "d"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if len(s.Approved()) != 0 {
		t.Error("pending submission must not appear in the public list")
	}
}

func TestApprovedOrderedByScore(t *testing.T) {
	s := newTestStore(t, newFakeRepository())

	low, _ := s.Add(context.Background(), &Draft{Name: "Low", Industry: "IT", Description: "d"})
	high, _ := s.Add(context.Background(), &Draft{Name: "High", Industry: "IT", Description: "d"})

	ctx := context.Background()
	if err := s.Approve(ctx, low.ID); err != nil {
		t.Fatal(err)
	}
	if err := s.Approve(ctx, high.ID); err != nil {
		t.Fatal(err)
	}
	if err := s.SetScore(ctx, high.ID, 90); err != nil {
		t.Fatal(err)
	}
	if err := s.SetScore(ctx, low.ID, 10); err != nil {
		t.Fatal(err)
	}

	approved := s.Approved()
	if len(approved) != 2 {
		t.Fatalf("expected 2 approved companies, got %d", len(approved))
	}
	if approved[0].Name != "High" || approved[1].Name != "Low" {
		t.Errorf("companies not ordered by score: %q then %q", approved[0].Name, approved[1].Name)
	}
}

func TestSetScoreClamps(t *testing.T) {
	s := newTestStore(t, newFakeRepository())
	c, _ := s.Add(context.Background(), &Draft{Name: "Co", Industry: "IT", Description: "d"})

	if err := s.SetScore(context.Background(), c.ID, 150); err != nil {
		t.Fatal(err)
	}
	if got := s.Get(c.ID).VerifiedScore; got != 100 {
		t.Errorf("score should clamp at 100, got %d", got)
	}

	if err := s.SetScore(context.Background(), c.ID, -5); err != nil {
		t.Fatal(err)
	}
	if got := s.Get(c.ID).VerifiedScore; got != 0 {
		t.Errorf("score should floor at 0, got %d", got)
	}
}

func TestRejectThenApprove(t *testing.T) {
	s := newTestStore(t, newFakeRepository())
	c, _ := s.Add(context.Background(), &Draft{Name: "Co", Industry: "IT", Description: "d"})

	ctx := context.Background()
	if err := s.Reject(ctx, c.ID); err != nil {
		t.Fatal(err)
	}
	if s.Get(c.ID).Status != StatusRejected {
		t.Error("company should be rejected")
	}

	if err := s.Approve(ctx, c.ID); err != nil {
		t.Fatal(err)
	}
	if s.Get(c.ID).Status != StatusApproved {
		t.Error("a rejected company can still be approved later")
	}
}

func TestStatusUpdateFailureLeavesCacheUntouched(t *testing.T) {
	repo := newFakeRepository()
	s := newTestStore(t, repo)
	c, _ := s.Add(context.Background(), &Draft{Name: "Co", Industry: "IT", Description: "d"})

	repo.failMode = "status"
	if err := s.Approve(context.Background(), c.ID); err == nil {
		t.Fatal("expected an error when the backend is down")
	}
	if s.Get(c.ID).Status != StatusPending {
		t.Error("cache must not change when the remote update failed")
	}
}

func TestDeleteDoesNotResurrect(t *testing.T) {
	repo := newFakeRepository()
	s := newTestStore(t, repo)
	c, _ := s.Add(context.Background(), &Draft{Name: "Co", Industry: "IT", Description: "d"})

	if err := s.Delete(context.Background(), c.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	s.LoadAll(context.Background())
	if s.Get(c.ID) != nil {
		t.Error("deleted company came back after a reload")
	}
}

func TestInsertFailureSurfaced(t *testing.T) {
	repo := newFakeRepository()
	repo.failMode = "insert"
	s := newTestStore(t, repo)

	before := len(s.All())
	if _, err := s.Add(context.Background(), &Draft{Name: "Co", Industry: "IT", Description: "d"}); err == nil {
		t.Fatal("expected insert failure to be surfaced")
	}
	if len(s.All()) != before {
		t.Error("failed insert must not land in the cache")
	}
}
