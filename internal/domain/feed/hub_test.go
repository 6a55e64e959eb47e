package feed

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/scamsentry/scamsentry-api/internal/domain/report"
)

func testReport() *report.ScamReport {
	return &report.ScamReport{
		ID:        uuid.New(),
		Title:     "Fake recruiter",
		ScamType:  "Fake Job Offer",
		Status:    report.StatusApproved,
		RiskLevel: report.RiskHigh,
	}
}

func receive(t *testing.T, conn *Connection) *Event {
	t.Helper()
	select {
	case data, ok := <-conn.Send:
		if !ok {
			t.Fatal("send channel closed unexpectedly")
		}
		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			t.Fatalf("bad event payload: %v", err)
		}
		return &ev
	case <-time.After(time.Second):
		t.Fatal("no event received within a second")
		return nil
	}
}

func TestHubBroadcastsToAllClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Shutdown()

	first := &Connection{Send: make(chan []byte, 4)}
	second := &Connection{Send: make(chan []byte, 4)}
	hub.Register(first)
	hub.Register(second)

	r := testReport()
	hub.PublishReport(r)

	for _, conn := range []*Connection{first, second} {
		ev := receive(t, conn)
		if ev.Type != EventReportPublished {
			t.Errorf("event type = %q, want report_published", ev.Type)
		}
		if ev.Report == nil || ev.Report.ID != r.ID {
			t.Error("event did not carry the published report")
		}
	}
}

func TestHubUnregisterClosesChannel(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Shutdown()

	conn := &Connection{Send: make(chan []byte, 4)}
	hub.Register(conn)
	hub.Unregister(conn)

	select {
	case _, ok := <-conn.Send:
		if ok {
			t.Fatal("expected closed channel after unregister")
		}
	case <-time.After(time.Second):
		t.Fatal("send channel not closed within a second")
	}

	if got := hub.ConnectionCount(); got != 0 {
		t.Errorf("connection count = %d, want 0", got)
	}
}

func TestHubRegisterAfterShutdownDoesNotBlock(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	hub.Shutdown()

	// An upgrade that raced the shutdown still reaches Register; the
	// client must be closed, not parked on a dead run loop.
	conn := &Connection{Send: make(chan []byte, 4)}
	registered := make(chan struct{})
	go func() {
		hub.Register(conn)
		close(registered)
	}()

	select {
	case <-registered:
	case <-time.After(time.Second):
		t.Fatal("Register blocked after shutdown")
	}

	select {
	case _, ok := <-conn.Send:
		if ok {
			t.Fatal("expected closed send channel after shutdown")
		}
	case <-time.After(time.Second):
		t.Fatal("send channel not closed within a second")
	}

	// Unregister must not block either.
	unregistered := make(chan struct{})
	go func() {
		hub.Unregister(conn)
		close(unregistered)
	}()
	select {
	case <-unregistered:
	case <-time.After(time.Second):
		t.Fatal("Unregister blocked after shutdown")
	}
}

func TestHubSlowClientDoesNotBlockOthers(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Shutdown()

	slow := &Connection{Send: make(chan []byte)} // unbuffered, never read
	fast := &Connection{Send: make(chan []byte, 4)}
	hub.Register(slow)
	hub.Register(fast)

	hub.PublishReport(testReport())

	if ev := receive(t, fast); ev.Type != EventReportPublished {
		t.Errorf("fast client should still receive events, got %q", ev.Type)
	}
}
