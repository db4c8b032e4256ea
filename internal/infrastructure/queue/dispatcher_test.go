package queue

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/soccerhub/account-service/internal/core/domain"
)

type collectingAuditService struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
	done    chan struct{}
	want    int
}

func newCollectingAuditService(want int) *collectingAuditService {
	return &collectingAuditService{done: make(chan struct{}), want: want}
}

func (s *collectingAuditService) Process(_ context.Context, entry domain.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	if len(s.entries) == s.want {
		close(s.done)
	}
	return nil
}

func (s *collectingAuditService) wait(t *testing.T) []domain.AuditEntry {
	t.Helper()
	select {
	case <-s.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %d entries", s.want)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.AuditEntry(nil), s.entries...)
}

func TestAuditDispatcher_ProcessesAllEntries(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	const total = 20
	svc := newCollectingAuditService(total)
	d := NewAuditDispatcher(4, svc, zerolog.Nop())
	d.Start(ctx)

	for i := 0; i < total; i++ {
		d.Record(domain.AuditEntry{
			AccountID: i,
			Email:     fmt.Sprintf("user%d@x.com", i),
			Action:    domain.AuditAccountCreated,
		})
	}

	entries := svc.wait(t)
	seen := make(map[int]bool, total)
	for _, e := range entries {
		seen[e.AccountID] = true
	}
	if len(seen) != total {
		t.Fatalf("expected %d distinct entries, got %d", total, len(seen))
	}
}

func TestAuditDispatcher_PerAccountOrdering(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	const perAccount = 10
	svc := newCollectingAuditService(perAccount * 2)
	d := NewAuditDispatcher(4, svc, zerolog.Nop())
	d.Start(ctx)

	// Interleave two accounts; each account's entries must arrive in the
	// order they were recorded.
	for i := 0; i < perAccount; i++ {
		d.Record(domain.AuditEntry{AccountID: i, Email: "alice@x.com", Action: domain.AuditAccountUpdated})
		d.Record(domain.AuditEntry{AccountID: i, Email: "bob@x.com", Action: domain.AuditAccountUpdated})
	}

	entries := svc.wait(t)
	last := map[string]int{"alice@x.com": -1, "bob@x.com": -1}
	for _, e := range entries {
		if e.AccountID <= last[e.Email] {
			t.Fatalf("ordering violated for %s: %d after %d", e.Email, e.AccountID, last[e.Email])
		}
		last[e.Email] = e.AccountID
	}
}

func TestAuditDispatcher_RecordAfterShutdownDoesNotBlock(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	svc := newCollectingAuditService(1)
	d := NewAuditDispatcher(1, svc, zerolog.Nop())
	d.Start(ctx)
	cancel()

	// Overfill the single worker buffer after shutdown; every Record must
	// return instead of parking on a channel nobody drains.
	finished := make(chan struct{})
	go func() {
		for i := 0; i < 2*channelBuffer; i++ {
			d.Record(domain.AuditEntry{
				AccountID: i,
				Email:     "late@x.com",
				Action:    domain.AuditAccountUpdated,
			})
		}
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatalf("Record blocked after dispatcher shutdown")
	}
}

func TestAuditDispatcher_DefaultWorkerCount(t *testing.T) {
	d := NewAuditDispatcher(0, newCollectingAuditService(0), zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}
