package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/soccerhub/account-service/internal/core/domain"
)

type stubAuditReader struct {
	entries []domain.AuditEntry
}

func (s *stubAuditReader) FindByAccount(_ context.Context, accountID int) ([]domain.AuditEntry, error) {
	var out []domain.AuditEntry
	for _, e := range s.entries {
		if e.AccountID == accountID {
			out = append(out, e)
		}
	}
	return out, nil
}

func TestAuditHandler_List(t *testing.T) {
	accounts := &stubAccountService{
		getFn: func(ctx context.Context, id int) (*domain.Account, error) {
			return &domain.Account{ID: id, Email: "a@x.com", Name: "A"}, nil
		},
	}
	created := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	reader := &stubAuditReader{entries: []domain.AuditEntry{
		{AccountID: 7, Email: "a@x.com", Action: domain.AuditAccountCreated, Actor: "admin@x.com", Timestamp: created},
		{AccountID: 7, Email: "a@x.com", Action: domain.AuditAccountUpdated, Actor: "a@x.com", Timestamp: created.Add(time.Hour)},
		{AccountID: 8, Email: "b@x.com", Action: domain.AuditAccountCreated, Timestamp: created},
	}}
	h := NewAuditHandler(accounts, reader)

	c, rec := newTestContext(t, http.MethodGet, "/api/accounts/7/audit", "")
	c.SetParamNames("id")
	c.SetParamValues("7")
	authenticate(c, "admin@x.com", "ADMIN")

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp auditTrailResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Entries) != 2 {
		t.Fatalf("expected 2 entries for account 7, got %d", len(resp.Entries))
	}
	if resp.Entries[0].Action != string(domain.AuditAccountCreated) {
		t.Fatalf("unexpected first action: %s", resp.Entries[0].Action)
	}
	if resp.Entries[1].Action != string(domain.AuditAccountUpdated) {
		t.Fatalf("unexpected second action: %s", resp.Entries[1].Action)
	}
}

func TestAuditHandler_List_UnknownAccount(t *testing.T) {
	accounts := &stubAccountService{
		getFn: func(ctx context.Context, id int) (*domain.Account, error) {
			return nil, domain.ErrAccountNotFound
		},
	}
	h := NewAuditHandler(accounts, &stubAuditReader{})

	c, rec := newTestContext(t, http.MethodGet, "/api/accounts/99/audit", "")
	c.SetParamNames("id")
	c.SetParamValues("99")
	authenticate(c, "admin@x.com", "ADMIN")

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", rec.Body.String())
	}
}

func TestAuditHandler_List_EmptyTrail(t *testing.T) {
	accounts := &stubAccountService{
		getFn: func(ctx context.Context, id int) (*domain.Account, error) {
			return &domain.Account{ID: id, Email: "a@x.com", Name: "A"}, nil
		},
	}
	h := NewAuditHandler(accounts, &stubAuditReader{})

	c, rec := newTestContext(t, http.MethodGet, "/api/accounts/7/audit", "")
	c.SetParamNames("id")
	c.SetParamValues("7")
	authenticate(c, "admin@x.com", "ADMIN")

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp auditTrailResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Entries) != 0 {
		t.Fatalf("expected empty trail, got %+v", resp.Entries)
	}
}
