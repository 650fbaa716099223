package app

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"sort"
	"testing"
	"time"

	"folio/api/internal/config"
	"folio/api/internal/store"
)

// memStore is a stateful in-memory dataStore with the same top-level
// field-replacement semantics as the Postgres jsonb merge.
type memStore struct {
	doc      map[string]json.RawMessage
	visitors []store.Visitor
}

func (m *memStore) Ping(context.Context) error { return nil }

func (m *memStore) CountPortfolios(context.Context) (int, error) {
	if m.doc == nil {
		return 0, nil
	}
	return 1, nil
}

func (m *memStore) GetPortfolio(context.Context) (store.Portfolio, error) {
	if m.doc == nil {
		return store.Portfolio{}, sql.ErrNoRows
	}
	raw, err := json.Marshal(m.doc)
	if err != nil {
		return store.Portfolio{}, err
	}
	var portfolio store.Portfolio
	if err := json.Unmarshal(raw, &portfolio); err != nil {
		return store.Portfolio{}, err
	}
	return portfolio, nil
}

func (m *memStore) InsertPortfolio(_ context.Context, _ string, portfolio store.Portfolio) error {
	raw, err := json.Marshal(portfolio)
	if err != nil {
		return err
	}
	doc := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}
	m.doc = doc
	return nil
}

func (m *memStore) MergePortfolioFields(ctx context.Context, fields map[string]json.RawMessage) (store.Portfolio, error) {
	if m.doc == nil {
		return store.Portfolio{}, sql.ErrNoRows
	}
	for key, value := range fields {
		m.doc[key] = value
	}
	return m.GetPortfolio(ctx)
}

func (m *memStore) InsertVisitor(_ context.Context, visitor store.Visitor) error {
	for _, existing := range m.visitors {
		if existing.Email == visitor.Email {
			return store.ErrDuplicateEmail
		}
	}
	m.visitors = append(m.visitors, visitor)
	return nil
}

func (m *memStore) ListVisitors(context.Context) ([]store.Visitor, error) {
	visitors := append([]store.Visitor(nil), m.visitors...)
	sort.Slice(visitors, func(i, j int) bool {
		return visitors[i].DateVisited.After(visitors[j].DateVisited)
	})
	return visitors, nil
}

func TestBootstrapThenEditRoundTrip(t *testing.T) {
	ctx := context.Background()
	ms := &memStore{}
	svc := New(config.Config{EditorCode: "letmein"}, ms)

	if err := svc.Bootstrap(ctx); err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}
	if count, _ := ms.CountPortfolios(ctx); count != 1 {
		t.Fatalf("expected exactly one portfolio after bootstrap, got %d", count)
	}

	fetched, err := svc.GetPortfolio(ctx)
	if err != nil {
		t.Fatalf("GetPortfolio failed: %v", err)
	}
	if fetched.StudentDetails.Name != "Vinaya Kumar" {
		t.Fatalf("expected default record, got name %q", fetched.StudentDetails.Name)
	}

	// Repeated reads are stable absent writes.
	again, err := svc.GetPortfolio(ctx)
	if err != nil {
		t.Fatalf("repeat GetPortfolio failed: %v", err)
	}
	if again.Summary != fetched.Summary || len(again.TypingTexts) != len(fetched.TypingTexts) {
		t.Errorf("expected identical record across reads")
	}

	updated, err := svc.UpdatePortfolio(ctx, "letmein", map[string]json.RawMessage{
		"typing_texts": json.RawMessage(`["A","B"]`),
	})
	if err != nil {
		t.Fatalf("UpdatePortfolio failed: %v", err)
	}
	if len(updated.TypingTexts) != 2 || updated.TypingTexts[0] != "A" || updated.TypingTexts[1] != "B" {
		t.Fatalf("expected typingTexts [A B], got %v", updated.TypingTexts)
	}

	refetched, err := svc.GetPortfolio(ctx)
	if err != nil {
		t.Fatalf("re-fetch failed: %v", err)
	}
	if len(refetched.TypingTexts) != 2 || refetched.TypingTexts[0] != "A" {
		t.Errorf("expected persisted typingTexts, got %v", refetched.TypingTexts)
	}
	// Untouched fields survive the partial update.
	if refetched.StudentDetails.Name != "Vinaya Kumar" {
		t.Errorf("expected studentDetails unchanged, got %q", refetched.StudentDetails.Name)
	}
	if refetched.Summary != fetched.Summary {
		t.Errorf("expected summary unchanged")
	}
	if len(refetched.Internships) != len(fetched.Internships) {
		t.Errorf("expected internships unchanged")
	}
}

func TestFieldOverwriteIsWholesaleNotDeepMerge(t *testing.T) {
	ctx := context.Background()
	ms := &memStore{}
	svc := New(config.Config{EditorCode: "letmein"}, ms)

	if err := svc.Bootstrap(ctx); err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}

	// A skills update carrying only one sub-list drops the others: overwrite
	// replaces the whole field value.
	updated, err := svc.UpdatePortfolio(ctx, "letmein", map[string]json.RawMessage{
		"skills": json.RawMessage(`{"technical":["Go"]}`),
	})
	if err != nil {
		t.Fatalf("UpdatePortfolio failed: %v", err)
	}
	if len(updated.Skills.Technical) != 1 || updated.Skills.Technical[0] != "Go" {
		t.Errorf("expected technical [Go], got %v", updated.Skills.Technical)
	}
	if len(updated.Skills.Soft) != 0 {
		t.Errorf("expected omitted soft skills to be dropped, got %v", updated.Skills.Soft)
	}
}

func TestVisitorCaptureUniquenessAndOrdering(t *testing.T) {
	ctx := context.Background()
	ms := &memStore{}
	svc := New(config.Config{EditorCode: "letmein"}, ms)

	if _, err := svc.CaptureVisitor(ctx, "a@x.com"); err != nil {
		t.Fatalf("first capture failed: %v", err)
	}
	_, err := svc.CaptureVisitor(ctx, "a@x.com")
	var domainErr *DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "DUPLICATE_EMAIL" {
		t.Fatalf("expected DUPLICATE_EMAIL on second capture, got %v", err)
	}
	if len(ms.visitors) != 1 {
		t.Fatalf("expected exactly one stored visitor, got %d", len(ms.visitors))
	}

	// Later captures list first.
	ms.visitors = []store.Visitor{
		{ID: "1", Email: "t1@x.com", DateVisited: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "3", Email: "t3@x.com", DateVisited: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "2", Email: "t2@x.com", DateVisited: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
	}
	visitors, err := svc.ListVisitors(ctx)
	if err != nil {
		t.Fatalf("ListVisitors failed: %v", err)
	}
	got := []string{visitors[0].ID, visitors[1].ID, visitors[2].ID}
	want := []string{"3", "2", "1"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}
