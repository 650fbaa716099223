package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"folio/api/internal/config"
	"folio/api/internal/store"
)

func TestGetPortfolioReturnsRecord(t *testing.T) {
	fs := &fakeStore{
		getPortfolioFn: func(context.Context) (store.Portfolio, error) {
			return store.Portfolio{
				StudentDetails: store.StudentDetails{Name: "Vinaya Kumar"},
				TypingTexts:    []string{"I am a Developer."},
			}, nil
		},
	}
	server := NewHTTPServer(newTestService(fs), "*")

	req := httptest.NewRequest(http.MethodGet, "/api/portfolio", nil)
	rr := httptest.NewRecorder()

	server.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var payload store.Portfolio
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if payload.StudentDetails.Name != "Vinaya Kumar" {
		t.Errorf("expected studentDetails.name, got %q", payload.StudentDetails.Name)
	}
}

func TestGetPortfolioMissingReturns404(t *testing.T) {
	server := NewHTTPServer(newTestService(&fakeStore{}), "*")

	req := httptest.NewRequest(http.MethodGet, "/api/portfolio", nil)
	rr := httptest.NewRecorder()

	server.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rr.Code)
	}
	var payload map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if payload["error"] != "Portfolio not found" {
		t.Errorf("expected portfolio-not-found message, got %v", payload["error"])
	}
}

func TestVerifyPasswordEndpoint(t *testing.T) {
	server := NewHTTPServer(newTestService(&fakeStore{}), "*")

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantOK     bool
	}{
		{name: "correct password", body: `{"password":"letmein"}`, wantStatus: http.StatusOK, wantOK: true},
		{name: "wrong password", body: `{"password":"nope"}`, wantStatus: http.StatusUnauthorized, wantOK: false},
		{name: "empty password", body: `{"password":""}`, wantStatus: http.StatusUnauthorized, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/verify-password", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			server.Handler().ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rr.Code)
			}
			var payload map[string]any
			if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
				t.Fatalf("parse response: %v", err)
			}
			if payload["success"] != tt.wantOK {
				t.Errorf("expected success=%v, got %v", tt.wantOK, payload["success"])
			}
		})
	}
}

func TestUpdatePortfolioEndpointHappyPath(t *testing.T) {
	ms := &memStore{}
	svc := New(config.Config{EditorCode: "letmein"}, ms)
	if err := svc.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}
	server := NewHTTPServer(svc, "*")

	body := `{"password":"letmein","updates":{"typing_texts":["A","B"]}}`
	req := httptest.NewRequest(http.MethodPost, "/api/portfolio/update", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	server.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var payload struct {
		Success bool            `json:"success"`
		Data    store.Portfolio `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if !payload.Success {
		t.Errorf("expected success=true")
	}
	if len(payload.Data.TypingTexts) != 2 || payload.Data.TypingTexts[0] != "A" {
		t.Errorf("expected updated typingTexts in response, got %v", payload.Data.TypingTexts)
	}
	if payload.Data.StudentDetails.Name != "Vinaya Kumar" {
		t.Errorf("expected untouched fields in full response, got %q", payload.Data.StudentDetails.Name)
	}
}

func TestUpdatePortfolioEndpointWrongPassword(t *testing.T) {
	ms := &memStore{}
	svc := New(config.Config{EditorCode: "letmein"}, ms)
	if err := svc.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}
	server := NewHTTPServer(svc, "*")

	body := `{"password":"wrong","updates":{"summary":"X"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/portfolio/update", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	server.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rr.Code)
	}
	var payload map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if payload["success"] != false {
		t.Errorf("expected success=false, got %v", payload["success"])
	}

	// The stored record is untouched.
	stored, err := svc.GetPortfolio(context.Background())
	if err != nil {
		t.Fatalf("GetPortfolio failed: %v", err)
	}
	if stored.Summary == "X" {
		t.Errorf("expected stored summary unchanged after rejected update")
	}
}

func TestUpdatePortfolioEndpointUnknownFieldRejected(t *testing.T) {
	ms := &memStore{}
	svc := New(config.Config{EditorCode: "letmein"}, ms)
	if err := svc.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}
	server := NewHTTPServer(svc, "*")

	body := `{"password":"letmein","updates":{"superpowers":["flight"]}}`
	req := httptest.NewRequest(http.MethodPost, "/api/portfolio/update", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	server.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d body=%s", rr.Code, rr.Body.String())
	}
	var payload map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if payload["code"] != "VALIDATION_ERROR" {
		t.Errorf("expected code VALIDATION_ERROR, got %v", payload["code"])
	}
}

func TestUpdatePortfolioEndpointInvalidBody(t *testing.T) {
	server := NewHTTPServer(newTestService(&fakeStore{}), "*")

	req := httptest.NewRequest(http.MethodPost, "/api/portfolio/update", bytes.NewBufferString(`{"password":`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	server.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
	var payload map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if payload["code"] != "INVALID_BODY" {
		t.Errorf("expected code INVALID_BODY, got %v", payload["code"])
	}
}
