package app

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log"
	"time"

	"folio/api/internal/config"
	"folio/api/internal/store"
	"folio/api/internal/util"
)

type dataStore interface {
	Ping(context.Context) error
	CountPortfolios(context.Context) (int, error)
	GetPortfolio(context.Context) (store.Portfolio, error)
	InsertPortfolio(context.Context, string, store.Portfolio) error
	MergePortfolioFields(context.Context, map[string]json.RawMessage) (store.Portfolio, error)
	InsertVisitor(context.Context, store.Visitor) error
	ListVisitors(context.Context) ([]store.Visitor, error)
}

type portfolioCache interface {
	Get(context.Context) (*store.Portfolio, error)
	Set(context.Context, store.Portfolio) error
	Invalidate(context.Context) error
}

type imageUploader interface {
	Store(ctx context.Context, filename, contentType string, reader io.Reader, size int64) (string, error)
}

type Service struct {
	cfg      config.Config
	store    dataStore
	cache    portfolioCache
	uploader imageUploader
}

func New(cfg config.Config, dataStore dataStore) *Service {
	return &Service{cfg: cfg, store: dataStore}
}

func NewWithCache(cfg config.Config, dataStore dataStore, cache portfolioCache) *Service {
	service := New(cfg, dataStore)
	service.cache = cache
	return service
}

// SetUploader wires object storage in. Left unset, the upload endpoint
// reports itself unavailable.
func (s *Service) SetUploader(uploader imageUploader) {
	s.uploader = uploader
}

func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// Uploader returns nil when object storage is not configured.
func (s *Service) Uploader() imageUploader {
	return s.uploader
}

// externalFieldNames maps the wire names used by the editing client to the
// document's internal field names. Keys not listed here pass through unchanged.
var externalFieldNames = map[string]string{
	"student_details":     "studentDetails",
	"typing_texts":        "typingTexts",
	"internship_projects": "internshipProjects",
	"personal_projects":   "personalProjects",
}

// updatableFields is the closed set of top-level document fields an update may
// touch. The original service wrote unknown keys straight onto the record;
// here they are rejected instead.
var updatableFields = map[string]struct{}{
	"studentDetails":     {},
	"typingTexts":        {},
	"summary":            {},
	"academics":          {},
	"skills":             {},
	"certifications":     {},
	"internshipProjects": {},
	"personalProjects":   {},
	"internships":        {},
	"password":           {},
}

// VerifyPassword compares the candidate against the configured editor code in
// constant time. An empty candidate never matches.
func (s *Service) VerifyPassword(candidate string) bool {
	if candidate == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(s.cfg.EditorCode)) == 1
}

func (s *Service) GetPortfolio(ctx context.Context) (store.Portfolio, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err != nil {
			log.Printf("portfolio cache read failed: %v", err)
		} else if cached != nil {
			return *cached, nil
		}
	}

	portfolio, err := s.store.GetPortfolio(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Portfolio{}, errPortfolioNotFound()
	}
	if err != nil {
		return store.Portfolio{}, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, portfolio); err != nil {
			log.Printf("portfolio cache write failed: %v", err)
		}
	}
	return portfolio, nil
}

// UpdatePortfolio merges a partial field-level update into the singleton
// record and returns the full saved document. Each supplied field replaces the
// stored value wholesale, so callers must always send complete nested
// structures. Concurrent editors are not isolated from each other: the shared
// passphrase model assumes a single writer and the last write wins.
func (s *Service) UpdatePortfolio(ctx context.Context, password string, updates map[string]json.RawMessage) (store.Portfolio, error) {
	if !s.VerifyPassword(password) {
		return store.Portfolio{}, errUnauthorized()
	}
	if len(updates) == 0 {
		return store.Portfolio{}, errValidation("updates must not be empty")
	}

	fields := make(map[string]json.RawMessage, len(updates))
	for key, value := range updates {
		internal := key
		if mapped, ok := externalFieldNames[key]; ok {
			internal = mapped
		}
		if _, ok := updatableFields[internal]; !ok {
			return store.Portfolio{}, errValidation("unknown field " + key)
		}
		fields[internal] = value
	}

	portfolio, err := s.store.MergePortfolioFields(ctx, fields)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Portfolio{}, errPortfolioNotFound()
	}
	if err != nil {
		return store.Portfolio{}, err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			log.Printf("portfolio cache invalidation failed: %v", err)
		}
	}
	return portfolio, nil
}

func (s *Service) CaptureVisitor(ctx context.Context, email string) (store.Visitor, error) {
	visitor := store.Visitor{
		ID:          util.NewID("vis"),
		Email:       email,
		DateVisited: time.Now().UTC(),
	}
	err := s.store.InsertVisitor(ctx, visitor)
	if errors.Is(err, store.ErrDuplicateEmail) {
		return store.Visitor{}, errDuplicateEmail()
	}
	if err != nil {
		return store.Visitor{}, err
	}
	return visitor, nil
}

func (s *Service) ListVisitors(ctx context.Context) ([]store.Visitor, error) {
	return s.store.ListVisitors(ctx)
}

// Bootstrap seeds the default portfolio into an empty store. The zero-count
// check is not safe against two processes cold-starting at once; a single
// instance is assumed.
func (s *Service) Bootstrap(ctx context.Context) error {
	count, err := s.store.CountPortfolios(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if err := s.store.InsertPortfolio(ctx, util.NewID("pf"), defaultPortfolio()); err != nil {
		return err
	}
	log.Printf("default portfolio data seeded")
	return nil
}
