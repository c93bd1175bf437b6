// Package service is the mock government registry: death certificates and
// grants of probate looked up by the deceased's national id.
//
// Lookups read through a TTL cache. Writes invalidate the cache and announce
// the new record on the event publisher; a publish failure is logged and
// counted but never fails the write, because the relay's poller also sweeps
// each day's records.
package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"testament/internal/registry/events"
	registrymetrics "testament/internal/registry/metrics"
	"testament/internal/registry/models"
	id "testament/pkg/domain"
	dErrors "testament/pkg/domain-errors"
	"testament/pkg/platform/sentinel"
	"testament/pkg/requestcontext"
)

type Store interface {
	PutDeath(ctx context.Context, r models.DeathRecord) error
	GetDeath(ctx context.Context, nationalID id.NationalID) (*models.DeathRecord, error)
	ListDeaths(ctx context.Context, from, to time.Time) ([]models.DeathRecord, error)
	PutGrant(ctx context.Context, r models.ProbateRecord) error
	GetGrant(ctx context.Context, nationalID id.NationalID) (*models.ProbateRecord, error)
	ListGrants(ctx context.Context, from, to time.Time) ([]models.ProbateRecord, error)
	Clear(ctx context.Context) error
}

type Cache interface {
	GetDeath(ctx context.Context, nationalID id.NationalID) (*models.DeathRecord, bool, error)
	SetDeath(ctx context.Context, r models.DeathRecord) error
	GetGrant(ctx context.Context, nationalID id.NationalID) (*models.ProbateRecord, bool, error)
	SetGrant(ctx context.Context, r models.ProbateRecord) error
	Invalidate(ctx context.Context, nationalID id.NationalID) error
}

type Service struct {
	store     Store
	cache     Cache
	publisher events.Publisher
	metrics   *registrymetrics.Metrics
	logger    *slog.Logger
	location  *time.Location
	dataDir   string
}

type Option func(*Service)

func WithCache(c Cache) Option {
	return func(s *Service) { s.cache = c }
}

func WithPublisher(p events.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

func WithMetrics(m *registrymetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithLocation sets the timezone whose calendar day "today" refers to.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.location = loc }
}

// WithDataDir sets the directory certificate and grant files are served from.
func WithDataDir(dir string) Option {
	return func(s *Service) { s.dataDir = dir }
}

func New(store Store, opts ...Option) *Service {
	s := &Service{
		store:     store,
		publisher: events.NopPublisher{},
		location:  time.UTC,
		dataDir:   "data",
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	return s
}

const (
	kindDeath   = "death"
	kindProbate = "probate"
)

// GetDeath returns the death record for nationalID.
func (s *Service) GetDeath(ctx context.Context, nationalID id.NationalID) (*models.DeathRecord, error) {
	if s.cache != nil {
		r, ok, err := s.cache.GetDeath(ctx, nationalID)
		s.observeCache(ctx, ok, err)
		if ok {
			s.metrics.ObserveLookup(kindDeath, "found")
			return r, nil
		}
	}
	r, err := s.store.GetDeath(ctx, nationalID)
	if err != nil {
		s.metrics.ObserveLookup(kindDeath, lookupResult(err))
		return nil, wrapStoreErr(err, "death record")
	}
	s.metrics.ObserveLookup(kindDeath, "found")
	if s.cache != nil {
		if err := s.cache.SetDeath(ctx, *r); err != nil {
			s.logger.WarnContext(ctx, "failed to cache death record", "error", err)
		}
	}
	return r, nil
}

// GetGrant returns the grant of probate for the deceased's nationalID,
// approved or not.
func (s *Service) GetGrant(ctx context.Context, nationalID id.NationalID) (*models.ProbateRecord, error) {
	if s.cache != nil {
		r, ok, err := s.cache.GetGrant(ctx, nationalID)
		s.observeCache(ctx, ok, err)
		if ok {
			s.metrics.ObserveLookup(kindProbate, "found")
			return r, nil
		}
	}
	r, err := s.store.GetGrant(ctx, nationalID)
	if err != nil {
		s.metrics.ObserveLookup(kindProbate, lookupResult(err))
		return nil, wrapStoreErr(err, "grant of probate")
	}
	s.metrics.ObserveLookup(kindProbate, "found")
	if s.cache != nil {
		if err := s.cache.SetGrant(ctx, *r); err != nil {
			s.logger.WarnContext(ctx, "failed to cache grant of probate", "error", err)
		}
	}
	return r, nil
}

// ConfirmDeath reports whether a death is registered for nationalID.
func (s *Service) ConfirmDeath(ctx context.Context, nationalID id.NationalID) (bool, error) {
	_, err := s.GetDeath(ctx, nationalID)
	return found(err)
}

// ConfirmGrant reports whether an approved grant of probate exists.
func (s *Service) ConfirmGrant(ctx context.Context, nationalID id.NationalID) (bool, error) {
	r, err := s.GetGrant(ctx, nationalID)
	ok, err := found(err)
	if !ok {
		return false, err
	}
	return r.Approved, nil
}

// DeathsToday lists deaths dated on the current day in the registry's
// timezone.
func (s *Service) DeathsToday(ctx context.Context) ([]models.DeathRecord, error) {
	return s.DeathsOn(ctx, requestcontext.Now(ctx))
}

func (s *Service) DeathsOn(ctx context.Context, day time.Time) ([]models.DeathRecord, error) {
	from, to := models.DayBounds(day, s.location)
	out, err := s.store.ListDeaths(ctx, from, to)
	if err != nil {
		return nil, wrapStoreErr(err, "death records")
	}
	return out, nil
}

// GrantsToday lists grants dated on the current day, approved or not.
func (s *Service) GrantsToday(ctx context.Context) ([]models.ProbateRecord, error) {
	return s.GrantsOn(ctx, requestcontext.Now(ctx))
}

func (s *Service) GrantsOn(ctx context.Context, day time.Time) ([]models.ProbateRecord, error) {
	from, to := models.DayBounds(day, s.location)
	out, err := s.store.ListGrants(ctx, from, to)
	if err != nil {
		return nil, wrapStoreErr(err, "grants of probate")
	}
	return out, nil
}

// CertificatePath resolves the death certificate file for nationalID.
func (s *Service) CertificatePath(ctx context.Context, nationalID id.NationalID) (string, error) {
	r, err := s.GetDeath(ctx, nationalID)
	if err != nil {
		return "", err
	}
	return s.resolveFile(r.CertificateFile, "death certificate")
}

// GrantDocumentPath resolves the grant of probate document for nationalID.
func (s *Service) GrantDocumentPath(ctx context.Context, nationalID id.NationalID) (string, error) {
	r, err := s.GetGrant(ctx, nationalID)
	if err != nil {
		return "", err
	}
	return s.resolveFile(r.DocumentFile, "grant of probate document")
}

// resolveFile joins name onto the data directory and refuses any result that
// escapes it.
func (s *Service) resolveFile(name, what string) (string, error) {
	if name == "" {
		return "", dErrors.Newf(dErrors.CodeNotFound, "%s has no file", what)
	}
	base, err := filepath.Abs(s.dataDir)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "resolve data directory")
	}
	full := filepath.Join(base, name)
	rel, err := filepath.Rel(base, full)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		return "", dErrors.Newf(dErrors.CodeForbidden, "%s path escapes the data directory", what)
	}
	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		return "", dErrors.Newf(dErrors.CodeNotFound, "%s file not found on server", what)
	}
	return full, nil
}

// RecordDeath validates and stores a death record, replacing any earlier
// record for the same national id.
func (s *Service) RecordDeath(ctx context.Context, r models.DeathRecord) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if err := s.store.PutDeath(ctx, r); err != nil {
		return wrapStoreErr(err, "death record")
	}
	s.afterWrite(ctx, kindDeath, events.Event{
		Type:       events.TypeDeathRecorded,
		NationalID: r.NationalID,
		Date:       r.DateOfDeath,
		RecordedAt: requestcontext.Now(ctx),
	})
	return nil
}

// RecordGrant validates and stores a grant of probate. Only approved grants
// are announced.
func (s *Service) RecordGrant(ctx context.Context, r models.ProbateRecord) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if err := s.store.PutGrant(ctx, r); err != nil {
		return wrapStoreErr(err, "grant of probate")
	}
	if !r.Approved {
		s.invalidate(ctx, r.NationalID)
		s.metrics.IncrementStored(kindProbate)
		return nil
	}
	s.afterWrite(ctx, kindProbate, events.Event{
		Type:       events.TypeProbateGranted,
		NationalID: r.NationalID,
		Date:       r.DateGranted,
		RecordedAt: requestcontext.Now(ctx),
	})
	return nil
}

// Clear drops every record. Cached entries age out on their TTL.
func (s *Service) Clear(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return wrapStoreErr(err, "registry")
	}
	s.logger.InfoContext(ctx, "registry cleared")
	return nil
}

func (s *Service) afterWrite(ctx context.Context, kind string, e events.Event) {
	s.invalidate(ctx, e.NationalID)
	s.metrics.IncrementStored(kind)
	if err := s.publisher.Publish(ctx, e); err != nil {
		s.metrics.IncrementEventFailure()
		s.logger.WarnContext(ctx, "failed to publish registry event",
			"event_type", e.Type,
			"national_id", e.NationalID,
			"error", err,
		)
	}
}

func (s *Service) invalidate(ctx context.Context, nationalID id.NationalID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, nationalID); err != nil {
		s.logger.WarnContext(ctx, "failed to invalidate registry cache",
			"national_id", nationalID,
			"error", err,
		)
	}
}

func (s *Service) observeCache(ctx context.Context, hit bool, err error) {
	switch {
	case err != nil:
		s.metrics.ObserveCache("error")
		s.logger.WarnContext(ctx, "registry cache read failed", "error", err)
	case hit:
		s.metrics.ObserveCache("hit")
	default:
		s.metrics.ObserveCache("miss")
	}
}

func found(err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	if dErrors.HasCode(err, dErrors.CodeNotFound) {
		return false, nil
	}
	return false, err
}

func lookupResult(err error) string {
	if errors.Is(err, sentinel.ErrNotFound) {
		return "not_found"
	}
	return "error"
}

func wrapStoreErr(err error, what string) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.Newf(dErrors.CodeNotFound, "no such %s", what)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return dErrors.Wrap(err, dErrors.CodeTimeout, "registry lookup timed out")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "registry store failure: "+what)
}
