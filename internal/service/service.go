package service

//go:generate mockgen -source=service.go -destination=mocks/service_mocks.go -package=mocks

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"confreg/internal/metrics"
	"confreg/internal/model"
	"confreg/internal/rabbit"
	"confreg/internal/repo"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100

	// maxPage keeps (page-1)*limit well inside the OFFSET range.
	maxPage = 1_000_000
)

// ErrValidation marks input that fails validation; match with errors.Is.
var ErrValidation = errors.New("validation error")

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(msg string) error {
	return &ValidationError{Msg: msg}
}

type Service interface {
	Enroll(ctx context.Context, kind model.ParentKind, parentID, registrationID int64) (*model.Enrollment, error)
	Unenroll(ctx context.Context, kind model.ParentKind, parentID, registrationID int64) error
	ListForRegistrant(ctx context.Context, registrationID int64) (*model.RegistrantSchedule, error)

	SubmitRegistration(ctx context.Context, in model.RegistrationInput) (*model.Registration, error)
	ListRegistrations(ctx context.Context, f model.ListFilter) (*model.RegistrationPage, error)
	TransitionStatus(ctx context.Context, id int64, status string) (*model.Registration, error)
	BulkTransitionStatus(ctx context.Context, ids []int64, status string) (int64, error)
	StatsOverview(ctx context.Context) (*model.StatsOverview, error)
	DeleteRegistration(ctx context.Context, id int64) error
	UpdateRegistration(ctx context.Context, id int64, in model.RegistrationInput) (*model.Registration, error)
}

// FileStore holds uploaded payment-proof artifacts.
type FileStore interface {
	Exists(ref string) (bool, error)
	Remove(ref string) error
}

// StatsCache stores stats snapshots under a generation number. Invalidate
// starts a new generation, so a snapshot computed before it is never served
// after it.
type StatsCache interface {
	Generation(ctx context.Context) (int64, error)
	Get(ctx context.Context, gen int64) (*model.StatsOverview, bool, error)
	Set(ctx context.Context, gen int64, stats *model.StatsOverview) error
	Invalidate(ctx context.Context) error
}

type service struct {
	repo    repo.Repository
	files   FileStore
	log     *zerolog.Logger
	rbt     rabbit.Publisher
	stats   StatsCache
	metrics *metrics.Metrics
}

type Option func(*service)

func WithPublisher(p rabbit.Publisher) Option {
	return func(s *service) { s.rbt = p }
}

func WithStatsCache(c StatsCache) Option {
	return func(s *service) { s.stats = c }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *service) { s.metrics = m }
}

func NewService(repo repo.Repository, files FileStore, logger *zerolog.Logger, opts ...Option) Service {
	s := &service{
		repo:  repo,
		files: files,
		log:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
