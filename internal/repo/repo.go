package repo

//go:generate mockgen -source=repo.go -destination=mocks/repo_mocks.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/dbpg"

	"confreg/internal/model"
)

var (
	ErrParentNotFound       = errors.New("session or activity not found or not open")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrEnrollmentNotFound   = errors.New("enrollment not found")
	ErrCapacityExceeded     = errors.New("capacity exceeded")
	ErrAlreadyEnrolled      = errors.New("already enrolled")
	ErrEmailTaken           = errors.New("email already registered")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type Repository interface {
	CreateRegistration(ctx context.Context, reg *model.Registration) (*model.Registration, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	GetRegistrationByID(ctx context.Context, id int64) (*model.Registration, error)
	ListRegistrations(ctx context.Context, f model.ListFilter) ([]model.Registration, int, error)
	UpdateRegistration(ctx context.Context, id int64, in model.RegistrationInput) (*model.Registration, error)
	UpdateRegistrationStatus(ctx context.Context, id int64, status string) (*model.Registration, error)
	BulkUpdateRegistrationStatus(ctx context.Context, ids []int64, status string) (int64, error)
	SyncFormSubmissionStatus(ctx context.Context, ids []int64, status string) error
	DeleteRegistrationTx(ctx context.Context, id int64) ([]model.ParentRef, error)
	StatsOverview(ctx context.Context) (*model.StatsOverview, error)

	CheckParentEligible(ctx context.Context, kind model.ParentKind, parentID int64) error
	EnrollTx(ctx context.Context, kind model.ParentKind, parentID, registrationID int64) (*model.Enrollment, error)
	UnenrollTx(ctx context.Context, kind model.ParentKind, parentID, registrationID int64) error
	ReconcileCounterTx(ctx context.Context, kind model.ParentKind, parentID int64) (before, after int, err error)
	ListSessionEnrollments(ctx context.Context, registrationID int64) ([]model.SessionEnrollment, error)
	ListActivityEnrollments(ctx context.Context, registrationID int64) ([]model.ActivityEnrollment, error)

	Ping(ctx context.Context) error
	MigrateUp(migrationsDir string) error
	MigrateDown(migrationsDir string) error
}

type repository struct {
	db  *dbpg.DB
	log *zerolog.Logger
}

func NewRepository(db *dbpg.DB, log *zerolog.Logger) (Repository, error) {
	if db == nil {
		return nil, fmt.Errorf("db cannot be nil")
	}
	if err := db.Master.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}
	return &repository{db: db, log: log}, nil
}

func (r *repository) Ping(ctx context.Context) error {
	return r.db.Master.PingContext(ctx)
}

func (r *repository) MigrateUp(migrationsDir string) error {
	files, err := filepath.Glob(filepath.Join(migrationsDir, "*.up.sql"))
	if err != nil {
		return fmt.Errorf("failed to read migration files: %w", err)
	}
	sort.Strings(files)

	for _, file := range files {
		sqlBytes, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}

		if _, err := r.db.ExecContext(context.Background(), string(sqlBytes)); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", file, err)
		}
	}

	r.log.Info().Msgf("Migrations applied successfully from %s", migrationsDir)
	return nil
}

func (r *repository) MigrateDown(migrationsDir string) error {
	files, err := filepath.Glob(filepath.Join(migrationsDir, "*.down.sql"))
	if err != nil {
		return fmt.Errorf("failed to read rollback files: %w", err)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(files)))

	for _, file := range files {
		sqlBytes, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read rollback file %s: %w", file, err)
		}

		if _, err := r.db.ExecContext(context.Background(), string(sqlBytes)); err != nil {
			return fmt.Errorf("failed to rollback migration %s: %w", file, err)
		}
	}

	r.log.Info().Msgf("Migrations rolled back successfully from %s", migrationsDir)
	return nil
}

// inTx runs fn inside a transaction on the master and commits only when fn returns nil.
func (r *repository) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.Master.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func pgCode(err error) pq.ErrorCode {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code
	}
	return ""
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
