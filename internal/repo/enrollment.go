package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"confreg/internal/model"
)

// tables names the parent table, its join table and the join table's parent column.
type tables struct {
	parent string
	join   string
	fk     string
}

func tablesFor(kind model.ParentKind) tables {
	if kind == model.KindActivity {
		return tables{parent: "activities", join: "activity_registrations", fk: "activity_id"}
	}
	return tables{parent: "sessions", join: "session_registrations", fk: "session_id"}
}

// syncCounter sets current_registrations to the number of registered join rows.
// The caller must hold the parent row lock.
func syncCounter(ctx context.Context, tx *sql.Tx, t tables, parentID int64) (int, error) {
	var count int
	err := tx.QueryRowContext(ctx, fmt.Sprintf(`
		UPDATE %s
		SET current_registrations = (
			SELECT COUNT(*) FROM %s WHERE %s = $1 AND status = $2
		)
		WHERE id = $1
		RETURNING current_registrations
	`, t.parent, t.join, t.fk), parentID, model.EnrollmentRegistered).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to update %s registration count: %w", t.parent, err)
	}
	return count, nil
}

func (r *repository) CheckParentEligible(ctx context.Context, kind model.ParentKind, parentID int64) error {
	t := tablesFor(kind)

	var exists bool
	err := r.db.Master.QueryRowContext(ctx, fmt.Sprintf(
		`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1 AND status = $2)`, t.parent),
		parentID, kind.EligibleStatus(),
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", t.parent, err)
	}
	if !exists {
		return ErrParentNotFound
	}
	return nil
}

// EnrollTx links a registration to a session or activity. The parent row is
// locked for the whole check-insert-count sequence so concurrent enrollments
// on one parent run one at a time.
func (r *repository) EnrollTx(ctx context.Context, kind model.ParentKind, parentID, registrationID int64) (*model.Enrollment, error) {
	t := tablesFor(kind)
	enrollment := &model.Enrollment{Kind: kind, ParentID: parentID, RegistrationID: registrationID}

	err := r.inTx(ctx, func(tx *sql.Tx) error {
		var capacity sql.NullInt64
		err := tx.QueryRowContext(ctx, fmt.Sprintf(`
			SELECT capacity
			FROM %s
			WHERE id = $1 AND status = $2
			FOR UPDATE
		`, t.parent), parentID, kind.EligibleStatus()).Scan(&capacity)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrParentNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to lock %s: %w", t.parent, err)
		}

		var count int64
		err = tx.QueryRowContext(ctx, fmt.Sprintf(`
			SELECT COUNT(*)
			FROM %s
			WHERE %s = $1 AND status = $2
		`, t.join, t.fk), parentID, model.EnrollmentRegistered).Scan(&count)
		if err != nil {
			return fmt.Errorf("failed to count registrations: %w", err)
		}
		if capacity.Valid && count >= capacity.Int64 {
			return ErrCapacityExceeded
		}

		var existingStatus string
		err = tx.QueryRowContext(ctx, fmt.Sprintf(`
			SELECT id, status
			FROM %s
			WHERE %s = $1 AND registration_id = $2
		`, t.join, t.fk), parentID, registrationID).Scan(&enrollment.ID, &existingStatus)

		switch {
		case err == nil && existingStatus == model.EnrollmentRegistered:
			return ErrAlreadyEnrolled
		case err == nil:
			// a cancelled row is reactivated in place
			err = tx.QueryRowContext(ctx, fmt.Sprintf(`
				UPDATE %s
				SET status = $1, registered_at = NOW()
				WHERE id = $2
				RETURNING status, registered_at
			`, t.join), model.EnrollmentRegistered, enrollment.ID).Scan(&enrollment.Status, &enrollment.RegisteredAt)
			if err != nil {
				return fmt.Errorf("failed to reactivate enrollment: %w", err)
			}
		case errors.Is(err, sql.ErrNoRows):
			err = tx.QueryRowContext(ctx, fmt.Sprintf(`
				INSERT INTO %s (%s, registration_id, status, registered_at)
				VALUES ($1, $2, $3, NOW())
				RETURNING id, status, registered_at
			`, t.join, t.fk), parentID, registrationID, model.EnrollmentRegistered).
				Scan(&enrollment.ID, &enrollment.Status, &enrollment.RegisteredAt)
			switch {
			case pgCode(err) == pgForeignKeyViolation:
				return ErrRegistrationNotFound
			case pgCode(err) == pgUniqueViolation:
				return ErrAlreadyEnrolled
			case err != nil:
				return fmt.Errorf("failed to create enrollment: %w", err)
			}
		default:
			return fmt.Errorf("failed to check duplicate enrollment: %w", err)
		}

		_, err = syncCounter(ctx, tx, t, parentID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return enrollment, nil
}

func (r *repository) UnenrollTx(ctx context.Context, kind model.ParentKind, parentID, registrationID int64) error {
	t := tablesFor(kind)

	return r.inTx(ctx, func(tx *sql.Tx) error {
		var locked int64
		err := tx.QueryRowContext(ctx, fmt.Sprintf(`SELECT id FROM %s WHERE id = $1 FOR UPDATE`, t.parent), parentID).Scan(&locked)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrEnrollmentNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to lock %s: %w", t.parent, err)
		}

		res, err := tx.ExecContext(ctx, fmt.Sprintf(`
			DELETE FROM %s
			WHERE %s = $1 AND registration_id = $2
		`, t.join, t.fk), parentID, registrationID)
		if err != nil {
			return fmt.Errorf("failed to delete enrollment: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read affected rows: %w", err)
		}
		if affected == 0 {
			return ErrEnrollmentNotFound
		}

		_, err = syncCounter(ctx, tx, t, parentID)
		return err
	})
}

// ReconcileCounterTx re-derives current_registrations for one parent and
// reports the value before and after.
func (r *repository) ReconcileCounterTx(ctx context.Context, kind model.ParentKind, parentID int64) (int, int, error) {
	t := tablesFor(kind)
	var before, after int

	err := r.inTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, fmt.Sprintf(`
			SELECT current_registrations FROM %s WHERE id = $1 FOR UPDATE
		`, t.parent), parentID).Scan(&before)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrParentNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to lock %s: %w", t.parent, err)
		}

		after, err = syncCounter(ctx, tx, t, parentID)
		return err
	})
	if err != nil {
		return 0, 0, err
	}
	return before, after, nil
}

func capacityPtr(c sql.NullInt64) *int {
	if !c.Valid {
		return nil
	}
	v := int(c.Int64)
	return &v
}

func (r *repository) ListSessionEnrollments(ctx context.Context, registrationID int64) ([]model.SessionEnrollment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT s.id, s.title, COALESCE(s.description, ''), s.date, s.start_time::text,
		       COALESCE(s.end_time::text, ''), COALESCE(s.location, ''), s.capacity,
		       s.current_registrations, s.status, sr.status, sr.registered_at
		FROM sessions s
		JOIN session_registrations sr ON s.id = sr.session_id
		WHERE sr.registration_id = $1 AND s.status = $2
		ORDER BY s.date ASC, s.start_time ASC
	`, registrationID, model.SessionPublished)
	if err != nil {
		return nil, fmt.Errorf("failed to get session enrollments: %w", err)
	}
	defer rows.Close()

	out := []model.SessionEnrollment{}
	for rows.Next() {
		var (
			e        model.SessionEnrollment
			capacity sql.NullInt64
		)
		if err := rows.Scan(
			&e.ID,
			&e.Title,
			&e.Description,
			&e.Date,
			&e.StartTime,
			&e.EndTime,
			&e.Location,
			&capacity,
			&e.CurrentRegistrations,
			&e.Status,
			&e.EnrollmentStatus,
			&e.RegisteredAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan session enrollment: %w", err)
		}
		e.Capacity = capacityPtr(capacity)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *repository) ListActivityEnrollments(ctx context.Context, registrationID int64) ([]model.ActivityEnrollment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT a.id, a.name, COALESCE(a.description, ''), a.date, a.time::text,
		       COALESCE(a.location, ''), a.capacity, a.current_registrations, a.status,
		       ar.status, ar.registered_at
		FROM activities a
		JOIN activity_registrations ar ON a.id = ar.activity_id
		WHERE ar.registration_id = $1 AND a.status = $2
		ORDER BY a.date ASC, a.time ASC
	`, registrationID, model.ActivityActive)
	if err != nil {
		return nil, fmt.Errorf("failed to get activity enrollments: %w", err)
	}
	defer rows.Close()

	out := []model.ActivityEnrollment{}
	for rows.Next() {
		var (
			e        model.ActivityEnrollment
			capacity sql.NullInt64
		)
		if err := rows.Scan(
			&e.ID,
			&e.Name,
			&e.Description,
			&e.Date,
			&e.Time,
			&e.Location,
			&capacity,
			&e.CurrentRegistrations,
			&e.Status,
			&e.EnrollmentStatus,
			&e.RegisteredAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan activity enrollment: %w", err)
		}
		e.Capacity = capacityPtr(capacity)
		out = append(out, e)
	}
	return out, rows.Err()
}
