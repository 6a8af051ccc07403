package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lib/pq"

	"confreg/internal/model"
)

const registrationColumns = `
	id, first_name, last_name, email,
	COALESCE(organization, ''), COALESCE(phone, ''), COALESCE(position, ''), COALESCE(country, ''),
	COALESCE(registration_type, ''), COALESCE(special_requirements, ''), COALESCE(payment_proof_url, ''),
	status, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRegistration(row rowScanner) (*model.Registration, error) {
	var reg model.Registration
	if err := row.Scan(
		&reg.ID,
		&reg.FirstName,
		&reg.LastName,
		&reg.Email,
		&reg.Organization,
		&reg.Phone,
		&reg.Position,
		&reg.Country,
		&reg.RegistrationType,
		&reg.SpecialRequirements,
		&reg.PaymentProofURL,
		&reg.Status,
		&reg.CreatedAt,
		&reg.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *repository) CreateRegistration(ctx context.Context, reg *model.Registration) (*model.Registration, error) {
	query := `
		INSERT INTO registrations (
			first_name, last_name, email, organization, phone, position, country,
			registration_type, special_requirements, payment_proof_url, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING ` + registrationColumns

	created, err := scanRegistration(r.db.Master.QueryRowContext(ctx, query,
		reg.FirstName,
		reg.LastName,
		reg.Email,
		nullIfEmpty(reg.Organization),
		nullIfEmpty(reg.Phone),
		nullIfEmpty(reg.Position),
		nullIfEmpty(reg.Country),
		reg.RegistrationType,
		nullIfEmpty(reg.SpecialRequirements),
		nullIfEmpty(reg.PaymentProofURL),
		reg.Status,
	))
	if err != nil {
		if pgCode(err) == pgUniqueViolation {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to insert registration: %w", err)
	}
	return created, nil
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.Master.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM registrations WHERE email = $1)`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

func (r *repository) GetRegistrationByID(ctx context.Context, id int64) (*model.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE id = $1`

	reg, err := scanRegistration(r.db.Master.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRegistrationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get registration: %w", err)
	}
	return reg, nil
}

// escapeLike makes user input literal inside a LIKE pattern.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *repository) ListRegistrations(ctx context.Context, f model.ListFilter) ([]model.Registration, int, error) {
	where := []string{"1=1"}
	var args []any

	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+escapeLike(f.Search)+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(first_name ILIKE $%d OR last_name ILIKE $%d OR email ILIKE $%d)", n, n, n))
	}
	whereClause := "WHERE " + strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM registrations `+whereClause, args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count registrations: %w", err)
	}

	offset := (f.Page - 1) * f.Limit
	pageArgs := append(append([]any{}, args...), f.Limit, offset)
	query := fmt.Sprintf(`
		SELECT %s FROM registrations %s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d`,
		registrationColumns, whereClause, len(args)+1, len(args)+2)

	rows, err := r.db.QueryContext(ctx, query, pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list registrations: %w", err)
	}
	defer rows.Close()

	regs := make([]model.Registration, 0, f.Limit)
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan registration: %w", err)
		}
		regs = append(regs, *reg)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate registrations: %w", err)
	}

	return regs, total, nil
}

func (r *repository) UpdateRegistration(ctx context.Context, id int64, in model.RegistrationInput) (*model.Registration, error) {
	query := `
		UPDATE registrations SET
			first_name = $1,
			last_name = $2,
			email = $3,
			phone = $4,
			organization = $5,
			position = $6,
			registration_type = $7,
			special_requirements = $8,
			updated_at = NOW()
		WHERE id = $9
		RETURNING ` + registrationColumns

	reg, err := scanRegistration(r.db.Master.QueryRowContext(ctx, query,
		in.FirstName,
		in.LastName,
		in.Email,
		nullIfEmpty(in.Phone),
		nullIfEmpty(in.Organization),
		nullIfEmpty(in.Position),
		nullIfEmpty(in.RegistrationType),
		nullIfEmpty(in.SpecialRequirements),
		id,
	))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, ErrRegistrationNotFound
	case pgCode(err) == pgUniqueViolation:
		return nil, ErrEmailTaken
	case err != nil:
		return nil, fmt.Errorf("failed to update registration: %w", err)
	}
	return reg, nil
}

func (r *repository) UpdateRegistrationStatus(ctx context.Context, id int64, status string) (*model.Registration, error) {
	query := `
		UPDATE registrations
		SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + registrationColumns

	reg, err := scanRegistration(r.db.Master.QueryRowContext(ctx, query, status, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRegistrationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update registration status: %w", err)
	}
	return reg, nil
}

func (r *repository) BulkUpdateRegistrationStatus(ctx context.Context, ids []int64, status string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE registrations
		SET status = $1, updated_at = NOW()
		WHERE id = ANY($2)
	`, status, pq.Array(ids))
	if err != nil {
		return 0, fmt.Errorf("failed to bulk update registration status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected, nil
}

func (r *repository) SyncFormSubmissionStatus(ctx context.Context, ids []int64, status string) error {
	if _, err := r.db.ExecContext(ctx, `
		UPDATE form_submissions
		SET status = $1, updated_at = NOW()
		WHERE form_type = 'registration' AND entity_id = ANY($2)
	`, status, pq.Array(ids)); err != nil {
		return fmt.Errorf("failed to sync form submissions: %w", err)
	}
	return nil
}

var parentKinds = []model.ParentKind{model.KindSession, model.KindActivity}

func queryIDs(ctx context.Context, tx *sql.Tx, query string, args ...any) ([]int64, error) {
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// DeleteRegistrationTx removes a registration and its enrollments and
// re-derives the counters of every affected session and activity.
//
// Parents already linked are locked first, in id order, so enrollments in
// flight on them finish or wait. The registration lock then blocks any new
// join row referencing it, which makes the join rows deleted afterwards the
// complete set. A parent that gained its row while we waited is locked before
// its counter is touched.
func (r *repository) DeleteRegistrationTx(ctx context.Context, id int64) ([]model.ParentRef, error) {
	var refs []model.ParentRef

	err := r.inTx(ctx, func(tx *sql.Tx) error {
		locked := make(map[model.ParentRef]struct{})
		for _, kind := range parentKinds {
			t := tablesFor(kind)
			ids, err := queryIDs(ctx, tx, fmt.Sprintf(`
				SELECT p.id
				FROM %s p
				JOIN %s j ON j.%s = p.id
				WHERE j.registration_id = $1
				ORDER BY p.id
				FOR UPDATE OF p
			`, t.parent, t.join, t.fk), id)
			if err != nil {
				return fmt.Errorf("failed to lock %s: %w", t.parent, err)
			}
			for _, pid := range ids {
				locked[model.ParentRef{Kind: kind, ID: pid}] = struct{}{}
			}
		}

		var found int64
		err := tx.QueryRowContext(ctx, `SELECT id FROM registrations WHERE id = $1 FOR UPDATE`, id).Scan(&found)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRegistrationNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to lock registration: %w", err)
		}

		for _, kind := range parentKinds {
			t := tablesFor(kind)
			ids, err := queryIDs(ctx, tx, fmt.Sprintf(
				`DELETE FROM %s WHERE registration_id = $1 RETURNING %s`, t.join, t.fk), id)
			if err != nil {
				return fmt.Errorf("failed to delete %s: %w", t.join, err)
			}
			sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

			for _, pid := range ids {
				ref := model.ParentRef{Kind: kind, ID: pid}
				if _, ok := locked[ref]; !ok {
					var got int64
					err := tx.QueryRowContext(ctx, fmt.Sprintf(
						`SELECT id FROM %s WHERE id = $1 FOR UPDATE`, t.parent), pid).Scan(&got)
					if err != nil {
						return fmt.Errorf("failed to lock %s %d: %w", t.parent, pid, err)
					}
				}
				refs = append(refs, ref)
			}
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM registrations WHERE id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete registration: %w", err)
		}

		for _, ref := range refs {
			if _, err := syncCounter(ctx, tx, tablesFor(ref.Kind), ref.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return refs, nil
}
