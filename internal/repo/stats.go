package repo

import (
	"context"
	"fmt"

	"confreg/internal/model"
)

func (r *repository) StatsOverview(ctx context.Context) (*model.StatsOverview, error) {
	var s model.StatsOverview

	err := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'under_review'),
			COUNT(*) FILTER (WHERE status = 'approved'),
			COUNT(*) FILTER (WHERE status = 'rejected'),
			COUNT(*) FILTER (WHERE status = 'waitlist'),
			COUNT(*) FILTER (WHERE status = 'cancelled'),
			COUNT(*) FILTER (WHERE created_at >= NOW() - INTERVAL '7 days')
		FROM registrations
	`).Scan(
		&s.Overview.TotalRegistrations,
		&s.Overview.Submitted,
		&s.Overview.UnderReview,
		&s.Overview.Approved,
		&s.Overview.Rejected,
		&s.Overview.Waitlist,
		&s.Overview.Cancelled,
		&s.Overview.NewThisWeek,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count registrations by status: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT registration_type, COUNT(*) AS count
		FROM registrations
		WHERE registration_type IS NOT NULL
		GROUP BY registration_type
		ORDER BY count DESC, registration_type ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count registrations by type: %w", err)
	}
	defer rows.Close()

	s.ByType = []model.TypeCount{}
	for rows.Next() {
		var tc model.TypeCount
		if err := rows.Scan(&tc.RegistrationType, &tc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan type count: %w", err)
		}
		s.ByType = append(s.ByType, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate type counts: %w", err)
	}

	return &s, nil
}
