package service

import (
	"context"
	"errors"

	"confreg/internal/model"
	"confreg/internal/repo"
)

func enrollmentOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrValidation):
		return "invalid"
	case errors.Is(err, repo.ErrParentNotFound),
		errors.Is(err, repo.ErrRegistrationNotFound),
		errors.Is(err, repo.ErrEnrollmentNotFound):
		return "not_found"
	case errors.Is(err, repo.ErrCapacityExceeded):
		return "full"
	case errors.Is(err, repo.ErrAlreadyEnrolled):
		return "duplicate"
	default:
		return "error"
	}
}

func (s *service) observeEnrollment(kind model.ParentKind, op string, err error) {
	if s.metrics != nil {
		s.metrics.ObserveEnrollment(string(kind), op, enrollmentOutcome(err))
	}
}

func (s *service) Enroll(ctx context.Context, kind model.ParentKind, parentID, registrationID int64) (enrollment *model.Enrollment, err error) {
	defer func() { s.observeEnrollment(kind, "enroll", err) }()

	if err := s.repo.CheckParentEligible(ctx, kind, parentID); err != nil {
		return nil, err
	}
	if registrationID <= 0 {
		return nil, invalid("Registration ID is required")
	}

	enrollment, err = s.repo.EnrollTx(ctx, kind, parentID, registrationID)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("kind", string(kind)).
		Int64("parent_id", parentID).
		Int64("registration_id", registrationID).
		Msg("enrolled")

	s.notifyEnrollmentChanged(kind, parentID)
	return enrollment, nil
}

func (s *service) Unenroll(ctx context.Context, kind model.ParentKind, parentID, registrationID int64) (err error) {
	defer func() { s.observeEnrollment(kind, "unenroll", err) }()

	if err := s.repo.UnenrollTx(ctx, kind, parentID, registrationID); err != nil {
		return err
	}

	s.log.Info().
		Str("kind", string(kind)).
		Int64("parent_id", parentID).
		Int64("registration_id", registrationID).
		Msg("unenrolled")

	s.notifyEnrollmentChanged(kind, parentID)
	return nil
}

func (s *service) ListForRegistrant(ctx context.Context, registrationID int64) (*model.RegistrantSchedule, error) {
	sessions, err := s.repo.ListSessionEnrollments(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	activities, err := s.repo.ListActivityEnrollments(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	return &model.RegistrantSchedule{Sessions: sessions, Activities: activities}, nil
}

// notifyEnrollmentChanged queues a counter reconciliation for the parent.
// Failures are logged only; the enrollment is already committed.
func (s *service) notifyEnrollmentChanged(kind model.ParentKind, parentID int64) {
	if s.rbt == nil {
		return
	}
	if err := s.rbt.PublishEnrollmentChanged(kind, parentID); err != nil {
		s.log.Warn().
			Err(err).
			Str("kind", string(kind)).
			Int64("parent_id", parentID).
			Msg("failed to publish enrollment change")
	}
}
