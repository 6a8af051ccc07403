package service

import (
	"context"
	"strings"

	"confreg/internal/model"
	"confreg/internal/repo"
	"confreg/pkg/validator"
)

func validateStatus(status string) error {
	if !model.IsRegistrationStatus(status) {
		return invalid("Invalid status. Allowed values: " + strings.Join(model.RegistrationStatuses, ", "))
	}
	return nil
}

func (s *service) SubmitRegistration(ctx context.Context, in model.RegistrationInput) (*model.Registration, error) {
	missing, err := validator.MissingFields(ctx, in)
	if err != nil {
		return nil, invalid(err.Error())
	}
	if len(missing) > 0 {
		return nil, invalid("Missing required fields: " + strings.Join(missing, ", "))
	}

	exists, err := s.repo.EmailExists(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, repo.ErrEmailTaken
	}

	created, err := s.repo.CreateRegistration(ctx, &model.Registration{
		FirstName:           in.FirstName,
		LastName:            in.LastName,
		Email:               in.Email,
		Organization:        in.Organization,
		Phone:               in.Phone,
		Position:            in.Position,
		Country:             in.Country,
		RegistrationType:    in.RegistrationType,
		SpecialRequirements: in.SpecialRequirements,
		PaymentProofURL:     in.PaymentProofURL,
		Status:              model.StatusPending,
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncrementRegistrationsSubmitted()
	}
	s.invalidateStats(ctx)
	s.log.Info().Int64("registration_id", created.ID).Msg("registration submitted")
	return created, nil
}

func (s *service) ListRegistrations(ctx context.Context, f model.ListFilter) (*model.RegistrationPage, error) {
	if f.Status == "all" {
		f.Status = ""
	}
	if f.Page < 1 {
		f.Page = defaultPage
	}
	if f.Limit < 1 {
		f.Limit = defaultLimit
	}
	if f.Limit > maxLimit {
		f.Limit = maxLimit
	}
	if f.Page > maxPage {
		f.Page = maxPage
	}

	regs, total, err := s.repo.ListRegistrations(ctx, f)
	if err != nil {
		return nil, err
	}

	return &model.RegistrationPage{
		Registrations: regs,
		Pagination: model.Pagination{
			Total: total,
			Page:  f.Page,
			Limit: f.Limit,
			Pages: (total + f.Limit - 1) / f.Limit,
		},
	}, nil
}

func (s *service) TransitionStatus(ctx context.Context, id int64, status string) (*model.Registration, error) {
	if err := validateStatus(status); err != nil {
		return nil, err
	}

	reg, err := s.repo.UpdateRegistrationStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.syncFormSubmissions(ctx, []int64{id}, status)
	s.invalidateStats(ctx)
	s.log.Info().Int64("registration_id", id).Str("status", status).Msg("registration status updated")
	return reg, nil
}

type bulkIDs struct {
	IDs []int64 `json:"ids" validate:"required,min=1,dive,positive"`
}

func (s *service) BulkTransitionStatus(ctx context.Context, ids []int64, status string) (int64, error) {
	if len(ids) == 0 {
		return 0, invalid("IDs array is required")
	}
	if err := validator.Validate(ctx, bulkIDs{IDs: ids}); err != nil {
		return 0, invalid(err.Error())
	}
	if err := validateStatus(status); err != nil {
		return 0, err
	}

	updated, err := s.repo.BulkUpdateRegistrationStatus(ctx, ids, status)
	if err != nil {
		return 0, err
	}

	s.syncFormSubmissions(ctx, ids, status)
	s.invalidateStats(ctx)
	s.log.Info().Int64("updated", updated).Str("status", status).Msg("registrations bulk updated")
	return updated, nil
}

// StatsOverview reads through the stats cache. The generation is taken before
// the database read; a mutation that lands in between bumps it, and the
// snapshot written under the old generation is never read.
func (s *service) StatsOverview(ctx context.Context) (*model.StatsOverview, error) {
	if s.stats == nil {
		return s.repo.StatsOverview(ctx)
	}

	gen, err := s.stats.Generation(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("stats cache unavailable")
		return s.repo.StatsOverview(ctx)
	}

	cached, ok, err := s.stats.Get(ctx, gen)
	if err != nil {
		s.log.Warn().Err(err).Msg("stats cache read failed")
	}
	if ok {
		return cached, nil
	}

	stats, err := s.repo.StatsOverview(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.stats.Set(ctx, gen, stats); err != nil {
		s.log.Warn().Err(err).Msg("stats cache write failed")
	}
	return stats, nil
}

func (s *service) DeleteRegistration(ctx context.Context, id int64) error {
	reg, err := s.repo.GetRegistrationByID(ctx, id)
	if err != nil {
		return err
	}

	if reg.PaymentProofURL != "" && s.files != nil {
		s.removePaymentProof(reg)
	}

	refs, err := s.repo.DeleteRegistrationTx(ctx, id)
	if err != nil {
		return err
	}

	for _, ref := range refs {
		s.notifyEnrollmentChanged(ref.Kind, ref.ID)
	}
	s.invalidateStats(ctx)
	s.log.Info().Int64("registration_id", id).Int("enrollments_removed", len(refs)).Msg("registration deleted")
	return nil
}

func (s *service) removePaymentProof(reg *model.Registration) {
	ok, err := s.files.Exists(reg.PaymentProofURL)
	if err != nil {
		s.log.Warn().Err(err).Int64("registration_id", reg.ID).Msg("could not check payment proof file")
		return
	}
	if !ok {
		return
	}
	if err := s.files.Remove(reg.PaymentProofURL); err != nil {
		s.log.Warn().Err(err).Int64("registration_id", reg.ID).Msg("could not delete payment proof file")
	}
}

func (s *service) UpdateRegistration(ctx context.Context, id int64, in model.RegistrationInput) (*model.Registration, error) {
	reg, err := s.repo.UpdateRegistration(ctx, id, in)
	if err != nil {
		return nil, err
	}

	s.invalidateStats(ctx)
	s.log.Info().Int64("registration_id", id).Msg("registration updated")
	return reg, nil
}

// syncFormSubmissions mirrors a status change into the form_submissions audit
// table. Errors are logged and never returned.
func (s *service) syncFormSubmissions(ctx context.Context, ids []int64, status string) {
	if err := s.repo.SyncFormSubmissionStatus(ctx, ids, status); err != nil {
		s.log.Warn().Err(err).Msg("form submissions table update skipped")
	}
}

func (s *service) invalidateStats(ctx context.Context) {
	if s.stats == nil {
		return
	}
	if err := s.stats.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("stats cache invalidation failed")
	}
}
