package consumerWorker

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"confreg/internal/metrics"
	"confreg/internal/rabbit"
	"confreg/internal/repo"
)

type Consumer interface {
	Consume(ctx context.Context, h rabbit.Handler) error
}

// Reader consumes enrollment change messages and re-derives the affected
// parent's registration counter.
type Reader struct {
	RMQ     Consumer
	repo    repo.Repository
	log     *zerolog.Logger
	metrics *metrics.Metrics
	done    chan struct{}
	cancel  context.CancelFunc
}

func NewReader(rmq Consumer, repo repo.Repository, log *zerolog.Logger, m *metrics.Metrics) *Reader {
	return &Reader{
		RMQ:     rmq,
		repo:    repo,
		log:     log,
		metrics: m,
		done:    make(chan struct{}),
	}
}

// Handle reconciles one parent. A parent deleted since the change is skipped;
// store errors are returned so the delivery is retried.
func (r *Reader) Handle(ctx context.Context, msg rabbit.EnrollmentChanged) error {
	before, after, err := r.repo.ReconcileCounterTx(ctx, msg.Kind, msg.ParentID)
	if errors.Is(err, repo.ErrParentNotFound) {
		r.log.Info().Str("kind", string(msg.Kind)).Int64("parent_id", msg.ParentID).Msg("Parent gone, nothing to reconcile")
		return nil
	}
	if err != nil {
		r.log.Error().
			Err(err).
			Str("kind", string(msg.Kind)).
			Int64("parent_id", msg.ParentID).
			Msg("Failed to reconcile registration counter")
		return fmt.Errorf("reconcile %s %d: %w", msg.Kind, msg.ParentID, err)
	}

	if before != after {
		r.log.Warn().
			Str("kind", string(msg.Kind)).
			Int64("parent_id", msg.ParentID).
			Int("before", before).
			Int("after", after).
			Msg("Registration counter drift repaired")
		if r.metrics != nil {
			r.metrics.ObserveDriftRepaired(string(msg.Kind))
		}
	}
	return nil
}

func (r *Reader) Start(ctx context.Context) {
	cctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	r.log.Info().Msg("Counter reconciler started")

	go func() {
		defer close(r.done)

		if err := r.RMQ.Consume(cctx, r.Handle); err != nil {
			r.log.Error().Err(err).Msg("Failed to start consuming")
			return
		}

		<-cctx.Done()
		r.log.Info().Msg("Counter reconciler stopped by context")
	}()
}

func (r *Reader) Stop() {
	if r.cancel != nil {
		r.cancel()
		<-r.done
	}
}
