package consumerWorker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"confreg/internal/metrics"
	"confreg/internal/model"
	"confreg/internal/rabbit"
	"confreg/internal/repo"
	"confreg/internal/repo/mocks"
)

type stubConsumer struct {
	handler rabbit.Handler
	ctx     context.Context
	err     error
	started chan struct{}
}

func (c *stubConsumer) Consume(ctx context.Context, h rabbit.Handler) error {
	c.ctx = ctx
	c.handler = h
	close(c.started)
	return c.err
}

func newReader(t *testing.T) (*Reader, *mocks.MockRepository, *metrics.Metrics) {
	t.Helper()
	ctrl := gomock.NewController(t)
	r := mocks.NewMockRepository(ctrl)
	m := metrics.New(prometheus.NewRegistry())
	logger := zerolog.Nop()
	return NewReader(&stubConsumer{started: make(chan struct{})}, r, &logger, m), r, m
}

func TestHandle(t *testing.T) {
	ctx := context.Background()

	t.Run("parent gone", func(t *testing.T) {
		reader, r, _ := newReader(t)
		r.EXPECT().ReconcileCounterTx(ctx, model.KindSession, int64(4)).Return(0, 0, repo.ErrParentNotFound)

		assert.NoError(t, reader.Handle(ctx, rabbit.EnrollmentChanged{Kind: model.KindSession, ParentID: 4}))
	})

	t.Run("store error is retried", func(t *testing.T) {
		reader, r, _ := newReader(t)
		r.EXPECT().ReconcileCounterTx(ctx, model.KindActivity, int64(4)).Return(0, 0, errors.New("connection reset"))

		err := reader.Handle(ctx, rabbit.EnrollmentChanged{Kind: model.KindActivity, ParentID: 4})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reconcile activity 4")
	})

	t.Run("drift is counted", func(t *testing.T) {
		reader, r, m := newReader(t)
		r.EXPECT().ReconcileCounterTx(ctx, model.KindSession, int64(4)).Return(7, 5, nil)
		r.EXPECT().ReconcileCounterTx(ctx, model.KindSession, int64(4)).Return(5, 5, nil)

		msg := rabbit.EnrollmentChanged{Kind: model.KindSession, ParentID: 4}
		require.NoError(t, reader.Handle(ctx, msg))
		require.NoError(t, reader.Handle(ctx, msg))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterDriftRepaired.WithLabelValues("session")))
	})
}

func TestStartStop(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockRepository(ctrl)
	consumer := &stubConsumer{started: make(chan struct{})}
	logger := zerolog.Nop()
	reader := NewReader(consumer, r, &logger, nil)

	reader.Start(context.Background())
	select {
	case <-consumer.started:
	case <-time.After(time.Second):
		t.Fatal("consumer was not started")
	}

	r.EXPECT().ReconcileCounterTx(gomock.Any(), model.KindSession, int64(2)).Return(1, 1, nil)
	require.NoError(t, consumer.handler(consumer.ctx, rabbit.EnrollmentChanged{Kind: model.KindSession, ParentID: 2}))

	reader.Stop()
	assert.Error(t, consumer.ctx.Err())
}
