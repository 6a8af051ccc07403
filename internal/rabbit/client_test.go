package rabbit

import (
	"context"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confreg/internal/model"
)

type recordingAcker struct {
	acked    int
	requeued int
	dropped  int
}

func (a *recordingAcker) Ack(uint64, bool) error { a.acked++; return nil }

func (a *recordingAcker) Nack(_ uint64, _ bool, requeue bool) error {
	if requeue {
		a.requeued++
	} else {
		a.dropped++
	}
	return nil
}

func (a *recordingAcker) Reject(_ uint64, requeue bool) error { return a.Nack(0, false, requeue) }

func TestDecodeEnrollmentChanged(t *testing.T) {
	msg, err := decodeEnrollmentChanged([]byte(`{"kind":"activity","parent_id":7}`))
	require.NoError(t, err)
	assert.Equal(t, EnrollmentChanged{Kind: model.KindActivity, ParentID: 7}, msg)

	for _, body := range []string{
		`not json`,
		`{"kind":"workshop","parent_id":1}`,
		`{"kind":"session","parent_id":0}`,
		`{"kind":"session"}`,
	} {
		_, err := decodeEnrollmentChanged([]byte(body))
		assert.ErrorIs(t, err, ErrMalformedMessage, body)
	}
}

func TestSettle(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	failing := func(context.Context, EnrollmentChanged) error { return errors.New("connection reset") }

	cases := []struct {
		name        string
		body        string
		redelivered bool
		handler     Handler
		want        recordingAcker
		wantCalls   int
	}{
		{
			name:      "reconciled",
			body:      `{"kind":"session","parent_id":3}`,
			want:      recordingAcker{acked: 1},
			wantCalls: 1,
		},
		{
			name: "malformed is dropped without calling the handler",
			body: `{"kind":"session","parent_id":-1}`,
			want: recordingAcker{dropped: 1},
		},
		{
			name:      "first failure is requeued",
			body:      `{"kind":"session","parent_id":3}`,
			handler:   failing,
			want:      recordingAcker{requeued: 1},
			wantCalls: 1,
		},
		{
			name:        "second failure is dropped",
			body:        `{"kind":"session","parent_id":3}`,
			redelivered: true,
			handler:     failing,
			want:        recordingAcker{dropped: 1},
			wantCalls:   1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			calls := 0
			h := func(ctx context.Context, msg EnrollmentChanged) error {
				calls++
				assert.Equal(t, int64(3), msg.ParentID)
				if tc.handler != nil {
					return tc.handler(ctx, msg)
				}
				return nil
			}

			acker := &recordingAcker{}
			settle(ctx, &logger, amqp.Delivery{
				Acknowledger: acker,
				DeliveryTag:  1,
				Body:         []byte(tc.body),
				Redelivered:  tc.redelivered,
			}, h)

			assert.Equal(t, tc.want, *acker)
			assert.Equal(t, tc.wantCalls, calls)
		})
	}
}
