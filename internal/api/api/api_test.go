package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"confreg/internal/dto"
	"confreg/internal/metrics"
	"confreg/internal/model"
	"confreg/internal/repo"
	"confreg/internal/service"
	"confreg/internal/service/mocks"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

type envelope struct {
	Status string          `json:"status"`
	Error  *dto.Error      `json:"error"`
	Data   json.RawMessage `json:"data"`
}

func newTestRouter(t *testing.T, health Pinger) (http.Handler, *mocks.MockService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	logger := zerolog.Nop()
	app := NewRouters(&Routers{
		Service: svc,
		Health:  health,
		Metrics: metrics.New(prometheus.NewRegistry()),
		Log:     &logger,
	})
	return app, svc
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func TestEnrollSession(t *testing.T) {
	t.Run("string registration id is accepted", func(t *testing.T) {
		app, svc := newTestRouter(t, nil)
		svc.EXPECT().Enroll(gomock.Any(), model.KindSession, int64(5), int64(12)).
			Return(&model.Enrollment{ID: 1, Kind: model.KindSession, ParentID: 5, RegistrationID: 12, Status: model.EnrollmentRegistered}, nil)

		rec, env := do(t, app, http.MethodPost, "/api/registrations/sessions/5", `{"registration_id":"12"}`)
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "ok", env.Status)

		var got model.Enrollment
		require.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, int64(12), got.RegistrationID)
		assert.Equal(t, model.EnrollmentRegistered, got.Status)
	})

	t.Run("missing body still checks the session first", func(t *testing.T) {
		app, svc := newTestRouter(t, nil)
		svc.EXPECT().Enroll(gomock.Any(), model.KindSession, int64(5), int64(0)).Return(nil, repo.ErrParentNotFound)

		rec, env := do(t, app, http.MethodPost, "/api/registrations/sessions/5", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, dto.SessionNotFound, env.Error.Code)
	})

	t.Run("validation error", func(t *testing.T) {
		app, svc := newTestRouter(t, nil)
		svc.EXPECT().Enroll(gomock.Any(), model.KindSession, int64(5), int64(0)).
			Return(nil, &service.ValidationError{Msg: "Registration ID is required"})

		rec, env := do(t, app, http.MethodPost, "/api/registrations/sessions/5", `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, dto.FieldIncorrect, env.Error.Code)
		assert.Equal(t, "Registration ID is required", env.Error.Desc)
	})

	t.Run("full session", func(t *testing.T) {
		app, svc := newTestRouter(t, nil)
		svc.EXPECT().Enroll(gomock.Any(), model.KindSession, int64(5), int64(7)).Return(nil, repo.ErrCapacityExceeded)

		rec, env := do(t, app, http.MethodPost, "/api/registrations/sessions/5", `{"registration_id":7}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, dto.CapacityExceeded, env.Error.Code)
		assert.Equal(t, "Session is full", env.Error.Desc)
	})

	t.Run("unparseable session id", func(t *testing.T) {
		app, _ := newTestRouter(t, nil)

		rec, env := do(t, app, http.MethodPost, "/api/registrations/sessions/abc", `{"registration_id":7}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, dto.SessionNotFound, env.Error.Code)
	})
}

func TestEnrollActivity(t *testing.T) {
	t.Run("duplicate", func(t *testing.T) {
		app, svc := newTestRouter(t, nil)
		svc.EXPECT().Enroll(gomock.Any(), model.KindActivity, int64(3), int64(7)).Return(nil, repo.ErrAlreadyEnrolled)

		rec, env := do(t, app, http.MethodPost, "/api/registrations/activities/3", `{"registration_id":7}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, dto.EnrollmentDuplicate, env.Error.Code)
	})

	t.Run("inactive activity", func(t *testing.T) {
		app, svc := newTestRouter(t, nil)
		svc.EXPECT().Enroll(gomock.Any(), model.KindActivity, int64(3), int64(7)).Return(nil, repo.ErrParentNotFound)

		rec, env := do(t, app, http.MethodPost, "/api/registrations/activities/3", `{"registration_id":7}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, dto.ActivityNotFound, env.Error.Code)
	})
}

func TestUnenroll(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		app, svc := newTestRouter(t, nil)
		svc.EXPECT().Unenroll(gomock.Any(), model.KindActivity, int64(3), int64(7)).Return(nil)

		rec, env := do(t, app, http.MethodDelete, "/api/registrations/activities/3/7", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"message":"Unregistered from activity successfully"}`, string(env.Data))
	})

	t.Run("not enrolled", func(t *testing.T) {
		app, svc := newTestRouter(t, nil)
		svc.EXPECT().Unenroll(gomock.Any(), model.KindSession, int64(3), int64(7)).Return(repo.ErrEnrollmentNotFound)

		rec, env := do(t, app, http.MethodDelete, "/api/registrations/sessions/3/7", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, dto.EnrollmentNotFound, env.Error.Code)
	})
}

func TestListForRegistrant(t *testing.T) {
	app, svc := newTestRouter(t, nil)
	svc.EXPECT().ListForRegistrant(gomock.Any(), int64(9)).Return(&model.RegistrantSchedule{
		Sessions:   []model.SessionEnrollment{},
		Activities: []model.ActivityEnrollment{},
	}, nil)

	rec, env := do(t, app, http.MethodGet, "/api/registrations/user/9", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"sessions":[],"activities":[]}`, string(env.Data))
}

func TestSubmitRegistration(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		app, svc := newTestRouter(t, nil)
		svc.EXPECT().SubmitRegistration(gomock.Any(), model.RegistrationInput{
			FirstName:           "Ada",
			LastName:            "Lovelace",
			Email:               "a@x.com",
			RegistrationType:    "speaker",
			SpecialRequirements: "vegan",
		}).Return(&model.Registration{ID: 1, Email: "a@x.com", Status: model.StatusPending}, nil)

		rec, env := do(t, app, http.MethodPost, "/api/registrations/",
			`{"firstName":"Ada","lastName":"Lovelace","email":"a@x.com","registrationType":"speaker","special_requirements":"vegan"}`)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var got dto.SubmitRegistrationResponse
		require.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, model.StatusPending, got.Status)
		assert.Equal(t, int64(1), got.Registration.ID)
	})

	t.Run("duplicate email", func(t *testing.T) {
		app, svc := newTestRouter(t, nil)
		svc.EXPECT().SubmitRegistration(gomock.Any(), gomock.Any()).Return(nil, repo.ErrEmailTaken)

		rec, env := do(t, app, http.MethodPost, "/api/registrations/", `{"email":"a@x.com"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, dto.RegistrationDuplicate, env.Error.Code)
	})

	t.Run("malformed json", func(t *testing.T) {
		app, _ := newTestRouter(t, nil)

		rec, env := do(t, app, http.MethodPost, "/api/registrations/", `{"email":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, dto.FieldIncorrect, env.Error.Code)
	})
}

func TestListRegistrations(t *testing.T) {
	app, svc := newTestRouter(t, nil)
	svc.EXPECT().ListRegistrations(gomock.Any(), model.ListFilter{Status: "approved", Search: "smith", Page: 2, Limit: 10}).
		Return(&model.RegistrationPage{
			Registrations: []model.Registration{},
			Pagination:    model.Pagination{Total: 25, Page: 2, Limit: 10, Pages: 3},
		}, nil)

	rec, env := do(t, app, http.MethodGet, "/api/registrations/?status=approved&search=smith&page=2&limit=10", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var got model.RegistrationPage
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, 3, got.Pagination.Pages)
}

func TestTransitionStatus(t *testing.T) {
	t.Run("invalid status", func(t *testing.T) {
		app, svc := newTestRouter(t, nil)
		svc.EXPECT().TransitionStatus(gomock.Any(), int64(4), "bogus").
			Return(nil, &service.ValidationError{Msg: "Invalid status"})

		rec, env := do(t, app, http.MethodPatch, "/api/registrations/4/status", `{"status":"bogus"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, dto.FieldIncorrect, env.Error.Code)
	})

	t.Run("unknown registration", func(t *testing.T) {
		app, svc := newTestRouter(t, nil)
		svc.EXPECT().TransitionStatus(gomock.Any(), int64(4), model.StatusApproved).Return(nil, repo.ErrRegistrationNotFound)

		rec, env := do(t, app, http.MethodPatch, "/api/registrations/4/status", `{"status":"approved"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, dto.RegistrationNotFound, env.Error.Code)
	})
}

func TestBulkTransitionStatus(t *testing.T) {
	app, svc := newTestRouter(t, nil)
	svc.EXPECT().BulkTransitionStatus(gomock.Any(), []int64{1, 2, 999}, model.StatusRejected).Return(int64(2), nil)

	rec, env := do(t, app, http.MethodPatch, "/api/registrations/bulk/status", `{"ids":[1,"2",999],"status":"rejected"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"2 registrations updated successfully","updatedCount":2}`, string(env.Data))
}

func TestStatsOverview(t *testing.T) {
	app, svc := newTestRouter(t, nil)
	svc.EXPECT().StatsOverview(gomock.Any()).Return(&model.StatsOverview{
		Overview: model.StatusCounts{TotalRegistrations: 3, Submitted: 2, Approved: 1, NewThisWeek: 3},
		ByType:   []model.TypeCount{{RegistrationType: "speaker", Count: 2}},
	}, nil)

	rec, env := do(t, app, http.MethodGet, "/api/registrations/stats/overview", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var got model.StatsOverview
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, 2, got.Overview.Submitted)
	assert.Len(t, got.ByType, 1)
}

func TestDeleteRegistration(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		app, svc := newTestRouter(t, nil)
		svc.EXPECT().DeleteRegistration(gomock.Any(), int64(6)).Return(nil)

		rec, env := do(t, app, http.MethodDelete, "/api/registrations/6", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"message":"Registration deleted successfully","deletedId":6}`, string(env.Data))
	})

	t.Run("store failure is opaque", func(t *testing.T) {
		app, svc := newTestRouter(t, nil)
		svc.EXPECT().DeleteRegistration(gomock.Any(), int64(6)).Return(errors.New("pq: connection reset"))

		rec, env := do(t, app, http.MethodDelete, "/api/registrations/6", "")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, dto.ServiceUnavailable, env.Error.Code)
		assert.NotContains(t, env.Error.Desc, "pq")
	})
}

func TestUpdateRegistration(t *testing.T) {
	app, svc := newTestRouter(t, nil)
	svc.EXPECT().UpdateRegistration(gomock.Any(), int64(6), gomock.Any()).
		Return(&model.Registration{ID: 6, Email: "b@x.com"}, nil)

	rec, env := do(t, app, http.MethodPut, "/api/registrations/6", `{"firstName":"B","lastName":"C","email":"b@x.com","registrationType":"student"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var got dto.RegistrationResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "b@x.com", got.Registration.Email)
}

func TestHealthz(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		app, _ := newTestRouter(t, pingerFunc(func(context.Context) error { return nil }))

		rec, _ := do(t, app, http.MethodGet, "/healthz", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("database down", func(t *testing.T) {
		app, _ := newTestRouter(t, pingerFunc(func(context.Context) error { return errors.New("dial tcp: refused") }))

		rec, env := do(t, app, http.MethodGet, "/healthz", "")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, dto.ServiceUnavailable, env.Error.Code)
	})
}
