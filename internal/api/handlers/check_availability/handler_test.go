package check_availability

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomReservations/internal/availability"
	"github.com/m04kA/SMC-RoomReservations/internal/domain"
	"github.com/m04kA/SMC-RoomReservations/internal/integrations/reservationapi"
	checkAvailability "github.com/m04kA/SMC-RoomReservations/internal/usecase/check_availability"
	"github.com/m04kA/SMC-RoomReservations/pkg/logger"
)

type fakeChecker struct {
	checkFunc func(ctx context.Context, candidate availability.Candidate) (availability.Verdict, error)
}

func (f *fakeChecker) Check(ctx context.Context, candidate availability.Candidate) (availability.Verdict, error) {
	return f.checkFunc(ctx, candidate)
}

func do(checker *fakeChecker, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations/availability", strings.NewReader(body))
	rec := httptest.NewRecorder()
	NewHandler(checker, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle_Conflict(t *testing.T) {
	var got availability.Candidate
	checker := &fakeChecker{checkFunc: func(ctx context.Context, c availability.Candidate) (availability.Verdict, error) {
		got = c
		return availability.Conflicting(&availability.ConflictInfo{
			ReservationID: 4,
			RoomID:        1,
			RoomName:      "Sala A",
			Date:          c.Date,
			StartTime:     "09:00",
			EndTime:       "10:00",
			State:         domain.StateAccepted,
		}), nil
	}}

	rec := do(checker, `{"roomId":1,"date":"2024-03-05","startTime":"09:30","endTime":"10:30","excludeId":8}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(8), got.ExcludeID)
	assert.True(t, got.Date.Equal(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)))

	// ответ читается клиентом reservationapi
	var body reservationapi.CheckResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Available)
	require.NotNil(t, body.Conflict)
	assert.Equal(t, int64(4), body.Conflict.ReservationID)
	assert.Equal(t, "Sala A", body.Conflict.RoomName)
	assert.Equal(t, "accepted", body.Conflict.State)
}

func TestHandle_Available(t *testing.T) {
	checker := &fakeChecker{checkFunc: func(ctx context.Context, c availability.Candidate) (availability.Verdict, error) {
		return availability.Available(), nil
	}}

	rec := do(checker, `{"roomId":1,"date":"2024-03-05","startTime":"10:00","endTime":"11:00"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"available":true}`, rec.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	valid := `{"roomId":1,"date":"2024-03-05","startTime":"10:00","endTime":"11:00"}`
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{"missing fields", `{"roomId":1}`, nil, http.StatusBadRequest},
		{"bad date", `{"roomId":1,"date":"2024/03/05","startTime":"10:00","endTime":"11:00"}`, nil, http.StatusBadRequest},
		{"invalid interval", valid, domain.ErrInvalidInterval, http.StatusUnprocessableEntity},
		{"room not found", valid, checkAvailability.ErrRoomNotFound, http.StatusNotFound},
		{"internal", valid, errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := &fakeChecker{checkFunc: func(ctx context.Context, c availability.Candidate) (availability.Verdict, error) {
				return availability.Verdict{}, tt.err
			}}

			rec := do(checker, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
