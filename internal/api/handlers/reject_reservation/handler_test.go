package reject_reservation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomReservations/internal/api/middleware"
	"github.com/m04kA/SMC-RoomReservations/internal/domain"
	"github.com/m04kA/SMC-RoomReservations/internal/service/reservations"
	"github.com/m04kA/SMC-RoomReservations/internal/service/reservations/models"
	"github.com/m04kA/SMC-RoomReservations/pkg/logger"
)

type fakeService struct {
	rejectFunc func(ctx context.Context, id int64, actor domain.Actor, reason string) (*models.ReservationResponse, error)
}

func (f *fakeService) Reject(ctx context.Context, id int64, actor domain.Actor, reason string) (*models.ReservationResponse, error) {
	return f.rejectFunc(ctx, id, actor, reason)
}

func do(svc *fakeService, id, body string, withActor bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations/"+id+"/reject", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"reservationId": id})
	if withActor {
		req = req.WithContext(middleware.WithActor(req.Context(), domain.NewActor(7, domain.ActionApprove)))
	}
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle_Rejected(t *testing.T) {
	var gotReason string
	svc := &fakeService{rejectFunc: func(ctx context.Context, id int64, actor domain.Actor, reason string) (*models.ReservationResponse, error) {
		gotReason = reason
		assert.Equal(t, int64(5), id)
		assert.True(t, actor.Can(domain.ActionApprove))
		return &models.ReservationResponse{ID: 5, State: string(domain.StateRejected)}, nil
	}}

	rec := do(svc, "5", `{"reason":"room is under repair"}`, true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "room is under repair", gotReason)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "rejected", body["state"])
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		body       string
		withActor  bool
		err        error
		wantStatus int
	}{
		{"bad id", "abc", `{"reason":"x"}`, true, nil, http.StatusBadRequest},
		{"no actor", "5", `{"reason":"x"}`, false, nil, http.StatusUnauthorized},
		{"missing reason", "5", `{}`, true, nil, http.StatusBadRequest},
		{"empty body", "5", ``, true, nil, http.StatusBadRequest},
		{"not found", "5", `{"reason":"x"}`, true, reservations.ErrReservationNotFound, http.StatusNotFound},
		{"forbidden", "5", `{"reason":"x"}`, true, fmt.Errorf("%w: approve required", domain.ErrForbidden), http.StatusForbidden},
		{"already decided", "5", `{"reason":"x"}`, true, domain.ErrInvalidTransition, http.StatusConflict},
		{"blank reason", "5", `{"reason":"   "}`, true, domain.ErrReasonRequired, http.StatusBadRequest},
		{"internal", "5", `{"reason":"x"}`, true, errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			svc := &fakeService{rejectFunc: func(ctx context.Context, id int64, actor domain.Actor, reason string) (*models.ReservationResponse, error) {
				called = true
				return nil, tt.err
			}}

			rec := do(svc, tt.id, tt.body, tt.withActor)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.err != nil, called)
		})
	}
}
