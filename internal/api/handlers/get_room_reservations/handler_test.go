package get_room_reservations

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-RoomReservations/internal/service/reservations"
	"github.com/m04kA/SMC-RoomReservations/internal/service/reservations/models"
	"github.com/m04kA/SMC-RoomReservations/pkg/logger"
)

type fakeService struct {
	listFunc func(ctx context.Context, roomID int64, date time.Time) (*models.ReservationListResponse, error)
}

func (f *fakeService) ListRoomDay(ctx context.Context, roomID int64, date time.Time) (*models.ReservationListResponse, error) {
	return f.listFunc(ctx, roomID, date)
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name       string
		roomID     string
		date       string
		err        error
		wantStatus int
	}{
		{"ok", "1", "2024-03-05", nil, http.StatusOK},
		{"bad room", "x", "2024-03-05", nil, http.StatusBadRequest},
		{"missing date", "1", "", nil, http.StatusBadRequest},
		{"room not found", "1", "2024-03-05", reservations.ErrRoomNotFound, http.StatusNotFound},
		{"internal", "1", "2024-03-05", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{listFunc: func(ctx context.Context, roomID int64, date time.Time) (*models.ReservationListResponse, error) {
				assert.Equal(t, "2024-03-05", date.Format("2006-01-02"))
				if tt.err != nil {
					return nil, tt.err
				}
				return &models.ReservationListResponse{Reservations: []models.ReservationResponse{{ID: 1, RoomID: roomID}}}, nil
			}}

			req := httptest.NewRequest(http.MethodGet, "/api/v1/rooms/"+tt.roomID+"/reservations?date="+tt.date, nil)
			req = mux.SetURLVars(req, map[string]string{"roomId": tt.roomID})
			rec := httptest.NewRecorder()
			NewHandler(svc, logger.NewNop()).Handle(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
