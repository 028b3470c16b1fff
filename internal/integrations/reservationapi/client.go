package reservationapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SMC-RoomReservations/internal/availability"
	"github.com/m04kA/SMC-RoomReservations/internal/domain"
	"github.com/m04kA/SMC-RoomReservations/pkg/types"
)

const checkPath = "/api/v1/reservations/availability"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент сервиса броней, реализует availability.Checker
type Client struct {
	baseURL    string
	personID   int64
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента
// personID передаётся в заголовке X-User-ID
func NewClient(baseURL string, personID int64, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:  baseURL,
		personID: personID,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Check запрашивает у сервиса, свободен ли слот
func (c *Client) Check(ctx context.Context, candidate availability.Candidate) (availability.Verdict, error) {
	body := CheckRequest{
		RoomID:    candidate.RoomID,
		Date:      candidate.Date.Format(domain.DateFormat),
		StartTime: candidate.StartTime.String(),
		EndTime:   candidate.EndTime.String(),
	}
	if candidate.ExcludeID != 0 {
		body.ExcludeID = &candidate.ExcludeID
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return availability.Verdict{}, fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+checkPath, bytes.NewReader(payload))
	if err != nil {
		return availability.Verdict{}, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", strconv.FormatInt(c.personID, 10))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return availability.Verdict{}, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		var e errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return availability.Verdict{}, fmt.Errorf("%w: %s", domain.ErrInvalidInterval, e.Error)
	default:
		raw, _ := io.ReadAll(resp.Body)
		return availability.Verdict{}, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}

	var out CheckResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return availability.Verdict{}, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if out.Available {
		return availability.Available(), nil
	}
	if out.Conflict == nil {
		return availability.Verdict{}, fmt.Errorf("%w: conflict without details", ErrInvalidResponse)
	}

	info, err := toConflictInfo(out.Conflict)
	if err != nil {
		return availability.Verdict{}, err
	}
	c.log.Info("Room id=%d is taken by reservation id=%d", candidate.RoomID, info.ReservationID)
	return availability.Conflicting(info), nil
}

func toConflictInfo(c *Conflict) (*availability.ConflictInfo, error) {
	date, err := time.Parse(domain.DateFormat, c.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid conflict date: %v", ErrInvalidResponse, err)
	}
	start, err := types.NewTimeStringFromString(c.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid conflict start: %v", ErrInvalidResponse, err)
	}
	end, err := types.NewTimeStringFromString(c.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid conflict end: %v", ErrInvalidResponse, err)
	}

	return &availability.ConflictInfo{
		ReservationID: c.ReservationID,
		RoomID:        c.RoomID,
		RoomName:      c.RoomName,
		Date:          date,
		StartTime:     start,
		EndTime:       end,
		State:         domain.ReservationState(c.State),
	}, nil
}
