// roomcheck проверяет занятость комнаты через сервис броней так же, как форма бронирования:
// каждая строка stdin меняет кандидата, проверка уходит после паузы debounce,
// устаревшие ответы отбрасываются.
//
// Формат строки: <roomId> <YYYY-MM-DD> <HH:MM> <HH:MM> [excludeId]
// Префикс "submit " выполняет проверку сразу, без debounce.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-RoomReservations/internal/availability"
	"github.com/m04kA/SMC-RoomReservations/internal/config"
	"github.com/m04kA/SMC-RoomReservations/internal/domain"
	"github.com/m04kA/SMC-RoomReservations/internal/integrations/reservationapi"
	"github.com/m04kA/SMC-RoomReservations/pkg/logger"
	"github.com/m04kA/SMC-RoomReservations/pkg/types"
)

const submitPrefix = "submit "

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "адрес сервиса броней")
	userID := flag.Int64("user", 1, "ID пользователя для заголовка X-User-ID")
	debounce := flag.Duration("debounce", availability.DefaultDebounce, "пауза перед живой проверкой")
	timeout := flag.Duration("timeout", 5*time.Second, "таймаут HTTP запроса")
	logLevel := flag.String("log-level", "warn", "уровень логирования")
	configPath := flag.String("config", "", "config.toml сервиса: debounce и ограничения длительности берутся из него")
	flag.Parse()

	log, err := logger.New("", *logLevel)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	opts := []availability.Option{
		availability.WithDebounce(*debounce),
		availability.WithCheckTimeout(*timeout),
		availability.WithLogger(log),
	}
	if *configPath != "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Fatal("Failed to load config: %v", err)
		}
		opts = append(opts,
			availability.WithDebounce(cfg.Reservations.LiveCheckDebounceDuration()),
			availability.WithPolicy(domain.IntervalPolicy{
				MinDurationMinutes: cfg.Reservations.MinDurationMinutes,
				MaxDurationMinutes: cfg.Reservations.MaxDurationMinutes,
			}),
		)
	}

	client := reservationapi.NewClient(*baseURL, *userID, *timeout, log)
	coordinator := availability.NewCoordinator(client, opts...)
	defer coordinator.Close()

	coordinator.Subscribe(func(v availability.View) {
		fmt.Println(renderView(v))
	})

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			coordinator.Clear()
			continue
		}

		submit := strings.HasPrefix(line, submitPrefix)
		candidate, err := parseCandidate(strings.TrimPrefix(line, submitPrefix))
		if err != nil {
			fmt.Printf("! %v\n", err)
			continue
		}

		if submit {
			verdict, err := coordinator.SubmitCheck(context.Background(), candidate)
			if err != nil {
				fmt.Printf("submit: error: %v\n", err)
				continue
			}
			fmt.Printf("submit: %s\n", renderVerdict(verdict))
			continue
		}

		go func(out <-chan availability.Outcome) {
			o := <-out
			if o.Kind == availability.OutcomeSkipped {
				fmt.Printf("skipped: %v\n", o.Err)
			}
		}(coordinator.RequestCheck(candidate))
	}

	if err := scanner.Err(); err != nil {
		log.Error("Failed to read stdin: %v", err)
	}
}

func parseCandidate(line string) (availability.Candidate, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 && len(fields) != 5 {
		return availability.Candidate{}, fmt.Errorf("expected <roomId> <date> <start> <end> [excludeId], got %q", line)
	}

	roomID, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return availability.Candidate{}, fmt.Errorf("invalid room id %q", fields[0])
	}
	date, err := time.Parse(domain.DateFormat, fields[1])
	if err != nil {
		return availability.Candidate{}, fmt.Errorf("invalid date %q", fields[1])
	}
	start, err := types.NewTimeStringFromString(fields[2])
	if err != nil {
		return availability.Candidate{}, fmt.Errorf("invalid start %q", fields[2])
	}
	end, err := types.NewTimeStringFromString(fields[3])
	if err != nil {
		return availability.Candidate{}, fmt.Errorf("invalid end %q", fields[3])
	}

	candidate := availability.Candidate{RoomID: roomID, Date: date, StartTime: start, EndTime: end}
	if len(fields) == 5 {
		if candidate.ExcludeID, err = strconv.ParseInt(fields[4], 10, 64); err != nil {
			return availability.Candidate{}, fmt.Errorf("invalid exclude id %q", fields[4])
		}
	}
	return candidate, nil
}

func renderView(v availability.View) string {
	switch v.Status {
	case availability.StatusConflict:
		return fmt.Sprintf("[%d] %s", v.Seq, renderConflict(v.Conflict))
	case availability.StatusError:
		return fmt.Sprintf("[%d] error: %v", v.Seq, v.Err)
	default:
		return fmt.Sprintf("[%d] %s", v.Seq, v.Status)
	}
}

func renderVerdict(v availability.Verdict) string {
	if v.Available {
		return string(availability.StatusAvailable)
	}
	return renderConflict(v.Conflict)
}

func renderConflict(c *availability.ConflictInfo) string {
	if c == nil {
		return string(availability.StatusConflict)
	}
	return fmt.Sprintf("conflict: %s %s %s-%s reservation id=%d (%s)",
		c.RoomName, c.Date.Format(domain.DateFormat), c.StartTime, c.EndTime, c.ReservationID, c.State)
}
