package get_monthly_report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/m04kA/SMC-RoomReservations/internal/domain"
	"github.com/m04kA/SMC-RoomReservations/internal/report"
)

var csvHeader = []string{
	"kind", "team", "area", "person_id", "person",
	"reservation_id", "room", "date", "start", "end", "shared_with",
	"participation_pct", "hours", "cost",
}

// writeCSV пишет развёрнутые строки отчёта
func writeCSV(w io.Writer, rows []report.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, row := range rows {
		if err := cw.Write(csvRecord(row)); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func csvRecord(row report.Row) []string {
	record := []string{
		string(row.Kind), row.Team, row.Area, "", row.Person,
		"", row.RoomName, "", row.StartTime.String(), row.EndTime.String(), row.SharedWith,
		"", money(row.Amount.CentiHours), money(row.Amount.CostCents),
	}
	if row.PersonID != 0 {
		record[3] = strconv.FormatInt(row.PersonID, 10)
	}
	if row.Kind == report.RowReservation {
		record[5] = strconv.FormatInt(row.ReservationID, 10)
		record[7] = row.Date.Format(domain.DateFormat)
		record[11] = money(row.ParticipationBP)
	}
	return record
}

// money форматирует сотые доли без float: 667 -> "6.67"
func money(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	frac := strconv.FormatInt(v%100, 10)
	if len(frac) == 1 {
		frac = "0" + frac
	}
	return sign + strconv.FormatInt(v/100, 10) + "." + frac
}
