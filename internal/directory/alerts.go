package directory

import (
	"fmt"
	"time"

	"github.com/btxtech/prontuario/internal/record"
)

// Alert levels.
const (
	LevelInfo = "info"
	LevelWarn = "warn"
)

// Alert is a short per-patient notice surfaced next to the roster.
type Alert struct {
	Level   string
	Message string
}

const staleAfterDays = 180

const msPerDay = int64(24 * time.Hour / time.Millisecond)

// Alerts derives the notices for one patient from its timeline.
// events must be newest first; now is epoch ms. Pure function.
func Alerts(events []record.Event, now int64) []Alert {
	if len(events) == 0 {
		return []Alert{{Level: LevelWarn, Message: "sem histórico"}}
	}

	alerts := []Alert{}
	if days := (now - events[0].CreatedAt) / msPerDay; days > staleAfterDays {
		alerts = append(alerts, Alert{
			Level:   LevelWarn,
			Message: fmt.Sprintf("último registro: %dd", days),
		})
	}
	for _, ev := range events {
		if ev.Type == record.TypeRX {
			date := time.UnixMilli(ev.CreatedAt).UTC().Format("02/01/2006")
			alerts = append(alerts, Alert{
				Level:   LevelInfo,
				Message: "última receita: " + date,
			})
			break
		}
	}
	return alerts
}

// PatientAlerts resolves the alerts for one roster entry from the
// session's event projection.
func (s *Session) PatientAlerts(patientID string) []Alert {
	timeline := []record.Event{}
	for _, ev := range s.Events {
		if ev.PatientID == patientID {
			timeline = append(timeline, ev)
		}
	}
	return Alerts(timeline, s.clock.Now())
}
