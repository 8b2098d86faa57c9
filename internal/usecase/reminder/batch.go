package reminder

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/medcare-api/internal/audit"
	"github.com/BruksfildServices01/medcare-api/internal/reminder"
)

func recordBatch(a *audit.Dispatcher, entity string, s reminder.Summary) {
	if s.Attempted == 0 {
		return
	}
	a.Dispatch(audit.Event{
		Action: "reminders_dispatched",
		Entity: entity,
		Metadata: map[string]any{
			"batch_id":  s.BatchID,
			"succeeded": s.Succeeded,
			"failed":    s.Failed,
		},
	})
}

func leadLabel(offset time.Duration) string {
	if offset%time.Hour == 0 {
		h := int(offset / time.Hour)
		if h == 1 {
			return "1 hora"
		}
		return fmt.Sprintf("%d horas", h)
	}
	return fmt.Sprintf("%d minutos", int(offset/time.Minute))
}
