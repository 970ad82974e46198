package stats

import (
	"time"

	"taskdeck/internal/model"
)

// DailyStats is a derived snapshot of a user's task list. It is recomputed from the
// full collection on every request and never persisted.
type DailyStats struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
	Overdue   int `json:"overdue"`
	Upcoming  int `json:"upcoming"`
}

// ComputeDaily aggregates tasks relative to now. A task is overdue when its due date
// falls strictly before today and it is not completed; upcoming when its due date falls
// on tomorrow and it is not completed. Due dates are compared at day granularity.
func ComputeDaily(tasks []model.Task, now time.Time) DailyStats {
	s := DailyStats{Total: len(tasks)}

	today := truncateToDay(now)
	tomorrow := today.AddDate(0, 0, 1)

	for _, task := range tasks {
		if task.Status == model.StatusCompleted {
			s.Completed++
			continue
		}
		if task.DueDate == nil {
			continue
		}
		due := truncateToDay(*task.DueDate)
		if due.Before(today) {
			s.Overdue++
		} else if due.Equal(tomorrow) {
			s.Upcoming++
		}
	}
	return s
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
