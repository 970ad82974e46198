package model

import "strings"

// StatusFilterAll disables status filtering.
const StatusFilterAll = "all"

// FilterTasks narrows tasks by a case-insensitive substring query over title and
// description, and by status. An empty query matches everything; status "all" or ""
// matches every status. The input slice is never mutated.
func FilterTasks(tasks []Task, query string, status string) []Task {
	filtered := make([]Task, 0, len(tasks))
	q := strings.ToLower(query)

	for _, task := range tasks {
		if q != "" && !matchesQuery(task, q) {
			continue
		}
		if status != "" && status != StatusFilterAll && string(task.Status) != status {
			continue
		}
		filtered = append(filtered, task)
	}
	return filtered
}

func matchesQuery(task Task, q string) bool {
	if strings.Contains(strings.ToLower(task.Title), q) {
		return true
	}
	return task.Description != nil && strings.Contains(strings.ToLower(*task.Description), q)
}
