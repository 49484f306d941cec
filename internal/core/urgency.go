package core

import (
	"fmt"
	"time"
)

// priorityScore is the priority contribution to the urgency score.
var priorityScore = map[Priority]int{
	PriorityCritical: 100,
	PriorityHigh:     75,
	PriorityMedium:   50,
	PriorityLow:      25,
}

// priorityOrdinal orders priorities for priority-mode sorting.
var priorityOrdinal = map[Priority]int{
	PriorityCritical: 4,
	PriorityHigh:     3,
	PriorityMedium:   2,
	PriorityLow:      1,
}

// Urgency combines the task's priority weight with its deadline proximity.
// A task without a deadline contributes only its priority weight, independent
// of the current time. Already-overdue deadlines score highest.
func Urgency(t *Task, now time.Time) int {
	score := priorityScore[t.Priority]
	if t.Deadline == nil {
		return score
	}

	h := t.Deadline.Sub(now).Hours()
	switch {
	case h < 0:
		score += 200
	case h < 24:
		score += 150
	case h < 72:
		score += 100
	case h < 168:
		score += 50
	}
	return score
}

// FormatDeadline renders a deadline relative to now for human-facing text:
// "overdue by 2d", "5h left", "3d left", or a calendar date when more than
// a week out.
func FormatDeadline(t *Task, now time.Time) string {
	if t.Deadline == nil {
		return "no deadline"
	}

	hours := int(t.Deadline.Sub(now).Hours())
	if hours < 0 {
		days := (-hours + 23) / 24
		return fmt.Sprintf("overdue by %dd", days)
	}
	if hours < 24 {
		return fmt.Sprintf("%dh left", hours)
	}
	days := hours / 24
	if days <= 7 {
		return fmt.Sprintf("%dd left", days)
	}
	return t.Deadline.Format("Jan 02")
}
