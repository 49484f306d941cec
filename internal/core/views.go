package core

import (
	"math"
	"sort"
	"strings"
	"time"
)

// Filter selects tasks for list views. All criteria are optional; an empty
// filter matches everything.
type Filter struct {
	// Status matches the stored status, or the derived overdue state when
	// set to "overdue".
	Status   string
	Priority string
	Category string
	// Search is matched case-insensitively against title and description.
	Search string
}

// FilterTasks returns the tasks matching f at the given instant.
func FilterTasks(tasks []Task, f Filter, now time.Time) []Task {
	var out []Task
	for _, t := range tasks {
		if f.Status != "" {
			if f.Status == string(StatusOverdue) {
				if !t.IsOverdue(now) {
					continue
				}
			} else if string(t.Status) != f.Status {
				continue
			}
		}
		if f.Priority != "" && string(t.Priority) != f.Priority {
			continue
		}
		if f.Category != "" && !strings.EqualFold(t.Category, f.Category) {
			continue
		}
		if f.Search != "" {
			q := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(t.Title), q) &&
				!strings.Contains(strings.ToLower(t.Description), q) {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

// SortMode selects the ordering of a task list.
type SortMode string

const (
	SortByCreated  SortMode = "createdAt"
	SortByDeadline SortMode = "deadline"
	SortByPriority SortMode = "priority"
	SortByUrgency  SortMode = "urgency"
)

// deadlineSentinel sorts tasks without a deadline after every dated task.
var deadlineSentinel = time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC)

// SortTasks orders tasks in place. Every mode sorts stably, so tasks that
// compare equal keep their original relative order.
func SortTasks(tasks []Task, mode SortMode, now time.Time) {
	switch mode {
	case SortByUrgency:
		sort.SliceStable(tasks, func(i, j int) bool {
			return Urgency(&tasks[i], now) > Urgency(&tasks[j], now)
		})
	case SortByDeadline:
		sort.SliceStable(tasks, func(i, j int) bool {
			return deadlineOrSentinel(&tasks[i]).Before(deadlineOrSentinel(&tasks[j]))
		})
	case SortByPriority:
		sort.SliceStable(tasks, func(i, j int) bool {
			return priorityOrdinal[tasks[i].Priority] > priorityOrdinal[tasks[j].Priority]
		})
	default:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		})
	}
}

func deadlineOrSentinel(t *Task) time.Time {
	if t.Deadline == nil {
		return deadlineSentinel
	}
	return *t.Deadline
}

// NotificationKind distinguishes deadline alerts.
type NotificationKind string

const (
	NoticeOverdue NotificationKind = "overdue"
	NoticeUrgent  NotificationKind = "urgent"
)

// Notification is a deadline alert for a single task.
type Notification struct {
	TaskID   string           `json:"taskId"`
	Title    string           `json:"title"`
	Kind     NotificationKind `json:"kind"`
	Deadline time.Time        `json:"deadline"`
}

// Notifications emits an alert for every non-completed task whose deadline
// has passed, or falls within the next 24 hours when the task is not
// low-priority. Tasks without a deadline never alert.
func Notifications(tasks []Task, now time.Time) []Notification {
	var out []Notification
	for _, t := range tasks {
		if t.Status == StatusCompleted || t.Deadline == nil {
			continue
		}
		until := t.Deadline.Sub(now)
		switch {
		case until < 0:
			out = append(out, Notification{TaskID: t.ID, Title: t.Title, Kind: NoticeOverdue, Deadline: *t.Deadline})
		case until < 24*time.Hour && t.Priority != PriorityLow:
			out = append(out, Notification{TaskID: t.ID, Title: t.Title, Kind: NoticeUrgent, Deadline: *t.Deadline})
		}
	}
	return out
}

// CategoryCount is one slice of the category breakdown.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
	Percent  int    `json:"percent"`
}

// CategoryBreakdown counts tasks per non-empty category and returns the topN
// largest, ties broken by first appearance in the input. Percentages are
// relative to the sum of the returned counts, not the full task set.
func CategoryBreakdown(tasks []Task, topN int) []CategoryCount {
	counts := make(map[string]int)
	var seen []string
	for _, t := range tasks {
		if t.Category == "" {
			continue
		}
		if _, ok := counts[t.Category]; !ok {
			seen = append(seen, t.Category)
		}
		counts[t.Category]++
	}

	out := make([]CategoryCount, 0, len(seen))
	for _, c := range seen {
		out = append(out, CategoryCount{Category: c, Count: counts[c]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}

	sum := 0
	for _, c := range out {
		sum += c.Count
	}
	if sum > 0 {
		for i := range out {
			out[i].Percent = int(math.Round(100 * float64(out[i].Count) / float64(sum)))
		}
	}
	return out
}
