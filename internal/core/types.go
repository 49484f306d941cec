package core

import (
	"encoding/json"
	"time"
)

// Priority is the stored importance level of a task.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Valid reports whether p is one of the four known priority levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Status is the stored lifecycle state of a task. "overdue" is never stored;
// it is a display state derived from the deadline at read time.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"

	// StatusOverdue is display-only, produced by Task.DisplayStatus.
	StatusOverdue Status = "overdue"
)

// Valid reports whether s is a storable status value.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// DefaultEstimatedHours is assumed when a task carries no estimate.
const DefaultEstimatedHours = 2.0

// Task is a single unit of work tracked by the platform.
type Task struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Deadline       *time.Time `json:"deadline,omitempty"`
	Priority       Priority   `json:"priority"`
	Status         Status     `json:"status"`
	Category       string     `json:"category,omitempty"`
	EstimatedHours float64    `json:"estimatedHours,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      *time.Time `json:"updatedAt,omitempty"`
}

// IsOverdue reports whether the task's deadline has passed and the task is
// not completed. Tasks without a deadline are never overdue.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.Deadline == nil || t.Status == StatusCompleted {
		return false
	}
	return t.Deadline.Before(now)
}

// DisplayStatus returns the status to show a user: the stored status,
// overridden with "overdue" when the deadline has passed.
func (t *Task) DisplayStatus(now time.Time) Status {
	if t.IsOverdue(now) {
		return StatusOverdue
	}
	return t.Status
}

// EffortHours returns the task's time estimate, falling back to the default
// when none was recorded.
func (t *Task) EffortHours() float64 {
	if t.EstimatedHours <= 0 {
		return DefaultEstimatedHours
	}
	return t.EstimatedHours
}

// Draft is the payload for creating a task, before the store assigns
// an ID and creation timestamp.
type Draft struct {
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Deadline       *time.Time `json:"deadline"`
	Priority       Priority   `json:"priority"`
	Status         Status     `json:"status"`
	Category       string     `json:"category"`
	EstimatedHours float64    `json:"estimatedHours"`
}

// Patch is a partial task update. Nil fields are left untouched; the record's
// ID and CreatedAt can never be changed through a patch. The deadline is the
// one field a caller can set back to nothing, so it tracks key presence: an
// explicit JSON null clears the stored deadline, an absent key leaves it.
type Patch struct {
	Title          *string    `json:"title"`
	Description    *string    `json:"description"`
	Deadline       *time.Time `json:"deadline"`
	Priority       *Priority  `json:"priority"`
	Status         *Status    `json:"status"`
	Category       *string    `json:"category"`
	EstimatedHours *float64   `json:"estimatedHours"`

	// DeadlineSet records that the deadline key appeared in the payload,
	// even as null. Set it directly when building a Patch in code to clear
	// a deadline.
	DeadlineSet bool `json:"-"`
}

// UnmarshalJSON distinguishes a null deadline from an absent one.
func (p *Patch) UnmarshalJSON(data []byte) error {
	type patch Patch
	var raw patch
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}

	*p = Patch(raw)
	_, p.DeadlineSet = keys["deadline"]
	return nil
}

// Stats summarizes the current task collection.
type Stats struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Overdue    int `json:"overdue"`
	Progress   int `json:"progress"` // completed share of total, whole percent
}
