package core

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DemoDrafts returns the built-in demo tasks, with deadlines placed later
// today relative to now.
func DemoDrafts(now time.Time) []Draft {
	at := func(hour int) *time.Time {
		d := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
		return &d
	}
	return []Draft{
		{
			Title:          "Design System Architecture",
			Description:    "Plan microservices and API gateway patterns",
			Deadline:       at(17),
			Priority:       PriorityCritical,
			Status:         StatusInProgress,
			Category:       "Engineering",
			EstimatedHours: 4,
		},
		{
			Title:          "Q4 Marketing Report",
			Description:    "Compile analytics for board presentation",
			Deadline:       at(12),
			Priority:       PriorityHigh,
			Status:         StatusPending,
			Category:       "Marketing",
			EstimatedHours: 3,
		},
		{
			Title:          "Budget Planning FY2025",
			Description:    "Departmental budget proposals and resource allocation",
			Deadline:       at(16),
			Priority:       PriorityCritical,
			Status:         StatusPending,
			Category:       "Finance",
			EstimatedHours: 6,
		},
	}
}

// seedFile is the on-disk shape of a task seed file.
type seedFile struct {
	Tasks []seedTask `yaml:"tasks"`
}

type seedTask struct {
	Title          string     `yaml:"title"`
	Description    string     `yaml:"description"`
	Deadline       *time.Time `yaml:"deadline"`
	Priority       string     `yaml:"priority"`
	Status         string     `yaml:"status"`
	Category       string     `yaml:"category"`
	EstimatedHours float64    `yaml:"estimated_hours"`
}

// LoadSeedFile reads task drafts from a YAML file:
//
//	tasks:
//	  - title: "Ship release notes"
//	    priority: high
//	    category: Docs
//	    estimated_hours: 1.5
func LoadSeedFile(path string) ([]Draft, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	drafts := make([]Draft, 0, len(f.Tasks))
	for _, t := range f.Tasks {
		drafts = append(drafts, Draft{
			Title:          t.Title,
			Description:    t.Description,
			Deadline:       t.Deadline,
			Priority:       Priority(t.Priority),
			Status:         Status(t.Status),
			Category:       t.Category,
			EstimatedHours: t.EstimatedHours,
		})
	}
	return drafts, nil
}
