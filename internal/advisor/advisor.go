// Package advisor produces prioritized recommendations, daily schedules,
// and task configuration suggestions from a snapshot of the task list.
//
// Two engines implement the Advisor interface: RuleEngine, a deterministic
// scoring and template engine, and OpenAIAdvisor, which delegates priority
// analysis to a chat-completions provider and falls back to the rules on any
// failure. Which engine serves a session is a configuration decision; call
// sites are unaffected.
package advisor

import (
	"context"
	"time"

	"github.com/harichandramathi27/AI-Smart-productivity-platform/internal/core"
)

// Advisor analyzes tasks without mutating them.
type Advisor interface {
	// AnalyzePriorities ranks the non-completed tasks and returns at most
	// three recommendations plus a summary insight.
	AnalyzePriorities(ctx context.Context, tasks []core.Task) (*PriorityAnalysis, error)

	// GenerateDailyPlan lays the top non-completed tasks into time blocks
	// for a single working day.
	GenerateDailyPlan(ctx context.Context, tasks []core.Task) (*DailyPlan, error)

	// SuggestTask proposes a priority, time estimate, and working tip for a
	// task described only by its title and description.
	SuggestTask(ctx context.Context, title, description string) (*Suggestion, error)
}

// Recommendation is one ranked entry of a priority analysis.
type Recommendation struct {
	TaskID        string `json:"taskId"`
	TaskTitle     string `json:"taskTitle"`
	Rank          int    `json:"rank"`
	Reason        string `json:"reason"`
	SuggestedTime string `json:"suggestedTime"`
}

// PriorityAnalysis is the result of AnalyzePriorities.
type PriorityAnalysis struct {
	Recommendations []Recommendation `json:"recommendations"`
	Insight         string           `json:"insight"`
	GeneratedAt     time.Time        `json:"generatedAt"`
}

// TimeBlock is a scheduled interval of the daily plan assigned to one task.
type TimeBlock struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Task      string `json:"task"`
	TaskID    string `json:"taskId"`
	Label     string `json:"label"`
	Emoji     string `json:"emoji"`
	Tip       string `json:"tip"`
}

// DailyPlan is the result of GenerateDailyPlan.
type DailyPlan struct {
	TimeBlocks       []TimeBlock `json:"timeBlocks"`
	TotalFocusHours  float64     `json:"totalFocusHours"`
	ProductivityTips []string    `json:"productivityTips"`
	GeneratedAt      time.Time   `json:"generatedAt"`
}

// Suggestion is the result of SuggestTask.
type Suggestion struct {
	Priority       core.Priority `json:"priority"`
	EstimatedHours float64       `json:"estimatedHours"`
	Tip            string        `json:"tip"`
	Confidence     float64       `json:"confidence"`
}
