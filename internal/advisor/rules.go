package advisor

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/harichandramathi27/AI-Smart-productivity-platform/internal/core"
)

const planStartHour = 9.0

var rankReasons = [3]string{
	"🔥 Highest urgency: %s priority with deadline %s. Clear your schedule and start now.",
	"⚡ Second priority: Significant impact on project timeline. Schedule immediately after task #1.",
	"📋 Third priority: Important but manageable. Block time this afternoon.",
}

var rankWindows = [3]string{
	"9:00 AM – 11:00 AM",
	"11:30 AM – 1:00 PM",
	"2:00 PM – 4:00 PM",
}

var blockTemplates = [4]struct {
	label string
	emoji string
	tip   string
}{
	{"Deep Work Block", "🧠", "Silence all notifications. Use 90-min focus sprints with 10-min breaks."},
	{"Collaborative Focus", "🤝", "Schedule any needed syncs at the start. Batch async updates after."},
	{"Creative Session", "✨", "Start with a 5-min freewrite. Suspend self-editing until a complete draft exists."},
	{"Review & Polish", "🔍", "Work through a checklist. Document progress for tomorrow's handoff."},
}

var productivityTips = []string{
	"🌅 Your peak cognitive performance occurs 9–11 AM. Front-load your most demanding task.",
	"⏰ Apply the 2-minute rule: tasks under 2 minutes get done immediately, not scheduled.",
	"🎯 Limit daily MIT (Most Important Tasks) to exactly 3 for maximum execution clarity.",
	"🔋 Insert a 15-min walk at 3 PM to counteract the post-lunch circadian energy dip.",
	"📵 Batch communications (Slack, email) to 3 fixed windows: 10 AM, 1 PM, and 4 PM.",
}

type suggestRule struct {
	keywords   []string
	priority   core.Priority
	hours      float64
	tip        string
	confidence float64
}

// Ordered; the first rule with any keyword present wins.
var suggestRules = []suggestRule{
	{
		keywords:   []string{"finance", "budget", "report", "invoice", "payroll", "audit"},
		priority:   core.PriorityCritical,
		hours:      4,
		tip:        "Gather all data sources before starting. Book 2h uninterrupted blocks.",
		confidence: 0.92,
	},
	{
		keywords:   []string{"engineer", "architecture", "code", "design", "system", "deploy", "infra"},
		priority:   core.PriorityHigh,
		hours:      3,
		tip:        "Break into vertical slices. Time-box at 90-min intervals.",
		confidence: 0.88,
	},
	{
		keywords:   []string{"market", "campaign", "content", "brand", "seo"},
		priority:   core.PriorityMedium,
		hours:      2.5,
		tip:        "Review competitor analysis first. Batch similar tasks for flow state.",
		confidence: 0.85,
	},
}

var defaultSuggestion = Suggestion{
	Priority:       core.PriorityMedium,
	EstimatedHours: 2,
	Tip:            "Define a clear 'done' criteria before starting. Schedule a checkpoint at the halfway mark.",
	Confidence:     0.70,
}

// RuleEngine derives recommendations from urgency scoring and fixed
// templates. It is deterministic given the task list and the clock.
type RuleEngine struct {
	// ThinkDelay simulates provider latency before each result. Zero means
	// respond immediately.
	ThinkDelay time.Duration

	clock func() time.Time
}

// NewRuleEngine creates a rule-based advisor.
func NewRuleEngine(thinkDelay time.Duration) *RuleEngine {
	return &RuleEngine{
		ThinkDelay: thinkDelay,
		clock:      time.Now,
	}
}

// think waits out the simulated latency, or returns early when the caller's
// context is cancelled so a torn-down session never receives a result.
func (e *RuleEngine) think(ctx context.Context) error {
	if e.ThinkDelay <= 0 {
		return nil
	}
	timer := time.NewTimer(e.ThinkDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// activeByUrgency returns the non-completed tasks ranked by urgency,
// highest first. The sort is stable, so equal scores keep input order.
func activeByUrgency(tasks []core.Task, now time.Time) []core.Task {
	var active []core.Task
	for _, t := range tasks {
		if t.Status != core.StatusCompleted {
			active = append(active, t)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return core.Urgency(&active[i], now) > core.Urgency(&active[j], now)
	})
	return active
}

// AnalyzePriorities ranks the active tasks and returns the top three with
// templated reasons and suggested working windows.
func (e *RuleEngine) AnalyzePriorities(ctx context.Context, tasks []core.Task) (*PriorityAnalysis, error) {
	if err := e.think(ctx); err != nil {
		return nil, err
	}

	now := e.clock()
	active := activeByUrgency(tasks, now)

	var recs []Recommendation
	for i, t := range active {
		if i >= len(rankReasons) {
			break
		}
		reason := rankReasons[i]
		if i == 0 {
			reason = fmt.Sprintf(reason, t.Priority, core.FormatDeadline(&t, now))
		}
		recs = append(recs, Recommendation{
			TaskID:        t.ID,
			TaskTitle:     t.Title,
			Rank:          i + 1,
			Reason:        reason,
			SuggestedTime: rankWindows[i],
		})
	}

	criticalCount := 0
	totalHours := 0.0
	for _, t := range active {
		if t.Priority == core.PriorityCritical {
			criticalCount++
		}
		totalHours += t.EffortHours()
	}

	insight := fmt.Sprintf(
		"You have %d active tasks with %d marked critical. Estimated %.1fh of focused work. "+
			"I recommend addressing the top 3 priorities before 4 PM today.",
		len(active), criticalCount, totalHours,
	)

	return &PriorityAnalysis{
		Recommendations: recs,
		Insight:         insight,
		GeneratedAt:     now,
	}, nil
}

// GenerateDailyPlan schedules the four most urgent active tasks into
// sequential time blocks starting at 9:00, with a one-hour break after the
// second block. Block starts advance by whole hours; fractional estimates
// still render their exact end minute.
func (e *RuleEngine) GenerateDailyPlan(ctx context.Context, tasks []core.Task) (*DailyPlan, error) {
	if err := e.think(ctx); err != nil {
		return nil, err
	}

	now := e.clock()
	active := activeByUrgency(tasks, now)
	if len(active) > 4 {
		active = active[:4]
	}

	blocks := make([]TimeBlock, 0, len(active))
	current := planStartHour
	totalHours := 0.0
	for i, t := range active {
		dur := t.EffortHours()
		totalHours += dur

		tpl := blockTemplates[i%len(blockTemplates)]
		blocks = append(blocks, TimeBlock{
			StartTime: clockLabel(current),
			EndTime:   clockLabel(current + dur),
			Task:      t.Title,
			TaskID:    t.ID,
			Label:     tpl.label,
			Emoji:     tpl.emoji,
			Tip:       tpl.tip,
		})

		current += math.Ceil(dur)
		if i == 1 {
			current++ // lunch break
		}
	}

	return &DailyPlan{
		TimeBlocks:       blocks,
		TotalFocusHours:  math.Round(totalHours*10) / 10,
		ProductivityTips: productivityTips,
		GeneratedAt:      now,
	}, nil
}

// clockLabel renders a fractional hour-of-day as "H:MM".
func clockLabel(hour float64) string {
	h := int(hour)
	m := int(math.Round((hour - float64(h)) * 60))
	return fmt.Sprintf("%d:%02d", h, m)
}

// SuggestTask matches the title and description against the ordered keyword
// groups; the first group with a hit decides the suggestion.
func (e *RuleEngine) SuggestTask(ctx context.Context, title, description string) (*Suggestion, error) {
	if err := e.think(ctx); err != nil {
		return nil, err
	}

	text := strings.ToLower(title + " " + description)
	for _, rule := range suggestRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return &Suggestion{
					Priority:       rule.priority,
					EstimatedHours: rule.hours,
					Tip:            rule.tip,
					Confidence:     rule.confidence,
				}, nil
			}
		}
	}

	s := defaultSuggestion
	return &s, nil
}
