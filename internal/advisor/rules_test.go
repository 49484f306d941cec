package advisor

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harichandramathi27/AI-Smart-productivity-platform/internal/core"
)

var testNow = time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)

func newTestEngine() *RuleEngine {
	e := NewRuleEngine(0)
	e.clock = func() time.Time { return testNow }
	return e
}

func activeTask(id string, p core.Priority, hours float64) core.Task {
	return core.Task{ID: id, Title: "Task " + id, Priority: p, Status: core.StatusPending, EstimatedHours: hours}
}

func TestAnalyzePriorities_TopThree(t *testing.T) {
	e := newTestEngine()

	deadline := testNow.Add(2 * time.Hour)
	tasks := []core.Task{
		activeTask("a", core.PriorityLow, 1),
		{ID: "b", Title: "Task b", Priority: core.PriorityCritical, Status: core.StatusPending, Deadline: &deadline, EstimatedHours: 2},
		activeTask("c", core.PriorityHigh, 2),
		activeTask("d", core.PriorityMedium, 3),
		{ID: "e", Title: "Task e", Priority: core.PriorityCritical, Status: core.StatusCompleted},
	}

	analysis, err := e.AnalyzePriorities(context.Background(), tasks)
	require.NoError(t, err)

	require.Len(t, analysis.Recommendations, 3)
	assert.Equal(t, "b", analysis.Recommendations[0].TaskID, "deadline-pressured critical task ranks first")
	for i, rec := range analysis.Recommendations {
		assert.Equal(t, i+1, rec.Rank)
		assert.NotEmpty(t, rec.Reason)
		assert.NotEmpty(t, rec.SuggestedTime)
		assert.NotEqual(t, "e", rec.TaskID, "completed tasks are excluded")
	}

	assert.Contains(t, analysis.Recommendations[0].Reason, "critical priority")
	assert.Contains(t, analysis.Recommendations[0].Reason, "2h left")
}

func TestAnalyzePriorities_FewerThanThree(t *testing.T) {
	e := newTestEngine()

	analysis, err := e.AnalyzePriorities(context.Background(), []core.Task{
		activeTask("only", core.PriorityMedium, 2),
		{ID: "done", Title: "Done", Priority: core.PriorityHigh, Status: core.StatusCompleted},
	})
	require.NoError(t, err)
	assert.Len(t, analysis.Recommendations, 1)
}

func TestAnalyzePriorities_Insight(t *testing.T) {
	e := newTestEngine()

	tasks := []core.Task{
		activeTask("a", core.PriorityCritical, 4),
		activeTask("b", core.PriorityCritical, 1.5),
		activeTask("c", core.PriorityLow, 0), // no estimate: counts as 2h
	}

	analysis, err := e.AnalyzePriorities(context.Background(), tasks)
	require.NoError(t, err)

	assert.Contains(t, analysis.Insight, "3 active tasks")
	assert.Contains(t, analysis.Insight, "2 marked critical")
	assert.Contains(t, analysis.Insight, "7.5h")
}

func TestGenerateDailyPlan_BlocksAndBreak(t *testing.T) {
	e := newTestEngine()

	tasks := []core.Task{
		activeTask("a", core.PriorityCritical, 2),
		activeTask("b", core.PriorityHigh, 3),
		activeTask("c", core.PriorityMedium, 1),
		activeTask("d", core.PriorityLow, 2),
	}

	plan, err := e.GenerateDailyPlan(context.Background(), tasks)
	require.NoError(t, err)
	require.Len(t, plan.TimeBlocks, 4)

	// 9:00 +2h -> 11:00 +3h, then the hour break -> 15:00 +1h -> 16:00.
	starts := []string{"9:00", "11:00", "15:00", "16:00"}
	for i, want := range starts {
		assert.Equal(t, want, plan.TimeBlocks[i].StartTime, "block %d start", i)
	}
	assert.Equal(t, "11:00", plan.TimeBlocks[0].EndTime)
	assert.Equal(t, "14:00", plan.TimeBlocks[1].EndTime)

	assert.Equal(t, 8.0, plan.TotalFocusHours)
	assert.Len(t, plan.ProductivityTips, 5)

	// Block decorations cycle through the fixed templates.
	assert.Equal(t, "Deep Work Block", plan.TimeBlocks[0].Label)
	assert.Equal(t, "Collaborative Focus", plan.TimeBlocks[1].Label)
	assert.Equal(t, "Creative Session", plan.TimeBlocks[2].Label)
	assert.Equal(t, "Review & Polish", plan.TimeBlocks[3].Label)
}

func TestGenerateDailyPlan_HalfHourEstimate(t *testing.T) {
	e := newTestEngine()

	plan, err := e.GenerateDailyPlan(context.Background(), []core.Task{
		activeTask("a", core.PriorityHigh, 2.5),
		activeTask("b", core.PriorityMedium, 1),
	})
	require.NoError(t, err)
	require.Len(t, plan.TimeBlocks, 2)

	assert.Equal(t, "9:00", plan.TimeBlocks[0].StartTime)
	assert.Equal(t, "11:30", plan.TimeBlocks[0].EndTime, "fractional estimate keeps its half-hour end")
	// The schedule itself advances by whole hours: ceil(2.5) = 3.
	assert.Equal(t, "12:00", plan.TimeBlocks[1].StartTime)

	assert.Equal(t, 3.5, plan.TotalFocusHours)
}

func TestGenerateDailyPlan_CapsAtFourTasks(t *testing.T) {
	e := newTestEngine()

	var tasks []core.Task
	for i := 0; i < 7; i++ {
		tasks = append(tasks, activeTask(fmt.Sprintf("t%d", i), core.PriorityMedium, 1))
	}

	plan, err := e.GenerateDailyPlan(context.Background(), tasks)
	require.NoError(t, err)
	assert.Len(t, plan.TimeBlocks, 4)
	assert.Equal(t, 4.0, plan.TotalFocusHours, "focus hours cover only the scheduled tasks")
}

func TestGenerateDailyPlan_DefaultsMissingEstimates(t *testing.T) {
	e := newTestEngine()

	plan, err := e.GenerateDailyPlan(context.Background(), []core.Task{
		activeTask("a", core.PriorityMedium, 0),
	})
	require.NoError(t, err)
	require.Len(t, plan.TimeBlocks, 1)
	assert.Equal(t, "11:00", plan.TimeBlocks[0].EndTime)
	assert.Equal(t, 2.0, plan.TotalFocusHours)
}

func TestGenerateDailyPlan_ExcludesCompleted(t *testing.T) {
	e := newTestEngine()

	plan, err := e.GenerateDailyPlan(context.Background(), []core.Task{
		{ID: "done", Title: "Done", Priority: core.PriorityCritical, Status: core.StatusCompleted},
		activeTask("open", core.PriorityLow, 1),
	})
	require.NoError(t, err)
	require.Len(t, plan.TimeBlocks, 1)
	assert.Equal(t, "open", plan.TimeBlocks[0].TaskID)
}

func TestSuggestTask(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name      string
		title     string
		desc      string
		wantPrio  core.Priority
		wantHours float64
	}{
		{"finance audit", "Finance Audit", "", core.PriorityCritical, 4},
		{"budget keyword in description", "Prep meeting", "review the budget numbers", core.PriorityCritical, 4},
		{"report routes to finance group", "Weekly report", "", core.PriorityCritical, 4},
		{"engineering", "Refactor code for the deploy pipeline", "", core.PriorityHigh, 3},
		{"design", "Design onboarding flow", "", core.PriorityHigh, 3},
		{"marketing", "Launch email campaign", "", core.PriorityMedium, 2.5},
		{"no keyword falls through", "Water the plants", "", core.PriorityMedium, 2},
		{"case insensitive", "FINANCE review", "", core.PriorityCritical, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.SuggestTask(context.Background(), tt.title, tt.desc)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPrio, got.Priority)
			assert.Equal(t, tt.wantHours, got.EstimatedHours)
			assert.NotEmpty(t, got.Tip)
			assert.Greater(t, got.Confidence, 0.0)
			assert.LessOrEqual(t, got.Confidence, 1.0)
		})
	}
}

func TestSuggestTask_FirstMatchWins(t *testing.T) {
	e := newTestEngine()

	// "budget" (finance group) and "campaign" (marketing group) both appear;
	// the finance group is checked first.
	got, err := e.SuggestTask(context.Background(), "Campaign budget review", "")
	require.NoError(t, err)
	assert.Equal(t, core.PriorityCritical, got.Priority)
	assert.Equal(t, 4.0, got.EstimatedHours)
}

func TestThinkDelay_CancelledContext(t *testing.T) {
	e := NewRuleEngine(time.Minute)
	e.clock = func() time.Time { return testNow }

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.AnalyzePriorities(ctx, []core.Task{activeTask("a", core.PriorityLow, 1)})
	assert.ErrorIs(t, err, context.Canceled)

	_, err = e.GenerateDailyPlan(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = e.SuggestTask(ctx, "title", "")
	assert.ErrorIs(t, err, context.Canceled)
}
