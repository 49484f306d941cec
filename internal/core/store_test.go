package core

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(now time.Time) *Store {
	s := NewStore()
	s.clock = func() time.Time { return now }
	return s
}

func TestCreate_AssignsIDAndDefaults(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	s := newTestStore(now)

	task, err := s.Create(Draft{Title: "  Write launch email  "})
	require.NoError(t, err)

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "Write launch email", task.Title, "title should be trimmed")
	assert.Equal(t, PriorityMedium, task.Priority)
	assert.Equal(t, StatusPending, task.Status)
	assert.Equal(t, DefaultEstimatedHours, task.EstimatedHours)
	assert.Equal(t, now, task.CreatedAt)
	assert.Nil(t, task.UpdatedAt)
}

func TestCreate_RejectsBlankTitle(t *testing.T) {
	s := newTestStore(time.Now())

	for _, title := range []string{"", "   ", "\t\n"} {
		_, err := s.Create(Draft{Title: title})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "title", verr.Field)
	}
	assert.Zero(t, s.Len(), "no task should be stored after rejected creates")
}

func TestCreate_RejectsUnknownEnums(t *testing.T) {
	s := newTestStore(time.Now())

	_, err := s.Create(Draft{Title: "a", Priority: "urgent"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = s.Create(Draft{Title: "a", Status: "overdue"})
	require.ErrorAs(t, err, &verr, "overdue is a display state, not storable")
}

func TestCreate_PrependsToOrder(t *testing.T) {
	s := newTestStore(time.Now())

	first, _ := s.Create(Draft{Title: "first"})
	second, _ := s.Create(Draft{Title: "second"})

	tasks := s.List()
	require.Len(t, tasks, 2)
	assert.Equal(t, second.ID, tasks[0].ID, "newest task comes first")
	assert.Equal(t, first.ID, tasks[1].ID)
}

func TestUpdate_MergesOnlyProvidedFields(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	s := newTestStore(now)

	deadline := now.Add(48 * time.Hour)
	created, err := s.Create(Draft{
		Title:          "Quarterly review",
		Description:    "prep slides",
		Deadline:       &deadline,
		Priority:       PriorityHigh,
		Category:       "Ops",
		EstimatedHours: 3,
	})
	require.NoError(t, err)

	status := StatusInProgress
	updated, err := s.Update(created.ID, Patch{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, StatusInProgress, updated.Status)
	assert.Equal(t, "Quarterly review", updated.Title)
	assert.Equal(t, "prep slides", updated.Description)
	assert.Equal(t, PriorityHigh, updated.Priority)
	assert.Equal(t, "Ops", updated.Category)
	assert.Equal(t, 3.0, updated.EstimatedHours)
	require.NotNil(t, updated.Deadline)
	assert.True(t, updated.Deadline.Equal(deadline))
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	require.NotNil(t, updated.UpdatedAt)
}

func TestUpdate_ClearsDeadline(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	s := newTestStore(now)

	deadline := now.Add(24 * time.Hour)
	created, err := s.Create(Draft{Title: "was dated", Deadline: &deadline})
	require.NoError(t, err)

	// A patch that omits the deadline leaves it in place.
	updated, err := s.Update(created.ID, Patch{})
	require.NoError(t, err)
	require.NotNil(t, updated.Deadline)

	// Presence with a nil value clears it.
	updated, err = s.Update(created.ID, Patch{DeadlineSet: true})
	require.NoError(t, err)
	assert.Nil(t, updated.Deadline)

	got, err := s.Get(created.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Deadline, "cleared deadline must persist")
}

func TestPatch_UnmarshalDistinguishesNullDeadline(t *testing.T) {
	var absent Patch
	require.NoError(t, json.Unmarshal([]byte(`{"title":"x"}`), &absent))
	assert.False(t, absent.DeadlineSet)
	assert.Nil(t, absent.Deadline)

	var null Patch
	require.NoError(t, json.Unmarshal([]byte(`{"deadline":null}`), &null))
	assert.True(t, null.DeadlineSet)
	assert.Nil(t, null.Deadline)

	var dated Patch
	require.NoError(t, json.Unmarshal([]byte(`{"deadline":"2025-06-03T10:00:00Z"}`), &dated))
	assert.True(t, dated.DeadlineSet)
	require.NotNil(t, dated.Deadline)
	assert.Equal(t, time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC), dated.Deadline.UTC())
}

func TestUpdate_EmptyPatchRoundTrip(t *testing.T) {
	s := newTestStore(time.Now())

	created, err := s.Create(Draft{Title: "stable"})
	require.NoError(t, err)

	updated, err := s.Update(created.ID, Patch{})
	require.NoError(t, err)
	assert.Equal(t, created.Title, updated.Title)
	assert.Equal(t, created.Priority, updated.Priority)
	assert.Equal(t, created.Status, updated.Status)

	got, err := s.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestUpdate_UnknownID(t *testing.T) {
	s := newTestStore(time.Now())

	_, err := s.Update("missing", Patch{})
	var nferr *NotFoundError
	require.ErrorAs(t, err, &nferr)
	assert.Equal(t, "missing", nferr.TaskID)
}

func TestUpdate_RejectsInvalidPatch(t *testing.T) {
	s := newTestStore(time.Now())
	created, _ := s.Create(Draft{Title: "task"})

	blank := "   "
	_, err := s.Update(created.ID, Patch{Title: &blank})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	negative := -1.0
	_, err = s.Update(created.ID, Patch{EstimatedHours: &negative})
	require.ErrorAs(t, err, &verr)

	got, err := s.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "task", got.Title, "failed update must not partially apply")
}

func TestDelete_Idempotent(t *testing.T) {
	s := newTestStore(time.Now())
	created, _ := s.Create(Draft{Title: "gone soon"})

	s.Delete(created.ID)
	assert.Zero(t, s.Len())

	s.Delete(created.ID) // second delete is a no-op
	s.Delete("never-existed")
	assert.Zero(t, s.Len())
}

func TestGet_NotFound(t *testing.T) {
	s := newTestStore(time.Now())
	_, err := s.Get("nope")
	var nferr *NotFoundError
	require.ErrorAs(t, err, &nferr)
}

func TestStats_Empty(t *testing.T) {
	s := newTestStore(time.Now())
	assert.Equal(t, Stats{}, s.Stats())
}

func TestStats_CountsAndProgress(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	s := newTestStore(now)

	past := now.Add(-time.Hour)
	future := now.Add(48 * time.Hour)

	s.Create(Draft{Title: "done", Status: StatusCompleted})
	s.Create(Draft{Title: "open"})
	s.Create(Draft{Title: "active", Status: StatusInProgress})
	s.Create(Draft{Title: "late", Deadline: &past})
	s.Create(Draft{Title: "done late", Status: StatusCompleted, Deadline: &past})
	s.Create(Draft{Title: "on time", Deadline: &future})

	st := s.Stats()
	assert.Equal(t, 6, st.Total)
	assert.Equal(t, 2, st.Completed)
	assert.Equal(t, 3, st.Pending)
	assert.Equal(t, 1, st.InProgress)
	assert.Equal(t, 1, st.Overdue, "completed tasks are never overdue")
	assert.Equal(t, 33, st.Progress)
	assert.GreaterOrEqual(t, st.Progress, 0)
	assert.LessOrEqual(t, st.Progress, 100)
}

func TestStats_OverdueIgnoresStoredStatus(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	s := newTestStore(now)

	past := now.Add(-time.Hour)
	s.Create(Draft{Title: "late pending", Deadline: &past, Status: StatusPending})
	s.Create(Draft{Title: "late in progress", Deadline: &past, Status: StatusInProgress})

	assert.Equal(t, 2, s.Stats().Overdue)
}
