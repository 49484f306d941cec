package core

import (
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store holds the task collection in memory. It is the sole source of truth
// for the rest of the system; every derived view reads a snapshot taken under
// the store's lock, so callers always observe their own writes.
//
// There is no durable backing storage. Tasks live for the lifetime of the
// process, which is the contract of this service.
type Store struct {
	mu    sync.RWMutex
	order []*Task // most-recent-first
	byID  map[string]*Task

	clock func() time.Time
}

// NewStore creates an empty task store.
func NewStore() *Store {
	return &Store{
		byID:  make(map[string]*Task),
		clock: time.Now,
	}
}

// List returns a snapshot of all tasks, most recently created first.
func (s *Store) List() []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]Task, len(s.order))
	for i, t := range s.order {
		tasks[i] = *t
	}
	return tasks
}

// Get returns the task with the given ID.
func (s *Store) Get(id string) (Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.byID[id]
	if !ok {
		return Task{}, &NotFoundError{TaskID: id}
	}
	return *t, nil
}

// Create validates the draft, assigns an ID and creation timestamp, and
// prepends the new task to the observable order.
func (s *Store) Create(d Draft) (Task, error) {
	d.Title = strings.TrimSpace(d.Title)
	if d.Title == "" {
		return Task{}, &ValidationError{Field: "title", Reason: "must not be blank"}
	}
	if d.Priority == "" {
		d.Priority = PriorityMedium
	}
	if !d.Priority.Valid() {
		return Task{}, &ValidationError{Field: "priority", Reason: "unknown value " + string(d.Priority)}
	}
	if d.Status == "" {
		d.Status = StatusPending
	}
	if !d.Status.Valid() {
		return Task{}, &ValidationError{Field: "status", Reason: "unknown value " + string(d.Status)}
	}
	if d.EstimatedHours < 0 {
		return Task{}, &ValidationError{Field: "estimatedHours", Reason: "must be positive"}
	}
	if d.EstimatedHours == 0 {
		d.EstimatedHours = DefaultEstimatedHours
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := &Task{
		ID:             uuid.New().String(),
		Title:          d.Title,
		Description:    d.Description,
		Deadline:       d.Deadline,
		Priority:       d.Priority,
		Status:         d.Status,
		Category:       d.Category,
		EstimatedHours: d.EstimatedHours,
		CreatedAt:      s.clock(),
	}
	s.byID[t.ID] = t
	s.order = append([]*Task{t}, s.order...)
	return *t, nil
}

// Update merges the patch onto the stored task. Fields the patch leaves nil
// are untouched; ID and CreatedAt are immutable.
func (s *Store) Update(id string, p Patch) (Task, error) {
	if p.Title != nil {
		trimmed := strings.TrimSpace(*p.Title)
		if trimmed == "" {
			return Task{}, &ValidationError{Field: "title", Reason: "must not be blank"}
		}
		p.Title = &trimmed
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return Task{}, &ValidationError{Field: "priority", Reason: "unknown value " + string(*p.Priority)}
	}
	if p.Status != nil && !p.Status.Valid() {
		return Task{}, &ValidationError{Field: "status", Reason: "unknown value " + string(*p.Status)}
	}
	if p.EstimatedHours != nil && *p.EstimatedHours <= 0 {
		return Task{}, &ValidationError{Field: "estimatedHours", Reason: "must be positive"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.byID[id]
	if !ok {
		return Task{}, &NotFoundError{TaskID: id}
	}

	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Deadline != nil || p.DeadlineSet {
		t.Deadline = p.Deadline
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.EstimatedHours != nil {
		t.EstimatedHours = *p.EstimatedHours
	}
	now := s.clock()
	t.UpdatedAt = &now

	return *t, nil
}

// Delete removes the task with the given ID. Deleting an absent ID is a
// no-op, so the call is idempotent.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return
	}
	delete(s.byID, id)
	for i, t := range s.order {
		if t.ID == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of stored tasks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Stats computes aggregate counts over the current collection. Overdue counts
// tasks with a past deadline and non-completed status, regardless of the
// stored status value.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.clock()
	st := Stats{Total: len(s.order)}
	for _, t := range s.order {
		switch t.Status {
		case StatusCompleted:
			st.Completed++
		case StatusPending:
			st.Pending++
		case StatusInProgress:
			st.InProgress++
		}
		if t.IsOverdue(now) {
			st.Overdue++
		}
	}
	if st.Total > 0 {
		st.Progress = int(math.Round(100 * float64(st.Completed) / float64(st.Total)))
	}
	return st
}
