package mockapi

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/samber/lo"

	"github.com/Alp4ka/todopager"
	"github.com/Alp4ka/todopager/todos"
)

// MemoryStore keeps tasks in insertion order.
type MemoryStore struct {
	mu    sync.RWMutex
	tasks []todos.Task
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns a store holding a copy of seed.
func NewMemoryStore(seed ...todos.Task) *MemoryStore {
	return &MemoryStore{tasks: slices.Clone(seed)}
}

func (s *MemoryStore) List(_ context.Context, q Query) ([]todos.Task, int, error) {
	s.mu.RLock()
	items := lo.Filter(s.tasks, func(t todos.Task, _ int) bool {
		return q.Completed == nil || t.Completed == *q.Completed
	})
	s.mu.RUnlock()

	if q.Order != nil {
		err := todopager.SortItems(items, todopager.Orderings{*q.Order}, todos.TaskGetters)
		if err != nil {
			return nil, 0, fmt.Errorf("list tasks: %w", err)
		}
	}

	total := len(items)
	if q.Paged() {
		items = lo.Subset(items, q.Page.GetOffset(), uint(q.Page.GetLimit()))
	}

	return items, total, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (todos.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexLocked(id)
	if idx == -1 {
		return todos.Task{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	return s.tasks[idx], nil
}

func (s *MemoryStore) Create(_ context.Context, task todos.Task) (todos.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexLocked(task.ID) != -1 {
		return todos.Task{}, fmt.Errorf("task %s already exists", task.ID)
	}

	s.tasks = append(s.tasks, task)

	return task, nil
}

func (s *MemoryStore) Replace(_ context.Context, patch todos.Patch) (todos.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(patch.ID)
	if idx == -1 {
		return todos.Task{}, fmt.Errorf("%w: %s", ErrNotFound, patch.ID)
	}

	// Copy on write so lists handed out earlier keep their contents.
	s.tasks = slices.Clone(s.tasks)
	s.tasks[idx] = patch.Apply(s.tasks[idx])

	return s.tasks[idx], nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) (todos.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx == -1 {
		return todos.Task{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	task := s.tasks[idx]
	s.tasks = slices.Delete(slices.Clone(s.tasks), idx, idx+1)

	return task, nil
}

// Len returns the number of stored tasks.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.tasks)
}

func (s *MemoryStore) indexLocked(id string) int {
	return slices.IndexFunc(s.tasks, func(t todos.Task) bool {
		return t.ID == id
	})
}
