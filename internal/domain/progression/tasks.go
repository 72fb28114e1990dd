package progression

import (
	"errors"
	"fmt"
)

// TaskType classifies tasks for mentor unlocking.
type TaskType string

const (
	TaskKnowledge  TaskType = "knowledge"
	TaskHandsOn    TaskType = "hands-on"
	TaskSocial     TaskType = "social"
	TaskCreative   TaskType = "creative"
	TaskReflection TaskType = "reflection"
	TaskPhysical   TaskType = "physical"
	TaskService    TaskType = "service"
	TaskTech       TaskType = "tech"
)

// Valid reports whether t is one of the known task types.
func (t TaskType) Valid() bool {
	switch t {
	case TaskKnowledge, TaskHandsOn, TaskSocial, TaskCreative,
		TaskReflection, TaskPhysical, TaskService, TaskTech:
		return true
	}
	return false
}

// Task is a read-only catalog entry.
type Task struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Icon         string   `json:"icon"`
	Type         TaskType `json:"type"`
	Points       int      `json:"points"`
	Difficulty   int      `json:"difficulty"`
	Requirements []string `json:"requirements"`
}

var ErrInvalidTask = errors.New("invalid task definition")

// TaskCatalog is the immutable set of tasks, kept in declaration order.
type TaskCatalog struct {
	tasks []Task
	byID  map[int64]Task
}

// NewTaskCatalog validates ids, types, points and difficulty.
func NewTaskCatalog(tasks []Task) (*TaskCatalog, error) {
	c := &TaskCatalog{
		tasks: make([]Task, 0, len(tasks)),
		byID:  make(map[int64]Task, len(tasks)),
	}
	for _, t := range tasks {
		switch {
		case t.ID <= 0:
			return nil, fmt.Errorf("%w: id %d", ErrInvalidTask, t.ID)
		case !t.Type.Valid():
			return nil, fmt.Errorf("%w: task %d has unknown type %q", ErrInvalidTask, t.ID, t.Type)
		case t.Points <= 0:
			return nil, fmt.Errorf("%w: task %d must award points", ErrInvalidTask, t.ID)
		case t.Difficulty < 1 || t.Difficulty > 3:
			return nil, fmt.Errorf("%w: task %d difficulty %d out of range", ErrInvalidTask, t.ID, t.Difficulty)
		}
		if _, dup := c.byID[t.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %d", ErrInvalidTask, t.ID)
		}
		c.tasks = append(c.tasks, t)
		c.byID[t.ID] = t
	}
	return c, nil
}

// MustTaskCatalog panics on an invalid catalog.
func MustTaskCatalog(tasks []Task) *TaskCatalog {
	c, err := NewTaskCatalog(tasks)
	if err != nil {
		panic(err)
	}
	return c
}

// Tasks returns the catalog in declaration order.
func (c *TaskCatalog) Tasks() []Task {
	cp := make([]Task, len(c.tasks))
	copy(cp, c.tasks)
	return cp
}

// Get looks a task up by id.
func (c *TaskCatalog) Get(id int64) (Task, bool) {
	t, ok := c.byID[id]
	return t, ok
}

// AggregateByType counts completed tasks per type. Ids missing from the
// catalog are ignored; duplicates count once.
func (c *TaskCatalog) AggregateByType(completedIDs []int64) map[TaskType]int {
	counts := make(map[TaskType]int)
	seen := make(map[int64]struct{}, len(completedIDs))
	for _, id := range completedIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if t, ok := c.byID[id]; ok {
			counts[t.Type]++
		}
	}
	return counts
}
