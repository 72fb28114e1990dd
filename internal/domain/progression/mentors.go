package progression

import (
	"fmt"
	"math"
	"sort"
)

// ConditionType tags the variant of an UnlockCondition.
type ConditionType string

const (
	ConditionLevel          ConditionType = "level"
	ConditionTasksCompleted ConditionType = "tasks_completed"
)

// UnlockCondition gates a mentor. TaskTypes is only meaningful for
// ConditionTasksCompleted.
type UnlockCondition struct {
	Type      ConditionType `json:"type"`
	Value     int           `json:"value"`
	TaskTypes []TaskType    `json:"taskTypes,omitempty"`
}

// Mentor is a council member that becomes available once its condition holds.
type Mentor struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Title       string          `json:"title"`
	Icon        string          `json:"icon"`
	Description string          `json:"description"`
	Dimensions  []string        `json:"dimensions"`
	Condition   UnlockCondition `json:"unlockCondition"`
}

// UnlockProgress is how far a user is from satisfying a mentor's condition.
type UnlockProgress struct {
	Current    int     `json:"current"`
	Required   int     `json:"required"`
	Percentage float64 `json:"percentage"`
}

// MentorStatus pairs a mentor with the caller's unlock state.
type MentorStatus struct {
	Mentor
	Unlocked  bool           `json:"unlocked"`
	Satisfied bool           `json:"satisfied"`
	Progress  UnlockProgress `json:"progress"`
}

// UnlockParams is the input to the unlock engine.
type UnlockParams struct {
	Level           int
	CompletedByType map[TaskType]int
	AlreadyUnlocked []string
}

// MentorCatalog is the ordered, immutable mentor list.
type MentorCatalog struct {
	mentors []Mentor
}

// NewMentorCatalog validates conditions and id uniqueness.
func NewMentorCatalog(mentors []Mentor) (*MentorCatalog, error) {
	seen := make(map[string]struct{}, len(mentors))
	for _, m := range mentors {
		if m.ID == "" {
			return nil, fmt.Errorf("mentor with empty id")
		}
		if _, dup := seen[m.ID]; dup {
			return nil, fmt.Errorf("duplicate mentor id %q", m.ID)
		}
		seen[m.ID] = struct{}{}
		if m.Condition.Value <= 0 {
			return nil, fmt.Errorf("mentor %q: unlock value must be positive", m.ID)
		}
		switch m.Condition.Type {
		case ConditionLevel:
		case ConditionTasksCompleted:
			if len(m.Condition.TaskTypes) == 0 {
				return nil, fmt.Errorf("mentor %q: tasks_completed condition needs task types", m.ID)
			}
			for _, tt := range m.Condition.TaskTypes {
				if !tt.Valid() {
					return nil, fmt.Errorf("mentor %q: unknown task type %q", m.ID, tt)
				}
			}
		default:
			return nil, fmt.Errorf("mentor %q: unknown condition type %q", m.ID, m.Condition.Type)
		}
	}
	cp := make([]Mentor, len(mentors))
	copy(cp, mentors)
	return &MentorCatalog{mentors: cp}, nil
}

// MustMentorCatalog panics on an invalid catalog.
func MustMentorCatalog(mentors []Mentor) *MentorCatalog {
	c, err := NewMentorCatalog(mentors)
	if err != nil {
		panic(err)
	}
	return c
}

// Mentors returns the catalog in declaration order.
func (c *MentorCatalog) Mentors() []Mentor {
	cp := make([]Mentor, len(c.mentors))
	copy(cp, c.mentors)
	return cp
}

// Get returns the mentor with the given id.
func (c *MentorCatalog) Get(id string) (Mentor, bool) {
	for _, m := range c.mentors {
		if m.ID == id {
			return m, true
		}
	}
	return Mentor{}, false
}

// Progress computes raw progress towards a mentor's condition.
func Progress(m Mentor, level int, completedByType map[TaskType]int) UnlockProgress {
	current := level
	if m.Condition.Type == ConditionTasksCompleted {
		current = 0
		for _, tt := range m.Condition.TaskTypes {
			current += completedByType[tt]
		}
	}
	p := UnlockProgress{Current: current, Required: m.Condition.Value}
	if p.Required > 0 {
		p.Percentage = math.Min(100, 100*float64(current)/float64(p.Required))
	}
	return p
}

// Evaluate reports every mentor in catalog order. Mentors in
// AlreadyUnlocked stay unlocked at 100% no matter what the counts say.
func (c *MentorCatalog) Evaluate(params UnlockParams) []MentorStatus {
	unlocked := toSet(params.AlreadyUnlocked)
	out := make([]MentorStatus, 0, len(c.mentors))
	for _, m := range c.mentors {
		p := Progress(m, params.Level, params.CompletedByType)
		st := MentorStatus{
			Mentor:    m,
			Satisfied: p.Current >= p.Required,
			Progress:  p,
		}
		if _, ok := unlocked[m.ID]; ok {
			st.Unlocked = true
			st.Satisfied = true
			st.Progress.Percentage = 100
		}
		out = append(out, st)
	}
	return out
}

// CheckNewUnlocks returns the mentors whose condition now holds and which
// are not yet unlocked. Persisting them is the caller's job.
func (c *MentorCatalog) CheckNewUnlocks(params UnlockParams) []Mentor {
	var fresh []Mentor
	for _, st := range c.Evaluate(params) {
		if !st.Unlocked && st.Satisfied {
			fresh = append(fresh, st.Mentor)
		}
	}
	return fresh
}

// NextToUnlock picks the locked mentor with the highest progress. Ties keep
// catalog order. Returns nil when everything is unlocked.
func (c *MentorCatalog) NextToUnlock(params UnlockParams) *MentorStatus {
	var locked []MentorStatus
	for _, st := range c.Evaluate(params) {
		if !st.Unlocked {
			locked = append(locked, st)
		}
	}
	if len(locked) == 0 {
		return nil
	}
	sort.SliceStable(locked, func(i, j int) bool {
		return locked[i].Progress.Percentage > locked[j].Progress.Percentage
	})
	return &locked[0]
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
