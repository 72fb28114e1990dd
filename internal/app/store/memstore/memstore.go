// Package memstore is an in-memory store.Store. Transactions work on a
// private copy of the data that replaces the shared copy on commit, so a
// failed transaction leaves nothing behind.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/yigit/growthpath/internal/app/models"
	"github.com/yigit/growthpath/internal/app/store"
)

type userTaskKey struct {
	userID string
	taskID int64
}

type unlockKey struct {
	userID   string
	mentorID string
}

type data struct {
	seq          map[string]int64
	profiles     map[string]models.Profile
	userTasks    map[userTaskKey]models.UserTask
	works        map[int64]models.Work
	assessments  []models.Assessment
	interests    []models.UserInterest
	strengths    []models.UserStrength
	traits       []models.UserTrait
	goals        []models.UserGoal
	observations []models.Observation
	unlocks      map[unlockKey]models.MentorUnlock
}

func newData() *data {
	return &data{
		seq:       map[string]int64{},
		profiles:  map[string]models.Profile{},
		userTasks: map[userTaskKey]models.UserTask{},
		works:     map[int64]models.Work{},
		unlocks:   map[unlockKey]models.MentorUnlock{},
	}
}

// clone copies containers. Stored values are never mutated in place, so
// nested slices can be shared.
func (d *data) clone() *data {
	c := &data{
		seq:          make(map[string]int64, len(d.seq)),
		profiles:     make(map[string]models.Profile, len(d.profiles)),
		userTasks:    make(map[userTaskKey]models.UserTask, len(d.userTasks)),
		works:        make(map[int64]models.Work, len(d.works)),
		unlocks:      make(map[unlockKey]models.MentorUnlock, len(d.unlocks)),
		assessments:  append([]models.Assessment(nil), d.assessments...),
		interests:    append([]models.UserInterest(nil), d.interests...),
		strengths:    append([]models.UserStrength(nil), d.strengths...),
		traits:       append([]models.UserTrait(nil), d.traits...),
		goals:        append([]models.UserGoal(nil), d.goals...),
		observations: append([]models.Observation(nil), d.observations...),
	}
	for k, v := range d.seq {
		c.seq[k] = v
	}
	for k, v := range d.profiles {
		c.profiles[k] = v
	}
	for k, v := range d.userTasks {
		c.userTasks[k] = v
	}
	for k, v := range d.works {
		c.works[k] = v
	}
	for k, v := range d.unlocks {
		c.unlocks[k] = v
	}
	return c
}

func (d *data) nextID(table string) int64 {
	d.seq[table]++
	return d.seq[table]
}

type state struct {
	// mu guards the data pointer; txMu serializes writers.
	mu   sync.RWMutex
	txMu sync.Mutex
	data *data
}

// Store implements store.Store in memory.
type Store struct {
	st  *state
	tx  *data
	now func() time.Time
}

var _ store.Store = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(opts ...Option) *Store {
	s := &Store{st: &state{data: newData()}, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Profiles() store.ProfileStore         { return profileStore{s} }
func (s *Store) UserTasks() store.UserTaskStore       { return userTaskStore{s} }
func (s *Store) Works() store.WorkStore               { return workStore{s} }
func (s *Store) Assessments() store.AssessmentStore   { return assessmentStore{s} }
func (s *Store) Observations() store.ObservationStore { return observationStore{s} }
func (s *Store) Unlocks() store.UnlockStore           { return unlockStore{s} }

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// WithTransaction runs fn on a private copy and publishes it if fn succeeds.
// Nested calls join the outer transaction.
func (s *Store) WithTransaction(ctx context.Context, fn func(tx store.Store) error) error {
	if s.tx != nil {
		return fn(s)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.st.txMu.Lock()
	defer s.st.txMu.Unlock()

	tx := &Store{st: s.st, tx: s.st.data.clone(), now: s.now}
	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.st.mu.Lock()
	s.st.data = tx.tx
	s.st.mu.Unlock()
	return nil
}

func (s *Store) view(fn func(d *data) error) error {
	if s.tx != nil {
		return fn(s.tx)
	}
	s.st.mu.RLock()
	defer s.st.mu.RUnlock()
	return fn(s.st.data)
}

// update applies a single write atomically outside a transaction.
func (s *Store) update(fn func(d *data) error) error {
	if s.tx != nil {
		return fn(s.tx)
	}
	s.st.txMu.Lock()
	defer s.st.txMu.Unlock()

	next := s.st.data.clone()
	if err := fn(next); err != nil {
		return err
	}
	s.st.mu.Lock()
	s.st.data = next
	s.st.mu.Unlock()
	return nil
}
