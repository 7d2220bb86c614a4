// internal/app/store/tasks/store.go
package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dalemusser/npoconnect/internal/app/store/kv"
	"github.com/dalemusser/npoconnect/internal/domain/models"
	"go.uber.org/zap"
)

// Key is the kv key holding the serialized task list.
const Key = "npoTasks"

var (
	ErrTitleRequired   = errors.New("title is required")
	ErrDueDateRequired = errors.New("due date is required")
	ErrInvalidKind     = errors.New("type must be task or grant")
	ErrNotFound        = errors.New("task not found")
)

// NewTask is the input to Add. Kind defaults to task.
type NewTask struct {
	Title   string          `json:"title"`
	DueDate string          `json:"dueDate"`
	Kind    models.TaskKind `json:"type"`
}

// Store is the calendar task list. It is read from kv once at Open and the
// whole list is written back after every mutation, last writer wins.
//
// Storage failures never surface to callers: they are logged and the store
// keeps working on its in-memory list.
type Store struct {
	kv  kv.Store
	log *zap.Logger
	now func() time.Time

	mu     sync.Mutex
	tasks  []models.Task
	lastID int64
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used to assign ids.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Open loads the task list from store. Missing or corrupt data yields an
// empty list.
func Open(ctx context.Context, store kv.Store, logger *zap.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{kv: store, log: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	s.tasks = s.load(ctx)
	for _, t := range s.tasks {
		s.lastID = max(s.lastID, t.ID)
	}
	sortTasks(s.tasks)
	return s
}

func (s *Store) load(ctx context.Context) []models.Task {
	raw, ok, err := s.kv.Get(ctx, Key)
	if err != nil {
		s.log.Warn("failed to read tasks", zap.Error(err))
		return []models.Task{}
	}
	if !ok || raw == "" {
		return []models.Task{}
	}
	var list []models.Task
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		s.log.Warn("failed to parse stored tasks", zap.Error(err))
		return []models.Task{}
	}
	if list == nil {
		list = []models.Task{}
	}
	return list
}

func (s *Store) persist(ctx context.Context) {
	data, err := json.Marshal(s.tasks)
	if err != nil {
		s.log.Warn("failed to encode tasks", zap.Error(err))
		return
	}
	if err := s.kv.Set(ctx, Key, string(data)); err != nil {
		s.log.Warn("failed to save tasks", zap.Error(err))
	}
}

// List returns the tasks sorted ascending by due date.
func (s *Store) List() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.tasks)
}

// Add validates in and appends a new task. The id is the creation time in
// milliseconds, bumped when needed to stay unique.
func (s *Store) Add(ctx context.Context, in NewTask) (models.Task, error) {
	title := strings.TrimSpace(in.Title)
	due := strings.TrimSpace(in.DueDate)
	if title == "" {
		return models.Task{}, ErrTitleRequired
	}
	if due == "" {
		return models.Task{}, ErrDueDateRequired
	}
	kind := in.Kind
	if kind == "" {
		kind = models.TaskKindTask
	}
	if !models.ValidTaskKind(kind) {
		return models.Task{}, ErrInvalidKind
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id

	t := models.Task{ID: id, Title: title, DueDate: due, Kind: kind}
	s.tasks = append(s.tasks, t)
	sortTasks(s.tasks)
	s.persist(ctx)
	return t, nil
}

// Delete removes the task with id.
func (s *Store) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.tasks, func(t models.Task) bool { return t.ID == id })
	if i < 0 {
		return ErrNotFound
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	s.persist(ctx)
	return nil
}

// Ping checks the backing store.
func (s *Store) Ping(ctx context.Context) error {
	return s.kv.Ping(ctx)
}

// sortTasks orders by due date. Unparsable dates go last, in text order.
func sortTasks(list []models.Task) {
	slices.SortStableFunc(list, func(a, b models.Task) int {
		da, okA := a.Due()
		db, okB := b.Due()
		switch {
		case okA && okB:
			return da.Compare(db)
		case okA:
			return -1
		case okB:
			return 1
		default:
			return strings.Compare(a.DueDate, b.DueDate)
		}
	})
}
