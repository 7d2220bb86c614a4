package tasks

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/dalemusser/npoconnect/internal/app/store/kv"
	"github.com/dalemusser/npoconnect/internal/domain/models"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
)

// fixedClock returns the same instant on every call.
func fixedClock() func() time.Time {
	at := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func sorted(list []models.Task) bool {
	return slices.IsSortedFunc(list, func(a, b models.Task) int {
		da, _ := a.Due()
		db, _ := b.Due()
		return da.Compare(db)
	})
}

func TestOpenCorruptDataIsEmpty(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	if err := store.Set(ctx, Key, "not-json"); err != nil {
		t.Fatal(err)
	}

	s := Open(ctx, store, zap.NewNop())
	if got := s.List(); got == nil || len(got) != 0 {
		t.Errorf("List() = %v, want empty", got)
	}
}

func TestOpenMissingIsEmpty(t *testing.T) {
	s := Open(context.Background(), kv.NewMemory(), nil)
	if got := s.List(); len(got) != 0 {
		t.Errorf("List() = %v, want empty", got)
	}
}

func TestAddValidation(t *testing.T) {
	s := Open(context.Background(), kv.NewMemory(), zap.NewNop())
	tests := []struct {
		in   NewTask
		want error
	}{
		{NewTask{DueDate: "2024-06-01"}, ErrTitleRequired},
		{NewTask{Title: "  "}, ErrTitleRequired},
		{NewTask{Title: "Report"}, ErrDueDateRequired},
		{NewTask{Title: "Report", DueDate: "2024-06-01", Kind: "meeting"}, ErrInvalidKind},
	}
	for _, tt := range tests {
		if _, err := s.Add(context.Background(), tt.in); !errors.Is(err, tt.want) {
			t.Errorf("Add(%+v) error = %v, want %v", tt.in, err, tt.want)
		}
	}
	if n := len(s.List()); n != 0 {
		t.Errorf("invalid adds stored %d tasks", n)
	}
}

func TestAddDefaultsKindAndAssignsUniqueIDs(t *testing.T) {
	s := Open(context.Background(), kv.NewMemory(), zap.NewNop(), WithClock(fixedClock()))

	a, err := s.Add(context.Background(), NewTask{Title: "A", DueDate: "2024-06-01"})
	if err != nil {
		t.Fatal(err)
	}
	b, err := s.Add(context.Background(), NewTask{Title: "B", DueDate: "2024-06-02", Kind: models.TaskKindGrant})
	if err != nil {
		t.Fatal(err)
	}
	if a.Kind != models.TaskKindTask {
		t.Errorf("default kind = %q, want task", a.Kind)
	}
	if a.ID == b.ID {
		t.Errorf("ids not unique: %d", a.ID)
	}
	if want := fixedClock()().UnixMilli(); a.ID != want {
		t.Errorf("id = %d, want creation time %d", a.ID, want)
	}
}

func TestListStaysSortedUnderRandomOps(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	s := Open(ctx, store, zap.NewNop())
	f := gofakeit.New(11)

	for i := 0; i < 200; i++ {
		list := s.List()
		if len(list) > 0 && f.Number(0, 2) == 0 {
			victim := list[f.Number(0, len(list)-1)]
			if err := s.Delete(ctx, victim.ID); err != nil {
				t.Fatalf("Delete(%d): %v", victim.ID, err)
			}
		} else {
			due := f.DateRange(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC))
			if _, err := s.Add(ctx, NewTask{Title: f.Sentence(3), DueDate: due.Format(models.DueDateLayout)}); err != nil {
				t.Fatalf("Add: %v", err)
			}
		}
		if !sorted(s.List()) {
			t.Fatalf("after op %d list not sorted by due date", i)
		}
	}

	// The persisted copy is the same sorted list.
	reopened := Open(ctx, store, zap.NewNop())
	if diff := cmp.Diff(s.List(), reopened.List()); diff != "" {
		t.Errorf("persisted list mismatch (-live +stored):\n%s", diff)
	}
}

func TestDeleteMissing(t *testing.T) {
	s := Open(context.Background(), kv.NewMemory(), zap.NewNop())
	if err := s.Delete(context.Background(), 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(42) error = %v, want ErrNotFound", err)
	}
}

func TestReadsBrowserFormat(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	raw := `[{"id":1717000000000,"title":"Grant deadline","dueDate":"2024-07-01","type":"grant"},` +
		`{"id":1716000000000,"title":"Board meeting","dueDate":"2024-06-15","type":"task"}]`
	if err := store.Set(ctx, Key, raw); err != nil {
		t.Fatal(err)
	}

	s := Open(ctx, store, zap.NewNop(), WithClock(func() time.Time { return time.UnixMilli(1) }))
	got := s.List()
	if len(got) != 2 || got[0].Title != "Board meeting" || got[1].Kind != models.TaskKindGrant {
		t.Fatalf("List() = %+v", got)
	}

	// New ids never collide with loaded ones, even with a clock in the past.
	added, err := s.Add(ctx, NewTask{Title: "x", DueDate: "2024-01-01"})
	if err != nil {
		t.Fatal(err)
	}
	if added.ID <= 1717000000000 {
		t.Errorf("new id %d not above loaded ids", added.ID)
	}
}

type failingKV struct{}

func (failingKV) Get(context.Context, string) (string, bool, error) {
	return "", false, fmt.Errorf("unavailable")
}
func (failingKV) Set(context.Context, string, string) error { return fmt.Errorf("quota exceeded") }
func (failingKV) Delete(context.Context, string) error      { return fmt.Errorf("unavailable") }
func (failingKV) Ping(context.Context) error                { return fmt.Errorf("unavailable") }

func TestStorageFailuresAreSwallowed(t *testing.T) {
	s := Open(context.Background(), failingKV{}, zap.NewNop())
	if _, err := s.Add(context.Background(), NewTask{Title: "A", DueDate: "2024-06-01"}); err != nil {
		t.Fatalf("Add surfaced storage error: %v", err)
	}
	if len(s.List()) != 1 {
		t.Error("task not kept in memory after failed save")
	}
}

func TestSQLiteBacked(t *testing.T) {
	ctx := context.Background()
	store, err := kv.OpenSQLite(filepath.Join(t.TempDir(), "tasks.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	s := Open(ctx, store, zap.NewNop())
	if _, err := s.Add(ctx, NewTask{Title: "Later", DueDate: "2025-01-01"}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Add(ctx, NewTask{Title: "Sooner", DueDate: "2024-01-01"}); err != nil {
		t.Fatal(err)
	}

	got := Open(ctx, store, zap.NewNop()).List()
	if len(got) != 2 || got[0].Title != "Sooner" {
		t.Errorf("reopened list = %+v", got)
	}
}
