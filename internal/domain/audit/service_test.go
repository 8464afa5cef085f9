package audit

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/chis/chis/internal/platform/middleware"
)

type mockRepo struct {
	logs []*Log
}

func (m *mockRepo) Create(_ context.Context, l *Log) error {
	l.ID = uuid.New()
	if l.Timestamp.IsZero() {
		l.Timestamp = time.Now().UTC()
	}
	m.logs = append(m.logs, l)
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Log, error) {
	for _, l := range m.logs {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockRepo) List(_ context.Context, filter ListFilter, _, _ int) ([]*Log, int, error) {
	var out []*Log
	for _, l := range m.logs {
		if filter.Actor != "" && l.Actor != filter.Actor {
			continue
		}
		if filter.Action != "" && l.Action != filter.Action {
			continue
		}
		if filter.EntityType != "" && l.EntityType != filter.EntityType {
			continue
		}
		out = append(out, l)
	}
	return out, len(out), nil
}

func TestRecord(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)

	err := svc.Record(context.Background(), &Log{
		Actor:      "user-1",
		Action:     ActionCreate,
		EntityType: "persons",
		Path:       "/api/v1/persons",
		Method:     "POST",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.logs) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(repo.logs))
	}
}

func TestRecord_InvalidAction(t *testing.T) {
	svc := NewService(&mockRepo{})
	err := svc.Record(context.Background(), &Log{Actor: "user-1", Action: "PURGE"})
	if err == nil {
		t.Fatal("expected error for invalid action")
	}
}

func TestRecord_AnonymousActorDefault(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)

	if err := svc.Record(context.Background(), &Log{Action: ActionView}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.logs[0].Actor != "anonymous" {
		t.Errorf("expected anonymous actor, got %s", repo.logs[0].Actor)
	}
}

func TestRecorderAdaptsMiddlewareEntries(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)

	recorder := svc.Recorder()
	err := recorder.Record(middleware.AuditEntry{
		Actor:      "user-2",
		ActorRoles: []string{"nurse"},
		Action:     "UPDATE",
		EntityType: "households",
		Path:       "/api/v1/households/42",
		Method:     "PUT",
		IPAddress:  "10.0.0.9",
		RequestID:  "req-123",
		StatusCode: 200,
		Timestamp:  time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.logs) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(repo.logs))
	}
	got := repo.logs[0]
	if got.Action != ActionUpdate || got.EntityType != "households" || got.RequestID != "req-123" {
		t.Errorf("unexpected entry: %+v", got)
	}
}

func TestListEntries_FilterByAction(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	for _, action := range []string{ActionCreate, ActionUpdate, ActionCreate} {
		if err := svc.Record(ctx, &Log{Actor: "u", Action: action, EntityType: "persons"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	items, total, err := svc.ListEntries(ctx, ListFilter{Action: ActionCreate}, 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Errorf("expected 2 CREATE entries, got %d", total)
	}
}

func TestListEntries_InvalidActionFilter(t *testing.T) {
	svc := NewService(&mockRepo{})
	_, _, err := svc.ListEntries(context.Background(), ListFilter{Action: "WIPE"}, 20, 0)
	if err == nil {
		t.Fatal("expected error for invalid action filter")
	}
}
