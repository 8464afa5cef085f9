package audit

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/chis/chis/internal/platform/middleware"
)

// ErrNotFound is returned when an audit entry does not exist.
var ErrNotFound = errors.New("not found")

var validActions = map[string]bool{
	ActionCreate: true, ActionUpdate: true, ActionDelete: true,
	ActionView: true, ActionExport: true,
}

type Service struct {
	logs Repository
}

func NewService(logs Repository) *Service {
	return &Service{logs: logs}
}

func (s *Service) Record(ctx context.Context, l *Log) error {
	if !validActions[l.Action] {
		return fmt.Errorf("invalid action: %s", l.Action)
	}
	if l.Actor == "" {
		l.Actor = "anonymous"
	}
	if l.EntityType == "" {
		l.EntityType = "unknown"
	}
	return s.logs.Create(ctx, l)
}

func (s *Service) GetEntry(ctx context.Context, id uuid.UUID) (*Log, error) {
	return s.logs.GetByID(ctx, id)
}

func (s *Service) ListEntries(ctx context.Context, filter ListFilter, limit, offset int) ([]*Log, int, error) {
	if filter.Action != "" && !validActions[filter.Action] {
		return nil, 0, fmt.Errorf("invalid action: %s", filter.Action)
	}
	return s.logs.List(ctx, filter, limit, offset)
}

// Recorder adapts the service to the HTTP audit middleware. Entries are
// persisted on a background context so a cancelled request cannot lose
// its trail entry.
func (s *Service) Recorder() middleware.AuditRecorder {
	return middleware.AuditRecorderFunc(func(entry middleware.AuditEntry) error {
		return s.Record(context.Background(), &Log{
			Actor:      entry.Actor,
			ActorRoles: entry.ActorRoles,
			Action:     entry.Action,
			EntityType: entry.EntityType,
			Path:       entry.Path,
			Method:     entry.Method,
			IPAddress:  entry.IPAddress,
			RequestID:  entry.RequestID,
			StatusCode: entry.StatusCode,
			Timestamp:  entry.Timestamp,
		})
	})
}
