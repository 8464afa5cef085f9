package audit

import (
	"context"

	"github.com/google/uuid"
)

// Repository exposes Create and reads only. The trail has no update or
// delete path.
type Repository interface {
	Create(ctx context.Context, l *Log) error
	GetByID(ctx context.Context, id uuid.UUID) (*Log, error)
	List(ctx context.Context, filter ListFilter, limit, offset int) ([]*Log, int, error)
}

// ListFilter narrows audit listings. Zero values mean no filtering.
type ListFilter struct {
	Actor      string
	Action     string
	EntityType string
}
