package surveillance

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, r *Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*Report, error)
	GetByNumber(ctx context.Context, number string) (*Report, error)
	Update(ctx context.Context, r *Report) error
	List(ctx context.Context, filter ListFilter, limit, offset int) ([]*Report, int, error)
	NextSequence(ctx context.Context) (int64, error)
}

type MortalityRepository interface {
	Create(ctx context.Context, m *MortalityReport) error
	GetByID(ctx context.Context, id uuid.UUID) (*MortalityReport, error)
	List(ctx context.Context, filter MortalityFilter, limit, offset int) ([]*MortalityReport, int, error)
}

// ListFilter narrows surveillance report listings. Zero values mean no
// constraint.
type ListFilter struct {
	WardID      uuid.UUID
	FacilityID  uuid.UUID
	DiseaseName string
	Source      string
	Outbreak    *bool
}

type MortalityFilter struct {
	WardID        uuid.UUID
	FacilityID    uuid.UUID
	DeathCategory string
}
