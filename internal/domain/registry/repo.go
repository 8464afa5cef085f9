package registry

import (
	"context"

	"github.com/google/uuid"
)

type HouseholdRepository interface {
	Create(ctx context.Context, h *Household) error
	GetByID(ctx context.Context, id uuid.UUID) (*Household, error)
	GetByNumber(ctx context.Context, wardID uuid.UUID, number string) (*Household, error)
	Update(ctx context.Context, h *Household) error
	ListByWard(ctx context.Context, wardID uuid.UUID, limit, offset int) ([]*Household, int, error)
	ListByCommunityUnit(ctx context.Context, communityUnitID uuid.UUID, limit, offset int) ([]*Household, int, error)
}

type PersonRepository interface {
	Create(ctx context.Context, p *Person) error
	GetByID(ctx context.Context, id uuid.UUID) (*Person, error)
	GetByNationalID(ctx context.Context, nationalID string) (*Person, error)
	Update(ctx context.Context, p *Person) error
	Anonymize(ctx context.Context, id uuid.UUID) error
	ListByHousehold(ctx context.Context, householdID uuid.UUID, limit, offset int) ([]*Person, int, error)
	List(ctx context.Context, limit, offset int) ([]*Person, int, error)
}
