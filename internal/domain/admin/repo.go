package admin

import (
	"context"

	"github.com/google/uuid"
)

type CountyRepository interface {
	Create(ctx context.Context, c *County) error
	GetByID(ctx context.Context, id uuid.UUID) (*County, error)
	GetByCode(ctx context.Context, code string) (*County, error)
	Update(ctx context.Context, c *County) error
	List(ctx context.Context, limit, offset int) ([]*County, int, error)
}

type SubCountyRepository interface {
	Create(ctx context.Context, sc *SubCounty) error
	GetByID(ctx context.Context, id uuid.UUID) (*SubCounty, error)
	GetByCode(ctx context.Context, code string) (*SubCounty, error)
	Update(ctx context.Context, sc *SubCounty) error
	ListByCounty(ctx context.Context, countyID uuid.UUID, limit, offset int) ([]*SubCounty, int, error)
}

type WardRepository interface {
	Create(ctx context.Context, w *Ward) error
	GetByID(ctx context.Context, id uuid.UUID) (*Ward, error)
	GetByCode(ctx context.Context, code string) (*Ward, error)
	Update(ctx context.Context, w *Ward) error
	ListBySubCounty(ctx context.Context, subcountyID uuid.UUID, limit, offset int) ([]*Ward, int, error)
}

type FacilityRepository interface {
	Create(ctx context.Context, f *Facility) error
	GetByID(ctx context.Context, id uuid.UUID) (*Facility, error)
	GetByCode(ctx context.Context, code string) (*Facility, error)
	Update(ctx context.Context, f *Facility) error
	List(ctx context.Context, limit, offset int) ([]*Facility, int, error)
	ListByWard(ctx context.Context, wardID uuid.UUID, limit, offset int) ([]*Facility, int, error)
}

type CommunityUnitRepository interface {
	Create(ctx context.Context, cu *CommunityUnit) error
	GetByID(ctx context.Context, id uuid.UUID) (*CommunityUnit, error)
	GetByCode(ctx context.Context, code string) (*CommunityUnit, error)
	Update(ctx context.Context, cu *CommunityUnit) error
	ListByWard(ctx context.Context, wardID uuid.UUID, limit, offset int) ([]*CommunityUnit, int, error)
}
