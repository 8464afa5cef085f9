package reporting

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Upsert inserts the report or replaces the metrics of the existing
	// (facility, year, month) row, leaving approval fields untouched.
	Upsert(ctx context.Context, r *MonthlyReport) error
	GetByID(ctx context.Context, id uuid.UUID) (*MonthlyReport, error)
	Get(ctx context.Context, facilityID uuid.UUID, year, month int) (*MonthlyReport, error)
	Approve(ctx context.Context, id, approvedBy uuid.UUID) error
	List(ctx context.Context, filter ListFilter, limit, offset int) ([]*MonthlyReport, int, error)
}

// Aggregator computes one facility's metrics for a month from the
// operational stores.
type Aggregator interface {
	Aggregate(ctx context.Context, facilityID uuid.UUID, period Period) (*Metrics, error)
}

// FacilityLister feeds the scheduled roll-up the facilities to report on.
type FacilityLister interface {
	OperationalFacilityIDs(ctx context.Context) ([]uuid.UUID, error)
}

// ListFilter narrows report listings. Zero values mean no filtering.
type ListFilter struct {
	FacilityID uuid.UUID
	Year       int
	Month      int
	Approved   *bool
}
