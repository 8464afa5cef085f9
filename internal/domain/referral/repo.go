package referral

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, r *Referral) error
	GetByID(ctx context.Context, id uuid.UUID) (*Referral, error)
	GetByNumber(ctx context.Context, number string) (*Referral, error)
	Update(ctx context.Context, r *Referral) error
	List(ctx context.Context, filter ListFilter, limit, offset int) ([]*Referral, int, error)
	NextSequence(ctx context.Context) (int64, error)
}

type FollowUpRepository interface {
	Create(ctx context.Context, f *FollowUp) error
	ListByReferral(ctx context.Context, referralID uuid.UUID, limit, offset int) ([]*FollowUp, int, error)
}

// ListFilter narrows referral listings. Zero values mean no filtering
// on that field.
type ListFilter struct {
	PersonID       uuid.UUID
	FromFacilityID uuid.UUID
	ToFacilityID   uuid.UUID
	Status         string
	Urgency        string
}
