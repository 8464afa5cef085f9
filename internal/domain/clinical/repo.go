package clinical

import (
	"context"

	"github.com/google/uuid"
)

type PregnancyRepository interface {
	Create(ctx context.Context, p *Pregnancy) error
	GetByID(ctx context.Context, id uuid.UUID) (*Pregnancy, error)
	Update(ctx context.Context, p *Pregnancy) error

	// IncrementANCVisits bumps the completed-visit counter in place so
	// concurrent visit recordings cannot lose increments.
	IncrementANCVisits(ctx context.Context, id uuid.UUID) error
	ListByPerson(ctx context.Context, personID uuid.UUID, limit, offset int) ([]*Pregnancy, int, error)
	List(ctx context.Context, limit, offset int) ([]*Pregnancy, int, error)
}

type ANCVisitRepository interface {
	Create(ctx context.Context, v *ANCVisit) error
	GetByID(ctx context.Context, id uuid.UUID) (*ANCVisit, error)
	GetByVisitNumber(ctx context.Context, pregnancyID uuid.UUID, visitNumber int) (*ANCVisit, error)
	Update(ctx context.Context, v *ANCVisit) error
	ListByPregnancy(ctx context.Context, pregnancyID uuid.UUID, limit, offset int) ([]*ANCVisit, int, error)
}

type PNCVisitRepository interface {
	Create(ctx context.Context, v *PNCVisit) error
	GetByID(ctx context.Context, id uuid.UUID) (*PNCVisit, error)
	Update(ctx context.Context, v *PNCVisit) error
	ListByPregnancy(ctx context.Context, pregnancyID uuid.UUID, limit, offset int) ([]*PNCVisit, int, error)
}

type ImmunizationRepository interface {
	Create(ctx context.Context, im *Immunization) error
	GetByID(ctx context.Context, id uuid.UUID) (*Immunization, error)
	ListByPerson(ctx context.Context, personID uuid.UUID, limit, offset int) ([]*Immunization, int, error)
}

type ScreeningRepository interface {
	Create(ctx context.Context, sc *Screening) error
	GetByID(ctx context.Context, id uuid.UUID) (*Screening, error)
	Update(ctx context.Context, sc *Screening) error
	ListByPerson(ctx context.Context, personID uuid.UUID, limit, offset int) ([]*Screening, int, error)
}
