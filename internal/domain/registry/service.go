package registry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a registry record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateID is returned when a national ID is already registered.
	ErrDuplicateID = errors.New("national id already registered")
	// ErrDuplicateHousehold is returned when a household number is taken
	// within the ward.
	ErrDuplicateHousehold = errors.New("household number already registered in ward")
)

var validGenders = map[string]bool{"M": true, "F": true, "O": true}

type Service struct {
	households HouseholdRepository
	persons    PersonRepository
}

func NewService(households HouseholdRepository, persons PersonRepository) *Service {
	return &Service{households: households, persons: persons}
}

// -- Household --

func (s *Service) RegisterHousehold(ctx context.Context, h *Household) error {
	if h.HouseholdNumber == "" {
		return fmt.Errorf("household_number is required")
	}
	if h.WardID == uuid.Nil {
		return fmt.Errorf("ward_id is required")
	}
	if h.CommunityUnitID == uuid.Nil {
		return fmt.Errorf("community_unit_id is required")
	}
	if h.NumberOfMembers < 1 {
		h.NumberOfMembers = 1
	}
	if existing, err := s.households.GetByNumber(ctx, h.WardID, h.HouseholdNumber); err == nil && existing != nil {
		return ErrDuplicateHousehold
	}
	if h.RegistrationDate.IsZero() {
		h.RegistrationDate = time.Now()
	}
	h.IsActive = true
	return s.households.Create(ctx, h)
}

func (s *Service) GetHousehold(ctx context.Context, id uuid.UUID) (*Household, error) {
	return s.households.GetByID(ctx, id)
}

func (s *Service) UpdateHousehold(ctx context.Context, h *Household) error {
	if h.NumberOfMembers < 1 {
		return fmt.Errorf("number_of_members must be at least 1")
	}
	return s.households.Update(ctx, h)
}

func (s *Service) ListHouseholdsByWard(ctx context.Context, wardID uuid.UUID, limit, offset int) ([]*Household, int, error) {
	return s.households.ListByWard(ctx, wardID, limit, offset)
}

func (s *Service) ListHouseholdsByCommunityUnit(ctx context.Context, communityUnitID uuid.UUID, limit, offset int) ([]*Household, int, error) {
	return s.households.ListByCommunityUnit(ctx, communityUnitID, limit, offset)
}

// -- Person --

func (s *Service) RegisterPerson(ctx context.Context, p *Person) error {
	if p.FirstName == "" || p.LastName == "" {
		return fmt.Errorf("first_name and last_name are required")
	}
	if p.DateOfBirth.IsZero() {
		return fmt.Errorf("date_of_birth is required")
	}
	if p.DateOfBirth.After(time.Now()) {
		return fmt.Errorf("date_of_birth may not be in the future")
	}
	if !validGenders[p.Gender] {
		return fmt.Errorf("invalid gender: %s", p.Gender)
	}
	if p.HouseholdID == uuid.Nil {
		return fmt.Errorf("household_id is required")
	}
	if _, err := s.households.GetByID(ctx, p.HouseholdID); err != nil {
		return fmt.Errorf("household not found")
	}
	if p.NationalID != nil && *p.NationalID != "" {
		if existing, err := s.persons.GetByNationalID(ctx, *p.NationalID); err == nil && existing != nil {
			return ErrDuplicateID
		}
	}
	p.IsAlive = true
	return s.persons.Create(ctx, p)
}

func (s *Service) GetPerson(ctx context.Context, id uuid.UUID) (*Person, error) {
	return s.persons.GetByID(ctx, id)
}

func (s *Service) FindPersonByNationalID(ctx context.Context, nationalID string) (*Person, error) {
	return s.persons.GetByNationalID(ctx, nationalID)
}

func (s *Service) UpdatePerson(ctx context.Context, p *Person) error {
	if !p.DateOfBirth.IsZero() && p.DateOfBirth.After(time.Now()) {
		return fmt.Errorf("date_of_birth may not be in the future")
	}
	if p.Gender != "" && !validGenders[p.Gender] {
		return fmt.Errorf("invalid gender: %s", p.Gender)
	}
	current, err := s.persons.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}
	if p.NationalID != nil && *p.NationalID != "" {
		if current.NationalID == nil || *current.NationalID != *p.NationalID {
			if existing, err := s.persons.GetByNationalID(ctx, *p.NationalID); err == nil && existing != nil {
				return ErrDuplicateID
			}
		}
	}
	return s.persons.Update(ctx, p)
}

// AnonymizePerson blanks the person's names and identifiers while keeping
// the record and its clinical history. Records are never physically
// deleted.
func (s *Service) AnonymizePerson(ctx context.Context, id uuid.UUID) error {
	if _, err := s.persons.GetByID(ctx, id); err != nil {
		return err
	}
	return s.persons.Anonymize(ctx, id)
}

func (s *Service) ListHouseholdMembers(ctx context.Context, householdID uuid.UUID, limit, offset int) ([]*Person, int, error) {
	return s.persons.ListByHousehold(ctx, householdID, limit, offset)
}

func (s *Service) ListPersons(ctx context.Context, limit, offset int) ([]*Person, int, error) {
	return s.persons.List(ctx, limit, offset)
}
