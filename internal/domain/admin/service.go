package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a hierarchy node does not exist.
	ErrNotFound = errors.New("not found")
	// ErrParentNotFound is returned when creating a node whose parent
	// does not exist.
	ErrParentNotFound = errors.New("parent node not found")
)

var validFacilityTypes = map[string]bool{
	"DISPENSARY": true, "HEALTH_CENTRE": true, "SUB_COUNTY_HOSPITAL": true,
	"COUNTY_REFERRAL": true, "PRIVATE_CLINIC": true,
}

type Service struct {
	counties       CountyRepository
	subcounties    SubCountyRepository
	wards          WardRepository
	facilities     FacilityRepository
	communityUnits CommunityUnitRepository
}

func NewService(
	counties CountyRepository,
	subcounties SubCountyRepository,
	wards WardRepository,
	facilities FacilityRepository,
	communityUnits CommunityUnitRepository,
) *Service {
	return &Service{
		counties:       counties,
		subcounties:    subcounties,
		wards:          wards,
		facilities:     facilities,
		communityUnits: communityUnits,
	}
}

// -- County --

func (s *Service) CreateCounty(ctx context.Context, c *County) error {
	if c.Name == "" {
		return fmt.Errorf("name is required")
	}
	if c.Code == "" {
		return fmt.Errorf("code is required")
	}
	return s.counties.Create(ctx, c)
}

func (s *Service) GetCounty(ctx context.Context, id uuid.UUID) (*County, error) {
	return s.counties.GetByID(ctx, id)
}

func (s *Service) GetCountyByCode(ctx context.Context, code string) (*County, error) {
	return s.counties.GetByCode(ctx, code)
}

func (s *Service) UpdateCounty(ctx context.Context, c *County) error {
	return s.counties.Update(ctx, c)
}

func (s *Service) ListCounties(ctx context.Context, limit, offset int) ([]*County, int, error) {
	return s.counties.List(ctx, limit, offset)
}

// -- SubCounty --

func (s *Service) CreateSubCounty(ctx context.Context, sc *SubCounty) error {
	if sc.Name == "" {
		return fmt.Errorf("name is required")
	}
	if sc.Code == "" {
		return fmt.Errorf("code is required")
	}
	if sc.CountyID == uuid.Nil {
		return fmt.Errorf("county_id is required")
	}
	if _, err := s.counties.GetByID(ctx, sc.CountyID); err != nil {
		return ErrParentNotFound
	}
	return s.subcounties.Create(ctx, sc)
}

func (s *Service) GetSubCounty(ctx context.Context, id uuid.UUID) (*SubCounty, error) {
	return s.subcounties.GetByID(ctx, id)
}

func (s *Service) GetSubCountyByCode(ctx context.Context, code string) (*SubCounty, error) {
	return s.subcounties.GetByCode(ctx, code)
}

func (s *Service) UpdateSubCounty(ctx context.Context, sc *SubCounty) error {
	return s.subcounties.Update(ctx, sc)
}

func (s *Service) ListSubCounties(ctx context.Context, countyID uuid.UUID, limit, offset int) ([]*SubCounty, int, error) {
	return s.subcounties.ListByCounty(ctx, countyID, limit, offset)
}

// -- Ward --

func (s *Service) CreateWard(ctx context.Context, w *Ward) error {
	if w.Name == "" {
		return fmt.Errorf("name is required")
	}
	if w.Code == "" {
		return fmt.Errorf("code is required")
	}
	if w.SubCountyID == uuid.Nil {
		return fmt.Errorf("subcounty_id is required")
	}
	if _, err := s.subcounties.GetByID(ctx, w.SubCountyID); err != nil {
		return ErrParentNotFound
	}
	return s.wards.Create(ctx, w)
}

func (s *Service) GetWard(ctx context.Context, id uuid.UUID) (*Ward, error) {
	return s.wards.GetByID(ctx, id)
}

func (s *Service) GetWardByCode(ctx context.Context, code string) (*Ward, error) {
	return s.wards.GetByCode(ctx, code)
}

func (s *Service) UpdateWard(ctx context.Context, w *Ward) error {
	return s.wards.Update(ctx, w)
}

func (s *Service) ListWards(ctx context.Context, subcountyID uuid.UUID, limit, offset int) ([]*Ward, int, error) {
	return s.wards.ListBySubCounty(ctx, subcountyID, limit, offset)
}

// CountyForWard walks a ward up its hierarchy to the owning county.
// Every ward resolves to exactly one county.
func (s *Service) CountyForWard(ctx context.Context, wardID uuid.UUID) (*County, error) {
	w, err := s.wards.GetByID(ctx, wardID)
	if err != nil {
		return nil, err
	}
	sc, err := s.subcounties.GetByID(ctx, w.SubCountyID)
	if err != nil {
		return nil, err
	}
	return s.counties.GetByID(ctx, sc.CountyID)
}

// -- Facility --

func (s *Service) CreateFacility(ctx context.Context, f *Facility) error {
	if f.Name == "" {
		return fmt.Errorf("name is required")
	}
	if f.FacilityCode == "" {
		return fmt.Errorf("facility_code is required")
	}
	if !validFacilityTypes[f.FacilityType] {
		return fmt.Errorf("invalid facility type: %s", f.FacilityType)
	}
	if f.WardID == uuid.Nil {
		return fmt.Errorf("ward_id is required")
	}
	w, err := s.wards.GetByID(ctx, f.WardID)
	if err != nil {
		return ErrParentNotFound
	}
	f.SubCountyID = w.SubCountyID
	return s.facilities.Create(ctx, f)
}

func (s *Service) GetFacility(ctx context.Context, id uuid.UUID) (*Facility, error) {
	return s.facilities.GetByID(ctx, id)
}

func (s *Service) GetFacilityByCode(ctx context.Context, code string) (*Facility, error) {
	return s.facilities.GetByCode(ctx, code)
}

func (s *Service) UpdateFacility(ctx context.Context, f *Facility) error {
	if f.FacilityType != "" && !validFacilityTypes[f.FacilityType] {
		return fmt.Errorf("invalid facility type: %s", f.FacilityType)
	}
	return s.facilities.Update(ctx, f)
}

func (s *Service) ListFacilities(ctx context.Context, limit, offset int) ([]*Facility, int, error) {
	return s.facilities.List(ctx, limit, offset)
}

func (s *Service) ListFacilitiesByWard(ctx context.Context, wardID uuid.UUID, limit, offset int) ([]*Facility, int, error) {
	return s.facilities.ListByWard(ctx, wardID, limit, offset)
}

// -- Community Unit --

func (s *Service) CreateCommunityUnit(ctx context.Context, cu *CommunityUnit) error {
	if cu.Name == "" {
		return fmt.Errorf("name is required")
	}
	if cu.Code == "" {
		return fmt.Errorf("code is required")
	}
	if cu.WardID == uuid.Nil {
		return fmt.Errorf("ward_id is required")
	}
	if cu.TargetPopulation <= 0 {
		return fmt.Errorf("target_population must be positive")
	}
	if _, err := s.wards.GetByID(ctx, cu.WardID); err != nil {
		return ErrParentNotFound
	}
	if cu.LinkedFacilityID != nil {
		if _, err := s.facilities.GetByID(ctx, *cu.LinkedFacilityID); err != nil {
			return fmt.Errorf("linked facility not found")
		}
	}
	cu.IsActive = true
	return s.communityUnits.Create(ctx, cu)
}

func (s *Service) GetCommunityUnit(ctx context.Context, id uuid.UUID) (*CommunityUnit, error) {
	return s.communityUnits.GetByID(ctx, id)
}

func (s *Service) GetCommunityUnitByCode(ctx context.Context, code string) (*CommunityUnit, error) {
	return s.communityUnits.GetByCode(ctx, code)
}

func (s *Service) UpdateCommunityUnit(ctx context.Context, cu *CommunityUnit) error {
	return s.communityUnits.Update(ctx, cu)
}

func (s *Service) ListCommunityUnitsByWard(ctx context.Context, wardID uuid.UUID, limit, offset int) ([]*CommunityUnit, int, error) {
	return s.communityUnits.ListByWard(ctx, wardID, limit, offset)
}
