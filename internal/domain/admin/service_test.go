package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

// -- Mock Repositories --

type mockCountyRepo struct {
	records map[uuid.UUID]*County
}

func newMockCountyRepo() *mockCountyRepo {
	return &mockCountyRepo{records: make(map[uuid.UUID]*County)}
}

func (m *mockCountyRepo) Create(_ context.Context, c *County) error {
	c.ID = uuid.New()
	c.CreatedAt = time.Now()
	c.UpdatedAt = time.Now()
	m.records[c.ID] = c
	return nil
}

func (m *mockCountyRepo) GetByID(_ context.Context, id uuid.UUID) (*County, error) {
	c, ok := m.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return c, nil
}

func (m *mockCountyRepo) GetByCode(_ context.Context, code string) (*County, error) {
	for _, c := range m.records {
		if c.Code == code {
			return c, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockCountyRepo) Update(_ context.Context, c *County) error {
	m.records[c.ID] = c
	return nil
}

func (m *mockCountyRepo) List(_ context.Context, limit, offset int) ([]*County, int, error) {
	var result []*County
	for _, c := range m.records {
		result = append(result, c)
	}
	return result, len(result), nil
}

type mockSubCountyRepo struct {
	records map[uuid.UUID]*SubCounty
}

func newMockSubCountyRepo() *mockSubCountyRepo {
	return &mockSubCountyRepo{records: make(map[uuid.UUID]*SubCounty)}
}

func (m *mockSubCountyRepo) Create(_ context.Context, sc *SubCounty) error {
	sc.ID = uuid.New()
	m.records[sc.ID] = sc
	return nil
}

func (m *mockSubCountyRepo) GetByID(_ context.Context, id uuid.UUID) (*SubCounty, error) {
	sc, ok := m.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return sc, nil
}

func (m *mockSubCountyRepo) GetByCode(_ context.Context, code string) (*SubCounty, error) {
	for _, sc := range m.records {
		if sc.Code == code {
			return sc, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockSubCountyRepo) Update(_ context.Context, sc *SubCounty) error {
	m.records[sc.ID] = sc
	return nil
}

func (m *mockSubCountyRepo) ListByCounty(_ context.Context, countyID uuid.UUID, limit, offset int) ([]*SubCounty, int, error) {
	var result []*SubCounty
	for _, sc := range m.records {
		if sc.CountyID == countyID {
			result = append(result, sc)
		}
	}
	return result, len(result), nil
}

type mockWardRepo struct {
	records map[uuid.UUID]*Ward
}

func newMockWardRepo() *mockWardRepo {
	return &mockWardRepo{records: make(map[uuid.UUID]*Ward)}
}

func (m *mockWardRepo) Create(_ context.Context, w *Ward) error {
	w.ID = uuid.New()
	m.records[w.ID] = w
	return nil
}

func (m *mockWardRepo) GetByID(_ context.Context, id uuid.UUID) (*Ward, error) {
	w, ok := m.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return w, nil
}

func (m *mockWardRepo) GetByCode(_ context.Context, code string) (*Ward, error) {
	for _, w := range m.records {
		if w.Code == code {
			return w, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockWardRepo) Update(_ context.Context, w *Ward) error {
	m.records[w.ID] = w
	return nil
}

func (m *mockWardRepo) ListBySubCounty(_ context.Context, subcountyID uuid.UUID, limit, offset int) ([]*Ward, int, error) {
	var result []*Ward
	for _, w := range m.records {
		if w.SubCountyID == subcountyID {
			result = append(result, w)
		}
	}
	return result, len(result), nil
}

type mockFacilityRepo struct {
	records map[uuid.UUID]*Facility
}

func newMockFacilityRepo() *mockFacilityRepo {
	return &mockFacilityRepo{records: make(map[uuid.UUID]*Facility)}
}

func (m *mockFacilityRepo) Create(_ context.Context, f *Facility) error {
	f.ID = uuid.New()
	m.records[f.ID] = f
	return nil
}

func (m *mockFacilityRepo) GetByID(_ context.Context, id uuid.UUID) (*Facility, error) {
	f, ok := m.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return f, nil
}

func (m *mockFacilityRepo) GetByCode(_ context.Context, code string) (*Facility, error) {
	for _, f := range m.records {
		if f.FacilityCode == code {
			return f, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockFacilityRepo) Update(_ context.Context, f *Facility) error {
	m.records[f.ID] = f
	return nil
}

func (m *mockFacilityRepo) List(_ context.Context, limit, offset int) ([]*Facility, int, error) {
	var result []*Facility
	for _, f := range m.records {
		result = append(result, f)
	}
	return result, len(result), nil
}

func (m *mockFacilityRepo) ListByWard(_ context.Context, wardID uuid.UUID, limit, offset int) ([]*Facility, int, error) {
	var result []*Facility
	for _, f := range m.records {
		if f.WardID == wardID {
			result = append(result, f)
		}
	}
	return result, len(result), nil
}

type mockCommunityUnitRepo struct {
	records map[uuid.UUID]*CommunityUnit
}

func newMockCommunityUnitRepo() *mockCommunityUnitRepo {
	return &mockCommunityUnitRepo{records: make(map[uuid.UUID]*CommunityUnit)}
}

func (m *mockCommunityUnitRepo) Create(_ context.Context, cu *CommunityUnit) error {
	cu.ID = uuid.New()
	m.records[cu.ID] = cu
	return nil
}

func (m *mockCommunityUnitRepo) GetByID(_ context.Context, id uuid.UUID) (*CommunityUnit, error) {
	cu, ok := m.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cu, nil
}

func (m *mockCommunityUnitRepo) GetByCode(_ context.Context, code string) (*CommunityUnit, error) {
	for _, cu := range m.records {
		if cu.Code == code {
			return cu, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockCommunityUnitRepo) Update(_ context.Context, cu *CommunityUnit) error {
	m.records[cu.ID] = cu
	return nil
}

func (m *mockCommunityUnitRepo) ListByWard(_ context.Context, wardID uuid.UUID, limit, offset int) ([]*CommunityUnit, int, error) {
	var result []*CommunityUnit
	for _, cu := range m.records {
		if cu.WardID == wardID {
			result = append(result, cu)
		}
	}
	return result, len(result), nil
}

func newTestService() *Service {
	return NewService(
		newMockCountyRepo(),
		newMockSubCountyRepo(),
		newMockWardRepo(),
		newMockFacilityRepo(),
		newMockCommunityUnitRepo(),
	)
}

// seedHierarchy creates a county, subcounty and ward and returns them.
func seedHierarchy(t *testing.T, svc *Service) (*County, *SubCounty, *Ward) {
	t.Helper()
	county := &County{Name: "Kisumu", Code: "042"}
	if err := svc.CreateCounty(context.Background(), county); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sc := &SubCounty{CountyID: county.ID, Name: "Kisumu East", Code: "042-01"}
	if err := svc.CreateSubCounty(context.Background(), sc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w := &Ward{SubCountyID: sc.ID, Name: "Kolwa East", Code: "042-01-03"}
	if err := svc.CreateWard(context.Background(), w); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return county, sc, w
}

// -- County Tests --

func TestCreateCounty(t *testing.T) {
	svc := newTestService()
	c := &County{Name: "Kisumu", Code: "042"}
	err := svc.CreateCounty(context.Background(), c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ID == uuid.Nil {
		t.Error("expected ID to be set")
	}
}

func TestCreateCounty_NameRequired(t *testing.T) {
	svc := newTestService()
	err := svc.CreateCounty(context.Background(), &County{Code: "042"})
	if err == nil {
		t.Error("expected error for missing name")
	}
}

func TestGetCountyByCode(t *testing.T) {
	svc := newTestService()
	c := &County{Name: "Kisumu", Code: "042"}
	svc.CreateCounty(context.Background(), c)

	fetched, err := svc.GetCountyByCode(context.Background(), "042")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fetched.ID != c.ID {
		t.Error("id mismatch")
	}
}

// -- SubCounty / Ward Tests --

func TestCreateSubCounty_ParentMustExist(t *testing.T) {
	svc := newTestService()
	sc := &SubCounty{CountyID: uuid.New(), Name: "Kisumu East", Code: "042-01"}
	err := svc.CreateSubCounty(context.Background(), sc)
	if !errors.Is(err, ErrParentNotFound) {
		t.Errorf("expected ErrParentNotFound, got %v", err)
	}
}

func TestCreateWard_ParentMustExist(t *testing.T) {
	svc := newTestService()
	w := &Ward{SubCountyID: uuid.New(), Name: "Kolwa East", Code: "042-01-03"}
	err := svc.CreateWard(context.Background(), w)
	if !errors.Is(err, ErrParentNotFound) {
		t.Errorf("expected ErrParentNotFound, got %v", err)
	}
}

func TestCountyForWard(t *testing.T) {
	svc := newTestService()
	county, _, ward := seedHierarchy(t, svc)

	resolved, err := svc.CountyForWard(context.Background(), ward.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.ID != county.ID {
		t.Error("ward did not resolve to its county")
	}
}

func TestListSubCounties(t *testing.T) {
	svc := newTestService()
	county, _, _ := seedHierarchy(t, svc)

	items, total, err := svc.ListSubCounties(context.Background(), county.ID, 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || len(items) != 1 {
		t.Errorf("expected 1 subcounty, got %d", total)
	}
}

// -- Facility Tests --

func TestCreateFacility(t *testing.T) {
	svc := newTestService()
	_, sc, ward := seedHierarchy(t, svc)

	f := &Facility{Name: "Kolwa Dispensary", FacilityCode: "F-1001", FacilityType: "DISPENSARY", WardID: ward.ID}
	err := svc.CreateFacility(context.Background(), f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.SubCountyID != sc.ID {
		t.Error("expected subcounty to be derived from ward")
	}
}

func TestCreateFacility_InvalidType(t *testing.T) {
	svc := newTestService()
	_, _, ward := seedHierarchy(t, svc)

	f := &Facility{Name: "X", FacilityCode: "F-1", FacilityType: "MOBILE", WardID: ward.ID}
	err := svc.CreateFacility(context.Background(), f)
	if err == nil {
		t.Error("expected error for invalid facility type")
	}
}

func TestCreateFacility_WardMustExist(t *testing.T) {
	svc := newTestService()
	f := &Facility{Name: "X", FacilityCode: "F-1", FacilityType: "DISPENSARY", WardID: uuid.New()}
	err := svc.CreateFacility(context.Background(), f)
	if !errors.Is(err, ErrParentNotFound) {
		t.Errorf("expected ErrParentNotFound, got %v", err)
	}
}

func TestListFacilitiesByWard(t *testing.T) {
	svc := newTestService()
	_, _, ward := seedHierarchy(t, svc)
	svc.CreateFacility(context.Background(), &Facility{Name: "A", FacilityCode: "F-1", FacilityType: "DISPENSARY", WardID: ward.ID})
	svc.CreateFacility(context.Background(), &Facility{Name: "B", FacilityCode: "F-2", FacilityType: "HEALTH_CENTRE", WardID: ward.ID})

	_, total, err := svc.ListFacilitiesByWard(context.Background(), ward.ID, 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 {
		t.Errorf("expected 2 facilities, got %d", total)
	}
}

// -- Community Unit Tests --

func TestCreateCommunityUnit(t *testing.T) {
	svc := newTestService()
	_, _, ward := seedHierarchy(t, svc)

	cu := &CommunityUnit{Name: "Kolwa CHU", Code: "CU-01", WardID: ward.ID, TargetPopulation: 5000}
	err := svc.CreateCommunityUnit(context.Background(), cu)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cu.IsActive {
		t.Error("expected new unit to be active")
	}
}

func TestCreateCommunityUnit_TargetPopulationRequired(t *testing.T) {
	svc := newTestService()
	_, _, ward := seedHierarchy(t, svc)

	cu := &CommunityUnit{Name: "Kolwa CHU", Code: "CU-01", WardID: ward.ID}
	err := svc.CreateCommunityUnit(context.Background(), cu)
	if err == nil {
		t.Error("expected error for missing target population")
	}
}
