package surveillance

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockRepo struct {
	reports map[uuid.UUID]*Report
	seq     int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{reports: make(map[uuid.UUID]*Report)}
}

func (m *mockRepo) Create(_ context.Context, r *Report) error {
	r.ID = uuid.New()
	m.reports[r.ID] = r
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Report, error) {
	r, ok := m.reports[id]
	if !ok {
		return nil, ErrNotFound
	}
	return r, nil
}

func (m *mockRepo) GetByNumber(_ context.Context, number string) (*Report, error) {
	for _, r := range m.reports {
		if r.ReportNumber == number {
			return r, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockRepo) Update(_ context.Context, r *Report) error {
	if _, ok := m.reports[r.ID]; !ok {
		return ErrNotFound
	}
	m.reports[r.ID] = r
	return nil
}

func (m *mockRepo) List(_ context.Context, filter ListFilter, _, _ int) ([]*Report, int, error) {
	var out []*Report
	for _, r := range m.reports {
		if filter.DiseaseName != "" && r.DiseaseName != filter.DiseaseName {
			continue
		}
		if filter.Source != "" && r.Source != filter.Source {
			continue
		}
		if filter.Outbreak != nil && r.OutbreakDeclared != *filter.Outbreak {
			continue
		}
		out = append(out, r)
	}
	return out, len(out), nil
}

func (m *mockRepo) NextSequence(_ context.Context) (int64, error) {
	m.seq++
	return m.seq, nil
}

type mockMortalityRepo struct {
	deaths map[uuid.UUID]*MortalityReport
}

func newMockMortalityRepo() *mockMortalityRepo {
	return &mockMortalityRepo{deaths: make(map[uuid.UUID]*MortalityReport)}
}

func (m *mockMortalityRepo) Create(_ context.Context, r *MortalityReport) error {
	r.ID = uuid.New()
	m.deaths[r.ID] = r
	return nil
}

func (m *mockMortalityRepo) GetByID(_ context.Context, id uuid.UUID) (*MortalityReport, error) {
	r, ok := m.deaths[id]
	if !ok {
		return nil, ErrNotFound
	}
	return r, nil
}

func (m *mockMortalityRepo) List(_ context.Context, filter MortalityFilter, _, _ int) ([]*MortalityReport, int, error) {
	var out []*MortalityReport
	for _, r := range m.deaths {
		if filter.DeathCategory != "" && r.DeathCategory != filter.DeathCategory {
			continue
		}
		out = append(out, r)
	}
	return out, len(out), nil
}

func newTestService() *Service {
	return NewService(newMockRepo(), newMockMortalityRepo())
}

func seedReport(t *testing.T, svc *Service) *Report {
	t.Helper()
	r := &Report{
		DiseaseName:    "Cholera",
		WardID:         uuid.New(),
		Source:         SourceFacility,
		PeriodStart:    time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:      time.Date(2026, 7, 7, 0, 0, 0, 0, time.UTC),
		CasesSuspected: 12,
		CasesConfirmed: 4,
		Deaths:         1,
	}
	if err := svc.RecordReport(context.Background(), r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return r
}

func TestRecordReport(t *testing.T) {
	svc := newTestService()
	r := seedReport(t, svc)

	if !strings.HasPrefix(r.ReportNumber, "SUR-") {
		t.Errorf("unexpected report number: %s", r.ReportNumber)
	}
	if r.OutbreakDeclared {
		t.Error("new report should not be an outbreak")
	}

	got, err := svc.GetReportByNumber(context.Background(), r.ReportNumber)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != r.ID {
		t.Errorf("lookup by number returned wrong report")
	}
}

func TestRecordReport_Validation(t *testing.T) {
	svc := newTestService()

	cases := map[string]*Report{
		"missing disease": {
			WardID: uuid.New(), Source: SourceFacility,
			PeriodStart: time.Now().AddDate(0, 0, -7), PeriodEnd: time.Now(),
		},
		"missing ward": {
			DiseaseName: "Measles", Source: SourceCHV,
			PeriodStart: time.Now().AddDate(0, 0, -7), PeriodEnd: time.Now(),
		},
		"bad source": {
			DiseaseName: "Measles", WardID: uuid.New(), Source: "RUMOUR",
			PeriodStart: time.Now().AddDate(0, 0, -7), PeriodEnd: time.Now(),
		},
		"inverted period": {
			DiseaseName: "Measles", WardID: uuid.New(), Source: SourceCHV,
			PeriodStart: time.Now(), PeriodEnd: time.Now().AddDate(0, 0, -7),
		},
		"negative counts": {
			DiseaseName: "Measles", WardID: uuid.New(), Source: SourceCHV,
			PeriodStart: time.Now().AddDate(0, 0, -7), PeriodEnd: time.Now(),
			CasesSuspected: -1,
		},
	}
	for name, r := range cases {
		t.Run(name, func(t *testing.T) {
			if err := svc.RecordReport(context.Background(), r); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestRecordReport_ConfirmedLiftsSuspected(t *testing.T) {
	svc := newTestService()
	r := &Report{
		DiseaseName:    "Cholera",
		WardID:         uuid.New(),
		Source:         SourceLaboratory,
		PeriodStart:    time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:      time.Date(2026, 7, 7, 0, 0, 0, 0, time.UTC),
		CasesSuspected: 2,
		CasesConfirmed: 5,
	}
	if err := svc.RecordReport(context.Background(), r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.CasesSuspected != 5 {
		t.Errorf("expected suspected lifted to 5, got %d", r.CasesSuspected)
	}
}

func TestDeclareOutbreak(t *testing.T) {
	svc := newTestService()
	r := seedReport(t, svc)

	got, err := svc.DeclareOutbreak(context.Background(), r.ID, "house-to-house chlorination started")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.OutbreakDeclared {
		t.Error("expected outbreak declared")
	}
	if !got.ResponseInitiated {
		t.Error("declaring an outbreak should mark the response as initiated")
	}
	if got.ResponseDetails == nil || *got.ResponseDetails == "" {
		t.Error("expected response details recorded")
	}
}

func TestDeclareOutbreak_NotFound(t *testing.T) {
	svc := newTestService()
	if _, err := svc.DeclareOutbreak(context.Background(), uuid.New(), ""); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListReports_OutbreakFilter(t *testing.T) {
	svc := newTestService()
	r1 := seedReport(t, svc)
	seedReport(t, svc)
	if _, err := svc.DeclareOutbreak(context.Background(), r1.ID, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	outbreak := true
	items, total, err := svc.ListReports(context.Background(), ListFilter{Outbreak: &outbreak}, 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || len(items) != 1 {
		t.Fatalf("expected 1 outbreak report, got %d", total)
	}
	if items[0].ID != r1.ID {
		t.Error("filter returned the wrong report")
	}
}

func TestListReports_InvalidSource(t *testing.T) {
	svc := newTestService()
	if _, _, err := svc.ListReports(context.Background(), ListFilter{Source: "RUMOUR"}, 20, 0); err == nil {
		t.Error("expected error for invalid source filter")
	}
}

func TestRecordDeath(t *testing.T) {
	svc := newTestService()
	m := &MortalityReport{
		DeathCategory:  DeathChild,
		WardID:         uuid.New(),
		DateOfDeath:    time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC),
		PlaceOfDeath:   "Township Health Centre",
		ImmediateCause: "severe dehydration",
	}
	if err := svc.RecordDeath(context.Background(), m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.PregnancyRelated {
		t.Error("child death should not be marked pregnancy related")
	}
	if m.ReportDate.IsZero() {
		t.Error("expected report date defaulted")
	}
}

func TestRecordDeath_MaternalForcesPregnancyRelated(t *testing.T) {
	svc := newTestService()
	m := &MortalityReport{
		DeathCategory:  DeathMaternal,
		WardID:         uuid.New(),
		DateOfDeath:    time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC),
		PlaceOfDeath:   "home",
		ImmediateCause: "postpartum haemorrhage",
	}
	if err := svc.RecordDeath(context.Background(), m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !m.PregnancyRelated {
		t.Error("maternal death must be pregnancy related")
	}
}

func TestRecordDeath_Validation(t *testing.T) {
	svc := newTestService()

	cases := map[string]*MortalityReport{
		"bad category": {
			DeathCategory: "UNKNOWN", WardID: uuid.New(),
			DateOfDeath: time.Now(), PlaceOfDeath: "home",
			ImmediateCause: "sepsis",
		},
		"missing cause": {
			DeathCategory: DeathAdult, WardID: uuid.New(),
			DateOfDeath: time.Now(), PlaceOfDeath: "home",
		},
		"future date": {
			DeathCategory: DeathAdult, WardID: uuid.New(),
			DateOfDeath: time.Now().AddDate(0, 0, 1), PlaceOfDeath: "home",
			ImmediateCause: "sepsis",
		},
		"missing place": {
			DeathCategory: DeathAdult, WardID: uuid.New(),
			DateOfDeath:    time.Now(),
			ImmediateCause: "sepsis",
		},
	}
	for name, m := range cases {
		t.Run(name, func(t *testing.T) {
			if err := svc.RecordDeath(context.Background(), m); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestListDeaths_CategoryFilter(t *testing.T) {
	svc := newTestService()
	for _, cat := range []string{DeathNeonatal, DeathAdult, DeathAdult} {
		m := &MortalityReport{
			DeathCategory:  cat,
			WardID:         uuid.New(),
			DateOfDeath:    time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC),
			PlaceOfDeath:   "home",
			ImmediateCause: "sepsis",
		}
		if err := svc.RecordDeath(context.Background(), m); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	_, total, err := svc.ListDeaths(context.Background(), MortalityFilter{DeathCategory: DeathAdult}, 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 {
		t.Errorf("expected 2 adult deaths, got %d", total)
	}

	if _, _, err := svc.ListDeaths(context.Background(), MortalityFilter{DeathCategory: "UNKNOWN"}, 20, 0); err == nil {
		t.Error("expected error for invalid category filter")
	}
}
