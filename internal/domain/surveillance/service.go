package surveillance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a report does not exist.
var ErrNotFound = errors.New("not found")

var validSources = map[string]bool{
	SourceFacility: true, SourceCHV: true, SourceLaboratory: true,
	SourceSchool: true,
}

var validDeathCategories = map[string]bool{
	DeathNeonatal: true, DeathInfant: true, DeathChild: true,
	DeathMaternal: true, DeathAdult: true,
}

type Service struct {
	reports Repository
	deaths  MortalityRepository
}

func NewService(reports Repository, deaths MortalityRepository) *Service {
	return &Service{reports: reports, deaths: deaths}
}

// -- Surveillance reports --

func (s *Service) RecordReport(ctx context.Context, r *Report) error {
	if r.DiseaseName == "" {
		return fmt.Errorf("disease_name is required")
	}
	if r.WardID == uuid.Nil {
		return fmt.Errorf("ward_id is required")
	}
	if !validSources[r.Source] {
		return fmt.Errorf("invalid source: %s", r.Source)
	}
	if r.PeriodStart.IsZero() || r.PeriodEnd.IsZero() {
		return fmt.Errorf("period_start and period_end are required")
	}
	if r.PeriodEnd.Before(r.PeriodStart) {
		return fmt.Errorf("period_end may not precede period_start")
	}
	if r.CasesSuspected < 0 || r.CasesConfirmed < 0 || r.Deaths < 0 {
		return fmt.Errorf("case counts may not be negative")
	}
	if r.CasesConfirmed > r.CasesSuspected {
		r.CasesSuspected = r.CasesConfirmed
	}
	if r.ReportDate.IsZero() {
		r.ReportDate = time.Now()
	}
	if r.ReportDate.After(time.Now()) {
		return fmt.Errorf("report_date may not be in the future")
	}
	if r.ReportNumber == "" {
		seq, err := s.reports.NextSequence(ctx)
		if err != nil {
			return err
		}
		r.ReportNumber = fmt.Sprintf("SUR-%s-%05d", r.ReportDate.Format("20060102"), seq)
	}
	return s.reports.Create(ctx, r)
}

func (s *Service) GetReport(ctx context.Context, id uuid.UUID) (*Report, error) {
	return s.reports.GetByID(ctx, id)
}

func (s *Service) GetReportByNumber(ctx context.Context, number string) (*Report, error) {
	return s.reports.GetByNumber(ctx, number)
}

func (s *Service) UpdateReport(ctx context.Context, r *Report) error {
	if r.Source != "" && !validSources[r.Source] {
		return fmt.Errorf("invalid source: %s", r.Source)
	}
	return s.reports.Update(ctx, r)
}

// DeclareOutbreak flags the report's disease as an outbreak and records
// the response taken. Declaring also marks the response as initiated.
func (s *Service) DeclareOutbreak(ctx context.Context, id uuid.UUID, details string) (*Report, error) {
	r, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.OutbreakDeclared = true
	r.ResponseInitiated = true
	if details != "" {
		r.ResponseDetails = &details
	}
	if err := s.reports.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) ListReports(ctx context.Context, filter ListFilter, limit, offset int) ([]*Report, int, error) {
	if filter.Source != "" && !validSources[filter.Source] {
		return nil, 0, fmt.Errorf("invalid source: %s", filter.Source)
	}
	return s.reports.List(ctx, filter, limit, offset)
}

// -- Mortality reports --

func (s *Service) RecordDeath(ctx context.Context, m *MortalityReport) error {
	if !validDeathCategories[m.DeathCategory] {
		return fmt.Errorf("invalid death category: %s", m.DeathCategory)
	}
	if m.WardID == uuid.Nil {
		return fmt.Errorf("ward_id is required")
	}
	if m.ImmediateCause == "" {
		return fmt.Errorf("immediate_cause is required")
	}
	if m.DateOfDeath.IsZero() {
		return fmt.Errorf("date_of_death is required")
	}
	if m.DateOfDeath.After(time.Now()) {
		return fmt.Errorf("date_of_death may not be in the future")
	}
	if m.PlaceOfDeath == "" {
		return fmt.Errorf("place_of_death is required")
	}
	// Maternal deaths are pregnancy related regardless of what the
	// reporter filled in.
	if m.DeathCategory == DeathMaternal {
		m.PregnancyRelated = true
	}
	if m.ReportDate.IsZero() {
		m.ReportDate = time.Now()
	}
	return s.deaths.Create(ctx, m)
}

func (s *Service) GetDeath(ctx context.Context, id uuid.UUID) (*MortalityReport, error) {
	return s.deaths.GetByID(ctx, id)
}

func (s *Service) ListDeaths(ctx context.Context, filter MortalityFilter, limit, offset int) ([]*MortalityReport, int, error) {
	if filter.DeathCategory != "" && !validDeathCategories[filter.DeathCategory] {
		return nil, 0, fmt.Errorf("invalid death category: %s", filter.DeathCategory)
	}
	return s.deaths.List(ctx, filter, limit, offset)
}
