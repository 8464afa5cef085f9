package reporting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	// ErrNotFound is returned when a report does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyApproved is returned when approving or regenerating a
	// report that has already been signed off.
	ErrAlreadyApproved = errors.New("report already approved")
)

type Service struct {
	reports    Repository
	aggregator Aggregator
	facilities FacilityLister
	log        zerolog.Logger
}

func NewService(reports Repository, aggregator Aggregator, facilities FacilityLister, log zerolog.Logger) *Service {
	return &Service{reports: reports, aggregator: aggregator, facilities: facilities, log: log}
}

func validPeriod(year, month int) error {
	if year < 2000 || year > time.Now().Year()+1 {
		return fmt.Errorf("invalid year: %d", year)
	}
	if month < 1 || month > 12 {
		return fmt.Errorf("invalid month: %d", month)
	}
	return nil
}

// Generate computes the facility's aggregates for the month and upserts
// the report. Approved reports are frozen and cannot be regenerated.
func (s *Service) Generate(ctx context.Context, facilityID uuid.UUID, year, month int) (*MonthlyReport, error) {
	if facilityID == uuid.Nil {
		return nil, fmt.Errorf("facility_id is required")
	}
	if err := validPeriod(year, month); err != nil {
		return nil, err
	}

	if existing, err := s.reports.Get(ctx, facilityID, year, month); err == nil && existing.Approved {
		return nil, ErrAlreadyApproved
	}

	metrics, err := s.aggregator.Aggregate(ctx, facilityID, Period{Year: year, Month: month})
	if err != nil {
		return nil, err
	}

	report := &MonthlyReport{
		FacilityID:         facilityID,
		Year:               year,
		Month:              month,
		ANCVisits:          metrics.ANCVisits,
		Deliveries:         metrics.Deliveries,
		ImmunizationsGiven: metrics.ImmunizationsGiven,
		ScreeningsDone:     metrics.ScreeningsDone,
		ReferralsOut:       metrics.ReferralsOut,
		ReferralsCompleted: metrics.ReferralsCompleted,
		StockoutCount:      metrics.StockoutCount,
		DiseaseCasesConf:   metrics.DiseaseCasesConf,
		DeathsReported:     metrics.DeathsReported,
		GeneratedAt:        time.Now(),
	}
	if err := s.reports.Upsert(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// GenerateAll runs Generate for every operational facility. Failures
// are logged and skipped so one bad facility does not abort the run.
func (s *Service) GenerateAll(ctx context.Context, year, month int) error {
	if err := validPeriod(year, month); err != nil {
		return err
	}
	facilityIDs, err := s.facilities.OperationalFacilityIDs(ctx)
	if err != nil {
		return err
	}
	for _, id := range facilityIDs {
		if _, err := s.Generate(ctx, id, year, month); err != nil {
			if errors.Is(err, ErrAlreadyApproved) {
				continue
			}
			s.log.Error().Err(err).
				Str("facility_id", id.String()).
				Int("year", year).Int("month", month).
				Msg("monthly report generation failed")
		}
	}
	return nil
}

func (s *Service) GetReport(ctx context.Context, id uuid.UUID) (*MonthlyReport, error) {
	return s.reports.GetByID(ctx, id)
}

func (s *Service) GetReportForPeriod(ctx context.Context, facilityID uuid.UUID, year, month int) (*MonthlyReport, error) {
	return s.reports.Get(ctx, facilityID, year, month)
}

// Approve signs off a report. Approval is a one-way gate.
func (s *Service) Approve(ctx context.Context, id, approvedBy uuid.UUID) (*MonthlyReport, error) {
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report.Approved {
		return nil, ErrAlreadyApproved
	}
	if approvedBy == uuid.Nil {
		return nil, fmt.Errorf("approving user is required")
	}
	if err := s.reports.Approve(ctx, id, approvedBy); err != nil {
		return nil, err
	}
	return s.reports.GetByID(ctx, id)
}

func (s *Service) ListReports(ctx context.Context, filter ListFilter, limit, offset int) ([]*MonthlyReport, int, error) {
	if filter.Month != 0 && (filter.Month < 1 || filter.Month > 12) {
		return nil, 0, fmt.Errorf("invalid month: %d", filter.Month)
	}
	return s.reports.List(ctx, filter, limit, offset)
}
