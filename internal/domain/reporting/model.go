package reporting

import (
	"time"

	"github.com/google/uuid"
)

// MonthlyReport is one facility's service summary for one calendar
// month. One row exists per (facility, year, month).
type MonthlyReport struct {
	ID                 uuid.UUID      `db:"id" json:"id"`
	FacilityID         uuid.UUID      `db:"facility_id" json:"facility_id"`
	Year               int            `db:"year" json:"year"`
	Month              int            `db:"month" json:"month"`
	OutpatientVisits   int            `db:"outpatient_visits" json:"outpatient_visits"`
	InpatientAdmission int            `db:"inpatient_admissions" json:"inpatient_admissions"`
	ANCVisits          int            `db:"anc_visits" json:"anc_visits"`
	Deliveries         int            `db:"deliveries" json:"deliveries"`
	ImmunizationsGiven int            `db:"immunizations_given" json:"immunizations_given"`
	ScreeningsDone     int            `db:"screenings_done" json:"screenings_done"`
	ReferralsOut       int            `db:"referrals_out" json:"referrals_out"`
	ReferralsCompleted int            `db:"referrals_completed" json:"referrals_completed"`
	StockoutCount      int            `db:"stockout_count" json:"stockout_count"`
	DiseaseCasesConf   int            `db:"disease_cases_confirmed" json:"disease_cases_confirmed"`
	DeathsReported     int            `db:"deaths_reported" json:"deaths_reported"`
	Indicators         map[string]any `db:"indicators" json:"indicators,omitempty"`
	GeneratedAt        time.Time      `db:"generated_at" json:"generated_at"`
	Approved           bool           `db:"approved" json:"approved"`
	ApprovedBy         *uuid.UUID     `db:"approved_by" json:"approved_by,omitempty"`
	ApprovalDate       *time.Time     `db:"approval_date" json:"approval_date,omitempty"`
	CreatedAt          time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at" json:"updated_at"`
}

// Metrics holds the aggregate counts computed for one facility-month.
type Metrics struct {
	ANCVisits          int
	Deliveries         int
	ImmunizationsGiven int
	ScreeningsDone     int
	ReferralsOut       int
	ReferralsCompleted int
	StockoutCount      int
	DiseaseCasesConf   int
	DeathsReported     int
}

// Period bounds a calendar month, start inclusive, end exclusive.
type Period struct {
	Year  int
	Month int
}

func (p Period) Start() time.Time {
	return time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
}

func (p Period) End() time.Time {
	return p.Start().AddDate(0, 1, 0)
}
