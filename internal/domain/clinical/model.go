package clinical

import (
	"time"

	"github.com/google/uuid"
)

// Pregnancy maps to the pregnancy table.
type Pregnancy struct {
	ID                 uuid.UUID  `db:"id" json:"id"`
	PersonID           uuid.UUID  `db:"person_id" json:"person_id"`
	LMPDate            time.Time  `db:"lmp_date" json:"lmp_date"`
	EDD                time.Time  `db:"edd" json:"edd"`
	Gravida            int        `db:"gravida" json:"gravida"`
	Parity             int        `db:"parity" json:"parity"`
	RiskFactors        []string   `db:"risk_factors" json:"risk_factors,omitempty"`
	IsHighRisk         bool       `db:"is_high_risk" json:"is_high_risk"`
	ANCVisitsCompleted int        `db:"anc_visits_completed" json:"anc_visits_completed"`
	DeliveryDate       *time.Time `db:"delivery_date" json:"delivery_date,omitempty"`
	DeliveryOutcome    *string    `db:"delivery_outcome" json:"delivery_outcome,omitempty"`
	DeliveryFacilityID *uuid.UUID `db:"delivery_facility_id" json:"delivery_facility_id,omitempty"`
	IsActive           bool       `db:"is_active" json:"is_active"`
	Notes              *string    `db:"notes" json:"notes,omitempty"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updated_at"`
}

// ANCVisit maps to the anc_visit table. Visit numbers are unique per
// pregnancy.
type ANCVisit struct {
	ID               uuid.UUID  `db:"id" json:"id"`
	PregnancyID      uuid.UUID  `db:"pregnancy_id" json:"pregnancy_id"`
	VisitNumber      int        `db:"visit_number" json:"visit_number"`
	VisitDate        time.Time  `db:"visit_date" json:"visit_date"`
	GestationWeeks   int        `db:"gestation_weeks" json:"gestation_weeks"`
	FacilityID       *uuid.UUID `db:"facility_id" json:"facility_id,omitempty"`
	AttendedBy       *uuid.UUID `db:"attended_by" json:"attended_by,omitempty"`
	Weight           *float64   `db:"weight" json:"weight,omitempty"`
	BloodPressure    *string    `db:"blood_pressure" json:"blood_pressure,omitempty"`
	Hemoglobin       *float64   `db:"hemoglobin" json:"hemoglobin,omitempty"`
	TestsDone        []string   `db:"tests_done" json:"tests_done,omitempty"`
	SupplementsGiven []string   `db:"supplements_given" json:"supplements_given,omitempty"`
	NextVisitDate    *time.Time `db:"next_visit_date" json:"next_visit_date,omitempty"`
	Notes            *string    `db:"notes" json:"notes,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
}

// PNCVisit maps to the pnc_visit table.
type PNCVisit struct {
	ID                  uuid.UUID  `db:"id" json:"id"`
	PregnancyID         uuid.UUID  `db:"pregnancy_id" json:"pregnancy_id"`
	PersonID            uuid.UUID  `db:"person_id" json:"person_id"`
	VisitDate           time.Time  `db:"visit_date" json:"visit_date"`
	DaysPostpartum      *int       `db:"days_postpartum" json:"days_postpartum,omitempty"`
	MotherCondition     *string    `db:"mother_condition" json:"mother_condition,omitempty"`
	BabyCondition       *string    `db:"baby_condition" json:"baby_condition,omitempty"`
	BreastfeedingStatus *string    `db:"breastfeeding_status" json:"breastfeeding_status,omitempty"`
	FacilityID          *uuid.UUID `db:"facility_id" json:"facility_id,omitempty"`
	AttendedBy          *uuid.UUID `db:"attended_by" json:"attended_by,omitempty"`
	Notes               *string    `db:"notes" json:"notes,omitempty"`
	CreatedAt           time.Time  `db:"created_at" json:"created_at"`
}

// Immunization maps to the immunization table.
type Immunization struct {
	ID                 uuid.UUID  `db:"id" json:"id"`
	PersonID           uuid.UUID  `db:"person_id" json:"person_id"`
	VaccineName        string     `db:"vaccine_name" json:"vaccine_name"`
	VaccineCode        string     `db:"vaccine_code" json:"vaccine_code"`
	DoseNumber         int        `db:"dose_number" json:"dose_number"`
	AdministrationDate time.Time  `db:"administration_date" json:"administration_date"`
	AdministeredBy     *uuid.UUID `db:"administered_by" json:"administered_by,omitempty"`
	FacilityID         *uuid.UUID `db:"facility_id" json:"facility_id,omitempty"`
	BatchNumber        *string    `db:"batch_number" json:"batch_number,omitempty"`
	ExpiryDate         *time.Time `db:"expiry_date" json:"expiry_date,omitempty"`
	Site               *string    `db:"site" json:"site,omitempty"`
	AdverseReaction    *string    `db:"adverse_reaction" json:"adverse_reaction,omitempty"`
	NextDoseDate       *time.Time `db:"next_dose_date" json:"next_dose_date,omitempty"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
}

// Screening maps to the screening table.
type Screening struct {
	ID               uuid.UUID      `db:"id" json:"id"`
	PersonID         uuid.UUID      `db:"person_id" json:"person_id"`
	ScreeningType    string         `db:"screening_type" json:"screening_type"`
	ScreeningDate    time.Time      `db:"screening_date" json:"screening_date"`
	ScreenedBy       *uuid.UUID     `db:"screened_by" json:"screened_by,omitempty"`
	FacilityID       *uuid.UUID     `db:"facility_id" json:"facility_id,omitempty"`
	Result           string         `db:"result" json:"result"`
	ResultDetails    map[string]any `db:"result_details" json:"result_details,omitempty"`
	FollowUpRequired bool           `db:"follow_up_required" json:"follow_up_required"`
	FollowUpDate     *time.Time     `db:"follow_up_date" json:"follow_up_date,omitempty"`
	Notes            *string        `db:"notes" json:"notes,omitempty"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
}
