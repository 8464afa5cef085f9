package surveillance

import (
	"time"

	"github.com/google/uuid"
)

const (
	SourceFacility   = "FACILITY"
	SourceCHV        = "CHV"
	SourceLaboratory = "LABORATORY"
	SourceSchool     = "SCHOOL"
)

const (
	DeathNeonatal = "NEONATAL"
	DeathInfant   = "INFANT"
	DeathChild    = "CHILD"
	DeathMaternal = "MATERNAL"
	DeathAdult    = "ADULT"
)

// Report is one disease surveillance return for a ward and reporting
// period, with its case counts broken down by age band and sex.
type Report struct {
	ID                uuid.UUID  `db:"id" json:"id"`
	ReportNumber      string     `db:"report_number" json:"report_number"`
	DiseaseName       string     `db:"disease_name" json:"disease_name"`
	DiseaseCode       *string    `db:"disease_code" json:"disease_code,omitempty"`
	ReportDate        time.Time  `db:"report_date" json:"report_date"`
	PeriodStart       time.Time  `db:"period_start" json:"period_start"`
	PeriodEnd         time.Time  `db:"period_end" json:"period_end"`
	WardID            uuid.UUID  `db:"ward_id" json:"ward_id"`
	FacilityID        *uuid.UUID `db:"facility_id" json:"facility_id,omitempty"`
	Source            string     `db:"source" json:"source"`
	ReportedBy        *uuid.UUID `db:"reported_by" json:"reported_by,omitempty"`
	CasesSuspected    int        `db:"cases_suspected" json:"cases_suspected"`
	CasesConfirmed    int        `db:"cases_confirmed" json:"cases_confirmed"`
	Deaths            int        `db:"deaths" json:"deaths"`
	CasesUnder5       int        `db:"cases_under_5" json:"cases_under_5"`
	Cases5To15        int        `db:"cases_5_to_15" json:"cases_5_to_15"`
	CasesOver15       int        `db:"cases_over_15" json:"cases_over_15"`
	Males             int        `db:"males" json:"males"`
	Females           int        `db:"females" json:"females"`
	OutbreakDeclared  bool       `db:"outbreak_declared" json:"outbreak_declared"`
	ResponseInitiated bool       `db:"response_initiated" json:"response_initiated"`
	ResponseDetails   *string    `db:"response_details" json:"response_details,omitempty"`
	Notes             *string    `db:"notes" json:"notes,omitempty"`
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at" json:"updated_at"`
}

// MortalityReport records one death with its category, cause chain
// and certification status.
type MortalityReport struct {
	ID                     uuid.UUID  `db:"id" json:"id"`
	DeceasedPersonID       *uuid.UUID `db:"deceased_person_id" json:"deceased_person_id,omitempty"`
	DeathCategory          string     `db:"death_category" json:"death_category"`
	DateOfDeath            time.Time  `db:"date_of_death" json:"date_of_death"`
	PlaceOfDeath           string     `db:"place_of_death" json:"place_of_death"`
	FacilityID             *uuid.UUID `db:"facility_id" json:"facility_id,omitempty"`
	WardID                 uuid.UUID  `db:"ward_id" json:"ward_id"`
	ImmediateCause         string     `db:"immediate_cause" json:"immediate_cause"`
	UnderlyingCause        *string    `db:"underlying_cause" json:"underlying_cause,omitempty"`
	ContributingFactors    *string    `db:"contributing_factors" json:"contributing_factors,omitempty"`
	PregnancyRelated       bool       `db:"pregnancy_related" json:"pregnancy_related"`
	Timing                 *string    `db:"timing" json:"timing,omitempty"`
	ReportedBy             *uuid.UUID `db:"reported_by" json:"reported_by,omitempty"`
	ReportDate             time.Time  `db:"report_date" json:"report_date"`
	AutopsyDone            bool       `db:"autopsy_done" json:"autopsy_done"`
	AutopsyFindings        *string    `db:"autopsy_findings" json:"autopsy_findings,omitempty"`
	DeathCertificateIssued bool       `db:"death_certificate_issued" json:"death_certificate_issued"`
	Notes                  *string    `db:"notes" json:"notes,omitempty"`
	CreatedAt              time.Time  `db:"created_at" json:"created_at"`
}
