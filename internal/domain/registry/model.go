package registry

import (
	"time"

	"github.com/google/uuid"
)

// Household maps to the household table.
type Household struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	HouseholdNumber string     `db:"household_number" json:"household_number"`
	CommunityUnitID uuid.UUID  `db:"community_unit_id" json:"community_unit_id"`
	WardID          uuid.UUID  `db:"ward_id" json:"ward_id"`
	AssignedCHVID   *uuid.UUID `db:"assigned_chv_id" json:"assigned_chv_id,omitempty"`
	Village         *string    `db:"village" json:"village,omitempty"`
	PhysicalAddress *string    `db:"physical_address" json:"physical_address,omitempty"`
	Latitude        *float64   `db:"latitude" json:"latitude,omitempty"`
	Longitude       *float64   `db:"longitude" json:"longitude,omitempty"`
	NumberOfMembers int        `db:"number_of_members" json:"number_of_members"`
	HasToilet       *bool      `db:"has_toilet" json:"has_toilet,omitempty"`
	WaterSource     *string    `db:"water_source" json:"water_source,omitempty"`
	RegistrationDate time.Time `db:"registration_date" json:"registration_date"`
	IsActive        bool       `db:"is_active" json:"is_active"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

// Person maps to the person table.
type Person struct {
	ID                     uuid.UUID  `db:"id" json:"id"`
	FirstName              string     `db:"first_name" json:"first_name"`
	MiddleName             *string    `db:"middle_name" json:"middle_name,omitempty"`
	LastName               string     `db:"last_name" json:"last_name"`
	DateOfBirth            time.Time  `db:"date_of_birth" json:"date_of_birth"`
	Gender                 string     `db:"gender" json:"gender"`
	NationalID             *string    `db:"national_id" json:"national_id,omitempty"`
	NHIFNumber             *string    `db:"nhif_number" json:"nhif_number,omitempty"`
	BirthCertificateNumber *string    `db:"birth_certificate_number" json:"birth_certificate_number,omitempty"`
	Phone                  *string    `db:"phone" json:"phone,omitempty"`
	AlternatePhone         *string    `db:"alternate_phone" json:"alternate_phone,omitempty"`
	HouseholdID            uuid.UUID  `db:"household_id" json:"household_id"`
	IsHouseholdHead        bool       `db:"is_household_head" json:"is_household_head"`
	BloodGroup             *string    `db:"blood_group" json:"blood_group,omitempty"`
	ChronicConditions      []string   `db:"chronic_conditions" json:"chronic_conditions,omitempty"`
	Allergies              *string    `db:"allergies" json:"allergies,omitempty"`
	IsAlive                bool       `db:"is_alive" json:"is_alive"`
	DateOfDeath            *time.Time `db:"date_of_death" json:"date_of_death,omitempty"`
	Anonymized             bool       `db:"anonymized" json:"anonymized"`
	CreatedAt              time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt              time.Time  `db:"updated_at" json:"updated_at"`
}

// Age returns the person's age in whole years at the given date. The
// year difference is corrected when the birthday has not yet occurred
// in the current year.
func (p *Person) Age(at time.Time) int {
	years := at.Year() - p.DateOfBirth.Year()
	if at.Month() < p.DateOfBirth.Month() ||
		(at.Month() == p.DateOfBirth.Month() && at.Day() < p.DateOfBirth.Day()) {
		years--
	}
	return years
}

// FullName joins the person's names, skipping an absent middle name.
func (p *Person) FullName() string {
	if p.MiddleName != nil && *p.MiddleName != "" {
		return p.FirstName + " " + *p.MiddleName + " " + p.LastName
	}
	return p.FirstName + " " + p.LastName
}
