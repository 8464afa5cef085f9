package admin

import (
	"time"

	"github.com/google/uuid"
)

// County maps to the county table.
type County struct {
	ID            uuid.UUID `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Code          string    `db:"code" json:"code"`
	Population    *int      `db:"population" json:"population,omitempty"`
	ContactPerson *string   `db:"contact_person" json:"contact_person,omitempty"`
	Phone         *string   `db:"phone" json:"phone,omitempty"`
	Email         *string   `db:"email" json:"email,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// SubCounty maps to the subcounty table.
type SubCounty struct {
	ID         uuid.UUID `db:"id" json:"id"`
	CountyID   uuid.UUID `db:"county_id" json:"county_id"`
	Name       string    `db:"name" json:"name"`
	Code       string    `db:"code" json:"code"`
	Population *int      `db:"population" json:"population,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// Ward maps to the ward table.
type Ward struct {
	ID          uuid.UUID `db:"id" json:"id"`
	SubCountyID uuid.UUID `db:"subcounty_id" json:"subcounty_id"`
	Name        string    `db:"name" json:"name"`
	Code        string    `db:"code" json:"code"`
	Population  *int      `db:"population" json:"population,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Facility maps to the facility table.
type Facility struct {
	ID              uuid.UUID `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	FacilityCode    string    `db:"facility_code" json:"facility_code"`
	FacilityType    string    `db:"facility_type" json:"facility_type"`
	WardID          uuid.UUID `db:"ward_id" json:"ward_id"`
	SubCountyID     uuid.UUID `db:"subcounty_id" json:"subcounty_id"`
	Latitude        *float64  `db:"latitude" json:"latitude,omitempty"`
	Longitude       *float64  `db:"longitude" json:"longitude,omitempty"`
	Phone           *string   `db:"phone" json:"phone,omitempty"`
	Email           *string   `db:"email" json:"email,omitempty"`
	PhysicalAddress *string   `db:"physical_address" json:"physical_address,omitempty"`
	IsOperational   bool      `db:"is_operational" json:"is_operational"`
	BedCapacity     *int      `db:"bed_capacity" json:"bed_capacity,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// CommunityUnit maps to the community_unit table.
type CommunityUnit struct {
	ID               uuid.UUID  `db:"id" json:"id"`
	Name             string     `db:"name" json:"name"`
	Code             string     `db:"code" json:"code"`
	WardID           uuid.UUID  `db:"ward_id" json:"ward_id"`
	LinkedFacilityID *uuid.UUID `db:"linked_facility_id" json:"linked_facility_id,omitempty"`
	TargetPopulation int        `db:"target_population" json:"target_population"`
	TargetHouseholds *int       `db:"target_households" json:"target_households,omitempty"`
	IsActive         bool       `db:"is_active" json:"is_active"`
	EstablishedDate  *time.Time `db:"established_date" json:"established_date,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}
