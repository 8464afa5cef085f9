package referral

import (
	"time"

	"github.com/google/uuid"
)

// Referral statuses.
const (
	StatusPending   = "PENDING"
	StatusAccepted  = "ACCEPTED"
	StatusInTransit = "IN_TRANSIT"
	StatusArrived   = "ARRIVED"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
)

// Referral urgencies.
const (
	UrgencyRoutine   = "ROUTINE"
	UrgencyUrgent    = "URGENT"
	UrgencyEmergency = "EMERGENCY"
)

type Referral struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	ReferralNumber string     `db:"referral_number" json:"referral_number"`
	PersonID       uuid.UUID  `db:"person_id" json:"person_id"`
	FromFacilityID uuid.UUID  `db:"from_facility_id" json:"from_facility_id"`
	ToFacilityID   uuid.UUID  `db:"to_facility_id" json:"to_facility_id"`
	ReferredBy     *uuid.UUID `db:"referred_by" json:"referred_by,omitempty"`
	Urgency        string     `db:"urgency" json:"urgency"`
	Reason         string     `db:"reason" json:"reason"`
	Diagnosis      *string    `db:"diagnosis" json:"diagnosis,omitempty"`
	TreatmentGiven *string    `db:"treatment_given" json:"treatment_given,omitempty"`
	Status         string     `db:"status" json:"status"`
	ReferralDate   time.Time  `db:"referral_date" json:"referral_date"`
	AcceptedBy     *uuid.UUID `db:"accepted_by" json:"accepted_by,omitempty"`
	AcceptedDate   *time.Time `db:"accepted_date" json:"accepted_date,omitempty"`
	ArrivalDate    *time.Time `db:"arrival_date" json:"arrival_date,omitempty"`
	CompletionDate *time.Time `db:"completion_date" json:"completion_date,omitempty"`
	Outcome        *string    `db:"outcome" json:"outcome,omitempty"`
	Feedback       *string    `db:"feedback" json:"feedback,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// FollowUp is a note attached to a referral as it moves through its
// lifecycle. Follow-ups are append-only.
type FollowUp struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	ReferralID   uuid.UUID  `db:"referral_id" json:"referral_id"`
	StatusUpdate string     `db:"status_update" json:"status_update"`
	Notes        *string    `db:"notes" json:"notes,omitempty"`
	ActionTaken  *string    `db:"action_taken" json:"action_taken,omitempty"`
	RecordedBy   *uuid.UUID `db:"recorded_by" json:"recorded_by,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}
