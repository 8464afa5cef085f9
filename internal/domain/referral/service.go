package referral

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a referral does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidTransition is returned when a status change is not
	// allowed from the referral's current status.
	ErrInvalidTransition = errors.New("invalid status transition")
)

var validUrgencies = map[string]bool{
	UrgencyRoutine: true, UrgencyUrgent: true, UrgencyEmergency: true,
}

// allowedTransitions holds the forward edges of the referral lifecycle.
// Reopening closed referrals is handled separately by Reopen.
var allowedTransitions = map[string]map[string]bool{
	StatusPending:   {StatusAccepted: true, StatusCancelled: true},
	StatusAccepted:  {StatusInTransit: true, StatusCancelled: true},
	StatusInTransit: {StatusArrived: true, StatusCancelled: true},
	StatusArrived:   {StatusCompleted: true},
}

type Service struct {
	referrals Repository
	followUps FollowUpRepository
}

func NewService(referrals Repository, followUps FollowUpRepository) *Service {
	return &Service{referrals: referrals, followUps: followUps}
}

func (s *Service) CreateReferral(ctx context.Context, r *Referral) error {
	if r.PersonID == uuid.Nil {
		return fmt.Errorf("person_id is required")
	}
	if r.FromFacilityID == uuid.Nil || r.ToFacilityID == uuid.Nil {
		return fmt.Errorf("from_facility_id and to_facility_id are required")
	}
	if r.FromFacilityID == r.ToFacilityID {
		return fmt.Errorf("referral must cross facilities")
	}
	if r.Reason == "" {
		return fmt.Errorf("reason is required")
	}
	if r.Urgency == "" {
		r.Urgency = UrgencyRoutine
	}
	if !validUrgencies[r.Urgency] {
		return fmt.Errorf("invalid urgency: %s", r.Urgency)
	}
	if r.ReferralDate.IsZero() {
		r.ReferralDate = time.Now()
	}
	r.Status = StatusPending
	if r.ReferralNumber == "" {
		seq, err := s.referrals.NextSequence(ctx)
		if err != nil {
			return err
		}
		r.ReferralNumber = fmt.Sprintf("REF-%s-%05d", r.ReferralDate.Format("20060102"), seq)
	}
	return s.referrals.Create(ctx, r)
}

func (s *Service) GetReferral(ctx context.Context, id uuid.UUID) (*Referral, error) {
	return s.referrals.GetByID(ctx, id)
}

func (s *Service) GetReferralByNumber(ctx context.Context, number string) (*Referral, error) {
	return s.referrals.GetByNumber(ctx, number)
}

func (s *Service) ListReferrals(ctx context.Context, filter ListFilter, limit, offset int) ([]*Referral, int, error) {
	if filter.Status != "" {
		switch filter.Status {
		case StatusPending, StatusAccepted, StatusInTransit, StatusArrived, StatusCompleted, StatusCancelled:
		default:
			return nil, 0, fmt.Errorf("invalid status: %s", filter.Status)
		}
	}
	return s.referrals.List(ctx, filter, limit, offset)
}

func (s *Service) transition(ctx context.Context, r *Referral, to string, recordedBy *uuid.UUID, notes *string) error {
	if !allowedTransitions[r.Status][to] {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, r.Status, to)
	}
	r.Status = to
	if err := s.referrals.Update(ctx, r); err != nil {
		return err
	}
	return s.followUps.Create(ctx, &FollowUp{
		ReferralID:   r.ID,
		StatusUpdate: to,
		Notes:        notes,
		RecordedBy:   recordedBy,
	})
}

// Accept marks a pending referral as accepted by the receiving facility.
func (s *Service) Accept(ctx context.Context, id uuid.UUID, acceptedBy uuid.UUID) (*Referral, error) {
	r, err := s.referrals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	r.AcceptedBy = &acceptedBy
	r.AcceptedDate = &now
	if err := s.transition(ctx, r, StatusAccepted, &acceptedBy, nil); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) MarkInTransit(ctx context.Context, id uuid.UUID, recordedBy *uuid.UUID) (*Referral, error) {
	r, err := s.referrals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.transition(ctx, r, StatusInTransit, recordedBy, nil); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) MarkArrived(ctx context.Context, id uuid.UUID, recordedBy *uuid.UUID) (*Referral, error) {
	r, err := s.referrals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	r.ArrivalDate = &now
	if err := s.transition(ctx, r, StatusArrived, recordedBy, nil); err != nil {
		return nil, err
	}
	return r, nil
}

// Complete closes an arrived referral with its clinical outcome and
// feedback for the referring facility.
func (s *Service) Complete(ctx context.Context, id uuid.UUID, outcome, feedback string, recordedBy *uuid.UUID) (*Referral, error) {
	r, err := s.referrals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if outcome == "" {
		return nil, fmt.Errorf("outcome is required")
	}
	now := time.Now()
	r.CompletionDate = &now
	r.Outcome = &outcome
	if feedback != "" {
		r.Feedback = &feedback
	}
	if err := s.transition(ctx, r, StatusCompleted, recordedBy, nil); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) Cancel(ctx context.Context, id uuid.UUID, reason string, recordedBy *uuid.UUID) (*Referral, error) {
	r, err := s.referrals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	var notes *string
	if reason != "" {
		notes = &reason
	}
	if err := s.transition(ctx, r, StatusCancelled, recordedBy, notes); err != nil {
		return nil, err
	}
	return r, nil
}

// Reopen returns a completed or cancelled referral to pending. The
// closure fields are kept for the record and a follow-up notes the
// reopening.
func (s *Service) Reopen(ctx context.Context, id uuid.UUID, reason string, recordedBy *uuid.UUID) (*Referral, error) {
	r, err := s.referrals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Status != StatusCompleted && r.Status != StatusCancelled {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, r.Status, StatusPending)
	}
	r.Status = StatusPending
	if err := s.referrals.Update(ctx, r); err != nil {
		return nil, err
	}
	var notes *string
	if reason != "" {
		notes = &reason
	}
	if err := s.followUps.Create(ctx, &FollowUp{
		ReferralID:   r.ID,
		StatusUpdate: StatusPending,
		Notes:        notes,
		RecordedBy:   recordedBy,
	}); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) AddFollowUp(ctx context.Context, f *FollowUp) error {
	if f.ReferralID == uuid.Nil {
		return fmt.Errorf("referral_id is required")
	}
	r, err := s.referrals.GetByID(ctx, f.ReferralID)
	if err != nil {
		return err
	}
	if f.StatusUpdate == "" {
		f.StatusUpdate = r.Status
	}
	return s.followUps.Create(ctx, f)
}

func (s *Service) ListFollowUps(ctx context.Context, referralID uuid.UUID, limit, offset int) ([]*FollowUp, int, error) {
	return s.followUps.ListByReferral(ctx, referralID, limit, offset)
}
