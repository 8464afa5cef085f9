package clinical

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a clinical record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrVisitSlotTaken is returned when an ANC visit number is already
	// recorded for the pregnancy.
	ErrVisitSlotTaken = errors.New("visit number already recorded for this pregnancy")
)

var validScreeningTypes = map[string]bool{
	"TB": true, "HIV": true, "DIABETES": true, "HYPERTENSION": true,
	"MALNUTRITION": true, "CERVICAL_CANCER": true,
}

var validScreeningResults = map[string]bool{
	"NEGATIVE": true, "POSITIVE": true, "INCONCLUSIVE": true, "REFERRED": true,
}

// gestationDays is the conventional term length used to derive an
// estimated delivery date from the last menstrual period.
const gestationDays = 280

type Service struct {
	pregnancies   PregnancyRepository
	ancVisits     ANCVisitRepository
	pncVisits     PNCVisitRepository
	immunizations ImmunizationRepository
	screenings    ScreeningRepository
}

func NewService(
	pregnancies PregnancyRepository,
	ancVisits ANCVisitRepository,
	pncVisits PNCVisitRepository,
	immunizations ImmunizationRepository,
	screenings ScreeningRepository,
) *Service {
	return &Service{
		pregnancies:   pregnancies,
		ancVisits:     ancVisits,
		pncVisits:     pncVisits,
		immunizations: immunizations,
		screenings:    screenings,
	}
}

// -- Pregnancy --

func (s *Service) CreatePregnancy(ctx context.Context, p *Pregnancy) error {
	if p.PersonID == uuid.Nil {
		return fmt.Errorf("person_id is required")
	}
	if p.LMPDate.IsZero() {
		return fmt.Errorf("lmp_date is required")
	}
	if p.LMPDate.After(time.Now()) {
		return fmt.Errorf("lmp_date may not be in the future")
	}
	if p.EDD.IsZero() {
		p.EDD = p.LMPDate.AddDate(0, 0, gestationDays)
	}
	if p.Gravida < 1 {
		p.Gravida = 1
	}
	p.IsActive = true
	return s.pregnancies.Create(ctx, p)
}

func (s *Service) GetPregnancy(ctx context.Context, id uuid.UUID) (*Pregnancy, error) {
	return s.pregnancies.GetByID(ctx, id)
}

func (s *Service) UpdatePregnancy(ctx context.Context, p *Pregnancy) error {
	return s.pregnancies.Update(ctx, p)
}

// RecordDeliveryOutcome closes an active pregnancy with its outcome.
func (s *Service) RecordDeliveryOutcome(ctx context.Context, pregnancyID uuid.UUID, date time.Time, outcome string, facilityID *uuid.UUID) (*Pregnancy, error) {
	p, err := s.pregnancies.GetByID(ctx, pregnancyID)
	if err != nil {
		return nil, err
	}
	if date.IsZero() || date.After(time.Now()) {
		return nil, fmt.Errorf("invalid delivery date")
	}
	if outcome == "" {
		return nil, fmt.Errorf("delivery_outcome is required")
	}
	p.DeliveryDate = &date
	p.DeliveryOutcome = &outcome
	p.DeliveryFacilityID = facilityID
	p.IsActive = false
	if err := s.pregnancies.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) ListPregnanciesByPerson(ctx context.Context, personID uuid.UUID, limit, offset int) ([]*Pregnancy, int, error) {
	return s.pregnancies.ListByPerson(ctx, personID, limit, offset)
}

func (s *Service) ListPregnancies(ctx context.Context, limit, offset int) ([]*Pregnancy, int, error) {
	return s.pregnancies.List(ctx, limit, offset)
}

// -- ANC Visit --

func (s *Service) RecordANCVisit(ctx context.Context, v *ANCVisit) error {
	if v.PregnancyID == uuid.Nil {
		return fmt.Errorf("pregnancy_id is required")
	}
	if v.VisitNumber < 1 {
		return fmt.Errorf("visit_number must be positive")
	}
	if v.VisitDate.IsZero() {
		v.VisitDate = time.Now()
	}
	if v.VisitDate.After(time.Now()) {
		return fmt.Errorf("visit_date may not be in the future")
	}
	if _, err := s.pregnancies.GetByID(ctx, v.PregnancyID); err != nil {
		return err
	}
	if existing, err := s.ancVisits.GetByVisitNumber(ctx, v.PregnancyID, v.VisitNumber); err == nil && existing != nil {
		return ErrVisitSlotTaken
	}
	if err := s.ancVisits.Create(ctx, v); err != nil {
		return err
	}
	return s.pregnancies.IncrementANCVisits(ctx, v.PregnancyID)
}

func (s *Service) GetANCVisit(ctx context.Context, id uuid.UUID) (*ANCVisit, error) {
	return s.ancVisits.GetByID(ctx, id)
}

func (s *Service) UpdateANCVisit(ctx context.Context, v *ANCVisit) error {
	return s.ancVisits.Update(ctx, v)
}

func (s *Service) ListANCVisits(ctx context.Context, pregnancyID uuid.UUID, limit, offset int) ([]*ANCVisit, int, error) {
	return s.ancVisits.ListByPregnancy(ctx, pregnancyID, limit, offset)
}

// -- PNC Visit --

func (s *Service) RecordPNCVisit(ctx context.Context, v *PNCVisit) error {
	if v.PregnancyID == uuid.Nil {
		return fmt.Errorf("pregnancy_id is required")
	}
	if v.PersonID == uuid.Nil {
		return fmt.Errorf("person_id is required")
	}
	if v.VisitDate.IsZero() {
		v.VisitDate = time.Now()
	}
	if v.VisitDate.After(time.Now()) {
		return fmt.Errorf("visit_date may not be in the future")
	}
	p, err := s.pregnancies.GetByID(ctx, v.PregnancyID)
	if err != nil {
		return err
	}
	if v.DaysPostpartum == nil && p.DeliveryDate != nil {
		days := int(v.VisitDate.Sub(*p.DeliveryDate).Hours() / 24)
		v.DaysPostpartum = &days
	}
	return s.pncVisits.Create(ctx, v)
}

func (s *Service) GetPNCVisit(ctx context.Context, id uuid.UUID) (*PNCVisit, error) {
	return s.pncVisits.GetByID(ctx, id)
}

func (s *Service) UpdatePNCVisit(ctx context.Context, v *PNCVisit) error {
	return s.pncVisits.Update(ctx, v)
}

func (s *Service) ListPNCVisits(ctx context.Context, pregnancyID uuid.UUID, limit, offset int) ([]*PNCVisit, int, error) {
	return s.pncVisits.ListByPregnancy(ctx, pregnancyID, limit, offset)
}

// -- Immunization --

func (s *Service) RecordImmunization(ctx context.Context, im *Immunization) error {
	if im.PersonID == uuid.Nil {
		return fmt.Errorf("person_id is required")
	}
	if im.VaccineName == "" || im.VaccineCode == "" {
		return fmt.Errorf("vaccine_name and vaccine_code are required")
	}
	if im.DoseNumber < 1 {
		return fmt.Errorf("dose_number must be positive")
	}
	if im.AdministrationDate.IsZero() {
		im.AdministrationDate = time.Now()
	}
	if im.AdministrationDate.After(time.Now()) {
		return fmt.Errorf("administration_date may not be in the future")
	}
	return s.immunizations.Create(ctx, im)
}

func (s *Service) GetImmunization(ctx context.Context, id uuid.UUID) (*Immunization, error) {
	return s.immunizations.GetByID(ctx, id)
}

func (s *Service) ListImmunizations(ctx context.Context, personID uuid.UUID, limit, offset int) ([]*Immunization, int, error) {
	return s.immunizations.ListByPerson(ctx, personID, limit, offset)
}

// -- Screening --

func (s *Service) RecordScreening(ctx context.Context, sc *Screening) error {
	if sc.PersonID == uuid.Nil {
		return fmt.Errorf("person_id is required")
	}
	if !validScreeningTypes[sc.ScreeningType] {
		return fmt.Errorf("invalid screening type: %s", sc.ScreeningType)
	}
	if !validScreeningResults[sc.Result] {
		return fmt.Errorf("invalid screening result: %s", sc.Result)
	}
	if sc.ScreeningDate.IsZero() {
		sc.ScreeningDate = time.Now()
	}
	if sc.ScreeningDate.After(time.Now()) {
		return fmt.Errorf("screening_date may not be in the future")
	}
	if sc.Result == "POSITIVE" || sc.Result == "REFERRED" {
		sc.FollowUpRequired = true
	}
	return s.screenings.Create(ctx, sc)
}

func (s *Service) GetScreening(ctx context.Context, id uuid.UUID) (*Screening, error) {
	return s.screenings.GetByID(ctx, id)
}

func (s *Service) UpdateScreening(ctx context.Context, sc *Screening) error {
	if sc.Result != "" && !validScreeningResults[sc.Result] {
		return fmt.Errorf("invalid screening result: %s", sc.Result)
	}
	return s.screenings.Update(ctx, sc)
}

func (s *Service) ListScreenings(ctx context.Context, personID uuid.UUID, limit, offset int) ([]*Screening, int, error) {
	return s.screenings.ListByPerson(ctx, personID, limit, offset)
}
