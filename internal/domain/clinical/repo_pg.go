package clinical

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func notFoundOr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// -- Pregnancy --

const pregnancyCols = `id, person_id, lmp_date, edd, gravida, parity, risk_factors,
	is_high_risk, anc_visits_completed, delivery_date, delivery_outcome,
	delivery_facility_id, is_active, notes, created_at, updated_at`

type pregnancyRepoPG struct {
	pool *pgxpool.Pool
}

func NewPregnancyRepoPG(pool *pgxpool.Pool) PregnancyRepository {
	return &pregnancyRepoPG{pool: pool}
}

func scanPregnancy(row pgx.Row) (*Pregnancy, error) {
	var p Pregnancy
	err := row.Scan(&p.ID, &p.PersonID, &p.LMPDate, &p.EDD, &p.Gravida, &p.Parity,
		&p.RiskFactors, &p.IsHighRisk, &p.ANCVisitsCompleted, &p.DeliveryDate,
		&p.DeliveryOutcome, &p.DeliveryFacilityID, &p.IsActive, &p.Notes,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &p, nil
}

func (r *pregnancyRepoPG) Create(ctx context.Context, p *Pregnancy) error {
	p.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO pregnancy (id, person_id, lmp_date, edd, gravida, parity,
			risk_factors, is_high_risk, anc_visits_completed, delivery_date,
			delivery_outcome, delivery_facility_id, is_active, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		p.ID, p.PersonID, p.LMPDate, p.EDD, p.Gravida, p.Parity,
		p.RiskFactors, p.IsHighRisk, p.ANCVisitsCompleted, p.DeliveryDate,
		p.DeliveryOutcome, p.DeliveryFacilityID, p.IsActive, p.Notes)
	return err
}

func (r *pregnancyRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Pregnancy, error) {
	row := r.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM pregnancy WHERE id = $1`, pregnancyCols), id)
	return scanPregnancy(row)
}

func (r *pregnancyRepoPG) Update(ctx context.Context, p *Pregnancy) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE pregnancy SET lmp_date = $2, edd = $3, gravida = $4, parity = $5,
			risk_factors = $6, is_high_risk = $7, anc_visits_completed = $8,
			delivery_date = $9, delivery_outcome = $10, delivery_facility_id = $11,
			is_active = $12, notes = $13, updated_at = NOW()
		WHERE id = $1`,
		p.ID, p.LMPDate, p.EDD, p.Gravida, p.Parity, p.RiskFactors, p.IsHighRisk,
		p.ANCVisitsCompleted, p.DeliveryDate, p.DeliveryOutcome,
		p.DeliveryFacilityID, p.IsActive, p.Notes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pregnancyRepoPG) IncrementANCVisits(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE pregnancy
		SET anc_visits_completed = anc_visits_completed + 1, updated_at = NOW()
		WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pregnancyRepoPG) listWhere(ctx context.Context, where string, args []any, limit, offset int) ([]*Pregnancy, int, error) {
	var total int
	countArgs := args
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM pregnancy `+where, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}
	args = append(args, limit, offset)
	rows, err := r.pool.Query(ctx, fmt.Sprintf(
		`SELECT %s FROM pregnancy %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		pregnancyCols, where, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*Pregnancy
	for rows.Next() {
		p, err := scanPregnancy(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

func (r *pregnancyRepoPG) ListByPerson(ctx context.Context, personID uuid.UUID, limit, offset int) ([]*Pregnancy, int, error) {
	return r.listWhere(ctx, `WHERE person_id = $1`, []any{personID}, limit, offset)
}

func (r *pregnancyRepoPG) List(ctx context.Context, limit, offset int) ([]*Pregnancy, int, error) {
	return r.listWhere(ctx, ``, nil, limit, offset)
}

// -- ANC Visit --

const ancVisitCols = `id, pregnancy_id, visit_number, visit_date, gestation_weeks,
	facility_id, attended_by, weight, blood_pressure, hemoglobin, tests_done,
	supplements_given, next_visit_date, notes, created_at`

type ancVisitRepoPG struct {
	pool *pgxpool.Pool
}

func NewANCVisitRepoPG(pool *pgxpool.Pool) ANCVisitRepository {
	return &ancVisitRepoPG{pool: pool}
}

func scanANCVisit(row pgx.Row) (*ANCVisit, error) {
	var v ANCVisit
	err := row.Scan(&v.ID, &v.PregnancyID, &v.VisitNumber, &v.VisitDate,
		&v.GestationWeeks, &v.FacilityID, &v.AttendedBy, &v.Weight,
		&v.BloodPressure, &v.Hemoglobin, &v.TestsDone, &v.SupplementsGiven,
		&v.NextVisitDate, &v.Notes, &v.CreatedAt)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &v, nil
}

func (r *ancVisitRepoPG) Create(ctx context.Context, v *ANCVisit) error {
	v.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO anc_visit (id, pregnancy_id, visit_number, visit_date,
			gestation_weeks, facility_id, attended_by, weight, blood_pressure,
			hemoglobin, tests_done, supplements_given, next_visit_date, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		v.ID, v.PregnancyID, v.VisitNumber, v.VisitDate, v.GestationWeeks,
		v.FacilityID, v.AttendedBy, v.Weight, v.BloodPressure, v.Hemoglobin,
		v.TestsDone, v.SupplementsGiven, v.NextVisitDate, v.Notes)
	return err
}

func (r *ancVisitRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*ANCVisit, error) {
	row := r.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM anc_visit WHERE id = $1`, ancVisitCols), id)
	return scanANCVisit(row)
}

func (r *ancVisitRepoPG) GetByVisitNumber(ctx context.Context, pregnancyID uuid.UUID, visitNumber int) (*ANCVisit, error) {
	row := r.pool.QueryRow(ctx, fmt.Sprintf(
		`SELECT %s FROM anc_visit WHERE pregnancy_id = $1 AND visit_number = $2`,
		ancVisitCols), pregnancyID, visitNumber)
	return scanANCVisit(row)
}

func (r *ancVisitRepoPG) Update(ctx context.Context, v *ANCVisit) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE anc_visit SET visit_date = $2, gestation_weeks = $3,
			facility_id = $4, attended_by = $5, weight = $6, blood_pressure = $7,
			hemoglobin = $8, tests_done = $9, supplements_given = $10,
			next_visit_date = $11, notes = $12
		WHERE id = $1`,
		v.ID, v.VisitDate, v.GestationWeeks, v.FacilityID, v.AttendedBy,
		v.Weight, v.BloodPressure, v.Hemoglobin, v.TestsDone,
		v.SupplementsGiven, v.NextVisitDate, v.Notes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ancVisitRepoPG) ListByPregnancy(ctx context.Context, pregnancyID uuid.UUID, limit, offset int) ([]*ANCVisit, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM anc_visit WHERE pregnancy_id = $1`, pregnancyID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, fmt.Sprintf(
		`SELECT %s FROM anc_visit WHERE pregnancy_id = $1
		 ORDER BY visit_number LIMIT $2 OFFSET $3`, ancVisitCols),
		pregnancyID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*ANCVisit
	for rows.Next() {
		v, err := scanANCVisit(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, v)
	}
	return out, total, rows.Err()
}

// -- PNC Visit --

const pncVisitCols = `id, pregnancy_id, person_id, visit_date, days_postpartum,
	mother_condition, baby_condition, breastfeeding_status, facility_id,
	attended_by, notes, created_at`

type pncVisitRepoPG struct {
	pool *pgxpool.Pool
}

func NewPNCVisitRepoPG(pool *pgxpool.Pool) PNCVisitRepository {
	return &pncVisitRepoPG{pool: pool}
}

func scanPNCVisit(row pgx.Row) (*PNCVisit, error) {
	var v PNCVisit
	err := row.Scan(&v.ID, &v.PregnancyID, &v.PersonID, &v.VisitDate,
		&v.DaysPostpartum, &v.MotherCondition, &v.BabyCondition,
		&v.BreastfeedingStatus, &v.FacilityID, &v.AttendedBy, &v.Notes,
		&v.CreatedAt)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &v, nil
}

func (r *pncVisitRepoPG) Create(ctx context.Context, v *PNCVisit) error {
	v.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO pnc_visit (id, pregnancy_id, person_id, visit_date,
			days_postpartum, mother_condition, baby_condition,
			breastfeeding_status, facility_id, attended_by, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		v.ID, v.PregnancyID, v.PersonID, v.VisitDate, v.DaysPostpartum,
		v.MotherCondition, v.BabyCondition, v.BreastfeedingStatus,
		v.FacilityID, v.AttendedBy, v.Notes)
	return err
}

func (r *pncVisitRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*PNCVisit, error) {
	row := r.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM pnc_visit WHERE id = $1`, pncVisitCols), id)
	return scanPNCVisit(row)
}

func (r *pncVisitRepoPG) Update(ctx context.Context, v *PNCVisit) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE pnc_visit SET visit_date = $2, days_postpartum = $3,
			mother_condition = $4, baby_condition = $5, breastfeeding_status = $6,
			facility_id = $7, attended_by = $8, notes = $9
		WHERE id = $1`,
		v.ID, v.VisitDate, v.DaysPostpartum, v.MotherCondition, v.BabyCondition,
		v.BreastfeedingStatus, v.FacilityID, v.AttendedBy, v.Notes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pncVisitRepoPG) ListByPregnancy(ctx context.Context, pregnancyID uuid.UUID, limit, offset int) ([]*PNCVisit, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM pnc_visit WHERE pregnancy_id = $1`, pregnancyID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, fmt.Sprintf(
		`SELECT %s FROM pnc_visit WHERE pregnancy_id = $1
		 ORDER BY visit_date LIMIT $2 OFFSET $3`, pncVisitCols),
		pregnancyID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*PNCVisit
	for rows.Next() {
		v, err := scanPNCVisit(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, v)
	}
	return out, total, rows.Err()
}

// -- Immunization --

const immunizationCols = `id, person_id, vaccine_name, vaccine_code, dose_number,
	administration_date, administered_by, facility_id, batch_number, expiry_date,
	site, adverse_reaction, next_dose_date, created_at`

type immunizationRepoPG struct {
	pool *pgxpool.Pool
}

func NewImmunizationRepoPG(pool *pgxpool.Pool) ImmunizationRepository {
	return &immunizationRepoPG{pool: pool}
}

func scanImmunization(row pgx.Row) (*Immunization, error) {
	var im Immunization
	err := row.Scan(&im.ID, &im.PersonID, &im.VaccineName, &im.VaccineCode,
		&im.DoseNumber, &im.AdministrationDate, &im.AdministeredBy,
		&im.FacilityID, &im.BatchNumber, &im.ExpiryDate, &im.Site,
		&im.AdverseReaction, &im.NextDoseDate, &im.CreatedAt)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &im, nil
}

func (r *immunizationRepoPG) Create(ctx context.Context, im *Immunization) error {
	im.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO immunization (id, person_id, vaccine_name, vaccine_code,
			dose_number, administration_date, administered_by, facility_id,
			batch_number, expiry_date, site, adverse_reaction, next_dose_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		im.ID, im.PersonID, im.VaccineName, im.VaccineCode, im.DoseNumber,
		im.AdministrationDate, im.AdministeredBy, im.FacilityID,
		im.BatchNumber, im.ExpiryDate, im.Site, im.AdverseReaction,
		im.NextDoseDate)
	return err
}

func (r *immunizationRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Immunization, error) {
	row := r.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM immunization WHERE id = $1`, immunizationCols), id)
	return scanImmunization(row)
}

func (r *immunizationRepoPG) ListByPerson(ctx context.Context, personID uuid.UUID, limit, offset int) ([]*Immunization, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM immunization WHERE person_id = $1`, personID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, fmt.Sprintf(
		`SELECT %s FROM immunization WHERE person_id = $1
		 ORDER BY administration_date LIMIT $2 OFFSET $3`, immunizationCols),
		personID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*Immunization
	for rows.Next() {
		im, err := scanImmunization(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, im)
	}
	return out, total, rows.Err()
}

// -- Screening --

const screeningCols = `id, person_id, screening_type, screening_date, screened_by,
	facility_id, result, result_details, follow_up_required, follow_up_date,
	notes, created_at`

type screeningRepoPG struct {
	pool *pgxpool.Pool
}

func NewScreeningRepoPG(pool *pgxpool.Pool) ScreeningRepository {
	return &screeningRepoPG{pool: pool}
}

func scanScreening(row pgx.Row) (*Screening, error) {
	var sc Screening
	err := row.Scan(&sc.ID, &sc.PersonID, &sc.ScreeningType, &sc.ScreeningDate,
		&sc.ScreenedBy, &sc.FacilityID, &sc.Result, &sc.ResultDetails,
		&sc.FollowUpRequired, &sc.FollowUpDate, &sc.Notes, &sc.CreatedAt)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &sc, nil
}

func (r *screeningRepoPG) Create(ctx context.Context, sc *Screening) error {
	sc.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO screening (id, person_id, screening_type, screening_date,
			screened_by, facility_id, result, result_details,
			follow_up_required, follow_up_date, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		sc.ID, sc.PersonID, sc.ScreeningType, sc.ScreeningDate, sc.ScreenedBy,
		sc.FacilityID, sc.Result, sc.ResultDetails, sc.FollowUpRequired,
		sc.FollowUpDate, sc.Notes)
	return err
}

func (r *screeningRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Screening, error) {
	row := r.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM screening WHERE id = $1`, screeningCols), id)
	return scanScreening(row)
}

func (r *screeningRepoPG) Update(ctx context.Context, sc *Screening) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE screening SET result = $2, result_details = $3,
			follow_up_required = $4, follow_up_date = $5, notes = $6
		WHERE id = $1`,
		sc.ID, sc.Result, sc.ResultDetails, sc.FollowUpRequired,
		sc.FollowUpDate, sc.Notes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *screeningRepoPG) ListByPerson(ctx context.Context, personID uuid.UUID, limit, offset int) ([]*Screening, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM screening WHERE person_id = $1`, personID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, fmt.Sprintf(
		`SELECT %s FROM screening WHERE person_id = $1
		 ORDER BY screening_date DESC LIMIT $2 OFFSET $3`, screeningCols),
		personID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*Screening
	for rows.Next() {
		sc, err := scanScreening(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, sc)
	}
	return out, total, rows.Err()
}
