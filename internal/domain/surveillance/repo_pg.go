package surveillance

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

const reportCols = `id, report_number, disease_name, disease_code, report_date,
	period_start, period_end, ward_id, facility_id, source, reported_by,
	cases_suspected, cases_confirmed, deaths, cases_under_5, cases_5_to_15,
	cases_over_15, males, females, outbreak_declared, response_initiated,
	response_details, notes, created_at, updated_at`

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func scanReport(row pgx.Row) (*Report, error) {
	var r Report
	err := row.Scan(&r.ID, &r.ReportNumber, &r.DiseaseName, &r.DiseaseCode,
		&r.ReportDate, &r.PeriodStart, &r.PeriodEnd, &r.WardID, &r.FacilityID,
		&r.Source, &r.ReportedBy, &r.CasesSuspected, &r.CasesConfirmed,
		&r.Deaths, &r.CasesUnder5, &r.Cases5To15, &r.CasesOver15, &r.Males,
		&r.Females, &r.OutbreakDeclared, &r.ResponseInitiated,
		&r.ResponseDetails, &r.Notes, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &r, nil
}

func (r *repoPG) Create(ctx context.Context, rep *Report) error {
	rep.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO surveillance_report (id, report_number, disease_name,
			disease_code, report_date, period_start, period_end, ward_id,
			facility_id, source, reported_by, cases_suspected, cases_confirmed,
			deaths, cases_under_5, cases_5_to_15, cases_over_15, males, females,
			outbreak_declared, response_initiated, response_details, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23)`,
		rep.ID, rep.ReportNumber, rep.DiseaseName, rep.DiseaseCode,
		rep.ReportDate, rep.PeriodStart, rep.PeriodEnd, rep.WardID,
		rep.FacilityID, rep.Source, rep.ReportedBy, rep.CasesSuspected,
		rep.CasesConfirmed, rep.Deaths, rep.CasesUnder5, rep.Cases5To15,
		rep.CasesOver15, rep.Males, rep.Females, rep.OutbreakDeclared,
		rep.ResponseInitiated, rep.ResponseDetails, rep.Notes)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Report, error) {
	row := r.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM surveillance_report WHERE id = $1`, reportCols), id)
	return scanReport(row)
}

func (r *repoPG) GetByNumber(ctx context.Context, number string) (*Report, error) {
	row := r.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM surveillance_report WHERE report_number = $1`, reportCols), number)
	return scanReport(row)
}

func (r *repoPG) Update(ctx context.Context, rep *Report) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE surveillance_report SET disease_name = $2, disease_code = $3,
			source = $4, cases_suspected = $5, cases_confirmed = $6,
			deaths = $7, cases_under_5 = $8, cases_5_to_15 = $9,
			cases_over_15 = $10, males = $11, females = $12,
			outbreak_declared = $13, response_initiated = $14,
			response_details = $15, notes = $16, updated_at = NOW()
		WHERE id = $1`,
		rep.ID, rep.DiseaseName, rep.DiseaseCode, rep.Source,
		rep.CasesSuspected, rep.CasesConfirmed, rep.Deaths, rep.CasesUnder5,
		rep.Cases5To15, rep.CasesOver15, rep.Males, rep.Females,
		rep.OutbreakDeclared, rep.ResponseInitiated, rep.ResponseDetails,
		rep.Notes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, filter ListFilter, limit, offset int) ([]*Report, int, error) {
	where := ``
	var args []any
	add := func(clause string, val any) {
		args = append(args, val)
		if where == `` {
			where = `WHERE `
		} else {
			where += ` AND `
		}
		where += fmt.Sprintf(clause, len(args))
	}
	if filter.WardID != uuid.Nil {
		add(`ward_id = $%d`, filter.WardID)
	}
	if filter.FacilityID != uuid.Nil {
		add(`facility_id = $%d`, filter.FacilityID)
	}
	if filter.DiseaseName != "" {
		add(`disease_name = $%d`, filter.DiseaseName)
	}
	if filter.Source != "" {
		add(`source = $%d`, filter.Source)
	}
	if filter.Outbreak != nil {
		add(`outbreak_declared = $%d`, *filter.Outbreak)
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM surveillance_report `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	rows, err := r.pool.Query(ctx, fmt.Sprintf(
		`SELECT %s FROM surveillance_report %s ORDER BY report_date DESC LIMIT $%d OFFSET $%d`,
		reportCols, where, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*Report
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, rep)
	}
	return out, total, rows.Err()
}

func (r *repoPG) NextSequence(ctx context.Context) (int64, error) {
	var seq int64
	err := r.pool.QueryRow(ctx, `SELECT nextval('surveillance_report_number_seq')`).Scan(&seq)
	return seq, err
}

// -- Mortality --

const mortalityCols = `id, deceased_person_id, death_category, date_of_death,
	place_of_death, facility_id, ward_id, immediate_cause, underlying_cause,
	contributing_factors, pregnancy_related, timing, reported_by, report_date,
	autopsy_done, autopsy_findings, death_certificate_issued, notes, created_at`

type mortalityRepoPG struct {
	pool *pgxpool.Pool
}

func NewMortalityRepoPG(pool *pgxpool.Pool) MortalityRepository {
	return &mortalityRepoPG{pool: pool}
}

func scanMortality(row pgx.Row) (*MortalityReport, error) {
	var m MortalityReport
	err := row.Scan(&m.ID, &m.DeceasedPersonID, &m.DeathCategory,
		&m.DateOfDeath, &m.PlaceOfDeath, &m.FacilityID, &m.WardID,
		&m.ImmediateCause, &m.UnderlyingCause, &m.ContributingFactors,
		&m.PregnancyRelated, &m.Timing, &m.ReportedBy, &m.ReportDate,
		&m.AutopsyDone, &m.AutopsyFindings, &m.DeathCertificateIssued,
		&m.Notes, &m.CreatedAt)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &m, nil
}

func (r *mortalityRepoPG) Create(ctx context.Context, m *MortalityReport) error {
	m.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO mortality_report (id, deceased_person_id, death_category,
			date_of_death, place_of_death, facility_id, ward_id,
			immediate_cause, underlying_cause, contributing_factors,
			pregnancy_related, timing, reported_by, report_date, autopsy_done,
			autopsy_findings, death_certificate_issued, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18)`,
		m.ID, m.DeceasedPersonID, m.DeathCategory, m.DateOfDeath,
		m.PlaceOfDeath, m.FacilityID, m.WardID, m.ImmediateCause,
		m.UnderlyingCause, m.ContributingFactors, m.PregnancyRelated,
		m.Timing, m.ReportedBy, m.ReportDate, m.AutopsyDone,
		m.AutopsyFindings, m.DeathCertificateIssued, m.Notes)
	return err
}

func (r *mortalityRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*MortalityReport, error) {
	row := r.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM mortality_report WHERE id = $1`, mortalityCols), id)
	return scanMortality(row)
}

func (r *mortalityRepoPG) List(ctx context.Context, filter MortalityFilter, limit, offset int) ([]*MortalityReport, int, error) {
	where := ``
	var args []any
	add := func(clause string, val any) {
		args = append(args, val)
		if where == `` {
			where = `WHERE `
		} else {
			where += ` AND `
		}
		where += fmt.Sprintf(clause, len(args))
	}
	if filter.WardID != uuid.Nil {
		add(`ward_id = $%d`, filter.WardID)
	}
	if filter.FacilityID != uuid.Nil {
		add(`facility_id = $%d`, filter.FacilityID)
	}
	if filter.DeathCategory != "" {
		add(`death_category = $%d`, filter.DeathCategory)
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM mortality_report `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	rows, err := r.pool.Query(ctx, fmt.Sprintf(
		`SELECT %s FROM mortality_report %s ORDER BY date_of_death DESC LIMIT $%d OFFSET $%d`,
		mortalityCols, where, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*MortalityReport
	for rows.Next() {
		m, err := scanMortality(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, m)
	}
	return out, total, rows.Err()
}
