package reporting

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

const reportCols = `id, facility_id, year, month, outpatient_visits,
	inpatient_admissions, anc_visits, deliveries, immunizations_given,
	screenings_done, referrals_out, referrals_completed, stockout_count,
	disease_cases_confirmed, deaths_reported, indicators, generated_at,
	approved, approved_by, approval_date, created_at, updated_at`

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func scanReport(row pgx.Row) (*MonthlyReport, error) {
	var r MonthlyReport
	err := row.Scan(&r.ID, &r.FacilityID, &r.Year, &r.Month, &r.OutpatientVisits,
		&r.InpatientAdmission, &r.ANCVisits, &r.Deliveries, &r.ImmunizationsGiven,
		&r.ScreeningsDone, &r.ReferralsOut, &r.ReferralsCompleted,
		&r.StockoutCount, &r.DiseaseCasesConf, &r.DeathsReported,
		&r.Indicators, &r.GeneratedAt, &r.Approved,
		&r.ApprovedBy, &r.ApprovalDate, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &r, nil
}

func (r *repoPG) Upsert(ctx context.Context, report *MonthlyReport) error {
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	return r.pool.QueryRow(ctx, `
		INSERT INTO monthly_report (id, facility_id, year, month,
			outpatient_visits, inpatient_admissions, anc_visits, deliveries,
			immunizations_given, screenings_done, referrals_out,
			referrals_completed, stockout_count, disease_cases_confirmed,
			deaths_reported, indicators, generated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17)
		ON CONFLICT (facility_id, year, month) DO UPDATE SET
			outpatient_visits = $5, inpatient_admissions = $6, anc_visits = $7,
			deliveries = $8, immunizations_given = $9, screenings_done = $10,
			referrals_out = $11, referrals_completed = $12, stockout_count = $13,
			disease_cases_confirmed = $14, deaths_reported = $15,
			indicators = $16, generated_at = $17, updated_at = NOW()
		RETURNING id`,
		report.ID, report.FacilityID, report.Year, report.Month,
		report.OutpatientVisits, report.InpatientAdmission, report.ANCVisits,
		report.Deliveries, report.ImmunizationsGiven, report.ScreeningsDone,
		report.ReferralsOut, report.ReferralsCompleted, report.StockoutCount,
		report.DiseaseCasesConf, report.DeathsReported,
		report.Indicators, report.GeneratedAt).Scan(&report.ID)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*MonthlyReport, error) {
	row := r.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM monthly_report WHERE id = $1`, reportCols), id)
	return scanReport(row)
}

func (r *repoPG) Get(ctx context.Context, facilityID uuid.UUID, year, month int) (*MonthlyReport, error) {
	row := r.pool.QueryRow(ctx, fmt.Sprintf(
		`SELECT %s FROM monthly_report
		 WHERE facility_id = $1 AND year = $2 AND month = $3`, reportCols),
		facilityID, year, month)
	return scanReport(row)
}

func (r *repoPG) Approve(ctx context.Context, id, approvedBy uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE monthly_report
		SET approved = TRUE, approved_by = $2, approval_date = NOW(), updated_at = NOW()
		WHERE id = $1 AND approved = FALSE`,
		id, approvedBy)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, filter ListFilter, limit, offset int) ([]*MonthlyReport, int, error) {
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
	if filter.FacilityID != uuid.Nil {
		add(`facility_id = $%d`, filter.FacilityID)
	}
	if filter.Year != 0 {
		add(`year = $%d`, filter.Year)
	}
	if filter.Month != 0 {
		add(`month = $%d`, filter.Month)
	}
	if filter.Approved != nil {
		add(`approved = $%d`, *filter.Approved)
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM monthly_report `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	rows, err := r.pool.Query(ctx, fmt.Sprintf(
		`SELECT %s FROM monthly_report %s
		 ORDER BY year DESC, month DESC LIMIT $%d OFFSET $%d`,
		reportCols, where, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*MonthlyReport
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, report)
	}
	return out, total, rows.Err()
}

// aggregatorPG computes monthly metrics with SQL over the operational
// tables.
type aggregatorPG struct {
	pool *pgxpool.Pool
}

func NewAggregatorPG(pool *pgxpool.Pool) Aggregator {
	return &aggregatorPG{pool: pool}
}

func (a *aggregatorPG) Aggregate(ctx context.Context, facilityID uuid.UUID, period Period) (*Metrics, error) {
	start, end := period.Start(), period.End()
	var m Metrics

	err := a.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM anc_visit
			 WHERE facility_id = $1 AND visit_date >= $2 AND visit_date < $3),
			(SELECT COUNT(*) FROM pregnancy
			 WHERE delivery_facility_id = $1 AND delivery_date >= $2 AND delivery_date < $3),
			(SELECT COUNT(*) FROM immunization
			 WHERE facility_id = $1 AND administration_date >= $2 AND administration_date < $3),
			(SELECT COUNT(*) FROM screening
			 WHERE facility_id = $1 AND screening_date >= $2 AND screening_date < $3),
			(SELECT COUNT(*) FROM referral
			 WHERE from_facility_id = $1 AND referral_date >= $2 AND referral_date < $3),
			(SELECT COUNT(*) FROM referral
			 WHERE from_facility_id = $1 AND status = 'COMPLETED'
			   AND completion_date >= $2 AND completion_date < $3),
			(SELECT COUNT(*) FROM stock
			 WHERE facility_id = $1 AND quantity = 0),
			(SELECT COALESCE(SUM(cases_confirmed), 0) FROM surveillance_report
			 WHERE facility_id = $1 AND period_start >= $2 AND period_start < $3),
			(SELECT COUNT(*) FROM mortality_report
			 WHERE facility_id = $1 AND date_of_death >= $2 AND date_of_death < $3)`,
		facilityID, start, end).Scan(
		&m.ANCVisits, &m.Deliveries, &m.ImmunizationsGiven, &m.ScreeningsDone,
		&m.ReferralsOut, &m.ReferralsCompleted, &m.StockoutCount,
		&m.DiseaseCasesConf, &m.DeathsReported)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// facilityListerPG feeds the scheduled roll-up from the facility table.
type facilityListerPG struct {
	pool *pgxpool.Pool
}

func NewFacilityListerPG(pool *pgxpool.Pool) FacilityLister {
	return &facilityListerPG{pool: pool}
}

func (f *facilityListerPG) OperationalFacilityIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := f.pool.Query(ctx,
		`SELECT id FROM facility WHERE is_operational = TRUE`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
