package referral

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

const referralCols = `id, referral_number, person_id, from_facility_id, to_facility_id,
	referred_by, urgency, reason, diagnosis, treatment_given, status, referral_date,
	accepted_by, accepted_date, arrival_date, completion_date, outcome, feedback,
	created_at, updated_at`

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func scanReferral(row pgx.Row) (*Referral, error) {
	var r Referral
	err := row.Scan(&r.ID, &r.ReferralNumber, &r.PersonID, &r.FromFacilityID,
		&r.ToFacilityID, &r.ReferredBy, &r.Urgency, &r.Reason, &r.Diagnosis,
		&r.TreatmentGiven, &r.Status, &r.ReferralDate, &r.AcceptedBy,
		&r.AcceptedDate, &r.ArrivalDate, &r.CompletionDate, &r.Outcome,
		&r.Feedback, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &r, nil
}

func (r *repoPG) Create(ctx context.Context, ref *Referral) error {
	ref.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO referral (id, referral_number, person_id, from_facility_id,
			to_facility_id, referred_by, urgency, reason, diagnosis,
			treatment_given, status, referral_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		ref.ID, ref.ReferralNumber, ref.PersonID, ref.FromFacilityID,
		ref.ToFacilityID, ref.ReferredBy, ref.Urgency, ref.Reason,
		ref.Diagnosis, ref.TreatmentGiven, ref.Status, ref.ReferralDate)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Referral, error) {
	row := r.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM referral WHERE id = $1`, referralCols), id)
	return scanReferral(row)
}

func (r *repoPG) GetByNumber(ctx context.Context, number string) (*Referral, error) {
	row := r.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM referral WHERE referral_number = $1`, referralCols), number)
	return scanReferral(row)
}

func (r *repoPG) Update(ctx context.Context, ref *Referral) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE referral SET urgency = $2, reason = $3, diagnosis = $4,
			treatment_given = $5, status = $6, accepted_by = $7,
			accepted_date = $8, arrival_date = $9, completion_date = $10,
			outcome = $11, feedback = $12, updated_at = NOW()
		WHERE id = $1`,
		ref.ID, ref.Urgency, ref.Reason, ref.Diagnosis, ref.TreatmentGiven,
		ref.Status, ref.AcceptedBy, ref.AcceptedDate, ref.ArrivalDate,
		ref.CompletionDate, ref.Outcome, ref.Feedback)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, filter ListFilter, limit, offset int) ([]*Referral, int, error) {
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
	if filter.PersonID != uuid.Nil {
		add(`person_id = $%d`, filter.PersonID)
	}
	if filter.FromFacilityID != uuid.Nil {
		add(`from_facility_id = $%d`, filter.FromFacilityID)
	}
	if filter.ToFacilityID != uuid.Nil {
		add(`to_facility_id = $%d`, filter.ToFacilityID)
	}
	if filter.Status != "" {
		add(`status = $%d`, filter.Status)
	}
	if filter.Urgency != "" {
		add(`urgency = $%d`, filter.Urgency)
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM referral `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	rows, err := r.pool.Query(ctx, fmt.Sprintf(
		`SELECT %s FROM referral %s ORDER BY referral_date DESC LIMIT $%d OFFSET $%d`,
		referralCols, where, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*Referral
	for rows.Next() {
		ref, err := scanReferral(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, ref)
	}
	return out, total, rows.Err()
}

func (r *repoPG) NextSequence(ctx context.Context) (int64, error) {
	var seq int64
	err := r.pool.QueryRow(ctx, `SELECT nextval('referral_number_seq')`).Scan(&seq)
	return seq, err
}

// -- Follow-ups --

const followUpCols = `id, referral_id, status_update, notes, action_taken, recorded_by, created_at`

type followUpRepoPG struct {
	pool *pgxpool.Pool
}

func NewFollowUpRepoPG(pool *pgxpool.Pool) FollowUpRepository {
	return &followUpRepoPG{pool: pool}
}

func (r *followUpRepoPG) Create(ctx context.Context, f *FollowUp) error {
	f.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO referral_follow_up (id, referral_id, status_update, notes,
			action_taken, recorded_by)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		f.ID, f.ReferralID, f.StatusUpdate, f.Notes, f.ActionTaken, f.RecordedBy)
	return err
}

func (r *followUpRepoPG) ListByReferral(ctx context.Context, referralID uuid.UUID, limit, offset int) ([]*FollowUp, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM referral_follow_up WHERE referral_id = $1`, referralID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, fmt.Sprintf(
		`SELECT %s FROM referral_follow_up WHERE referral_id = $1
		 ORDER BY created_at LIMIT $2 OFFSET $3`, followUpCols),
		referralID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*FollowUp
	for rows.Next() {
		var f FollowUp
		if err := rows.Scan(&f.ID, &f.ReferralID, &f.StatusUpdate, &f.Notes,
			&f.ActionTaken, &f.RecordedBy, &f.CreatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, &f)
	}
	return out, total, rows.Err()
}
