package registry

import (
	"context"
	"errors"

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

// =========== Household Repository ===========

type householdRepoPG struct{ pool *pgxpool.Pool }

func NewHouseholdRepoPG(pool *pgxpool.Pool) HouseholdRepository {
	return &householdRepoPG{pool: pool}
}

const householdCols = `id, household_number, community_unit_id, ward_id, assigned_chv_id,
	village, physical_address, latitude, longitude,
	number_of_members, has_toilet, water_source,
	registration_date, is_active, created_at, updated_at`

func (r *householdRepoPG) scanHousehold(row pgx.Row) (*Household, error) {
	var h Household
	err := row.Scan(&h.ID, &h.HouseholdNumber, &h.CommunityUnitID, &h.WardID, &h.AssignedCHVID,
		&h.Village, &h.PhysicalAddress, &h.Latitude, &h.Longitude,
		&h.NumberOfMembers, &h.HasToilet, &h.WaterSource,
		&h.RegistrationDate, &h.IsActive, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &h, nil
}

func (r *householdRepoPG) Create(ctx context.Context, h *Household) error {
	h.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO household (id, household_number, community_unit_id, ward_id, assigned_chv_id,
			village, physical_address, latitude, longitude,
			number_of_members, has_toilet, water_source, registration_date, is_active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		h.ID, h.HouseholdNumber, h.CommunityUnitID, h.WardID, h.AssignedCHVID,
		h.Village, h.PhysicalAddress, h.Latitude, h.Longitude,
		h.NumberOfMembers, h.HasToilet, h.WaterSource, h.RegistrationDate, h.IsActive)
	return err
}

func (r *householdRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Household, error) {
	return r.scanHousehold(r.pool.QueryRow(ctx, `SELECT `+householdCols+` FROM household WHERE id = $1`, id))
}

func (r *householdRepoPG) GetByNumber(ctx context.Context, wardID uuid.UUID, number string) (*Household, error) {
	return r.scanHousehold(r.pool.QueryRow(ctx,
		`SELECT `+householdCols+` FROM household WHERE ward_id = $1 AND household_number = $2`, wardID, number))
}

func (r *householdRepoPG) Update(ctx context.Context, h *Household) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE household SET assigned_chv_id=$2, village=$3, physical_address=$4,
			latitude=$5, longitude=$6, number_of_members=$7, has_toilet=$8,
			water_source=$9, is_active=$10, updated_at=NOW()
		WHERE id = $1`,
		h.ID, h.AssignedCHVID, h.Village, h.PhysicalAddress,
		h.Latitude, h.Longitude, h.NumberOfMembers, h.HasToilet,
		h.WaterSource, h.IsActive)
	return err
}

func (r *householdRepoPG) ListByWard(ctx context.Context, wardID uuid.UUID, limit, offset int) ([]*Household, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM household WHERE ward_id = $1`, wardID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+householdCols+` FROM household WHERE ward_id = $1 ORDER BY household_number LIMIT $2 OFFSET $3`, wardID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Household
	for rows.Next() {
		h, err := r.scanHousehold(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, h)
	}
	return items, total, nil
}

func (r *householdRepoPG) ListByCommunityUnit(ctx context.Context, communityUnitID uuid.UUID, limit, offset int) ([]*Household, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM household WHERE community_unit_id = $1`, communityUnitID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+householdCols+` FROM household WHERE community_unit_id = $1 ORDER BY household_number LIMIT $2 OFFSET $3`, communityUnitID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Household
	for rows.Next() {
		h, err := r.scanHousehold(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, h)
	}
	return items, total, nil
}

// =========== Person Repository ===========

type personRepoPG struct{ pool *pgxpool.Pool }

func NewPersonRepoPG(pool *pgxpool.Pool) PersonRepository {
	return &personRepoPG{pool: pool}
}

const personCols = `id, first_name, middle_name, last_name, date_of_birth, gender,
	national_id, nhif_number, birth_certificate_number,
	phone, alternate_phone, household_id, is_household_head,
	blood_group, chronic_conditions, allergies,
	is_alive, date_of_death, anonymized, created_at, updated_at`

func (r *personRepoPG) scanPerson(row pgx.Row) (*Person, error) {
	var p Person
	err := row.Scan(&p.ID, &p.FirstName, &p.MiddleName, &p.LastName, &p.DateOfBirth, &p.Gender,
		&p.NationalID, &p.NHIFNumber, &p.BirthCertificateNumber,
		&p.Phone, &p.AlternatePhone, &p.HouseholdID, &p.IsHouseholdHead,
		&p.BloodGroup, &p.ChronicConditions, &p.Allergies,
		&p.IsAlive, &p.DateOfDeath, &p.Anonymized, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &p, nil
}

func (r *personRepoPG) Create(ctx context.Context, p *Person) error {
	p.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO person (id, first_name, middle_name, last_name, date_of_birth, gender,
			national_id, nhif_number, birth_certificate_number,
			phone, alternate_phone, household_id, is_household_head,
			blood_group, chronic_conditions, allergies, is_alive, date_of_death)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)`,
		p.ID, p.FirstName, p.MiddleName, p.LastName, p.DateOfBirth, p.Gender,
		p.NationalID, p.NHIFNumber, p.BirthCertificateNumber,
		p.Phone, p.AlternatePhone, p.HouseholdID, p.IsHouseholdHead,
		p.BloodGroup, p.ChronicConditions, p.Allergies, p.IsAlive, p.DateOfDeath)
	return err
}

func (r *personRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Person, error) {
	return r.scanPerson(r.pool.QueryRow(ctx, `SELECT `+personCols+` FROM person WHERE id = $1`, id))
}

func (r *personRepoPG) GetByNationalID(ctx context.Context, nationalID string) (*Person, error) {
	return r.scanPerson(r.pool.QueryRow(ctx, `SELECT `+personCols+` FROM person WHERE national_id = $1`, nationalID))
}

func (r *personRepoPG) Update(ctx context.Context, p *Person) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE person SET first_name=$2, middle_name=$3, last_name=$4, date_of_birth=$5, gender=$6,
			national_id=$7, nhif_number=$8, birth_certificate_number=$9,
			phone=$10, alternate_phone=$11, is_household_head=$12,
			blood_group=$13, chronic_conditions=$14, allergies=$15,
			is_alive=$16, date_of_death=$17, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.FirstName, p.MiddleName, p.LastName, p.DateOfBirth, p.Gender,
		p.NationalID, p.NHIFNumber, p.BirthCertificateNumber,
		p.Phone, p.AlternatePhone, p.IsHouseholdHead,
		p.BloodGroup, p.ChronicConditions, p.Allergies,
		p.IsAlive, p.DateOfDeath)
	return err
}

func (r *personRepoPG) Anonymize(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE person SET first_name='REDACTED', middle_name=NULL, last_name='REDACTED',
			national_id=NULL, nhif_number=NULL, birth_certificate_number=NULL,
			phone=NULL, alternate_phone=NULL, anonymized=TRUE, updated_at=NOW()
		WHERE id = $1`, id)
	return err
}

func (r *personRepoPG) ListByHousehold(ctx context.Context, householdID uuid.UUID, limit, offset int) ([]*Person, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM person WHERE household_id = $1`, householdID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+personCols+` FROM person WHERE household_id = $1 ORDER BY is_household_head DESC, date_of_birth LIMIT $2 OFFSET $3`, householdID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Person
	for rows.Next() {
		p, err := r.scanPerson(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, nil
}

func (r *personRepoPG) List(ctx context.Context, limit, offset int) ([]*Person, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM person`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+personCols+` FROM person ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Person
	for rows.Next() {
		p, err := r.scanPerson(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, nil
}
