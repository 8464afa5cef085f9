package admin

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

// =========== County Repository ===========

type countyRepoPG struct{ pool *pgxpool.Pool }

func NewCountyRepoPG(pool *pgxpool.Pool) CountyRepository {
	return &countyRepoPG{pool: pool}
}

const countyCols = `id, name, code, population, contact_person, phone, email, created_at, updated_at`

func (r *countyRepoPG) scanCounty(row pgx.Row) (*County, error) {
	var c County
	err := row.Scan(&c.ID, &c.Name, &c.Code, &c.Population, &c.ContactPerson, &c.Phone, &c.Email,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &c, nil
}

func (r *countyRepoPG) Create(ctx context.Context, c *County) error {
	c.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO county (id, name, code, population, contact_person, phone, email)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		c.ID, c.Name, c.Code, c.Population, c.ContactPerson, c.Phone, c.Email)
	return err
}

func (r *countyRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*County, error) {
	return r.scanCounty(r.pool.QueryRow(ctx, `SELECT `+countyCols+` FROM county WHERE id = $1`, id))
}

func (r *countyRepoPG) GetByCode(ctx context.Context, code string) (*County, error) {
	return r.scanCounty(r.pool.QueryRow(ctx, `SELECT `+countyCols+` FROM county WHERE code = $1`, code))
}

func (r *countyRepoPG) Update(ctx context.Context, c *County) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE county SET name=$2, population=$3, contact_person=$4, phone=$5, email=$6, updated_at=NOW()
		WHERE id = $1`,
		c.ID, c.Name, c.Population, c.ContactPerson, c.Phone, c.Email)
	return err
}

func (r *countyRepoPG) List(ctx context.Context, limit, offset int) ([]*County, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM county`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+countyCols+` FROM county ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*County
	for rows.Next() {
		c, err := r.scanCounty(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, c)
	}
	return items, total, nil
}

// =========== SubCounty Repository ===========

type subcountyRepoPG struct{ pool *pgxpool.Pool }

func NewSubCountyRepoPG(pool *pgxpool.Pool) SubCountyRepository {
	return &subcountyRepoPG{pool: pool}
}

const subcountyCols = `id, county_id, name, code, population, created_at, updated_at`

func (r *subcountyRepoPG) scanSubCounty(row pgx.Row) (*SubCounty, error) {
	var sc SubCounty
	err := row.Scan(&sc.ID, &sc.CountyID, &sc.Name, &sc.Code, &sc.Population, &sc.CreatedAt, &sc.UpdatedAt)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &sc, nil
}

func (r *subcountyRepoPG) Create(ctx context.Context, sc *SubCounty) error {
	sc.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO subcounty (id, county_id, name, code, population)
		VALUES ($1,$2,$3,$4,$5)`,
		sc.ID, sc.CountyID, sc.Name, sc.Code, sc.Population)
	return err
}

func (r *subcountyRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*SubCounty, error) {
	return r.scanSubCounty(r.pool.QueryRow(ctx, `SELECT `+subcountyCols+` FROM subcounty WHERE id = $1`, id))
}

func (r *subcountyRepoPG) GetByCode(ctx context.Context, code string) (*SubCounty, error) {
	return r.scanSubCounty(r.pool.QueryRow(ctx, `SELECT `+subcountyCols+` FROM subcounty WHERE code = $1`, code))
}

func (r *subcountyRepoPG) Update(ctx context.Context, sc *SubCounty) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE subcounty SET name=$2, population=$3, updated_at=NOW()
		WHERE id = $1`,
		sc.ID, sc.Name, sc.Population)
	return err
}

func (r *subcountyRepoPG) ListByCounty(ctx context.Context, countyID uuid.UUID, limit, offset int) ([]*SubCounty, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM subcounty WHERE county_id = $1`, countyID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+subcountyCols+` FROM subcounty WHERE county_id = $1 ORDER BY name LIMIT $2 OFFSET $3`, countyID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*SubCounty
	for rows.Next() {
		sc, err := r.scanSubCounty(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, sc)
	}
	return items, total, nil
}

// =========== Ward Repository ===========

type wardRepoPG struct{ pool *pgxpool.Pool }

func NewWardRepoPG(pool *pgxpool.Pool) WardRepository {
	return &wardRepoPG{pool: pool}
}

const wardCols = `id, subcounty_id, name, code, population, created_at, updated_at`

func (r *wardRepoPG) scanWard(row pgx.Row) (*Ward, error) {
	var w Ward
	err := row.Scan(&w.ID, &w.SubCountyID, &w.Name, &w.Code, &w.Population, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &w, nil
}

func (r *wardRepoPG) Create(ctx context.Context, w *Ward) error {
	w.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO ward (id, subcounty_id, name, code, population)
		VALUES ($1,$2,$3,$4,$5)`,
		w.ID, w.SubCountyID, w.Name, w.Code, w.Population)
	return err
}

func (r *wardRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Ward, error) {
	return r.scanWard(r.pool.QueryRow(ctx, `SELECT `+wardCols+` FROM ward WHERE id = $1`, id))
}

func (r *wardRepoPG) GetByCode(ctx context.Context, code string) (*Ward, error) {
	return r.scanWard(r.pool.QueryRow(ctx, `SELECT `+wardCols+` FROM ward WHERE code = $1`, code))
}

func (r *wardRepoPG) Update(ctx context.Context, w *Ward) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE ward SET name=$2, population=$3, updated_at=NOW()
		WHERE id = $1`,
		w.ID, w.Name, w.Population)
	return err
}

func (r *wardRepoPG) ListBySubCounty(ctx context.Context, subcountyID uuid.UUID, limit, offset int) ([]*Ward, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM ward WHERE subcounty_id = $1`, subcountyID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+wardCols+` FROM ward WHERE subcounty_id = $1 ORDER BY name LIMIT $2 OFFSET $3`, subcountyID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Ward
	for rows.Next() {
		w, err := r.scanWard(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, w)
	}
	return items, total, nil
}

// =========== Facility Repository ===========

type facilityRepoPG struct{ pool *pgxpool.Pool }

func NewFacilityRepoPG(pool *pgxpool.Pool) FacilityRepository {
	return &facilityRepoPG{pool: pool}
}

const facilityCols = `id, name, facility_code, facility_type, ward_id, subcounty_id,
	latitude, longitude, phone, email, physical_address,
	is_operational, bed_capacity, created_at, updated_at`

func (r *facilityRepoPG) scanFacility(row pgx.Row) (*Facility, error) {
	var f Facility
	err := row.Scan(&f.ID, &f.Name, &f.FacilityCode, &f.FacilityType, &f.WardID, &f.SubCountyID,
		&f.Latitude, &f.Longitude, &f.Phone, &f.Email, &f.PhysicalAddress,
		&f.IsOperational, &f.BedCapacity, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &f, nil
}

func (r *facilityRepoPG) Create(ctx context.Context, f *Facility) error {
	f.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO facility (id, name, facility_code, facility_type, ward_id, subcounty_id,
			latitude, longitude, phone, email, physical_address, is_operational, bed_capacity)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		f.ID, f.Name, f.FacilityCode, f.FacilityType, f.WardID, f.SubCountyID,
		f.Latitude, f.Longitude, f.Phone, f.Email, f.PhysicalAddress, f.IsOperational, f.BedCapacity)
	return err
}

func (r *facilityRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Facility, error) {
	return r.scanFacility(r.pool.QueryRow(ctx, `SELECT `+facilityCols+` FROM facility WHERE id = $1`, id))
}

func (r *facilityRepoPG) GetByCode(ctx context.Context, code string) (*Facility, error) {
	return r.scanFacility(r.pool.QueryRow(ctx, `SELECT `+facilityCols+` FROM facility WHERE facility_code = $1`, code))
}

func (r *facilityRepoPG) Update(ctx context.Context, f *Facility) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE facility SET name=$2, facility_type=$3, latitude=$4, longitude=$5,
			phone=$6, email=$7, physical_address=$8, is_operational=$9, bed_capacity=$10, updated_at=NOW()
		WHERE id = $1`,
		f.ID, f.Name, f.FacilityType, f.Latitude, f.Longitude,
		f.Phone, f.Email, f.PhysicalAddress, f.IsOperational, f.BedCapacity)
	return err
}

func (r *facilityRepoPG) List(ctx context.Context, limit, offset int) ([]*Facility, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM facility`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+facilityCols+` FROM facility ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Facility
	for rows.Next() {
		f, err := r.scanFacility(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, f)
	}
	return items, total, nil
}

func (r *facilityRepoPG) ListByWard(ctx context.Context, wardID uuid.UUID, limit, offset int) ([]*Facility, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM facility WHERE ward_id = $1`, wardID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+facilityCols+` FROM facility WHERE ward_id = $1 ORDER BY name LIMIT $2 OFFSET $3`, wardID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Facility
	for rows.Next() {
		f, err := r.scanFacility(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, f)
	}
	return items, total, nil
}

// =========== Community Unit Repository ===========

type communityUnitRepoPG struct{ pool *pgxpool.Pool }

func NewCommunityUnitRepoPG(pool *pgxpool.Pool) CommunityUnitRepository {
	return &communityUnitRepoPG{pool: pool}
}

const communityUnitCols = `id, name, code, ward_id, linked_facility_id,
	target_population, target_households, is_active, established_date, created_at, updated_at`

func (r *communityUnitRepoPG) scanUnit(row pgx.Row) (*CommunityUnit, error) {
	var cu CommunityUnit
	err := row.Scan(&cu.ID, &cu.Name, &cu.Code, &cu.WardID, &cu.LinkedFacilityID,
		&cu.TargetPopulation, &cu.TargetHouseholds, &cu.IsActive, &cu.EstablishedDate,
		&cu.CreatedAt, &cu.UpdatedAt)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &cu, nil
}

func (r *communityUnitRepoPG) Create(ctx context.Context, cu *CommunityUnit) error {
	cu.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO community_unit (id, name, code, ward_id, linked_facility_id,
			target_population, target_households, is_active, established_date)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		cu.ID, cu.Name, cu.Code, cu.WardID, cu.LinkedFacilityID,
		cu.TargetPopulation, cu.TargetHouseholds, cu.IsActive, cu.EstablishedDate)
	return err
}

func (r *communityUnitRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*CommunityUnit, error) {
	return r.scanUnit(r.pool.QueryRow(ctx, `SELECT `+communityUnitCols+` FROM community_unit WHERE id = $1`, id))
}

func (r *communityUnitRepoPG) GetByCode(ctx context.Context, code string) (*CommunityUnit, error) {
	return r.scanUnit(r.pool.QueryRow(ctx, `SELECT `+communityUnitCols+` FROM community_unit WHERE code = $1`, code))
}

func (r *communityUnitRepoPG) Update(ctx context.Context, cu *CommunityUnit) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE community_unit SET name=$2, linked_facility_id=$3, target_population=$4,
			target_households=$5, is_active=$6, established_date=$7, updated_at=NOW()
		WHERE id = $1`,
		cu.ID, cu.Name, cu.LinkedFacilityID, cu.TargetPopulation,
		cu.TargetHouseholds, cu.IsActive, cu.EstablishedDate)
	return err
}

func (r *communityUnitRepoPG) ListByWard(ctx context.Context, wardID uuid.UUID, limit, offset int) ([]*CommunityUnit, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM community_unit WHERE ward_id = $1`, wardID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+communityUnitCols+` FROM community_unit WHERE ward_id = $1 ORDER BY name LIMIT $2 OFFSET $3`, wardID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*CommunityUnit
	for rows.Next() {
		cu, err := r.scanUnit(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, cu)
	}
	return items, total, nil
}
