package supply

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

// -- Commodity --

const commodityCols = `id, name, code, commodity_type, unit, description,
	reorder_level, is_active, created_at, updated_at`

type commodityRepoPG struct {
	pool *pgxpool.Pool
}

func NewCommodityRepoPG(pool *pgxpool.Pool) CommodityRepository {
	return &commodityRepoPG{pool: pool}
}

func scanCommodity(row pgx.Row) (*Commodity, error) {
	var c Commodity
	err := row.Scan(&c.ID, &c.Name, &c.Code, &c.CommodityType, &c.Unit,
		&c.Description, &c.ReorderLevel, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &c, nil
}

func (r *commodityRepoPG) Create(ctx context.Context, c *Commodity) error {
	c.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO commodity (id, name, code, commodity_type, unit, description,
			reorder_level, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.ID, c.Name, c.Code, c.CommodityType, c.Unit, c.Description,
		c.ReorderLevel, c.IsActive)
	return err
}

func (r *commodityRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Commodity, error) {
	row := r.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM commodity WHERE id = $1`, commodityCols), id)
	return scanCommodity(row)
}

func (r *commodityRepoPG) GetByCode(ctx context.Context, code string) (*Commodity, error) {
	row := r.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM commodity WHERE code = $1`, commodityCols), code)
	return scanCommodity(row)
}

func (r *commodityRepoPG) Update(ctx context.Context, c *Commodity) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE commodity SET name = $2, commodity_type = $3, unit = $4,
			description = $5, reorder_level = $6, is_active = $7, updated_at = NOW()
		WHERE id = $1`,
		c.ID, c.Name, c.CommodityType, c.Unit, c.Description, c.ReorderLevel, c.IsActive)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *commodityRepoPG) List(ctx context.Context, commodityType string, limit, offset int) ([]*Commodity, int, error) {
	where := ``
	var args []any
	if commodityType != "" {
		where = `WHERE commodity_type = $1`
		args = append(args, commodityType)
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM commodity `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	rows, err := r.pool.Query(ctx, fmt.Sprintf(
		`SELECT %s FROM commodity %s ORDER BY name LIMIT $%d OFFSET $%d`,
		commodityCols, where, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*Commodity
	for rows.Next() {
		c, err := scanCommodity(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	return out, total, rows.Err()
}

// -- Stock --

const stockCols = `id, commodity_id, facility_id, batch_number, quantity, expiry_date, updated_at`

type stockRepoPG struct {
	pool *pgxpool.Pool
}

func NewStockRepoPG(pool *pgxpool.Pool) StockRepository {
	return &stockRepoPG{pool: pool}
}

func scanStock(row pgx.Row) (*Stock, error) {
	var st Stock
	err := row.Scan(&st.ID, &st.CommodityID, &st.FacilityID, &st.BatchNumber,
		&st.Quantity, &st.ExpiryDate, &st.UpdatedAt)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &st, nil
}

func (r *stockRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Stock, error) {
	row := r.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM stock WHERE id = $1`, stockCols), id)
	return scanStock(row)
}

func (r *stockRepoPG) Get(ctx context.Context, commodityID, facilityID uuid.UUID, batch string) (*Stock, error) {
	row := r.pool.QueryRow(ctx, fmt.Sprintf(
		`SELECT %s FROM stock
		 WHERE commodity_id = $1 AND facility_id = $2 AND batch_number = $3`,
		stockCols), commodityID, facilityID, batch)
	return scanStock(row)
}

func (r *stockRepoPG) listWhere(ctx context.Context, where string, args []any, limit, offset int) ([]*Stock, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM stock `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	args = append(args, limit, offset)
	rows, err := r.pool.Query(ctx, fmt.Sprintf(
		`SELECT %s FROM stock %s ORDER BY batch_number LIMIT $%d OFFSET $%d`,
		stockCols, where, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*Stock
	for rows.Next() {
		st, err := scanStock(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, st)
	}
	return out, total, rows.Err()
}

func (r *stockRepoPG) ListByFacility(ctx context.Context, facilityID uuid.UUID, limit, offset int) ([]*Stock, int, error) {
	return r.listWhere(ctx, `WHERE facility_id = $1`, []any{facilityID}, limit, offset)
}

func (r *stockRepoPG) ListByCommodity(ctx context.Context, commodityID uuid.UUID, limit, offset int) ([]*Stock, int, error) {
	return r.listWhere(ctx, `WHERE commodity_id = $1`, []any{commodityID}, limit, offset)
}

func (r *stockRepoPG) ListBelowReorderLevel(ctx context.Context, facilityID uuid.UUID, limit, offset int) ([]*Stock, int, error) {
	const where = `WHERE s.facility_id = $1 AND s.quantity <= c.reorder_level`

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM stock s JOIN commodity c ON c.id = s.commodity_id `+where,
		facilityID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT s.id, s.commodity_id, s.facility_id, s.batch_number, s.quantity,
			s.expiry_date, s.updated_at
		FROM stock s JOIN commodity c ON c.id = s.commodity_id
		`+where+` ORDER BY s.quantity LIMIT $2 OFFSET $3`,
		facilityID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*Stock
	for rows.Next() {
		st, err := scanStock(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, st)
	}
	return out, total, rows.Err()
}

func (r *stockRepoPG) Apply(ctx context.Context, t *StockTransaction) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := applyInTx(ctx, tx, t); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *stockRepoPG) ApplyPair(ctx context.Context, out, in *StockTransaction) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := applyInTx(ctx, tx, out); err != nil {
		return err
	}
	if err := applyInTx(ctx, tx, in); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// applyInTx moves the stock level and writes the ledger row using the
// caller's transaction.
func applyInTx(ctx context.Context, tx pgx.Tx, t *StockTransaction) error {
	var quantity int
	err := tx.QueryRow(ctx, `
		INSERT INTO stock (id, commodity_id, facility_id, batch_number, quantity)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (commodity_id, facility_id, batch_number)
		DO UPDATE SET quantity = stock.quantity + $5, updated_at = NOW()
		RETURNING quantity`,
		uuid.New(), t.CommodityID, t.FacilityID, t.BatchNumber, t.Delta).Scan(&quantity)
	if err != nil {
		return err
	}
	if quantity < 0 {
		return ErrInsufficientStock
	}

	t.ID = uuid.New()
	_, err = tx.Exec(ctx, `
		INSERT INTO stock_transaction (id, commodity_id, facility_id, batch_number,
			transaction_type, quantity, delta, source_facility_id,
			destination_facility_id, reference, performed_by, transaction_date, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		t.ID, t.CommodityID, t.FacilityID, t.BatchNumber, t.TransactionType,
		t.Quantity, t.Delta, t.SourceFacilityID, t.DestinationFacilityID,
		t.Reference, t.PerformedBy, t.TransactionDate, t.Notes)
	return err
}

func (r *stockRepoPG) LedgerBalance(ctx context.Context, commodityID, facilityID uuid.UUID, batch string) (int, error) {
	var balance int
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(delta), 0) FROM stock_transaction
		WHERE commodity_id = $1 AND facility_id = $2 AND batch_number = $3`,
		commodityID, facilityID, batch).Scan(&balance)
	return balance, err
}

func (r *stockRepoPG) SetQuantity(ctx context.Context, stockID uuid.UUID, quantity int) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE stock SET quantity = $2, updated_at = NOW() WHERE id = $1`,
		stockID, quantity)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// -- Transactions --

const txnCols = `id, commodity_id, facility_id, batch_number, transaction_type,
	quantity, delta, source_facility_id, destination_facility_id, reference,
	performed_by, transaction_date, notes, created_at`

type transactionRepoPG struct {
	pool *pgxpool.Pool
}

func NewTransactionRepoPG(pool *pgxpool.Pool) TransactionRepository {
	return &transactionRepoPG{pool: pool}
}

func scanTransaction(row pgx.Row) (*StockTransaction, error) {
	var t StockTransaction
	err := row.Scan(&t.ID, &t.CommodityID, &t.FacilityID, &t.BatchNumber,
		&t.TransactionType, &t.Quantity, &t.Delta, &t.SourceFacilityID,
		&t.DestinationFacilityID, &t.Reference, &t.PerformedBy,
		&t.TransactionDate, &t.Notes, &t.CreatedAt)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &t, nil
}

func (r *transactionRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*StockTransaction, error) {
	row := r.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM stock_transaction WHERE id = $1`, txnCols), id)
	return scanTransaction(row)
}

func (r *transactionRepoPG) list(ctx context.Context, where string, args []any, limit, offset int) ([]*StockTransaction, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM stock_transaction `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	args = append(args, limit, offset)
	rows, err := r.pool.Query(ctx, fmt.Sprintf(
		`SELECT %s FROM stock_transaction %s
		 ORDER BY transaction_date DESC LIMIT $%d OFFSET $%d`,
		txnCols, where, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*StockTransaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, t)
	}
	return out, total, rows.Err()
}

func (r *transactionRepoPG) ListByFacility(ctx context.Context, facilityID uuid.UUID, limit, offset int) ([]*StockTransaction, int, error) {
	return r.list(ctx, `WHERE facility_id = $1`, []any{facilityID}, limit, offset)
}

func (r *transactionRepoPG) ListByBatch(ctx context.Context, commodityID, facilityID uuid.UUID, batch string, limit, offset int) ([]*StockTransaction, int, error) {
	return r.list(ctx,
		`WHERE commodity_id = $1 AND facility_id = $2 AND batch_number = $3`,
		[]any{commodityID, facilityID, batch}, limit, offset)
}
