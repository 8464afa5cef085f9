package supply

import (
	"context"

	"github.com/google/uuid"
)

type CommodityRepository interface {
	Create(ctx context.Context, c *Commodity) error
	GetByID(ctx context.Context, id uuid.UUID) (*Commodity, error)
	GetByCode(ctx context.Context, code string) (*Commodity, error)
	Update(ctx context.Context, c *Commodity) error
	List(ctx context.Context, commodityType string, limit, offset int) ([]*Commodity, int, error)
}

type StockRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Stock, error)
	Get(ctx context.Context, commodityID, facilityID uuid.UUID, batch string) (*Stock, error)
	ListByFacility(ctx context.Context, facilityID uuid.UUID, limit, offset int) ([]*Stock, int, error)
	ListByCommodity(ctx context.Context, commodityID uuid.UUID, limit, offset int) ([]*Stock, int, error)
	ListBelowReorderLevel(ctx context.Context, facilityID uuid.UUID, limit, offset int) ([]*Stock, int, error)

	// Apply records one ledger entry and moves the stock level by the
	// transaction's delta in a single database transaction. It returns
	// ErrInsufficientStock without side effects when the delta would
	// drive the level negative.
	Apply(ctx context.Context, t *StockTransaction) error

	// ApplyPair applies both legs of a transfer in one database
	// transaction. Either both ledger entries and both stock moves
	// commit, or none do.
	ApplyPair(ctx context.Context, out, in *StockTransaction) error

	// LedgerBalance sums the signed deltas of every transaction ever
	// recorded for the batch.
	LedgerBalance(ctx context.Context, commodityID, facilityID uuid.UUID, batch string) (int, error)
	SetQuantity(ctx context.Context, stockID uuid.UUID, quantity int) error
}

type TransactionRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*StockTransaction, error)
	ListByFacility(ctx context.Context, facilityID uuid.UUID, limit, offset int) ([]*StockTransaction, int, error)
	ListByBatch(ctx context.Context, commodityID, facilityID uuid.UUID, batch string, limit, offset int) ([]*StockTransaction, int, error)
}
