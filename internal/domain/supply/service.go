package supply

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a commodity or stock record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateCode is returned when a commodity code is already taken.
	ErrDuplicateCode = errors.New("commodity code already exists")
	// ErrInsufficientStock is returned when an issue would drive a stock
	// level negative.
	ErrInsufficientStock = errors.New("insufficient stock")
)

var validCommodityTypes = map[string]bool{
	TypeMedicine: true, TypeVaccine: true, TypeSupply: true,
	TypeEquipment: true, TypeReagent: true,
}

type Service struct {
	commodities  CommodityRepository
	stocks       StockRepository
	transactions TransactionRepository
}

func NewService(commodities CommodityRepository, stocks StockRepository, transactions TransactionRepository) *Service {
	return &Service{commodities: commodities, stocks: stocks, transactions: transactions}
}

// -- Commodities --

func (s *Service) CreateCommodity(ctx context.Context, c *Commodity) error {
	if c.Name == "" {
		return fmt.Errorf("name is required")
	}
	if c.Code == "" {
		return fmt.Errorf("code is required")
	}
	if !validCommodityTypes[c.CommodityType] {
		return fmt.Errorf("invalid commodity type: %s", c.CommodityType)
	}
	if c.Unit == "" {
		return fmt.Errorf("unit is required")
	}
	if existing, err := s.commodities.GetByCode(ctx, c.Code); err == nil && existing != nil {
		return ErrDuplicateCode
	}
	c.IsActive = true
	return s.commodities.Create(ctx, c)
}

func (s *Service) GetCommodity(ctx context.Context, id uuid.UUID) (*Commodity, error) {
	return s.commodities.GetByID(ctx, id)
}

func (s *Service) GetCommodityByCode(ctx context.Context, code string) (*Commodity, error) {
	return s.commodities.GetByCode(ctx, code)
}

func (s *Service) UpdateCommodity(ctx context.Context, c *Commodity) error {
	if c.CommodityType != "" && !validCommodityTypes[c.CommodityType] {
		return fmt.Errorf("invalid commodity type: %s", c.CommodityType)
	}
	return s.commodities.Update(ctx, c)
}

func (s *Service) ListCommodities(ctx context.Context, commodityType string, limit, offset int) ([]*Commodity, int, error) {
	if commodityType != "" && !validCommodityTypes[commodityType] {
		return nil, 0, fmt.Errorf("invalid commodity type: %s", commodityType)
	}
	return s.commodities.List(ctx, commodityType, limit, offset)
}

// -- Stock movements --

// RecordTransaction validates and applies one stock movement. Transfers
// go through TransferStock so both legs are recorded.
func (s *Service) RecordTransaction(ctx context.Context, t *StockTransaction) error {
	if t.TransactionType == TxnTransfer {
		return fmt.Errorf("transfers must use the transfer operation")
	}
	if err := s.prepare(ctx, t); err != nil {
		return err
	}
	switch t.TransactionType {
	case TxnIn:
		t.Delta = t.Quantity
	case TxnOut, TxnExpired:
		t.Delta = -t.Quantity
	case TxnAdjustment:
		if t.Delta == 0 {
			return fmt.Errorf("adjustment delta is required")
		}
		if t.Delta < 0 {
			t.Quantity = -t.Delta
		} else {
			t.Quantity = t.Delta
		}
	default:
		return fmt.Errorf("invalid transaction type: %s", t.TransactionType)
	}
	return s.stocks.Apply(ctx, t)
}

func (s *Service) prepare(ctx context.Context, t *StockTransaction) error {
	if t.CommodityID == uuid.Nil {
		return fmt.Errorf("commodity_id is required")
	}
	if t.FacilityID == uuid.Nil {
		return fmt.Errorf("facility_id is required")
	}
	if t.TransactionType != TxnAdjustment && t.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}
	if _, err := s.commodities.GetByID(ctx, t.CommodityID); err != nil {
		return err
	}
	if t.TransactionDate.IsZero() {
		t.TransactionDate = time.Now()
	}
	if t.TransactionDate.After(time.Now()) {
		return fmt.Errorf("transaction_date may not be in the future")
	}
	return nil
}

// TransferStock moves a quantity between facilities as two linked
// ledger entries, an issue at the source and a receipt at the
// destination. Both legs commit in one database transaction; an
// insufficient source level aborts the whole transfer.
func (s *Service) TransferStock(ctx context.Context, commodityID, fromFacilityID, toFacilityID uuid.UUID, batch string, quantity int, performedBy *uuid.UUID) (*StockTransaction, *StockTransaction, error) {
	if fromFacilityID == uuid.Nil || toFacilityID == uuid.Nil {
		return nil, nil, fmt.Errorf("source and destination facilities are required")
	}
	if fromFacilityID == toFacilityID {
		return nil, nil, fmt.Errorf("transfer must cross facilities")
	}
	if quantity <= 0 {
		return nil, nil, fmt.Errorf("quantity must be positive")
	}
	if _, err := s.commodities.GetByID(ctx, commodityID); err != nil {
		return nil, nil, err
	}

	reference := fmt.Sprintf("TRF-%s", uuid.New().String()[:8])
	now := time.Now()

	out := &StockTransaction{
		CommodityID:           commodityID,
		FacilityID:            fromFacilityID,
		BatchNumber:           batch,
		TransactionType:       TxnTransfer,
		Quantity:              quantity,
		Delta:                 -quantity,
		DestinationFacilityID: &toFacilityID,
		Reference:             &reference,
		PerformedBy:           performedBy,
		TransactionDate:       now,
	}
	in := &StockTransaction{
		CommodityID:      commodityID,
		FacilityID:       toFacilityID,
		BatchNumber:      batch,
		TransactionType:  TxnTransfer,
		Quantity:         quantity,
		Delta:            quantity,
		SourceFacilityID: &fromFacilityID,
		Reference:        &reference,
		PerformedBy:      performedBy,
		TransactionDate:  now,
	}
	if err := s.stocks.ApplyPair(ctx, out, in); err != nil {
		return nil, nil, err
	}
	return out, in, nil
}

// Reconcile recomputes a batch's level from its full ledger and, when
// the stored quantity disagrees, corrects it to the ledger balance.
func (s *Service) Reconcile(ctx context.Context, commodityID, facilityID uuid.UUID, batch string) (*ReconcileResult, error) {
	stock, err := s.stocks.Get(ctx, commodityID, facilityID, batch)
	if err != nil {
		return nil, err
	}
	balance, err := s.stocks.LedgerBalance(ctx, commodityID, facilityID, batch)
	if err != nil {
		return nil, err
	}
	result := &ReconcileResult{
		CommodityID:    commodityID,
		FacilityID:     facilityID,
		BatchNumber:    batch,
		StoredQuantity: stock.Quantity,
		LedgerBalance:  balance,
	}
	if stock.Quantity != balance {
		if err := s.stocks.SetQuantity(ctx, stock.ID, balance); err != nil {
			return nil, err
		}
		result.Adjusted = true
	}
	return result, nil
}

// -- Stock queries --

func (s *Service) GetStock(ctx context.Context, id uuid.UUID) (*Stock, error) {
	return s.stocks.GetByID(ctx, id)
}

func (s *Service) ListStockByFacility(ctx context.Context, facilityID uuid.UUID, limit, offset int) ([]*Stock, int, error) {
	return s.stocks.ListByFacility(ctx, facilityID, limit, offset)
}

func (s *Service) ListStockByCommodity(ctx context.Context, commodityID uuid.UUID, limit, offset int) ([]*Stock, int, error) {
	return s.stocks.ListByCommodity(ctx, commodityID, limit, offset)
}

func (s *Service) ListLowStock(ctx context.Context, facilityID uuid.UUID, limit, offset int) ([]*Stock, int, error) {
	return s.stocks.ListBelowReorderLevel(ctx, facilityID, limit, offset)
}

func (s *Service) GetTransaction(ctx context.Context, id uuid.UUID) (*StockTransaction, error) {
	return s.transactions.GetByID(ctx, id)
}

func (s *Service) ListTransactionsByFacility(ctx context.Context, facilityID uuid.UUID, limit, offset int) ([]*StockTransaction, int, error) {
	return s.transactions.ListByFacility(ctx, facilityID, limit, offset)
}

func (s *Service) ListTransactionsByBatch(ctx context.Context, commodityID, facilityID uuid.UUID, batch string, limit, offset int) ([]*StockTransaction, int, error) {
	return s.transactions.ListByBatch(ctx, commodityID, facilityID, batch, limit, offset)
}
