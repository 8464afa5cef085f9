package supply

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

type mockCommodityRepo struct {
	commodities map[uuid.UUID]*Commodity
}

func newMockCommodityRepo() *mockCommodityRepo {
	return &mockCommodityRepo{commodities: make(map[uuid.UUID]*Commodity)}
}

func (m *mockCommodityRepo) Create(_ context.Context, c *Commodity) error {
	c.ID = uuid.New()
	m.commodities[c.ID] = c
	return nil
}

func (m *mockCommodityRepo) GetByID(_ context.Context, id uuid.UUID) (*Commodity, error) {
	c, ok := m.commodities[id]
	if !ok {
		return nil, ErrNotFound
	}
	return c, nil
}

func (m *mockCommodityRepo) GetByCode(_ context.Context, code string) (*Commodity, error) {
	for _, c := range m.commodities {
		if c.Code == code {
			return c, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockCommodityRepo) Update(_ context.Context, c *Commodity) error {
	if _, ok := m.commodities[c.ID]; !ok {
		return ErrNotFound
	}
	m.commodities[c.ID] = c
	return nil
}

func (m *mockCommodityRepo) List(_ context.Context, commodityType string, _, _ int) ([]*Commodity, int, error) {
	var out []*Commodity
	for _, c := range m.commodities {
		if commodityType != "" && c.CommodityType != commodityType {
			continue
		}
		out = append(out, c)
	}
	return out, len(out), nil
}

type batchKey struct {
	commodityID uuid.UUID
	facilityID  uuid.UUID
	batch       string
}

type mockStockRepo struct {
	stocks map[batchKey]*Stock
	ledger []*StockTransaction
}

func newMockStockRepo() *mockStockRepo {
	return &mockStockRepo{stocks: make(map[batchKey]*Stock)}
}

func (m *mockStockRepo) GetByID(_ context.Context, id uuid.UUID) (*Stock, error) {
	for _, st := range m.stocks {
		if st.ID == id {
			return st, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockStockRepo) Get(_ context.Context, commodityID, facilityID uuid.UUID, batch string) (*Stock, error) {
	st, ok := m.stocks[batchKey{commodityID, facilityID, batch}]
	if !ok {
		return nil, ErrNotFound
	}
	return st, nil
}

func (m *mockStockRepo) ListByFacility(_ context.Context, facilityID uuid.UUID, _, _ int) ([]*Stock, int, error) {
	var out []*Stock
	for _, st := range m.stocks {
		if st.FacilityID == facilityID {
			out = append(out, st)
		}
	}
	return out, len(out), nil
}

func (m *mockStockRepo) ListByCommodity(_ context.Context, commodityID uuid.UUID, _, _ int) ([]*Stock, int, error) {
	var out []*Stock
	for _, st := range m.stocks {
		if st.CommodityID == commodityID {
			out = append(out, st)
		}
	}
	return out, len(out), nil
}

func (m *mockStockRepo) ListBelowReorderLevel(_ context.Context, facilityID uuid.UUID, _, _ int) ([]*Stock, int, error) {
	return nil, 0, nil
}

func (m *mockStockRepo) Apply(_ context.Context, t *StockTransaction) error {
	key := batchKey{t.CommodityID, t.FacilityID, t.BatchNumber}
	st, ok := m.stocks[key]
	if !ok {
		st = &Stock{
			ID:          uuid.New(),
			CommodityID: t.CommodityID,
			FacilityID:  t.FacilityID,
			BatchNumber: t.BatchNumber,
		}
		m.stocks[key] = st
	}
	if st.Quantity+t.Delta < 0 {
		return ErrInsufficientStock
	}
	st.Quantity += t.Delta
	t.ID = uuid.New()
	m.ledger = append(m.ledger, t)
	return nil
}

func (m *mockStockRepo) ApplyPair(ctx context.Context, out, in *StockTransaction) error {
	key := batchKey{out.CommodityID, out.FacilityID, out.BatchNumber}
	st, ok := m.stocks[key]
	if !ok || st.Quantity+out.Delta < 0 {
		return ErrInsufficientStock
	}
	if err := m.Apply(ctx, out); err != nil {
		return err
	}
	return m.Apply(ctx, in)
}

func (m *mockStockRepo) LedgerBalance(_ context.Context, commodityID, facilityID uuid.UUID, batch string) (int, error) {
	balance := 0
	for _, t := range m.ledger {
		if t.CommodityID == commodityID && t.FacilityID == facilityID && t.BatchNumber == batch {
			balance += t.Delta
		}
	}
	return balance, nil
}

func (m *mockStockRepo) SetQuantity(_ context.Context, stockID uuid.UUID, quantity int) error {
	for _, st := range m.stocks {
		if st.ID == stockID {
			st.Quantity = quantity
			return nil
		}
	}
	return ErrNotFound
}

type mockTransactionRepo struct {
	stocks *mockStockRepo
}

func (m *mockTransactionRepo) GetByID(_ context.Context, id uuid.UUID) (*StockTransaction, error) {
	for _, t := range m.stocks.ledger {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockTransactionRepo) ListByFacility(_ context.Context, facilityID uuid.UUID, _, _ int) ([]*StockTransaction, int, error) {
	var out []*StockTransaction
	for _, t := range m.stocks.ledger {
		if t.FacilityID == facilityID {
			out = append(out, t)
		}
	}
	return out, len(out), nil
}

func (m *mockTransactionRepo) ListByBatch(_ context.Context, commodityID, facilityID uuid.UUID, batch string, _, _ int) ([]*StockTransaction, int, error) {
	var out []*StockTransaction
	for _, t := range m.stocks.ledger {
		if t.CommodityID == commodityID && t.FacilityID == facilityID && t.BatchNumber == batch {
			out = append(out, t)
		}
	}
	return out, len(out), nil
}

func newTestService() (*Service, *mockStockRepo) {
	stocks := newMockStockRepo()
	return NewService(newMockCommodityRepo(), stocks, &mockTransactionRepo{stocks: stocks}), stocks
}

func seedCommodity(t *testing.T, svc *Service) *Commodity {
	t.Helper()
	c := &Commodity{
		Name:          "Artemether-Lumefantrine 20/120mg",
		Code:          "AL-20-120",
		CommodityType: TypeMedicine,
		Unit:          "tablet",
		ReorderLevel:  50,
	}
	if err := svc.CreateCommodity(context.Background(), c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return c
}

func receive(t *testing.T, svc *Service, commodityID, facilityID uuid.UUID, batch string, qty int) {
	t.Helper()
	err := svc.RecordTransaction(context.Background(), &StockTransaction{
		CommodityID:     commodityID,
		FacilityID:      facilityID,
		BatchNumber:     batch,
		TransactionType: TxnIn,
		Quantity:        qty,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreateCommodity(t *testing.T) {
	svc, _ := newTestService()
	c := seedCommodity(t, svc)

	if c.ID == uuid.Nil {
		t.Fatal("expected commodity id to be assigned")
	}
	if !c.IsActive {
		t.Error("expected new commodity to be active")
	}
}

func TestCreateCommodity_DuplicateCode(t *testing.T) {
	svc, _ := newTestService()
	seedCommodity(t, svc)

	err := svc.CreateCommodity(context.Background(), &Commodity{
		Name:          "Duplicate",
		Code:          "AL-20-120",
		CommodityType: TypeMedicine,
		Unit:          "tablet",
	})
	if !errors.Is(err, ErrDuplicateCode) {
		t.Fatalf("expected ErrDuplicateCode, got %v", err)
	}
}

func TestCreateCommodity_InvalidType(t *testing.T) {
	svc, _ := newTestService()
	err := svc.CreateCommodity(context.Background(), &Commodity{
		Name:          "Gauze",
		Code:          "GZ-01",
		CommodityType: "CONSUMABLE",
		Unit:          "roll",
	})
	if err == nil {
		t.Fatal("expected error for invalid commodity type")
	}
}

func TestRecordTransaction_InCreatesStock(t *testing.T) {
	svc, stocks := newTestService()
	c := seedCommodity(t, svc)
	facilityID := uuid.New()

	receive(t, svc, c.ID, facilityID, "B001", 100)

	st, err := stocks.Get(context.Background(), c.ID, facilityID, "B001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.Quantity != 100 {
		t.Errorf("expected quantity 100, got %d", st.Quantity)
	}
}

func TestRecordTransaction_OutReducesStock(t *testing.T) {
	svc, stocks := newTestService()
	c := seedCommodity(t, svc)
	facilityID := uuid.New()
	receive(t, svc, c.ID, facilityID, "B001", 100)

	err := svc.RecordTransaction(context.Background(), &StockTransaction{
		CommodityID:     c.ID,
		FacilityID:      facilityID,
		BatchNumber:     "B001",
		TransactionType: TxnOut,
		Quantity:        30,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	st, _ := stocks.Get(context.Background(), c.ID, facilityID, "B001")
	if st.Quantity != 70 {
		t.Errorf("expected quantity 70, got %d", st.Quantity)
	}
}

func TestRecordTransaction_InsufficientStock(t *testing.T) {
	svc, _ := newTestService()
	c := seedCommodity(t, svc)
	facilityID := uuid.New()
	receive(t, svc, c.ID, facilityID, "B001", 10)

	err := svc.RecordTransaction(context.Background(), &StockTransaction{
		CommodityID:     c.ID,
		FacilityID:      facilityID,
		BatchNumber:     "B001",
		TransactionType: TxnOut,
		Quantity:        11,
	})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
}

func TestRecordTransaction_CommodityMustExist(t *testing.T) {
	svc, _ := newTestService()
	err := svc.RecordTransaction(context.Background(), &StockTransaction{
		CommodityID:     uuid.New(),
		FacilityID:      uuid.New(),
		TransactionType: TxnIn,
		Quantity:        5,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRecordTransaction_TransferTypeRejected(t *testing.T) {
	svc, _ := newTestService()
	c := seedCommodity(t, svc)

	err := svc.RecordTransaction(context.Background(), &StockTransaction{
		CommodityID:     c.ID,
		FacilityID:      uuid.New(),
		TransactionType: TxnTransfer,
		Quantity:        5,
	})
	if err == nil {
		t.Fatal("expected error for direct transfer transaction")
	}
}

func TestRecordTransaction_Adjustment(t *testing.T) {
	svc, stocks := newTestService()
	c := seedCommodity(t, svc)
	facilityID := uuid.New()
	receive(t, svc, c.ID, facilityID, "B001", 50)

	err := svc.RecordTransaction(context.Background(), &StockTransaction{
		CommodityID:     c.ID,
		FacilityID:      facilityID,
		BatchNumber:     "B001",
		TransactionType: TxnAdjustment,
		Delta:           -5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	st, _ := stocks.Get(context.Background(), c.ID, facilityID, "B001")
	if st.Quantity != 45 {
		t.Errorf("expected quantity 45, got %d", st.Quantity)
	}
}

func TestTransferStock(t *testing.T) {
	svc, stocks := newTestService()
	c := seedCommodity(t, svc)
	from := uuid.New()
	to := uuid.New()
	receive(t, svc, c.ID, from, "B001", 100)

	out, in, err := svc.TransferStock(context.Background(), c.ID, from, to, "B001", 40, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Reference == nil || in.Reference == nil || *out.Reference != *in.Reference {
		t.Error("expected both legs to share a reference")
	}

	src, _ := stocks.Get(context.Background(), c.ID, from, "B001")
	dst, _ := stocks.Get(context.Background(), c.ID, to, "B001")
	if src.Quantity != 60 {
		t.Errorf("expected source quantity 60, got %d", src.Quantity)
	}
	if dst.Quantity != 40 {
		t.Errorf("expected destination quantity 40, got %d", dst.Quantity)
	}
}

func TestTransferStock_InsufficientSource(t *testing.T) {
	svc, _ := newTestService()
	c := seedCommodity(t, svc)
	from := uuid.New()
	to := uuid.New()
	receive(t, svc, c.ID, from, "B001", 10)

	_, _, err := svc.TransferStock(context.Background(), c.ID, from, to, "B001", 20, nil)
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
}

type brokenPairStockRepo struct {
	*mockStockRepo
}

func (r *brokenPairStockRepo) ApplyPair(_ context.Context, _, _ *StockTransaction) error {
	return errors.New("write failed")
}

func TestTransferStock_FailedTransferLeavesSourceIntact(t *testing.T) {
	stocks := newMockStockRepo()
	svc := NewService(newMockCommodityRepo(),
		&brokenPairStockRepo{mockStockRepo: stocks},
		&mockTransactionRepo{stocks: stocks})
	c := seedCommodity(t, svc)
	from := uuid.New()
	to := uuid.New()
	receive(t, svc, c.ID, from, "B001", 100)

	_, _, err := svc.TransferStock(context.Background(), c.ID, from, to, "B001", 40, nil)
	if err == nil {
		t.Fatal("expected error")
	}

	src, getErr := stocks.Get(context.Background(), c.ID, from, "B001")
	if getErr != nil {
		t.Fatalf("unexpected error: %v", getErr)
	}
	if src.Quantity != 100 {
		t.Errorf("expected source quantity 100 after failed transfer, got %d", src.Quantity)
	}
	if _, getErr := stocks.Get(context.Background(), c.ID, to, "B001"); getErr == nil {
		t.Error("expected no destination stock after failed transfer")
	}
	for _, txn := range stocks.ledger {
		if txn.TransactionType == TxnTransfer {
			t.Error("expected no transfer legs in the ledger after failed transfer")
		}
	}
}

func TestTransferStock_SameFacilityRejected(t *testing.T) {
	svc, _ := newTestService()
	c := seedCommodity(t, svc)
	facilityID := uuid.New()

	_, _, err := svc.TransferStock(context.Background(), c.ID, facilityID, facilityID, "B001", 5, nil)
	if err == nil {
		t.Fatal("expected error for same-facility transfer")
	}
}

func TestReconcile_MatchingLedger(t *testing.T) {
	svc, _ := newTestService()
	c := seedCommodity(t, svc)
	facilityID := uuid.New()
	receive(t, svc, c.ID, facilityID, "B001", 100)

	result, err := svc.Reconcile(context.Background(), c.ID, facilityID, "B001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Adjusted {
		t.Error("expected no adjustment when ledger matches")
	}
	if result.LedgerBalance != 100 || result.StoredQuantity != 100 {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestReconcile_CorrectsDrift(t *testing.T) {
	svc, stocks := newTestService()
	c := seedCommodity(t, svc)
	facilityID := uuid.New()
	receive(t, svc, c.ID, facilityID, "B001", 100)

	// Simulate drift between the stored level and the ledger.
	st, _ := stocks.Get(context.Background(), c.ID, facilityID, "B001")
	st.Quantity = 90

	result, err := svc.Reconcile(context.Background(), c.ID, facilityID, "B001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Adjusted {
		t.Fatal("expected adjustment for drifted stock")
	}
	st, _ = stocks.Get(context.Background(), c.ID, facilityID, "B001")
	if st.Quantity != 100 {
		t.Errorf("expected corrected quantity 100, got %d", st.Quantity)
	}
}
