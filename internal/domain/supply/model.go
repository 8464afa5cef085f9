package supply

import (
	"time"

	"github.com/google/uuid"
)

// Commodity types.
const (
	TypeMedicine  = "MEDICINE"
	TypeVaccine   = "VACCINE"
	TypeSupply    = "SUPPLY"
	TypeEquipment = "EQUIPMENT"
	TypeReagent   = "REAGENT"
)

// Stock transaction types.
const (
	TxnIn         = "IN"
	TxnOut        = "OUT"
	TxnAdjustment = "ADJUSTMENT"
	TxnTransfer   = "TRANSFER"
	TxnExpired    = "EXPIRED"
)

type Commodity struct {
	ID            uuid.UUID `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Code          string    `db:"code" json:"code"`
	CommodityType string    `db:"commodity_type" json:"commodity_type"`
	Unit          string    `db:"unit" json:"unit"`
	Description   *string   `db:"description" json:"description,omitempty"`
	ReorderLevel  int       `db:"reorder_level" json:"reorder_level"`
	IsActive      bool      `db:"is_active" json:"is_active"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// Stock is the on-hand quantity of one commodity batch at one facility.
// One row exists per (commodity, facility, batch).
type Stock struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	CommodityID uuid.UUID  `db:"commodity_id" json:"commodity_id"`
	FacilityID  uuid.UUID  `db:"facility_id" json:"facility_id"`
	BatchNumber string     `db:"batch_number" json:"batch_number"`
	Quantity    int        `db:"quantity" json:"quantity"`
	ExpiryDate  *time.Time `db:"expiry_date" json:"expiry_date,omitempty"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// StockTransaction is one immutable ledger entry. Quantity is always
// positive; Delta carries the signed effect on stock.
type StockTransaction struct {
	ID                    uuid.UUID  `db:"id" json:"id"`
	CommodityID           uuid.UUID  `db:"commodity_id" json:"commodity_id"`
	FacilityID            uuid.UUID  `db:"facility_id" json:"facility_id"`
	BatchNumber           string     `db:"batch_number" json:"batch_number"`
	TransactionType       string     `db:"transaction_type" json:"transaction_type"`
	Quantity              int        `db:"quantity" json:"quantity"`
	Delta                 int        `db:"delta" json:"delta"`
	SourceFacilityID      *uuid.UUID `db:"source_facility_id" json:"source_facility_id,omitempty"`
	DestinationFacilityID *uuid.UUID `db:"destination_facility_id" json:"destination_facility_id,omitempty"`
	Reference             *string    `db:"reference" json:"reference,omitempty"`
	PerformedBy           *uuid.UUID `db:"performed_by" json:"performed_by,omitempty"`
	TransactionDate       time.Time  `db:"transaction_date" json:"transaction_date"`
	Notes                 *string    `db:"notes" json:"notes,omitempty"`
	CreatedAt             time.Time  `db:"created_at" json:"created_at"`
}

// ReconcileResult reports one batch reconciliation run.
type ReconcileResult struct {
	CommodityID    uuid.UUID `json:"commodity_id"`
	FacilityID     uuid.UUID `json:"facility_id"`
	BatchNumber    string    `json:"batch_number"`
	StoredQuantity int       `json:"stored_quantity"`
	LedgerBalance  int       `json:"ledger_balance"`
	Adjusted       bool      `json:"adjusted"`
}
