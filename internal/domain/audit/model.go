package audit

import (
	"time"

	"github.com/google/uuid"
)

// Audit actions.
const (
	ActionCreate = "CREATE"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
	ActionView   = "VIEW"
	ActionExport = "EXPORT"
)

// Log is one append-only audit trail entry. Entries are never updated
// or deleted.
type Log struct {
	ID         uuid.UUID `db:"id" json:"id"`
	Actor      string    `db:"actor" json:"actor"`
	ActorRoles []string  `db:"actor_roles" json:"actor_roles,omitempty"`
	Action     string    `db:"action" json:"action"`
	EntityType string    `db:"entity_type" json:"entity_type"`
	EntityID   *string   `db:"entity_id" json:"entity_id,omitempty"`
	Path       string    `db:"path" json:"path"`
	Method     string    `db:"method" json:"method"`
	IPAddress  string    `db:"ip_address" json:"ip_address"`
	RequestID  string    `db:"request_id" json:"request_id"`
	StatusCode int       `db:"status_code" json:"status_code"`
	Timestamp  time.Time `db:"timestamp" json:"timestamp"`
}
