package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/chis/chis/internal/platform/auth"
)

// AuditEntry captures who touched what, when, and from where. Entries are
// handed to an AuditRecorder for persistence; the audit trail itself is
// append-only.
type AuditEntry struct {
	Actor      string
	ActorRoles []string
	Action     string // CREATE, UPDATE, DELETE, VIEW, EXPORT
	EntityType string
	Path       string
	Method     string
	IPAddress  string
	RequestID  string
	StatusCode int
	Timestamp  time.Time
}

// AuditRecorder persists audit entries. Decoupled from the concrete audit
// domain service so tests can provide a mock.
type AuditRecorder interface {
	Record(entry AuditEntry) error
}

// AuditRecorderFunc is a function adapter for AuditRecorder.
type AuditRecorderFunc func(entry AuditEntry) error

func (f AuditRecorderFunc) Record(entry AuditEntry) error {
	return f(entry)
}

// Audit returns middleware that records an audit entry for every mutating
// request under /api/v1, and for exports. Read traffic is logged but not
// persisted, keeping the audit table focused on record changes.
func Audit(logger zerolog.Logger, recorders ...AuditRecorder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			path := req.URL.Path

			if !strings.HasPrefix(path, "/api/v1/") {
				return next(c)
			}

			// Run the handler first so the response status is known.
			err := next(c)

			entry := AuditEntry{
				Timestamp:  time.Now().UTC(),
				Path:       path,
				Method:     req.Method,
				IPAddress:  c.RealIP(),
				StatusCode: c.Response().Status,
				Action:     actionForRequest(req.Method, path),
				EntityType: entityTypeFromPath(path),
			}

			ctx := req.Context()
			entry.Actor = auth.UserIDFromContext(ctx)
			entry.ActorRoles = auth.RolesFromContext(ctx)
			if rid, ok := c.Get("request_id").(string); ok {
				entry.RequestID = rid
			}

			persist := entry.Action != "VIEW"
			if persist && len(recorders) > 0 && recorders[0] != nil {
				if recErr := recorders[0].Record(entry); recErr != nil {
					logger.Error().Err(recErr).
						Str("request_id", entry.RequestID).
						Msg("failed to record audit entry")
				}
			}

			logger.Info().
				Str("type", "audit").
				Str("request_id", entry.RequestID).
				Str("actor", entry.Actor).
				Strs("actor_roles", entry.ActorRoles).
				Str("action", entry.Action).
				Str("entity_type", entry.EntityType).
				Str("method", entry.Method).
				Str("path", entry.Path).
				Str("remote_ip", entry.IPAddress).
				Int("status", entry.StatusCode).
				Msg("record_access")

			return err
		}
	}
}

// actionForRequest maps the HTTP method to the audit action vocabulary.
// GET on an export endpoint counts as EXPORT, not VIEW.
func actionForRequest(method, path string) string {
	if strings.HasSuffix(path, "/export") {
		return "EXPORT"
	}
	switch method {
	case http.MethodGet, http.MethodHead:
		return "VIEW"
	case http.MethodPost:
		return "CREATE"
	case http.MethodPut, http.MethodPatch:
		return "UPDATE"
	case http.MethodDelete:
		return "DELETE"
	default:
		return "VIEW"
	}
}

// entityTypeFromPath parses the entity collection from a URL path, e.g.
// /api/v1/households/123 -> households.
func entityTypeFromPath(path string) string {
	segments := strings.Split(strings.TrimPrefix(path, "/api/v1/"), "/")
	if len(segments) > 0 && segments[0] != "" {
		return segments[0]
	}
	return "unknown"
}
