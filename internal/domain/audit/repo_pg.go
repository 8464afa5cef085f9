package audit

import (
	"context"
	"errors"
	"fmt"
	"time"

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

const logCols = `id, actor, actor_roles, action, entity_type, entity_id, path,
	method, ip_address, request_id, status_code, timestamp`

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) Create(ctx context.Context, l *Log) error {
	l.ID = uuid.New()
	if l.Timestamp.IsZero() {
		l.Timestamp = time.Now().UTC()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO audit_log (id, actor, actor_roles, action, entity_type,
			entity_id, path, method, ip_address, request_id, status_code, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		l.ID, l.Actor, l.ActorRoles, l.Action, l.EntityType, l.EntityID,
		l.Path, l.Method, l.IPAddress, l.RequestID, l.StatusCode, l.Timestamp)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Log, error) {
	var l Log
	err := r.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM audit_log WHERE id = $1`, logCols), id).
		Scan(&l.ID, &l.Actor, &l.ActorRoles, &l.Action, &l.EntityType,
			&l.EntityID, &l.Path, &l.Method, &l.IPAddress, &l.RequestID,
			&l.StatusCode, &l.Timestamp)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &l, nil
}

func (r *repoPG) List(ctx context.Context, filter ListFilter, limit, offset int) ([]*Log, int, error) {
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
	if filter.Actor != "" {
		add(`actor = $%d`, filter.Actor)
	}
	if filter.Action != "" {
		add(`action = $%d`, filter.Action)
	}
	if filter.EntityType != "" {
		add(`entity_type = $%d`, filter.EntityType)
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM audit_log `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	rows, err := r.pool.Query(ctx, fmt.Sprintf(
		`SELECT %s FROM audit_log %s ORDER BY timestamp DESC LIMIT $%d OFFSET $%d`,
		logCols, where, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*Log
	for rows.Next() {
		var l Log
		if err := rows.Scan(&l.ID, &l.Actor, &l.ActorRoles, &l.Action,
			&l.EntityType, &l.EntityID, &l.Path, &l.Method, &l.IPAddress,
			&l.RequestID, &l.StatusCode, &l.Timestamp); err != nil {
			return nil, 0, err
		}
		out = append(out, &l)
	}
	return out, total, rows.Err()
}
