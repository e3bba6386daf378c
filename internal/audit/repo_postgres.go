package audit

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresRepo persists audit events in the auth_events table.
// Append-only: the schema carries no update path and neither does this repo.
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) Append(ctx context.Context, e Event) error {
	const q = `
		INSERT INTO auth_events
			(id, type, actor_user_id, actor_role, ip_address, path, message, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, q,
		e.ID,
		string(e.Type),
		nullable(e.ActorUserID),
		nullable(e.ActorRole),
		nullable(e.IPAddress),
		nullable(e.Path),
		nullable(e.Message),
		nullable(e.Metadata),
		e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("audit: append event: %w", err)
	}
	return nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
