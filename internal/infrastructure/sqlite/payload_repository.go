package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/zjrosen/dbug/internal/payload"
)

const payloadColumns = `seq, id, received_at, path, body, size`

// payloadRepository implements payload.Repository using SQLite.
type payloadRepository struct {
	db *sql.DB
}

func newPayloadRepository(db *sql.DB) *payloadRepository {
	return &payloadRepository{db: db}
}

var _ payload.Repository = (*payloadRepository)(nil)

func scanPayload(scanner interface{ Scan(...any) error }) (*payloadModel, error) {
	var m payloadModel
	err := scanner.Scan(&m.Seq, &m.ID, &m.ReceivedAt, &m.Path, &m.Body, &m.Size)
	return &m, err
}

func (r *payloadRepository) Save(ctx context.Context, p *payload.Payload) error {
	m := toPayloadModel(p)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO payloads (id, received_at, path, body, size) VALUES (?, ?, ?, ?, ?)`,
		m.ID, m.ReceivedAt, m.Path, m.Body, m.Size,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payload: %w", err)
	}
	return nil
}

func (r *payloadRepository) FindByID(ctx context.Context, id string) (*payload.Payload, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+payloadColumns+` FROM payloads WHERE id = ?`, id)
	m, err := scanPayload(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &payload.NotFoundError{ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find payload: %w", err)
	}
	return m.toDomain(), nil
}

func (r *payloadRepository) List(ctx context.Context, filter payload.ListFilter) ([]*payload.Payload, error) {
	query := `SELECT ` + payloadColumns + ` FROM payloads ORDER BY received_at DESC, seq DESC`
	args := []any{}
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payloads: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*payload.Payload
	for rows.Next() {
		m, err := scanPayload(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payload: %w", err)
		}
		out = append(out, m.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payloads: %w", err)
	}
	return out, nil
}

func (r *payloadRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM payloads WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payload: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return &payload.NotFoundError{ID: id}
	}
	return nil
}

func (r *payloadRepository) DeleteAll(ctx context.Context) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM payloads`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete payloads: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return int(n), nil
}

func (r *payloadRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM payloads`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count payloads: %w", err)
	}
	return n, nil
}
