package contact

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shifa-care/shifa_api/internal/apperr"
)

// Repository persists contact messages.
type Repository interface {
	Create(ctx context.Context, m Message) (Message, error)
	Get(ctx context.Context, id int64) (Message, error)
	List(ctx context.Context, filter Filter) ([]Message, int, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectMessage = `SELECT id, name, email, COALESCE(phone, ''), COALESCE(subject, ''),
    message, status, created_at, updated_at FROM contact_messages`

func (r *PostgresRepository) Create(ctx context.Context, m Message) (Message, error) {
	err := r.db.QueryRow(ctx, `INSERT INTO contact_messages (name, email, phone, subject, message, status, created_at, updated_at)
        VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6, $7, $7) RETURNING id`,
		m.Name, m.Email, m.Phone, m.Subject, m.Body, m.Status, m.CreatedAt.UTC()).Scan(&m.ID)
	if err != nil {
		return Message{}, err
	}
	m.UpdatedAt = m.CreatedAt
	return m, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (Message, error) {
	m, err := scanMessage(r.db.QueryRow(ctx, selectMessage+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Message{}, apperr.NotFound("contact message not found")
		}
		return Message{}, err
	}
	return m, nil
}

func (r *PostgresRepository) List(ctx context.Context, filter Filter) ([]Message, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	if filter.Email != "" {
		args = append(args, filter.Email)
		where += fmt.Sprintf(` AND email = $%d`, len(args))
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM contact_messages`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := selectMessage + where + ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(` OFFSET $%d`, len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, m)
	}
	return out, total, rows.Err()
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	cmd, err := r.db.Exec(ctx, `UPDATE contact_messages SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("contact message not found")
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM contact_messages WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("contact message not found")
	}
	return nil
}

func scanMessage(row pgx.Row) (Message, error) {
	var m Message
	err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Subject, &m.Body, &m.Status, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}
