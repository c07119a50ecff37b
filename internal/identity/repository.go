package identity

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shifa-care/shifa_api/internal/apperr"
)

// Repository persists users. Callers pass canonical phone numbers only.
type Repository interface {
	Create(ctx context.Context, user User) (User, error)
	FindByPhone(ctx context.Context, phone string) (User, error)
	FindByID(ctx context.Context, id int64) (User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

const uniqueViolationCode = "23505"

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed identity repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new user. A duplicate canonical phone or email surfaces as
// a conflict so concurrent registrations are serialized by the unique index.
func (r *PostgresRepository) Create(ctx context.Context, user User) (User, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO users (phone, password_hash, full_name, email, is_active, is_admin, is_doctor, created_at, updated_at)
        VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6, $7, $8, $8)
        RETURNING id`,
		user.Phone, user.PasswordHash, user.FullName, user.Email,
		user.IsActive, user.IsAdmin, user.IsDoctor, user.CreatedAt.UTC())
	if err := row.Scan(&user.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return User{}, apperr.Conflict("user with this phone number already exists").WithCause(err)
		}
		return User{}, err
	}
	user.UpdatedAt = user.CreatedAt
	return user, nil
}

// FindByPhone fetches a user by canonical phone number.
func (r *PostgresRepository) FindByPhone(ctx context.Context, phone string) (User, error) {
	return r.scanUser(r.db.QueryRow(ctx, selectUser+` WHERE phone = $1`, phone))
}

// FindByID fetches a user by numeric identifier.
func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (User, error) {
	return r.scanUser(r.db.QueryRow(ctx, selectUser+` WHERE id = $1`, id))
}

// UpdatePassword replaces the stored hash in place.
func (r *PostgresRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	cmd, err := r.db.Exec(ctx, `UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`,
		passwordHash, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

const selectUser = `SELECT id, phone, password_hash, COALESCE(full_name, ''), COALESCE(email, ''),
    is_active, is_admin, is_doctor, created_at, updated_at FROM users`

func (r *PostgresRepository) scanUser(row pgx.Row) (User, error) {
	var user User
	err := row.Scan(&user.ID, &user.Phone, &user.PasswordHash, &user.FullName, &user.Email,
		&user.IsActive, &user.IsAdmin, &user.IsDoctor, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, apperr.NotFound("user not found").WithCause(err)
		}
		return User{}, err
	}
	user.CreatedAt = user.CreatedAt.UTC()
	user.UpdatedAt = user.UpdatedAt.UTC()
	return user, nil
}
