package directory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shifa-care/shifa_api/internal/apperr"
)

// Repository persists departments and doctors.
type Repository interface {
	ListDepartments(ctx context.Context, activeOnly bool) ([]Department, error)
	GetDepartment(ctx context.Context, id int64) (Department, error)
	CreateDepartment(ctx context.Context, d Department) (Department, error)
	UpdateDepartment(ctx context.Context, d Department) (Department, error)
	DeleteDepartment(ctx context.Context, id int64) error

	ListDoctors(ctx context.Context, filter DoctorFilter) ([]Doctor, error)
	GetDoctor(ctx context.Context, id int64) (Doctor, error)
	CreateDoctor(ctx context.Context, d Doctor) (Doctor, error)
	UpdateDoctor(ctx context.Context, d Doctor) (Doctor, error)
	DeleteDoctor(ctx context.Context, id int64) error
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectDepartment = `SELECT id, name, COALESCE(description, ''), COALESCE(image_url, ''),
    is_active, created_at, updated_at FROM departments`

func (r *PostgresRepository) ListDepartments(ctx context.Context, activeOnly bool) ([]Department, error) {
	query := selectDepartment
	if activeOnly {
		query += ` WHERE is_active`
	}
	rows, err := r.db.Query(ctx, query+` ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Department
	for rows.Next() {
		var d Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.ImageURL, &d.IsActive, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetDepartment(ctx context.Context, id int64) (Department, error) {
	var d Department
	err := r.db.QueryRow(ctx, selectDepartment+` WHERE id = $1`, id).
		Scan(&d.ID, &d.Name, &d.Description, &d.ImageURL, &d.IsActive, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Department{}, apperr.NotFound("department not found")
		}
		return Department{}, err
	}
	return d, nil
}

func (r *PostgresRepository) CreateDepartment(ctx context.Context, d Department) (Department, error) {
	err := r.db.QueryRow(ctx, `INSERT INTO departments (name, description, image_url, is_active, created_at, updated_at)
        VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, $5, $5) RETURNING id`,
		d.Name, d.Description, d.ImageURL, d.IsActive, d.CreatedAt.UTC()).Scan(&d.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return Department{}, apperr.Conflict("department with this name already exists").WithCause(err)
		}
		return Department{}, err
	}
	d.UpdatedAt = d.CreatedAt
	return d, nil
}

func (r *PostgresRepository) UpdateDepartment(ctx context.Context, d Department) (Department, error) {
	d.UpdatedAt = time.Now().UTC()
	cmd, err := r.db.Exec(ctx, `UPDATE departments SET name = $1, description = NULLIF($2, ''),
        image_url = NULLIF($3, ''), is_active = $4, updated_at = $5 WHERE id = $6`,
		d.Name, d.Description, d.ImageURL, d.IsActive, d.UpdatedAt, d.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return Department{}, apperr.Conflict("department with this name already exists").WithCause(err)
		}
		return Department{}, err
	}
	if cmd.RowsAffected() == 0 {
		return Department{}, apperr.NotFound("department not found")
	}
	return d, nil
}

func (r *PostgresRepository) DeleteDepartment(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("department not found")
	}
	return nil
}

const selectDoctor = `SELECT d.id, d.user_id, COALESCE(u.full_name, ''), d.specialty,
    COALESCE(d.image_url, ''), COALESCE(d.bio, ''), COALESCE(d.experience_years, 0),
    d.department_id, d.is_available, d.created_at, d.updated_at
    FROM doctors d JOIN users u ON u.id = d.user_id`

func (r *PostgresRepository) ListDoctors(ctx context.Context, filter DoctorFilter) ([]Doctor, error) {
	query := selectDoctor + ` WHERE 1=1`
	args := []any{}
	if filter.DepartmentID != 0 {
		args = append(args, filter.DepartmentID)
		query += fmt.Sprintf(` AND d.department_id = $%d`, len(args))
	}
	if filter.Specialty != "" {
		args = append(args, filter.Specialty)
		query += fmt.Sprintf(` AND d.specialty ILIKE $%d`, len(args))
	}
	if filter.AvailableOnly {
		query += ` AND d.is_available`
	}

	rows, err := r.db.Query(ctx, query+` ORDER BY d.id`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Doctor
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetDoctor(ctx context.Context, id int64) (Doctor, error) {
	d, err := scanDoctor(r.db.QueryRow(ctx, selectDoctor+` WHERE d.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Doctor{}, apperr.NotFound("doctor not found")
		}
		return Doctor{}, err
	}
	return d, nil
}

func (r *PostgresRepository) CreateDoctor(ctx context.Context, d Doctor) (Doctor, error) {
	err := r.db.QueryRow(ctx, `INSERT INTO doctors (user_id, specialty, image_url, bio, experience_years, department_id, is_available, created_at, updated_at)
        VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6, $7, $8, $8) RETURNING id`,
		d.UserID, d.Specialty, d.ImageURL, d.Bio, d.ExperienceYears, d.DepartmentID, d.IsAvailable, d.CreatedAt.UTC()).Scan(&d.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return Doctor{}, apperr.Conflict("doctor profile already exists for this user").WithCause(err)
		}
		return Doctor{}, err
	}
	d.UpdatedAt = d.CreatedAt
	return d, nil
}

func (r *PostgresRepository) UpdateDoctor(ctx context.Context, d Doctor) (Doctor, error) {
	d.UpdatedAt = time.Now().UTC()
	cmd, err := r.db.Exec(ctx, `UPDATE doctors SET specialty = $1, image_url = NULLIF($2, ''),
        bio = NULLIF($3, ''), experience_years = $4, department_id = $5, is_available = $6, updated_at = $7
        WHERE id = $8`,
		d.Specialty, d.ImageURL, d.Bio, d.ExperienceYears, d.DepartmentID, d.IsAvailable, d.UpdatedAt, d.ID)
	if err != nil {
		return Doctor{}, err
	}
	if cmd.RowsAffected() == 0 {
		return Doctor{}, apperr.NotFound("doctor not found")
	}
	return d, nil
}

func (r *PostgresRepository) DeleteDoctor(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM doctors WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("doctor not found")
	}
	return nil
}

func scanDoctor(row pgx.Row) (Doctor, error) {
	var d Doctor
	err := row.Scan(&d.ID, &d.UserID, &d.FullName, &d.Specialty, &d.ImageURL, &d.Bio,
		&d.ExperienceYears, &d.DepartmentID, &d.IsAvailable, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
