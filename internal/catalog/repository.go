package catalog

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

// Repository persists the public catalog entities.
type Repository interface {
	ListServices(ctx context.Context, activeOnly bool) ([]Service, error)
	GetService(ctx context.Context, id int64) (Service, error)
	CreateService(ctx context.Context, s Service) (Service, error)
	UpdateService(ctx context.Context, s Service) (Service, error)
	DeleteService(ctx context.Context, id int64) error

	ListAmbulances(ctx context.Context, activeOnly bool) ([]Ambulance, error)
	GetAmbulance(ctx context.Context, id int64) (Ambulance, error)
	CreateAmbulance(ctx context.Context, a Ambulance) (Ambulance, error)
	UpdateAmbulance(ctx context.Context, a Ambulance) (Ambulance, error)
	DeleteAmbulance(ctx context.Context, id int64) error

	ListEyeProducts(ctx context.Context, category string, activeOnly bool) ([]EyeProduct, error)
	GetEyeProduct(ctx context.Context, id int64) (EyeProduct, error)
	CreateEyeProduct(ctx context.Context, p EyeProduct) (EyeProduct, error)
	UpdateEyeProduct(ctx context.Context, p EyeProduct) (EyeProduct, error)
	DeleteEyeProduct(ctx context.Context, id int64) error
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectService = `SELECT id, name, COALESCE(description, ''), COALESCE(icon, ''),
    is_active, created_at, updated_at FROM services`

func (r *PostgresRepository) ListServices(ctx context.Context, activeOnly bool) ([]Service, error) {
	query := selectService
	if activeOnly {
		query += ` WHERE is_active`
	}
	rows, err := r.db.Query(ctx, query+` ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Service
	for rows.Next() {
		var s Service
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Icon, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetService(ctx context.Context, id int64) (Service, error) {
	var s Service
	err := r.db.QueryRow(ctx, selectService+` WHERE id = $1`, id).
		Scan(&s.ID, &s.Name, &s.Description, &s.Icon, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Service{}, apperr.NotFound("service not found")
		}
		return Service{}, err
	}
	return s, nil
}

func (r *PostgresRepository) CreateService(ctx context.Context, s Service) (Service, error) {
	err := r.db.QueryRow(ctx, `INSERT INTO services (name, description, icon, is_active, created_at, updated_at)
        VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, $5, $5) RETURNING id`,
		s.Name, s.Description, s.Icon, s.IsActive, s.CreatedAt.UTC()).Scan(&s.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return Service{}, apperr.Conflict("service with this name already exists").WithCause(err)
		}
		return Service{}, err
	}
	s.UpdatedAt = s.CreatedAt
	return s, nil
}

func (r *PostgresRepository) UpdateService(ctx context.Context, s Service) (Service, error) {
	s.UpdatedAt = time.Now().UTC()
	cmd, err := r.db.Exec(ctx, `UPDATE services SET name = $1, description = NULLIF($2, ''),
        icon = NULLIF($3, ''), is_active = $4, updated_at = $5 WHERE id = $6`,
		s.Name, s.Description, s.Icon, s.IsActive, s.UpdatedAt, s.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return Service{}, apperr.Conflict("service with this name already exists").WithCause(err)
		}
		return Service{}, err
	}
	if cmd.RowsAffected() == 0 {
		return Service{}, apperr.NotFound("service not found")
	}
	return s, nil
}

func (r *PostgresRepository) DeleteService(ctx context.Context, id int64) error {
	return r.deleteRow(ctx, "services", "service", id)
}

const selectAmbulance = `SELECT id, name, COALESCE(description, ''), phone, COALESCE(location, ''),
    COALESCE(latitude, ''), COALESCE(longitude, ''), available_24_7, ambulance_count,
    is_active, created_at, updated_at FROM ambulance_services`

func (r *PostgresRepository) ListAmbulances(ctx context.Context, activeOnly bool) ([]Ambulance, error) {
	query := selectAmbulance
	if activeOnly {
		query += ` WHERE is_active`
	}
	rows, err := r.db.Query(ctx, query+` ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Ambulance
	for rows.Next() {
		a, err := scanAmbulance(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetAmbulance(ctx context.Context, id int64) (Ambulance, error) {
	a, err := scanAmbulance(r.db.QueryRow(ctx, selectAmbulance+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Ambulance{}, apperr.NotFound("ambulance service not found")
		}
		return Ambulance{}, err
	}
	return a, nil
}

func (r *PostgresRepository) CreateAmbulance(ctx context.Context, a Ambulance) (Ambulance, error) {
	err := r.db.QueryRow(ctx, `INSERT INTO ambulance_services (name, description, phone, location, latitude, longitude, available_24_7, ambulance_count, is_active, created_at, updated_at)
        VALUES ($1, NULLIF($2, ''), $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7, $8, $9, $10, $10) RETURNING id`,
		a.Name, a.Description, a.Phone, a.Location, a.Latitude, a.Longitude,
		a.Available247, a.AmbulanceCount, a.IsActive, a.CreatedAt.UTC()).Scan(&a.ID)
	if err != nil {
		return Ambulance{}, err
	}
	a.UpdatedAt = a.CreatedAt
	return a, nil
}

func (r *PostgresRepository) UpdateAmbulance(ctx context.Context, a Ambulance) (Ambulance, error) {
	a.UpdatedAt = time.Now().UTC()
	cmd, err := r.db.Exec(ctx, `UPDATE ambulance_services SET name = $1, description = NULLIF($2, ''),
        phone = $3, location = NULLIF($4, ''), latitude = NULLIF($5, ''), longitude = NULLIF($6, ''),
        available_24_7 = $7, ambulance_count = $8, is_active = $9, updated_at = $10 WHERE id = $11`,
		a.Name, a.Description, a.Phone, a.Location, a.Latitude, a.Longitude,
		a.Available247, a.AmbulanceCount, a.IsActive, a.UpdatedAt, a.ID)
	if err != nil {
		return Ambulance{}, err
	}
	if cmd.RowsAffected() == 0 {
		return Ambulance{}, apperr.NotFound("ambulance service not found")
	}
	return a, nil
}

func (r *PostgresRepository) DeleteAmbulance(ctx context.Context, id int64) error {
	return r.deleteRow(ctx, "ambulance_services", "ambulance service", id)
}

const selectEyeProduct = `SELECT id, name, COALESCE(description, ''), category, COALESCE(brand, ''),
    COALESCE(price, ''), COALESCE(image_url, ''), stock_quantity, is_available,
    is_active, created_at, updated_at FROM eye_products`

func (r *PostgresRepository) ListEyeProducts(ctx context.Context, category string, activeOnly bool) ([]EyeProduct, error) {
	query := selectEyeProduct + ` WHERE 1=1`
	args := []any{}
	if category != "" {
		args = append(args, category)
		query += fmt.Sprintf(` AND category ILIKE $%d`, len(args))
	}
	if activeOnly {
		query += ` AND is_active`
	}

	rows, err := r.db.Query(ctx, query+` ORDER BY name`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EyeProduct
	for rows.Next() {
		p, err := scanEyeProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetEyeProduct(ctx context.Context, id int64) (EyeProduct, error) {
	p, err := scanEyeProduct(r.db.QueryRow(ctx, selectEyeProduct+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return EyeProduct{}, apperr.NotFound("eye product not found")
		}
		return EyeProduct{}, err
	}
	return p, nil
}

func (r *PostgresRepository) CreateEyeProduct(ctx context.Context, p EyeProduct) (EyeProduct, error) {
	err := r.db.QueryRow(ctx, `INSERT INTO eye_products (name, description, category, brand, price, image_url, stock_quantity, is_available, is_active, created_at, updated_at)
        VALUES ($1, NULLIF($2, ''), $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7, $8, $9, $10, $10) RETURNING id`,
		p.Name, p.Description, p.Category, p.Brand, p.Price, p.ImageURL,
		p.StockQuantity, p.IsAvailable, p.IsActive, p.CreatedAt.UTC()).Scan(&p.ID)
	if err != nil {
		return EyeProduct{}, err
	}
	p.UpdatedAt = p.CreatedAt
	return p, nil
}

func (r *PostgresRepository) UpdateEyeProduct(ctx context.Context, p EyeProduct) (EyeProduct, error) {
	p.UpdatedAt = time.Now().UTC()
	cmd, err := r.db.Exec(ctx, `UPDATE eye_products SET name = $1, description = NULLIF($2, ''),
        category = $3, brand = NULLIF($4, ''), price = NULLIF($5, ''), image_url = NULLIF($6, ''),
        stock_quantity = $7, is_available = $8, is_active = $9, updated_at = $10 WHERE id = $11`,
		p.Name, p.Description, p.Category, p.Brand, p.Price, p.ImageURL,
		p.StockQuantity, p.IsAvailable, p.IsActive, p.UpdatedAt, p.ID)
	if err != nil {
		return EyeProduct{}, err
	}
	if cmd.RowsAffected() == 0 {
		return EyeProduct{}, apperr.NotFound("eye product not found")
	}
	return p, nil
}

func (r *PostgresRepository) DeleteEyeProduct(ctx context.Context, id int64) error {
	return r.deleteRow(ctx, "eye_products", "eye product", id)
}

func (r *PostgresRepository) deleteRow(ctx context.Context, table, label string, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound(label + " not found")
	}
	return nil
}

func scanAmbulance(row pgx.Row) (Ambulance, error) {
	var a Ambulance
	err := row.Scan(&a.ID, &a.Name, &a.Description, &a.Phone, &a.Location, &a.Latitude, &a.Longitude,
		&a.Available247, &a.AmbulanceCount, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func scanEyeProduct(row pgx.Row) (EyeProduct, error) {
	var p EyeProduct
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.Brand, &p.Price, &p.ImageURL,
		&p.StockQuantity, &p.IsAvailable, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
