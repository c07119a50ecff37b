package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shifa-care/shifa_api/internal/apperr"
)

// Repository persists appointments.
type Repository interface {
	Create(ctx context.Context, a Appointment) (Appointment, error)
	Get(ctx context.Context, id int64) (Appointment, error)
	List(ctx context.Context, filter Filter) ([]Appointment, int, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	Update(ctx context.Context, a Appointment) (Appointment, error)
	// SlotTaken reports whether the doctor already has a live booking at the
	// given date and time. Cancelled and no-show bookings do not block a slot.
	SlotTaken(ctx context.Context, doctorID int64, date time.Time, timeSlot string) (bool, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectAppointment = `SELECT id, patient_id, COALESCE(doctor_id, 0), department_id,
    appointment_date, appointment_time, COALESCE(notes, ''), status, created_at, updated_at
    FROM appointments`

func (r *PostgresRepository) Create(ctx context.Context, a Appointment) (Appointment, error) {
	err := r.db.QueryRow(ctx, `INSERT INTO appointments (patient_id, doctor_id, department_id, appointment_date, appointment_time, notes, status, created_at, updated_at)
        VALUES ($1, NULLIF($2, 0), $3, $4, $5, NULLIF($6, ''), $7, $8, $8) RETURNING id`,
		a.PatientID, a.DoctorID, a.DepartmentID, a.Date, a.TimeSlot, a.Notes, a.Status, a.CreatedAt.UTC()).Scan(&a.ID)
	if err != nil {
		return Appointment{}, err
	}
	a.UpdatedAt = a.CreatedAt
	return a, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (Appointment, error) {
	a, err := scanAppointment(r.db.QueryRow(ctx, selectAppointment+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Appointment{}, apperr.NotFound("appointment not found")
		}
		return Appointment{}, err
	}
	return a, nil
}

func (r *PostgresRepository) List(ctx context.Context, filter Filter) ([]Appointment, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	if filter.PatientID != 0 {
		args = append(args, filter.PatientID)
		where += fmt.Sprintf(` AND patient_id = $%d`, len(args))
	}
	if filter.DoctorID != 0 {
		args = append(args, filter.DoctorID)
		where += fmt.Sprintf(` AND doctor_id = $%d`, len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(` AND status = $%d`, len(args))
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM appointments`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := selectAppointment + where + ` ORDER BY appointment_date DESC, appointment_time DESC`
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

	var out []Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, a)
	}
	return out, total, rows.Err()
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	cmd, err := r.db.Exec(ctx, `UPDATE appointments SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("appointment not found")
	}
	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, a Appointment) (Appointment, error) {
	a.UpdatedAt = time.Now().UTC()
	cmd, err := r.db.Exec(ctx, `UPDATE appointments SET doctor_id = NULLIF($1, 0), department_id = $2,
        appointment_date = $3, appointment_time = $4, notes = NULLIF($5, ''), status = $6, updated_at = $7
        WHERE id = $8`,
		a.DoctorID, a.DepartmentID, a.Date, a.TimeSlot, a.Notes, a.Status, a.UpdatedAt, a.ID)
	if err != nil {
		return Appointment{}, err
	}
	if cmd.RowsAffected() == 0 {
		return Appointment{}, apperr.NotFound("appointment not found")
	}
	return a, nil
}

func (r *PostgresRepository) SlotTaken(ctx context.Context, doctorID int64, date time.Time, timeSlot string) (bool, error) {
	var taken bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM appointments
        WHERE doctor_id = $1 AND appointment_date = $2 AND appointment_time = $3
        AND status NOT IN ($4, $5))`,
		doctorID, date, timeSlot, StatusCancelled, StatusNoShow).Scan(&taken)
	return taken, err
}

func scanAppointment(row pgx.Row) (Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.PatientID, &a.DoctorID, &a.DepartmentID, &a.Date, &a.TimeSlot,
		&a.Notes, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}
