package admin

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository answers the aggregate count queries behind the admin dashboards.
type Repository interface {
	Dashboard(ctx context.Context) (DashboardStats, error)
	AppointmentsByStatus(ctx context.Context) (map[string]int64, error)
	AppointmentsSince(ctx context.Context, since time.Time) (int64, error)
	Users(ctx context.Context) (UserStats, error)
	MessagesByStatus(ctx context.Context) (map[string]int64, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed stats repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) count(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Dashboard collects the headline counters in a single round of count queries.
func (r *PostgresRepository) Dashboard(ctx context.Context) (DashboardStats, error) {
	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	weekday := (int(now.Weekday()) + 6) % 7 // Monday-based week
	weekStart := now.AddDate(0, 0, -weekday).Truncate(24 * time.Hour)

	stats := DashboardStats{Timestamp: now}
	queries := []struct {
		dest  *int64
		query string
		args  []any
	}{
		{&stats.TotalUsers, `SELECT COUNT(*) FROM users`, nil},
		{&stats.ActiveUsers, `SELECT COUNT(*) FROM users WHERE is_active`, nil},
		{&stats.TotalAppointments, `SELECT COUNT(*) FROM appointments`, nil},
		{&stats.ConfirmedAppointments, `SELECT COUNT(*) FROM appointments WHERE status = 'confirmed'`, nil},
		{&stats.PendingAppointments, `SELECT COUNT(*) FROM appointments WHERE status = 'pending'`, nil},
		{&stats.PendingMessages, `SELECT COUNT(*) FROM contact_messages WHERE status = 'new'`, nil},
		{&stats.TotalDoctors, `SELECT COUNT(*) FROM doctors`, nil},
		{&stats.TotalDepartments, `SELECT COUNT(*) FROM departments`, nil},
		{&stats.TotalServices, `SELECT COUNT(*) FROM services`, nil},
		{&stats.MonthAppointments, `SELECT COUNT(*) FROM appointments WHERE created_at >= $1`, []any{monthStart}},
		{&stats.WeekAppointments, `SELECT COUNT(*) FROM appointments WHERE created_at >= $1`, []any{weekStart}},
	}
	for _, q := range queries {
		n, err := r.count(ctx, q.query, q.args...)
		if err != nil {
			return DashboardStats{}, err
		}
		*q.dest = n
	}
	return stats, nil
}

// AppointmentsByStatus counts appointments per status value.
func (r *PostgresRepository) AppointmentsByStatus(ctx context.Context) (map[string]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM appointments GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int64{}
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// AppointmentsSince counts appointments created at or after the given instant.
func (r *PostgresRepository) AppointmentsSince(ctx context.Context, since time.Time) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM appointments WHERE created_at >= $1`, since.UTC())
}

// Users breaks the user base down by role and activity.
func (r *PostgresRepository) Users(ctx context.Context) (UserStats, error) {
	stats := UserStats{Timestamp: time.Now().UTC()}
	row := r.db.QueryRow(ctx, `SELECT COUNT(*),
        COUNT(*) FILTER (WHERE is_active),
        COUNT(*) FILTER (WHERE is_admin),
        COUNT(*) FILTER (WHERE is_doctor),
        COUNT(*) FILTER (WHERE NOT is_admin AND NOT is_doctor)
        FROM users`)
	if err := row.Scan(&stats.TotalUsers, &stats.ActiveUsers, &stats.AdminUsers, &stats.DoctorUsers, &stats.PatientUsers); err != nil {
		return UserStats{}, err
	}
	return stats, nil
}

// MessagesByStatus counts contact messages per status value.
func (r *PostgresRepository) MessagesByStatus(ctx context.Context) (map[string]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM contact_messages GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int64{}
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
