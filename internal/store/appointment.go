package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"clinic-scheduler-api/internal/model"
	"clinic-scheduler-api/internal/scheduling"
)

var _ scheduling.AppointmentRepository = (*Store)(nil)

const selectAppointments = `SELECT a.id, a.appointment_time, a.status,
	        d.id, d.name, d.specialty, d.email, d.phone,
	        p.id, p.name, p.email, p.phone, p.address
	 FROM appointments a
	 JOIN doctors d ON d.id = a.doctor_id
	 JOIN patients p ON p.id = a.patient_id`

func scanAppointment(row pgx.Row) (model.Appointment, error) {
	var (
		a      model.Appointment
		status int16
	)
	err := row.Scan(
		&a.ID, &a.StartTime, &status,
		&a.Doctor.ID, &a.Doctor.Name, &a.Doctor.Specialty, &a.Doctor.Email, &a.Doctor.Phone,
		&a.Patient.ID, &a.Patient.Name, &a.Patient.Email, &a.Patient.Phone, &a.Patient.Address,
	)
	a.Status = model.Status(status)
	return a, err
}

func (s *Store) queryAppointments(ctx context.Context, q string, args ...any) ([]model.Appointment, error) {
	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) FindByID(ctx context.Context, id string) (*model.Appointment, error) {
	a, err := scanAppointment(s.db.QueryRow(ctx, selectAppointments+` WHERE a.id = $1`, id))
	if err != nil {
		return nil, mapErr(err)
	}
	return &a, nil
}

// FindOverlapping relies on the fixed slot length: a stored slot [S, S+1h)
// overlaps [start, end) iff start-1h < S < end.
func (s *Store) FindOverlapping(ctx context.Context, doctorID string, start, end time.Time, excludeID string) ([]model.Appointment, error) {
	q := selectAppointments + `
	 WHERE a.doctor_id = $1
	   AND a.appointment_time > $2
	   AND a.appointment_time < $3`
	args := []any{doctorID, start.Add(-model.SlotDuration), end}

	if excludeID != "" {
		q += ` AND a.id <> $4`
		args = append(args, excludeID)
	}
	return s.queryAppointments(ctx, q, args...)
}

func (s *Store) ListByDoctorAndRange(ctx context.Context, doctorID string, from, to time.Time) ([]model.Appointment, error) {
	return s.queryAppointments(ctx, selectAppointments+`
	 WHERE a.doctor_id = $1
	   AND a.appointment_time BETWEEN $2 AND $3
	 ORDER BY a.appointment_time`, doctorID, from, to)
}

func (s *Store) ListByDoctorPatientNameAndRange(ctx context.Context, doctorID, name string, from, to time.Time) ([]model.Appointment, error) {
	return s.queryAppointments(ctx, selectAppointments+`
	 WHERE a.doctor_id = $1
	   AND strpos(lower(p.name), lower($2)) > 0
	   AND a.appointment_time BETWEEN $3 AND $4
	 ORDER BY a.appointment_time`, doctorID, name, from, to)
}

// Save inserts a or overwrites the stored row with the same id.
func (s *Store) Save(ctx context.Context, a *model.Appointment) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO appointments (id, doctor_id, patient_id, appointment_time, status)
		 VALUES ($1,$2,$3,$4,$5)
		 ON CONFLICT (id) DO UPDATE
		 SET doctor_id = EXCLUDED.doctor_id,
		     patient_id = EXCLUDED.patient_id,
		     appointment_time = EXCLUDED.appointment_time,
		     status = EXCLUDED.status`,
		a.ID, a.Doctor.ID, a.Patient.ID, a.StartTime, int16(a.Status),
	)
	return mapErr(err)
}

// Update rewrites the row of a.ID. It never inserts, so an appointment
// deleted since it was read stays deleted.
func (s *Store) Update(ctx context.Context, a *model.Appointment) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE appointments
		 SET doctor_id = $2, patient_id = $3, appointment_time = $4, status = $5
		 WHERE id = $1`,
		a.ID, a.Doctor.ID, a.Patient.ID, a.StartTime, int16(a.Status),
	)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, a *model.Appointment) error {
	_, err := s.db.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, a.ID)
	return err
}

// UpdateStatus touches nothing but the status; an unknown id is not an error.
func (s *Store) UpdateStatus(ctx context.Context, status model.Status, id string) error {
	_, err := s.db.Exec(ctx, `UPDATE appointments SET status = $1 WHERE id = $2`, int16(status), id)
	return err
}

// WithDoctorLock runs fn in a transaction holding the advisory lock of
// doctorID. The lock is released when the transaction ends.
func (s *Store) WithDoctorLock(ctx context.Context, doctorID string, fn func(context.Context, scheduling.AppointmentRepository) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, doctorID); err != nil {
		return fmt.Errorf("lock doctor %s: %w", doctorID, err)
	}
	if err := fn(ctx, &Store{pool: s.pool, db: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
