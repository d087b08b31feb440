package store

import (
	"context"
	"fmt"

	"clinic-scheduler-api/internal/model"
)

func (s *Store) CreateAdmin(ctx context.Context, a *model.Admin) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO admins (id, username, password_hash) VALUES ($1,$2,$3)`,
		a.ID, a.Username, a.PasswordHash,
	)
	return mapErr(err)
}

func (s *Store) AdminByUsername(ctx context.Context, username string) (*model.Admin, error) {
	a := &model.Admin{}
	err := s.db.QueryRow(ctx,
		`SELECT id, username, password_hash FROM admins WHERE username = $1`, username,
	).Scan(&a.ID, &a.Username, &a.PasswordHash)
	if err != nil {
		return nil, mapErr(err)
	}
	return a, nil
}

func (s *Store) CreateDoctor(ctx context.Context, d *model.Doctor) error {
	times := d.AvailableTimes
	if times == nil {
		times = []string{}
	}
	_, err := s.db.Exec(ctx,
		`INSERT INTO doctors (id, name, specialty, email, password_hash, phone, available_times)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		d.ID, d.Name, d.Specialty, d.Email, d.PasswordHash, d.Phone, times,
	)
	return mapErr(err)
}

const selectDoctor = `SELECT id, name, specialty, email, password_hash, phone, available_times FROM doctors`

func (s *Store) scanDoctor(ctx context.Context, where string, arg string) (*model.Doctor, error) {
	d := &model.Doctor{}
	err := s.db.QueryRow(ctx, selectDoctor+` WHERE `+where+` = $1`, arg).
		Scan(&d.ID, &d.Name, &d.Specialty, &d.Email, &d.PasswordHash, &d.Phone, &d.AvailableTimes)
	if err != nil {
		return nil, mapErr(err)
	}
	return d, nil
}

func (s *Store) DoctorByID(ctx context.Context, id string) (*model.Doctor, error) {
	return s.scanDoctor(ctx, "id", id)
}

func (s *Store) DoctorByEmail(ctx context.Context, email string) (*model.Doctor, error) {
	return s.scanDoctor(ctx, "email", email)
}

// ListDoctors returns every doctor ordered by name.
func (s *Store) ListDoctors(ctx context.Context) ([]model.Doctor, error) {
	rows, err := s.db.Query(ctx, selectDoctor+` ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Doctor
	for rows.Next() {
		var d model.Doctor
		if err := rows.Scan(&d.ID, &d.Name, &d.Specialty, &d.Email, &d.PasswordHash, &d.Phone, &d.AvailableTimes); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// DeleteDoctor removes the doctor and every appointment booked with them in
// one transaction, under the doctor's scheduling lock. It returns how many
// appointments went with the doctor.
func (s *Store) DeleteDoctor(ctx context.Context, id string) (int64, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, id); err != nil {
		return 0, fmt.Errorf("lock doctor %s: %w", id, err)
	}
	appts, err := tx.Exec(ctx, `DELETE FROM appointments WHERE doctor_id = $1`, id)
	if err != nil {
		return 0, err
	}
	doc, err := tx.Exec(ctx, `DELETE FROM doctors WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	if doc.RowsAffected() == 0 {
		return 0, model.ErrNotFound
	}
	return appts.RowsAffected(), tx.Commit(ctx)
}

func (s *Store) CreatePatient(ctx context.Context, p *model.Patient) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO patients (id, name, email, password_hash, phone, address) VALUES ($1,$2,$3,$4,$5,$6)`,
		p.ID, p.Name, p.Email, p.PasswordHash, p.Phone, p.Address,
	)
	return mapErr(err)
}

func (s *Store) PatientByEmail(ctx context.Context, email string) (*model.Patient, error) {
	p := &model.Patient{}
	err := s.db.QueryRow(ctx,
		`SELECT id, name, email, password_hash, phone, address FROM patients WHERE email = $1`, email,
	).Scan(&p.ID, &p.Name, &p.Email, &p.PasswordHash, &p.Phone, &p.Address)
	if err != nil {
		return nil, mapErr(err)
	}
	return p, nil
}
