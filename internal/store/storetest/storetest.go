// Package storetest provides an in-memory store for tests. It satisfies the
// same account and appointment contracts as the PostgreSQL store.
package storetest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"clinic-scheduler-api/internal/model"
	"clinic-scheduler-api/internal/scheduling"
)

type Store struct {
	mu       sync.Mutex
	lock     sync.Mutex
	admins   map[string]*model.Admin
	doctors  map[string]*model.Doctor
	patients map[string]*model.Patient
	appts    map[string]model.Appointment
}

func New() *Store {
	return &Store{
		admins:   map[string]*model.Admin{},
		doctors:  map[string]*model.Doctor{},
		patients: map[string]*model.Patient{},
		appts:    map[string]model.Appointment{},
	}
}

func (m *Store) AdminByUsername(_ context.Context, username string) (*model.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.admins[username]; ok {
		return a, nil
	}
	return nil, model.ErrNotFound
}

func (m *Store) DoctorByEmail(_ context.Context, email string) (*model.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.doctors {
		if d.Email == email {
			return d, nil
		}
	}
	return nil, model.ErrNotFound
}

func (m *Store) DoctorByID(_ context.Context, id string) (*model.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d, ok := m.doctors[id]; ok {
		return d, nil
	}
	return nil, model.ErrNotFound
}

func (m *Store) PatientByEmail(_ context.Context, email string) (*model.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.patients[email]; ok {
		return p, nil
	}
	return nil, model.ErrNotFound
}

func (m *Store) CreateAdmin(_ context.Context, a *model.Admin) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.admins[a.Username]; ok {
		return model.ErrDuplicate
	}
	m.admins[a.Username] = a
	return nil
}

func (m *Store) CreateDoctor(_ context.Context, d *model.Doctor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, other := range m.doctors {
		if other.Email == d.Email {
			return model.ErrDuplicate
		}
	}
	m.doctors[d.ID] = d
	return nil
}

func (m *Store) ListDoctors(context.Context) ([]model.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Doctor, 0, len(m.doctors))
	for _, d := range m.doctors {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// DeleteDoctor drops the doctor with their appointments.
func (m *Store) DeleteDoctor(_ context.Context, id string) (int64, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.doctors[id]; !ok {
		return 0, model.ErrNotFound
	}
	var n int64
	for aid, a := range m.appts {
		if a.Doctor.ID == id {
			delete(m.appts, aid)
			n++
		}
	}
	delete(m.doctors, id)
	return n, nil
}

func (m *Store) CreatePatient(_ context.Context, p *model.Patient) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.patients[p.Email]; ok {
		return model.ErrDuplicate
	}
	m.patients[p.Email] = p
	return nil
}

// hydrate fills the doctor and patient fields the way the SQL join does.
func (m *Store) hydrate(a model.Appointment) model.Appointment {
	if d, ok := m.doctors[a.Doctor.ID]; ok {
		a.Doctor = *d
	}
	for _, p := range m.patients {
		if p.ID == a.Patient.ID {
			a.Patient = *p
			break
		}
	}
	return a
}

func (m *Store) FindByID(_ context.Context, id string) (*model.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.appts[id]; ok {
		a = m.hydrate(a)
		return &a, nil
	}
	return nil, model.ErrNotFound
}

func (m *Store) FindOverlapping(_ context.Context, doctorID string, start, end time.Time, excludeID string) ([]model.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Appointment
	for _, a := range m.appts {
		if a.Doctor.ID == doctorID && a.ID != excludeID && a.Overlaps(start, end) {
			out = append(out, m.hydrate(a))
		}
	}
	return out, nil
}

func (m *Store) ListByDoctorAndRange(ctx context.Context, doctorID string, from, to time.Time) ([]model.Appointment, error) {
	return m.ListByDoctorPatientNameAndRange(ctx, doctorID, "", from, to)
}

func (m *Store) ListByDoctorPatientNameAndRange(_ context.Context, doctorID, name string, from, to time.Time) ([]model.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Appointment
	for _, a := range m.appts {
		if a.Doctor.ID != doctorID || a.StartTime.Before(from) || a.StartTime.After(to) {
			continue
		}
		a = m.hydrate(a)
		if strings.Contains(strings.ToLower(a.Patient.Name), strings.ToLower(name)) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (m *Store) Save(_ context.Context, a *model.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appts[a.ID] = *a
	return nil
}

func (m *Store) Update(_ context.Context, a *model.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.appts[a.ID]; !ok {
		return model.ErrNotFound
	}
	m.appts[a.ID] = *a
	return nil
}

func (m *Store) Delete(_ context.Context, a *model.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.appts, a.ID)
	return nil
}

func (m *Store) UpdateStatus(_ context.Context, status model.Status, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.appts[id]; ok {
		a.Status = status
		m.appts[id] = a
	}
	return nil
}

// WithDoctorLock serializes fn against every other locked section. One
// process-wide mutex stands in for the per-doctor advisory lock.
func (m *Store) WithDoctorLock(ctx context.Context, _ string, fn func(context.Context, scheduling.AppointmentRepository) error) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	return fn(ctx, m)
}

// Ping always succeeds.
func (m *Store) Ping(context.Context) error { return nil }
