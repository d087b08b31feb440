package scheduling

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"clinic-scheduler-api/internal/model"
)

// -- Mock repository --

type memRepo struct {
	mu      sync.Mutex
	appts   map[string]model.Appointment
	doctors map[string]*model.Doctor

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex

	saveErr      error
	deleteErr    error
	findErr      error
	overlapCalls int32
}

func newMemRepo() *memRepo {
	return &memRepo{
		appts:   make(map[string]model.Appointment),
		doctors: make(map[string]*model.Doctor),
		locks:   make(map[string]*sync.Mutex),
	}
}

func (m *memRepo) addDoctor(d *model.Doctor) { m.doctors[d.ID] = d }

func (m *memRepo) put(a model.Appointment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appts[a.ID] = a
}

func (m *memRepo) get(id string) (model.Appointment, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.appts[id]
	return a, ok
}

func (m *memRepo) FindByID(_ context.Context, id string) (*model.Appointment, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	a, ok := m.get(id)
	if !ok {
		return nil, model.ErrNotFound
	}
	return &a, nil
}

func (m *memRepo) FindOverlapping(_ context.Context, doctorID string, start, end time.Time, excludeID string) ([]model.Appointment, error) {
	atomic.AddInt32(&m.overlapCalls, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Appointment
	for _, a := range m.appts {
		if a.Doctor.ID != doctorID || (excludeID != "" && a.ID == excludeID) {
			continue
		}
		if a.Overlaps(start, end) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memRepo) list(doctorID string, from, to time.Time, keep func(model.Appointment) bool) []model.Appointment {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Appointment
	for _, a := range m.appts {
		if a.Doctor.ID != doctorID || a.StartTime.Before(from) || a.StartTime.After(to) {
			continue
		}
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out
}

func (m *memRepo) ListByDoctorAndRange(_ context.Context, doctorID string, from, to time.Time) ([]model.Appointment, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.list(doctorID, from, to, func(model.Appointment) bool { return true }), nil
}

func (m *memRepo) ListByDoctorPatientNameAndRange(_ context.Context, doctorID, name string, from, to time.Time) ([]model.Appointment, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	name = strings.ToLower(name)
	return m.list(doctorID, from, to, func(a model.Appointment) bool {
		return strings.Contains(strings.ToLower(a.Patient.Name), name)
	}), nil
}

func (m *memRepo) Save(_ context.Context, a *model.Appointment) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.put(*a)
	return nil
}

func (m *memRepo) Update(_ context.Context, a *model.Appointment) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.appts[a.ID]; !ok {
		return model.ErrNotFound
	}
	m.appts[a.ID] = *a
	return nil
}

func (m *memRepo) Delete(_ context.Context, a *model.Appointment) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.appts, a.ID)
	return nil
}

func (m *memRepo) UpdateStatus(_ context.Context, status model.Status, id string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.appts[id]; ok {
		a.Status = status
		m.appts[id] = a
	}
	return nil
}

func (m *memRepo) WithDoctorLock(ctx context.Context, doctorID string, fn func(context.Context, AppointmentRepository) error) error {
	m.locksMu.Lock()
	l, ok := m.locks[doctorID]
	if !ok {
		l = &sync.Mutex{}
		m.locks[doctorID] = l
	}
	m.locksMu.Unlock()

	l.Lock()
	defer l.Unlock()
	return fn(ctx, m)
}

func (m *memRepo) DoctorByID(_ context.Context, id string) (*model.Doctor, error) {
	if d, ok := m.doctors[id]; ok {
		return d, nil
	}
	return nil, model.ErrNotFound
}

// -- Mock identities --

type fakeIdentities struct {
	patients map[string]*model.Patient
	doctors  map[string]*model.Doctor
	err      error
}

func (f *fakeIdentities) PatientFor(_ context.Context, token string) (*model.Patient, error) {
	if f.err != nil {
		return nil, f.err
	}
	if p, ok := f.patients[token]; ok {
		return p, nil
	}
	return nil, model.ErrNotFound
}

func (f *fakeIdentities) DoctorFor(_ context.Context, token string) (*model.Doctor, error) {
	if f.err != nil {
		return nil, f.err
	}
	if d, ok := f.doctors[token]; ok {
		return d, nil
	}
	return nil, model.ErrNotFound
}

// -- Recording publisher --

type recordingPublisher struct {
	mu     sync.Mutex
	keys   []string
	events []AppointmentEvent
	err    error
}

func (p *recordingPublisher) PublishJSON(_ context.Context, key string, v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, key)
	if ev, ok := v.(AppointmentEvent); ok {
		p.events = append(p.events, ev)
	}
	return p.err
}

func (p *recordingPublisher) last() AppointmentEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.events[len(p.events)-1]
}

func (p *recordingPublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.keys...)
}

var errStore = errors.New("pq: connection reset by peer at 10.0.0.7:5432")
