package scheduling

import (
	"context"
	"time"

	"clinic-scheduler-api/internal/model"
)

// AppointmentRepository is the persistence contract of the scheduling core.
// Absent records are reported as model.ErrNotFound.
type AppointmentRepository interface {
	FindByID(ctx context.Context, id string) (*model.Appointment, error)
	// FindOverlapping returns the doctor's appointments whose derived
	// [start, start+SlotDuration) interval overlaps [start, end), skipping
	// excludeID when it is non-empty.
	FindOverlapping(ctx context.Context, doctorID string, start, end time.Time, excludeID string) ([]model.Appointment, error)
	ListByDoctorAndRange(ctx context.Context, doctorID string, from, to time.Time) ([]model.Appointment, error)
	// ListByDoctorPatientNameAndRange matches patient names by
	// case-insensitive substring.
	ListByDoctorPatientNameAndRange(ctx context.Context, doctorID, name string, from, to time.Time) ([]model.Appointment, error)
	Save(ctx context.Context, a *model.Appointment) error
	// Update rewrites an existing row and never inserts one. A missing id is
	// model.ErrNotFound.
	Update(ctx context.Context, a *model.Appointment) error
	Delete(ctx context.Context, a *model.Appointment) error
	UpdateStatus(ctx context.Context, status model.Status, id string) error
}

// DoctorLocker serializes read-validate-write sequences per doctor. fn runs
// with a repository bound to the locked unit of work; a non-nil error from fn
// rolls it back.
type DoctorLocker interface {
	WithDoctorLock(ctx context.Context, doctorID string, fn func(ctx context.Context, repo AppointmentRepository) error) error
}

// Doctors answers doctor existence by id.
type Doctors interface {
	DoctorByID(ctx context.Context, id string) (*model.Doctor, error)
}
