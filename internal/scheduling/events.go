package scheduling

import (
	"context"
	"time"

	"clinic-scheduler-api/internal/model"
)

const (
	EventBooked    = "appointment.booked"
	EventUpdated   = "appointment.updated"
	EventCancelled = "appointment.cancelled"
	EventCompleted = "appointment.completed"
)

// Publisher delivers lifecycle events. Delivery failures never change the
// outcome of the operation that produced the event.
type Publisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

type AppointmentEvent struct {
	Event         string    `json:"event"`
	AppointmentID string    `json:"appointment_id"`
	DoctorID      string    `json:"doctor_id,omitempty"`
	PatientID     string    `json:"patient_id,omitempty"`
	StartTime     time.Time `json:"start_time,omitempty"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func newEvent(key string, a *model.Appointment) AppointmentEvent {
	return AppointmentEvent{
		Event:         key,
		AppointmentID: a.ID,
		DoctorID:      a.Doctor.ID,
		PatientID:     a.Patient.ID,
		StartTime:     a.StartTime,
		Status:        a.Status.String(),
		OccurredAt:    time.Now().UTC(),
	}
}

type nopPublisher struct{}

func (nopPublisher) PublishJSON(context.Context, string, any) error { return nil }

// NopPublisher drops every event.
func NopPublisher() Publisher { return nopPublisher{} }
