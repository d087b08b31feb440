package model

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned by every repository when the requested record is absent.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique account key is already taken.
	ErrDuplicate = errors.New("already exists")
)

// SlotDuration is the fixed length of an appointment.
const SlotDuration = time.Hour

type Status int

const (
	StatusScheduled Status = 0
	StatusCompleted Status = 1
)

func (s Status) String() string {
	switch s {
	case StatusScheduled:
		return "scheduled"
	case StatusCompleted:
		return "completed"
	}
	return "unknown"
}

type Admin struct {
	ID           string
	Username     string
	PasswordHash string
}

type Doctor struct {
	ID             string
	Name           string
	Specialty      string
	Email          string
	PasswordHash   string
	Phone          string
	AvailableTimes []string
}

type Patient struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	Address      string
}

// Appointment references its doctor and patient. Writes only need the IDs;
// reads populate the remaining fields.
type Appointment struct {
	ID        string
	Doctor    Doctor
	Patient   Patient
	StartTime time.Time
	Status    Status
}

func (a *Appointment) EndTime() time.Time {
	return a.StartTime.Add(SlotDuration)
}

// Date is the calendar day of the appointment in loc.
func (a *Appointment) Date(loc *time.Location) time.Time {
	t := a.StartTime.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// TimeOfDay is the offset of the start from midnight in loc.
func (a *Appointment) TimeOfDay(loc *time.Location) time.Duration {
	return a.StartTime.In(loc).Sub(a.Date(loc))
}

// Overlaps reports whether [StartTime, EndTime) shares an instant with [start, end).
func (a *Appointment) Overlaps(start, end time.Time) bool {
	return a.StartTime.Before(end) && start.Before(a.EndTime())
}

// AppointmentSummary is the outward projection of an appointment; it never
// carries credentials.
type AppointmentSummary struct {
	ID             string    `json:"id"`
	DoctorID       string    `json:"doctorId"`
	DoctorName     string    `json:"doctorName"`
	PatientID      string    `json:"patientId"`
	PatientName    string    `json:"patientName"`
	PatientEmail   string    `json:"patientEmail"`
	PatientPhone   string    `json:"patientPhone"`
	PatientAddress string    `json:"patientAddress"`
	AppointmentAt  time.Time `json:"appointmentTime"`
	Status         Status    `json:"status"`
}

func Summarize(a *Appointment) AppointmentSummary {
	return AppointmentSummary{
		ID:             a.ID,
		DoctorID:       a.Doctor.ID,
		DoctorName:     a.Doctor.Name,
		PatientID:      a.Patient.ID,
		PatientName:    a.Patient.Name,
		PatientEmail:   a.Patient.Email,
		PatientPhone:   a.Patient.Phone,
		PatientAddress: a.Patient.Address,
		AppointmentAt:  a.StartTime,
		Status:         a.Status,
	}
}
