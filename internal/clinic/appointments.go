package clinic

import (
	"context"
	"errors"
	"time"

	"clinic-scheduler-api/internal/model"
	"clinic-scheduler-api/internal/scheduling"
)

func (s *Service) patient(ctx context.Context, token string) (*model.Patient, error) {
	p, err := s.dir.PatientFor(ctx, token)
	if errors.Is(err, model.ErrNotFound) {
		return nil, scheduling.Forbidden(msgPatientOnly)
	}
	if err != nil {
		s.log.Error().Err(err).Msg("resolve patient")
		return nil, scheduling.Persistence(msgAccountFailed)
	}
	return p, nil
}

func (s *Service) requireFuture(start time.Time) error {
	if !start.After(s.now()) {
		return scheduling.InvalidArgument(msgNotFuture)
	}
	return nil
}

// Book reserves start with doctorID for the patient behind token and returns
// the new appointment id. The slot is validated right before the write.
func (s *Service) Book(ctx context.Context, token, doctorID string, start time.Time) (string, error) {
	if err := s.requireFuture(start); err != nil {
		return "", err
	}
	p, err := s.patient(ctx, token)
	if err != nil {
		return "", err
	}

	a := &model.Appointment{
		Doctor:    model.Doctor{ID: doctorID},
		Patient:   *p,
		StartTime: start,
		Status:    model.StatusScheduled,
	}
	res, err := s.life.Validate(ctx, a)
	if err != nil {
		s.log.Error().Err(err).Str("doctor_id", doctorID).Msg("validate booking")
		return "", scheduling.Persistence(msgBookFailed)
	}
	switch res {
	case scheduling.DoctorNotFound:
		return "", scheduling.NotFound(msgDoctorNotFound)
	case scheduling.SlotTaken:
		return "", scheduling.Conflict(msgSlotTaken)
	}

	if err := s.life.Book(ctx, a); err != nil {
		return "", err
	}
	return a.ID, nil
}

// Update moves appointment id to doctorID at start on behalf of the patient
// behind token. Existence and ownership are settled before the start time is
// judged.
func (s *Service) Update(ctx context.Context, token, id, doctorID string, start time.Time) error {
	p, err := s.patient(ctx, token)
	if err != nil {
		return err
	}
	return s.life.Update(ctx, &model.Appointment{
		ID:        id,
		Doctor:    model.Doctor{ID: doctorID},
		Patient:   *p,
		StartTime: start,
	}, func(_, proposed *model.Appointment) error {
		return s.requireFuture(proposed.StartTime)
	})
}

func (s *Service) Cancel(ctx context.Context, token, id string) error {
	return s.life.Cancel(ctx, id, token)
}

// Complete marks appointment id Completed. Only doctor and admin tokens are
// accepted.
func (s *Service) Complete(ctx context.Context, token, id string) error {
	if !s.dir.ValidateForRole(ctx, token, model.RoleDoctor) &&
		!s.dir.ValidateForRole(ctx, token, model.RoleAdmin) {
		return scheduling.Forbidden(msgCompleteForbidden)
	}
	return s.life.ChangeStatus(ctx, id)
}

func (s *Service) ListForDoctor(ctx context.Context, token string, date time.Time, filter string) ([]model.AppointmentSummary, error) {
	return s.query.ListForDoctor(ctx, token, date, filter)
}

// Availability reports whether doctorID has no appointment overlapping the
// slot starting at start.
func (s *Service) Availability(ctx context.Context, doctorID string, start time.Time) (bool, error) {
	if _, err := s.accounts.DoctorByID(ctx, doctorID); errors.Is(err, model.ErrNotFound) {
		return false, scheduling.NotFound(msgDoctorNotFound)
	} else if err != nil {
		s.log.Error().Err(err).Str("doctor_id", doctorID).Msg("load doctor")
		return false, scheduling.Persistence(msgAccountFailed)
	}
	return s.slots.IsDoctorFree(ctx, doctorID, start, "")
}
