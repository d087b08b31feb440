package clinic

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"clinic-scheduler-api/internal/model"
	"clinic-scheduler-api/internal/scheduling"
)

// DoctorFilter narrows the doctor directory. Empty fields, and the literal
// "null" the dashboards send for an unset control, match everything.
type DoctorFilter struct {
	// Name matches by case-insensitive substring.
	Name string
	// Time is "AM", "PM" or one exact available time such as "09:00".
	Time string
	// Specialty matches case-insensitively and in full.
	Specialty string
}

func unset(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || s == "null"
}

func (f DoctorFilter) match(d *model.Doctor) bool {
	if !unset(f.Name) && !strings.Contains(strings.ToLower(d.Name), strings.ToLower(strings.TrimSpace(f.Name))) {
		return false
	}
	if !unset(f.Specialty) && !strings.EqualFold(d.Specialty, strings.TrimSpace(f.Specialty)) {
		return false
	}
	if unset(f.Time) {
		return true
	}
	want := strings.TrimSpace(f.Time)
	for _, t := range d.AvailableTimes {
		if slotMatches(t, want) {
			return true
		}
	}
	return false
}

// slotMatches compares one available time ("09:00" or "09:00-10:00")
// against a period or an exact time.
func slotMatches(slot, want string) bool {
	if strings.EqualFold(slot, want) {
		return true
	}
	morning := strings.EqualFold(want, "AM")
	if !morning && !strings.EqualFold(want, "PM") {
		return false
	}
	hh, _, ok := strings.Cut(strings.TrimSpace(slot), ":")
	if !ok {
		return false
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return false
	}
	return (hour < 12) == morning
}

// ListDoctors returns the doctor directory ordered by name. Password hashes
// are cleared.
func (s *Service) ListDoctors(ctx context.Context) ([]model.Doctor, error) {
	return s.FilterDoctors(ctx, DoctorFilter{})
}

// FilterDoctors returns the doctors matching every set field of f.
func (s *Service) FilterDoctors(ctx context.Context, f DoctorFilter) ([]model.Doctor, error) {
	all, err := s.accounts.ListDoctors(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("list doctors")
		return nil, scheduling.Persistence(msgDoctorsFailed)
	}
	out := make([]model.Doctor, 0, len(all))
	for i := range all {
		d := all[i]
		if !f.match(&d) {
			continue
		}
		d.PasswordHash = ""
		out = append(out, d)
	}
	return out, nil
}

// DeleteDoctor removes doctor id and every appointment booked with them.
// adminToken must belong to an existing admin.
func (s *Service) DeleteDoctor(ctx context.Context, adminToken, id string) error {
	if !s.dir.ValidateForRole(ctx, adminToken, model.RoleAdmin) {
		return scheduling.Forbidden(msgDeleteAdminOnly)
	}
	n, err := s.accounts.DeleteDoctor(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return scheduling.NotFound(msgDoctorNotFound)
	}
	if err != nil {
		s.log.Error().Err(err).Str("doctor_id", id).Msg("delete doctor")
		return scheduling.Persistence(msgAccountFailed)
	}
	s.log.Info().Str("doctor_id", id).Int64("appointments_removed", n).Msg("doctor deleted")
	return nil
}

// PatientProfile returns the account behind a patient token without its
// password hash.
func (s *Service) PatientProfile(ctx context.Context, token string) (*model.Patient, error) {
	p, err := s.dir.PatientFor(ctx, token)
	if errors.Is(err, model.ErrNotFound) {
		return nil, scheduling.Forbidden(msgProfileForbidden)
	}
	if err != nil {
		s.log.Error().Err(err).Msg("resolve patient profile")
		return nil, scheduling.Persistence(msgAccountFailed)
	}
	out := *p
	out.PasswordHash = ""
	return &out, nil
}
