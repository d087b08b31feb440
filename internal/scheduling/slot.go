package scheduling

import (
	"context"
	"time"

	"clinic-scheduler-api/internal/model"
)

// SlotValidator decides whether a doctor's one-hour slot is free. It does not
// check that the doctor exists.
type SlotValidator struct {
	repo AppointmentRepository
}

func NewSlotValidator(repo AppointmentRepository) *SlotValidator {
	return &SlotValidator{repo: repo}
}

// IsDoctorFree reports whether no appointment of doctorID other than
// excludeID overlaps [start, start+SlotDuration). Store failures are
// reported as a persistence Error.
func (v *SlotValidator) IsDoctorFree(ctx context.Context, doctorID string, start time.Time, excludeID string) (bool, error) {
	free, err := isDoctorFree(ctx, v.repo, doctorID, start, excludeID)
	if err != nil {
		return false, Persistence(msgAvailabilityFail)
	}
	return free, nil
}

func isDoctorFree(ctx context.Context, repo AppointmentRepository, doctorID string, start time.Time, excludeID string) (bool, error) {
	end := start.Add(model.SlotDuration)
	found, err := repo.FindOverlapping(ctx, doctorID, start, end, excludeID)
	if err != nil {
		return false, err
	}
	for i := range found {
		a := &found[i]
		if excludeID != "" && a.ID == excludeID {
			continue
		}
		if a.Overlaps(start, end) {
			return false, nil
		}
	}
	return true, nil
}
