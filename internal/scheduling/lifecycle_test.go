package scheduling

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-scheduler-api/internal/model"
)

type lifecycleFixture struct {
	repo *memRepo
	ids  *fakeIdentities
	pub  *recordingPublisher
	lc   *Lifecycle

	alice *model.Patient
	bob   *model.Patient
	house *model.Doctor
	grey  *model.Doctor
}

func newLifecycleFixture(t *testing.T) *lifecycleFixture {
	t.Helper()
	f := &lifecycleFixture{
		repo:  newMemRepo(),
		pub:   &recordingPublisher{},
		alice: &model.Patient{ID: "p-alice", Name: "Alice Moreau", Email: "alice@example.com"},
		bob:   &model.Patient{ID: "p-bob", Name: "Bob Stone", Email: "bob@example.com"},
		house: &model.Doctor{ID: "d-house", Name: "Gregory House", Email: "house@example.com"},
		grey:  &model.Doctor{ID: "d-grey", Name: "Meredith Grey", Email: "grey@example.com"},
	}
	f.repo.addDoctor(f.house)
	f.repo.addDoctor(f.grey)
	f.ids = &fakeIdentities{
		patients: map[string]*model.Patient{"tok-alice": f.alice, "tok-bob": f.bob},
		doctors:  map[string]*model.Doctor{"tok-house": f.house, "tok-grey": f.grey},
	}
	f.lc = NewLifecycle(f.repo, f.repo, f.repo, f.ids, f.pub, zerolog.Nop())
	return f
}

func (f *lifecycleFixture) appt(id string, p *model.Patient, d *model.Doctor, start time.Time) *model.Appointment {
	return &model.Appointment{ID: id, Patient: *p, Doctor: *d, StartTime: start}
}

func TestBookPersistsAndPublishes(t *testing.T) {
	f := newLifecycleFixture(t)
	a := f.appt("", f.alice, f.house, tenAM)

	require.NoError(t, f.lc.Book(context.Background(), a))
	require.NotEmpty(t, a.ID)

	stored, ok := f.repo.get(a.ID)
	require.True(t, ok)
	assert.Equal(t, f.alice.ID, stored.Patient.ID)
	assert.Equal(t, model.StatusScheduled, stored.Status)
	assert.Equal(t, []string{EventBooked}, f.pub.published())
}

func TestBookDoesNotRecheckSlot(t *testing.T) {
	f := newLifecycleFixture(t)
	f.repo.put(*f.appt("a1", f.bob, f.house, tenAM))

	err := f.lc.Book(context.Background(), f.appt("a2", f.alice, f.house, tenAM.Add(30*time.Minute)))
	require.NoError(t, err)
	_, ok := f.repo.get("a2")
	assert.True(t, ok)
}

func TestBookSaveFailureIsGeneric(t *testing.T) {
	f := newLifecycleFixture(t)
	f.repo.saveErr = errStore

	err := f.lc.Book(context.Background(), f.appt("a1", f.alice, f.house, tenAM))
	require.Error(t, err)
	assert.Equal(t, KindPersistence, KindOf(err))
	assert.NotContains(t, err.Error(), "10.0.0.7")
	assert.Empty(t, f.pub.published())
}

func TestBookPublishFailureDoesNotFail(t *testing.T) {
	f := newLifecycleFixture(t)
	f.pub.err = errStore

	require.NoError(t, f.lc.Book(context.Background(), f.appt("a1", f.alice, f.house, tenAM)))
	_, ok := f.repo.get("a1")
	assert.True(t, ok)
}

func TestValidate(t *testing.T) {
	f := newLifecycleFixture(t)
	f.repo.put(*f.appt("a1", f.bob, f.house, tenAM))
	ctx := context.Background()

	tests := []struct {
		name string
		in   *model.Appointment
		want Validation
	}{
		{"free slot", f.appt("new", f.alice, f.house, tenAM.Add(time.Hour)), Valid},
		{"overlapping slot", f.appt("new", f.alice, f.house, tenAM.Add(30*time.Minute)), SlotTaken},
		{"own slot", f.appt("a1", f.bob, f.house, tenAM.Add(30*time.Minute)), Valid},
		{"other doctor", f.appt("new", f.alice, f.grey, tenAM), Valid},
		{"unknown doctor", f.appt("new", f.alice, &model.Doctor{ID: "d-ghost"}, tenAM), DoctorNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.lc.Validate(ctx, tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateUnknownDoctorSkipsAvailability(t *testing.T) {
	f := newLifecycleFixture(t)

	got, err := f.lc.Validate(context.Background(), f.appt("new", f.alice, &model.Doctor{ID: "d-ghost"}, tenAM))
	require.NoError(t, err)
	assert.Equal(t, DoctorNotFound, got)
	assert.Zero(t, f.repo.overlapCalls)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown appointment", func(t *testing.T) {
		f := newLifecycleFixture(t)
		err := f.lc.Update(ctx, f.appt("missing", f.alice, f.house, tenAM))
		assert.Equal(t, KindNotFound, KindOf(err))
		assert.Equal(t, msgUpdateNotFound, Message(err))
	})

	t.Run("other patient is forbidden before validation", func(t *testing.T) {
		f := newLifecycleFixture(t)
		f.repo.put(*f.appt("a1", f.alice, f.house, tenAM))
		f.repo.put(*f.appt("a2", f.bob, f.house, tenAM.Add(2*time.Hour)))

		// Unknown doctor and taken slot would both fail validation.
		err := f.lc.Update(ctx, f.appt("a1", f.bob, &model.Doctor{ID: "d-ghost"}, tenAM.Add(2*time.Hour)))
		assert.Equal(t, KindForbidden, KindOf(err))
		assert.Zero(t, f.repo.overlapCalls)
	})

	t.Run("unknown doctor fails before availability", func(t *testing.T) {
		f := newLifecycleFixture(t)
		f.repo.put(*f.appt("a1", f.alice, f.house, tenAM))

		err := f.lc.Update(ctx, f.appt("a1", f.alice, &model.Doctor{ID: "d-ghost"}, tenAM))
		assert.Equal(t, KindValidationFailed, KindOf(err))
		assert.Equal(t, "Validation failed: The specified doctor does not exist.", Message(err))
		assert.Zero(t, f.repo.overlapCalls)
	})

	t.Run("taken slot conflicts", func(t *testing.T) {
		f := newLifecycleFixture(t)
		f.repo.put(*f.appt("a1", f.alice, f.house, tenAM))
		f.repo.put(*f.appt("a2", f.bob, f.house, tenAM.Add(2*time.Hour)))

		err := f.lc.Update(ctx, f.appt("a1", f.alice, f.house, tenAM.Add(150*time.Minute)))
		assert.Equal(t, KindConflict, KindOf(err))
		stored, _ := f.repo.get("a1")
		assert.True(t, stored.StartTime.Equal(tenAM))
	})

	t.Run("moving within own slot succeeds", func(t *testing.T) {
		f := newLifecycleFixture(t)
		f.repo.put(*f.appt("a1", f.alice, f.house, tenAM))

		require.NoError(t, f.lc.Update(ctx, f.appt("a1", f.alice, f.house, tenAM.Add(30*time.Minute))))
		stored, _ := f.repo.get("a1")
		assert.True(t, stored.StartTime.Equal(tenAM.Add(30*time.Minute)))
		assert.Equal(t, []string{EventUpdated}, f.pub.published())
	})

	t.Run("switching doctor succeeds", func(t *testing.T) {
		f := newLifecycleFixture(t)
		f.repo.put(*f.appt("a1", f.alice, f.house, tenAM))

		require.NoError(t, f.lc.Update(ctx, f.appt("a1", f.alice, f.grey, tenAM)))
		stored, _ := f.repo.get("a1")
		assert.Equal(t, f.grey.ID, stored.Doctor.ID)
	})

	t.Run("stored status is kept", func(t *testing.T) {
		f := newLifecycleFixture(t)
		done := f.appt("a1", f.alice, f.house, tenAM)
		done.Status = model.StatusCompleted
		f.repo.put(*done)

		require.NoError(t, f.lc.Update(ctx, f.appt("a1", f.alice, f.house, tenAM.Add(time.Hour))))
		stored, _ := f.repo.get("a1")
		assert.Equal(t, model.StatusCompleted, stored.Status)
	})

	t.Run("failing check aborts after ownership", func(t *testing.T) {
		f := newLifecycleFixture(t)
		f.repo.put(*f.appt("a1", f.alice, f.house, tenAM))
		tooLate := InvalidArgument("too late")
		var seen *model.Appointment
		check := func(existing, _ *model.Appointment) error {
			seen = existing
			return tooLate
		}

		err := f.lc.Update(ctx, f.appt("a1", f.alice, f.house, tenAM.Add(time.Hour)), check)
		assert.Equal(t, tooLate, err)
		require.NotNil(t, seen)
		assert.Equal(t, "a1", seen.ID)
		assert.Zero(t, f.repo.overlapCalls)
		stored, _ := f.repo.get("a1")
		assert.True(t, stored.StartTime.Equal(tenAM))
	})

	t.Run("check is skipped for other patients", func(t *testing.T) {
		f := newLifecycleFixture(t)
		f.repo.put(*f.appt("a1", f.alice, f.house, tenAM))
		called := false
		check := func(_, _ *model.Appointment) error {
			called = true
			return InvalidArgument("too late")
		}

		err := f.lc.Update(ctx, f.appt("a1", f.bob, f.house, tenAM), check)
		assert.Equal(t, KindForbidden, KindOf(err))
		assert.False(t, called)
	})

	t.Run("appointment deleted before write is not recreated", func(t *testing.T) {
		f := newLifecycleFixture(t)
		f.repo.put(*f.appt("a1", f.alice, f.house, tenAM))
		// cancel lands between the read and the write
		deleteFirst := func(existing, _ *model.Appointment) error {
			return f.repo.Delete(ctx, existing)
		}

		err := f.lc.Update(ctx, f.appt("a1", f.alice, f.house, tenAM.Add(time.Hour)), deleteFirst)
		assert.Equal(t, KindNotFound, KindOf(err))
		_, ok := f.repo.get("a1")
		assert.False(t, ok)
		assert.Empty(t, f.pub.published())
	})

	t.Run("save failure is persistence", func(t *testing.T) {
		f := newLifecycleFixture(t)
		f.repo.put(*f.appt("a1", f.alice, f.house, tenAM))
		f.repo.saveErr = errStore

		err := f.lc.Update(ctx, f.appt("a1", f.alice, f.house, tenAM.Add(time.Hour)))
		assert.Equal(t, KindPersistence, KindOf(err))
		assert.NotContains(t, err.Error(), "10.0.0.7")
	})

	t.Run("load failure is persistence", func(t *testing.T) {
		f := newLifecycleFixture(t)
		f.repo.findErr = errStore

		err := f.lc.Update(ctx, f.appt("a1", f.alice, f.house, tenAM))
		assert.Equal(t, KindPersistence, KindOf(err))
	})
}

func TestConcurrentUpdatesIntoSameSlot(t *testing.T) {
	f := newLifecycleFixture(t)
	f.repo.put(*f.appt("a1", f.alice, f.house, tenAM))
	f.repo.put(*f.appt("a2", f.bob, f.house, tenAM.Add(3*time.Hour)))
	target := tenAM.Add(5 * time.Hour)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, in := range []*model.Appointment{
		f.appt("a1", f.alice, f.house, target),
		f.appt("a2", f.bob, f.house, target.Add(15*time.Minute)),
	} {
		wg.Add(1)
		go func(i int, in *model.Appointment) {
			defer wg.Done()
			errs[i] = f.lc.Update(context.Background(), in)
		}(i, in)
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case KindOf(err) == KindConflict:
			conflicts++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, conflicts)
}

func TestCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("owner cancels", func(t *testing.T) {
		f := newLifecycleFixture(t)
		f.repo.put(*f.appt("a1", f.alice, f.house, tenAM))

		require.NoError(t, f.lc.Cancel(ctx, "a1", "tok-alice"))
		_, ok := f.repo.get("a1")
		assert.False(t, ok)
		assert.Equal(t, []string{EventCancelled}, f.pub.published())
	})

	t.Run("other patient is forbidden", func(t *testing.T) {
		f := newLifecycleFixture(t)
		f.repo.put(*f.appt("a1", f.alice, f.house, tenAM))

		err := f.lc.Cancel(ctx, "a1", "tok-bob")
		assert.Equal(t, KindForbidden, KindOf(err))
		_, ok := f.repo.get("a1")
		assert.True(t, ok)
	})

	t.Run("unverifiable token is forbidden", func(t *testing.T) {
		f := newLifecycleFixture(t)
		f.repo.put(*f.appt("a1", f.alice, f.house, tenAM))

		err := f.lc.Cancel(ctx, "a1", "garbage")
		assert.Equal(t, KindForbidden, KindOf(err))
	})

	t.Run("doctor token is forbidden", func(t *testing.T) {
		f := newLifecycleFixture(t)
		f.repo.put(*f.appt("a1", f.alice, f.house, tenAM))

		err := f.lc.Cancel(ctx, "a1", "tok-house")
		assert.Equal(t, KindForbidden, KindOf(err))
	})

	t.Run("unknown appointment", func(t *testing.T) {
		f := newLifecycleFixture(t)
		err := f.lc.Cancel(ctx, "missing", "tok-alice")
		assert.Equal(t, KindNotFound, KindOf(err))
	})

	t.Run("lookup failure is persistence", func(t *testing.T) {
		f := newLifecycleFixture(t)
		f.repo.put(*f.appt("a1", f.alice, f.house, tenAM))
		f.ids.err = errStore

		err := f.lc.Cancel(ctx, "a1", "tok-alice")
		assert.Equal(t, KindPersistence, KindOf(err))
	})

	t.Run("delete failure is persistence", func(t *testing.T) {
		f := newLifecycleFixture(t)
		f.repo.put(*f.appt("a1", f.alice, f.house, tenAM))
		f.repo.deleteErr = errStore

		err := f.lc.Cancel(ctx, "a1", "tok-alice")
		assert.Equal(t, KindPersistence, KindOf(err))
		assert.Empty(t, f.pub.published())
	})
}

func TestChangeStatus(t *testing.T) {
	f := newLifecycleFixture(t)
	f.repo.put(*f.appt("a1", f.alice, f.house, tenAM))
	ctx := context.Background()

	require.NoError(t, f.lc.ChangeStatus(ctx, "a1"))
	require.NoError(t, f.lc.ChangeStatus(ctx, "a1"))

	stored, _ := f.repo.get("a1")
	assert.Equal(t, model.StatusCompleted, stored.Status)
	assert.Equal(t, []string{EventCompleted, EventCompleted}, f.pub.published())

	ev := f.pub.last()
	assert.Equal(t, "a1", ev.AppointmentID)
	assert.Equal(t, f.house.ID, ev.DoctorID)
	assert.Equal(t, f.alice.ID, ev.PatientID)
	assert.True(t, ev.StartTime.Equal(tenAM))
	assert.Equal(t, model.StatusCompleted.String(), ev.Status)
}

func TestChangeStatusUnknownIDPublishesSparseEvent(t *testing.T) {
	f := newLifecycleFixture(t)

	require.NoError(t, f.lc.ChangeStatus(context.Background(), "ghost"))
	ev := f.pub.last()
	assert.Equal(t, "ghost", ev.AppointmentID)
	assert.Empty(t, ev.DoctorID)
	assert.Equal(t, model.StatusCompleted.String(), ev.Status)
}

func TestChangeStatusFailure(t *testing.T) {
	f := newLifecycleFixture(t)
	f.repo.saveErr = errStore

	err := f.lc.ChangeStatus(context.Background(), "a1")
	assert.Equal(t, KindPersistence, KindOf(err))
}
