package scheduling

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"clinic-scheduler-api/internal/model"
)

const tracerName = "clinic-scheduler-api/internal/scheduling"

// Identities resolves the account behind an identity token. Unverifiable
// tokens and unknown subjects are reported as model.ErrNotFound.
type Identities interface {
	PatientFor(ctx context.Context, token string) (*model.Patient, error)
	DoctorFor(ctx context.Context, token string) (*model.Doctor, error)
}

// Validation is the result of checking a proposed appointment.
type Validation int

const (
	Valid Validation = iota
	DoctorNotFound
	SlotTaken
)

func (v Validation) String() string {
	switch v {
	case Valid:
		return "valid"
	case DoctorNotFound:
		return "doctor_not_found"
	}
	return "slot_taken"
}

// Lifecycle owns the booking, update, cancellation and status transitions of
// appointments.
type Lifecycle struct {
	repo    AppointmentRepository
	locker  DoctorLocker
	doctors Doctors
	ids     Identities
	pub     Publisher
	log     zerolog.Logger
	tracer  trace.Tracer
}

func NewLifecycle(repo AppointmentRepository, locker DoctorLocker, doctors Doctors, ids Identities, pub Publisher, log zerolog.Logger) *Lifecycle {
	if pub == nil {
		pub = NopPublisher()
	}
	return &Lifecycle{
		repo:    repo,
		locker:  locker,
		doctors: doctors,
		ids:     ids,
		pub:     pub,
		log:     log.With().Str("component", "lifecycle").Logger(),
		tracer:  otel.Tracer(tracerName),
	}
}

// Book persists a without checking the slot again; callers validate first.
// A missing ID is generated.
func (l *Lifecycle) Book(ctx context.Context, a *model.Appointment) (err error) {
	ctx, span := l.tracer.Start(ctx, "scheduling.Book")
	defer func() { endSpan(span, err) }()

	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if err := l.repo.Save(ctx, a); err != nil {
		l.log.Error().Err(err).Str("patient_id", a.Patient.ID).Msg("book appointment")
		return Persistence(msgBookFailed)
	}
	l.log.Info().Str("appointment_id", a.ID).Str("patient_id", a.Patient.ID).Msg("appointment booked")
	l.publish(ctx, EventBooked, a)
	return nil
}

// Validate checks doctor existence, then slot availability excluding a's own
// id. A nonexistent doctor is reported before availability is looked at.
func (l *Lifecycle) Validate(ctx context.Context, a *model.Appointment) (Validation, error) {
	return validate(ctx, l.doctors, l.repo, a)
}

func validate(ctx context.Context, doctors Doctors, repo AppointmentRepository, a *model.Appointment) (Validation, error) {
	if _, err := doctors.DoctorByID(ctx, a.Doctor.ID); errors.Is(err, model.ErrNotFound) {
		return DoctorNotFound, nil
	} else if err != nil {
		return 0, err
	}
	free, err := isDoctorFree(ctx, repo, a.Doctor.ID, a.StartTime, a.ID)
	if err != nil {
		return 0, err
	}
	if !free {
		return SlotTaken, nil
	}
	return Valid, nil
}

// UpdateCheck inspects an update once the caller is known to own the stored
// appointment. A non-nil error aborts the update unchanged.
type UpdateCheck func(existing, proposed *model.Appointment) error

// Update replaces an appointment's doctor and time. The whole
// read-validate-write sequence runs under the lock of the submitted doctor.
// checks run after the ownership check and before slot validation. The
// stored status is kept; only ChangeStatus moves it.
func (l *Lifecycle) Update(ctx context.Context, a *model.Appointment, checks ...UpdateCheck) (err error) {
	ctx, span := l.tracer.Start(ctx, "scheduling.Update",
		trace.WithAttributes(attribute.String("appointment.id", a.ID)))
	defer func() { endSpan(span, err) }()

	log := l.log.With().Str("appointment_id", a.ID).Logger()
	err = l.locker.WithDoctorLock(ctx, a.Doctor.ID, func(ctx context.Context, repo AppointmentRepository) error {
		existing, err := repo.FindByID(ctx, a.ID)
		if errors.Is(err, model.ErrNotFound) {
			log.Warn().Msg("update of unknown appointment")
			return NotFound(msgUpdateNotFound)
		}
		if err != nil {
			log.Error().Err(err).Msg("load appointment for update")
			return Persistence(msgUpdateFailed)
		}

		if existing.Patient.ID != a.Patient.ID {
			log.Error().Str("patient_id", a.Patient.ID).Msg("patient mismatch on update")
			return Forbidden(msgUpdateForbidden)
		}
		for _, check := range checks {
			if err := check(existing, a); err != nil {
				return err
			}
		}

		res, err := validate(ctx, l.doctors, repo, a)
		if err != nil {
			log.Error().Err(err).Msg("validate update")
			return Persistence(msgUpdateFailed)
		}
		switch res {
		case DoctorNotFound:
			return ValidationFailed(msgDoctorMissing)
		case SlotTaken:
			return Conflict(msgSlotTaken)
		}

		a.Status = existing.Status
		err = repo.Update(ctx, a)
		if errors.Is(err, model.ErrNotFound) {
			log.Warn().Msg("appointment removed during update")
			return NotFound(msgUpdateNotFound)
		}
		if err != nil {
			log.Error().Err(err).Msg("save appointment update")
			return Persistence(msgUpdateFailed)
		}
		return nil
	})
	if err != nil {
		var e *Error
		if !errors.As(err, &e) {
			log.Error().Err(err).Msg("update transaction")
			return Persistence(msgUpdateFailed)
		}
		return err
	}

	log.Info().Msg("appointment updated")
	l.publish(ctx, EventUpdated, a)
	return nil
}

// Cancel deletes an appointment when token resolves to its owning patient.
func (l *Lifecycle) Cancel(ctx context.Context, id, token string) (err error) {
	ctx, span := l.tracer.Start(ctx, "scheduling.Cancel",
		trace.WithAttributes(attribute.String("appointment.id", id)))
	defer func() { endSpan(span, err) }()

	log := l.log.With().Str("appointment_id", id).Logger()
	existing, err := l.repo.FindByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return NotFound(msgCancelNotFound)
	}
	if err != nil {
		log.Error().Err(err).Msg("load appointment for cancel")
		return Persistence(msgCancelFailed)
	}

	patient, err := l.ids.PatientFor(ctx, token)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		log.Error().Err(err).Msg("resolve patient for cancel")
		return Persistence(msgCancelFailed)
	}
	if patient == nil || patient.ID != existing.Patient.ID {
		log.Warn().Msg("unauthorized cancellation attempt")
		return Forbidden(msgCancelForbidden)
	}

	if err := l.repo.Delete(ctx, existing); err != nil {
		log.Error().Err(err).Msg("delete appointment")
		return Persistence(msgCancelFailed)
	}
	log.Info().Str("patient_id", patient.ID).Msg("appointment cancelled")
	l.publish(ctx, EventCancelled, existing)
	return nil
}

// ChangeStatus marks an appointment Completed. It is idempotent and trusts
// its caller: no existence or ownership check happens here.
func (l *Lifecycle) ChangeStatus(ctx context.Context, id string) (err error) {
	ctx, span := l.tracer.Start(ctx, "scheduling.ChangeStatus",
		trace.WithAttributes(attribute.String("appointment.id", id)))
	defer func() { endSpan(span, err) }()

	l.log.Info().Str("appointment_id", id).Msg("updating status")
	if err := l.repo.UpdateStatus(ctx, model.StatusCompleted, id); err != nil {
		l.log.Error().Err(err).Str("appointment_id", id).Msg("update status")
		return Persistence(msgStatusFailed)
	}
	l.publish(ctx, EventCompleted, l.completed(ctx, id))
	return nil
}

// completed loads the appointment for the event payload only. A failed
// lookup leaves the event with just the id and status.
func (l *Lifecycle) completed(ctx context.Context, id string) *model.Appointment {
	a, err := l.repo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			l.log.Warn().Err(err).Str("appointment_id", id).Msg("load completed appointment for event")
		}
		return &model.Appointment{ID: id, Status: model.StatusCompleted}
	}
	a.Status = model.StatusCompleted
	return a
}

func (l *Lifecycle) publish(ctx context.Context, key string, a *model.Appointment) {
	if err := l.pub.PublishJSON(ctx, key, newEvent(key, a)); err != nil {
		l.log.Warn().Err(err).Str("event", key).Str("appointment_id", a.ID).Msg("publish event")
	}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, KindOf(err).String())
	}
	span.End()
}
