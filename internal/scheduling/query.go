package scheduling

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"clinic-scheduler-api/internal/model"
)

// Query serves doctor-scoped reads of appointments.
type Query struct {
	repo   AppointmentRepository
	ids    Identities
	loc    *time.Location
	log    zerolog.Logger
	tracer trace.Tracer
}

// NewQuery builds a Query whose day bounds are computed in loc (UTC when nil).
func NewQuery(repo AppointmentRepository, ids Identities, loc *time.Location, log zerolog.Logger) *Query {
	if loc == nil {
		loc = time.UTC
	}
	return &Query{
		repo:   repo,
		ids:    ids,
		loc:    loc,
		log:    log.With().Str("component", "query").Logger(),
		tracer: otel.Tracer(tracerName),
	}
}

// DayBounds returns [00:00:00, 23:59:59.999999999] of date's calendar day in loc.
func DayBounds(date time.Time, loc *time.Location) (time.Time, time.Time) {
	y, m, d := date.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1).Add(-time.Nanosecond)
}

func noNameFilter(s string) bool {
	return s == "" || strings.EqualFold(s, "null")
}

// ListForDoctor returns the day's appointments of the doctor behind token,
// optionally narrowed to patient names containing filter. A token that does
// not resolve to a doctor yields an empty list, not an error.
func (q *Query) ListForDoctor(ctx context.Context, token string, date time.Time, filter string) (out []model.AppointmentSummary, err error) {
	ctx, span := q.tracer.Start(ctx, "scheduling.ListForDoctor")
	defer func() { endSpan(span, err) }()

	doctor, err := q.ids.DoctorFor(ctx, token)
	if errors.Is(err, model.ErrNotFound) {
		q.log.Warn().Msg("no doctor associated with token")
		return []model.AppointmentSummary{}, nil
	}
	if err != nil {
		q.log.Error().Err(err).Msg("resolve doctor")
		return nil, Persistence(msgQueryFailed)
	}

	from, to := DayBounds(date, q.loc)
	var found []model.Appointment
	if noNameFilter(filter) {
		found, err = q.repo.ListByDoctorAndRange(ctx, doctor.ID, from, to)
	} else {
		found, err = q.repo.ListByDoctorPatientNameAndRange(ctx, doctor.ID, filter, from, to)
	}
	if err != nil {
		q.log.Error().Err(err).Str("doctor_id", doctor.ID).Msg("list appointments")
		return nil, Persistence(msgQueryFailed)
	}

	out = make([]model.AppointmentSummary, 0, len(found))
	for i := range found {
		out = append(out, model.Summarize(&found[i]))
	}
	return out, nil
}
