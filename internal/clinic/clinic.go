// Package clinic is the caller-facing layer shared by the gRPC and REST
// transports. It resolves callers from identity tokens, validates input and
// delegates to the scheduling core.
package clinic

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"clinic-scheduler-api/internal/auth"
	"clinic-scheduler-api/internal/model"
	"clinic-scheduler-api/internal/scheduling"
)

// Accounts is the account store: lookups plus creation.
type Accounts interface {
	auth.Accounts
	scheduling.Doctors
	CreateAdmin(ctx context.Context, a *model.Admin) error
	CreateDoctor(ctx context.Context, d *model.Doctor) error
	CreatePatient(ctx context.Context, p *model.Patient) error
	ListDoctors(ctx context.Context) ([]model.Doctor, error)
	// DeleteDoctor removes the doctor and their appointments, returning how
	// many appointments were removed.
	DeleteDoctor(ctx context.Context, id string) (int64, error)
}

type Service struct {
	accounts Accounts
	dir      *auth.Directory
	life     *scheduling.Lifecycle
	query    *scheduling.Query
	slots    *scheduling.SlotValidator
	now      func() time.Time
	log      zerolog.Logger
}

func New(accounts Accounts, dir *auth.Directory, life *scheduling.Lifecycle, query *scheduling.Query, slots *scheduling.SlotValidator, log zerolog.Logger) *Service {
	return &Service{
		accounts: accounts,
		dir:      dir,
		life:     life,
		query:    query,
		slots:    slots,
		now:      time.Now,
		log:      log.With().Str("component", "clinic").Logger(),
	}
}

const (
	msgInvalidCredentials = "Invalid credentials."
	msgUnknownRole        = "Unknown role."
	msgEmailTaken         = "An account with this email already exists."
	msgUsernameTaken      = "An account with this username already exists."
	msgAdminOnly          = "Only administrators can add doctors."
	msgDeleteAdminOnly    = "Only administrators can delete doctors."
	msgDoctorsFailed      = "Failed to load doctors."
	msgProfileForbidden   = "Only patients have a profile."
	msgPatientOnly        = "Only patients can book or change appointments."
	msgCompleteForbidden  = "Only doctors or administrators can complete appointments."
	msgNotFuture          = "Appointment time must be in the future."
	msgDoctorNotFound     = "Doctor not found."
	msgSlotTaken          = "Slot unavailable: The doctor is already booked at this time."
	msgAccountFailed      = "Failed to process the account request."
	msgBookFailed         = "Failed to book the appointment."
)

// ValidateToken reports whether token belongs to an existing account of role.
func (s *Service) ValidateToken(ctx context.Context, token string, role model.Role) bool {
	return s.dir.ValidateForRole(ctx, token, role)
}
