package clinic

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"clinic-scheduler-api/internal/auth"
	"clinic-scheduler-api/internal/model"
	"clinic-scheduler-api/internal/scheduling"
)

// Login checks the password of the role's account and issues a token whose
// subject is identity (admin username, doctor or patient email).
func (s *Service) Login(ctx context.Context, role model.Role, identity, password string) (string, error) {
	identity = strings.TrimSpace(identity)
	if role != model.RoleAdmin {
		identity = strings.ToLower(identity)
	}

	hash, err := s.passwordHash(ctx, role, identity)
	if errors.Is(err, model.ErrNotFound) {
		s.log.Warn().Str("role", role.String()).Msg("login for unknown account")
		return "", scheduling.Unauthenticated(msgInvalidCredentials)
	}
	if err != nil {
		var e *scheduling.Error
		if errors.As(err, &e) {
			return "", err
		}
		s.log.Error().Err(err).Str("role", role.String()).Msg("load account for login")
		return "", scheduling.Persistence(msgAccountFailed)
	}
	if !auth.CheckPassword(hash, password) {
		s.log.Warn().Str("role", role.String()).Msg("login with wrong password")
		return "", scheduling.Unauthenticated(msgInvalidCredentials)
	}
	return s.issue(identity)
}

func (s *Service) passwordHash(ctx context.Context, role model.Role, identity string) (string, error) {
	switch role {
	case model.RoleAdmin:
		a, err := s.accounts.AdminByUsername(ctx, identity)
		if err != nil {
			return "", err
		}
		return a.PasswordHash, nil
	case model.RoleDoctor:
		d, err := s.accounts.DoctorByEmail(ctx, identity)
		if err != nil {
			return "", err
		}
		return d.PasswordHash, nil
	case model.RolePatient:
		p, err := s.accounts.PatientByEmail(ctx, identity)
		if err != nil {
			return "", err
		}
		return p.PasswordHash, nil
	}
	return "", scheduling.InvalidArgument(msgUnknownRole)
}

func (s *Service) issue(identity string) (string, error) {
	tok, err := s.dir.Tokens().Issue(identity)
	if err != nil {
		s.log.Error().Err(err).Msg("sign token")
		return "", scheduling.Persistence(msgAccountFailed)
	}
	return tok, nil
}

// RegisterPatient creates a patient account and returns its id with a fresh
// token.
func (s *Service) RegisterPatient(ctx context.Context, in PatientInput) (string, string, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return "", "", err
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		s.log.Error().Err(err).Msg("hash password")
		return "", "", scheduling.Persistence(msgAccountFailed)
	}

	p := &model.Patient{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Phone:        in.Phone,
		Address:      in.Address,
	}
	if err := s.accounts.CreatePatient(ctx, p); err != nil {
		return "", "", s.createFailed(err, msgEmailTaken)
	}
	s.log.Info().Str("patient_id", p.ID).Msg("patient registered")

	tok, err := s.issue(p.Email)
	if err != nil {
		return "", "", err
	}
	return p.ID, tok, nil
}

// AddDoctor onboards a doctor. adminToken must belong to an existing admin.
func (s *Service) AddDoctor(ctx context.Context, adminToken string, in DoctorInput) (string, error) {
	if !s.dir.ValidateForRole(ctx, adminToken, model.RoleAdmin) {
		return "", scheduling.Forbidden(msgAdminOnly)
	}
	in.normalize()
	if err := in.validate(); err != nil {
		return "", err
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		s.log.Error().Err(err).Msg("hash password")
		return "", scheduling.Persistence(msgAccountFailed)
	}

	d := &model.Doctor{
		ID:             uuid.NewString(),
		Name:           in.Name,
		Specialty:      in.Specialty,
		Email:          in.Email,
		PasswordHash:   hash,
		Phone:          in.Phone,
		AvailableTimes: append([]string(nil), in.AvailableTimes...),
	}
	if err := s.accounts.CreateDoctor(ctx, d); err != nil {
		return "", s.createFailed(err, msgEmailTaken)
	}
	s.log.Info().Str("doctor_id", d.ID).Msg("doctor added")
	return d.ID, nil
}

// CreateAdmin bootstraps an admin account. It is operator tooling and takes
// no token.
func (s *Service) CreateAdmin(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", scheduling.InvalidArgument("Username is required.")
	}
	if len(password) < minPasswordLen {
		return "", scheduling.InvalidArgument("Password must be at least 6 characters long.")
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", scheduling.Persistence(msgAccountFailed)
	}

	a := &model.Admin{ID: uuid.NewString(), Username: username, PasswordHash: hash}
	if err := s.accounts.CreateAdmin(ctx, a); err != nil {
		return "", s.createFailed(err, msgUsernameTaken)
	}
	s.log.Info().Str("admin_id", a.ID).Msg("admin created")
	return a.ID, nil
}

func (s *Service) createFailed(err error, taken string) error {
	if errors.Is(err, model.ErrDuplicate) {
		return scheduling.Conflict(taken)
	}
	s.log.Error().Err(err).Msg("create account")
	return scheduling.Persistence(msgAccountFailed)
}
