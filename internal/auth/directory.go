package auth

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"clinic-scheduler-api/internal/model"
)

// Accounts is the lookup side of the account store.
type Accounts interface {
	AdminByUsername(ctx context.Context, username string) (*model.Admin, error)
	DoctorByEmail(ctx context.Context, email string) (*model.Doctor, error)
	PatientByEmail(ctx context.Context, email string) (*model.Patient, error)
}

// Directory resolves verified token subjects to account records.
type Directory struct {
	tokens   *Tokens
	accounts Accounts
	log      zerolog.Logger
}

func NewDirectory(tokens *Tokens, accounts Accounts, log zerolog.Logger) *Directory {
	return &Directory{
		tokens:   tokens,
		accounts: accounts,
		log:      log.With().Str("component", "directory").Logger(),
	}
}

func (d *Directory) Tokens() *Tokens { return d.tokens }

// Exists reports whether identity has an account of the given role.
func (d *Directory) Exists(ctx context.Context, role model.Role, identity string) (bool, error) {
	var err error
	switch role {
	case model.RoleAdmin:
		_, err = d.accounts.AdminByUsername(ctx, identity)
	case model.RoleDoctor:
		_, err = d.accounts.DoctorByEmail(ctx, identity)
	case model.RolePatient:
		_, err = d.accounts.PatientByEmail(ctx, identity)
	default:
		return false, nil
	}
	if errors.Is(err, model.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ValidateForRole verifies the token and checks that its subject exists in
// the account set of role. Unknown roles and lookup failures yield false.
func (d *Directory) ValidateForRole(ctx context.Context, token string, role model.Role) bool {
	identity, ok := d.tokens.Verify(token)
	if !ok {
		return false
	}
	if !role.Valid() {
		d.log.Warn().Int("role", int(role)).Msg("unknown role")
		return false
	}
	found, err := d.Exists(ctx, role, identity)
	if err != nil {
		d.log.Error().Err(err).Str("role", role.String()).Msg("account lookup failed")
		return false
	}
	if !found {
		d.log.Warn().Str("identity", identity).Str("role", role.String()).Msg("no account for token subject")
	}
	return found
}

// PatientFor resolves the patient behind a token. An unverifiable token or an
// unknown subject yields model.ErrNotFound.
func (d *Directory) PatientFor(ctx context.Context, token string) (*model.Patient, error) {
	identity, ok := d.tokens.Verify(token)
	if !ok {
		return nil, model.ErrNotFound
	}
	return d.accounts.PatientByEmail(ctx, identity)
}

// DoctorFor resolves the doctor behind a token, with the same rules as PatientFor.
func (d *Directory) DoctorFor(ctx context.Context, token string) (*model.Doctor, error) {
	identity, ok := d.tokens.Verify(token)
	if !ok {
		return nil, model.ErrNotFound
	}
	return d.accounts.DoctorByEmail(ctx, identity)
}
