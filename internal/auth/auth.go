package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// TokenTTL is the fixed lifetime of an identity token.
const TokenTTL = 7 * 24 * time.Hour

var (
	ErrBadToken    = errors.New("invalid token")
	ErrEmptySecret = errors.New("signing secret is empty")
)

func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// Tokens issues and verifies identity tokens signed with one secret that is
// fixed for the lifetime of the value.
type Tokens struct {
	secret []byte
	now    func() time.Time
	log    zerolog.Logger
}

func NewTokens(secret string, log zerolog.Logger) (*Tokens, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &Tokens{
		secret: []byte(secret),
		now:    time.Now,
		log:    log.With().Str("component", "tokens").Logger(),
	}, nil
}

// Issue signs a token whose subject is identity, valid for TokenTTL.
func (t *Tokens) Issue(identity string) (string, error) {
	now := t.now()
	c := jwt.RegisteredClaims{
		Subject:   identity,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiry(now)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(t.secret)
}

// Verify returns the token subject. Every failure collapses to ok=false; the
// cause is only logged.
func (t *Tokens) Verify(raw string) (identity string, ok bool) {
	if raw == "" {
		return "", false
	}
	c := &jwt.RegisteredClaims{}
	tok, err := jwt.ParseWithClaims(raw, c, func(tok *jwt.Token) (any, error) {
		// block alg confusion
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrBadToken
		}
		return t.secret, nil
	}, jwt.WithExpirationRequired(), jwt.WithTimeFunc(t.now), jwt.WithLeeway(expiryLeeway))
	if err != nil {
		t.log.Warn().Str("reason", failureReason(err)).Err(err).Msg("token rejected")
		return "", false
	}
	if !tok.Valid || c.Subject == "" {
		t.log.Warn().Str("reason", "no subject").Msg("token rejected")
		return "", false
	}
	return c.Subject, true
}

// exp is stored in whole seconds. Rounding up keeps it from landing before
// issued+TokenTTL.
func expiry(issued time.Time) time.Time {
	exp := issued.Add(TokenTTL)
	if t := exp.Truncate(time.Second); !t.Equal(exp) {
		return t.Add(time.Second)
	}
	return exp
}

// jwt rejects now == exp; the expiry instant itself still verifies.
const expiryLeeway = time.Nanosecond

func failureReason(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "expired"
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "bad signature"
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "malformed"
	}
	return "unparseable"
}
