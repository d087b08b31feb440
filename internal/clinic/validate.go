package clinic

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"clinic-scheduler-api/internal/scheduling"
)

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

const minPasswordLen = 6

// PatientInput is a self-registration request.
type PatientInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  string
}

// DoctorInput is a doctor onboarding request. AvailableTimes keeps the order
// it was given in.
type DoctorInput struct {
	Name           string
	Specialty      string
	Email          string
	Password       string
	Phone          string
	AvailableTimes []string
}

func (in *PatientInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)
}

func (in *DoctorInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Specialty = strings.TrimSpace(in.Specialty)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
}

func (in PatientInput) validate() error {
	if err := checkLen(in.Name, 3, 100, "Patient name should be between 3 and 100 characters."); err != nil {
		return err
	}
	if err := checkAccount(in.Email, in.Password, in.Phone); err != nil {
		return err
	}
	if utf8.RuneCountInString(in.Address) > 255 {
		return scheduling.InvalidArgument("Address should not exceed 255 characters.")
	}
	return nil
}

func (in DoctorInput) validate() error {
	if err := checkLen(in.Name, 3, 100, "Doctor's name should be between 3 and 100 characters."); err != nil {
		return err
	}
	if err := checkLen(in.Specialty, 3, 50, "Specialty should be between 3 and 50 characters."); err != nil {
		return err
	}
	if err := checkAccount(in.Email, in.Password, in.Phone); err != nil {
		return err
	}
	for _, t := range in.AvailableTimes {
		if strings.TrimSpace(t) == "" {
			return scheduling.InvalidArgument("Available times must not be blank.")
		}
	}
	return nil
}

func checkLen(s string, lo, hi int, msg string) error {
	if n := utf8.RuneCountInString(s); n < lo || n > hi {
		return scheduling.InvalidArgument(msg)
	}
	return nil
}

func checkAccount(email, password, phone string) error {
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return scheduling.InvalidArgument("Invalid email format.")
	}
	if len(password) < minPasswordLen {
		return scheduling.InvalidArgument("Password must be at least 6 characters long.")
	}
	if !phonePattern.MatchString(phone) {
		return scheduling.InvalidArgument("Phone number must be 10 digits long.")
	}
	return nil
}
