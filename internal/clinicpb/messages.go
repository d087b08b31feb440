package clinicpb

import (
	"time"

	"google.golang.org/protobuf/encoding/protowire"
)

type LoginRequest struct {
	Role     string
	Identity string
	Password string
}

func (m *LoginRequest) MarshalWire() []byte {
	var b []byte
	b = appendString(b, 1, m.Role)
	b = appendString(b, 2, m.Identity)
	b = appendString(b, 3, m.Password)
	return b
}

func (m *LoginRequest) UnmarshalWire(b []byte) error {
	*m = LoginRequest{}
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return consumeString(typ, b, &m.Role)
		case 2:
			return consumeString(typ, b, &m.Identity)
		case 3:
			return consumeString(typ, b, &m.Password)
		}
		return 0
	})
}

type LoginResponse struct {
	Token string
}

func (m *LoginResponse) MarshalWire() []byte {
	return appendString(nil, 1, m.Token)
}

func (m *LoginResponse) UnmarshalWire(b []byte) error {
	*m = LoginResponse{}
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 1 {
			return consumeString(typ, b, &m.Token)
		}
		return 0
	})
}

type RegisterPatientRequest struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  string
}

func (m *RegisterPatientRequest) MarshalWire() []byte {
	var b []byte
	b = appendString(b, 1, m.Name)
	b = appendString(b, 2, m.Email)
	b = appendString(b, 3, m.Password)
	b = appendString(b, 4, m.Phone)
	b = appendString(b, 5, m.Address)
	return b
}

func (m *RegisterPatientRequest) UnmarshalWire(b []byte) error {
	*m = RegisterPatientRequest{}
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return consumeString(typ, b, &m.Name)
		case 2:
			return consumeString(typ, b, &m.Email)
		case 3:
			return consumeString(typ, b, &m.Password)
		case 4:
			return consumeString(typ, b, &m.Phone)
		case 5:
			return consumeString(typ, b, &m.Address)
		}
		return 0
	})
}

type RegisterPatientResponse struct {
	PatientID string
	Token     string
}

func (m *RegisterPatientResponse) MarshalWire() []byte {
	var b []byte
	b = appendString(b, 1, m.PatientID)
	b = appendString(b, 2, m.Token)
	return b
}

func (m *RegisterPatientResponse) UnmarshalWire(b []byte) error {
	*m = RegisterPatientResponse{}
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return consumeString(typ, b, &m.PatientID)
		case 2:
			return consumeString(typ, b, &m.Token)
		}
		return 0
	})
}

type AddDoctorRequest struct {
	Name           string
	Specialty      string
	Email          string
	Password       string
	Phone          string
	AvailableTimes []string
}

func (m *AddDoctorRequest) MarshalWire() []byte {
	var b []byte
	b = appendString(b, 1, m.Name)
	b = appendString(b, 2, m.Specialty)
	b = appendString(b, 3, m.Email)
	b = appendString(b, 4, m.Password)
	b = appendString(b, 5, m.Phone)
	for _, t := range m.AvailableTimes {
		b = protowire.AppendTag(b, 6, protowire.BytesType)
		b = protowire.AppendString(b, t)
	}
	return b
}

func (m *AddDoctorRequest) UnmarshalWire(b []byte) error {
	*m = AddDoctorRequest{}
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return consumeString(typ, b, &m.Name)
		case 2:
			return consumeString(typ, b, &m.Specialty)
		case 3:
			return consumeString(typ, b, &m.Email)
		case 4:
			return consumeString(typ, b, &m.Password)
		case 5:
			return consumeString(typ, b, &m.Phone)
		case 6:
			var t string
			n := consumeString(typ, b, &t)
			if n > 0 {
				m.AvailableTimes = append(m.AvailableTimes, t)
			}
			return n
		}
		return 0
	})
}

type AddDoctorResponse struct {
	DoctorID string
}

func (m *AddDoctorResponse) MarshalWire() []byte {
	return appendString(nil, 1, m.DoctorID)
}

func (m *AddDoctorResponse) UnmarshalWire(b []byte) error {
	*m = AddDoctorResponse{}
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 1 {
			return consumeString(typ, b, &m.DoctorID)
		}
		return 0
	})
}

type BookAppointmentRequest struct {
	DoctorID  string
	StartTime time.Time
}

func (m *BookAppointmentRequest) MarshalWire() []byte {
	var b []byte
	b = appendString(b, 1, m.DoctorID)
	b = appendTime(b, 2, m.StartTime)
	return b
}

func (m *BookAppointmentRequest) UnmarshalWire(b []byte) error {
	*m = BookAppointmentRequest{}
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return consumeString(typ, b, &m.DoctorID)
		case 2:
			return consumeTime(typ, b, &m.StartTime)
		}
		return 0
	})
}

type BookAppointmentResponse struct {
	AppointmentID string
	Message       string
}

func (m *BookAppointmentResponse) MarshalWire() []byte {
	var b []byte
	b = appendString(b, 1, m.AppointmentID)
	b = appendString(b, 2, m.Message)
	return b
}

func (m *BookAppointmentResponse) UnmarshalWire(b []byte) error {
	*m = BookAppointmentResponse{}
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return consumeString(typ, b, &m.AppointmentID)
		case 2:
			return consumeString(typ, b, &m.Message)
		}
		return 0
	})
}

type UpdateAppointmentRequest struct {
	AppointmentID string
	DoctorID      string
	StartTime     time.Time
}

func (m *UpdateAppointmentRequest) MarshalWire() []byte {
	var b []byte
	b = appendString(b, 1, m.AppointmentID)
	b = appendString(b, 2, m.DoctorID)
	b = appendTime(b, 3, m.StartTime)
	return b
}

func (m *UpdateAppointmentRequest) UnmarshalWire(b []byte) error {
	*m = UpdateAppointmentRequest{}
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return consumeString(typ, b, &m.AppointmentID)
		case 2:
			return consumeString(typ, b, &m.DoctorID)
		case 3:
			return consumeTime(typ, b, &m.StartTime)
		}
		return 0
	})
}

// AppointmentRequest addresses one appointment by id. Cancel and Complete
// share it.
type AppointmentRequest struct {
	AppointmentID string
}

func (m *AppointmentRequest) MarshalWire() []byte {
	return appendString(nil, 1, m.AppointmentID)
}

func (m *AppointmentRequest) UnmarshalWire(b []byte) error {
	*m = AppointmentRequest{}
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 1 {
			return consumeString(typ, b, &m.AppointmentID)
		}
		return 0
	})
}

type MessageResponse struct {
	Message string
}

func (m *MessageResponse) MarshalWire() []byte {
	return appendString(nil, 1, m.Message)
}

func (m *MessageResponse) UnmarshalWire(b []byte) error {
	*m = MessageResponse{}
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 1 {
			return consumeString(typ, b, &m.Message)
		}
		return 0
	})
}

// ListDoctorAppointmentsRequest selects one calendar day (YYYY-MM-DD) of the
// calling doctor. An empty or "null" PatientName means no filter.
type ListDoctorAppointmentsRequest struct {
	Date        string
	PatientName string
}

func (m *ListDoctorAppointmentsRequest) MarshalWire() []byte {
	var b []byte
	b = appendString(b, 1, m.Date)
	b = appendString(b, 2, m.PatientName)
	return b
}

func (m *ListDoctorAppointmentsRequest) UnmarshalWire(b []byte) error {
	*m = ListDoctorAppointmentsRequest{}
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return consumeString(typ, b, &m.Date)
		case 2:
			return consumeString(typ, b, &m.PatientName)
		}
		return 0
	})
}

type Appointment struct {
	ID              string
	DoctorID        string
	DoctorName      string
	PatientID       string
	PatientName     string
	PatientEmail    string
	PatientPhone    string
	PatientAddress  string
	AppointmentTime time.Time
	Status          int32
}

func (m *Appointment) MarshalWire() []byte {
	var b []byte
	b = appendString(b, 1, m.ID)
	b = appendString(b, 2, m.DoctorID)
	b = appendString(b, 3, m.DoctorName)
	b = appendString(b, 4, m.PatientID)
	b = appendString(b, 5, m.PatientName)
	b = appendString(b, 6, m.PatientEmail)
	b = appendString(b, 7, m.PatientPhone)
	b = appendString(b, 8, m.PatientAddress)
	b = appendTime(b, 9, m.AppointmentTime)
	b = appendInt32(b, 10, m.Status)
	return b
}

func (m *Appointment) UnmarshalWire(b []byte) error {
	*m = Appointment{}
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return consumeString(typ, b, &m.ID)
		case 2:
			return consumeString(typ, b, &m.DoctorID)
		case 3:
			return consumeString(typ, b, &m.DoctorName)
		case 4:
			return consumeString(typ, b, &m.PatientID)
		case 5:
			return consumeString(typ, b, &m.PatientName)
		case 6:
			return consumeString(typ, b, &m.PatientEmail)
		case 7:
			return consumeString(typ, b, &m.PatientPhone)
		case 8:
			return consumeString(typ, b, &m.PatientAddress)
		case 9:
			return consumeTime(typ, b, &m.AppointmentTime)
		case 10:
			return consumeInt32(typ, b, &m.Status)
		}
		return 0
	})
}

type ListDoctorAppointmentsResponse struct {
	Appointments []*Appointment
}

func (m *ListDoctorAppointmentsResponse) MarshalWire() []byte {
	var b []byte
	for _, a := range m.Appointments {
		b = appendMessage(b, 1, a.MarshalWire())
	}
	return b
}

func (m *ListDoctorAppointmentsResponse) UnmarshalWire(b []byte) error {
	*m = ListDoctorAppointmentsResponse{}
	var inner error
	err := decode(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num != 1 || typ != protowire.BytesType {
			return 0
		}
		v, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return n
		}
		a := &Appointment{}
		if err := a.UnmarshalWire(v); err != nil {
			inner = err
			return -1
		}
		m.Appointments = append(m.Appointments, a)
		return n
	})
	if inner != nil {
		return inner
	}
	return err
}

type CheckAvailabilityRequest struct {
	DoctorID  string
	StartTime time.Time
}

func (m *CheckAvailabilityRequest) MarshalWire() []byte {
	var b []byte
	b = appendString(b, 1, m.DoctorID)
	b = appendTime(b, 2, m.StartTime)
	return b
}

func (m *CheckAvailabilityRequest) UnmarshalWire(b []byte) error {
	*m = CheckAvailabilityRequest{}
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return consumeString(typ, b, &m.DoctorID)
		case 2:
			return consumeTime(typ, b, &m.StartTime)
		}
		return 0
	})
}

type CheckAvailabilityResponse struct {
	Available bool
}

func (m *CheckAvailabilityResponse) MarshalWire() []byte {
	return appendBool(nil, 1, m.Available)
}

func (m *CheckAvailabilityResponse) UnmarshalWire(b []byte) error {
	*m = CheckAvailabilityResponse{}
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 1 {
			return consumeBool(typ, b, &m.Available)
		}
		return 0
	})
}

// ValidateTokenRequest checks the bearer token of the call against Role.
type ValidateTokenRequest struct {
	Role string
}

func (m *ValidateTokenRequest) MarshalWire() []byte {
	return appendString(nil, 1, m.Role)
}

func (m *ValidateTokenRequest) UnmarshalWire(b []byte) error {
	*m = ValidateTokenRequest{}
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 1 {
			return consumeString(typ, b, &m.Role)
		}
		return 0
	})
}

type ValidateTokenResponse struct {
	Valid bool
}

func (m *ValidateTokenResponse) MarshalWire() []byte {
	return appendBool(nil, 1, m.Valid)
}

func (m *ValidateTokenResponse) UnmarshalWire(b []byte) error {
	*m = ValidateTokenResponse{}
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 1 {
			return consumeBool(typ, b, &m.Valid)
		}
		return 0
	})
}

type Doctor struct {
	ID             string
	Name           string
	Specialty      string
	Email          string
	Phone          string
	AvailableTimes []string
}

func (m *Doctor) MarshalWire() []byte {
	var b []byte
	b = appendString(b, 1, m.ID)
	b = appendString(b, 2, m.Name)
	b = appendString(b, 3, m.Specialty)
	b = appendString(b, 4, m.Email)
	b = appendString(b, 5, m.Phone)
	for _, t := range m.AvailableTimes {
		b = protowire.AppendTag(b, 6, protowire.BytesType)
		b = protowire.AppendString(b, t)
	}
	return b
}

func (m *Doctor) UnmarshalWire(b []byte) error {
	*m = Doctor{}
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return consumeString(typ, b, &m.ID)
		case 2:
			return consumeString(typ, b, &m.Name)
		case 3:
			return consumeString(typ, b, &m.Specialty)
		case 4:
			return consumeString(typ, b, &m.Email)
		case 5:
			return consumeString(typ, b, &m.Phone)
		case 6:
			var t string
			n := consumeString(typ, b, &t)
			if n > 0 {
				m.AvailableTimes = append(m.AvailableTimes, t)
			}
			return n
		}
		return 0
	})
}

// ListDoctorsRequest has no fields.
type ListDoctorsRequest struct{}

func (m *ListDoctorsRequest) MarshalWire() []byte { return nil }

func (m *ListDoctorsRequest) UnmarshalWire(b []byte) error {
	return decode(b, func(protowire.Number, protowire.Type, []byte) int { return 0 })
}

// FilterDoctorsRequest narrows the directory. Empty or "null" fields match
// everything; Time is "AM", "PM" or an exact available time.
type FilterDoctorsRequest struct {
	Name      string
	Time      string
	Specialty string
}

func (m *FilterDoctorsRequest) MarshalWire() []byte {
	var b []byte
	b = appendString(b, 1, m.Name)
	b = appendString(b, 2, m.Time)
	b = appendString(b, 3, m.Specialty)
	return b
}

func (m *FilterDoctorsRequest) UnmarshalWire(b []byte) error {
	*m = FilterDoctorsRequest{}
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return consumeString(typ, b, &m.Name)
		case 2:
			return consumeString(typ, b, &m.Time)
		case 3:
			return consumeString(typ, b, &m.Specialty)
		}
		return 0
	})
}

type DoctorsResponse struct {
	Doctors []*Doctor
}

func (m *DoctorsResponse) MarshalWire() []byte {
	var b []byte
	for _, d := range m.Doctors {
		b = appendMessage(b, 1, d.MarshalWire())
	}
	return b
}

func (m *DoctorsResponse) UnmarshalWire(b []byte) error {
	*m = DoctorsResponse{}
	var inner error
	err := decode(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num != 1 || typ != protowire.BytesType {
			return 0
		}
		v, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return n
		}
		d := &Doctor{}
		if err := d.UnmarshalWire(v); err != nil {
			inner = err
			return -1
		}
		m.Doctors = append(m.Doctors, d)
		return n
	})
	if inner != nil {
		return inner
	}
	return err
}

type DeleteDoctorRequest struct {
	DoctorID string
}

func (m *DeleteDoctorRequest) MarshalWire() []byte {
	return appendString(nil, 1, m.DoctorID)
}

func (m *DeleteDoctorRequest) UnmarshalWire(b []byte) error {
	*m = DeleteDoctorRequest{}
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 1 {
			return consumeString(typ, b, &m.DoctorID)
		}
		return 0
	})
}

// PatientProfileRequest has no fields; the caller's token names the patient.
type PatientProfileRequest struct{}

func (m *PatientProfileRequest) MarshalWire() []byte { return nil }

func (m *PatientProfileRequest) UnmarshalWire(b []byte) error {
	return decode(b, func(protowire.Number, protowire.Type, []byte) int { return 0 })
}

type Patient struct {
	ID      string
	Name    string
	Email   string
	Phone   string
	Address string
}

func (m *Patient) MarshalWire() []byte {
	var b []byte
	b = appendString(b, 1, m.ID)
	b = appendString(b, 2, m.Name)
	b = appendString(b, 3, m.Email)
	b = appendString(b, 4, m.Phone)
	b = appendString(b, 5, m.Address)
	return b
}

func (m *Patient) UnmarshalWire(b []byte) error {
	*m = Patient{}
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return consumeString(typ, b, &m.ID)
		case 2:
			return consumeString(typ, b, &m.Name)
		case 3:
			return consumeString(typ, b, &m.Email)
		case 4:
			return consumeString(typ, b, &m.Phone)
		case 5:
			return consumeString(typ, b, &m.Address)
		}
		return 0
	})
}
