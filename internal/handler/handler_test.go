package handler_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"clinic-scheduler-api/internal/auth"
	"clinic-scheduler-api/internal/clinic"
	"clinic-scheduler-api/internal/clinicpb"
	"clinic-scheduler-api/internal/handler"
	"clinic-scheduler-api/internal/middleware"
	"clinic-scheduler-api/internal/scheduling"
	"clinic-scheduler-api/internal/store/storetest"
)

type env struct {
	client *clinicpb.ClinicServiceClient
	svc    *clinic.Service
}

func setup(t *testing.T) *env {
	t.Helper()
	log := zerolog.Nop()
	st := storetest.New()
	tokens, err := auth.NewTokens("test-secret", log)
	require.NoError(t, err)
	dir := auth.NewDirectory(tokens, st, log)
	svc := clinic.New(st, dir,
		scheduling.NewLifecycle(st, st, st, dir, nil, log),
		scheduling.NewQuery(st, dir, time.UTC, log),
		scheduling.NewSlotValidator(st), log)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	opts := append(clinicpb.ServerOptions(), grpc.ChainUnaryInterceptor(
		middleware.Logging(log),
		middleware.RateLimit(middleware.NewRateLimiter(ctx, 100, 100)),
		middleware.Auth(tokens),
	))
	srv := grpc.NewServer(opts...)
	clinicpb.RegisterClinicServiceServer(srv, handler.New(svc, time.UTC))

	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return &env{client: clinicpb.NewClinicServiceClient(conn), svc: svc}
}

func bearer(tok string) context.Context {
	return metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer "+tok)
}

func (e *env) patient(t *testing.T, name, email string) string {
	t.Helper()
	resp, err := e.client.RegisterPatient(context.Background(), &clinicpb.RegisterPatientRequest{
		Name: name, Email: email, Password: "secret1", Phone: "0123456789", Address: "1 Main St",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.PatientID)
	return resp.Token
}

func (e *env) doctor(t *testing.T) (string, string) {
	t.Helper()
	ctx := context.Background()
	_, err := e.svc.CreateAdmin(ctx, "root", "rootpass")
	require.NoError(t, err)
	admin, err := e.client.Login(ctx, &clinicpb.LoginRequest{Role: "admin", Identity: "root", Password: "rootpass"})
	require.NoError(t, err)

	d, err := e.client.AddDoctor(bearer(admin.Token), &clinicpb.AddDoctorRequest{
		Name: "Gregory House", Specialty: "diagnostics", Email: "house@example.com",
		Password: "vicodin", Phone: "5550001111", AvailableTimes: []string{"09:00", "10:00"},
	})
	require.NoError(t, err)
	login, err := e.client.Login(ctx, &clinicpb.LoginRequest{Role: "doctor", Identity: "house@example.com", Password: "vicodin"})
	require.NoError(t, err)
	return d.DoctorID, login.Token
}

func slot() time.Time {
	return time.Now().UTC().Add(72 * time.Hour).Truncate(time.Hour)
}

func TestLogin(t *testing.T) {
	e := setup(t)
	e.patient(t, "Alice Moreau", "alice@example.com")

	resp, err := e.client.Login(context.Background(), &clinicpb.LoginRequest{
		Role: "patient", Identity: "Alice@Example.com", Password: "secret1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	tests := []struct {
		name string
		req  *clinicpb.LoginRequest
		code codes.Code
	}{
		{"wrong password", &clinicpb.LoginRequest{Role: "patient", Identity: "alice@example.com", Password: "nope"}, codes.Unauthenticated},
		{"unknown account", &clinicpb.LoginRequest{Role: "patient", Identity: "bob@example.com", Password: "secret1"}, codes.Unauthenticated},
		{"wrong role", &clinicpb.LoginRequest{Role: "doctor", Identity: "alice@example.com", Password: "secret1"}, codes.Unauthenticated},
		{"unknown role", &clinicpb.LoginRequest{Role: "nurse", Identity: "alice@example.com", Password: "secret1"}, codes.InvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.client.Login(context.Background(), tt.req)
			assert.Equal(t, tt.code, status.Code(err))
		})
	}
}

func TestRegisterPatientErrors(t *testing.T) {
	e := setup(t)
	e.patient(t, "Alice Moreau", "alice@example.com")

	_, err := e.client.RegisterPatient(context.Background(), &clinicpb.RegisterPatientRequest{
		Name: "Alice Again", Email: "alice@example.com", Password: "secret1", Phone: "0123456789",
	})
	assert.Equal(t, codes.AlreadyExists, status.Code(err))

	_, err = e.client.RegisterPatient(context.Background(), &clinicpb.RegisterPatientRequest{
		Name: "Al", Email: "al@example.com", Password: "secret1", Phone: "0123456789",
	})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestAddDoctorRequiresAdmin(t *testing.T) {
	e := setup(t)
	patient := e.patient(t, "Alice Moreau", "alice@example.com")

	_, err := e.client.AddDoctor(bearer(patient), &clinicpb.AddDoctorRequest{
		Name: "Meredith Grey", Specialty: "surgery", Email: "grey@example.com", Password: "secret1", Phone: "5550002222",
	})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	_, err = e.client.AddDoctor(context.Background(), &clinicpb.AddDoctorRequest{Name: "x"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestAppointmentFlow(t *testing.T) {
	e := setup(t)
	doctorID, doctorTok := e.doctor(t)
	alice := e.patient(t, "Alice Moreau", "alice@example.com")
	bob := e.patient(t, "Bob Stone", "bob@example.com")
	start := slot()

	booked, err := e.client.BookAppointment(bearer(alice), &clinicpb.BookAppointmentRequest{DoctorID: doctorID, StartTime: start})
	require.NoError(t, err)
	require.NotEmpty(t, booked.AppointmentID)
	assert.Equal(t, handler.MsgBooked, booked.Message)

	t.Run("book errors", func(t *testing.T) {
		_, err := e.client.BookAppointment(bearer(bob), &clinicpb.BookAppointmentRequest{DoctorID: doctorID, StartTime: start.Add(30 * time.Minute)})
		assert.Equal(t, codes.AlreadyExists, status.Code(err))

		_, err = e.client.BookAppointment(bearer(bob), &clinicpb.BookAppointmentRequest{DoctorID: "missing", StartTime: start})
		assert.Equal(t, codes.NotFound, status.Code(err))

		_, err = e.client.BookAppointment(bearer(bob), &clinicpb.BookAppointmentRequest{DoctorID: doctorID, StartTime: time.Now().Add(-time.Hour)})
		assert.Equal(t, codes.InvalidArgument, status.Code(err))

		_, err = e.client.BookAppointment(bearer(doctorTok), &clinicpb.BookAppointmentRequest{DoctorID: doctorID, StartTime: start.Add(5 * time.Hour)})
		assert.Equal(t, codes.PermissionDenied, status.Code(err))

		_, err = e.client.BookAppointment(context.Background(), &clinicpb.BookAppointmentRequest{DoctorID: doctorID, StartTime: start})
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("availability", func(t *testing.T) {
		resp, err := e.client.CheckAvailability(bearer(bob), &clinicpb.CheckAvailabilityRequest{DoctorID: doctorID, StartTime: start.Add(59 * time.Minute)})
		require.NoError(t, err)
		assert.False(t, resp.Available)

		resp, err = e.client.CheckAvailability(bearer(bob), &clinicpb.CheckAvailabilityRequest{DoctorID: doctorID, StartTime: start.Add(time.Hour)})
		require.NoError(t, err)
		assert.True(t, resp.Available)

		_, err = e.client.CheckAvailability(bearer(bob), &clinicpb.CheckAvailabilityRequest{DoctorID: "missing", StartTime: start})
		assert.Equal(t, codes.NotFound, status.Code(err))
	})

	t.Run("list", func(t *testing.T) {
		date := start.Format(handler.DateLayout)
		resp, err := e.client.ListDoctorAppointments(bearer(doctorTok), &clinicpb.ListDoctorAppointmentsRequest{Date: date, PatientName: "null"})
		require.NoError(t, err)
		require.Len(t, resp.Appointments, 1)
		a := resp.Appointments[0]
		assert.Equal(t, booked.AppointmentID, a.ID)
		assert.Equal(t, "Alice Moreau", a.PatientName)
		assert.Equal(t, "Gregory House", a.DoctorName)
		assert.True(t, start.Equal(a.AppointmentTime))

		resp, err = e.client.ListDoctorAppointments(bearer(doctorTok), &clinicpb.ListDoctorAppointmentsRequest{Date: date, PatientName: "bob"})
		require.NoError(t, err)
		assert.Empty(t, resp.Appointments)

		resp, err = e.client.ListDoctorAppointments(bearer(alice), &clinicpb.ListDoctorAppointmentsRequest{Date: date})
		require.NoError(t, err)
		assert.Empty(t, resp.Appointments, "patients see nothing")

		_, err = e.client.ListDoctorAppointments(bearer(doctorTok), &clinicpb.ListDoctorAppointmentsRequest{Date: "06/01/2025"})
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("update", func(t *testing.T) {
		_, err := e.client.UpdateAppointment(bearer(bob), &clinicpb.UpdateAppointmentRequest{
			AppointmentID: booked.AppointmentID, DoctorID: doctorID, StartTime: start.Add(2 * time.Hour),
		})
		assert.Equal(t, codes.PermissionDenied, status.Code(err))

		_, err = e.client.UpdateAppointment(bearer(bob), &clinicpb.UpdateAppointmentRequest{
			AppointmentID: booked.AppointmentID, DoctorID: doctorID, StartTime: time.Now().Add(-time.Hour),
		})
		assert.Equal(t, codes.PermissionDenied, status.Code(err), "ownership is judged before the start time")

		_, err = e.client.UpdateAppointment(bearer(alice), &clinicpb.UpdateAppointmentRequest{
			AppointmentID: booked.AppointmentID, DoctorID: "missing", StartTime: start.Add(2 * time.Hour),
		})
		assert.Equal(t, codes.InvalidArgument, status.Code(err))

		resp, err := e.client.UpdateAppointment(bearer(alice), &clinicpb.UpdateAppointmentRequest{
			AppointmentID: booked.AppointmentID, DoctorID: doctorID, StartTime: start.Add(2 * time.Hour),
		})
		require.NoError(t, err)
		assert.Equal(t, handler.MsgUpdated, resp.Message)
	})

	t.Run("complete", func(t *testing.T) {
		_, err := e.client.CompleteAppointment(bearer(alice), &clinicpb.AppointmentRequest{AppointmentID: booked.AppointmentID})
		assert.Equal(t, codes.PermissionDenied, status.Code(err))

		resp, err := e.client.CompleteAppointment(bearer(doctorTok), &clinicpb.AppointmentRequest{AppointmentID: booked.AppointmentID})
		require.NoError(t, err)
		assert.Equal(t, handler.MsgCompleted, resp.Message)
	})

	t.Run("cancel", func(t *testing.T) {
		_, err := e.client.CancelAppointment(metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer junk"),
			&clinicpb.AppointmentRequest{AppointmentID: booked.AppointmentID})
		assert.Equal(t, codes.PermissionDenied, status.Code(err))

		_, err = e.client.CancelAppointment(bearer(bob), &clinicpb.AppointmentRequest{AppointmentID: booked.AppointmentID})
		assert.Equal(t, codes.PermissionDenied, status.Code(err))

		resp, err := e.client.CancelAppointment(bearer(alice), &clinicpb.AppointmentRequest{AppointmentID: booked.AppointmentID})
		require.NoError(t, err)
		assert.Equal(t, handler.MsgCancelled, resp.Message)

		_, err = e.client.CancelAppointment(bearer(alice), &clinicpb.AppointmentRequest{AppointmentID: booked.AppointmentID})
		assert.Equal(t, codes.NotFound, status.Code(err))
	})
}

func TestValidateToken(t *testing.T) {
	e := setup(t)
	alice := e.patient(t, "Alice Moreau", "alice@example.com")

	tests := []struct {
		name string
		ctx  context.Context
		role string
		want bool
	}{
		{"patient token as patient", bearer(alice), "patient", true},
		{"patient token as doctor", bearer(alice), "doctor", false},
		{"unknown role", bearer(alice), "nurse", false},
		{"garbage token", bearer("junk"), "patient", false},
		{"no token", context.Background(), "patient", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := e.client.ValidateToken(tt.ctx, &clinicpb.ValidateTokenRequest{Role: tt.role})
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.Valid)
		})
	}
}

func TestCode(t *testing.T) {
	tests := []struct {
		kind scheduling.Kind
		want codes.Code
	}{
		{scheduling.KindNotFound, codes.NotFound},
		{scheduling.KindForbidden, codes.PermissionDenied},
		{scheduling.KindConflict, codes.AlreadyExists},
		{scheduling.KindValidationFailed, codes.InvalidArgument},
		{scheduling.KindInvalidArgument, codes.InvalidArgument},
		{scheduling.KindUnauthenticated, codes.Unauthenticated},
		{scheduling.KindPersistence, codes.Internal},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, handler.Code(tt.kind), tt.kind.String())
	}
}

func TestDoctorDirectoryAndDeletion(t *testing.T) {
	e := setup(t)
	doctorID, doctorTok := e.doctor(t)
	alice := e.patient(t, "Alice Moreau", "alice@example.com")
	ctx := context.Background()

	list, err := e.client.ListDoctors(ctx, &clinicpb.ListDoctorsRequest{})
	require.NoError(t, err)
	require.Len(t, list.Doctors, 1)
	assert.Equal(t, doctorID, list.Doctors[0].ID)
	assert.Equal(t, []string{"09:00", "10:00"}, list.Doctors[0].AvailableTimes)

	filtered, err := e.client.FilterDoctors(ctx, &clinicpb.FilterDoctorsRequest{Time: "PM"})
	require.NoError(t, err)
	assert.Empty(t, filtered.Doctors)
	filtered, err = e.client.FilterDoctors(ctx, &clinicpb.FilterDoctorsRequest{Name: "house", Time: "AM", Specialty: "null"})
	require.NoError(t, err)
	assert.Len(t, filtered.Doctors, 1)

	_, err = e.client.DeleteDoctor(bearer(doctorTok), &clinicpb.DeleteDoctorRequest{DoctorID: doctorID})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))
	_, err = e.client.DeleteDoctor(ctx, &clinicpb.DeleteDoctorRequest{DoctorID: doctorID})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	admin, err := e.client.Login(ctx, &clinicpb.LoginRequest{Role: "admin", Identity: "root", Password: "rootpass"})
	require.NoError(t, err)
	_, err = e.client.DeleteDoctor(bearer(admin.Token), &clinicpb.DeleteDoctorRequest{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	booked, err := e.client.BookAppointment(bearer(alice), &clinicpb.BookAppointmentRequest{DoctorID: doctorID, StartTime: slot()})
	require.NoError(t, err)

	resp, err := e.client.DeleteDoctor(bearer(admin.Token), &clinicpb.DeleteDoctorRequest{DoctorID: doctorID})
	require.NoError(t, err)
	assert.Equal(t, handler.MsgDoctorDeleted, resp.Message)

	_, err = e.client.CancelAppointment(bearer(alice), &clinicpb.AppointmentRequest{AppointmentID: booked.AppointmentID})
	assert.Equal(t, codes.NotFound, status.Code(err))
	_, err = e.client.DeleteDoctor(bearer(admin.Token), &clinicpb.DeleteDoctorRequest{DoctorID: doctorID})
	assert.Equal(t, codes.NotFound, status.Code(err))

	list, err = e.client.ListDoctors(ctx, &clinicpb.ListDoctorsRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Doctors)
}

func TestGetPatientProfile(t *testing.T) {
	e := setup(t)
	_, doctorTok := e.doctor(t)
	alice := e.patient(t, "Alice Moreau", "alice@example.com")

	p, err := e.client.GetPatientProfile(bearer(alice), &clinicpb.PatientProfileRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Alice Moreau", p.Name)
	assert.Equal(t, "alice@example.com", p.Email)
	assert.Equal(t, "1 Main St", p.Address)
	assert.NotEmpty(t, p.ID)

	_, err = e.client.GetPatientProfile(bearer(doctorTok), &clinicpb.PatientProfileRequest{})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))
	_, err = e.client.GetPatientProfile(context.Background(), &clinicpb.PatientProfileRequest{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}
