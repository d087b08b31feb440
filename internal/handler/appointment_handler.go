package handler

import (
	"context"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"clinic-scheduler-api/internal/clinicpb"
	"clinic-scheduler-api/internal/middleware"
	"clinic-scheduler-api/internal/model"
)

const (
	MsgBooked    = "Appointment booked successfully."
	MsgUpdated   = "Appointment details have been updated successfully."
	MsgCancelled = "Appointment has been successfully cancelled."
	MsgCompleted = "Appointment has been marked as completed."

	// DateLayout is the calendar day format of list requests.
	DateLayout = "2006-01-02"
)

func (h *Handler) BookAppointment(ctx context.Context, req *clinicpb.BookAppointmentRequest) (*clinicpb.BookAppointmentResponse, error) {
	id, err := h.svc.Book(ctx, middleware.TokenFrom(ctx), req.DoctorID, req.StartTime)
	if err != nil {
		return nil, toStatus(err)
	}
	return &clinicpb.BookAppointmentResponse{AppointmentID: id, Message: MsgBooked}, nil
}

func (h *Handler) UpdateAppointment(ctx context.Context, req *clinicpb.UpdateAppointmentRequest) (*clinicpb.MessageResponse, error) {
	if req.AppointmentID == "" {
		return nil, status.Error(codes.InvalidArgument, "appointment id required")
	}
	err := h.svc.Update(ctx, middleware.TokenFrom(ctx), req.AppointmentID, req.DoctorID, req.StartTime)
	if err != nil {
		return nil, toStatus(err)
	}
	return &clinicpb.MessageResponse{Message: MsgUpdated}, nil
}

func (h *Handler) CancelAppointment(ctx context.Context, req *clinicpb.AppointmentRequest) (*clinicpb.MessageResponse, error) {
	if err := h.svc.Cancel(ctx, middleware.TokenFrom(ctx), req.AppointmentID); err != nil {
		return nil, toStatus(err)
	}
	return &clinicpb.MessageResponse{Message: MsgCancelled}, nil
}

func (h *Handler) CompleteAppointment(ctx context.Context, req *clinicpb.AppointmentRequest) (*clinicpb.MessageResponse, error) {
	if err := h.svc.Complete(ctx, middleware.TokenFrom(ctx), req.AppointmentID); err != nil {
		return nil, toStatus(err)
	}
	return &clinicpb.MessageResponse{Message: MsgCompleted}, nil
}

func (h *Handler) ListDoctorAppointments(ctx context.Context, req *clinicpb.ListDoctorAppointmentsRequest) (*clinicpb.ListDoctorAppointmentsResponse, error) {
	date, err := time.ParseInLocation(DateLayout, req.Date, h.loc)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "date must be YYYY-MM-DD")
	}

	list, err := h.svc.ListForDoctor(ctx, middleware.TokenFrom(ctx), date, req.PatientName)
	if err != nil {
		return nil, toStatus(err)
	}

	out := make([]*clinicpb.Appointment, 0, len(list))
	for _, s := range list {
		out = append(out, toProto(s))
	}
	return &clinicpb.ListDoctorAppointmentsResponse{Appointments: out}, nil
}

func (h *Handler) CheckAvailability(ctx context.Context, req *clinicpb.CheckAvailabilityRequest) (*clinicpb.CheckAvailabilityResponse, error) {
	if req.StartTime.IsZero() {
		return nil, status.Error(codes.InvalidArgument, "start time required")
	}
	free, err := h.svc.Availability(ctx, req.DoctorID, req.StartTime)
	if err != nil {
		return nil, toStatus(err)
	}
	return &clinicpb.CheckAvailabilityResponse{Available: free}, nil
}

func toProto(s model.AppointmentSummary) *clinicpb.Appointment {
	return &clinicpb.Appointment{
		ID:              s.ID,
		DoctorID:        s.DoctorID,
		DoctorName:      s.DoctorName,
		PatientID:       s.PatientID,
		PatientName:     s.PatientName,
		PatientEmail:    s.PatientEmail,
		PatientPhone:    s.PatientPhone,
		PatientAddress:  s.PatientAddress,
		AppointmentTime: s.AppointmentAt,
		Status:          int32(s.Status),
	}
}
