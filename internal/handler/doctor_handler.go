package handler

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"clinic-scheduler-api/internal/clinic"
	"clinic-scheduler-api/internal/clinicpb"
	"clinic-scheduler-api/internal/middleware"
	"clinic-scheduler-api/internal/model"
)

const MsgDoctorDeleted = "Doctor deleted successfully."

func (h *Handler) ListDoctors(ctx context.Context, _ *clinicpb.ListDoctorsRequest) (*clinicpb.DoctorsResponse, error) {
	list, err := h.svc.ListDoctors(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return doctorsToProto(list), nil
}

func (h *Handler) FilterDoctors(ctx context.Context, req *clinicpb.FilterDoctorsRequest) (*clinicpb.DoctorsResponse, error) {
	list, err := h.svc.FilterDoctors(ctx, clinic.DoctorFilter{
		Name:      req.Name,
		Time:      req.Time,
		Specialty: req.Specialty,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return doctorsToProto(list), nil
}

func (h *Handler) DeleteDoctor(ctx context.Context, req *clinicpb.DeleteDoctorRequest) (*clinicpb.MessageResponse, error) {
	if req.DoctorID == "" {
		return nil, status.Error(codes.InvalidArgument, "doctor id required")
	}
	if err := h.svc.DeleteDoctor(ctx, middleware.TokenFrom(ctx), req.DoctorID); err != nil {
		return nil, toStatus(err)
	}
	return &clinicpb.MessageResponse{Message: MsgDoctorDeleted}, nil
}

func (h *Handler) GetPatientProfile(ctx context.Context, _ *clinicpb.PatientProfileRequest) (*clinicpb.Patient, error) {
	p, err := h.svc.PatientProfile(ctx, middleware.TokenFrom(ctx))
	if err != nil {
		return nil, toStatus(err)
	}
	return &clinicpb.Patient{
		ID:      p.ID,
		Name:    p.Name,
		Email:   p.Email,
		Phone:   p.Phone,
		Address: p.Address,
	}, nil
}

func doctorsToProto(list []model.Doctor) *clinicpb.DoctorsResponse {
	out := make([]*clinicpb.Doctor, 0, len(list))
	for _, d := range list {
		out = append(out, &clinicpb.Doctor{
			ID:             d.ID,
			Name:           d.Name,
			Specialty:      d.Specialty,
			Email:          d.Email,
			Phone:          d.Phone,
			AvailableTimes: d.AvailableTimes,
		})
	}
	return &clinicpb.DoctorsResponse{Doctors: out}
}
