package handler

import (
	"context"

	"clinic-scheduler-api/internal/clinic"
	"clinic-scheduler-api/internal/clinicpb"
	"clinic-scheduler-api/internal/middleware"
	"clinic-scheduler-api/internal/model"
)

func (h *Handler) Login(ctx context.Context, req *clinicpb.LoginRequest) (*clinicpb.LoginResponse, error) {
	// unknown roles fall through to the clinic layer, which rejects them
	role, _ := model.ParseRole(req.Role)
	tok, err := h.svc.Login(ctx, role, req.Identity, req.Password)
	if err != nil {
		return nil, toStatus(err)
	}
	return &clinicpb.LoginResponse{Token: tok}, nil
}

func (h *Handler) RegisterPatient(ctx context.Context, req *clinicpb.RegisterPatientRequest) (*clinicpb.RegisterPatientResponse, error) {
	id, tok, err := h.svc.RegisterPatient(ctx, clinic.PatientInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &clinicpb.RegisterPatientResponse{PatientID: id, Token: tok}, nil
}

func (h *Handler) AddDoctor(ctx context.Context, req *clinicpb.AddDoctorRequest) (*clinicpb.AddDoctorResponse, error) {
	id, err := h.svc.AddDoctor(ctx, middleware.TokenFrom(ctx), clinic.DoctorInput{
		Name:           req.Name,
		Specialty:      req.Specialty,
		Email:          req.Email,
		Password:       req.Password,
		Phone:          req.Phone,
		AvailableTimes: req.AvailableTimes,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &clinicpb.AddDoctorResponse{DoctorID: id}, nil
}

func (h *Handler) ValidateToken(ctx context.Context, req *clinicpb.ValidateTokenRequest) (*clinicpb.ValidateTokenResponse, error) {
	role, err := model.ParseRole(req.Role)
	if err != nil {
		return &clinicpb.ValidateTokenResponse{Valid: false}, nil
	}
	return &clinicpb.ValidateTokenResponse{
		Valid: h.svc.ValidateToken(ctx, middleware.TokenFrom(ctx), role),
	}, nil
}
