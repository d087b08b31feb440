// Package handler implements the clinic.v1 ClinicService over the clinic
// layer.
package handler

import (
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"clinic-scheduler-api/internal/clinic"
	"clinic-scheduler-api/internal/clinicpb"
	"clinic-scheduler-api/internal/scheduling"
)

type Handler struct {
	clinicpb.UnimplementedClinicServiceServer
	svc *clinic.Service
	loc *time.Location
}

// New returns a handler. loc is the clinic time zone used to read calendar
// dates.
func New(svc *clinic.Service, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{svc: svc, loc: loc}
}

// Code maps an error kind onto its gRPC status code.
func Code(k scheduling.Kind) codes.Code {
	switch k {
	case scheduling.KindNotFound:
		return codes.NotFound
	case scheduling.KindForbidden:
		return codes.PermissionDenied
	case scheduling.KindConflict:
		return codes.AlreadyExists
	case scheduling.KindValidationFailed, scheduling.KindInvalidArgument:
		return codes.InvalidArgument
	case scheduling.KindUnauthenticated:
		return codes.Unauthenticated
	}
	return codes.Internal
}

func toStatus(err error) error {
	return status.Error(Code(scheduling.KindOf(err)), scheduling.Message(err))
}
