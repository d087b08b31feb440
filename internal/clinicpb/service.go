package clinicpb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "clinic.v1.ClinicService"

const (
	ClinicService_Login_FullMethodName                  = "/clinic.v1.ClinicService/Login"
	ClinicService_RegisterPatient_FullMethodName        = "/clinic.v1.ClinicService/RegisterPatient"
	ClinicService_AddDoctor_FullMethodName              = "/clinic.v1.ClinicService/AddDoctor"
	ClinicService_BookAppointment_FullMethodName        = "/clinic.v1.ClinicService/BookAppointment"
	ClinicService_UpdateAppointment_FullMethodName      = "/clinic.v1.ClinicService/UpdateAppointment"
	ClinicService_CancelAppointment_FullMethodName      = "/clinic.v1.ClinicService/CancelAppointment"
	ClinicService_CompleteAppointment_FullMethodName    = "/clinic.v1.ClinicService/CompleteAppointment"
	ClinicService_ListDoctorAppointments_FullMethodName = "/clinic.v1.ClinicService/ListDoctorAppointments"
	ClinicService_CheckAvailability_FullMethodName      = "/clinic.v1.ClinicService/CheckAvailability"
	ClinicService_ValidateToken_FullMethodName          = "/clinic.v1.ClinicService/ValidateToken"
	ClinicService_ListDoctors_FullMethodName            = "/clinic.v1.ClinicService/ListDoctors"
	ClinicService_FilterDoctors_FullMethodName          = "/clinic.v1.ClinicService/FilterDoctors"
	ClinicService_DeleteDoctor_FullMethodName           = "/clinic.v1.ClinicService/DeleteDoctor"
	ClinicService_GetPatientProfile_FullMethodName      = "/clinic.v1.ClinicService/GetPatientProfile"
)

type ClinicServiceServer interface {
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	RegisterPatient(context.Context, *RegisterPatientRequest) (*RegisterPatientResponse, error)
	AddDoctor(context.Context, *AddDoctorRequest) (*AddDoctorResponse, error)
	BookAppointment(context.Context, *BookAppointmentRequest) (*BookAppointmentResponse, error)
	UpdateAppointment(context.Context, *UpdateAppointmentRequest) (*MessageResponse, error)
	CancelAppointment(context.Context, *AppointmentRequest) (*MessageResponse, error)
	CompleteAppointment(context.Context, *AppointmentRequest) (*MessageResponse, error)
	ListDoctorAppointments(context.Context, *ListDoctorAppointmentsRequest) (*ListDoctorAppointmentsResponse, error)
	CheckAvailability(context.Context, *CheckAvailabilityRequest) (*CheckAvailabilityResponse, error)
	ValidateToken(context.Context, *ValidateTokenRequest) (*ValidateTokenResponse, error)
	ListDoctors(context.Context, *ListDoctorsRequest) (*DoctorsResponse, error)
	FilterDoctors(context.Context, *FilterDoctorsRequest) (*DoctorsResponse, error)
	DeleteDoctor(context.Context, *DeleteDoctorRequest) (*MessageResponse, error)
	GetPatientProfile(context.Context, *PatientProfileRequest) (*Patient, error)
}

// UnimplementedClinicServiceServer answers every method with Unimplemented.
// Embed it to stay forward compatible.
type UnimplementedClinicServiceServer struct{}

func unimplemented(name string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", name)
}

func (UnimplementedClinicServiceServer) Login(context.Context, *LoginRequest) (*LoginResponse, error) {
	return nil, unimplemented("Login")
}
func (UnimplementedClinicServiceServer) RegisterPatient(context.Context, *RegisterPatientRequest) (*RegisterPatientResponse, error) {
	return nil, unimplemented("RegisterPatient")
}
func (UnimplementedClinicServiceServer) AddDoctor(context.Context, *AddDoctorRequest) (*AddDoctorResponse, error) {
	return nil, unimplemented("AddDoctor")
}
func (UnimplementedClinicServiceServer) BookAppointment(context.Context, *BookAppointmentRequest) (*BookAppointmentResponse, error) {
	return nil, unimplemented("BookAppointment")
}
func (UnimplementedClinicServiceServer) UpdateAppointment(context.Context, *UpdateAppointmentRequest) (*MessageResponse, error) {
	return nil, unimplemented("UpdateAppointment")
}
func (UnimplementedClinicServiceServer) CancelAppointment(context.Context, *AppointmentRequest) (*MessageResponse, error) {
	return nil, unimplemented("CancelAppointment")
}
func (UnimplementedClinicServiceServer) CompleteAppointment(context.Context, *AppointmentRequest) (*MessageResponse, error) {
	return nil, unimplemented("CompleteAppointment")
}
func (UnimplementedClinicServiceServer) ListDoctorAppointments(context.Context, *ListDoctorAppointmentsRequest) (*ListDoctorAppointmentsResponse, error) {
	return nil, unimplemented("ListDoctorAppointments")
}
func (UnimplementedClinicServiceServer) CheckAvailability(context.Context, *CheckAvailabilityRequest) (*CheckAvailabilityResponse, error) {
	return nil, unimplemented("CheckAvailability")
}
func (UnimplementedClinicServiceServer) ValidateToken(context.Context, *ValidateTokenRequest) (*ValidateTokenResponse, error) {
	return nil, unimplemented("ValidateToken")
}
func (UnimplementedClinicServiceServer) ListDoctors(context.Context, *ListDoctorsRequest) (*DoctorsResponse, error) {
	return nil, unimplemented("ListDoctors")
}
func (UnimplementedClinicServiceServer) FilterDoctors(context.Context, *FilterDoctorsRequest) (*DoctorsResponse, error) {
	return nil, unimplemented("FilterDoctors")
}
func (UnimplementedClinicServiceServer) DeleteDoctor(context.Context, *DeleteDoctorRequest) (*MessageResponse, error) {
	return nil, unimplemented("DeleteDoctor")
}
func (UnimplementedClinicServiceServer) GetPatientProfile(context.Context, *PatientProfileRequest) (*Patient, error) {
	return nil, unimplemented("GetPatientProfile")
}

// unary builds the method descriptor for one request/response method. The
// server decodes *Req through its codec before call runs.
func unary[Req, Resp any](name string, call func(ClinicServiceServer, context.Context, *Req) (Resp, error)) grpc.MethodDesc {
	full := "/" + ServiceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(ClinicServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: full}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(ClinicServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ClinicServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Login", ClinicServiceServer.Login),
		unary("RegisterPatient", ClinicServiceServer.RegisterPatient),
		unary("AddDoctor", ClinicServiceServer.AddDoctor),
		unary("BookAppointment", ClinicServiceServer.BookAppointment),
		unary("UpdateAppointment", ClinicServiceServer.UpdateAppointment),
		unary("CancelAppointment", ClinicServiceServer.CancelAppointment),
		unary("CompleteAppointment", ClinicServiceServer.CompleteAppointment),
		unary("ListDoctorAppointments", ClinicServiceServer.ListDoctorAppointments),
		unary("CheckAvailability", ClinicServiceServer.CheckAvailability),
		unary("ValidateToken", ClinicServiceServer.ValidateToken),
		unary("ListDoctors", ClinicServiceServer.ListDoctors),
		unary("FilterDoctors", ClinicServiceServer.FilterDoctors),
		unary("DeleteDoctor", ClinicServiceServer.DeleteDoctor),
		unary("GetPatientProfile", ClinicServiceServer.GetPatientProfile),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "clinic/v1/clinic.proto",
}

// RegisterClinicServiceServer registers srv on s. The server must be built
// with ServerOptions so requests decode into clinicpb messages.
func RegisterClinicServiceServer(s grpc.ServiceRegistrar, srv ClinicServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// ServerOptions returns the options a grpc.Server needs to serve ClinicService.
func ServerOptions() []grpc.ServerOption {
	return []grpc.ServerOption{grpc.ForceServerCodec(Codec{})}
}

// ClinicServiceClient is the client side of ClinicService.
type ClinicServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewClinicServiceClient(cc grpc.ClientConnInterface) *ClinicServiceClient {
	return &ClinicServiceClient{cc: cc}
}

func (c *ClinicServiceClient) invoke(ctx context.Context, method string, in, out Message, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.ForceCodec(Codec{})}, opts...)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}

func (c *ClinicServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	out := new(LoginResponse)
	if err := c.invoke(ctx, ClinicService_Login_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ClinicServiceClient) RegisterPatient(ctx context.Context, in *RegisterPatientRequest, opts ...grpc.CallOption) (*RegisterPatientResponse, error) {
	out := new(RegisterPatientResponse)
	if err := c.invoke(ctx, ClinicService_RegisterPatient_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ClinicServiceClient) AddDoctor(ctx context.Context, in *AddDoctorRequest, opts ...grpc.CallOption) (*AddDoctorResponse, error) {
	out := new(AddDoctorResponse)
	if err := c.invoke(ctx, ClinicService_AddDoctor_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ClinicServiceClient) BookAppointment(ctx context.Context, in *BookAppointmentRequest, opts ...grpc.CallOption) (*BookAppointmentResponse, error) {
	out := new(BookAppointmentResponse)
	if err := c.invoke(ctx, ClinicService_BookAppointment_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ClinicServiceClient) UpdateAppointment(ctx context.Context, in *UpdateAppointmentRequest, opts ...grpc.CallOption) (*MessageResponse, error) {
	out := new(MessageResponse)
	if err := c.invoke(ctx, ClinicService_UpdateAppointment_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ClinicServiceClient) CancelAppointment(ctx context.Context, in *AppointmentRequest, opts ...grpc.CallOption) (*MessageResponse, error) {
	out := new(MessageResponse)
	if err := c.invoke(ctx, ClinicService_CancelAppointment_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ClinicServiceClient) CompleteAppointment(ctx context.Context, in *AppointmentRequest, opts ...grpc.CallOption) (*MessageResponse, error) {
	out := new(MessageResponse)
	if err := c.invoke(ctx, ClinicService_CompleteAppointment_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ClinicServiceClient) ListDoctorAppointments(ctx context.Context, in *ListDoctorAppointmentsRequest, opts ...grpc.CallOption) (*ListDoctorAppointmentsResponse, error) {
	out := new(ListDoctorAppointmentsResponse)
	if err := c.invoke(ctx, ClinicService_ListDoctorAppointments_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ClinicServiceClient) CheckAvailability(ctx context.Context, in *CheckAvailabilityRequest, opts ...grpc.CallOption) (*CheckAvailabilityResponse, error) {
	out := new(CheckAvailabilityResponse)
	if err := c.invoke(ctx, ClinicService_CheckAvailability_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ClinicServiceClient) ValidateToken(ctx context.Context, in *ValidateTokenRequest, opts ...grpc.CallOption) (*ValidateTokenResponse, error) {
	out := new(ValidateTokenResponse)
	if err := c.invoke(ctx, ClinicService_ValidateToken_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ClinicServiceClient) ListDoctors(ctx context.Context, in *ListDoctorsRequest, opts ...grpc.CallOption) (*DoctorsResponse, error) {
	out := new(DoctorsResponse)
	if err := c.invoke(ctx, ClinicService_ListDoctors_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ClinicServiceClient) FilterDoctors(ctx context.Context, in *FilterDoctorsRequest, opts ...grpc.CallOption) (*DoctorsResponse, error) {
	out := new(DoctorsResponse)
	if err := c.invoke(ctx, ClinicService_FilterDoctors_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ClinicServiceClient) DeleteDoctor(ctx context.Context, in *DeleteDoctorRequest, opts ...grpc.CallOption) (*MessageResponse, error) {
	out := new(MessageResponse)
	if err := c.invoke(ctx, ClinicService_DeleteDoctor_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ClinicServiceClient) GetPatientProfile(ctx context.Context, in *PatientProfileRequest, opts ...grpc.CallOption) (*Patient, error) {
	out := new(Patient)
	if err := c.invoke(ctx, ClinicService_GetPatientProfile_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}
