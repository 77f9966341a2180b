package rpc

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified control service name on the wire.
const ServiceName = "strmctl.v1.Control"

// ControlServer is implemented by the daemon's control service.
type ControlServer interface {
	Invoke(ctx context.Context, req *InvokeRequest) (*InvokeResponse, error)
	Status(ctx context.Context, req *StatusRequest) (*StatusResponse, error)
	ListEvents(ctx context.Context, req *EventsRequest) (*EventsResponse, error)
}

// RegisterControlServer attaches srv to a gRPC server under ServiceName.
func RegisterControlServer(s *grpc.Server, srv ControlServer) {
	s.RegisterService(&controlServiceDesc, srv)
}

func invokeHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(InvokeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ControlServer).Invoke(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + ServiceName + "/Invoke",
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ControlServer).Invoke(ctx, req.(*InvokeRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func statusHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(StatusRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ControlServer).Status(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + ServiceName + "/Status",
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ControlServer).Status(ctx, req.(*StatusRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func listEventsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(EventsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ControlServer).ListEvents(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + ServiceName + "/ListEvents",
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ControlServer).ListEvents(ctx, req.(*EventsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var controlServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ControlServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Invoke", Handler: invokeHandler},
		{MethodName: "Status", Handler: statusHandler},
		{MethodName: "ListEvents", Handler: listEventsHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "strmctl/v1/control",
}

// ControlClient is the client side of the control service.
type ControlClient interface {
	Invoke(ctx context.Context, req *InvokeRequest, opts ...grpc.CallOption) (*InvokeResponse, error)
	Status(ctx context.Context, req *StatusRequest, opts ...grpc.CallOption) (*StatusResponse, error)
	ListEvents(ctx context.Context, req *EventsRequest, opts ...grpc.CallOption) (*EventsResponse, error)
}

type controlClient struct {
	cc grpc.ClientConnInterface
}

// NewControlClient wraps a client connection with typed control calls.
func NewControlClient(cc grpc.ClientConnInterface) ControlClient {
	return &controlClient{cc: cc}
}

func (c *controlClient) call(ctx context.Context, method string, req, resp any, opts []grpc.CallOption) error {
	all := make([]grpc.CallOption, 0, len(opts)+1)
	all = append(all, grpc.CallContentSubtype(CodecName))
	all = append(all, opts...)
	return c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, req, resp, all...)
}

func (c *controlClient) Invoke(ctx context.Context, req *InvokeRequest, opts ...grpc.CallOption) (*InvokeResponse, error) {
	resp := new(InvokeResponse)
	if err := c.call(ctx, "Invoke", req, resp, opts); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *controlClient) Status(ctx context.Context, req *StatusRequest, opts ...grpc.CallOption) (*StatusResponse, error) {
	resp := new(StatusResponse)
	if err := c.call(ctx, "Status", req, resp, opts); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *controlClient) ListEvents(ctx context.Context, req *EventsRequest, opts ...grpc.CallOption) (*EventsResponse, error) {
	resp := new(EventsResponse)
	if err := c.call(ctx, "ListEvents", req, resp, opts); err != nil {
		return nil, err
	}
	return resp, nil
}
