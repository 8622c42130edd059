package pb

import (
	context "context"

	grpc "google.golang.org/grpc"
	codes "google.golang.org/grpc/codes"
	status "google.golang.org/grpc/status"
)

// OrderGatewayClient is the client API for the OrderGateway service.
type OrderGatewayClient interface {
	SubmitOrder(ctx context.Context, in *SubmitOrderRequest, opts ...grpc.CallOption) (*SubmitOrderResponse, error)
	GetTopOfBook(ctx context.Context, in *TopOfBookRequest, opts ...grpc.CallOption) (*TopOfBookResponse, error)
	GetSnapshot(ctx context.Context, in *SnapshotRequest, opts ...grpc.CallOption) (*SnapshotResponse, error)
}

type orderGatewayClient struct {
	cc grpc.ClientConnInterface
}

func NewOrderGatewayClient(cc grpc.ClientConnInterface) OrderGatewayClient {
	return &orderGatewayClient{cc}
}

func (c *orderGatewayClient) SubmitOrder(ctx context.Context, in *SubmitOrderRequest, opts ...grpc.CallOption) (*SubmitOrderResponse, error) {
	out := new(SubmitOrderResponse)
	err := c.cc.Invoke(ctx, "/onymos.engine.v1.OrderGateway/SubmitOrder", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *orderGatewayClient) GetTopOfBook(ctx context.Context, in *TopOfBookRequest, opts ...grpc.CallOption) (*TopOfBookResponse, error) {
	out := new(TopOfBookResponse)
	err := c.cc.Invoke(ctx, "/onymos.engine.v1.OrderGateway/GetTopOfBook", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *orderGatewayClient) GetSnapshot(ctx context.Context, in *SnapshotRequest, opts ...grpc.CallOption) (*SnapshotResponse, error) {
	out := new(SnapshotResponse)
	err := c.cc.Invoke(ctx, "/onymos.engine.v1.OrderGateway/GetSnapshot", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// OrderGatewayServer is the server API for the OrderGateway service.
type OrderGatewayServer interface {
	SubmitOrder(context.Context, *SubmitOrderRequest) (*SubmitOrderResponse, error)
	GetTopOfBook(context.Context, *TopOfBookRequest) (*TopOfBookResponse, error)
	GetSnapshot(context.Context, *SnapshotRequest) (*SnapshotResponse, error)
}

// UnimplementedOrderGatewayServer can be embedded for forward
// compatibility.
type UnimplementedOrderGatewayServer struct{}

func (UnimplementedOrderGatewayServer) SubmitOrder(context.Context, *SubmitOrderRequest) (*SubmitOrderResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SubmitOrder not implemented")
}

func (UnimplementedOrderGatewayServer) GetTopOfBook(context.Context, *TopOfBookRequest) (*TopOfBookResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetTopOfBook not implemented")
}

func (UnimplementedOrderGatewayServer) GetSnapshot(context.Context, *SnapshotRequest) (*SnapshotResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetSnapshot not implemented")
}

func RegisterOrderGatewayServer(s grpc.ServiceRegistrar, srv OrderGatewayServer) {
	s.RegisterService(&_OrderGateway_serviceDesc, srv)
}

func _OrderGateway_SubmitOrder_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(SubmitOrderRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OrderGatewayServer).SubmitOrder(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/onymos.engine.v1.OrderGateway/SubmitOrder",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(OrderGatewayServer).SubmitOrder(ctx, req.(*SubmitOrderRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _OrderGateway_GetTopOfBook_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(TopOfBookRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OrderGatewayServer).GetTopOfBook(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/onymos.engine.v1.OrderGateway/GetTopOfBook",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(OrderGatewayServer).GetTopOfBook(ctx, req.(*TopOfBookRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _OrderGateway_GetSnapshot_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(SnapshotRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OrderGatewayServer).GetSnapshot(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/onymos.engine.v1.OrderGateway/GetSnapshot",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(OrderGatewayServer).GetSnapshot(ctx, req.(*SnapshotRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var _OrderGateway_serviceDesc = grpc.ServiceDesc{
	ServiceName: "onymos.engine.v1.OrderGateway",
	HandlerType: (*OrderGatewayServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "SubmitOrder",
			Handler:    _OrderGateway_SubmitOrder_Handler,
		},
		{
			MethodName: "GetTopOfBook",
			Handler:    _OrderGateway_GetTopOfBook_Handler,
		},
		{
			MethodName: "GetSnapshot",
			Handler:    _OrderGateway_GetSnapshot_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "api/pb/engine.proto",
}
