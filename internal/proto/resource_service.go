// Package proto holds the gRPC service descriptor for vaultkeeper.v1.ResourceService.
//
// Payloads are google.protobuf.Struct so one method can accept both the
// canonical and the legacy request shape. The descriptor below has the same
// layout protoc-gen-go-grpc produces for:
//
//	service ResourceService {
//	  rpc AddResource(google.protobuf.Struct) returns (google.protobuf.Struct);
//	}
package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ResourceServiceName                        = "vaultkeeper.v1.ResourceService"
	ResourceService_AddResource_FullMethodName = "/vaultkeeper.v1.ResourceService/AddResource"
)

// ResourceServiceClient is the client API for ResourceService.
type ResourceServiceClient interface {
	AddResource(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type resourceServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewResourceServiceClient(cc grpc.ClientConnInterface) ResourceServiceClient {
	return &resourceServiceClient{cc}
}

func (c *resourceServiceClient) AddResource(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, ResourceService_AddResource_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// ResourceServiceServer is the server API for ResourceService.
type ResourceServiceServer interface {
	AddResource(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

func RegisterResourceServiceServer(s grpc.ServiceRegistrar, srv ResourceServiceServer) {
	s.RegisterService(&ResourceService_ServiceDesc, srv)
}

func _ResourceService_AddResource_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ResourceServiceServer).AddResource(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ResourceService_AddResource_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ResourceServiceServer).AddResource(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// ResourceService_ServiceDesc is the grpc.ServiceDesc for ResourceService.
var ResourceService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ResourceServiceName,
	HandlerType: (*ResourceServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "AddResource",
			Handler:    _ResourceService_AddResource_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "vaultkeeper/v1/resource_service.proto",
}
