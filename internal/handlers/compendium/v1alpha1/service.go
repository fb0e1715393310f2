package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified catalog service name
const ServiceName = "steelcompendium.catalog.v1alpha1.CatalogService"

// Full method names
const (
	CatalogServiceGetAbilityFullMethodName    = "/" + ServiceName + "/GetAbility"
	CatalogServiceListAbilitiesFullMethodName = "/" + ServiceName + "/ListAbilities"
	CatalogServiceGetFeatureFullMethodName    = "/" + ServiceName + "/GetFeature"
	CatalogServiceRollAbilityFullMethodName   = "/" + ServiceName + "/RollAbility"
)

// CatalogServiceServer is the server API for the catalog service. Records
// travel as google.protobuf.Struct in their JSON shape.
type CatalogServiceServer interface {
	GetAbility(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	ListAbilities(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetFeature(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	RollAbility(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterCatalogServiceServer registers srv on s
func RegisterCatalogServiceServer(s grpc.ServiceRegistrar, srv CatalogServiceServer) {
	s.RegisterService(&CatalogServiceDesc, srv)
}

// CatalogServiceDesc is the grpc.ServiceDesc for the catalog service
var CatalogServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CatalogServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetAbility", Handler: getAbilityHandler},
		{MethodName: "ListAbilities", Handler: listAbilitiesHandler},
		{MethodName: "GetFeature", Handler: getFeatureHandler},
		{MethodName: "RollAbility", Handler: rollAbilityHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "steelcompendium/catalog/v1alpha1/catalog.proto",
}

func getAbilityHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogServiceServer).GetAbility(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: CatalogServiceGetAbilityFullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CatalogServiceServer).GetAbility(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func listAbilitiesHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogServiceServer).ListAbilities(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: CatalogServiceListAbilitiesFullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CatalogServiceServer).ListAbilities(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func getFeatureHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogServiceServer).GetFeature(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: CatalogServiceGetFeatureFullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CatalogServiceServer).GetFeature(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func rollAbilityHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogServiceServer).RollAbility(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: CatalogServiceRollAbilityFullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CatalogServiceServer).RollAbility(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// CatalogServiceClient is the client API for the catalog service
type CatalogServiceClient interface {
	GetAbility(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListAbilities(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetFeature(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	RollAbility(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type catalogServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewCatalogServiceClient creates a catalog client over cc
func NewCatalogServiceClient(cc grpc.ClientConnInterface) CatalogServiceClient {
	return &catalogServiceClient{cc: cc}
}

func (c *catalogServiceClient) GetAbility(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, CatalogServiceGetAbilityFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *catalogServiceClient) ListAbilities(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, CatalogServiceListAbilitiesFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *catalogServiceClient) GetFeature(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, CatalogServiceGetFeatureFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *catalogServiceClient) RollAbility(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, CatalogServiceRollAbilityFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
