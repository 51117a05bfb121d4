package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Messages are protobuf well known types, so service is declared by hand:
//
//	service Contributors {
//	  rpc OrgContributors(google.protobuf.StringValue) returns (google.protobuf.ListValue);
//	}
const (
	serviceName             = "orgcontributors.Contributors"
	orgContributorsMethod   = "OrgContributors"
	orgContributorsFullName = "/" + serviceName + "/" + orgContributorsMethod
)

// ContributorsServer is the server API for Contributors service.
type ContributorsServer interface {
	OrgContributors(context.Context, *wrapperspb.StringValue) (*structpb.ListValue, error)
}

// RegisterContributorsServer registers ContributorsServer implementation in grpc server.
func RegisterContributorsServer(s grpc.ServiceRegistrar, srv ContributorsServer) {
	s.RegisterService(&contributorsServiceDesc, srv)
}

var contributorsServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*ContributorsServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: orgContributorsMethod,
			Handler:    orgContributorsHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "orgcontributors.proto",
}

func orgContributorsHandler(
	srv interface{},
	ctx context.Context,
	dec func(interface{}) error,
	interceptor grpc.UnaryServerInterceptor,
) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ContributorsServer).OrgContributors(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: orgContributorsFullName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ContributorsServer).OrgContributors(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}
