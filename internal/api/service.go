package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "crossclip.v1.CrossClipService"

// FullMethod returns "/crossclip.v1.CrossClipService/<method>".
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

const (
	MethodPing         = "Ping"
	MethodSignIn       = "SignIn"
	MethodRefreshToken = "RefreshToken"
	MethodSignOut      = "SignOut"
	MethodCurrentUser  = "CurrentUser"
	MethodAddItem      = "AddItem"
	MethodListItems    = "ListItems"
	MethodDeleteItem   = "DeleteItem"
)

// CrossClipServiceServer is implemented by the server.
type CrossClipServiceServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	SignIn(context.Context, *SignInRequest) (*SignInResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error)
	SignOut(context.Context, *SignOutRequest) (*SignOutResponse, error)
	CurrentUser(context.Context, *CurrentUserRequest) (*CurrentUserResponse, error)
	AddItem(context.Context, *AddItemRequest) (*AddItemResponse, error)
	ListItems(context.Context, *ListItemsRequest) (*ListItemsResponse, error)
	DeleteItem(context.Context, *DeleteItemRequest) (*DeleteItemResponse, error)
}

// UnimplementedCrossClipServiceServer can be embedded for forward compatibility.
type UnimplementedCrossClipServiceServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedCrossClipServiceServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, unimplemented(MethodPing)
}
func (UnimplementedCrossClipServiceServer) SignIn(context.Context, *SignInRequest) (*SignInResponse, error) {
	return nil, unimplemented(MethodSignIn)
}
func (UnimplementedCrossClipServiceServer) RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error) {
	return nil, unimplemented(MethodRefreshToken)
}
func (UnimplementedCrossClipServiceServer) SignOut(context.Context, *SignOutRequest) (*SignOutResponse, error) {
	return nil, unimplemented(MethodSignOut)
}
func (UnimplementedCrossClipServiceServer) CurrentUser(context.Context, *CurrentUserRequest) (*CurrentUserResponse, error) {
	return nil, unimplemented(MethodCurrentUser)
}
func (UnimplementedCrossClipServiceServer) AddItem(context.Context, *AddItemRequest) (*AddItemResponse, error) {
	return nil, unimplemented(MethodAddItem)
}
func (UnimplementedCrossClipServiceServer) ListItems(context.Context, *ListItemsRequest) (*ListItemsResponse, error) {
	return nil, unimplemented(MethodListItems)
}
func (UnimplementedCrossClipServiceServer) DeleteItem(context.Context, *DeleteItemRequest) (*DeleteItemResponse, error) {
	return nil, unimplemented(MethodDeleteItem)
}

// unaryHandler adapts a typed server method to grpc.MethodHandler.
func unaryHandler[Req, Resp any](method string, call func(CrossClipServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CrossClipServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(CrossClipServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ServiceDesc describes CrossClipService for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CrossClipServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: MethodPing, Handler: unaryHandler(MethodPing, CrossClipServiceServer.Ping)},
		{MethodName: MethodSignIn, Handler: unaryHandler(MethodSignIn, CrossClipServiceServer.SignIn)},
		{MethodName: MethodRefreshToken, Handler: unaryHandler(MethodRefreshToken, CrossClipServiceServer.RefreshToken)},
		{MethodName: MethodSignOut, Handler: unaryHandler(MethodSignOut, CrossClipServiceServer.SignOut)},
		{MethodName: MethodCurrentUser, Handler: unaryHandler(MethodCurrentUser, CrossClipServiceServer.CurrentUser)},
		{MethodName: MethodAddItem, Handler: unaryHandler(MethodAddItem, CrossClipServiceServer.AddItem)},
		{MethodName: MethodListItems, Handler: unaryHandler(MethodListItems, CrossClipServiceServer.ListItems)},
		{MethodName: MethodDeleteItem, Handler: unaryHandler(MethodDeleteItem, CrossClipServiceServer.DeleteItem)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "crossclip/v1/service",
}

// RegisterCrossClipServiceServer registers srv on s.
func RegisterCrossClipServiceServer(s grpc.ServiceRegistrar, srv CrossClipServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// CrossClipServiceClient is the client API for CrossClipService.
type CrossClipServiceClient interface {
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	SignIn(ctx context.Context, in *SignInRequest, opts ...grpc.CallOption) (*SignInResponse, error)
	RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error)
	SignOut(ctx context.Context, in *SignOutRequest, opts ...grpc.CallOption) (*SignOutResponse, error)
	CurrentUser(ctx context.Context, in *CurrentUserRequest, opts ...grpc.CallOption) (*CurrentUserResponse, error)
	AddItem(ctx context.Context, in *AddItemRequest, opts ...grpc.CallOption) (*AddItemResponse, error)
	ListItems(ctx context.Context, in *ListItemsRequest, opts ...grpc.CallOption) (*ListItemsResponse, error)
	DeleteItem(ctx context.Context, in *DeleteItemRequest, opts ...grpc.CallOption) (*DeleteItemResponse, error)
}

type crossClipServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewCrossClipServiceClient(cc grpc.ClientConnInterface) CrossClipServiceClient {
	return &crossClipServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *crossClipServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts)
}

func (c *crossClipServiceClient) SignIn(ctx context.Context, in *SignInRequest, opts ...grpc.CallOption) (*SignInResponse, error) {
	return invoke[SignInResponse](ctx, c.cc, MethodSignIn, in, opts)
}

func (c *crossClipServiceClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error) {
	return invoke[RefreshTokenResponse](ctx, c.cc, MethodRefreshToken, in, opts)
}

func (c *crossClipServiceClient) SignOut(ctx context.Context, in *SignOutRequest, opts ...grpc.CallOption) (*SignOutResponse, error) {
	return invoke[SignOutResponse](ctx, c.cc, MethodSignOut, in, opts)
}

func (c *crossClipServiceClient) CurrentUser(ctx context.Context, in *CurrentUserRequest, opts ...grpc.CallOption) (*CurrentUserResponse, error) {
	return invoke[CurrentUserResponse](ctx, c.cc, MethodCurrentUser, in, opts)
}

func (c *crossClipServiceClient) AddItem(ctx context.Context, in *AddItemRequest, opts ...grpc.CallOption) (*AddItemResponse, error) {
	return invoke[AddItemResponse](ctx, c.cc, MethodAddItem, in, opts)
}

func (c *crossClipServiceClient) ListItems(ctx context.Context, in *ListItemsRequest, opts ...grpc.CallOption) (*ListItemsResponse, error) {
	return invoke[ListItemsResponse](ctx, c.cc, MethodListItems, in, opts)
}

func (c *crossClipServiceClient) DeleteItem(ctx context.Context, in *DeleteItemRequest, opts ...grpc.CallOption) (*DeleteItemResponse, error) {
	return invoke[DeleteItemResponse](ctx, c.cc, MethodDeleteItem, in, opts)
}
