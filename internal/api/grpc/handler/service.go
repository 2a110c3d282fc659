package handler

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "texcode.accounts.v1.Accounts"

// Full method names.
const (
	MethodAuthenticate       = "/" + ServiceName + "/Authenticate"
	MethodRegister           = "/" + ServiceName + "/Register"
	MethodForgotPassword     = "/" + ServiceName + "/ForgotPassword"
	MethodVerifyEmail        = "/" + ServiceName + "/VerifyEmail"
	MethodValidateResetToken = "/" + ServiceName + "/ValidateResetToken"
	MethodGetAccount         = "/" + ServiceName + "/GetAccount"
	MethodUpdateAccount      = "/" + ServiceName + "/UpdateAccount"
	MethodDeleteAccount      = "/" + ServiceName + "/DeleteAccount"
	MethodListPrincipals     = "/" + ServiceName + "/ListPrincipals"
	MethodGetPrincipal       = "/" + ServiceName + "/GetPrincipal"
)

// PublicMethods can be called without a session token.
var PublicMethods = map[string]bool{
	MethodAuthenticate:       true,
	MethodRegister:           true,
	MethodForgotPassword:     true,
	MethodVerifyEmail:        true,
	MethodValidateResetToken: true,
}

// AccountsServer is the server API of the Accounts service.
type AccountsServer interface {
	Authenticate(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Register(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	ForgotPassword(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	VerifyEmail(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	ValidateResetToken(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	GetAccount(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateAccount(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteAccount(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	ListPrincipals(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	GetPrincipal(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

func unaryMethod[Req any, PReq interface {
	*Req
	proto.Message
}](name string, call func(AccountsServer, context.Context, PReq) (proto.Message, error)) grpc.MethodDesc {
	fullMethod := "/" + ServiceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := PReq(new(Req))
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(AccountsServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(AccountsServer), ctx, req.(PReq))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc describes the Accounts service for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AccountsServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod("Authenticate", func(s AccountsServer, ctx context.Context, in *structpb.Struct) (proto.Message, error) {
			return s.Authenticate(ctx, in)
		}),
		unaryMethod("Register", func(s AccountsServer, ctx context.Context, in *structpb.Struct) (proto.Message, error) {
			return s.Register(ctx, in)
		}),
		unaryMethod("ForgotPassword", func(s AccountsServer, ctx context.Context, in *structpb.Struct) (proto.Message, error) {
			return s.ForgotPassword(ctx, in)
		}),
		unaryMethod("VerifyEmail", func(s AccountsServer, ctx context.Context, in *structpb.Struct) (proto.Message, error) {
			return s.VerifyEmail(ctx, in)
		}),
		unaryMethod("ValidateResetToken", func(s AccountsServer, ctx context.Context, in *structpb.Struct) (proto.Message, error) {
			return s.ValidateResetToken(ctx, in)
		}),
		unaryMethod("GetAccount", func(s AccountsServer, ctx context.Context, in *structpb.Struct) (proto.Message, error) {
			return s.GetAccount(ctx, in)
		}),
		unaryMethod("UpdateAccount", func(s AccountsServer, ctx context.Context, in *structpb.Struct) (proto.Message, error) {
			return s.UpdateAccount(ctx, in)
		}),
		unaryMethod("DeleteAccount", func(s AccountsServer, ctx context.Context, in *structpb.Struct) (proto.Message, error) {
			return s.DeleteAccount(ctx, in)
		}),
		unaryMethod("ListPrincipals", func(s AccountsServer, ctx context.Context, in *emptypb.Empty) (proto.Message, error) {
			return s.ListPrincipals(ctx, in)
		}),
		unaryMethod("GetPrincipal", func(s AccountsServer, ctx context.Context, in *structpb.Struct) (proto.Message, error) {
			return s.GetPrincipal(ctx, in)
		}),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "texcode/accounts/v1/accounts",
}

// RegisterAccountsServer registers srv on s.
func RegisterAccountsServer(s grpc.ServiceRegistrar, srv AccountsServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// AccountsClient calls the Accounts service.
type AccountsClient struct {
	cc grpc.ClientConnInterface
}

// NewAccountsClient creates a client over cc.
func NewAccountsClient(cc grpc.ClientConnInterface) *AccountsClient {
	return &AccountsClient{cc: cc}
}

func invoke[Resp any, PResp interface {
	*Resp
	proto.Message
}](ctx context.Context, cc grpc.ClientConnInterface, method string, in proto.Message, opts ...grpc.CallOption) (PResp, error) {
	out := PResp(new(Resp))
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AccountsClient) Authenticate(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, MethodAuthenticate, in, opts...)
}

func (c *AccountsClient) Register(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, MethodRegister, in, opts...)
}

func (c *AccountsClient) ForgotPassword(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, MethodForgotPassword, in, opts...)
}

func (c *AccountsClient) VerifyEmail(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, MethodVerifyEmail, in, opts...)
}

func (c *AccountsClient) ValidateResetToken(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, MethodValidateResetToken, in, opts...)
}

func (c *AccountsClient) GetAccount(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, MethodGetAccount, in, opts...)
}

func (c *AccountsClient) UpdateAccount(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, MethodUpdateAccount, in, opts...)
}

func (c *AccountsClient) DeleteAccount(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, MethodDeleteAccount, in, opts...)
}

func (c *AccountsClient) ListPrincipals(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, MethodListPrincipals, in, opts...)
}

func (c *AccountsClient) GetPrincipal(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, MethodGetPrincipal, in, opts...)
}
