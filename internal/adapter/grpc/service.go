package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "tradejournal.v1.TradeJournalService"

const (
	MethodRecordTrade  = "/" + ServiceName + "/RecordTrade"
	MethodListTrades   = "/" + ServiceName + "/ListTrades"
	MethodGetTrade     = "/" + ServiceName + "/GetTrade"
	MethodUpdateTrade  = "/" + ServiceName + "/UpdateTrade"
	MethodDeleteTrade  = "/" + ServiceName + "/DeleteTrade"
	MethodGetAnalytics = "/" + ServiceName + "/GetAnalytics"

	MethodCreateEntry = "/" + ServiceName + "/CreateEntry"
	MethodListEntries = "/" + ServiceName + "/ListEntries"
	MethodGetEntry    = "/" + ServiceName + "/GetEntry"
	MethodUpdateEntry = "/" + ServiceName + "/UpdateEntry"
	MethodDeleteEntry = "/" + ServiceName + "/DeleteEntry"
)

// TradeJournalServiceServer is the server API of the trade journal.
// Requests and responses are google.protobuf.Struct messages.
type TradeJournalServiceServer interface {
	RecordTrade(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListTrades(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetTrade(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateTrade(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteTrade(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetAnalytics(context.Context, *structpb.Struct) (*structpb.Struct, error)

	CreateEntry(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListEntries(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetEntry(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateEntry(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteEntry(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(srv TradeJournalServiceServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)

// unaryHandler adapts a server method to grpc.MethodHandler, running the interceptor chain if present
func unaryHandler(fullMethod string, call unaryCall) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(TradeJournalServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(TradeJournalServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// TradeJournalServiceDesc describes the service for grpc.Server.RegisterService
var TradeJournalServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TradeJournalServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "RecordTrade",
			Handler: unaryHandler(MethodRecordTrade, func(srv TradeJournalServiceServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
				return srv.RecordTrade(ctx, req)
			}),
		},
		{
			MethodName: "ListTrades",
			Handler: unaryHandler(MethodListTrades, func(srv TradeJournalServiceServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
				return srv.ListTrades(ctx, req)
			}),
		},
		{
			MethodName: "GetTrade",
			Handler: unaryHandler(MethodGetTrade, func(srv TradeJournalServiceServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
				return srv.GetTrade(ctx, req)
			}),
		},
		{
			MethodName: "UpdateTrade",
			Handler: unaryHandler(MethodUpdateTrade, func(srv TradeJournalServiceServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
				return srv.UpdateTrade(ctx, req)
			}),
		},
		{
			MethodName: "DeleteTrade",
			Handler: unaryHandler(MethodDeleteTrade, func(srv TradeJournalServiceServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
				return srv.DeleteTrade(ctx, req)
			}),
		},
		{
			MethodName: "GetAnalytics",
			Handler: unaryHandler(MethodGetAnalytics, func(srv TradeJournalServiceServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
				return srv.GetAnalytics(ctx, req)
			}),
		},
		{
			MethodName: "CreateEntry",
			Handler: unaryHandler(MethodCreateEntry, func(srv TradeJournalServiceServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
				return srv.CreateEntry(ctx, req)
			}),
		},
		{
			MethodName: "ListEntries",
			Handler: unaryHandler(MethodListEntries, func(srv TradeJournalServiceServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
				return srv.ListEntries(ctx, req)
			}),
		},
		{
			MethodName: "GetEntry",
			Handler: unaryHandler(MethodGetEntry, func(srv TradeJournalServiceServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
				return srv.GetEntry(ctx, req)
			}),
		},
		{
			MethodName: "UpdateEntry",
			Handler: unaryHandler(MethodUpdateEntry, func(srv TradeJournalServiceServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
				return srv.UpdateEntry(ctx, req)
			}),
		},
		{
			MethodName: "DeleteEntry",
			Handler: unaryHandler(MethodDeleteEntry, func(srv TradeJournalServiceServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
				return srv.DeleteEntry(ctx, req)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "tradejournal/v1/service.proto",
}

// RegisterTradeJournalServiceServer registers srv on s
func RegisterTradeJournalServiceServer(s grpc.ServiceRegistrar, srv TradeJournalServiceServer) {
	s.RegisterService(&TradeJournalServiceDesc, srv)
}

// Client calls the trade journal service over an existing connection
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient creates a new Client
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) RecordTrade(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodRecordTrade, in, opts...)
}

func (c *Client) ListTrades(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodListTrades, in, opts...)
}

func (c *Client) GetTrade(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodGetTrade, in, opts...)
}

func (c *Client) UpdateTrade(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodUpdateTrade, in, opts...)
}

func (c *Client) DeleteTrade(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodDeleteTrade, in, opts...)
}

func (c *Client) GetAnalytics(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodGetAnalytics, in, opts...)
}

func (c *Client) CreateEntry(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodCreateEntry, in, opts...)
}

func (c *Client) ListEntries(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodListEntries, in, opts...)
}

func (c *Client) GetEntry(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodGetEntry, in, opts...)
}

func (c *Client) UpdateEntry(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodUpdateEntry, in, opts...)
}

func (c *Client) DeleteEntry(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodDeleteEntry, in, opts...)
}
