package grpc

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"github.com/simaogato/tradejournal-backend/internal/auth"
	"github.com/simaogato/tradejournal-backend/internal/domain"
)

// TokenAuthenticator resolves a bearer token to the user it was issued for
type TokenAuthenticator interface {
	Authenticate(token string) (uuid.UUID, error)
}

// RejectFunc is notified of every rejected call, e.g. to write an audit event
type RejectFunc func(ctx context.Context, reason string, client domain.ClientInfo)

// AuthInterceptor returns a gRPC unary server interceptor that validates
// the authorization token from request metadata.
// The token may be sent bare or as "Bearer <token>".
// If the token is missing or invalid, it returns status.Unauthenticated and calls onReject.
// If valid, it calls the handler with the user id stored in the context.
func AuthInterceptor(authenticator TokenAuthenticator, onReject RejectFunc) grpc.UnaryServerInterceptor {
	reject := func(ctx context.Context, reason string) error {
		if onReject != nil {
			onReject(ctx, reason, clientInfo(ctx))
		}
		return status.Error(codes.Unauthenticated, reason)
	}

	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, reject(ctx, "missing metadata")
		}

		authHeaders := md.Get("authorization")
		if len(authHeaders) == 0 {
			return nil, reject(ctx, "missing authorization header")
		}

		userID, err := authenticator.Authenticate(auth.BearerToken(authHeaders[0]))
		if err != nil {
			return nil, reject(ctx, "invalid token")
		}

		return handler(auth.WithUserID(ctx, userID), req)
	}
}

// clientInfo describes the caller from the peer address and user-agent metadata
func clientInfo(ctx context.Context) domain.ClientInfo {
	var client domain.ClientInfo
	if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
		client.IPAddress = p.Addr.String()
	}
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if ua := md.Get("user-agent"); len(ua) > 0 {
			client.UserAgent = ua[0]
		}
	}
	return client
}
