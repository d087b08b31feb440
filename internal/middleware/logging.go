package middleware

import (
	"context"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

// RequestIDHeader carries the request id in metadata and HTTP headers.
const RequestIDHeader = "x-request-id"

// peerHost is the remote host of the call without its port.
func peerHost(ctx context.Context) string {
	p, ok := peer.FromContext(ctx)
	if !ok || p.Addr == nil {
		return "unknown"
	}
	host, _, err := net.SplitHostPort(p.Addr.String())
	if err != nil {
		return p.Addr.String()
	}
	return host
}

func requestID(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if vals := md.Get(RequestIDHeader); len(vals) > 0 && vals[0] != "" {
			return vals[0]
		}
	}
	return uuid.NewString()
}

// Logging writes one line per call and attaches a request-scoped logger to
// the context, retrievable with zerolog.Ctx.
func Logging(log zerolog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		start := time.Now()
		id := requestID(ctx)
		_ = grpc.SetHeader(ctx, metadata.Pairs(RequestIDHeader, id))

		l := log.With().Str("request_id", id).Logger()
		resp, err := next(l.WithContext(ctx), req)

		code := status.Code(err)
		ev := l.Info()
		if err != nil {
			ev = l.Warn()
		}
		ev.Str("method", info.FullMethod).
			Str("code", code.String()).
			Str("peer", peerHost(ctx)).
			Dur("latency", time.Since(start)).
			Msg("grpc request")
		return resp, err
	}
}
