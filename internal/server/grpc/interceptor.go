package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/guard"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const requestIDHeader = "x-request-id"

func firstMetadata(ctx context.Context, key string) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(key); len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

// loggingInterceptor tags the call with a request id (the caller's, if it
// sent a valid UUID) and logs method, status code and latency. Request
// bodies are never logged.
func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	requestID := firstMetadata(ctx, requestIDHeader)
	if _, err := uuid.Parse(requestID); err != nil {
		requestID = uuid.NewString()
	}
	_ = grpc.SetHeader(ctx, metadata.Pairs(requestIDHeader, requestID))

	start := time.Now()
	resp, err := handler(ctx, req)
	code := status.Code(err)

	log := s.logger.With("request_id", requestID, "method", info.FullMethod)
	if code == codes.Internal || code == codes.Unknown {
		log.Error(ctx, "rpc failed", "code", code.String(), "duration", time.Since(start))
	} else {
		log.Info(ctx, "rpc", "code", code.String(), "duration", time.Since(start))
	}

	return resp, err
}

// guardInterceptor runs the access guard with the method's policy and the
// bearer token from the authorization metadata.
func (s *GRPCServer) guardInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	token := guard.ParseBearer(firstMetadata(ctx, common.AuthorizationHeaderName))

	ctx, err := s.guard.Check(ctx, token, policyFor(info.FullMethod))
	if err != nil {
		s.logger.Warn(ctx, "access denied", "method", info.FullMethod, "error", err)
		return nil, toStatus(err)
	}

	return handler(ctx, req)
}
