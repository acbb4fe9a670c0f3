// Package client talks to the gophauth gRPC service.
//
// GRPCClient keeps the access token returned by Register and Login in memory
// and attaches it to every later call as "authorization: Bearer <token>"
// through a unary client interceptor. gRPC status codes are mapped back to
// the sentinel errors in errors.go so callers can match them with errors.Is.
package client
