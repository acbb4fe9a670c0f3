// Package api is the wire contract of the gophauth.v1.AuthService gRPC
// service: request and response messages, the JSON codec they travel in,
// the service descriptor and a typed client.
//
// Messages are plain structs encoded with encoding/json under the gRPC
// content-subtype "json" (application/grpc+json). Request structs carry
// validate tags checked by Validate before any business logic runs.
package api
