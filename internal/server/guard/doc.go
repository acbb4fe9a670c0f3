// Package guard decides, per request, whether a caller may run an
// operation.
//
// A request moves through Unauthenticated, Authenticated and Authorized.
// Authenticate verifies the bearer token and attaches a Principal to the
// context; Authorize checks that Principal's role against the operation's
// Policy. Check runs both in order and is what transports should call.
package guard
