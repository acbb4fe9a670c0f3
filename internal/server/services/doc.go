// Package services contains server-side business logic. UserService
// handles registration, login and profile reads, orchestrating the
// password hasher, the token issuer and the user repository.
//
// Every error returned from this package is (or wraps) one of the outward
// kinds in package common. Store, hashing and signing failures are logged
// here and reported as common.ErrorInternal.
package services
