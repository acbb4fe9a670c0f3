// Package auth holds the credential primitives of the server: Argon2id
// password hashing (Argon2Hasher) and HS256 access tokens (TokenIssuer).
//
// Both are safe for concurrent use. Their configuration is fixed at
// construction and never mutated afterwards.
package auth
