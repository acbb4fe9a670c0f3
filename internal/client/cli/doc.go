// Package cli provides the interactive gophauth command-line client.
//
// It wires configuration and the gRPC client into a small REPL:
//
//	register      create an account (logs in on success)
//	login         authenticate with email and password
//	me            show the logged-in profile
//	lookup <id>   show another user's profile (TEACHER only)
//	ping          check that the server is reachable
//	logout        forget the access token
//	exit | quit   leave the program
//
// The REPL is started via App.Run, which blocks until the user exits or
// stdin is closed.
package cli
