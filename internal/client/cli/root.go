package cli

import (
	"context"
)

// Root prints a greeting and runs the REPL on the App's stdin reader.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to gophauth CLI (type 'help' for commands)")

	if err := a.client.Ping(ctx); err != nil {
		printlnFn("Warning: server", a.config.ServerEndpointAddr, "is not reachable:", err)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}
