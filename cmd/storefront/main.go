// Command storefront drives the storefront state engine from a terminal:
// browse the catalog, edit the cart and wishlist, and place orders against
// the same storage backend the HTTP server uses.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
