// Command fakeprovider runs a local stand-in for the credit provider gateway
// for manual testing of the zmxy tool.
//
// Usage: go run ./cmd/fakeprovider --keys-dir ./keys
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:          "fakeprovider",
		Short:        "Run a fake credit provider gateway",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntVar(&opts.port, "port", 8088, "port to listen on")
	cmd.Flags().StringVar(&opts.mode, "mode", "encrypted", "response mode: encrypted, hybrid, plain, plain-signed, tampered")
	cmd.Flags().StringVar(&opts.keysDir, "keys-dir", "keys", "directory the key files are written to")
	cmd.Flags().StringArrayVar(&opts.responses, "respond", nil, "canned business result as method=json (repeatable)")
	cmd.Flags().BoolVar(&opts.verbose, "verbose", false, "log every request at debug level")
	return cmd
}
