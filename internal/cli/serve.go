package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/teetime-scanner/internal/server"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := root.build(ctx, cmd.OutOrStdout(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer a.close()

			if addr == "" {
				addr = root.cfg.Addr
			}
			return server.New(a.scans, a.store, a.metrics, a.log).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default $ADDR or :8080)")
	return cmd
}
