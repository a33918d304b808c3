package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/algebrix/algebrix/internal/metrics"
	"github.com/algebrix/algebrix/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the tutor over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		m := metrics.New()
		d, err := buildDeps(cmd, true, m)
		if err != nil {
			return err
		}
		defer d.close()

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = d.cfg.Server.Addr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := server.New(d.tutor, m, d.logger, d.cfg.Server.Mode)
		return srv.Run(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}
