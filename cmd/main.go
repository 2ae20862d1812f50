package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var port string

	run := func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context(), port)
	}

	root := &cobra.Command{
		Use:   "scenecast",
		Short: "Broadcast tabletop scenes and ambient audio to viewer screens",
		Long: `scenecast keeps one authoritative scene (background and character portraits,
or a full-screen video) and one audio mix, and pushes every change to all
connected viewer and admin pages over a websocket.

Run without a subcommand to start the server.`,
		SilenceUsage: true,
		RunE:         run,
	}
	root.PersistentFlags().StringVarP(&port, "port", "p", "", "port to listen on (overrides PORT)")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP and websocket server",
		RunE:  run,
	})
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
