package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"simple-kv/httpapi"
	"simple-kv/kvstore"
	"simple-kv/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var clientListenURL, logLevel string

	cmd := &cobra.Command{
		Use:          "simple-kv",
		Short:        "Serve an in-memory key value store over HTTP",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := logger.New(logLevel)
			if err != nil {
				return err
			}
			logger.Log = log

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			apiServer := httpapi.NewApiServer(kvstore.NewKeyValueStore(), log)
			return apiServer.ListenAndServe(ctx, clientListenURL)
		},
	}

	cmd.Flags().StringVar(&clientListenURL, "listen-client-urls", "http://localhost:2379", "client listen URL")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	return cmd
}
