package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/balloonsight/balloonsight/internal/config"
	"github.com/balloonsight/balloonsight/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the analyzer HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromEnv()
		if serveAddr != "" {
			cfg.ListenAddr = serveAddr
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		f, a := buildAnalyzer(cfg)
		defer f.Close()

		srv := server.New(cfg, f, a)
		log.Printf("listening on %s", cfg.ListenAddr)
		return srv.ListenAndServe(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides BALLOONSIGHT_ADDR)")
	rootCmd.AddCommand(serveCmd)
}
