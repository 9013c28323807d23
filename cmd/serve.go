/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/valpere/urduproxy/internal/config"
	"github.com/valpere/urduproxy/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP translation endpoint",
	Long: `Start the HTTP server.

Routes:
  POST /api/translate   {"text": "..."} -> {"translation": "..."}
  GET  /health          liveness probe

Set --db (or URDUPROXY_DB) to record every provider call in a SQLite history.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load(v)

		log, err := newLogger(cfg.LogLevel)
		if err != nil {
			return err
		}
		defer log.Sync()

		h, closeFn, err := buildHandler(cfg, log)
		if err != nil {
			return err
		}
		defer closeFn()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srv := server.New(cfg.Addr, server.NewRouter(h, log), cfg.ShutdownTimeout, log)
		return srv.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":3000", "Listen address")
	serveCmd.Flags().String("db", "", "SQLite database for translation history (disabled when empty)")
	serveCmd.Flags().Duration("timeout", 0, "Outbound request timeout (default 30s)")

	v.BindPFlag(config.KeyAddr, serveCmd.Flags().Lookup("addr"))
	v.BindPFlag(config.KeyDB, serveCmd.Flags().Lookup("db"))
	v.BindPFlag(config.KeyTimeout, serveCmd.Flags().Lookup("timeout"))
}
