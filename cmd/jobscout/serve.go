package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"jobscout/internal/config"
	"jobscout/internal/server"
)

var serveFlags struct {
	configPath string
	port       int
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP tool server",
	Long:  "Expose the aggregator over HTTP. POST /scrape takes the same parameters as the scrape command and replies with a run summary plus the jobs.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveFlags.configPath, "config", "", "YAML defaults file")
	serveCmd.Flags().IntVar(&serveFlags.port, "port", 0, "port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(serveFlags.configPath)
	if err != nil {
		return err
	}
	port := serveFlags.port
	if port == 0 {
		port = cfg.Server.Port
	}

	mux := server.NewMux(server.Deps{})
	addr := fmt.Sprintf(":%d", port)
	fmt.Printf("jobscout listening on %s\n", addr)
	return http.ListenAndServe(addr, mux)
}
