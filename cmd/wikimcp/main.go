// Package main is the entry point for the wikimcp server.
//
// This package initializes the application and starts the MCP server over
// stdio. The startup sequence:
//
// 1. Load optional .env file for local development
// 2. Initialize logging system (stderr only; stdout carries the protocol)
// 3. Read commit-identity and host overrides from the environment
// 4. Serve MCP requests over stdin/stdout until the client disconnects
//
// All wiki credentials arrive per tool call; nothing credential-like is
// read at startup.
package main

import (
	"os"

	"wikimcp/internal/config"
	"wikimcp/internal/logging"
	"wikimcp/internal/mcp"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// Best-effort: a missing .env is the normal case outside development.
	_ = godotenv.Load()

	appLogger := logging.NewAppLogger()

	rootCmd := &cobra.Command{
		Use:     "wikimcp",
		Short:   "MCP server for reading and writing GitHub wiki pages",
		Version: mcp.Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(appLogger)
		},
	}
	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Serve MCP requests over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(appLogger)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		appLogger.Error("wikimcp exited with error", "error", err)
		os.Exit(1)
	}
}

func serve(logger *logging.AppLogger) error {
	opts := config.FromEnv()
	logger.Info("Configuration loaded", "gitHost", opts.GitHost, "commitAuthor", opts.CommitName)

	server := mcp.NewServer(opts, logger)
	return server.Start()
}
