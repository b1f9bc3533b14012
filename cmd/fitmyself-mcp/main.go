// fitmyself-mcp serves the tracker to AI assistants over MCP stdio.
//
// Two modes:
//   - remote: -server <URL> proxies every tool call to a running FitMyself
//     server (typically over Tailscale). No local database needed.
//   - local:  -config <path> opens the database directly.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/fitmyself/internal/config"
	"github.com/claude/fitmyself/internal/mcp"
	"github.com/claude/fitmyself/internal/storage"
	"github.com/claude/fitmyself/internal/verify"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("server", "", "FitMyself server URL for remote mode")
	configPath := flag.String("config", "", "config file for local mode")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("fitmyself-mcp", Version)
		return
	}

	// Logs go to stderr; stdout carries the MCP stdio transport.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var ds mcp.DataSource
	switch {
	case *serverURL != "":
		ds = mcp.NewHTTPClient(*serverURL)
		log.Info("remote mode", "server", *serverURL)

	case *configPath != "":
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		db, err := storage.New(context.Background(), cfg.Database.DSN())
		if err != nil {
			log.Error("failed to connect database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		verifier := verify.NewClient(cfg.Verifier.APIKey, cfg.Verifier.Model, cfg.Verifier.BaseURL)
		ds = mcp.NewLocal(db, verifier, log)
		log.Info("local mode", "database", cfg.Database.Name)

	default:
		fmt.Fprintf(os.Stderr, "Usage: fitmyself-mcp -server <URL> | -config <path>\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	s := mcp.New(ds, Version, log)
	if err := server.ServeStdio(s); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
