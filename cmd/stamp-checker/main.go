package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/a3tai/pdf-stamp-checker/internal/checker"
	"github.com/a3tai/pdf-stamp-checker/internal/config"
	"github.com/a3tai/pdf-stamp-checker/internal/mcp"
	"github.com/a3tai/pdf-stamp-checker/internal/web"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// runner is a front end that serves until its context is canceled
type runner interface {
	Run(ctx context.Context) error
}

// setupLogging configures logging based on the run mode
func setupLogging(cfg *config.Config) {
	if cfg.IsStdioMode() {
		// stdout carries the MCP protocol
		log.SetOutput(os.Stderr)
		if !cfg.IsDebug() {
			log.SetOutput(os.NewFile(0, os.DevNull))
		}
	} else {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}
}

// runServerMode serves HTTP until a signal arrives or the server fails
func runServerMode(ctx context.Context, cancel context.CancelFunc, server runner) {
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- server.Run(ctx)
	}()

	select {
	case sig := <-signalCh:
		log.Printf("Received signal: %s", sig)
		log.Println("Initiating graceful shutdown...")
		cancel()

		if err := <-serverErrCh; err != nil {
			log.Printf("Server shutdown with error: %v", err)
			os.Exit(1)
		}

	case err := <-serverErrCh:
		if err != nil {
			log.Printf("Server error: %v", err)
			os.Exit(1)
		}
	}

	log.Println("Server stopped successfully")
}

// runStdioMode serves MCP until the parent process closes stdin
func runStdioMode(ctx context.Context, server runner) {
	if err := server.Run(ctx); err != nil {
		if os.Getenv("DEBUG") != "" {
			log.Printf("Server error: %v", err)
		}
		os.Exit(1)
	}
}

// newRunner builds the front end selected by the configured mode
func newRunner(cfg *config.Config, checkerService *checker.Service) (runner, error) {
	if cfg.IsStdioMode() {
		return mcp.NewServer(cfg, checkerService)
	}
	return web.NewServer(cfg, checkerService)
}

func main() {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg)

	if version != "dev" {
		cfg.Version = version
	}

	if cfg.IsDebug() && cfg.IsServerMode() {
		log.Printf("Starting with configuration: %s", cfg.String())
	}

	tables, err := checker.LoadTables(cfg)
	if err != nil {
		log.Fatalf("Failed to load reference tables: %v", err)
	}

	checkerService, err := checker.NewService(cfg, tables)
	if err != nil {
		log.Fatalf("Failed to create checker service: %v", err)
	}

	server, err := newRunner(cfg, checkerService)
	if err != nil {
		log.Fatalf("Failed to create %s server: %v", cfg.Mode, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.IsServerMode() {
		runServerMode(ctx, cancel, server)
	} else {
		runStdioMode(ctx, server)
	}
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("PDF Stamp Checker\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
