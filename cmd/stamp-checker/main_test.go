package main

import (
	"bytes"
	"io"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a3tai/pdf-stamp-checker/internal/checker"
	"github.com/a3tai/pdf-stamp-checker/internal/config"
	"github.com/a3tai/pdf-stamp-checker/internal/mcp"
	"github.com/a3tai/pdf-stamp-checker/internal/stamp"
	"github.com/a3tai/pdf-stamp-checker/internal/web"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	originalStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = originalStdout }()

	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
		w.Close()
	}()

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	<-done
	return buf.String()
}

func TestPrintVersion(t *testing.T) {
	oldVersion, oldBuildTime, oldGitCommit := version, buildTime, gitCommit
	defer func() {
		version, buildTime, gitCommit = oldVersion, oldBuildTime, oldGitCommit
	}()

	version = "1.2.3"
	buildTime = "2024-05-01_10:30:00"
	gitCommit = "abc123"

	output := captureStdout(t, printVersion)

	for _, expected := range []string{
		"PDF Stamp Checker",
		"Version: 1.2.3",
		"Build Time: 2024-05-01_10:30:00",
		"Git Commit: abc123",
		"Built with:",
	} {
		assert.Contains(t, output, expected)
	}
}

func TestSetupLogging(t *testing.T) {
	originalOutput := log.Writer()
	originalFlags := log.Flags()
	defer func() {
		log.SetOutput(originalOutput)
		log.SetFlags(originalFlags)
	}()

	t.Run("stdio debug logs to stderr", func(t *testing.T) {
		setupLogging(&config.Config{Mode: config.ModeStdio, LogLevel: "debug"})
		assert.Equal(t, os.Stderr, log.Writer())
	})

	t.Run("stdio without debug is silent", func(t *testing.T) {
		setupLogging(&config.Config{Mode: config.ModeStdio, LogLevel: "info"})
		assert.NotEqual(t, os.Stderr, log.Writer())
	})

	t.Run("server adds file information", func(t *testing.T) {
		setupLogging(&config.Config{Mode: config.ModeServer, LogLevel: "info"})
		assert.Equal(t, log.LstdFlags|log.Lshortfile, log.Flags())
	})
}

func TestNewRunner(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.PDFDirectory = t.TempDir()

	svc, err := checker.NewService(cfg, stamp.DefaultTables())
	require.NoError(t, err)

	server, err := newRunner(cfg, svc)
	require.NoError(t, err)
	assert.IsType(t, &web.Server{}, server)

	cfg.Mode = config.ModeStdio
	server, err = newRunner(cfg, svc)
	require.NoError(t, err)
	assert.IsType(t, &mcp.Server{}, server)
}
