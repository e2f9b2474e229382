// Command rcigen-web serves RCI table generation over HTTP.
//
// It offers:
//   - POST /api/v1/generate to render artifacts from a YAML definition
//   - a run history with digests and artifact text
//   - SQLite persistence for the run history
//
// Usage:
//
//	rcigen-web [flags]
//
// Flags:
//
//	-port int          HTTP server port (default 8080)
//	-db string         SQLite database path (default "./rcigen-web.db")
//	-log-level string  Log level: debug, info, warn, error (default "info")
//
// Examples:
//
//	# Start the web server on default port
//	rcigen-web
//
//	# Use an in-memory database
//	rcigen-web -db :memory:
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/rci-tools/rcigen/pkg/version"
)

var (
	port        = flag.Int("port", 8080, "HTTP server port")
	dbPath      = flag.String("db", "./rcigen-web.db", "SQLite database path")
	logLevel    = flag.String("log-level", "info", "Log level: debug, info, warn, error")
	showVersion = flag.Bool("version", false, "Show version information")
)

func main() {
	os.Exit(run())
}

func run() int {
	flag.Parse()

	if *showVersion {
		fmt.Printf("rcigen-web %s\n", version.Tool)
		return 0
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q\n", *logLevel)
		return 1
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	srv, err := NewServer(ServerConfig{
		Port:    *port,
		DBPath:  *dbPath,
		Version: version.Tool,
		Logger:  logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create server: %v\n", err)
		return 1
	}
	defer srv.Close()

	logger.Info("starting rcigen-web", slog.Int("port", *port), slog.String("db", *dbPath))

	if err := srv.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: server failed: %v\n", err)
		return 1
	}
	return 0
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
