// Command rcigen-log is a tool for viewing and analyzing rcigen event logs.
//
// Event logs are created by running rcigen with the -event-log flag.
//
// Usage:
//
//	rcigen-log <command> [flags] <events.cbor>
//
// Commands:
//
//	view     View log file in human-readable format
//	export   Export log file to JSON or CSV format
//	filter   Filter log file and write to new file
//	stats    Show statistics about the log file
//
// Examples:
//
//	# View all events
//	rcigen-log view events.cbor
//
//	# View only errors
//	rcigen-log view -category error events.cbor
//
//	# Export to CSV
//	rcigen-log export -format csv events.cbor
//
//	# Keep the events of one run
//	rcigen-log filter -run-id 3f2a... -o run.cbor events.cbor
//
//	# Show statistics
//	rcigen-log stats events.cbor
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rci-tools/rcigen/cmd/rcigen-log/commands"
)

const usage = `rcigen-log - rcigen Event Log Analyzer

Usage:
  rcigen-log <command> [flags] <events.cbor>

Commands:
  view     View log file in human-readable format
  export   Export log file to JSON or CSV format
  filter   Filter log file and write to new file
  stats    Show statistics about the log file

Use "rcigen-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func newFlagSet(name, synopsis, args string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "rcigen-log %s - %s\n\nUsage:\n  rcigen-log %s %s\n\nFlags:\n", name, synopsis, name, args)
		fs.PrintDefaults()
	}
	return fs
}

// logPath returns the single positional argument or exits.
func logPath(fs *flag.FlagSet) string {
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}
	return fs.Arg(0)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func runView(args []string) {
	fs := newFlagSet("view", "View log file in human-readable format", "[flags] <events.cbor>")
	runID := fs.String("run-id", "", "Filter by run ID")
	stage := fs.String("stage", "", "Filter by stage (plan, render, write)")
	category := fs.String("category", "", "Filter by category (plan, artifact, error)")
	fs.Parse(args)
	path := logPath(fs)

	filter, err := commands.FilterOptions{RunID: *runID, Stage: *stage, Category: *category}.Filter()
	if err != nil {
		fail(err)
	}
	if err := commands.RunView(path, filter, os.Stdout); err != nil {
		fail(err)
	}
}

func runExport(args []string) {
	fs := newFlagSet("export", "Export log file to JSON or CSV format", "[flags] <events.cbor>")
	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")
	fs.Parse(args)
	path := logPath(fs)

	if err := commands.RunExport(path, *format, *output); err != nil {
		fail(err)
	}
}

func runFilter(args []string) {
	fs := newFlagSet("filter", "Filter log file and write to new file", "[flags] <events.cbor>")
	output := fs.String("o", "", "Output file (required)")
	runID := fs.String("run-id", "", "Filter by run ID")
	timeStart := fs.String("time-start", "", "Filter by start time (RFC3339)")
	timeEnd := fs.String("time-end", "", "Filter by end time (RFC3339)")
	stage := fs.String("stage", "", "Filter by stage (plan, render, write)")
	category := fs.String("category", "", "Filter by category (plan, artifact, error)")
	fs.Parse(args)
	path := logPath(fs)

	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}

	n, err := commands.RunFilter(path, commands.FilterOptions{
		Output:    *output,
		RunID:     *runID,
		TimeStart: *timeStart,
		TimeEnd:   *timeEnd,
		Stage:     *stage,
		Category:  *category,
	})
	if err != nil {
		fail(err)
	}
	fmt.Printf("Wrote %d event(s) to %s\n", n, *output)
}

func runStats(args []string) {
	fs := newFlagSet("stats", "Show statistics about the log file", "<events.cbor>")
	fs.Parse(args)
	path := logPath(fs)

	if err := commands.RunStats(path, os.Stdout); err != nil {
		fail(err)
	}
}
