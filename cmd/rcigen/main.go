// Command rcigen generates the C configuration tables of an RCI runtime.
//
// The input is a YAML configuration definition (groups, elements, error
// maps). The output is either one combined header or a definitions header
// plus a data source file.
//
// Usage:
//
//	rcigen [flags] -model <definition.yaml>
//
// Flags:
//
//	-model string            Configuration definition (YAML)
//	-options string          Generation options file (YAML)
//	-out string              Output directory (default ".")
//	-mode string             Output mode: combined, split
//	-naming string           Emitted names: none, elements, groups, all
//	-target string           Split target: definitions, data
//	-prefix string           Symbol prefix
//	-firmware string         Firmware version (a.b.c.d or integer)
//	-vendor uint             Vendor id
//	-device-type string      Device type string
//	-no-error-descriptions   Omit the string pool and error descriptions
//	-check                   Fail if regenerating would change any file
//	-interactive             Inspect the run instead of writing files
//	-log-level string        Log level: debug, info, warn, error (default "info")
//	-event-log string        File path for generation event logging (CBOR format)
//
// Flags override values from the options file.
//
// Examples:
//
//	# Generate remote_config.h into the current directory
//	rcigen -model device.yaml
//
//	# Generate rci_config.h and rci_config.c with a firmware version
//	rcigen -model device.yaml -mode split -firmware 1.0.0.0 -out gen/
//
//	# Verify checked-in files are current
//	rcigen -model device.yaml -options rcigen.yaml -out gen/ -check
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rci-tools/rcigen/cmd/rcigen/interactive"
	"github.com/rci-tools/rcigen/pkg/artifact"
	rcilog "github.com/rci-tools/rcigen/pkg/log"
	"github.com/rci-tools/rcigen/pkg/model"
	"github.com/rci-tools/rcigen/pkg/rcigen"
	"github.com/rci-tools/rcigen/pkg/version"
)

// errStale is returned by -check when files on disk differ from a fresh run.
var errStale = errors.New("generated files are out of date")

// Config holds the command configuration.
type Config struct {
	ModelPath   string
	OptionsPath string
	OutDir      string

	Mode                string
	Naming              string
	Target              string
	Prefix              string
	Firmware            string
	Vendor              uint
	DeviceType          string
	NoErrorDescriptions bool

	Check       bool
	Interactive bool
	LogLevel    string
	EventLog    string

	// set records the flags given on the command line.
	set map[string]bool

	// arguments are the output-affecting flags, recorded in the banner.
	arguments string
}

// runFlags do not change generated content and stay out of the banner.
var runFlags = map[string]bool{
	"out":         true,
	"check":       true,
	"interactive": true,
	"log-level":   true,
	"event-log":   true,
}

func parseFlags(args []string, stderr io.Writer) (*Config, error) {
	cfg := &Config{set: map[string]bool{}}

	fs := flag.NewFlagSet("rcigen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.ModelPath, "model", "", "Configuration definition (YAML)")
	fs.StringVar(&cfg.OptionsPath, "options", "", "Generation options file (YAML)")
	fs.StringVar(&cfg.OutDir, "out", ".", "Output directory")
	fs.StringVar(&cfg.Mode, "mode", "", "Output mode: combined, split")
	fs.StringVar(&cfg.Naming, "naming", "", "Emitted names: none, elements, groups, all")
	fs.StringVar(&cfg.Target, "target", "", "Split target: definitions, data")
	fs.StringVar(&cfg.Prefix, "prefix", "", "Symbol prefix")
	fs.StringVar(&cfg.Firmware, "firmware", "", "Firmware version (a.b.c.d or integer)")
	fs.UintVar(&cfg.Vendor, "vendor", 0, "Vendor id")
	fs.StringVar(&cfg.DeviceType, "device-type", "", "Device type string")
	fs.BoolVar(&cfg.NoErrorDescriptions, "no-error-descriptions", false, "Omit the string pool and error descriptions")
	fs.BoolVar(&cfg.Check, "check", false, "Fail if regenerating would change any file")
	fs.BoolVar(&cfg.Interactive, "interactive", false, "Inspect the run instead of writing files")
	fs.StringVar(&cfg.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	fs.StringVar(&cfg.EventLog, "event-log", "", "File path for generation event logging (CBOR format)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	var recorded []string
	fs.Visit(func(f *flag.Flag) {
		cfg.set[f.Name] = true
		if !runFlags[f.Name] {
			recorded = append(recorded, "-"+f.Name+"="+f.Value.String())
		}
	})
	recorded = append(recorded, fs.Args()...)
	cfg.arguments = strings.Join(recorded, " ")

	if cfg.ModelPath == "" && fs.NArg() == 1 {
		cfg.ModelPath = fs.Arg(0)
	}
	if cfg.ModelPath == "" {
		fs.Usage()
		return nil, errors.New("a configuration definition is required (-model)")
	}
	if cfg.Check && cfg.Interactive {
		return nil, errors.New("-check and -interactive are mutually exclusive")
	}
	return cfg, nil
}

// options loads the options file, if any, and applies the flags given on
// the command line on top of it.
func (c *Config) options() (rcigen.Options, error) {
	opts := rcigen.DefaultOptions()
	if c.OptionsPath != "" {
		var err error
		if opts, err = rcigen.LoadOptions(c.OptionsPath); err != nil {
			return opts, fmt.Errorf("loading options: %w", err)
		}
	}

	var err error
	if c.set["mode"] {
		if opts.Mode, err = rcigen.ParseOutputMode(c.Mode); err != nil {
			return opts, err
		}
	}
	if c.set["naming"] {
		if opts.Naming, err = rcigen.ParseNamingVerbosity(c.Naming); err != nil {
			return opts, err
		}
	}
	if c.set["target"] {
		if opts.Target, err = rcigen.ParseArtifact(c.Target); err != nil {
			return opts, err
		}
	}
	if c.set["firmware"] {
		fw, err := version.ParseFirmware(c.Firmware)
		if err != nil {
			return opts, fmt.Errorf("%w: %w", rcigen.ErrOptionConflict, err)
		}
		opts.FirmwareVersion = uint32(fw)
	}
	if c.set["prefix"] {
		opts.Prefix = c.Prefix
	}
	if c.set["vendor"] {
		opts.VendorID = uint32(c.Vendor)
	}
	if c.set["device-type"] {
		opts.DeviceType = c.DeviceType
	}
	if c.NoErrorDescriptions {
		opts.ErrorDescriptions = false
	}
	return opts, opts.Validate()
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	logger := setupLogging(cfg.LogLevel, stderr)

	opts, err := cfg.options()
	if err != nil {
		return err
	}

	m, err := model.Load(cfg.ModelPath)
	if err != nil {
		return fmt.Errorf("loading %s: %w", cfg.ModelPath, err)
	}

	events := []rcilog.Logger{rcilog.NewSlogAdapter(logger).WithLevel(slog.LevelDebug)}
	if cfg.EventLog != "" {
		fileLogger, err := rcilog.NewFileLogger(cfg.EventLog)
		if err != nil {
			return fmt.Errorf("failed to create event logger: %w", err)
		}
		defer fileLogger.Close()
		events = append(events, fileLogger)
	}
	eventLogger := rcilog.NewMultiLogger(events...)

	gen := rcigen.NewGenerator(rcigen.GeneratorConfig{
		Logger:    eventLogger,
		Source:    cfg.ModelPath,
		Arguments: cfg.arguments,
	})
	res, err := gen.Generate(m, opts)
	if err != nil {
		return err
	}

	if cfg.Interactive {
		shell, err := interactive.New(res)
		if err != nil {
			return err
		}
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		shell.Run(ctx)
		return nil
	}

	w := artifact.NewWriter(artifact.WriterConfig{
		Dir:    cfg.OutDir,
		Source: cfg.ModelPath,
		Logger: eventLogger,
	})

	if cfg.Check {
		stale, err := w.Check(res)
		if err != nil {
			return err
		}
		for _, st := range stale {
			fmt.Fprintf(stdout, "  stale %s\n", st.Path)
		}
		if len(stale) > 0 {
			return fmt.Errorf("%w: %d file(s)", errStale, len(stale))
		}
		fmt.Fprintln(stdout, "  up to date")
		return nil
	}

	statuses, err := w.Write(res)
	if err != nil {
		return err
	}
	for _, st := range statuses {
		if st.Unchanged {
			fmt.Fprintf(stdout, "  unchanged %s\n", st.Path)
		} else {
			fmt.Fprintf(stdout, "  generated %s\n", st.Path)
		}
	}
	return nil
}

func setupLogging(level string, w io.Writer) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l}))
}
