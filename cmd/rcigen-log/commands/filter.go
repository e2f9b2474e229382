package commands

import (
	"fmt"
	"io"

	"github.com/rci-tools/rcigen/pkg/log"
)

// FilterOptions specifies the filter criteria and output path.
type FilterOptions struct {
	Output    string
	RunID     string
	TimeStart string
	TimeEnd   string
	Stage     string
	Category  string
}

// Filter converts the options into a log.Filter.
func (o FilterOptions) Filter() (log.Filter, error) {
	var f log.Filter
	f.RunID = o.RunID

	var err error
	if f.TimeStart, err = ParseTimeFlag(o.TimeStart); err != nil {
		return f, err
	}
	if f.TimeEnd, err = ParseTimeFlag(o.TimeEnd); err != nil {
		return f, err
	}
	if o.Stage != "" {
		s, err := ParseStageFlag(o.Stage)
		if err != nil {
			return f, err
		}
		f.Stage = &s
	}
	if o.Category != "" {
		c, err := ParseCategoryFlag(o.Category)
		if err != nil {
			return f, err
		}
		f.Category = &c
	}
	return f, nil
}

// RunFilter copies the matching events of the log file to a new log file and
// returns the number of events written.
func RunFilter(path string, opts FilterOptions) (int, error) {
	filter, err := opts.Filter()
	if err != nil {
		return 0, err
	}

	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	logger, err := log.NewFileLogger(opts.Output)
	if err != nil {
		return 0, fmt.Errorf("failed to create output file: %w", err)
	}

	count := 0
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Close()
			return count, fmt.Errorf("failed to read event: %w", err)
		}
		logger.Log(event)
		count++
	}

	if err := logger.Close(); err != nil {
		return count, fmt.Errorf("failed to close output file: %w", err)
	}
	if n := logger.Errors(); n > 0 {
		return count, fmt.Errorf("failed to write %d event(s)", n)
	}
	return count, nil
}
