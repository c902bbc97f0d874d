package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/mash-protocol/mash-ua/pkg/log"
)

// FilterOptions specifies filtering criteria. Empty fields match every
// event.
type FilterOptions struct {
	ClientID  string
	TimeStart string
	TimeEnd   string
	Layer     string
	Category  string
	Service   string
}

// Build converts the options to a log.Filter.
func (o FilterOptions) Build() (log.Filter, error) {
	filter := log.Filter{ClientID: o.ClientID}

	if o.TimeStart != "" {
		t, err := time.Parse(time.RFC3339, o.TimeStart)
		if err != nil {
			return log.Filter{}, fmt.Errorf("invalid time-start format: %w", err)
		}
		filter.TimeStart = &t
	}

	if o.TimeEnd != "" {
		t, err := time.Parse(time.RFC3339, o.TimeEnd)
		if err != nil {
			return log.Filter{}, fmt.Errorf("invalid time-end format: %w", err)
		}
		filter.TimeEnd = &t
	}

	if o.Layer != "" {
		l, err := ParseLayerFlag(o.Layer)
		if err != nil {
			return log.Filter{}, err
		}
		filter.Layer = &l
	}

	if o.Category != "" {
		c, err := ParseCategoryFlag(o.Category)
		if err != nil {
			return log.Filter{}, err
		}
		filter.Category = &c
	}

	if o.Service != "" {
		s, err := ParseServiceFlag(o.Service)
		if err != nil {
			return log.Filter{}, err
		}
		filter.Service = &s
	}

	return filter, nil
}

// RunFilter copies the events of the log file that match opts to output
// and returns how many were written.
func RunFilter(path, output string, opts FilterOptions) (int, error) {
	filter, err := opts.Build()
	if err != nil {
		return 0, err
	}

	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	logger, err := log.NewFileLogger(output)
	if err != nil {
		return 0, fmt.Errorf("failed to create output logger: %w", err)
	}
	defer logger.Close()

	count := 0
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("failed to read event: %w", err)
		}

		logger.Log(event)
		count++
	}

	if err := logger.Err(); err != nil {
		return count, fmt.Errorf("failed to write event: %w", err)
	}
	return count, nil
}
