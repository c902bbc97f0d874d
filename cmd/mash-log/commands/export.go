package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mash-protocol/mash-ua/pkg/log"
)

// RunExport exports the log file to the specified format.
func RunExport(path, format, output string) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "jsonl":
		return exportJSONL(reader, w)
	case "csv":
		return exportCSV(reader, w)
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}
}

func exportJSONL(reader *log.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := encoder.Encode(event); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
	return nil
}

func exportCSV(reader *log.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"timestamp", "client_id", "layer", "category", "label", "targets", "failed", "duration_ns", "error"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		var targets, failed, duration, message string
		switch {
		case event.Resolve != nil:
			targets = strconv.Itoa(event.Resolve.BatchSize + event.Resolve.Pending)
			failed = strconv.Itoa(event.Resolve.Failed)
		case event.Service != nil:
			targets = strconv.Itoa(event.Service.Targets)
			failed = strconv.Itoa(event.Service.Failed)
			duration = strconv.FormatInt(int64(event.Service.Duration), 10)
			message = event.Service.Err
		case event.Page != nil:
			targets = strconv.Itoa(event.Page.Pending)
		case event.Error != nil:
			message = event.Error.Message
		}

		row := []string{
			event.Timestamp.UTC().Format(timeFormat),
			event.ClientID,
			event.Layer.String(),
			event.Category.String(),
			eventLabel(event),
			targets,
			failed,
			duration,
			message,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return nil
}
