// File: internal/reporting/json_reporter.go
package reporting

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/xkilldash9x/relic-cli/api/schemas"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONReporter emits each report as an indented JSON document, one per Write
// call, for machine consumption.
type JSONReporter struct {
	writer io.WriteCloser
}

// NewJSONReporter creates a reporter that writes JSON output. It takes
// ownership of the writer.
func NewJSONReporter(writer io.WriteCloser) *JSONReporter {
	return &JSONReporter{writer: writer}
}

// Write marshals one report.
func (r *JSONReporter) Write(report *schemas.AnalysisReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	data = append(data, '\n')
	if _, err := r.writer.Write(data); err != nil {
		return fmt.Errorf("failed to write JSON report: %w", err)
	}
	return nil
}

// Close closes the underlying writer.
func (r *JSONReporter) Close() error {
	return r.writer.Close()
}
