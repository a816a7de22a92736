// File: internal/reporting/reporter.go
package reporting

import (
	"fmt"
	"io"
	"os"

	"github.com/xkilldash9x/relic-cli/api/schemas"
)

// Reporter defines the interface for writing analysis reports to an output.
type Reporter interface {
	// Write renders a single analysis report.
	Write(report *schemas.AnalysisReport) error
	// Close finalizes the report and closes any underlying resources.
	Close() error
}

// nopWriteCloser wraps an io.Writer and provides a no-op Close method.
type nopWriteCloser struct {
	io.Writer
}

func (nwc *nopWriteCloser) Close() error {
	return nil
}

// New creates a reporter for the given format, writing to outputPath.
// An empty path or "stdout" writes to standard output.
func New(format, outputPath string) (Reporter, error) {
	var writer io.WriteCloser
	isStdOut := outputPath == "" || outputPath == "stdout"

	if isStdOut {
		writer = &nopWriteCloser{os.Stdout}
	} else {
		f, err := os.Create(outputPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create output file %s: %w", outputPath, err)
		}
		writer = f
	}

	switch format {
	case "text", "":
		return NewTextReporter(writer), nil
	case "json":
		return NewJSONReporter(writer), nil
	case "checkstyle":
		return NewCheckstyleReporter(writer), nil
	default:
		if !isStdOut {
			writer.Close()
		}
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
