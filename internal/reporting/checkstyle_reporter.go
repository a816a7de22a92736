// File: internal/reporting/checkstyle_reporter.go
package reporting

import (
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/beevik/etree"

	"github.com/xkilldash9x/relic-cli/api/schemas"
)

const checkstyleVersion = "4.3"

// CheckstyleReporter emits reports in the checkstyle XML format understood by
// most CI annotators. Findings accumulate across Write calls; the document is
// serialized once at Close. It is thread safe.
type CheckstyleReporter struct {
	writer io.WriteCloser

	mu   sync.Mutex
	doc  *etree.Document
	root *etree.Element
}

// NewCheckstyleReporter creates a reporter for checkstyle XML output. It
// takes ownership of the writer.
func NewCheckstyleReporter(writer io.WriteCloser) *CheckstyleReporter {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("checkstyle")
	root.CreateAttr("version", checkstyleVersion)

	return &CheckstyleReporter{
		writer: writer,
		doc:    doc,
		root:   root,
	}
}

// Write adds one report's findings as a <file> element.
func (r *CheckstyleReporter) Write(report *schemas.AnalysisReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	file := r.root.CreateElement("file")
	file.CreateAttr("name", report.Target)

	for _, f := range report.Findings {
		e := file.CreateElement("error")
		e.CreateAttr("line", strconv.Itoa(f.Line))
		e.CreateAttr("severity", checkstyleSeverity(f.Severity))
		e.CreateAttr("message", f.Message)
		e.CreateAttr("source", f.RuleID)
	}
	return nil
}

// Close serializes the accumulated document and closes the writer.
func (r *CheckstyleReporter) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.doc.Indent(2)
	if _, err := r.doc.WriteTo(r.writer); err != nil {
		r.writer.Close()
		return fmt.Errorf("failed to write checkstyle report: %w", err)
	}
	return r.writer.Close()
}

func checkstyleSeverity(s schemas.Severity) string {
	switch s {
	case schemas.SeverityCritical:
		return "error"
	case schemas.SeverityWarning:
		return "warning"
	default:
		return "info"
	}
}
