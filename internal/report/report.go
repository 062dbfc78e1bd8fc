// Package report writes the plain-text directory scan report.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/lumipallolabs/dirinfo/internal/model"
)

// FileName is the report's name inside the scanned directory
const FileName = "dir_info.txt"

const (
	separatorWidth = 50
	unknownType    = "unknown"
	notFound       = "Not found"
)

// Writer emits the report one block at a time
type Writer struct {
	w io.Writer
}

// NewWriter creates a report writer on top of w
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Header writes the title line and separator
func (r *Writer) Header(root string) error {
	header := fmt.Sprintf("📁 Directory Scan Report for: %s\n%s\n\n",
		root, strings.Repeat("=", separatorWidth))
	if _, err := io.WriteString(r.w, header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	return nil
}

// Entry writes the block for a single file in one write call
func (r *Writer) Entry(e model.Entry) error {
	if _, err := io.WriteString(r.w, Block(e)); err != nil {
		return fmt.Errorf("write entry %s: %w", e.Path, err)
	}
	return nil
}

// Block renders the report block for one file, including the trailing
// blank line
func Block(e model.Entry) string {
	var b strings.Builder

	typ := e.Type
	if typ == "" {
		typ = unknownType
	}

	fmt.Fprintf(&b, "📝 File: %s\n", e.Name)
	fmt.Fprintf(&b, "    📂 Path: %s\n", e.Path)
	fmt.Fprintf(&b, "    🧾 Type: %s\n", typ)

	if e.Probed {
		switch {
		case e.ProbeErr != nil:
			fmt.Fprintf(&b, "    ⚠️ Could not extract media info: %v\n", e.ProbeErr)
		case e.Duration != "":
			fmt.Fprintf(&b, "    ⏱️ Duration: %s\n", e.Duration)
		default:
			fmt.Fprintf(&b, "    ⏱️ Duration: %s\n", notFound)
		}
	}

	b.WriteString("\n")
	return b.String()
}
