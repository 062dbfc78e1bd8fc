package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/lumipallolabs/dirinfo/internal/logging"
	"github.com/lumipallolabs/dirinfo/internal/mediatype"
	"github.com/lumipallolabs/dirinfo/internal/model"
	"github.com/lumipallolabs/dirinfo/internal/probe"
	"github.com/lumipallolabs/dirinfo/internal/report"
)

// ErrInvalidDirectory is returned when the scan root is not a directory
var ErrInvalidDirectory = errors.New("invalid directory")

// Summary reports what a finished (or interrupted) scan covered
type Summary struct {
	FilesScanned  int64
	BytesFound    int64
	MediaProbed   int64
	ProbeFailures int64
	Elapsed       time.Duration
}

// Options configures a Scanner
type Options struct {
	// Classifier guesses MIME labels. Defaults to mediatype.NewByExtension().
	Classifier mediatype.Classifier

	// Prober reads media durations. Nil means the capability is absent and
	// no duration lines are written.
	Prober probe.Prober
}

// Scanner walks a directory tree and writes one report block per file
type Scanner struct {
	classifier mediatype.Classifier
	prober     probe.Prober
}

// New creates a scanner
func New(opts Options) *Scanner {
	classifier := opts.Classifier
	if classifier == nil {
		classifier = mediatype.NewByExtension()
	}
	return &Scanner{
		classifier: classifier,
		prober:     opts.Prober,
	}
}

// Scan writes the report for root to output, truncating any previous
// report. Nothing is written if root is not a directory. The output file
// is never listed in its own report.
func (s *Scanner) Scan(ctx context.Context, root, output string) (summary Summary, err error) {
	start := time.Now()
	defer func() { summary.Elapsed = time.Since(start) }()

	info, statErr := os.Stat(root)
	if statErr != nil || !info.IsDir() {
		logging.Scanner.Printf("not a directory: %s (stat err=%v)", root, statErr)
		return summary, fmt.Errorf("%w: %s", ErrInvalidDirectory, root)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return summary, err
	}
	absOutput, err := filepath.Abs(output)
	if err != nil {
		return summary, err
	}
	displayRoot := filepath.Clean(root)

	file, err := os.Create(output)
	if err != nil {
		return summary, fmt.Errorf("create report: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close report: %w", cerr)
		}
	}()

	w := report.NewWriter(file)
	if err := w.Header(root); err != nil {
		return summary, err
	}

	logging.Scanner.Printf("scanning %s into %s (probe=%v)", absRoot, absOutput, s.prober != nil)

	err = walkFiles(ctx, absRoot, func(path string, d fs.DirEntry) error {
		if path == absOutput {
			return nil
		}

		rel, relErr := filepath.Rel(absRoot, path)
		if relErr != nil {
			logging.Scanner.Printf("skipping %s: %v", path, relErr)
			return nil
		}

		entry := s.describe(path, filepath.Join(displayRoot, rel), d)

		summary.FilesScanned++
		summary.BytesFound += entry.Size
		if entry.Probed {
			summary.MediaProbed++
			if entry.ProbeErr != nil {
				summary.ProbeFailures++
			}
		}

		return w.Entry(entry)
	})
	if err != nil {
		return summary, err
	}

	logging.Scanner.Printf("scan complete: %d files, %d bytes, %d probed (%d failed)",
		summary.FilesScanned, summary.BytesFound, summary.MediaProbed, summary.ProbeFailures)
	return summary, nil
}

// describe builds the report entry for one file, probing it if it is
// audio or video and a prober is available
func (s *Scanner) describe(path, display string, d fs.DirEntry) model.Entry {
	entry := model.Entry{
		Name: d.Name(),
		Path: display,
		Size: entrySize(path, d),
		Type: s.classifier.Classify(path),
	}

	if s.prober == nil || !entry.IsMedia() {
		return entry
	}

	entry.Probed = true
	tracks, err := s.probe(path)
	if err != nil {
		logging.Scanner.Printf("media info failed for %s: %v", path, err)
		entry.ProbeErr = err
		return entry
	}

	if ms, ok := model.FirstDuration(tracks); ok {
		entry.Duration = report.FormatDuration(ms / 1000)
	}
	return entry
}

// probe calls the prober, turning a panic into a per-file error so one
// bad file never ends the scan
func (s *Scanner) probe(path string) (tracks []model.Track, err error) {
	defer func() {
		if r := recover(); r != nil {
			tracks = nil
			err = fmt.Errorf("probe panicked: %v", r)
		}
	}()
	return s.prober.Probe(path)
}

func entrySize(path string, d fs.DirEntry) int64 {
	if d.Type()&fs.ModeSymlink != 0 {
		info, err := os.Stat(path)
		if err != nil {
			return 0
		}
		return info.Size()
	}
	info, err := d.Info()
	if err != nil {
		return 0
	}
	return info.Size()
}
