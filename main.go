package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/pprof"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/lumipallolabs/dirinfo/internal/logging"
	"github.com/lumipallolabs/dirinfo/internal/probe"
	"github.com/lumipallolabs/dirinfo/internal/progress"
	"github.com/lumipallolabs/dirinfo/internal/prompt"
	"github.com/lumipallolabs/dirinfo/internal/report"
	"github.com/lumipallolabs/dirinfo/internal/scanner"
)

func main() {
	os.Exit(run(os.Stdin, os.Stdout, os.Stderr))
}

func run(in io.Reader, out, errOut io.Writer) int {
	// Enable CPU profiling if CPUPROFILE env var is set
	if cpuProfile := os.Getenv("CPUPROFILE"); cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		logging.Debug.Printf("CPU profiling enabled, writing to %s", cpuProfile)
	}

	// Capability is fixed for the whole run
	prober, status := probe.Detect()
	if !status.Available {
		fmt.Fprintf(out, "⚠️ Warning: %s not found. Media duration info will be skipped.\n\n", status.Name)
	}

	target, err := prompt.ReadPath(in, out)
	if err != nil {
		if errors.Is(err, prompt.ErrCancelled) {
			return 0
		}
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return 1
	}
	output := filepath.Join(target, report.FileName)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s := scanner.New(scanner.Options{Prober: prober})
	summary, err := scanWithIndicator(ctx, s, target, output, out)
	switch {
	case errors.Is(err, scanner.ErrInvalidDirectory):
		fmt.Fprintln(out, "❌ Invalid directory.")
		return 0
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "\n🛑 Scan interrupted. Partial results in '%s'\n", output)
		return 0
	case err != nil:
		fmt.Fprintf(errOut, "❌ Scan failed: %v\n", err)
		return 1
	}

	fmt.Fprintf(out, "\n✅ Scan complete! Results saved in '%s'\n", output)
	fmt.Fprintln(out, summaryLine(summary))
	return 0
}

// scanWithIndicator runs the scan with the spinner drawing on out. The
// spinner is stopped on every return path, including panics.
func scanWithIndicator(ctx context.Context, s *scanner.Scanner, target, output string, out io.Writer) (scanner.Summary, error) {
	indicator := progress.New(out)
	indicator.Start()
	defer indicator.Stop()

	return s.Scan(ctx, target, output)
}

func summaryLine(s scanner.Summary) string {
	line := fmt.Sprintf("   Scanned %s files (%s) in %s",
		humanize.Comma(s.FilesScanned), humanize.Bytes(uint64(s.BytesFound)), s.Elapsed.Round(time.Millisecond))
	if s.MediaProbed > 0 {
		line += fmt.Sprintf(", probed %s media files", humanize.Comma(s.MediaProbed))
		if s.ProbeFailures > 0 {
			line += fmt.Sprintf(" (%s failed)", humanize.Comma(s.ProbeFailures))
		}
	}
	return line
}
