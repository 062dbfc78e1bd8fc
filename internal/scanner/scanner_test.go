package scanner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lumipallolabs/dirinfo/internal/model"
	"github.com/lumipallolabs/dirinfo/internal/report"
)

// stubProber answers from canned results keyed by file name
type stubProber struct {
	tracks map[string][]model.Track
	errs   map[string]error
	calls  []string
}

func (p *stubProber) Probe(path string) ([]model.Track, error) {
	name := filepath.Base(path)
	p.calls = append(p.calls, name)
	if err, ok := p.errs[name]; ok {
		return nil, err
	}
	return p.tracks[name], nil
}

type panicProber struct{}

func (panicProber) Probe(path string) ([]model.Track, error) {
	panic("corrupt header")
}

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(name), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func scan(t *testing.T, s *Scanner, root string) (string, Summary) {
	t.Helper()
	output := filepath.Join(root, report.FileName)
	summary, err := s.Scan(context.Background(), root, output)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	return string(data), summary
}

func header(root string) string {
	return "📁 Directory Scan Report for: " + root + "\n" + strings.Repeat("=", 50) + "\n\n"
}

func TestScanInvalidDirectory(t *testing.T) {
	tmp := t.TempDir()
	writeFiles(t, tmp, "plain.txt")

	for _, root := range []string{filepath.Join(tmp, "missing"), filepath.Join(tmp, "plain.txt")} {
		output := filepath.Join(tmp, "report-"+filepath.Base(root))
		_, err := New(Options{}).Scan(context.Background(), root, output)
		if !errors.Is(err, ErrInvalidDirectory) {
			t.Errorf("%s: expected ErrInvalidDirectory, got %v", root, err)
		}
		if _, statErr := os.Stat(output); !os.IsNotExist(statErr) {
			t.Errorf("%s: expected no report to be written", root)
		}
	}
}

func TestScanEmptyDirectory(t *testing.T) {
	tmp := t.TempDir()

	got, summary := scan(t, New(Options{}), tmp)

	if got != header(tmp) {
		t.Errorf("expected header only, got %q", got)
	}
	if summary.FilesScanned != 0 {
		t.Errorf("expected 0 files (report excluded), got %d", summary.FilesScanned)
	}
}

func TestScanPlainFileWithoutProber(t *testing.T) {
	tmp := t.TempDir()
	writeFiles(t, tmp, "notes.txt")

	got, _ := scan(t, New(Options{}), tmp)

	want := header(tmp) +
		"📝 File: notes.txt\n" +
		"    📂 Path: " + filepath.Join(tmp, "notes.txt") + "\n" +
		"    🧾 Type: text/plain\n" +
		"\n"
	if got != want {
		t.Errorf("unexpected report:\n%s\nwant:\n%s", got, want)
	}
}

func TestScanMediaWithoutProberHasNoDuration(t *testing.T) {
	tmp := t.TempDir()
	writeFiles(t, tmp, "clip.mp4")

	got, summary := scan(t, New(Options{}), tmp)

	if !strings.Contains(got, "🧾 Type: video/mp4") {
		t.Errorf("expected video type, got %q", got)
	}
	if strings.Contains(got, "    ⏱️ Duration:") || strings.Contains(got, "    ⚠️ Could not extract") {
		t.Errorf("expected no duration section without a prober, got %q", got)
	}
	if summary.MediaProbed != 0 {
		t.Errorf("expected nothing probed, got %d", summary.MediaProbed)
	}
}

func TestScanUnknownType(t *testing.T) {
	tmp := t.TempDir()
	writeFiles(t, tmp, "Makefile")

	got, _ := scan(t, New(Options{}), tmp)
	if !strings.Contains(got, "    🧾 Type: unknown\n") {
		t.Errorf("expected unknown marker, got %q", got)
	}
}

func TestScanVideoDuration(t *testing.T) {
	tmp := t.TempDir()
	writeFiles(t, tmp, "clip.mp4")

	prober := &stubProber{tracks: map[string][]model.Track{
		"clip.mp4": {{Kind: "Video", Duration: 125000}},
	}}
	got, summary := scan(t, New(Options{Prober: prober}), tmp)

	if !strings.Contains(got, "    ⏱️ Duration: 2m5s\n") {
		t.Errorf("expected 2m5s duration, got %q", got)
	}
	if summary.MediaProbed != 1 || summary.ProbeFailures != 0 {
		t.Errorf("unexpected summary %+v", summary)
	}
}

func TestScanFirstDurationWins(t *testing.T) {
	tmp := t.TempDir()
	writeFiles(t, tmp, "movie.mkv")

	prober := &stubProber{tracks: map[string][]model.Track{
		"movie.mkv": {
			{Kind: "General"},
			{Kind: "Video", Duration: 60000},
			{Kind: "Audio", Duration: 3661000},
		},
	}}
	got, _ := scan(t, New(Options{Prober: prober}), tmp)

	if !strings.Contains(got, "    ⏱️ Duration: 1m0s\n") {
		t.Errorf("expected first duration-bearing track to win, got %q", got)
	}
}

func TestScanDurationNotFound(t *testing.T) {
	tmp := t.TempDir()
	writeFiles(t, tmp, "song.mp3")

	prober := &stubProber{tracks: map[string][]model.Track{
		"song.mp3": {{Kind: "General"}, {Kind: "Audio"}},
	}}
	got, _ := scan(t, New(Options{Prober: prober}), tmp)

	if !strings.Contains(got, "    ⏱️ Duration: Not found\n") {
		t.Errorf("expected Not found marker, got %q", got)
	}
}

func TestScanProbeFailureContinues(t *testing.T) {
	tmp := t.TempDir()
	writeFiles(t, tmp, "a_broken.mp4", "b_fine.mp4")

	prober := &stubProber{
		tracks: map[string][]model.Track{"b_fine.mp4": {{Kind: "General", Duration: 59000}}},
		errs:   map[string]error{"a_broken.mp4": errors.New("moov atom not found")},
	}
	got, summary := scan(t, New(Options{Prober: prober}), tmp)

	brokenBlock := "📝 File: a_broken.mp4\n" +
		"    📂 Path: " + filepath.Join(tmp, "a_broken.mp4") + "\n" +
		"    🧾 Type: video/mp4\n" +
		"    ⚠️ Could not extract media info: moov atom not found\n" +
		"\n"
	fineBlock := "📝 File: b_fine.mp4\n" +
		"    📂 Path: " + filepath.Join(tmp, "b_fine.mp4") + "\n" +
		"    🧾 Type: video/mp4\n" +
		"    ⏱️ Duration: 59s\n" +
		"\n"

	if got != header(tmp)+brokenBlock+fineBlock {
		t.Errorf("unexpected report:\n%s", got)
	}
	if summary.ProbeFailures != 1 || summary.MediaProbed != 2 {
		t.Errorf("unexpected summary %+v", summary)
	}
}

func TestScanProbePanicIsContained(t *testing.T) {
	tmp := t.TempDir()
	writeFiles(t, tmp, "a.mp4", "b.txt")

	got, _ := scan(t, New(Options{Prober: panicProber{}}), tmp)

	if !strings.Contains(got, "⚠️ Could not extract media info: probe panicked: corrupt header") {
		t.Errorf("expected panic to be reported inline, got %q", got)
	}
	if !strings.Contains(got, "📝 File: b.txt") {
		t.Errorf("expected scan to continue after the panic, got %q", got)
	}
}

func TestScanSkipsProbeForNonMedia(t *testing.T) {
	tmp := t.TempDir()
	writeFiles(t, tmp, "notes.txt", "Makefile")

	prober := &stubProber{}
	scan(t, New(Options{Prober: prober}), tmp)

	if len(prober.calls) != 0 {
		t.Errorf("expected no probe calls for non-media files, got %v", prober.calls)
	}
}

func TestScanNestedDirectories(t *testing.T) {
	tmp := t.TempDir()
	writeFiles(t, tmp, "top.txt", filepath.Join("season1", "ep1.mkv"), filepath.Join("season1", "extras", "notes.txt"))

	got, summary := scan(t, New(Options{}), tmp)

	for _, rel := range []string{"top.txt", filepath.Join("season1", "ep1.mkv"), filepath.Join("season1", "extras", "notes.txt")} {
		if !strings.Contains(got, "    📂 Path: "+filepath.Join(tmp, rel)+"\n") {
			t.Errorf("expected path line for %s", rel)
		}
	}
	if summary.FilesScanned != 3 {
		t.Errorf("expected 3 files, got %d", summary.FilesScanned)
	}
	if strings.Index(got, "ep1.mkv") > strings.Index(got, "top.txt") {
		t.Error("expected entries in lexical order, season1/ before top.txt")
	}
}

func TestScanRelativeRoot(t *testing.T) {
	tmp := t.TempDir()
	writeFiles(t, tmp, filepath.Join("media", "clip.mp4"))
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(tmp); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })

	got, _ := scan(t, New(Options{}), "media")

	if !strings.HasPrefix(got, header("media")) {
		t.Errorf("expected header with the root as entered, got %q", got)
	}
	if !strings.Contains(got, "    📂 Path: "+filepath.Join("media", "clip.mp4")+"\n") {
		t.Errorf("expected relative path, got %q", got)
	}
}

func TestScanIsRepeatable(t *testing.T) {
	tmp := t.TempDir()
	writeFiles(t, tmp,
		"b.mp3", "a.txt",
		filepath.Join("x", "c.mp4"),
		filepath.Join("w", "d.flac"),
		filepath.Join("y", "e.txt"),
		filepath.Join("y", "z", "f.txt"),
		filepath.Join("v", "g.txt"),
	)

	prober := &stubProber{tracks: map[string][]model.Track{
		"b.mp3":  {{Kind: "Audio", Duration: 3000}},
		"c.mp4":  {{Kind: "Video", Duration: 4000000}},
		"d.flac": {{Kind: "Audio"}},
	}}
	s := New(Options{Prober: prober})

	first, _ := scan(t, s, tmp)
	differing := 0
	for i := 0; i < 50; i++ {
		if again, _ := scan(t, s, tmp); again != first {
			differing++
		}
	}

	if differing != 0 {
		t.Errorf("%d of 50 rescans differ from the first report:\n%s", differing, first)
	}
}

func TestScanReturnsWriteErrors(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("/dev/full not available")
	}
	tmp := t.TempDir()
	writeFiles(t, tmp, "a.txt")

	_, err := New(Options{}).Scan(context.Background(), tmp, "/dev/full")
	if err == nil {
		t.Fatal("expected a write error when the report cannot be written")
	}
}

func TestScanTruncatesPreviousReport(t *testing.T) {
	tmp := t.TempDir()
	output := filepath.Join(tmp, report.FileName)
	if err := os.WriteFile(output, []byte(strings.Repeat("stale\n", 100)), 0644); err != nil {
		t.Fatalf("write stale report: %v", err)
	}

	got, _ := scan(t, New(Options{}), tmp)
	if strings.Contains(got, "stale") {
		t.Errorf("expected previous report to be truncated, got %q", got)
	}
}

func TestScanCancelled(t *testing.T) {
	tmp := t.TempDir()
	writeFiles(t, tmp, "a.txt", "b.txt")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	output := filepath.Join(tmp, report.FileName)
	_, err := New(Options{}).Scan(ctx, tmp, output)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	data, readErr := os.ReadFile(output)
	if readErr != nil {
		t.Fatalf("read report: %v", readErr)
	}
	if string(data) != header(tmp) {
		t.Errorf("expected only the header to be written, got %q", data)
	}
}

type fixedClassifier string

func (c fixedClassifier) Classify(string) string { return string(c) }

func TestScanUsesClassifier(t *testing.T) {
	tmp := t.TempDir()
	writeFiles(t, tmp, "weird.bin")

	prober := &stubProber{tracks: map[string][]model.Track{"weird.bin": {{Duration: 1000}}}}
	got, _ := scan(t, New(Options{Classifier: fixedClassifier("audio/x-custom"), Prober: prober}), tmp)

	if !strings.Contains(got, "🧾 Type: audio/x-custom") || !strings.Contains(got, "⏱️ Duration: 1s") {
		t.Errorf("expected custom classifier to drive probing, got %q", got)
	}
}
