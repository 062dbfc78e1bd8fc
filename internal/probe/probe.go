package probe

import (
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"

	"github.com/floostack/transcoder"
	"github.com/floostack/transcoder/ffmpeg"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/lumipallolabs/dirinfo/internal/logging"
	"github.com/lumipallolabs/dirinfo/internal/model"
)

// Binary is the executable Detect looks for
const Binary = "ffprobe"

// containerKind names the track built from the container-level duration
const containerKind = "General"

// Prober extracts the tracks of a media file. A failed probe returns a
// non-nil error and no tracks.
type Prober interface {
	Probe(path string) ([]model.Track, error)
}

// Status reports whether the probing capability is present
type Status struct {
	Name      string
	Command   string
	Available bool
}

// Detect resolves ffprobe on PATH. The returned Prober is nil when the
// binary cannot be found.
func Detect() (Prober, Status) {
	status := Status{Name: "ffprobe", Command: Binary}

	resolved, err := exec.LookPath(Binary)
	if err != nil {
		logging.Probe.Printf("capability unavailable: %v", err)
		return nil, status
	}

	status.Command = resolved
	status.Available = true
	logging.Probe.Printf("using %s", resolved)
	return NewFFprobe(resolved), status
}

// FFprobe probes files with an ffprobe binary
type FFprobe struct {
	bin string
}

// NewFFprobe creates a prober for the given ffprobe binary
func NewFFprobe(bin string) *FFprobe {
	return &FFprobe{bin: bin}
}

// Probe returns the container track followed by one track per stream,
// in the order ffprobe reports them
func (p *FFprobe) Probe(path string) ([]model.Track, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("empty path")
	}

	cfg := &ffmpeg.Config{FfprobeBinPath: p.bin}
	metadata, err := ffmpeg.New(cfg).Input(path).GetMetadata()
	if err != nil {
		logging.Probe.Printf("probe %s failed: %v", path, err)
		return nil, fmt.Errorf("ffprobe: %s", oneLine(err.Error()))
	}

	return tracksFromMetadata(metadata), nil
}

func tracksFromMetadata(metadata transcoder.Metadata) []model.Track {
	streams := metadata.GetStreams()
	tracks := make([]model.Track, 0, len(streams)+1)

	if format := metadata.GetFormat(); format != nil {
		tracks = append(tracks, newTrack(containerKind, format.GetDuration()))
	}
	for _, s := range streams {
		tracks = append(tracks, newTrack(s.GetCodecType(), s.GetDuration()))
	}
	return tracks
}

var titleCase = cases.Title(language.English)

// newTrack builds a track from ffprobe's codec type and a duration in
// seconds
func newTrack(kind, seconds string) model.Track {
	kind = strings.TrimSpace(kind)
	if kind == "" {
		kind = "Unknown"
	}
	return model.Track{
		Kind:     titleCase.String(kind),
		Duration: parseMillis(seconds),
	}
}

// parseMillis converts ffprobe's "123.456000" seconds into milliseconds.
// Anything unusable ("N/A", negative, NaN) becomes 0.
func parseMillis(seconds string) float64 {
	cleaned := strings.TrimSpace(seconds)
	if cleaned == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) || parsed < 0 {
		return 0
	}
	return parsed * 1000
}

// oneLine collapses multi-line tool output so it fits a single report line
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

var _ Prober = (*FFprobe)(nil)
