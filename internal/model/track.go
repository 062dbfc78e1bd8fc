package model

import "strings"

// Track is a single stream (or the container itself) inside a media file
type Track struct {
	Kind     string  // e.g. "General", "Video", "Audio"
	Duration float64 // milliseconds, 0 when the track has no duration
}

// HasDuration returns true if the track carries a usable duration
func (t Track) HasDuration() bool {
	return t.Duration > 0
}

// FirstDuration returns the duration of the first track that has one.
// Later tracks are never consulted, even if they are longer.
func FirstDuration(tracks []Track) (float64, bool) {
	for _, t := range tracks {
		if t.HasDuration() {
			return t.Duration, true
		}
	}
	return 0, false
}

// IsMediaType reports whether a MIME label is audio or video.
// Matching is a case-sensitive substring check.
func IsMediaType(label string) bool {
	if label == "" {
		return false
	}
	return strings.Contains(label, "video") || strings.Contains(label, "audio")
}
