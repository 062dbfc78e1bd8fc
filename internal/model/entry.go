package model

// Entry describes one scanned file while its report block is written
type Entry struct {
	Name string
	Path string // root joined with the path relative to it
	Size int64
	Type string // MIME label, empty if the extension is unknown

	// Media info, only set for probed audio/video files
	Probed   bool
	Duration string // formatted duration, empty if no track had one
	ProbeErr error
}

// IsMedia reports whether the type label names an audio or video type
func (e Entry) IsMedia() bool {
	return IsMediaType(e.Type)
}
