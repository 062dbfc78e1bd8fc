// Package mediatype guesses a MIME label from a file name. It never
// looks at file contents: a file without a known extension has no label.
package mediatype

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Classifier maps a path to a MIME label, or "" when unknown
type Classifier interface {
	Classify(path string) string
}

// registered lists MIME types whose canonical extension is taken from
// the mimetype registry
var registered = []string{
	// video
	"video/mp4", "video/webm", "video/x-matroska", "video/quicktime",
	"video/x-msvideo", "video/x-flv", "video/mpeg", "video/3gpp",
	"video/3gpp2", "video/x-m4v", "video/ogg", "video/x-ms-asf",
	// audio
	"audio/mpeg", "audio/flac", "audio/wav", "audio/aiff", "audio/aac",
	"audio/ogg", "audio/x-m4a", "audio/midi", "audio/ape", "audio/amr",
	"audio/basic", "audio/musepack",
	// everything else people keep next to their media
	"text/plain", "text/html", "text/csv", "text/xml", "application/json",
	"application/pdf", "image/png", "image/jpeg", "image/gif", "image/webp",
	"image/svg+xml", "application/zip", "application/gzip", "application/x-tar",
	"application/x-7z-compressed",
}

// aliases covers extensions the registry only knows under another name
// and common media extensions it has no entry for
var aliases = map[string]string{
	".mp4":  "video/mp4",
	".m4v":  "video/x-m4v",
	".mkv":  "video/x-matroska",
	".mov":  "video/quicktime",
	".qt":   "video/quicktime",
	".avi":  "video/x-msvideo",
	".wmv":  "video/x-ms-wmv",
	".mpg":  "video/mpeg",
	".mpeg": "video/mpeg",
	".mpe":  "video/mpeg",
	".ts":   "video/mp2t",
	".m2ts": "video/mp2t",
	".mts":  "video/mp2t",
	".ogv":  "video/ogg",
	".mp3":  "audio/mpeg",
	".flac": "audio/flac",
	".mka":  "audio/x-matroska",
	".m4a":  "audio/mp4",
	".ogg":  "audio/ogg",
	".oga":  "audio/ogg",
	".opus": "audio/opus",
	".wma":  "audio/x-ms-wma",
	".wav":  "audio/x-wav",
	".aif":  "audio/x-aiff",
	".aiff": "audio/x-aiff",
	".aifc": "audio/x-aiff",
	".mid":  "audio/midi",
	".midi": "audio/midi",
	".weba": "audio/webm",
	".txt":  "text/plain",
	".text": "text/plain",
	".log":  "text/plain",
	".md":   "text/markdown",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
}

// ByExtension classifies files by their lowercase extension
type ByExtension struct {
	table map[string]string
}

// NewByExtension builds the extension table
func NewByExtension() *ByExtension {
	table := make(map[string]string, len(registered)+len(aliases))
	for _, name := range registered {
		m := mimetype.Lookup(name)
		if m == nil || m.Extension() == "" {
			continue
		}
		table[strings.ToLower(m.Extension())] = name
	}
	for ext, name := range aliases {
		table[ext] = name
	}
	return &ByExtension{table: table}
}

// Classify returns the MIME label for path, or "" if the extension is unknown
func (c *ByExtension) Classify(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" || ext == "." {
		return ""
	}
	if label, ok := c.table[ext]; ok {
		return label
	}

	// Fall back to the system tables (/etc/mime.types and friends)
	label := mime.TypeByExtension(ext)
	if label == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(label)
	if err != nil {
		return label
	}
	return mediaType
}

var _ Classifier = (*ByExtension)(nil)
