// Package probe reads track durations from media files.
//
// The only implementation shells out to ffprobe through
// github.com/floostack/transcoder. Whether ffprobe exists is decided once
// by Detect; callers treat a nil Prober as "no media info available" and
// skip duration reporting for the whole run.
package probe
