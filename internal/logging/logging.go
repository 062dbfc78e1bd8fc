// Package logging holds the debug loggers. They discard everything unless
// DIRINFO_DEBUG is set, so the console stays free for the prompt and spinner.
package logging

import (
	"io"
	"log"
	"os"
)

// DebugFile is where debug output goes when DIRINFO_DEBUG is set
const DebugFile = "dirinfo-debug.log"

var (
	Debug   *log.Logger
	Scanner *log.Logger
	Probe   *log.Logger
)

func init() {
	// Only enable logging if DIRINFO_DEBUG environment variable is set
	if os.Getenv("DIRINFO_DEBUG") == "" {
		Debug = log.New(io.Discard, "", 0)
		Scanner = log.New(io.Discard, "", 0)
		Probe = log.New(io.Discard, "", 0)
		return
	}

	debugFile, err := os.OpenFile(DebugFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		// Never interleave with the spinner on stdout
		Debug = log.New(os.Stderr, "[DEBUG] ", log.Ldate|log.Ltime)
		Scanner = log.New(os.Stderr, "[SCANNER] ", log.Ldate|log.Ltime)
		Probe = log.New(os.Stderr, "[PROBE] ", log.Ldate|log.Ltime)
		return
	}

	Debug = log.New(debugFile, "[DEBUG] ", log.Lmicroseconds)
	Scanner = log.New(debugFile, "[SCANNER] ", log.Lmicroseconds)
	Probe = log.New(debugFile, "[PROBE] ", log.Lmicroseconds)
}
