// Package prompt asks the operator which directory to scan.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// Text is shown in front of the input
const Text = "📂 Enter path to scan: "

// ErrCancelled is returned when the operator aborts the prompt or stdin
// ends before anything was typed
var ErrCancelled = errors.New("prompt cancelled")

// ReadPath asks for the scan target. Terminals get an editable input
// line; anything else (pipes, files) is read as a single line.
func ReadPath(in io.Reader, out io.Writer) (string, error) {
	if isTerminal(in) && isTerminal(out) {
		return readInteractive(in, out)
	}
	return ReadLine(in, out)
}

// ReadLine prints the prompt and reads one line from in
func ReadLine(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, Text)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read path: %w", err)
		}
		if strings.TrimSpace(line) == "" {
			fmt.Fprintln(out)
			return "", ErrCancelled
		}
	}
	return Clean(line), nil
}

// Clean strips surrounding whitespace and quotes, as left behind by
// dragging a folder into a terminal or copying a quoted path
func Clean(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'`)
	return strings.TrimSpace(s)
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
