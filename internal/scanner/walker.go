package scanner

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/lumipallolabs/dirinfo/internal/logging"
)

// walkFiles calls fn for every non-directory entry under root, in lexical
// order, descending into each directory as it is reached. Symlinks are
// reported but never followed; a symlink that resolves to a directory is
// skipped. Unreadable entries are logged and skipped. An error returned by
// fn stops the walk and is returned unchanged.
func walkFiles(ctx context.Context, root string, fn func(path string, d fs.DirEntry) error) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		// Check context cancellation
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			logging.Scanner.Printf("walk error at %s: %v", path, err)
			if path == root {
				return err
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
				return nil
			}
		}

		return fn(path, d)
	})
}
