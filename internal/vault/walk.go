package vault

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// WalkNotes visits every markdown note under root, skipping hidden and
// underscore-prefixed entries at any depth. The traversal is an explicit
// stack walk rather than recursion, and checks ctx between directories so a
// long walk can be canceled.
func WalkNotes(ctx context.Context, root string, fn func(path string) error) error {
	stack := []string{root}

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(dir)
		if err != nil {
			// Unreadable directories are skipped, not fatal.
			continue
		}

		for _, entry := range entries {
			name := entry.Name()
			if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
				continue
			}

			full := filepath.Join(dir, name)
			if entry.IsDir() {
				stack = append(stack, full)
				continue
			}
			if !strings.HasSuffix(name, ".md") {
				continue
			}
			if err := fn(full); err != nil {
				return err
			}
		}
	}

	return nil
}
