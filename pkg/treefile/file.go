package treefile

import (
	"context"
	"fmt"

	"github.com/yaklabco/bonsai/pkg/fsutil"
	"github.com/yaklabco/bonsai/pkg/green"
)

// Load reads and decodes the tree file at path. An empty format is
// detected from the path and content. It returns the format used.
func Load(ctx context.Context, path string, format Format, opts Options) (green.Node, Format, error) {
	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return green.Node{}, "", fmt.Errorf("load tree: %w", err)
	}

	if format == "" {
		format = DetectFormat(path, content)
	}

	root, err := Decode(ctx, content, format, opts)
	if err != nil {
		return green.Node{}, format, fmt.Errorf("load %s: %w", path, err)
	}
	return root, format, nil
}

// Save writes root to path atomically. It reports whether the file
// changed.
func Save(ctx context.Context, path string, root green.Node, format Format, opts Options) (bool, error) {
	content, err := Marshal(root, format, opts)
	if err != nil {
		return false, err
	}

	written, err := fsutil.WriteAtomicIfChanged(ctx, path, content, 0)
	if err != nil {
		return false, fmt.Errorf("save %s: %w", path, err)
	}
	return written, nil
}
