// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"context"
	"fmt"

	"github.com/pdiddy/xplore/internal/papers"
)

const exportLimit = 100000

// Export writes the library (or the subset matching opts) to path. The
// format follows the extension: .yaml/.yml for YAML, anything else JSON.
// It returns the number of papers written.
func (s *Store) Export(ctx context.Context, path string, opts SearchOptions) (int, error) {
	opts.MaxResults = exportLimit
	results, err := s.Search(ctx, opts)
	if err != nil {
		return 0, fmt.Errorf("querying for export: %w", err)
	}
	if err := papers.Save(path, results); err != nil {
		return 0, fmt.Errorf("writing %s: %w", path, err)
	}
	return len(results), nil
}
