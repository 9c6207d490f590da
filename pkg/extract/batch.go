package extract

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/usestring/schemex/pkg/schema"
)

// ExtractFiles infers schemas from several documents concurrently, at most
// workers at a time, and returns them in input order. Each extraction builds
// its own walk state, so nothing is shared between the goroutines. The first
// failure cancels the remaining work.
func (e *Extractor) ExtractFiles(ctx context.Context, paths []string, workers int) ([]*schema.Schema, error) {
	if workers < 1 {
		workers = 1
	}

	out := make([]*schema.Schema, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := e.ExtractFile(path)
			if err != nil {
				return err
			}
			out[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
