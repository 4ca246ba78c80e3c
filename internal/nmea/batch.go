package nmea

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DecodeAll decodes and classifies lines on up to workers goroutines. The
// result is index-aligned with lines. The only error is ctx's.
func DecodeAll(ctx context.Context, lines []string, workers int) ([]Classified, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(lines) {
		workers = len(lines)
	}
	out := make([]Classified, len(lines))
	if len(lines) == 0 {
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	chunk := (len(lines) + workers - 1) / workers
	for start := 0; start < len(lines); start += chunk {
		end := start + chunk
		if end > len(lines) {
			end = len(lines)
		}
		g.Go(func() error {
			for i := start; i < end; i++ {
				if i == start || i%256 == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				out[i] = DecodeMessage(lines[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
