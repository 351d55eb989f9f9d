package interact

import (
	"context"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/sync/errgroup"

	"github.com/reallyoldfogie/raytrace-blocks/raycast"
)

// Ray is one named trace request.
type Ray struct {
	Name   string
	Start  mgl64.Vec3
	End    mgl64.Vec3
	Radius float64
}

// Result is the outcome of tracing one Ray. Err is set when the ray itself
// was rejected, e.g. raycast.ErrDegenerateRay.
type Result struct {
	Ray     Ray
	Hit     raycast.HitResult
	OK      bool
	Elapsed time.Duration
	Err     error
}

// TraceAll traces rays against grid using up to workers goroutines and
// returns the results in the order of rays. The grid must allow concurrent
// reads. Only cancellation of ctx fails the batch as a whole.
func TraceAll(ctx context.Context, grid raycast.Grid, rays []Ray, workers int) ([]Result, error) {
	if workers < 1 {
		workers = 1
	}
	results := make([]Result, len(rays))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, r := range rays {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			began := time.Now()
			hit, ok, err := raycast.Raycast(grid, r.Start, r.End, r.Radius)
			results[i] = Result{Ray: r, Hit: hit, OK: ok, Elapsed: time.Since(began), Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
