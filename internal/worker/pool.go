// Package worker provides bounded concurrent fan-out for independent jobs.
package worker

import (
	"context"
	"sync"
)

// Map runs fn over every input with at most workers goroutines and returns
// the results in input order. Inputs are mutually independent; ordering is
// preserved by index, not by completion time.
func Map[In, Out any](ctx context.Context, inputs []In, workers int, fn func(context.Context, In) Out) []Out {
	if workers <= 0 {
		workers = 1
	}
	if workers > len(inputs) {
		workers = len(inputs)
	}

	results := make([]Out, len(inputs))
	indices := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				results[i] = fn(ctx, inputs[i])
			}
		}()
	}

	for i := range inputs {
		select {
		case <-ctx.Done():
		case indices <- i:
			continue
		}
		break
	}
	close(indices)

	wg.Wait()
	return results
}
