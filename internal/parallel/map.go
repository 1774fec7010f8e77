// Package parallel provides an order-preserving parallel map.
package parallel

import (
	"runtime"
	"sync"
)

// Map applies fn to every item using up to workers goroutines.
// result[i] always corresponds to items[i], whichever worker finished first.
// If any call fails, the error of the lowest failing index is returned
// together with a nil slice.
func Map[T, R any](items []T, workers int, fn func(i int, item T) (R, error)) ([]R, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(items) {
		workers = len(items)
	}

	results := make([]R, len(items))
	errs := make([]error, len(items))

	indices := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				results[i], errs[i] = fn(i, items[i])
			}
		}()
	}

	for i := range items {
		indices <- i
	}
	close(indices)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
