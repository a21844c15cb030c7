package utils

import (
	"errors"
	"sync"
)

// Parallel runs the given functions concurrently and waits for all of them.
// The returned error joins every non-nil error, in call order.
func Parallel(fns ...func() error) error {
	var wg sync.WaitGroup
	errs := make([]error, len(fns))

	wg.Add(len(fns))
	for i, fn := range fns {
		go func(i int, fn func() error) {
			defer wg.Done()
			errs[i] = fn()
		}(i, fn)
	}
	wg.Wait()

	return errors.Join(errs...)
}
