package app

import (
	"context"
	"fmt"
	"runtime"
	"sync"
)

// Result carries the outcome of work run with Go.
type Result[T any] struct {
	Value T
	Err   error
}

// Go runs fn on its own goroutine and delivers the outcome on the
// returned channel, which receives exactly one value. A panic in fn is
// reported as an error.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) <-chan Result[T] {
	ch := make(chan Result[T], 1)
	go func() {
		var res Result[T]
		defer func() {
			if r := recover(); r != nil {
				res = Result[T]{Err: fmt.Errorf("panic: %v", r)}
			}
			ch <- res
		}()
		v, err := fn(ctx)
		res = Result[T]{Value: v, Err: err}
	}()
	return ch
}

// TaskFunc is executed once per device serial.
type TaskFunc[T any] func(ctx context.Context, serial string) (T, error)

// DeviceResult is the outcome of a task for one device.
type DeviceResult[T any] struct {
	Serial string `json:"serial"`
	Value  T      `json:"value"`
	Err    error  `json:"-"`
}

// Pool runs device-scoped tasks with bounded concurrency.
type Pool[T any] struct {
	workers int
}

// NewPool creates a pool with at most workers concurrent tasks;
// non-positive means one per CPU.
func NewPool[T any](workers int) *Pool[T] {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Pool[T]{workers: workers}
}

// Run executes task for every serial and returns results in input order.
func (p *Pool[T]) Run(ctx context.Context, serials []string, task TaskFunc[T]) []DeviceResult[T] {
	results := make([]DeviceResult[T], len(serials))
	if len(serials) == 0 {
		return results
	}

	workers := p.workers
	if workers > len(serials) {
		workers = len(serials)
	}

	idx := make(chan int)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range idx {
				serial := serials[i]
				if err := ctx.Err(); err != nil {
					results[i] = DeviceResult[T]{Serial: serial, Err: err}
					continue
				}
				v, err := task(ctx, serial)
				results[i] = DeviceResult[T]{Serial: serial, Value: v, Err: err}
			}
		}()
	}
	for i := range serials {
		idx <- i
	}
	close(idx)
	wg.Wait()
	return results
}
