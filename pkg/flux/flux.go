// Package flux is a small teaching package of stream operators over
// channels: build a finite source, transform it, combine several sources, and
// collect the result. Every operator returns a new receive channel fed by its
// own goroutine and closed when the source is exhausted.
package flux

import "sync"

// Just emits the given values in order, then completes.
func Just[T any](values ...T) <-chan T {
	return FromSlice(values)
}

// FromSlice emits the slice elements in order, then completes.
func FromSlice[T any](values []T) <-chan T {
	out := make(chan T)
	go func() {
		defer close(out)
		for _, v := range values {
			out <- v
		}
	}()
	return out
}

// Map transforms each element with fn, preserving order.
func Map[T, U any](in <-chan T, fn func(T) U) <-chan U {
	out := make(chan U)
	go func() {
		defer close(out)
		for v := range in {
			out <- fn(v)
		}
	}()
	return out
}

// Filter keeps only the elements for which pred is true.
func Filter[T any](in <-chan T, pred func(T) bool) <-chan T {
	out := make(chan T)
	go func() {
		defer close(out)
		for v := range in {
			if pred(v) {
				out <- v
			}
		}
	}()
	return out
}

// FlatMap expands each element into a sub-stream and concatenates the
// sub-streams in source order (the sequential flavor, not the async one).
func FlatMap[T, U any](in <-chan T, fn func(T) <-chan U) <-chan U {
	out := make(chan U)
	go func() {
		defer close(out)
		for v := range in {
			for u := range fn(v) {
				out <- u
			}
		}
	}()
	return out
}

// Concat drains each source fully before starting the next.
func Concat[T any](ins ...<-chan T) <-chan T {
	out := make(chan T)
	go func() {
		defer close(out)
		for _, in := range ins {
			for v := range in {
				out <- v
			}
		}
	}()
	return out
}

// Merge interleaves all sources as their elements arrive. Ordering across
// sources is not defined; completion waits for every source.
func Merge[T any](ins ...<-chan T) <-chan T {
	out := make(chan T)
	var wg sync.WaitGroup
	wg.Add(len(ins))
	for _, in := range ins {
		go func(in <-chan T) {
			defer wg.Done()
			for v := range in {
				out <- v
			}
		}(in)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Zip pairs elements from a and b positionally and combines them with fn,
// completing as soon as either source completes. The longer source is drained
// so its feeder goroutine is not left blocked on send.
func Zip[A, B, C any](a <-chan A, b <-chan B, fn func(A, B) C) <-chan C {
	out := make(chan C)
	go func() {
		defer close(out)
		for {
			av, ok := <-a
			if !ok {
				go drain(b)
				return
			}
			bv, ok := <-b
			if !ok {
				go drain(a)
				return
			}
			out <- fn(av, bv)
		}
	}()
	return out
}

func drain[T any](in <-chan T) {
	for range in {
	}
}

// DefaultIfEmpty emits def when the source completes without any element,
// otherwise passes the source through unchanged.
func DefaultIfEmpty[T any](in <-chan T, def T) <-chan T {
	out := make(chan T)
	go func() {
		defer close(out)
		empty := true
		for v := range in {
			empty = false
			out <- v
		}
		if empty {
			out <- def
		}
	}()
	return out
}

// SwitchIfEmpty switches to the alternative stream when the source completes
// without any element.
func SwitchIfEmpty[T any](in <-chan T, alt func() <-chan T) <-chan T {
	out := make(chan T)
	go func() {
		defer close(out)
		empty := true
		for v := range in {
			empty = false
			out <- v
		}
		if empty {
			for v := range alt() {
				out <- v
			}
		}
	}()
	return out
}

// Collect drains the stream into a slice.
func Collect[T any](in <-chan T) []T {
	var result []T
	for v := range in {
		result = append(result, v)
	}
	return result
}
