// Package bench runs a fixed source program through the engine
// repeatedly and reports throughput, the [DOMAIN] benchmark harness
// SPEC_FULL.md adds on top of the core interpreter.
package bench

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"loxvm/engine"
	"loxvm/vm"
)

// Result is one benchmark's outcome.
type Result struct {
	Name       string
	Iterations int
	Elapsed    time.Duration
	BytesIn    int
}

// String renders Result the way a human reads it at the terminal,
// using go-humanize's comma grouping for the iteration count and the
// throughput figure; durations use time.Duration's own formatting.
func (r Result) String() string {
	perOp := r.Elapsed / time.Duration(r.Iterations)
	throughput := float64(r.Iterations) / r.Elapsed.Seconds()
	return fmt.Sprintf("%s: %s iterations in %s (%s/op, %s ops/sec)",
		r.Name,
		humanize.Comma(int64(r.Iterations)),
		r.Elapsed,
		perOp,
		humanize.Comma(int64(throughput)),
	)
}

// Run compiles source once per iteration and executes it against a
// fresh Context, discarding stdout, timing only the compile+run cost.
// Recompiling every iteration is deliberate: it measures the compiler
// along with the VM rather than amortizing it away.
func Run(name, source string, iterations int) (Result, error) {
	start := time.Now()
	for i := 0; i < iterations; i++ {
		ctx := vm.NewContext()
		result, err := engine.Interpret(ctx, source, io.Discard, io.Discard, engine.Options{})
		ctx.FreeObjects()
		if err != nil {
			return Result{}, err
		}
		if result != engine.OK {
			return Result{}, fmt.Errorf("bench %q: iteration %d returned %s", name, i, result)
		}
	}
	return Result{
		Name:       name,
		Iterations: iterations,
		Elapsed:    time.Since(start),
		BytesIn:    len(source),
	}, nil
}
