// Command loxvm is the outer program driver named only by contract in
// spec.md §1/§6: it reads a file or drives a REPL line loop and is not
// itself part of the core pipeline.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"loxvm/chunk"
	"loxvm/compiler"
	"loxvm/engine"
	"loxvm/internal/bench"
	"loxvm/vm"
)

// defaultBenchSource is run by -bench when no path is given: a mix of
// arithmetic, globals and string concatenation exercising the compiler
// and VM the way the end-to-end scenarios in spec.md §8 do.
const defaultBenchSource = `var a = 1; var b = 2; print a + b * 3; a = a + 1; print "x" + "y";`

func main() {
	trace := flag.Bool("trace", false, "print each instruction before executing it")
	compileOut := flag.String("compile", "", "compile the given source file to a .loxc bytecode file instead of running it")
	benchIters := flag.Int("bench", 0, "compile and run the given (or a canned) program this many times, then print throughput")
	flag.Parse()

	args := flag.Args()
	if len(args) > 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [-trace] [-compile out] [-bench n] [path]\n", os.Args[0])
		os.Exit(64)
	}

	opts := engine.Options{Trace: *trace}

	switch {
	case *benchIters > 0:
		os.Exit(runBench(args, *benchIters))
	case *compileOut != "":
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "Usage: loxvm -compile out.loxc <path>")
			os.Exit(64)
		}
		if err := compileFile(args[0], *compileOut); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(65)
		}
	case len(args) == 1:
		os.Exit(runFile(args[0], opts))
	default:
		runREPL(opts)
	}
}

// runBench times compiling+running a program (the named file, or
// defaultBenchSource if none was given) iters times and prints a
// human-readable throughput summary, the [DOMAIN] benchmark harness
// addition.
func runBench(args []string, iters int) int {
	name := "canned"
	source := defaultBenchSource
	if len(args) == 1 {
		name = args[0]
		data, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, errors.Wrapf(err, "reading %s", args[0]))
			return 74
		}
		source = string(data)
	}

	result, err := bench.Run(name, source, iters)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 70
	}
	fmt.Println(result)
	return 0
}

// runFile reads path, interprets it (or loads it as a compiled .loxc
// chunk directly), and returns the process exit code per spec.md §6:
// 65 on compile error or a .loxc file that fails to load, 70 on runtime
// error, 0 otherwise. If path cannot be read it exits with 74 itself.
func runFile(path string, opts engine.Options) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.Wrapf(err, "reading %s", path))
		os.Exit(74)
	}

	ctx := vm.NewContext()
	defer ctx.FreeObjects()

	if chunk.IsBytecodeFile(source) {
		c, err := chunk.Deserialize(source, ctx)
		if err != nil {
			fmt.Fprintln(os.Stderr, errors.Wrap(err, "loading bytecode file"))
			return 65
		}
		machine := vm.New(ctx, os.Stdout)
		if err := machine.Run(c); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 70
		}
		return 0
	}

	result, _ := engine.Interpret(ctx, string(source), os.Stdout, os.Stderr, opts)
	switch result {
	case engine.CompileError:
		return 65
	case engine.RuntimeError:
		return 70
	default:
		return 0
	}
}

// compileFile compiles path to a .loxc bytecode file at outPath
// without running it — the [DOMAIN] serialization addition.
func compileFile(path, outPath string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}

	ctx := vm.NewContext()
	defer ctx.FreeObjects()

	c, ok := compiler.Compile(string(source), ctx, os.Stderr)
	if !ok {
		return errors.New("compilation failed")
	}

	data, err := chunk.Serialize(c)
	if err != nil {
		return errors.Wrap(err, "serializing chunk")
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", outPath)
	}
	return nil
}

// runREPL implements spec.md §6's no-args mode: read a line, interpret
// it, print the prompt again. One Context is shared across the whole
// session, so a global defined on one line is visible on the next.
func runREPL(opts engine.Options) {
	ctx := vm.NewContext()
	defer ctx.FreeObjects()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return
		}
		line := scanner.Text()
		if line == "" {
			continue
		}
		_, _ = engine.Interpret(ctx, line, os.Stdout, os.Stderr, opts)
	}
}
