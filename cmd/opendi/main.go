// Command opendi integrates and differentiates named functions and runs
// batches of arena-backed vector jobs from a YAML file.
//
// Usage:
//
//	opendi [-log-level LEVEL] [-log-format text|json] <command> [flags]
//
// Commands:
//
//	integrate  Romberg integral of a named function over [a, b]
//	diff       finite-difference derivative of a named function at x
//	run        execute the jobs in a YAML file against one session arena
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pavanmanishd/opendi/calculus"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("opendi", flag.ContinueOnError)
	fs.SetOutput(stderr)
	logLevel := fs.String("log-level", "warn", "log level: debug, info, warn, error")
	logFormat := fs.String("log-format", "text", "log format: text or json")
	fs.Usage = func() { printUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	logger, err := newLogger(stderr, *logLevel, *logFormat)
	if err != nil {
		fmt.Fprintf(stderr, "opendi: %v\n", err)
		return 2
	}

	rest := fs.Args()
	if len(rest) == 0 {
		printUsage(stderr)
		return 2
	}

	switch rest[0] {
	case "integrate":
		return runIntegrate(rest[1:], stdout, stderr, logger)
	case "diff":
		return runDiff(rest[1:], stdout, stderr)
	case "run":
		return runJobs(rest[1:], stdout, stderr, logger)
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "opendi: unknown command %q\n", rest[0])
		printUsage(stderr)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: opendi [-log-level LEVEL] [-log-format text|json] <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")
	fmt.Fprintln(w, "  integrate -f NAME -a A -b B [-eps EPS] [-kmax K]")
	fmt.Fprintln(w, "  diff -f NAME -x X [-h H] [-method forward|backward|central|second]")
	fmt.Fprintln(w, "  run -config FILE.yaml")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "functions: %s\n", strings.Join(integrandNames(), ", "))
}

func runDiff(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("diff", flag.ContinueOnError)
	fs.SetOutput(stderr)
	name := fs.String("f", "", "function name")
	x := fs.Float64("x", 0, "evaluation point")
	h := fs.Float64("h", 1e-5, "step size")
	method := fs.String("method", "central", "forward, backward, central or second")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	f, err := lookupIntegrand(*name)
	if err != nil {
		fmt.Fprintf(stderr, "opendi diff: %v\n", err)
		return 2
	}

	var deriv func(calculus.Func, float64, float64) float64
	switch *method {
	case "forward":
		deriv = calculus.Forward
	case "backward":
		deriv = calculus.Backward
	case "central":
		deriv = calculus.Central
	case "second":
		deriv = calculus.Second
	default:
		fmt.Fprintf(stderr, "opendi diff: unknown method %q\n", *method)
		return 2
	}

	fmt.Fprintf(stdout, "%.12g\n", deriv(f, *x, *h))
	return 0
}
