package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/pavanmanishd/opendi/calculus"
)

func runIntegrate(args []string, stdout, stderr io.Writer, logger *slog.Logger) int {
	fs := flag.NewFlagSet("integrate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	name := fs.String("f", "", "function name")
	a := fs.Float64("a", 0, "lower bound")
	b := fs.Float64("b", 1, "upper bound")
	eps := fs.Float64("eps", calculus.DefaultTolerance, "convergence tolerance")
	kmax := fs.Int("kmax", calculus.DefaultMaxLevels, "maximum refinement levels")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	f, err := lookupIntegrand(*name)
	if err != nil {
		fmt.Fprintf(stderr, "opendi integrate: %v\n", err)
		return 2
	}

	res := calculus.Integrate(f, *a, *b,
		calculus.WithTolerance(*eps),
		calculus.WithMaxLevels(*kmax),
		calculus.WithLogger(logger),
	)
	if !res.Converged {
		logger.Warn("integral did not converge",
			"f", *name,
			"levels", res.Levels,
			"delta", res.Delta,
		)
	}

	fmt.Fprintf(stdout, "%.15g\n", res.Value)
	fmt.Fprintf(stdout, "levels=%d evaluations=%d converged=%t\n", res.Levels, res.Evaluations, res.Converged)
	return 0
}
