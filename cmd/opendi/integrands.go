package main

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/pavanmanishd/opendi/calculus"
)

var integrands = map[string]calculus.Func{
	"x":   func(x float64) float64 { return x },
	"x2":  func(x float64) float64 { return x * x },
	"x3":  func(x float64) float64 { return x * x * x },
	"sin": math.Sin,
	"cos": math.Cos,
	"exp": math.Exp,
	"inv": func(x float64) float64 { return 1 / x },
	"one": func(float64) float64 { return 1 },
}

func lookupIntegrand(name string) (calculus.Func, error) {
	if name == "" {
		return nil, fmt.Errorf("missing function name (one of %s)", strings.Join(integrandNames(), ", "))
	}
	f, ok := integrands[name]
	if !ok {
		return nil, fmt.Errorf("unknown function %q (one of %s)", name, strings.Join(integrandNames(), ", "))
	}
	return f, nil
}

func integrandNames() []string {
	names := make([]string, 0, len(integrands))
	for name := range integrands {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
