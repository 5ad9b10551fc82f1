package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/pavanmanishd/opendi"
	"github.com/pavanmanishd/opendi/arena"
	"github.com/pavanmanishd/opendi/calculus"
	"github.com/pavanmanishd/opendi/linalg"
)

const defaultJobCapacity = 64 << 10

// JobFile is the YAML document accepted by "opendi run".
//
//	arena:
//	  capacity: 64KiB
//	  mmap: false
//	integrals:
//	  - name: half-wave
//	    f: sin
//	    a: 0
//	    b: 3.141592653589793
//	vectors:
//	  - name: sum
//	    op: add
//	    x: [1, 2, 3]
//	    y: [4, 5, 6]
type JobFile struct {
	Arena     ArenaSpec     `yaml:"arena"`
	Integrals []IntegralJob `yaml:"integrals"`
	Vectors   []VectorJob   `yaml:"vectors"`
}

// ArenaSpec sizes the session arena shared by every vector job.
type ArenaSpec struct {
	Capacity ByteSize `yaml:"capacity"`
	Mmap     bool     `yaml:"mmap"`
}

// IntegralJob is one Romberg integration. Eps and KMax fall back to the
// calculus defaults when omitted.
type IntegralJob struct {
	Name string   `yaml:"name"`
	F    string   `yaml:"f"`
	A    float64  `yaml:"a"`
	B    float64  `yaml:"b"`
	Eps  *float64 `yaml:"eps"`
	KMax *int     `yaml:"kmax"`
}

// VectorJob is one vector operation. Op is add, scale, cross, dot or norm.
type VectorJob struct {
	Name   string    `yaml:"name"`
	Op     string    `yaml:"op"`
	X      []float64 `yaml:"x"`
	Y      []float64 `yaml:"y"`
	Scalar float64   `yaml:"scalar"`
}

// ByteSize is a byte count written either as a plain integer or in
// human-readable form such as "64KiB" or "1 MB".
type ByteSize int

// UnmarshalYAML implements yaml.Unmarshaler.
func (b *ByteSize) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: byte size must be a scalar", node.Line)
	}
	n, err := humanize.ParseBytes(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	if n > uint64(arena.MaxCapacity) {
		return fmt.Errorf("line %d: %s exceeds the maximum arena capacity", node.Line, node.Value)
	}
	*b = ByteSize(n)
	return nil
}

// LoadJobFile reads and validates a job file.
func LoadJobFile(path string) (*JobFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseJobFile(f)
}

// ParseJobFile decodes and validates a job file. Unknown keys are rejected.
func ParseJobFile(r io.Reader) (*JobFile, error) {
	var jf JobFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&jf); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("job file is empty")
		}
		return nil, fmt.Errorf("parse job file: %w", err)
	}
	if jf.Arena.Capacity == 0 {
		jf.Arena.Capacity = defaultJobCapacity
	}
	if err := jf.Validate(); err != nil {
		return nil, err
	}
	return &jf, nil
}

// Validate reports every problem in the job file at once.
func (jf *JobFile) Validate() error {
	var errs []error
	if len(jf.Integrals) == 0 && len(jf.Vectors) == 0 {
		errs = append(errs, errors.New("no integrals or vectors to run"))
	}
	for i, job := range jf.Integrals {
		if _, err := lookupIntegrand(job.F); err != nil {
			errs = append(errs, fmt.Errorf("integrals[%d]: %w", i, err))
		}
	}
	for i, job := range jf.Vectors {
		switch job.Op {
		case "add", "cross", "dot":
			if job.Y == nil {
				errs = append(errs, fmt.Errorf("vectors[%d]: op %s needs y", i, job.Op))
			}
		case "scale", "norm":
		default:
			errs = append(errs, fmt.Errorf("vectors[%d]: unknown op %q", i, job.Op))
		}
	}
	return errors.Join(errs...)
}

func runJobs(args []string, stdout, stderr io.Writer, logger *slog.Logger) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(stderr)
	path := fs.String("config", "", "YAML job file")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *path == "" {
		fmt.Fprintln(stderr, "opendi run: -config is required")
		return 2
	}

	jf, err := LoadJobFile(*path)
	if err != nil {
		fmt.Fprintf(stderr, "opendi run: %v\n", err)
		return 1
	}
	if err := execute(jf, stdout, logger); err != nil {
		fmt.Fprintf(stderr, "opendi run: %v\n", err)
		return 1
	}
	return 0
}

// execute runs every job against one session. A vector job that exhausts the
// arena is reported and skipped; the remaining jobs still run.
func execute(jf *JobFile, w io.Writer, logger *slog.Logger) error {
	arenaOpts := []arena.Option{arena.WithName("run")}
	if jf.Arena.Mmap {
		arenaOpts = append(arenaOpts, arena.WithMmap())
	}
	s, err := opendi.NewSession(int(jf.Arena.Capacity),
		opendi.WithLogger(logger),
		opendi.WithArenaOptions(arenaOpts...),
	)
	if err != nil {
		return err
	}
	defer s.Close()

	for i, job := range jf.Integrals {
		f, _ := lookupIntegrand(job.F)
		var opts []calculus.Option
		if job.Eps != nil {
			opts = append(opts, calculus.WithTolerance(*job.Eps))
		}
		if job.KMax != nil {
			opts = append(opts, calculus.WithMaxLevels(*job.KMax))
		}
		res := s.Integrate(f, job.A, job.B, opts...)

		status := "converged"
		if !res.Converged {
			status = "not converged"
		}
		fmt.Fprintf(w, "integral %s: %.12g (%d levels, %s evaluations, %s)\n",
			jobName(job.Name, "integral", i), res.Value, res.Levels, humanize.Comma(int64(res.Evaluations)), status)
	}

	var failed int
	for i, job := range jf.Vectors {
		name := jobName(job.Name, "vector", i)
		out, err := runVector(s, job)
		if err != nil {
			failed++
			fmt.Fprintf(w, "vector %s: error: %v\n", name, err)
			continue
		}
		fmt.Fprintf(w, "vector %s: %s\n", name, out)
	}

	m := s.Metrics()
	fmt.Fprintf(w, "arena: %s of %s in use (peak %s), %d pushes, %d failed\n",
		humanize.IBytes(uint64(m.SizeInUse)),
		humanize.IBytes(uint64(m.Capacity)),
		humanize.IBytes(uint64(m.Peak)),
		m.Pushes,
		m.FailedPushes,
	)
	if failed > 0 {
		return fmt.Errorf("%d of %d vector jobs failed", failed, len(jf.Vectors))
	}
	return nil
}

func runVector(s *opendi.Session, job VectorJob) (string, error) {
	var (
		out arena.Slice[float64]
		err error
	)
	switch job.Op {
	case "add":
		out, err = s.VecAdd(job.X, job.Y)
	case "scale":
		out, err = s.VecScale(job.X, job.Scalar)
	case "cross":
		out, err = s.VecCross(job.X, job.Y)
	case "dot":
		d, derr := linalg.Dot(job.X, job.Y)
		if derr != nil {
			return "", derr
		}
		return fmt.Sprintf("%g", d), nil
	case "norm":
		return fmt.Sprintf("%g", linalg.Norm(job.X)), nil
	default:
		return "", fmt.Errorf("unknown op %q", job.Op)
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprint(out.Get()), nil
}

func jobName(name, kind string, i int) string {
	if name != "" {
		return name
	}
	return fmt.Sprintf("%s-%d", kind, i)
}
