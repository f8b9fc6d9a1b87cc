// Package driver wires the parser, translator, and emitter into the
// single batch entry point spec.md §6 describes, and carries the
// ambient concerns a complete repo in this corpus's style always has
// around that core: a Config populated from flags and environment
// variables, structured diagnostics, optional --dump-ir tracing, and an
// optional --watch mode built on internal/watch. None of this changes
// the translation semantics in internal/translator — it is the shell
// around it, in the same spirit as the teacher's main.go/cli.go split.
package driver

import (
	"fmt"
	"io"
	"os"

	"github.com/xyproto/env/v2"

	"github.com/xyproto/rv2arm/internal/ast"
	"github.com/xyproto/rv2arm/internal/cerr"
	"github.com/xyproto/rv2arm/internal/emitter"
	"github.com/xyproto/rv2arm/internal/parser"
	"github.com/xyproto/rv2arm/internal/translator"
	"github.com/xyproto/rv2arm/internal/watch"
)

// Config holds every knob the driver exposes, in the manner of the
// teacher's flag-populated globals in main.go, gathered into one value
// instead of package-level variables so the pipeline stays a pure
// function of its inputs.
type Config struct {
	InputPath  string
	OutputPath string // "" means stdout
	Verbose    bool
	Quiet      bool
	Strict     bool // set from -strict or RV2ARM_STRICT; no stage of the pipeline reads it, so translation is the same either way
	Watch      bool
	DumpIR     bool
}

// NewConfig builds a Config from explicit flag values overlaid with
// environment-variable defaults, the way the teacher's go.mod carries
// github.com/xyproto/env/v2 for exactly this role. Flags always win over
// the environment; the environment only supplies the default a flag
// would otherwise fall back to.
func NewConfig(inputPath, outputPath string, verbose, quiet, strict, watchMode, dumpIR bool) Config {
	return Config{
		InputPath:  inputPath,
		OutputPath: outputPath,
		Verbose:    verbose || env.Bool("RV2ARM_VERBOSE"),
		Quiet:      quiet,
		Strict:     strict || env.Bool("RV2ARM_STRICT"),
		Watch:      watchMode,
		DumpIR:     dumpIR,
	}
}

// trace writes a verbose-mode diagnostic line to stderr, in the spirit
// of how VerboseMode gates tracing in the teacher's emit.go and
// codegen_riscv_writer.go — a check of the Config's Verbose and Quiet
// fields in front of a plain fmt.Fprintf, not a logging framework.
func (c Config) trace(format string, args ...any) {
	if c.Verbose && !c.Quiet {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

// Translate runs the full parse -> translate -> emit pipeline once over
// source text and returns the emitted ARM64 assembly, or a non-nil error
// describing the first fatal problem (IO errors aside, parse errors are
// collected and reported together; translation errors are fatal on the
// first one, per spec.md §7's propagation policy).
func (c Config) Translate(source string) (string, error) {
	prog, errs := parser.Parse(c.InputPath, source)
	if errs.HasErrors() {
		return "", fmt.Errorf("%s", errs.Report())
	}
	c.trace("parsed %d items from %s\n", len(prog), c.InputPath)

	if c.DumpIR {
		c.dumpIR(prog)
	}

	target, err := translator.Translate(c.InputPath, prog)
	if err != nil {
		return "", err
	}
	c.trace("translated to %d target items\n", len(target))

	out := emitter.Emit(target)
	return out, nil
}

// dumpIR prints the parsed source-instruction sequence to stderr, ahead
// of translation — a thin debugging affordance analogous to the
// teacher's VerboseMode byte-level tracing in emit.go, specialized here
// to the typed instruction model instead of raw bytes.
func (c Config) dumpIR(prog ast.SourceProgram) {
	fmt.Fprintln(os.Stderr, "--- parsed IR ---")
	for _, item := range prog {
		switch item.Kind {
		case ast.ItemLabel:
			fmt.Fprintf(os.Stderr, "%4d: label %s\n", item.Line, item.LabelName)
		case ast.ItemDirective:
			fmt.Fprintf(os.Stderr, "%4d: directive %s\n", item.Line, item.Directive)
		case ast.ItemInstr:
			fmt.Fprintf(os.Stderr, "%4d: %#v\n", item.Line, item.Instr)
		}
	}
	fmt.Fprintln(os.Stderr, "-----------------")
}

// Run executes one batch translation: read InputPath, translate, and
// write the result to OutputPath (or stdout when OutputPath is empty).
// On any error, no output is written at all — spec.md §7's "no partial
// output" policy — since a half-translated program would silently
// diverge from source semantics.
func (c Config) Run() error {
	data, err := os.ReadFile(c.InputPath)
	if err != nil {
		e := cerr.IO(err)
		return &e
	}

	out, err := c.Translate(string(data))
	if err != nil {
		return err
	}

	return c.writeOutput(out)
}

func (c Config) writeOutput(out string) error {
	if c.OutputPath == "" {
		_, err := io.WriteString(os.Stdout, out)
		return err
	}
	if err := os.WriteFile(c.OutputPath, []byte(out), 0o644); err != nil {
		e := cerr.IO(err)
		return &e
	}
	if !c.Quiet {
		c.trace("wrote %s\n", c.OutputPath)
	}
	return nil
}

// RunWatch runs one batch translation immediately, then re-runs it every
// time InputPath changes on disk, until the process is killed. It is
// pure ambient developer ergonomics around Run — each re-translation is
// still a single synchronous batch, no concurrent translations, matching
// spec.md §5's resource model even with the inotify/kqueue loop layered
// on top.
func (c Config) RunWatch() error {
	if err := c.Run(); err != nil {
		fmt.Fprintln(os.Stderr, FormatError(err))
	}

	w, err := watch.New(func(path string) {
		fmt.Fprintf(os.Stderr, "[watch] %s changed, retranslating\n", path)
		if err := c.Run(); err != nil {
			fmt.Fprintln(os.Stderr, FormatError(err))
		}
	}, c.Verbose)
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.AddFile(c.InputPath); err != nil {
		return err
	}
	w.Watch()
	return nil
}

// FormatError renders err as the single-line diagnostic spec.md §6
// requires the driver to print on any parse or translation error. A
// *cerr.TranslatorError is formatted through its own Diagnostic method;
// anything else (an I/O error that never made it through cerr.IO, a
// *cerr.Collector's combined .Report() string) is printed as-is.
func FormatError(err error) string {
	if te, ok := err.(*cerr.TranslatorError); ok {
		return te.Diagnostic()
	}
	return err.Error()
}
