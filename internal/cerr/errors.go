// Package cerr is the translator's error taxonomy: a structured
// TranslatorError carrying a source location and an optional suggestion,
// and a Collector that batches them the way a multi-error compiler
// pass would. Every error in the pipeline is fatal to the current
// translation — none are recoverable internally — but the driver still
// wants to show the user more than one problem at a time when the
// parser detects several independently (e.g. several unsupported
// mnemonics), so collection is still useful even though nothing here
// retries. The translator reports only its first error.
package cerr

import (
	"fmt"
	"strings"
)

// Category classifies which pipeline stage raised the error.
type Category int

const (
	CategoryParse Category = iota
	CategoryTranslate
	CategoryIO
)

func (c Category) String() string {
	switch c {
	case CategoryParse:
		return "parse"
	case CategoryTranslate:
		return "translate"
	case CategoryIO:
		return "io"
	default:
		return "unknown"
	}
}

// Kind enumerates the specific error conditions the spec names. Kind is
// distinct from Category: Category says which stage, Kind says exactly
// what went wrong within it.
type Kind int

const (
	UnsupportedInstruction Kind = iota
	BadOperand
	UndefinedRegister
	ImmediateOutOfRange
	UnmappableOperand
	UnmatchedHiLoPair
	UndefinedLabel
	ImmediateTooLargeForTarget
	IOError
)

func (k Kind) String() string {
	switch k {
	case UnsupportedInstruction:
		return "UnsupportedInstruction"
	case BadOperand:
		return "BadOperand"
	case UndefinedRegister:
		return "UndefinedRegister"
	case ImmediateOutOfRange:
		return "ImmediateOutOfRange"
	case UnmappableOperand:
		return "UnmappableOperand"
	case UnmatchedHiLoPair:
		return "UnmatchedHiLoPair"
	case UndefinedLabel:
		return "UndefinedLabel"
	case ImmediateTooLargeForTarget:
		return "ImmediateTooLargeForTarget"
	case IOError:
		return "IOError"
	default:
		return "Unknown"
	}
}

// Location pinpoints where in the source text an error occurred.
type Location struct {
	File string
	Line int
}

func (loc Location) String() string {
	if loc.File == "" {
		if loc.Line == 0 {
			return ""
		}
		return fmt.Sprintf("line %d", loc.Line)
	}
	return fmt.Sprintf("%s:%d", loc.File, loc.Line)
}

// TranslatorError is a single fatal diagnostic, always carrying enough
// context to name exactly one offending source line and one error kind —
// the propagation policy spec.md §7 requires.
type TranslatorError struct {
	Category   Category
	Kind       Kind
	Message    string
	Location   Location
	SourceLine string // the raw text of the offending line, if known
	Suggestion string // "did you mean 'addi'?", if applicable
}

func (e TranslatorError) Error() string {
	loc := e.Location.String()
	if loc == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", loc, e.Kind, e.Message)
}

// Diagnostic renders the single-line, human-readable diagnostic the
// driver prints to standard error on a fatal error, per spec.md §6's
// driver contract: "a single-line diagnostic on standard error naming
// the source line and error kind."
func (e TranslatorError) Diagnostic() string {
	var sb strings.Builder
	sb.WriteString(e.Category.String())
	sb.WriteString(" error")
	if loc := e.Location.String(); loc != "" {
		sb.WriteString(" at ")
		sb.WriteString(loc)
	}
	sb.WriteString(": ")
	sb.WriteString(e.Kind.String())
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	if e.SourceLine != "" {
		sb.WriteString(fmt.Sprintf(" (%q)", e.SourceLine))
	}
	if e.Suggestion != "" {
		sb.WriteString(" — did you mean '")
		sb.WriteString(e.Suggestion)
		sb.WriteString("'?")
	}
	return sb.String()
}

// Collector accumulates errors across a single parse pass, so the driver
// can report every unsupported mnemonic or bad operand it finds instead
// of stopping at the first one. The pipeline as a whole
// is still fatal-on-error — Collector changes how many errors are shown
// per run, not whether translation proceeds after one is found.
type Collector struct {
	errs []TranslatorError
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Add records an error.
func (c *Collector) Add(e TranslatorError) {
	c.errs = append(c.errs, e)
}

// HasErrors reports whether any error was recorded.
func (c *Collector) HasErrors() bool {
	return len(c.errs) > 0
}

// Errors returns every recorded error, in the order they were added.
func (c *Collector) Errors() []TranslatorError {
	return c.errs
}

// Report renders every recorded error as newline-separated diagnostics.
func (c *Collector) Report() string {
	lines := make([]string, len(c.errs))
	for i, e := range c.errs {
		lines[i] = e.Diagnostic()
	}
	return strings.Join(lines, "\n")
}

// Parse builds a CategoryParse error.
func Parse(kind Kind, loc Location, sourceLine, message string) TranslatorError {
	return TranslatorError{Category: CategoryParse, Kind: kind, Location: loc, SourceLine: sourceLine, Message: message}
}

// Translate builds a CategoryTranslate error.
func Translate(kind Kind, loc Location, message string) TranslatorError {
	return TranslatorError{Category: CategoryTranslate, Kind: kind, Location: loc, Message: message}
}

// IO builds a CategoryIO error from an underlying error.
func IO(err error) TranslatorError {
	return TranslatorError{Category: CategoryIO, Kind: IOError, Message: err.Error()}
}
