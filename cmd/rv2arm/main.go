// Command rv2arm is the driver binary: it reads a riscv64 assembly file,
// runs it through the parse/translate/emit pipeline, and writes aarch64
// assembly text. Invoking the assembler and linker on that output is the
// caller's job, per spec.md §1's scope boundary.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/xyproto/rv2arm/internal/driver"
	"github.com/xyproto/rv2arm/internal/engine"
)

const versionString = "rv2arm 0.1.0"

func main() {
	var (
		output  = flag.String("o", "", "output file (default: stdout)")
		verbose = flag.Bool("v", false, "verbose mode (trace each pipeline stage to stderr)")
		quiet   = flag.Bool("q", false, "quiet mode (suppress non-fatal diagnostics)")
		strict  = flag.Bool("strict", false, "set the strict flag on the config (translation output does not change)")
		watch   = flag.Bool("watch", false, "watch the input file and retranslate on every change")
		dumpIR  = flag.Bool("dump-ir", false, "print the parsed source IR to stderr before translating")
		version = flag.Bool("version", false, "print version information and exit")
		from    = flag.String("from", "riscv64", "source architecture (only riscv64 is supported)")
		to      = flag.String("to", "aarch64", "target architecture (only aarch64 is supported)")
	)
	flag.Parse()

	if *version {
		fmt.Println(versionString)
		return
	}

	fromArch, err := engine.ParseArch(*from)
	if err != nil || fromArch != engine.ArchRiscv64 {
		fmt.Fprintf(os.Stderr, "rv2arm: unsupported -from architecture %q: this translator only reads riscv64\n", *from)
		os.Exit(2)
	}
	toArch, err := engine.ParseArch(*to)
	if err != nil || toArch != engine.ArchARM64 {
		fmt.Fprintf(os.Stderr, "rv2arm: unsupported -to architecture %q: this translator only emits aarch64\n", *to)
		os.Exit(2)
	}

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: rv2arm [flags] <input.s>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg := driver.NewConfig(args[0], *output, *verbose, *quiet, *strict, *watch, *dumpIR)

	if cfg.Watch {
		err = cfg.RunWatch()
	} else {
		err = cfg.Run()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, driver.FormatError(err))
		os.Exit(1)
	}
}
