package parser

import (
	"testing"

	"github.com/xyproto/rv2arm/internal/ast"
	"github.com/xyproto/rv2arm/internal/reg"
)

func TestParseSimpleExit(t *testing.T) {
	src := "li a7, 93\nli a0, 42\necall\n"
	prog, errs := Parse("exit.s", src)
	if errs.HasErrors() {
		t.Fatalf("unexpected parse errors: %s", errs.Report())
	}
	if len(prog) != 3 {
		t.Fatalf("expected 3 items, got %d", len(prog))
	}
	li0, ok := prog[0].Instr.(ast.Li)
	if !ok || li0.Rd != reg.A7 || li0.Imm != 93 {
		t.Errorf("unexpected first instruction: %#v", prog[0].Instr)
	}
	if _, ok := prog[2].Instr.(ast.Ecall); !ok {
		t.Errorf("expected ecall, got %#v", prog[2].Instr)
	}
}

func TestParseLabelsAndBranch(t *testing.T) {
	src := "beq a0, a0, .L\nli a0, 99\n.L:\nli a7, 93\n"
	prog, errs := Parse("b.s", src)
	if errs.HasErrors() {
		t.Fatalf("unexpected parse errors: %s", errs.Report())
	}
	labels := prog.Labels()
	if len(labels) != 1 || labels[0] != ".L" {
		t.Fatalf("expected label .L, got %v", labels)
	}
	br, ok := prog[0].Instr.(ast.Branch)
	if !ok || br.Op != ast.Beq || br.Label != ".L" {
		t.Errorf("unexpected branch: %#v", prog[0].Instr)
	}
}

func TestParseNegativeAddi(t *testing.T) {
	prog, errs := Parse("neg.s", "addi a0, a0, -3\n")
	if errs.HasErrors() {
		t.Fatalf("unexpected parse errors: %s", errs.Report())
	}
	ai, ok := prog[0].Instr.(ast.AddImm)
	if !ok || ai.Imm != -3 {
		t.Fatalf("unexpected instruction: %#v", prog[0].Instr)
	}
}

func TestParseAddiwSetsWordWidth(t *testing.T) {
	prog, errs := Parse("addiw.s", "addiw a0, a0, 1\naddi a1, a1, 1\n")
	if errs.HasErrors() {
		t.Fatalf("unexpected parse errors: %s", errs.Report())
	}
	addiw, ok := prog[0].Instr.(ast.AddImm)
	if !ok || addiw.Width != reg.Word {
		t.Fatalf("expected addiw to carry Word width, got %#v", prog[0].Instr)
	}
	addi, ok := prog[1].Instr.(ast.AddImm)
	if !ok || addi.Width != reg.Double {
		t.Fatalf("expected addi to carry Double width, got %#v", prog[1].Instr)
	}
}

func TestParseMemoryOperand(t *testing.T) {
	prog, errs := Parse("mem.s", "ld a0, 16(sp)\nsw a1, -4(s0)\n")
	if errs.HasErrors() {
		t.Fatalf("unexpected parse errors: %s", errs.Report())
	}
	ld, ok := prog[0].Instr.(ast.Mem)
	if !ok || ld.Op != ast.OpLoad || ld.Width != reg.Double || ld.Base != reg.Sp || ld.Offset != 16 {
		t.Fatalf("unexpected load: %#v", prog[0].Instr)
	}
	sw, ok := prog[1].Instr.(ast.Mem)
	if !ok || sw.Op != ast.OpStore || sw.Width != reg.Word || sw.Offset != -4 {
		t.Fatalf("unexpected store: %#v", prog[1].Instr)
	}
}

func TestParseHiLoRelocation(t *testing.T) {
	prog, errs := Parse("sym.s", "lui a0, %hi(buf)\naddi a1, a0, %lo(buf)\n")
	if errs.HasErrors() {
		t.Fatalf("unexpected parse errors: %s", errs.Report())
	}
	lui, ok := prog[0].Instr.(ast.Lui)
	if !ok || lui.Sym != "buf" {
		t.Fatalf("unexpected lui: %#v", prog[0].Instr)
	}
	addi, ok := prog[1].Instr.(ast.AddImm)
	if !ok || addi.Sym != "buf" || addi.SymRel != "lo" {
		t.Fatalf("unexpected addi: %#v", prog[1].Instr)
	}
}

func TestParseUnsupportedInstructionSuggestsMnemonic(t *testing.T) {
	_, errs := Parse("bad.s", "adid a0, a0, 1\n")
	if !errs.HasErrors() {
		t.Fatal("expected a parse error")
	}
	got := errs.Errors()[0]
	if got.Suggestion != "add" {
		t.Errorf("expected suggestion 'add', got %q", got.Suggestion)
	}
}

func TestParseCommentsAndBlankLinesIgnored(t *testing.T) {
	src := "# a comment\n\nli a0, 1 # trailing comment\n"
	prog, errs := Parse("c.s", src)
	if errs.HasErrors() {
		t.Fatalf("unexpected parse errors: %s", errs.Report())
	}
	if len(prog) != 1 {
		t.Fatalf("expected 1 item, got %d", len(prog))
	}
}

func TestParseDirectivesPassThroughVerbatim(t *testing.T) {
	src := ".global _start\n.balign 4\nmystring:\n.string \"hi\"\n"
	prog, errs := Parse("d.s", src)
	if errs.HasErrors() {
		t.Fatalf("unexpected parse errors: %s", errs.Report())
	}
	if prog[0].Directive != ".global _start" {
		t.Errorf("directive not preserved verbatim: %q", prog[0].Directive)
	}
}
