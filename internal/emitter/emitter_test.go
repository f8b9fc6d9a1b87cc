package emitter

import (
	"strings"
	"testing"

	"github.com/xyproto/rv2arm/internal/ast"
	"github.com/xyproto/rv2arm/internal/parser"
	"github.com/xyproto/rv2arm/internal/reg"
	"github.com/xyproto/rv2arm/internal/translator"
)

func translate(t *testing.T, src string) ast.TargetProgram {
	t.Helper()
	prog, errs := parser.Parse("e.s", src)
	if errs.HasErrors() {
		t.Fatalf("unexpected parse errors: %s", errs.Report())
	}
	target, err := translator.Translate("e.s", prog)
	if err != nil {
		t.Fatalf("unexpected translate error: %v", err)
	}
	return target
}

func TestEmitSimpleExit(t *testing.T) {
	out := Emit(translate(t, "li a0, 7\nli a7, 93\necall\n"))
	if !strings.Contains(out, "mov x0, #7") {
		t.Errorf("expected mov x0, #7 in output, got:\n%s", out)
	}
	if !strings.Contains(out, "mov x7, #93") {
		t.Errorf("expected mov x7, #93 in output (a7 -> x7), got:\n%s", out)
	}
	if !strings.Contains(out, "svc #0") {
		t.Errorf("expected svc #0 in output, got:\n%s", out)
	}
}

func TestEmitLabelsAndDirectivesVerbatim(t *testing.T) {
	out := Emit(translate(t, ".global _start\n_start:\nli a0, 1\nli a7, 93\necall\n"))
	if !strings.Contains(out, ".global _start\n") {
		t.Errorf("expected directive preserved verbatim, got:\n%s", out)
	}
	if !strings.Contains(out, "_start:\n") {
		t.Errorf("expected label preserved, got:\n%s", out)
	}
}

func TestEmitMemoryOperand(t *testing.T) {
	out := Emit(translate(t, "ld a0, 16(sp)\n"))
	if !strings.Contains(out, "ldr x0, [sp, #16]") {
		t.Errorf("expected ldr x0, [sp, #16], got:\n%s", out)
	}
}

func TestEmitConditionalBranch(t *testing.T) {
	out := Emit(translate(t, "blt a0, a1, .L\n.L:\nret\n"))
	if !strings.Contains(out, "cmp x0, x1") {
		t.Errorf("expected cmp x0, x1, got:\n%s", out)
	}
	if !strings.Contains(out, "b.lt .L") {
		t.Errorf("expected b.lt .L, got:\n%s", out)
	}
}

func TestEmitSymbolAddressIdiom(t *testing.T) {
	out := Emit(translate(t, "buf:\n.string \"hi\"\nlui a0, %hi(buf)\naddi a1, a0, %lo(buf)\n"))
	if !strings.Contains(out, "adrp x0, buf") {
		t.Errorf("expected adrp x0, buf, got:\n%s", out)
	}
	if !strings.Contains(out, "add x1, x0, :lo12:buf") {
		t.Errorf("expected add x1, x0, :lo12:buf, got:\n%s", out)
	}
}

func TestEmitNegativeAddiBecomesSub(t *testing.T) {
	out := Emit(translate(t, "addi a0, a0, -3\n"))
	if !strings.Contains(out, "sub x0, x0, #3") {
		t.Errorf("expected sub x0, x0, #3, got:\n%s", out)
	}
	if strings.Contains(out, "#-3") {
		t.Errorf("should never emit a negative immediate, got:\n%s", out)
	}
}

func TestArmRegNameFormatsBothWidths(t *testing.T) {
	if reg.ArmX0.Name(reg.Double) != "x0" || reg.ArmX0.Name(reg.Word) != "w0" {
		t.Fatalf("unexpected ArmReg.Name formatting")
	}
}
