package translator

import (
	"testing"

	"github.com/xyproto/rv2arm/internal/ast"
	"github.com/xyproto/rv2arm/internal/parser"
	"github.com/xyproto/rv2arm/internal/reg"
)

func mustParse(t *testing.T, src string) ast.SourceProgram {
	t.Helper()
	prog, errs := parser.Parse("t.s", src)
	if errs.HasErrors() {
		t.Fatalf("unexpected parse errors: %s", errs.Report())
	}
	return prog
}

func TestImmediateLegalizationSplitsNegativeAddi(t *testing.T) {
	prog := mustParse(t, "li a0, 10\naddi a0, a0, -3\nli a7, 93\necall\n")
	target, err := Translate("t.s", prog)
	if err != nil {
		t.Fatalf("unexpected translate error: %v", err)
	}

	var sawSub bool
	for _, item := range target {
		if sub, ok := item.Instr.(ast.ArmSubImm); ok {
			sawSub = true
			if sub.Imm != 3 {
				t.Errorf("expected sub immediate 3, got %d", sub.Imm)
			}
		}
		if add, ok := item.Instr.(ast.ArmAddImm); ok && add.Imm < 0 {
			t.Errorf("add immediate should never be negative, got %d", add.Imm)
		}
	}
	if !sawSub {
		t.Fatal("expected a sub instruction from the negative addi")
	}
}

func TestAddiwForcesWordWidth(t *testing.T) {
	prog := mustParse(t, "addiw a0, a1, 5\n")
	target, err := Translate("t.s", prog)
	if err != nil {
		t.Fatalf("unexpected translate error: %v", err)
	}
	add, ok := target[0].Instr.(ast.ArmAddImm)
	if !ok {
		t.Fatalf("expected an ArmAddImm, got %#v", target[0].Instr)
	}
	if add.Width != reg.Word {
		t.Errorf("addiw should force Word width, got %v", add.Width)
	}
}

func TestBranchExpandsToExactlyOneCmpAndOneCondBranch(t *testing.T) {
	prog := mustParse(t, "bge a0, a1, .L\n.L:\nret\n")
	target, err := Translate("t.s", prog)
	if err != nil {
		t.Fatalf("unexpected translate error: %v", err)
	}
	if len(target) < 2 {
		t.Fatalf("expected at least 2 target items, got %d", len(target))
	}
	if _, ok := target[0].Instr.(ast.ArmCmp); !ok {
		t.Fatalf("expected first instruction to be cmp, got %#v", target[0].Instr)
	}
	br, ok := target[1].Instr.(ast.ArmCondBranch)
	if !ok || br.Cond != ast.CondGE {
		t.Fatalf("expected b.ge, got %#v", target[1].Instr)
	}
}

func TestBranchConditionMappingTable(t *testing.T) {
	cases := []struct {
		mnemonic string
		want     ast.ArmCond
	}{
		{"beq", ast.CondEQ}, {"bne", ast.CondNE}, {"blt", ast.CondLT}, {"bge", ast.CondGE},
		{"bltu", ast.CondLO}, {"bgeu", ast.CondHS}, {"ble", ast.CondLE}, {"bgt", ast.CondGT},
	}
	for _, c := range cases {
		prog := mustParse(t, c.mnemonic+" a0, a1, .L\n.L:\nret\n")
		target, err := Translate("t.s", prog)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", c.mnemonic, err)
		}
		br, ok := target[1].Instr.(ast.ArmCondBranch)
		if !ok || br.Cond != c.want {
			t.Errorf("%s: expected cond %v, got %#v", c.mnemonic, c.want, target[1].Instr)
		}
	}
}

func TestZeroDestinationElided(t *testing.T) {
	prog := mustParse(t, "add zero, a0, a1\nli a7, 93\necall\n")
	target, err := Translate("t.s", prog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, item := range target {
		if rr, ok := item.Instr.(ast.ArmRegReg); ok && rr.Rd.IsZero() {
			t.Fatalf("a write to the zero register should never be emitted, got %#v", rr)
		}
	}
	// two items expected: the li expansion (1 mov) + ecall, the add is elided
	if len(target) != 2 {
		t.Fatalf("expected 2 items after eliding the zero-destination add, got %d", len(target))
	}
}

func TestHiLoFusionProducesAdrpAddPair(t *testing.T) {
	src := "buf:\n.string \"hi\"\nlui a0, %hi(buf)\naddi a1, a0, %lo(buf)\nli a7, 93\necall\n"
	prog := mustParse(t, src)
	target, err := Translate("t.s", prog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var adrp *ast.ArmAdrp
	var addLo *ast.ArmAddLo12
	for i := range target {
		if a, ok := target[i].Instr.(ast.ArmAdrp); ok {
			adrp = &a
		}
		if a, ok := target[i].Instr.(ast.ArmAddLo12); ok {
			addLo = &a
		}
	}
	if adrp == nil || addLo == nil {
		t.Fatalf("expected an adrp/add :lo12: pair, target=%#v", target)
	}
	if adrp.Sym != "buf" || addLo.Sym != "buf" {
		t.Errorf("expected symbol 'buf' on both halves, got adrp=%q addLo=%q", adrp.Sym, addLo.Sym)
	}
	if addLo.Rs != adrp.Rd {
		t.Errorf("add :lo12: should source the adrp's destination register")
	}
}

func TestUnmatchedHiWithoutLoIsFatal(t *testing.T) {
	prog := mustParse(t, "lui a0, %hi(buf)\nli a7, 93\necall\n")
	_, err := Translate("t.s", prog)
	if err == nil {
		t.Fatal("expected an UnmatchedHiLoPair error")
	}
}

func TestUndefinedLabelIsFatal(t *testing.T) {
	prog := mustParse(t, "beq a0, a0, .nope\n")
	_, err := Translate("t.s", prog)
	if err == nil {
		t.Fatal("expected an UndefinedLabel error")
	}
}

func TestLargeImmediateExpandsToMovzMovk(t *testing.T) {
	prog := mustParse(t, "li a0, 0x123456789A\n")
	target, err := Translate("t.s", prog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var movz, movk int
	for _, item := range target {
		if mw, ok := item.Instr.(ast.ArmMovWide); ok {
			if mw.Keep {
				movk++
			} else {
				movz++
			}
		}
	}
	if movz != 1 {
		t.Errorf("expected exactly one movz, got %d", movz)
	}
	if movk == 0 {
		t.Errorf("expected at least one movk for a large immediate")
	}
}

func TestSyscallNumberPreservedVerbatim(t *testing.T) {
	prog := mustParse(t, "li a7, 93\necall\n")
	target, err := Translate("t.s", prog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var sawSvc bool
	for _, item := range target {
		if mv, ok := item.Instr.(ast.ArmMov); ok && !mv.IsReg {
			if mv.Imm != 93 {
				t.Errorf("expected syscall number 93 preserved, got %d", mv.Imm)
			}
		}
		if _, ok := item.Instr.(ast.ArmSvc); ok {
			sawSvc = true
		}
	}
	if !sawSvc {
		t.Fatal("expected ecall to translate to svc")
	}
	_ = reg.A7
}

func TestCallAndReturnIdioms(t *testing.T) {
	prog := mustParse(t, "jal ra, .sub\nj .end\n.sub:\nret\n.end:\nret\n")
	target, err := Translate("t.s", prog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := target[0].Instr.(ast.ArmBl); !ok {
		t.Errorf("expected jal ra to translate to bl, got %#v", target[0].Instr)
	}
	if _, ok := target[1].Instr.(ast.ArmB); !ok {
		t.Errorf("expected j to translate to b, got %#v", target[1].Instr)
	}
}
