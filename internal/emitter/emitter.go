// Package emitter is the pure serializer at the end of the pipeline: it
// renders a translated ast.TargetProgram as GNU-style ARM64 assembly
// text. It performs no semantic checks — every instruction it's handed
// is assumed already legal, per spec.md 4.4's "pure serializer"
// contract — so every branch here is a direct textual rendering of one
// TargetInstr variant, never a decision about correctness.
package emitter

import (
	"fmt"
	"strings"

	"github.com/xyproto/rv2arm/internal/ast"
	"github.com/xyproto/rv2arm/internal/reg"
)

// Emit renders prog as ARM64 assembly text, one line per TargetItem,
// labels and directives carried through unchanged and instructions
// indented the way the GNU assembler's own output looks.
func Emit(prog ast.TargetProgram) string {
	var sb strings.Builder
	for _, item := range prog {
		switch item.Kind {
		case ast.ItemLabel:
			sb.WriteString(item.LabelName)
			sb.WriteString(":\n")
		case ast.ItemDirective:
			sb.WriteString(item.Directive)
			sb.WriteString("\n")
		case ast.ItemInstr:
			sb.WriteString("\t")
			sb.WriteString(emitInstr(item.Instr))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func emitInstr(instr ast.TargetInstr) string {
	switch v := instr.(type) {
	case ast.ArmRegReg:
		return fmt.Sprintf("%s %s, %s, %s", v.Op, v.Rd.Name(v.Width), v.Rs1.Name(v.Width), v.Rs2.Name(v.Width))

	case ast.ArmAddImm:
		return fmt.Sprintf("add %s, %s, #%d", v.Rd.Name(v.Width), v.Rs.Name(v.Width), v.Imm)

	case ast.ArmSubImm:
		return fmt.Sprintf("sub %s, %s, #%d", v.Rd.Name(v.Width), v.Rs.Name(v.Width), v.Imm)

	case ast.ArmMov:
		if v.IsReg {
			return fmt.Sprintf("mov %s, %s", v.Rd.Name(v.Width), v.Rs.Name(v.Width))
		}
		return fmt.Sprintf("mov %s, #%d", v.Rd.Name(v.Width), v.Imm)

	case ast.ArmMovWide:
		mnemonic := "movz"
		if v.Keep {
			mnemonic = "movk"
		}
		if v.Shift == 0 {
			return fmt.Sprintf("%s %s, #%d", mnemonic, v.Rd.Name(v.Width), v.Chunk)
		}
		return fmt.Sprintf("%s %s, #%d, lsl #%d", mnemonic, v.Rd.Name(v.Width), v.Chunk, v.Shift)

	case ast.ArmSxtw:
		return fmt.Sprintf("sxtw %s, %s", v.Rd.Name(reg.Double), v.Rs.Name(reg.Word))

	case ast.ArmMem:
		mnemonic := "ldr"
		if v.Op == ast.ArmOpStore {
			mnemonic = "str"
		}
		if v.Offset == 0 {
			return fmt.Sprintf("%s %s, [%s]", mnemonic, v.Rt.Name(v.Width), v.Rn.Name(reg.Double))
		}
		return fmt.Sprintf("%s %s, [%s, #%d]", mnemonic, v.Rt.Name(v.Width), v.Rn.Name(reg.Double), v.Offset)

	case ast.ArmCmp:
		return fmt.Sprintf("cmp %s, %s", v.Rs1.Name(v.Width), v.Rs2.Name(v.Width))

	case ast.ArmCondBranch:
		return fmt.Sprintf("b.%s %s", v.Cond, v.Label)

	case ast.ArmB:
		return fmt.Sprintf("b %s", v.Label)

	case ast.ArmBl:
		return fmt.Sprintf("bl %s", v.Label)

	case ast.ArmRet:
		return "ret"

	case ast.ArmAdrp:
		return fmt.Sprintf("adrp %s, %s", v.Rd.Name(reg.Double), v.Sym)

	case ast.ArmAddLo12:
		return fmt.Sprintf("add %s, %s, :lo12:%s", v.Rd.Name(reg.Double), v.Rs.Name(reg.Double), v.Sym)

	case ast.ArmSvc:
		return fmt.Sprintf("svc #%d", v.Imm)

	case ast.ArmNop:
		return "nop"

	default:
		return fmt.Sprintf("; unrenderable instruction %#v", v)
	}
}
