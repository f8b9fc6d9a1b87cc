package translator

import (
	"github.com/xyproto/rv2arm/internal/ast"
	"github.com/xyproto/rv2arm/internal/cerr"
	"github.com/xyproto/rv2arm/internal/reg"
)

// translateInstr is the per-opcode rule table from spec.md 4.3. It is
// deliberately a pure function of one source instruction (the fused
// LoadSymbolAddr aside, which is itself the output of a local two-
// instruction window): no rule here looks beyond what it's handed,
// keeping each case testable on its own.
func translateInstr(filename string, line int, instr ast.SourceInstr) ([]ast.TargetInstr, *cerr.TranslatorError) {
	loc := cerr.Location{File: filename, Line: line}

	switch v := instr.(type) {
	case ast.RegReg:
		rd := mapReg(v.Rd)
		if rd.IsZero() {
			return nil, nil
		}
		return []ast.TargetInstr{ast.ArmRegReg{
			Op:    mapBinOp(v.Op),
			Width: v.Width,
			Rd:    rd,
			Rs1:   mapReg(v.Rs1),
			Rs2:   mapReg(v.Rs2),
		}}, nil

	case ast.AddImm:
		rd := mapReg(v.Rd)
		if rd.IsZero() {
			return nil, nil
		}
		rs := mapReg(v.Rs)
		if v.Imm >= 0 {
			return []ast.TargetInstr{ast.ArmAddImm{Width: v.Width, Rd: rd, Rs: rs, Imm: v.Imm}}, nil
		}
		return []ast.TargetInstr{ast.ArmSubImm{Width: v.Width, Rd: rd, Rs: rs, Imm: -v.Imm}}, nil

	case ast.Mv:
		rd := mapReg(v.Rd)
		if rd.IsZero() {
			return nil, nil
		}
		return []ast.TargetInstr{ast.ArmMov{Width: reg.Double, Rd: rd, IsReg: true, Rs: mapReg(v.Rs)}}, nil

	case ast.Li:
		rd := mapReg(v.Rd)
		if rd.IsZero() {
			return nil, nil
		}
		return expandImmediate(rd, reg.Double, v.Imm), nil

	case ast.Lui:
		if v.Sym == "" {
			rd := mapReg(v.Rd)
			if rd.IsZero() {
				return nil, nil
			}
			return expandImmediate(rd, reg.Double, v.Imm<<12), nil
		}
		e := cerr.Translate(cerr.UnmatchedHiLoPair, loc,
			"lui with %hi(\""+v.Sym+"\") has no matching addi %lo pair")
		return nil, &e

	case ast.Auipc:
		e := cerr.Translate(cerr.UnmappableOperand, loc,
			"auipc has no translation rule; symbol addresses are only supported through the lui/addi %hi/%lo idiom")
		return nil, &e

	case ast.SextW:
		rd := mapReg(v.Rd)
		if rd.IsZero() {
			return nil, nil
		}
		return []ast.TargetInstr{ast.ArmSxtw{Rd: rd, Rs: mapReg(v.Rs)}}, nil

	case ast.LoadSymbolAddr:
		rdHi := mapReg(v.RdHi)
		rdFinal := mapReg(v.RdFinal)
		return []ast.TargetInstr{
			ast.ArmAdrp{Rd: rdHi, Sym: v.Sym},
			ast.ArmAddLo12{Rd: rdFinal, Rs: rdHi, Sym: v.Sym},
		}, nil

	case ast.Mem:
		op := ast.ArmOpLoad
		if v.Op == ast.OpStore {
			op = ast.ArmOpStore
		}
		return []ast.TargetInstr{ast.ArmMem{
			Op:     op,
			Width:  v.Width,
			Rt:     mapReg(v.Reg),
			Rn:     mapReg(v.Base),
			Offset: v.Offset,
		}}, nil

	case ast.Jal:
		switch v.Rd {
		case reg.Zero:
			return []ast.TargetInstr{ast.ArmB{Label: v.Label}}, nil
		case reg.Ra:
			return []ast.TargetInstr{ast.ArmBl{Label: v.Label}}, nil
		default:
			e := cerr.Translate(cerr.UnmappableOperand, loc,
				"jal with a destination other than ra/x0 is a computed-address call, out of scope")
			return nil, &e
		}

	case ast.Jalr:
		if v.Rd == reg.Zero && v.Rs == reg.Ra && v.Imm == 0 {
			return []ast.TargetInstr{ast.ArmRet{}}, nil
		}
		e := cerr.Translate(cerr.UnmappableOperand, loc,
			"jalr is only supported in its `jalr x0, ra, 0` return idiom")
		return nil, &e

	case ast.Jr:
		if v.Rs == reg.Ra {
			return []ast.TargetInstr{ast.ArmRet{}}, nil
		}
		e := cerr.Translate(cerr.UnmappableOperand, loc,
			"jr is only supported as `jr ra`, the return idiom")
		return nil, &e

	case ast.Ret:
		return []ast.TargetInstr{ast.ArmRet{}}, nil

	case ast.Branch:
		cmp := ast.ArmCmp{Width: reg.Double, Rs1: mapReg(v.Rs1), Rs2: mapReg(v.Rs2)}
		cond := mapBranchCond(v.Op)
		return []ast.TargetInstr{cmp, ast.ArmCondBranch{Cond: cond, Label: v.Label}}, nil

	case ast.Ecall:
		return []ast.TargetInstr{ast.ArmSvc{Imm: 0}}, nil

	default:
		e := cerr.Translate(cerr.UnmappableOperand, loc, "no translation rule for this instruction")
		return nil, &e
	}
}

func mapReg(r reg.Reg) reg.ArmReg {
	return reg.MapName(r)
}

func mapBinOp(op ast.BinOp) ast.ArmBinOp {
	switch op {
	case ast.Add:
		return ast.ArmAdd
	case ast.Sub:
		return ast.ArmSub
	case ast.Mul:
		return ast.ArmMul
	case ast.And:
		return ast.ArmAnd
	case ast.Or:
		return ast.ArmOrr
	case ast.Xor:
		return ast.ArmEor
	case ast.Sll:
		return ast.ArmLsl
	case ast.Srl:
		return ast.ArmLsr
	case ast.Sra:
		return ast.ArmAsr
	default:
		return ast.ArmAdd
	}
}

// mapBranchCond is the table from spec.md 4.3: RISC-V's comparison-in-
// opcode branches map to ARM's flags-then-condition-code model one for
// one, signed comparisons staying signed and unsigned staying unsigned.
func mapBranchCond(op ast.BranchOp) ast.ArmCond {
	switch op {
	case ast.Beq:
		return ast.CondEQ
	case ast.Bne:
		return ast.CondNE
	case ast.Blt:
		return ast.CondLT
	case ast.Bge:
		return ast.CondGE
	case ast.Bltu:
		return ast.CondLO
	case ast.Bgeu:
		return ast.CondHS
	case ast.Ble:
		return ast.CondLE
	default:
		return ast.CondGT
	}
}
