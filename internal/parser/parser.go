// Package parser turns RISC-V assembly text — the dialect a GNU-style
// disassembler emits — into an ast.SourceProgram. The instruction variant
// set is closed: any mnemonic or operand shape this package doesn't
// recognize fails at parse time with a structured error rather than
// flowing downstream as an unrepresentable "raw opcode." That is the
// spec's panic-driven encoding discipline, applied here as ordinary
// Go error returns instead of an actual panic.
package parser

import (
	"strconv"
	"strings"

	"github.com/xyproto/rv2arm/internal/ast"
	"github.com/xyproto/rv2arm/internal/cerr"
	"github.com/xyproto/rv2arm/internal/engine"
	"github.com/xyproto/rv2arm/internal/reg"
)

// knownMnemonics backs the "did you mean" suggestion on an unsupported
// mnemonic; it is exactly the set of switch cases in parseInstruction.
var knownMnemonics = []string{
	"add", "addw", "addi", "addiw", "sub", "subw", "mul", "mulw",
	"and", "or", "xor", "sll", "sllw", "srl", "srlw", "sra", "sraw",
	"mv", "li", "lui", "auipc", "sext.w",
	"ld", "lw", "sd", "sw",
	"jal", "jalr", "jr", "ret", "j",
	"beq", "bne", "blt", "bge", "bltu", "bgeu", "ble", "bgt",
	"ecall",
}

// Parse parses RISC-V assembly text into a SourceProgram. Every parse
// error encountered is recorded on the returned Collector rather than
// stopping at the first one, so a single run can report several
// unsupported mnemonics or bad operands at once; the driver still
// refuses to proceed to translation if the collector has any errors.
func Parse(filename, source string) (ast.SourceProgram, *cerr.Collector) {
	errs := cerr.NewCollector()
	var prog ast.SourceProgram

	for _, ln := range lex(source) {
		switch {
		case isLabel(ln.text):
			prog = append(prog, ast.SourceItem{
				Kind:      ast.ItemLabel,
				Line:      ln.line,
				LabelName: strings.TrimSuffix(ln.text, ":"),
			})

		case strings.HasPrefix(ln.text, "."):
			prog = append(prog, ast.SourceItem{
				Kind:      ast.ItemDirective,
				Line:      ln.line,
				Directive: ln.text,
			})

		default:
			instr, err := parseInstruction(filename, ln.line, ln.text)
			if err != nil {
				errs.Add(*err)
				continue
			}
			prog = append(prog, ast.SourceItem{Kind: ast.ItemInstr, Line: ln.line, Instr: instr})
		}
	}

	return prog, errs
}

func isLabel(text string) bool {
	if !strings.HasSuffix(text, ":") {
		return false
	}
	name := strings.TrimSuffix(text, ":")
	return name != "" && !strings.ContainsAny(name, " \t,()")
}

// splitMnemonic separates the leading mnemonic from its operand list.
func splitMnemonic(text string) (mnemonic string, rest string) {
	i := strings.IndexAny(text, " \t")
	if i < 0 {
		return text, ""
	}
	return text[:i], strings.TrimSpace(text[i:])
}

// splitOperands splits a comma-separated operand list, respecting that
// an operand such as `8(sp)` or `%lo(sym)` never itself contains a comma.
func splitOperands(rest string) []string {
	if rest == "" {
		return nil
	}
	parts := strings.Split(rest, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func parseInstruction(file string, line int, text string) (ast.SourceInstr, *cerr.TranslatorError) {
	mnemonic, rest := splitMnemonic(text)
	ops := splitOperands(rest)
	loc := cerr.Location{File: file, Line: line}

	badOperand := func(msg string) *cerr.TranslatorError {
		e := cerr.Parse(cerr.BadOperand, loc, text, msg)
		return &e
	}
	wantOperands := func(n int) *cerr.TranslatorError {
		return badOperand(strconv.Itoa(n) + " operand(s) expected for " + mnemonic)
	}

	reg3 := func() (rd, rs1, rs2 reg.Reg, errp *cerr.TranslatorError) {
		if len(ops) != 3 {
			errp = wantOperands(3)
			return
		}
		var ok bool
		if rd, ok = reg.ParseReg(ops[0]); !ok {
			errp = badOperand("unknown register '" + ops[0] + "'")
			return
		}
		if rs1, ok = reg.ParseReg(ops[1]); !ok {
			errp = badOperand("unknown register '" + ops[1] + "'")
			return
		}
		if rs2, ok = reg.ParseReg(ops[2]); !ok {
			errp = badOperand("unknown register '" + ops[2] + "'")
			return
		}
		return
	}

	reg2 := func() (rd, rs reg.Reg, errp *cerr.TranslatorError) {
		if len(ops) != 2 {
			errp = wantOperands(2)
			return
		}
		var ok bool
		if rd, ok = reg.ParseReg(ops[0]); !ok {
			errp = badOperand("unknown register '" + ops[0] + "'")
			return
		}
		if rs, ok = reg.ParseReg(ops[1]); !ok {
			errp = badOperand("unknown register '" + ops[1] + "'")
			return
		}
		return
	}

	switch strings.ToLower(mnemonic) {
	case "add", "addw", "sub", "subw", "mul", "mulw", "and", "or", "xor",
		"sll", "sllw", "srl", "srlw", "sra", "sraw":
		rd, rs1, rs2, errp := reg3()
		if errp != nil {
			return nil, errp
		}
		op, width := binOpFor(strings.ToLower(mnemonic))
		return ast.RegReg{Op: op, Width: width, Rd: rd, Rs1: rs1, Rs2: rs2}, nil

	case "addi", "addiw":
		if len(ops) != 3 {
			return nil, wantOperands(3)
		}
		rd, ok := reg.ParseReg(ops[0])
		if !ok {
			return nil, badOperand("unknown register '" + ops[0] + "'")
		}
		rs, ok := reg.ParseReg(ops[1])
		if !ok {
			return nil, badOperand("unknown register '" + ops[1] + "'")
		}
		width := reg.Double
		if strings.ToLower(mnemonic) == "addiw" {
			width = reg.Word
		}
		if sym, rel, ok := parseHiLo(ops[2]); ok {
			if rel != "lo" {
				return nil, badOperand("addi only accepts %lo(sym), got %" + rel + "(" + sym + ")")
			}
			return ast.AddImm{Width: width, Rd: rd, Rs: rs, Sym: sym, SymRel: rel}, nil
		}
		imm, err := parseImm(ops[2])
		if err != nil {
			e := cerr.Parse(cerr.ImmediateOutOfRange, loc, text, "bad immediate '"+ops[2]+"'")
			return nil, &e
		}
		if imm < -(1<<11) || imm > (1<<11)-1 {
			e := cerr.Parse(cerr.ImmediateOutOfRange, loc, text, "addi immediate out of 12-bit signed range")
			return nil, &e
		}
		return ast.AddImm{Width: width, Rd: rd, Rs: rs, Imm: imm}, nil

	case "mv":
		rd, rs, errp := reg2()
		if errp != nil {
			return nil, errp
		}
		return ast.Mv{Rd: rd, Rs: rs}, nil

	case "li":
		if len(ops) != 2 {
			return nil, wantOperands(2)
		}
		rd, ok := reg.ParseReg(ops[0])
		if !ok {
			return nil, badOperand("unknown register '" + ops[0] + "'")
		}
		imm, err := parseImm(ops[1])
		if err != nil {
			e := cerr.Parse(cerr.ImmediateOutOfRange, loc, text, "bad immediate '"+ops[1]+"'")
			return nil, &e
		}
		return ast.Li{Rd: rd, Imm: imm}, nil

	case "lui":
		if len(ops) != 2 {
			return nil, wantOperands(2)
		}
		rd, ok := reg.ParseReg(ops[0])
		if !ok {
			return nil, badOperand("unknown register '" + ops[0] + "'")
		}
		if sym, rel, ok := parseHiLo(ops[1]); ok {
			if rel != "hi" {
				return nil, badOperand("lui only accepts %hi(sym), got %" + rel + "(" + sym + ")")
			}
			return ast.Lui{Rd: rd, Sym: sym}, nil
		}
		imm, err := parseImm(ops[1])
		if err != nil {
			e := cerr.Parse(cerr.ImmediateOutOfRange, loc, text, "bad immediate '"+ops[1]+"'")
			return nil, &e
		}
		return ast.Lui{Rd: rd, Imm: imm}, nil

	case "auipc":
		if len(ops) != 2 {
			return nil, wantOperands(2)
		}
		rd, ok := reg.ParseReg(ops[0])
		if !ok {
			return nil, badOperand("unknown register '" + ops[0] + "'")
		}
		imm, err := parseImm(ops[1])
		if err != nil {
			e := cerr.Parse(cerr.ImmediateOutOfRange, loc, text, "bad immediate '"+ops[1]+"'")
			return nil, &e
		}
		return ast.Auipc{Rd: rd, Imm: imm}, nil

	case "sext.w":
		rd, rs, errp := reg2()
		if errp != nil {
			return nil, errp
		}
		return ast.SextW{Rd: rd, Rs: rs}, nil

	case "ld", "lw", "sd", "sw":
		if len(ops) != 2 {
			return nil, wantOperands(2)
		}
		r, ok := reg.ParseReg(ops[0])
		if !ok {
			return nil, badOperand("unknown register '" + ops[0] + "'")
		}
		base, offset, errp := parseMemOperand(loc, text, ops[1])
		if errp != nil {
			return nil, errp
		}
		width := reg.Double
		op := ast.OpLoad
		switch strings.ToLower(mnemonic) {
		case "lw":
			width = reg.Word
		case "sd":
			op = ast.OpStore
		case "sw":
			op, width = ast.OpStore, reg.Word
		}
		return ast.Mem{Op: op, Width: width, Reg: r, Base: base, Offset: offset}, nil

	case "jal":
		switch len(ops) {
		case 1:
			return ast.Jal{Rd: reg.Ra, Label: ops[0]}, nil
		case 2:
			rd, ok := reg.ParseReg(ops[0])
			if !ok {
				return nil, badOperand("unknown register '" + ops[0] + "'")
			}
			return ast.Jal{Rd: rd, Label: ops[1]}, nil
		default:
			return nil, wantOperands(2)
		}

	case "j":
		if len(ops) != 1 {
			return nil, wantOperands(1)
		}
		return ast.Jal{Rd: reg.Zero, Label: ops[0]}, nil

	case "jalr":
		if len(ops) != 3 {
			return nil, wantOperands(3)
		}
		rd, ok := reg.ParseReg(ops[0])
		if !ok {
			return nil, badOperand("unknown register '" + ops[0] + "'")
		}
		rs, ok := reg.ParseReg(ops[1])
		if !ok {
			return nil, badOperand("unknown register '" + ops[1] + "'")
		}
		imm, err := parseImm(ops[2])
		if err != nil {
			e := cerr.Parse(cerr.ImmediateOutOfRange, loc, text, "bad immediate '"+ops[2]+"'")
			return nil, &e
		}
		return ast.Jalr{Rd: rd, Rs: rs, Imm: int32(imm)}, nil

	case "jr":
		if len(ops) != 1 {
			return nil, wantOperands(1)
		}
		rs, ok := reg.ParseReg(ops[0])
		if !ok {
			return nil, badOperand("unknown register '" + ops[0] + "'")
		}
		return ast.Jr{Rs: rs}, nil

	case "ret":
		if len(ops) != 0 {
			return nil, wantOperands(0)
		}
		return ast.Ret{}, nil

	case "beq", "bne", "blt", "bge", "bltu", "bgeu", "ble", "bgt":
		if len(ops) != 3 {
			return nil, wantOperands(3)
		}
		rs1, ok := reg.ParseReg(ops[0])
		if !ok {
			return nil, badOperand("unknown register '" + ops[0] + "'")
		}
		rs2, ok := reg.ParseReg(ops[1])
		if !ok {
			return nil, badOperand("unknown register '" + ops[1] + "'")
		}
		return ast.Branch{Op: branchOpFor(strings.ToLower(mnemonic)), Rs1: rs1, Rs2: rs2, Label: ops[2]}, nil

	case "ecall":
		if len(ops) != 0 {
			return nil, wantOperands(0)
		}
		return ast.Ecall{}, nil

	default:
		e := cerr.Parse(cerr.UnsupportedInstruction, loc, text, "unsupported mnemonic '"+mnemonic+"'")
		if hint := suggestion(mnemonic); hint != "" {
			e.Suggestion = hint
		}
		return nil, &e
	}
}

// wForms is the set of mnemonics carrying RV64's "w" suffix, which forces
// Word width on all operands; and/or/xor have no w-suffixed RISC-V form.
var wForms = map[string]bool{
	"addw": true, "subw": true, "mulw": true,
	"sllw": true, "srlw": true, "sraw": true,
}

func binOpFor(mnemonic string) (ast.BinOp, reg.Width) {
	width := reg.Double
	base := mnemonic
	if wForms[mnemonic] {
		width = reg.Word
		base = strings.TrimSuffix(mnemonic, "w")
	}
	switch base {
	case "add":
		return ast.Add, width
	case "sub":
		return ast.Sub, width
	case "mul":
		return ast.Mul, width
	case "and":
		return ast.And, width
	case "or":
		return ast.Or, width
	case "xor":
		return ast.Xor, width
	case "sll":
		return ast.Sll, width
	case "srl":
		return ast.Srl, width
	case "sra":
		return ast.Sra, width
	default:
		return ast.Add, width
	}
}

func branchOpFor(mnemonic string) ast.BranchOp {
	switch mnemonic {
	case "beq":
		return ast.Beq
	case "bne":
		return ast.Bne
	case "blt":
		return ast.Blt
	case "bge":
		return ast.Bge
	case "bltu":
		return ast.Bltu
	case "bgeu":
		return ast.Bgeu
	case "ble":
		return ast.Ble
	default:
		return ast.Bgt
	}
}

// parseImm parses a signed decimal or 0x-prefixed hexadecimal immediate.
func parseImm(s string) (int64, error) {
	return strconv.ParseInt(s, 0, 64)
}

// parseMemOperand parses the `offset(base)` addressing form.
func parseMemOperand(loc cerr.Location, text, s string) (reg.Reg, int32, *cerr.TranslatorError) {
	open := strings.IndexByte(s, '(')
	closeIdx := strings.IndexByte(s, ')')
	if open < 0 || closeIdx < open {
		e := cerr.Parse(cerr.BadOperand, loc, text, "expected offset(base) memory operand, got '"+s+"'")
		return 0, 0, &e
	}
	offsetStr := strings.TrimSpace(s[:open])
	baseStr := strings.TrimSpace(s[open+1 : closeIdx])

	base, ok := reg.ParseReg(baseStr)
	if !ok {
		e := cerr.Parse(cerr.BadOperand, loc, text, "unknown base register '"+baseStr+"'")
		return 0, 0, &e
	}
	if offsetStr == "" {
		return base, 0, nil
	}
	offset, err := parseImm(offsetStr)
	if err != nil {
		e := cerr.Parse(cerr.ImmediateOutOfRange, loc, text, "bad offset '"+offsetStr+"'")
		return 0, 0, &e
	}
	if offset < -(1<<11) || offset > (1<<11)-1 {
		e := cerr.Parse(cerr.ImmediateOutOfRange, loc, text, "load/store offset out of 12-bit signed range")
		return 0, 0, &e
	}
	return base, int32(offset), nil
}

// parseHiLo recognizes the %hi(sym)/%lo(sym) relocation operand forms.
func parseHiLo(s string) (sym, rel string, ok bool) {
	for _, rel := range [2]string{"hi", "lo"} {
		prefix := "%" + rel + "("
		if strings.HasPrefix(s, prefix) && strings.HasSuffix(s, ")") {
			return s[len(prefix) : len(s)-1], rel, true
		}
	}
	return "", "", false
}

func suggestion(mnemonic string) string {
	return engine.SuggestMnemonic(strings.ToLower(mnemonic), knownMnemonics)
}
