// Package ast holds the typed representations the parser produces and the
// translator consumes/produces: a closed tagged union of RISC-V source
// instructions, a closed tagged union of ARM64 target instructions, and
// the flat Program sequence that carries both alongside labels and
// directives. The instruction variant sets are closed exactly the way
// the spec demands: there is no generic "raw opcode" escape hatch, so a
// parsed program is total over everything the translator knows how to
// rewrite.
package ast

import "github.com/xyproto/rv2arm/internal/reg"

// SourceInstr is implemented by every supported RISC-V instruction
// variant. The unexported marker method closes the set: only types
// declared in this file can satisfy it, mirroring how the teacher's
// AST nodes close the Statement/Expression interfaces with an
// unexported *Node() method.
type SourceInstr interface {
	sourceInstrNode()
}

// BinOp names an arithmetic/logical register-register opcode family.
type BinOp int

const (
	Add BinOp = iota
	Sub
	Mul
	And
	Or
	Xor
	Sll
	Srl
	Sra
)

func (op BinOp) String() string {
	switch op {
	case Add:
		return "add"
	case Sub:
		return "sub"
	case Mul:
		return "mul"
	case And:
		return "and"
	case Or:
		return "or"
	case Xor:
		return "xor"
	case Sll:
		return "sll"
	case Srl:
		return "srl"
	case Sra:
		return "sra"
	default:
		return "unknown"
	}
}

// RegReg is `op rd, rs1, rs2` (add, sub, mul, and, or, xor, sll, srl,
// sra, each in its Double or Word form).
type RegReg struct {
	Op    BinOp
	Width reg.Width
	Rd    reg.Reg
	Rs1   reg.Reg
	Rs2   reg.Reg
}

func (RegReg) sourceInstrNode() {}

// AddImm is `addi rd, rs, imm`. `addiw` sets Width to Word, forcing the
// target add/sub onto the w-prefixed register, same as every other
// w-suffixed arithmetic opcode.
type AddImm struct {
	Width reg.Width
	Rd    reg.Reg
	Rs    reg.Reg
	Imm   int64
	// Sym/SymRel are set instead of a plain Imm when this instruction is
	// the low half of a lui/addi symbol-address idiom: `addi rd, rd, %lo(sym)`.
	Sym    string
	SymRel string // "lo" when Sym != ""
}

func (AddImm) sourceInstrNode() {}

// Mv is `mv rd, rs`, carried as its own variant even though it is
// equivalent to `addi rd, rs, 0` — the spec allows normalizing
// unambiguous pseudo-forms during parsing, but mv's ARM translation
// (`mov`) is cleaner to express directly than by piggybacking on the
// addi rule.
type Mv struct {
	Rd reg.Reg
	Rs reg.Reg
}

func (Mv) sourceInstrNode() {}

// Li is `li rd, imm`.
type Li struct {
	Rd  reg.Reg
	Imm int64
}

func (Li) sourceInstrNode() {}

// Lui is `lui rd, imm` or `lui rd, %hi(sym)`.
type Lui struct {
	Rd  reg.Reg
	Imm int64  // valid when Sym == ""
	Sym string // set for the %hi(sym) relocation form
}

func (Lui) sourceInstrNode() {}

// Auipc is `auipc rd, imm`.
type Auipc struct {
	Rd  reg.Reg
	Imm int64
}

func (Auipc) sourceInstrNode() {}

// SextW is `sext.w rd, rs`.
type SextW struct {
	Rd reg.Reg
	Rs reg.Reg
}

func (SextW) sourceInstrNode() {}

// LoadSymbolAddr is a synthetic variant produced by the translator's
// pre-pass that fuses a `lui rdHi, %hi(sym)` / `addi rdFinal, rdHi,
// %lo(sym)` pair, per the spec's "two-instruction idiom" design note. It
// never comes out of the parser directly. RdHi and RdFinal are tracked
// separately rather than assumed equal: the idiom's two halves are
// allowed to target different registers (the hi half's destination keeps
// holding the page address afterward, exactly as the unfused RISC-V
// sequence would leave it).
type LoadSymbolAddr struct {
	RdHi    reg.Reg
	RdFinal reg.Reg
	Sym     string
}

func (LoadSymbolAddr) sourceInstrNode() {}

// MemOp names the direction of a memory access: OpLoad for ld/lw,
// OpStore for sd/sw. The access width is carried separately on Mem.
type MemOp int

const (
	OpLoad MemOp = iota
	OpStore
)

// Mem is `ld/lw rd, off(rs)` or `sd/sw rs, off(rd)` — register+offset
// addressing in both directions, load distinguished from store by Op.
type Mem struct {
	Op     MemOp
	Width  reg.Width
	Reg    reg.Reg // destination for a load, source for a store
	Base   reg.Reg
	Offset int32
}

func (Mem) sourceInstrNode() {}

// Jal is `jal rd, label` (and its pseudo-form `j label`, parsed as
// Jal{Rd: reg.Zero}).
type Jal struct {
	Rd    reg.Reg
	Label string
}

func (Jal) sourceInstrNode() {}

// Jalr is `jalr rd, rs, imm`. The only form this translator can
// legalize is the return idiom (rd=zero, rs=ra, imm=0); anything else
// is a computed-address indirect branch, out of scope per the spec's
// non-goals, and is rejected at translation time.
type Jalr struct {
	Rd  reg.Reg
	Rs  reg.Reg
	Imm int32
}

func (Jalr) sourceInstrNode() {}

// Jr is the pseudo-form `jr rs`, equivalent to `jalr x0, rs, 0`.
type Jr struct {
	Rs reg.Reg
}

func (Jr) sourceInstrNode() {}

// Ret is the pseudo-form `ret`.
type Ret struct{}

func (Ret) sourceInstrNode() {}

// BranchOp names a conditional-branch comparison.
type BranchOp int

const (
	Beq BranchOp = iota
	Bne
	Blt
	Bge
	Bltu
	Bgeu
	Ble
	Bgt
)

func (op BranchOp) String() string {
	switch op {
	case Beq:
		return "beq"
	case Bne:
		return "bne"
	case Blt:
		return "blt"
	case Bge:
		return "bge"
	case Bltu:
		return "bltu"
	case Bgeu:
		return "bgeu"
	case Ble:
		return "ble"
	case Bgt:
		return "bgt"
	default:
		return "unknown"
	}
}

// Branch is `b<cmp> rs1, rs2, label`.
type Branch struct {
	Op    BranchOp
	Rs1   reg.Reg
	Rs2   reg.Reg
	Label string
}

func (Branch) sourceInstrNode() {}

// Ecall is the `ecall` syscall instruction. The syscall number and
// argument registers are ordinary register state by the time they reach
// this instruction — ecall itself carries no operands.
type Ecall struct{}

func (Ecall) sourceInstrNode() {}
