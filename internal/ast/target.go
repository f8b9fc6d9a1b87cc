package ast

import "github.com/xyproto/rv2arm/internal/reg"

// TargetInstr is implemented by every emitted ARM64 instruction variant.
// Every operand is width-annotated, per the spec's width-propagation
// design note, so a Word operand can never end up printed under an
// x-prefix register by construction.
type TargetInstr interface {
	targetInstrNode()
}

// ArmBinOp names an ARM64 register-register data-processing opcode.
type ArmBinOp int

const (
	ArmAdd ArmBinOp = iota
	ArmSub
	ArmMul
	ArmAnd
	ArmOrr
	ArmEor
	ArmLsl
	ArmLsr
	ArmAsr
)

func (op ArmBinOp) String() string {
	switch op {
	case ArmAdd:
		return "add"
	case ArmSub:
		return "sub"
	case ArmMul:
		return "mul"
	case ArmAnd:
		return "and"
	case ArmOrr:
		return "orr"
	case ArmEor:
		return "eor"
	case ArmLsl:
		return "lsl"
	case ArmLsr:
		return "lsr"
	case ArmAsr:
		return "asr"
	default:
		return "unknown"
	}
}

// ArmRegReg is `op Rd, Rs1, Rs2`.
type ArmRegReg struct {
	Op    ArmBinOp
	Width reg.Width
	Rd    reg.ArmReg
	Rs1   reg.ArmReg
	Rs2   reg.ArmReg
}

func (ArmRegReg) targetInstrNode() {}

// ArmAddImm/ArmSubImm are `add/sub Rd, Rs, #imm` — ARM's immediate add
// only accepts non-negative values, which is exactly why RISC-V's
// signed addi legalizes into one or the other.
type ArmAddImm struct {
	Width reg.Width
	Rd    reg.ArmReg
	Rs    reg.ArmReg
	Imm   int64
}

func (ArmAddImm) targetInstrNode() {}

type ArmSubImm struct {
	Width reg.Width
	Rd    reg.ArmReg
	Rs    reg.ArmReg
	Imm   int64
}

func (ArmSubImm) targetInstrNode() {}

// ArmMov is `mov Rd, Rs` (register-register) or `mov Rd, #imm` when
// IsReg is false (used for small immediates that fit a single wide-move).
type ArmMov struct {
	Width reg.Width
	Rd    reg.ArmReg
	IsReg bool
	Rs    reg.ArmReg
	Imm   int64
}

func (ArmMov) targetInstrNode() {}

// ArmMovWide is one step of a movz/movk immediate-loading sequence, used
// when an immediate doesn't fit ArmMov's single-instruction range. Shift
// is the bit position (0, 16, 32, or 48) of the 16-bit chunk in Chunk.
type ArmMovWide struct {
	Width  reg.Width
	Rd     reg.ArmReg
	Keep   bool // false => movz, true => movk
	Chunk  uint16
	Shift  uint
}

func (ArmMovWide) targetInstrNode() {}

// ArmSxtw is `sxtw Xd, Ws`.
type ArmSxtw struct {
	Rd reg.ArmReg
	Rs reg.ArmReg
}

func (ArmSxtw) targetInstrNode() {}

// ArmMemOp mirrors ast.MemOp on the target side.
type ArmMemOp int

const (
	ArmOpLoad ArmMemOp = iota
	ArmOpStore
)

// ArmMem is `ldr/str Rt, [Rn, #imm]`.
type ArmMem struct {
	Op     ArmMemOp
	Width  reg.Width
	Rt     reg.ArmReg // transfer register: destination for a load, source for a store
	Rn     reg.ArmReg // base register
	Offset int32
}

func (ArmMem) targetInstrNode() {}

// ArmCmp is `cmp Rs1, Rs2`, always emitted immediately before the
// conditional branch whose flags it sets.
type ArmCmp struct {
	Width reg.Width
	Rs1   reg.ArmReg
	Rs2   reg.ArmReg
}

func (ArmCmp) targetInstrNode() {}

// ArmCond names an ARM64 branch condition code.
type ArmCond int

const (
	CondEQ ArmCond = iota
	CondNE
	CondLT
	CondGE
	CondLO
	CondHS
	CondLE
	CondGT
)

func (c ArmCond) String() string {
	switch c {
	case CondEQ:
		return "eq"
	case CondNE:
		return "ne"
	case CondLT:
		return "lt"
	case CondGE:
		return "ge"
	case CondLO:
		return "lo"
	case CondHS:
		return "hs"
	case CondLE:
		return "le"
	case CondGT:
		return "gt"
	default:
		return "unknown"
	}
}

// ArmCondBranch is `b.<cond> label`.
type ArmCondBranch struct {
	Cond  ArmCond
	Label string
}

func (ArmCondBranch) targetInstrNode() {}

// ArmB is the unconditional `b label`.
type ArmB struct {
	Label string
}

func (ArmB) targetInstrNode() {}

// ArmBl is `bl label`.
type ArmBl struct {
	Label string
}

func (ArmBl) targetInstrNode() {}

// ArmRet is `ret`.
type ArmRet struct{}

func (ArmRet) targetInstrNode() {}

// ArmAdrp is the first half of the two-instruction symbol-address idiom:
// `adrp Rd, sym`.
type ArmAdrp struct {
	Rd  reg.ArmReg
	Sym string
}

func (ArmAdrp) targetInstrNode() {}

// ArmAddLo12 is the second half: `add Rd, Rs, :lo12:sym`.
type ArmAddLo12 struct {
	Rd  reg.ArmReg
	Rs  reg.ArmReg
	Sym string
}

func (ArmAddLo12) targetInstrNode() {}

// ArmSvc is `svc #0`.
type ArmSvc struct {
	Imm uint16
}

func (ArmSvc) targetInstrNode() {}

// ArmNop is emitted in the rare case a source instruction's destination
// is the zero register in a context where dropping it entirely would
// change instruction-count-sensitive alignment. The translator's rule
// set never actually needs to reach for this today, but it exists so
// that eliding a zero-destination write is a choice the rule makes, not
// a representational dead end.
type ArmNop struct{}

func (ArmNop) targetInstrNode() {}
