package reg

// ArmReg is an ARM64 register slot. Unlike Reg it is width-agnostic on its
// own — map_name decides which slot a RISC-V register lands in, and
// map_width (via Name) decides whether that slot is printed with an x- or
// w-prefix. ArmSP and ArmXZR are modeled as distinct slots even though
// they share encoding 31 in hardware, because at the text-emission level
// this translator cares about, they are never interchangeable: only
// ArmXZR may read-as-zero/discard-writes, only ArmSP carries the stack
// pointer role.
type ArmReg int

const (
	ArmX0 ArmReg = iota
	ArmX1
	ArmX2
	ArmX3
	ArmX4
	ArmX5
	ArmX6
	ArmX7
	ArmX8
	ArmX9
	ArmX10
	ArmX11
	ArmX12
	ArmX13
	ArmX14
	ArmX15
	ArmX16
	ArmX17
	ArmX18
	ArmX19
	ArmX20
	ArmX21
	ArmX22
	ArmX23
	ArmX24
	ArmX25
	ArmX26
	ArmX27
	ArmX28
	ArmX29
	ArmX30
	ArmSP
	ArmXZR
)

// Name formats the register under the given width: the x-prefix (64-bit)
// or w-prefix (32-bit) general-purpose form, "sp" unprefixed, or
// "xzr"/"wzr" for the zero register.
func (r ArmReg) Name(w Width) string {
	switch r {
	case ArmSP:
		return "sp"
	case ArmXZR:
		if w == Word {
			return "wzr"
		}
		return "xzr"
	default:
		prefix := "x"
		if w == Word {
			prefix = "w"
		}
		return prefix + itoa(int(r))
	}
}

// IsZero reports whether r is the ARM zero register.
func (r ArmReg) IsZero() bool { return r == ArmXZR }

// mapNameTable is the fixed 32-entry permutation from RISC-V ABI register
// to ARM register slot described in the spec: argument registers a0-a7
// map into x0-x7 preserving the AAPCS argument-passing role, ra maps to
// the ARM link register x30, sp maps to the ARM stack pointer, s0/fp maps
// to the ARM frame pointer x29, and the remaining temporaries and saved
// registers fill the rest of the general-purpose file. x8 is
// deliberately left unmapped: 32 RISC-V ABI names need only 32 of ARM's
// 33 addressable slots (x0-x30, sp, xzr), and leaving one general
// register out of the permutation keeps the mapping table's "32 inputs,
// 32 distinct outputs" invariant easy to eyeball.
var mapNameTable = [numRegs]ArmReg{
	Zero: ArmXZR,
	Ra:   ArmX30,
	Sp:   ArmSP,
	Gp:   ArmX16,
	Tp:   ArmX17,
	T0:   ArmX9,
	T1:   ArmX10,
	T2:   ArmX11,
	S0:   ArmX29,
	S1:   ArmX18,
	A0:   ArmX0,
	A1:   ArmX1,
	A2:   ArmX2,
	A3:   ArmX3,
	A4:   ArmX4,
	A5:   ArmX5,
	A6:   ArmX6,
	A7:   ArmX7,
	S2:   ArmX19,
	S3:   ArmX20,
	S4:   ArmX21,
	S5:   ArmX22,
	S6:   ArmX23,
	S7:   ArmX24,
	S8:   ArmX25,
	S9:   ArmX26,
	S10:  ArmX27,
	S11:  ArmX28,
	T3:   ArmX12,
	T4:   ArmX13,
	T5:   ArmX14,
	T6:   ArmX15,
}

// MapName is the pure function the spec calls map_name: RISC-V register
// to ARM register slot, width-agnostic.
func MapName(r Reg) ArmReg {
	if r < 0 || int(r) >= numRegs {
		return ArmXZR
	}
	return mapNameTable[r]
}

// MapWidth is the pure function the spec calls map_width: a RISC-V width
// tag maps onto the ARM prefix of the same name.
func MapWidth(w Width) Width { return w }

// Map combines MapName and MapWidth into the single (RiscVRegister, Width)
// -> (ArmRegister, Width) function the spec's contract describes.
func Map(r Reg, w Width) (ArmReg, Width) {
	return MapName(r), MapWidth(w)
}
