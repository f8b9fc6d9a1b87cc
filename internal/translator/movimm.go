package translator

import (
	"github.com/xyproto/rv2arm/internal/ast"
	"github.com/xyproto/rv2arm/internal/reg"
)

// maxChunks resolves open question (b): large immediates are split into
// up to four 16-bit chunks loaded with one movz followed by up to three
// movk, the canonical choice the spec names when a source value doesn't
// already fit ARM's single wide-move immediate range.
const maxChunks = 4

// expandImmediate lowers `li rd, imm` (and any other full 64-bit
// constant load) into one or more ArmMov/ArmMovWide instructions. A
// value that fits the single-instruction wide-immediate form (a 16-bit
// unsigned quantity) is emitted directly as one `mov`; anything larger
// is split across a movz/movk chain, one chunk per call, skipping chunks
// that are zero except to guarantee at least one instruction is always
// emitted.
func expandImmediate(rd reg.ArmReg, width reg.Width, imm int64) []ast.TargetInstr {
	if imm >= 0 && imm <= 0xFFFF {
		return []ast.TargetInstr{ast.ArmMov{Width: width, Rd: rd, IsReg: false, Imm: imm}}
	}

	chunks := 4
	if width == reg.Word {
		chunks = 2
	}

	u := uint64(imm)
	var out []ast.TargetInstr
	for c := 0; c < chunks && c < maxChunks; c++ {
		shift := uint(c * 16)
		chunk := uint16((u >> shift) & 0xFFFF)
		if chunk == 0 {
			continue
		}
		out = append(out, ast.ArmMovWide{
			Width: width,
			Rd:    rd,
			Keep:  len(out) > 0,
			Chunk: chunk,
			Shift: shift,
		})
	}
	if len(out) == 0 {
		// u is all-zero within the examined chunks (imm's nonzero bits,
		// if any, live above this width's range) — still emit one movz
		// so the destination is explicitly zeroed rather than left
		// untouched.
		out = append(out, ast.ArmMovWide{Width: width, Rd: rd, Keep: false, Chunk: 0, Shift: 0})
	}
	return out
}
