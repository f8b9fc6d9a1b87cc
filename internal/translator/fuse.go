package translator

import (
	"github.com/xyproto/rv2arm/internal/ast"
	"github.com/xyproto/rv2arm/internal/cerr"
)

// fuse runs the symbol-address pre-pass described in spec.md 4.3: a
// `lui rdHi, %hi(sym)` directly followed by `addi rdFinal, rdHi,
// %lo(sym)` referencing the same symbol is replaced by a single
// ast.LoadSymbolAddr item. Either half appearing without its matching
// partner is an UnmatchedHiLoPair error — the pattern match is strict,
// requiring the two instructions to be adjacent items with nothing (not
// even a label) between them, per the spec's "two-instruction idiom"
// framing.
func fuse(prog ast.SourceProgram, filename string) (ast.SourceProgram, *cerr.TranslatorError) {
	out := make(ast.SourceProgram, 0, len(prog))

	for i := 0; i < len(prog); i++ {
		item := prog[i]

		if item.Kind != ast.ItemInstr {
			out = append(out, item)
			continue
		}

		lui, isLui := item.Instr.(ast.Lui)
		if isLui && lui.Sym != "" {
			next, hasNext := nextInstr(prog, i)
			addi, isAddi := ast.SourceInstr(nil), false
			if hasNext {
				addi, isAddi = next.Instr.(ast.AddImm)
			}
			if !hasNext || !isAddi || addi.(ast.AddImm).SymRel != "lo" || addi.(ast.AddImm).Sym != lui.Sym {
				loc := cerr.Location{File: filename, Line: item.Line}
				e := cerr.Translate(cerr.UnmatchedHiLoPair, loc,
					"lui with %hi(\""+lui.Sym+"\") has no matching addi %lo(\""+lui.Sym+"\") immediately after it")
				return nil, &e
			}
			ai := addi.(ast.AddImm)
			out = append(out, ast.SourceItem{
				Kind: ast.ItemInstr,
				Line: item.Line,
				Instr: ast.LoadSymbolAddr{
					RdHi:    lui.Rd,
					RdFinal: ai.Rd,
					Sym:     lui.Sym,
				},
			})
			i++ // consume the matched addi
			continue
		}

		if ai, isAddi := item.Instr.(ast.AddImm); isAddi && ai.Sym != "" {
			loc := cerr.Location{File: filename, Line: item.Line}
			e := cerr.Translate(cerr.UnmatchedHiLoPair, loc,
				"addi %lo(\""+ai.Sym+"\") has no matching lui %hi(\""+ai.Sym+"\") immediately before it")
			return nil, &e
		}

		out = append(out, item)
	}

	return out, nil
}

// nextInstr returns the next ItemInstr-kind element after index i, if
// any, skipping nothing — the idiom requires strict adjacency.
func nextInstr(prog ast.SourceProgram, i int) (ast.SourceItem, bool) {
	if i+1 >= len(prog) {
		return ast.SourceItem{}, false
	}
	next := prog[i+1]
	if next.Kind != ast.ItemInstr {
		return ast.SourceItem{}, false
	}
	return next, true
}
