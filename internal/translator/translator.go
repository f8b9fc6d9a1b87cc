// Package translator is the algorithmic core of the pipeline: it turns
// a parsed ast.SourceProgram into an ast.TargetProgram whose every
// instruction is an ARM64 variant, per spec.md 4.3. Three passes run in
// sequence: fuse (the lui/addi symbol-address pre-pass), per-
// instruction rule dispatch (one source instruction in, zero-or-more
// target instructions out), and a final label-reference check against
// the labels the program actually defines.
package translator

import (
	"github.com/xyproto/rv2arm/internal/ast"
	"github.com/xyproto/rv2arm/internal/cerr"
)

// Translate runs the full translation pipeline on filename/prog. It
// returns the fatal error immediately if the pre-pass or any rule
// fails — translation, unlike parsing, does not batch past the first
// fatal error, since later instructions may depend on register state
// the aborted rule would have established.
func Translate(filename string, prog ast.SourceProgram) (ast.TargetProgram, *cerr.TranslatorError) {
	fused, err := fuse(prog, filename)
	if err != nil {
		return nil, err
	}

	var out ast.TargetProgram
	for _, item := range fused {
		switch item.Kind {
		case ast.ItemLabel:
			out = append(out, ast.TargetItem{Kind: ast.ItemLabel, Line: item.Line, LabelName: item.LabelName})
		case ast.ItemDirective:
			out = append(out, ast.TargetItem{Kind: ast.ItemDirective, Line: item.Line, Directive: item.Directive})
		case ast.ItemInstr:
			targets, err := translateInstr(filename, item.Line, item.Instr)
			if err != nil {
				return nil, err
			}
			for _, t := range targets {
				out = append(out, ast.TargetItem{Kind: ast.ItemInstr, Line: item.Line, Instr: t})
			}
		}
	}

	if err := checkLabels(filename, fused); err != nil {
		return nil, err
	}

	return out, nil
}

// checkLabels verifies every label referenced by a branch or jump in
// src is defined somewhere in the program — the UndefinedLabel error
// condition from spec.md 4.3. It runs against the fused source program
// rather than the target program since label names never change during
// translation.
func checkLabels(filename string, src ast.SourceProgram) *cerr.TranslatorError {
	defined := make(map[string]bool)
	for _, l := range src.Labels() {
		defined[l] = true
	}

	for _, item := range src {
		if item.Kind != ast.ItemInstr {
			continue
		}
		label, line, ok := referencedLabel(item)
		if !ok {
			continue
		}
		if !defined[label] {
			e := cerr.Translate(cerr.UndefinedLabel, cerr.Location{File: filename, Line: line},
				"label '"+label+"' is never defined")
			return &e
		}
	}
	return nil
}

func referencedLabel(item ast.SourceItem) (label string, line int, ok bool) {
	switch v := item.Instr.(type) {
	case ast.Jal:
		return v.Label, item.Line, true
	case ast.Branch:
		return v.Label, item.Line, true
	default:
		return "", 0, false
	}
}
