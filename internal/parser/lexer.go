package parser

import "strings"

// rawLine is one physical line of input, stripped of its trailing
// comment, with its original 1-based line number preserved for
// diagnostics.
type rawLine struct {
	line int
	text string
}

// lex splits source text into the non-blank, comment-stripped lines the
// parser operates on. Blank lines and full-line or trailing `#...`
// comments are discarded here, before the per-line tokenizer ever sees
// them — the same responsibility split the teacher's lexer.go draws
// between lexing and parsing.
func lex(source string) []rawLine {
	var out []rawLine
	for i, raw := range strings.Split(source, "\n") {
		text := stripComment(raw)
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		out = append(out, rawLine{line: i + 1, text: text})
	}
	return out
}

// stripComment removes a `#...` comment, respecting that `#` never
// appears inside the operand syntax this dialect supports.
func stripComment(s string) string {
	if idx := strings.IndexByte(s, '#'); idx >= 0 {
		return s[:idx]
	}
	return s
}
