package engine

import "testing"

func TestParseArch(t *testing.T) {
	cases := map[string]Arch{
		"riscv64": ArchRiscv64,
		"rv64":    ArchRiscv64,
		"aarch64": ArchARM64,
		"arm64":   ArchARM64,
	}
	for in, want := range cases {
		got, err := ParseArch(in)
		if err != nil {
			t.Fatalf("ParseArch(%q) returned error: %v", in, err)
		}
		if got != want {
			t.Errorf("ParseArch(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := ParseArch("mips"); err == nil {
		t.Error("ParseArch(\"mips\") should have failed")
	}
}

func TestSuggestMnemonic(t *testing.T) {
	known := []string{"add", "addi", "sub", "and", "beq", "bne"}

	if got := SuggestMnemonic("ad", known); got != "add" {
		t.Errorf("SuggestMnemonic(ad) = %q, want add", got)
	}
	// "adid" is one deletion from "add" but two substitutions from "addi".
	if got := SuggestMnemonic("adid", known); got != "add" {
		t.Errorf("SuggestMnemonic(adid) = %q, want add", got)
	}
	if got := SuggestMnemonic("zzzzzzz", known); got != "" {
		t.Errorf("SuggestMnemonic(zzzzzzz) = %q, want empty", got)
	}
}
