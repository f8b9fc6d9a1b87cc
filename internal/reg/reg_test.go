package reg

import "testing"

func TestMapNameIsBijective(t *testing.T) {
	seen := make(map[ArmReg]Reg, numRegs)
	for i := 0; i < numRegs; i++ {
		r := Reg(i)
		target := MapName(r)
		if prior, ok := seen[target]; ok {
			t.Fatalf("MapName collision: %v and %v both map to %v", prior, r, target)
		}
		seen[target] = r
	}
	if len(seen) != numRegs {
		t.Fatalf("expected %d distinct targets, got %d", numRegs, len(seen))
	}
}

func TestZeroRegisterMapsToArmZero(t *testing.T) {
	target, _ := Map(Zero, Double)
	if !target.IsZero() {
		t.Errorf("Zero should map to the ARM zero register, got %v", target)
	}
}

func TestSpAndRaRoles(t *testing.T) {
	if target, _ := Map(Sp, Double); target != ArmSP {
		t.Errorf("sp should map to ArmSP, got %v", target)
	}
	if target, _ := Map(Ra, Double); target != ArmX30 {
		t.Errorf("ra should map to the ARM link register x30, got %v", target)
	}
}

func TestArgumentRegistersPreserveRole(t *testing.T) {
	args := []Reg{A0, A1, A2, A3, A4, A5, A6, A7}
	want := []ArmReg{ArmX0, ArmX1, ArmX2, ArmX3, ArmX4, ArmX5, ArmX6, ArmX7}
	for i, a := range args {
		if got := MapName(a); got != want[i] {
			t.Errorf("MapName(%v) = %v, want %v", a, got, want[i])
		}
	}
}

func TestArmRegNameWidthPrefix(t *testing.T) {
	if got := ArmX0.Name(Double); got != "x0" {
		t.Errorf("ArmX0.Name(Double) = %q, want x0", got)
	}
	if got := ArmX0.Name(Word); got != "w0" {
		t.Errorf("ArmX0.Name(Word) = %q, want w0", got)
	}
	if got := ArmXZR.Name(Double); got != "xzr" {
		t.Errorf("ArmXZR.Name(Double) = %q, want xzr", got)
	}
	if got := ArmXZR.Name(Word); got != "wzr" {
		t.Errorf("ArmXZR.Name(Word) = %q, want wzr", got)
	}
	if got := ArmSP.Name(Word); got != "sp" {
		t.Errorf("ArmSP.Name(Word) = %q, want sp", got)
	}
}

func TestParseRegRoundTrip(t *testing.T) {
	for i := 0; i < numRegs; i++ {
		want := Reg(i)
		got, ok := ParseReg(want.String())
		if !ok {
			t.Fatalf("ParseReg(%q) failed", want.String())
		}
		if got != want {
			t.Errorf("ParseReg(%q) = %v, want %v", want.String(), got, want)
		}
	}
	if _, ok := ParseReg("x8"); !ok {
		t.Error("ParseReg(x8) should resolve to s0")
	}
	if _, ok := ParseReg("fp"); !ok {
		t.Error("ParseReg(fp) should resolve to s0")
	}
	if _, ok := ParseReg("notareg"); ok {
		t.Error("ParseReg(notareg) should fail")
	}
}
