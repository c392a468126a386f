package opcodes

import (
	"errors"
	"strings"
	"testing"

	"github.com/FabianRolfMatthiasNoll/GameBoyDecoder/internal/cpu"
)

func loadTestTable(t *testing.T) *Table {
	t.Helper()
	tab, err := LoadFile("testdata/opcodes.json")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return tab
}

func TestParseAddr(t *testing.T) {
	good := map[string]byte{"0x3E": 0x3E, "0x3e": 0x3E, "0Xff": 0xFF, "7": 0x07, "0x0": 0x00, "cb": 0xCB}
	for s, want := range good {
		got, err := ParseAddr(s)
		if err != nil || got != want {
			t.Fatalf("ParseAddr(%q) got %02x,%v want %02x", s, got, err, want)
		}
	}
	for _, s := range []string{"", "0x", "0x123", "0xG1", "x3E", "3E ", "-1"} {
		if _, err := ParseAddr(s); !errors.Is(err, ErrBadAddr) {
			t.Fatalf("ParseAddr(%q) got %v want ErrBadAddr", s, err)
		}
	}
}

func TestLoad_Entries(t *testing.T) {
	tab := loadTestTable(t)
	if tab.Skipped != 2 {
		t.Fatalf("skipped got %d want 2", tab.Skipped)
	}
	jr, ok := tab.Lookup(false, 0x20)
	if !ok {
		t.Fatalf("0x20 missing")
	}
	if jr.MinCycles != 8 || jr.MaxCycles != 12 || jr.Syntax() != "JR NZ,r8" {
		t.Fatalf("JR NZ got %+v", jr)
	}
	nop, _ := tab.Lookup(false, 0x00)
	if nop.MinCycles != 4 || nop.MaxCycles != 4 || nop.Flags != cpu.FlagsNone {
		t.Fatalf("NOP got %+v", nop)
	}
	daa, _ := tab.Lookup(false, 0x27)
	if daa.Flags != cpu.FlagZ|cpu.FlagH|cpu.FlagC {
		t.Fatalf("DAA flags got %s", daa.Flags)
	}
	sub, _ := tab.Lookup(false, 0x90)
	if sub.Flags != cpu.FlagsAll {
		t.Fatalf("SUB flags got %s", sub.Flags)
	}
	bit, ok := tab.Lookup(true, 0x46)
	if !ok || !bit.Prefixed || bit.Syntax() != "BIT 0,(HL)" {
		t.Fatalf("CB 46 got %+v", bit)
	}
	if _, ok := tab.Lookup(false, 0x76); ok {
		t.Fatalf("entry without length should be skipped")
	}
}

func TestLoad_BadKey(t *testing.T) {
	_, err := Load(strings.NewReader(`{"unprefixed": {"0x1G": {"mnemonic": "NOP", "length": 1}}}`))
	if !errors.Is(err, ErrBadAddr) {
		t.Fatalf("got %v want ErrBadAddr", err)
	}
	_, err = Load(strings.NewReader(`{"unprefixed": {"0x00": {"mnemonic": "NOP", "length": 1, "addr": "0x100"}}}`))
	if !errors.Is(err, ErrBadAddr) {
		t.Fatalf("addr field: got %v want ErrBadAddr", err)
	}
}

func TestLoad_NotJSON(t *testing.T) {
	if _, err := Load(strings.NewReader("not json")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestGroupOf(t *testing.T) {
	if g, ok := GroupOf("x16/alu"); !ok || g != cpu.X16_ALU {
		t.Fatalf("x16/alu got %s,%v", g, ok)
	}
	if g, ok := GroupOf("Control/BR"); !ok || g != cpu.CTL_BR {
		t.Fatalf("case-insensitive lookup failed: %s,%v", g, ok)
	}
	if _, ok := GroupOf("x8/fpu"); ok {
		t.Fatalf("unknown group accepted")
	}
}
