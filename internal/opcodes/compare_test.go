package opcodes

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/FabianRolfMatthiasNoll/GameBoyDecoder/internal/bus"
	"github.com/FabianRolfMatthiasNoll/GameBoyDecoder/internal/cpu"
)

func TestCompare_Match(t *testing.T) {
	tab := loadTestTable(t)
	dec := cpu.NewDecoder(new(bus.Flat))
	for _, op := range []byte{0x00, 0x20, 0x22, 0x27, 0x3E, 0x80, 0x90, 0xC3, 0xE0, 0xE9, 0xF8, 0xFF} {
		e, _ := tab.Lookup(false, op)
		if ms := Compare(e, dec.DecodeOp(0, op)); len(ms) != 0 {
			t.Fatalf("%02x: unexpected mismatches %v", op, ms)
		}
	}
}

func TestCompare_ReportsFields(t *testing.T) {
	dec := cpu.NewDecoder(new(bus.Flat))
	e := Entry{Mnemonic: "LD", Length: 3, MinCycles: 8, MaxCycles: 8, Flags: cpu.FlagZ, Operand1: "A", Operand2: "d16", Group: "x16/lsm"}
	ms := Compare(e, dec.DecodeOp(0, 0x3E))
	fields := map[string]bool{}
	for _, m := range ms {
		fields[m.Field] = true
	}
	for _, f := range []string{"length", "flags", "operand2", "group"} {
		if !fields[f] {
			t.Fatalf("expected mismatch on %s, got %v", f, ms)
		}
	}
	if fields["mnemonic"] || fields["cycles"] || fields["operand1"] {
		t.Fatalf("unexpected mismatches %v", ms)
	}
}

func TestCompare_NoGroup(t *testing.T) {
	dec := cpu.NewDecoder(new(bus.Flat))
	e := Entry{Mnemonic: "NOP", Length: 1, MinCycles: 4, MaxCycles: 4}
	if ms := Compare(e, dec.DecodeOp(0, 0x00)); len(ms) != 0 {
		t.Fatalf("got %v", ms)
	}
}

func TestValidate_TestTable(t *testing.T) {
	tab := loadTestTable(t)
	rep := Validate(tab, cpu.NewDecoder(new(bus.Flat)))

	// 13 unprefixed entries (PREFIX CB is not checked) plus 3 CB entries
	if rep.Checked != 16 {
		t.Fatalf("checked got %d want 16", rep.Checked)
	}
	if !rep.OK() {
		var buf bytes.Buffer
		_ = rep.Write(&buf)
		t.Fatalf("unexpected failures:\n%s", buf.String())
	}
	waived := map[string]bool{}
	for _, d := range rep.Diffs {
		waived[d.Field] = d.Waived != ""
	}
	if len(rep.Diffs) != 2 || !waived["length"] || !waived["cycles"] {
		t.Fatalf("expected the LD (C),A length and BIT 0,(HL) cycles errata, got %v", rep.Diffs)
	}
	// 244 defined unprefixed opcodes + 256 CB minus what the table covers
	if want := 244 + 256 - 16; len(rep.Missing) != want {
		t.Fatalf("missing got %d want %d", len(rep.Missing), want)
	}

	var buf bytes.Buffer
	if err := rep.Write(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "0 failures, 2 waived") {
		t.Fatalf("summary got %q", buf.String())
	}
}

func TestValidate_Failure(t *testing.T) {
	tab := &Table{
		Unprefixed: map[byte]Entry{0x00: {Mnemonic: "NOP", Length: 2, MinCycles: 4, MaxCycles: 4}},
		CB:         map[byte]Entry{},
	}
	rep := Validate(tab, cpu.NewDecoder(new(bus.Flat)))
	if rep.OK() || rep.Failures() != 1 {
		t.Fatalf("expected one failure, got %+v", rep.Diffs)
	}
	if got := rep.Diffs[0].String(); !strings.Contains(got, "length") {
		t.Fatalf("diff text got %q", got)
	}
}

// TestValidate_ReferenceTable runs against a full opcodes.json when OPCODES_JSON points at one.
func TestValidate_ReferenceTable(t *testing.T) {
	path := os.Getenv("OPCODES_JSON")
	if path == "" {
		t.Skip("set OPCODES_JSON to a full reference table to run")
	}
	tab, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	rep := Validate(tab, cpu.NewDecoder(new(bus.Flat)))
	if !rep.OK() {
		var buf bytes.Buffer
		_ = rep.Write(&buf)
		t.Fatalf("decoder disagrees with %s:\n%s", path, buf.String())
	}
}
