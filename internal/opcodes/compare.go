package opcodes

import (
	"fmt"
	"io"

	"github.com/FabianRolfMatthiasNoll/GameBoyDecoder/internal/cpu"
)

// Mismatch is one field on which the decoder and the table disagree.
type Mismatch struct {
	Field string
	Want  string // table
	Got   string // decoder
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: table %q, decoder %q", m.Field, m.Want, m.Got)
}

// Compare checks inst against e on mnemonic, length, cycles, flags, operand notation and,
// when the table carries one, group.
func Compare(e Entry, inst cpu.Instruction) []Mismatch {
	var out []Mismatch
	add := func(field, want, got string) {
		if want != got {
			out = append(out, Mismatch{Field: field, Want: want, Got: got})
		}
	}
	add("mnemonic", e.Mnemonic, inst.Mnemonic)
	add("length", fmt.Sprint(e.Length), fmt.Sprint(inst.Length))
	add("cycles", fmt.Sprintf("%d/%d", e.MinCycles, e.MaxCycles), fmt.Sprintf("%d/%d", inst.MinCycles, inst.MaxCycles))
	add("flags", e.Flags.String(), inst.Flags.String())
	add("operand1", e.Operand1, syntaxOf(inst.Operand1))
	add("operand2", e.Operand2, syntaxOf(inst.Operand2))
	if e.Group != "" {
		want, ok := GroupOf(e.Group)
		if !ok {
			add("group", e.Group, inst.Group.String())
		} else {
			add("group", want.String(), inst.Group.String())
		}
	}
	return out
}

func syntaxOf(o *cpu.Operand) string {
	if o == nil {
		return ""
	}
	return o.Syntax()
}

// errata are known errors in the widely circulated reference table. Disagreeing with the
// table on these fields is reported but does not count as a failure.
var errata = map[key]map[string]string{
	{false, 0xE2}: {"length": "LD (C),A is one byte"},
	{false, 0xF2}: {"length": "LD A,(C) is one byte"},
}

func init() {
	// BIT b,(HL) only reads memory: 12 cycles, not 16
	for b := 0; b < 8; b++ {
		errata[key{true, byte(0x46 + b*8)}] = map[string]string{"cycles": "BIT b,(HL) takes 12 cycles"}
	}
}

type key struct {
	prefixed bool
	op       byte
}

// Diff is a mismatch found at one opcode.
type Diff struct {
	Prefixed bool
	Opcode   byte
	Syntax   string // decoder notation
	Mismatch
	Waived string // non-empty for known table errata
}

func (d Diff) String() string {
	s := fmt.Sprintf("%s%02X %-14s %s", prefix(d.Prefixed), d.Opcode, d.Syntax, d.Mismatch)
	if d.Waived != "" {
		s += " (waived: " + d.Waived + ")"
	}
	return s
}

func prefix(cb bool) string {
	if cb {
		return "CB "
	}
	return ""
}

// Report is the outcome of Validate.
type Report struct {
	Checked int
	Missing []string // decoder instructions with no table entry
	Diffs   []Diff
}

// Failures counts the diffs that are not known errata.
func (r *Report) Failures() int {
	n := 0
	for _, d := range r.Diffs {
		if d.Waived == "" {
			n++
		}
	}
	return n
}

func (r *Report) OK() bool { return r.Failures() == 0 }

// Write prints the report, one line per diff.
func (r *Report) Write(w io.Writer) error {
	for _, d := range r.Diffs {
		if _, err := fmt.Fprintln(w, d); err != nil {
			return err
		}
	}
	for _, m := range r.Missing {
		if _, err := fmt.Fprintf(w, "%s: not in table\n", m); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "checked %d opcodes: %d failures, %d waived, %d missing\n",
		r.Checked, r.Failures(), len(r.Diffs)-r.Failures(), len(r.Missing))
	return err
}

// Validate decodes every unprefixed opcode except 0xCB and every CB-prefixed opcode and
// compares each against the table. Undefined opcodes absent from the table are fine.
func Validate(t *Table, dec *cpu.Decoder) Report {
	var rep Report
	for i := 0; i <= 0xFF; i++ {
		op := byte(i)
		if op != 0xCB {
			rep.check(t, false, op, dec.DecodeOp(0, op))
		}
	}
	for i := 0; i <= 0xFF; i++ {
		rep.check(t, true, byte(i), dec.DecodeCB(0, byte(i)))
	}
	return rep
}

func (r *Report) check(t *Table, prefixed bool, op byte, inst cpu.Instruction) {
	e, ok := t.Lookup(prefixed, op)
	if !ok {
		if !inst.Bad() {
			r.Missing = append(r.Missing, fmt.Sprintf("%s%02X %s", prefix(prefixed), op, inst.Syntax()))
		}
		return
	}
	r.Checked++
	for _, m := range Compare(e, inst) {
		r.Diffs = append(r.Diffs, Diff{
			Prefixed: prefixed,
			Opcode:   op,
			Syntax:   inst.Syntax(),
			Mismatch: m,
			Waived:   errata[key{prefixed, op}][m.Field],
		})
	}
}
