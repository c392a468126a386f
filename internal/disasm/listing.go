package disasm

import (
	"fmt"
	"io"
	"strings"

	"github.com/FabianRolfMatthiasNoll/GameBoyDecoder/internal/cpu"
)

// Line is one decoded instruction in a listing.
type Line struct {
	Inst      cpu.Instruction
	Bytes     []byte
	Target    uint16 // control-flow destination, valid when HasTarget
	HasTarget bool
}

// Sweep decodes linearly from start to end inclusive, advancing by each instruction's
// length. Undefined opcodes advance by their length like any other instruction.
func Sweep(dec *cpu.Decoder, start, end uint16) []Line {
	var lines []Line
	mem := dec.Memory()
	for addr := int(start); addr <= int(end); {
		in := dec.Decode(uint16(addr))
		n := in.Length
		if n < 1 {
			n = 1
		}
		raw := make([]byte, n)
		for i := range raw {
			raw[i] = mem.Read(uint16(addr + i))
		}
		l := Line{Inst: in, Bytes: raw}
		l.Target, l.HasTarget = target(in)
		lines = append(lines, l)
		addr += n
	}
	return lines
}

// target resolves the destination of JR, JP a16, CALL and RST. Jumps through a register
// and returns have no static target.
func target(in cpu.Instruction) (uint16, bool) {
	if in.Group != cpu.CTL_BR {
		return 0, false
	}
	op := in.Operand1
	if op != nil && op.Kind() == cpu.KindCond {
		op = in.Operand2
	}
	if op == nil {
		return 0, false
	}
	switch op.Kind() {
	case cpu.KindSigned8:
		// relative to the instruction after the JR
		next := in.Location + uint16(in.Length)
		return next + uint16(int16(int8(op.Value()))), true
	case cpu.KindImm16, cpu.KindLiteral:
		return op.Value(), true
	}
	return 0, false
}

// Format renders the line according to cfg:
//
//	0150  3E 12     LD A,$12        8     ----
func (l Line) Format(cfg Config) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%04X  ", l.Inst.Location)
	if cfg.ShowBytes {
		hex := make([]string, len(l.Bytes))
		for i, v := range l.Bytes {
			hex[i] = fmt.Sprintf("%02X", v)
		}
		fmt.Fprintf(&b, "%-10s", strings.Join(hex, " "))
	}
	fmt.Fprintf(&b, "%-16s", l.Inst.String())
	if cfg.ShowTiming {
		cycles := l.Inst.Cycles()
		if l.Inst.Bad() {
			cycles = "-"
		}
		fmt.Fprintf(&b, "%-6s%s", cycles, l.Inst.Flags)
	}
	if l.HasTarget {
		fmt.Fprintf(&b, "  ; -> $%04X", l.Target)
	}
	return strings.TrimRight(b.String(), " ")
}

func (l Line) String() string {
	return l.Format(Config{ShowBytes: true, ShowTiming: true})
}

// Write prints lines, one per row.
func Write(w io.Writer, lines []Line, cfg Config) error {
	for _, l := range lines {
		if _, err := io.WriteString(w, l.Format(cfg)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// Format renders lines with bytes and timing shown.
func Format(lines []Line) string {
	var b strings.Builder
	_ = Write(&b, lines, Config{ShowBytes: true, ShowTiming: true})
	return b.String()
}

// backtrack is how far PrevLocation looks behind an address for an instruction stream
// that lands on it.
const backtrack = 0x20

// PrevLocation finds where the instruction before addr starts. It sweeps forward from
// progressively later points before addr and takes the first sweep that lands exactly on
// addr; when none does (addr is inside data, or near 0) it falls back to addr-1.
func PrevLocation(dec *cpu.Decoder, addr uint16) uint16 {
	if addr == 0 {
		return 0
	}
	from := int(addr) - backtrack
	if from < 0 {
		from = 0
	}
	for ; from < int(addr); from++ {
		prev, a := -1, from
		for a < int(addr) {
			prev = a
			n := dec.Decode(uint16(a)).Length
			if n < 1 {
				n = 1
			}
			a += n
		}
		if a == int(addr) && prev >= 0 {
			return uint16(prev)
		}
	}
	return addr - 1
}
