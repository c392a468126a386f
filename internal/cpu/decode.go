package cpu

import (
	"fmt"

	"github.com/FabianRolfMatthiasNoll/GameBoyDecoder/internal/bus"
)

// Decoder turns bytes in a memory store into Instructions. It only ever reads the store:
// decoding the same location twice against unchanged memory gives identical results, and
// no register or memory write happens as part of decoding.
type Decoder struct {
	mem bus.Memory
}

func NewDecoder(mem bus.Memory) *Decoder {
	return &Decoder{mem: mem}
}

// Memory exposes the store the decoder reads from.
func (d *Decoder) Memory() bus.Memory { return d.mem }

// Decode reads the opcode at location and decodes it, following a 0xCB prefix.
func (d *Decoder) Decode(location uint16) Instruction {
	return d.DecodeOp(location, d.mem.Read(location))
}

// register tables indexed by the z/y, p fields
var (
	rTable   = [8]Reg8{RegB, RegC, RegD, RegE, RegH, RegL, RegF, RegA} // index 6 is (HL)
	rpTable  = [4]Reg16{RegBC, RegDE, RegHL, RegSP}
	rp2Table = [4]Reg16{RegBC, RegDE, RegHL, RegAF}
)

// r returns the 8-bit operand selected by a 3-bit register field; 6 selects (HL).
func r(idx byte) Operand {
	if idx == 6 {
		return hlIndirect()
	}
	return R8(rTable[idx])
}

func hlIndirect() Operand { return Indirect(R16(RegHL), Width8) }

func (d *Decoder) imm8(loc uint16) byte { return d.mem.Read(loc + 1) }

// imm16 fetches the little-endian word following the opcode.
func (d *Decoder) imm16(loc uint16) uint16 {
	return uint16(d.mem.Read(loc+1)) | uint16(d.mem.Read(loc+2))<<8
}

// DecodeOp decodes op as if it were stored at location. Immediate operands and the byte
// after a 0xCB prefix are still fetched from memory at location+1 onwards.
func (d *Decoder) DecodeOp(location uint16, op byte) Instruction {
	f := Classify(op)
	a := R8(RegA)

	switch f.X {
	case 0:
		switch f.Z {
		case 0:
			switch f.Y {
			case 0:
				return newInst(location, op, "NOP", 1, CTL_MISC, 4, 4, FlagsNone)
			case 1:
				// LD (a16),SP
				return newInst(location, op, "LD", 3, X16_LSM, 20, 20, FlagsNone,
					Indirect(Addr16(d.imm16(location)), Width16), R16(RegSP))
			case 2:
				// STOP is followed by a padding byte that assemblers emit as 0
				return newInst(location, op, "STOP", 2, CTL_MISC, 4, 4, FlagsNone,
					Literal(d.imm8(location), "0", "0"))
			case 3:
				return newInst(location, op, "JR", 2, CTL_BR, 12, 12, FlagsNone,
					Signed8(d.imm8(location)))
			default:
				// JR cc[y-4],r8
				return newInst(location, op, "JR", 2, CTL_BR, 8, 12, FlagsNone,
					Condition(Cond(f.Y-4)), Signed8(d.imm8(location)))
			}
		case 1:
			if f.Q == 0 {
				// LD rp[p],d16
				return newInst(location, op, "LD", 3, X16_LSM, 12, 12, FlagsNone,
					R16(rpTable[f.P]), Imm16(d.imm16(location)))
			}
			// ADD HL,rp[p]
			return newInst(location, op, "ADD", 1, X16_ALU, 8, 8, FlagsNHC,
				R16(RegHL), R16(rpTable[f.P]))
		case 2:
			var mem Operand
			switch f.P {
			case 0:
				mem = Indirect(R16(RegBC), Width8)
			case 1:
				mem = Indirect(R16(RegDE), Width8)
			case 2:
				mem = IndirectStep(RegHL, Width8, 1)
			default:
				mem = IndirectStep(RegHL, Width8, -1)
			}
			if f.Q == 0 {
				return newInst(location, op, "LD", 1, X8_LSM, 8, 8, FlagsNone, mem, a)
			}
			return newInst(location, op, "LD", 1, X8_LSM, 8, 8, FlagsNone, a, mem)
		case 3:
			mn := "INC"
			if f.Q == 1 {
				mn = "DEC"
			}
			return newInst(location, op, mn, 1, X16_ALU, 8, 8, FlagsNone, R16(rpTable[f.P]))
		case 4, 5:
			mn := "INC"
			if f.Z == 5 {
				mn = "DEC"
			}
			if f.Y == 6 {
				return newInst(location, op, mn, 1, X8_ALU, 12, 12, FlagsZNH, hlIndirect())
			}
			return newInst(location, op, mn, 1, X8_ALU, 4, 4, FlagsZNH, r(f.Y))
		case 6:
			if f.Y == 6 {
				return newInst(location, op, "LD", 2, X8_LSM, 12, 12, FlagsNone,
					hlIndirect(), Imm8(d.imm8(location)))
			}
			return newInst(location, op, "LD", 2, X8_LSM, 8, 8, FlagsNone,
				r(f.Y), Imm8(d.imm8(location)))
		case 7:
			return accumulatorOp(location, op, f)
		}
	case 1:
		switch {
		case f.Z == 6 && f.Y == 6:
			return newInst(location, op, "HALT", 1, CTL_MISC, 4, 4, FlagsNone)
		case f.Y == 6, f.Z == 6:
			// LD (HL),r[z] / LD r[y],(HL)
			return newInst(location, op, "LD", 1, X8_LSM, 8, 8, FlagsNone, r(f.Y), r(f.Z))
		default:
			return newInst(location, op, "LD", 1, X8_LSM, 4, 4, FlagsNone, r(f.Y), r(f.Z))
		}
	case 2:
		if f.Z == 6 {
			return alu(location, op, f, hlIndirect(), 1, 8)
		}
		return alu(location, op, f, r(f.Z), 1, 4)
	case 3:
		return d.decodeX3(location, op, f)
	}

	return badOp(location, op, 1)
}

// accumulatorOp covers the single-byte A and flag operations at x=0, z=7.
func accumulatorOp(location uint16, op byte, f Fields) Instruction {
	switch f.Y {
	case 0:
		return newInst(location, op, "RLCA", 1, X8_RSB, 4, 4, FlagsAll)
	case 1:
		return newInst(location, op, "RRCA", 1, X8_RSB, 4, 4, FlagsAll)
	case 2:
		return newInst(location, op, "RLA", 1, X8_RSB, 4, 4, FlagsAll)
	case 3:
		return newInst(location, op, "RRA", 1, X8_RSB, 4, 4, FlagsAll)
	case 4:
		return newInst(location, op, "DAA", 1, X8_ALU, 4, 4, FlagZ|FlagH|FlagC)
	case 5:
		return newInst(location, op, "CPL", 1, X8_ALU, 4, 4, FlagN|FlagH)
	case 6:
		return newInst(location, op, "SCF", 1, X8_ALU, 4, 4, FlagsNHC)
	case 7:
		return newInst(location, op, "CCF", 1, X8_ALU, 4, 4, FlagsNHC)
	}
	return badOp(location, op, 1)
}

func (d *Decoder) decodeX3(location uint16, op byte, f Fields) Instruction {
	a := R8(RegA)

	switch f.Z {
	case 0:
		switch f.Y {
		case 0, 1, 2, 3:
			return newInst(location, op, "RET", 1, CTL_BR, 8, 20, FlagsNone, Condition(Cond(f.Y)))
		case 4:
			// LDH (a8),A
			return newInst(location, op, "LDH", 2, X8_LSM, 12, 12, FlagsNone,
				d.ioPage(location), a)
		case 5:
			// ADD SP,r8 resets Z and N, so all four are written
			return newInst(location, op, "ADD", 2, X16_ALU, 16, 16, FlagsAll,
				R16(RegSP), Signed8(d.imm8(location)))
		case 6:
			// LDH A,(a8)
			return newInst(location, op, "LDH", 2, X8_LSM, 12, 12, FlagsNone,
				a, d.ioPage(location))
		case 7:
			// LD HL,SP+r8
			return newInst(location, op, "LD", 2, X16_LSM, 12, 12, FlagsAll,
				R16(RegHL), Displaced(RegSP, d.imm8(location)))
		}
	case 1:
		if f.Q == 0 {
			flags := FlagsNone
			if f.P == 3 {
				// POP AF loads F
				flags = FlagsAll
			}
			return newInst(location, op, "POP", 1, X16_LSM, 12, 12, flags, R16(rp2Table[f.P]))
		}
		switch f.P {
		case 0:
			return newInst(location, op, "RET", 1, CTL_BR, 16, 16, FlagsNone)
		case 1:
			return newInst(location, op, "RETI", 1, CTL_BR, 16, 16, FlagsNone)
		case 2:
			// JP (HL) jumps to HL itself; the parentheses are notation only
			return newInst(location, op, "JP", 1, CTL_BR, 4, 4, FlagsNone,
				R16(RegHL).withNotation("(HL)", "(HL)"))
		case 3:
			return newInst(location, op, "LD", 1, X16_LSM, 8, 8, FlagsNone, R16(RegSP), R16(RegHL))
		}
	case 2:
		switch f.Y {
		case 0, 1, 2, 3:
			return newInst(location, op, "JP", 3, CTL_BR, 12, 16, FlagsNone,
				Condition(Cond(f.Y)), Addr16(d.imm16(location)))
		case 4:
			// LD (C),A
			return newInst(location, op, "LD", 1, X8_LSM, 8, 8, FlagsNone, ioPageC(), a)
		case 5:
			return newInst(location, op, "LD", 3, X8_LSM, 16, 16, FlagsNone,
				Indirect(Addr16(d.imm16(location)), Width8), a)
		case 6:
			// LD A,(C)
			return newInst(location, op, "LD", 1, X8_LSM, 8, 8, FlagsNone, a, ioPageC())
		case 7:
			return newInst(location, op, "LD", 3, X8_LSM, 16, 16, FlagsNone,
				a, Indirect(Addr16(d.imm16(location)), Width8))
		}
	case 3:
		switch f.Y {
		case 0:
			return newInst(location, op, "JP", 3, CTL_BR, 16, 16, FlagsNone, Addr16(d.imm16(location)))
		case 1:
			return d.DecodeCB(location, d.mem.Read(location+1))
		case 6:
			return newInst(location, op, "DI", 1, CTL_MISC, 4, 4, FlagsNone)
		case 7:
			return newInst(location, op, "EI", 1, CTL_MISC, 4, 4, FlagsNone)
		}
	case 4:
		if f.Y <= 3 {
			return newInst(location, op, "CALL", 3, CTL_BR, 12, 24, FlagsNone,
				Condition(Cond(f.Y)), Addr16(d.imm16(location)))
		}
	case 5:
		if f.Q == 0 {
			return newInst(location, op, "PUSH", 1, X16_LSM, 16, 16, FlagsNone, R16(rp2Table[f.P]))
		}
		if f.P == 0 {
			return newInst(location, op, "CALL", 3, CTL_BR, 24, 24, FlagsNone, Addr16(d.imm16(location)))
		}
	case 6:
		return alu(location, op, f, Imm8(d.imm8(location)), 2, 8)
	case 7:
		vec := f.Y * 8
		return newInst(location, op, "RST", 1, CTL_BR, 16, 16, FlagsNone,
			Literal(vec, fmt.Sprintf("$%02X", vec), fmt.Sprintf("%02XH", vec)))
	}

	return badOp(location, op, 1)
}

// ioPage is the (0xFF00+a8) operand of LDH.
func (d *Decoder) ioPage(loc uint16) Operand {
	return Indirect(Offset(0xFF00, Addr8(d.imm8(loc))), Width8)
}

// ioPageC is the (0xFF00+C) operand.
func ioPageC() Operand {
	return Indirect(Offset(0xFF00, R8(RegC)), Width8)
}
