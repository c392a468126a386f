package cpu

import "fmt"

// Reg8 names an 8-bit register slot.
type Reg8 uint8

const (
	RegB Reg8 = iota
	RegC
	RegD
	RegE
	RegH
	RegL
	RegA
	RegF
)

var reg8Names = [...]string{"B", "C", "D", "E", "H", "L", "A", "F"}

func (r Reg8) String() string {
	if int(r) < len(reg8Names) {
		return reg8Names[r]
	}
	return fmt.Sprintf("Reg8(%d)", uint8(r))
}

// Reg16 names a register pair or one of the 16-bit pointers.
type Reg16 uint8

const (
	RegBC Reg16 = iota
	RegDE
	RegHL
	RegAF
	RegSP
	RegPC
)

var reg16Names = [...]string{"BC", "DE", "HL", "AF", "SP", "PC"}

func (r Reg16) String() string {
	if int(r) < len(reg16Names) {
		return reg16Names[r]
	}
	return fmt.Sprintf("Reg16(%d)", uint8(r))
}

// Registers is the SM83 register file. Pairs are derived from their halves on access;
// nothing aliases storage.
type Registers struct {
	A, F byte
	B, C byte
	D, E byte
	H, L byte

	SP uint16
	PC uint16
}

// ResetNoBoot sets registers to typical DMG post-boot state.
// Useful when running without a boot ROM.
func (r *Registers) ResetNoBoot() {
	r.A, r.F = 0x01, 0xB0
	r.B, r.C = 0x00, 0x13
	r.D, r.E = 0x00, 0xD8
	r.H, r.L = 0x01, 0x4D
	r.SP = 0xFFFE
	r.PC = 0x0100
}

func (r *Registers) AF() uint16     { return uint16(r.A)<<8 | uint16(r.F&0xF0) }
func (r *Registers) SetAF(v uint16) { r.A = byte(v >> 8); r.F = byte(v) & 0xF0 }
func (r *Registers) BC() uint16     { return uint16(r.B)<<8 | uint16(r.C) }
func (r *Registers) SetBC(v uint16) { r.B = byte(v >> 8); r.C = byte(v) }
func (r *Registers) DE() uint16     { return uint16(r.D)<<8 | uint16(r.E) }
func (r *Registers) SetDE(v uint16) { r.D = byte(v >> 8); r.E = byte(v) }
func (r *Registers) HL() uint16     { return uint16(r.H)<<8 | uint16(r.L) }
func (r *Registers) SetHL(v uint16) { r.H = byte(v >> 8); r.L = byte(v) }

// Flags unpacks the Z/N/H/C nibble held in the top half of F.
func (r *Registers) Flags() FlagMask { return FlagMask(r.F>>4) & FlagsAll }

// SetFlags packs m into F. The low nibble of F always reads as zero.
func (r *Registers) SetFlags(m FlagMask) { r.F = byte(m&FlagsAll) << 4 }

func (r *Registers) Flag(f FlagMask) bool { return r.Flags()&f != 0 }

func (r *Registers) SetFlag(f FlagMask, on bool) {
	m := r.Flags()
	if on {
		m |= f
	} else {
		m &^= f
	}
	r.SetFlags(m)
}

func (r *Registers) Get8(s Reg8) byte {
	switch s {
	case RegB:
		return r.B
	case RegC:
		return r.C
	case RegD:
		return r.D
	case RegE:
		return r.E
	case RegH:
		return r.H
	case RegL:
		return r.L
	case RegA:
		return r.A
	case RegF:
		return r.F & 0xF0
	}
	return 0
}

func (r *Registers) Set8(s Reg8, v byte) {
	switch s {
	case RegB:
		r.B = v
	case RegC:
		r.C = v
	case RegD:
		r.D = v
	case RegE:
		r.E = v
	case RegH:
		r.H = v
	case RegL:
		r.L = v
	case RegA:
		r.A = v
	case RegF:
		r.F = v & 0xF0
	}
}

func (r *Registers) Get16(s Reg16) uint16 {
	switch s {
	case RegBC:
		return r.BC()
	case RegDE:
		return r.DE()
	case RegHL:
		return r.HL()
	case RegAF:
		return r.AF()
	case RegSP:
		return r.SP
	case RegPC:
		return r.PC
	}
	return 0
}

func (r *Registers) Set16(s Reg16, v uint16) {
	switch s {
	case RegBC:
		r.SetBC(v)
	case RegDE:
		r.SetDE(v)
	case RegHL:
		r.SetHL(v)
	case RegAF:
		r.SetAF(v)
	case RegSP:
		r.SP = v
	case RegPC:
		r.PC = v
	}
}
