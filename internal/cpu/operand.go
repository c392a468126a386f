package cpu

import (
	"fmt"

	"github.com/FabianRolfMatthiasNoll/GameBoyDecoder/internal/bus"
)

// Kind discriminates the Operand variants.
type Kind uint8

const (
	KindReg8      Kind = iota // 8-bit register slot
	KindReg16                 // register pair, SP or PC
	KindImm8                  // 8-bit value captured at decode time
	KindImm16                 // 16-bit value captured at decode time
	KindSigned8               // signed 8-bit displacement captured at decode time
	KindIndirect              // memory through a 16-bit address operand
	KindOffset                // base + 8-bit operand, the 0xFF00 I/O page forms
	KindDisplaced             // 16-bit register + signed displacement (SP+r8)
	KindCond                  // branch condition
	KindLiteral               // bit index, restart vector, STOP padding
)

// Width is the size in bits of the value an operand yields.
type Width uint8

const (
	Width8  Width = 8
	Width16 Width = 16
)

// Cond is a branch condition tested against F.
type Cond uint8

const (
	CondNZ Cond = iota
	CondZ
	CondNC
	CondC
)

var condNames = [...]string{"NZ", "Z", "NC", "C"}

func (c Cond) String() string { return condNames[c&3] }

// Holds reports whether the condition is met by the given flags.
func (c Cond) Holds(f FlagMask) bool {
	switch c {
	case CondNZ:
		return f&FlagZ == 0
	case CondZ:
		return f&FlagZ != 0
	case CondNC:
		return f&FlagC == 0
	default:
		return f&FlagC != 0
	}
}

// Operand is a source or destination of an instruction: a register slot, a captured
// constant, or a memory location computed from another operand. It is a closed sum over
// Kind; the behaviour of each variant lives in the switches below.
//
// An Operand keeps no reference to a register file or memory store. Read and Write take
// them as arguments, so an operand can never outlive or pin the state it was decoded
// against.
type Operand struct {
	kind  Kind
	reg8  Reg8
	reg16 Reg16
	value uint16
	width Width
	step  int8     // post-access adjustment of the address register: +1 HL+, -1 HL-
	inner *Operand // address source, offset source or displacement base
	cond  Cond

	// notation overrides; empty means derive from the variant
	name   string
	syntax string
}

func R8(r Reg8) Operand   { return Operand{kind: KindReg8, reg8: r, width: Width8} }
func R16(r Reg16) Operand { return Operand{kind: KindReg16, reg16: r, width: Width16} }

func Imm8(v byte) Operand {
	return Operand{kind: KindImm8, value: uint16(v), width: Width8, syntax: "d8"}
}

func Imm16(v uint16) Operand {
	return Operand{kind: KindImm16, value: v, width: Width16, syntax: "d16"}
}

// Addr8 is an 8-bit immediate used as the low half of an I/O page address.
func Addr8(v byte) Operand {
	return Operand{kind: KindImm8, value: uint16(v), width: Width8, syntax: "a8"}
}

// Addr16 is a 16-bit immediate used as an absolute address or jump target.
func Addr16(v uint16) Operand {
	return Operand{kind: KindImm16, value: v, width: Width16, syntax: "a16"}
}

// Signed8 is a two's-complement displacement; Read sign-extends it to 16 bits.
func Signed8(v byte) Operand {
	return Operand{kind: KindSigned8, value: uint16(v), width: Width8, syntax: "r8"}
}

func Condition(c Cond) Operand { return Operand{kind: KindCond, cond: c, width: Width8} }

// Literal is a constant baked into the opcode itself. name is the human form, syntax the
// reference-table form (RST 38h is named "$38" and written "38H").
func Literal(v byte, name, syntax string) Operand {
	return Operand{kind: KindLiteral, value: uint16(v), width: Width8, name: name, syntax: syntax}
}

// Indirect addresses memory through addr. The address source must yield 16 bits; handing
// it an 8-bit operand is a programming error and panics here rather than at access time.
func Indirect(addr Operand, w Width) Operand {
	if addr.Width() != Width16 {
		panic(fmt.Sprintf("cpu: indirect address source %s is %d-bit", addr.Name(), addr.Width()))
	}
	if w != Width8 && w != Width16 {
		panic(fmt.Sprintf("cpu: indirect width %d", w))
	}
	a := addr
	return Operand{kind: KindIndirect, inner: &a, width: w}
}

// IndirectStep is Indirect through a register that is adjusted by step after the access,
// the (HL+) and (HL-) modes. The adjustment is not made by Read or Write; see ApplyStep.
func IndirectStep(r Reg16, w Width, step int8) Operand {
	o := Indirect(R16(r), w)
	o.step = step
	return o
}

// Offset yields base plus the unsigned value of off: the 0xFF00+C and 0xFF00+a8 forms.
func Offset(base uint16, off Operand) Operand {
	o := off
	return Operand{kind: KindOffset, value: base, inner: &o, width: Width16}
}

// Displaced yields the 16-bit register r plus a signed displacement, the SP+r8 form.
func Displaced(r Reg16, disp byte) Operand {
	b := R16(r)
	return Operand{kind: KindDisplaced, inner: &b, value: uint16(disp), width: Width16}
}

// withNotation overrides how the operand is shown without changing what it refers to.
func (o Operand) withNotation(name, syntax string) Operand {
	o.name, o.syntax = name, syntax
	return o
}

func (o *Operand) Kind() Kind   { return o.kind }
func (o *Operand) Width() Width { return o.width }

// Step is the post-access adjustment applied to an (HL+)/(HL-) address register.
func (o *Operand) Step() int8 { return o.step }

// Inner returns the address, offset or base operand of composite variants, nil otherwise.
func (o *Operand) Inner() *Operand { return o.inner }

// Value returns the decode-time constant of immediate and literal variants.
func (o *Operand) Value() uint16 { return o.value }

func (o *Operand) Register8() Reg8   { return o.reg8 }
func (o *Operand) Register16() Reg16 { return o.reg16 }
func (o *Operand) Condition() Cond   { return o.cond }

// Name is the human-readable form with decoded values: "A", "$3E", "(HL+)", "($FF00+C)".
func (o *Operand) Name() string {
	if o.name != "" {
		return o.name
	}
	switch o.kind {
	case KindReg8:
		return o.reg8.String()
	case KindReg16:
		return o.reg16.String()
	case KindImm8:
		return fmt.Sprintf("$%02X", o.value)
	case KindImm16:
		return fmt.Sprintf("$%04X", o.value)
	case KindSigned8:
		return signedHex(byte(o.value))
	case KindIndirect:
		return "(" + o.inner.Name() + stepSuffix(o.step) + ")"
	case KindOffset:
		return fmt.Sprintf("$%04X+%s", o.value, o.inner.Name())
	case KindDisplaced:
		return o.inner.Name() + signedHex(byte(o.value))
	case KindCond:
		return o.cond.String()
	case KindLiteral:
		return fmt.Sprintf("%d", o.value)
	}
	return ""
}

// Syntax is the reference-table notation: "A", "d8", "a16", "r8", "(HL+)", "(C)", "SP+r8".
func (o *Operand) Syntax() string {
	if o.syntax != "" {
		return o.syntax
	}
	switch o.kind {
	case KindIndirect:
		return "(" + o.inner.Syntax() + stepSuffix(o.step) + ")"
	case KindOffset:
		// the I/O page base is implied by the notation
		return o.inner.Syntax()
	case KindDisplaced:
		return o.inner.Syntax() + "+r8"
	}
	return o.Name()
}

func (o *Operand) String() string { return o.Name() }

// Writable reports whether Write stores anything. Only registers and memory locations are
// storage; constants, conditions and address expressions are not.
func (o *Operand) Writable() bool {
	switch o.kind {
	case KindReg8, KindReg16, KindIndirect:
		return true
	}
	return false
}

// Read resolves the operand against a register file and memory store. Memory is only read,
// never written, and an (HL+)/(HL-) step is not applied.
//
// A 16-bit indirect read returns the byte at the address as the HIGH half and the byte at
// address+1 as the low half, the order the reference table displays words in. This is the
// reverse of how the CPU itself stores SP for LD (a16),SP.
func (o *Operand) Read(regs *Registers, mem bus.Memory) uint16 {
	switch o.kind {
	case KindReg8:
		return uint16(regs.Get8(o.reg8))
	case KindReg16:
		return regs.Get16(o.reg16)
	case KindImm8, KindImm16, KindLiteral:
		return o.value
	case KindSigned8:
		return uint16(int16(int8(o.value)))
	case KindIndirect:
		addr := o.inner.Read(regs, mem)
		if o.width == Width16 {
			return uint16(mem.Read(addr))<<8 | uint16(mem.Read(addr+1))
		}
		return uint16(mem.Read(addr))
	case KindOffset:
		return o.value + o.inner.Read(regs, mem)&0xFF
	case KindDisplaced:
		return o.inner.Read(regs, mem) + uint16(int16(int8(o.value)))
	case KindCond:
		if o.cond.Holds(regs.Flags()) {
			return 1
		}
		return 0
	}
	return 0
}

// Write stores v into a register slot or memory. On constants, conditions and address
// expressions it does nothing. A 16-bit indirect write mirrors Read: high byte at the
// address, low byte at address+1.
func (o *Operand) Write(regs *Registers, mem bus.Memory, v uint16) {
	switch o.kind {
	case KindReg8:
		regs.Set8(o.reg8, byte(v))
	case KindReg16:
		regs.Set16(o.reg16, v)
	case KindIndirect:
		addr := o.inner.Read(regs, mem)
		if o.width == Width16 {
			mem.Write(addr, byte(v>>8))
			mem.Write(addr+1, byte(v))
			return
		}
		mem.Write(addr, byte(v))
	}
}

// ApplyStep performs the (HL+)/(HL-) register adjustment. Decoding never calls it; an
// execution phase calls it once after the memory access.
func (o *Operand) ApplyStep(regs *Registers) {
	if o.kind != KindIndirect || o.step == 0 || o.inner.kind != KindReg16 {
		return
	}
	r := o.inner.reg16
	regs.Set16(r, regs.Get16(r)+uint16(int16(o.step)))
}

func stepSuffix(step int8) string {
	switch {
	case step > 0:
		return "+"
	case step < 0:
		return "-"
	}
	return ""
}

func signedHex(v byte) string {
	if s := int8(v); s < 0 {
		return fmt.Sprintf("-$%02X", -int(s))
	}
	return fmt.Sprintf("+$%02X", v)
}
