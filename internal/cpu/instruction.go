package cpu

import (
	"fmt"
	"strings"
)

// Group classifies what an instruction is for. Tools use it for colouring listings; an
// execution engine can dispatch on it.
type Group uint8

const (
	X8_LSM   Group = iota // 8-bit load/store/move
	X16_LSM               // 16-bit load/store/move
	X8_ALU                // 8-bit arithmetic/logic
	X16_ALU               // 16-bit arithmetic
	X8_RSB                // rotate/shift/bit
	CTL_BR                // jumps, calls, returns, restarts
	CTL_MISC              // NOP, HALT, STOP, DI, EI
	UNKNOWN
)

var groupNames = [...]string{"X8_LSM", "X16_LSM", "X8_ALU", "X16_ALU", "X8_RSB", "CTL_BR", "CTL_MISC", "UNKNOWN"}

func (g Group) String() string {
	if int(g) < len(groupNames) {
		return groupNames[g]
	}
	return "BAD"
}

// FlagMask is a Z/N/H/C nibble, Z in bit 3 down to C in bit 0, the same layout as the top
// half of F. On an Instruction it lists the flags the instruction may modify.
type FlagMask uint8

const (
	FlagC FlagMask = 1 << iota
	FlagH
	FlagN
	FlagZ

	FlagsNone FlagMask = 0
	FlagsZNH           = FlagZ | FlagN | FlagH
	FlagsNHC           = FlagN | FlagH | FlagC
	FlagsAll           = FlagZ | FlagN | FlagH | FlagC
)

// String renders the mask in reference-table order, '-' for untouched: "Z-HC".
func (m FlagMask) String() string {
	b := []byte("----")
	for i, f := range [...]FlagMask{FlagZ, FlagN, FlagH, FlagC} {
		if m&f != 0 {
			b[i] = "ZNHC"[i]
		}
	}
	return string(b)
}

// BadOpMnemonic marks a byte pattern with no defined instruction.
const BadOpMnemonic = "BAD_OP_VAL"

// Instruction is the decoded description of one opcode at one location. It carries no
// execution semantics; operands only describe where values live.
type Instruction struct {
	Location uint16
	Opcode   byte // for CB-prefixed instructions this is the byte after 0xCB
	Prefixed bool
	Mnemonic string
	Extra    string // operand notation, e.g. "A,d8"
	Length   int
	Group    Group

	MinCycles int
	MaxCycles int // taken-branch cost for conditional control flow, else MinCycles

	Flags FlagMask

	Operand1 *Operand
	Operand2 *Operand
}

func newInst(loc uint16, op byte, mn string, length int, g Group, minC, maxC int, flags FlagMask, ops ...Operand) Instruction {
	in := Instruction{
		Location:  loc,
		Opcode:    op,
		Mnemonic:  mn,
		Length:    length,
		Group:     g,
		MinCycles: minC,
		MaxCycles: maxC,
		Flags:     flags,
	}
	if len(ops) > 0 {
		o := ops[0]
		in.Operand1 = &o
	}
	if len(ops) > 1 {
		o := ops[1]
		in.Operand2 = &o
	}
	in.Extra = in.joinOperands((*Operand).Syntax)
	return in
}

func badOp(loc uint16, op byte, length int) Instruction {
	return newInst(loc, op, BadOpMnemonic, length, UNKNOWN, 0, 0, FlagsNone)
}

// Bad reports whether the bytes at Location do not form a defined instruction.
func (in Instruction) Bad() bool { return in.Group == UNKNOWN }

// Conditional reports whether timing depends on a branch being taken.
func (in Instruction) Conditional() bool { return in.MinCycles != in.MaxCycles }

func (in Instruction) joinOperands(text func(*Operand) string) string {
	var parts []string
	if in.Operand1 != nil {
		parts = append(parts, text(in.Operand1))
	}
	if in.Operand2 != nil {
		parts = append(parts, text(in.Operand2))
	}
	return strings.Join(parts, ",")
}

// Operands renders the operands with their decoded values, e.g. "A,$12".
func (in Instruction) Operands() string { return in.joinOperands((*Operand).Name) }

// Syntax renders the instruction in reference-table notation, e.g. "LD A,d8".
func (in Instruction) Syntax() string {
	if in.Extra == "" {
		return in.Mnemonic
	}
	return in.Mnemonic + " " + in.Extra
}

func (in Instruction) String() string {
	if ops := in.Operands(); ops != "" {
		return in.Mnemonic + " " + ops
	}
	return in.Mnemonic
}

// Cycles renders the timing as "8" or "8/12".
func (in Instruction) Cycles() string {
	if in.Conditional() {
		return fmt.Sprintf("%d/%d", in.MinCycles, in.MaxCycles)
	}
	return fmt.Sprintf("%d", in.MinCycles)
}
