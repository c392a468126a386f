package cpu

var aluMnemonics = [8]string{"ADD", "ADC", "SUB", "SBC", "AND", "XOR", "OR", "CP"}

// alu builds alu[y] against src, which the caller has already resolved to r[z], (HL) or an
// 8-bit immediate. ADD, ADC and SBC spell the accumulator out as their first operand;
// SUB, AND, XOR, OR and CP leave it implicit, as the reference table writes them.
// All eight report Z, N, H and C as affected.
func alu(location uint16, op byte, f Fields, src Operand, length, cycles int) Instruction {
	mn := aluMnemonics[f.Y]
	switch f.Y {
	case 0, 1, 3:
		return newInst(location, op, mn, length, X8_ALU, cycles, cycles, FlagsAll, R8(RegA), src)
	default:
		return newInst(location, op, mn, length, X8_ALU, cycles, cycles, FlagsAll, src)
	}
}
