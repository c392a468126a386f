package cpu

var rotMnemonics = [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SWAP", "SRL"}

// rotate builds rot[y] r[z] from a CB-prefixed opcode. Both forms are two bytes long.
func rotate(location uint16, op byte, f Fields) Instruction {
	in := newInst(location, op, rotMnemonics[f.Y], 2, X8_RSB, 8, 8, FlagsAll, r(f.Z))
	if f.Z == 6 {
		in.MinCycles, in.MaxCycles = 16, 16
	}
	in.Prefixed = true
	return in
}
