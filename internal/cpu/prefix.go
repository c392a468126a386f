package cpu

import "fmt"

// DecodeCB decodes ext, the byte following a 0xCB prefix at location. Every one of the 256
// extension bytes is a defined instruction.
func (d *Decoder) DecodeCB(location uint16, ext byte) Instruction {
	f := Classify(ext)
	var in Instruction

	switch f.X {
	case 0:
		return rotate(location, ext, f)
	case 1:
		// BIT y,r[z]
		cycles := 8
		if f.Z == 6 {
			cycles = 12
		}
		in = newInst(location, ext, "BIT", 2, X8_RSB, cycles, cycles, FlagsZNH, bitIndex(f.Y), r(f.Z))
	case 2, 3:
		// RES y,r[z] / SET y,r[z]
		mn := "RES"
		if f.X == 3 {
			mn = "SET"
		}
		cycles := 8
		if f.Z == 6 {
			cycles = 16
		}
		in = newInst(location, ext, mn, 2, X8_RSB, cycles, cycles, FlagsNone, bitIndex(f.Y), r(f.Z))
	default:
		in = badOp(location, ext, 2)
	}
	in.Prefixed = true
	return in
}

func bitIndex(y byte) Operand {
	s := fmt.Sprintf("%d", y)
	return Literal(y, s, s)
}
