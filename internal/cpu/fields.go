package cpu

// Fields is the x/y/z/p/q split of an opcode byte that every decode table indexes by:
//
//	bit  7 6 | 5 4 3 | 2 1 0
//	     x   |   y   |   z
//	         | p   q |
type Fields struct {
	X, Y, Z byte
	P, Q    byte
}

// Classify splits op into its decode fields.
func Classify(op byte) Fields {
	y := (op >> 3) & 7
	return Fields{
		X: op >> 6,
		Y: y,
		Z: op & 7,
		P: y >> 1,
		Q: y & 1,
	}
}
