package disasm

// Config selects what a listing covers and how it is printed.
type Config struct {
	Start      uint16 // first address swept
	End        uint16 // last address swept (inclusive)
	Bank       int    // ROM bank mapped at 0x4000-0x7FFF
	ShowBytes  bool   // print the raw instruction bytes
	ShowTiming bool   // print cycles and affected flags
}

// Defaults fills missing fields with reasonable defaults.
func (c *Config) Defaults() {
	if c.End == 0 {
		c.End = 0x7FFF
	}
	if c.Bank <= 0 {
		c.Bank = 1
	}
}
