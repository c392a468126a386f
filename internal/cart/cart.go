package cart

import (
	"errors"
	"fmt"
)

// ErrBankOutOfRange is returned when selecting a ROM bank the image does not contain.
var ErrBankOutOfRange = errors.New("rom bank out of range")

const bankSize = 0x4000

// Cartridge is the read/write surface the bus maps at 0x0000–0x7FFF and 0xA000–0xBFFF.
type Cartridge interface {
	Read(addr uint16) byte
	Write(addr uint16, value byte)
}

// ROM is a read-only cartridge view. Bank 0 is fixed at 0x0000–0x3FFF and the bank shown at
// 0x4000–0x7FFF is picked explicitly with SelectBank; MBC register writes are ignored, so
// decoding through it never changes what is mapped.
type ROM struct {
	rom  []byte
	bank int
}

func NewROM(rom []byte) *ROM {
	return &ROM{rom: rom, bank: 1}
}

// Banks reports the number of 16 KiB banks in the image, rounding a short tail up.
func (c *ROM) Banks() int {
	return (len(c.rom) + bankSize - 1) / bankSize
}

// Bank returns the bank currently visible at 0x4000–0x7FFF.
func (c *ROM) Bank() int { return c.bank }

// SelectBank maps bank n into the switchable window. Bank 0 is allowed and mirrors the fixed
// area, which is what a ROM-only cart without MBC would never do but is useful for tooling.
func (c *ROM) SelectBank(n int) error {
	if n < 0 || (n > 1 && n >= c.Banks()) {
		return fmt.Errorf("select bank %d of %d: %w", n, c.Banks(), ErrBankOutOfRange)
	}
	c.bank = n
	return nil
}

// Bytes returns the raw image.
func (c *ROM) Bytes() []byte { return c.rom }

func (c *ROM) Read(addr uint16) byte {
	var off int
	switch {
	case addr < 0x4000:
		off = int(addr)
	case addr < 0x8000:
		off = c.bank*bankSize + int(addr-0x4000)
	default: // no external RAM
		return 0xFF
	}
	if off < len(c.rom) {
		return c.rom[off]
	}
	return 0xFF
}

func (c *ROM) Write(addr uint16, value byte) {
	// writes are ignored, including MBC control ranges
}
