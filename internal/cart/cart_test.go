package cart

import (
	"errors"
	"testing"
)

func TestROM_FixedAndSwitchableBanks(t *testing.T) {
	rom := make([]byte, 4*bankSize)
	for b := 0; b < 4; b++ {
		rom[b*bankSize] = byte(0xA0 + b)
	}
	c := NewROM(rom)

	if got := c.Read(0x0000); got != 0xA0 {
		t.Fatalf("bank0 read got %02x want A0", got)
	}
	if got := c.Read(0x4000); got != 0xA1 {
		t.Fatalf("default switchable bank got %02x want A1", got)
	}
	if err := c.SelectBank(3); err != nil {
		t.Fatalf("SelectBank(3): %v", err)
	}
	if got := c.Read(0x4000); got != 0xA3 {
		t.Fatalf("bank3 read got %02x want A3", got)
	}
	if c.Bank() != 3 || c.Banks() != 4 {
		t.Fatalf("Bank/Banks got %d/%d want 3/4", c.Bank(), c.Banks())
	}
}

func TestROM_SelectBankOutOfRange(t *testing.T) {
	c := NewROM(make([]byte, 2*bankSize))
	if err := c.SelectBank(2); !errors.Is(err, ErrBankOutOfRange) {
		t.Fatalf("SelectBank(2) err got %v want ErrBankOutOfRange", err)
	}
	if err := c.SelectBank(-1); !errors.Is(err, ErrBankOutOfRange) {
		t.Fatalf("SelectBank(-1) err got %v want ErrBankOutOfRange", err)
	}
	if c.Bank() != 1 {
		t.Fatalf("failed select changed bank to %d", c.Bank())
	}
}

func TestROM_WritesIgnoredAndOpenBus(t *testing.T) {
	c := NewROM([]byte{0x11, 0x22})
	c.Write(0x0000, 0x99)
	c.Write(0x2000, 0x05) // MBC1 bank register on real hardware
	if got := c.Read(0x0000); got != 0x11 {
		t.Fatalf("ROM write was not ignored: got %02x", got)
	}
	if c.Bank() != 1 {
		t.Fatalf("MBC-range write switched bank to %d", c.Bank())
	}
	if got := c.Read(0x0100); got != 0xFF {
		t.Fatalf("read past image got %02x want FF", got)
	}
	if got := c.Read(0xA000); got != 0xFF {
		t.Fatalf("ext RAM read got %02x want FF", got)
	}
}
