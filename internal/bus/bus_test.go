package bus

import "testing"

func TestBus_ROMAndRAM(t *testing.T) {
	rom := make([]byte, 0x8000)
	rom[0x0100] = 0x42
	b := New(rom)

	if got := b.Read(0x0100); got != 0x42 {
		t.Fatalf("ROM read got %02x, want 42", got)
	}

	// ROM is read-only
	b.Write(0x0100, 0x00)
	if got := b.Read(0x0100); got != 0x42 {
		t.Fatalf("ROM write was not ignored: got %02x", got)
	}

	// RAM write+read
	b.Write(0xC000, 0x99)
	if got := b.Read(0xC000); got != 0x99 {
		t.Fatalf("RAM read got %02x, want 99", got)
	}

	// Echo RAM mirrors C000–DDFF
	b.Write(0xE000, 0x55)
	if got := b.Read(0xC000); got != 0x55 {
		t.Fatalf("Echo write did not mirror to WRAM: got %02x", got)
	}

	// HRAM read/write
	b.Write(0xFF80, 0xAB)
	if got := b.Read(0xFF80); got != 0xAB {
		t.Fatalf("HRAM read got %02x, want AB", got)
	}

	// IE at 0xFFFF
	b.Write(0xFFFF, 0x1B)
	if got := b.Read(0xFFFF); got != 0x1B {
		t.Fatalf("IE read got %02x, want 1B", got)
	}

	// ROM-only cart should return 0xFF for A000–BFFF
	if got := b.Read(0xA123); got != 0xFF {
		t.Fatalf("Ext RAM (ROM-only) got %02x, want FF", got)
	}

	// VRAM and IO are not modelled
	if got := b.Read(0x8000); got != 0xFF {
		t.Fatalf("VRAM read got %02x, want FF", got)
	}
}

func TestBus_ReadsAreSideEffectFree(t *testing.T) {
	b := New(make([]byte, 0x8000))
	b.Write(0xC123, 0x7E)
	for i := 0; i < 3; i++ {
		if got := b.Read(0xC123); got != 0x7E {
			t.Fatalf("read %d got %02x, want 7E", i, got)
		}
	}
}

func TestFlat_LoadWraps(t *testing.T) {
	var m Flat
	m.Load(0xFFFF, []byte{0x01, 0x02})
	if m.Read(0xFFFF) != 0x01 || m.Read(0x0000) != 0x02 {
		t.Fatalf("Load did not wrap: FFFF=%02x 0000=%02x", m.Read(0xFFFF), m.Read(0x0000))
	}
	m.Write(0x1234, 0xAA)
	if got := m.Read(0x1234); got != 0xAA {
		t.Fatalf("Flat read got %02x, want AA", got)
	}
}
