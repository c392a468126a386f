package cart

import (
	"encoding/binary"
	"errors"
	"testing"
)

// buildROM makes a synthetic ROM with a valid header, checksums and a "NOP; JP $0150" stub.
// size should match the ROM size code (e.g. 64*1024 for code 0x01).
func buildROM(title string, cartType, romSizeCode, ramSizeCode byte, size int) []byte {
	rom := make([]byte, size)

	copy(rom[0x0100:0x0104], []byte{0x00, 0xC3, 0x50, 0x01})
	copy(rom[0x0104:0x0104+len(nintendoLogo)], nintendoLogo[:])

	tbytes := []byte(title)
	if len(tbytes) > 16 {
		tbytes = tbytes[:16]
	}
	copy(rom[0x0134:0x0144], tbytes)

	rom[0x0144], rom[0x0145] = '0', '1' // New licensee ("01")
	rom[0x0147] = cartType
	rom[0x0148] = romSizeCode
	rom[0x0149] = ramSizeCode
	rom[0x014B] = 0x33 // Old licensee (use new licensee)
	rom[0x014C] = 0x01

	// Header checksum over 0x0134–0x014C (Pan Docs algorithm)
	var hsum byte
	for addr := 0x0134; addr <= 0x014C; addr++ {
		hsum = hsum - rom[addr] - 1
	}
	rom[0x014D] = hsum

	var gsum uint16
	for i := 0; i < len(rom); i++ {
		if i == 0x014E || i == 0x014F {
			continue
		}
		gsum += uint16(rom[i])
	}
	binary.BigEndian.PutUint16(rom[0x014E:0x0150], gsum)

	return rom
}

func TestParseHeader_Basic(t *testing.T) {
	rom := buildROM("TEST", 0x01, 0x01, 0x02, 64*1024) // MBC1, 64KiB, 8KiB RAM

	h, err := ParseHeader(rom)
	if err != nil {
		t.Fatalf("ParseHeader error: %v", err)
	}
	if h.Title != "TEST" {
		t.Fatalf("Title got %q want %q", h.Title, "TEST")
	}
	if h.CartType != 0x01 || h.CartTypeStr != "MBC1 (variants)" {
		t.Fatalf("CartType got %#02x / %s", h.CartType, h.CartTypeStr)
	}
	if h.ROMSizeBytes != 64*1024 || h.ROMBanks != 4 {
		t.Fatalf("ROM size decode got %d bytes / %d banks", h.ROMSizeBytes, h.ROMBanks)
	}
	if h.RAMSizeBytes != 8*1024 {
		t.Fatalf("RAM size decode got %d", h.RAMSizeBytes)
	}
	if !h.LogoOK {
		t.Fatalf("LogoOK = false, want true")
	}
	if h.Entry != 0x0150 {
		t.Fatalf("Entry got %#04x want 0x0150", h.Entry)
	}
	if !HeaderChecksumOK(rom) {
		t.Fatalf("HeaderChecksumOK = false, want true")
	}
}

func TestParseHeader_EntryShapes(t *testing.T) {
	rom := buildROM("JP", 0x00, 0x00, 0x00, 32*1024)
	copy(rom[0x0100:0x0104], []byte{0xC3, 0x34, 0x12, 0x00}) // JP $1234 without the NOP
	h, err := ParseHeader(rom)
	if err != nil {
		t.Fatalf("ParseHeader error: %v", err)
	}
	if h.Entry != 0x1234 {
		t.Fatalf("Entry got %#04x want 0x1234", h.Entry)
	}

	copy(rom[0x0100:0x0104], []byte{0x18, 0x02, 0x00, 0x00}) // JR, not followed
	h, _ = ParseHeader(rom)
	if h.Entry != 0x0100 {
		t.Fatalf("Entry got %#04x want 0x0100", h.Entry)
	}
}

func TestParseHeader_BadLogo(t *testing.T) {
	rom := buildROM("HOMEBREW", 0x00, 0x00, 0x00, 32*1024)
	rom[0x0110] ^= 0xFF
	h, err := ParseHeader(rom)
	if err != nil {
		t.Fatalf("ParseHeader error: %v", err)
	}
	if h.LogoOK {
		t.Fatalf("LogoOK = true after corrupting the logo")
	}
}

func TestHeaderChecksum_Bad(t *testing.T) {
	rom := buildROM("TEST", 0x00, 0x00, 0x00, 32*1024)
	rom[0x0134] ^= 0xFF // corrupt a header byte
	if HeaderChecksumOK(rom) {
		t.Fatalf("HeaderChecksumOK = true, want false after corruption")
	}
}

func TestParseHeader_ShortROM(t *testing.T) {
	short := make([]byte, 0x140) // too small (header needs through 0x014F)
	if _, err := ParseHeader(short); !errors.Is(err, ErrROMTooSmall) {
		t.Fatalf("ParseHeader err got %v want ErrROMTooSmall", err)
	}
}
