package bus

import "github.com/FabianRolfMatthiasNoll/GameBoyDecoder/internal/cart"

// Memory is the byte-addressed store the decoder fetches opcodes and immediates from.
// Addresses cover the full 64 KiB space; there is no bounds failure.
type Memory interface {
	Read(addr uint16) byte
	Write(addr uint16, value byte)
}

// Flat is a plain 64 KiB store with no mapping. Handy for tests and raw binaries.
type Flat [0x10000]byte

func (m *Flat) Read(addr uint16) byte         { return m[addr] }
func (m *Flat) Write(addr uint16, value byte) { m[addr] = value }

// Load copies data into the store starting at addr, wrapping at the top of the address space.
func (m *Flat) Load(addr uint16, data []byte) {
	for i, v := range data {
		m[addr+uint16(i)] = v
	}
}

// Bus maps a cartridge and the DMG work/high RAM into one address space.
// Reads never have side effects, so decoding through a Bus is repeatable.
type Bus struct {
	cart cart.Cartridge
	wram [0x2000]byte // 8KB internal RAM
	hram [0x7F]byte
	ie   byte
}

// New builds a bus around a ROM image.
func New(rom []byte) *Bus {
	return NewWithCartridge(cart.NewROM(rom))
}

func NewWithCartridge(c cart.Cartridge) *Bus {
	return &Bus{cart: c}
}

// Cartridge exposes the mapped cartridge for tools (bank selection, header).
func (b *Bus) Cartridge() cart.Cartridge { return b.cart }

func (b *Bus) Read(addr uint16) byte {
	switch {
	case addr < 0x8000: // ROM area
		return b.cart.Read(addr)
	case addr >= 0xA000 && addr <= 0xBFFF: // external RAM
		return b.cart.Read(addr)
	case addr >= 0xC000 && addr <= 0xDFFF: // Internal RAM
		return b.wram[addr-0xC000]
	case addr >= 0xE000 && addr <= 0xFDFF: // echo of C000-DDFF
		return b.wram[addr-0xE000]
	case addr >= 0xFF80 && addr <= 0xFFFE:
		return b.hram[addr-0xFF80]
	case addr == 0xFFFF:
		return b.ie
	default:
		return 0xFF // unmapped
	}
}

func (b *Bus) Write(addr uint16, value byte) {
	switch {
	case addr < 0x8000, addr >= 0xA000 && addr <= 0xBFFF:
		b.cart.Write(addr, value)
	case addr >= 0xC000 && addr <= 0xDFFF: // Internal RAM
		b.wram[addr-0xC000] = value
	case addr >= 0xE000 && addr <= 0xFDFF:
		b.wram[addr-0xE000] = value
	case addr >= 0xFF80 && addr <= 0xFFFE:
		b.hram[addr-0xFF80] = value
	case addr == 0xFFFF:
		b.ie = value
	}
}
