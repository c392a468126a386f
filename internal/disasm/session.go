package disasm

import (
	"bytes"
	"encoding/gob"
	"errors"
	"os"

	"github.com/FabianRolfMatthiasNoll/GameBoyDecoder/internal/bus"
	"github.com/FabianRolfMatthiasNoll/GameBoyDecoder/internal/cart"
	"github.com/FabianRolfMatthiasNoll/GameBoyDecoder/internal/cpu"
)

// ErrNoROM is returned by operations that need a loaded cartridge.
var ErrNoROM = errors.New("no ROM loaded")

// Session ties a loaded ROM to a decoder and remembers where the user is looking.
type Session struct {
	cfg     Config
	romPath string
	hdr     *cart.Header
	rom     *cart.ROM
	bus     *bus.Bus
	dec     *cpu.Decoder
	regs    cpu.Registers

	cursor    uint16
	bookmarks []Bookmark
}

func New(cfg Config) *Session {
	cfg.Defaults()
	return &Session{cfg: cfg}
}

// LoadROM replaces the current cartridge. The header must parse; a bad logo or checksum
// is recorded in the header but does not fail the load.
func (s *Session) LoadROM(data []byte) error {
	h, err := cart.ParseHeader(data)
	if err != nil {
		return err
	}
	rom := cart.NewROM(data)
	if err := rom.SelectBank(s.cfg.Bank); err != nil {
		return err
	}
	s.hdr = h
	s.rom = rom
	s.bus = bus.NewWithCartridge(rom)
	s.dec = cpu.NewDecoder(s.bus)
	s.regs = cpu.Registers{}
	s.regs.ResetNoBoot()
	s.cursor = s.regs.PC
	s.bookmarks = nil
	s.romPath = ""
	return nil
}

// LoadROMFromFile replaces the current cartridge with a ROM from disk.
func (s *Session) LoadROMFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := s.LoadROM(data); err != nil {
		return err
	}
	s.romPath = path
	return nil
}

// ROMPath returns the currently loaded ROM file path, if any.
func (s *Session) ROMPath() string { return s.romPath }

func (s *Session) Loaded() bool          { return s.dec != nil }
func (s *Session) Header() *cart.Header  { return s.hdr }
func (s *Session) Bus() *bus.Bus         { return s.bus }
func (s *Session) Decoder() *cpu.Decoder { return s.dec }
func (s *Session) Config() Config        { return s.cfg }

// Registers is the DMG post-boot register state the ROM starts with.
func (s *Session) Registers() cpu.Registers { return s.regs }

// ROMTitle returns the header title, or "" with no ROM.
func (s *Session) ROMTitle() string {
	if s.hdr == nil {
		return ""
	}
	return s.hdr.Title
}

// Banks returns the number of 16 KiB banks in the image.
func (s *Session) Banks() int {
	if s.rom == nil {
		return 0
	}
	return s.rom.Banks()
}

func (s *Session) Bank() int { return s.cfg.Bank }

// SelectBank maps bank n at 0x4000-0x7FFF.
func (s *Session) SelectBank(n int) error {
	if s.rom == nil {
		return ErrNoROM
	}
	if err := s.rom.SelectBank(n); err != nil {
		return err
	}
	s.cfg.Bank = n
	return nil
}

// Listing sweeps the configured address range.
func (s *Session) Listing() ([]Line, error) {
	if s.dec == nil {
		return nil, ErrNoROM
	}
	return Sweep(s.dec, s.cfg.Start, s.cfg.End), nil
}

// Window decodes n lines starting at addr, stopping at the top of memory.
func (s *Session) Window(addr uint16, n int) []Line {
	if s.dec == nil || n <= 0 {
		return nil
	}
	lines := make([]Line, 0, n)
	a := int(addr)
	for len(lines) < n && a <= 0xFFFF {
		l := Sweep(s.dec, uint16(a), uint16(a))[0]
		lines = append(lines, l)
		a += len(l.Bytes)
	}
	return lines
}

func (s *Session) Cursor() uint16     { return s.cursor }
func (s *Session) SetCursor(a uint16) { s.cursor = a }

// Bookmarks returns the fixed jump targets followed by the user's own bookmarks.
func (s *Session) Bookmarks() []Bookmark {
	return append(JumpTargets(s.hdr), s.bookmarks...)
}

// AddBookmark remembers addr; adding the same address twice is a no-op.
func (s *Session) AddBookmark(name string, addr uint16) {
	for _, b := range s.bookmarks {
		if b.Addr == addr {
			return
		}
	}
	s.bookmarks = append(s.bookmarks, Bookmark{Name: name, Addr: addr})
}

// --- Save/Load view state ---
type viewState struct {
	Bank      int
	Cursor    uint16
	Bookmarks []Bookmark
}

func (s *Session) SaveState() []byte {
	if s.rom == nil {
		return nil
	}
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	_ = enc.Encode(viewState{Bank: s.cfg.Bank, Cursor: s.cursor, Bookmarks: s.bookmarks})
	return buf.Bytes()
}

func (s *Session) LoadState(data []byte) error {
	if s.rom == nil {
		return ErrNoROM
	}
	var v viewState
	dec := gob.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&v); err != nil {
		return err
	}
	if err := s.SelectBank(v.Bank); err != nil {
		return err
	}
	s.cursor = v.Cursor
	s.bookmarks = v.Bookmarks
	return nil
}

func (s *Session) SaveStateToFile(path string) error {
	data := s.SaveState()
	if len(data) == 0 {
		return nil
	}
	return os.WriteFile(path, data, 0644)
}

func (s *Session) LoadStateFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return s.LoadState(data)
}
