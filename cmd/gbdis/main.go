package main

import (
	"bufio"
	"flag"
	"fmt"
	"hash/crc32"
	"io"
	"log"
	"os"
	"strings"

	"github.com/FabianRolfMatthiasNoll/GameBoyDecoder/internal/bus"
	"github.com/FabianRolfMatthiasNoll/GameBoyDecoder/internal/cpu"
	"github.com/FabianRolfMatthiasNoll/GameBoyDecoder/internal/disasm"
	"github.com/FabianRolfMatthiasNoll/GameBoyDecoder/internal/opcodes"
)

type CLIFlags struct {
	ROMPath string
	Start   int
	End     int
	Bank    int
	Bytes   bool
	Timing  bool

	Validate string // reference opcode table (JSON)
	Out      string // write the listing here instead of stdout
	Expect   string // expected listing CRC32 hex (e.g., "1a2b3c4d")
}

func parseFlags() CLIFlags {
	var f CLIFlags
	flag.StringVar(&f.ROMPath, "rom", "", "path to ROM (.gb)")
	flag.IntVar(&f.Start, "start", 0x0100, "first address to disassemble")
	flag.IntVar(&f.End, "end", 0x7FFF, "last address to disassemble (inclusive)")
	flag.IntVar(&f.Bank, "bank", 1, "ROM bank mapped at 0x4000-0x7FFF")
	flag.BoolVar(&f.Bytes, "bytes", true, "show instruction bytes")
	flag.BoolVar(&f.Timing, "timing", true, "show cycles and affected flags")
	flag.StringVar(&f.Validate, "validate", "", "compare the decoder against an opcodes.json reference table and exit")
	flag.StringVar(&f.Out, "out", "", "write listing to file")
	flag.StringVar(&f.Expect, "expect", "", "assert listing CRC32 (hex)")
	flag.Parse()
	return f
}

func validate(path string) bool {
	tab, err := opcodes.LoadFile(path)
	if err != nil {
		log.Fatalf("load table: %v", err)
	}
	if tab.Skipped > 0 {
		log.Printf("skipped %d incomplete table entries", tab.Skipped)
	}
	rep := opcodes.Validate(tab, cpu.NewDecoder(new(bus.Flat)))
	if err := rep.Write(os.Stdout); err != nil {
		log.Fatal(err)
	}
	return rep.OK()
}

func checkRange(name string, v int) uint16 {
	if v < 0 || v > 0xFFFF {
		log.Fatalf("-%s %#x out of range", name, v)
	}
	return uint16(v)
}

func main() {
	f := parseFlags()

	if f.Validate != "" {
		if !validate(f.Validate) {
			os.Exit(1)
		}
		if f.ROMPath == "" {
			return
		}
	}

	if f.ROMPath == "" {
		log.Fatal("-rom is required")
	}
	cfg := disasm.Config{
		Start:      checkRange("start", f.Start),
		End:        checkRange("end", f.End),
		Bank:       f.Bank,
		ShowBytes:  f.Bytes,
		ShowTiming: f.Timing,
	}
	if cfg.End < cfg.Start {
		log.Fatalf("-end %04X is before -start %04X", cfg.End, cfg.Start)
	}
	s := disasm.New(cfg)
	if err := s.LoadROMFromFile(f.ROMPath); err != nil {
		log.Fatalf("load rom: %v", err)
	}
	h := s.Header()
	log.Printf("ROM: %q type=%s banks=%d entry=%04X logo=%v", h.Title, h.CartTypeStr, s.Banks(), h.Entry, h.LogoOK)

	lines, err := s.Listing()
	if err != nil {
		log.Fatal(err)
	}

	var w io.Writer = os.Stdout
	if f.Out != "" {
		out, err := os.Create(f.Out)
		if err != nil {
			log.Fatalf("create %s: %v", f.Out, err)
		}
		defer out.Close()
		w = out
	}
	crc := crc32.NewIEEE()
	bw := bufio.NewWriter(io.MultiWriter(w, crc))
	if err := disasm.Write(bw, lines, s.Config()); err != nil {
		log.Fatalf("write listing: %v", err)
	}
	if err := bw.Flush(); err != nil {
		log.Fatalf("write listing: %v", err)
	}
	log.Printf("disassembled %d instructions, listing_crc32=%08x", len(lines), crc.Sum32())

	if f.Expect != "" {
		// normalize expected hex (allow with/without 0x, upper/lowercase)
		want := strings.TrimPrefix(strings.ToLower(f.Expect), "0x")
		if got := fmt.Sprintf("%08x", crc.Sum32()); got != want {
			log.Fatalf("checksum mismatch: got %s, want %s", got, want)
		}
	}
}
