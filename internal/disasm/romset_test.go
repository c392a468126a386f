package disasm

import (
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"
)

// findROMs recursively collects .gb/.gbc files under dir.
func findROMs(dir string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		low := strings.ToLower(d.Name())
		if strings.HasSuffix(low, ".gb") || strings.HasSuffix(low, ".gbc") {
			out = append(out, path)
		}
		return nil
	})
	return out, err
}

// moduleRoot walks up from this file to the directory containing go.mod.
func moduleRoot() string {
	if _, file, _, ok := runtime.Caller(0); ok {
		dir := filepath.Dir(file)
		for {
			if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
				return dir
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// sweepROM disassembles every bank of a real ROM twice and checks the listing is contiguous
// and repeatable.
func sweepROM(t *testing.T, romPath string) {
	t.Helper()
	s := New(Config{})
	if err := s.LoadROMFromFile(romPath); err != nil {
		t.Fatalf("load ROM: %v", err)
	}
	for bank := 1; bank < s.Banks(); bank++ {
		if err := s.SelectBank(bank); err != nil {
			t.Fatalf("select bank %d: %v", bank, err)
		}
		first := Sweep(s.Decoder(), 0x0000, 0x7FFF)
		second := Sweep(s.Decoder(), 0x0000, 0x7FFF)
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("bank %d: listing differs between sweeps", bank)
		}
		next := 0
		for _, l := range first {
			if int(l.Inst.Location) != next {
				t.Fatalf("bank %d: line at %04x, expected %04x", bank, l.Inst.Location, next)
			}
			next += len(l.Bytes)
		}
	}
}

// TestROMSet scans testroms (or ROMS_DIR) and sweeps every ROM found.
func TestROMSet(t *testing.T) {
	// Opt-in via env to avoid long test runs by default.
	if os.Getenv("RUN_ROMSET") == "" {
		t.Skip("set RUN_ROMSET=1 and place ROMs under testroms or set ROMS_DIR to run")
	}
	base := os.Getenv("ROMS_DIR")
	if base == "" {
		base = filepath.Join(moduleRoot(), "testroms")
	}
	if _, err := os.Stat(base); err != nil {
		t.Skipf("ROM dir missing: %s", base)
	}
	roms, err := findROMs(base)
	if err != nil {
		t.Fatalf("scan ROMs: %v", err)
	}
	if len(roms) == 0 {
		t.Skipf("no ROMs found in %s", base)
	}
	for _, rom := range roms {
		name := strings.TrimSuffix(filepath.Base(rom), filepath.Ext(rom))
		t.Run(name, func(t *testing.T) { sweepROM(t, rom) })
	}
}
