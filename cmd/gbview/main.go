package main

import (
	"flag"
	"log"
	"path/filepath"

	"github.com/FabianRolfMatthiasNoll/GameBoyDecoder/internal/disasm"
	"github.com/FabianRolfMatthiasNoll/GameBoyDecoder/internal/ui"
)

type CLIFlags struct {
	ROMPath string
	ROMsDir string
	Title   string
	Width   int
	Height  int
	Bank    int
	Tint    bool
}

func parseFlags() CLIFlags {
	var f CLIFlags
	flag.StringVar(&f.ROMPath, "rom", "", "path to ROM (.gb)")
	flag.StringVar(&f.ROMsDir, "roms", "roms", "directory offered by the Switch ROM menu")
	flag.StringVar(&f.Title, "title", "gbview", "window title")
	flag.IntVar(&f.Width, "width", 640, "window width")
	flag.IntVar(&f.Height, "height", 480, "window height")
	flag.IntVar(&f.Bank, "bank", 1, "initial ROM bank at 0x4000-0x7FFF")
	flag.BoolVar(&f.Tint, "tint", true, "tint lines by instruction group")
	flag.Parse()
	return f
}

func main() {
	f := parseFlags()

	s := disasm.New(disasm.Config{Bank: f.Bank})
	if f.ROMPath != "" {
		// prefer absolute path for view state placement consistency
		path := f.ROMPath
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		if err := s.LoadROMFromFile(path); err != nil {
			log.Fatalf("load rom: %v", err)
		}
		h := s.Header()
		log.Printf("ROM: %q type=%s banks=%d entry=%04X", h.Title, h.CartTypeStr, s.Banks(), h.Entry)
	}

	app := ui.NewApp(ui.Config{
		Title:      f.Title,
		Width:      f.Width,
		Height:     f.Height,
		ROMsDir:    f.ROMsDir,
		ShowBytes:  true,
		ShowTiming: true,
		Tint:       f.Tint,
	}, s)
	if err := app.Run(); err != nil {
		log.Fatal(err)
	}
}
