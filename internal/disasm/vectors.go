package disasm

import (
	"fmt"

	"github.com/FabianRolfMatthiasNoll/GameBoyDecoder/internal/cart"
)

// Bookmark is a named address in the listing.
type Bookmark struct {
	Name string
	Addr uint16
}

var interruptVectors = []Bookmark{
	{"VBlank", 0x0040},
	{"LCD STAT", 0x0048},
	{"Timer", 0x0050},
	{"Serial", 0x0058},
	{"Joypad", 0x0060},
}

// JumpTargets lists the fixed places worth looking at in any ROM: the entry point, the
// header, the RST vectors and the interrupt vectors. h may be nil.
func JumpTargets(h *cart.Header) []Bookmark {
	out := []Bookmark{{"Entry 0100", 0x0100}}
	if h != nil && h.Entry != 0x0100 {
		out = append(out, Bookmark{fmt.Sprintf("Main $%04X", h.Entry), h.Entry})
	}
	out = append(out, Bookmark{"Header", 0x0104})
	for v := 0; v < 8; v++ {
		out = append(out, Bookmark{fmt.Sprintf("RST %02XH", v*8), uint16(v * 8)})
	}
	return append(out, interruptVectors...)
}
