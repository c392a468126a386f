package ui

import (
	"fmt"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

func (a *App) drawMainMenu(screen *ebiten.Image) {
	lines := append([]string{"Menu:"}, mainMenuItems...)
	for i, s := range lines {
		prefix := "  "
		if i == a.menuIdx+1 {
			prefix = "> "
		}
		ebitenutil.DebugPrintAt(screen, prefix+s, 10, 10+i*rowH)
	}
	// quick hints, keep on-screen
	hint := "F5: Save view  F9: Load view  M: Bookmark  Backspace: Back"
	ebitenutil.DebugPrintAt(screen, a.truncateText(hint, a.maxCharsForText(10)), 10, 10+len(lines)*rowH)
}

func (a *App) drawJumpMenu(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, "Jump to (Enter to jump, Backspace/Esc to return)", 10, 10)
	targets := a.s.Bookmarks()
	baseY := 28
	maxRows := (a.curH - baseY) / rowH
	if maxRows < 1 {
		maxRows = 1
	}
	end := a.jumpOff + maxRows
	if end > len(targets) {
		end = len(targets)
	}
	for i := a.jumpOff; i < end; i++ {
		prefix := "  "
		if i == a.menuIdx {
			prefix = "> "
		}
		line := fmt.Sprintf("%s$%04X  %s", prefix, targets[i].Addr, targets[i].Name)
		ebitenutil.DebugPrintAt(screen, a.truncateText(line, a.maxCharsForText(10)), 10, baseY+(i-a.jumpOff)*rowH)
	}
	a.drawScrollMarks(screen, baseY, maxRows, a.jumpOff > 0, end < len(targets))
}

func (a *App) drawRomMenu(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, "Select ROM (Enter to load, Backspace/Esc to return)", 10, 10)
	d := a.truncateText("Dir: "+a.cfg.ROMsDir, a.maxCharsForText(10))
	ebitenutil.DebugPrintAt(screen, d, 10, 24)
	if len(a.romList) == 0 {
		ebitenutil.DebugPrintAt(screen, "No ROMs found", 10, 40)
		return
	}
	baseY := 40
	maxRows := (a.curH - baseY) / rowH
	if maxRows < 1 {
		maxRows = 1
	}
	end := a.romOff + maxRows
	if end > len(a.romList) {
		end = len(a.romList)
	}
	maxChars := a.maxCharsForText(10) - 2 // account for "> " prefix
	if maxChars < 1 {
		maxChars = 1
	}
	for i, p := range a.romList[a.romOff:end] {
		prefix := "  "
		if a.romOff+i == a.romSel {
			prefix = "> "
		}
		ebitenutil.DebugPrintAt(screen, prefix+a.truncateText(filepath.Base(p), maxChars), 10, baseY+i*rowH)
	}
	a.drawScrollMarks(screen, baseY, maxRows, a.romOff > 0, end < len(a.romList))
}

func (a *App) drawKeysMenu(screen *ebiten.Image) {
	title := "Keybindings (Up/Down to scroll, Backspace/Esc to return)"
	cursorY := 10
	for _, w := range a.wrapText(title, a.maxCharsForText(10)) {
		ebitenutil.DebugPrintAt(screen, w, 10, cursorY)
		cursorY += rowH
	}
	rows := []string{
		"Up/Down: Previous/next instruction",
		"PageUp/PageDown: Scroll a page",
		"Home: Back to PC",
		"Enter: Follow branch target",
		"Left/Right: Switch ROM bank",
		"M: Bookmark current line",
		"B: Toggle bytes",
		"T: Toggle timing",
		"F5/F9: Save/Load view",
		"F12: Screenshot",
		"Esc: Open/Close Menu",
	}
	baseY := cursorY + 4
	maxRows := (a.curH - baseY) / rowH
	if maxRows < 1 {
		maxRows = 1
	}
	if a.keysOff > len(rows)-1 {
		a.keysOff = len(rows) - 1
	}
	end := a.keysOff + maxRows
	if end > len(rows) {
		end = len(rows)
	}
	maxChars := a.maxCharsForText(10)
	for i := a.keysOff; i < end; i++ {
		ebitenutil.DebugPrintAt(screen, a.truncateText(rows[i], maxChars), 10, baseY+(i-a.keysOff)*rowH)
	}
	a.drawScrollMarks(screen, baseY, maxRows, a.keysOff > 0, end < len(rows))
}

func (a *App) drawScrollMarks(screen *ebiten.Image, baseY, maxRows int, up, down bool) {
	if up {
		ebitenutil.DebugPrintAt(screen, "^", 2, baseY)
	}
	if down {
		ebitenutil.DebugPrintAt(screen, "v", 2, baseY+(maxRows-1)*rowH)
	}
}
