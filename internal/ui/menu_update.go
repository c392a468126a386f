package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var mainMenuItems = []string{
	"Jump to...",
	"Switch ROM",
	"Save view",
	"Load view",
	"Keybindings",
	"Close",
}

func (a *App) updateMainMenu() {
	max := len(mainMenuItems) - 1
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && a.menuIdx > 0 {
		a.menuIdx--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && a.menuIdx < max {
		a.menuIdx++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		switch a.menuIdx {
		case 0:
			if !a.s.Loaded() {
				a.toast("No ROM loaded")
				break
			}
			a.menuMode = "jump"
			a.menuIdx = 0
			a.jumpOff = 0
		case 1:
			a.romList = a.findROMs()
			a.romSel = 0
			a.romOff = 0
			a.menuMode = "rom"
		case 2:
			a.saveView()
		case 3:
			a.loadView()
		case 4:
			a.menuMode = "keys"
			a.keysOff = 0
		case 5:
			a.showMenu = false
		}
	}
	// Back with Backspace
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		a.showMenu = false
	}
}

// scrollWindow keeps sel visible in a list of n rows starting at baseY.
func (a *App) scrollWindow(sel, off, baseY int) int {
	maxRows := (a.curH - baseY) / rowH
	if maxRows < 1 {
		maxRows = 1
	}
	if sel < off {
		off = sel
	}
	if sel >= off+maxRows {
		off = sel - maxRows + 1
	}
	if off < 0 {
		off = 0
	}
	return off
}

func (a *App) updateJumpMenu() {
	targets := a.s.Bookmarks()
	n := len(targets)
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && a.menuIdx > 0 {
		a.menuIdx--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && a.menuIdx < n-1 {
		a.menuIdx++
	}
	a.jumpOff = a.scrollWindow(a.menuIdx, a.jumpOff, 28)
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) && n > 0 {
		t := targets[a.menuIdx]
		a.s.SetCursor(t.Addr)
		a.toast("Jumped to " + t.Name)
		a.showMenu = false
		a.menuMode = "main"
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		a.menuMode = "main"
		a.menuIdx = 0
	}
}

func (a *App) updateRomMenu() {
	n := len(a.romList)
	if n == 0 {
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
			a.menuMode = "main"
		}
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && a.romSel > 0 {
		a.romSel--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && a.romSel < n-1 {
		a.romSel++
	}
	a.romOff = a.scrollWindow(a.romSel, a.romOff, 40)
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		a.loadROM(a.romList[a.romSel])
		a.menuMode = "main"
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		a.menuMode = "main"
	}
}

func (a *App) updateKeysMenu() {
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && a.keysOff > 0 {
		a.keysOff--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		a.keysOff++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		a.menuMode = "main"
	}
}
