package ui

import (
	"fmt"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/FabianRolfMatthiasNoll/GameBoyDecoder/internal/cpu"
	"github.com/FabianRolfMatthiasNoll/GameBoyDecoder/internal/disasm"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	rowH     = 14
	charW    = 6
	listTopY = 24
)

type App struct {
	cfg Config
	s   *disasm.Session

	curW, curH int
	rowImg     *ebiten.Image // 1x1 white, scaled and tinted per row
	shot       bool          // take a screenshot at the end of the next Draw

	// overlay/menu
	showMenu bool
	menuMode string // "main", "jump", "rom", "keys"
	menuIdx  int
	jumpOff  int
	romList  []string
	romSel   int
	romOff   int
	keysOff  int

	toastMsg   string
	toastUntil time.Time
}

func NewApp(cfg Config, s *disasm.Session) *App {
	cfg.Defaults()
	ebiten.SetWindowTitle(windowTitle(cfg.Title, s))
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return &App{cfg: cfg, s: s, curW: cfg.Width, curH: cfg.Height, menuMode: "main"}
}

func (a *App) Run() error { return ebiten.RunGame(a) }

func windowTitle(base string, s *disasm.Session) string {
	if t := s.ROMTitle(); t != "" {
		return base + " - [" + t + "]"
	}
	return base
}

// rows is how many listing lines fit below the status bar.
func (a *App) rows() int {
	n := (a.curH - listTopY) / rowH
	if n < 1 {
		n = 1
	}
	return n
}

func (a *App) Update() error {
	// Toggle menu (Escape)
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && (!a.showMenu || a.menuMode == "main") {
		a.showMenu = !a.showMenu
		a.menuMode = "main"
		a.menuIdx = 0
		return nil
	}
	if a.showMenu {
		switch a.menuMode {
		case "jump":
			a.updateJumpMenu()
		case "rom":
			a.updateRomMenu()
		case "keys":
			a.updateKeysMenu()
		default:
			a.updateMainMenu()
		}
		return nil
	}
	if !a.s.Loaded() {
		return nil
	}

	dec := a.s.Decoder()
	cur := a.s.Cursor()
	switch {
	case repeating(ebiten.KeyArrowDown):
		cur += uint16(dec.Decode(cur).Length)
	case repeating(ebiten.KeyArrowUp):
		cur = disasm.PrevLocation(dec, cur)
	case repeating(ebiten.KeyPageDown):
		lines := a.s.Window(cur, a.rows())
		last := lines[len(lines)-1]
		cur = last.Inst.Location + uint16(len(last.Bytes))
	case repeating(ebiten.KeyPageUp):
		for i := 0; i < a.rows(); i++ {
			cur = disasm.PrevLocation(dec, cur)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		cur = a.s.Registers().PC
	}
	a.s.SetCursor(cur)

	// Bank switching (Left/Right)
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		a.switchBank(a.s.Bank() + 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		a.switchBank(a.s.Bank() - 1)
	}

	// Follow the branch under the cursor (Enter)
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		l := a.s.Window(cur, 1)[0]
		if l.HasTarget {
			a.s.SetCursor(l.Target)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		a.s.AddBookmark(fmt.Sprintf("Mark $%04X", cur), cur)
		a.toast(fmt.Sprintf("Bookmarked $%04X", cur))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		a.cfg.ShowBytes = !a.cfg.ShowBytes
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		a.cfg.ShowTiming = !a.cfg.ShowTiming
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		a.saveView()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		a.loadView()
	}
	// Screenshot (F12)
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		a.shot = true
	}
	return nil
}

// repeating is true on the first frame a key is down and then every few frames while held.
func repeating(k ebiten.Key) bool {
	d := inpututil.KeyPressDuration(k)
	return d == 1 || (d > 20 && d%3 == 0)
}

func (a *App) switchBank(n int) {
	if err := a.s.SelectBank(n); err != nil {
		a.toast("Bank: " + err.Error())
		return
	}
	a.toast(fmt.Sprintf("Bank %d of %d", n, a.s.Banks()))
}

func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x10, 0x14, 0x18, 0xFF})
	if a.rowImg == nil {
		a.rowImg = ebiten.NewImage(1, 1)
		a.rowImg.Fill(color.White)
	}

	if !a.s.Loaded() {
		ebitenutil.DebugPrintAt(screen, "No ROM loaded. Esc: menu", 10, 10)
	} else {
		a.drawStatus(screen)
		a.drawListing(screen)
	}

	if a.showMenu {
		overlay := ebiten.NewImage(a.curW, a.curH)
		overlay.Fill(color.RGBA{0, 0, 0, 200})
		screen.DrawImage(overlay, nil)
		switch a.menuMode {
		case "jump":
			a.drawJumpMenu(screen)
		case "rom":
			a.drawRomMenu(screen)
		case "keys":
			a.drawKeysMenu(screen)
		default:
			a.drawMainMenu(screen)
		}
	}

	if a.toastMsg != "" && time.Now().Before(a.toastUntil) {
		ebitenutil.DebugPrintAt(screen, a.truncateText(a.toastMsg, a.maxCharsForText(10)), 10, a.curH-rowH-4)
	}

	if a.shot {
		a.shot = false
		if err := saveScreenshot(screen); err != nil {
			a.toast("Screenshot failed: " + err.Error())
		}
	}
}

func (a *App) drawStatus(screen *ebiten.Image) {
	regs := a.s.Registers()
	status := fmt.Sprintf("%s  bank %d/%d  @%04X  PC=%04X SP=%04X AF=%04X",
		a.s.ROMTitle(), a.s.Bank(), a.s.Banks(), a.s.Cursor(), regs.PC, regs.SP, regs.AF())
	ebitenutil.DebugPrintAt(screen, a.truncateText(status, a.maxCharsForText(4)), 4, 4)
}

func (a *App) drawListing(screen *ebiten.Image) {
	lcfg := disasm.Config{ShowBytes: a.cfg.ShowBytes, ShowTiming: a.cfg.ShowTiming}
	maxChars := a.maxCharsForText(14)
	for i, l := range a.s.Window(a.s.Cursor(), a.rows()) {
		y := listTopY + i*rowH
		if a.cfg.Tint {
			a.fillRow(screen, y, groupColor(l.Inst.Group))
		}
		if i == 0 {
			a.fillRow(screen, y, color.RGBA{0x60, 0x60, 0x60, 0x80})
			ebitenutil.DebugPrintAt(screen, ">", 4, y)
		}
		ebitenutil.DebugPrintAt(screen, a.truncateText(l.Format(lcfg), maxChars), 14, y)
	}
}

func (a *App) fillRow(screen *ebiten.Image, y int, c color.Color) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(a.curW), rowH)
	op.GeoM.Translate(0, float64(y))
	op.ColorScale.ScaleWithColor(c)
	screen.DrawImage(a.rowImg, op)
}

var groupColors = map[cpu.Group]color.RGBA{
	cpu.X8_LSM:   {0x20, 0x40, 0x70, 0x60},
	cpu.X16_LSM:  {0x20, 0x50, 0x80, 0x60},
	cpu.X8_ALU:   {0x30, 0x60, 0x30, 0x60},
	cpu.X16_ALU:  {0x40, 0x70, 0x30, 0x60},
	cpu.X8_RSB:   {0x60, 0x50, 0x20, 0x60},
	cpu.CTL_BR:   {0x70, 0x20, 0x20, 0x60},
	cpu.CTL_MISC: {0x50, 0x30, 0x60, 0x60},
	cpu.UNKNOWN:  {0x90, 0x00, 0x00, 0x90},
}

func groupColor(g cpu.Group) color.RGBA { return groupColors[g] }

func (a *App) Layout(outW, outH int) (int, int) {
	a.curW, a.curH = outW, outH
	return outW, outH
}

func (a *App) toast(msg string) {
	a.toastMsg = msg
	a.toastUntil = time.Now().Add(2 * time.Second)
}

func (a *App) statePath() string {
	return a.s.ROMPath() + ".view"
}

func (a *App) saveView() {
	if a.s.ROMPath() == "" {
		a.toast("Nothing to save")
		return
	}
	if err := a.s.SaveStateToFile(a.statePath()); err != nil {
		a.toast("Save failed: " + err.Error())
		return
	}
	a.toast("Saved view")
}

func (a *App) loadView() {
	if _, err := os.Stat(a.statePath()); err != nil {
		a.toast("No saved view")
		return
	}
	if err := a.s.LoadStateFromFile(a.statePath()); err != nil {
		a.toast("Load failed: " + err.Error())
		return
	}
	a.toast("Loaded view")
}

func (a *App) loadROM(path string) {
	if err := a.s.LoadROMFromFile(path); err != nil {
		a.toast("ROM load failed: " + err.Error())
		return
	}
	a.toast("Loaded ROM: " + filepath.Base(path))
	ebiten.SetWindowTitle(windowTitle(a.cfg.Title, a.s))
}

func (a *App) findROMs() []string {
	var out []string
	for _, pat := range []string{"*.gb", "*.gbc"} {
		m, _ := filepath.Glob(filepath.Join(a.cfg.ROMsDir, pat))
		out = append(out, m...)
	}
	return out
}

func saveScreenshot(screen *ebiten.Image) error {
	ts := time.Now().Format("20060102_150405")
	name := fmt.Sprintf("screenshot_%s.png", ts)
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, screen)
}

func (a *App) maxCharsForText(x int) int {
	n := (a.curW - x) / charW
	if n < 1 {
		n = 1
	}
	return n
}

func (a *App) truncateText(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

func (a *App) wrapText(s string, max int) []string {
	var lines []string
	cur := ""
	for _, w := range strings.Fields(s) {
		if cur != "" && len(cur)+1+len(w) > max {
			lines = append(lines, cur)
			cur = ""
		}
		if cur != "" {
			cur += " "
		}
		cur += w
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}
