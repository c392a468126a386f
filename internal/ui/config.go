package ui

// Config contains window/input related settings.
type Config struct {
	Title      string // window title
	Width      int    // window width in pixels
	Height     int    // window height in pixels
	ROMsDir    string // directory to browse for ROMs
	ShowBytes  bool   // show raw instruction bytes
	ShowTiming bool   // show cycles and flags
	Tint       bool   // tint rows by instruction group
}

// Defaults fills missing fields with reasonable defaults.
func (c *Config) Defaults() {
	if c.Title == "" {
		c.Title = "gbview"
	}
	if c.Width <= 0 {
		c.Width = 640
	}
	if c.Height <= 0 {
		c.Height = 480
	}
	if c.ROMsDir == "" {
		c.ROMsDir = "roms"
	}
}
