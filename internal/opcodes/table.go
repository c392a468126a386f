package opcodes

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/FabianRolfMatthiasNoll/GameBoyDecoder/internal/cpu"
)

// ErrBadAddr is returned for an opcode key or addr field that is not one or two hex digits.
var ErrBadAddr = errors.New("malformed opcode address")

// Entry is one row of the reference table.
type Entry struct {
	Addr      byte
	Prefixed  bool
	Mnemonic  string
	Length    int
	MinCycles int
	MaxCycles int
	Flags     cpu.FlagMask
	Operand1  string
	Operand2  string
	Group     string // raw group string, e.g. "x8/alu"; empty when the table has none
}

// Syntax renders the entry like cpu.Instruction.Syntax: "LD A,d8".
func (e Entry) Syntax() string {
	ops := e.Operand1
	if e.Operand2 != "" {
		ops += "," + e.Operand2
	}
	if ops == "" {
		return e.Mnemonic
	}
	return e.Mnemonic + " " + ops
}

// Table holds the unprefixed and CB-prefixed sections of a reference table.
type Table struct {
	Unprefixed map[byte]Entry
	CB         map[byte]Entry
	Skipped    int // entries without mnemonic or length
}

// Lookup finds the entry for op in the requested section.
func (t *Table) Lookup(prefixed bool, op byte) (Entry, bool) {
	if prefixed {
		e, ok := t.CB[op]
		return e, ok
	}
	e, ok := t.Unprefixed[op]
	return e, ok
}

type rawEntry struct {
	Mnemonic *string  `json:"mnemonic"`
	Length   *int     `json:"length"`
	Cycles   []int    `json:"cycles"`
	Flags    []string `json:"flags"`
	Addr     string   `json:"addr"`
	Group    string   `json:"group"`
	Operand1 string   `json:"operand1"`
	Operand2 string   `json:"operand2"`
}

type rawTable struct {
	Unprefixed map[string]rawEntry `json:"unprefixed"`
	CBPrefixed map[string]rawEntry `json:"cbprefixed"`
}

// LoadFile reads a reference table from disk.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Load parses a reference table. Entries missing a mnemonic or length are skipped and
// counted; a malformed key or addr field fails the whole load.
func Load(r io.Reader) (*Table, error) {
	var raw rawTable
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode opcode table: %w", err)
	}
	t := &Table{Unprefixed: map[byte]Entry{}, CB: map[byte]Entry{}}
	if err := t.fill(t.Unprefixed, raw.Unprefixed, false); err != nil {
		return nil, err
	}
	if err := t.fill(t.CB, raw.CBPrefixed, true); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Table) fill(dst map[byte]Entry, src map[string]rawEntry, prefixed bool) error {
	for key, re := range src {
		addr, err := ParseAddr(key)
		if err != nil {
			return err
		}
		if re.Mnemonic == nil || re.Length == nil {
			t.Skipped++
			continue
		}
		if re.Addr != "" {
			if addr, err = ParseAddr(re.Addr); err != nil {
				return err
			}
		}
		e := Entry{
			Addr:     addr,
			Prefixed: prefixed,
			Mnemonic: *re.Mnemonic,
			Length:   *re.Length,
			Flags:    parseFlags(re.Flags),
			Operand1: re.Operand1,
			Operand2: re.Operand2,
			Group:    re.Group,
		}
		if len(re.Cycles) > 0 {
			c := append([]int(nil), re.Cycles...)
			sort.Sort(sort.Reverse(sort.IntSlice(c)))
			e.MaxCycles, e.MinCycles = c[0], c[len(c)-1]
		}
		dst[addr] = e
	}
	return nil
}

// ParseAddr parses "0x3E", "3e" or "F" into a byte. Anything other than an optional 0x/0X
// prefix followed by one or two hex digits is ErrBadAddr.
func ParseAddr(s string) (byte, error) {
	digits := s
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		digits = digits[2:]
	}
	if len(digits) == 0 || len(digits) > 2 {
		return 0, fmt.Errorf("%w: %q", ErrBadAddr, s)
	}
	var v byte
	for i := 0; i < len(digits); i++ {
		c := digits[i]
		switch {
		case c >= '0' && c <= '9':
			c -= '0'
		case c >= 'a' && c <= 'f':
			c = c - 'a' + 10
		case c >= 'A' && c <= 'F':
			c = c - 'A' + 10
		default:
			return 0, fmt.Errorf("%w: %q", ErrBadAddr, s)
		}
		v = v<<4 | c
	}
	return v, nil
}

// parseFlags reads the Z, N, H, C columns; anything but "-" (a name, "0" or "1") means the
// instruction writes that flag.
func parseFlags(cols []string) cpu.FlagMask {
	order := [4]cpu.FlagMask{cpu.FlagZ, cpu.FlagN, cpu.FlagH, cpu.FlagC}
	var m cpu.FlagMask
	for i, c := range cols {
		if i >= len(order) {
			break
		}
		if c != "" && c != "-" {
			m |= order[i]
		}
	}
	return m
}

var groupNames = map[string]cpu.Group{
	"x8/lsm":       cpu.X8_LSM,
	"x16/lsm":      cpu.X16_LSM,
	"x8/alu":       cpu.X8_ALU,
	"x16/alu":      cpu.X16_ALU,
	"x8/rsb":       cpu.X8_RSB,
	"control/br":   cpu.CTL_BR,
	"control/misc": cpu.CTL_MISC,
}

// GroupOf maps a table group string to a cpu.Group.
func GroupOf(s string) (cpu.Group, bool) {
	g, ok := groupNames[strings.ToLower(s)]
	return g, ok
}
