package msgcode

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Level is the severity attached to a message. It is encoded in definition
// codes as a one-character suffix ("USR001-E" is an error).
type Level int

const (
	LevelUnknown Level = iota
	LevelError
	LevelWarning
	LevelInformation
	LevelDebug
	LevelTrace
	LevelHide
)

type levelInfo struct {
	name   string
	value  string
	suffix rune
}

// Indexed by Level. LevelUnknown carries NUL, which LevelOf never matches.
var levelTable = [...]levelInfo{
	LevelUnknown:     {name: "Unknown", value: "?????", suffix: 0},
	LevelError:       {name: "Error", value: "ERROR", suffix: 'E'},
	LevelWarning:     {name: "Warning", value: "WARN ", suffix: 'W'},
	LevelInformation: {name: "Information", value: "INFO ", suffix: 'I'},
	LevelDebug:       {name: "Debug", value: "DEBUG", suffix: 'D'},
	LevelTrace:       {name: "Trace", value: "TRACE", suffix: 'T'},
	LevelHide:        {name: "Hide", value: "HIDE ", suffix: 'H'},
}

// Levels returns every level in declaration order.
func Levels() []Level {
	levels := make([]Level, len(levelTable))
	for i := range levelTable {
		levels[i] = Level(i)
	}
	return levels
}

func (l Level) info() levelInfo {
	if l < 0 || int(l) >= len(levelTable) {
		return levelTable[LevelUnknown]
	}
	return levelTable[l]
}

// Name returns the human-readable name ("Warning").
func (l Level) Name() string {
	return l.info().name
}

// Value returns the fixed-width display form ("WARN ").
func (l Level) Value() string {
	return l.info().value
}

// Suffix returns the character used in definition codes.
func (l Level) Suffix() rune {
	return l.info().suffix
}

func (l Level) String() string {
	return l.Name()
}

func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.Name()), nil
}

func (l *Level) UnmarshalText(data []byte) error {
	level, err := ParseLevel(string(data))
	if err != nil {
		return err
	}
	*l = level
	return nil
}

// ParseLevel resolves a level from its name, display value or suffix,
// ignoring case.
func ParseLevel(s string) (Level, error) {
	s = strings.TrimSpace(s)
	for i, info := range levelTable {
		if strings.EqualFold(s, info.name) || strings.EqualFold(s, strings.TrimSpace(info.value)) {
			return Level(i), nil
		}
		if info.suffix != 0 && utf8.RuneCountInString(s) == 1 && strings.EqualFold(s, string(info.suffix)) {
			return Level(i), nil
		}
	}
	return LevelUnknown, fmt.Errorf("unknown message level %q", s)
}

// LevelOf decodes the level of a definition code. It reports false when the
// trimmed code has fewer than three characters or when its second-to-last
// character is not '-'. A well-formed code whose suffix matches no level
// yields LevelUnknown.
func LevelOf(definitionCode string) (Level, bool) {
	s := strings.TrimSpace(definitionCode)
	if utf8.RuneCountInString(s) < 3 {
		return LevelUnknown, false
	}
	suffix, size := utf8.DecodeLastRuneInString(s)
	separator, _ := utf8.DecodeLastRuneInString(s[:len(s)-size])
	if separator != '-' {
		return LevelUnknown, false
	}
	for i, info := range levelTable {
		if Level(i) == LevelUnknown {
			continue
		}
		if info.suffix == suffix {
			return Level(i), true
		}
	}
	return LevelUnknown, true
}
