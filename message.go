package msgcode

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var placeholderRegex = regexp.MustCompile(`\{(0|[1-9][0-9]*)\}`)

// Message is an immutable catalog entry: a bare code, its level and the
// template text with {0}, {1}... placeholders.
type Message struct {
	code       string
	definition string
	level      Level
	template   string
}

// ParseMessage builds a message from a definition code such as "USR001-E".
func ParseMessage(definitionCode string, template string) (*Message, error) {
	level, ok := LevelOf(definitionCode)
	if !ok {
		return nil, &IllegalCodeError{Code: definitionCode}
	}
	definition := strings.TrimSpace(definitionCode)
	return &Message{
		code:       stripSuffix(definition),
		definition: definition,
		level:      level,
		template:   template,
	}, nil
}

// IsValidDefinitionCode reports whether s has the "<code>-<char>" shape.
// Unregistered suffixes are valid and decode to LevelUnknown.
func IsValidDefinitionCode(s string) bool {
	_, ok := LevelOf(s)
	return ok
}

// BareCodeOf strips the level suffix from a definition code.
func BareCodeOf(definitionCode string) (string, error) {
	if !IsValidDefinitionCode(definitionCode) {
		return "", &IllegalCodeError{Code: definitionCode}
	}
	return stripSuffix(strings.TrimSpace(definitionCode)), nil
}

// DefinitionCodeOf appends the suffix of level to a bare code.
func DefinitionCodeOf(code string, level Level) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", fmt.Errorf("empty message code")
	}
	if level.Suffix() == 0 {
		return "", fmt.Errorf("level %s has no definition suffix", level)
	}
	return code + "-" + string(level.Suffix()), nil
}

func stripSuffix(definition string) string {
	return definition[:strings.LastIndexByte(definition, '-')]
}

func (m *Message) Code() string {
	return m.code
}

// DefinitionCode returns the trimmed code the message was parsed from.
func (m *Message) DefinitionCode() string {
	return m.definition
}

func (m *Message) Level() Level {
	return m.level
}

// Template returns the raw, unexpanded text.
func (m *Message) Template() string {
	return m.template
}

// Expand substitutes binds[i] for every {i} in the template. Nil values
// expand to the empty string and placeholders without a bind are kept as
// is. Substituted text is not scanned again.
func (m *Message) Expand(binds ...interface{}) string {
	if len(binds) == 0 || m.template == "" {
		return m.template
	}
	return placeholderRegex.ReplaceAllStringFunc(m.template, func(token string) string {
		idx, err := strconv.Atoi(token[1 : len(token)-1])
		if err != nil || idx >= len(binds) {
			return token
		}
		if binds[idx] == nil {
			return ""
		}
		return fmt.Sprint(binds[idx])
	})
}

func (m *Message) String() string {
	return m.level.Value() + " - " + m.code + " | " + m.template
}
