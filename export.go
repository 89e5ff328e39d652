package msgcode

import "strings"

// ExportRecord is the serializable view of a message, with the template
// escaped for embedding in a double-quoted string literal.
type ExportRecord struct {
	Code     string `json:"code" msgpack:"code"`
	Level    string `json:"level" msgpack:"level"`
	Template string `json:"template" msgpack:"template"`
}

var templateEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

// EscapeTemplate escapes backslashes, double quotes and newlines.
func EscapeTemplate(template string) string {
	return templateEscaper.Replace(template)
}

// Export lists the messages held locally by c, sorted by code.
func Export(c Catalog) []ExportRecord {
	messages := c.Messages()
	records := make([]ExportRecord, len(messages))
	for i, message := range messages {
		records[i] = ExportRecord{
			Code:     message.Code(),
			Level:    message.Level().Name(),
			Template: EscapeTemplate(message.Template()),
		}
	}
	return records
}

// Entries lists the messages held locally by c as (definition code,
// template) pairs, sorted by code. Loading them back yields the same
// messages.
func Entries(c Catalog) []Entry {
	messages := c.Messages()
	entries := make([]Entry, len(messages))
	for i, message := range messages {
		entries[i] = Entry{DefinitionCode: message.DefinitionCode(), Template: message.Template()}
	}
	return entries
}
