package resource

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/loopcontext/msgcode"
	"github.com/magiconair/properties"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v2"
)

// Write encodes entries in the given format. The output can be read back
// with Parse. Formats keyed by a map (TOML, msgpack) keep the last entry of
// a repeated code.
func Write(w io.Writer, format Format, entries []msgcode.Entry) error {
	switch format {
	case FormatProperties:
		return writeProperties(w, entries)
	case FormatXML:
		return writeXML(w, entries)
	case FormatYAML:
		return writeYAML(w, entries)
	case FormatTOML:
		return toml.NewEncoder(w).Encode(entriesMap(entries))
	case FormatMsgpack:
		encoder := msgpack.NewEncoder(w)
		encoder.SetSortMapKeys(true)
		return encoder.Encode(entriesMap(entries))
	default:
		return fmt.Errorf("unsupported format %v", format)
	}
}

func writeProperties(w io.Writer, entries []msgcode.Entry) error {
	props := properties.NewProperties()
	props.DisableExpansion = true
	for _, entry := range entries {
		if _, _, err := props.Set(entry.DefinitionCode, entry.Template); err != nil {
			return fmt.Errorf("message %s: %w", entry.DefinitionCode, err)
		}
	}
	_, err := props.Write(w, properties.UTF8)
	return err
}

func writeXML(w io.Writer, entries []msgcode.Entry) error {
	doc := xmlMessages{Messages: make([]xmlMessage, len(entries))}
	for i, entry := range entries {
		doc.Messages[i] = xmlMessage{Code: entry.DefinitionCode, Value: entry.Template}
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func writeYAML(w io.Writer, entries []msgcode.Entry) error {
	doc := make(yaml.MapSlice, len(entries))
	for i, entry := range entries {
		doc[i] = yaml.MapItem{Key: entry.DefinitionCode, Value: entry.Template}
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func entriesMap(entries []msgcode.Entry) map[string]string {
	doc := make(map[string]string, len(entries))
	for _, entry := range entries {
		doc[entry.DefinitionCode] = entry.Template
	}
	return doc
}
