// Package export serializes a catalog for consumers outside the process:
// a JavaScript file mirroring the catalog for browsers, and a msgpack
// bundle that resource.FileLoader reads back.
package export

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"

	"github.com/loopcontext/msgcode"
	"github.com/vmihailenco/msgpack/v5"
)

//go:embed prelude.js
var scriptPrelude string

// WriteScript writes the script runtime followed by one Messages.add call
// per message held locally by c.
func WriteScript(w io.Writer, c msgcode.Catalog) error {
	bw := bufio.NewWriter(w)

	if _, err := io.WriteString(bw, scriptPrelude); err != nil {
		return err
	}
	for _, record := range msgcode.Export(c) {
		_, err := fmt.Fprintf(bw, "Messages.add(\"%s\", \"%s\", \"%s\");\n",
			msgcode.EscapeTemplate(record.Code), record.Level, record.Template)
		if err != nil {
			return err
		}
	}

	return bw.Flush()
}

// Bundle maps definition codes to raw templates.
type Bundle map[string]string

// NewBundle collects the messages held locally by c. Messages of unknown
// level are skipped since they have no definition suffix to encode.
func NewBundle(c msgcode.Catalog) Bundle {
	bundle := Bundle{}
	for _, message := range c.Messages() {
		code, err := msgcode.DefinitionCodeOf(message.Code(), message.Level())
		if err != nil {
			continue
		}
		bundle[code] = message.Template()
	}
	return bundle
}

// WriteBundle writes the msgpack encoding of NewBundle(c).
func WriteBundle(w io.Writer, c msgcode.Catalog) error {
	encoder := msgpack.NewEncoder(w)
	encoder.SetSortMapKeys(true)
	if err := encoder.Encode(NewBundle(c)); err != nil {
		return fmt.Errorf("cannot encode bundle: %w", err)
	}
	return nil
}
