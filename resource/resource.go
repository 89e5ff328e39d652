// Package resource reads message resources from files.
//
// The format is chosen from the file extension: ".xml", ".yaml"/".yml",
// ".toml" and ".msgpack" have dedicated parsers, anything else is read as a
// Java-style properties file. Every format yields (definition code,
// template) pairs; decoding the codes is left to the catalog.
package resource

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/loopcontext/msgcode"
	"github.com/magiconair/properties"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"gopkg.in/yaml.v2"
)

type Format int

const (
	FormatProperties Format = iota
	FormatXML
	FormatYAML
	FormatTOML
	FormatMsgpack
)

var formatNames = [...]string{
	FormatProperties: "properties",
	FormatXML:        "xml",
	FormatYAML:       "yaml",
	FormatTOML:       "toml",
	FormatMsgpack:    "msgpack",
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}

// FormatOf picks the format of a resource from its extension.
func FormatOf(locator string) Format {
	switch strings.ToLower(path.Ext(filepath.ToSlash(locator))) {
	case ".xml":
		return FormatXML
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	case ".msgpack", ".mpk":
		return FormatMsgpack
	default:
		return FormatProperties
	}
}

// FileLoader implements msgcode.Loader on top of a file system.
type FileLoader struct {
	// FS is the file system locators are resolved against. When nil,
	// locators are paths on the OS file system.
	FS fs.FS

	// Charset is the IANA name of the encoding of text resources
	// ("ISO-8859-1", "Shift_JIS"...). Empty means UTF-8.
	Charset string

	Logger *zap.Logger
}

func NewFileLoader(fsys fs.FS) *FileLoader {
	return &FileLoader{FS: fsys}
}

func (l *FileLoader) Load(ctx context.Context, locator string) ([]msgcode.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := l.readFile(locator)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", locator, msgcode.ErrResourceNotFound)
		}
		return nil, fmt.Errorf("cannot read %s: %w", locator, err)
	}

	format := FormatOf(locator)
	if format != FormatMsgpack {
		data, err = decodeCharset(data, l.Charset)
		if err != nil {
			return nil, err
		}
	}

	entries, err := Parse(format, data)
	if err != nil {
		return nil, fmt.Errorf("cannot parse %s: %w", locator, err)
	}

	if l.Logger != nil {
		l.Logger.Debug("message resource read",
			zap.String("locator", locator),
			zap.Stringer("format", format),
			zap.Int("entries", len(entries)))
	}

	return entries, nil
}

func (l *FileLoader) readFile(locator string) ([]byte, error) {
	if l.FS == nil {
		return os.ReadFile(locator)
	}
	return fs.ReadFile(l.FS, strings.TrimPrefix(path.Clean(filepath.ToSlash(locator)), "/"))
}

func decodeCharset(data []byte, charset string) ([]byte, error) {
	if charset == "" {
		return data, nil
	}
	enc, err := ianaindex.IANA.Encoding(charset)
	if err != nil {
		return nil, fmt.Errorf("unknown charset %q: %w", charset, err)
	}
	if enc == nil || enc == encoding.Nop {
		return data, nil
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("cannot decode %s data: %w", charset, err)
	}
	return decoded, nil
}

// Parse decodes the content of a resource. Data must be UTF-8 for text
// formats.
func Parse(format Format, data []byte) ([]msgcode.Entry, error) {
	switch format {
	case FormatProperties:
		return parseProperties(data)
	case FormatXML:
		return parseXML(data)
	case FormatYAML:
		return parseYAML(data)
	case FormatTOML:
		return parseTOML(data)
	case FormatMsgpack:
		return parseMsgpack(data)
	default:
		return nil, fmt.Errorf("unsupported format %v", format)
	}
}

func parseProperties(data []byte) ([]msgcode.Entry, error) {
	loader := properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	props, err := loader.LoadBytes(data)
	if err != nil {
		return nil, err
	}

	keys := props.Keys()
	entries := make([]msgcode.Entry, 0, len(keys))
	for _, key := range keys {
		value, _ := props.Get(key)
		entries = append(entries, msgcode.Entry{DefinitionCode: key, Template: value})
	}
	return entries, nil
}

type xmlMessages struct {
	XMLName  xml.Name     `xml:"messages"`
	Messages []xmlMessage `xml:"message"`
}

type xmlMessage struct {
	Code  string `xml:"code,attr"`
	Value string `xml:"value,attr"`
}

func parseXML(data []byte) ([]msgcode.Entry, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	// Input has already been converted to UTF-8; accept whatever the
	// declaration claims.
	decoder.CharsetReader = func(label string, input io.Reader) (io.Reader, error) {
		return input, nil
	}

	var doc xmlMessages
	if err := decoder.Decode(&doc); err != nil {
		return nil, err
	}

	entries := make([]msgcode.Entry, 0, len(doc.Messages))
	for i, message := range doc.Messages {
		if strings.TrimSpace(message.Code) == "" {
			return nil, fmt.Errorf("message %d: missing code attribute", i+1)
		}
		entries = append(entries, msgcode.Entry{DefinitionCode: message.Code, Template: message.Value})
	}
	return entries, nil
}

func parseYAML(data []byte) ([]msgcode.Entry, error) {
	var doc yaml.MapSlice
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	entries := make([]msgcode.Entry, 0, len(doc))
	for _, item := range doc {
		code, ok := item.Key.(string)
		if !ok {
			return nil, fmt.Errorf("message code must be a string, got %T", item.Key)
		}
		template, err := scalarString(item.Value)
		if err != nil {
			return nil, fmt.Errorf("message %s: %w", code, err)
		}
		entries = append(entries, msgcode.Entry{DefinitionCode: code, Template: template})
	}
	return entries, nil
}

func parseTOML(data []byte) ([]msgcode.Entry, error) {
	var doc map[string]interface{}
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, err
	}
	return entriesFromMap(doc)
}

func parseMsgpack(data []byte) ([]msgcode.Entry, error) {
	var doc map[string]string
	if err := msgpack.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(doc))
	for code := range doc {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	entries := make([]msgcode.Entry, len(codes))
	for i, code := range codes {
		entries[i] = msgcode.Entry{DefinitionCode: code, Template: doc[code]}
	}
	return entries, nil
}

func entriesFromMap(doc map[string]interface{}) ([]msgcode.Entry, error) {
	codes := make([]string, 0, len(doc))
	for code := range doc {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	entries := make([]msgcode.Entry, len(codes))
	for i, code := range codes {
		template, err := scalarString(doc[code])
		if err != nil {
			return nil, fmt.Errorf("message %s: %w", code, err)
		}
		entries[i] = msgcode.Entry{DefinitionCode: code, Template: template}
	}
	return entries, nil
}

func scalarString(value interface{}) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case bool, int, int64, uint64, float64:
		return fmt.Sprint(v), nil
	default:
		return "", fmt.Errorf("message text must be a scalar, got %T", value)
	}
}
