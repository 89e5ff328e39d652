package resource

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/loopcontext/msgcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestFormatOf(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(FormatXML, FormatOf("messages/app.xml"))
	assert.Equal(FormatXML, FormatOf("APP.XML"))
	assert.Equal(FormatYAML, FormatOf("app.yaml"))
	assert.Equal(FormatYAML, FormatOf("app.yml"))
	assert.Equal(FormatTOML, FormatOf("app.toml"))
	assert.Equal(FormatMsgpack, FormatOf("bundle.msgpack"))
	assert.Equal(FormatProperties, FormatOf("app.properties"))
	assert.Equal(FormatProperties, FormatOf("messages"))
}

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   string
		want   []msgcode.Entry
	}{
		{
			name:   "properties",
			format: FormatProperties,
			data:   "# comment\nUSR001-E = User {0} not found\nUSR002-W=Quota ${used} of {1}\nUSR003-I:\n",
			want: []msgcode.Entry{
				{DefinitionCode: "USR001-E", Template: "User {0} not found"},
				{DefinitionCode: "USR002-W", Template: "Quota ${used} of {1}"},
				{DefinitionCode: "USR003-I", Template: ""},
			},
		},
		{
			name:   "xml",
			format: FormatXML,
			data: `<?xml version="1.0" encoding="UTF-8"?>
<messages>
  <message code="USR001-E" value="User {0} not found"/>
  <message code="USR002-W" value="Say &quot;hi&quot;"/>
  <message code="USR003-I"/>
</messages>`,
			want: []msgcode.Entry{
				{DefinitionCode: "USR001-E", Template: "User {0} not found"},
				{DefinitionCode: "USR002-W", Template: `Say "hi"`},
				{DefinitionCode: "USR003-I", Template: ""},
			},
		},
		{
			name:   "yaml",
			format: FormatYAML,
			data:   "USR001-E: User {0} not found\nUSR002-W: \"Retry in {0}s\"\nUSR003-I:\nUSR004-D: 42\n",
			want: []msgcode.Entry{
				{DefinitionCode: "USR001-E", Template: "User {0} not found"},
				{DefinitionCode: "USR002-W", Template: "Retry in {0}s"},
				{DefinitionCode: "USR003-I", Template: ""},
				{DefinitionCode: "USR004-D", Template: "42"},
			},
		},
		{
			name:   "toml",
			format: FormatTOML,
			data:   "USR002-W = \"Retry in {0}s\"\nUSR001-E = \"User {0} not found\"\n",
			want: []msgcode.Entry{
				{DefinitionCode: "USR001-E", Template: "User {0} not found"},
				{DefinitionCode: "USR002-W", Template: "Retry in {0}s"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := Parse(tt.format, []byte(tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.want, entries)
		})
	}
}

func TestParse_msgpack(t *testing.T) {
	data, err := msgpack.Marshal(map[string]string{"B-W": "b", "A-E": "a"})
	require.NoError(t, err)

	entries, err := Parse(FormatMsgpack, data)
	require.NoError(t, err)
	assert.Equal(t, []msgcode.Entry{
		{DefinitionCode: "A-E", Template: "a"},
		{DefinitionCode: "B-W", Template: "b"},
	}, entries)
}

func TestParse_errors(t *testing.T) {
	assert := assert.New(t)

	_, err := Parse(FormatXML, []byte(`<catalog><message code="A-E"/></catalog>`))
	assert.Error(err, "wrong root element")

	_, err = Parse(FormatXML, []byte(`<messages><message value="x"/></messages>`))
	assert.Error(err, "missing code attribute")

	_, err = Parse(FormatYAML, []byte("A-E:\n  nested: true\n"))
	assert.Error(err, "nested yaml value")

	_, err = Parse(FormatTOML, []byte("A-E = [1, 2]\n"))
	assert.Error(err, "toml array value")

	_, err = Parse(FormatMsgpack, []byte{0xc1})
	assert.Error(err, "invalid msgpack")
}

func TestFileLoader_fs(t *testing.T) {
	fsys := fstest.MapFS{
		"messages/app.properties": {Data: []byte("APP001-I=Welcome {0}\n")},
		"messages/app.xml":        {Data: []byte(`<messages><message code="APP002-E" value="Broken"/></messages>`)},
	}
	loader := NewFileLoader(fsys)

	entries, err := loader.Load(context.Background(), "messages/app.properties")
	require.NoError(t, err)
	assert.Equal(t, []msgcode.Entry{{DefinitionCode: "APP001-I", Template: "Welcome {0}"}}, entries)

	entries, err = loader.Load(context.Background(), "/messages/app.xml")
	require.NoError(t, err)
	assert.Equal(t, []msgcode.Entry{{DefinitionCode: "APP002-E", Template: "Broken"}}, entries)

	_, err = loader.Load(context.Background(), "messages/missing.properties")
	assert.True(t, errors.Is(err, msgcode.ErrResourceNotFound))
}

func TestFileLoader_osAndCharset(t *testing.T) {
	dir := t.TempDir()
	// "Café {0}" encoded in ISO-8859-1.
	latin1 := []byte("CAFE-I=Caf\xe9 {0}\n")
	resourcePath := filepath.Join(dir, "latin1.properties")
	require.NoError(t, os.WriteFile(resourcePath, latin1, 0o600))

	loader := &FileLoader{Charset: "ISO-8859-1"}
	entries, err := loader.Load(context.Background(), resourcePath)
	require.NoError(t, err)
	assert.Equal(t, []msgcode.Entry{{DefinitionCode: "CAFE-I", Template: "Café {0}"}}, entries)

	loader.Charset = "no-such-charset"
	_, err = loader.Load(context.Background(), resourcePath)
	assert.Error(t, err)
}

func TestFileLoader_withCatalog(t *testing.T) {
	fsys := fstest.MapFS{
		"base.yaml":     {Data: []byte("A-E: base a\nB-E: base b\n")},
		"override.toml": {Data: []byte("\"B-W\" = \"override b\"\n")},
		"broken.xml":    {Data: []byte(`<messages><message code="nope" value="x"/></messages>`)},
	}
	loader := NewFileLoader(fsys)
	catalog := msgcode.New(msgcode.Config{})
	ctx := context.Background()

	require.NoError(t, catalog.Load(ctx, loader, "base.yaml", msgcode.ReplaceAll))
	require.NoError(t, catalog.Load(ctx, loader, "override.toml", msgcode.ReplaceExists))
	require.NoError(t, catalog.Load(ctx, loader, "absent.properties", msgcode.SkipExists))

	b, found := catalog.Get("B")
	require.True(t, found)
	assert.Equal(t, "override b", b.Template())
	assert.Equal(t, msgcode.LevelWarning, b.Level())

	err := catalog.Load(ctx, loader, "broken.xml", msgcode.ReplaceAll)
	assert.True(t, errors.Is(err, msgcode.ErrLoad))
	assert.True(t, errors.Is(err, msgcode.ErrIllegalCode))
	assert.Equal(t, []string{"A", "B"}, catalog.Keys())
}

func TestFileLoader_canceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFileLoader(fstest.MapFS{}).Load(ctx, "x.properties")
	assert.True(t, errors.Is(err, context.Canceled))
}
