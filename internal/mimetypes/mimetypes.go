// Package mimetypes maps file names to Content-Type values by extension.
package mimetypes

import (
	_ "embed"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
)

// Fallback is returned for extensions nobody knows about.
const Fallback = "application/octet-stream"

//go:embed types.toml
var builtinTOML string

// Table is an extension to content type mapping. Keys are lowercase and carry the leading dot.
type Table struct {
	types map[string]string
}

type document struct {
	Types map[string]string `toml:"types"`
}

// Load decodes a TOML document with a [types] table of extension = "type" pairs.
func Load(r io.Reader) (*Table, error) {
	var doc document
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode content types: %w", err)
	}

	t := &Table{types: make(map[string]string, len(doc.Types))}
	for ext, typ := range doc.Types {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if _, _, err := mime.ParseMediaType(typ); err != nil {
			return nil, fmt.Errorf("content type for %s: %w", ext, err)
		}
		t.types[ext] = typ
	}
	return t, nil
}

var builtin = sync.OnceValues(func() (*Table, error) {
	return Load(strings.NewReader(builtinTOML))
})

// Builtin returns the table shipped with the binary.
func Builtin() *Table {
	t, err := builtin()
	if err != nil {
		// The embedded document is covered by tests.
		panic(err)
	}
	return t
}

// Len reports the number of extensions in the table.
func (t *Table) Len() int {
	return len(t.types)
}

// TypeByName returns the content type for a file name.
//
// The extension is looked up as-is, then lowercased, then in the platform
// registry. Names without a known extension get Fallback.
func (t *Table) TypeByName(name string) string {
	ext := path.Ext(name)
	if ext == "" {
		return Fallback
	}
	if typ, ok := t.types[ext]; ok {
		return typ
	}
	if typ, ok := t.types[strings.ToLower(ext)]; ok {
		return typ
	}
	if typ := mime.TypeByExtension(ext); typ != "" {
		return typ
	}
	return Fallback
}
