// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/pdiddy/rug/pkg/types"
)

func outputExt(f types.OutputFormat) string {
	if f == types.OutputModule {
		return ".rug.js"
	}
	return ".html"
}

// render encodes converted HTML in the requested output format.
func render(f types.OutputFormat, html string) ([]byte, error) {
	switch f {
	case types.OutputHTML, "":
		return []byte(html), nil
	case types.OutputModule:
		return Module(html)
	default:
		return nil, fmt.Errorf("unsupported output format %q: use html or module", f)
	}
}

// Module returns an ES module whose default export is html. This is the
// shape bundlers expect when a .rug import is replaced by its HTML.
func Module(html string) ([]byte, error) {
	var lit bytes.Buffer
	enc := json.NewEncoder(&lit)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(html); err != nil {
		return nil, fmt.Errorf("encoding module string: %w", err)
	}

	var b bytes.Buffer
	b.WriteString("export default ")
	b.Write(bytes.TrimSuffix(lit.Bytes(), []byte("\n")))
	b.WriteString(";\n")
	return b.Bytes(), nil
}
