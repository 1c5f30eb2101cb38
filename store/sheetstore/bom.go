package sheetstore

import (
	"bytes"
	"io"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// newBOMTrimmer wraps a CSV payload, dropping the UTF-8 BOM Google Sheets
// sometimes prepends; left in place it would corrupt the first header name.
func newBOMTrimmer(body []byte) io.Reader {
	return bytes.NewReader(bytes.TrimPrefix(body, utf8BOM))
}
