//go:build !((linux || darwin || windows) && (amd64 || arm64))
// +build !linux,!darwin,!windows !amd64,!arm64

package json

import (
	"bytes"
	"encoding/json"
	"io"
)

// Marshal encodes v as compact JSON.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Unmarshal decodes data into v.
func Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// WriteReport writes v to w as two-space indented JSON followed by a newline.
func WriteReport(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
