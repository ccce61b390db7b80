//go:build (linux || darwin || windows) && (amd64 || arm64)
// +build linux darwin windows
// +build amd64 arm64

// Package json encodes the machine-readable reports of the syncfile command.
// It uses sonic where its JIT is available and encoding/json elsewhere; both
// produce the same bytes for the report types.
package json

import (
	"io"

	"github.com/bytedance/sonic"
)

// reportAPI keeps struct field order, sorts map keys and leaves file names
// unescaped.
var reportAPI = sonic.Config{
	EscapeHTML:       false,
	SortMapKeys:      true,
	CompactMarshaler: true,
	ValidateString:   true,
}.Froze()

// Marshal encodes v as compact JSON.
func Marshal(v any) ([]byte, error) {
	return reportAPI.Marshal(v)
}

// Unmarshal decodes data into v.
func Unmarshal(data []byte, v any) error {
	return reportAPI.Unmarshal(data, v)
}

// WriteReport writes v to w as two-space indented JSON followed by a newline.
func WriteReport(w io.Writer, v any) error {
	enc := reportAPI.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
