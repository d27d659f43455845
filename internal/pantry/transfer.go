package pantry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/tidwall/jsonc"
)

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// ExportFileName names an export after the day it was made, e.g.
// pantry-inventory-2026-10-15.json.
func ExportFileName(now time.Time, compressed bool) string {
	name := "pantry-inventory-" + now.Format(dateLayout) + ".json"
	if compressed {
		name += ".zst"
	}
	return name
}

// EncodeExport renders items as an indented JSON array.
func EncodeExport(items []Item) ([]byte, error) {
	if items == nil {
		items = []Item{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	return data, nil
}

// WriteExport writes the export to w, zstd-compressed when compressed is set.
func WriteExport(w io.Writer, items []Item, compressed bool) error {
	data, err := EncodeExport(items)
	if err != nil {
		return err
	}
	if !compressed {
		_, err = w.Write(data)
		return err
	}
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("zstd writer: %w", err)
	}
	if _, err := enc.Write(data); err != nil {
		_ = enc.Close()
		return fmt.Errorf("zstd write: %w", err)
	}
	return enc.Close()
}

// DecodeImport parses an import file. Accepted input is a JSON array of
// items, optionally with JSONC comments and trailing commas, optionally
// zstd-compressed. A JSON value that is not an array yields
// ErrInvalidFormat; anything unparseable yields ErrUnreadable.
func DecodeImport(data []byte) ([]Item, error) {
	if bytes.HasPrefix(data, zstdMagic) {
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("zstd reader: %w", err)
		}
		defer dec.Close()
		data, err = dec.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
		}
	}

	stripped := jsonc.ToJSON(data)
	var top any
	if err := json.Unmarshal(stripped, &top); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	if _, ok := top.([]any); !ok {
		return nil, ErrInvalidFormat
	}

	var items []Item
	if err := json.Unmarshal(stripped, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}
