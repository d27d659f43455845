package pantry

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestExportFileName(t *testing.T) {
	now := time.Date(2026, 3, 7, 22, 0, 0, 0, time.Local)
	if got := ExportFileName(now, false); got != "pantry-inventory-2026-03-07.json" {
		t.Fatalf("name=%s", got)
	}
	if got := ExportFileName(now, true); got != "pantry-inventory-2026-03-07.json.zst" {
		t.Fatalf("name=%s", got)
	}
}

func TestEncodeExportShape(t *testing.T) {
	data, err := EncodeExport(nil)
	if err != nil || string(data) != "[]" {
		t.Fatalf("empty export=%q err=%v", data, err)
	}

	exp := Date{Year: 2026, Month: time.October, Day: 20}
	data, err = EncodeExport([]Item{{ID: "a", Name: "eggs", Quantity: 12, Category: CategoryDairy, Location: LocationFridge, Expiration: &exp, AddedDate: 1}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	s := string(data)
	for _, want := range []string{`  {`, `"expiration": "2026-10-20"`, `"notes": null`, `"addedDate": 1`} {
		if !strings.Contains(s, want) {
			t.Fatalf("export missing %q:\n%s", want, s)
		}
	}
}

func TestDecodeImportJSONC(t *testing.T) {
	data := []byte(`[
		// weekly shop
		{"id": "a", "name": "eggs", "quantity": 12, "unit": "", "category": "dairy",
		 "location": "fridge", "expiration": null, "notes": null, "addedDate": 5,},
	]`)
	items, err := DecodeImport(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(items) != 1 || items[0].Name != "eggs" || items[0].Expiration != nil {
		t.Fatalf("items=%+v", items)
	}
}

func TestDecodeImportErrors(t *testing.T) {
	cases := []struct {
		in   string
		want error
	}{
		{`{"id":"a"}`, ErrInvalidFormat},
		{`"hello"`, ErrInvalidFormat},
		{`null`, ErrInvalidFormat},
		{`[{"id":`, ErrUnreadable},
		{`garbage`, ErrUnreadable},
		{`[{"quantity":"many"}]`, ErrUnreadable},
	}
	for _, c := range cases {
		if _, err := DecodeImport([]byte(c.in)); !errors.Is(err, c.want) {
			t.Fatalf("DecodeImport(%s) err=%v, want %v", c.in, err, c.want)
		}
	}
}

func TestWriteExportZstdRoundTrip(t *testing.T) {
	items := []Item{{ID: "a", Name: "flour", Quantity: 1, Category: CategoryBaking, Location: LocationCabinet, AddedDate: 9}}
	var buf bytes.Buffer
	if err := WriteExport(&buf, items, true); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), zstdMagic) {
		t.Fatalf("export is not zstd framed")
	}
	got, err := DecodeImport(buf.Bytes())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].Name != "flour" {
		t.Fatalf("got=%+v", got)
	}
}
