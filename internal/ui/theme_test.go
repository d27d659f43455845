package ui

import (
	"strings"
	"testing"
)

func TestBar(t *testing.T) {
	cases := []struct {
		value, total float64
		width        int
		want         string
	}{
		{0, 100, 10, "[----------]"},
		{50, 100, 10, "[#####-----]"},
		{100, 100, 10, "[##########]"},
		{150, 100, 4, "[####]"},
		{-5, 100, 4, "[----]"},
		{1, 0, 2, "[###]"},
	}
	for _, c := range cases {
		if got := Bar(c.value, c.total, c.width); got != c.want {
			t.Fatalf("Bar(%v,%v,%d)=%q, want %q", c.value, c.total, c.width, got, c.want)
		}
	}
}

func TestExpiryText(t *testing.T) {
	if got := ExpiryText("expired"); !strings.Contains(got, "expired") {
		t.Fatalf("expired badge=%q", got)
	}
	if got := ExpiryText("Expiring Soon"); !strings.Contains(got, "expiring soon") {
		t.Fatalf("expiring badge=%q", got)
	}
	if got := ExpiryText("normal"); got != "" {
		t.Fatalf("normal badge=%q, want empty", got)
	}
}

func TestMedal(t *testing.T) {
	if Medal(0) != "🥇" || Medal(2) != "🥉" || Medal(7) != "  " {
		t.Fatalf("unexpected medals")
	}
}
