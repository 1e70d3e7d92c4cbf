package tui

import "testing"

func TestPageLayoutUpdate(t *testing.T) {
	cases := []struct {
		name           string
		width          int
		height         int
		footer         int
		viewportWidth  int
		viewportHeight int
		fieldWidth     int
	}{
		{name: "narrow", width: 80, height: 24, footer: 2, viewportWidth: 76, viewportHeight: 18, fieldWidth: 60},
		{name: "tiny", width: 30, height: 8, footer: 2, viewportWidth: 40, viewportHeight: 5, fieldWidth: 36},
		{name: "wide with help", width: 200, height: 40, footer: 6, viewportWidth: 196, viewportHeight: 30, fieldWidth: 60},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			layout := newPageLayout()
			layout.Update(tc.width, tc.height, tc.footer)
			if layout.viewportWidth != tc.viewportWidth {
				t.Fatalf("viewport width mismatch: got %d want %d", layout.viewportWidth, tc.viewportWidth)
			}
			if layout.viewportHeight != tc.viewportHeight {
				t.Fatalf("viewport height mismatch: got %d want %d", layout.viewportHeight, tc.viewportHeight)
			}
			if layout.fieldWidth != tc.fieldWidth {
				t.Fatalf("field width mismatch: got %d want %d", layout.fieldWidth, tc.fieldWidth)
			}
		})
	}
}

func TestContentBuilderCountsLines(t *testing.T) {
	cb := &contentBuilder{}
	cb.WriteLine("one")
	cb.WriteString("two\nthree")
	cb.WriteRune('\n')
	if cb.Line() != 3 {
		t.Fatalf("expected 3 lines, got %d", cb.Line())
	}
	if cb.String() != "one\ntwo\nthree\n" {
		t.Fatalf("unexpected content %q", cb.String())
	}
}

func TestBlendEndpoints(t *testing.T) {
	if got := blend("#000000", "#ffffff", 0); got != "#000000" {
		t.Fatalf("opacity 0 should give background, got %s", got)
	}
	if got := blend("#000000", "#ffffff", 1); got != "#ffffff" {
		t.Fatalf("opacity 1 should give foreground, got %s", got)
	}
	if got := blend("#000000", "#ffffff", 0.5); got == "#000000" || got == "#ffffff" {
		t.Fatalf("half opacity should mix, got %s", got)
	}
	if got := blend("not-a-colour", "#ffffff", 0.5); got != "#ffffff" {
		t.Fatalf("bad background should fall back to foreground, got %s", got)
	}
}
