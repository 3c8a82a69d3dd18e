package extractor

import (
	"reflect"
	"testing"
)

func docFromFragments(pages ...[]Fragment) *Document {
	return &Document{PageCount: len(pages), Pages: pages}
}

func TestReconstructLines_GroupsByVerticalPosition(t *testing.T) {
	doc := docFromFragments([]Fragment{
		{Text: "10 de nov. 2025", X: 10, Y: 700.0},
		{Text: "MERCADO LIVRE", X: 120, Y: 700.8}, // within tolerance: same row
		{Text: "R$ 146,73", X: 400, Y: 699.2},    // still same row
		{Text: "11 de nov. 2025", X: 10, Y: 680.0},
		{Text: "PADARIA", X: 120, Y: 680.0},
	})

	view := ReconstructLines(doc)

	want := []string{
		"10 de nov. 2025 MERCADO LIVRE R$ 146,73",
		"11 de nov. 2025 PADARIA",
	}
	if !reflect.DeepEqual(view.Lines, want) {
		t.Errorf("Lines:\n got %q\nwant %q", view.Lines, want)
	}
}

func TestReconstructLines_ToleranceBoundary(t *testing.T) {
	doc := docFromFragments([]Fragment{
		{Text: "first", Y: 100.0},
		{Text: "second", Y: 102.5}, // beyond the 2.0 tolerance: new row
	})

	view := ReconstructLines(doc)
	if len(view.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(view.Lines), view.Lines)
	}
}

func TestReconstructLines_FlattenedCollapsesWhitespace(t *testing.T) {
	doc := docFromFragments([]Fragment{
		{Text: "SALDO   ANTERIOR", Y: 100},
		{Text: "R$ 0,00", Y: 50},
	})

	view := ReconstructLines(doc)

	if got, want := view.Flattened, "SALDO ANTERIOR R$ 0,00"; got != want {
		t.Errorf("Flattened: got %q, want %q", got, want)
	}
	if got, want := view.LinePreserving, "SALDO   ANTERIOR\nR$ 0,00"; got != want {
		t.Errorf("LinePreserving: got %q, want %q", got, want)
	}
}

func TestReconstructLines_MultiplePages(t *testing.T) {
	doc := docFromFragments(
		[]Fragment{{Text: "page one", Y: 10}},
		[]Fragment{{Text: "page two", Y: 10}},
	)

	view := ReconstructLines(doc)
	want := []string{"page one", "page two"}
	if !reflect.DeepEqual(view.Lines, want) {
		t.Errorf("Lines: got %q, want %q", view.Lines, want)
	}
}

func TestReconstructLines_EmptyDocument(t *testing.T) {
	view := ReconstructLines(&Document{})
	if view.Flattened != "" || view.LinePreserving != "" || len(view.Lines) != 0 {
		t.Errorf("empty document should yield empty views, got %+v", view)
	}
}
