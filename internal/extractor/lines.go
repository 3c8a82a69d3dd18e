package extractor

import (
	"math"
	"regexp"
	"strings"
)

// Fragments closer than this on the vertical axis belong to the same printed
// row. Bank PDFs rarely expose structured tables, so row membership has to be
// approximated from baseline coordinates.
const rowTolerance = 2.0

var whitespaceRun = regexp.MustCompile(`\s+`)

// TextView is the reconstructed text of a document in the three shapes the
// pattern engine consumes: a fully flattened blob, a line-preserving blob,
// and the individual lines.
type TextView struct {
	Flattened      string
	LinePreserving string
	Lines          []string
}

// ReconstructLines regroups positioned fragments into logical text lines.
// A fragment joins the first open line whose representative Y is within
// rowTolerance; otherwise it opens a new line. Fragments are appended in
// encounter order, which for most PDF producers is visual order.
func ReconstructLines(doc *Document) TextView {
	type openLine struct {
		y     float64
		parts []string
	}

	var lines []string
	for _, page := range doc.Pages {
		var open []*openLine
		for _, frag := range page {
			placed := false
			for _, ln := range open {
				if math.Abs(frag.Y-ln.y) < rowTolerance {
					ln.parts = append(ln.parts, frag.Text)
					placed = true
					break
				}
			}
			if !placed {
				open = append(open, &openLine{y: frag.Y, parts: []string{frag.Text}})
			}
		}
		for _, ln := range open {
			line := strings.TrimSpace(strings.Join(ln.parts, " "))
			if line != "" {
				lines = append(lines, line)
			}
		}
	}

	preserving := strings.Join(lines, "\n")
	flattened := strings.TrimSpace(whitespaceRun.ReplaceAllString(preserving, " "))

	return TextView{
		Flattened:      flattened,
		LinePreserving: preserving,
		Lines:          lines,
	}
}
