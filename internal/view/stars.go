package view

import (
	"fmt"
	"math"
)

// Scale is the range a movie rating is expressed in.
type Scale int

const (
	ScaleFive Scale = 5
	ScaleTen  Scale = 10
)

const maxGlyphs = 5

type StarDisplay struct {
	Rating float64
	Scale  Scale
	Full   int
	Half   bool
	Empty  int
}

// Stars maps rating to five glyphs. A 0-10 score is rescaled and may show a
// half glyph; a 0-5 rating is used directly as a whole star count.
func Stars(rating float64, scale Scale) StarDisplay {
	d := StarDisplay{Rating: rating, Scale: scale}

	if math.IsNaN(rating) {
		rating = 0
	}

	switch scale {
	case ScaleFive:
		d.Full = int(math.Floor(clamp(rating, 0, maxGlyphs)))
	default:
		d.Scale = ScaleTen
		r := clamp(rating*maxGlyphs/10, 0, maxGlyphs)
		d.Full = int(math.Floor(r))
		d.Half = r-math.Floor(r) >= 0.5
	}

	d.Empty = maxGlyphs - d.Full
	if d.Half {
		d.Empty--
	}
	return d
}

// Glyphs lists the glyph kinds in display order: "full", "half", "empty".
func (d StarDisplay) Glyphs() []string {
	out := make([]string, 0, maxGlyphs)
	for i := 0; i < d.Full; i++ {
		out = append(out, "full")
	}
	if d.Half {
		out = append(out, "half")
	}
	for i := 0; i < d.Empty; i++ {
		out = append(out, "empty")
	}
	return out
}

// Label is the numeric score shown next to a 0-10 rating.
func (d StarDisplay) Label() string {
	if d.Scale != ScaleTen {
		return ""
	}
	return fmt.Sprintf("%.1f/10", d.Rating)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
