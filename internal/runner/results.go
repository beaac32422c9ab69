package runner

import (
	"errors"
	"image"

	"github.com/framestamp/framestamp/internal/compose"
)

// SourceItem is one input image after natural-order sorting. A nil Raster
// marks a source that failed to decode; the runner still accounts for it
// with one error cell per output spec.
type SourceItem struct {
	ID       string
	Raster   image.Image
	Position int
}

// RenderCell is the result of composing one (source item, output spec)
// pair. Exactly one of Encoded and Err is set.
type RenderCell struct {
	ItemID   string
	SpecKey  string
	Sequence int
	Label    string
	Width    int
	Height   int
	Encoded  []byte
	Err      error
}

// OK reports whether the cell rendered successfully.
func (c *RenderCell) OK() bool { return c.Err == nil }

// ErrorKind names the failure class of a failed cell: "decode", "surface",
// "encode", or "unknown". Empty for successful cells.
func (c *RenderCell) ErrorKind() string {
	switch {
	case c.Err == nil:
		return ""
	case errors.Is(c.Err, compose.ErrDecode):
		return "decode"
	case errors.Is(c.Err, compose.ErrSurface):
		return "surface"
	case errors.Is(c.Err, compose.ErrEncode):
		return "encode"
	default:
		return "unknown"
	}
}

// Stats summarizes a completed run.
type Stats struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// Summarize counts successes and failures across cells.
func Summarize(cells []RenderCell) Stats {
	s := Stats{Total: len(cells)}
	for i := range cells {
		if cells[i].OK() {
			s.Succeeded++
		} else {
			s.Failed++
		}
	}
	return s
}
