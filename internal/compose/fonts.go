package compose

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontCache resolves stamp typefaces. Parsed fonts are cached; faces are
// created per call because an opentype.Face is not safe for concurrent use.
type FontCache struct {
	mu    sync.Mutex
	fonts map[fontKey]*opentype.Font
}

type fontKey struct {
	family string
	bold   bool
}

// NewFontCache creates an empty font cache.
func NewFontCache() *FontCache {
	return &FontCache{fonts: make(map[fontKey]*opentype.Font)}
}

// Face returns a new face for the given family, weight and pixel size.
// A family ending in .ttf or .otf is loaded from that path; anything else
// resolves to the embedded Go fonts (bold selects Go Bold).
func (c *FontCache) Face(family string, bold bool, size int) (font.Face, error) {
	fnt, err := c.font(family, bold)
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %dpx face for %q: %w", size, family, err)
	}
	return face, nil
}

func (c *FontCache) font(family string, bold bool) (*opentype.Font, error) {
	key := fontKey{family: family, bold: bold}

	c.mu.Lock()
	defer c.mu.Unlock()
	if f, ok := c.fonts[key]; ok {
		return f, nil
	}

	data, err := fontData(family, bold)
	if err != nil {
		return nil, err
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %q: %w", family, err)
	}
	c.fonts[key] = f
	return f, nil
}

func fontData(family string, bold bool) ([]byte, error) {
	low := strings.ToLower(family)
	if strings.HasSuffix(low, ".ttf") || strings.HasSuffix(low, ".otf") {
		data, err := os.ReadFile(family) //nolint:gosec // G304: user-configured font path is expected
		if err != nil {
			return nil, fmt.Errorf("failed to read font file: %w", err)
		}
		return data, nil
	}
	if bold {
		return gobold.TTF, nil
	}
	return goregular.TTF, nil
}
