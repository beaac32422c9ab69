package sequence

import "fmt"

// Label derives the display label for the item at the given zero-based
// position: prefix followed by startNumber+position rendered in decimal,
// left-padded with zeros to at least digits characters. Numbers that
// already have more digits are never truncated.
func Label(prefix string, startNumber, position, digits int) string {
	if digits < 0 {
		digits = 0
	}
	return prefix + fmt.Sprintf("%0*d", digits, startNumber+position)
}
