package sequence

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// token is one (numeric-run, following non-numeric-run) pair of an
// identifier. A leading non-numeric run carries an implicit numeric value
// of positive infinity, so names without a leading number sort after names
// that have one at the same position.
type token struct {
	inf bool   // numeric part is +infinity (leading non-digit run)
	num string // decimal digits, leading zeros trimmed
	str string // trailing non-numeric run, may be empty
}

// Sorter orders identifiers using numeric-aware, locale-aware comparison.
// Digit runs compare as integers (img2 before img10); non-digit runs
// compare via locale collation. Not safe for concurrent use.
type Sorter struct {
	col *collate.Collator
}

// NewSorter creates a sorter collating non-numeric runs for the given locale.
func NewSorter(tag language.Tag) *Sorter {
	return &Sorter{col: collate.New(tag)}
}

// NewDefaultSorter creates a sorter using English collation.
func NewDefaultSorter() *Sorter {
	return NewSorter(language.English)
}

// Sort orders ids in place. The sort is stable: identifiers that compare
// equal keep their original input order.
func (s *Sorter) Sort(ids []string) {
	sort.SliceStable(ids, func(i, j int) bool {
		return s.Compare(ids[i], ids[j]) < 0
	})
}

// Compare returns -1, 0 or +1 ordering a relative to b. Identifiers are
// compared token pair by token pair: numeric components first, then the
// trailing string component. If one token stream is a strict prefix of the
// other, the shorter identifier sorts first.
func (s *Sorter) Compare(a, b string) int {
	ta := tokenize(a)
	tb := tokenize(b)

	for i := 0; i < len(ta) && i < len(tb); i++ {
		if c := compareNumeric(ta[i], tb[i]); c != 0 {
			return c
		}
		if c := s.col.CompareString(ta[i].str, tb[i].str); c != 0 {
			return c
		}
	}
	switch {
	case len(ta) < len(tb):
		return -1
	case len(ta) > len(tb):
		return 1
	default:
		return 0
	}
}

// compareNumeric orders the numeric components of two tokens. Infinity
// compares larger than any number and equal to itself. Finite runs compare
// as non-negative integers of arbitrary length.
func compareNumeric(a, b token) int {
	switch {
	case a.inf && b.inf:
		return 0
	case a.inf:
		return 1
	case b.inf:
		return -1
	}
	if len(a.num) != len(b.num) {
		if len(a.num) < len(b.num) {
			return -1
		}
		return 1
	}
	return strings.Compare(a.num, b.num)
}

func tokenize(s string) []token {
	runes := []rune(s)
	var toks []token
	i := 0
	for i < len(runes) {
		var t token
		if unicode.IsDigit(runes[i]) {
			j := i
			for j < len(runes) && unicode.IsDigit(runes[j]) {
				j++
			}
			t.num = trimLeadingZeros(string(runes[i:j]))
			i = j
		} else {
			t.inf = true
		}
		j := i
		for j < len(runes) && !unicode.IsDigit(runes[j]) {
			j++
		}
		t.str = string(runes[i:j])
		i = j
		toks = append(toks, t)
	}
	return toks
}

func trimLeadingZeros(s string) string {
	t := strings.TrimLeft(s, "0")
	if t == "" {
		return "0"
	}
	return t
}
