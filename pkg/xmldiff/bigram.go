// bigram.go - token-based string similarity.
//
// A Bigram is the sorted, deduplicated set of adjacent-character-pair tokens
// derived from a string. Comparing two bigrams with Compare yields a
// Sørensen–Dice-like similarity score in [0,1].
package xmldiff

// Bigram is a sorted, deduplicated set of adjacent-character-pair tokens.
// Tokens are strictly increasing; the zero value is the empty bigram.
type Bigram struct {
	tokens []uint64
}

// EmptyBigram is the bigram derived from the empty string.
var EmptyBigram = Bigram{}

// NewBigram tokenizes s into a Bigram.
//
//   - len(s) == 0 -> empty bigram.
//   - len(s) == 1 -> a single token equal to the lone rune.
//   - otherwise   -> one token per adjacent rune pair, sorted ascending with
//     duplicates collapsed.
func NewBigram(s string) Bigram {
	runes := []rune(s)
	switch len(runes) {
	case 0:
		return EmptyBigram
	case 1:
		return Bigram{tokens: []uint64{uint64(runes[0])}}
	}

	tokens := make([]uint64, len(runes)-1)
	for i := 0; i < len(runes)-1; i++ {
		tokens[i] = encodePair(runes[i], runes[i+1])
	}

	sortUint64s(tokens)
	return Bigram{tokens: dedupeSorted(tokens)}
}

// encodePair injectively encodes an ordered rune pair into a single uint64.
// Runes are at most 21 bits wide (Unicode code points), so shifting the first
// by 32 bits leaves no overlap with the second.
func encodePair(a, b rune) uint64 {
	return uint64(uint32(a))<<32 | uint64(uint32(b))
}

func sortUint64s(xs []uint64) {
	// insertion sort is adequate: adjacent-pair token lists come from short
	// property values, and callers never sort more than a few hundred tokens.
	for i := 1; i < len(xs); i++ {
		v := xs[i]
		j := i - 1
		for j >= 0 && xs[j] > v {
			xs[j+1] = xs[j]
			j--
		}
		xs[j+1] = v
	}
}

func dedupeSorted(xs []uint64) []uint64 {
	if len(xs) == 0 {
		return xs
	}
	out := xs[:1]
	for _, v := range xs[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

// IsEmpty reports whether the bigram carries no tokens.
func (b Bigram) IsEmpty() bool {
	return len(b.tokens) == 0
}

// Compare returns the variant Sørensen–Dice similarity between a and b:
// |A∩B| / max(|A|,|B|), computed over deduplicated token sets rather than
// multisets, and normalized by the larger side rather than the sum. This is
// a deliberate departure from the classical 2|A∩B|/(|A|+|B|) coefficient;
// preserve it exactly to match reference edit output.
//
// Both empty -> 1.0. Exactly one empty -> 0.0. Symmetric in a and b.
func (a Bigram) Compare(b Bigram) float64 {
	if a.IsEmpty() && b.IsEmpty() {
		return 1.0
	}
	if a.IsEmpty() || b.IsEmpty() {
		return 0.0
	}

	intersection := 0
	i, j := 0, 0
	for i < len(a.tokens) && j < len(b.tokens) {
		switch {
		case a.tokens[i] == b.tokens[j]:
			intersection++
			i++
			j++
		case a.tokens[i] < b.tokens[j]:
			i++
		default:
			j++
		}
	}

	denom := len(a.tokens)
	if len(b.tokens) > denom {
		denom = len(b.tokens)
	}
	return float64(intersection) / float64(denom)
}
