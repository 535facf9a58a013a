package subdoc

import (
	"math"
	"strconv"

	"github.com/agentflare-ai/subdoc/token"
)

// Increment adds delta to the integer value selector names, rewriting it
// in place. It reuses the digit classification the match already did
// rather than re-parsing the matched span.
func Increment(doc []byte, selector string, delta int64) ([]byte, Status, error) {
	m, _, st, err := locate(doc, selector)
	if st != Success {
		return nil, st, err
	}
	if st = completeOrStatus(m); st != Success {
		return nil, st, nil
	}
	if m.Type != token.KindSpecial || !m.SFlags.IsInteger() {
		return nil, PathMismatch, nil
	}
	if !m.NumValid {
		return nil, NumberTooBig, nil
	}

	sum := m.NumVal + delta
	if (delta > 0 && sum < m.NumVal) || (delta < 0 && sum > m.NumVal) {
		return nil, DeltaTooBig, nil
	}

	return splice(doc, m.LocMatch.Begin, m.LocMatch.Length, []byte(strconv.FormatInt(sum, 10))), Success, nil
}

// Decrement subtracts delta from the integer value selector names.
func Decrement(doc []byte, selector string, delta int64) ([]byte, Status, error) {
	if delta == math.MinInt64 {
		// -delta would overflow back to MinInt64 itself rather than
		// its positive counterpart, silently turning a decrement into
		// an increment of the same magnitude.
		return nil, DeltaTooBig, nil
	}
	return Increment(doc, selector, -delta)
}
