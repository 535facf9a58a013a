// Package subdoc is the top-level sub-document engine: it ties the
// tokenizer, path parser, and match engine together into the operations a
// caller actually wants (get, replace, delete, insert, increment) without
// ever materializing a tree for the document it operates on.
package subdoc

import "github.com/agentflare-ai/subdoc/match"

// Loc is a byte span within a document, [Begin, Begin+Length).
type Loc struct {
	Begin  int
	Length int
}

// End returns the exclusive end offset of the span.
func (l Loc) End() int { return l.Begin + l.Length }

func fromMatch(m match.Loc) Loc {
	return Loc{Begin: m.Begin, Length: m.Length}
}
