// Package match implements the path-matching engine: given a Path and a
// byte buffer, it drives a token.Tokenizer across the buffer and decides,
// container by container, whether the path leads into, out of, or past
// what is currently open — without ever materializing a tree.
package match

import "github.com/agentflare-ai/subdoc/token"

// Result classifies the outcome of a match attempt.
type Result int8

const (
	// NoMatch means the path does not exist in the document: some
	// component named a key or index that the corresponding container
	// does not have.
	NoMatch Result = iota
	// Complete means the full path was found and Loc describes its span.
	Complete
	// PossibleAncestor means the engine ran out of document before it
	// could decide — the buffer ended while the open container it stopped
	// on, a true prefix of the path, was still unclosed. A complete
	// document never produces it; a truncated one can.
	PossibleAncestor
	// TypeMismatch means the path continues through a container the
	// document does not have at that point: e.g. the path asks for a
	// key inside what is actually an array, or an index inside an
	// object, or either inside a scalar.
	TypeMismatch
)

func (r Result) String() string {
	switch r {
	case Complete:
		return "complete"
	case PossibleAncestor:
		return "possible_ancestor"
	case TypeMismatch:
		return "type_mismatch"
	default:
		return "no_match"
	}
}

// Loc is a byte span, [Begin, Begin+Length), into the document the
// engine was run against.
type Loc struct {
	Begin  int
	Length int
}

// End returns the exclusive end offset of the span.
func (l Loc) End() int { return l.Begin + l.Length }

// Valid reports whether the span was ever populated.
func (l Loc) Valid() bool { return l.Length > 0 || l.Begin != 0 }

// Match is the engine's output: everything a caller needs to read,
// splice, or classify the targeted value without rescanning the
// document.
type Match struct {
	Result Result

	// Type is the container/scalar kind found at the matched location.
	// Meaningful only when Result == Complete.
	Type token.Kind

	// LocMatch is the span of the matched value itself.
	LocMatch Loc
	// LocParent is set only when Result == NoMatch: it is then the span
	// of the deepest container on the path that exists. Complete and
	// TypeMismatch results leave it zero.
	LocParent Loc
	// LocKey is the span of the object key immediately preceding the
	// match (the quotes included), when the match's parent is an object.
	LocKey Loc
	HasKey bool

	// MatchLevel is the nesting depth at which the match (or, for
	// NoMatch/TypeMismatch, the deepest confirmed ancestor) was found,
	// counted as the tokenizer counts levels: the document's top-level
	// value is level 1, so a root match reports 1 and a complete match
	// of an n-component path reports n+1.
	MatchLevel int

	// Position is this element's 0-based position among its siblings,
	// populated for array elements so a caller can work out comma
	// placement without rescanning the parent. The full sibling count
	// is deliberately not carried here — CountSiblings re-scans just the
	// parent's own span on the rare occasions a caller needs it, which
	// is cheaper than every match paying for a count it usually won't use.
	Position int

	// ImmediateParentFound reports whether LocParent is valid even
	// though the full path did not match — a dict-add/array-append
	// caller needs exactly this to splice a new member into an
	// existing container.
	ImmediateParentFound bool

	// SFlags classifies a matched special scalar (number/bool/null).
	// NumVal/NumValid mirror its integer value so a numeric
	// increment/decrement can avoid rescanning the matched digits;
	// NumValid is false when the span did not parse as an int64 (too
	// many digits, or not an integer at all).
	SFlags   token.SpecialFlags
	NumVal   int64
	NumValid bool
}

// CountSiblings re-scans the direct children of the container at parent
// and returns how many there are.
func CountSiblings(doc []byte, parent Loc) int {
	return countChildren(doc, parent)
}
