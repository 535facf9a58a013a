package token

// State is one frame of the tokenizer's internal stack. It exposes exactly
// the structural fields spec.md §4.1 calls out: level, type, the begin/
// current byte offsets, the element count, and the special-scalar flags.
// It deliberately does NOT carry the match engine's scratch fields
// (match_result, ignore_callbacks) — spec.md §9 asks for those to live in
// a parallel stack owned by the engine instead, indexed by the same depth.
type State struct {
	Kind         Kind
	Level        int
	PosBegin     int
	PosCur       int
	NElem        int
	SpecialFlags SpecialFlags

	await              awaitState
	suppressed         bool // inherited: this state is inside an ignored subtree
	childrenSuppressed bool // set by the handler to prune this state's descendants
	litPos             int  // bytes of a true/false/null literal matched so far
}

// awaitState names what a frame needs to see next in order to make
// progress. Every push leaves its new frame in one of these; the frame
// stays on the stack (and its await field persists) across Feed calls,
// which is what makes the tokenizer resumable mid-token.
type awaitState int8

const (
	awaitValue awaitState = iota
	awaitKey
	awaitColon
	awaitCommaOrCloseArr
	awaitCommaOrCloseObj
	awaitStringBody
	awaitStringEscape
	awaitNumberIntDigits
	awaitNumberFracFirstDigit
	awaitNumberFracDigits
	awaitNumberExpSign
	awaitNumberExpFirstDigit
	awaitNumberExpDigits
	awaitLiteral
)
