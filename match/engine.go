package match

import (
	"strconv"

	"github.com/agentflare-ai/subdoc/path"
	"github.com/agentflare-ai/subdoc/token"
)

// Engine drives a token.Tokenizer to locate the byte span a path.Path
// names, without ever building a tree. Construct one with NewEngine per
// match attempt; it is single-use.
type Engine struct {
	p   path.Path
	doc []byte
	n   int // len(p.Components)

	matched int // tokenizer level of the deepest confirmed-on-path node

	awaitingValueForKey bool // object frontier: a key just matched, the next sibling is its value
	nextArrayIndex      int  // array frontier: 0-based index the next child push will occupy

	pendingKeyLoc Loc
	pendingHasKey bool

	haveOutcome bool // true once Complete or TypeMismatch has been decided structurally
	outcome     Result

	result Match
	done   bool
}

// NewEngine prepares an Engine to match p against doc. p must not carry a
// negative ArrayIndex or LastChild component; those are routed through
// ExecNegIndex instead, since resolving "from the end" needs the
// multi-pass algorithm in negindex.go.
func NewEngine(p path.Path, doc []byte) *Engine {
	return &Engine{p: p, doc: doc, n: len(p.Components)}
}

// Exec runs the engine once over the document and returns the outcome.
func (e *Engine) Exec() (Match, error) {
	tok := token.New(e)
	if err := tok.Feed(e.doc); err != nil && !e.done {
		return Match{}, err
	}
	if err := tok.Finish(); err != nil && !e.done {
		return Match{}, err
	}
	if !e.done {
		// Every push this engine receives either extends, rejects, or
		// completes the match; reaching end of input with nothing
		// decided means the buffer ended before the spine's own
		// container closed. Report it as an unresolved ancestor rather
		// than a hard error, so a caller holding a truncated document
		// can read this outcome directly.
		e.result.Result = PossibleAncestor
		e.result.MatchLevel = e.matched
	}
	return e.result, nil
}

// OnEvent implements token.Handler.
func (e *Engine) OnEvent(t *token.Tokenizer, action token.Action, st *token.State, at int) error {
	if action == token.ActionPush {
		e.onPush(t, st, at)
	} else {
		e.onPop(t, st, at)
	}
	if e.done {
		t.Stop()
	}
	return nil
}

func (e *Engine) onPush(t *token.Tokenizer, st *token.State, at int) {
	level := st.Level

	if level == 1 {
		// The top-level document value always satisfies the implicit
		// root; there is nothing to compare it against.
		e.matched = 1
		e.nextArrayIndex = 0
		e.awaitingValueForKey = false
		e.afterAdvance(t, st)
		return
	}

	if level != e.matched+1 {
		return
	}

	if st.Kind == token.KindHashKey {
		// Decided at pop, once the key's bytes are available.
		return
	}

	e.considerChild(t, st)
}

func (e *Engine) onPop(t *token.Tokenizer, st *token.State, at int) {
	level := st.Level

	if st.Kind == token.KindHashKey && level == e.matched+1 {
		e.handleKeyPop(st, at)
		return
	}

	if level == e.matched+1 {
		// A rejected sibling's own pop: advance the array position
		// counter so the next child compares against the right index.
		e.nextArrayIndex++
		return
	}

	if level == e.matched && !e.done {
		if e.haveOutcome {
			e.result.Result = e.outcome
			e.result.LocMatch = span(st, at)
			if e.outcome == Complete && e.result.Type == token.KindSpecial && e.result.SFlags.IsInteger() {
				if v, err := strconv.ParseInt(string(e.doc[e.result.LocMatch.Begin:e.result.LocMatch.End()]), 10, 64); err == nil {
					e.result.NumVal = v
					e.result.NumValid = true
				}
			}
			e.done = true
			return
		}
		// The spine's current frontier container closed without the
		// remaining path ever matching a child: it simply is not there.
		e.result.Result = NoMatch
		e.result.MatchLevel = e.matched
		e.result.ImmediateParentFound = true
		e.result.LocParent = span(st, at)
		e.done = true
	}
}

func (e *Engine) handleKeyPop(st *token.State, at int) {
	if e.matched-1 < 0 || e.matched-1 >= e.n {
		return
	}
	want := e.p.Components[e.matched-1]
	contentBegin := st.PosBegin + 1
	contentEnd := at
	if want.Kind == path.ObjectKey && contentEnd-contentBegin == len(want.Key) &&
		string(e.doc[contentBegin:contentEnd]) == want.Key {
		e.awaitingValueForKey = true
		e.pendingKeyLoc = span(st, at)
		e.pendingHasKey = true
	}
}

// considerChild decides whether the pushed child at level matched+1 is
// the next step on the path. If it is, the engine commits to it as the
// new frontier; if not, its descendants are pruned (its own pop still
// fires, for sibling bookkeeping) and the scan moves to its sibling.
func (e *Engine) considerChild(t *token.Tokenizer, st *token.State) {
	want := e.p.Components[e.matched-1]
	isMatch := false

	switch want.Kind {
	case path.ObjectKey:
		isMatch = e.awaitingValueForKey
	case path.ArrayIndex:
		isMatch = want.Index >= 0 && e.nextArrayIndex == want.Index
	case path.LastChild:
		// Resolving "last" needs the whole sibling run known in
		// advance; ExecNegIndex handles this path shape, not this
		// single forward pass.
	}

	wasAwaitingKey := e.awaitingValueForKey
	e.awaitingValueForKey = false

	if !isMatch {
		t.Suppress()
		return
	}

	if want.Kind == path.ArrayIndex {
		e.result.Position = e.nextArrayIndex
	}
	if wasAwaitingKey && e.pendingHasKey {
		e.result.LocKey = e.pendingKeyLoc
		e.result.HasKey = true
	}

	e.matched = st.Level
	e.afterAdvance(t, st)
}

// afterAdvance runs once a node is confirmed as the new frontier. If the
// path is now fully resolved it arms completion; otherwise it checks the
// frontier's own kind against the next required component and arms a
// type mismatch if they are structurally incompatible.
func (e *Engine) afterAdvance(t *token.Tokenizer, st *token.State) {
	if e.matched == e.n+1 {
		t.Suppress()
		e.result.Type = st.Kind
		e.result.SFlags = st.SpecialFlags
		e.result.MatchLevel = e.matched
		e.haveOutcome = true
		e.outcome = Complete
		return
	}

	want := e.p.Components[e.matched-1]
	mismatch := false
	switch {
	case st.Kind == token.KindString || st.Kind == token.KindSpecial:
		mismatch = true
	case st.Kind == token.KindObject && want.Kind != path.ObjectKey:
		mismatch = true
	case st.Kind == token.KindList && want.Kind == path.ObjectKey:
		mismatch = true
	}

	if mismatch {
		t.Suppress()
		e.result.MatchLevel = e.matched
		e.haveOutcome = true
		e.outcome = TypeMismatch
		return
	}

	e.nextArrayIndex = 0
	e.awaitingValueForKey = false
	e.pendingHasKey = false
}

func span(st *token.State, at int) Loc {
	if st.Kind == token.KindSpecial {
		return Loc{Begin: st.PosBegin, Length: at - st.PosBegin}
	}
	return Loc{Begin: st.PosBegin, Length: at - st.PosBegin + 1}
}
