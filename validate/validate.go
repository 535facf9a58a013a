// Package validate checks whether a candidate value is well-formed JSON
// — optionally as it would sit inside a mutation's surrounding syntax —
// without ever building a tree for it.
package validate

import (
	"fmt"

	"github.com/agentflare-ai/subdoc/token"
)

// Framing describes the synthetic wrapper a candidate value would be
// spliced into, so validation can catch a value that is only valid in
// isolation but would break the document it is destined for (e.g. a bare
// top-level comma).
type Framing int8

const (
	// FramingNone validates value exactly as given: it must itself be a
	// complete, standalone JSON document.
	FramingNone Framing = iota
	// FramingArray validates value as if spliced between "[" and "]" —
	// the shape a new array element takes.
	FramingArray
	// FramingDict validates value as if spliced after a synthetic
	// `{"k":` and before "}" — the shape a new object member's value
	// takes.
	FramingDict
)

// Flags tune what counts as acceptable.
type Flags uint8

const (
	// PrimitiveOnly rejects a value that is itself an object or array;
	// only scalars pass.
	PrimitiveOnly Flags = 1 << iota
	// SingleValue rejects trailing content after the first complete
	// value (e.g. "1 2" or "{}{}"). Without it, further complete values
	// after the first are tolerated; trailing bytes that are not JSON
	// values are a tokenizer error either way.
	SingleValue
)

// Result classifies the outcome.
type Result int8

const (
	Success Result = iota
	Partial
	MultipleElements
	NotPrimitive
)

func (r Result) String() string {
	switch r {
	case Success:
		return "success"
	case Partial:
		return "partial"
	case MultipleElements:
		return "multiple_elements"
	case NotPrimitive:
		return "not_primitive"
	default:
		return "unknown"
	}
}

// Validate checks value under the given framing and flags.
func Validate(value []byte, framing Framing, flags Flags) (Result, error) {
	var pre, post []byte
	candidateLevel := 1
	switch framing {
	case FramingArray:
		pre, post = []byte("["), []byte("]")
		candidateLevel = 2
	case FramingDict:
		pre, post = []byte(`{"k":`), []byte("}")
		candidateLevel = 2
	}

	v := &validator{flags: flags, candidateLevel: candidateLevel, framing: framing}
	tok := token.New(v)

	if len(pre) > 0 {
		if err := tok.Feed(pre); err != nil {
			return 0, fmt.Errorf("validate: internal framing prefix: %w", err)
		}
	}
	if err := tok.Feed(value); err != nil {
		return 0, fmt.Errorf("validate: %w", err)
	}
	if len(post) > 0 {
		if err := tok.Feed(post); err != nil {
			return 0, fmt.Errorf("validate: %w", err)
		}
	}
	if err := tok.Finish(); err != nil {
		return 0, fmt.Errorf("validate: %w", err)
	}

	switch {
	case v.level1Events < 2:
		return Partial, nil
	case flags&SingleValue != 0 && framing == FramingNone && v.level1Events > 2:
		return MultipleElements, nil
	case flags&SingleValue != 0 && framing == FramingArray && v.wrapperNElem > 1:
		return MultipleElements, nil
	case flags&SingleValue != 0 && framing == FramingDict && v.wrapperNElem > 2:
		return MultipleElements, nil
	case v.notPrimitive:
		return NotPrimitive, nil
	default:
		return Success, nil
	}
}

// validator counts push+pop traffic at the wrapper level (1) to decide
// completeness, and inspects the candidate's own push to decide
// primitiveness — exactly the two structural questions Framing/Flags
// exist to answer, with no need to retain anything else the tokenizer
// reports. When the candidate sits inside a synthetic wrapper
// (FramingArray/FramingDict), SingleValue instead has to look at the
// wrapper container's own element count — a comma-separated "1,2"
// candidate never produces more than one level-1 push/pop, since the
// commas are consumed as sibling elements of the wrapper, not as
// separate top-level documents.
type validator struct {
	flags          Flags
	candidateLevel int
	framing        Framing

	level1Events int
	wrapperNElem int
	notPrimitive bool
}

func (v *validator) OnEvent(t *token.Tokenizer, action token.Action, st *token.State, at int) error {
	if st.Level == 1 {
		v.level1Events++
		if action == token.ActionPop && v.framing != FramingNone {
			v.wrapperNElem = st.NElem
		}
	}
	if action == token.ActionPush && st.Level == v.candidateLevel && v.flags&PrimitiveOnly != 0 {
		if st.Kind == token.KindObject || st.Kind == token.KindList {
			v.notPrimitive = true
		}
	}
	return nil
}
