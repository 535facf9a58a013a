// Package token implements a single-pass, event-driven JSON tokenizer.
//
// It never builds a tree. It walks a byte buffer exactly once, maintaining
// a stack of open containers/tokens, and fires push/pop events at a
// Handler as each token starts and completes. Offsets in every event are
// absolute byte positions into the concatenation of everything ever
// passed to Feed, which lets a caller locate a byte span without
// re-scanning anything.
//
// The tokenizer is restartable: Reset clears it for reuse, avoiding
// allocation on a hot path that parses many documents back to back. It is
// also resumable mid-token across Feed calls — a half-fed number, string,
// or literal simply waits on the stack until more bytes, or Finish,
// arrive.
package token

import "fmt"

// maxDepth bounds the state stack. Real documents never come close; this
// exists so a pathological or adversarial buffer (run-away nesting) fails
// fast instead of growing the stack without limit.
const maxDepth = 2048

// Tokenizer is the streaming JSON scanner described in the package doc.
// The zero value is not usable; construct one with New.
type Tokenizer struct {
	stack   []State
	depth   int // index of the top frame; -1 when nothing has been pushed
	started bool
	stopped bool
	status  error

	basePos          int // cumulative bytes consumed across prior Feed calls
	maxCallbackLevel int

	handler Handler
}

// New constructs a Tokenizer that reports events to h. h may be nil, in
// which case Feed still validates structure but never dispatches.
func New(h Handler) *Tokenizer {
	t := &Tokenizer{handler: h}
	t.Reset()
	return t
}

// Reset discards all state and prepares the tokenizer to parse a fresh
// document. The underlying stack storage is kept, so repeated
// Reset/Feed cycles do not reallocate.
func (t *Tokenizer) Reset() {
	if t.stack == nil {
		t.stack = make([]State, 0, 64)
	}
	t.stack = t.stack[:0]
	t.depth = -1
	t.started = false
	t.stopped = false
	t.status = nil
	t.basePos = 0
	t.maxCallbackLevel = 1<<31 - 1
}

// SetHandler replaces the event sink.
func (t *Tokenizer) SetHandler(h Handler) { t.handler = h }

// SetMaxCallbackLevel caps how deep push/pop events are dispatched. Frames
// at a level beyond it are still tracked structurally (so closing
// brackets still balance correctly) but never reach the handler. This is
// how a caller prunes callback traffic for subtrees it has already
// decided cannot matter, without skipping the bytes.
func (t *Tokenizer) SetMaxCallbackLevel(level int) { t.maxCallbackLevel = level }

// Suppress marks the current top frame's descendants as not worth
// dispatching. The frame's own pop still fires; only pushes/pops strictly
// below it are skipped. A Handler calls this from within OnEvent while
// handling that frame's push.
func (t *Tokenizer) Suppress() {
	if t.depth >= 0 {
		t.stack[t.depth].childrenSuppressed = true
	}
}

// Stop cancels the parse. Feed returns as soon as convenient (at the next
// byte boundary) and dispatches no further events. A Handler calls this
// once it has everything it needs and has no use for the rest of the
// document.
func (t *Tokenizer) Stop() { t.stopped = true }

// Status reports the error that halted the tokenizer, if any.
func (t *Tokenizer) Status() error { return t.status }

// Depth reports the current nesting level (0 once the document's root
// frame has been pushed, -1 before the first byte is fed).
func (t *Tokenizer) Depth() int {
	if t.depth < 0 {
		return -1
	}
	return t.stack[t.depth].Level
}

// Feed parses another chunk of input. It may be called repeatedly with
// successive slices of one logical document; a token that straddles a
// call boundary resumes correctly on the next call.
func (t *Tokenizer) Feed(buf []byte) error {
	if !t.started {
		t.pushRoot()
		t.started = true
	}
	i := 0
	n := len(buf)
	for i < n {
		if t.stopped {
			return t.status
		}
		consumed, err := t.step(buf, i)
		if err != nil {
			return err
		}
		i += consumed
	}
	t.basePos += n
	return t.status
}

// Finish tells the tokenizer no more bytes are coming. A number or
// true/false/null literal that was still being scanned completes here,
// since those tokens have no closing delimiter of their own and may
// legitimately end at end of input (a bare top-level "42" is a complete
// document). Containers, strings, and hash keys left open at Finish are
// not treated as hard errors — spec-level completeness is the caller's
// concern (see the document validator, which reads exactly this
// condition as "partial").
func (t *Tokenizer) Finish() error {
	if !t.started {
		return ErrNotStarted
	}
	if t.depth < 0 || t.stopped {
		return t.status
	}
	top := t.topPtr()
	switch top.await {
	case awaitNumberIntDigits:
		if top.NElem == 0 {
			return t.reject(t.basePos)
		}
		t.finishNumberAt(t.basePos)
	case awaitNumberFracDigits, awaitNumberExpDigits:
		t.finishNumberAt(t.basePos)
	case awaitNumberFracFirstDigit, awaitNumberExpFirstDigit, awaitNumberExpSign:
		return t.reject(t.basePos)
	case awaitLiteral:
		if !t.literalComplete(top) {
			return t.reject(t.basePos)
		}
		t.finishLiteralAt(t.basePos)
	}
	return t.status
}

func (t *Tokenizer) pushRoot() {
	st := State{Kind: KindUnknown, await: awaitValue}
	_ = t.push(st)
	t.fire(ActionPush, t.basePos)
}

// step consumes (or reprocesses) exactly one byte of buf[i:] and reports
// how many bytes were consumed. A return of 0 means the byte at i was not
// part of the frame that just finished and must be reprocessed against
// the new top frame.
func (t *Tokenizer) step(buf []byte, i int) (int, error) {
	b := buf[i]
	top := t.topPtr()
	switch top.await {
	case awaitValue:
		return t.stepAwaitValue(buf, i)
	case awaitKey:
		if isWhitespace(b) {
			return 1, nil
		}
		if b == '}' {
			return 1, t.popContainer(KindObject, t.abs(i))
		}
		if b == '"' {
			t.beginString(t.abs(i), true)
			return 1, nil
		}
		return 0, t.reject(t.abs(i))
	case awaitColon:
		if isWhitespace(b) {
			return 1, nil
		}
		if b != ':' {
			return 0, t.reject(t.abs(i))
		}
		top.await = awaitValue
		return 1, nil
	case awaitCommaOrCloseArr:
		if isWhitespace(b) {
			return 1, nil
		}
		if b == ',' {
			top.await = awaitValue
			return 1, nil
		}
		if b == ']' {
			return 1, t.popContainer(KindList, t.abs(i))
		}
		return 0, t.reject(t.abs(i))
	case awaitCommaOrCloseObj:
		if isWhitespace(b) {
			return 1, nil
		}
		if b == ',' {
			top.await = awaitKey
			return 1, nil
		}
		if b == '}' {
			return 1, t.popContainer(KindObject, t.abs(i))
		}
		return 0, t.reject(t.abs(i))
	case awaitStringBody:
		return t.stepStringBody(top, b, i)
	case awaitStringEscape:
		top.await = awaitStringBody
		return 1, nil
	case awaitNumberIntDigits, awaitNumberFracFirstDigit, awaitNumberFracDigits,
		awaitNumberExpSign, awaitNumberExpFirstDigit, awaitNumberExpDigits:
		return t.stepNumber(top, b, i)
	case awaitLiteral:
		return t.stepLiteral(top, b, i)
	}
	return 0, t.reject(t.abs(i))
}

func (t *Tokenizer) stepAwaitValue(buf []byte, i int) (int, error) {
	b := buf[i]
	if isWhitespace(b) {
		return 1, nil
	}
	switch {
	case b == '{':
		if err := t.pushContainer(KindObject, t.abs(i)); err != nil {
			return 0, err
		}
		return 1, nil
	case b == '[':
		if err := t.pushContainer(KindList, t.abs(i)); err != nil {
			return 0, err
		}
		return 1, nil
	case b == '"':
		t.beginString(t.abs(i), false)
		return 1, nil
	case b == '-' || isDigit(b):
		if err := t.beginNumber(t.abs(i), b); err != nil {
			return 0, err
		}
		return 1, nil
	case b == 't' || b == 'f' || b == 'n':
		if err := t.beginLiteral(t.abs(i), b); err != nil {
			return 0, err
		}
		return 1, nil
	case b == ']' && t.topPtr().Kind == KindList && t.topPtr().NElem == 0:
		// An empty array closes straight from its first awaitValue.
		return 1, t.popContainer(KindList, t.abs(i))
	default:
		return 0, t.reject(t.abs(i))
	}
}

func (t *Tokenizer) abs(i int) int { return t.basePos + i }

// --- containers ---

func (t *Tokenizer) pushContainer(kind Kind, at int) error {
	await := awaitValue
	if kind == KindObject {
		await = awaitKey
	}
	st := State{Kind: kind, PosBegin: at, PosCur: at, await: await, suppressed: t.childSuppressed()}
	if err := t.push(st); err != nil {
		return err
	}
	t.fire(ActionPush, at)
	return nil
}

func (t *Tokenizer) popContainer(kind Kind, at int) error {
	top := t.topPtr()
	if top.Kind != kind {
		return t.reject(at)
	}
	top.PosCur = at
	t.fire(ActionPop, at)
	t.pop()
	t.childCompleted(false)
	return nil
}

// --- strings & hash keys ---

func (t *Tokenizer) beginString(at int, isKey bool) {
	kind := KindString
	if isKey {
		kind = KindHashKey
	}
	st := State{Kind: kind, PosBegin: at, PosCur: at, await: awaitStringBody, suppressed: t.childSuppressed()}
	_ = t.push(st)
	t.fire(ActionPush, at)
}

func (t *Tokenizer) stepStringBody(top *State, b byte, i int) (int, error) {
	if b == '\\' {
		top.await = awaitStringEscape
		return 1, nil
	}
	if b == '"' {
		at := t.abs(i)
		top.PosCur = at
		t.fire(ActionPop, at)
		isKey := top.Kind == KindHashKey
		t.pop()
		t.childCompleted(isKey)
		return 1, nil
	}
	return 1, nil
}

// --- numbers ---

func (t *Tokenizer) beginNumber(at int, first byte) error {
	var flags SpecialFlags
	await := awaitNumberIntDigits
	if first == '-' {
		flags = SpecialSigned
	} else {
		flags = SpecialUnsigned
	}
	st := State{Kind: KindSpecial, PosBegin: at, PosCur: at, SpecialFlags: flags, await: await, suppressed: t.childSuppressed()}
	if first != '-' {
		st.NElem = 1
	}
	if err := t.push(st); err != nil {
		return err
	}
	t.fire(ActionPush, at)
	return nil
}

func (t *Tokenizer) stepNumber(top *State, b byte, i int) (int, error) {
	switch top.await {
	case awaitNumberIntDigits:
		if isDigit(b) {
			top.NElem++
			return 1, nil
		}
		if b == '.' {
			top.await = awaitNumberFracFirstDigit
			top.SpecialFlags |= SpecialFloat
			return 1, nil
		}
		if b == 'e' || b == 'E' {
			top.await = awaitNumberExpSign
			top.SpecialFlags |= SpecialExponent
			return 1, nil
		}
		if top.NElem == 0 {
			return 0, t.reject(t.abs(i))
		}
		t.finishNumberAt(t.abs(i))
		return 0, nil
	case awaitNumberFracFirstDigit, awaitNumberFracDigits:
		if isDigit(b) {
			top.NElem++
			top.await = awaitNumberFracDigits
			return 1, nil
		}
		if top.await == awaitNumberFracFirstDigit {
			return 0, t.reject(t.abs(i))
		}
		if b == 'e' || b == 'E' {
			top.await = awaitNumberExpSign
			top.SpecialFlags |= SpecialExponent
			return 1, nil
		}
		t.finishNumberAt(t.abs(i))
		return 0, nil
	case awaitNumberExpSign:
		if b == '+' || b == '-' {
			top.await = awaitNumberExpFirstDigit
			return 1, nil
		}
		if isDigit(b) {
			top.NElem++
			top.await = awaitNumberExpDigits
			return 1, nil
		}
		return 0, t.reject(t.abs(i))
	case awaitNumberExpFirstDigit, awaitNumberExpDigits:
		if isDigit(b) {
			top.NElem++
			top.await = awaitNumberExpDigits
			return 1, nil
		}
		if top.await == awaitNumberExpFirstDigit {
			return 0, t.reject(t.abs(i))
		}
		t.finishNumberAt(t.abs(i))
		return 0, nil
	}
	return 0, t.reject(t.abs(i))
}

func (t *Tokenizer) finishNumberAt(at int) {
	top := t.topPtr()
	top.PosCur = at
	t.fire(ActionPop, at)
	t.pop()
	t.childCompleted(false)
}

// --- literals: true / false / null ---

var literalBytes = map[byte]struct {
	text string
	flag SpecialFlags
}{
	't': {"true", SpecialTrue},
	'f': {"false", SpecialFalse},
	'n': {"null", SpecialNull},
}

func (t *Tokenizer) beginLiteral(at int, first byte) error {
	lit := literalBytes[first]
	st := State{Kind: KindSpecial, PosBegin: at, PosCur: at, SpecialFlags: lit.flag, await: awaitLiteral, litPos: 1, suppressed: t.childSuppressed()}
	if err := t.push(st); err != nil {
		return err
	}
	t.fire(ActionPush, at)
	return nil
}

func (t *Tokenizer) stepLiteral(top *State, b byte, i int) (int, error) {
	lit := literalBytes[literalFirstByte(top.SpecialFlags)]
	if top.litPos < len(lit.text) {
		if b != lit.text[top.litPos] {
			return 0, t.reject(t.abs(i))
		}
		top.litPos++
		return 1, nil
	}
	t.finishLiteralAt(t.abs(i))
	return 0, nil
}

func literalFirstByte(flags SpecialFlags) byte {
	switch {
	case flags&SpecialTrue != 0:
		return 't'
	case flags&SpecialFalse != 0:
		return 'f'
	default:
		return 'n'
	}
}

func (t *Tokenizer) literalComplete(st *State) bool {
	return st.litPos == len(literalBytes[literalFirstByte(st.SpecialFlags)].text)
}

func (t *Tokenizer) finishLiteralAt(at int) {
	top := t.topPtr()
	top.PosCur = at
	t.fire(ActionPop, at)
	t.pop()
	t.childCompleted(false)
}

// --- stack plumbing ---

func (t *Tokenizer) childSuppressed() bool {
	if t.depth < 0 {
		return false
	}
	top := &t.stack[t.depth]
	return top.suppressed || top.childrenSuppressed
}

func (t *Tokenizer) childCompleted(wasKey bool) {
	if t.depth < 0 {
		return
	}
	top := &t.stack[t.depth]
	top.NElem++
	switch top.Kind {
	case KindObject:
		if wasKey {
			top.await = awaitColon
		} else {
			top.await = awaitCommaOrCloseObj
		}
	case KindList:
		top.await = awaitCommaOrCloseArr
	default:
		top.await = awaitValue
	}
}

func (t *Tokenizer) push(st State) error {
	if t.depth+1 >= maxDepth {
		err := fmt.Errorf("%w: exceeded %d levels", ErrMaxDepth, maxDepth)
		t.status = err
		t.stopped = true
		return err
	}
	st.Level = t.depth + 1
	t.stack = append(t.stack, st)
	t.depth++
	return nil
}

func (t *Tokenizer) pop() {
	t.stack = t.stack[:t.depth]
	t.depth--
}

func (t *Tokenizer) topPtr() *State { return &t.stack[t.depth] }

func (t *Tokenizer) fire(action Action, at int) {
	st := t.topPtr()
	if st.suppressed || st.Level > t.maxCallbackLevel || t.handler == nil {
		return
	}
	if err := t.handler.OnEvent(t, action, st, at); err != nil {
		t.status = err
		t.stopped = true
	}
}

func (t *Tokenizer) reject(at int) error {
	err := fmt.Errorf("%w: at offset %d", ErrMalformed, at)
	t.status = err
	t.stopped = true
	return err
}
