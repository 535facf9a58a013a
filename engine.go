package subdoc

import (
	"encoding/json"
	"fmt"

	"github.com/agentflare-ai/subdoc/match"
	"github.com/agentflare-ai/subdoc/path"
	"github.com/agentflare-ai/subdoc/token"
	"github.com/agentflare-ai/subdoc/validate"
)

// locate parses selector and runs the appropriate match engine against doc,
// routing paths with a negative/last-child component through the slower
// two-phase resolver.
func locate(doc []byte, selector string) (match.Match, path.Path, Status, error) {
	p, err := path.Parse(selector)
	if err != nil {
		return match.Match{}, path.Path{}, PathMismatch, err
	}
	var m match.Match
	if p.HasNegative {
		m, err = match.ExecNegIndex(p, doc)
	} else {
		m, err = match.NewEngine(p, doc).Exec()
	}
	if err != nil {
		return match.Match{}, p, DocNotJSON, err
	}
	return m, p, Success, nil
}

// completeOrStatus maps a non-Complete match.Result onto the Status an
// operation that requires an existing value should report.
func completeOrStatus(m match.Match) Status {
	switch m.Result {
	case match.Complete:
		return Success
	case match.TypeMismatch:
		return PathMismatch
	default:
		return PathNotFound
	}
}

// Get returns the byte span of the value selector names.
func Get(doc []byte, selector string) (Loc, Status, error) {
	m, _, st, err := locate(doc, selector)
	if st != Success {
		return Loc{}, st, err
	}
	if st = completeOrStatus(m); st != Success {
		return Loc{}, st, nil
	}
	return fromMatch(m.LocMatch), Success, nil
}

// Exists reports whether selector names a value present in doc.
func Exists(doc []byte, selector string) (bool, Status, error) {
	m, _, st, err := locate(doc, selector)
	if st != Success {
		return false, st, err
	}
	return m.Result == match.Complete, Success, nil
}

// Replace overwrites the value selector names with value, leaving the
// surrounding document untouched.
func Replace(doc []byte, selector string, value []byte) ([]byte, Status, error) {
	if st, err := checkValue(value, validate.FramingNone); st != Success {
		return nil, st, err
	}
	m, _, st, err := locate(doc, selector)
	if st != Success {
		return nil, st, err
	}
	if st = completeOrStatus(m); st != Success {
		return nil, st, nil
	}
	return splice(doc, m.LocMatch.Begin, m.LocMatch.Length, value), Success, nil
}

// Delete removes the value selector names, along with the key that led to
// it (if it was an object member) and whichever adjacent comma keeps the
// surrounding container syntactically valid.
func Delete(doc []byte, selector string) ([]byte, Status, error) {
	m, _, st, err := locate(doc, selector)
	if st != Success {
		return nil, st, err
	}
	if st = completeOrStatus(m); st != Success {
		return nil, st, nil
	}
	begin := m.LocMatch.Begin
	if m.HasKey {
		begin = m.LocKey.Begin
	}
	end := m.LocMatch.End()
	begin, end = extendOverComma(doc, begin, end)
	return splice(doc, begin, end-begin, nil), Success, nil
}

// DictUpsert inserts value as a new member of the object selector's last
// component names, or overwrites it if it already exists. When createParents
// is set and intermediate objects named by selector are missing, they are
// synthesized; the chain of missing components must be ObjectKey-only —
// a missing ArrayIndex component along the way returns ValueCantInsert.
func DictUpsert(doc []byte, selector string, value []byte, createParents bool) ([]byte, Status, error) {
	if st, err := checkValue(value, validate.FramingDict); st != Success {
		return nil, st, err
	}
	m, p, st, err := locate(doc, selector)
	if st != Success {
		return nil, st, err
	}

	if m.Result == match.Complete {
		return splice(doc, m.LocMatch.Begin, m.LocMatch.Length, value), Success, nil
	}
	if m.Result != match.NoMatch || !m.ImmediateParentFound {
		return nil, PathMismatch, nil
	}

	missing := p.Components[m.MatchLevel-1:]
	if len(missing) == 0 {
		return nil, PathMismatch, nil
	}
	if len(missing) > 1 && !createParents {
		return nil, PathNotFound, nil
	}
	for _, c := range missing {
		if c.Kind != path.ObjectKey {
			return nil, ValueCantInsert, nil
		}
	}

	nested := value
	for i := len(missing) - 1; i >= 1; i-- {
		nested = []byte(fmt.Sprintf("{%s:%s}", quoteKey(missing[i].Key), nested))
	}
	member := []byte(fmt.Sprintf("%s:%s", quoteKey(missing[0].Key), nested))
	return insertAtClose(doc, fromMatch(m.LocParent), '{', member), Success, nil
}

// ArrayAppend inserts value as the new last element of the array selector
// names.
func ArrayAppend(doc []byte, selector string, value []byte) ([]byte, Status, error) {
	parent, st, err := locateArray(doc, selector, value)
	if st != Success {
		return nil, st, err
	}
	return insertAtClose(doc, parent, '[', value), Success, nil
}

// ArrayPrepend inserts value as the new first element of the array selector
// names.
func ArrayPrepend(doc []byte, selector string, value []byte) ([]byte, Status, error) {
	parent, st, err := locateArray(doc, selector, value)
	if st != Success {
		return nil, st, err
	}
	return insertAtOpen(doc, parent, value), Success, nil
}

// ArrayAddUnique appends value to the array selector names unless a
// byte-identical element is already present.
func ArrayAddUnique(doc []byte, selector string, value []byte) ([]byte, Status, error) {
	parent, st, err := locateArray(doc, selector, value)
	if st != Success {
		return nil, st, err
	}
	switch match.UniqueCheck(doc, match.Loc{Begin: parent.Begin, Length: parent.Length}, value) {
	case match.UniqueFound:
		return doc, DocExists, nil
	case match.UniqueNonPrimitive:
		return nil, PathMismatch, nil
	}
	return insertAtClose(doc, parent, '[', value), Success, nil
}

func locateArray(doc []byte, selector string, value []byte) (Loc, Status, error) {
	if st, err := checkValue(value, validate.FramingArray); st != Success {
		return Loc{}, st, err
	}
	m, _, st, err := locate(doc, selector)
	if st != Success {
		return Loc{}, st, err
	}
	if st = completeOrStatus(m); st != Success {
		return Loc{}, st, nil
	}
	if m.Type != token.KindList {
		return Loc{}, PathMismatch, nil
	}
	return fromMatch(m.LocMatch), Success, nil
}

func checkValue(value []byte, framing validate.Framing) (Status, error) {
	res, err := validate.Validate(value, framing, validate.SingleValue)
	if err != nil {
		return ValueNotJSON, err
	}
	if res != validate.Success {
		return ValueNotJSON, nil
	}
	return Success, nil
}

func quoteKey(key string) string {
	b, _ := json.Marshal(key)
	return string(b)
}

// splice returns doc with the length bytes starting at begin replaced by
// insert.
func splice(doc []byte, begin, length int, insert []byte) []byte {
	out := make([]byte, 0, len(doc)-length+len(insert))
	out = append(out, doc[:begin]...)
	out = append(out, insert...)
	out = append(out, doc[begin+length:]...)
	return out
}

// insertAtClose adds member just before parent's closing delimiter,
// prefixed with a comma unless parent is currently empty.
func insertAtClose(doc []byte, parent Loc, open byte, member []byte) []byte {
	closeIdx := parent.End() - 1
	i := prevNonSpace(doc, closeIdx-1)
	insert := member
	if i >= 0 && doc[i] != open {
		insert = append([]byte{','}, insert...)
	}
	return splice(doc, closeIdx, 0, insert)
}

// insertAtOpen adds member just after parent's opening delimiter, followed
// by a comma unless parent is currently empty.
func insertAtOpen(doc []byte, parent Loc, member []byte) []byte {
	openIdx := parent.Begin + 1
	i := nextNonSpace(doc, openIdx)
	insert := member
	if i < parent.End()-1 {
		insert = append(append([]byte{}, insert...), ',')
	}
	return splice(doc, openIdx, 0, insert)
}

// extendOverComma widens [begin,end) to also swallow an adjacent comma: the
// one immediately before begin if there is one, otherwise the one
// immediately after end.
func extendOverComma(doc []byte, begin, end int) (int, int) {
	if i := prevNonSpace(doc, begin-1); i >= 0 && doc[i] == ',' {
		return i, end
	}
	if i := nextNonSpace(doc, end); i < len(doc) && doc[i] == ',' {
		return begin, i + 1
	}
	return begin, end
}

func prevNonSpace(doc []byte, i int) int {
	for i >= 0 && isSpace(doc[i]) {
		i--
	}
	return i
}

func nextNonSpace(doc []byte, i int) int {
	for i < len(doc) && isSpace(doc[i]) {
		i++
	}
	return i
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r':
		return true
	default:
		return false
	}
}
