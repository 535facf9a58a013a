package match

import (
	"bytes"

	"github.com/agentflare-ai/subdoc/token"
)

// UniqueScanResult classifies what a uniqueness scan found among an
// array's direct children.
type UniqueScanResult int

const (
	// UniqueNotFound means no child matched candidate, and every child
	// the scan saw was a primitive it could safely compare.
	UniqueNotFound UniqueScanResult = iota
	// UniqueFound means a byte-identical child already exists.
	UniqueFound
	// UniqueNonPrimitive means a direct child is itself a container
	// (object or array). Uniqueness against a container isn't a plain
	// byte comparison, so the scan stops rather than guess; the caller
	// must treat this as a type mismatch, not "not found".
	UniqueNonPrimitive
)

// UniqueCheck reports whether the array at parent already has a direct
// child byte-for-byte identical to candidate. array-add-unique uses this
// to decide whether an insert is needed at all, or whether a container
// sibling makes the question meaningless.
func UniqueCheck(doc []byte, parent Loc, candidate []byte) UniqueScanResult {
	sub := doc[parent.Begin:parent.End()]
	u := &uniquenessScanner{doc: sub, candidate: candidate}
	tok := token.New(u)
	_ = tok.Feed(sub)
	_ = tok.Finish()
	if u.nonPrimitive {
		return UniqueNonPrimitive
	}
	if u.found {
		return UniqueFound
	}
	return UniqueNotFound
}

// uniquenessScanner walks exactly one level deep into the array handed
// to it and compares each child's raw span against candidate, without
// ever descending into a child's own contents — two values are
// considered equal only if their serialized bytes match exactly.
type uniquenessScanner struct {
	doc          []byte
	candidate    []byte
	found        bool
	nonPrimitive bool
}

func (u *uniquenessScanner) OnEvent(t *token.Tokenizer, action token.Action, st *token.State, at int) error {
	if action == token.ActionPush && st.Level == 2 {
		if st.Kind.IsContainer() {
			u.nonPrimitive = true
			t.Stop()
			return nil
		}
		t.Suppress()
		return nil
	}
	if action != token.ActionPop {
		return nil
	}
	switch st.Level {
	case 2:
		if bytes.Equal(spanBytes(u.doc, st, at), u.candidate) {
			u.found = true
			t.Stop()
		}
	case 1:
		t.Stop()
	}
	return nil
}

func spanBytes(doc []byte, st *token.State, at int) []byte {
	end := at
	if st.Kind != token.KindSpecial {
		end = at + 1
	}
	return doc[st.PosBegin:end]
}
