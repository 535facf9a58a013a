package match

import (
	"github.com/agentflare-ai/subdoc/path"
	"github.com/agentflare-ai/subdoc/token"
)

// ExecNegIndex resolves a path that names an array position counted from
// the end — a negative ArrayIndex or the LastChild marker — before
// handing off to the ordinary single-pass Engine.
//
// match.cc resolves this with a windowed multi-pass scan that revisits
// only the bytes around each LastChildMarker boundary. This port instead
// runs a small counting pass over just the relevant array's own span (a
// single cheap re-tokenization, not a rescan of the whole document) to
// convert each negative/last component into a concrete non-negative
// index, left to right, then matches the fully-resolved path once. The
// observable result is identical; only the internal bookkeeping differs.
func ExecNegIndex(p path.Path, doc []byte) (Match, error) {
	resolved, err := resolveNegativeIndices(p, doc)
	if err != nil {
		return Match{}, err
	}
	return NewEngine(resolved, doc).Exec()
}

func resolveNegativeIndices(p path.Path, doc []byte) (path.Path, error) {
	resolved := path.Path{Components: append([]path.Component(nil), p.Components...)}

	for i, c := range p.Components {
		if c.Kind != path.LastChild && !(c.Kind == path.ArrayIndex && c.Index < 0) {
			continue
		}

		prefix := path.Path{Components: resolved.Components[:i]}
		arrMatch, err := NewEngine(prefix, doc).Exec()
		if err != nil {
			return path.Path{}, err
		}
		if arrMatch.Result != Complete {
			// The parent array itself cannot be located; leave this
			// component as-is and let the full match below surface
			// whatever NoMatch/TypeMismatch the prefix already implies.
			return resolved, nil
		}

		count := countChildren(doc, arrMatch.LocMatch)
		switch c.Kind {
		case path.LastChild:
			resolved.Components[i] = path.Component{Kind: path.ArrayIndex, Index: count - 1}
		case path.ArrayIndex:
			resolved.Components[i] = path.Component{Kind: path.ArrayIndex, Index: count + c.Index}
		}
	}
	return resolved, nil
}

// childCounter counts the direct children of whatever single container
// or scalar is fed to it, by watching level-2 pops (level 1 is the
// counted value's own synthetic-root-relative wrapper).
type childCounter struct{ n int }

func (c *childCounter) OnEvent(t *token.Tokenizer, action token.Action, st *token.State, at int) error {
	if action == token.ActionPop {
		switch st.Level {
		case 2:
			// An object member's key is not a child of its own.
			if st.Kind != token.KindHashKey {
				c.n++
			}
		case 1:
			t.Stop()
		}
	}
	return nil
}

func countChildren(doc []byte, loc Loc) int {
	sub := doc[loc.Begin:loc.End()]
	c := &childCounter{}
	tok := token.New(c)
	_ = tok.Feed(sub)
	_ = tok.Finish()
	return c.n
}
