package path

import (
	"fmt"
	"strconv"
	"strings"

	jsonpointer "github.com/agentflare-ai/go-jsonpointer"
)

// Parse turns a dotted/bracket selector ("a.b[3].c", "a.b[-1]") or a
// plain RFC 6901 pointer ("/a/b/3/c") into a Path. Token splitting and
// escape handling are delegated to go-jsonpointer; this function only
// adapts the dotted syntax to pointer syntax beforehand and classifies
// each resulting token as an object key, an array index, or the last-
// child marker.
func Parse(selector string) (Path, error) {
	ptr := selector
	if !strings.HasPrefix(ptr, "/") {
		ptr = toPointer(selector)
	}

	tokens, err := jsonpointer.New(ptr)
	if err != nil {
		return Path{}, fmt.Errorf("path: parsing %q: %w", selector, err)
	}

	p := Path{Components: make([]Component, 0, len(tokens))}
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		c, err := classify(tok)
		if err != nil {
			return Path{}, fmt.Errorf("path: parsing %q: %w", selector, err)
		}
		if c.Kind == LastChild || (c.Kind == ArrayIndex && c.Index < 0) {
			p.HasNegative = true
		}
		p.Components = append(p.Components, c)
	}
	return p, nil
}

func classify(tok string) (Component, error) {
	if tok == "-" {
		return Component{Kind: LastChild}, nil
	}
	// Non-negative indices are RFC 6901 array indices proper; delegate
	// their digit scan to go-jsonpointer so this package never
	// reimplements pointer-token parsing itself.
	if n, ok := parseArrayIndex(tok); ok {
		return Component{Kind: ArrayIndex, Index: n}, nil
	}
	// Negative indices ("-2") are not part of RFC 6901 — they are this
	// package's own dotted/bracket extension for "counted from the end"
	// — so they are parsed directly rather than through go-jsonpointer.
	if n, ok := parseNegativeIndex(tok); ok {
		if n == -1 {
			return Component{Kind: LastChild}, nil
		}
		return Component{Kind: ArrayIndex, Index: n}, nil
	}
	return Component{Kind: ObjectKey, Key: tok}, nil
}

func parseArrayIndex(tok string) (int, bool) {
	n, err := jsonpointer.ParseArrayIndex(tok)
	if err != nil {
		return 0, false
	}
	return n, true
}

func parseNegativeIndex(tok string) (int, bool) {
	if len(tok) < 2 || tok[0] != '-' {
		return 0, false
	}
	for i := 1; i < len(tok); i++ {
		if tok[i] < '0' || tok[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, false
	}
	return n, true
}

// toPointer rewrites "a.b[3].c" / "a.b[-1]" into the RFC 6901 form
// go-jsonpointer expects ("/a/b/3/c" / "/a/b/-1"). It does not attempt to
// handle '~' or '/' inside a dotted key; callers with such keys should
// pass an RFC 6901 pointer directly instead.
func toPointer(selector string) string {
	if selector == "" {
		return ""
	}
	var b strings.Builder
	for i := 0; i < len(selector); i++ {
		switch selector[i] {
		case '.':
			b.WriteByte('/')
		case '[':
			b.WriteByte('/')
		case ']':
			// dropped; the closing bracket carries no token of its own
		default:
			b.WriteByte(selector[i])
		}
	}
	return "/" + b.String()
}
