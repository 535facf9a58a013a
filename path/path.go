// Package path models the component sequence the match engine walks
// against a document: a root marker followed by a chain of object keys
// and array indices. Turning wire syntax ("a.b[3].c", "/a/b/3/c", ...)
// into this model is handled by parse.go; this file only describes the
// model itself.
package path

import "fmt"

// Kind identifies what a Component selects.
type Kind int8

const (
	// Root identifies the zero-length path: the whole document.
	Root Kind = iota
	// ObjectKey selects a named member of an object.
	ObjectKey
	// ArrayIndex selects a positional element of an array. A negative
	// Index counts from the end (-1 is the last element); LastChild is
	// a separate marker for the common case of "the last element" so
	// the engine can special-case it without arithmetic.
	ArrayIndex
	// LastChild selects the last element of an array ("-1" or the
	// JSON-Pointer "-" convention, depending on the syntax parsed).
	LastChild
)

func (k Kind) String() string {
	switch k {
	case Root:
		return "root"
	case ObjectKey:
		return "key"
	case ArrayIndex:
		return "index"
	case LastChild:
		return "last"
	default:
		return "unknown"
	}
}

// Component is one segment of a Path.
type Component struct {
	Kind  Kind
	Key   string // set when Kind == ObjectKey
	Index int    // set when Kind == ArrayIndex; may be negative
}

// Path is the parsed form of a sub-document selector: a Root component
// followed by zero or more ObjectKey/ArrayIndex/LastChild components.
type Path struct {
	Components  []Component
	HasNegative bool // true if any component is LastChild or a negative ArrayIndex
}

// NumComponents reports the total component count, root included, the
// same count spec.md's match engine compares against loc_key/level math.
func (p Path) NumComponents() int { return len(p.Components) + 1 }

// At returns the component at i, where 0 is the synthetic root.
func (p Path) At(i int) Component {
	if i == 0 {
		return Component{Kind: Root}
	}
	return p.Components[i-1]
}

// String renders the path in dotted/bracket form, e.g. "a.b[3].c" or
// "a.b[-1]". It exists for diagnostics, not as a canonical wire format.
func (p Path) String() string {
	if len(p.Components) == 0 {
		return ""
	}
	s := ""
	for _, c := range p.Components {
		switch c.Kind {
		case ObjectKey:
			if s != "" {
				s += "."
			}
			s += c.Key
		case ArrayIndex:
			s += fmt.Sprintf("[%d]", c.Index)
		case LastChild:
			s += "[-1]"
		}
	}
	return s
}
