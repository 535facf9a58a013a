package token

// Kind identifies the structural category of a token pushed onto the
// tokenizer's state stack. It mirrors the six node kinds spec.md assigns
// to the streaming tokenizer.
type Kind int8

const (
	KindUnknown Kind = iota
	KindObject
	KindList
	KindHashKey
	KindString
	KindSpecial
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindList:
		return "list"
	case KindHashKey:
		return "hashkey"
	case KindString:
		return "string"
	case KindSpecial:
		return "special"
	default:
		return "unknown"
	}
}

// IsContainer reports whether k is an object or a list.
func (k Kind) IsContainer() bool {
	return k == KindObject || k == KindList
}

// SpecialFlags classifies a matched "special" scalar (a JSON value that is
// not a string: number, boolean, or null) without re-scanning its bytes.
type SpecialFlags uint16

const (
	SpecialUnsigned SpecialFlags = 1 << iota
	SpecialSigned
	SpecialFloat
	SpecialExponent
	SpecialTrue
	SpecialFalse
	SpecialNull
)

// IsInteger reports whether the flags describe a plain integer (no
// fractional part, no exponent).
func (f SpecialFlags) IsInteger() bool {
	return f&(SpecialUnsigned|SpecialSigned) != 0 && f&(SpecialFloat|SpecialExponent) == 0
}

// IsNumeric reports whether the flags describe any numeric special (integer
// or float).
func (f SpecialFlags) IsNumeric() bool {
	return f&(SpecialUnsigned|SpecialSigned|SpecialFloat|SpecialExponent) != 0
}

// IsNegative reports whether a numeric special carries a leading minus.
func (f SpecialFlags) IsNegative() bool {
	return f&SpecialSigned != 0
}

func isWhitespace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r':
		return true
	default:
		return false
	}
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
