package token

import "errors"

// Sentinel errors the tokenizer can surface through Tokenizer.Status. They
// describe malformed input only — classifying what a matched value MEANS
// is the match package's job, not this one's.
var (
	ErrMalformed  = errors.New("token: malformed json")
	ErrTruncated  = errors.New("token: truncated json")
	ErrMaxDepth   = errors.New("token: maximum nesting depth exceeded")
	ErrNotStarted = errors.New("token: finish called before any bytes were fed")
)
