package subdoc

// MaxDepth is the deepest nesting the engine will walk into before it
// reports the document as malformed, mirroring the tokenizer's own limit.
const MaxDepth = 2048
