package subdoc

import (
	"encoding/json"
	"fmt"

	"github.com/agentflare-ai/subdoc/path"
)

// Op identifies a single batch-patch operation. It mirrors the handful of
// RFC 6902 verbs ApplyPatch can express without ever materializing a tree:
// add/remove/replace address members or elements directly, and increment
// folds a read-modify-write into the same one-pass machinery.
type Op string

const (
	OpAdd     Op = "add"
	OpRemove  Op = "remove"
	OpReplace Op = "replace"
	OpIncr    Op = "increment"
)

// Operation is one step of a Patch. Value is raw JSON, passed through to
// the matching engine's value validator untouched; Delta is only read for
// Increment.
type Operation struct {
	Op    Op              `json:"op"`
	Path  string          `json:"path"`
	Value json.RawMessage `json:"value,omitempty"`
	Delta int64           `json:"delta,omitempty"`
}

// Patch is an ordered batch of operations, applied left to right.
type Patch []Operation

// ApplyPatch applies each operation in patch to doc in order, stopping at
// the first operation that does not report Success. The partially-applied
// document up to (and not including) the failing operation is returned
// alongside the status, so a caller can decide whether to keep it or
// discard the whole batch.
//
// add routes to DictUpsert when the operation's path names an object
// member, or to ArrayAppend when it ends in the "-" (last-child) marker.
// An add whose path names a specific array index is not supported — RFC
// 6902's index-shifting insert has no single-pass byte-native equivalent
// here — and reports ValueCantInsert.
func ApplyPatch(doc []byte, patch Patch) ([]byte, Status, error) {
	for _, op := range patch {
		var out []byte
		var status Status
		var err error

		switch op.Op {
		case OpAdd:
			out, status, err = applyAdd(doc, op)
		case OpRemove:
			out, status, err = Delete(doc, op.Path)
		case OpReplace:
			out, status, err = Replace(doc, op.Path, op.Value)
		case OpIncr:
			out, status, err = Increment(doc, op.Path, op.Delta)
		default:
			return doc, ValueCantInsert, fmt.Errorf("subdoc: unknown patch op %q", op.Op)
		}
		if err != nil {
			return doc, status, err
		}
		if status != Success {
			return doc, status, nil
		}
		doc = out
	}
	return doc, Success, nil
}

func applyAdd(doc []byte, op Operation) ([]byte, Status, error) {
	p, err := path.Parse(op.Path)
	if err != nil {
		return doc, PathMismatch, err
	}
	if len(p.Components) == 0 {
		return Replace(doc, op.Path, op.Value)
	}

	last := p.Components[len(p.Components)-1]
	switch last.Kind {
	case path.ObjectKey:
		return DictUpsert(doc, op.Path, op.Value, false)
	case path.LastChild:
		parent := path.Path{Components: p.Components[:len(p.Components)-1]}
		return ArrayAppend(doc, parent.String(), op.Value)
	default:
		return doc, ValueCantInsert, nil
	}
}
