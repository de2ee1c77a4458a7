// Package snapshot serializes heap object graphs to canonical CBOR and
// reconstructs them. Snapshots are used by the bridge for diagnostics and
// value transport; closures are not snapshottable.
package snapshot

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/chazu/kiln/rt"
)

// cborEncMode uses canonical options for deterministic encoding.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("snapshot: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Node kinds in a snapshot.
const (
	kindScalar uint8 = iota
	kindCtor
	kindArray
	kindBytes
	kindString
	kindRef
)

// node is one flattened heap object (or scalar). Children reference other
// nodes by index; a node always appears after all of its children, so
// decoding is a single forward pass.
type node struct {
	Kind     uint8  `cbor:"k"`
	Scalar   int64  `cbor:"n,omitempty"`
	CtorIdx  uint32 `cbor:"c,omitempty"`
	Children []int  `cbor:"f,omitempty"`
	Bytes    []byte `cbor:"b,omitempty"`
}

// image is the top-level snapshot document.
type image struct {
	Version int    `cbor:"v"`
	Root    int    `cbor:"root"`
	Nodes   []node `cbor:"nodes"`
}

const imageVersion = 1

// Encode serializes the value graph rooted at v. Shared objects are
// emitted once and referenced by index. Borrows v.
func Encode(v rt.Value) ([]byte, error) {
	e := &encoder{index: make(map[*rt.Object]int)}
	root, err := e.flatten(v)
	if err != nil {
		return nil, err
	}
	data, err := cborEncMode.Marshal(&image{Version: imageVersion, Root: root, Nodes: e.nodes})
	if err != nil {
		return nil, fmt.Errorf("snapshot: encode: %w", err)
	}
	return data, nil
}

type encoder struct {
	nodes []node
	index map[*rt.Object]int
}

func (e *encoder) add(n node) int {
	e.nodes = append(e.nodes, n)
	return len(e.nodes) - 1
}

// flatten walks the graph depth-first. The heap is acyclic (reference
// counting admits no cycles), so plain recursion over the value structure
// terminates; snapshot depth is bounded by the host's diagnostic payloads
// rather than the release engine's worst case.
func (e *encoder) flatten(v rt.Value) (int, error) {
	if v.IsScalar() {
		return e.add(node{Kind: kindScalar, Scalar: v.Unbox()}), nil
	}
	o := v.Obj()
	if idx, ok := e.index[o]; ok {
		return idx, nil
	}

	var n node
	switch o.Tag() {
	case rt.TagCtor:
		n.Kind = kindCtor
		n.CtorIdx = rt.CtorIdx(v)
		for i := 0; i < rt.CtorNumFields(v); i++ {
			idx, err := e.flatten(rt.CtorGet(v, i))
			if err != nil {
				return 0, err
			}
			n.Children = append(n.Children, idx)
		}
	case rt.TagArray:
		n.Kind = kindArray
		for _, el := range rt.ArrayElems(v) {
			idx, err := e.flatten(el)
			if err != nil {
				return 0, err
			}
			n.Children = append(n.Children, idx)
		}
	case rt.TagBytes:
		n.Kind = kindBytes
		n.Bytes = append([]byte(nil), rt.BytesData(v)...)
	case rt.TagString:
		n.Kind = kindString
		n.Bytes = append([]byte(nil), rt.StringData(v)...)
	case rt.TagRef:
		n.Kind = kindRef
		idx, err := e.flatten(rt.RefValue(v))
		if err != nil {
			return 0, err
		}
		n.Children = []int{idx}
	case rt.TagClosure:
		return 0, fmt.Errorf("snapshot: closures cannot be snapshotted")
	default:
		return 0, fmt.Errorf("snapshot: unknown tag %d", o.Tag())
	}

	idx := e.add(n)
	e.index[o] = idx
	return idx, nil
}

// Decode reconstructs a fresh value graph from snapshot bytes. The caller
// owns the returned reference.
func Decode(data []byte) (rt.Value, error) {
	var img image
	if err := cbor.Unmarshal(data, &img); err != nil {
		return rt.Value{}, fmt.Errorf("snapshot: decode: %w", err)
	}
	if img.Version != imageVersion {
		return rt.Value{}, fmt.Errorf("snapshot: unsupported version %d", img.Version)
	}
	if img.Root < 0 || img.Root >= len(img.Nodes) {
		return rt.Value{}, fmt.Errorf("snapshot: root index %d out of range", img.Root)
	}

	values := make([]rt.Value, len(img.Nodes))
	for i, n := range img.Nodes {
		v, err := rebuild(n, i, values)
		if err != nil {
			// Nothing built so far escapes; drop what we have.
			for j := 0; j < i; j++ {
				rt.Release(values[j])
			}
			return rt.Value{}, err
		}
		values[i] = v
	}

	// Parents hold their own references to children, so the construction
	// reference on every non-root node is surplus. Dropping it also frees
	// nodes a damaged snapshot left unreachable from the root.
	for i, v := range values {
		if i != img.Root {
			rt.Release(v)
		}
	}
	return values[img.Root], nil
}

// rebuild constructs the value for one node. Children must already be
// built (forward references are rejected).
func rebuild(n node, self int, values []rt.Value) (rt.Value, error) {
	child := func(idx int) (rt.Value, error) {
		if idx < 0 || idx >= self {
			return rt.Value{}, fmt.Errorf("snapshot: node %d references %d out of order", self, idx)
		}
		return rt.Retain(values[idx]), nil
	}

	switch n.Kind {
	case kindScalar:
		return rt.Box(n.Scalar), nil
	case kindCtor:
		c := rt.AllocCtor(n.CtorIdx, len(n.Children))
		for i, idx := range n.Children {
			v, err := child(idx)
			if err != nil {
				rt.Release(c)
				return rt.Value{}, err
			}
			rt.CtorSet(c, i, v)
		}
		return c, nil
	case kindArray:
		a := rt.AllocArray(0, len(n.Children))
		for _, idx := range n.Children {
			v, err := child(idx)
			if err != nil {
				rt.Release(a)
				return rt.Value{}, err
			}
			a = rt.ArrayPush(a, v)
		}
		return a, nil
	case kindBytes:
		return rt.BytesFromSlice(n.Bytes), nil
	case kindString:
		return rt.MkStringFromBytes(n.Bytes), nil
	case kindRef:
		if len(n.Children) != 1 {
			return rt.Value{}, fmt.Errorf("snapshot: cell node %d must have one child", self)
		}
		v, err := child(n.Children[0])
		if err != nil {
			return rt.Value{}, err
		}
		return rt.MkRef(v), nil
	default:
		return rt.Value{}, fmt.Errorf("snapshot: unknown node kind %d", n.Kind)
	}
}
