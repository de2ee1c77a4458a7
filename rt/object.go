package rt

// Tag identifies the variant of a heap object.
type Tag uint8

const (
	// TagCtor is a record: a constructor index plus an ordered sequence
	// of owned child references, fixed arity by construction site.
	TagCtor Tag = iota
	// TagClosure pairs a native function with partially bound arguments.
	TagClosure
	// TagArray is a growable sequence of owned object references.
	TagArray
	// TagBytes is a growable raw byte buffer. No owned children.
	TagBytes
	// TagString is a growable UTF-8 byte buffer with a cached codepoint
	// count. No owned children.
	TagString
	// TagRef is a mutable cell holding a single owned reference.
	TagRef

	// tagFreed poisons reclaimed objects so that use-after-free trips an
	// invariant check instead of corrupting the heap.
	tagFreed Tag = 0xFF
)

// immortalRC is the refcount sentinel for objects that live for the whole
// process and never enter the release path.
const immortalRC int32 = 0

// Object is the only unit of ownership in the runtime: a tagged,
// variable-shape record with a reference count.
//
// The variant payload fields overlap by tag:
//   - Ctor:    ctor index + fields (owned)
//   - Closure: fn + arity + fields (the bound arguments, owned)
//   - Ref:     fields[0] (owned)
//   - Array:   elems (owned); length and capacity are len/cap of the slice
//   - Bytes:   bytes; no children
//   - String:  bytes (terminator-padded, size includes the terminator)
//     + chars (cached codepoint count); no children
type Object struct {
	tag Tag
	rc  int32

	ctor   uint32
	fields []Value

	fn    NativeFn
	arity int

	elems []Value

	bytes []byte
	chars int
}

// Tag returns the object's variant tag.
func (o *Object) Tag() Tag {
	return o.tag
}

// RefCount returns the current reference count. Immortal objects report 0.
func (o *Object) RefCount() int32 {
	return o.rc
}

// IsImmortal returns true if o is exempt from reference counting.
func (o *Object) IsImmortal() bool {
	return o.rc == immortalRC
}

// MarkImmortal exempts o from reference counting for the rest of the
// process lifetime. Used for the canonical empty containers.
func MarkImmortal(o *Object) {
	o.checkLive("MarkImmortal")
	o.rc = immortalRC
}

// newObject allocates an object with refcount 1. All allocation in the
// runtime funnels through here.
func newObject(tag Tag) *Object {
	return &Object{tag: tag, rc: 1}
}

func (o *Object) checkLive(op string) {
	if o.tag == tagFreed {
		panicInvariant(op + ": use after free")
	}
}

// Retain increments the reference count. No-op for immortal objects.
func Retain(v Value) Value {
	if v.obj == nil {
		return v
	}
	o := v.obj
	o.checkLive("Retain")
	if o.rc != immortalRC {
		o.rc++
	}
	return v
}

// IsExclusive returns true if v is a heap object with exactly one
// reference. Exclusive objects may be mutated in place; shared objects
// must be copied first.
func IsExclusive(v Value) bool {
	return v.obj != nil && v.obj.rc == 1
}

// IsShared returns true if v is a heap object with more than one
// reference (or an immortal object, which is always shared).
func IsShared(v Value) bool {
	return v.obj != nil && !IsExclusive(v)
}

// AllocCtor allocates a record with the given constructor index and
// numFields zero-initialized fields (the scalar 0).
func AllocCtor(idx uint32, numFields int) Value {
	o := newObject(TagCtor)
	o.ctor = idx
	o.fields = make([]Value, numFields)
	return ObjValue(o)
}

// CtorIdx returns the constructor index of a record.
func CtorIdx(v Value) uint32 {
	o := v.Obj()
	o.checkLive("CtorIdx")
	if o.tag != TagCtor {
		panicInvariant("CtorIdx: not a record")
	}
	return o.ctor
}

// CtorNumFields returns the field count of a record.
func CtorNumFields(v Value) int {
	o := v.Obj()
	o.checkLive("CtorNumFields")
	if o.tag != TagCtor {
		panicInvariant("CtorNumFields: not a record")
	}
	return len(o.fields)
}

// CtorGet returns field i of a record, borrowed (not retained).
func CtorGet(v Value, i int) Value {
	o := v.Obj()
	o.checkLive("CtorGet")
	if o.tag != TagCtor {
		panicInvariant("CtorGet: not a record")
	}
	if i < 0 || i >= len(o.fields) {
		panicInvariant("CtorGet: field index out of range")
	}
	return o.fields[i]
}

// CtorSet stores a value into field i of a record. The record takes
// ownership of the stored reference; any previous non-zero field must have
// been released or moved by the caller (fields start zero-initialized).
func CtorSet(v Value, i int, field Value) {
	o := v.Obj()
	o.checkLive("CtorSet")
	if o.tag != TagCtor {
		panicInvariant("CtorSet: not a record")
	}
	if i < 0 || i >= len(o.fields) {
		panicInvariant("CtorSet: field index out of range")
	}
	o.fields[i] = field
}
