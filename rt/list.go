package rt

// Lists are the scalar 0 (nil) or a two-field record with constructor
// index 1 (head, tail). This is how record-encoded cons lists arrive from
// externally compiled code; the helpers below convert between lists and
// the runtime's native containers.

const listConsIdx uint32 = 1

// ListNil returns the empty list.
func ListNil() Value {
	return Box(0)
}

// ListCons allocates a cons cell, taking ownership of head and tail.
func ListCons(head, tail Value) Value {
	c := AllocCtor(listConsIdx, 2)
	CtorSet(c, 0, head)
	CtorSet(c, 1, tail)
	return c
}

// ListIsNil reports whether l is the empty list.
func ListIsNil(l Value) bool {
	return l.IsScalar()
}

// ListLen walks the spine and counts the cells.
func ListLen(l Value) int {
	n := 0
	for !l.IsScalar() {
		n++
		l = CtorGet(l, 1)
	}
	return n
}

// ArrayMk converts a list to an array, consuming the list.
func ArrayMk(l Value) Value {
	n := ListLen(l)
	a := AllocArray(n, n)
	o := a.Obj()
	p := l
	for i := 0; i < n; i++ {
		o.elems[i] = Retain(CtorGet(p, 0))
		p = CtorGet(p, 1)
	}
	Release(l)
	return a
}

// ArrayToList converts an array to a list, consuming the array.
func ArrayToList(a Value) Value {
	o := toArray(a, "ArrayToList")
	r := ListNil()
	for i := len(o.elems); i > 0; i-- {
		r = ListCons(Retain(o.elems[i-1]), r)
	}
	Release(a)
	return r
}

// BytesMk converts a list of byte scalars to a byte buffer, consuming the
// list.
func BytesMk(l Value) Value {
	n := ListLen(l)
	b := AllocBytes(n, n)
	o := b.Obj()
	p := l
	for i := 0; i < n; i++ {
		o.bytes[i] = byte(CtorGet(p, 0).Unbox())
		p = CtorGet(p, 1)
	}
	Release(l)
	return b
}

// BytesToList converts a byte buffer to a list of byte scalars, consuming
// the buffer.
func BytesToList(b Value) Value {
	o := toBytes(b, "BytesToList")
	r := ListNil()
	for i := len(o.bytes); i > 0; i-- {
		r = ListCons(Box(int64(o.bytes[i-1])), r)
	}
	Release(b)
	return r
}
