package rt

// AllocArray allocates an array with the given length (elements
// zero-initialized to the scalar 0) and capacity.
func AllocArray(length, capacity int) Value {
	if length < 0 || capacity < length {
		panicInvariant("AllocArray: bad length/capacity")
	}
	o := newObject(TagArray)
	o.elems = make([]Value, length, capacity)
	return ObjValue(o)
}

func toArray(v Value, op string) *Object {
	o := v.Obj()
	o.checkLive(op)
	if o.tag != TagArray {
		panicInvariant(op + ": not an array")
	}
	return o
}

// ArraySize returns the number of elements.
func ArraySize(v Value) int {
	return len(toArray(v, "ArraySize").elems)
}

// ArrayElems returns the element slice, borrowed: valid only while the
// array is alive and not to be mutated by the caller.
func ArrayElems(v Value) []Value {
	return toArray(v, "ArrayElems").elems
}

// ArrayGet returns element i, retained. Panics on out-of-range access.
func ArrayGet(v Value, i int) Value {
	o := toArray(v, "ArrayGet")
	if i < 0 || i >= len(o.elems) {
		panicInvariant("ArrayGet: index out of range")
	}
	return Retain(o.elems[i])
}

// copyExpandArray copies a into a fresh array, doubling capacity when
// expand is set (minimum minArrayCapacity). Consumes a.
func copyExpandArray(a Value, expand bool) Value {
	src := toArray(a, "copyExpandArray")
	sz := len(src.elems)
	capacity := sz
	if expand {
		capacity = sz * 2
		if capacity < minArrayCapacity {
			capacity = minArrayCapacity
		}
	}
	dst := AllocArray(sz, capacity)
	d := dst.Obj()
	for i, e := range src.elems {
		d.elems[i] = Retain(e)
	}
	Release(a)
	return dst
}

// ArrayPush appends v to the array, consuming both references. When the
// array is exclusively owned with spare capacity the same identity comes
// back; otherwise the contents move to a fresh array with doubled
// capacity. Amortized O(1) per push.
func ArrayPush(a, v Value) Value {
	o := toArray(a, "ArrayPush")
	if IsExclusive(a) && len(o.elems) < cap(o.elems) {
		o.elems = append(o.elems, v)
		return a
	}
	r := copyExpandArray(a, true)
	ro := r.Obj()
	if len(ro.elems) >= cap(ro.elems) {
		r = copyExpandArray(r, true)
		ro = r.Obj()
	}
	ro.elems = append(ro.elems, v)
	return r
}

// ArrayPop removes and returns the last element, consuming a and
// returning the shortened array alongside the element. Popping an empty
// array is an invariant violation.
func ArrayPop(a Value) (Value, Value) {
	o := toArray(a, "ArrayPop")
	n := len(o.elems)
	if n == 0 {
		panicInvariant("ArrayPop: empty array")
	}
	if IsExclusive(a) {
		last := o.elems[n-1]
		o.elems[n-1] = Value{}
		o.elems = o.elems[:n-1]
		return a, last
	}
	last := Retain(o.elems[n-1])
	r := AllocArray(n-1, n-1)
	ro := r.Obj()
	for i := 0; i < n-1; i++ {
		ro.elems[i] = Retain(o.elems[i])
	}
	Release(a)
	return r, last
}

// ArrayBack returns the last element, retained, without consuming the
// array. Panics on an empty array.
func ArrayBack(v Value) Value {
	o := toArray(v, "ArrayBack")
	if len(o.elems) == 0 {
		panicInvariant("ArrayBack: empty array")
	}
	return Retain(o.elems[len(o.elems)-1])
}

// ArraySet replaces element i, consuming a and v. Shared arrays are
// copied first (copy-on-write); the displaced element is released.
func ArraySet(a Value, i int, v Value) Value {
	o := toArray(a, "ArraySet")
	if i < 0 || i >= len(o.elems) {
		panicInvariant("ArraySet: index out of range")
	}
	if !IsExclusive(a) {
		a = copyExpandArray(a, false)
		o = a.Obj()
	}
	Release(o.elems[i])
	o.elems[i] = v
	return a
}

// MkArray builds an array of n copies of v. Consumes v.
func MkArray(n int, v Value) Value {
	if n < 0 {
		panicInvariant("MkArray: negative length")
	}
	a := AllocArray(n, n)
	o := a.Obj()
	for i := 0; i < n; i++ {
		o.elems[i] = Retain(v)
	}
	Release(v)
	return a
}

// ArrayExtract returns the sub-range [start, stop) as a fresh array with
// every element retained. Bounds clamp to [0, size]; an empty range yields
// the canonical empty array. Does not consume a.
func ArrayExtract(a Value, start, stop int) Value {
	o := toArray(a, "ArrayExtract")
	sz := len(o.elems)
	start = clamp(start, sz)
	stop = clamp(stop, sz)
	if start >= stop {
		return ObjValue(EmptyArray)
	}
	r := AllocArray(stop-start, stop-start)
	ro := r.Obj()
	for i := range ro.elems {
		ro.elems[i] = Retain(o.elems[start+i])
	}
	return r
}

// ArrayAppend concatenates two arrays into a fresh one, consuming both.
func ArrayAppend(a, b Value) Value {
	oa := toArray(a, "ArrayAppend")
	ob := toArray(b, "ArrayAppend")
	r := AllocArray(len(oa.elems)+len(ob.elems), len(oa.elems)+len(ob.elems))
	ro := r.Obj()
	for i, e := range oa.elems {
		ro.elems[i] = Retain(e)
	}
	for i, e := range ob.elems {
		ro.elems[len(oa.elems)+i] = Retain(e)
	}
	Release(a)
	Release(b)
	return r
}

// ArrayEq compares element-wise using the caller-supplied comparison.
// Borrows both arrays.
func ArrayEq(a, b Value, eq func(x, y Value) bool) bool {
	oa := toArray(a, "ArrayEq")
	ob := toArray(b, "ArrayEq")
	if len(oa.elems) != len(ob.elems) {
		return false
	}
	for i := range oa.elems {
		if !eq(oa.elems[i], ob.elems[i]) {
			return false
		}
	}
	return true
}

// ArrayFindIdx returns the index of the first element satisfying the
// predicate closure, or -1. The predicate is applied through the regular
// calling convention and must return a boolean scalar. Consumes pred;
// borrows a.
func ArrayFindIdx(a, pred Value) int {
	o := toArray(a, "ArrayFindIdx")
	for i, e := range o.elems {
		r := Apply1(Retain(pred), Retain(e))
		if r.Bool() {
			Release(pred)
			return i
		}
	}
	Release(pred)
	return -1
}

// ArrayPartition would reorder a sub-range around a pivot for
// partition-based sorting. No caller in scope exercises sorting, so
// rather than carry a wrong placeholder it fails loudly.
func ArrayPartition(a, pivot Value, lo, hi int) Value {
	panicUnimplemented("ArrayPartition")
	return Value{}
}

func clamp(i, max int) int {
	if i < 0 {
		return 0
	}
	if i > max {
		return max
	}
	return i
}
