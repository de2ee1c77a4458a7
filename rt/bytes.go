package rt

// AllocBytes allocates a byte buffer with the given length (zeroed) and
// capacity.
func AllocBytes(length, capacity int) Value {
	if length < 0 || capacity < length {
		panicInvariant("AllocBytes: bad length/capacity")
	}
	o := newObject(TagBytes)
	o.bytes = make([]byte, length, capacity)
	return ObjValue(o)
}

// BytesFromSlice copies a host-owned slice into a fresh byte buffer.
func BytesFromSlice(data []byte) Value {
	b := AllocBytes(len(data), len(data))
	copy(b.Obj().bytes, data)
	return b
}

func toBytes(v Value, op string) *Object {
	o := v.Obj()
	o.checkLive(op)
	if o.tag != TagBytes {
		panicInvariant(op + ": not a byte buffer")
	}
	return o
}

// BytesSize returns the number of bytes.
func BytesSize(v Value) int {
	return len(toBytes(v, "BytesSize").bytes)
}

// BytesData returns the backing bytes, borrowed: the slice is valid only
// while the buffer is alive and must not be mutated by the caller.
func BytesData(v Value) []byte {
	return toBytes(v, "BytesData").bytes
}

// BytesGet returns byte i. Panics on out-of-range access.
func BytesGet(v Value, i int) byte {
	o := toBytes(v, "BytesGet")
	if i < 0 || i >= len(o.bytes) {
		panicInvariant("BytesGet: index out of range")
	}
	return o.bytes[i]
}

// BytesPush appends one byte, consuming the buffer. Exclusive buffers
// with spare capacity mutate in place; otherwise the contents move to a
// fresh buffer with doubled capacity.
func BytesPush(v Value, b byte) Value {
	o := toBytes(v, "BytesPush")
	if IsExclusive(v) && len(o.bytes) < cap(o.bytes) {
		o.bytes = append(o.bytes, b)
		return v
	}
	sz := len(o.bytes)
	capacity := sz * 2
	if capacity < minBytesCapacity {
		capacity = minBytesCapacity
	}
	r := AllocBytes(sz+1, capacity)
	ro := r.Obj()
	copy(ro.bytes, o.bytes)
	ro.bytes[sz] = b
	Release(v)
	return r
}

// BytesSet replaces byte i, consuming the buffer. Shared buffers are
// copied first.
func BytesSet(v Value, i int, b byte) Value {
	o := toBytes(v, "BytesSet")
	if i < 0 || i >= len(o.bytes) {
		panicInvariant("BytesSet: index out of range")
	}
	if !IsExclusive(v) {
		r := BytesFromSlice(o.bytes)
		Release(v)
		v = r
		o = v.Obj()
	}
	o.bytes[i] = b
	return v
}

// BytesExtract returns the sub-range [start, stop) as a fresh buffer.
// Bounds clamp to [0, size]; an empty range yields the canonical empty
// buffer. Does not consume v.
func BytesExtract(v Value, start, stop int) Value {
	o := toBytes(v, "BytesExtract")
	sz := len(o.bytes)
	start = clamp(start, sz)
	stop = clamp(stop, sz)
	if start >= stop {
		return ObjValue(EmptyBytes)
	}
	return BytesFromSlice(o.bytes[start:stop])
}

// BytesCopySlice copies n bytes from src at srcOff into dst at dstOff,
// consuming dst and borrowing src. Offsets and length clamp to the
// respective sizes; dst grows when the copy extends past its end. When
// exact is false the grown buffer gets doubled capacity for further
// appends.
func BytesCopySlice(src Value, srcOff int, dst Value, dstOff, n int, exact bool) Value {
	s := toBytes(src, "BytesCopySlice")
	d := toBytes(dst, "BytesCopySlice")

	srcSz := len(s.bytes)
	srcOff = clamp(srcOff, srcSz)
	if n < 0 {
		n = 0
	}
	if srcOff+n > srcSz {
		n = srcSz - srcOff
	}
	dstOff = clamp(dstOff, len(d.bytes))

	newSz := dstOff + n
	if newSz < len(d.bytes) {
		newSz = len(d.bytes)
	}

	if !IsExclusive(dst) || newSz > cap(d.bytes) {
		capacity := newSz
		if !exact {
			capacity = newSz * 2
			if capacity < minBytesCapacity {
				capacity = minBytesCapacity
			}
		}
		r := AllocBytes(newSz, capacity)
		ro := r.Obj()
		copy(ro.bytes, d.bytes)
		copy(ro.bytes[dstOff:], s.bytes[srcOff:srcOff+n])
		Release(dst)
		return r
	}

	d.bytes = d.bytes[:newSz]
	copy(d.bytes[dstOff:], s.bytes[srcOff:srcOff+n])
	return dst
}

// BytesEq compares two buffers by length and content. Borrows both.
func BytesEq(a, b Value) bool {
	oa := toBytes(a, "BytesEq")
	ob := toBytes(b, "BytesEq")
	return bytesEqual(oa.bytes, ob.bytes)
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// BytesHash returns the polynomial rolling hash of the buffer contents,
// used for content-addressed lookups. Borrows v.
func BytesHash(v Value) uint64 {
	return hashBytes(toBytes(v, "BytesHash").bytes)
}

// hashBytes is the runtime-wide content hash: h = 7, then h = h*31 + b.
func hashBytes(data []byte) uint64 {
	h := uint64(7)
	for _, b := range data {
		h = h*31 + uint64(b)
	}
	return h
}
