package rt

// Strings are UTF-8 byte buffers with a trailing terminator byte and a
// separately cached codepoint count. The byte size always includes the
// terminator; the codepoint count never does. Both are maintained on
// every mutation.

// InvalidChar is returned when decoding past the end of a string or at
// the terminator.
const InvalidChar rune = 0xFFFD

// allocString allocates a string object with the given byte capacity,
// holding the given UTF-8 payload (terminator added here) and codepoint
// count.
func allocString(payload []byte, chars, capacity int) Value {
	if capacity < len(payload)+1 {
		capacity = len(payload) + 1
	}
	o := newObject(TagString)
	o.bytes = make([]byte, len(payload)+1, capacity)
	copy(o.bytes, payload)
	o.bytes[len(payload)] = 0
	o.chars = chars
	return ObjValue(o)
}

// MkString copies a Go string into a fresh string object.
func MkString(s string) Value {
	return MkStringFromBytes([]byte(s))
}

// MkStringFromBytes copies raw UTF-8 bytes into a fresh string object,
// counting codepoints. The bytes are not validated; see StringValidate.
func MkStringFromBytes(b []byte) Value {
	return allocString(b, utf8CountChars(b), len(b)+1)
}

func toString(v Value, op string) *Object {
	o := v.Obj()
	o.checkLive(op)
	if o.tag != TagString {
		panicInvariant(op + ": not a string")
	}
	return o
}

// StringSize returns the byte length excluding the terminator.
func StringSize(v Value) int {
	return len(toString(v, "StringSize").bytes) - 1
}

// StringByteSize returns the byte length including the terminator.
func StringByteSize(v Value) int {
	return len(toString(v, "StringByteSize").bytes)
}

// StringLen returns the cached codepoint count.
func StringLen(v Value) int {
	return toString(v, "StringLen").chars
}

// StringData returns the UTF-8 payload without the terminator, borrowed.
func StringData(v Value) []byte {
	o := toString(v, "StringData")
	return o.bytes[:len(o.bytes)-1]
}

// StringGo copies the payload out as a Go string. Borrows v.
func StringGo(v Value) string {
	return string(StringData(v))
}

// StringPush appends one codepoint, consuming the string. The codepoint
// is UTF-8 encoded (1-4 bytes); byte size and codepoint count are both
// updated. Exclusive strings with spare capacity mutate in place.
func StringPush(v Value, c rune) Value {
	o := toString(v, "StringPush")
	var buf [4]byte
	n := utf8EncodeChar(buf[:], c)

	oldSz := len(o.bytes) // includes terminator
	newSz := oldSz + n

	if IsExclusive(v) && newSz <= cap(o.bytes) {
		o.bytes = o.bytes[:newSz]
		copy(o.bytes[oldSz-1:], buf[:n])
		o.bytes[newSz-1] = 0
		o.chars++
		return v
	}

	capacity := newSz * 2
	if capacity < minStringCapacity {
		capacity = minStringCapacity
	}
	r := allocString(nil, 0, capacity)
	ro := r.Obj()
	ro.bytes = ro.bytes[:newSz]
	copy(ro.bytes, o.bytes[:oldSz-1])
	copy(ro.bytes[oldSz-1:], buf[:n])
	ro.bytes[newSz-1] = 0
	ro.chars = o.chars + 1
	Release(v)
	return r
}

// StringAppend appends s2 onto s1, consuming s1 and borrowing s2.
func StringAppend(s1, s2 Value) Value {
	o1 := toString(s1, "StringAppend")
	o2 := toString(s2, "StringAppend")
	sz1 := len(o1.bytes) - 1
	sz2 := len(o2.bytes) - 1
	newSz := sz1 + sz2 + 1

	if IsExclusive(s1) && newSz <= cap(o1.bytes) {
		o1.bytes = o1.bytes[:newSz]
		copy(o1.bytes[sz1:], o2.bytes)
		o1.chars += o2.chars
		return s1
	}

	capacity := newSz * 2
	if capacity < minStringCapacity {
		capacity = minStringCapacity
	}
	r := allocString(nil, 0, capacity)
	ro := r.Obj()
	ro.bytes = ro.bytes[:newSz]
	copy(ro.bytes, o1.bytes[:sz1])
	copy(ro.bytes[sz1:], o2.bytes)
	ro.chars = o1.chars + o2.chars
	Release(s1)
	return r
}

// StringExtract returns the byte sub-range [start, stop) re-wrapped as a
// string. Offsets are byte offsets; the caller is responsible for
// aligning them to codepoint boundaries. Bounds clamp to [0, size]; an
// empty range yields the canonical empty string. Borrows v.
func StringExtract(v Value, start, stop int) Value {
	o := toString(v, "StringExtract")
	sz := len(o.bytes) - 1
	start = clamp(start, sz)
	stop = clamp(stop, sz)
	if start >= stop {
		return ObjValue(EmptyString)
	}
	return MkStringFromBytes(o.bytes[start:stop])
}

// StringGet decodes the codepoint at byte offset i. Decoding at or past
// the terminator returns InvalidChar. Borrows v.
func StringGet(v Value, i int) rune {
	o := toString(v, "StringGet")
	sz := len(o.bytes) - 1
	if i < 0 || i >= sz {
		return InvalidChar
	}
	c, _ := utf8DecodeChar(o.bytes[:sz], i)
	return c
}

// StringNext returns the byte offset of the codepoint after the one at i,
// stepping over the whole multi-byte sequence. Clamps to the byte size.
func StringNext(v Value, i int) int {
	o := toString(v, "StringNext")
	sz := len(o.bytes) - 1
	if i < 0 {
		return 0
	}
	if i >= sz {
		return sz
	}
	_, n := utf8DecodeChar(o.bytes[:sz], i)
	if i+n > sz {
		return sz
	}
	return i + n
}

// StringPrev returns the byte offset of the codepoint before offset i,
// walking backward until not on a continuation byte.
func StringPrev(v Value, i int) int {
	o := toString(v, "StringPrev")
	if i <= 0 {
		return 0
	}
	sz := len(o.bytes) - 1
	if i > sz {
		i = sz
	}
	i--
	for i > 0 && o.bytes[i]&0xC0 == 0x80 {
		i--
	}
	return i
}

// StringValidate scans the payload and reports whether it is well-formed
// UTF-8. Never partial: one bad sequence fails the whole string.
func StringValidate(v Value) bool {
	return utf8Validate(StringData(v))
}

// StringEq compares by byte length and content. Borrows both.
func StringEq(a, b Value) bool {
	oa := toString(a, "StringEq")
	ob := toString(b, "StringEq")
	return bytesEqual(oa.bytes, ob.bytes)
}

// StringLt is a lexicographic byte comparison. Borrows both.
func StringLt(a, b Value) bool {
	oa := toString(a, "StringLt")
	ob := toString(b, "StringLt")
	x, y := oa.bytes, ob.bytes
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	for i := 0; i < n; i++ {
		if x[i] != y[i] {
			return x[i] < y[i]
		}
	}
	return len(x) < len(y)
}

// StringMemcmp reports whether n bytes of a at aOff equal n bytes of b at
// bOff. Out-of-range compares are false, never partial. Borrows both.
func StringMemcmp(a, b Value, aOff, bOff, n int) bool {
	oa := toString(a, "StringMemcmp")
	ob := toString(b, "StringMemcmp")
	szA := len(oa.bytes) - 1
	szB := len(ob.bytes) - 1
	if aOff < 0 || bOff < 0 || n < 0 || aOff+n > szA || bOff+n > szB {
		return false
	}
	return bytesEqual(oa.bytes[aOff:aOff+n], ob.bytes[bOff:bOff+n])
}

// StringHash returns the polynomial rolling hash of the payload
// (terminator excluded). Borrows v.
func StringHash(v Value) uint64 {
	return hashBytes(StringData(v))
}

// StringIntercalate joins the strings in xs with sep between each pair.
// Borrows everything.
func StringIntercalate(sep Value, xs []Value) Value {
	r := MkString("")
	for i, s := range xs {
		if i > 0 {
			r = StringAppend(r, sep)
		}
		r = StringAppend(r, s)
	}
	return r
}

// StringToBytes copies the payload (terminator excluded) into a byte
// buffer, consuming the string.
func StringToBytes(v Value) Value {
	b := BytesFromSlice(StringData(v))
	Release(v)
	return b
}

// StringFromBytes re-wraps a byte buffer's contents as a string,
// consuming the buffer. Bytes are not validated.
func StringFromBytes(v Value) Value {
	s := MkStringFromBytes(toBytes(v, "StringFromBytes").bytes)
	Release(v)
	return s
}

// CharList conversions.

// StringMk builds a string from a list of codepoint scalars, consuming
// the list.
func StringMk(l Value) Value {
	r := allocString(nil, 0, 64)
	p := l
	for !p.IsScalar() {
		r = StringPush(r, rune(CtorGet(p, 0).Unbox()))
		p = CtorGet(p, 1)
	}
	Release(l)
	return r
}

// StringChars converts a string to a list of codepoint scalars,
// consuming the string.
func StringChars(v Value) Value {
	data := StringData(v)
	chars := make([]rune, 0, StringLen(v))
	for i := 0; i < len(data); {
		c, n := utf8DecodeChar(data, i)
		chars = append(chars, c)
		i += n
	}
	r := ListNil()
	for i := len(chars); i > 0; i-- {
		r = ListCons(Box(int64(chars[i-1])), r)
	}
	Release(v)
	return r
}

// StringSplitOn would split around a separator using a search table; no
// caller in scope exercises it, so it fails loudly instead of carrying a
// wrong placeholder.
func StringSplitOn(s, sep Value) Value {
	panicUnimplemented("StringSplitOn")
	return Value{}
}
