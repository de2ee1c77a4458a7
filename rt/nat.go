package rt

import (
	"strconv"
)

// Small natural-number arithmetic on scalars. Every operation stays on
// the fixed-width fast path; a result that would need arbitrary-precision
// representation is fatal, since the scope guarantees all values fit.

func unboxNat(v Value, op string) int64 {
	n := v.Unbox()
	if n < 0 {
		panicInvariant(op + ": negative natural")
	}
	return n
}

// NatAdd returns a + b, aborting on overflow past the scalar range.
func NatAdd(a, b Value) Value {
	x, y := unboxNat(a, "NatAdd"), unboxNat(b, "NatAdd")
	r := x + y
	if r > MaxScalar {
		panicMagnitude("NatAdd")
	}
	return Box(r)
}

// NatSub returns a - b, truncated at zero.
func NatSub(a, b Value) Value {
	x, y := unboxNat(a, "NatSub"), unboxNat(b, "NatSub")
	if y >= x {
		return Box(0)
	}
	return Box(x - y)
}

// NatMul returns a * b, aborting on overflow.
func NatMul(a, b Value) Value {
	x, y := unboxNat(a, "NatMul"), unboxNat(b, "NatMul")
	if x != 0 && y > MaxScalar/x {
		panicMagnitude("NatMul")
	}
	return Box(x * y)
}

// NatDiv returns a / b; division by zero yields zero.
func NatDiv(a, b Value) Value {
	x, y := unboxNat(a, "NatDiv"), unboxNat(b, "NatDiv")
	if y == 0 {
		return Box(0)
	}
	return Box(x / y)
}

// NatMod returns a % b; modulo zero yields a.
func NatMod(a, b Value) Value {
	x, y := unboxNat(a, "NatMod"), unboxNat(b, "NatMod")
	if y == 0 {
		return Box(x)
	}
	return Box(x % y)
}

// NatShiftl returns a << b, aborting when bits would leave the scalar
// range.
func NatShiftl(a, b Value) Value {
	x, y := unboxNat(a, "NatShiftl"), unboxNat(b, "NatShiftl")
	if y >= 63 {
		panicMagnitude("NatShiftl")
	}
	r := x << uint(y)
	if r > MaxScalar || (y > 0 && r>>uint(y) != x) {
		panicMagnitude("NatShiftl")
	}
	return Box(r)
}

// NatPow returns a ** b by repeated multiplication, aborting on overflow.
func NatPow(a, b Value) Value {
	base, exp := unboxNat(a, "NatPow"), unboxNat(b, "NatPow")
	r := int64(1)
	for i := int64(0); i < exp; i++ {
		if base != 0 && r > MaxScalar/base {
			panicMagnitude("NatPow")
		}
		r *= base
	}
	return Box(r)
}

// NatLog2 returns floor(log2(a)); zero maps to zero.
func NatLog2(a Value) Value {
	v := unboxNat(a, "NatLog2")
	r := int64(0)
	for v > 1 {
		v >>= 1
		r++
	}
	return Box(r)
}

// NatGcd returns the greatest common divisor.
func NatGcd(a, b Value) Value {
	x, y := unboxNat(a, "NatGcd"), unboxNat(b, "NatGcd")
	for y != 0 {
		x, y = y, x%y
	}
	return Box(x)
}

// NatRepr returns the decimal representation as a string object.
func NatRepr(a Value) Value {
	return MkString(strconv.FormatInt(unboxNat(a, "NatRepr"), 10))
}

// ParseNat parses leading decimal digits of s, ignoring everything after
// the first non-digit. Aborts if the value leaves the scalar range.
func ParseNat(s string) Value {
	v := int64(0)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			break
		}
		if v > (MaxScalar-int64(c-'0'))/10 {
			panicMagnitude("ParseNat")
		}
		v = v*10 + int64(c-'0')
	}
	return Box(v)
}
