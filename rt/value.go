package rt

// Value represents a Kiln runtime value.
//
// A value is either a scalar (a small integer or boolean, represented
// without heap allocation and without identity) or a reference to a heap
// Object. Scalars never enter the retain/release path.
//
// The zero Value is the scalar 0.
type Value struct {
	obj *Object
	n   int64
}

// Scalar range (62-bit signed). Keeping two guard bits below int64 lets
// the arithmetic helpers in nat.go detect overflow before it wraps.
const (
	MaxScalar int64 = (1 << 61) - 1
	MinScalar int64 = -(1 << 61)
)

// Pre-defined boolean values. Booleans are the scalars 0 and 1.
var (
	False = Value{n: 0}
	True  = Value{n: 1}
)

// Box creates a scalar value from an integer.
// Panics if n is outside the scalar range: values of that magnitude would
// require arbitrary-precision representation, which the runtime does not
// support.
func Box(n int64) Value {
	if n > MaxScalar || n < MinScalar {
		panicMagnitude("Box")
	}
	return Value{n: n}
}

// ObjValue wraps a heap object as a value.
func ObjValue(o *Object) Value {
	if o == nil {
		panicInvariant("ObjValue: nil object")
	}
	return Value{obj: o}
}

// IsScalar returns true if v is a scalar (no heap object).
func (v Value) IsScalar() bool {
	return v.obj == nil
}

// Unbox returns the scalar payload.
// Panics if v is a heap object.
func (v Value) Unbox() int64 {
	if v.obj != nil {
		panicInvariant("Unbox: not a scalar")
	}
	return v.n
}

// Obj returns the heap object.
// Panics if v is a scalar.
func (v Value) Obj() *Object {
	if v.obj == nil {
		panicInvariant("Obj: scalar has no object")
	}
	return v.obj
}

// FromBool creates a boolean scalar.
func FromBool(b bool) Value {
	if b {
		return True
	}
	return False
}

// Bool returns v as a bool.
// Panics if v is not the scalar 0 or 1.
func (v Value) Bool() bool {
	if v.obj != nil || (v.n != 0 && v.n != 1) {
		panicInvariant("Bool: not a boolean")
	}
	return v.n == 1
}
