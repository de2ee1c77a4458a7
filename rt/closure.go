package rt

// NativeFn is the underlying function of a closure. It receives exactly
// the closure's declared arity in args: the bound arguments first, then
// the supplied ones, in order. Ownership of every argument transfers to
// the function.
type NativeFn func(args []Value) Value

// MaxArity is the largest arity the calling convention supports directly.
// Constructing or applying beyond it is fatal, not truncated.
const MaxArity = 16

// AllocClosure wraps a native function of the given total arity with no
// bound arguments yet.
func AllocClosure(fn NativeFn, arity int) Value {
	if arity < 1 || arity > MaxArity {
		panicArity(arity)
	}
	if fn == nil {
		panicInvariant("AllocClosure: nil function")
	}
	o := newObject(TagClosure)
	o.fn = fn
	o.arity = arity
	o.fields = make([]Value, 0, arity)
	return ObjValue(o)
}

// ClosureArity returns the total declared arity.
func ClosureArity(v Value) int {
	return toClosure(v, "ClosureArity").arity
}

// ClosureNumFixed returns the number of already-bound arguments.
func ClosureNumFixed(v Value) int {
	return len(toClosure(v, "ClosureNumFixed").fields)
}

func toClosure(v Value, op string) *Object {
	o := v.Obj()
	o.checkLive(op)
	if o.tag != TagClosure {
		panicInvariant(op + ": not a closure")
	}
	return o
}

// Apply applies a closure to the supplied arguments, consuming the closure
// reference and all supplied argument references.
//
// Let remaining = arity - numFixed:
//   - fewer than remaining supplied: returns a new closure with the
//     supplied arguments appended to the bound list (under-application)
//   - exactly remaining: invokes the function (exact application)
//   - more: invokes with the first remaining arguments, then applies the
//     leftovers to the callable intermediate result (over-application)
//
// Over-application iterates rather than recursing; the loop is bounded by
// the supplied argument count, never by data depth.
func Apply(f Value, args []Value) Value {
	for {
		c := toClosure(f, "Apply")
		remaining := c.arity - len(c.fields)

		if len(args) < remaining {
			nc := AllocClosure(c.fn, c.arity)
			no := nc.Obj()
			for _, fixed := range c.fields {
				no.fields = append(no.fields, Retain(fixed))
			}
			no.fields = append(no.fields, args...)
			Release(f)
			return nc
		}

		callArgs := make([]Value, 0, c.arity)
		for _, fixed := range c.fields {
			callArgs = append(callArgs, Retain(fixed))
		}
		callArgs = append(callArgs, args[:remaining]...)

		fn := c.fn
		res := fn(callArgs)
		Release(f)

		if len(args) == remaining {
			return res
		}
		f = res
		args = args[remaining:]
	}
}

// Apply1 and Apply2 cover the overwhelmingly common call shapes.

func Apply1(f, a1 Value) Value {
	return Apply(f, []Value{a1})
}

func Apply2(f, a1, a2 Value) Value {
	return Apply(f, []Value{a1, a2})
}
