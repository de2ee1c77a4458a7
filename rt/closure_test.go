package rt

import (
	"testing"
)

// sum3 releases nothing: all its arguments are scalars.
func sum3(args []Value) Value {
	return Box(args[0].Unbox()*100 + args[1].Unbox()*10 + args[2].Unbox())
}

func TestApplyExact(t *testing.T) {
	c := AllocClosure(sum3, 3)
	r := Apply(c, []Value{Box(1), Box(2), Box(3)})
	if r.Unbox() != 123 {
		t.Errorf("exact application = %d, want 123", r.Unbox())
	}
}

func TestApplyUnder(t *testing.T) {
	c := AllocClosure(sum3, 3)
	partial := Apply(c, []Value{Box(1)})
	if partial.Obj().Tag() != TagClosure {
		t.Fatal("under-application did not produce a closure")
	}
	if ClosureArity(partial) != 3 {
		t.Errorf("arity = %d, want 3", ClosureArity(partial))
	}
	if ClosureNumFixed(partial) != 1 {
		t.Errorf("numFixed = %d, want 1", ClosureNumFixed(partial))
	}
	r := Apply(partial, []Value{Box(2), Box(3)})
	if r.Unbox() != 123 {
		t.Errorf("completed application = %d, want 123", r.Unbox())
	}
}

// Applying one argument at a time must be observationally equivalent to
// applying them all at once.
func TestApplyAssociativity(t *testing.T) {
	allAtOnce := Apply(AllocClosure(sum3, 3), []Value{Box(4), Box(5), Box(6)})

	c := AllocClosure(sum3, 3)
	c = Apply(c, []Value{Box(4)})
	c = Apply(c, []Value{Box(5), Box(6)})

	if allAtOnce.Unbox() != c.Unbox() {
		t.Errorf("stepwise %d != all-at-once %d", c.Unbox(), allAtOnce.Unbox())
	}

	c2 := AllocClosure(sum3, 3)
	c2 = Apply(c2, []Value{Box(4)})
	c2 = Apply(c2, []Value{Box(5)})
	c2 = Apply(c2, []Value{Box(6)})
	if c2.Unbox() != allAtOnce.Unbox() {
		t.Errorf("one-at-a-time %d != all-at-once %d", c2.Unbox(), allAtOnce.Unbox())
	}
}

func TestApplyOver(t *testing.T) {
	// A 1-arity function returning a 2-arity closure; over-applying all
	// three arguments at once must thread the leftovers through.
	outer := AllocClosure(func(args []Value) Value {
		x := args[0].Unbox()
		return AllocClosure(func(inner []Value) Value {
			return Box(x*100 + inner[0].Unbox()*10 + inner[1].Unbox())
		}, 2)
	}, 1)

	r := Apply(outer, []Value{Box(7), Box(8), Box(9)})
	if r.Unbox() != 789 {
		t.Errorf("over-application = %d, want 789", r.Unbox())
	}
}

func TestApplyReleasesConsumedClosure(t *testing.T) {
	c := AllocClosure(sum3, 3)
	o := c.Obj()
	partial := Apply(c, []Value{Box(1)})
	if o.Tag() == tagFreed {
		// Original had refcount 1 and is consumed by Apply.
		po := partial.Obj()
		if po.Tag() != TagClosure {
			t.Fatal("partial closure freed prematurely")
		}
	} else {
		t.Error("consumed closure was not released")
	}
	Release(partial)
}

func TestApplyRetainsBoundArguments(t *testing.T) {
	arg := MkString("bound")
	argObj := arg.Obj()

	c := AllocClosure(func(args []Value) Value {
		Release(args[0])
		Release(args[1])
		return Box(0)
	}, 2)
	partial := Apply(c, []Value{arg})
	if argObj.Tag() == tagFreed {
		t.Fatal("bound argument freed while closure holds it")
	}
	Apply(partial, []Value{MkString("supplied")})
	if argObj.Tag() != tagFreed {
		t.Error("bound argument leaked after the call consumed it")
	}
}

func TestAllocClosureArityLimit(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic constructing a closure beyond the arity limit")
		}
	}()
	AllocClosure(func(args []Value) Value { return Box(0) }, MaxArity+1)
}

func TestAllocClosureZeroArity(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic constructing a zero-arity closure")
		}
	}()
	AllocClosure(func(args []Value) Value { return Box(0) }, 0)
}

func TestApplyNonClosurePanics(t *testing.T) {
	a := AllocArray(0, 0)
	defer func() {
		if recover() == nil {
			t.Error("expected panic applying a non-closure")
		}
	}()
	Apply(a, []Value{Box(1)})
}
