package rt

import (
	"testing"
)

func TestArrayPushRoundTrip(t *testing.T) {
	const n = 100
	a := AllocArray(0, 0)
	for i := 0; i < n; i++ {
		a = ArrayPush(a, Box(int64(i)))
	}
	if ArraySize(a) != n {
		t.Fatalf("size = %d, want %d", ArraySize(a), n)
	}
	for i := 0; i < n; i++ {
		if got := ArrayGet(a, i).Unbox(); got != int64(i) {
			t.Errorf("elem %d = %d, want %d", i, got, i)
		}
	}
	Release(a)
}

func TestArrayPushSharedCopies(t *testing.T) {
	a := AllocArray(0, 4)
	a = ArrayPush(a, Box(1))
	shared := Retain(a)

	b := ArrayPush(a, Box(2))
	if b.Obj() == shared.Obj() {
		t.Fatal("push on a shared array mutated it in place")
	}
	if ArraySize(shared) != 1 {
		t.Errorf("original array size = %d, want 1", ArraySize(shared))
	}
	if ArraySize(b) != 2 {
		t.Errorf("pushed array size = %d, want 2", ArraySize(b))
	}
	Release(shared)
	Release(b)
}

func TestArrayPushExclusiveInPlace(t *testing.T) {
	a := AllocArray(0, 8)
	o := a.Obj()
	a = ArrayPush(a, Box(1))
	if a.Obj() != o {
		t.Error("exclusive push with spare capacity changed identity")
	}
	Release(a)
}

func TestArrayExtractClamping(t *testing.T) {
	a := AllocArray(0, 0)
	for i := 0; i < 5; i++ {
		a = ArrayPush(a, Box(int64(i)))
	}

	cases := []struct {
		start, stop, wantLen int
	}{
		{1, 3, 2},
		{0, 5, 5},
		{3, 100, 2},
		{-5, 2, 2},
		{4, 2, 0},
		{7, 9, 0},
	}
	for _, c := range cases {
		e := ArrayExtract(a, c.start, c.stop)
		if ArraySize(e) != c.wantLen {
			t.Errorf("extract(%d, %d) length = %d, want %d",
				c.start, c.stop, ArraySize(e), c.wantLen)
		}
		Release(e)
	}

	// Empty range is the canonical empty array.
	e := ArrayExtract(a, 4, 2)
	if e.Obj() != EmptyArray {
		t.Error("empty extract did not return the canonical empty array")
	}
	Release(a)
}

func TestArrayExtractRetainsElements(t *testing.T) {
	inner := AllocBytes(1, 1)
	innerObj := inner.Obj()
	a := ArrayPush(AllocArray(0, 0), inner)

	e := ArrayExtract(a, 0, 1)
	Release(a)
	if innerObj.Tag() == tagFreed {
		t.Fatal("extracted element was freed with the source array")
	}
	Release(e)
	if innerObj.Tag() != tagFreed {
		t.Error("element leaked after both arrays released")
	}
}

func TestArrayPopEmptyPanics(t *testing.T) {
	a := AllocArray(0, 0)
	defer func() {
		if recover() == nil {
			t.Error("expected panic popping an empty array")
		}
	}()
	ArrayPop(a)
}

func TestArrayPop(t *testing.T) {
	a := ArrayPush(ArrayPush(AllocArray(0, 0), Box(1)), Box(2))
	a, v := ArrayPop(a)
	if v.Unbox() != 2 {
		t.Errorf("popped %d, want 2", v.Unbox())
	}
	if ArraySize(a) != 1 {
		t.Errorf("size after pop = %d, want 1", ArraySize(a))
	}
	Release(a)
}

func TestArraySetCopyOnWrite(t *testing.T) {
	a := ArrayPush(AllocArray(0, 0), Box(1))
	shared := Retain(a)

	b := ArraySet(a, 0, Box(9))
	if b.Obj() == shared.Obj() {
		t.Fatal("set on a shared array mutated it in place")
	}
	if ArrayGet(shared, 0).Unbox() != 1 {
		t.Error("original array changed under copy-on-write")
	}
	if ArrayGet(b, 0).Unbox() != 9 {
		t.Error("copied array missing the new element")
	}
	Release(shared)
	Release(b)
}

func TestMkArray(t *testing.T) {
	a := MkArray(3, Box(7))
	if ArraySize(a) != 3 {
		t.Fatalf("size = %d, want 3", ArraySize(a))
	}
	for i := 0; i < 3; i++ {
		if ArrayGet(a, i).Unbox() != 7 {
			t.Errorf("elem %d != 7", i)
		}
	}
	Release(a)
}

func TestArrayAppend(t *testing.T) {
	a := ArrayPush(AllocArray(0, 0), Box(1))
	b := ArrayPush(AllocArray(0, 0), Box(2))
	r := ArrayAppend(a, b)
	if ArraySize(r) != 2 {
		t.Fatalf("size = %d, want 2", ArraySize(r))
	}
	if ArrayGet(r, 0).Unbox() != 1 || ArrayGet(r, 1).Unbox() != 2 {
		t.Error("append order wrong")
	}
	Release(r)
}

func TestArrayEqDelegates(t *testing.T) {
	a := ArrayPush(ArrayPush(AllocArray(0, 0), Box(1)), Box(2))
	b := ArrayPush(ArrayPush(AllocArray(0, 0), Box(1)), Box(2))
	c := ArrayPush(AllocArray(0, 0), Box(1))

	scalarEq := func(x, y Value) bool { return x.Unbox() == y.Unbox() }
	if !ArrayEq(a, b, scalarEq) {
		t.Error("equal arrays compared unequal")
	}
	if ArrayEq(a, c, scalarEq) {
		t.Error("arrays of different length compared equal")
	}
	Release(a)
	Release(b)
	Release(c)
}

func TestArrayListRoundTrip(t *testing.T) {
	l := ListCons(Box(1), ListCons(Box(2), ListCons(Box(3), ListNil())))
	a := ArrayMk(l)
	if ArraySize(a) != 3 {
		t.Fatalf("size = %d, want 3", ArraySize(a))
	}
	back := ArrayToList(a)
	if ListLen(back) != 3 {
		t.Fatalf("list length = %d, want 3", ListLen(back))
	}
	if CtorGet(back, 0).Unbox() != 1 {
		t.Error("list head != 1")
	}
	Release(back)
}

func TestArrayFindIdx(t *testing.T) {
	a := ArrayPush(ArrayPush(ArrayPush(AllocArray(0, 0), Box(3)), Box(5)), Box(8))
	isEven := AllocClosure(func(args []Value) Value {
		return FromBool(args[0].Unbox()%2 == 0)
	}, 1)
	if got := ArrayFindIdx(a, isEven); got != 2 {
		t.Errorf("findIdx = %d, want 2", got)
	}

	never := AllocClosure(func(args []Value) Value { return False }, 1)
	if got := ArrayFindIdx(a, never); got != -1 {
		t.Errorf("findIdx with false predicate = %d, want -1", got)
	}
	Release(a)
}

func TestArrayPartitionUnimplemented(t *testing.T) {
	a := AllocArray(0, 0)
	defer func() {
		if recover() == nil {
			t.Error("expected partition to fail loudly")
		}
		Release(a)
	}()
	ArrayPartition(a, Box(0), 0, 0)
}
