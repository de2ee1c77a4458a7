package rt

// Cells: single-slot mutable containers for shared mutable state. A cell
// owns its value; replacing it releases the previous one.

// MkRef allocates a cell holding v, taking ownership of v.
func MkRef(v Value) Value {
	o := newObject(TagRef)
	o.fields = []Value{v}
	return ObjValue(o)
}

func toRef(v Value, op string) *Object {
	o := v.Obj()
	o.checkLive(op)
	if o.tag != TagRef {
		panicInvariant(op + ": not a cell")
	}
	return o
}

// RefGet returns the cell's value, retained. Borrows the cell.
func RefGet(r Value) Value {
	return Retain(toRef(r, "RefGet").fields[0])
}

// RefValue returns the cell's value, borrowed.
func RefValue(r Value) Value {
	return toRef(r, "RefValue").fields[0]
}

// RefSet replaces the cell's value in place, releasing the old one.
// Takes ownership of v; borrows the cell.
func RefSet(r, v Value) {
	o := toRef(r, "RefSet")
	old := o.fields[0]
	o.fields[0] = v
	Release(old)
}

// RefSwap replaces the cell's value and returns the old one, transferring
// its ownership to the caller.
func RefSwap(r, v Value) Value {
	o := toRef(r, "RefSwap")
	old := o.fields[0]
	o.fields[0] = v
	return old
}
