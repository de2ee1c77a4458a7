package rt

// Release drops one reference to v. Scalars and immortal objects are
// untouched. When a count reaches zero the object's owned children are
// released and its storage reclaimed.
//
// Reclamation is iterative: zero-count objects go onto an explicit work
// stack instead of recursing, so releasing a structure with a long owned
// chain (a deep list, a large array of records) uses bounded native stack
// regardless of depth.
func Release(v Value) {
	if v.obj == nil {
		return
	}
	o := v.obj
	o.checkLive("Release")
	if o.rc == immortalRC {
		return
	}
	if o.rc < 1 {
		panicInvariant("Release: refcount already zero")
	}
	o.rc--
	if o.rc > 0 {
		return
	}

	pending := make([]*Object, 0, releaseStackHint)
	pending = append(pending, o)
	for len(pending) > 0 {
		cur := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		switch cur.tag {
		case TagCtor, TagClosure, TagRef:
			pending = dropChildren(cur.fields, pending)
		case TagArray:
			pending = dropChildren(cur.elems, pending)
		case TagBytes, TagString:
			// No owned children.
		default:
			panicUnreachable()
		}
		freeObject(cur)
	}
}

// dropChildren decrements each owned child and queues those that reached
// zero. Children are decremented here, not recursively released, so the
// only stack in play is the explicit pending slice.
func dropChildren(children []Value, pending []*Object) []*Object {
	for _, c := range children {
		if c.obj == nil {
			continue
		}
		child := c.obj
		child.checkLive("Release")
		if child.rc == immortalRC {
			continue
		}
		if child.rc < 1 {
			panicInvariant("Release: child refcount already zero")
		}
		child.rc--
		if child.rc == 0 {
			pending = append(pending, child)
		}
	}
	return pending
}

// freeObject poisons and clears a reclaimed object. The Go allocator takes
// the storage back; the poisoned tag turns any dangling reference into an
// invariant panic.
func freeObject(o *Object) {
	o.tag = tagFreed
	o.fields = nil
	o.elems = nil
	o.bytes = nil
	o.fn = nil
}
