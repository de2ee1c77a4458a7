package rt

// Tasks degrade to synchronous execution: this runtime is single-threaded
// and run-to-completion, so "spawning" a computation runs it before
// returning and every task a caller can observe is already finished.
// There is no suspension point anywhere; cancellation is an accepted
// no-op because nothing is ever in flight.

const taskCtorIdx uint32 = 0

// TaskPure wraps an already-computed value as a finished task, taking
// ownership of v.
func TaskPure(v Value) Value {
	t := AllocCtor(taskCtorIdx, 1)
	CtorSet(t, 0, v)
	return t
}

// TaskSpawn runs the unit closure to completion immediately and returns
// the finished task holding its result. Consumes fn.
func TaskSpawn(fn Value) Value {
	return TaskPure(Apply1(fn, Box(0)))
}

// TaskGet returns the task's result, retained. Borrows the task. The
// task is always observed as finished.
func TaskGet(t Value) Value {
	return Retain(CtorGet(t, 0))
}

// TaskFinished always reports true: there is no in-flight state.
func TaskFinished(t Value) bool {
	_ = CtorIdx(t)
	return true
}

// TaskCancel accepts and ignores the cancellation: the task completed
// before the caller could observe it.
func TaskCancel(t Value) {
	_ = CtorIdx(t)
}

// TaskBind runs fn on the finished task's result, synchronously, and
// wraps the outcome as a new finished task. Consumes t and fn.
func TaskBind(t, fn Value) Value {
	v := TaskGet(t)
	Release(t)
	return TaskPure(Apply1(fn, v))
}

// Sleep is an immediate no-op: blocking operations that would suspend in
// a full environment return at once here.
func Sleep(ms int64) {
}
