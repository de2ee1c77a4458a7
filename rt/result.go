package rt

// Fallible operations return a two-armed record: constructor 0 wraps a
// success value, constructor 1 wraps an error message string. This is the
// only error category a caller handles programmatically; everything fatal
// panics instead (see fatal.go).

const (
	resultOkIdx  uint32 = 0
	resultErrIdx uint32 = 1
)

// ResultOk wraps a success value, taking ownership of v.
func ResultOk(v Value) Value {
	r := AllocCtor(resultOkIdx, 1)
	CtorSet(r, 0, v)
	return r
}

// ResultError wraps an error message.
func ResultError(msg string) Value {
	r := AllocCtor(resultErrIdx, 1)
	CtorSet(r, 0, MkString(msg))
	return r
}

// CapabilityUnavailable builds the error result for an operation that has
// no implementation in this sandbox. It is always an ordinary result
// value, never a panic.
func CapabilityUnavailable(op string) Value {
	return ResultError(op + ": capability unavailable in this sandbox")
}

// ResultIsOk reports whether r is a success result.
func ResultIsOk(r Value) bool {
	return CtorIdx(r) == resultOkIdx
}

// ResultValue returns the success payload, borrowed. Panics if r is an
// error result.
func ResultValue(r Value) Value {
	if !ResultIsOk(r) {
		panicInvariant("ResultValue: error result")
	}
	return CtorGet(r, 0)
}

// ResultMessage returns the error message as a Go string. Panics on a
// success result.
func ResultMessage(r Value) string {
	if ResultIsOk(r) {
		panicInvariant("ResultMessage: success result")
	}
	return StringGo(CtorGet(r, 0))
}
