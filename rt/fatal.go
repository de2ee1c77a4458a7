package rt

import (
	"fmt"
)

// Fatal error categories. All of these abort the computation by panicking;
// there is no recovery path inside the runtime. The hosting environment
// treats the whole unit as a single failable computation.
//
// Allocation failure has no helper: the Go allocator aborts the process
// itself when memory runs out, so there is no point at which the runtime
// could observe it.
//
// CapabilityUnavailable is deliberately NOT here: it is an ordinary Error
// result value (see result.go), never a panic.

func panicInvariant(msg string) {
	panic("kiln: invariant violation: " + msg)
}

func panicUnreachable() {
	panic("kiln: unreachable")
}

func panicArity(arity int) {
	panic(fmt.Sprintf("kiln: closure arity %d exceeds maximum of %d", arity, MaxArity))
}

func panicMagnitude(op string) {
	panic(fmt.Sprintf("kiln: %s: result exceeds the fixed-width integer range (arbitrary precision is unsupported)", op))
}

func panicUnimplemented(op string) {
	panic(fmt.Sprintf("kiln: %s is not implemented", op))
}
