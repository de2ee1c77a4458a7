package rt

// Default allocation tuning. Growing containers never end up with a
// backing smaller than these minimums, and the release engine seeds its
// work stack at the release-stack size.
const (
	DefaultArrayCapacity  = 4
	DefaultBytesCapacity  = 8
	DefaultStringCapacity = 16
	DefaultReleaseStack   = 64
)

var (
	minArrayCapacity  = DefaultArrayCapacity
	minBytesCapacity  = DefaultBytesCapacity
	minStringCapacity = DefaultStringCapacity
	releaseStackHint  = DefaultReleaseStack
)

// Tune replaces the allocation minimums and the release work-stack size.
// Values below one violate the growth invariants; external input must be
// validated before it reaches here.
func Tune(array, bytes, str, releaseStack int) {
	if array < 1 || bytes < 1 || str < 1 || releaseStack < 1 {
		panicInvariant("Tune: capacities must be positive")
	}
	minArrayCapacity = array
	minBytesCapacity = bytes
	minStringCapacity = str
	releaseStackHint = releaseStack
}
