// Package rt implements the Kiln managed runtime.
//
// This package contains:
//   - Scalar/object value representation
//   - Tagged heap object layout and reference counting
//   - Iterative release engine with bounded native stack usage
//   - Growable containers: arrays, byte buffers, UTF-8 strings
//   - Closure construction and the partial-application calling convention
//   - Mutable cells, IO results, and synchronous tasks
//
// The runtime is single-threaded and run-to-completion: reference counts
// are plain integers and container mutation never races. Hosts that need
// concurrency must serialize their calls.
package rt
