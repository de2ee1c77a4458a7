// Package bridge is the host-facing boundary of the runtime. Every
// operation copies host bytes into fresh runtime buffers, runs one core
// operation, and copies the output into a registry-held buffer identified
// by an opaque handle. The host frees each handle exactly once.
package bridge

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/tliron/commonlog"

	"github.com/chazu/kiln/store"
)

// Handle identifies one bridge-owned output buffer.
type Handle uint64

// Bridge marshals byte buffers between a host and the runtime.
type Bridge struct {
	log     commonlog.Logger
	session string
	st      *store.Store

	mu      sync.Mutex
	buffers map[Handle][]byte
	nextID  atomic.Uint64
}

// New creates a bridge. st may be nil; store-backed operations then
// report the store as unavailable.
func New(st *store.Store) *Bridge {
	b := &Bridge{
		log:     commonlog.GetLogger("kiln.bridge"),
		session: uuid.New().String(),
		st:      st,
		buffers: make(map[Handle][]byte),
	}
	b.log.Infof("bridge session %s started", b.session)
	return b
}

// Session returns the bridge's session identifier.
func (b *Bridge) Session() string {
	return b.session
}

// hold registers an output buffer and returns its handle.
func (b *Bridge) hold(data []byte) Handle {
	h := Handle(b.nextID.Add(1))
	b.mu.Lock()
	b.buffers[h] = data
	b.mu.Unlock()
	return h
}

// Bytes returns the contents of an output buffer. The slice is owned by
// the bridge and is valid until Free.
func (b *Bridge) Bytes(h Handle) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, ok := b.buffers[h]
	if !ok {
		return nil, fmt.Errorf("bridge: unknown handle %d", h)
	}
	return data, nil
}

// Free releases an output buffer. Each handle must be freed exactly once;
// a second free is detected and reported.
func (b *Bridge) Free(h Handle) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.buffers[h]; !ok {
		b.log.Errorf("double free of handle %d in session %s", h, b.session)
		return fmt.Errorf("bridge: handle %d already freed", h)
	}
	delete(b.buffers, h)
	return nil
}

// Live reports how many output buffers are currently held.
func (b *Bridge) Live() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.buffers)
}
